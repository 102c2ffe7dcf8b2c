package slicer

import (
	"strings"

	"github.com/erraggy/oaslice/parser"
	"github.com/erraggy/oaslice/resolver"
	"github.com/erraggy/oaslice/validator"
)

// Option configures a Slice call.
type Option func(*config) error

type config struct {
	maxDepth int
	logger   parser.Logger
}

// WithMaxRefDepth caps how deep reference chains may nest during resolution.
// See resolver.WithMaxRefDepth.
func WithMaxRefDepth(depth int) Option {
	return func(c *config) error {
		c.maxDepth = depth
		return nil
	}
}

// WithLogger sets the logger used during resolution. Defaults to no logging.
func WithLogger(l parser.Logger) Option {
	return func(c *config) error {
		c.logger = l
		return nil
	}
}

// Result is a successful extraction: the standalone document, the resolved
// component set behind it, a summary of what was extracted, and the outcomes
// of both completeness checks (always passed; a failed check aborts Slice).
type Result struct {
	Document *parser.Document
	Set      *resolver.ResolvedSet
	Summary  Summary
	Checks   []validator.Result
}

// Slice extracts the operation selected by path and method from doc into a
// standalone document. The full pipeline runs on every call: resolve the
// transitive component closure, assemble the output, then prove completeness
// with the closure and fidelity checks. Any failure along the way returns an
// error and no document.
func Slice(doc *parser.Document, path, method string, opts ...Option) (*Result, error) {
	var cfg config
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	var resolverOpts []resolver.Option
	if cfg.maxDepth != 0 {
		resolverOpts = append(resolverOpts, resolver.WithMaxRefDepth(cfg.maxDepth))
	}
	if cfg.logger != nil {
		resolverOpts = append(resolverOpts, resolver.WithLogger(cfg.logger))
	}

	method = strings.ToLower(method)

	r, err := resolver.New(doc, resolverOpts...)
	if err != nil {
		return nil, err
	}
	set, err := r.Resolve(path, method)
	if err != nil {
		return nil, err
	}

	output, err := Assemble(doc, path, method, set)
	if err != nil {
		return nil, err
	}

	checks, err := validator.Validate(doc, path, method, output)
	if err != nil {
		return nil, err
	}
	if err := validator.FirstFailure(checks); err != nil {
		return nil, err
	}

	return &Result{
		Document: output,
		Set:      set,
		Summary:  newSummary(doc, path, method, set),
		Checks:   checks,
	}, nil
}
