package resolver

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/erraggy/oaslice/parser"
	"github.com/erraggy/oaslice/refs"
	"github.com/erraggy/oaslice/sliceerrors"
)

// DefaultMaxRefDepth is the default ceiling on reference chain depth.
// The visited set alone guarantees termination; the ceiling makes
// pathological chains fail closed rather than churn.
const DefaultMaxRefDepth = 100

// Resolver computes transitive component closures against one document.
// A Resolver is safe for concurrent use: Resolve only reads the document
// and all run state lives in the per-call ResolvedSet.
type Resolver struct {
	doc      *parser.Document
	maxDepth int
	logger   parser.Logger
}

// Option configures a Resolver.
type Option func(*Resolver) error

// WithMaxRefDepth overrides the reference chain depth ceiling.
func WithMaxRefDepth(depth int) Option {
	return func(r *Resolver) error {
		if depth <= 0 {
			return &sliceerrors.ConfigError{Option: "max ref depth", Value: depth, Message: "must be positive"}
		}
		r.maxDepth = depth
		return nil
	}
}

// WithLogger sets the structured logger for resolution diagnostics.
func WithLogger(l parser.Logger) Option {
	return func(r *Resolver) error {
		if l == nil {
			return &sliceerrors.ConfigError{Option: "logger", Message: "logger must not be nil"}
		}
		r.logger = l
		return nil
	}
}

// New creates a Resolver for a document.
func New(doc *parser.Document, opts ...Option) (*Resolver, error) {
	if doc == nil {
		return nil, &sliceerrors.ConfigError{Option: "document", Message: "document must not be nil"}
	}
	r := &Resolver{
		doc:      doc,
		maxDepth: DefaultMaxRefDepth,
		logger:   parser.NopLogger{},
	}
	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// workItem is one queued reference with the depth of the chain that
// discovered it.
type workItem struct {
	ref   refs.Reference
	depth int
}

// Resolve computes the full transitive component closure for one operation.
//
// It fails with *sliceerrors.OperationNotFoundError when the selector does
// not exist, *sliceerrors.ClassificationError when any reachable $ref is not
// an internal component pointer, *sliceerrors.MissingComponentError when a
// reference (or security scheme name) has no definition in the document, and
// *sliceerrors.ResourceLimitError when the chain depth ceiling is exceeded.
func (r *Resolver) Resolve(path, method string) (*ResolvedSet, error) {
	method = strings.ToLower(method)
	operation, ok := r.doc.Operation(path, method)
	if !ok {
		return nil, &sliceerrors.OperationNotFoundError{Path: path, Method: method}
	}

	set := NewResolvedSet()
	var queue []workItem

	enqueue := func(raw, location string, depth int) error {
		ref, err := refs.Classify(raw)
		if err != nil {
			var ce *sliceerrors.ClassificationError
			if errors.As(err, &ce) {
				ce.Location = location
			}
			return err
		}
		if depth > r.maxDepth {
			return &sliceerrors.ResourceLimitError{
				ResourceType: "ref_depth",
				Limit:        int64(r.maxDepth),
				Actual:       int64(depth),
				Message:      fmt.Sprintf("reference chain through %s too deep", ref),
			}
		}
		queue = append(queue, workItem{ref: ref, depth: depth})
		return nil
	}

	// Seed from path-item-level parameters, which apply to every operation
	// under the path, then from the operation body itself.
	if item, ok := r.doc.PathItem(path); ok {
		if params, ok := item["parameters"]; ok {
			if err := refs.Scan(params, func(raw, location string) error {
				return enqueue(raw, "paths."+path+".parameters"+strings.TrimPrefix(location, "$"), 0)
			}); err != nil {
				return nil, err
			}
		}
	}
	opLocation := "paths." + path + "." + method
	if err := refs.Scan(operation, func(raw, location string) error {
		return enqueue(raw, opLocation+strings.TrimPrefix(location, "$"), 0)
	}); err != nil {
		return nil, err
	}

	// Security schemes are referenced by name, not by pointer.
	if err := r.resolveSecurity(operation, set, enqueue); err != nil {
		return nil, err
	}

	for len(queue) > 0 {
		item := queue[0]
		queue = queue[1:]

		if !set.visit(item.ref) {
			continue
		}

		body, ok := r.doc.Component(item.ref)
		if !ok {
			return nil, &sliceerrors.MissingComponentError{
				Section: item.ref.Kind.Section(),
				Name:    item.ref.Name,
				Ref:     item.ref.String(),
			}
		}
		set.add(item.ref, body)
		r.logger.Debug("resolved component", "ref", item.ref.String(), "depth", item.depth)

		// Definitions may reference any kind, not just their own.
		bodyLocation := "components." + item.ref.Kind.Section() + "." + item.ref.Name
		if err := refs.Scan(body, func(raw, location string) error {
			return enqueue(raw, bodyLocation+strings.TrimPrefix(location, "$"), item.depth+1)
		}); err != nil {
			return nil, err
		}
	}

	r.logger.Debug("resolution complete",
		"path", path,
		"method", method,
		"components", set.Len())
	return set, nil
}

// resolveSecurity resolves the operation's security requirements by scheme
// name. An operation-level security field overrides the document's global
// requirements, even when it is an empty list; only a missing field
// inherits them.
func (r *Resolver) resolveSecurity(operation map[string]any, set *ResolvedSet, enqueue func(raw, location string, depth int) error) error {
	var requirements []any
	if raw, has := operation["security"]; has {
		// An explicitly empty list means "no security", not "inherit global".
		requirements, _ = raw.([]any)
	} else if global, present := r.doc.GlobalSecurity(); present {
		requirements = global
	}
	if len(requirements) == 0 {
		return nil
	}

	for _, requirement := range requirements {
		reqMap, ok := requirement.(map[string]any)
		if !ok {
			continue
		}
		names := make([]string, 0, len(reqMap))
		for name := range reqMap {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			ref := refs.Reference{Kind: refs.KindSecurityScheme, Name: name}
			if !set.visit(ref) {
				continue
			}
			body, ok := r.doc.Component(ref)
			if !ok {
				return &sliceerrors.MissingComponentError{
					Section: ref.Kind.Section(),
					Name:    name,
				}
			}
			set.add(ref, body)
			r.logger.Debug("resolved security scheme", "scheme", name)

			if err := refs.Scan(body, func(raw, location string) error {
				return enqueue(raw, "components.securitySchemes."+name+strings.TrimPrefix(location, "$"), 1)
			}); err != nil {
				return err
			}
		}
	}
	return nil
}
