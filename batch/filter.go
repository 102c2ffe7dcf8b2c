package batch

import (
	"regexp"
	"sort"
	"strings"

	"github.com/erraggy/oaslice/parser"
	"github.com/erraggy/oaslice/sliceerrors"
)

// Endpoint is one (path, method) selector. Method is lowercase.
type Endpoint struct {
	Path   string
	Method string
}

// Filter narrows batch extraction to paths matching a pattern. The zero
// value (and a nil Filter) matches every path.
type Filter struct {
	pattern string
	re      *regexp.Regexp
}

// NewGlobFilter builds a filter from a glob pattern where * matches any run
// of characters, including slashes, and ? matches one character.
// Example: "/users/*" matches "/users/{id}" and "/users/{id}/orders".
func NewGlobFilter(pattern string) (*Filter, error) {
	re, err := regexp.Compile(globToRegexp(pattern))
	if err != nil {
		return nil, &sliceerrors.ConfigError{Option: "filter pattern", Value: pattern, Message: "invalid glob pattern", Cause: err}
	}
	return &Filter{pattern: pattern, re: re}, nil
}

// NewRegexpFilter builds a filter from a regular expression, matched against
// the start of each path.
func NewRegexpFilter(pattern string) (*Filter, error) {
	re, err := regexp.Compile("^(?:" + pattern + ")")
	if err != nil {
		return nil, &sliceerrors.ConfigError{Option: "filter pattern", Value: pattern, Message: "invalid regular expression", Cause: err}
	}
	return &Filter{pattern: pattern, re: re}, nil
}

// Matches reports whether path passes the filter.
func (f *Filter) Matches(path string) bool {
	if f == nil || f.pattern == "" {
		return true
	}
	return f.re.MatchString(path)
}

// Endpoints lists every operation in the document whose path passes the
// filter, in deterministic path-then-method order.
func (f *Filter) Endpoints(doc *parser.Document) []Endpoint {
	paths := doc.Paths()
	if len(paths) == 0 {
		return nil
	}

	pathNames := make([]string, 0, len(paths))
	for name := range paths {
		pathNames = append(pathNames, name)
	}
	sort.Strings(pathNames)

	var endpoints []Endpoint
	for _, name := range pathNames {
		if !f.Matches(name) {
			continue
		}
		item, ok := paths[name].(map[string]any)
		if !ok {
			continue
		}
		methods := make([]string, 0, len(item))
		for key := range item {
			if parser.IsHTTPMethod(strings.ToLower(key)) {
				methods = append(methods, strings.ToLower(key))
			}
		}
		sort.Strings(methods)
		for _, method := range methods {
			endpoints = append(endpoints, Endpoint{Path: name, Method: method})
		}
	}
	return endpoints
}

// globToRegexp translates a glob into an anchored regular expression.
func globToRegexp(pattern string) string {
	var b strings.Builder
	b.WriteString("^")
	for _, r := range pattern {
		switch r {
		case '*':
			b.WriteString(".*")
		case '?':
			b.WriteString(".")
		default:
			b.WriteString(regexp.QuoteMeta(string(r)))
		}
	}
	b.WriteString("$")
	return b.String()
}
