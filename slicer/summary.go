package slicer

import (
	"sort"
	"strings"

	"github.com/erraggy/oaslice/parser"
	"github.com/erraggy/oaslice/refs"
	"github.com/erraggy/oaslice/resolver"
)

// Summary describes one extracted operation. Batch runs collect these for
// the extraction index.
type Summary struct {
	// Path and Method identify the extracted operation. Method is lowercase.
	Path   string
	Method string

	// OperationID, Title, and Description come from the operation object and
	// may be empty.
	OperationID string
	Title       string
	Description string

	// Tags are the operation's tags in document order.
	Tags []string

	// ResponseCodes lists the declared response keys, sorted.
	ResponseCodes []string

	// Deprecated reflects the operation's deprecated flag.
	Deprecated bool

	// SecurityRequired is true when the operation's effective security
	// requirements name at least one scheme.
	SecurityRequired bool

	// ComponentCounts holds the number of extracted components per section.
	ComponentCounts map[refs.Kind]int
}

// TotalComponents returns the number of components across all sections.
func (s Summary) TotalComponents() int {
	total := 0
	for _, n := range s.ComponentCounts {
		total += n
	}
	return total
}

// TagList returns the tags joined with commas, for flat index output.
func (s Summary) TagList() string {
	return strings.Join(s.Tags, ",")
}

func newSummary(doc *parser.Document, path, method string, set *resolver.ResolvedSet) Summary {
	s := Summary{
		Path:            path,
		Method:          method,
		ComponentCounts: set.Counts(),
	}
	s.SecurityRequired = set.Count(refs.KindSecurityScheme) > 0

	operation, ok := doc.Operation(path, method)
	if !ok {
		return s
	}
	s.OperationID, _ = operation["operationId"].(string)
	s.Title, _ = operation["summary"].(string)
	s.Description, _ = operation["description"].(string)
	s.Deprecated, _ = operation["deprecated"].(bool)

	if tags, ok := operation["tags"].([]any); ok {
		for _, tag := range tags {
			if name, ok := tag.(string); ok {
				s.Tags = append(s.Tags, name)
			}
		}
	}
	if responses, ok := operation["responses"].(map[string]any); ok {
		for code := range responses {
			s.ResponseCodes = append(s.ResponseCodes, code)
		}
		sort.Strings(s.ResponseCodes)
	}
	return s
}
