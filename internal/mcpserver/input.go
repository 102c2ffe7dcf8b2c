package mcpserver

import (
	"fmt"

	"github.com/erraggy/oaslice/parser"
)

// specInput is the shared "where is the document" input block: either a file
// path or inline content.
type specInput struct {
	File    string `json:"file,omitempty"    jsonschema:"Path to an OAS file on disk"`
	Content string `json:"content,omitempty" jsonschema:"Inline OAS document content (JSON or YAML)"`
}

// loadSpec parses the referenced document.
func loadSpec(input specInput) (*parser.ParseResult, error) {
	switch {
	case input.File != "" && input.Content != "":
		return nil, fmt.Errorf("provide either file or content, not both")
	case input.File != "":
		return parser.ParseWithOptions(parser.WithFilePath(input.File))
	case input.Content != "":
		return parser.ParseWithOptions(
			parser.WithBytes([]byte(input.Content)),
			parser.WithSourceName("inline"),
		)
	default:
		return nil, fmt.Errorf("one of file or content must be provided")
	}
}

// familyFromLabel resolves an optional version-family label like "3.1.x".
// Empty input returns FamilyUnknown with no error.
func familyFromLabel(label string) (parser.VersionFamily, error) {
	if label == "" {
		return parser.FamilyUnknown, nil
	}
	family, ok := parser.VersionFamilyFromLabel(label)
	if !ok {
		return parser.FamilyUnknown, fmt.Errorf("unknown version family %q (use 3.0.x or 3.1.x)", label)
	}
	return family, nil
}
