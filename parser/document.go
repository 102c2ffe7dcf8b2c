package parser

import (
	"encoding/json"
	"strings"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/oaslice/refs"
)

// httpMethods are the keys of a path item object that denote operations.
// Everything else (parameters, servers, summary, extensions) is shared
// path-item metadata.
var httpMethods = map[string]bool{
	"get":     true,
	"put":     true,
	"post":    true,
	"delete":  true,
	"options": true,
	"head":    true,
	"patch":   true,
	"trace":   true,
}

// IsHTTPMethod reports whether key names an operation inside a path item.
// The check is case-insensitive; OAS path items use lowercase keys.
func IsHTTPMethod(key string) bool {
	return httpMethods[strings.ToLower(key)]
}

// Document is a read-only view over a decoded OpenAPI document.
//
// The underlying value is the generic mapping produced by the YAML/JSON
// decoder; bodies stay arbitrary nested structures so the same Document works
// for both the 3.0.x and 3.1.x families. A Document is never mutated by the
// slicing pipeline — resolution and assembly copy what they need.
type Document struct {
	root map[string]any
}

// NewDocument wraps an already-decoded document mapping.
// The caller must not mutate root while the Document is in use.
func NewDocument(root map[string]any) *Document {
	if root == nil {
		root = map[string]any{}
	}
	return &Document{root: root}
}

// Root returns the underlying document mapping.
func (d *Document) Root() map[string]any {
	return d.root
}

// OpenAPI returns the value of the document's "openapi" version field,
// or "" when absent.
func (d *Document) OpenAPI() string {
	v, _ := d.root["openapi"].(string)
	return v
}

// VersionFamily returns the OAS version family declared by the document.
func (d *Document) VersionFamily() VersionFamily {
	return DetectVersionFamily(d.OpenAPI())
}

// Info returns the document's info object, or nil when absent.
func (d *Document) Info() map[string]any {
	v, _ := d.root["info"].(map[string]any)
	return v
}

// Paths returns the document's paths object, or nil when absent.
func (d *Document) Paths() map[string]any {
	v, _ := d.root["paths"].(map[string]any)
	return v
}

// PathItem returns the path item object for a path template.
func (d *Document) PathItem(path string) (map[string]any, bool) {
	item, ok := d.Paths()[path].(map[string]any)
	return item, ok
}

// Operation returns the operation object for a path template and HTTP
// method. The method is matched case-insensitively against the lowercase
// path item keys.
func (d *Document) Operation(path, method string) (map[string]any, bool) {
	item, ok := d.PathItem(path)
	if !ok {
		return nil, false
	}
	method = strings.ToLower(method)
	if !IsHTTPMethod(method) {
		return nil, false
	}
	op, ok := item[method].(map[string]any)
	return op, ok
}

// Components returns the document's component store, or nil when absent.
func (d *Document) Components() map[string]any {
	v, _ := d.root["components"].(map[string]any)
	return v
}

// ComponentSection returns the name→definition mapping for one component
// kind, or nil when the section is absent.
func (d *Document) ComponentSection(kind refs.Kind) map[string]any {
	v, _ := d.Components()[kind.Section()].(map[string]any)
	return v
}

// Component looks up a definition body by typed reference.
func (d *Document) Component(ref refs.Reference) (any, bool) {
	section := d.ComponentSection(ref.Kind)
	if section == nil {
		return nil, false
	}
	body, ok := section[ref.Name]
	return body, ok
}

// GlobalSecurity returns the document-level security requirement list and
// whether the field is present at all. Presence matters: an operation with
// no security field inherits this list, while an explicitly empty operation
// list means "no security".
func (d *Document) GlobalSecurity() ([]any, bool) {
	raw, ok := d.root["security"]
	if !ok {
		return nil, false
	}
	list, _ := raw.([]any)
	return list, true
}

// Clone returns a deep copy of the document. The copy shares no mutable
// state with the original.
func (d *Document) Clone() *Document {
	cloned, _ := DeepCopyValue(d.root).(map[string]any)
	return NewDocument(cloned)
}

// EncodeYAML marshals the document to YAML.
func (d *Document) EncodeYAML() ([]byte, error) {
	return yaml.Marshal(d.root)
}

// EncodeJSON marshals the document to indented JSON.
func (d *Document) EncodeJSON() ([]byte, error) {
	data, err := json.MarshalIndent(d.root, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// DeepCopyValue returns a deep copy of a decoded document value.
// Mappings and sequences are copied recursively; scalars are returned as-is.
func DeepCopyValue(value any) any {
	switch v := value.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, val := range v {
			out[k] = DeepCopyValue(val)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = DeepCopyValue(item)
		}
		return out
	default:
		return v
	}
}
