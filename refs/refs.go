package refs

import (
	"fmt"
	"sort"
	"strings"

	"github.com/erraggy/oaslice/sliceerrors"
)

// componentPrefix is the pointer prefix shared by every internal component reference.
const componentPrefix = "#/components/"

// Kind identifies one of the eight OAS 3.x component sections.
// It is a closed enumeration: a reference to any other section is rejected
// at classification time rather than carried as an open string.
type Kind int

const (
	// KindSchema is the components/schemas section.
	KindSchema Kind = iota
	// KindHeader is the components/headers section.
	KindHeader
	// KindParameter is the components/parameters section.
	KindParameter
	// KindResponse is the components/responses section.
	KindResponse
	// KindRequestBody is the components/requestBodies section.
	KindRequestBody
	// KindSecurityScheme is the components/securitySchemes section.
	KindSecurityScheme
	// KindLink is the components/links section.
	KindLink
	// KindCallback is the components/callbacks section.
	KindCallback
)

// sectionNames maps each Kind to its document section key, in declaration order.
var sectionNames = [...]string{
	KindSchema:         "schemas",
	KindHeader:         "headers",
	KindParameter:      "parameters",
	KindResponse:       "responses",
	KindRequestBody:    "requestBodies",
	KindSecurityScheme: "securitySchemes",
	KindLink:           "links",
	KindCallback:       "callbacks",
}

// Section returns the component section key for the kind (e.g., "schemas").
func (k Kind) Section() string {
	if k < 0 || int(k) >= len(sectionNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return sectionNames[k]
}

// String implements fmt.Stringer using the section key.
func (k Kind) String() string {
	return k.Section()
}

// AllKinds returns every component kind in stable declaration order.
func AllKinds() []Kind {
	return []Kind{
		KindSchema,
		KindHeader,
		KindParameter,
		KindResponse,
		KindRequestBody,
		KindSecurityScheme,
		KindLink,
		KindCallback,
	}
}

// KindFromSection looks up a Kind by its component section key.
func KindFromSection(section string) (Kind, bool) {
	for k, name := range sectionNames {
		if name == section {
			return Kind(k), true
		}
	}
	return 0, false
}

// Reference is a typed address into the component store.
// Two references identify the same entity iff both fields match; names are
// unique within a kind but may collide across kinds.
type Reference struct {
	// Kind is the component section the reference points into.
	Kind Kind
	// Name is the definition's key within that section, fully unescaped.
	Name string
}

// String returns the canonical pointer form of the reference, re-escaping
// RFC 6901 tokens in the name so the result round-trips through Classify.
func (r Reference) String() string {
	name := strings.ReplaceAll(r.Name, "~", "~0")
	name = strings.ReplaceAll(name, "/", "~1")
	return componentPrefix + r.Kind.Section() + "/" + name
}

// Classify parses a raw $ref string into a typed Reference.
//
// Only internal component pointers are accepted. Any other shape (remote
// URL, other-file pointer, non-component fragment, unknown section, or empty
// name) returns a *sliceerrors.ClassificationError describing the rejection.
func Classify(raw string) (Reference, error) {
	switch {
	case raw == "":
		return Reference{}, &sliceerrors.ClassificationError{Ref: raw, Reason: "empty reference"}
	case strings.HasPrefix(raw, "http://"), strings.HasPrefix(raw, "https://"):
		return Reference{}, &sliceerrors.ClassificationError{Ref: raw, Reason: "external URL"}
	case !strings.HasPrefix(raw, "#"):
		return Reference{}, &sliceerrors.ClassificationError{Ref: raw, Reason: "file reference"}
	case !strings.HasPrefix(raw, componentPrefix):
		return Reference{}, &sliceerrors.ClassificationError{Ref: raw, Reason: "not a component pointer"}
	}

	rest := strings.TrimPrefix(raw, componentPrefix)
	section, name, found := strings.Cut(rest, "/")
	if !found || name == "" {
		return Reference{}, &sliceerrors.ClassificationError{Ref: raw, Reason: "empty component name"}
	}

	kind, ok := KindFromSection(section)
	if !ok {
		return Reference{}, &sliceerrors.ClassificationError{Ref: raw, Reason: "unknown component section"}
	}

	// Everything after the section segment is the name. Names are opaque and
	// may contain raw separators; RFC 6901 tokens are unescaped (~1 before ~0).
	name = strings.ReplaceAll(name, "~1", "/")
	name = strings.ReplaceAll(name, "~0", "~")

	return Reference{Kind: kind, Name: name}, nil
}

// VisitFunc is called for each $ref use site found by Scan. Returning a
// non-nil error aborts the scan and propagates the error to the caller.
type VisitFunc func(raw string, location string) error

// Scan recursively walks a decoded document value (maps, sequences, scalars)
// and calls fn for every location where a $ref pointer appears. Map keys are
// visited in sorted order so discovery order is stable for identical inputs.
//
// Scan reports use sites only; it does not classify them. A map is treated
// as a use site when it holds a string value under the "$ref" key. A
// non-string value under that key is not a pointer (a property may be
// literally named "$ref") and is walked like any other field.
func Scan(value any, fn VisitFunc) error {
	return scan(value, "$", fn)
}

func scan(value any, location string, fn VisitFunc) error {
	switch v := value.(type) {
	case map[string]any:
		raw, isUseSite := v["$ref"].(string)
		if isUseSite {
			if err := fn(raw, location); err != nil {
				return err
			}
		}
		keys := make([]string, 0, len(v))
		for k := range v {
			if k == "$ref" && isUseSite {
				continue
			}
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if err := scan(v[k], location+"."+k, fn); err != nil {
				return err
			}
		}

	case []any:
		for i, item := range v {
			if err := scan(item, fmt.Sprintf("%s[%d]", location, i), fn); err != nil {
				return err
			}
		}
	}

	return nil
}
