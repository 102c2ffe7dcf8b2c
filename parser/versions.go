package parser

import "strings"

// VersionFamily identifies an OAS 3.x version family.
// The slicing core is family-agnostic; the family is carried only for
// output metadata and for the converter.
type VersionFamily int

const (
	// FamilyUnknown means the document's openapi field is absent or unsupported.
	FamilyUnknown VersionFamily = iota
	// Family30 is the OAS 3.0.x family.
	Family30
	// Family31 is the OAS 3.1.x family.
	Family31
)

// String returns the conventional family label (e.g., "3.0.x").
func (f VersionFamily) String() string {
	switch f {
	case Family30:
		return "3.0.x"
	case Family31:
		return "3.1.x"
	default:
		return "unknown"
	}
}

// DefaultVersion returns the canonical concrete version for the family,
// used when rewriting a document's openapi field.
func (f VersionFamily) DefaultVersion() string {
	switch f {
	case Family30:
		return "3.0.0"
	case Family31:
		return "3.1.0"
	default:
		return ""
	}
}

// DetectVersionFamily parses an openapi version string (e.g., "3.0.3")
// into its family.
func DetectVersionFamily(openapi string) VersionFamily {
	switch {
	case strings.HasPrefix(openapi, "3.0."):
		return Family30
	case strings.HasPrefix(openapi, "3.1."):
		return Family31
	default:
		return FamilyUnknown
	}
}

// VersionFamilyFromLabel parses a family label ("3.0.x" or "3.1.x").
func VersionFamilyFromLabel(label string) (VersionFamily, bool) {
	switch label {
	case "3.0.x", "3.0":
		return Family30, true
	case "3.1.x", "3.1":
		return Family31, true
	default:
		return FamilyUnknown, false
	}
}
