package converter

// Severity classifies how serious a conversion issue is.
type Severity int

const (
	// SeverityInfo notes a conversion choice with no fidelity loss.
	SeverityInfo Severity = iota
	// SeverityWarning marks a lossy or best-effort transformation.
	SeverityWarning
	// SeverityCritical marks a construct the target family cannot express.
	SeverityCritical
)

// String returns the severity's name.
func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "warning"
	case SeverityCritical:
		return "critical"
	default:
		return "info"
	}
}

// Issue is one conversion finding: what happened, where, and how bad it is.
type Issue struct {
	// Severity classifies the issue.
	Severity Severity
	// Path locates the construct in the source document, in dotted form
	// (for example "components.schemas.Pet").
	Path string
	// Message describes the transformation or loss.
	Message string
}
