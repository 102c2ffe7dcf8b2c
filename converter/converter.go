package converter

import (
	"github.com/erraggy/oaslice/parser"
	"github.com/erraggy/oaslice/sliceerrors"
)

// Result holds the outcome of one conversion.
type Result struct {
	// Document is the converted document. It is present even on a failed
	// strict-mode conversion so callers can inspect what was produced.
	Document *parser.Document
	// SourceFamily and TargetFamily record the conversion direction.
	SourceFamily parser.VersionFamily
	TargetFamily parser.VersionFamily
	// Issues lists every finding, in document-walk order.
	Issues []Issue
	// WarningCount and CriticalCount summarize Issues by severity.
	WarningCount  int
	CriticalCount int
	// Success is false when any critical issue was found.
	Success bool
}

// Err returns nil on success, otherwise a *sliceerrors.ConversionError
// describing the first critical issue.
func (r *Result) Err() error {
	if r.Success {
		return nil
	}
	for _, issue := range r.Issues {
		if issue.Severity == SeverityCritical {
			return &sliceerrors.ConversionError{
				SourceVersion: r.SourceFamily.String(),
				TargetVersion: r.TargetFamily.String(),
				Message:       issue.Message + " at " + issue.Path,
			}
		}
	}
	return &sliceerrors.ConversionError{
		SourceVersion: r.SourceFamily.String(),
		TargetVersion: r.TargetFamily.String(),
		Message:       "conversion failed",
	}
}

// Converter converts documents between version families.
type Converter struct {
	// StrictMode escalates unconvertible constructs from warnings to
	// critical issues.
	StrictMode bool
	// Logger receives conversion diagnostics. Defaults to no logging.
	Logger parser.Logger
}

// New creates a Converter with default settings.
func New() *Converter {
	return &Converter{Logger: parser.NopLogger{}}
}

// Convert transforms doc into the target version family. The returned error
// covers caller mistakes only (nil document, unknown families, identity
// conversions); transformation findings live in Result.Issues.
func (c *Converter) Convert(doc *parser.Document, target parser.VersionFamily) (*Result, error) {
	if doc == nil {
		return nil, &sliceerrors.ConfigError{Option: "document", Message: "conversion requires a document"}
	}
	source := doc.VersionFamily()
	if source == parser.FamilyUnknown {
		return nil, &sliceerrors.ConversionError{
			TargetVersion: target.String(),
			Message:       "source document version is not a supported 3.x release",
		}
	}
	if target != parser.Family30 && target != parser.Family31 {
		return nil, &sliceerrors.ConversionError{
			SourceVersion: source.String(),
			Message:       "unknown target version family",
		}
	}
	if source == target {
		return nil, &sliceerrors.ConversionError{
			SourceVersion: source.String(),
			TargetVersion: target.String(),
			Message:       "source and target families are identical",
		}
	}

	logger := c.Logger
	if logger == nil {
		logger = parser.NopLogger{}
	}

	result := &Result{
		SourceFamily: source,
		TargetFamily: target,
	}
	out := doc.Clone()
	root := out.Root()

	if target == parser.Family31 {
		upgradeTo31(root, result)
	} else {
		downgradeTo30(root, result, c.StrictMode)
	}
	root["openapi"] = target.DefaultVersion()

	for _, issue := range result.Issues {
		switch issue.Severity {
		case SeverityWarning:
			result.WarningCount++
		case SeverityCritical:
			result.CriticalCount++
		}
	}
	result.Document = out
	result.Success = result.CriticalCount == 0

	logger.Debug("conversion finished",
		"source", source.String(),
		"target", target.String(),
		"warnings", result.WarningCount,
		"critical", result.CriticalCount)
	return result, nil
}

// Convert converts doc with default settings.
func Convert(doc *parser.Document, target parser.VersionFamily) (*Result, error) {
	return New().Convert(doc, target)
}
