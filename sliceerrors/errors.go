package sliceerrors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for use with errors.Is().
// These allow quick checks without type assertions.
var (
	// ErrParse indicates a parsing failure occurred.
	ErrParse = errors.New("parse error")

	// ErrNotAReference indicates a $ref string that is not an internal
	// component pointer (remote URL, other-file pointer, or malformed shape).
	ErrNotAReference = errors.New("not an internal component reference")

	// ErrOperationNotFound indicates the requested path/method selector
	// does not exist in the source document.
	ErrOperationNotFound = errors.New("operation not found")

	// ErrMissingComponent indicates a classified reference has no matching
	// entry in the document's component store.
	ErrMissingComponent = errors.New("missing component")

	// ErrUnresolvedInOutput indicates the assembled output contains a
	// reference that does not resolve within the output itself.
	ErrUnresolvedInOutput = errors.New("unresolved reference in output")

	// ErrMissingFromExtraction indicates a component the source operation
	// depends on is absent from the assembled output.
	ErrMissingFromExtraction = errors.New("component missing from extraction")

	// ErrConversion indicates a version conversion failure.
	ErrConversion = errors.New("conversion error")

	// ErrResourceLimit indicates a resource limit was exceeded.
	ErrResourceLimit = errors.New("resource limit exceeded")

	// ErrConfig indicates an invalid configuration.
	ErrConfig = errors.New("configuration error")
)

// ParseError represents a failure to parse an OpenAPI document.
// This includes YAML/JSON deserialization errors and structural issues.
type ParseError struct {
	// Path is the file path or source identifier
	Path string
	// Message describes the parsing failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ParseError) Error() string {
	msg := "parse error"
	if e.Path != "" {
		msg += " in " + e.Path
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ParseError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

// ClassificationError represents a $ref string that could not be classified
// as an internal component reference. External references are unsupported by
// design, so this is always a hard failure at the point of use.
type ClassificationError struct {
	// Ref is the raw $ref value that failed classification
	Ref string
	// Reason describes why the string was rejected
	// Common values: "external URL", "file reference", "not a component pointer",
	// "unknown component section", "empty component name"
	Reason string
	// Location is the JSON-path-like location of the use site, when known
	Location string
}

// Error returns a human-readable error message.
func (e *ClassificationError) Error() string {
	msg := "not an internal component reference"
	if e.Ref != "" {
		msg += ": " + e.Ref
	}
	if e.Reason != "" {
		msg += " (" + e.Reason + ")"
	}
	if e.Location != "" {
		msg += " at " + e.Location
	}
	return msg
}

// Unwrap returns nil as ClassificationError has no underlying cause.
func (e *ClassificationError) Unwrap() error {
	return nil
}

// Is reports whether target matches this error type.
func (e *ClassificationError) Is(target error) bool {
	return target == ErrNotAReference
}

// OperationNotFoundError represents a path/method selector that does not
// exist in the source document.
type OperationNotFoundError struct {
	// Path is the requested path template
	Path string
	// Method is the requested HTTP method (lowercase)
	Method string
}

// Error returns a human-readable error message.
func (e *OperationNotFoundError) Error() string {
	return fmt.Sprintf("operation not found: %s %s", strings.ToUpper(e.Method), e.Path)
}

// Unwrap returns nil as OperationNotFoundError has no underlying cause.
func (e *OperationNotFoundError) Unwrap() error {
	return nil
}

// Is reports whether target matches this error type.
func (e *OperationNotFoundError) Is(target error) bool {
	return target == ErrOperationNotFound
}

// MissingComponentError represents a classified reference whose
// (section, name) pair has no entry in the document's component store.
type MissingComponentError struct {
	// Section is the component section name (e.g., "schemas", "securitySchemes")
	Section string
	// Name is the component name within the section
	Name string
	// Ref is the original $ref string, when the reference came from a pointer.
	// Empty for name-based lookups such as security scheme requirements.
	Ref string
}

// Error returns a human-readable error message.
func (e *MissingComponentError) Error() string {
	msg := fmt.Sprintf("missing component: %s/%s", e.Section, e.Name)
	if e.Ref != "" {
		msg += " (referenced as " + e.Ref + ")"
	}
	return msg
}

// Unwrap returns nil as MissingComponentError has no underlying cause.
func (e *MissingComponentError) Unwrap() error {
	return nil
}

// Is reports whether target matches this error type.
func (e *MissingComponentError) Is(target error) bool {
	return target == ErrMissingComponent
}

// Completeness check identifiers used by CompletenessError.
const (
	// CheckClosure is the internal-closure check: every reference in the
	// output must resolve within the output's own component store.
	CheckClosure = "closure"

	// CheckFidelity is the source-fidelity check: every component the source
	// operation transitively requires must be present in the output.
	CheckFidelity = "fidelity"
)

// CompletenessError represents a failed completeness check on an assembled
// output document. It carries every offending reference, not just the first,
// so a single validation run gives a complete diagnostic.
type CompletenessError struct {
	// Check identifies which check failed: CheckClosure or CheckFidelity
	Check string
	// Refs holds the canonical pointer strings of all offending references
	Refs []string
}

// Error returns a human-readable error message.
func (e *CompletenessError) Error() string {
	var msg string
	switch e.Check {
	case CheckFidelity:
		msg = "component missing from extraction"
	default:
		msg = "unresolved reference in output"
	}
	if len(e.Refs) > 0 {
		msg += ": " + strings.Join(e.Refs, ", ")
	}
	return msg
}

// Unwrap returns nil as CompletenessError has no underlying cause.
func (e *CompletenessError) Unwrap() error {
	return nil
}

// Is reports whether target matches this error type.
// Matches ErrUnresolvedInOutput for the closure check and
// ErrMissingFromExtraction for the fidelity check.
func (e *CompletenessError) Is(target error) bool {
	switch e.Check {
	case CheckFidelity:
		return target == ErrMissingFromExtraction
	default:
		return target == ErrUnresolvedInOutput
	}
}

// ConversionError represents a failure during OAS version-family conversion.
type ConversionError struct {
	// SourceVersion is the source OAS version family (e.g., "3.0.x")
	SourceVersion string
	// TargetVersion is the target OAS version family
	TargetVersion string
	// Message describes the conversion failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ConversionError) Error() string {
	msg := "conversion error"
	if e.SourceVersion != "" && e.TargetVersion != "" {
		msg += fmt.Sprintf(" (%s -> %s)", e.SourceVersion, e.TargetVersion)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ConversionError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ConversionError) Is(target error) bool {
	return target == ErrConversion
}

// ResourceLimitError represents a resource exhaustion condition.
// This occurs when resolution exceeds configured limits.
type ResourceLimitError struct {
	// ResourceType identifies what limit was exceeded
	// Common values: "ref_depth"
	ResourceType string
	// Limit is the configured maximum value
	Limit int64
	// Actual is the value that exceeded the limit (may be 0 if unknown)
	Actual int64
	// Message provides additional context
	Message string
}

// Error returns a human-readable error message.
func (e *ResourceLimitError) Error() string {
	msg := "resource limit exceeded"
	if e.ResourceType != "" {
		msg += ": " + e.ResourceType
	}
	if e.Limit > 0 {
		msg += fmt.Sprintf(" (limit: %d", e.Limit)
		if e.Actual > 0 {
			msg += fmt.Sprintf(", actual: %d", e.Actual)
		}
		msg += ")"
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

// Unwrap returns nil as ResourceLimitError has no underlying cause.
func (e *ResourceLimitError) Unwrap() error {
	return nil
}

// Is reports whether target matches this error type.
func (e *ResourceLimitError) Is(target error) bool {
	return target == ErrResourceLimit
}

// ConfigError represents an invalid configuration or input.
// This includes invalid options, missing required inputs, and conflicting settings.
type ConfigError struct {
	// Option is the name of the problematic configuration option
	Option string
	// Value is the invalid value that was provided (may be nil)
	Value any
	// Message describes the configuration error
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ConfigError) Error() string {
	msg := "configuration error"
	if e.Option != "" {
		msg += " for " + e.Option
	}
	if e.Value != nil {
		msg += fmt.Sprintf(" (value: %v)", e.Value)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ConfigError) Is(target error) bool {
	return target == ErrConfig
}
