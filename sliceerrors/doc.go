// Package sliceerrors provides structured error types for oaslice.
//
// These error types enable programmatic error handling via errors.Is() and
// errors.As(), allowing callers to distinguish between different categories
// of errors and implement appropriate recovery strategies. All errors are
// terminal: a dangling or malformed reference is a data problem, not a
// transient one, so no kind is retryable.
//
// # Error Categories
//
//   - ParseError: YAML/JSON parsing failures and structural issues
//   - ClassificationError: $ref strings that are not internal component pointers
//   - OperationNotFoundError: requested path/method absent from the document
//   - MissingComponentError: a classified reference with no matching definition
//   - CompletenessError: extracted output failed a completeness check
//   - ConversionError: version conversion failures between OAS families
//   - ResourceLimitError: resource exhaustion (reference depth)
//   - ConfigError: invalid configuration or input options
//
// # Usage with errors.Is
//
//	_, err := slicer.Slice(doc, "/users/{id}", "get")
//	if errors.Is(err, sliceerrors.ErrMissingComponent) {
//	    // The source document has a dangling reference.
//	}
package sliceerrors
