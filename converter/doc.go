// Package converter transforms OpenAPI documents between the 3.0.x and
// 3.1.x families.
//
// Conversion is lossy in places. Every best-effort or dropped construct is
// reported as an Issue with a severity and the document location it was
// found at, so callers can decide whether the result is acceptable. In
// strict mode, constructs that cannot be expressed in the target family
// (JSON Schema conditionals going to 3.0.x) are critical and fail the
// conversion instead of being noted.
//
// The input document is never modified; conversion works on a deep copy.
package converter
