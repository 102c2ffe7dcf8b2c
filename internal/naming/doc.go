// Package naming derives filesystem-safe names from OpenAPI path templates.
//
// Batch extraction writes one file per operation, so every path template
// must map to a deterministic, collision-friendly filename. The mapping
// keeps only letters, digits, and hyphens: "/users/{id}" becomes
// "users-id".
//
// As an internal package, these functions are not part of the public API
// and may change without notice.
package naming
