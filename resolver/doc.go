// Package resolver computes the transitive component closure for a single
// operation of an OpenAPI document.
//
// Resolution seeds a breadth-first work queue from every location where a
// reference may legally appear in the target operation: the operation body
// itself (parameters, request body, responses, response headers, links,
// callbacks, and anything nested inside them), the path-item-level parameter
// list, and the operation's security requirements, which name their schemes
// rather than pointing at them. Each popped reference is looked up in the document's
// component store, its body recorded in the run's ResolvedSet, and the body
// scanned for further references; a visited set keyed on (kind, name) makes
// traversal cycle-safe.
//
// A reference that cannot be classified as an internal component pointer, or
// that points at a definition the document does not contain, aborts the run
// with a structured error carrying the offender. Resolution never skips a
// bad reference: a dangling pointer in the source means the extraction
// cannot be trusted.
//
// A resolution run only reads the shared Document and writes to its own
// ResolvedSet, so any number of runs over the same Document may execute
// concurrently without locking.
package resolver
