// Package slicer extracts a single operation from an OpenAPI document into
// a standalone, self-contained document.
//
// Slice orchestrates the full pipeline for one (path, method) selector:
// resolve the transitive component closure, assemble the output document,
// and run both completeness checks. No output ever leaves the package with
// a failed check; a failed extraction returns an error and the assembled
// document is discarded.
//
// Assemble is also exported on its own for callers that want to separate
// assembly from validation. It is pure: the output document is built from
// deep copies and shares no mutable state with the source document or the
// resolved set.
package slicer
