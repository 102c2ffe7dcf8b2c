// Package refs classifies OpenAPI $ref strings into typed component
// references and scans decoded document values for reference use sites.
//
// Only the internal component-pointer shape is recognized:
//
//	#/components/<section>/<name>
//
// where <section> is one of the eight OAS 3.x component sections (schemas,
// headers, parameters, responses, requestBodies, securitySchemes, links,
// callbacks). Remote URLs, other-file pointers, and malformed shapes are
// rejected with a structured classification error; callers are expected to
// treat that as a hard failure, since external references are unsupported.
//
// Component names are opaque strings. Names containing pointer separators
// are preserved: everything after the section segment belongs to the name,
// and RFC 6901 escape tokens (~1 for '/', ~0 for '~') are unescaped.
//
// All functions in this package are pure and perform no I/O.
package refs
