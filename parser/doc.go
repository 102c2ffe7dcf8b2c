// Package parser loads OpenAPI 3.x documents for slicing.
//
// The parser decodes YAML or JSON into a generic, version-family-agnostic
// Document: a read-only view over the decoded mapping with typed accessors
// for the pieces slicing cares about (path items, operations, the component
// store, and security requirements). No 3.0-vs-3.1 shape is special-cased;
// version conversion is the converter package's concern.
//
// Parse never resolves references. Reference classification and transitive
// resolution belong to the refs and resolver packages.
//
//	result, err := parser.ParseWithOptions(parser.WithFilePath("api.yaml"))
//	if err != nil {
//		log.Fatal(err)
//	}
//	op, ok := result.Document.Operation("/users/{id}", "get")
package parser
