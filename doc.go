// Package oaslice extracts single operations from OpenAPI Specification (OAS)
// documents into standalone, self-contained documents.
//
// Given a source document and a (path, method) selector, oaslice computes the
// transitive closure of every reusable component the operation depends on,
// across all eight OAS component categories, assembles a minimal standalone
// document, and proves the result is complete before it is ever written out.
//
// # Overview
//
// The library consists of these primary packages:
//
//   - parser: Load and query OAS 3.x documents (YAML or JSON)
//   - refs: Classify $ref strings into typed component references
//   - resolver: Compute the transitive component closure for one operation
//   - slicer: Assemble and orchestrate single-operation extraction
//   - validator: Prove extracted documents are self-contained and faithful
//   - converter: Convert documents between the 3.0.x and 3.1.x families
//   - batch: Extract many operations concurrently with filtering
//   - indexer: Maintain a CSV index of extracted operations
//
// # Quick Start
//
// Extract one operation from a specification:
//
//	import (
//		"github.com/erraggy/oaslice/parser"
//		"github.com/erraggy/oaslice/slicer"
//	)
//
//	result, err := parser.ParseWithOptions(parser.WithFilePath("api.yaml"))
//	if err != nil {
//		log.Fatal(err)
//	}
//	sliced, err := slicer.Slice(result.Document, "/users/{id}", "get")
//	if err != nil {
//		log.Fatal(err)
//	}
//	data, _ := sliced.Document.EncodeYAML()
//	os.WriteFile("users-id-get.yaml", data, 0o600)
//
// Only references internal to the source document are supported; references
// to other files or remote URLs are a hard error.
package oaslice
