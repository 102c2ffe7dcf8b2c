package slicer

import (
	"strings"

	"github.com/erraggy/oaslice/parser"
	"github.com/erraggy/oaslice/resolver"
	"github.com/erraggy/oaslice/sliceerrors"
)

// defaultInfo is used when the source document carries no info object.
// OAS requires info, so this only happens for loosely assembled inputs.
var defaultInfo = map[string]any{
	"title":   "Extracted API",
	"version": "1.0.0",
}

// Assemble builds a standalone document containing exactly one path+method
// entry plus every component in the resolved set. Component sections with
// zero entries are omitted entirely. All bodies are copied by value.
//
// Path-item-level parameters are carried into the output path item: they
// apply to the extracted operation, and dropping them would change its
// meaning.
func Assemble(doc *parser.Document, path, method string, set *resolver.ResolvedSet) (*parser.Document, error) {
	method = strings.ToLower(method)
	operation, ok := doc.Operation(path, method)
	if !ok {
		return nil, &sliceerrors.OperationNotFoundError{Path: path, Method: method}
	}

	pathItem := map[string]any{
		method: parser.DeepCopyValue(operation),
	}
	if item, ok := doc.PathItem(path); ok {
		if params, has := item["parameters"]; has {
			pathItem["parameters"] = parser.DeepCopyValue(params)
		}
	}

	openapi := doc.OpenAPI()
	if openapi == "" {
		openapi = parser.Family30.DefaultVersion()
	}
	info := doc.Info()
	if info == nil {
		info = defaultInfo
	}

	root := map[string]any{
		"openapi": openapi,
		"info":    parser.DeepCopyValue(info),
		"paths": map[string]any{
			path: pathItem,
		},
	}
	if !set.IsEmpty() {
		root["components"] = set.ComponentsValue()
	}

	return parser.NewDocument(root), nil
}
