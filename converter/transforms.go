package converter

import (
	"sort"
	"strconv"
	"strings"
)

// schemaNestingKeys are the schema keywords whose values hold nested schemas.
var schemaNestingKeys = []string{"properties", "items", "allOf", "oneOf", "anyOf", "additionalProperties", "not"}

// upgradeTo31 applies the 3.0.x to 3.1.x transformations in place.
func upgradeTo31(root map[string]any, result *Result) {
	eachSchema(root, func(path string, schema map[string]any) {
		nullableToTypeArray(path, schema, result)
	})
	eachComponentSchema(root, func(path string, schema map[string]any) {
		discriminatorPropertyToMapping(path, schema, result)
	})
}

// downgradeTo30 applies the 3.1.x to 3.0.x transformations in place.
func downgradeTo30(root map[string]any, result *Result, strict bool) {
	eachSchema(root, func(path string, schema map[string]any) {
		typeArrayToNullable(path, schema, result)
	})
	eachComponentSchema(root, func(path string, schema map[string]any) {
		discriminatorMappingToProperty(path, schema, result)
	})

	if _, has := root["webhooks"]; has {
		delete(root, "webhooks")
		result.addIssue(SeverityWarning, "webhooks", "webhooks removed; 3.0.x has no webhook support")
	}
	removeMutualTLS(root, result)
	moveLicenseIdentifier(root, result)
	reportConditionals(root, result, strict)
}

func (r *Result) addIssue(severity Severity, path, message string) {
	r.Issues = append(r.Issues, Issue{Severity: severity, Path: path, Message: message})
}

// nullableToTypeArray rewrites nullable: true as a type array with "null".
func nullableToTypeArray(path string, schema map[string]any, result *Result) {
	if schema["nullable"] != true {
		return
	}
	delete(schema, "nullable")
	switch current := schema["type"].(type) {
	case string:
		schema["type"] = []any{current, "null"}
	case []any:
		if !containsString(current, "null") {
			schema["type"] = append(current, "null")
		}
	default:
		schema["type"] = []any{"object", "null"}
	}
	result.addIssue(SeverityInfo, path, "nullable rewritten as a null type entry")
}

// typeArrayToNullable rewrites a type array containing "null" as nullable: true.
func typeArrayToNullable(path string, schema map[string]any, result *Result) {
	types, ok := schema["type"].([]any)
	if !ok || !containsString(types, "null") {
		return
	}
	var rest []any
	for _, t := range types {
		if t != "null" {
			rest = append(rest, t)
		}
	}
	switch len(rest) {
	case 0:
		delete(schema, "type")
	case 1:
		schema["type"] = rest[0]
	default:
		// 3.0.x has no multi-type support; keep the first and flag the loss.
		schema["type"] = rest[0]
		result.addIssue(SeverityWarning, path, "multi-type schema narrowed to its first type")
	}
	schema["nullable"] = true
	result.addIssue(SeverityInfo, path, "null type entry rewritten as nullable")
}

// discriminatorPropertyToMapping synthesizes a discriminator mapping from the
// schema's oneOf references when the mapping is absent.
func discriminatorPropertyToMapping(path string, schema map[string]any, result *Result) {
	discriminator, ok := schema["discriminator"].(map[string]any)
	if !ok {
		return
	}
	if _, has := discriminator["propertyName"]; !has {
		return
	}
	if _, has := discriminator["mapping"]; has {
		return
	}
	variants, ok := schema["oneOf"].([]any)
	if !ok {
		return
	}
	mapping := map[string]any{}
	for _, variant := range variants {
		vm, ok := variant.(map[string]any)
		if !ok {
			continue
		}
		ref, ok := vm["$ref"].(string)
		if !ok || ref == "" {
			continue
		}
		parts := strings.Split(ref, "/")
		mapping[parts[len(parts)-1]] = ref
	}
	if len(mapping) > 0 {
		discriminator["mapping"] = mapping
		result.addIssue(SeverityInfo, path, "discriminator mapping synthesized from oneOf")
	}
}

// discriminatorMappingToProperty drops the explicit mapping, which 3.0.x
// tooling commonly mishandles, keeping only the property name.
func discriminatorMappingToProperty(path string, schema map[string]any, result *Result) {
	discriminator, ok := schema["discriminator"].(map[string]any)
	if !ok {
		return
	}
	if _, has := discriminator["mapping"]; !has {
		return
	}
	if _, has := discriminator["propertyName"]; !has {
		discriminator["propertyName"] = "type"
	}
	delete(discriminator, "mapping")
	result.addIssue(SeverityWarning, path, "discriminator mapping dropped")
}

// removeMutualTLS deletes mutualTLS security schemes, which 3.0.x lacks.
func removeMutualTLS(root map[string]any, result *Result) {
	components, ok := root["components"].(map[string]any)
	if !ok {
		return
	}
	schemes, ok := components["securitySchemes"].(map[string]any)
	if !ok {
		return
	}
	var names []string
	for name, scheme := range schemes {
		sm, ok := scheme.(map[string]any)
		if ok && sm["type"] == "mutualTLS" {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	for _, name := range names {
		delete(schemes, name)
		result.addIssue(SeverityWarning, "components.securitySchemes."+name, "mutualTLS security scheme removed")
	}
}

// moveLicenseIdentifier folds the 3.1-only license.identifier into the name.
func moveLicenseIdentifier(root map[string]any, result *Result) {
	info, ok := root["info"].(map[string]any)
	if !ok {
		return
	}
	license, ok := info["license"].(map[string]any)
	if !ok {
		return
	}
	identifier, has := license["identifier"]
	if !has {
		return
	}
	if _, hasName := license["name"]; !hasName {
		license["name"] = identifier
	}
	delete(license, "identifier")
	result.addIssue(SeverityInfo, "info.license", "license identifier folded into name")
}

// reportConditionals flags JSON Schema if/then/else constructs, which have no
// 3.0.x equivalent. Strict mode treats them as critical.
func reportConditionals(root map[string]any, result *Result, strict bool) {
	severity := SeverityWarning
	message := "JSON Schema conditional has no 3.0.x equivalent; left as-is"
	if strict {
		severity = SeverityCritical
		message = "JSON Schema conditional has no 3.0.x equivalent"
	}
	eachSchema(root, func(path string, schema map[string]any) {
		for _, keyword := range []string{"if", "then", "else"} {
			if _, has := schema[keyword]; has {
				result.addIssue(severity, path, message)
				return
			}
		}
	})
}

// eachSchema visits every schema object in the document: all component
// schemas plus parameter, request body, response, and header schemas under
// paths, recursing through nested schema keywords. Parameters declared at the
// path-item level are visited alongside each operation's own.
func eachSchema(root map[string]any, visit func(path string, schema map[string]any)) {
	eachComponentSchema(root, func(path string, schema map[string]any) {
		walkSchema(path, schema, visit)
	})

	paths, ok := root["paths"].(map[string]any)
	if !ok {
		return
	}
	pathNames := sortedKeys(paths)
	for _, pathName := range pathNames {
		item, ok := paths[pathName].(map[string]any)
		if !ok {
			continue
		}
		if params, ok := item["parameters"].([]any); ok {
			walkParameterSchemas("paths."+pathName+".parameters", params, visit)
		}
		for _, field := range sortedKeys(item) {
			operation, ok := item[field].(map[string]any)
			if !ok {
				continue
			}
			location := "paths." + pathName + "." + field
			walkEmbeddedSchemas(location, operation, visit)
		}
	}
}

// walkEmbeddedSchemas finds schema objects hanging off an operation: in
// parameters, request body content, and response content and headers.
func walkEmbeddedSchemas(location string, operation map[string]any, visit func(string, map[string]any)) {
	if params, ok := operation["parameters"].([]any); ok {
		walkParameterSchemas(location+".parameters", params, visit)
	}
	if body, ok := operation["requestBody"].(map[string]any); ok {
		walkContentSchemas(location+".requestBody", body, visit)
	}
	if responses, ok := operation["responses"].(map[string]any); ok {
		for _, code := range sortedKeys(responses) {
			response, ok := responses[code].(map[string]any)
			if !ok {
				continue
			}
			walkContentSchemas(location+".responses."+code, response, visit)
			if headers, ok := response["headers"].(map[string]any); ok {
				for _, name := range sortedKeys(headers) {
					header, ok := headers[name].(map[string]any)
					if !ok {
						continue
					}
					if schema, ok := header["schema"].(map[string]any); ok {
						walkSchema(location+".responses."+code+".headers."+name+".schema", schema, visit)
					}
				}
			}
		}
	}
}

// walkParameterSchemas visits the schema of each parameter in a parameter
// list, whether it sits on an operation or on the path item itself.
func walkParameterSchemas(location string, params []any, visit func(string, map[string]any)) {
	for i, param := range params {
		pm, ok := param.(map[string]any)
		if !ok {
			continue
		}
		if schema, ok := pm["schema"].(map[string]any); ok {
			walkSchema(location+"["+strconv.Itoa(i)+"].schema", schema, visit)
		}
	}
}

func walkContentSchemas(location string, holder map[string]any, visit func(string, map[string]any)) {
	content, ok := holder["content"].(map[string]any)
	if !ok {
		return
	}
	for _, mediaType := range sortedKeys(content) {
		media, ok := content[mediaType].(map[string]any)
		if !ok {
			continue
		}
		if schema, ok := media["schema"].(map[string]any); ok {
			walkSchema(location+".content."+mediaType+".schema", schema, visit)
		}
	}
}

// eachComponentSchema visits each top-level component schema without
// recursing into it.
func eachComponentSchema(root map[string]any, visit func(path string, schema map[string]any)) {
	components, ok := root["components"].(map[string]any)
	if !ok {
		return
	}
	schemas, ok := components["schemas"].(map[string]any)
	if !ok {
		return
	}
	for _, name := range sortedKeys(schemas) {
		if schema, ok := schemas[name].(map[string]any); ok {
			visit("components.schemas."+name, schema)
		}
	}
}

// walkSchema visits a schema and everything nested under its schema keywords.
func walkSchema(path string, schema map[string]any, visit func(string, map[string]any)) {
	visit(path, schema)
	for _, key := range schemaNestingKeys {
		child, has := schema[key]
		if !has {
			continue
		}
		switch typed := child.(type) {
		case map[string]any:
			if key == "properties" {
				for _, name := range sortedKeys(typed) {
					if prop, ok := typed[name].(map[string]any); ok {
						walkSchema(path+"."+key+"."+name, prop, visit)
					}
				}
			} else {
				walkSchema(path+"."+key, typed, visit)
			}
		case []any:
			for i, item := range typed {
				if sub, ok := item.(map[string]any); ok {
					walkSchema(path+"."+key+"["+strconv.Itoa(i)+"]", sub, visit)
				}
			}
		}
	}
}

func containsString(values []any, want string) bool {
	for _, v := range values {
		if v == want {
			return true
		}
	}
	return false
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

