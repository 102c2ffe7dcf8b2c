package mcpserver

import (
	"context"
	"fmt"

	"github.com/erraggy/oaslice/converter"
	"github.com/erraggy/oaslice/internal/fileutil"
	"github.com/erraggy/oaslice/parser"
	"github.com/erraggy/oaslice/slicer"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type sliceInput struct {
	Spec   specInput `json:"spec"             jsonschema:"The OAS document to extract from"`
	Path   string    `json:"path"             jsonschema:"Path template of the operation (e.g. /users/{id})"`
	Method string    `json:"method"           jsonschema:"HTTP method of the operation (e.g. GET)"`
	Target string    `json:"target,omitempty" jsonschema:"Optional output version family (3.0.x or 3.1.x). Defaults to the source family."`
	Output string    `json:"output,omitempty" jsonschema:"File path to write the extracted document. If omitted the document is returned inline."`
}

type checkOutput struct {
	Check     string   `json:"check"`
	Passed    bool     `json:"passed"`
	Offending []string `json:"offending,omitempty"`
}

type sliceOutput struct {
	Path            string         `json:"path"`
	Method          string         `json:"method"`
	OperationID     string         `json:"operation_id,omitempty"`
	ComponentCounts map[string]int `json:"component_counts,omitempty"`
	TotalComponents int            `json:"total_components"`
	Checks          []checkOutput  `json:"checks"`
	OutputVersion   string         `json:"output_version"`
	WrittenTo       string         `json:"written_to,omitempty"`
	Document        string         `json:"document,omitempty"`
}

func handleSlice(_ context.Context, _ *mcp.CallToolRequest, input sliceInput) (*mcp.CallToolResult, sliceOutput, error) {
	if input.Path == "" || input.Method == "" {
		return errResult(fmt.Errorf("path and method are required")), sliceOutput{}, nil
	}
	target, err := familyFromLabel(input.Target)
	if err != nil {
		return errResult(err), sliceOutput{}, nil
	}

	parsed, err := loadSpec(input.Spec)
	if err != nil {
		return errResult(err), sliceOutput{}, nil
	}

	extraction, err := slicer.Slice(parsed.Document, input.Path, input.Method)
	if err != nil {
		return errResult(err), sliceOutput{}, nil
	}

	document := extraction.Document
	outputFamily := parsed.Document.VersionFamily()
	if target != parser.FamilyUnknown && target != outputFamily {
		converted, err := converter.Convert(document, target)
		if err != nil {
			return errResult(err), sliceOutput{}, nil
		}
		if err := converted.Err(); err != nil {
			return errResult(err), sliceOutput{}, nil
		}
		document = converted.Document
		outputFamily = target
	}

	output := sliceOutput{
		Path:            extraction.Summary.Path,
		Method:          extraction.Summary.Method,
		OperationID:     extraction.Summary.OperationID,
		TotalComponents: extraction.Summary.TotalComponents(),
		OutputVersion:   outputFamily.String(),
	}
	if len(extraction.Summary.ComponentCounts) > 0 {
		output.ComponentCounts = map[string]int{}
		for kind, count := range extraction.Summary.ComponentCounts {
			if count > 0 {
				output.ComponentCounts[kind.Section()] = count
			}
		}
	}
	output.Checks = makeSlice[checkOutput](len(extraction.Checks))
	for _, check := range extraction.Checks {
		output.Checks = append(output.Checks, checkOutput{
			Check:     check.Check.String(),
			Passed:    check.Passed,
			Offending: check.Offending,
		})
	}

	var data []byte
	if parsed.SourceFormat == parser.SourceFormatJSON {
		data, err = document.EncodeJSON()
	} else {
		data, err = document.EncodeYAML()
	}
	if err != nil {
		return errResult(err), sliceOutput{}, nil
	}

	if input.Output != "" {
		if err := fileutil.WriteFileAtomic(input.Output, data, fileutil.OwnerReadWrite); err != nil {
			return errResult(err), sliceOutput{}, nil
		}
		output.WrittenTo = input.Output
	} else {
		output.Document = string(data)
	}

	return nil, output, nil
}
