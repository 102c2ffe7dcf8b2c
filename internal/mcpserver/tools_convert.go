package mcpserver

import (
	"context"
	"fmt"

	"github.com/erraggy/oaslice/converter"
	"github.com/erraggy/oaslice/internal/fileutil"
	"github.com/erraggy/oaslice/parser"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type convertInput struct {
	Spec   specInput `json:"spec"             jsonschema:"The OAS document to convert"`
	Target string    `json:"target"           jsonschema:"Target version family (3.0.x or 3.1.x)"`
	Strict bool      `json:"strict,omitempty" jsonschema:"Fail on constructs the target family cannot express"`
	Output string    `json:"output,omitempty" jsonschema:"File path to write the converted document. If omitted the document is returned inline."`
}

type convertIssue struct {
	Severity string `json:"severity"`
	Path     string `json:"path"`
	Message  string `json:"message"`
}

type convertOutput struct {
	SourceVersion string         `json:"source_version"`
	TargetVersion string         `json:"target_version"`
	Success       bool           `json:"success"`
	IssueCount    int            `json:"issue_count"`
	Issues        []convertIssue `json:"issues,omitempty"`
	WrittenTo     string         `json:"written_to,omitempty"`
	Document      string         `json:"document,omitempty"`
}

func handleConvert(_ context.Context, _ *mcp.CallToolRequest, input convertInput) (*mcp.CallToolResult, convertOutput, error) {
	if input.Target == "" {
		return errResult(fmt.Errorf("target version is required")), convertOutput{}, nil
	}
	target, err := familyFromLabel(input.Target)
	if err != nil {
		return errResult(err), convertOutput{}, nil
	}

	parsed, err := loadSpec(input.Spec)
	if err != nil {
		return errResult(err), convertOutput{}, nil
	}

	c := converter.New()
	c.StrictMode = input.Strict
	result, err := c.Convert(parsed.Document, target)
	if err != nil {
		return errResult(err), convertOutput{}, nil
	}

	output := convertOutput{
		SourceVersion: result.SourceFamily.String(),
		TargetVersion: result.TargetFamily.String(),
		Success:       result.Success,
		IssueCount:    len(result.Issues),
	}
	output.Issues = makeSlice[convertIssue](len(result.Issues))
	for _, issue := range result.Issues {
		output.Issues = append(output.Issues, convertIssue{
			Severity: issue.Severity.String(),
			Path:     issue.Path,
			Message:  issue.Message,
		})
	}

	var data []byte
	if parsed.SourceFormat == parser.SourceFormatJSON {
		data, err = result.Document.EncodeJSON()
	} else {
		data, err = result.Document.EncodeYAML()
	}
	if err != nil {
		return errResult(err), convertOutput{}, nil
	}

	if input.Output != "" {
		if err := fileutil.WriteFileAtomic(input.Output, data, fileutil.ReadableByAll); err != nil {
			return errResult(err), convertOutput{}, nil
		}
		output.WrittenTo = input.Output
	} else {
		output.Document = string(data)
	}

	return nil, output, nil
}
