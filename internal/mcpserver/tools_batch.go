package mcpserver

import (
	"context"
	"fmt"

	"github.com/erraggy/oaslice/batch"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type batchSliceInput struct {
	Spec        specInput `json:"spec"                   jsonschema:"The OAS document to extract from"`
	OutputDir   string    `json:"output_dir"             jsonschema:"Directory to write extracted files and the CSV index into"`
	Format      string    `json:"format,omitempty"       jsonschema:"Output format: yaml (default) or json"`
	Filter      string    `json:"filter,omitempty"       jsonschema:"Path pattern to narrow extraction (e.g. /users/*)"`
	FilterType  string    `json:"filter_type,omitempty"  jsonschema:"Pattern type: glob (default) or regex"`
	Concurrency int       `json:"concurrency,omitempty"  jsonschema:"Worker pool size (default 4)"`
	DryRun      bool      `json:"dry_run,omitempty"      jsonschema:"Count matching endpoints without extracting"`
	SkipIndex   bool      `json:"skip_index,omitempty"   jsonschema:"Do not write the CSV index"`
	Target      string    `json:"target,omitempty"       jsonschema:"Optional output version family (3.0.x or 3.1.x)"`
	Strict      bool      `json:"strict,omitempty"       jsonschema:"Fail endpoints whose conversion would be lossy"`
}

type failureOutput struct {
	Path   string `json:"path"`
	Method string `json:"method"`
	Reason string `json:"reason"`
}

type batchSliceOutput struct {
	TotalEndpoints int             `json:"total_endpoints"`
	ExtractedCount int             `json:"extracted_count"`
	FailedCount    int             `json:"failed_count"`
	PassRate       float64         `json:"pass_rate"`
	ElapsedMS      int64           `json:"elapsed_ms"`
	IndexPath      string          `json:"index_path,omitempty"`
	OutputFiles    []string        `json:"output_files,omitempty"`
	Failures       []failureOutput `json:"failures,omitempty"`
}

func handleBatchSlice(ctx context.Context, _ *mcp.CallToolRequest, input batchSliceInput) (*mcp.CallToolResult, batchSliceOutput, error) {
	if input.OutputDir == "" && !input.DryRun {
		return errResult(fmt.Errorf("output_dir is required")), batchSliceOutput{}, nil
	}
	target, err := familyFromLabel(input.Target)
	if err != nil {
		return errResult(err), batchSliceOutput{}, nil
	}

	var filter *batch.Filter
	if input.Filter != "" {
		switch input.FilterType {
		case "", "glob":
			filter, err = batch.NewGlobFilter(input.Filter)
		case "regex":
			filter, err = batch.NewRegexpFilter(input.Filter)
		default:
			err = fmt.Errorf("unknown filter_type %q (use glob or regex)", input.FilterType)
		}
		if err != nil {
			return errResult(err), batchSliceOutput{}, nil
		}
	}

	parsed, err := loadSpec(input.Spec)
	if err != nil {
		return errResult(err), batchSliceOutput{}, nil
	}

	result, err := batch.Process(ctx, parsed.Document, batch.Options{
		OutputDir:        input.OutputDir,
		Format:           input.Format,
		Filter:           filter,
		Concurrency:      input.Concurrency,
		DryRun:           input.DryRun,
		SkipIndex:        input.SkipIndex,
		TargetFamily:     target,
		StrictConversion: input.Strict,
	})
	if err != nil {
		return errResult(err), batchSliceOutput{}, nil
	}

	output := batchSliceOutput{
		TotalEndpoints: result.TotalEndpoints,
		ExtractedCount: result.ExtractedCount,
		FailedCount:    result.FailedCount,
		PassRate:       result.PassRate,
		ElapsedMS:      result.Elapsed.Milliseconds(),
		IndexPath:      result.IndexPath,
		OutputFiles:    result.OutputFiles,
	}
	output.Failures = makeSlice[failureOutput](len(result.Failures))
	for _, failure := range result.Failures {
		output.Failures = append(output.Failures, failureOutput{
			Path:   failure.Path,
			Method: failure.Method,
			Reason: failure.Reason,
		})
	}
	return nil, output, nil
}
