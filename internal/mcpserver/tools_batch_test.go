package mcpserver

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBatchSliceTool(t *testing.T) {
	dir := t.TempDir()
	input := batchSliceInput{
		Spec:      specInput{Content: petstoreSpec},
		OutputDir: dir,
	}
	result, output, err := handleBatchSlice(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)
	require.Nil(t, result)

	assert.Equal(t, 2, output.TotalEndpoints)
	assert.Equal(t, 2, output.ExtractedCount)
	assert.Zero(t, output.FailedCount)
	assert.Equal(t, 1.0, output.PassRate)
	assert.Equal(t, filepath.Join(dir, "sliced-resources-index.csv"), output.IndexPath)
	assert.Len(t, output.OutputFiles, 2)
	assert.Empty(t, output.Failures)
}

func TestBatchSliceTool_FilterAndDryRun(t *testing.T) {
	input := batchSliceInput{
		Spec:   specInput{Content: petstoreSpec},
		Filter: "/pets",
		DryRun: true,
	}
	result, output, err := handleBatchSlice(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)
	require.Nil(t, result)

	assert.Equal(t, 1, output.TotalEndpoints)
	assert.Zero(t, output.ExtractedCount)
	assert.Empty(t, output.OutputFiles)
	assert.Empty(t, output.IndexPath)
}

func TestBatchSliceTool_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input batchSliceInput
	}{
		{
			name:  "missing output dir",
			input: batchSliceInput{Spec: specInput{Content: petstoreSpec}},
		},
		{
			name:  "bad filter type",
			input: batchSliceInput{Spec: specInput{Content: petstoreSpec}, OutputDir: "out", Filter: "/x", FilterType: "fnmatch"},
		},
		{
			name:  "bad regex",
			input: batchSliceInput{Spec: specInput{Content: petstoreSpec}, OutputDir: "out", Filter: "(", FilterType: "regex"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, _, err := handleBatchSlice(context.Background(), &mcp.CallToolRequest{}, tt.input)
			require.NoError(t, err)
			require.NotNil(t, result)
			assert.True(t, result.IsError)
		})
	}
}
