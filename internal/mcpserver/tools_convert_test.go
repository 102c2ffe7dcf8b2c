package mcpserver

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertTool(t *testing.T) {
	input := convertInput{
		Spec:   specInput{Content: petstoreSpec},
		Target: "3.1.x",
	}
	result, output, err := handleConvert(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)
	require.Nil(t, result)

	assert.True(t, output.Success)
	assert.Equal(t, "3.0.x", output.SourceVersion)
	assert.Equal(t, "3.1.x", output.TargetVersion)
	assert.Contains(t, output.Document, "3.1.0")
	// The nullable property converts, producing at least one issue.
	assert.GreaterOrEqual(t, output.IssueCount, 1)
}

func TestConvertTool_OutputFile(t *testing.T) {
	outPath := filepath.Join(t.TempDir(), "converted.yaml")
	input := convertInput{
		Spec:   specInput{Content: petstoreSpec},
		Target: "3.1.x",
		Output: outPath,
	}
	result, output, err := handleConvert(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)
	require.Nil(t, result)

	assert.Equal(t, outPath, output.WrittenTo)
	assert.Empty(t, output.Document)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Petstore")
}

func TestConvertTool_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input convertInput
	}{
		{
			name:  "missing target",
			input: convertInput{Spec: specInput{Content: petstoreSpec}},
		},
		{
			name:  "unknown target",
			input: convertInput{Spec: specInput{Content: petstoreSpec}, Target: "2.0"},
		},
		{
			name:  "identity conversion",
			input: convertInput{Spec: specInput{Content: petstoreSpec}, Target: "3.0.x"},
		},
		{
			name:  "both file and content",
			input: convertInput{Spec: specInput{File: "x.yaml", Content: petstoreSpec}, Target: "3.1.x"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, _, err := handleConvert(context.Background(), &mcp.CallToolRequest{}, tt.input)
			require.NoError(t, err)
			require.NotNil(t, result)
			assert.True(t, result.IsError)
		})
	}
}
