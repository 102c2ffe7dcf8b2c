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

const petstoreSpec = `openapi: "3.0.3"
info:
  title: Petstore
  version: "1.0.0"
paths:
  /pets/{petId}:
    get:
      operationId: getPet
      parameters:
        - $ref: "#/components/parameters/PetID"
      responses:
        "200":
          description: a pet
          content:
            application/json:
              schema:
                $ref: "#/components/schemas/Pet"
  /pets:
    get:
      operationId: listPets
      responses:
        "200":
          description: pets
components:
  parameters:
    PetID:
      name: petId
      in: path
      required: true
      schema:
        type: string
  schemas:
    Pet:
      type: object
      properties:
        name:
          type: string
          nullable: true
`

func TestSliceTool(t *testing.T) {
	input := sliceInput{
		Spec:   specInput{Content: petstoreSpec},
		Path:   "/pets/{petId}",
		Method: "GET",
	}
	result, output, err := handleSlice(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)
	require.Nil(t, result)

	assert.Equal(t, "getPet", output.OperationID)
	assert.Equal(t, "get", output.Method)
	assert.Equal(t, 2, output.TotalComponents)
	assert.Equal(t, map[string]int{"schemas": 1, "parameters": 1}, output.ComponentCounts)
	assert.Equal(t, "3.0.x", output.OutputVersion)
	require.Len(t, output.Checks, 2)
	assert.True(t, output.Checks[0].Passed)
	assert.True(t, output.Checks[1].Passed)
	assert.Contains(t, output.Document, "Pet")
	assert.NotContains(t, output.Document, "listPets")
}

func TestSliceTool_OutputFileAndTarget(t *testing.T) {
	outPath := filepath.Join(t.TempDir(), "sliced.yaml")
	input := sliceInput{
		Spec:   specInput{Content: petstoreSpec},
		Path:   "/pets/{petId}",
		Method: "get",
		Target: "3.1.x",
		Output: outPath,
	}
	result, output, err := handleSlice(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)
	require.Nil(t, result)

	assert.Equal(t, outPath, output.WrittenTo)
	assert.Empty(t, output.Document)
	assert.Equal(t, "3.1.x", output.OutputVersion)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "3.1.0")
}

func TestSliceTool_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input sliceInput
	}{
		{
			name:  "missing selector",
			input: sliceInput{Spec: specInput{Content: petstoreSpec}},
		},
		{
			name:  "unknown operation",
			input: sliceInput{Spec: specInput{Content: petstoreSpec}, Path: "/pets/{petId}", Method: "delete"},
		},
		{
			name:  "no spec",
			input: sliceInput{Path: "/pets", Method: "get"},
		},
		{
			name:  "bad target",
			input: sliceInput{Spec: specInput{Content: petstoreSpec}, Path: "/pets", Method: "get", Target: "2.0"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, _, err := handleSlice(context.Background(), &mcp.CallToolRequest{}, tt.input)
			require.NoError(t, err)
			require.NotNil(t, result)
			assert.True(t, result.IsError)
		})
	}
}
