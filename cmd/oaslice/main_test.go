package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSpec = `openapi: "3.0.3"
info:
  title: Test API
  version: "1.0.0"
paths:
  /pets:
    get:
      operationId: listPets
      responses:
        "200":
          description: OK
          content:
            application/json:
              schema:
                $ref: "#/components/schemas/Pet"
components:
  schemas:
    Pet:
      type: object
`

func writeTestSpec(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "openapi.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testSpec), 0o600))
	return path
}

func TestHandleSlice(t *testing.T) {
	specPath := writeTestSpec(t)
	outPath := filepath.Join(t.TempDir(), "sliced.yaml")

	err := handleSlice([]string{"-path", "/pets", "-method", "GET", "-o", outPath, specPath})
	require.NoError(t, err)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "listPets")
	assert.Contains(t, string(data), "Pet")
}

func TestHandleSliceMissingFlags(t *testing.T) {
	err := handleSlice([]string{writeTestSpec(t)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "-path and -method are required")
}

func TestHandleSliceUnknownOperation(t *testing.T) {
	err := handleSlice([]string{"-path", "/pets", "-method", "DELETE", writeTestSpec(t)})
	assert.Error(t, err)
}

func TestHandleBatch(t *testing.T) {
	specPath := writeTestSpec(t)
	outDir := filepath.Join(t.TempDir(), "sliced")

	err := handleBatch([]string{"-out", outDir, specPath})
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(outDir, "pets_GET.yaml"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(outDir, "sliced-resources-index.csv"))
	assert.NoError(t, err)
}

func TestHandleConvert(t *testing.T) {
	specPath := writeTestSpec(t)
	outPath := filepath.Join(t.TempDir(), "converted.yaml")

	err := handleConvert([]string{"-t", "3.1.x", "-q", "-o", outPath, specPath})
	require.NoError(t, err)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "3.1.0")
}

func TestHandleConvertRequiresTarget(t *testing.T) {
	err := handleConvert([]string{writeTestSpec(t)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "-target is required")
}
