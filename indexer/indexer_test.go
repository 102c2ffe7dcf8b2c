package indexer

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/oaslice/refs"
	"github.com/erraggy/oaslice/slicer"
)

func testEntry(path, method string) Entry {
	return Entry{
		Path:          path,
		Method:        method,
		Summary:       "Fetch one order",
		OperationID:   "getOrder",
		Tags:          "orders,read",
		Filename:      "orders-orderid_GET.yaml",
		FileSizeKB:    2.5,
		SchemaCount:   3,
		ResponseCodes: "200,404",
		Deprecated:    false,
		CreatedAt:     time.Date(2026, 2, 14, 9, 30, 0, 0, time.UTC),
		OutputVersion: "3.0.x",
	}
}

func TestManagerRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index.csv")
	m := NewManager(path)

	first := testEntry("/orders/{orderId}", "get")
	first.SecurityRequired = true
	second := testEntry("/orders", "post")
	second.Summary = `Create, with "quotes" and, commas`

	require.NoError(t, m.Append(first))
	require.NoError(t, m.Append(second))
	require.NoError(t, m.Close())

	entries, err := ReadEntries(path)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, first, entries[0])
	assert.Equal(t, second, entries[1])
}

func TestManagerWritesHeaderOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index.csv")
	m := NewManager(path)
	require.NoError(t, m.AppendBatch([]Entry{
		testEntry("/a", "get"),
		testEntry("/b", "get"),
	}))
	require.NoError(t, m.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, strings.Join(Header, ","), lines[0])
}

func TestManagerConcurrentAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index.csv")
	m := NewManager(path)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			assert.NoError(t, m.Append(testEntry("/items", "get")))
		}(i)
	}
	wg.Wait()
	require.NoError(t, m.Close())

	entries, err := ReadEntries(path)
	require.NoError(t, err)
	assert.Len(t, entries, 16)
}

func TestManagerCloseWithoutAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index.csv")
	m := NewManager(path)
	require.NoError(t, m.Close())

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestReadEntriesMissingFile(t *testing.T) {
	entries, err := ReadEntries(filepath.Join(t.TempDir(), "absent.csv"))
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestNewEntryFromSummary(t *testing.T) {
	summary := slicer.Summary{
		Path:          "/orders/{orderId}",
		Method:        "get",
		Title:         "Fetch one order",
		OperationID:   "getOrder",
		Tags:          []string{"orders", "read"},
		ResponseCodes: []string{"200", "404"},
		ComponentCounts: map[refs.Kind]int{
			refs.KindSchema:    3,
			refs.KindParameter: 1,
		},
		SecurityRequired: true,
	}
	entry := NewEntry(summary, "orders-orderid_GET.yaml", 2048, "3.0.x")

	assert.Equal(t, "/orders/{orderId}", entry.Path)
	assert.Equal(t, "orders,read", entry.Tags)
	assert.Equal(t, "200,404", entry.ResponseCodes)
	assert.Equal(t, 2.0, entry.FileSizeKB)
	assert.Equal(t, 3, entry.SchemaCount)
	assert.Equal(t, 1, entry.ParameterCount)
	assert.True(t, entry.SecurityRequired)
	assert.WithinDuration(t, time.Now(), entry.CreatedAt, time.Minute)
}
