package indexer

import (
	"strconv"
	"strings"
	"time"

	"github.com/erraggy/oaslice/refs"
	"github.com/erraggy/oaslice/slicer"
)

// Header is the CSV column layout, one index row per extracted operation.
var Header = []string{
	"path",
	"method",
	"summary",
	"description",
	"operation_id",
	"tags",
	"filename",
	"file_size_kb",
	"schema_count",
	"parameter_count",
	"response_codes",
	"security_required",
	"deprecated",
	"created_at",
	"output_oas_version",
}

// Entry is one index row.
type Entry struct {
	Path             string
	Method           string
	Summary          string
	Description      string
	OperationID      string
	Tags             string
	Filename         string
	FileSizeKB       float64
	SchemaCount      int
	ParameterCount   int
	ResponseCodes    string
	SecurityRequired bool
	Deprecated       bool
	CreatedAt        time.Time
	OutputVersion    string
}

// NewEntry builds an index row from an extraction summary and the written
// file's name and size. The creation timestamp is stamped in UTC.
func NewEntry(s slicer.Summary, filename string, fileSize int64, outputVersion string) Entry {
	return Entry{
		Path:             s.Path,
		Method:           s.Method,
		Summary:          s.Title,
		Description:      s.Description,
		OperationID:      s.OperationID,
		Tags:             s.TagList(),
		Filename:         filename,
		FileSizeKB:       float64(fileSize) / 1024,
		SchemaCount:      s.ComponentCounts[refs.KindSchema],
		ParameterCount:   s.ComponentCounts[refs.KindParameter],
		ResponseCodes:    strings.Join(s.ResponseCodes, ","),
		SecurityRequired: s.SecurityRequired,
		Deprecated:       s.Deprecated,
		CreatedAt:        time.Now().UTC(),
		OutputVersion:    outputVersion,
	}
}

// row serializes the entry in Header order. The csv writer handles quoting.
func (e Entry) row() []string {
	return []string{
		e.Path,
		e.Method,
		e.Summary,
		e.Description,
		e.OperationID,
		e.Tags,
		e.Filename,
		strconv.FormatFloat(e.FileSizeKB, 'f', 2, 64),
		strconv.Itoa(e.SchemaCount),
		strconv.Itoa(e.ParameterCount),
		e.ResponseCodes,
		yesNo(e.SecurityRequired),
		yesNo(e.Deprecated),
		e.CreatedAt.Format(time.RFC3339),
		e.OutputVersion,
	}
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
