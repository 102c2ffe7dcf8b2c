package parser

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/oaslice/sliceerrors"
)

// SourceFormat identifies the serialization format of a parsed document.
type SourceFormat int

const (
	// SourceFormatYAML indicates the source was YAML.
	SourceFormatYAML SourceFormat = iota
	// SourceFormatJSON indicates the source was JSON.
	SourceFormatJSON
)

// String returns the lowercase format name.
func (f SourceFormat) String() string {
	if f == SourceFormatJSON {
		return "json"
	}
	return "yaml"
}

// ParseResult contains a parsed document and its source metadata.
type ParseResult struct {
	// Document is the parsed document view.
	Document *Document
	// Version is the raw openapi field value (e.g., "3.0.3").
	Version string
	// Family is the detected OAS version family.
	Family VersionFamily
	// SourceFormat is the serialization format of the source.
	SourceFormat SourceFormat
	// SourceName identifies the source (file path or configured name).
	SourceName string
}

// parseConfig holds the resolved configuration for one parse call.
type parseConfig struct {
	filePath          string
	reader            io.Reader
	data              []byte
	sourceName        string
	validateStructure bool
	logger            Logger
}

// Option configures a parse operation.
type Option func(*parseConfig) error

// WithFilePath reads the document from a file. The extension ("json",
// "yaml", "yml") guides format detection; unknown extensions fall back to
// content sniffing.
func WithFilePath(path string) Option {
	return func(cfg *parseConfig) error {
		cfg.filePath = path
		return nil
	}
}

// WithBytes parses the document from an in-memory byte slice.
func WithBytes(data []byte) Option {
	return func(cfg *parseConfig) error {
		cfg.data = data
		return nil
	}
}

// WithReader parses the document from a reader. The reader is consumed fully.
func WithReader(r io.Reader) Option {
	return func(cfg *parseConfig) error {
		cfg.reader = r
		return nil
	}
}

// WithSourceName sets the source identifier used in errors and results when
// the input is not a file.
func WithSourceName(name string) Option {
	return func(cfg *parseConfig) error {
		cfg.sourceName = name
		return nil
	}
}

// WithValidateStructure enables a basic structural check after decoding:
// the document must carry openapi, info, and a paths mapping.
func WithValidateStructure(enabled bool) Option {
	return func(cfg *parseConfig) error {
		cfg.validateStructure = enabled
		return nil
	}
}

// WithLogger sets the structured logger for parse diagnostics.
func WithLogger(l Logger) Option {
	return func(cfg *parseConfig) error {
		if l == nil {
			return &sliceerrors.ConfigError{Option: "logger", Message: "logger must not be nil"}
		}
		cfg.logger = l
		return nil
	}
}

// ParseWithOptions parses an OpenAPI document from exactly one input source
// (file path, bytes, or reader).
func ParseWithOptions(opts ...Option) (*ParseResult, error) {
	cfg := &parseConfig{logger: NopLogger{}}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	sources := 0
	if cfg.filePath != "" {
		sources++
	}
	if cfg.data != nil {
		sources++
	}
	if cfg.reader != nil {
		sources++
	}
	if sources != 1 {
		return nil, &sliceerrors.ConfigError{
			Option:  "input",
			Message: "exactly one of WithFilePath, WithBytes, or WithReader is required",
		}
	}

	data := cfg.data
	sourceName := cfg.sourceName
	switch {
	case cfg.filePath != "":
		read, err := os.ReadFile(cfg.filePath)
		if err != nil {
			return nil, &sliceerrors.ParseError{Path: cfg.filePath, Message: "failed to read file", Cause: err}
		}
		data = read
		if sourceName == "" {
			sourceName = cfg.filePath
		}
	case cfg.reader != nil:
		read, err := io.ReadAll(cfg.reader)
		if err != nil {
			return nil, &sliceerrors.ParseError{Path: sourceName, Message: "failed to read input", Cause: err}
		}
		data = read
	}

	format := detectFormat(cfg.filePath, data)

	var root map[string]any
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, &sliceerrors.ParseError{Path: sourceName, Message: "invalid YAML/JSON", Cause: err}
	}
	if root == nil {
		return nil, &sliceerrors.ParseError{Path: sourceName, Message: "document is empty"}
	}

	doc := NewDocument(root)
	if cfg.validateStructure {
		if err := validateStructure(doc, sourceName); err != nil {
			return nil, err
		}
	}

	result := &ParseResult{
		Document:     doc,
		Version:      doc.OpenAPI(),
		Family:       doc.VersionFamily(),
		SourceFormat: format,
		SourceName:   sourceName,
	}
	cfg.logger.Debug("parsed document",
		"source", sourceName,
		"format", format.String(),
		"version", result.Version,
		"paths", len(doc.Paths()))
	return result, nil
}

// detectFormat picks the source format from the file extension, falling back
// to sniffing the first non-space byte.
func detectFormat(path string, data []byte) SourceFormat {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return SourceFormatJSON
	case ".yaml", ".yml":
		return SourceFormatYAML
	}
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[') {
		return SourceFormatJSON
	}
	return SourceFormatYAML
}

// validateStructure checks the minimal shape every OAS 3.x document shares.
func validateStructure(doc *Document, sourceName string) error {
	if doc.OpenAPI() == "" {
		return &sliceerrors.ParseError{Path: sourceName, Message: "missing 'openapi' field"}
	}
	if doc.Info() == nil {
		return &sliceerrors.ParseError{Path: sourceName, Message: "missing 'info' field"}
	}
	if doc.Paths() == nil {
		return &sliceerrors.ParseError{Path: sourceName, Message: fmt.Sprintf("missing or invalid 'paths' field (openapi %s)", doc.OpenAPI())}
	}
	return nil
}
