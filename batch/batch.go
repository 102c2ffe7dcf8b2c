package batch

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/erraggy/oaslice/converter"
	"github.com/erraggy/oaslice/indexer"
	"github.com/erraggy/oaslice/internal/fileutil"
	"github.com/erraggy/oaslice/internal/naming"
	"github.com/erraggy/oaslice/parser"
	"github.com/erraggy/oaslice/slicer"
	"github.com/erraggy/oaslice/sliceerrors"
)

// IndexFilename is the CSV index written into the output directory.
const IndexFilename = "sliced-resources-index.csv"

// DefaultConcurrency bounds the worker pool when none is configured.
const DefaultConcurrency = 4

// ProgressFunc receives one callback per finished endpoint, successful or
// not. done counts finished endpoints so far. Called from worker goroutines
// under the processor's lock.
type ProgressFunc func(done, total int, path, method string)

// Options configures a batch run.
type Options struct {
	// OutputDir receives one file per extracted operation plus the index.
	OutputDir string
	// Format is "yaml" (default) or "json".
	Format string
	// Filter narrows which paths are extracted. Nil extracts everything.
	Filter *Filter
	// Concurrency bounds the worker pool. Zero means DefaultConcurrency.
	Concurrency int
	// DryRun enumerates and counts endpoints without extracting or writing.
	DryRun bool
	// SkipIndex disables the CSV index.
	SkipIndex bool
	// TargetFamily converts each extracted document before writing.
	// FamilyUnknown keeps the source family.
	TargetFamily parser.VersionFamily
	// StrictConversion fails an endpoint on unconvertible constructs
	// instead of noting them.
	StrictConversion bool
	// MaxRefDepth overrides the resolver's chain depth ceiling when positive.
	MaxRefDepth int
	// Progress, when set, is called after each endpoint finishes.
	Progress ProgressFunc
	// Logger receives batch diagnostics. Defaults to no logging.
	Logger parser.Logger
}

// Failure records one endpoint that could not be extracted.
type Failure struct {
	Path   string
	Method string
	Reason string
}

// Result summarizes a batch run.
type Result struct {
	// TotalEndpoints is how many endpoints passed the filter.
	TotalEndpoints int
	// ExtractedCount and FailedCount partition the endpoints processed.
	ExtractedCount int
	FailedCount    int
	// PassRate is the fraction of processed endpoints that did not fail.
	// 1.0 when nothing was processed (an empty or dry run).
	PassRate float64
	// Elapsed is the wall-clock duration of the run.
	Elapsed time.Duration
	// IndexPath is the CSV index location, empty when no index was written.
	IndexPath string
	// OutputFiles lists every written file, sorted.
	OutputFiles []string
	// Failures lists failed endpoints with reasons, sorted by path then
	// method.
	Failures []Failure
}

// Process runs a batch extraction of doc into opts.OutputDir.
//
// Endpoint failures are isolated: they land in Result.Failures and never
// abort the run. The returned error covers setup problems (bad options, an
// unwritable output directory) and context cancellation.
func Process(ctx context.Context, doc *parser.Document, opts Options) (*Result, error) {
	start := time.Now()

	if doc == nil {
		return nil, &sliceerrors.ConfigError{Option: "document", Message: "batch extraction requires a document"}
	}
	switch opts.Format {
	case "", "yaml", "json":
	default:
		return nil, &sliceerrors.ConfigError{Option: "format", Value: opts.Format, Message: `must be "yaml" or "json"`}
	}
	if opts.Concurrency < 0 {
		return nil, &sliceerrors.ConfigError{Option: "concurrency", Value: opts.Concurrency, Message: "must not be negative"}
	}

	format := opts.Format
	if format == "" {
		format = "yaml"
	}
	concurrency := opts.Concurrency
	if concurrency == 0 {
		concurrency = DefaultConcurrency
	}
	logger := opts.Logger
	if logger == nil {
		logger = parser.NopLogger{}
	}

	endpoints := opts.Filter.Endpoints(doc)
	total := len(endpoints)
	if total == 0 {
		return &Result{PassRate: 1.0, Elapsed: time.Since(start)}, nil
	}

	if opts.DryRun {
		logger.Info("dry run", "endpoints", total)
		// Nothing was extracted; TotalEndpoints carries the match count.
		return &Result{
			TotalEndpoints: total,
			PassRate:       1.0,
			Elapsed:        time.Since(start),
		}, nil
	}

	if err := fileutil.EnsureWritableDir(opts.OutputDir); err != nil {
		return nil, err
	}

	var index *indexer.Manager
	if !opts.SkipIndex {
		index = indexer.NewManager(filepath.Join(opts.OutputDir, IndexFilename))
		defer index.Close()
	}

	sourceFamily := doc.VersionFamily()
	outputFamily := sourceFamily
	if opts.TargetFamily != parser.FamilyUnknown {
		outputFamily = opts.TargetFamily
	}

	run := &runState{total: total, progress: opts.Progress}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for _, endpoint := range endpoints {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			file, err := extractOne(doc, endpoint, format, outputFamily, index, opts)
			if err != nil {
				logger.Warn("endpoint failed",
					"path", endpoint.Path,
					"method", endpoint.Method,
					"error", err)
				run.fail(endpoint, err)
				return nil
			}
			logger.Debug("endpoint extracted",
				"path", endpoint.Path,
				"method", endpoint.Method,
				"file", file)
			run.succeed(endpoint, file)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if index != nil {
		if err := index.Close(); err != nil {
			return nil, err
		}
	}

	result := run.result()
	result.Elapsed = time.Since(start)
	if index != nil {
		result.IndexPath = index.Path()
	}
	logger.Info("batch complete",
		"total", result.TotalEndpoints,
		"extracted", result.ExtractedCount,
		"failed", result.FailedCount)
	return result, nil
}

// extractOne runs the single-operation pipeline for one endpoint and writes
// the output file. It returns the written file path.
func extractOne(doc *parser.Document, endpoint Endpoint, format string, outputFamily parser.VersionFamily, index *indexer.Manager, opts Options) (string, error) {
	var sliceOpts []slicer.Option
	if opts.MaxRefDepth > 0 {
		sliceOpts = append(sliceOpts, slicer.WithMaxRefDepth(opts.MaxRefDepth))
	}
	extraction, err := slicer.Slice(doc, endpoint.Path, endpoint.Method, sliceOpts...)
	if err != nil {
		return "", err
	}

	output := extraction.Document
	if outputFamily != doc.VersionFamily() {
		c := converter.New()
		c.StrictMode = opts.StrictConversion
		converted, err := c.Convert(output, outputFamily)
		if err != nil {
			return "", err
		}
		if err := converted.Err(); err != nil {
			return "", err
		}
		output = converted.Document
	}

	var data []byte
	if format == "json" {
		data, err = output.EncodeJSON()
	} else {
		data, err = output.EncodeYAML()
	}
	if err != nil {
		return "", fmt.Errorf("encoding %s %s: %w", endpoint.Method, endpoint.Path, err)
	}

	filename := naming.OutputFilename(endpoint.Path, endpoint.Method, format)
	path := filepath.Join(opts.OutputDir, filename)
	if err := fileutil.WriteFileAtomic(path, data, fileutil.OwnerReadWrite); err != nil {
		return "", err
	}

	if index != nil {
		entry := indexer.NewEntry(extraction.Summary, filename, int64(len(data)), outputFamily.String())
		if err := index.Append(entry); err != nil {
			return "", err
		}
	}
	return path, nil
}

// runState accumulates per-endpoint outcomes across workers.
type runState struct {
	mu       sync.Mutex
	total    int
	done     int
	files    []string
	failures []Failure
	progress ProgressFunc
}

func (s *runState) succeed(endpoint Endpoint, file string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files = append(s.files, file)
	s.done++
	if s.progress != nil {
		s.progress(s.done, s.total, endpoint.Path, endpoint.Method)
	}
}

func (s *runState) fail(endpoint Endpoint, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures = append(s.failures, Failure{Path: endpoint.Path, Method: endpoint.Method, Reason: err.Error()})
	s.done++
	if s.progress != nil {
		s.progress(s.done, s.total, endpoint.Path, endpoint.Method)
	}
}

func (s *runState) result() *Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	sort.Strings(s.files)
	sort.Slice(s.failures, func(i, j int) bool {
		if s.failures[i].Path != s.failures[j].Path {
			return s.failures[i].Path < s.failures[j].Path
		}
		return s.failures[i].Method < s.failures[j].Method
	})

	extracted := len(s.files)
	return &Result{
		TotalEndpoints: s.total,
		ExtractedCount: extracted,
		FailedCount:    len(s.failures),
		PassRate:       float64(extracted) / float64(s.total),
		OutputFiles:    s.files,
		Failures:       s.failures,
	}
}
