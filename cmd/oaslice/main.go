// Command oaslice extracts single operations from OpenAPI documents into
// standalone, self-contained specs.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/erraggy/oaslice"
	"github.com/erraggy/oaslice/batch"
	"github.com/erraggy/oaslice/converter"
	"github.com/erraggy/oaslice/internal/cliutil"
	"github.com/erraggy/oaslice/internal/fileutil"
	"github.com/erraggy/oaslice/internal/mcpserver"
	"github.com/erraggy/oaslice/parser"
	"github.com/erraggy/oaslice/slicer"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "version", "-v", "--version":
		fmt.Printf("oaslice v%s\n", oaslice.Version())
	case "help", "-h", "--help":
		printUsage()
	case "slice":
		if err := handleSlice(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "batch":
		if err := handleBatch(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "convert":
		if err := handleConvert(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "mcp":
		if err := handleMCP(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	cliutil.Writef(os.Stdout, "oaslice - extract single operations from OpenAPI documents\n\n")
	cliutil.Writef(os.Stdout, "Usage: oaslice <command> [flags] [arguments]\n\n")
	cliutil.Writef(os.Stdout, "Commands:\n")
	cliutil.Writef(os.Stdout, "  slice     Extract one operation with its full component closure\n")
	cliutil.Writef(os.Stdout, "  batch     Extract many operations in parallel with a CSV index\n")
	cliutil.Writef(os.Stdout, "  convert   Convert a document between 3.0.x and 3.1.x\n")
	cliutil.Writef(os.Stdout, "  mcp       Run the MCP server over stdio\n")
	cliutil.Writef(os.Stdout, "  version   Print version information\n")
	cliutil.Writef(os.Stdout, "  help      Show this help message\n\n")
	cliutil.Writef(os.Stdout, "Run 'oaslice <command> -h' for command-specific flags.\n")
}

// sliceFlags contains flags for the slice command
type sliceFlags struct {
	path   string
	method string
	target string
	output string
	format string
}

func setupSliceFlags() (*flag.FlagSet, *sliceFlags) {
	fs := flag.NewFlagSet("slice", flag.ContinueOnError)
	flags := &sliceFlags{}

	fs.StringVar(&flags.path, "path", "", "path template of the operation, e.g. /users/{id} (required)")
	fs.StringVar(&flags.method, "method", "", "HTTP method of the operation, e.g. GET (required)")
	fs.StringVar(&flags.target, "target", "", "output version family (3.0.x or 3.1.x, default: source family)")
	fs.StringVar(&flags.output, "o", "", "output file path (default: stdout)")
	fs.StringVar(&flags.output, "output", "", "output file path (default: stdout)")
	fs.StringVar(&flags.format, "format", "", "output format: yaml or json (default: source format)")

	fs.Usage = func() {
		cliutil.Writef(fs.Output(), "Usage: oaslice slice -path <template> -method <verb> [flags] <file>\n\n")
		cliutil.Writef(fs.Output(), "Extract a single operation into a standalone document containing the\n")
		cliutil.Writef(fs.Output(), "operation and every component it transitively depends on.\n\n")
		cliutil.Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		cliutil.Writef(fs.Output(), "\nExamples:\n")
		cliutil.Writef(fs.Output(), "  oaslice slice -path /users/{id} -method GET openapi.yaml\n")
		cliutil.Writef(fs.Output(), "  oaslice slice -path /orders -method POST -o order-create.yaml openapi.yaml\n")
		cliutil.Writef(fs.Output(), "  oaslice slice -path /users -method GET -target 3.1.x openapi.yaml\n")
	}

	return fs, flags
}

func handleSlice(args []string) error {
	fs, flags := setupSliceFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("slice command requires exactly one input file")
	}
	if flags.path == "" || flags.method == "" {
		fs.Usage()
		return fmt.Errorf("-path and -method are required")
	}

	parsed, err := parser.ParseWithOptions(parser.WithFilePath(fs.Arg(0)))
	if err != nil {
		return err
	}

	result, err := slicer.Slice(parsed.Document, flags.path, flags.method)
	if err != nil {
		return err
	}

	document := result.Document
	if flags.target != "" {
		family, ok := parser.VersionFamilyFromLabel(flags.target)
		if !ok {
			return fmt.Errorf("unknown target version family %q (use 3.0.x or 3.1.x)", flags.target)
		}
		if family != parsed.Document.VersionFamily() {
			conversion, err := converter.Convert(document, family)
			if err != nil {
				return err
			}
			if err := conversion.Err(); err != nil {
				return err
			}
			document = conversion.Document
			for _, issue := range conversion.Issues {
				if issue.Severity >= converter.SeverityWarning {
					fmt.Fprintf(os.Stderr, "warning: %s: %s\n", issue.Path, issue.Message)
				}
			}
		}
	}

	data, err := encodeDocument(document, flags.format, parsed.SourceFormat)
	if err != nil {
		return err
	}

	if flags.output != "" {
		if err := fileutil.WriteFileAtomic(flags.output, data, fileutil.OwnerReadWrite); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "wrote %s (%d components)\n", flags.output, result.Summary.TotalComponents())
		return nil
	}
	cliutil.Writef(os.Stdout, "%s", data)
	return nil
}

// batchFlags contains flags for the batch command
type batchFlags struct {
	outputDir   string
	format      string
	filter      string
	filterType  string
	concurrency int
	dryRun      bool
	noIndex     bool
	target      string
	strict      bool
	verbose     bool
}

func setupBatchFlags() (*flag.FlagSet, *batchFlags) {
	fs := flag.NewFlagSet("batch", flag.ContinueOnError)
	flags := &batchFlags{}

	fs.StringVar(&flags.outputDir, "out", "sliced", "output directory for extracted files and the index")
	fs.StringVar(&flags.format, "format", "yaml", "output format: yaml or json")
	fs.StringVar(&flags.filter, "filter", "", "path pattern to narrow extraction, e.g. /users/*")
	fs.StringVar(&flags.filterType, "filter-type", "glob", "pattern type: glob or regex")
	fs.IntVar(&flags.concurrency, "concurrency", batch.DefaultConcurrency, "worker pool size")
	fs.BoolVar(&flags.dryRun, "dry-run", false, "count matching endpoints without extracting")
	fs.BoolVar(&flags.noIndex, "no-index", false, "skip writing the CSV index")
	fs.StringVar(&flags.target, "target", "", "output version family (3.0.x or 3.1.x, default: source family)")
	fs.BoolVar(&flags.strict, "strict", false, "fail endpoints whose conversion would be lossy")
	fs.BoolVar(&flags.verbose, "verbose", false, "report per-endpoint progress")

	fs.Usage = func() {
		cliutil.Writef(fs.Output(), "Usage: oaslice batch [flags] <file>\n\n")
		cliutil.Writef(fs.Output(), "Extract every matching operation into its own standalone file, in\n")
		cliutil.Writef(fs.Output(), "parallel, plus a CSV index of what was extracted.\n\n")
		cliutil.Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		cliutil.Writef(fs.Output(), "\nExamples:\n")
		cliutil.Writef(fs.Output(), "  oaslice batch -out sliced openapi.yaml\n")
		cliutil.Writef(fs.Output(), "  oaslice batch -filter '/users/*' -format json openapi.yaml\n")
		cliutil.Writef(fs.Output(), "  oaslice batch -filter '^/api/v\\d+' -filter-type regex -dry-run openapi.yaml\n")
	}

	return fs, flags
}

func handleBatch(args []string) error {
	fs, flags := setupBatchFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("batch command requires exactly one input file")
	}

	var filter *batch.Filter
	var err error
	if flags.filter != "" {
		switch flags.filterType {
		case "glob":
			filter, err = batch.NewGlobFilter(flags.filter)
		case "regex":
			filter, err = batch.NewRegexpFilter(flags.filter)
		default:
			err = fmt.Errorf("unknown filter type %q (use glob or regex)", flags.filterType)
		}
		if err != nil {
			return err
		}
	}

	var target parser.VersionFamily
	if flags.target != "" {
		family, ok := parser.VersionFamilyFromLabel(flags.target)
		if !ok {
			return fmt.Errorf("unknown target version family %q (use 3.0.x or 3.1.x)", flags.target)
		}
		target = family
	}

	parsed, err := parser.ParseWithOptions(parser.WithFilePath(fs.Arg(0)))
	if err != nil {
		return err
	}

	var progress batch.ProgressFunc
	if flags.verbose {
		progress = func(done, total int, path, method string) {
			fmt.Fprintf(os.Stderr, "[%d/%d] %s %s\n", done, total, method, path)
		}
	}

	result, err := batch.Process(signalContext(), parsed.Document, batch.Options{
		OutputDir:        flags.outputDir,
		Format:           flags.format,
		Filter:           filter,
		Concurrency:      flags.concurrency,
		DryRun:           flags.dryRun,
		SkipIndex:        flags.noIndex,
		TargetFamily:     target,
		StrictConversion: flags.strict,
		Progress:         progress,
	})
	if err != nil {
		return err
	}

	cliutil.Writef(os.Stdout, "Endpoints: %d\n", result.TotalEndpoints)
	cliutil.Writef(os.Stdout, "Extracted: %d\n", result.ExtractedCount)
	cliutil.Writef(os.Stdout, "Failed:    %d\n", result.FailedCount)
	cliutil.Writef(os.Stdout, "Pass rate: %.1f%%\n", result.PassRate*100)
	cliutil.Writef(os.Stdout, "Elapsed:   %v\n", result.Elapsed)
	if result.IndexPath != "" {
		cliutil.Writef(os.Stdout, "Index:     %s\n", result.IndexPath)
	}
	for _, failure := range result.Failures {
		fmt.Fprintf(os.Stderr, "failed: %s %s: %s\n", failure.Method, failure.Path, failure.Reason)
	}
	if result.FailedCount > 0 {
		return fmt.Errorf("%d of %d endpoints failed", result.FailedCount, result.TotalEndpoints)
	}
	return nil
}

// convertFlags contains flags for the convert command
type convertFlags struct {
	target string
	output string
	strict bool
	quiet  bool
}

func setupConvertFlags() (*flag.FlagSet, *convertFlags) {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	flags := &convertFlags{}

	fs.StringVar(&flags.target, "t", "", "target version family: 3.0.x or 3.1.x (required)")
	fs.StringVar(&flags.target, "target", "", "target version family: 3.0.x or 3.1.x (required)")
	fs.StringVar(&flags.output, "o", "", "output file path (default: stdout)")
	fs.StringVar(&flags.output, "output", "", "output file path (default: stdout)")
	fs.BoolVar(&flags.strict, "strict", false, "fail on constructs the target family cannot express")
	fs.BoolVar(&flags.quiet, "q", false, "quiet mode: only output the document, no diagnostics")
	fs.BoolVar(&flags.quiet, "quiet", false, "quiet mode: only output the document, no diagnostics")

	fs.Usage = func() {
		cliutil.Writef(fs.Output(), "Usage: oaslice convert -t <family> [flags] <file>\n\n")
		cliutil.Writef(fs.Output(), "Convert an OpenAPI document between the 3.0.x and 3.1.x families.\n\n")
		cliutil.Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		cliutil.Writef(fs.Output(), "\nExamples:\n")
		cliutil.Writef(fs.Output(), "  oaslice convert -t 3.1.x openapi.yaml -o openapi-31.yaml\n")
		cliutil.Writef(fs.Output(), "  oaslice convert --strict -t 3.0.x openapi-31.yaml\n")
	}

	return fs, flags
}

func handleConvert(args []string) error {
	fs, flags := setupConvertFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("convert command requires exactly one input file")
	}
	if flags.target == "" {
		fs.Usage()
		return fmt.Errorf("-target is required")
	}
	family, ok := parser.VersionFamilyFromLabel(flags.target)
	if !ok {
		return fmt.Errorf("unknown target version family %q (use 3.0.x or 3.1.x)", flags.target)
	}

	parsed, err := parser.ParseWithOptions(parser.WithFilePath(fs.Arg(0)))
	if err != nil {
		return err
	}

	c := converter.New()
	c.StrictMode = flags.strict
	result, err := c.Convert(parsed.Document, family)
	if err != nil {
		return err
	}
	if !flags.quiet {
		for _, issue := range result.Issues {
			fmt.Fprintf(os.Stderr, "%s: %s: %s\n", issue.Severity, issue.Path, issue.Message)
		}
	}
	if err := result.Err(); err != nil {
		return err
	}

	data, err := encodeDocument(result.Document, "", parsed.SourceFormat)
	if err != nil {
		return err
	}
	if flags.output != "" {
		return fileutil.WriteFileAtomic(flags.output, data, fileutil.ReadableByAll)
	}
	cliutil.Writef(os.Stdout, "%s", data)
	return nil
}

func handleMCP() error {
	return mcpserver.Run(signalContext())
}

// encodeDocument marshals a document, preferring the explicit format and
// falling back to the source format.
func encodeDocument(doc *parser.Document, format string, source parser.SourceFormat) ([]byte, error) {
	switch format {
	case "json":
		return doc.EncodeJSON()
	case "yaml":
		return doc.EncodeYAML()
	case "":
		if source == parser.SourceFormatJSON {
			return doc.EncodeJSON()
		}
		return doc.EncodeYAML()
	default:
		return nil, fmt.Errorf("unknown format %q (use yaml or json)", format)
	}
}

// signalContext returns a context cancelled on SIGINT or SIGTERM.
func signalContext() context.Context {
	ctx, _ := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	return ctx
}
