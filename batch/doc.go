// Package batch extracts many operations from one document in parallel.
//
// A Processor enumerates the document's operations, optionally narrows them
// with a path Filter, and runs the full single-operation pipeline for each
// under a bounded worker pool. One operation failing never aborts the batch;
// failures are collected per endpoint and reported in the Result. Output
// files are written atomically, and a CSV index row is streamed for each
// successful extraction.
package batch
