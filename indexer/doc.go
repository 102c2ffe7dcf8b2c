// Package indexer maintains the CSV extraction index written alongside
// batch output.
//
// The index is one row per extracted operation, streamed as extractions
// finish rather than collected and written at the end, so a partially
// complete batch still leaves a usable index behind. Appends are
// mutex-serialized and flushed immediately; concurrent batch workers share
// one Manager.
package indexer
