// Package library models the imported music library: track records parsed
// from an exported CSV, playlist grouping, and the header normalization that
// copes with the many shapes consumer export services produce.
package library
