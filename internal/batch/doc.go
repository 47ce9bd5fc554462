// Package batch orchestrates a trimming run: it analyzes the discovered
// files sequentially, then executes the files that need changes in fixed-size
// batches with a bounded worker pool per batch.
package batch
