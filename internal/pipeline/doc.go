// Package pipeline runs one slideshow build from start to finish:
//
//	validate → probe each audio clip → build filter graph → encode
//
// Every step is sequential and the first failure aborts the run. Errors are
// returned, never printed here; cmd/slidereel owns the single report.
package pipeline
