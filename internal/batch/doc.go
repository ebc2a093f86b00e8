// Package batch analyzes many images concurrently.
//
// A Processor runs the full pipeline (decode, segment, classify and
// optionally render an annotated copy) for every input path. At most Jobs
// images are in flight at once. Results come back in input order, and a
// failed image is reported in its Document instead of aborting the batch.
package batch
