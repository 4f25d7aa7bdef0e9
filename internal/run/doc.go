// Package run coordinates a full clip batch run.
//
// Coordinator.Run validates the input and output directories, takes an
// exclusive lock on the output directory, loads the manifest once, splits it
// into batches, and drives each batch through the worker pool. Failures are
// written to the run's failure logs by the worker that observed them. Batches
// run strictly one after another with a configurable pause in between; a
// cancelled context stops dispatch, and the next run resumes through the
// extraction guard.
package run
