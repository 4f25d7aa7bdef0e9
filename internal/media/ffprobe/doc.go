// Package ffprobe reads container durations and stream layout from ffprobe.
//
// Key types:
//   - Result: the parsed subset of ffprobe JSON used for clip verification
//   - Prober: the function signature extraction code depends on, so tests can
//     supply canned results
//
// Inspect runs the binary once per file and returns the parsed Result.
package ffprobe
