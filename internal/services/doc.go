// Package services defines shared utilities consumed by the clip extraction
// jobs, the run coordinator, and the external tool wrappers.
//
// Key responsibilities:
//   - Context helpers that stamp item IDs, batch numbers, and run identifiers
//     for structured logging.
//   - Structured error markers plus the Wrap helper that let callers tell
//     setup failures (fatal to the run) apart from per-item failures.
//
// Subpackages wrap the external tools (ffmpeg) behind injectable command
// runners so jobs can be exercised without the real binaries.
package services
