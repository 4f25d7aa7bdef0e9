// Package logging assembles structured slog loggers and formatting helpers used
// across clipbatch.
//
// It owns the console/JSON handlers, centralizes level and output plumbing, and
// exposes context-aware helpers so job code can tag log lines with item IDs,
// batch numbers, and run identifiers. The package also provides a no-op logger
// for tests and wiring code that cannot fail.
//
// Prefer these constructors over hand-rolled slog setup so every component
// emits records with the same shape.
package logging
