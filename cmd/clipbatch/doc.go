// Package main hosts the clipbatch CLI entrypoint and command graph.
//
// The Cobra-based command tree resolves configuration once, applies flag
// overrides, prompts for missing directories and intensity when attached to a
// terminal, and hands a fully resolved run.Options to the coordinator. The
// plan, deps, and config commands expose the same wiring without invoking
// ffmpeg.
//
// Keep this package lean: behaviour belongs in the internal packages, and
// commands here only translate flags and render results.
package main
