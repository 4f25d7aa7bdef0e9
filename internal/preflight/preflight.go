package preflight

import (
	"clipbatch/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes the filesystem checks for the given config. Unset paths are
// reported as failures so the report shows what still needs configuring.
func RunAll(cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}
	return []Result{
		CheckDirectoryAccess("Input directory", cfg.Paths.InputDir, AccessRead),
		CheckDirectoryAccess("Output directory", cfg.Paths.OutputDir, AccessReadWrite),
		CheckDirectoryAccess("Log directory", cfg.Paths.LogDir, AccessReadWrite),
		CheckManifest("Manifest", cfg.Paths.Manifest),
	}
}
