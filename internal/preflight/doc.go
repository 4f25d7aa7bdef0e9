// Package preflight provides readiness checks for the directories, manifest,
// and external tools a run depends on.
//
// These checks run in two contexts:
//   - The run coordinator calls RequireDirectories before loading the
//     manifest. A failure aborts the run with services.ErrDirectoryInvalid.
//   - The CLI "clipbatch deps" command uses RunAll and CheckSystemDeps to
//     display a full readiness report.
package preflight
