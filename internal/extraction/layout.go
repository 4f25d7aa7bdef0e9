package extraction

import (
	"fmt"
	"path/filepath"
	"strings"

	"clipbatch/internal/fileutil"
	"clipbatch/internal/services"
	"clipbatch/internal/source"
)

// ListFileName is the concat list written inside an item's scratch directory.
const ListFileName = "files.txt"

// CheckID rejects ids that do not name exactly one entry inside the output
// directory. Every path helper below joins the id verbatim.
func CheckID(id string) error {
	var problem string
	switch {
	case id == "":
		problem = "empty id"
	case id == "." || id == "..":
		problem = fmt.Sprintf("id %q is a relative directory reference", id)
	case strings.ContainsAny(id, `/\`+"\x00"), id != filepath.Base(id):
		problem = fmt.Sprintf("id %q is not a single file name", id)
	default:
		return nil
	}
	return services.Wrap(services.ErrValidation, "extraction", "check id", problem, nil)
}

// OutputPath returns the final artifact path for id.
func OutputPath(outputDir, id string) string {
	return filepath.Join(outputDir, id+source.MediaExtension)
}

// ScratchDir returns the per-item directory holding segments and the concat list.
func ScratchDir(outputDir, id string) string {
	return filepath.Join(outputDir, id)
}

// SegmentPath returns the path of segment n (zero-based) for id.
func SegmentPath(outputDir, id string, n int) string {
	return filepath.Join(ScratchDir(outputDir, id), fmt.Sprintf("%spart%d%s", id, n, source.MediaExtension))
}

// ListPath returns the concat list path for id.
func ListPath(outputDir, id string) string {
	return filepath.Join(ScratchDir(outputDir, id), ListFileName)
}

func partialPath(outputDir, id string) string {
	return filepath.Join(outputDir, "."+id+".partial"+source.MediaExtension)
}

// Guard decides whether an item already has its final artifact.
type Guard struct {
	OutputDir string
}

// Done reports whether <output>/<id>.mp4 exists, returning its path.
func (g Guard) Done(id string) (string, bool) {
	path := OutputPath(g.OutputDir, id)
	return path, fileutil.Exists(path)
}
