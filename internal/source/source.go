// Package source maps manifest item ids to input media files.
//
// The default SubstringLocator picks the first file, in sorted name order,
// whose name contains "<id>." and ".mp4". Because matching is by substring an
// id that prefixes another file name can match that file (id "12" matches
// "112.mp4"). ExactLocator requires the name to be exactly "<id>.mp4" and is
// selected with source.match = "exact". Both compare NFC-normalized strings.
package source

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/text/unicode/norm"

	"clipbatch/internal/config"
	"clipbatch/internal/services"
)

// MediaExtension is the container marker that candidate files must carry.
const MediaExtension = ".mp4"

// Locator resolves an item id to a source file path.
//
// found is false when no candidate exists; err is reserved for directory
// access failures.
type Locator interface {
	Locate(id string) (path string, found bool, err error)
}

// SubstringLocator matches the first entry containing "<id>." and ".mp4".
type SubstringLocator struct {
	Dir string
}

// ExactLocator matches an entry named exactly "<id>.mp4".
type ExactLocator struct {
	Dir string
}

// New returns the locator selected by match ("substring" or "exact").
func New(dir, match string) (Locator, error) {
	switch strings.ToLower(strings.TrimSpace(match)) {
	case "", config.MatchSubstring:
		return SubstringLocator{Dir: dir}, nil
	case config.MatchExact:
		return ExactLocator{Dir: dir}, nil
	default:
		return nil, services.Wrap(services.ErrConfiguration, "source", "select locator", fmt.Sprintf("unknown match strategy %q", match), nil)
	}
}

// Locate implements Locator.
func (l SubstringLocator) Locate(id string) (string, bool, error) {
	needle := norm.NFC.String(id) + "."
	return scan(l.Dir, func(name string) bool {
		return strings.Contains(name, needle) && strings.Contains(name, MediaExtension)
	})
}

// Locate implements Locator.
func (l ExactLocator) Locate(id string) (string, bool, error) {
	want := norm.NFC.String(id) + MediaExtension
	return scan(l.Dir, func(name string) bool {
		return name == want
	})
}

func scan(dir string, match func(name string) bool) (string, bool, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", false, services.Wrap(services.ErrDirectoryInvalid, "source", "read input directory", dir, err)
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)
	for _, name := range names {
		if match(norm.NFC.String(name)) {
			return filepath.Join(dir, name), true, nil
		}
	}
	return "", false, nil
}
