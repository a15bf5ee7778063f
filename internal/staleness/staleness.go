// Package staleness decides whether a production frontend build is out of
// date. The comparison is a coarse whole-tree mtime check: any touched source
// file forces a full rebuild. That is intentional — per-file dependency
// tracking belongs to the bundler, not to this orchestrator.
package staleness

import (
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

// Verdict is the result of a staleness check.
type Verdict int

const (
	UpToDate Verdict = iota
	NeedsBuild
)

func (v Verdict) String() string {
	if v == NeedsBuild {
		return "needs build"
	}
	return "up to date"
}

// Target pairs the source inputs of a build with its output directory. It
// carries no state beyond the paths; every check re-reads the filesystem.
type Target struct {
	SrcDir          string // frontend source tree, scanned recursively
	EntryHTML       string // frontend entry html file
	ToolchainConfig string // bundler config file
	OutputDir       string // build output directory, scanned recursively
}

// Check returns NeedsBuild when the output directory is missing or empty, or
// when any source input is strictly newer than the newest output file. Equal
// timestamps count as up to date. Files that cannot be statted mid-scan are
// excluded from the comparison rather than failing the check.
func Check(t Target) Verdict {
	latestOutput, outputFiles := latestMtime(t.OutputDir)
	if outputFiles == 0 {
		return NeedsBuild
	}

	latestSource, sourceFiles := latestMtime(t.SrcDir)
	for _, extra := range []string{t.EntryHTML, t.ToolchainConfig} {
		if extra == "" {
			continue
		}
		info, err := os.Stat(extra)
		if err != nil || info.IsDir() {
			continue
		}
		sourceFiles++
		if info.ModTime().After(latestSource) {
			latestSource = info.ModTime()
		}
	}

	// Nothing to compare against: absent inputs never force a rebuild.
	if sourceFiles == 0 {
		return UpToDate
	}

	if latestSource.After(latestOutput) {
		return NeedsBuild
	}
	return UpToDate
}

// latestMtime walks dir and returns the newest file modification time along
// with the number of regular files seen. Unreadable entries are skipped.
func latestMtime(dir string) (time.Time, int) {
	var latest time.Time
	count := 0

	_ = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Permission problems and broken symlinks drop out of the
			// comparison instead of aborting it.
			return nil
		}
		if d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		count++
		if info.ModTime().After(latest) {
			latest = info.ModTime()
		}
		return nil
	})

	return latest, count
}
