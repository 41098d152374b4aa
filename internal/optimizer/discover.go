package optimizer

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gwifloria/eriko-gallery/internal/logging"
)

// Recognized source extensions (lowercase, matched case-insensitively).
var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".heic": true,
	".heif": true,
}

var videoExtensions = map[string]bool{
	".mov": true,
}

// classify maps a path to a media kind by extension.
func classify(path string) (MediaKind, bool) {
	ext := strings.ToLower(filepath.Ext(path))
	switch {
	case imageExtensions[ext]:
		return MediaImage, true
	case videoExtensions[ext]:
		return MediaVideo, true
	default:
		return MediaImage, false
	}
}

func newCandidate(path string) (Candidate, bool) {
	kind, ok := classify(path)
	if !ok {
		return Candidate{}, false
	}
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return Candidate{Path: path, Base: base, Kind: kind}, true
}

// primaryOutput is the output path whose existence marks a source as
// already optimized: <base>.avif for images, <base>.mp4 for videos.
func primaryOutput(outputDir string, c Candidate) string {
	if c.Kind == MediaVideo {
		return filepath.Join(outputDir, c.Base+".mp4")
	}
	return filepath.Join(outputDir, c.Base+".avif")
}

// Discover selects the source files requiring conversion. The staged
// index is consulted first; if that query fails (no git, not a
// repository) discovery falls back to walking OriginDir. Staged
// candidates are not checked against existing outputs, so re-staging
// an already-optimized source re-encodes and overwrites it.
func Discover(ctx context.Context, opts Options, stage Staging, log *logging.Logger) []Candidate {
	if !opts.WalkOnly && stage != nil {
		staged, err := stage.StagedPaths(ctx)
		if err == nil {
			return fromStaged(staged, opts)
		}
		log.Warn("staged-file query failed, walking %s instead: %v", opts.OriginDir, err)
	}
	return walkOrigin(opts, log)
}

func fromStaged(staged []string, opts Options) []Candidate {
	absOrigin, err := filepath.Abs(opts.OriginDir)
	if err != nil {
		absOrigin = opts.OriginDir
	}

	var found []Candidate
	for _, path := range staged {
		if !isWithin(path, absOrigin) {
			continue
		}
		if cand, ok := newCandidate(path); ok {
			found = append(found, cand)
		}
	}
	sortCandidates(found)
	return found
}

// walkOrigin enumerates OriginDir recursively, skipping sources whose
// primary output already exists. Unreadable directories contribute no
// files but never abort the walk.
func walkOrigin(opts Options, log *logging.Logger) []Candidate {
	var found []Candidate
	_ = filepath.WalkDir(opts.OriginDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			log.Warn("skipping unreadable path %s: %v", path, err)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		cand, ok := newCandidate(path)
		if !ok {
			return nil
		}
		if _, err := os.Stat(primaryOutput(opts.OutputDir, cand)); err == nil {
			return nil
		}
		found = append(found, cand)
		return nil
	})
	sortCandidates(found)
	return found
}

func sortCandidates(cands []Candidate) {
	sort.Slice(cands, func(i, j int) bool { return cands[i].Path < cands[j].Path })
}

func isWithin(path, root string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	if rel == "." {
		return true
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
