package optimizer

import "context"

// MediaKind partitions candidates into the two conversion paths.
type MediaKind int

const (
	MediaImage MediaKind = iota
	MediaVideo
)

func (k MediaKind) String() string {
	if k == MediaVideo {
		return "video"
	}
	return "image"
}

// FormatParams holds the fixed encode constants for one output format.
type FormatParams struct {
	Quality int
	Effort  int
}

// VideoParams holds the fixed MP4 transcode constants.
type VideoParams struct {
	CRF    int
	Preset string
}

// Options configures one optimizer run.
type Options struct {
	OriginDir string
	OutputDir string

	AVIF  FormatParams
	WebP  FormatParams
	Video VideoParams

	// SkipWebP produces AVIF only.
	SkipWebP bool
	// KeepSources leaves source files in place after conversion.
	KeepSources bool
	// WalkOnly skips the staged-files query and always walks OriginDir.
	WalkOnly bool
}

// DefaultOptions returns the standard gallery layout and encode
// constants.
func DefaultOptions() Options {
	return Options{
		OriginDir: "origin",
		OutputDir: "images",
		AVIF:      FormatParams{Quality: 65, Effort: 6},
		WebP:      FormatParams{Quality: 75, Effort: 6},
		Video:     VideoParams{CRF: 23, Preset: "medium"},
	}
}

// Staging is the version-control collaborator. Both operations are
// allowed to fail without aborting a run.
type Staging interface {
	StagedPaths(ctx context.Context) ([]string, error)
	Add(ctx context.Context, path string) error
}

// VideoTranscoder produces one MP4 from one source video, returning
// only after the encode has fully completed or failed.
type VideoTranscoder interface {
	Transcode(ctx context.Context, src, dst string, p VideoParams) error
}

// Candidate is one source file selected by discovery.
type Candidate struct {
	Path string
	Base string // basename without extension
	Kind MediaKind
}

// OutputNames lists the delivery filenames conversion would produce
// for this candidate.
func (c Candidate) OutputNames(skipWebP bool) []string {
	if c.Kind == MediaVideo {
		return []string{c.Base + ".mp4"}
	}
	names := []string{c.Base + ".avif"}
	if !skipWebP {
		names = append(names, c.Base+".webp")
	}
	return names
}

// Summary aggregates one run for the closing report.
type Summary struct {
	Images     int
	Videos     int
	Outputs    int
	Staged     int
	Errors     int
	BytesSaved int64
}

// ProgressUpdate carries incremental counters to the progress UI.
type ProgressUpdate struct {
	TotalDelta      int
	ConvertedDelta  int
	OutputDelta     int
	ErrorDelta      int
	BytesSavedDelta int64
}
