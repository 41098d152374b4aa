package optimizer

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"

	"github.com/gwifloria/eriko-gallery/internal/logging"
)

// FFmpeg transcodes with the ffmpeg binary on PATH. Transcode blocks
// until the process exits, so video encodes never overlap.
type FFmpeg struct{}

func (FFmpeg) Transcode(ctx context.Context, src, dst string, p VideoParams) error {
	args := buildFFmpegArgs(src, dst, p)
	cmd := exec.CommandContext(ctx, args[0], args[1:]...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("ffmpeg: %w: %s", err, lastLines(stderr.String(), 3))
	}
	return nil
}

// buildFFmpegArgs assembles the fixed MP4 delivery command: H.264 video
// at the configured CRF and preset, AAC audio, and faststart so the
// container metadata sits ahead of the stream for progressive playback.
func buildFFmpegArgs(src, dst string, p VideoParams) []string {
	return []string{
		"ffmpeg", "-hide_banner", "-nostdin", "-y",
		"-loglevel", "error",
		"-i", src,
		"-c:v", "libx264",
		"-crf", strconv.Itoa(p.CRF),
		"-preset", p.Preset,
		"-c:a", "aac",
		"-movflags", "+faststart",
		dst,
	}
}

// convertVideo produces one MP4 for one source video. Success deletes
// the source (unless KeepSources); failure leaves it in place.
func convertVideo(ctx context.Context, opts Options, cand Candidate, enc VideoTranscoder, log *logging.Logger) ([]string, int) {
	if err := os.MkdirAll(opts.OutputDir, 0o755); err != nil {
		log.Warn("cannot create output directory %s: %v", opts.OutputDir, err)
		return nil, 1
	}

	dst := filepath.Join(opts.OutputDir, cand.Base+".mp4")
	if err := enc.Transcode(ctx, cand.Path, dst, opts.Video); err != nil {
		log.Warn("mp4 transcode failed for %s: %v", cand.Path, err)
		return nil, 1
	}

	removeSource(opts, cand.Path, log)
	return []string{dst}, 0
}
