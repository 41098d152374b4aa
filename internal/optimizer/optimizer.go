// Package optimizer implements the gallery media workflow: discover
// source files, convert images to AVIF/WebP and videos to MP4, delete
// converted sources, and stage the produced outputs.
package optimizer

import (
	"context"
	"os"

	"github.com/gwifloria/eriko-gallery/internal/logging"
)

// Run executes one full optimization pass. The origin directory being
// absent is a normal empty run, not an error. All per-file failures
// are logged and counted but never abort the pass; only a failure to
// stat an existing origin directory is returned.
func Run(ctx context.Context, opts Options, stage Staging, enc VideoTranscoder, log *logging.Logger, updates chan<- ProgressUpdate) (Summary, error) {
	var summary Summary

	if _, err := os.Stat(opts.OriginDir); err != nil {
		if os.IsNotExist(err) {
			log.Info("origin directory %s not found, nothing to do", opts.OriginDir)
			return summary, nil
		}
		return summary, err
	}

	if enc == nil {
		enc = FFmpeg{}
	}

	candidates := Discover(ctx, opts, stage, log)
	if len(candidates) == 0 {
		log.Info("no media to optimize")
		return summary, nil
	}
	send(updates, ProgressUpdate{TotalDelta: len(candidates)})

	var images, videos []Candidate
	for _, c := range candidates {
		if c.Kind == MediaVideo {
			videos = append(videos, c)
		} else {
			images = append(images, c)
		}
	}

	// One file is fully converted before the next begins; images first,
	// then videos.
	var outputs []string
	for _, c := range images {
		outputs = collect(ctx, opts, c, enc, log, updates, &summary, outputs)
	}
	for _, c := range videos {
		outputs = collect(ctx, opts, c, enc, log, updates, &summary, outputs)
	}

	if stage != nil {
		for _, out := range outputs {
			if err := stage.Add(ctx, out); err != nil {
				log.Warn("could not stage %s: %v", out, err)
				continue
			}
			summary.Staged++
		}
	}

	return summary, nil
}

func collect(ctx context.Context, opts Options, c Candidate, enc VideoTranscoder, log *logging.Logger, updates chan<- ProgressUpdate, summary *Summary, outputs []string) []string {
	log.Debug("converting %s %s", c.Kind, c.Path)
	srcSize := fileSize(c.Path)

	var outs []string
	var failures int
	if c.Kind == MediaVideo {
		outs, failures = convertVideo(ctx, opts, c, enc, log)
	} else {
		outs, failures = convertImage(ctx, opts, c, log)
	}

	var saved int64
	if len(outs) > 0 {
		if c.Kind == MediaVideo {
			summary.Videos++
		} else {
			summary.Images++
		}
		saved = srcSize
		for _, out := range outs {
			saved -= fileSize(out)
		}
		summary.BytesSaved += saved
		log.Success("%s -> %d output(s)", c.Path, len(outs))
	}
	summary.Outputs += len(outs)
	summary.Errors += failures

	send(updates, ProgressUpdate{
		ConvertedDelta:  1,
		OutputDelta:     len(outs),
		ErrorDelta:      failures,
		BytesSavedDelta: saved,
	})
	return append(outputs, outs...)
}

func fileSize(path string) int64 {
	info, err := os.Stat(path)
	if err != nil {
		return 0
	}
	return info.Size()
}

func send(updates chan<- ProgressUpdate, u ProgressUpdate) {
	if updates != nil {
		updates <- u
	}
}
