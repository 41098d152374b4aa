package optimizer

import (
	"context"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/gen2brain/avif"
	"github.com/gen2brain/webp"

	"github.com/gwifloria/eriko-gallery/internal/logging"
	"github.com/gwifloria/eriko-gallery/pkg/imgutil"
)

// convertImage produces the delivery formats for one source image:
// AVIF always, WebP unless disabled. The two encodes are independent;
// one format failing does not block the other. Producing at least one
// output counts as success and deletes the source (unless KeepSources).
// Returns the produced output paths and the number of failures.
func convertImage(ctx context.Context, opts Options, cand Candidate, log *logging.Logger) ([]string, int) {
	src := cand.Path

	kind, err := imgutil.SniffFile(src)
	if err != nil || kind == imgutil.KindUnknown {
		log.Warn("unrecognized image content in %s: %v", src, err)
		return nil, 1
	}

	decodePath := src
	if kind == imgutil.KindHEIC {
		tmp, cleanup, err := preconvertHEIC(ctx, src, log)
		if cleanup != nil {
			defer cleanup()
		}
		if err != nil {
			log.Warn("heic pre-conversion failed for %s: %v", src, err)
			return nil, 1
		}
		decodePath = tmp
		kind = imgutil.KindJPEG
	}

	img, err := decodeImage(decodePath, kind)
	if err != nil {
		log.Warn("cannot decode %s: %v", src, err)
		return nil, 1
	}

	var outputs []string
	failures := 0

	avifPath := filepath.Join(opts.OutputDir, cand.Base+".avif")
	err = writeEncoded(avifPath, func(w io.Writer) error {
		return avif.Encode(w, img, avif.Options{
			Quality: opts.AVIF.Quality,
			Speed:   speedFromEffort(opts.AVIF.Effort),
		})
	})
	if err != nil {
		log.Warn("avif encode failed for %s: %v", src, err)
		failures++
	} else {
		outputs = append(outputs, avifPath)
	}

	if !opts.SkipWebP {
		webpPath := filepath.Join(opts.OutputDir, cand.Base+".webp")
		err = writeEncoded(webpPath, func(w io.Writer) error {
			return webp.Encode(w, img, webp.Options{
				Quality: opts.WebP.Quality,
				Method:  opts.WebP.Effort,
			})
		})
		if err != nil {
			log.Warn("webp encode failed for %s: %v", src, err)
			failures++
		} else {
			outputs = append(outputs, webpPath)
		}
	}

	if len(outputs) > 0 {
		removeSource(opts, src, log)
	}
	return outputs, failures
}

func decodeImage(path string, kind imgutil.Kind) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	switch kind {
	case imgutil.KindJPEG:
		return jpeg.Decode(f)
	case imgutil.KindPNG:
		return png.Decode(f)
	default:
		return nil, fmt.Errorf("no decoder for %s content", kind)
	}
}

// speedFromEffort maps the effort scale (higher is slower) onto the
// AVIF encoder speed scale (higher is faster).
func speedFromEffort(effort int) int {
	speed := 10 - effort
	if speed < 0 {
		speed = 0
	}
	if speed > 10 {
		speed = 10
	}
	return speed
}

// writeEncoded writes one output atomically: encode into a temp file in
// the destination directory, then rename over the final path.
func writeEncoded(destPath string, encode func(io.Writer) error) error {
	destDir := filepath.Dir(destPath)
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(destDir, ".mediaopt-*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if err := encode(tmp); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	return replaceFile(tmp.Name(), destPath)
}

func replaceFile(tmpPath, destPath string) error {
	if err := os.Rename(tmpPath, destPath); err == nil {
		return nil
	}
	if err := os.Remove(destPath); err != nil && !os.IsNotExist(err) {
		return err
	}
	return os.Rename(tmpPath, destPath)
}

// preconvertHEIC converts a HEIC/HEIF source into a temporary JPEG the
// main encoder can read. The returned cleanup removes the intermediate
// on every exit path and must be deferred by the caller.
func preconvertHEIC(ctx context.Context, src string, log *logging.Logger) (string, func(), error) {
	tmp, err := os.CreateTemp("", "mediaopt-heic-*.jpg")
	if err != nil {
		return "", nil, err
	}
	tmpPath := tmp.Name()
	if err := tmp.Close(); err != nil {
		return "", nil, err
	}

	cleanup := func() {
		if err := os.Remove(tmpPath); err != nil && !os.IsNotExist(err) {
			log.Warn("could not remove intermediate %s: %v", tmpPath, err)
		}
	}

	var cmd *exec.Cmd
	if runtime.GOOS == "darwin" {
		cmd = exec.CommandContext(ctx, "sips", "-s", "format", "jpeg", src, "--out", tmpPath)
	} else {
		cmd = exec.CommandContext(ctx, "heif-convert", src, tmpPath)
	}

	if out, err := cmd.CombinedOutput(); err != nil {
		return "", cleanup, fmt.Errorf("%s: %w: %s", cmd.Args[0], err, lastLines(string(out), 2))
	}
	return tmpPath, cleanup, nil
}

func removeSource(opts Options, src string, log *logging.Logger) {
	if opts.KeepSources {
		return
	}
	if err := os.Remove(src); err != nil {
		log.Warn("could not delete source %s: %v", src, err)
	}
}

func lastLines(s string, n int) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.Join(lines, " | ")
}
