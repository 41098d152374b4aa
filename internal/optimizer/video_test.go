package optimizer

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestBuildFFmpegArgs(t *testing.T) {
	args := buildFFmpegArgs("origin/clip.mov", "images/clip.mp4", VideoParams{CRF: 23, Preset: "medium"})

	joined := strings.Join(args, " ")
	for _, want := range []string{
		"-i origin/clip.mov",
		"-c:v libx264",
		"-crf 23",
		"-preset medium",
		"-c:a aac",
		"-movflags +faststart",
	} {
		if !strings.Contains(joined, want) {
			t.Errorf("args missing %q: %s", want, joined)
		}
	}
	if args[len(args)-1] != "images/clip.mp4" {
		t.Errorf("destination must be the final argument: %s", joined)
	}
}

func TestConvertVideoDeletesSourceOnSuccess(t *testing.T) {
	dir := t.TempDir()
	opts := testOptions(dir)

	src := filepath.Join(opts.OriginDir, "clip.mov")
	mustWrite(t, src, []byte("mov"))

	cand, ok := newCandidate(src)
	if !ok || cand.Kind != MediaVideo {
		t.Fatalf("candidate not recognized as video: %+v", cand)
	}

	enc := &fakeTranscoder{}
	outputs, failures := convertVideo(context.Background(), opts, cand, enc, nil)
	if failures != 0 || len(outputs) != 1 {
		t.Fatalf("expected one output, got outputs=%v failures=%d", outputs, failures)
	}
	if filepath.Base(outputs[0]) != "clip.mp4" {
		t.Fatalf("unexpected output: %s", outputs[0])
	}
	if _, err := os.Stat(src); !os.IsNotExist(err) {
		t.Fatal("source should be deleted after successful transcode")
	}
}

func TestConvertVideoFailureKeepsSource(t *testing.T) {
	dir := t.TempDir()
	opts := testOptions(dir)

	src := filepath.Join(opts.OriginDir, "clip.mov")
	mustWrite(t, src, []byte("mov"))

	cand, _ := newCandidate(src)
	outputs, failures := convertVideo(context.Background(), opts, cand, &fakeTranscoder{fail: true}, nil)
	if len(outputs) != 0 || failures != 1 {
		t.Fatalf("expected failure, got outputs=%v failures=%d", outputs, failures)
	}
	if _, err := os.Stat(src); err != nil {
		t.Fatalf("source must remain after failed transcode: %v", err)
	}
}

func TestConvertVideoKeepSources(t *testing.T) {
	dir := t.TempDir()
	opts := testOptions(dir)
	opts.KeepSources = true

	src := filepath.Join(opts.OriginDir, "clip.mov")
	mustWrite(t, src, []byte("mov"))

	cand, _ := newCandidate(src)
	if outputs, _ := convertVideo(context.Background(), opts, cand, &fakeTranscoder{}, nil); len(outputs) != 1 {
		t.Fatalf("expected one output, got %v", outputs)
	}
	if _, err := os.Stat(src); err != nil {
		t.Fatalf("source must be retained with KeepSources: %v", err)
	}
}
