package imgutil

import (
	"bytes"
	"image"
	"image/png"
	"testing"
)

func TestDetectHeaderJPEG(t *testing.T) {
	header := []byte{0xff, 0xd8, 0xff, 0xe0, 0x00, 0x10, 0x4a, 0x46, 0x49, 0x46, 0x00, 0x01}
	kind, err := DetectHeader(header)
	if err != nil {
		t.Fatalf("detect: %v", err)
	}
	if kind != KindJPEG {
		t.Fatalf("expected jpeg, got %s", kind)
	}
}

func TestDetectHeaderPNG(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 1, 1))); err != nil {
		t.Fatalf("encode: %v", err)
	}

	kind, err := SniffReader(&buf)
	if err != nil {
		t.Fatalf("sniff: %v", err)
	}
	if kind != KindPNG {
		t.Fatalf("expected png, got %s", kind)
	}
}

func TestDetectHeaderHEIC(t *testing.T) {
	header := []byte{0x00, 0x00, 0x00, 0x18, 'f', 't', 'y', 'p', 'h', 'e', 'i', 'c'}
	kind, err := DetectHeader(header)
	if err != nil {
		t.Fatalf("detect: %v", err)
	}
	if kind != KindHEIC {
		t.Fatalf("expected heic, got %s", kind)
	}
}

func TestDetectHeaderUnknown(t *testing.T) {
	kind, err := DetectHeader([]byte("not an image at all"))
	if err != nil {
		t.Fatalf("detect: %v", err)
	}
	if kind != KindUnknown {
		t.Fatalf("expected unknown, got %s", kind)
	}
}

func TestDetectHeaderTooShort(t *testing.T) {
	if _, err := DetectHeader([]byte{0xff, 0xd8}); err == nil {
		t.Fatal("expected error for short header")
	}
}
