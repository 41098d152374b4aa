package optimizer

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"
)

func TestAnalyzeSourceMetadataJPEG(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "tagged.jpg")
	if err := buildJPEGWithExif(src); err != nil {
		t.Fatalf("build JPEG: %v", err)
	}

	meta, err := AnalyzeSourceMetadata(src)
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if !meta.HasModel || !meta.HasTimestamp {
		t.Fatalf("expected model and timestamp, got %+v", meta)
	}

	cats := meta.Categories()
	if len(cats) != 2 || cats[0] != "Device Model" || cats[1] != "Timestamp" {
		t.Fatalf("unexpected categories: %v", cats)
	}
}

func TestAnalyzeSourceMetadataPlainImage(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "plain.png")
	writePNG(t, src)

	meta, err := AnalyzeSourceMetadata(src)
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if len(meta.Categories()) != 0 {
		t.Fatalf("expected no metadata, got %+v", meta)
	}
}

func buildJPEGWithExif(path string) error {
	exifData := buildExifTIFF()
	exif := append([]byte("Exif\x00\x00"), exifData...)

	var buf bytes.Buffer
	buf.Write([]byte{0xff, 0xd8})
	buf.Write([]byte{0xff, 0xe1})
	_ = binary.Write(&buf, binary.BigEndian, uint16(len(exif)+2))
	buf.Write(exif)
	buf.Write([]byte{0xff, 0xd9})

	return os.WriteFile(path, buf.Bytes(), 0o644)
}

func buildExifTIFF() []byte {
	var tiff bytes.Buffer
	tiff.Write([]byte{0x49, 0x49, 0x2a, 0x00})
	_ = binary.Write(&tiff, binary.LittleEndian, uint32(8))
	_ = binary.Write(&tiff, binary.LittleEndian, uint16(2))
	_ = binary.Write(&tiff, binary.LittleEndian, uint16(0x0110))
	_ = binary.Write(&tiff, binary.LittleEndian, uint16(2))
	_ = binary.Write(&tiff, binary.LittleEndian, uint32(8))
	_ = binary.Write(&tiff, binary.LittleEndian, uint32(38))
	_ = binary.Write(&tiff, binary.LittleEndian, uint16(0x0132))
	_ = binary.Write(&tiff, binary.LittleEndian, uint16(2))
	_ = binary.Write(&tiff, binary.LittleEndian, uint32(20))
	_ = binary.Write(&tiff, binary.LittleEndian, uint32(46))
	_ = binary.Write(&tiff, binary.LittleEndian, uint32(0))
	tiff.Write([]byte("TestCam\x00"))
	tiff.Write([]byte("2024:01:02 03:04:05\x00"))
	return tiff.Bytes()
}
