package optimizer

import (
	"io"
	"os"
	"strings"

	exif "github.com/dsoprea/go-exif/v3"
)

// SourceMetadata summarizes the EXIF fields a source image carries.
// Conversion re-encodes pixels only, so everything reported here is
// dropped from the delivery outputs.
type SourceMetadata struct {
	HasGPS       bool
	HasModel     bool
	HasTimestamp bool
}

// Categories lists the populated metadata groups for display.
func (m SourceMetadata) Categories() []string {
	var cats []string
	if m.HasGPS {
		cats = append(cats, "GPS")
	}
	if m.HasModel {
		cats = append(cats, "Device Model")
	}
	if m.HasTimestamp {
		cats = append(cats, "Timestamp")
	}
	return cats
}

// AnalyzeSourceMetadata inspects one source image for EXIF metadata.
// Sources without EXIF yield an empty result, not an error.
func AnalyzeSourceMetadata(path string) (SourceMetadata, error) {
	f, err := os.Open(path)
	if err != nil {
		return SourceMetadata{}, err
	}
	defer f.Close()

	return analyzeExif(f)
}

func analyzeExif(rs io.ReadSeeker) (SourceMetadata, error) {
	meta := SourceMetadata{}

	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return meta, err
	}

	tags, _, err := exif.GetFlatExifDataUniversalSearchWithReadSeeker(rs, nil, true)
	if err != nil {
		if isNoExif(err) {
			return meta, nil
		}
		return meta, err
	}

	for _, tag := range tags {
		name := tag.TagName
		if strings.HasPrefix(name, "GPS") || strings.Contains(tag.IfdPath, "GPS") {
			meta.HasGPS = true
		}
		if name == "Model" || name == "CameraModelName" {
			meta.HasModel = true
		}
		if name == "DateTimeOriginal" || name == "DateTimeDigitized" || name == "DateTime" {
			meta.HasTimestamp = true
		}
	}

	return meta, nil
}

func isNoExif(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(strings.ToLower(err.Error()), "no exif")
}
