package media

import (
	"fmt"
	"math"
	"os"
	"time"

	"github.com/rwcarlsen/goexif/exif"
)

// CameraNotAvailable is the camera label used when a file carries no
// readable camera metadata.
const CameraNotAvailable = "not available"

// Metadata is the normalized record the extractor produces for one file.
// Numeric fields default to zero and the camera label to
// CameraNotAvailable when the file has no tag directory.
type Metadata struct {
	Camera       string    `json:"camera"`
	ISO          int       `json:"iso"`
	FStop        float64   `json:"fstop"`
	ExposureTime int       `json:"exposure_time"` // milliseconds
	ExposureBias float64   `json:"exposure_bias"` // EV steps
	FocalLength  float64   `json:"focal_length"`  // mm
	SizeMB       float64   `json:"size"`          // megabytes, 3 decimals
	TakenAt      time.Time `json:"taken_at"`
}

func defaultMetadata() *Metadata {
	return &Metadata{Camera: CameraNotAvailable}
}

// Extract reads the embedded tag directory of the file at path and
// produces a normalized Metadata record.
//
// File size and capture time never come from the tag directory: size is
// the on-disk length converted to megabytes, and the capture timestamp is
// the file's modification time (EXIF dates are unreliable for files that
// have been edited).
//
// Format classes without a tag-index mapping (e.g. PNG) and files without
// an EXIF block return the defaults; neither case is an error. A tag that
// is present but malformed aborts the whole extraction with a single
// ExtractionError wrapping the cause.
func Extract(path string, class FormatClass) (*Metadata, error) {
	meta := defaultMetadata()

	info, err := os.Stat(path)
	if err != nil {
		return nil, &ExtractionError{Path: path, Err: fmt.Errorf("failed to stat file: %w", err)}
	}
	meta.SizeMB = round3(float64(info.Size()) / (1024 * 1024))
	meta.TakenAt = info.ModTime()

	specs, ok := tagDictionary[class]
	if !ok {
		// no tag mapping for this format; defaults are the answer
		return meta, nil
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, &ExtractionError{Path: path, Err: fmt.Errorf("failed to open file: %w", err)}
	}
	defer file.Close()

	exifData, err := exif.Decode(file)
	if err != nil {
		if exif.IsCriticalError(err) {
			// no usable EXIF block; the deliberate no-metadata branch
			return meta, nil
		}
		return nil, &ExtractionError{Path: path, Err: fmt.Errorf("failed to decode tag directory: %w", err)}
	}

	for _, field := range extractionOrder {
		spec, ok := specs[field]
		if !ok {
			continue
		}
		tag, err := exifData.Get(spec.name)
		if err != nil || tag == nil {
			// tag absent for this file; keep the default
			continue
		}
		desc, err := spec.describe(tag)
		if err != nil {
			return nil, &ExtractionError{Path: path, Err: fmt.Errorf("field %s: %w", field, err)}
		}
		if err := spec.apply(desc, meta); err != nil {
			return nil, &ExtractionError{Path: path, Err: fmt.Errorf("field %s: %w", field, err)}
		}
	}

	return meta, nil
}

func round3(val float64) float64 {
	return math.Round(val*1000) / 1000
}
