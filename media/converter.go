package media

import (
	"bytes"
	"fmt"
	"image"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/rwcarlsen/goexif/exif"
)

// Converter transcodes cataloged files between format classes according to
// a fixed format-pair policy. Conversion reads the stored file and writes a
// new one; it never touches the catalog rows.
type Converter struct {
	JpegQuality int
}

func NewConverter(jpegQuality int) *Converter {
	if jpegQuality <= 0 || jpegQuality > 100 {
		jpegQuality = 90
	}
	return &Converter{JpegQuality: jpegQuality}
}

// Convert applies the format-pair policy to a single file and reports
// whether a conversion (or copy) was performed:
//
//   - target equals source: plain byte copy into targetFolder under the
//     original filename, always succeeds
//   - JPEG source, raw target: refused, a JPEG cannot be upconverted
//   - JPEG/PNG target: decode, re-encode, written as the chosen display
//     name with the target's canonical extension
//   - any other target: reported as success without writing anything;
//     kept for compatibility with existing callers even though it reads
//     like it should be an error
//
// displayName is the image's chosen name (custom name if one was set, else
// the original name); its extension, if any, is replaced.
func (c *Converter) Convert(sourcePath string, sourceFormat FormatClass, targetFolder string, targetFormat FormatClass, displayName string) (bool, error) {
	if sourceFormat == targetFormat {
		if err := copyFile(sourcePath, filepath.Join(targetFolder, filepath.Base(sourcePath))); err != nil {
			return false, fmt.Errorf("failed to copy %s: %w", sourcePath, err)
		}
		return true, nil
	}

	if sourceFormat == FormatJPEG && targetFormat.IsRaw() {
		log.Printf("converter: refusing to convert JPEG %s to %s", sourcePath, targetFormat)
		return false, nil
	}

	switch targetFormat {
	case FormatJPEG, FormatPNG:
		return c.transcode(sourcePath, sourceFormat, targetFolder, targetFormat, displayName)
	default:
		// lenient fallback for unknown target formats
		return true, nil
	}
}

func (c *Converter) transcode(sourcePath string, sourceFormat FormatClass, targetFolder string, targetFormat FormatClass, displayName string) (bool, error) {
	img, err := decodeSource(sourcePath, sourceFormat)
	if err != nil {
		return false, &ConversionError{Path: sourcePath, Err: err}
	}

	baseName := strings.TrimSuffix(displayName, filepath.Ext(displayName))
	if baseName == "" {
		baseName = strings.TrimSuffix(filepath.Base(sourcePath), filepath.Ext(sourcePath))
	}
	outPath := filepath.Join(targetFolder, baseName+targetFormat.Extension())

	if err := os.MkdirAll(targetFolder, 0755); err != nil {
		return false, fmt.Errorf("failed to create target folder %s: %w", targetFolder, err)
	}

	var encodeErr error
	switch targetFormat {
	case FormatJPEG:
		encodeErr = imaging.Save(img, outPath, imaging.JPEGQuality(c.JpegQuality))
	case FormatPNG:
		encodeErr = imaging.Save(img, outPath)
	}
	if encodeErr != nil {
		return false, fmt.Errorf("failed to write converted file %s: %w", outPath, encodeErr)
	}

	log.Printf("converter: wrote %s (%s -> %s)", outPath, sourceFormat, targetFormat)
	return true, nil
}

// decodeSource decodes a source file into a renderable image. Raw
// containers are decoded through their embedded JPEG preview (the raw
// sensor data itself is not renderable without a camera-specific
// pipeline); standard containers decode directly.
func decodeSource(sourcePath string, sourceFormat FormatClass) (image.Image, error) {
	if sourceFormat.IsRaw() {
		if img, err := decodeRawPreview(sourcePath); err == nil {
			return img, nil
		}
		// some TIFF-based raw containers decode directly; try before
		// giving up
	}
	img, err := imaging.Open(sourcePath)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s container: %w", sourceFormat, err)
	}
	return img, nil
}

func decodeRawPreview(sourcePath string) (image.Image, error) {
	file, err := os.Open(sourcePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open raw file: %w", err)
	}
	defer file.Close()

	exifData, err := exif.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read raw container directory: %w", err)
	}
	preview, err := exifData.JpegThumbnail()
	if err != nil {
		return nil, fmt.Errorf("raw container has no embedded preview: %w", err)
	}
	img, err := imaging.Decode(bytes.NewReader(preview))
	if err != nil {
		return nil, fmt.Errorf("failed to decode embedded preview: %w", err)
	}
	return img, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open source: %w", err)
	}
	defer in.Close()

	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return fmt.Errorf("failed to create destination directory: %w", err)
	}

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("failed to create destination: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		os.Remove(dst)
		return fmt.Errorf("failed to write destination: %w", err)
	}
	return out.Close()
}
