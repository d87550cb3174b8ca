package media

import (
	"path/filepath"
	"strings"
)

// FormatClass represents a known image format class, derived from a file's
// extension.
type FormatClass string

const (
	FormatRawORF      FormatClass = "RAW-ORF"
	FormatRawNEF      FormatClass = "RAW-NEF"
	FormatJPEG        FormatClass = "JPEG"
	FormatPNG         FormatClass = "PNG"
	FormatUnsupported FormatClass = "Unsupported"
)

// Map of lower-cased extensions to format classes
var formatExtensions = map[string]FormatClass{
	".orf": FormatRawORF,
	".nef": FormatRawNEF,
	".jpg": FormatJPEG,
	".png": FormatPNG,
}

// canonical output extension per format class
var formatCanonicalExt = map[FormatClass]string{
	FormatRawORF: ".orf",
	FormatRawNEF: ".nef",
	FormatJPEG:   ".jpg",
	FormatPNG:    ".png",
}

// Classify determines the format class of a filename from its extension,
// case-insensitively. Unknown extensions map to FormatUnsupported; there
// is no failure mode.
func Classify(filename string) FormatClass {
	ext := strings.ToLower(filepath.Ext(filename))
	if class, ok := formatExtensions[ext]; ok {
		return class
	}
	return FormatUnsupported
}

// IsRaw reports whether the class is one of the camera raw container
// classes.
func (fc FormatClass) IsRaw() bool {
	return fc == FormatRawORF || fc == FormatRawNEF
}

// IsSupported reports whether files of this class may be ingested.
func (fc FormatClass) IsSupported() bool {
	return fc != FormatUnsupported
}

// Extension returns the canonical lower-case extension for the class,
// including the leading dot, or "" for FormatUnsupported.
func (fc FormatClass) Extension() string {
	return formatCanonicalExt[fc]
}
