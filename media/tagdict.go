package media

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rwcarlsen/goexif/exif"
	"github.com/rwcarlsen/goexif/tiff"
)

// SemanticField names a camera/exposure field the extractor knows how to
// populate.
type SemanticField string

const (
	FieldCamera       SemanticField = "camera"
	FieldISO          SemanticField = "iso"
	FieldFStop        SemanticField = "fstop"
	FieldExposureTime SemanticField = "exposure_time"
	FieldExposureBias SemanticField = "exposure_bias"
	FieldFocalLength  SemanticField = "focal_length"
)

// tagSpec binds a semantic field to the EXIF tag that carries it for one
// format class, together with the rule that renders the tag into the
// camera's description string and the rule that parses that string.
// Cameras disagree on where fields live and how they are written, so the
// whole mapping is data: supporting another camera format is a table edit,
// not new branching code.
type tagSpec struct {
	name     exif.FieldName
	describe func(*tiff.Tag) (string, error)
	apply    func(desc string, meta *Metadata) error
}

// extractionOrder fixes the field iteration order so failures are
// reported deterministically.
var extractionOrder = []SemanticField{
	FieldCamera,
	FieldISO,
	FieldFStop,
	FieldExposureTime,
	FieldExposureBias,
	FieldFocalLength,
}

// tagDictionary maps (FormatClass, SemanticField) to the tag lookup and
// parse rule for that pair. Format classes without an entry have no known
// tag mapping and skip extraction entirely.
var tagDictionary = map[FormatClass]map[SemanticField]tagSpec{
	FormatRawORF: {
		FieldCamera:       {name: exif.Model, describe: describeASCII, apply: applyCamera},
		FieldISO:          {name: exif.ISOSpeedRatings, describe: describeInt, apply: applyISO},
		FieldFStop:        {name: exif.FNumber, describe: describeFStop, apply: applyFStop},
		FieldExposureTime: {name: exif.ExposureTime, describe: describeFractionSeconds, apply: applyRawExposure},
		FieldExposureBias: {name: exif.ExposureBiasValue, describe: describeUnit("EV"), apply: applyExposureBias},
		FieldFocalLength:  {name: exif.FocalLength, describe: describeUnit("mm"), apply: applyFocalLength},
	},
	FormatRawNEF: {
		FieldCamera:       {name: exif.Model, describe: describeASCII, apply: applyCamera},
		FieldISO:          {name: exif.ISOSpeedRatings, describe: describeInt, apply: applyISO},
		FieldFStop:        {name: exif.FNumber, describe: describeFStop, apply: applyFStop},
		FieldExposureTime: {name: exif.ExposureTime, describe: describeFractionSeconds, apply: applyRawExposure},
		FieldExposureBias: {name: exif.ExposureBiasValue, describe: describeUnit("EV"), apply: applyExposureBias},
		FieldFocalLength:  {name: exif.FocalLength, describe: describeUnit("mm"), apply: applyFocalLength},
	},
	FormatJPEG: {
		FieldCamera:       {name: exif.Model, describe: describeASCII, apply: applyCamera},
		FieldISO:          {name: exif.ISOSpeedRatings, describe: describeInt, apply: applyISO},
		FieldFStop:        {name: exif.FNumber, describe: describeFStop, apply: applyFStop},
		FieldExposureTime: {name: exif.ExposureTime, describe: describeWholeSeconds, apply: applyJpegExposure},
		FieldExposureBias: {name: exif.ExposureBiasValue, describe: describeUnit("EV"), apply: applyExposureBias},
		FieldFocalLength:  {name: exif.FocalLength, describe: describeUnit("mm"), apply: applyFocalLength},
	},
}

// ParseFStop parses an f-stop description of the form "a/b". The value is
// the denominator: cameras write f/1.8 as "1/1.8", so the numerator is
// discarded.
func ParseFStop(desc string) (float64, error) {
	parts := strings.Split(desc, "/")
	if len(parts) != 2 {
		return 0, fmt.Errorf("malformed f-stop description %q", desc)
	}
	val, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return 0, fmt.Errorf("malformed f-stop description %q: %w", desc, err)
	}
	return val, nil
}

// ParseISO parses an ISO description as a plain integer.
func ParseISO(desc string) (int, error) {
	val, err := strconv.Atoi(strings.TrimSpace(desc))
	if err != nil {
		return 0, fmt.Errorf("malformed ISO description %q: %w", desc, err)
	}
	return val, nil
}

// ParseFractionExposure parses a raw-format exposure description of the
// form "a/b sec" and normalizes it to truncated milliseconds:
// "1/500 sec" -> 2.
func ParseFractionExposure(desc string) (int, error) {
	fraction, ok := strings.CutSuffix(strings.TrimSpace(desc), " sec")
	if !ok {
		return 0, fmt.Errorf("malformed exposure description %q: missing sec suffix", desc)
	}
	parts := strings.Split(fraction, "/")
	if len(parts) != 2 {
		return 0, fmt.Errorf("malformed exposure description %q", desc)
	}
	num, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return 0, fmt.Errorf("malformed exposure description %q: %w", desc, err)
	}
	den, err := strconv.ParseFloat(parts[1], 64)
	if err != nil || den == 0 {
		return 0, fmt.Errorf("malformed exposure description %q: bad denominator", desc)
	}
	return int(num / den * 1000), nil
}

// ParseWholeExposure parses a JPEG exposure description of the form
// "a sec" and normalizes it to truncated milliseconds: "1 sec" -> 1000.
func ParseWholeExposure(desc string) (int, error) {
	seconds, ok := strings.CutSuffix(strings.TrimSpace(desc), " sec")
	if !ok {
		return 0, fmt.Errorf("malformed exposure description %q: missing sec suffix", desc)
	}
	val, err := strconv.ParseFloat(seconds, 64)
	if err != nil {
		return 0, fmt.Errorf("malformed exposure description %q: %w", desc, err)
	}
	return int(val * 1000), nil
}

// ParseLeadingDecimal parses descriptions of the form "value <unit>"
// ("0.7 EV", "52 mm"), taking the token before the first space.
func ParseLeadingDecimal(desc string) (float64, error) {
	token, _, found := strings.Cut(strings.TrimSpace(desc), " ")
	if !found || token == "" {
		return 0, fmt.Errorf("malformed description %q: missing unit", desc)
	}
	val, err := strconv.ParseFloat(token, 64)
	if err != nil {
		return 0, fmt.Errorf("malformed description %q: %w", desc, err)
	}
	return val, nil
}

// tag description renderers: turn a raw EXIF tag into the string form the
// per-field parse rules expect.

func describeASCII(tag *tiff.Tag) (string, error) {
	val, err := tag.StringVal()
	if err != nil {
		return "", fmt.Errorf("tag is not a string: %w", err)
	}
	return strings.TrimRight(strings.TrimSpace(val), "\x00"), nil
}

func describeInt(tag *tiff.Tag) (string, error) {
	val, err := tag.Int(0)
	if err != nil {
		return "", fmt.Errorf("tag is not an integer: %w", err)
	}
	return strconv.Itoa(val), nil
}

func describeFStop(tag *tiff.Tag) (string, error) {
	num, den, err := tag.Rat2(0)
	if err != nil || den == 0 {
		return "", fmt.Errorf("tag is not a rational: %w", err)
	}
	return "1/" + formatDecimal(float64(num)/float64(den)), nil
}

func describeFractionSeconds(tag *tiff.Tag) (string, error) {
	num, den, err := tag.Rat2(0)
	if err != nil || den == 0 {
		return "", fmt.Errorf("tag is not a rational: %w", err)
	}
	return fmt.Sprintf("%d/%d sec", num, den), nil
}

func describeWholeSeconds(tag *tiff.Tag) (string, error) {
	num, den, err := tag.Rat2(0)
	if err != nil || den == 0 {
		return "", fmt.Errorf("tag is not a rational: %w", err)
	}
	return formatDecimal(float64(num)/float64(den)) + " sec", nil
}

func describeUnit(unit string) func(*tiff.Tag) (string, error) {
	return func(tag *tiff.Tag) (string, error) {
		num, den, err := tag.Rat2(0)
		if err != nil || den == 0 {
			return "", fmt.Errorf("tag is not a rational: %w", err)
		}
		return formatDecimal(float64(num)/float64(den)) + " " + unit, nil
	}
}

func formatDecimal(val float64) string {
	return strconv.FormatFloat(val, 'f', -1, 64)
}

// field assignment rules

func applyCamera(desc string, meta *Metadata) error {
	if desc == "" {
		return fmt.Errorf("empty camera description")
	}
	meta.Camera = desc
	return nil
}

func applyISO(desc string, meta *Metadata) error {
	val, err := ParseISO(desc)
	if err != nil {
		return err
	}
	meta.ISO = val
	return nil
}

func applyFStop(desc string, meta *Metadata) error {
	val, err := ParseFStop(desc)
	if err != nil {
		return err
	}
	meta.FStop = val
	return nil
}

func applyRawExposure(desc string, meta *Metadata) error {
	val, err := ParseFractionExposure(desc)
	if err != nil {
		return err
	}
	meta.ExposureTime = val
	return nil
}

func applyJpegExposure(desc string, meta *Metadata) error {
	val, err := ParseWholeExposure(desc)
	if err != nil {
		return err
	}
	meta.ExposureTime = val
	return nil
}

func applyExposureBias(desc string, meta *Metadata) error {
	val, err := ParseLeadingDecimal(desc)
	if err != nil {
		return err
	}
	meta.ExposureBias = val
	return nil
}

func applyFocalLength(desc string, meta *Metadata) error {
	val, err := ParseLeadingDecimal(desc)
	if err != nil {
		return err
	}
	meta.FocalLength = val
	return nil
}
