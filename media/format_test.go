package media_test

import (
	"testing"

	"github.com/camden-git/photocatalog/media"
)

func TestClassifyKnownExtensions(t *testing.T) {
	cases := map[string]media.FormatClass{
		"shot.orf":           media.FormatRawORF,
		"shot.nef":           media.FormatRawNEF,
		"shot.jpg":           media.FormatJPEG,
		"shot.png":           media.FormatPNG,
		"shot.txt":           media.FormatUnsupported,
		"shot":               media.FormatUnsupported,
		"archive.tar.gz":     media.FormatUnsupported,
		"folder/nested.nef":  media.FormatRawNEF,
		"trailing.dot.":      media.FormatUnsupported,
	}
	for filename, want := range cases {
		if got := media.Classify(filename); got != want {
			t.Errorf("Classify(%q) = %q, want %q", filename, got, want)
		}
	}
}

func TestClassifyIsCaseInsensitive(t *testing.T) {
	variants := []string{"a.ORF", "a.Orf", "a.oRf", "a.NEF", "a.Nef", "a.JPG", "a.Jpg", "a.PNG", "a.pNg"}
	for _, filename := range variants {
		mixed := media.Classify(filename)
		if mixed == media.FormatUnsupported {
			t.Errorf("Classify(%q) = Unsupported, want a supported class", filename)
			continue
		}
		lower := media.Classify(lowerExt(filename))
		if mixed != lower {
			t.Errorf("Classify(%q) = %q, but canonical case gives %q", filename, mixed, lower)
		}
	}
}

func lowerExt(name string) string {
	out := []byte(name)
	for i := len(out) - 1; i >= 0 && out[i] != '.'; i-- {
		if out[i] >= 'A' && out[i] <= 'Z' {
			out[i] += 'a' - 'A'
		}
	}
	return string(out)
}

func TestFormatClassGroups(t *testing.T) {
	if !media.FormatRawORF.IsRaw() || !media.FormatRawNEF.IsRaw() {
		t.Error("expected ORF and NEF to be raw classes")
	}
	if media.FormatJPEG.IsRaw() || media.FormatPNG.IsRaw() {
		t.Error("expected JPEG and PNG not to be raw classes")
	}
	if media.FormatUnsupported.IsSupported() {
		t.Error("expected Unsupported not to be ingestable")
	}
	if got := media.FormatJPEG.Extension(); got != ".jpg" {
		t.Errorf("unexpected canonical extension for JPEG: %q", got)
	}
	if got := media.FormatUnsupported.Extension(); got != "" {
		t.Errorf("expected empty extension for Unsupported, got %q", got)
	}
}
