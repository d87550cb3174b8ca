package ingest_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/camden-git/photocatalog/ingest"
	"github.com/camden-git/photocatalog/media"
)

func writeFiles(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(name), 0644); err != nil {
			t.Fatalf("failed to write %s: %v", name, err)
		}
	}
}

func TestScanClassifiesAndSkipsDirectories(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "a.jpg", "b.NEF", "c.txt")
	if err := os.Mkdir(filepath.Join(dir, "nested"), 0755); err != nil {
		t.Fatalf("failed to make nested dir: %v", err)
	}

	entries, err := ingest.Scan(dir)
	if err != nil {
		t.Fatalf("Scan returned error: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}

	byName := map[string]media.FormatClass{}
	for _, entry := range entries {
		byName[entry.Name] = entry.Format
	}
	if byName["a.jpg"] != media.FormatJPEG {
		t.Errorf("a.jpg classified as %q", byName["a.jpg"])
	}
	if byName["b.NEF"] != media.FormatRawNEF {
		t.Errorf("b.NEF classified as %q", byName["b.NEF"])
	}
	if byName["c.txt"] != media.FormatUnsupported {
		t.Errorf("c.txt classified as %q", byName["c.txt"])
	}
}

func TestScanNaturalOrder(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "img10.jpg", "img2.jpg", "img1.jpg")

	entries, err := ingest.Scan(dir)
	if err != nil {
		t.Fatalf("Scan returned error: %v", err)
	}

	got := make([]string, 0, len(entries))
	for _, entry := range entries {
		got = append(got, entry.Name)
	}
	want := []string{"img1.jpg", "img2.jpg", "img10.jpg"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("natural order mismatch: got %v, want %v", got, want)
		}
	}
}

func TestScanUnreadableDirectory(t *testing.T) {
	_, err := ingest.Scan(filepath.Join(t.TempDir(), "missing"))
	if err == nil {
		t.Fatal("expected error for missing directory")
	}
	var dirErr *ingest.DirectoryError
	if !errors.As(err, &dirErr) {
		t.Fatalf("expected DirectoryError, got %T: %v", err, err)
	}
}

func TestCountByTypeMatchesBothCases(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "a.JPG", "b.jpg", "c.png")

	count, err := ingest.CountByType(dir, []string{"jpg"})
	if err != nil {
		t.Fatalf("CountByType returned error: %v", err)
	}
	if count != 2 {
		t.Fatalf("CountByType = %d, want 2", count)
	}

	// leading dot in the requested extension is accepted too
	count, err = ingest.CountByType(dir, []string{".PNG"})
	if err != nil {
		t.Fatalf("CountByType returned error: %v", err)
	}
	if count != 1 {
		t.Fatalf("CountByType(.PNG) = %d, want 1", count)
	}
}

func TestCountRaw(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "a.orf", "b.NEF", "c.jpg", "d.txt")

	count, err := ingest.CountRaw(dir)
	if err != nil {
		t.Fatalf("CountRaw returned error: %v", err)
	}
	if count != 2 {
		t.Fatalf("CountRaw = %d, want 2", count)
	}
}

func TestReport(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "a.orf", "b.nef", "c.jpg", "d.png", "e.txt")

	report, err := ingest.Report(dir)
	if err != nil {
		t.Fatalf("Report returned error: %v", err)
	}
	if report.Total != 5 || report.Raw != 2 || report.Standard != 2 || report.Unsupported != 1 {
		t.Fatalf("unexpected report: %+v", report)
	}
}
