package ingest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/facette/natsort"

	"github.com/camden-git/photocatalog/media"
)

// DirectoryError reports that a scan target is not a readable directory.
type DirectoryError struct {
	Path string
	Err  error
}

func (e *DirectoryError) Error() string {
	return fmt.Sprintf("cannot read directory %s: %v", e.Path, e.Err)
}

func (e *DirectoryError) Unwrap() error { return e.Err }

// Entry describes one classified file found by a scan.
type Entry struct {
	Name    string            `json:"name"`
	Path    string            `json:"path"`
	Size    int64             `json:"size"`
	ModTime time.Time         `json:"mod_time"`
	Format  media.FormatClass `json:"format"`
}

// ScanReport counts a folder's entries per format class group.
type ScanReport struct {
	Total       int `json:"total"`
	Raw         int `json:"raw"`
	Standard    int `json:"standard"`
	Unsupported int `json:"unsupported"`
}

// Scan enumerates the files of a directory (non-recursive) and classifies
// each one. Entries come back in natural name order. Sub-directories are
// skipped.
func Scan(path string) ([]Entry, error) {
	dirEntries, err := os.ReadDir(path)
	if err != nil {
		return nil, &DirectoryError{Path: path, Err: err}
	}

	names := make([]string, 0, len(dirEntries))
	byName := make(map[string]os.DirEntry, len(dirEntries))
	for _, entry := range dirEntries {
		if entry.IsDir() {
			continue
		}
		names = append(names, entry.Name())
		byName[entry.Name()] = entry
	}
	natsort.Sort(names)

	entries := make([]Entry, 0, len(names))
	for _, name := range names {
		info, err := byName[name].Info()
		if err != nil {
			// entry vanished between ReadDir and stat; skip it
			continue
		}
		entries = append(entries, Entry{
			Name:    name,
			Path:    filepath.Join(path, name),
			Size:    info.Size(),
			ModTime: info.ModTime(),
			Format:  media.Classify(name),
		})
	}
	return entries, nil
}

// Report scans a folder and counts its entries per format class group.
func Report(path string) (ScanReport, error) {
	entries, err := Scan(path)
	if err != nil {
		return ScanReport{}, err
	}

	report := ScanReport{Total: len(entries)}
	for _, entry := range entries {
		switch {
		case entry.Format.IsRaw():
			report.Raw++
		case entry.Format.IsSupported():
			report.Standard++
		default:
			report.Unsupported++
		}
	}
	return report, nil
}

// CountByType counts the files in a folder whose extension matches any of
// the given extensions, in either case: requesting "jpg" matches both
// a.jpg and A.JPG. Extensions may be given with or without the leading
// dot.
func CountByType(path string, extensions []string) (int, error) {
	entries, err := Scan(path)
	if err != nil {
		return 0, err
	}

	count := 0
	for _, entry := range entries {
		ext := strings.TrimPrefix(filepath.Ext(entry.Name), ".")
		for _, want := range extensions {
			if strings.EqualFold(ext, strings.TrimPrefix(want, ".")) {
				count++
				break
			}
		}
	}
	return count, nil
}

// CountRaw counts the files in a folder that classify as a raw format.
func CountRaw(path string) (int, error) {
	entries, err := Scan(path)
	if err != nil {
		return 0, err
	}

	count := 0
	for _, entry := range entries {
		if entry.Format.IsRaw() {
			count++
		}
	}
	return count, nil
}
