package ingest

import (
	"fmt"
	"log"
	"os"

	"github.com/camden-git/photocatalog/media"
	"github.com/camden-git/photocatalog/services"
)

// Outcome reports what the pipeline did with one scanned file.
type Outcome struct {
	FileName string            `json:"file_name"`
	Format   media.FormatClass `json:"format"`
	ImageID  uint              `json:"image_id,omitempty"`
	Skipped  bool              `json:"skipped"`
	Error    string            `json:"error,omitempty"`
}

// Pipeline ingests a folder of photographs into the catalog: scan,
// classify, extract metadata, add to catalog. Everything runs
// synchronously on the caller's goroutine; the catalog provides no
// internal locking, so concurrent ingests against the same catalog are the
// caller's problem to serialize.
type Pipeline struct {
	catalog *services.CatalogService
}

// NewPipeline creates a new ingestion pipeline over the given catalog.
func NewPipeline(catalog *services.CatalogService) *Pipeline {
	return &Pipeline{catalog: catalog}
}

// IngestFolder ingests every supported file of sourceDir into the managed
// subfolder, returning one outcome per scanned file. A failure on one file
// is recorded in its outcome and the batch continues; only an unreadable
// source directory aborts the whole run.
func (p *Pipeline) IngestFolder(sourceDir, subfolder string) ([]Outcome, error) {
	entries, err := Scan(sourceDir)
	if err != nil {
		return nil, err
	}

	outcomes := make([]Outcome, 0, len(entries))
	for _, entry := range entries {
		outcomes = append(outcomes, p.ingestOne(entry, subfolder))
	}

	log.Printf("ingest: finished %s (%d files)", sourceDir, len(outcomes))
	return outcomes, nil
}

func (p *Pipeline) ingestOne(entry Entry, subfolder string) Outcome {
	outcome := Outcome{FileName: entry.Name, Format: entry.Format}

	if !entry.Format.IsSupported() {
		outcome.Skipped = true
		return outcome
	}

	meta, err := media.Extract(entry.Path, entry.Format)
	if err != nil {
		// extraction failure aborts this file only
		outcome.Error = err.Error()
		return outcome
	}

	source, err := os.Open(entry.Path)
	if err != nil {
		outcome.Error = fmt.Sprintf("failed to open source file: %v", err)
		return outcome
	}
	defer source.Close()

	image, err := p.catalog.AddImage(meta, entry.Name, subfolder, entry.Format, source)
	if err != nil {
		outcome.Error = err.Error()
		return outcome
	}

	outcome.ImageID = image.ID
	return outcome
}
