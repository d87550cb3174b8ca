package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/camden-git/photocatalog/ingest"
)

type IngestHandler struct {
	Pipeline *ingest.Pipeline
}

// RunIngest ingests the files of a source folder into the managed
// subfolder and returns one outcome per scanned file. Per-file failures
// are reported in the outcomes, not as an HTTP error.
func (ih *IngestHandler) RunIngest(w http.ResponseWriter, r *http.Request) {
	var req struct {
		SourceDir string `json:"source_dir"`
		Subfolder string `json:"subfolder"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if strings.TrimSpace(req.SourceDir) == "" || strings.TrimSpace(req.Subfolder) == "" {
		writeError(w, http.StatusBadRequest, "missing required fields: source_dir, subfolder")
		return
	}

	outcomes, err := ih.Pipeline.IngestFolder(req.SourceDir, req.Subfolder)
	if err != nil {
		var dirErr *ingest.DirectoryError
		if errors.As(err, &dirErr) {
			writeError(w, http.StatusBadRequest, dirErr.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "ingestion failed")
		return
	}
	writeJSON(w, http.StatusOK, outcomes)
}

// ScanFolder reports per-format-class counts for a folder without
// ingesting anything.
func (ih *IngestHandler) ScanFolder(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get("path")
	if path == "" {
		writeError(w, http.StatusBadRequest, "missing required query parameter: path")
		return
	}

	report, err := ingest.Report(path)
	if err != nil {
		var dirErr *ingest.DirectoryError
		if errors.As(err, &dirErr) {
			writeError(w, http.StatusBadRequest, dirErr.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "scan failed")
		return
	}
	writeJSON(w, http.StatusOK, report)
}
