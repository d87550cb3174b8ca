package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"gorm.io/gorm"

	"github.com/camden-git/photocatalog/repository"
)

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("handlers: error encoding JSON response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"error": detail})
}

// writeRepoError maps repository failures onto HTTP statuses: missing rows
// become 404, protected sentinels 403, slot violations 409, everything
// else 500.
func writeRepoError(w http.ResponseWriter, err error, context string) {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		writeError(w, http.StatusNotFound, context+" not found")
	case errors.Is(err, repository.ErrProtectedEntity):
		writeError(w, http.StatusForbidden, context+" is protected")
	case errors.Is(err, repository.ErrSubCategoryDuplicate),
		errors.Is(err, repository.ErrSubCategorySlotsFull):
		writeError(w, http.StatusConflict, err.Error())
	default:
		log.Printf("handlers: %s: %v", context, err)
		writeError(w, http.StatusInternalServerError, "operation failed")
	}
}

func parseIDParam(r *http.Request, name string) (uint, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
