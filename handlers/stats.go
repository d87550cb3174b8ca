package handlers

import (
	"log"
	"net/http"

	"gorm.io/gorm"

	"github.com/camden-git/photocatalog/database"
)

type StatsHandler struct {
	DB *gorm.DB
}

// GetStats serves catalog-wide aggregate counts.
func (sh *StatsHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := database.CollectStats(sh.DB)
	if err != nil {
		log.Printf("handlers: failed to collect stats: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to collect stats")
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
