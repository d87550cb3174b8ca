package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/camden-git/photocatalog/models"
	"github.com/camden-git/photocatalog/repository"
)

type LocationHandler struct {
	Repo repository.LocationRepositoryInterface
}

func (lh *LocationHandler) CreateLocation(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name   string `json:"name"`
		GeoTag string `json:"geo_tag"`
		Notes  string `json:"notes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		writeError(w, http.StatusBadRequest, "missing required field: name")
		return
	}

	location := models.Location{Name: req.Name, GeoTag: req.GeoTag, Notes: req.Notes}
	if err := lh.Repo.Create(&location); err != nil {
		writeRepoError(w, err, "location")
		return
	}
	writeJSON(w, http.StatusCreated, location)
}

func (lh *LocationHandler) ListLocations(w http.ResponseWriter, r *http.Request) {
	locations, err := lh.Repo.ListAll()
	if err != nil {
		writeRepoError(w, err, "locations")
		return
	}
	writeJSON(w, http.StatusOK, locations)
}

func (lh *LocationHandler) GetLocation(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "location_id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid location id")
		return
	}
	location, err := lh.Repo.GetByID(id)
	if err != nil {
		writeRepoError(w, err, "location")
		return
	}
	writeJSON(w, http.StatusOK, location)
}

func (lh *LocationHandler) UpdateLocation(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "location_id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid location id")
		return
	}

	var req struct {
		Name   string `json:"name"`
		GeoTag string `json:"geo_tag"`
		Notes  string `json:"notes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	if err := lh.Repo.Update(id, req.Name, req.GeoTag, req.Notes); err != nil {
		writeRepoError(w, err, "location")
		return
	}
	location, err := lh.Repo.GetByID(id)
	if err != nil {
		writeRepoError(w, err, "location")
		return
	}
	writeJSON(w, http.StatusOK, location)
}

func (lh *LocationHandler) DeleteLocation(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "location_id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid location id")
		return
	}
	if err := lh.Repo.Delete(id); err != nil {
		writeRepoError(w, err, "location")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
