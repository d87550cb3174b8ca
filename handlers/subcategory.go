package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/camden-git/photocatalog/models"
	"github.com/camden-git/photocatalog/repository"
)

type SubCategoryHandler struct {
	Repo repository.SubCategoryRepositoryInterface
}

func (sh *SubCategoryHandler) CreateSubCategory(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name       string `json:"name"`
		Notes      string `json:"notes"`
		CategoryID uint   `json:"category_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		writeError(w, http.StatusBadRequest, "missing required field: name")
		return
	}

	sub := models.SubCategory{Name: req.Name, Notes: req.Notes}
	if err := sh.Repo.Create(&sub, req.CategoryID); err != nil {
		writeRepoError(w, err, "sub-category")
		return
	}
	writeJSON(w, http.StatusCreated, sub)
}

func (sh *SubCategoryHandler) ListSubCategories(w http.ResponseWriter, r *http.Request) {
	subs, err := sh.Repo.ListAll()
	if err != nil {
		writeRepoError(w, err, "sub-categories")
		return
	}
	writeJSON(w, http.StatusOK, subs)
}

func (sh *SubCategoryHandler) GetSubCategory(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "subcategory_id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid sub-category id")
		return
	}
	sub, err := sh.Repo.GetByID(id)
	if err != nil {
		writeRepoError(w, err, "sub-category")
		return
	}
	writeJSON(w, http.StatusOK, sub)
}

func (sh *SubCategoryHandler) UpdateSubCategory(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "subcategory_id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid sub-category id")
		return
	}

	var req struct {
		Name  string `json:"name"`
		Notes string `json:"notes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	if err := sh.Repo.Update(id, req.Name, req.Notes); err != nil {
		writeRepoError(w, err, "sub-category")
		return
	}
	sub, err := sh.Repo.GetByID(id)
	if err != nil {
		writeRepoError(w, err, "sub-category")
		return
	}
	writeJSON(w, http.StatusOK, sub)
}

func (sh *SubCategoryHandler) DeleteSubCategory(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "subcategory_id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid sub-category id")
		return
	}
	if err := sh.Repo.Delete(id); err != nil {
		writeRepoError(w, err, "sub-category")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
