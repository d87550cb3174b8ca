package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/camden-git/photocatalog/models"
	"github.com/camden-git/photocatalog/repository"
)

type CategoryHandler struct {
	Repo repository.CategoryRepositoryInterface
}

func (ch *CategoryHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name  string `json:"name"`
		Notes string `json:"notes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		writeError(w, http.StatusBadRequest, "missing required field: name")
		return
	}

	category := models.Category{Name: req.Name, Notes: req.Notes}
	if err := ch.Repo.Create(&category); err != nil {
		writeRepoError(w, err, "category")
		return
	}
	writeJSON(w, http.StatusCreated, category)
}

func (ch *CategoryHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := ch.Repo.ListAll()
	if err != nil {
		writeRepoError(w, err, "categories")
		return
	}
	writeJSON(w, http.StatusOK, categories)
}

func (ch *CategoryHandler) GetCategory(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "category_id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid category id")
		return
	}
	category, err := ch.Repo.GetByID(id)
	if err != nil {
		writeRepoError(w, err, "category")
		return
	}
	writeJSON(w, http.StatusOK, category)
}

func (ch *CategoryHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "category_id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid category id")
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

	if err := ch.Repo.Update(id, req.Name, req.Notes); err != nil {
		writeRepoError(w, err, "category")
		return
	}
	category, err := ch.Repo.GetByID(id)
	if err != nil {
		writeRepoError(w, err, "category")
		return
	}
	writeJSON(w, http.StatusOK, category)
}

func (ch *CategoryHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "category_id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid category id")
		return
	}
	if err := ch.Repo.Delete(id); err != nil {
		writeRepoError(w, err, "category")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AttachSubCategory links an existing sub-category to the category.
func (ch *CategoryHandler) AttachSubCategory(w http.ResponseWriter, r *http.Request) {
	categoryID, err := parseIDParam(r, "category_id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid category id")
		return
	}
	subCategoryID, err := parseIDParam(r, "subcategory_id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid sub-category id")
		return
	}
	if err := ch.Repo.AttachSubCategory(categoryID, subCategoryID); err != nil {
		writeRepoError(w, err, "category link")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DetachSubCategory removes the link between the category and a
// sub-category.
func (ch *CategoryHandler) DetachSubCategory(w http.ResponseWriter, r *http.Request) {
	categoryID, err := parseIDParam(r, "category_id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid category id")
		return
	}
	subCategoryID, err := parseIDParam(r, "subcategory_id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid sub-category id")
		return
	}
	if err := ch.Repo.DetachSubCategory(categoryID, subCategoryID); err != nil {
		writeRepoError(w, err, "category link")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
