package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/camden-git/photocatalog/config"
	"github.com/camden-git/photocatalog/media"
	"github.com/camden-git/photocatalog/models"
	"github.com/camden-git/photocatalog/services"
)

type ImageHandler struct {
	Service *services.CatalogService
	Cfg     config.Config
}

// imageResponse carries an image together with its resolved relationship
// ids.
type imageResponse struct {
	models.Image
	LocationID     uint   `json:"location_id"`
	SubCategoryIDs []uint `json:"subcategory_ids"`
}

func (ih *ImageHandler) respond(w http.ResponseWriter, status int, image *models.Image) {
	locationID, err := ih.Service.ImageLocationID(image.ID)
	if err != nil {
		writeRepoError(w, err, "image location")
		return
	}
	subIDs, err := ih.Service.ImageSubCategoryIDs(image.ID)
	if err != nil {
		writeRepoError(w, err, "image sub-categories")
		return
	}
	writeJSON(w, status, imageResponse{Image: *image, LocationID: locationID, SubCategoryIDs: subIDs})
}

// ListImages serves the catalog's images, optionally filtered by exactly
// one of category_id, subcategory_id or location_id.
func (ih *ImageHandler) ListImages(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	parse := func(key string) (uint, bool, error) {
		raw := query.Get(key)
		if raw == "" {
			return 0, false, nil
		}
		id, err := strconv.ParseUint(raw, 10, 32)
		return uint(id), true, err
	}

	var images []models.Image
	var err error
	if id, ok, perr := parse("category_id"); perr != nil {
		writeError(w, http.StatusBadRequest, "invalid category_id")
		return
	} else if ok {
		images, err = ih.Service.ListImagesByCategory(id)
	} else if id, ok, perr := parse("subcategory_id"); perr != nil {
		writeError(w, http.StatusBadRequest, "invalid subcategory_id")
		return
	} else if ok {
		images, err = ih.Service.ListImagesBySubCategory(id)
	} else if id, ok, perr := parse("location_id"); perr != nil {
		writeError(w, http.StatusBadRequest, "invalid location_id")
		return
	} else if ok {
		images, err = ih.Service.ListImagesByLocation(id)
	} else {
		images, err = ih.Service.ListImages()
	}

	if err != nil {
		writeRepoError(w, err, "images")
		return
	}
	writeJSON(w, http.StatusOK, images)
}

func (ih *ImageHandler) GetImage(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "image_id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid image id")
		return
	}
	image, err := ih.Service.GetImage(id)
	if err != nil {
		writeRepoError(w, err, "image")
		return
	}
	ih.respond(w, http.StatusOK, image)
}

// UpdateImage commits the fields present in the request body, one commit
// operation per field.
func (ih *ImageHandler) UpdateImage(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "image_id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid image id")
		return
	}

	var req struct {
		Name       *string `json:"name"`
		Notes      *string `json:"notes"`
		LocationID *uint   `json:"location_id"`
		CategoryID *uint   `json:"category_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	var image *models.Image
	if req.Name != nil {
		if image, err = ih.Service.CommitRename(id, *req.Name); err != nil {
			writeRepoError(w, err, "image")
			return
		}
	}
	if req.Notes != nil {
		if image, err = ih.Service.CommitNotes(id, *req.Notes); err != nil {
			writeRepoError(w, err, "image")
			return
		}
	}
	if req.LocationID != nil {
		if image, err = ih.Service.CommitLocation(id, *req.LocationID); err != nil {
			writeRepoError(w, err, "image")
			return
		}
	}
	if req.CategoryID != nil {
		if image, err = ih.Service.CommitCategory(id, *req.CategoryID); err != nil {
			writeRepoError(w, err, "image")
			return
		}
	}

	if image == nil {
		if image, err = ih.Service.GetImage(id); err != nil {
			writeRepoError(w, err, "image")
			return
		}
	}
	ih.respond(w, http.StatusOK, image)
}

// UpdateSubCategory replaces one of the image's sub-category links.
func (ih *ImageHandler) UpdateSubCategory(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "image_id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid image id")
		return
	}

	var req struct {
		New uint `json:"new_subcategory_id"`
		Old uint `json:"old_subcategory_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	image, err := ih.Service.CommitSubCategoryChange(id, req.New, req.Old)
	if err != nil {
		writeRepoError(w, err, "image")
		return
	}
	ih.respond(w, http.StatusOK, image)
}

func (ih *ImageHandler) DeleteImage(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "image_id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid image id")
		return
	}
	if err := ih.Service.DeleteImage(id); err != nil {
		writeRepoError(w, err, "image")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ConvertImage transcodes a cataloged image into the requested format.
func (ih *ImageHandler) ConvertImage(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "image_id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid image id")
		return
	}

	var req struct {
		TargetFormat string `json:"target_format"`
		TargetFolder string `json:"target_folder"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.TargetFolder == "" {
		req.TargetFolder = ih.Cfg.ConvertedPath
	}

	ok, err := ih.Service.ConvertImage(id, req.TargetFolder, media.FormatClass(req.TargetFormat))
	if err != nil {
		writeRepoError(w, err, "conversion")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"converted": ok})
}
