package handler

import (
	"errors"
	"net/http"
	"strings"

	photodomain "sitetrack-go/internal/domain/photo"

	"github.com/go-chi/chi/v5"
)

type createPhotoRequest struct {
	VisitID   string  `json:"visit_id"`
	StorageID string  `json:"storage_id"`
	FileURL   string  `json:"file_url"`
	Caption   *string `json:"caption"`
	Category  *string `json:"category"`
}

type updatePhotoRequest struct {
	Caption  *string `json:"caption"`
	Category *string `json:"category"`
}

func (h *Handlers) ListPhotos(w http.ResponseWriter, r *http.Request) {
	filter := photodomain.ListFilter{
		VisitID: strings.TrimSpace(r.URL.Query().Get("visit_id")),
	}

	items, err := h.Photos.List(r.Context(), filter)
	if err != nil {
		h.log.InternalError("photos.list failed", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusOK, items)
}

func (h *Handlers) GetPhoto(w http.ResponseWriter, r *http.Request) {
	photoID := chi.URLParam(r, "id")

	record, err := h.Photos.GetByID(r.Context(), photoID)
	if err != nil {
		if errors.Is(err, photodomain.ErrPhotoNotFound) {
			writeError(w, http.StatusNotFound, "photo_not_found", "photo not found")
			return
		}
		h.log.InternalError("photos.get failed", err, "photo_id", photoID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusOK, record)
}

func (h *Handlers) CreatePhoto(w http.ResponseWriter, r *http.Request) {
	var req createPhotoRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	input := photodomain.CreatePhotoInput{
		VisitID:   req.VisitID,
		StorageID: req.StorageID,
		FileURL:   req.FileURL,
		Caption:   req.Caption,
	}
	if req.Category != nil {
		category := photodomain.Category(*req.Category)
		input.Category = &category
	}

	record, err := h.Photos.Create(r.Context(), input)
	if err != nil {
		h.log.BusinessError("photos.create rejected", err)
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, record)
}

func (h *Handlers) UpdatePhoto(w http.ResponseWriter, r *http.Request) {
	var req updatePhotoRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	photoID := chi.URLParam(r, "id")

	input := photodomain.UpdatePhotoInput{
		ID:      photoID,
		Caption: req.Caption,
	}
	if req.Category != nil {
		category := photodomain.Category(*req.Category)
		input.Category = &category
	}

	record, err := h.Photos.Update(r.Context(), input)
	if err != nil {
		if errors.Is(err, photodomain.ErrPhotoNotFound) {
			writeError(w, http.StatusNotFound, "photo_not_found", "photo not found")
			return
		}
		h.log.BusinessError("photos.update rejected", err, "photo_id", photoID)
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, record)
}

func (h *Handlers) DeletePhoto(w http.ResponseWriter, r *http.Request) {
	photoID := chi.URLParam(r, "id")

	if err := h.Photos.Delete(r.Context(), photoID); err != nil {
		h.log.InternalError("photos.delete failed", err, "photo_id", photoID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
