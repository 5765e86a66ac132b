package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	photodomain "sitetrack-go/internal/domain/photo"
	visitdomain "sitetrack-go/internal/domain/visit"

	"github.com/go-chi/chi/v5"
)

type createVisitRequest struct {
	ProjectID     string  `json:"project_id"`
	Date          int64   `json:"date"`
	Notes         *string `json:"notes"`
	ExteriorType  string  `json:"exterior_type"`
	SplatURL      *string `json:"splat_url"`
	VideoURL      *string `json:"video_url"`
	Youtube360URL *string `json:"youtube360_url"`
}

type updateVisitRequest struct {
	Date          *int64  `json:"date"`
	Notes         *string `json:"notes"`
	ExteriorType  *string `json:"exterior_type"`
	SplatURL      *string `json:"splat_url"`
	VideoURL      *string `json:"video_url"`
	Youtube360URL *string `json:"youtube360_url"`
}

// visitResponse carries the visit date as a unix epoch timestamp, the format
// the dashboard exchanges.
type visitResponse struct {
	visitdomain.Visit
	Date int64 `json:"date"`
}

type visitWithPhotosResponse struct {
	visitResponse
	Photos []photodomain.Photo `json:"photos"`
}

func toVisitResponse(v visitdomain.Visit) visitResponse {
	return visitResponse{Visit: v, Date: v.Date.Unix()}
}

func (h *Handlers) ListVisits(w http.ResponseWriter, r *http.Request) {
	filter := visitdomain.ListFilter{
		ProjectID: strings.TrimSpace(r.URL.Query().Get("project_id")),
	}

	items, err := h.Visits.List(r.Context(), filter)
	if err != nil {
		h.log.InternalError("visits.list failed", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	response := make([]visitResponse, 0, len(items))
	for _, item := range items {
		response = append(response, toVisitResponse(item))
	}

	writeJSON(w, http.StatusOK, response)
}

func (h *Handlers) GetVisit(w http.ResponseWriter, r *http.Request) {
	visitID := chi.URLParam(r, "id")

	record, err := h.Visits.GetByID(r.Context(), visitID)
	if err != nil {
		if errors.Is(err, visitdomain.ErrVisitNotFound) {
			writeError(w, http.StatusNotFound, "visit_not_found", "visit not found")
			return
		}
		h.log.InternalError("visits.get failed", err, "visit_id", visitID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusOK, toVisitResponse(*record))
}

func (h *Handlers) GetVisitWithPhotos(w http.ResponseWriter, r *http.Request) {
	visitID := chi.URLParam(r, "id")

	record, err := h.Visits.GetWithPhotos(r.Context(), visitID)
	if err != nil {
		if errors.Is(err, visitdomain.ErrVisitNotFound) {
			writeError(w, http.StatusNotFound, "visit_not_found", "visit not found")
			return
		}
		h.log.InternalError("visits.with_photos failed", err, "visit_id", visitID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusOK, visitWithPhotosResponse{
		visitResponse: toVisitResponse(record.Visit),
		Photos:        record.Photos,
	})
}

func (h *Handlers) CreateVisit(w http.ResponseWriter, r *http.Request) {
	var req createVisitRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	if req.Date <= 0 {
		writeError(w, http.StatusBadRequest, "invalid_request", "date is required")
		return
	}

	record, err := h.Visits.Create(r.Context(), visitdomain.CreateVisitInput{
		ProjectID:     req.ProjectID,
		Date:          time.Unix(req.Date, 0).UTC(),
		Notes:         req.Notes,
		ExteriorType:  visitdomain.ExteriorType(req.ExteriorType),
		SplatURL:      req.SplatURL,
		VideoURL:      req.VideoURL,
		Youtube360URL: req.Youtube360URL,
	})
	if err != nil {
		h.log.BusinessError("visits.create rejected", err)
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, toVisitResponse(*record))
}

func (h *Handlers) UpdateVisit(w http.ResponseWriter, r *http.Request) {
	var req updateVisitRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	visitID := chi.URLParam(r, "id")

	input := visitdomain.UpdateVisitInput{
		ID:            visitID,
		Notes:         req.Notes,
		SplatURL:      req.SplatURL,
		VideoURL:      req.VideoURL,
		Youtube360URL: req.Youtube360URL,
	}
	if req.Date != nil {
		date := time.Unix(*req.Date, 0).UTC()
		input.Date = &date
	}
	if req.ExteriorType != nil {
		exterior := visitdomain.ExteriorType(*req.ExteriorType)
		input.ExteriorType = &exterior
	}

	record, err := h.Visits.Update(r.Context(), input)
	if err != nil {
		if errors.Is(err, visitdomain.ErrVisitNotFound) {
			writeError(w, http.StatusNotFound, "visit_not_found", "visit not found")
			return
		}
		h.log.BusinessError("visits.update rejected", err, "visit_id", visitID)
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, toVisitResponse(*record))
}

func (h *Handlers) DeleteVisit(w http.ResponseWriter, r *http.Request) {
	visitID := chi.URLParam(r, "id")

	if err := h.Visits.Delete(r.Context(), visitID); err != nil {
		h.log.InternalError("visits.delete failed", err, "visit_id", visitID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
