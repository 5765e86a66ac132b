package handler

import (
	"errors"
	"net/http"
	"strings"

	assignmentdomain "sitetrack-go/internal/domain/assignment"

	"github.com/go-chi/chi/v5"
)

type assignRequest struct {
	ProjectID string `json:"project_id"`
	UserID    string `json:"user_id"`
	Role      string `json:"role"`
}

type updateAssignmentRequest struct {
	Role *string `json:"role"`
}

func (h *Handlers) ListAssignments(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := assignmentdomain.ListFilter{
		ProjectID: strings.TrimSpace(query.Get("project_id")),
		UserID:    strings.TrimSpace(query.Get("user_id")),
	}

	items, err := h.Assignments.List(r.Context(), filter)
	if err != nil {
		h.log.InternalError("assignments.list failed", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusOK, items)
}

func (h *Handlers) GetAssignment(w http.ResponseWriter, r *http.Request) {
	assignmentID := chi.URLParam(r, "id")

	record, err := h.Assignments.GetByID(r.Context(), assignmentID)
	if err != nil {
		if errors.Is(err, assignmentdomain.ErrAssignmentNotFound) {
			writeError(w, http.StatusNotFound, "assignment_not_found", "assignment not found")
			return
		}
		h.log.InternalError("assignments.get failed", err, "assignment_id", assignmentID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusOK, record)
}

// Assign upserts: the same (user, project) pair always lands on one row.
func (h *Handlers) Assign(w http.ResponseWriter, r *http.Request) {
	var req assignRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	record, err := h.Assignments.Assign(r.Context(), assignmentdomain.AssignInput{
		ProjectID: req.ProjectID,
		UserID:    req.UserID,
		Role:      assignmentdomain.Role(req.Role),
	})
	if err != nil {
		h.log.BusinessError("assignments.assign rejected", err)
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, record)
}

func (h *Handlers) UpdateAssignment(w http.ResponseWriter, r *http.Request) {
	var req updateAssignmentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	assignmentID := chi.URLParam(r, "id")

	input := assignmentdomain.UpdateAssignmentInput{ID: assignmentID}
	if req.Role != nil {
		role := assignmentdomain.Role(*req.Role)
		input.Role = &role
	}

	record, err := h.Assignments.Update(r.Context(), input)
	if err != nil {
		if errors.Is(err, assignmentdomain.ErrAssignmentNotFound) {
			writeError(w, http.StatusNotFound, "assignment_not_found", "assignment not found")
			return
		}
		h.log.BusinessError("assignments.update rejected", err, "assignment_id", assignmentID)
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, record)
}

func (h *Handlers) DeleteAssignment(w http.ResponseWriter, r *http.Request) {
	assignmentID := chi.URLParam(r, "id")

	if err := h.Assignments.Delete(r.Context(), assignmentID); err != nil {
		h.log.InternalError("assignments.delete failed", err, "assignment_id", assignmentID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) ListUserProjects(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "user_id")

	items, err := h.Assignments.ProjectsForUser(r.Context(), userID)
	if err != nil {
		h.log.InternalError("assignments.user_projects failed", err, "user_id", userID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusOK, items)
}
