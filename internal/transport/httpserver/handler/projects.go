package handler

import (
	"errors"
	"net/http"
	"strings"

	projectdomain "sitetrack-go/internal/domain/project"

	"github.com/go-chi/chi/v5"
)

type createProjectRequest struct {
	ClientID string `json:"client_id"`
	Name     string `json:"name"`
	Address  string `json:"address"`
}

type updateProjectRequest struct {
	ClientID *string `json:"client_id"`
	Name     *string `json:"name"`
	Address  *string `json:"address"`
}

func (h *Handlers) ListProjects(w http.ResponseWriter, r *http.Request) {
	filter := projectdomain.ListFilter{
		ClientID: strings.TrimSpace(r.URL.Query().Get("client_id")),
	}

	items, err := h.Projects.List(r.Context(), filter)
	if err != nil {
		h.log.InternalError("projects.list failed", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusOK, items)
}

func (h *Handlers) ListProjectsWithClients(w http.ResponseWriter, r *http.Request) {
	items, err := h.Projects.ListWithClients(r.Context())
	if err != nil {
		h.log.InternalError("projects.with_clients failed", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusOK, items)
}

func (h *Handlers) GetProject(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "id")

	record, err := h.Projects.GetByID(r.Context(), projectID)
	if err != nil {
		if errors.Is(err, projectdomain.ErrProjectNotFound) {
			writeError(w, http.StatusNotFound, "project_not_found", "project not found")
			return
		}
		h.log.InternalError("projects.get failed", err, "project_id", projectID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusOK, record)
}

func (h *Handlers) CreateProject(w http.ResponseWriter, r *http.Request) {
	var req createProjectRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	record, err := h.Projects.Create(r.Context(), projectdomain.CreateProjectInput{
		ClientID: req.ClientID,
		Name:     req.Name,
		Address:  req.Address,
	})
	if err != nil {
		h.log.BusinessError("projects.create rejected", err)
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, record)
}

func (h *Handlers) UpdateProject(w http.ResponseWriter, r *http.Request) {
	var req updateProjectRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	projectID := chi.URLParam(r, "id")

	record, err := h.Projects.Update(r.Context(), projectdomain.UpdateProjectInput{
		ID:       projectID,
		ClientID: req.ClientID,
		Name:     req.Name,
		Address:  req.Address,
	})
	if err != nil {
		if errors.Is(err, projectdomain.ErrProjectNotFound) {
			writeError(w, http.StatusNotFound, "project_not_found", "project not found")
			return
		}
		h.log.BusinessError("projects.update rejected", err, "project_id", projectID)
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, record)
}

func (h *Handlers) DeleteProject(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "id")

	if err := h.Projects.Delete(r.Context(), projectID); err != nil {
		h.log.InternalError("projects.delete failed", err, "project_id", projectID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) ListProjectUsers(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "id")

	items, err := h.Assignments.UsersForProject(r.Context(), projectID)
	if err != nil {
		h.log.InternalError("projects.users failed", err, "project_id", projectID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusOK, items)
}
