package handler

import (
	"errors"
	"net/http"
	"strings"

	clientdomain "sitetrack-go/internal/domain/client"

	"github.com/go-chi/chi/v5"
)

type createClientRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type updateClientRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
}

func (h *Handlers) ListClients(w http.ResponseWriter, r *http.Request) {
	filter := clientdomain.ListFilter{
		Email: strings.TrimSpace(r.URL.Query().Get("email")),
	}

	items, err := h.Clients.List(r.Context(), filter)
	if err != nil {
		h.log.InternalError("clients.list failed", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusOK, items)
}

func (h *Handlers) GetClient(w http.ResponseWriter, r *http.Request) {
	clientID := chi.URLParam(r, "id")

	record, err := h.Clients.GetByID(r.Context(), clientID)
	if err != nil {
		if errors.Is(err, clientdomain.ErrClientNotFound) {
			writeError(w, http.StatusNotFound, "client_not_found", "client not found")
			return
		}
		h.log.InternalError("clients.get failed", err, "client_id", clientID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusOK, record)
}

func (h *Handlers) CreateClient(w http.ResponseWriter, r *http.Request) {
	var req createClientRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	record, err := h.Clients.Create(r.Context(), clientdomain.CreateClientInput{
		Name:  req.Name,
		Email: req.Email,
	})
	if err != nil {
		h.log.BusinessError("clients.create rejected", err)
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, record)
}

func (h *Handlers) UpdateClient(w http.ResponseWriter, r *http.Request) {
	var req updateClientRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	clientID := chi.URLParam(r, "id")

	record, err := h.Clients.Update(r.Context(), clientdomain.UpdateClientInput{
		ID:    clientID,
		Name:  req.Name,
		Email: req.Email,
	})
	if err != nil {
		if errors.Is(err, clientdomain.ErrClientNotFound) {
			writeError(w, http.StatusNotFound, "client_not_found", "client not found")
			return
		}
		h.log.BusinessError("clients.update rejected", err, "client_id", clientID)
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, record)
}

func (h *Handlers) DeleteClient(w http.ResponseWriter, r *http.Request) {
	clientID := chi.URLParam(r, "id")

	if err := h.Clients.Delete(r.Context(), clientID); err != nil {
		h.log.InternalError("clients.delete failed", err, "client_id", clientID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
