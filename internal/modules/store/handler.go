package store

import (
	"net/http"

	"github.com/georgemunganga/stockbook-backend/internal/core/web"
	"github.com/go-chi/chi/v5"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// RegisterPublicRoutes mounts signup, which needs no credential.
func (h *Handler) RegisterPublicRoutes(r chi.Router) {
	r.Post("/store", h.createStore)
}

// RegisterRoutes mounts the profile endpoints on a router scoped to /store/{storeId}.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.getStore)
	r.Put("/", h.updateStore)
	r.Delete("/", h.deleteStore)
}

func (h *Handler) createStore(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := web.Decode(r, &req); err != nil {
		web.RespondError(w, r, err)
		return
	}
	st, err := h.service.Create(r.Context(), req)
	if err != nil {
		web.RespondError(w, r, err)
		return
	}
	web.Respond(w, http.StatusCreated, st)
}

func (h *Handler) getStore(w http.ResponseWriter, r *http.Request) {
	st, err := h.service.Get(r.Context(), chi.URLParam(r, "storeId"))
	if err != nil {
		web.RespondError(w, r, err)
		return
	}
	web.Respond(w, http.StatusOK, st)
}

func (h *Handler) updateStore(w http.ResponseWriter, r *http.Request) {
	var req UpdateRequest
	if err := web.Decode(r, &req); err != nil {
		web.RespondError(w, r, err)
		return
	}
	st, err := h.service.Update(r.Context(), chi.URLParam(r, "storeId"), req)
	if err != nil {
		web.RespondError(w, r, err)
		return
	}
	web.Respond(w, http.StatusOK, st)
}

func (h *Handler) deleteStore(w http.ResponseWriter, r *http.Request) {
	st, err := h.service.Delete(r.Context(), chi.URLParam(r, "storeId"))
	if err != nil {
		web.RespondError(w, r, err)
		return
	}
	web.Respond(w, http.StatusOK, st)
}
