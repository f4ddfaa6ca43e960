package stock

import (
	"net/http"

	"github.com/georgemunganga/stockbook-backend/internal/core/errx"
	"github.com/georgemunganga/stockbook-backend/internal/core/web"
	"github.com/go-chi/chi/v5"
)

// Handler exposes stock HTTP endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

// RegisterRoutes mounts the endpoints on a router already scoped to /store/{storeId}
// and guarded by the access guard.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/stock", h.create)
	r.Get("/stock", h.list)
	r.Get("/stock/{stockId}", h.get)
	r.Put("/stock/{stockId}", h.update)
	r.Delete("/stock/{stockId}", h.delete)
	r.Patch("/stock/{stockId}/discount", h.applyDiscount)
	r.Patch("/stock/{stockId}/remove-discount", h.removeDiscount)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := web.Decode(r, &req); err != nil {
		web.RespondError(w, r, err)
		return
	}
	item, err := h.service.Create(r.Context(), chi.URLParam(r, "storeId"), req)
	if err != nil {
		web.RespondError(w, r, err)
		return
	}
	web.Respond(w, http.StatusCreated, item)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.Find(r.Context(), chi.URLParam(r, "storeId"))
	if err != nil {
		web.RespondError(w, r, err)
		return
	}
	web.Respond(w, http.StatusOK, items)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	item, err := h.service.FindByID(r.Context(), chi.URLParam(r, "storeId"), chi.URLParam(r, "stockId"))
	if err != nil {
		web.RespondError(w, r, err)
		return
	}
	web.Respond(w, http.StatusOK, item)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	var req UpdateRequest
	if err := web.Decode(r, &req); err != nil {
		web.RespondError(w, r, err)
		return
	}
	item, err := h.service.Update(r.Context(), chi.URLParam(r, "storeId"), chi.URLParam(r, "stockId"), req)
	if err != nil {
		web.RespondError(w, r, err)
		return
	}
	web.Respond(w, http.StatusOK, item)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	item, err := h.service.Delete(r.Context(), chi.URLParam(r, "storeId"), chi.URLParam(r, "stockId"))
	if err != nil {
		web.RespondError(w, r, err)
		return
	}
	web.Respond(w, http.StatusOK, item)
}

func (h *Handler) applyDiscount(w http.ResponseWriter, r *http.Request) {
	var req DiscountRequest
	if err := web.Decode(r, &req); err != nil {
		web.RespondError(w, r, err)
		return
	}
	if req.Percentage == nil {
		web.RespondError(w, r, errx.Validation("percentage is required"))
		return
	}
	item, err := h.service.ApplyDiscount(r.Context(), chi.URLParam(r, "storeId"), chi.URLParam(r, "stockId"), *req.Percentage)
	if err != nil {
		web.RespondError(w, r, err)
		return
	}
	web.Respond(w, http.StatusOK, item)
}

func (h *Handler) removeDiscount(w http.ResponseWriter, r *http.Request) {
	item, err := h.service.RemoveDiscount(r.Context(), chi.URLParam(r, "storeId"), chi.URLParam(r, "stockId"))
	if err != nil {
		web.RespondError(w, r, err)
		return
	}
	web.Respond(w, http.StatusOK, item)
}
