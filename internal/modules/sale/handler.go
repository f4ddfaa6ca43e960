package sale

import (
	"net/http"

	"github.com/georgemunganga/stockbook-backend/internal/core/web"
	"github.com/go-chi/chi/v5"
)

// Handler exposes sale HTTP endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

// RegisterRoutes mounts the endpoints on a router already scoped to /store/{storeId}.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/stock/{stockId}/sale", h.record)
	r.Get("/stock/{stockId}/sale", h.listByStock)
	r.Get("/sales", h.listByStore)
}

func (h *Handler) record(w http.ResponseWriter, r *http.Request) {
	var req RecordRequest
	if err := web.Decode(r, &req); err != nil {
		web.RespondError(w, r, err)
		return
	}
	rec, err := h.service.RecordSale(r.Context(), chi.URLParam(r, "storeId"), chi.URLParam(r, "stockId"), req.Quantity)
	if err != nil {
		web.RespondError(w, r, err)
		return
	}
	web.Respond(w, http.StatusCreated, rec)
}

func (h *Handler) listByStock(w http.ResponseWriter, r *http.Request) {
	sales, err := h.service.FindAllByStock(r.Context(), chi.URLParam(r, "storeId"), chi.URLParam(r, "stockId"))
	if err != nil {
		web.RespondError(w, r, err)
		return
	}
	web.Respond(w, http.StatusOK, sales)
}

func (h *Handler) listByStore(w http.ResponseWriter, r *http.Request) {
	sales, err := h.service.FindAllByStore(r.Context(), chi.URLParam(r, "storeId"))
	if err != nil {
		web.RespondError(w, r, err)
		return
	}
	web.Respond(w, http.StatusOK, sales)
}
