package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/dukandar/khata/internal/middleware"
	"github.com/dukandar/khata/internal/models"
)

type addItemRequest struct {
	Name  string  `json:"name"`
	Unit  string  `json:"unit"`
	Price float64 `json:"price"`
}

// ListItems returns the caller's catalog. Unauthenticated callers get an
// empty array with a 401 status, matching the legacy /api/items contract.
func (h *Handler) ListItems(w http.ResponseWriter, r *http.Request) {
	ownerID := middleware.OwnerID(r.Context())
	if ownerID == 0 {
		writeJSON(w, http.StatusUnauthorized, []*models.Item{})
		return
	}

	items, err := h.catalog.ListItems(r.Context(), ownerID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if items == nil {
		items = []*models.Item{}
	}
	writeJSON(w, http.StatusOK, items)
}

// AddItem persists a new catalog item for the caller.
func (h *Handler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	item, err := h.catalog.AddItem(r.Context(), middleware.OwnerID(r.Context()), req.Name, req.Unit, req.Price)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

// DeleteItem removes a catalog item. The delete is idempotent: absent or
// foreign-owned IDs also yield 204.
func (h *Handler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	itemID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid item id"})
		return
	}

	if err := h.catalog.DeleteItem(r.Context(), middleware.OwnerID(r.Context()), itemID); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
