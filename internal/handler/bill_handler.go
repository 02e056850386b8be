package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/dukandar/khata/internal/middleware"
	"github.com/dukandar/khata/internal/models"
	"github.com/dukandar/khata/internal/service"
)

type saveBillRequest struct {
	Items         []service.CartEntry `json:"items"`
	Total         float64             `json:"total"`
	PaymentMethod string              `json:"payment_method"`
}

type saveBillResponse struct {
	Status string `json:"status"`
	BillID int64  `json:"bill_id"`
}

// SaveBill persists a submitted cart as an immutable bill.
func (h *Handler) SaveBill(w http.ResponseWriter, r *http.Request) {
	var req saveBillRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	billID, err := h.billing.SubmitBill(r.Context(), middleware.OwnerID(r.Context()), req.Items, req.Total, req.PaymentMethod)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, saveBillResponse{Status: "ok", BillID: billID})
}

// ListBills returns the caller's bills, newest first, without line items.
func (h *Handler) ListBills(w http.ResponseWriter, r *http.Request) {
	bills, err := h.billing.ListBills(r.Context(), middleware.OwnerID(r.Context()))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if bills == nil {
		bills = []*models.Bill{}
	}
	writeJSON(w, http.StatusOK, bills)
}

// GetBill returns one bill with its line items, scoped to the caller.
func (h *Handler) GetBill(w http.ResponseWriter, r *http.Request) {
	billID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid bill id"})
		return
	}

	bill, err := h.billing.GetBill(r.Context(), middleware.OwnerID(r.Context()), billID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, bill)
}
