package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/dukandar/khata/internal/metrics"
	"github.com/dukandar/khata/internal/models"
	"github.com/dukandar/khata/internal/storage"
)

var (
	ErrMalformedCart = errors.New("malformed cart entry")
	ErrTotalMismatch = errors.New("declared totals do not match line items")
)

// totalTolerance absorbs float rounding when strict verification is on.
const totalTolerance = 0.005

// CartEntry is one client-submitted line of a cart: a snapshot of what was
// sold, at what unit price, and the client-computed subtotal.
type CartEntry struct {
	Name     string  `json:"name"`
	Unit     string  `json:"unit"`
	Price    float64 `json:"price"`
	Qty      float64 `json:"qty"`
	Subtotal float64 `json:"subtotal"`
}

// BillingService turns submitted carts into persisted, immutable bills and
// reads them back.
//
// By default the service persists the client-declared subtotals and total
// verbatim, matching the original system's trust boundary. With strictTotals
// enabled it recomputes both server-side and rejects mismatches; this is the
// documented hardening mode, off by default to preserve behavioral parity.
type BillingService struct {
	store        storage.Store
	strictTotals bool
}

// NewBillingService creates a billing service backed by the given store.
func NewBillingService(store storage.Store, strictTotals bool) *BillingService {
	return &BillingService{store: store, strictTotals: strictTotals}
}

// SubmitBill validates the cart and persists a bill with its line items as a
// single atomic unit. An empty cart is permitted. Returns the new bill ID.
func (s *BillingService) SubmitBill(ctx context.Context, ownerID int64, cart []CartEntry, total float64, paymentMethod string) (int64, error) {
	if ownerID == 0 {
		return 0, ErrUnauthenticated
	}
	if paymentMethod == "" {
		paymentMethod = "Cash"
	}
	if math.IsNaN(total) || math.IsInf(total, 0) {
		return 0, fmt.Errorf("%w: total is not a number", ErrMalformedCart)
	}

	items := make([]models.BillItem, 0, len(cart))
	for i, entry := range cart {
		if err := validateEntry(entry); err != nil {
			return 0, fmt.Errorf("cart entry %d: %w", i, err)
		}
		unit := entry.Unit
		if unit == "" {
			unit = "unit"
		}
		items = append(items, models.BillItem{
			ItemName:     entry.Name,
			Unit:         unit,
			PricePerUnit: entry.Price,
			Quantity:     entry.Qty,
			Subtotal:     entry.Subtotal,
		})
	}

	if s.strictTotals {
		if err := verifyTotals(cart, total); err != nil {
			slog.Warn("bill rejected by total verification", "user_id", ownerID, "error", err)
			return 0, err
		}
	}

	bill := &models.Bill{
		UserID:        ownerID,
		Total:         total,
		PaymentMethod: paymentMethod,
		Items:         items,
	}
	if err := s.store.CreateBill(ctx, bill); err != nil {
		slog.Error("SubmitBill failed", "user_id", ownerID, "error", err)
		return 0, err
	}

	metrics.BillsCreated.Inc()
	slog.Info("bill saved", "user_id", ownerID, "bill_id", bill.ID, "items", len(items), "total", total)
	return bill.ID, nil
}

// ListBills returns the owner's bills, newest first.
func (s *BillingService) ListBills(ctx context.Context, ownerID int64) ([]*models.Bill, error) {
	if ownerID == 0 {
		return nil, ErrUnauthenticated
	}
	return s.store.ListBills(ctx, ownerID)
}

// GetBill returns one bill with its line items. A bill belonging to another
// owner is indistinguishable from a missing one.
func (s *BillingService) GetBill(ctx context.Context, ownerID, billID int64) (*models.Bill, error) {
	if ownerID == 0 {
		return nil, ErrUnauthenticated
	}
	return s.store.GetBill(ctx, ownerID, billID)
}

func validateEntry(entry CartEntry) error {
	if strings.TrimSpace(entry.Name) == "" {
		return fmt.Errorf("%w: missing name", ErrMalformedCart)
	}
	for _, v := range [...]float64{entry.Price, entry.Qty, entry.Subtotal} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: non-numeric amount", ErrMalformedCart)
		}
	}
	if entry.Price < 0 || entry.Qty < 0 {
		return fmt.Errorf("%w: negative amount", ErrMalformedCart)
	}
	return nil
}

// verifyTotals recomputes subtotal = price x qty per entry and
// total = sum of subtotals, rejecting anything off by more than the tolerance.
func verifyTotals(cart []CartEntry, total float64) error {
	var sum float64
	for i, entry := range cart {
		expected := entry.Price * entry.Qty
		if math.Abs(expected-entry.Subtotal) > totalTolerance {
			return fmt.Errorf("%w: entry %d subtotal %.2f, computed %.2f", ErrTotalMismatch, i, entry.Subtotal, expected)
		}
		sum += entry.Subtotal
	}
	if math.Abs(sum-total) > totalTolerance {
		return fmt.Errorf("%w: total %.2f, computed %.2f", ErrTotalMismatch, total, sum)
	}
	return nil
}
