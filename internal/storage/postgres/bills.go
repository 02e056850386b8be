package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/dukandar/khata/internal/models"
	"github.com/dukandar/khata/internal/storage"
)

// CreateBill persists a bill and its line items inside one transaction.
func (s *PostgresStore) CreateBill(ctx context.Context, bill *models.Bill) error {
	if bill.CreatedAt == 0 {
		bill.CreatedAt = time.Now().Unix()
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var billID int64
	err = tx.QueryRow(ctx,
		"INSERT INTO bills (user_id, total, payment_method, created_at) VALUES ($1, $2, $3, $4) RETURNING id",
		bill.UserID, bill.Total, bill.PaymentMethod, bill.CreatedAt,
	).Scan(&billID)
	if err != nil {
		return fmt.Errorf("failed to insert bill: %w", err)
	}

	for i := range bill.Items {
		item := &bill.Items[i]
		item.BillID = billID

		err := tx.QueryRow(ctx,
			`INSERT INTO bill_items (bill_id, item_name, unit, price_per_unit, quantity, subtotal)
			 VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
			billID, item.ItemName, item.Unit, item.PricePerUnit, item.Quantity, item.Subtotal,
		).Scan(&item.ID)
		if err != nil {
			return fmt.Errorf("failed to insert bill item: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	bill.ID = billID
	return nil
}

// ListBills returns bill summaries owned by userID, newest first.
func (s *PostgresStore) ListBills(ctx context.Context, userID int64) ([]*models.Bill, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, user_id, total, payment_method, created_at
		 FROM bills WHERE user_id = $1 ORDER BY created_at DESC, id DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list bills: %w", err)
	}
	defer rows.Close()

	var bills []*models.Bill
	for rows.Next() {
		bill := &models.Bill{}
		if err := rows.Scan(&bill.ID, &bill.UserID, &bill.Total, &bill.PaymentMethod, &bill.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan bill: %w", err)
		}
		bills = append(bills, bill)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate bills: %w", err)
	}

	return bills, nil
}

// GetBill retrieves a bill with its line items, scoped to userID.
func (s *PostgresStore) GetBill(ctx context.Context, userID, billID int64) (*models.Bill, error) {
	bill := &models.Bill{}
	err := s.db.QueryRow(ctx,
		"SELECT id, user_id, total, payment_method, created_at FROM bills WHERE id = $1 AND user_id = $2",
		billID, userID,
	).Scan(&bill.ID, &bill.UserID, &bill.Total, &bill.PaymentMethod, &bill.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get bill: %w", err)
	}

	rows, err := s.db.Query(ctx,
		`SELECT id, bill_id, item_name, unit, price_per_unit, quantity, subtotal
		 FROM bill_items WHERE bill_id = $1 ORDER BY id`,
		billID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get bill items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item models.BillItem
		if err := rows.Scan(&item.ID, &item.BillID, &item.ItemName, &item.Unit,
			&item.PricePerUnit, &item.Quantity, &item.Subtotal); err != nil {
			return nil, fmt.Errorf("failed to scan bill item: %w", err)
		}
		bill.Items = append(bill.Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate bill items: %w", err)
	}

	return bill, nil
}
