package repository

import (
	"context"
	"database/sql"

	"github.com/go-faster/errors"
	"github.com/google/uuid"

	"github.com/jask/storefront/internal/database"
	"github.com/jask/storefront/internal/model"
)

// ReceiptRepo handles the order journal.
type ReceiptRepo struct {
	db *sql.DB
}

func NewReceiptRepo(db *sql.DB) *ReceiptRepo {
	return &ReceiptRepo{db: db}
}

// Record journals an accepted order.
func (r *ReceiptRepo) Record(ctx context.Context, o model.Order, res model.OrderResult) error {
	return r.Insert(ctx, Receipt{
		ID:        uuid.NewString(),
		OrderID:   res.ID,
		Payment:   string(o.Payment),
		Email:     o.Email,
		Phone:     o.Phone,
		Address:   o.Address,
		Total:     res.Total.String(),
		Items:     o.Items,
		CreatedAt: database.Now(),
	})
}

func (r *ReceiptRepo) Insert(ctx context.Context, rc Receipt) error {
	return database.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
	INSERT INTO receipts(id, order_id, payment, email, phone, address, total, created_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			rc.ID, rc.OrderID, rc.Payment, rc.Email, rc.Phone, rc.Address, rc.Total, rc.CreatedAt)
		if err != nil {
			return errors.Wrap(err, "insert receipt")
		}
		for i, id := range rc.Items {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO receipt_items(receipt_id, position, product_id) VALUES (?, ?, ?)`,
				rc.ID, i, id); err != nil {
				return errors.Wrap(err, "insert receipt item")
			}
		}
		return nil
	})
}

// List returns receipts newest first, at most limit when limit > 0.
func (r *ReceiptRepo) List(ctx context.Context, limit int) ([]Receipt, error) {
	q := `SELECT id, order_id, payment, email, phone, address, total, created_at FROM receipts ORDER BY created_at DESC, rowid DESC`
	args := []any{}
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Receipt
	for rows.Next() {
		var rc Receipt
		if err := rows.Scan(&rc.ID, &rc.OrderID, &rc.Payment, &rc.Email, &rc.Phone, &rc.Address, &rc.Total, &rc.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, rc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range out {
		items, err := r.items(ctx, out[i].ID)
		if err != nil {
			return nil, err
		}
		out[i].Items = items
	}
	return out, nil
}

func (r *ReceiptRepo) items(ctx context.Context, receiptID string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT product_id FROM receipt_items WHERE receipt_id = ? ORDER BY position`, receiptID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}
