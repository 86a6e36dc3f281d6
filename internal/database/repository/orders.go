package repository

import (
	"context"
	"database/sql"
)

// OrderRepo handles orders.
type OrderRepo struct {
	db *sql.DB
}

func NewOrderRepo(db *sql.DB) *OrderRepo {
	return &OrderRepo{db: db}
}

// Execer is satisfied by *sql.DB and *sql.Tx.
type Execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (r *OrderRepo) Upsert(ctx context.Context, o Order) error {
	return r.upsert(ctx, r.db, o)
}

// UpsertTx writes o inside a caller-owned transaction.
func (r *OrderRepo) UpsertTx(ctx context.Context, tx *sql.Tx, o Order) error {
	return r.upsert(ctx, tx, o)
}

func (r *OrderRepo) upsert(ctx context.Context, e Execer, o Order) error {
	_, err := e.ExecContext(ctx, `
	INSERT INTO orders(id, customer, sku, quantity, notes, status, created_at, updated_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
	 customer=excluded.customer,
	 sku=excluded.sku,
	 quantity=excluded.quantity,
	 notes=excluded.notes,
	 status=excluded.status,
	 updated_at=excluded.updated_at;
	`, o.ID, o.Customer, o.SKU, o.Quantity, o.Notes, o.Status, o.CreatedAt, o.UpdatedAt)
	return err
}

func (r *OrderRepo) Get(ctx context.Context, id string) (*Order, error) {
	row := r.db.QueryRowContext(ctx, `
	SELECT id, customer, sku, quantity, notes, status, created_at, updated_at
	FROM orders WHERE id = ?`, id)
	var o Order
	if err := row.Scan(&o.ID, &o.Customer, &o.SKU, &o.Quantity, &o.Notes, &o.Status, &o.CreatedAt, &o.UpdatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &o, nil
}

func (r *OrderRepo) List(ctx context.Context) ([]Order, error) {
	rows, err := r.db.QueryContext(ctx, `
	SELECT id, customer, sku, quantity, notes, status, created_at, updated_at
	FROM orders ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Order
	for rows.Next() {
		var o Order
		if err := rows.Scan(&o.ID, &o.Customer, &o.SKU, &o.Quantity, &o.Notes, &o.Status, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

func (r *OrderRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM orders WHERE id = ?`, id)
	return err
}
