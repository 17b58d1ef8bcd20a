package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrPaymentNotFound is returned when a ledger record id does not exist.
var ErrPaymentNotFound = errors.New("payment not found")

// PaymentLedger is the durable, ordered list of payment records. It is the
// source of truth for payment history: entry paid state is reconstructed
// from it at period load (replay), never the other way round.
type PaymentLedger interface {
	// Append inserts a new record. The caller assigns the ID.
	Append(ctx context.Context, rec *PaymentRecord) error

	// Update replaces the stored record with the same ID.
	Update(ctx context.Context, rec *PaymentRecord) error

	// Delete removes a record by ID.
	Delete(ctx context.Context, id string) error

	// Get returns a record by ID, or ErrPaymentNotFound.
	Get(ctx context.Context, id string) (*PaymentRecord, error)

	// List returns the full ledger in insertion order.
	List(ctx context.Context) ([]PaymentRecord, error)

	// ListPaidForPeriod returns records with status paid whose parsed month
	// label falls in (year, month), in insertion order. Consumed by replay.
	ListPaidForPeriod(ctx context.Context, year, month int) ([]PaymentRecord, error)
}

type pgPaymentLedger struct {
	pool *pgxpool.Pool
}

// NewPaymentLedger constructs a PaymentLedger backed by PostgreSQL.
func NewPaymentLedger(pool *pgxpool.Pool) PaymentLedger {
	return &pgPaymentLedger{pool: pool}
}

func (l *pgPaymentLedger) Append(ctx context.Context, rec *PaymentRecord) error {
	year, month, err := rec.Period()
	if err != nil {
		return err
	}
	err = l.pool.QueryRow(ctx, `
		INSERT INTO payments (id, vendor_code, month_label, pay_year, pay_month, amount, status, entry_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NULLIF($8, ''))
		RETURNING created_at`,
		rec.ID, rec.VendorCode, rec.MonthLabel, year, month,
		rec.Amount, string(rec.Status), rec.EntryID,
	).Scan(&rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("append payment %s: %w", rec.ID, err)
	}
	return nil
}

func (l *pgPaymentLedger) Update(ctx context.Context, rec *PaymentRecord) error {
	year, month, err := rec.Period()
	if err != nil {
		return err
	}
	tag, err := l.pool.Exec(ctx, `
		UPDATE payments
		SET vendor_code = $2, month_label = $3, pay_year = $4, pay_month = $5,
		    amount = $6, status = $7, entry_id = NULLIF($8, '')
		WHERE id = $1`,
		rec.ID, rec.VendorCode, rec.MonthLabel, year, month,
		rec.Amount, string(rec.Status), rec.EntryID,
	)
	if err != nil {
		return fmt.Errorf("update payment %s: %w", rec.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrPaymentNotFound
	}
	return nil
}

func (l *pgPaymentLedger) Delete(ctx context.Context, id string) error {
	tag, err := l.pool.Exec(ctx, "DELETE FROM payments WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete payment %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrPaymentNotFound
	}
	return nil
}

func (l *pgPaymentLedger) Get(ctx context.Context, id string) (*PaymentRecord, error) {
	rec := &PaymentRecord{}
	var entryID *string
	var status string
	err := l.pool.QueryRow(ctx, `
		SELECT id, vendor_code, month_label, amount, status, entry_id, created_at
		FROM payments WHERE id = $1`, id,
	).Scan(&rec.ID, &rec.VendorCode, &rec.MonthLabel, &rec.Amount, &status, &entryID, &rec.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPaymentNotFound
		}
		return nil, fmt.Errorf("get payment %s: %w", id, err)
	}
	rec.Status = PaymentStatus(status)
	if entryID != nil {
		rec.EntryID = *entryID
	}
	return rec, nil
}

func (l *pgPaymentLedger) List(ctx context.Context) ([]PaymentRecord, error) {
	return l.query(ctx, `
		SELECT id, vendor_code, month_label, amount, status, entry_id, created_at
		FROM payments ORDER BY created_at, id`)
}

func (l *pgPaymentLedger) ListPaidForPeriod(ctx context.Context, year, month int) ([]PaymentRecord, error) {
	return l.query(ctx, `
		SELECT id, vendor_code, month_label, amount, status, entry_id, created_at
		FROM payments
		WHERE status = 'paid' AND pay_year = $1 AND pay_month = $2
		ORDER BY created_at, id`, year, month)
}

func (l *pgPaymentLedger) query(ctx context.Context, sql string, args ...any) ([]PaymentRecord, error) {
	rows, err := l.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	defer rows.Close()

	var recs []PaymentRecord
	for rows.Next() {
		var rec PaymentRecord
		var entryID *string
		var status string
		if err := rows.Scan(&rec.ID, &rec.VendorCode, &rec.MonthLabel, &rec.Amount, &status, &entryID, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		rec.Status = PaymentStatus(status)
		if entryID != nil {
			rec.EntryID = *entryID
		}
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}
