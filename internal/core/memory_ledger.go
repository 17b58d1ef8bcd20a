package core

import (
	"context"
	"sync"
	"time"
)

// MemoryLedger is an in-memory PaymentLedger. Used by tests and by the
// standalone demo mode where no database is configured.
type MemoryLedger struct {
	mu   sync.Mutex
	recs []PaymentRecord
}

func NewMemoryLedger() *MemoryLedger {
	return &MemoryLedger{}
}

func (l *MemoryLedger) Append(_ context.Context, rec *PaymentRecord) error {
	if _, _, err := rec.Period(); err != nil {
		return err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	l.recs = append(l.recs, *rec)
	return nil
}

func (l *MemoryLedger) Update(_ context.Context, rec *PaymentRecord) error {
	if _, _, err := rec.Period(); err != nil {
		return err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	for i := range l.recs {
		if l.recs[i].ID == rec.ID {
			rec.CreatedAt = l.recs[i].CreatedAt
			l.recs[i] = *rec
			return nil
		}
	}
	return ErrPaymentNotFound
}

func (l *MemoryLedger) Delete(_ context.Context, id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i := range l.recs {
		if l.recs[i].ID == id {
			l.recs = append(l.recs[:i], l.recs[i+1:]...)
			return nil
		}
	}
	return ErrPaymentNotFound
}

func (l *MemoryLedger) Get(_ context.Context, id string) (*PaymentRecord, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i := range l.recs {
		if l.recs[i].ID == id {
			rec := l.recs[i]
			return &rec, nil
		}
	}
	return nil, ErrPaymentNotFound
}

func (l *MemoryLedger) List(_ context.Context) ([]PaymentRecord, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]PaymentRecord, len(l.recs))
	copy(out, l.recs)
	return out, nil
}

func (l *MemoryLedger) ListPaidForPeriod(_ context.Context, year, month int) ([]PaymentRecord, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []PaymentRecord
	for _, rec := range l.recs {
		if rec.Status != StatusPaid {
			continue
		}
		y, m, err := rec.Period()
		if err != nil || y != year || m != month {
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}
