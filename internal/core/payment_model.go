package core

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type PaymentStatus string

const (
	StatusPaid   PaymentStatus = "paid"
	StatusUnpaid PaymentStatus = "unpaid"
)

// PaymentRecord is one payment instruction/voucher in the ledger. Payments
// persist independently of billing entries; the apply protocol is the only
// link between the two, re-derived by vendor-code + period matching at
// application time (no foreign key).
type PaymentRecord struct {
	ID         string          `json:"id"`
	VendorCode string          `json:"vendor_code"`
	MonthLabel string          `json:"month"` // "July 2025"
	Amount     decimal.Decimal `json:"amount"`
	Status     PaymentStatus   `json:"status"`
	EntryID    string          `json:"entry_id,omitempty"` // restricts apply to one entry
	CreatedAt  time.Time       `json:"created_at"`
}

// Period returns the payment's parsed {year, month}.
func (p *PaymentRecord) Period() (int, int, error) {
	return ParseMonthLabel(p.MonthLabel)
}

// Event converts the record into the reconciliation event it implies.
func (p *PaymentRecord) Event() (PaymentEvent, error) {
	year, month, err := p.Period()
	if err != nil {
		return PaymentEvent{}, err
	}
	return PaymentEvent{
		VendorCode: p.VendorCode,
		Year:       year,
		Month:      month,
		Amount:     p.Amount,
		EntryID:    p.EntryID,
	}, nil
}

// ParseMonthLabel parses a combined "Month Year" label ("July 2025") into
// its year and month.
func ParseMonthLabel(label string) (year, month int, err error) {
	t, err := time.Parse("January 2006", strings.TrimSpace(label))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid month label %q: %w", label, err)
	}
	return t.Year(), int(t.Month()), nil
}

// FormatMonthLabel renders (year, month) as the combined label used on
// payment records.
func FormatMonthLabel(year, month int) string {
	return time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC).Format("January 2006")
}
