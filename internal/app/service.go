package app

import (
	"context"

	"payables-tracker/internal/core"
)

// PaymentRequest is a payment create/update payload as it arrives from a
// form. Amount is a string; it passes through the same lenient numeric
// normalization as entry fields. Month is a combined "Month Year" label.
type PaymentRequest struct {
	VendorCode string             `json:"vendor_code"`
	Month      string             `json:"month"` // e.g. "July 2025"
	Amount     string             `json:"amount"`
	Status     core.PaymentStatus `json:"status,omitempty"`
	EntryID    string             `json:"entry_id,omitempty"`
}

// ApplicationService is the single interface the transport adapters call.
// It decouples presentation from business logic; implementations contain no
// display logic of any kind.
type ApplicationService interface {
	// ListVendors returns all active vendors.
	ListVendors(ctx context.Context) ([]core.Vendor, error)

	// CreateVendor creates a vendor master record.
	CreateVendor(ctx context.Context, input core.VendorInput) (*core.Vendor, error)

	// GetVendor returns one vendor by code.
	GetVendor(ctx context.Context, code string) (*core.Vendor, error)

	// UpdateVendor replaces a vendor's mutable fields.
	UpdateVendor(ctx context.Context, code string, input core.VendorInput) (*core.Vendor, error)

	// DeactivateVendor soft-deletes a vendor.
	DeactivateVendor(ctx context.Context, code string) error

	// ListEntries returns the billing entries of one class for a period,
	// loading and replaying the period on first access.
	ListEntries(ctx context.Context, class core.VendorClass, year, month int) ([]core.BillingEntry, error)

	// CreateEntry computes and stores a new billing entry.
	CreateEntry(ctx context.Context, class core.VendorClass, year, month int, input core.EntryInput) (*core.BillingEntry, error)

	// UpdateEntry fully recomputes an entry from fresh inputs.
	UpdateEntry(ctx context.Context, class core.VendorClass, year, month int, id string, input core.EntryInput) (*core.BillingEntry, error)

	// DeleteEntry removes an entry from its period.
	DeleteEntry(ctx context.Context, class core.VendorClass, year, month int, id string) error

	// ListPayments returns the full payment ledger in insertion order.
	ListPayments(ctx context.Context) ([]core.PaymentRecord, error)

	// CreatePayment records a payment. Its effective status comes from the
	// decision rule; a payment that lands as paid is applied to the matching
	// entries immediately.
	CreatePayment(ctx context.Context, req PaymentRequest) (*core.PaymentRecord, error)

	// UpdatePayment replaces a payment. A previously paid payment is
	// reversed before the new values are decided and applied.
	UpdatePayment(ctx context.Context, id string, req PaymentRequest) (*core.PaymentRecord, error)

	// TogglePayment flips a payment between paid and unpaid, applying or
	// reversing it against the entries accordingly. The flip is explicit and
	// bypasses the decision rule.
	TogglePayment(ctx context.Context, id string) (*core.PaymentRecord, error)

	// DeletePayment removes a payment from the ledger, reversing its
	// application if it was paid.
	DeletePayment(ctx context.Context, id string) error

	// YearlyReport aggregates per-month totals for a year, optionally
	// filtered to one vendor code.
	YearlyReport(ctx context.Context, vendorCode string, year int) (*core.YearlyReport, error)
}
