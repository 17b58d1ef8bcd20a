package core

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// VendorClass identifies one of the two disjoint vendor categories.
// Each class owns its own billing-entry collection; vendor codes carry the
// class as a prefix ("SC_01", "HS_03").
type VendorClass string

const (
	ClassSubcontractor VendorClass = "SC"
	ClassHiringService VendorClass = "HS"
)

// Owns reports whether a vendor code belongs to this class by the
// code-prefix convention.
func (c VendorClass) Owns(vendorCode string) bool {
	return strings.HasPrefix(strings.ToUpper(strings.TrimSpace(vendorCode)), string(c)+"_")
}

// WorkType returns the vendor work type implied by the class, used when the
// vendor master has no record for a code.
func (c VendorClass) WorkType() string {
	if c == ClassHiringService {
		return WorkTypeHiringService
	}
	return WorkTypeSubcontractor
}

// ClassOfCode maps a vendor code to its class via the prefix convention.
// ok is false for strings carrying no recognized prefix, such as a vendor
// display name.
func ClassOfCode(code string) (VendorClass, bool) {
	switch {
	case ClassSubcontractor.Owns(code):
		return ClassSubcontractor, true
	case ClassHiringService.Owns(code):
		return ClassHiringService, true
	}
	return "", false
}

const (
	WorkTypeSubcontractor = "Subcontractor"
	WorkTypeHiringService = "Hiring Service"
)

// IsHiringService reports whether a vendor work type denotes the
// hiring-service class, which suppresses retention.
func IsHiringService(workType string) bool {
	return strings.EqualFold(strings.TrimSpace(workType), WorkTypeHiringService)
}

// DefaultRetentionRate is withheld from subcontractor bills when no explicit
// retention rate is supplied (5%).
var DefaultRetentionRate = decimal.New(5, -2)

// EntryInput holds the raw user-entered fields of a billing entry. All
// numeric fields are strings as they arrive from a form; normalization
// happens once, inside Calculate.
type EntryInput struct {
	VendorCode      string `json:"vendor_code"`
	VendorName      string `json:"vendor_name"`
	InvoiceNo       string `json:"invoice_no"`
	InvoiceDate     string `json:"invoice_date"` // YYYY-MM-DD
	GrossAmount     string `json:"gross_amount"`
	GSTRate         string `json:"gst_rate"`
	TDSRate         string `json:"tds_rate"`
	RetentionRate   string `json:"retention_rate,omitempty"`
	DebitDeduction  string `json:"debit_deduction,omitempty"`
	GSTHold         string `json:"gst_hold,omitempty"` // empty means "withhold the full GST amount"
	OtherDeductions string `json:"other_deductions,omitempty"`
	Advances        string `json:"advances,omitempty"`
	PartPaid        string `json:"part_paid,omitempty"`
}

// Computed holds the derived financial fields of a billing entry. These are
// never user-edited directly; they are produced by Calculate and then
// mutated only by the apply/reverse protocol (PartPaid, Payables).
type Computed struct {
	Gross           decimal.Decimal `json:"gross_amount"`
	GSTRate         decimal.Decimal `json:"gst_rate"`
	TDSRate         decimal.Decimal `json:"tds_rate"`
	GSTAmount       decimal.Decimal `json:"gst_amount"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
	TDS             decimal.Decimal `json:"tds"`
	RetentionRate   decimal.Decimal `json:"retention_rate"`
	Retention       decimal.Decimal `json:"retention"`
	DebitDeduction  decimal.Decimal `json:"debit_deduction"`
	GSTHold         decimal.Decimal `json:"gst_hold"`
	OtherDeductions decimal.Decimal `json:"other_deductions"`
	TotalDeductions decimal.Decimal `json:"total_deductions"`
	NetTotal        decimal.Decimal `json:"net_total"`
	Advances        decimal.Decimal `json:"advances"`
	PartPaid        decimal.Decimal `json:"part_paid"`
	Payables        decimal.Decimal `json:"payables"`
}

// BillingEntry is one billed line item for a vendor in a given year/month.
type BillingEntry struct {
	ID          string `json:"id"`
	VendorCode  string `json:"vendor_code"`
	VendorName  string `json:"vendor_name,omitempty"`
	Year        int    `json:"year"`
	Month       int    `json:"month"` // 1–12
	InvoiceNo   string `json:"invoice_no,omitempty"`
	InvoiceDate string `json:"invoice_date,omitempty"` // YYYY-MM-DD
	Computed
}

// invoiceUnix returns the invoice date as a unix timestamp for aging order.
// Entries without a parseable date sort as epoch 0, i.e. oldest.
func (e *BillingEntry) invoiceUnix() int64 {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(e.InvoiceDate))
	if err != nil {
		return 0
	}
	return t.Unix()
}
