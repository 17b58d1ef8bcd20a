package core

import (
	"context"
	"time"
)

// Vendor represents a subcontractor or hiring-service provider in the
// payables system. The class is carried by the code prefix ("SC_", "HS_");
// WorkType is what the calculator consults to suppress retention.
type Vendor struct {
	ID            int
	Code          string
	Name          string
	WorkType      string
	PANNo         *string
	ContactNo     *string
	IFSC          *string
	BankAccountNo *string
	IsActive      bool
	CreatedAt     time.Time
}

// Class derives the vendor class from the code prefix.
func (v *Vendor) Class() VendorClass {
	return classOf(v.Code)
}

// VendorInput holds the fields required to create or update a vendor.
type VendorInput struct {
	Code          string `json:"vendor_code"`
	Name          string `json:"vendor_name"`
	WorkType      string `json:"work_type"`
	PANNo         string `json:"pan_no,omitempty"`
	ContactNo     string `json:"contact_no,omitempty"`
	IFSC          string `json:"ifsc,omitempty"`
	BankAccountNo string `json:"bank_account_no,omitempty"`
}

// VendorLookup is the slice of the vendor master the calculator path needs:
// resolving a code to its work type.
type VendorLookup interface {
	GetVendorByCode(ctx context.Context, code string) (*Vendor, error)
}

// VendorService provides vendor master data operations.
type VendorService interface {
	VendorLookup

	// CreateVendor creates a new vendor record.
	CreateVendor(ctx context.Context, input VendorInput) (*Vendor, error)

	// GetVendors returns all active vendors ordered by code.
	GetVendors(ctx context.Context) ([]Vendor, error)

	// UpdateVendor replaces the mutable fields of the vendor with the given code.
	UpdateVendor(ctx context.Context, code string, input VendorInput) (*Vendor, error)

	// DeactivateVendor soft-deletes a vendor; its entries and payments remain.
	DeactivateVendor(ctx context.Context, code string) error
}
