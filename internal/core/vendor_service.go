package core

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrVendorNotFound is returned when a vendor code does not exist.
var ErrVendorNotFound = errors.New("vendor not found")

type vendorService struct {
	pool *pgxpool.Pool
}

// NewVendorService constructs a VendorService backed by PostgreSQL.
func NewVendorService(pool *pgxpool.Pool) VendorService {
	return &vendorService{pool: pool}
}

const vendorColumns = "id, code, name, work_type, pan_no, contact_no, ifsc, bank_account_no, is_active, created_at"

func scanVendor(row pgx.Row) (*Vendor, error) {
	v := &Vendor{}
	err := row.Scan(
		&v.ID, &v.Code, &v.Name, &v.WorkType,
		&v.PANNo, &v.ContactNo, &v.IFSC, &v.BankAccountNo,
		&v.IsActive, &v.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return v, nil
}

// CreateVendor inserts a new vendor record. The work type defaults from the
// code prefix when not supplied.
func (s *vendorService) CreateVendor(ctx context.Context, input VendorInput) (*Vendor, error) {
	workType := strings.TrimSpace(input.WorkType)
	if workType == "" {
		workType = classOf(input.Code).WorkType()
	}

	toPtr := func(s string) *string {
		if s == "" {
			return nil
		}
		return &s
	}

	v, err := scanVendor(s.pool.QueryRow(ctx, `
		INSERT INTO vendors (code, name, work_type, pan_no, contact_no, ifsc, bank_account_no)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+vendorColumns,
		input.Code, input.Name, workType,
		toPtr(input.PANNo), toPtr(input.ContactNo), toPtr(input.IFSC), toPtr(input.BankAccountNo),
	))
	if err != nil {
		return nil, fmt.Errorf("create vendor %q: %w", input.Code, err)
	}
	return v, nil
}

// GetVendors returns all active vendors, ordered by code.
func (s *vendorService) GetVendors(ctx context.Context) ([]Vendor, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+vendorColumns+`
		FROM vendors
		WHERE is_active = true
		ORDER BY code`,
	)
	if err != nil {
		return nil, fmt.Errorf("get vendors: %w", err)
	}
	defer rows.Close()

	var vendors []Vendor
	for rows.Next() {
		v, err := scanVendor(rows)
		if err != nil {
			return nil, fmt.Errorf("scan vendor: %w", err)
		}
		vendors = append(vendors, *v)
	}
	return vendors, rows.Err()
}

// GetVendorByCode returns a vendor by code.
func (s *vendorService) GetVendorByCode(ctx context.Context, code string) (*Vendor, error) {
	v, err := scanVendor(s.pool.QueryRow(ctx, `
		SELECT `+vendorColumns+`
		FROM vendors
		WHERE code = $1`, code,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrVendorNotFound
		}
		return nil, fmt.Errorf("vendor %q: %w", code, err)
	}
	return v, nil
}

// UpdateVendor replaces the mutable fields of a vendor.
func (s *vendorService) UpdateVendor(ctx context.Context, code string, input VendorInput) (*Vendor, error) {
	toPtr := func(s string) *string {
		if s == "" {
			return nil
		}
		return &s
	}

	v, err := scanVendor(s.pool.QueryRow(ctx, `
		UPDATE vendors
		SET name = $2, work_type = $3, pan_no = $4, contact_no = $5, ifsc = $6, bank_account_no = $7
		WHERE code = $1
		RETURNING `+vendorColumns,
		code, input.Name, input.WorkType,
		toPtr(input.PANNo), toPtr(input.ContactNo), toPtr(input.IFSC), toPtr(input.BankAccountNo),
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrVendorNotFound
		}
		return nil, fmt.Errorf("update vendor %q: %w", code, err)
	}
	return v, nil
}

// DeactivateVendor soft-deletes a vendor.
func (s *vendorService) DeactivateVendor(ctx context.Context, code string) error {
	tag, err := s.pool.Exec(ctx,
		"UPDATE vendors SET is_active = false WHERE code = $1", code)
	if err != nil {
		return fmt.Errorf("deactivate vendor %q: %w", code, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrVendorNotFound
	}
	return nil
}

// classOf maps a vendor code to its class, defaulting to subcontractor for
// unprefixed codes.
func classOf(code string) VendorClass {
	if c, ok := ClassOfCode(code); ok {
		return c
	}
	return ClassSubcontractor
}
