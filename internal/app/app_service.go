package app

import (
	"context"
	"fmt"
	"strings"

	"payables-tracker/internal/core"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

type appService struct {
	vendors    core.VendorService
	ledger     core.PaymentLedger
	stores     []*core.EntryStore
	dispatcher *core.Dispatcher
	reports    core.ReportingService
	log        zerolog.Logger
}

// NewAppService wires the vendor master, payment ledger, and the per-class
// entry collections into the ApplicationService facade. Every store is
// registered with the dispatcher so payment events reach both classes.
func NewAppService(
	vendors core.VendorService,
	ledger core.PaymentLedger,
	log zerolog.Logger,
	stores ...*core.EntryStore,
) ApplicationService {
	dispatcher := core.NewDispatcher()
	for _, s := range stores {
		dispatcher.Register(s)
	}
	return &appService{
		vendors:    vendors,
		ledger:     ledger,
		stores:     stores,
		dispatcher: dispatcher,
		reports:    core.NewReportingService(stores...),
		log:        log,
	}
}

// ── Vendors ───────────────────────────────────────────────────────────────

func (s *appService) ListVendors(ctx context.Context) ([]core.Vendor, error) {
	return s.vendors.GetVendors(ctx)
}

func (s *appService) CreateVendor(ctx context.Context, input core.VendorInput) (*core.Vendor, error) {
	if strings.TrimSpace(input.Code) == "" {
		return nil, fmt.Errorf("vendor code is required")
	}
	if strings.TrimSpace(input.Name) == "" {
		return nil, fmt.Errorf("vendor name is required")
	}
	return s.vendors.CreateVendor(ctx, input)
}

func (s *appService) GetVendor(ctx context.Context, code string) (*core.Vendor, error) {
	return s.vendors.GetVendorByCode(ctx, code)
}

func (s *appService) UpdateVendor(ctx context.Context, code string, input core.VendorInput) (*core.Vendor, error) {
	return s.vendors.UpdateVendor(ctx, code, input)
}

func (s *appService) DeactivateVendor(ctx context.Context, code string) error {
	return s.vendors.DeactivateVendor(ctx, code)
}

// ── Entries ───────────────────────────────────────────────────────────────

func (s *appService) storeForClass(class core.VendorClass) (*core.EntryStore, error) {
	for _, st := range s.stores {
		if st.Class() == class {
			return st, nil
		}
	}
	return nil, fmt.Errorf("unknown vendor class %q", class)
}

// storeForVendor picks the store whose class owns the code, or nil when the
// code matches no class prefix.
func (s *appService) storeForVendor(vendorCode string) *core.EntryStore {
	for _, st := range s.stores {
		if st.Class().Owns(vendorCode) {
			return st
		}
	}
	return nil
}

func (s *appService) ListEntries(ctx context.Context, class core.VendorClass, year, month int) ([]core.BillingEntry, error) {
	st, err := s.storeForClass(class)
	if err != nil {
		return nil, err
	}
	return st.LoadPeriod(ctx, year, month)
}

func (s *appService) CreateEntry(ctx context.Context, class core.VendorClass, year, month int, input core.EntryInput) (*core.BillingEntry, error) {
	if strings.TrimSpace(input.GrossAmount) == "" {
		return nil, fmt.Errorf("gross amount is required")
	}
	st, err := s.storeForClass(class)
	if err != nil {
		return nil, err
	}
	return st.Create(ctx, year, month, input)
}

func (s *appService) UpdateEntry(ctx context.Context, class core.VendorClass, year, month int, id string, input core.EntryInput) (*core.BillingEntry, error) {
	if strings.TrimSpace(input.GrossAmount) == "" {
		return nil, fmt.Errorf("gross amount is required")
	}
	st, err := s.storeForClass(class)
	if err != nil {
		return nil, err
	}
	return st.Update(ctx, year, month, id, input)
}

func (s *appService) DeleteEntry(ctx context.Context, class core.VendorClass, year, month int, id string) error {
	st, err := s.storeForClass(class)
	if err != nil {
		return err
	}
	return st.Delete(ctx, year, month, id)
}

// ── Payments ──────────────────────────────────────────────────────────────

func (s *appService) ListPayments(ctx context.Context) ([]core.PaymentRecord, error) {
	return s.ledger.List(ctx)
}

// eventFor builds the reconciliation event a request implies and the
// remaining-payable input for the decision rule. remaining is nil when the
// vendor code belongs to no class.
func (s *appService) eventFor(ctx context.Context, req PaymentRequest) (core.PaymentEvent, *decimal.Decimal, error) {
	year, month, err := core.ParseMonthLabel(req.Month)
	if err != nil {
		return core.PaymentEvent{}, nil, err
	}
	if strings.TrimSpace(req.VendorCode) == "" {
		return core.PaymentEvent{}, nil, fmt.Errorf("vendor code is required")
	}
	ev := core.PaymentEvent{
		VendorCode: req.VendorCode,
		Year:       year,
		Month:      month,
		Amount:     core.Round2(core.ParseAmount(req.Amount)),
		EntryID:    req.EntryID,
	}

	var remaining *decimal.Decimal
	if st := s.storeForVendor(req.VendorCode); st != nil {
		r, err := st.OutstandingFor(ctx, ev)
		if err != nil {
			return core.PaymentEvent{}, nil, err
		}
		remaining = &r
	}
	return ev, remaining, nil
}

func (s *appService) CreatePayment(ctx context.Context, req PaymentRequest) (*core.PaymentRecord, error) {
	ev, remaining, err := s.eventFor(ctx, req)
	if err != nil {
		return nil, err
	}

	rec := &core.PaymentRecord{
		ID:         uuid.NewString(),
		VendorCode: req.VendorCode,
		MonthLabel: core.FormatMonthLabel(ev.Year, ev.Month),
		Amount:     ev.Amount,
		Status:     core.DecideStatus(req.Status, ev.Amount, remaining),
		EntryID:    req.EntryID,
	}
	if err := s.ledger.Append(ctx, rec); err != nil {
		return nil, err
	}
	if rec.Status == core.StatusPaid {
		s.dispatcher.Apply(ev)
	}
	s.log.Info().Str("payment", rec.ID).Str("vendor", rec.VendorCode).
		Str("amount", rec.Amount.String()).Str("status", string(rec.Status)).
		Msg("payment recorded")
	return rec, nil
}

func (s *appService) UpdatePayment(ctx context.Context, id string, req PaymentRequest) (*core.PaymentRecord, error) {
	old, err := s.ledger.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	// Undo the previous application before deciding the new values, so the
	// remaining payable reflects only other payments. The old period must be
	// loaded first — while the ledger still holds the old record — otherwise
	// a later replay of that period would re-apply a payment we are about to
	// replace.
	var oldEv core.PaymentEvent
	reversed := false
	if ev, evErr := old.Event(); evErr == nil {
		oldEv = ev
		if st := s.storeForVendor(old.VendorCode); st != nil {
			if _, err := st.LoadPeriod(ctx, oldEv.Year, oldEv.Month); err != nil {
				return nil, err
			}
		}
		if old.Status == core.StatusPaid {
			s.dispatcher.Reverse(oldEv)
			reversed = true
		}
	}

	// If the update cannot be persisted the ledger still holds the old
	// record, so the in-memory reversal must be put back.
	undo := func() {
		if reversed {
			s.dispatcher.Apply(oldEv)
		}
	}

	ev, remaining, err := s.eventFor(ctx, req)
	if err != nil {
		undo()
		return nil, err
	}
	rec := &core.PaymentRecord{
		ID:         id,
		VendorCode: req.VendorCode,
		MonthLabel: core.FormatMonthLabel(ev.Year, ev.Month),
		Amount:     ev.Amount,
		Status:     core.DecideStatus(req.Status, ev.Amount, remaining),
		EntryID:    req.EntryID,
	}
	if err := s.ledger.Update(ctx, rec); err != nil {
		undo()
		return nil, err
	}
	if rec.Status == core.StatusPaid {
		s.dispatcher.Apply(ev)
	}
	return rec, nil
}

func (s *appService) TogglePayment(ctx context.Context, id string) (*core.PaymentRecord, error) {
	rec, err := s.ledger.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	ev, err := rec.Event()
	if err != nil {
		return nil, err
	}

	// Load the period before flipping the stored status: replay sees the
	// record as it currently stands, so the flip below is applied exactly
	// once whether or not the period was already in memory.
	if st := s.storeForVendor(rec.VendorCode); st != nil {
		if _, err := st.LoadPeriod(ctx, ev.Year, ev.Month); err != nil {
			return nil, err
		}
	}

	if rec.Status == core.StatusPaid {
		rec.Status = core.StatusUnpaid
		if err := s.ledger.Update(ctx, rec); err != nil {
			return nil, err
		}
		s.dispatcher.Reverse(ev)
		return rec, nil
	}

	rec.Status = core.StatusPaid
	if err := s.ledger.Update(ctx, rec); err != nil {
		return nil, err
	}
	s.dispatcher.Apply(ev)
	return rec, nil
}

func (s *appService) DeletePayment(ctx context.Context, id string) error {
	rec, err := s.ledger.Get(ctx, id)
	if err != nil {
		return err
	}
	// Remove the record first; the reversal runs only once the ledger no
	// longer holds it, so a failed delete leaves entries matching the ledger.
	if err := s.ledger.Delete(ctx, id); err != nil {
		return err
	}
	if rec.Status == core.StatusPaid {
		if ev, err := rec.Event(); err == nil {
			s.dispatcher.Reverse(ev)
		}
	}
	return nil
}

// ── Reports ───────────────────────────────────────────────────────────────

func (s *appService) YearlyReport(ctx context.Context, vendorCode string, year int) (*core.YearlyReport, error) {
	return s.reports.YearlyReport(ctx, vendorCode, year)
}
