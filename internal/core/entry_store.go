package core

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// ErrEntryNotFound is returned when an entry id is not present in the
// requested period.
var ErrEntryNotFound = errors.New("entry not found")

// SeedEntry is one raw billing entry as served by an EntrySource. The ID is
// stable across reloads so entry-targeted payments replay onto the same row.
type SeedEntry struct {
	ID    string `json:"id"`
	Year  int    `json:"year"`
	Month int    `json:"month"`
	EntryInput
}

// EntrySource supplies the raw billing entries for a period. Entries have no
// durable store of their own in this design — the demo deployment serves a
// static dataset and paid state is reconstructed by replay.
type EntrySource interface {
	FetchPeriod(ctx context.Context, class VendorClass, year, month int) ([]SeedEntry, error)
}

type periodKey struct {
	year, month int
}

// EntryStore holds one vendor class's billing entries, keyed by period.
// Loading a period fetches the raw entries from the source, computes their
// financial fields, then replays every paid ledger record for that period so
// PartPaid/Payables match the payment history. The store is the class's
// Reconciler: payment events are broadcast to all stores and each filters to
// its own vendor-code prefix.
type EntryStore struct {
	class   VendorClass
	source  EntrySource
	ledger  PaymentLedger
	vendors VendorLookup
	log     zerolog.Logger

	mu      sync.Mutex
	periods map[periodKey][]*BillingEntry
}

// NewEntryStore constructs the entry collection for one vendor class.
// vendors may be nil; work types then default from the class.
func NewEntryStore(class VendorClass, source EntrySource, ledger PaymentLedger, vendors VendorLookup, log zerolog.Logger) *EntryStore {
	return &EntryStore{
		class:   class,
		source:  source,
		ledger:  ledger,
		vendors: vendors,
		log:     log.With().Str("class", string(class)).Logger(),
		periods: make(map[periodKey][]*BillingEntry),
	}
}

// Class returns the vendor class this store owns.
func (s *EntryStore) Class() VendorClass { return s.class }

// LoadPeriod returns the entries for (year, month), loading and replaying
// them on first access. Replay is strictly sequenced after the load so
// payments are applied to a fully populated entry set.
func (s *EntryStore) LoadPeriod(ctx context.Context, year, month int) ([]BillingEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entries, err := s.loadLocked(ctx, year, month)
	if err != nil {
		return nil, err
	}
	return snapshot(entries), nil
}

func (s *EntryStore) loadLocked(ctx context.Context, year, month int) ([]*BillingEntry, error) {
	key := periodKey{year, month}
	if entries, ok := s.periods[key]; ok {
		return entries, nil
	}

	seeds, err := s.source.FetchPeriod(ctx, s.class, year, month)
	if err != nil {
		return nil, fmt.Errorf("load %s entries for %d-%02d: %w", s.class, year, month, err)
	}

	entries := make([]*BillingEntry, 0, len(seeds))
	for _, seed := range seeds {
		e := &BillingEntry{
			ID:          seed.ID,
			VendorCode:  seed.VendorCode,
			VendorName:  seed.VendorName,
			Year:        year,
			Month:       month,
			InvoiceNo:   seed.InvoiceNo,
			InvoiceDate: seed.InvoiceDate,
			Computed:    Calculate(seed.EntryInput, s.workTypeFor(ctx, seed.VendorCode)),
		}
		if e.ID == "" {
			e.ID = uuid.NewString()
		}
		entries = append(entries, e)
	}

	paid, err := s.ledger.ListPaidForPeriod(ctx, year, month)
	if err != nil {
		return nil, fmt.Errorf("replay %s payments for %d-%02d: %w", s.class, year, month, err)
	}
	ops := ReplayPayments(entries, paid, s.mayConcern)
	s.log.Debug().Int("year", year).Int("month", month).
		Int("entries", len(entries)).Int("replayed", len(ops)).
		Msg("period loaded")

	s.periods[key] = entries
	return entries, nil
}

// workTypeFor resolves a vendor code to its work type via the vendor
// master, falling back to the class default when the code is unknown.
func (s *EntryStore) workTypeFor(ctx context.Context, vendorCode string) string {
	if s.vendors != nil {
		if v, err := s.vendors.GetVendorByCode(ctx, vendorCode); err == nil {
			return v.WorkType
		}
	}
	return s.class.WorkType()
}

// Create computes and stores a new entry in the given period.
func (s *EntryStore) Create(ctx context.Context, year, month int, input EntryInput) (*BillingEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entries, err := s.loadLocked(ctx, year, month)
	if err != nil {
		return nil, err
	}
	e := &BillingEntry{
		ID:          uuid.NewString(),
		VendorCode:  input.VendorCode,
		VendorName:  input.VendorName,
		Year:        year,
		Month:       month,
		InvoiceNo:   input.InvoiceNo,
		InvoiceDate: input.InvoiceDate,
		Computed:    Calculate(input, s.workTypeFor(ctx, input.VendorCode)),
	}
	s.periods[periodKey{year, month}] = append(entries, e)
	out := *e
	return &out, nil
}

// Update fully recomputes the entry with the given id from fresh inputs.
func (s *EntryStore) Update(ctx context.Context, year, month int, id string, input EntryInput) (*BillingEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entries, err := s.loadLocked(ctx, year, month)
	if err != nil {
		return nil, err
	}
	for _, e := range entries {
		if e.ID == id {
			e.VendorCode = input.VendorCode
			e.VendorName = input.VendorName
			e.InvoiceNo = input.InvoiceNo
			e.InvoiceDate = input.InvoiceDate
			e.Computed = Calculate(input, s.workTypeFor(ctx, input.VendorCode))
			out := *e
			return &out, nil
		}
	}
	return nil, ErrEntryNotFound
}

// Delete removes the entry with the given id from its period.
func (s *EntryStore) Delete(ctx context.Context, year, month int, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	entries, err := s.loadLocked(ctx, year, month)
	if err != nil {
		return err
	}
	for i, e := range entries {
		if e.ID == id {
			s.periods[periodKey{year, month}] = append(entries[:i], entries[i+1:]...)
			return nil
		}
	}
	return ErrEntryNotFound
}

// OutstandingFor returns the summed positive payables across the entries a
// payment event would touch, used as the "remaining payable" input to the
// status decision rule.
func (s *EntryStore) OutstandingFor(ctx context.Context, ev PaymentEvent) (decimal.Decimal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entries, err := s.loadLocked(ctx, ev.Year, ev.Month)
	if err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for _, e := range candidates(entries, ev, false) {
		if e.Payables.IsPositive() {
			total = total.Add(e.Payables)
		}
	}
	return total, nil
}

// mayConcern reports whether a payment keyed by vendor could touch this
// class's entries. A recognized code prefix decides directly; a display
// name passes through and entry matching decides, since every entry in
// the store already belongs to this class.
func (s *EntryStore) mayConcern(vendor string) bool {
	cls, ok := ClassOfCode(vendor)
	return !ok || cls == s.class
}

// ApplyPayment implements Reconciler. Events keyed by another class's
// vendor code, or for periods not yet loaded, are ignored — replay covers
// the latter when the period is first loaded.
func (s *EntryStore) ApplyPayment(ev PaymentEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.mayConcern(ev.VendorCode) {
		return
	}
	entries, ok := s.periods[periodKey{ev.Year, ev.Month}]
	if !ok {
		return
	}
	applied := Apply(entries, ev)
	s.log.Debug().Str("vendor", ev.VendorCode).
		Str("amount", ev.Amount.String()).Str("applied", applied.String()).
		Msg("payment applied")
}

// ReversePayment implements Reconciler.
func (s *EntryStore) ReversePayment(ev PaymentEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.mayConcern(ev.VendorCode) {
		return
	}
	entries, ok := s.periods[periodKey{ev.Year, ev.Month}]
	if !ok {
		return
	}
	reversed := Reverse(entries, ev)
	s.log.Debug().Str("vendor", ev.VendorCode).
		Str("amount", ev.Amount.String()).Str("reversed", reversed.String()).
		Msg("payment reversed")
}

func snapshot(entries []*BillingEntry) []BillingEntry {
	out := make([]BillingEntry, len(entries))
	for i, e := range entries {
		out[i] = *e
	}
	return out
}
