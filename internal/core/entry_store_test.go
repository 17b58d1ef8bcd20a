package core_test

import (
	"context"
	"testing"

	"payables-tracker/internal/core"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubSource serves a fixed slice regardless of class/period filters; the
// store is expected to pass the right period through.
type stubSource struct {
	entries []core.SeedEntry
	fetches int
}

func (s *stubSource) FetchPeriod(_ context.Context, class core.VendorClass, year, month int) ([]core.SeedEntry, error) {
	s.fetches++
	var out []core.SeedEntry
	for _, e := range s.entries {
		if e.Year == year && e.Month == month && class.Owns(e.VendorCode) {
			out = append(out, e)
		}
	}
	return out, nil
}

func seedEntry(id, vendorCode string, year, month int, gross string) core.SeedEntry {
	return core.SeedEntry{
		ID:    id,
		Year:  year,
		Month: month,
		EntryInput: core.EntryInput{
			VendorCode:  vendorCode,
			InvoiceDate: "2025-07-01",
			GrossAmount: gross,
			GSTRate:     "18",
			TDSRate:     "2",
		},
	}
}

func newTestStore(t *testing.T, class core.VendorClass, source core.EntrySource, ledger core.PaymentLedger) *core.EntryStore {
	t.Helper()
	if ledger == nil {
		ledger = core.NewMemoryLedger()
	}
	return core.NewEntryStore(class, source, ledger, nil, zerolog.Nop())
}

func TestEntryStore_LoadPeriodComputesAndReplays(t *testing.T) {
	ctx := context.Background()
	source := &stubSource{entries: []core.SeedEntry{
		seedEntry("e-1", "SC_01", 2025, 7, "100000"),
	}}
	ledger := core.NewMemoryLedger()
	require.NoError(t, ledger.Append(ctx, &core.PaymentRecord{
		ID: "p-1", VendorCode: "SC_01", MonthLabel: "July 2025",
		Amount: dec("50000"), Status: core.StatusPaid,
	}))

	store := newTestStore(t, core.ClassSubcontractor, source, ledger)
	entries, err := store.LoadPeriod(ctx, 2025, 7)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	// Computed at load (93000 payable), then the paid ledger record replayed.
	assert.True(t, entries[0].NetTotal.Equal(dec("93000")), "net = %s", entries[0].NetTotal)
	assert.True(t, entries[0].PartPaid.Equal(dec("50000")), "partPaid = %s", entries[0].PartPaid)
	assert.True(t, entries[0].Payables.Equal(dec("43000")), "payables = %s", entries[0].Payables)
}

func TestEntryStore_LoadPeriodIsIdempotent(t *testing.T) {
	ctx := context.Background()
	source := &stubSource{entries: []core.SeedEntry{
		seedEntry("e-1", "SC_01", 2025, 7, "100000"),
	}}
	ledger := core.NewMemoryLedger()
	require.NoError(t, ledger.Append(ctx, &core.PaymentRecord{
		ID: "p-1", VendorCode: "SC_01", MonthLabel: "July 2025",
		Amount: dec("50000"), Status: core.StatusPaid,
	}))

	store := newTestStore(t, core.ClassSubcontractor, source, ledger)
	_, err := store.LoadPeriod(ctx, 2025, 7)
	require.NoError(t, err)
	entries, err := store.LoadPeriod(ctx, 2025, 7)
	require.NoError(t, err)

	// A second load must not fetch or replay again.
	assert.Equal(t, 1, source.fetches)
	assert.True(t, entries[0].PartPaid.Equal(dec("50000")), "partPaid = %s", entries[0].PartPaid)
}

func TestEntryStore_CreateUpdateDelete(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t, core.ClassSubcontractor, &stubSource{}, nil)

	created, err := store.Create(ctx, 2025, 7, core.EntryInput{
		VendorCode:  "SC_01",
		GrossAmount: "10000",
		GSTRate:     "18",
		TDSRate:     "2",
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	assert.True(t, created.Retention.Equal(dec("500")), "retention = %s", created.Retention)

	updated, err := store.Update(ctx, 2025, 7, created.ID, core.EntryInput{
		VendorCode:  "SC_01",
		GrossAmount: "20000",
		GSTRate:     "18",
		TDSRate:     "2",
	})
	require.NoError(t, err)
	assert.True(t, updated.Gross.Equal(dec("20000")), "gross = %s", updated.Gross)

	_, err = store.Update(ctx, 2025, 7, "missing", core.EntryInput{GrossAmount: "1"})
	assert.ErrorIs(t, err, core.ErrEntryNotFound)

	require.NoError(t, store.Delete(ctx, 2025, 7, created.ID))
	entries, err := store.LoadPeriod(ctx, 2025, 7)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestEntryStore_ClassDefaultsSuppressRetentionForHiring(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t, core.ClassHiringService, &stubSource{}, nil)

	created, err := store.Create(ctx, 2025, 7, core.EntryInput{
		VendorCode:    "HS_01",
		GrossAmount:   "10000",
		GSTRate:       "18",
		TDSRate:       "2",
		RetentionRate: "10",
	})
	require.NoError(t, err)
	assert.True(t, created.Retention.IsZero(), "retention = %s", created.Retention)
}

func TestEntryStore_ReconcilerFiltersByClass(t *testing.T) {
	ctx := context.Background()
	source := &stubSource{entries: []core.SeedEntry{
		seedEntry("e-1", "SC_01", 2025, 7, "100000"),
	}}
	store := newTestStore(t, core.ClassSubcontractor, source, nil)
	_, err := store.LoadPeriod(ctx, 2025, 7)
	require.NoError(t, err)

	// An event for the other class must be ignored even if dispatched here.
	store.ApplyPayment(core.PaymentEvent{VendorCode: "HS_01", Year: 2025, Month: 7, Amount: dec("100")})
	entries, _ := store.LoadPeriod(ctx, 2025, 7)
	assert.True(t, entries[0].PartPaid.IsZero())

	store.ApplyPayment(core.PaymentEvent{VendorCode: "SC_01", Year: 2025, Month: 7, Amount: dec("100")})
	entries, _ = store.LoadPeriod(ctx, 2025, 7)
	assert.True(t, entries[0].PartPaid.Equal(dec("100")), "partPaid = %s", entries[0].PartPaid)
}

func TestEntryStore_NameKeyedPaymentAppliesAndReplays(t *testing.T) {
	ctx := context.Background()
	source := &stubSource{entries: []core.SeedEntry{{
		ID: "e-1", Year: 2025, Month: 7,
		EntryInput: core.EntryInput{
			VendorCode:  "SC_01",
			VendorName:  "Sharma Constructions",
			InvoiceDate: "2025-07-01",
			GrossAmount: "100000",
			GSTRate:     "18",
			TDSRate:     "2",
		},
	}}}
	ledger := core.NewMemoryLedger()
	require.NoError(t, ledger.Append(ctx, &core.PaymentRecord{
		ID: "p-1", VendorCode: "Sharma Constructions", MonthLabel: "July 2025",
		Amount: dec("40000"), Status: core.StatusPaid,
	}))

	// A payment recorded under the display name carries no class prefix; it
	// must still replay against the entry it names.
	store := newTestStore(t, core.ClassSubcontractor, source, ledger)
	entries, err := store.LoadPeriod(ctx, 2025, 7)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, entries[0].PartPaid.Equal(dec("40000")), "partPaid = %s", entries[0].PartPaid)

	store.ApplyPayment(core.PaymentEvent{VendorCode: "Sharma Constructions", Year: 2025, Month: 7, Amount: dec("10000")})
	entries, _ = store.LoadPeriod(ctx, 2025, 7)
	assert.True(t, entries[0].PartPaid.Equal(dec("50000")), "partPaid = %s", entries[0].PartPaid)

	store.ReversePayment(core.PaymentEvent{VendorCode: "Sharma Constructions", Year: 2025, Month: 7, Amount: dec("50000")})
	entries, _ = store.LoadPeriod(ctx, 2025, 7)
	assert.True(t, entries[0].PartPaid.IsZero(), "partPaid = %s", entries[0].PartPaid)
}

func TestEntryStore_ApplyToUnloadedPeriodIsDeferredToReplay(t *testing.T) {
	ctx := context.Background()
	source := &stubSource{entries: []core.SeedEntry{
		seedEntry("e-1", "SC_01", 2025, 7, "100000"),
	}}
	ledger := core.NewMemoryLedger()
	store := newTestStore(t, core.ClassSubcontractor, source, ledger)

	// The period is not loaded yet: the event is a no-op now, and the paid
	// ledger record covers it at load time.
	store.ApplyPayment(core.PaymentEvent{VendorCode: "SC_01", Year: 2025, Month: 7, Amount: dec("1000")})
	require.NoError(t, ledger.Append(ctx, &core.PaymentRecord{
		ID: "p-1", VendorCode: "SC_01", MonthLabel: "July 2025",
		Amount: dec("1000"), Status: core.StatusPaid,
	}))

	entries, err := store.LoadPeriod(ctx, 2025, 7)
	require.NoError(t, err)
	assert.True(t, entries[0].PartPaid.Equal(dec("1000")), "partPaid = %s", entries[0].PartPaid)
}

func TestEntryStore_OutstandingFor(t *testing.T) {
	ctx := context.Background()
	source := &stubSource{entries: []core.SeedEntry{
		seedEntry("e-1", "SC_01", 2025, 7, "100000"), // payables 93000
		seedEntry("e-2", "SC_01", 2025, 7, "10000"),  // payables 9300
		seedEntry("e-3", "SC_02", 2025, 7, "10000"),  // other vendor
	}}
	store := newTestStore(t, core.ClassSubcontractor, source, nil)

	total, err := store.OutstandingFor(ctx, core.PaymentEvent{VendorCode: "SC_01", Year: 2025, Month: 7})
	require.NoError(t, err)
	assert.True(t, total.Equal(dec("102300")), "outstanding = %s", total)

	one, err := store.OutstandingFor(ctx, core.PaymentEvent{VendorCode: "SC_01", Year: 2025, Month: 7, EntryID: "e-2"})
	require.NoError(t, err)
	assert.True(t, one.Equal(dec("9300")), "outstanding = %s", one)
}
