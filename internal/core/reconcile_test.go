package core_test

import (
	"testing"

	"payables-tracker/internal/core"

	"github.com/shopspring/decimal"
)

// entry builds a July 2025 entry with the given outstanding payables.
func entry(id, vendorCode, invoiceDate, payables string) *core.BillingEntry {
	e := &core.BillingEntry{
		ID:          id,
		VendorCode:  vendorCode,
		Year:        2025,
		Month:       7,
		InvoiceDate: invoiceDate,
	}
	e.Payables = dec(payables)
	e.NetTotal = dec(payables)
	return e
}

func event(vendorCode, amount string) core.PaymentEvent {
	return core.PaymentEvent{VendorCode: vendorCode, Year: 2025, Month: 7, Amount: dec(amount)}
}

func TestApply_OldestInvoiceFirst(t *testing.T) {
	feb := entry("e-feb", "SC_01", "2025-02-15", "100")
	jan := entry("e-jan", "SC_01", "2025-01-10", "100")
	// February listed first; ordering must come from the invoice date.
	entries := []*core.BillingEntry{feb, jan}

	applied := core.Apply(entries, event("SC_01", "150"))

	assertField(t, "applied", applied, dec("150"))
	assertField(t, "jan.Payables", jan.Payables, decimal.Zero)
	assertField(t, "jan.PartPaid", jan.PartPaid, dec("100"))
	assertField(t, "feb.Payables", feb.Payables, dec("50"))
	assertField(t, "feb.PartPaid", feb.PartPaid, dec("50"))
}

func TestApply_UnparseableDateSortsFirst(t *testing.T) {
	dated := entry("e-a", "SC_01", "2025-07-01", "100")
	undated := entry("e-b", "SC_01", "", "100")
	entries := []*core.BillingEntry{dated, undated}

	core.Apply(entries, event("SC_01", "60"))

	assertField(t, "undated.PartPaid", undated.PartPaid, dec("60"))
	assertField(t, "dated.PartPaid", dated.PartPaid, decimal.Zero)
}

func TestApply_SurplusIsDropped(t *testing.T) {
	e := entry("e-1", "SC_01", "2025-07-01", "300")
	entries := []*core.BillingEntry{e}

	applied := core.Apply(entries, event("SC_01", "500"))

	assertField(t, "applied", applied, dec("300"))
	assertField(t, "PartPaid", e.PartPaid, dec("300"))
	assertField(t, "Payables", e.Payables, decimal.Zero)
}

func TestApply_NoCandidatesIsNoOp(t *testing.T) {
	e := entry("e-1", "SC_01", "2025-07-01", "300")
	entries := []*core.BillingEntry{e}

	if applied := core.Apply(entries, event("SC_09", "100")); !applied.IsZero() {
		t.Errorf("applied %s to a vendor with no entries", applied)
	}
	ev := event("SC_01", "100")
	ev.Month = 6 // wrong period
	if applied := core.Apply(entries, ev); !applied.IsZero() {
		t.Errorf("applied %s to the wrong period", applied)
	}
}

func TestApply_EntryIDRestrictsTarget(t *testing.T) {
	a := entry("e-a", "SC_01", "2025-07-01", "100")
	b := entry("e-b", "SC_01", "2025-07-02", "100")
	entries := []*core.BillingEntry{a, b}

	ev := event("SC_01", "150")
	ev.EntryID = "e-b"
	applied := core.Apply(entries, ev)

	assertField(t, "applied", applied, dec("100"))
	assertField(t, "a.PartPaid", a.PartPaid, decimal.Zero)
	assertField(t, "b.PartPaid", b.PartPaid, dec("100"))

	ev.EntryID = "missing"
	if applied := core.Apply(entries, ev); !applied.IsZero() {
		t.Errorf("applied %s for an absent entry id", applied)
	}
}

func TestApply_MatchesVendorName(t *testing.T) {
	e := entry("e-1", "SC_01", "2025-07-01", "100")
	e.VendorName = "Sharma Constructions"
	entries := []*core.BillingEntry{e}

	core.Apply(entries, event("Sharma Constructions", "40"))
	assertField(t, "PartPaid", e.PartPaid, dec("40"))
}

func TestApply_SkipsSettledEntries(t *testing.T) {
	settled := entry("e-a", "SC_01", "2025-07-01", "0")
	open := entry("e-b", "SC_01", "2025-07-02", "100")
	entries := []*core.BillingEntry{settled, open}

	core.Apply(entries, event("SC_01", "50"))

	assertField(t, "settled.PartPaid", settled.PartPaid, decimal.Zero)
	assertField(t, "open.PartPaid", open.PartPaid, dec("50"))
}

func TestReverse_NewestInvoiceFirst(t *testing.T) {
	jan := entry("e-jan", "SC_01", "2025-01-10", "0")
	jan.PartPaid = dec("100")
	feb := entry("e-feb", "SC_01", "2025-02-15", "0")
	feb.PartPaid = dec("50")
	entries := []*core.BillingEntry{jan, feb}

	reversed := core.Reverse(entries, event("SC_01", "100"))

	assertField(t, "reversed", reversed, dec("100"))
	// February (newest) is fully undone before January is touched.
	assertField(t, "feb.PartPaid", feb.PartPaid, decimal.Zero)
	assertField(t, "feb.Payables", feb.Payables, dec("50"))
	assertField(t, "jan.PartPaid", jan.PartPaid, dec("50"))
	assertField(t, "jan.Payables", jan.Payables, dec("50"))
}

func TestReverse_FloorsPartPaidAtZero(t *testing.T) {
	e := entry("e-1", "SC_01", "2025-07-01", "0")
	e.PartPaid = dec("80")
	entries := []*core.BillingEntry{e}

	reversed := core.Reverse(entries, event("SC_01", "200"))

	assertField(t, "reversed", reversed, dec("80"))
	assertField(t, "PartPaid", e.PartPaid, decimal.Zero)
	assertField(t, "Payables", e.Payables, dec("80"))
}

// Applying then reversing the same amount restores the prior state exactly.
func TestApplyReverse_Inverse(t *testing.T) {
	amounts := []string{"0.01", "42.50", "100", "299.99"}
	for _, a := range amounts {
		e := entry("e-1", "SC_01", "2025-07-01", "300")
		e.PartPaid = dec("17.25")
		entries := []*core.BillingEntry{e}

		ev := event("SC_01", a)
		core.Apply(entries, ev)
		core.Reverse(entries, ev)

		assertField(t, "Payables after round trip", e.Payables, dec("300"))
		assertField(t, "PartPaid after round trip", e.PartPaid, dec("17.25"))
	}
}

func TestDispatcher_BroadcastsToAllReconcilers(t *testing.T) {
	var applied, reversed []string
	rec := func(name string) core.Reconciler {
		return funcReconciler{
			apply:   func(core.PaymentEvent) { applied = append(applied, name) },
			reverse: func(core.PaymentEvent) { reversed = append(reversed, name) },
		}
	}
	d := core.NewDispatcher(rec("sc"))
	d.Register(rec("hs"))

	d.Apply(event("SC_01", "10"))
	d.Reverse(event("SC_01", "10"))

	if len(applied) != 2 || len(reversed) != 2 {
		t.Errorf("broadcast reached %d/%d reconcilers, want 2/2", len(applied), len(reversed))
	}
}

type funcReconciler struct {
	apply   func(core.PaymentEvent)
	reverse func(core.PaymentEvent)
}

func (f funcReconciler) ApplyPayment(ev core.PaymentEvent)   { f.apply(ev) }
func (f funcReconciler) ReversePayment(ev core.PaymentEvent) { f.reverse(ev) }
