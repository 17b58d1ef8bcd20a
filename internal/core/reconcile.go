package core

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// PaymentEvent is the payload broadcast to entry collections when a payment
// becomes effective (apply) or stops being effective (reverse).
type PaymentEvent struct {
	VendorCode string          `json:"vendor_code"`
	Year       int             `json:"year"`
	Month      int             `json:"month"`
	Amount     decimal.Decimal `json:"amount"`
	EntryID    string          `json:"entry_id,omitempty"`
}

// matches reports whether the entry belongs to the event's vendor and
// period. The vendor is matched by code or, defensively, by display name —
// older payment rows carried whichever the form happened to submit.
func matches(e *BillingEntry, ev PaymentEvent) bool {
	if e.Year != ev.Year || e.Month != ev.Month {
		return false
	}
	code := strings.TrimSpace(ev.VendorCode)
	return strings.EqualFold(e.VendorCode, code) || strings.EqualFold(e.VendorName, code)
}

// candidates selects and orders the entries an event may touch. With an
// explicit EntryID the result is that single entry or nothing. Otherwise
// entries are ordered by invoice date — oldest first when applying (funds
// satisfy the oldest obligations first), newest first when reversing (a
// reversal voids the most recent application first).
func candidates(entries []*BillingEntry, ev PaymentEvent, newestFirst bool) []*BillingEntry {
	var cands []*BillingEntry
	for _, e := range entries {
		if matches(e, ev) {
			cands = append(cands, e)
		}
	}
	if ev.EntryID != "" {
		for _, e := range cands {
			if e.ID == ev.EntryID {
				return []*BillingEntry{e}
			}
		}
		return nil
	}
	sort.SliceStable(cands, func(i, j int) bool {
		if newestFirst {
			return cands[i].invoiceUnix() > cands[j].invoiceUnix()
		}
		return cands[i].invoiceUnix() < cands[j].invoiceUnix()
	})
	return cands
}

// Apply distributes ev.Amount across the matching entries, oldest invoice
// first, moving funds from Payables into PartPaid. Entries with nothing
// outstanding are skipped. Payables never goes below zero. Any remainder
// beyond the total outstanding across all candidates is dropped; no credit
// record is created. No matching entries is a silent no-op.
//
// Returns the total amount actually applied.
func Apply(entries []*BillingEntry, ev PaymentEvent) decimal.Decimal {
	remaining := ev.Amount
	applied := decimal.Zero
	for _, e := range candidates(entries, ev, false) {
		if !remaining.IsPositive() {
			break
		}
		if !e.Payables.IsPositive() {
			continue
		}
		take := decimal.Min(remaining, e.Payables)
		e.PartPaid = Round2(e.PartPaid.Add(take))
		e.Payables = Round2(e.Payables.Sub(take))
		if e.Payables.IsNegative() {
			e.Payables = decimal.Zero
		}
		remaining = remaining.Sub(take)
		applied = applied.Add(take)
	}
	return applied
}

// Reverse undoes an application of ev.Amount: newest invoice first, funds
// move back from PartPaid into Payables. PartPaid never goes below zero.
// Returns the total amount actually reversed.
func Reverse(entries []*BillingEntry, ev PaymentEvent) decimal.Decimal {
	remaining := ev.Amount
	reversed := decimal.Zero
	for _, e := range candidates(entries, ev, true) {
		if !remaining.IsPositive() {
			break
		}
		if !e.PartPaid.IsPositive() {
			continue
		}
		take := decimal.Min(remaining, e.PartPaid)
		e.PartPaid = Round2(e.PartPaid.Sub(take))
		if e.PartPaid.IsNegative() {
			e.PartPaid = decimal.Zero
		}
		e.Payables = Round2(e.Payables.Add(take))
		remaining = remaining.Sub(take)
		reversed = reversed.Add(take)
	}
	return reversed
}

// Reconciler is one vendor-class entry collection's view of the payment
// protocol. Each registered reconciler decides relevance for itself (by
// vendor-code prefix); events are broadcast to all of them.
type Reconciler interface {
	ApplyPayment(ev PaymentEvent)
	ReversePayment(ev PaymentEvent)
}

// Dispatcher broadcasts payment events to every registered reconciler.
type Dispatcher struct {
	reconcilers []Reconciler
}

func NewDispatcher(rs ...Reconciler) *Dispatcher {
	return &Dispatcher{reconcilers: rs}
}

func (d *Dispatcher) Register(r Reconciler) {
	d.reconcilers = append(d.reconcilers, r)
}

func (d *Dispatcher) Apply(ev PaymentEvent) {
	for _, r := range d.reconcilers {
		r.ApplyPayment(ev)
	}
}

func (d *Dispatcher) Reverse(ev PaymentEvent) {
	for _, r := range d.reconcilers {
		r.ReversePayment(ev)
	}
}
