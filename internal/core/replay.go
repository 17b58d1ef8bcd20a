package core

// ReplayPayments reconstructs the paid state of a freshly loaded entry set
// from the persisted payment ledger. Billing entries are not durable with
// their paid state; on period load every ledger record marked paid for that
// period is re-applied, in ledger order, to the matching entries.
//
// owns filters the ledger to the payments that could concern the calling
// collection; records keyed by another class's vendor code are skipped,
// while name-keyed records pass through to entry matching. nil means no
// filtering. Records whose month label does not parse are skipped. Returns
// the apply operations performed.
func ReplayPayments(entries []*BillingEntry, payments []PaymentRecord, owns func(vendorCode string) bool) []PaymentEvent {
	var ops []PaymentEvent
	for i := range payments {
		p := &payments[i]
		if p.Status != StatusPaid {
			continue
		}
		if owns != nil && !owns(p.VendorCode) {
			continue
		}
		ev, err := p.Event()
		if err != nil {
			continue
		}
		Apply(entries, ev)
		ops = append(ops, ev)
	}
	return ops
}
