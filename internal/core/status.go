package core

import "github.com/shopspring/decimal"

// DecideStatus maps a candidate payment to its effective status. Rules, in
// order:
//
//  1. An explicit "paid" is always honored.
//  2. Any positive amount is treated as executed. A caller therefore cannot
//     record a pending payment with a nonzero amount; there is no separate
//     "scheduled" payment concept.
//  3. A remaining payable of exactly zero means the entry is settled, so the
//     payment reads as paid. remaining is a pointer: nil means "unknown",
//     which is distinct from zero and does not trigger this rule.
//  4. Otherwise the explicit status stands, defaulting to unpaid.
func DecideStatus(explicit PaymentStatus, amount decimal.Decimal, remaining *decimal.Decimal) PaymentStatus {
	if explicit == StatusPaid {
		return StatusPaid
	}
	if amount.IsPositive() {
		return StatusPaid
	}
	if remaining != nil && remaining.IsZero() {
		return StatusPaid
	}
	if explicit != "" {
		return explicit
	}
	return StatusUnpaid
}
