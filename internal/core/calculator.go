package core

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Calculate derives the full financial record for a billing entry from its
// raw form fields. Pure and deterministic: calling it twice on the same
// inputs yields identical fields.
//
// Rounding order is part of the contract. gstAmount and totalAmount are
// rounded independently (totalAmount = round2(gross + round2(gross*gstRate)),
// not gross*(1+rate) in one step) so stored records reproduce exactly on
// recomputation.
//
// workType decides retention only: "Hiring Service" pins the retention rate
// to zero regardless of any supplied value; every other work type uses the
// explicit rate, defaulting to 5%. TDS-rate defaulting (2% for hiring
// services) is a form-level concern — the calculator applies whatever TDS
// rate it is given.
//
// A negative Payables result is valid and signals an overpayment; it is
// never clamped.
func Calculate(in EntryInput, workType string) Computed {
	gross := Round2(ParseAmount(in.GrossAmount))
	gstRate := NormalizeRate(in.GSTRate)
	tdsRate := NormalizeRate(in.TDSRate)

	gstAmount := Round2(gross.Mul(gstRate))
	totalAmount := Round2(gross.Add(gstAmount))
	tds := Round2(gross.Mul(tdsRate))

	retentionRate := DefaultRetentionRate
	if IsHiringService(workType) {
		retentionRate = decimal.Zero
	} else if strings.TrimSpace(in.RetentionRate) != "" {
		retentionRate = NormalizeRate(in.RetentionRate)
	}
	retention := Round2(gross.Mul(retentionRate))

	debitDeduction := Round2(ParseAmount(in.DebitDeduction))

	// GST is withheld in full unless the caller supplies an explicit hold.
	gstHold := gstAmount
	if strings.TrimSpace(in.GSTHold) != "" {
		gstHold = Round2(ParseAmount(in.GSTHold))
	}

	otherDeductions := Round2(ParseAmount(in.OtherDeductions))

	totalDeductions := Round2(tds.Add(retention).Add(debitDeduction).Add(gstHold).Add(otherDeductions))
	netTotal := Round2(totalAmount.Sub(totalDeductions))

	advances := Round2(ParseAmount(in.Advances))
	partPaid := Round2(ParseAmount(in.PartPaid))
	payables := Round2(netTotal.Sub(advances).Sub(partPaid))

	return Computed{
		Gross:           gross,
		GSTRate:         gstRate,
		TDSRate:         tdsRate,
		GSTAmount:       gstAmount,
		TotalAmount:     totalAmount,
		TDS:             tds,
		RetentionRate:   retentionRate,
		Retention:       retention,
		DebitDeduction:  debitDeduction,
		GSTHold:         gstHold,
		OtherDeductions: otherDeductions,
		TotalDeductions: totalDeductions,
		NetTotal:        netTotal,
		Advances:        advances,
		PartPaid:        partPaid,
		Payables:        payables,
	}
}
