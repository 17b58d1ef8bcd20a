package core_test

import (
	"testing"

	"payables-tracker/internal/core"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func assertField(t *testing.T, name string, got, want decimal.Decimal) {
	t.Helper()
	if !got.Equal(want) {
		t.Errorf("%s = %s, want %s", name, got, want)
	}
}

func TestCalculate_Subcontractor(t *testing.T) {
	in := core.EntryInput{
		GrossAmount: "100000",
		GSTRate:     "18",
		TDSRate:     "2",
	}
	c := core.Calculate(in, core.WorkTypeSubcontractor)

	assertField(t, "GSTAmount", c.GSTAmount, dec("18000"))
	assertField(t, "TotalAmount", c.TotalAmount, dec("118000"))
	assertField(t, "TDS", c.TDS, dec("2000"))
	assertField(t, "Retention", c.Retention, dec("5000")) // default 5%
	assertField(t, "GSTHold", c.GSTHold, dec("18000"))    // defaults to GST amount
	assertField(t, "TotalDeductions", c.TotalDeductions, dec("25000"))
	assertField(t, "NetTotal", c.NetTotal, dec("93000"))
	assertField(t, "Payables", c.Payables, dec("93000"))
}

func TestCalculate_HiringService(t *testing.T) {
	in := core.EntryInput{
		GrossAmount:   "100000",
		GSTRate:       "18",
		TDSRate:       "2",
		RetentionRate: "10", // must be ignored for hiring services
	}
	c := core.Calculate(in, core.WorkTypeHiringService)

	assertField(t, "Retention", c.Retention, decimal.Zero)
	assertField(t, "TotalDeductions", c.TotalDeductions, dec("20000"))
	assertField(t, "NetTotal", c.NetTotal, dec("98000"))
	assertField(t, "Payables", c.Payables, dec("98000"))
}

func TestCalculate_ExplicitRetentionRate(t *testing.T) {
	in := core.EntryInput{
		GrossAmount:   "250000",
		GSTRate:       "18",
		TDSRate:       "2",
		RetentionRate: "10",
	}
	c := core.Calculate(in, core.WorkTypeSubcontractor)
	assertField(t, "Retention", c.Retention, dec("25000"))
}

func TestCalculate_ExplicitGSTHoldOverridesDefault(t *testing.T) {
	in := core.EntryInput{
		GrossAmount: "100000",
		GSTRate:     "18",
		TDSRate:     "2",
		GSTHold:     "0",
	}
	c := core.Calculate(in, core.WorkTypeSubcontractor)
	assertField(t, "GSTHold", c.GSTHold, decimal.Zero)
	// 2000 TDS + 5000 retention only
	assertField(t, "TotalDeductions", c.TotalDeductions, dec("7000"))
}

func TestCalculate_NegativePayablesIsValid(t *testing.T) {
	in := core.EntryInput{
		GrossAmount: "1000",
		GSTRate:     "0",
		TDSRate:     "0",
		GSTHold:     "0",
		PartPaid:    "2000", // overpaid
	}
	c := core.Calculate(in, core.WorkTypeSubcontractor)
	// net = 1000 - 50 retention = 950; payables = 950 - 2000
	assertField(t, "Payables", c.Payables, dec("-1050"))
}

func TestCalculate_LenientNumericInput(t *testing.T) {
	in := core.EntryInput{
		GrossAmount:     "1,20,000",
		GSTRate:         "18%",
		TDSRate:         "not a number",
		DebitDeduction:  "",
		OtherDeductions: "junk",
	}
	c := core.Calculate(in, core.WorkTypeSubcontractor)
	assertField(t, "Gross", c.Gross, dec("120000"))
	assertField(t, "GSTAmount", c.GSTAmount, dec("21600"))
	assertField(t, "TDS", c.TDS, decimal.Zero)
	assertField(t, "DebitDeduction", c.DebitDeduction, decimal.Zero)
	assertField(t, "OtherDeductions", c.OtherDeductions, decimal.Zero)
}

// Derived fields must be reproducible: recomputing from the same raw inputs
// yields identical values, and totalAmount is the sum of the two
// independently rounded terms.
func TestCalculate_Deterministic(t *testing.T) {
	in := core.EntryInput{
		GrossAmount:    "33333.33",
		GSTRate:        "18",
		TDSRate:        "1",
		DebitDeduction: "123.45",
		Advances:       "500",
	}
	first := core.Calculate(in, core.WorkTypeSubcontractor)
	second := core.Calculate(in, core.WorkTypeSubcontractor)

	if !first.Payables.Equal(second.Payables) || !first.TotalDeductions.Equal(second.TotalDeductions) {
		t.Errorf("recomputation diverged: %+v vs %+v", first, second)
	}
	wantTotal := core.Round2(first.Gross.Add(core.Round2(first.Gross.Mul(first.GSTRate))))
	assertField(t, "TotalAmount", first.TotalAmount, wantTotal)
}
