package summary

import "github.com/shopspring/decimal"

// TaxEstimate is one illustrative tax figure derived from aggregate income.
// These are flat-rate multiplications, not a compliant tax computation: no
// brackets, deductions or carry-forward.
type TaxEstimate struct {
	Label  string          `json:"label"`
	Note   string          `json:"note"`
	Rate   decimal.Decimal `json:"rate"`
	Amount decimal.Decimal `json:"amount"`
}

var taxRates = []struct {
	label string
	note  string
	rate  decimal.Decimal
}{
	{"PPN", "11% dari Pemasukan", decimal.NewFromFloat(0.11)},
	{"PPh Final", "0.5% UMKM", decimal.NewFromFloat(0.005)},
}

// TaxEstimates applies the fixed rate table to an aggregate income total.
func TaxEstimates(income decimal.Decimal) []TaxEstimate {
	out := make([]TaxEstimate, 0, len(taxRates))
	for _, r := range taxRates {
		out = append(out, TaxEstimate{
			Label:  r.label,
			Note:   r.note,
			Rate:   r.rate,
			Amount: income.Mul(r.rate),
		})
	}
	return out
}
