package provider

import "github.com/stockfit/stockfit/pkg/scoring"

// Fixtures returns the demo provider with a few well-known large caps.
// Figures are illustrative and not current market data.
func Fixtures() *Static {
	return NewStatic(map[string]scoring.Metrics{
		"AAPL": {
			PE:            30.2,
			EPSGrowth:     18.5,
			DebtEquity:    1.6,
			ProfitMargin:  26.1,
			DividendYield: 0.6,
			ESGScore:      76,
			Beta:          1.12,
		},
		"NEE": {
			PE:            22.4,
			EPSGrowth:     10.2,
			DebtEquity:    1.3,
			ProfitMargin:  19.4,
			DividendYield: 3.1,
			ESGScore:      84,
			Beta:          0.92,
		},
		"JNJ": {
			PE:            17.9,
			EPSGrowth:     5.4,
			DebtEquity:    0.5,
			ProfitMargin:  36.7,
			DividendYield: 3.3,
			ESGScore:      78,
			Beta:          0.6,
		},
	})
}
