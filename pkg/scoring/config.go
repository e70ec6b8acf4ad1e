package scoring

// Params holds the curve parameters for all seven metrics.
type Params struct {
	// P/E: linear tent with a bonus band
	PECenter    float64
	PETolerance float64
	PEBandLow   float64
	PEBandHigh  float64
	PEBandBonus float64

	// EPS growth: floored ramp up to a saturating ceiling
	EPSGrowthFloor   float64 // subscore awarded to the smallest positive growth
	EPSGrowthCeiling float64 // growth (%) at which the subscore saturates

	// Debt/equity: descending ramp
	DebtEquityBest  float64 // at or below: 100
	DebtEquityWorst float64 // at or above: 0

	// Profit margin: proportional up to a ceiling
	ProfitMarginCeiling float64

	// Dividend yield: Gaussian bump with a residual floor
	DividendZeroScore float64 // score for exactly 0% yield
	DividendRedFlag   float64 // yields above this score 0
	DividendPeak      float64
	DividendSpread    float64
	DividendFloor     float64

	// Beta: linear tent with a high-volatility cap
	BetaCenter      float64
	BetaTolerance   float64
	BetaCapAbove    float64
	BetaCapMaxScore float64
}

// Defaults returns the parameters of the standard investment policy.
func Defaults() Params {
	return Params{
		PECenter:    20,
		PETolerance: 20,
		PEBandLow:   12,
		PEBandHigh:  28,
		PEBandBonus: 5,

		EPSGrowthFloor:   30,
		EPSGrowthCeiling: 30,

		DebtEquityBest:  0.3,
		DebtEquityWorst: 3.0,

		ProfitMarginCeiling: 30,

		DividendZeroScore: 40,
		DividendRedFlag:   12,
		DividendPeak:      2.5,
		DividendSpread:    2.0,
		DividendFloor:     10,

		BetaCenter:      0.95,
		BetaTolerance:   0.35,
		BetaCapAbove:    1.5,
		BetaCapMaxScore: 35,
	}
}
