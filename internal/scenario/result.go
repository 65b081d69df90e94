package scenario

// HorizonResult is the aggregated outcome of one evaluation horizon. Nullable
// fields are pointers so a variant only reports the figures it models:
// ruin-capable variants fill ProbabilityRunOut, net-balance variants fill
// MedianRemaining, the portfolio variant fills MedianPortfolio.
type HorizonResult struct {
	HorizonMonths     int      `json:"horizonMonths"`
	ProbabilityRunOut *float64 `json:"probabilityRunOut,omitempty"`
	MedianRemaining   *float64 `json:"medianRemaining,omitempty"`
	MedianPortfolio   *float64 `json:"medianPortfolio,omitempty"`
	Percentile10      float64  `json:"percentile10"`
	Percentile90      float64  `json:"percentile90"`

	// Variant-specific run context.
	InitialLiquidAssets *float64 `json:"initialLiquidAssets,omitempty"`
	InitialSavings      *float64 `json:"initialSavings,omitempty"`
	InitialPortfolio    *float64 `json:"initialPortfolio,omitempty"`
	StressedDebt        *float64 `json:"stressedDebt,omitempty"`
	EmergencyCost       *float64 `json:"emergencyCost,omitempty"`
	EmergencyMonth      *float64 `json:"emergencyMonth,omitempty"`
}

func f64(v float64) *float64 {
	return &v
}
