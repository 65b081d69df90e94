package scenario

import (
	"futuremirror/internal/profile"
	"futuremirror/internal/stats"
)

// liabilityStressDefinition models a rate shock on existing debt. The monthly
// payment is inflated once for the whole horizon, not compounded month by
// month; income is noisy and floored at zero. No ruin tracking.
type liabilityStressDefinition struct{}

var liabilityStressSchema = schemaJSON[liabilityStressWire](LiabilityStress)

func (liabilityStressDefinition) ID() ID { return LiabilityStress }

func (liabilityStressDefinition) Schema() string { return liabilityStressSchema }

func (liabilityStressDefinition) Defaults(m profile.Metrics, query string) map[string]interface{} {
	return map[string]interface{}{
		"monthlyDebtPayment":          m.MonthlyDebtPayments,
		"interestRateIncreasePercent": queryNumber(query, []int{25, 50, 100}),
		"loanBalance":                 m.TotalDebt,
		"monthlyIncome":               m.MonthlyIncome,
		"savingsBalance":              m.SavingsBalance,
		"simulationConfig": map[string]interface{}{
			"iterations":        10000,
			"timeHorizonMonths": 12,
			"incomeStdDev":      2000,
		},
	}
}

func (liabilityStressDefinition) Decode(raw map[string]interface{}) (Params, error) {
	if raw == nil {
		return nil, ErrInvalidParameters
	}

	sc := subMap(raw, "simulationConfig")

	payment := stats.ToNumber(raw["monthlyDebtPayment"], 0)
	increase := stats.ToNumber(raw["interestRateIncreasePercent"], 0)

	return &LiabilityStressParams{
		StressedDebtPayment: payment * (1 + increase/100),
		LoanBalance:         stats.ToNumber(raw["loanBalance"], 0),
		IncomeMean:          stats.ToNumber(raw["monthlyIncome"], 0),
		IncomeStd:           stats.ToNumber(sc["incomeStdDev"], 2000),
		SavingsBalance:      stats.ToNumber(raw["savingsBalance"], 0),
		cfg:                 decodeSimConfig(raw),
	}, nil
}

// LiabilityStressParams is the decoded liability_stress parameter set.
// StressedDebtPayment is computed once at decode time and applied to every
// month of every horizon.
type LiabilityStressParams struct {
	StressedDebtPayment float64
	LoanBalance         float64
	IncomeMean          float64
	IncomeStd           float64
	SavingsBalance      float64

	cfg SimConfig
}

func (p *LiabilityStressParams) Config() SimConfig { return p.cfg }

func (p *LiabilityStressParams) InitialState() float64 { return p.SavingsBalance }

func (p *LiabilityStressParams) Step(_ int, cash float64, g *stats.Sampler) (float64, bool) {
	income := p.IncomeMean + g.Gaussian(0, p.IncomeStd)
	if income < 0 {
		income = 0
	}
	return cash + income - p.StressedDebtPayment, false
}

func (p *LiabilityStressParams) Summarize(r *HorizonResult, median, p10, p90, _ float64) {
	r.MedianRemaining = f64(median)
	r.Percentile10 = p10
	r.Percentile90 = p90
	r.StressedDebt = f64(p.StressedDebtPayment)
}
