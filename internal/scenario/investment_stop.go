package scenario

import (
	"futuremirror/internal/profile"
	"futuremirror/internal/stats"
)

// investmentStopDefinition models pausing regular contributions while the
// existing portfolio keeps compounding under noisy monthly returns.
// Contributions resume once the pause ends. No ruin tracking.
type investmentStopDefinition struct{}

var investmentStopSchema = schemaJSON[investmentStopWire](InvestmentStop)

func (investmentStopDefinition) ID() ID { return InvestmentStop }

func (investmentStopDefinition) Schema() string { return investmentStopSchema }

func (investmentStopDefinition) Defaults(m profile.Metrics, query string) map[string]interface{} {
	return map[string]interface{}{
		"monthlyInvestmentAmount": queryNumber(query, []int{500, 1000, 1500}),
		"stopDurationMonths":      queryNumber(query, []int{3, 6, 12}),
		"currentPortfolioValue":   m.InvestmentBalance,
		"expectedAnnualReturn":    0.08,
		"simulationConfig": map[string]interface{}{
			"iterations":        10000,
			"timeHorizonMonths": 12,
			"returnStdDev":      0.05,
		},
	}
}

func (investmentStopDefinition) Decode(raw map[string]interface{}) (Params, error) {
	if raw == nil {
		return nil, ErrInvalidParameters
	}

	sc := subMap(raw, "simulationConfig")

	return &InvestmentStopParams{
		MonthlyInvestment:  stats.ToNumber(raw["monthlyInvestmentAmount"], 0),
		StopDurationMonths: stats.ToNumber(raw["stopDurationMonths"], 0),
		PortfolioValue:     stats.ToNumber(raw["currentPortfolioValue"], 0),
		AnnualReturn:       stats.ToNumber(raw["expectedAnnualReturn"], 0),
		ReturnStd:          stats.ToNumber(sc["returnStdDev"], 0.05),
		cfg:                decodeSimConfig(raw),
	}, nil
}

// InvestmentStopParams is the decoded investment_stop parameter set.
type InvestmentStopParams struct {
	MonthlyInvestment  float64
	StopDurationMonths float64
	PortfolioValue     float64
	AnnualReturn       float64
	ReturnStd          float64

	cfg SimConfig
}

func (p *InvestmentStopParams) Config() SimConfig { return p.cfg }

func (p *InvestmentStopParams) InitialState() float64 { return p.PortfolioValue }

func (p *InvestmentStopParams) Step(month int, value float64, g *stats.Sampler) (float64, bool) {
	monthlyReturn := p.AnnualReturn/12 + g.Gaussian(0, p.ReturnStd)
	value *= 1 + monthlyReturn

	// Contributions only resume after the pause.
	if float64(month) > p.StopDurationMonths {
		value += p.MonthlyInvestment
	}
	return value, false
}

func (p *InvestmentStopParams) Summarize(r *HorizonResult, median, p10, p90, _ float64) {
	r.MedianPortfolio = f64(median)
	r.Percentile10 = p10
	r.Percentile90 = p90
	r.InitialPortfolio = f64(p.PortfolioValue)
}
