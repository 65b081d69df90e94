package scenario

import (
	"time"

	"futuremirror/internal/profile"
	"futuremirror/internal/stats"
)

// jobLossDefinition models losing the primary income for a job-search period
// and living off liquid assets until a (possibly lower) replacement income
// kicks in. This is a survival model: a trial that goes cash-negative is
// marked as having run out and stops.
type jobLossDefinition struct{}

var jobLossSchema = schemaJSON[jobLossWire](JobLoss)

func (jobLossDefinition) ID() ID { return JobLoss }

func (jobLossDefinition) Schema() string { return jobLossSchema }

func (jobLossDefinition) Defaults(m profile.Metrics, query string) map[string]interface{} {
	return map[string]interface{}{
		"monthlyIncomeBeforeLoss":        m.MonthlyIncome,
		"incomeLossStartDate":            time.Now().Format("2006-01-02"),
		"jobSearchDurationMonths":        queryNumber(query, []int{3, 6, 9}),
		"expectedNewIncomeAfterRecovery": m.MonthlyIncome * 0.8,
		"expenseEstimate": map[string]interface{}{
			"monthlyFixedExpenses":    m.MonthlyExpenses * 0.6,
			"monthlyVariableExpenses": m.MonthlyExpenses * 0.4,
		},
		"savingsAndInvestments": map[string]interface{}{
			"savingsAccountBalance": m.SavingsBalance,
			"epfBalance":            0,
			"mutualFunds":           m.InvestmentBalance * 0.5,
			"securities":            m.InvestmentBalance * 0.5,
		},
		"creditObligations": map[string]interface{}{
			"totalOutstandingBalance": m.TotalDebt,
			"securedOutstanding":      m.TotalDebt * 0.7,
			"unsecuredOutstanding":    m.TotalDebt * 0.3,
			"bureauScore":             700,
		},
		"simulationConfig": map[string]interface{}{
			"iterations":              50000,
			"timeHorizonMonths":       12,
			"unexpectedExpenseStdDev": 5000,
		},
	}
}

func (jobLossDefinition) Decode(raw map[string]interface{}) (Params, error) {
	if raw == nil {
		return nil, ErrInvalidParameters
	}

	assets := subMap(raw, "savingsAndInvestments")
	expenses := subMap(raw, "expenseEstimate")
	sc := subMap(raw, "simulationConfig")

	// Liquid assets apply a liquidity haircut: mutual funds count half,
	// directly held securities a tenth.
	liquid := stats.ToNumber(assets["savingsAccountBalance"], 0) +
		0.5*stats.ToNumber(assets["mutualFunds"], 0) +
		0.1*stats.ToNumber(assets["securities"], 0)

	return &JobLossParams{
		JobSearchDurationMonths: stats.ToNumber(raw["jobSearchDurationMonths"], 0),
		RecoveryIncome:          stats.ToNumber(raw["expectedNewIncomeAfterRecovery"], 0),
		FixedExpenses:           stats.ToNumber(expenses["monthlyFixedExpenses"], 0),
		VariableExpenseMean:     stats.ToNumber(expenses["monthlyVariableExpenses"], 0),
		VariableExpenseStd:      stats.ToNumber(sc["unexpectedExpenseStdDev"], 5000),
		LiquidAssets:            liquid,
		cfg:                     decodeSimConfig(raw),
	}, nil
}

// JobLossParams is the decoded job_loss parameter set.
type JobLossParams struct {
	JobSearchDurationMonths float64
	RecoveryIncome          float64
	FixedExpenses           float64
	VariableExpenseMean     float64
	VariableExpenseStd      float64
	LiquidAssets            float64

	cfg SimConfig
}

func (p *JobLossParams) Config() SimConfig { return p.cfg }

func (p *JobLossParams) InitialState() float64 { return p.LiquidAssets }

func (p *JobLossParams) Step(month int, cash float64, g *stats.Sampler) (float64, bool) {
	inflow := 0.0
	if float64(month) > p.JobSearchDurationMonths {
		inflow = p.RecoveryIncome
	}

	variable := p.VariableExpenseMean + g.Gaussian(0, p.VariableExpenseStd)
	if variable < 0 {
		variable = 0
	}

	cash += inflow - (p.FixedExpenses + variable)
	if cash < 0 {
		return cash, true
	}
	return cash, false
}

func (p *JobLossParams) Summarize(r *HorizonResult, median, p10, p90, ruinRate float64) {
	r.ProbabilityRunOut = f64(ruinRate)
	r.MedianRemaining = f64(median)
	r.Percentile10 = p10
	r.Percentile90 = p90
	r.InitialLiquidAssets = f64(p.LiquidAssets)
}
