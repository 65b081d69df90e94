package scenario

import (
	"futuremirror/internal/profile"
	"futuremirror/internal/stats"
)

// salaryDeductionDefinition models a temporary pay cut. It tracks the net
// balance rather than survival: cash may go negative and is carried forward,
// so no ruin probability is reported.
type salaryDeductionDefinition struct{}

var salaryDeductionSchema = schemaJSON[salaryDeductionWire](SalaryDeduction)

func (salaryDeductionDefinition) ID() ID { return SalaryDeduction }

func (salaryDeductionDefinition) Schema() string { return salaryDeductionSchema }

func (salaryDeductionDefinition) Defaults(m profile.Metrics, query string) map[string]interface{} {
	return map[string]interface{}{
		"monthlyIncomeBeforeDeduction": m.MonthlyIncome,
		"deductionPercentage":          queryNumber(query, []int{10, 20, 30}),
		"deductionDurationMonths":      queryNumber(query, []int{3, 6, 12}),
		"expenseEstimate": map[string]interface{}{
			"monthlyFixedExpenses":    m.MonthlyExpenses * 0.7,
			"monthlyVariableExpenses": m.MonthlyExpenses * 0.3,
		},
		"savingsAccountBalance": m.SavingsBalance,
		"simulationConfig": map[string]interface{}{
			"iterations":              10000,
			"timeHorizonMonths":       12,
			"unexpectedExpenseStdDev": 3000,
		},
	}
}

func (salaryDeductionDefinition) Decode(raw map[string]interface{}) (Params, error) {
	if raw == nil {
		return nil, ErrInvalidParameters
	}

	expenses := subMap(raw, "expenseEstimate")
	sc := subMap(raw, "simulationConfig")

	return &SalaryDeductionParams{
		IncomeBeforeDeduction:   stats.ToNumber(raw["monthlyIncomeBeforeDeduction"], 0),
		DeductionPercentage:     stats.ToNumber(raw["deductionPercentage"], 0),
		DeductionDurationMonths: stats.ToNumber(raw["deductionDurationMonths"], 0),
		FixedExpenses:           stats.ToNumber(expenses["monthlyFixedExpenses"], 0),
		VariableExpenseMean:     stats.ToNumber(expenses["monthlyVariableExpenses"], 0),
		VariableExpenseStd:      stats.ToNumber(sc["unexpectedExpenseStdDev"], 5000),
		SavingsBalance:          stats.ToNumber(raw["savingsAccountBalance"], 0),
		cfg:                     decodeSimConfig(raw),
	}, nil
}

// SalaryDeductionParams is the decoded salary_deduction parameter set.
type SalaryDeductionParams struct {
	IncomeBeforeDeduction   float64
	DeductionPercentage     float64
	DeductionDurationMonths float64
	FixedExpenses           float64
	VariableExpenseMean     float64
	VariableExpenseStd      float64
	SavingsBalance          float64

	cfg SimConfig
}

func (p *SalaryDeductionParams) Config() SimConfig { return p.cfg }

func (p *SalaryDeductionParams) InitialState() float64 { return p.SavingsBalance }

func (p *SalaryDeductionParams) Step(month int, cash float64, g *stats.Sampler) (float64, bool) {
	income := p.IncomeBeforeDeduction
	if float64(month) <= p.DeductionDurationMonths {
		income *= 1 - p.DeductionPercentage/100
	}

	variable := p.VariableExpenseMean + g.Gaussian(0, p.VariableExpenseStd)
	if variable < 0 {
		variable = 0
	}

	return cash + income - (p.FixedExpenses + variable), false
}

func (p *SalaryDeductionParams) Summarize(r *HorizonResult, median, p10, p90, _ float64) {
	r.MedianRemaining = f64(median)
	r.Percentile10 = p10
	r.Percentile90 = p90
	r.InitialSavings = f64(p.SavingsBalance)
}
