package scenario

import (
	"encoding/json"
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"

	"futuremirror/internal/stats"
)

// The wire structs below exist to generate the JSON Schema descriptors that
// instruct the parameter-resolution collaborator. Decoding of actual payloads
// goes through tolerant numeric coercion instead, so a model answering with
// quoted or comma-grouped numbers still simulates.

type expenseEstimateWire struct {
	MonthlyFixedExpenses    float64 `json:"monthlyFixedExpenses" jsonschema:"Fixed monthly outgoings such as rent and utilities"`
	MonthlyVariableExpenses float64 `json:"monthlyVariableExpenses" jsonschema:"Mean of the variable monthly spending"`
}

type savingsAndInvestmentsWire struct {
	SavingsAccountBalance float64 `json:"savingsAccountBalance" jsonschema:"Current savings account balance"`
	EPFBalance            float64 `json:"epfBalance" jsonschema:"Retirement fund balance"`
	MutualFunds           float64 `json:"mutualFunds" jsonschema:"Mutual fund holdings at market value"`
	Securities            float64 `json:"securities" jsonschema:"Directly held securities at market value"`
}

type creditObligationsWire struct {
	TotalOutstandingBalance float64 `json:"totalOutstandingBalance" jsonschema:"Total outstanding debt"`
	SecuredOutstanding      float64 `json:"securedOutstanding" jsonschema:"Secured portion of the outstanding debt"`
	UnsecuredOutstanding    float64 `json:"unsecuredOutstanding" jsonschema:"Unsecured portion of the outstanding debt"`
	BureauScore             float64 `json:"bureauScore" jsonschema:"Credit bureau score"`
}

type jobLossConfigWire struct {
	Iterations              int     `json:"iterations" jsonschema:"Monte Carlo iteration count"`
	TimeHorizonMonths       int     `json:"timeHorizonMonths" jsonschema:"Projection horizon in months"`
	UnexpectedExpenseStdDev float64 `json:"unexpectedExpenseStdDev" jsonschema:"Standard deviation of unexpected monthly expenses"`
}

type jobLossWire struct {
	MonthlyIncomeBeforeLoss        float64                   `json:"monthlyIncomeBeforeLoss" jsonschema:"Monthly income before losing the job"`
	IncomeLossStartDate            string                    `json:"incomeLossStartDate" jsonschema:"Date the income stops, YYYY-MM-DD"`
	JobSearchDurationMonths        float64                   `json:"jobSearchDurationMonths" jsonschema:"Months without income while searching"`
	ExpectedNewIncomeAfterRecovery float64                   `json:"expectedNewIncomeAfterRecovery" jsonschema:"Expected monthly income after finding a new job"`
	ExpenseEstimate                expenseEstimateWire       `json:"expenseEstimate"`
	SavingsAndInvestments          savingsAndInvestmentsWire `json:"savingsAndInvestments"`
	CreditObligations              creditObligationsWire     `json:"creditObligations"`
	SimulationConfig               jobLossConfigWire         `json:"simulationConfig"`
}

type salaryDeductionWire struct {
	MonthlyIncomeBeforeDeduction float64             `json:"monthlyIncomeBeforeDeduction" jsonschema:"Monthly income before the pay cut"`
	DeductionPercentage          float64             `json:"deductionPercentage" jsonschema:"Pay cut as a percentage, e.g. 20 for a 20% cut"`
	DeductionDurationMonths      float64             `json:"deductionDurationMonths" jsonschema:"How long the pay cut lasts, in months"`
	ExpenseEstimate              expenseEstimateWire `json:"expenseEstimate"`
	SavingsAccountBalance        float64             `json:"savingsAccountBalance" jsonschema:"Current savings account balance"`
	SimulationConfig             jobLossConfigWire   `json:"simulationConfig"`
}

type investmentStopConfigWire struct {
	Iterations        int     `json:"iterations" jsonschema:"Monte Carlo iteration count"`
	TimeHorizonMonths int     `json:"timeHorizonMonths" jsonschema:"Projection horizon in months"`
	ReturnStdDev      float64 `json:"returnStdDev" jsonschema:"Standard deviation of the monthly return"`
}

type investmentStopWire struct {
	MonthlyInvestmentAmount float64                  `json:"monthlyInvestmentAmount" jsonschema:"Regular monthly contribution"`
	StopDurationMonths      float64                  `json:"stopDurationMonths" jsonschema:"Months the contributions are paused"`
	CurrentPortfolioValue   float64                  `json:"currentPortfolioValue" jsonschema:"Portfolio value today"`
	ExpectedAnnualReturn    float64                  `json:"expectedAnnualReturn" jsonschema:"Expected annual return as a fraction, e.g. 0.08"`
	SimulationConfig        investmentStopConfigWire `json:"simulationConfig"`
}

type liabilityStressConfigWire struct {
	Iterations        int     `json:"iterations" jsonschema:"Monte Carlo iteration count"`
	TimeHorizonMonths int     `json:"timeHorizonMonths" jsonschema:"Projection horizon in months"`
	IncomeStdDev      float64 `json:"incomeStdDev" jsonschema:"Standard deviation of the monthly income"`
}

type liabilityStressWire struct {
	MonthlyDebtPayment          float64                   `json:"monthlyDebtPayment" jsonschema:"Current total monthly debt payment"`
	InterestRateIncreasePercent float64                   `json:"interestRateIncreasePercent" jsonschema:"Payment increase as a percentage, e.g. 50 for a 50% rise"`
	LoanBalance                 float64                   `json:"loanBalance" jsonschema:"Outstanding loan balance"`
	MonthlyIncome               float64                   `json:"monthlyIncome" jsonschema:"Mean monthly income"`
	SavingsBalance              float64                   `json:"savingsBalance" jsonschema:"Current savings account balance"`
	SimulationConfig            liabilityStressConfigWire `json:"simulationConfig"`
}

type emergencyExpenseConfigWire struct {
	Iterations        int     `json:"iterations" jsonschema:"Monte Carlo iteration count"`
	TimeHorizonMonths int     `json:"timeHorizonMonths" jsonschema:"Projection horizon in months"`
	ExpenseStdDev     float64 `json:"expenseStdDev" jsonschema:"Standard deviation of the monthly expenses"`
}

type emergencyExpenseWire struct {
	EmergencyCost    float64                    `json:"emergencyCost" jsonschema:"One-off emergency cost"`
	EmergencyMonth   float64                    `json:"emergencyMonth" jsonschema:"Month in which the emergency hits, 1-based"`
	MonthlyIncome    float64                    `json:"monthlyIncome" jsonschema:"Mean monthly income"`
	MonthlyExpenses  float64                    `json:"monthlyExpenses" jsonschema:"Mean monthly expenses"`
	SavingsBalance   float64                    `json:"savingsBalance" jsonschema:"Current savings account balance"`
	SimulationConfig emergencyExpenseConfigWire `json:"simulationConfig"`
}

type requestEnvelope[P any] struct {
	Scenario   string `json:"scenario" jsonschema:"The scenario identifier, echoed back verbatim"`
	Parameters P      `json:"parameters"`
}

// schemaJSON renders the JSON Schema for a variant's request envelope. The
// wire structs are plain data, so generation cannot fail at runtime; a panic
// here means a programming error in the catalog itself.
func schemaJSON[P any](id ID) string {
	s, err := jsonschema.For[requestEnvelope[P]](nil)
	if err != nil {
		panic(fmt.Sprintf("scenario %s: schema generation: %v", id, err))
	}
	out, err := json.Marshal(s)
	if err != nil {
		panic(fmt.Sprintf("scenario %s: schema marshal: %v", id, err))
	}
	return string(out)
}

// decodeSimConfig reads the common simulationConfig sub-object. Iterations
// below 1 are clamped so a run can never be empty.
func decodeSimConfig(raw map[string]interface{}) SimConfig {
	sc := subMap(raw, "simulationConfig")
	iters := int(stats.ToNumber(sc["iterations"], 10000))
	if iters < 1 {
		iters = 1
	}
	return SimConfig{
		Iterations:        iters,
		TimeHorizonMonths: int(stats.ToNumber(sc["timeHorizonMonths"], 12)),
	}
}
