package profile

import "strings"

// Transaction is a single bank statement entry.
type Transaction struct {
	Date        string  `json:"date"`
	Description string  `json:"description"`
	Type        string  `json:"type"` // "credit" or "debit"
	Amount      float64 `json:"amount"`
}

// LoanDetail is one open credit obligation on a bureau report.
type LoanDetail struct {
	LoanType       string  `json:"loanType"`
	Balance        float64 `json:"balance"`
	MonthlyPayment float64 `json:"monthlyPayment"`
}

// CreditReport is a snapshot of the user's bureau data.
type CreditReport struct {
	Date        string       `json:"date"`
	CreditScore float64      `json:"creditScore"`
	TotalDebt   float64      `json:"totalDebt"`
	LoanDetails []LoanDetail `json:"loanDetails"`
}

// AssetBreakdown splits a net-worth snapshot by asset class.
type AssetBreakdown struct {
	CashAndSavings     float64 `json:"cashAndSavings"`
	InvestmentAccounts float64 `json:"investmentAccounts"`
	RetirementAccounts float64 `json:"retirementAccounts"`
}

// NetWorthSnapshot is a dated net-worth record.
type NetWorthSnapshot struct {
	Date           string         `json:"date"`
	NetWorth       float64        `json:"netWorth"`
	AssetBreakdown AssetBreakdown `json:"assetBreakdown"`
}

// UserData bundles the raw records a profile is derived from.
type UserData struct {
	BankTransactions []Transaction      `json:"bankTransactions"`
	CreditReports    []CreditReport     `json:"creditReports"`
	NetWorth         []NetWorthSnapshot `json:"networth"`
}

// Metrics are the derived figures the simulations consume. Every field
// defaults to zero when the underlying records are absent; downstream code
// relies on that instead of failing.
type Metrics struct {
	MonthlyIncome       float64 `json:"monthlyIncome"`
	MonthlyExpenses     float64 `json:"monthlyExpenses"`
	SavingsBalance      float64 `json:"savingsBalance"`
	InvestmentBalance   float64 `json:"investmentBalance"`
	RetirementBalance   float64 `json:"retirementBalance"`
	TotalDebt           float64 `json:"totalDebt"`
	CreditScore         float64 `json:"creditScore"`
	MonthlyDebtPayments float64 `json:"monthlyDebtPayments"`
}

// ComputeMetrics derives Metrics from raw records. Income is the mean of
// salary-tagged credits, expenses the mean of all debits; balances come from
// the latest net-worth snapshot and debt figures from the latest credit
// report.
func ComputeMetrics(data UserData) Metrics {
	var m Metrics

	var salarySum float64
	var salaryCount int
	var debitSum float64
	var debitCount int
	for _, t := range data.BankTransactions {
		if t.Type == "credit" && strings.Contains(strings.ToLower(t.Description), "salary") {
			salarySum += t.Amount
			salaryCount++
		}
		if t.Type == "debit" {
			debitSum += t.Amount
			debitCount++
		}
	}
	if salaryCount > 0 {
		m.MonthlyIncome = salarySum / float64(salaryCount)
	}
	if debitCount > 0 {
		m.MonthlyExpenses = debitSum / float64(debitCount)
	}

	if len(data.NetWorth) > 0 {
		latest := data.NetWorth[len(data.NetWorth)-1]
		m.SavingsBalance = latest.AssetBreakdown.CashAndSavings
		m.InvestmentBalance = latest.AssetBreakdown.InvestmentAccounts
		m.RetirementBalance = latest.AssetBreakdown.RetirementAccounts
	}

	if len(data.CreditReports) > 0 {
		latest := data.CreditReports[len(data.CreditReports)-1]
		m.TotalDebt = latest.TotalDebt
		m.CreditScore = latest.CreditScore
		for _, loan := range latest.LoanDetails {
			m.MonthlyDebtPayments += loan.MonthlyPayment
		}
	}

	return m
}
