package profile

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestComputeMetrics(t *testing.T) {
	data := UserData{
		BankTransactions: []Transaction{
			{Description: "ACME Salary July", Type: "credit", Amount: 5000},
			{Description: "Salary August", Type: "credit", Amount: 5200},
			{Description: "Refund", Type: "credit", Amount: 900},
			{Description: "Groceries", Type: "debit", Amount: 800},
			{Description: "Rent", Type: "debit", Amount: 1200},
		},
		CreditReports: []CreditReport{
			{CreditScore: 650, TotalDebt: 9000},
			{
				CreditScore: 700,
				TotalDebt:   10000,
				LoanDetails: []LoanDetail{
					{LoanType: "auto", MonthlyPayment: 300},
					{LoanType: "personal", MonthlyPayment: 150},
				},
			},
		},
		NetWorth: []NetWorthSnapshot{
			{AssetBreakdown: AssetBreakdown{CashAndSavings: 1000}},
			{AssetBreakdown: AssetBreakdown{CashAndSavings: 20000, InvestmentAccounts: 15000, RetirementAccounts: 5000}},
		},
	}

	m := ComputeMetrics(data)

	if m.MonthlyIncome != 5100 {
		t.Errorf("MonthlyIncome = %v, want 5100", m.MonthlyIncome)
	}
	if m.MonthlyExpenses != 1000 {
		t.Errorf("MonthlyExpenses = %v, want 1000", m.MonthlyExpenses)
	}
	if m.SavingsBalance != 20000 || m.InvestmentBalance != 15000 || m.RetirementBalance != 5000 {
		t.Errorf("unexpected balances: %+v", m)
	}
	if m.TotalDebt != 10000 || m.CreditScore != 700 {
		t.Errorf("unexpected credit figures: %+v", m)
	}
	if m.MonthlyDebtPayments != 450 {
		t.Errorf("MonthlyDebtPayments = %v, want 450", m.MonthlyDebtPayments)
	}
}

func TestComputeMetricsEmpty(t *testing.T) {
	m := ComputeMetrics(UserData{})
	if m != (Metrics{}) {
		t.Errorf("empty data should yield zero metrics, got %+v", m)
	}
}

func TestFileStore(t *testing.T) {
	dir := t.TempDir()

	shared := []Transaction{{Description: "Salary", Type: "credit", Amount: 4000}}
	writeJSON(t, filepath.Join(dir, "bankTransactions.json"), shared)

	userDir := filepath.Join(dir, "user-1")
	if err := os.MkdirAll(userDir, 0755); err != nil {
		t.Fatal(err)
	}
	own := []Transaction{{Description: "Salary", Type: "credit", Amount: 6000}}
	writeJSON(t, filepath.Join(userDir, "bankTransactions.json"), own)

	store := NewFileStore(dir)

	// User-specific file wins over the shared fallback.
	m, err := store.Metrics("user-1")
	if err != nil {
		t.Fatal(err)
	}
	if m.MonthlyIncome != 6000 {
		t.Errorf("MonthlyIncome = %v, want 6000", m.MonthlyIncome)
	}

	// Unknown user falls back to the shared file; missing files are empty.
	m, err = store.Metrics("user-2")
	if err != nil {
		t.Fatal(err)
	}
	if m.MonthlyIncome != 4000 {
		t.Errorf("MonthlyIncome = %v, want 4000", m.MonthlyIncome)
	}
	if m.TotalDebt != 0 {
		t.Errorf("TotalDebt = %v, want 0", m.TotalDebt)
	}
}

func writeJSON(t *testing.T, path string, v interface{}) {
	t.Helper()
	raw, err := json.Marshal(v)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, raw, 0644); err != nil {
		t.Fatal(err)
	}
}
