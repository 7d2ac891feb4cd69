package accounting_core

// Reserved codes the engine itself posts against.
const (
	InitialCapitalCode   AccountCode = "310101"
	RetainedEarningsCode AccountCode = "310102"
)

// DefaultChart is the condominium chart template seeded for a fresh
// project/fiscal-year. Group digits follow the 1..5 type convention.
func DefaultChart() []*Account {
	chart := []*Account{
		{Code: "1", Name: "Assets", Type: AssetAccount},
		{Code: "11", Name: "Current Assets", Type: AssetAccount},
		{Code: "1101", Name: "Cash & Banks", Type: AssetAccount},
		{Code: "110101", Name: "Cash", Type: AssetAccount},
		{Code: "110102", Name: "Bank", Type: AssetAccount},
		{Code: "1102", Name: "Receivables", Type: AssetAccount},
		{Code: "110201", Name: "Member Fee Receivable", Type: AssetAccount},

		{Code: "2", Name: "Liabilities", Type: LiabilityAccount},
		{Code: "21", Name: "Current Liabilities", Type: LiabilityAccount},
		{Code: "2101", Name: "Payables", Type: LiabilityAccount},
		{Code: "210101", Name: "Supplier Payable", Type: LiabilityAccount},
		{Code: "210102", Name: "Deposits Received", Type: LiabilityAccount},

		{Code: "3", Name: "Equity", Type: EquityAccount},
		{Code: "31", Name: "Capital", Type: EquityAccount},
		{Code: "3101", Name: "Owner Capital", Type: EquityAccount},
		{Code: InitialCapitalCode, Name: "Initial Capital", Type: EquityAccount},
		{Code: RetainedEarningsCode, Name: "Retained Earnings", Type: EquityAccount},

		{Code: "4", Name: "Income", Type: IncomeAccount},
		{Code: "41", Name: "Operating Income", Type: IncomeAccount},
		{Code: "4101", Name: "Building Fees", Type: IncomeAccount},
		{Code: "410101", Name: "Installment Income", Type: IncomeAccount},
		{Code: "410102", Name: "Penalty Income", Type: IncomeAccount},

		{Code: "5", Name: "Expenses", Type: ExpenseAccount},
		{Code: "51", Name: "Operating Expenses", Type: ExpenseAccount},
		{Code: "5101", Name: "Maintenance", Type: ExpenseAccount},
		{Code: "510101", Name: "Repairs", Type: ExpenseAccount},
		{Code: "510102", Name: "Utilities", Type: ExpenseAccount},
		{Code: "510103", Name: "Cleaning", Type: ExpenseAccount},
		{Code: "5102", Name: "Administration", Type: ExpenseAccount},
		{Code: "510201", Name: "Salaries", Type: ExpenseAccount},
		{Code: "510202", Name: "Bank Fees", Type: ExpenseAccount},
	}

	for _, acc := range chart {
		acc.Level = acc.Code.Level()
		acc.IsActive = true
	}

	return chart
}
