package accounting_core

import (
	"time"
)

type AccountType string

const (
	AssetAccount     AccountType = "ASSET"
	LiabilityAccount AccountType = "LIABILITY"
	EquityAccount    AccountType = "EQUITY"
	IncomeAccount    AccountType = "INCOME"
	ExpenseAccount   AccountType = "EXPENSE"
)

// GroupDigit returns the reserved leading chart digit for the type.
func (t AccountType) GroupDigit() byte {
	switch t {
	case AssetAccount:
		return '1'
	case LiabilityAccount:
		return '2'
	case EquityAccount:
		return '3'
	case IncomeAccount:
		return '4'
	case ExpenseAccount:
		return '5'
	}
	return 0
}

type BalanceType string

const (
	DebitBalance  BalanceType = "d"
	CreditBalance BalanceType = "c"
)

func (b BalanceType) DiffBalance(debit, credit float64) float64 {
	switch b {
	case CreditBalance:
		return credit - debit
	case DebitBalance:
		return debit - credit
	default:
		return 0
	}
}

// BalanceTypeOf maps the account type to its display-positive side.
// The raw ledger accumulator is always debit-positive, this only governs
// how reports derive a signed balance.
func BalanceTypeOf(t AccountType) BalanceType {
	switch t {
	case AssetAccount, ExpenseAccount:
		return DebitBalance
	default:
		return CreditBalance
	}
}

// WillBeClosed reports whether the period boundary engine zeroes the
// account at fiscal-year end. Balance-sheet accounts carry forward.
func (t AccountType) WillBeClosed() bool {
	return t == IncomeAccount || t == ExpenseAccount
}

type Account struct {
	ID           uint        `json:"id" gorm:"primarykey"`
	ProjectID    uint        `json:"project_id" gorm:"index:project_code,unique"`
	FiscalYearID uint        `json:"fiscal_year_id"`
	Code         AccountCode `json:"code" gorm:"index:project_code,unique"`
	Name         string      `json:"name"`
	Type         AccountType `json:"type"`
	Level        int         `json:"level"`
	ParentID     *uint       `json:"parent_id"`
	IsActive     bool        `json:"is_active"`

	Created time.Time `json:"created"`

	Parent *Account `json:"-"`
}

func (ac *Account) BalanceType() BalanceType {
	return BalanceTypeOf(ac.Type)
}

// Ledger is the signed per-account accumulator. Debit adds, credit
// subtracts, independent of the account type. Mutated only inside the
// same database transaction as the Transaction insert.
type Ledger struct {
	ID        uint    `json:"id" gorm:"primarykey"`
	ProjectID uint    `json:"project_id" gorm:"index:project_account,unique"`
	AccountID uint    `json:"account_id" gorm:"index:project_account,unique"`
	Balance   float64 `json:"balance"`
}

type TransactionType string

const (
	Debit  TransactionType = "DEBIT"
	Credit TransactionType = "CREDIT"
)

// SignedAmount is the effect of the transaction on the raw ledger
// accumulator.
func (t TransactionType) SignedAmount(amount float64) float64 {
	if t == Credit {
		return -amount
	}
	return amount
}

type JournalType string

const (
	GeneralJournal JournalType = "GENERAL_LEDGER"
	OpeningJournal JournalType = "OPENING"
	ClosingJournal JournalType = "CLOSING"
)

// Transaction is an immutable append-only posting fact against one
// account. Rows are never updated; corrections post new transactions.
type Transaction struct {
	ID           uint            `json:"id" gorm:"primarykey"`
	ProjectID    uint            `json:"project_id" gorm:"index"`
	FiscalYearID uint            `json:"fiscal_year_id"`
	AccountID    uint            `json:"account_id" gorm:"index"`
	Type         TransactionType `json:"type"`
	Amount       float64         `json:"amount"`
	JournalType  JournalType     `json:"journal_type"`
	DocumentID   *uint           `json:"document_id" gorm:"index"`
	Desc         string          `json:"desc"`
	CreatedByID  uint            `json:"created_by_id"`
	EntryTime    time.Time       `json:"entry_time"`

	Account *Account `json:"account,omitempty"`
}

type DocumentStatus string

const (
	TemporaryDocument DocumentStatus = "TEMPORARY"
	PermanentDocument DocumentStatus = "PERMANENT"
)

// AccountingDocument is a named, dated, balanced set of entry lines.
// PERMANENT documents reject edit and delete until explicitly downgraded.
type AccountingDocument struct {
	ID           uint           `json:"id" gorm:"primarykey"`
	ProjectID    uint           `json:"project_id" gorm:"index"`
	FiscalYearID uint           `json:"fiscal_year_id"`
	DocNo        string         `json:"doc_no" gorm:"index:doc_no,unique"`
	Title        string         `json:"title"`
	DocDate      time.Time      `json:"doc_date"`
	JournalType  JournalType    `json:"journal_type"`
	Status       DocumentStatus `json:"status"`
	CreatedByID  uint           `json:"created_by_id"`
	Created      time.Time      `json:"created"`

	Entries DocumentEntriesList `json:"entries,omitempty" gorm:"foreignKey:DocumentID"`
}

type DocumentEntry struct {
	ID         uint    `json:"id" gorm:"primarykey"`
	DocumentID uint    `json:"document_id" gorm:"index"`
	AccountID  uint    `json:"account_id"`
	Debit      float64 `json:"debit"`
	Credit     float64 `json:"credit"`
	Desc       string  `json:"desc"`

	Account *Account `json:"account,omitempty"`
}

type DocumentEntriesList []*DocumentEntry

func (entries DocumentEntriesList) Totals() (debit float64, credit float64) {
	for _, en := range entries {
		debit += en.Debit
		credit += en.Credit
	}
	return debit, credit
}

// BalanceTolerance absorbs float rounding on entry totals, in currency
// units.
const BalanceTolerance = 0.01

func (entries DocumentEntriesList) IsBalanced() bool {
	debit, credit := entries.Totals()
	diff := debit - credit
	if diff < 0 {
		diff = -diff
	}
	return diff <= BalanceTolerance
}

// FiscalYear scopes a project's chart and journal. OpeningDocID is the
// idempotency marker: once stamped, the normal path refuses a second
// opening entry.
type FiscalYear struct {
	ID           uint      `json:"id" gorm:"primarykey"`
	ProjectID    uint      `json:"project_id" gorm:"index:project_year,unique"`
	Year         int       `json:"year" gorm:"index:project_year,unique"`
	StartDate    time.Time `json:"start_date"`
	EndDate      time.Time `json:"end_date"`
	OpeningDocID *uint     `json:"opening_doc_id"`
}
