package accounting_core

import (
	"time"

	"gorm.io/gorm"
)

// postTransaction appends the transaction row and applies its signed
// effect to the ledger accumulator. Both writes share the caller's
// database transaction, a partial post can never survive.
func postTransaction(tx *gorm.DB, tran *Transaction) error {
	if tran.Amount < 0 {
		return &ValidationError{Field: "amount", Reason: "transaction amount must be non-negative"}
	}

	if tran.EntryTime.IsZero() {
		tran.EntryTime = time.Now()
	}

	err := tx.Create(tran).Error
	if err != nil {
		return err
	}

	return applyLedger(tx, tran.ProjectID, tran.AccountID, tran.Type.SignedAmount(tran.Amount))
}

// PostTransaction exposes the atomic post for callers outside the
// document path, e.g. adjustments in tests.
func PostTransaction(tx *gorm.DB, tran *Transaction) error {
	return postTransaction(tx, tran)
}

// applyLedger adds the signed amount to the (project, account)
// accumulator, creating the row on first touch.
func applyLedger(tx *gorm.DB, projectID, accountID uint, signed float64) error {
	row := tx.
		Model(&Ledger{}).
		Where("project_id = ?", projectID).
		Where("account_id = ?", accountID).
		Update("balance", gorm.Expr("balance + ?", signed))

	if row.Error != nil {
		return row.Error
	}

	if row.RowsAffected == 0 {
		return tx.Create(&Ledger{
			ProjectID: projectID,
			AccountID: accountID,
			Balance:   signed,
		}).Error
	}

	return nil
}

// DetailLedgerRow is one replayed line in an account's detail view.
// RunningBalance follows the display sign convention of the account
// type, not the raw debit-positive accumulator.
type DetailLedgerRow struct {
	TransactionID  uint      `json:"transaction_id"`
	EntryTime      time.Time `json:"entry_time"`
	Desc           string    `json:"desc"`
	Debit          float64   `json:"debit"`
	Credit         float64   `json:"credit"`
	RunningBalance float64   `json:"running_balance"`
}

// DetailLedgerView replays one account's transactions chronologically
// into a running balance.
type DetailLedgerView interface {
	Account(accountID uint) DetailLedgerView
	TimeRange(from, to time.Time) DetailLedgerView
	Iterate(handle func(row *DetailLedgerRow) error) error
	ClosingBalance() (float64, error)
	Err() error
}

type detailLedgerViewImpl struct {
	tx        *gorm.DB
	accountID uint
	from      time.Time
	to        time.Time
	err       error
}

// Account implements DetailLedgerView.
func (d *detailLedgerViewImpl) Account(accountID uint) DetailLedgerView {
	d.accountID = accountID
	return d
}

// TimeRange implements DetailLedgerView.
func (d *detailLedgerViewImpl) TimeRange(from, to time.Time) DetailLedgerView {
	d.from = from
	d.to = to
	return d
}

// Iterate implements DetailLedgerView.
func (d *detailLedgerViewImpl) Iterate(handle func(row *DetailLedgerRow) error) error {
	if d.err != nil {
		return d.err
	}

	var account Account
	err := d.tx.Model(&Account{}).
		Where("id = ?", d.accountID).
		Find(&account).
		Error
	if err != nil {
		return err
	}
	if account.ID == 0 {
		return &NotFoundError{Entity: "account", ID: d.accountID}
	}

	balanceType := account.BalanceType()

	query := d.tx.
		Model(&Transaction{}).
		Where("account_id = ?", d.accountID).
		Order("entry_time asc, id asc")

	if !d.from.IsZero() {
		query = query.Where("entry_time >= ?", d.from)
	}
	if !d.to.IsZero() {
		query = query.Where("entry_time <= ?", d.to)
	}

	rows, err := query.Rows()
	if err != nil {
		return err
	}
	defer rows.Close()

	var running float64
	for rows.Next() {
		var tr Transaction
		err = d.tx.ScanRows(rows, &tr)
		if err != nil {
			return err
		}

		row := DetailLedgerRow{
			TransactionID: tr.ID,
			EntryTime:     tr.EntryTime,
			Desc:          tr.Desc,
		}

		switch tr.Type {
		case Debit:
			row.Debit = tr.Amount
		case Credit:
			row.Credit = tr.Amount
		}

		running += balanceType.DiffBalance(row.Debit, row.Credit)
		row.RunningBalance = running

		err = handle(&row)
		if err != nil {
			return err
		}
	}

	return nil
}

// ClosingBalance implements DetailLedgerView.
func (d *detailLedgerViewImpl) ClosingBalance() (float64, error) {
	var closing float64
	err := d.Iterate(func(row *DetailLedgerRow) error {
		closing = row.RunningBalance
		return nil
	})
	return closing, err
}

// Err implements DetailLedgerView.
func (d *detailLedgerViewImpl) Err() error {
	return d.err
}

func NewDetailLedgerView(tx *gorm.DB) DetailLedgerView {
	return &detailLedgerViewImpl{
		tx: tx,
	}
}

// SignedBalance converts the raw debit-positive accumulator into the
// display sign of the account type. Every report showing balances
// derives through here.
func SignedBalance(t AccountType, raw float64) float64 {
	if BalanceTypeOf(t) == CreditBalance {
		return -raw
	}
	return raw
}
