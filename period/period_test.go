package period_test

import (
	"encoding/json"
	"net/http"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stratafin/condo_service/accounting_core"
	"github.com/stratafin/condo_service/authorization"
	"github.com/stratafin/condo_service/condo_mock"
	"github.com/stratafin/condo_service/period"
)

func TestOpeningBalancesFreshYear(t *testing.T) {
	db := condo_mock.NewTestDB(t)
	condo_mock.SeedChart(t, db, 1)
	fy := condo_mock.SeedFiscalYear(t, db, 1, 2025)
	auth := condo_mock.NewTestAuth()
	r := condo_mock.NewTestRouter(t, period.NewPeriodService(db, auth))
	reader := condo_mock.BearerToken(t, auth, 1, authorization.CapRead)

	var resp struct {
		Data     []period.OpeningBalanceRow `json:"data"`
		Editable bool                       `json:"editable"`
	}
	w := condo_mock.DoJSON(t, r, http.MethodGet,
		"/api/v1/opening-entry/balances?project_id=1&fiscal_year_id="+itoa(fy.ID), reader, nil, &resp)
	require.Equal(t, http.StatusOK, w.Code)

	assert.True(t, resp.Editable)
	require.NotEmpty(t, resp.Data)
	for _, row := range resp.Data {
		assert.Zero(t, row.Balance)
		assert.True(t, row.Editable)
		// income and expense accounts never appear in an opening entry
		assert.NotEqual(t, accounting_core.IncomeAccount, row.Type)
		assert.NotEqual(t, accounting_core.ExpenseAccount, row.Type)
	}
}

func TestOpeningCreateIsIdempotent(t *testing.T) {
	db := condo_mock.NewTestDB(t)
	chart := condo_mock.SeedChart(t, db, 1)
	fy := condo_mock.SeedFiscalYear(t, db, 1, 2025)
	auth := condo_mock.NewTestAuth()
	r := condo_mock.NewTestRouter(t, period.NewPeriodService(db, auth))
	admin := condo_mock.BearerToken(t, auth, 1, authorization.CapAdmin)

	req := period.OpeningCreateRequest{
		ProjectID:    1,
		FiscalYearID: fy.ID,
		Lines: []period.OpeningLine{
			{AccountID: chart["110101"].ID, Debit: 1000},
			{AccountID: chart["310101"].ID, Credit: 1000},
		},
	}

	var doc accounting_core.AccountingDocument
	w := condo_mock.DoJSON(t, r, http.MethodPost, "/api/v1/opening-entry", admin, req, &doc)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, accounting_core.PermanentDocument, doc.Status)
	assert.Equal(t, accounting_core.OpeningJournal, doc.JournalType)

	var stamped accounting_core.FiscalYear
	err := db.Where("id = ?", fy.ID).Find(&stamped).Error
	require.NoError(t, err)
	require.NotNil(t, stamped.OpeningDocID)
	assert.Equal(t, doc.ID, *stamped.OpeningDocID)

	// the stamp refuses a second posting
	w = condo_mock.DoJSON(t, r, http.MethodPost, "/api/v1/opening-entry", admin, req, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestOpeningCreateRejectsUnbalanced(t *testing.T) {
	db := condo_mock.NewTestDB(t)
	chart := condo_mock.SeedChart(t, db, 1)
	fy := condo_mock.SeedFiscalYear(t, db, 1, 2025)
	auth := condo_mock.NewTestAuth()
	r := condo_mock.NewTestRouter(t, period.NewPeriodService(db, auth))
	admin := condo_mock.BearerToken(t, auth, 1, authorization.CapAdmin)

	w := condo_mock.DoJSON(t, r, http.MethodPost, "/api/v1/opening-entry", admin, period.OpeningCreateRequest{
		ProjectID:    1,
		FiscalYearID: fy.ID,
		Lines: []period.OpeningLine{
			{AccountID: chart["110101"].ID, Debit: 1000},
			{AccountID: chart["310101"].ID, Credit: 700},
		},
	}, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	// rejection leaves the year unstamped
	var fresh accounting_core.FiscalYear
	err := db.Where("id = ?", fy.ID).Find(&fresh).Error
	require.NoError(t, err)
	assert.Nil(t, fresh.OpeningDocID)
}

func TestClosingSweepsResultToRetainedEarnings(t *testing.T) {
	db := condo_mock.NewTestDB(t)
	chart := condo_mock.SeedChart(t, db, 1)
	fy := condo_mock.SeedFiscalYear(t, db, 1, 2025)
	auth := condo_mock.NewTestAuth()
	r := condo_mock.NewTestRouter(t, period.NewPeriodService(db, auth))
	admin := condo_mock.BearerToken(t, auth, 1, authorization.CapAdmin)

	cash := chart["110101"]
	income := chart["410101"]
	repairs := chart["510101"]

	// income 800, expense 300: a 500 profit
	err := accounting_core.NewCreateDocument(db).
		Project(1, fy.ID).
		Title("fees").
		Entry(cash.ID, 800, 0, "").
		Entry(income.ID, 0, 800, "").
		Commit().
		Err()
	require.NoError(t, err)

	err = accounting_core.NewCreateDocument(db).
		Project(1, fy.ID).
		Title("repairs").
		Entry(repairs.ID, 300, 0, "").
		Entry(cash.ID, 0, 300, "").
		Commit().
		Err()
	require.NoError(t, err)

	var doc accounting_core.AccountingDocument
	w := condo_mock.DoJSON(t, r, http.MethodPost, "/api/v1/closing-entry", admin, period.ClosingCreateRequest{
		ProjectID:    1,
		FiscalYearID: fy.ID,
	}, &doc)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, accounting_core.ClosingJournal, doc.JournalType)
	assert.Equal(t, accounting_core.PermanentDocument, doc.Status)

	// income and expense accumulators are zeroed
	for _, acc := range []*accounting_core.Account{income, repairs} {
		var l accounting_core.Ledger
		err = db.Where("project_id = ? AND account_id = ?", 1, acc.ID).Find(&l).Error
		require.NoError(t, err)
		assert.InDelta(t, 0, l.Balance, 0.001)
	}

	// the 500 profit lands credit-side in retained earnings
	var equity accounting_core.Ledger
	err = db.Where("project_id = ? AND account_id = ?", 1, chart["310102"].ID).Find(&equity).Error
	require.NoError(t, err)
	assert.InDelta(t, -500, equity.Balance, 0.001)

	// cash carries forward untouched
	var cashLedger accounting_core.Ledger
	err = db.Where("project_id = ? AND account_id = ?", 1, cash.ID).Find(&cashLedger).Error
	require.NoError(t, err)
	assert.InDelta(t, 500, cashLedger.Balance, 0.001)

	// nothing left to close on a rerun
	w = condo_mock.DoJSON(t, r, http.MethodPost, "/api/v1/closing-entry", admin, period.ClosingCreateRequest{
		ProjectID:    1,
		FiscalYearID: fy.ID,
	}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestClosingBalancesClassification(t *testing.T) {
	db := condo_mock.NewTestDB(t)
	condo_mock.SeedChart(t, db, 1)
	fy := condo_mock.SeedFiscalYear(t, db, 1, 2025)
	auth := condo_mock.NewTestAuth()
	r := condo_mock.NewTestRouter(t, period.NewPeriodService(db, auth))
	reader := condo_mock.BearerToken(t, auth, 1, authorization.CapRead)

	var resp struct {
		Data       []period.ClosingBalanceRow `json:"data"`
		Suggestion json.RawMessage            `json:"initial_capital_suggestion"`
	}
	w := condo_mock.DoJSON(t, r, http.MethodGet,
		"/api/v1/closing-entry/balances?project_id=1&fiscal_year_id="+itoa(fy.ID), reader, nil, &resp)
	require.Equal(t, http.StatusOK, w.Code)
	require.NotEmpty(t, resp.Data)
	assert.NotEmpty(t, resp.Suggestion)

	for _, row := range resp.Data {
		closed := row.Type == accounting_core.IncomeAccount || row.Type == accounting_core.ExpenseAccount
		assert.Equal(t, closed, row.WillBeClosed)
		assert.Equal(t, !closed, row.TransferredToNextYear)
	}
}

func itoa(v uint) string {
	return strconv.Itoa(int(v))
}
