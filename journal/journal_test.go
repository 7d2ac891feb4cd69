package journal_test

import (
	"net/http"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/stratafin/condo_service/accounting_core"
	"github.com/stratafin/condo_service/authorization"
	"github.com/stratafin/condo_service/condo_mock"
	"github.com/stratafin/condo_service/journal"
)

func TestDocumentCreateAndReject(t *testing.T) {
	db := condo_mock.NewTestDB(t)
	chart := condo_mock.SeedChart(t, db, 1)
	fy := condo_mock.SeedFiscalYear(t, db, 1, 2025)
	auth := condo_mock.NewTestAuth()
	r := condo_mock.NewTestRouter(t, journal.NewJournalService(db, auth, zap.NewNop()))
	writer := condo_mock.BearerToken(t, auth, 3, authorization.CapWrite)

	var doc accounting_core.AccountingDocument
	w := condo_mock.DoJSON(t, r, http.MethodPost, "/api/v1/documents", writer, journal.DocumentCreateRequest{
		ProjectID:    1,
		FiscalYearID: fy.ID,
		Title:        "march fees",
		Entries: []journal.EntryPayload{
			{AccountID: chart["110101"].ID, Debit: 300},
			{AccountID: chart["410101"].ID, Credit: 300},
		},
	}, &doc)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.NotZero(t, doc.ID)
	assert.Equal(t, uint(3), doc.CreatedByID)

	// unbalanced set never lands
	w = condo_mock.DoJSON(t, r, http.MethodPost, "/api/v1/documents", writer, journal.DocumentCreateRequest{
		ProjectID:    1,
		FiscalYearID: fy.ID,
		Title:        "broken",
		Entries: []journal.EntryPayload{
			{AccountID: chart["110101"].ID, Debit: 300},
			{AccountID: chart["410101"].ID, Credit: 200},
		},
	}, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestDocumentUpdateRepostsEntries(t *testing.T) {
	db := condo_mock.NewTestDB(t)
	chart := condo_mock.SeedChart(t, db, 1)
	fy := condo_mock.SeedFiscalYear(t, db, 1, 2025)
	auth := condo_mock.NewTestAuth()
	r := condo_mock.NewTestRouter(t, journal.NewJournalService(db, auth, zap.NewNop()))
	writer := condo_mock.BearerToken(t, auth, 3, authorization.CapWrite)

	var doc accounting_core.AccountingDocument
	w := condo_mock.DoJSON(t, r, http.MethodPost, "/api/v1/documents", writer, journal.DocumentCreateRequest{
		ProjectID:    1,
		FiscalYearID: fy.ID,
		Title:        "draft",
		Entries: []journal.EntryPayload{
			{AccountID: chart["110101"].ID, Debit: 300},
			{AccountID: chart["410101"].ID, Credit: 300},
		},
	}, &doc)
	require.Equal(t, http.StatusCreated, w.Code)

	w = condo_mock.DoJSON(t, r, http.MethodPut, "/api/v1/documents/"+strconv.Itoa(int(doc.ID)), writer,
		journal.DocumentUpdateRequest{
			Title: "corrected",
			Entries: []journal.EntryPayload{
				{AccountID: chart["110102"].ID, Debit: 500},
				{AccountID: chart["410101"].ID, Credit: 500},
			},
		}, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var cashLedger accounting_core.Ledger
	err := db.Where("project_id = ? AND account_id = ?", 1, chart["110101"].ID).Find(&cashLedger).Error
	require.NoError(t, err)
	assert.InDelta(t, 0, cashLedger.Balance, 0.001)

	var bankLedger accounting_core.Ledger
	err = db.Where("project_id = ? AND account_id = ?", 1, chart["110102"].ID).Find(&bankLedger).Error
	require.NoError(t, err)
	assert.InDelta(t, 500, bankLedger.Balance, 0.001)
}

func TestPermanentLifecycle(t *testing.T) {
	db := condo_mock.NewTestDB(t)
	chart := condo_mock.SeedChart(t, db, 1)
	fy := condo_mock.SeedFiscalYear(t, db, 1, 2025)
	auth := condo_mock.NewTestAuth()
	r := condo_mock.NewTestRouter(t, journal.NewJournalService(db, auth, zap.NewNop()))
	writer := condo_mock.BearerToken(t, auth, 3, authorization.CapWrite)
	admin := condo_mock.BearerToken(t, auth, 1, authorization.CapAdmin)

	var doc accounting_core.AccountingDocument
	w := condo_mock.DoJSON(t, r, http.MethodPost, "/api/v1/documents", writer, journal.DocumentCreateRequest{
		ProjectID:    1,
		FiscalYearID: fy.ID,
		Title:        "final",
		Entries: []journal.EntryPayload{
			{AccountID: chart["110101"].ID, Debit: 100},
			{AccountID: chart["410101"].ID, Credit: 100},
		},
	}, &doc)
	require.Equal(t, http.StatusCreated, w.Code)

	path := "/api/v1/documents/" + strconv.Itoa(int(doc.ID))

	// status transitions need admin capability
	w = condo_mock.DoJSON(t, r, http.MethodPatch, path+"/status", writer,
		journal.DocumentStatusRequest{Status: accounting_core.PermanentDocument}, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = condo_mock.DoJSON(t, r, http.MethodPatch, path+"/status", admin,
		journal.DocumentStatusRequest{Status: accounting_core.PermanentDocument}, nil)
	require.Equal(t, http.StatusOK, w.Code)

	// permanent rejects edit and delete
	w = condo_mock.DoJSON(t, r, http.MethodPut, path, writer,
		journal.DocumentUpdateRequest{Title: "renamed"}, nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = condo_mock.DoJSON(t, r, http.MethodDelete, path, writer, nil, nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	// downgrade, then the edit goes through
	w = condo_mock.DoJSON(t, r, http.MethodPatch, path+"/status", admin,
		journal.DocumentStatusRequest{Status: accounting_core.TemporaryDocument}, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = condo_mock.DoJSON(t, r, http.MethodDelete, path, writer, nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestDocumentUpdateNotFound(t *testing.T) {
	db := condo_mock.NewTestDB(t)
	auth := condo_mock.NewTestAuth()
	r := condo_mock.NewTestRouter(t, journal.NewJournalService(db, auth, zap.NewNop()))
	writer := condo_mock.BearerToken(t, auth, 3, authorization.CapWrite)

	w := condo_mock.DoJSON(t, r, http.MethodPut, "/api/v1/documents/424242", writer,
		journal.DocumentUpdateRequest{Title: "ghost"}, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
