package accounting_core_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stratafin/condo_service/accounting_core"
	"github.com/stratafin/condo_service/condo_mock"
)

func TestCreateDocumentPostsLedger(t *testing.T) {
	db := condo_mock.NewTestDB(t)
	chart := condo_mock.SeedChart(t, db, 1)
	fy := condo_mock.SeedFiscalYear(t, db, 1, 2025)

	cash := chart["110101"]
	income := chart["410101"]

	create := accounting_core.NewCreateDocument(db).
		Project(1, fy.ID).
		Title("march fees").
		DocDate(time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)).
		CreatedBy(7).
		Entry(cash.ID, 500, 0, "cash in").
		Entry(income.ID, 0, 500, "fee income").
		Commit()
	require.NoError(t, create.Err())

	doc := create.Data()
	assert.NotZero(t, doc.ID)
	assert.NotEmpty(t, doc.DocNo)
	assert.Equal(t, accounting_core.TemporaryDocument, doc.Status)
	assert.Equal(t, accounting_core.GeneralJournal, doc.JournalType)

	var trans []accounting_core.Transaction
	err := db.Where("document_id = ?", doc.ID).Order("id asc").Find(&trans).Error
	require.NoError(t, err)
	require.Len(t, trans, 2)
	assert.Equal(t, accounting_core.Debit, trans[0].Type)
	assert.Equal(t, accounting_core.Credit, trans[1].Type)

	var cashLedger accounting_core.Ledger
	err = db.Where("project_id = ? AND account_id = ?", 1, cash.ID).Find(&cashLedger).Error
	require.NoError(t, err)
	assert.InDelta(t, 500, cashLedger.Balance, 0.001)

	var incomeLedger accounting_core.Ledger
	err = db.Where("project_id = ? AND account_id = ?", 1, income.ID).Find(&incomeLedger).Error
	require.NoError(t, err)
	assert.InDelta(t, -500, incomeLedger.Balance, 0.001)
}

func TestCreateDocumentRejectsUnbalanced(t *testing.T) {
	db := condo_mock.NewTestDB(t)
	chart := condo_mock.SeedChart(t, db, 1)
	fy := condo_mock.SeedFiscalYear(t, db, 1, 2025)

	create := accounting_core.NewCreateDocument(db).
		Project(1, fy.ID).
		Title("broken").
		Entry(chart["110101"].ID, 500, 0, "").
		Entry(chart["410101"].ID, 0, 400, "").
		Commit()

	var unbalanced *accounting_core.UnbalancedEntryError
	require.True(t, errors.As(create.Err(), &unbalanced))
	assert.InDelta(t, 500, unbalanced.Debit, 0.001)
	assert.InDelta(t, 400, unbalanced.Credit, 0.001)

	var count int64
	err := db.Model(&accounting_core.Transaction{}).Count(&count).Error
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestCreateDocumentBalanceTolerance(t *testing.T) {
	db := condo_mock.NewTestDB(t)
	chart := condo_mock.SeedChart(t, db, 1)
	fy := condo_mock.SeedFiscalYear(t, db, 1, 2025)

	// 0.01 apart still balances, rounding drift must not block posting
	create := accounting_core.NewCreateDocument(db).
		Project(1, fy.ID).
		Title("rounded").
		Entry(chart["110101"].ID, 100.00, 0, "").
		Entry(chart["410101"].ID, 0, 99.99, "").
		Commit()
	require.NoError(t, create.Err())
}

func TestCreateDocumentRejectsEmpty(t *testing.T) {
	db := condo_mock.NewTestDB(t)
	condo_mock.SeedChart(t, db, 1)
	fy := condo_mock.SeedFiscalYear(t, db, 1, 2025)

	create := accounting_core.NewCreateDocument(db).
		Project(1, fy.ID).
		Title("empty").
		Commit()

	var verr *accounting_core.ValidationError
	require.True(t, errors.As(create.Err(), &verr))
}

func TestReplaceEntriesRepostsLedger(t *testing.T) {
	db := condo_mock.NewTestDB(t)
	chart := condo_mock.SeedChart(t, db, 1)
	fy := condo_mock.SeedFiscalYear(t, db, 1, 2025)

	cash := chart["110101"]
	bank := chart["110102"]
	income := chart["410101"]

	create := accounting_core.NewCreateDocument(db).
		Project(1, fy.ID).
		Title("original").
		Entry(cash.ID, 300, 0, "").
		Entry(income.ID, 0, 300, "").
		Commit()
	require.NoError(t, create.Err())
	doc := create.Data()

	mut := accounting_core.NewDocumentMutation(db).
		ByID(doc.ID, false).
		ReplaceEntries(accounting_core.DocumentEntriesList{
			{AccountID: bank.ID, Debit: 450, Desc: "moved to bank"},
			{AccountID: income.ID, Credit: 450},
		})
	require.NoError(t, mut.Err())

	var cashLedger accounting_core.Ledger
	err := db.Where("project_id = ? AND account_id = ?", 1, cash.ID).Find(&cashLedger).Error
	require.NoError(t, err)
	assert.InDelta(t, 0, cashLedger.Balance, 0.001)

	var bankLedger accounting_core.Ledger
	err = db.Where("project_id = ? AND account_id = ?", 1, bank.ID).Find(&bankLedger).Error
	require.NoError(t, err)
	assert.InDelta(t, 450, bankLedger.Balance, 0.001)

	var incomeLedger accounting_core.Ledger
	err = db.Where("project_id = ? AND account_id = ?", 1, income.ID).Find(&incomeLedger).Error
	require.NoError(t, err)
	assert.InDelta(t, -450, incomeLedger.Balance, 0.001)

	var entryCount int64
	err = db.Model(&accounting_core.DocumentEntry{}).
		Where("document_id = ?", doc.ID).
		Count(&entryCount).
		Error
	require.NoError(t, err)
	assert.Equal(t, int64(2), entryCount)
}

func TestPermanentDocumentIsImmutable(t *testing.T) {
	db := condo_mock.NewTestDB(t)
	chart := condo_mock.SeedChart(t, db, 1)
	fy := condo_mock.SeedFiscalYear(t, db, 1, 2025)

	create := accounting_core.NewCreateDocument(db).
		Project(1, fy.ID).
		Title("locked").
		Status(accounting_core.PermanentDocument).
		Entry(chart["110101"].ID, 100, 0, "").
		Entry(chart["410101"].ID, 0, 100, "").
		Commit()
	require.NoError(t, create.Err())
	doc := create.Data()

	var immutable *accounting_core.ImmutableDocumentError

	err := accounting_core.NewDocumentMutation(db).
		ByID(doc.ID, false).
		Retitle("renamed", time.Time{}).
		Err()
	require.True(t, errors.As(err, &immutable))

	err = accounting_core.NewDocumentMutation(db).
		ByID(doc.ID, false).
		Delete().
		Err()
	require.True(t, errors.As(err, &immutable))

	// downgrade reopens the document for edits
	err = accounting_core.NewDocumentMutation(db).
		ByID(doc.ID, false).
		SetStatus(accounting_core.TemporaryDocument).
		Err()
	require.NoError(t, err)

	err = accounting_core.NewDocumentMutation(db).
		ByID(doc.ID, false).
		Retitle("renamed", time.Time{}).
		Err()
	require.NoError(t, err)
}

func TestDeleteDocumentReversesLedger(t *testing.T) {
	db := condo_mock.NewTestDB(t)
	chart := condo_mock.SeedChart(t, db, 1)
	fy := condo_mock.SeedFiscalYear(t, db, 1, 2025)

	cash := chart["110101"]
	income := chart["410101"]

	create := accounting_core.NewCreateDocument(db).
		Project(1, fy.ID).
		Title("to delete").
		Entry(cash.ID, 250, 0, "").
		Entry(income.ID, 0, 250, "").
		Commit()
	require.NoError(t, create.Err())
	doc := create.Data()

	err := accounting_core.NewDocumentMutation(db).
		ByID(doc.ID, false).
		Delete().
		Err()
	require.NoError(t, err)

	var cashLedger accounting_core.Ledger
	err = db.Where("project_id = ? AND account_id = ?", 1, cash.ID).Find(&cashLedger).Error
	require.NoError(t, err)
	assert.InDelta(t, 0, cashLedger.Balance, 0.001)

	var count int64
	err = db.Model(&accounting_core.Transaction{}).
		Where("document_id = ?", doc.ID).
		Count(&count).
		Error
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestDocumentMutationNotFound(t *testing.T) {
	db := condo_mock.NewTestDB(t)

	err := accounting_core.NewDocumentMutation(db).
		ByID(999, false).
		Err()

	var notFound *accounting_core.NotFoundError
	require.True(t, errors.As(err, &notFound))
}
