package accounting_core

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CreateDocument posts a balanced accounting document: the document row,
// its entry lines, one Transaction per posted side and the ledger
// accumulator updates all land in the caller's database transaction.
type CreateDocument interface {
	Project(projectID, fiscalYearID uint) CreateDocument
	Title(title string) CreateDocument
	DocDate(t time.Time) CreateDocument
	JournalType(jt JournalType) CreateDocument
	Status(status DocumentStatus) CreateDocument
	CreatedBy(userID uint) CreateDocument
	Entry(accountID uint, debit, credit float64, desc string) CreateDocument
	Commit() CreateDocument
	Data() *AccountingDocument
	Err() error
}

type createDocumentImpl struct {
	tx      *gorm.DB
	doc     *AccountingDocument
	entries DocumentEntriesList
	err     error
}

// Project implements CreateDocument.
func (c *createDocumentImpl) Project(projectID, fiscalYearID uint) CreateDocument {
	c.doc.ProjectID = projectID
	c.doc.FiscalYearID = fiscalYearID
	return c
}

// Title implements CreateDocument.
func (c *createDocumentImpl) Title(title string) CreateDocument {
	c.doc.Title = title
	return c
}

// DocDate implements CreateDocument.
func (c *createDocumentImpl) DocDate(t time.Time) CreateDocument {
	c.doc.DocDate = t
	return c
}

// JournalType implements CreateDocument.
func (c *createDocumentImpl) JournalType(jt JournalType) CreateDocument {
	c.doc.JournalType = jt
	return c
}

// Status implements CreateDocument.
func (c *createDocumentImpl) Status(status DocumentStatus) CreateDocument {
	c.doc.Status = status
	return c
}

// CreatedBy implements CreateDocument.
func (c *createDocumentImpl) CreatedBy(userID uint) CreateDocument {
	c.doc.CreatedByID = userID
	return c
}

// Entry implements CreateDocument.
func (c *createDocumentImpl) Entry(accountID uint, debit, credit float64, desc string) CreateDocument {
	if debit < 0 || credit < 0 {
		return c.setErr(&ValidationError{Field: "entries", Reason: "entry amounts must be non-negative"})
	}

	c.entries = append(c.entries, &DocumentEntry{
		AccountID: accountID,
		Debit:     debit,
		Credit:    credit,
		Desc:      desc,
	})
	return c
}

// Commit implements CreateDocument.
func (c *createDocumentImpl) Commit() CreateDocument {
	if c.err != nil {
		return c
	}

	if len(c.entries) == 0 {
		return c.setErr(&ValidationError{Field: "entries", Reason: "document has no entries"})
	}

	if !c.entries.IsBalanced() {
		debit, credit := c.entries.Totals()
		return c.setErr(&UnbalancedEntryError{
			Debit:   debit,
			Credit:  credit,
			Entries: c.entries,
		})
	}

	if c.doc.ProjectID == 0 {
		return c.setErr(&ValidationError{Field: "project_id", Reason: "project is required"})
	}

	if c.doc.DocNo == "" {
		c.doc.DocNo = uuid.NewString()
	}
	if c.doc.JournalType == "" {
		c.doc.JournalType = GeneralJournal
	}
	if c.doc.Status == "" {
		c.doc.Status = TemporaryDocument
	}
	if c.doc.DocDate.IsZero() {
		c.doc.DocDate = time.Now()
	}
	c.doc.Created = time.Now()

	err := c.tx.Save(c.doc).Error
	if err != nil {
		return c.setErr(err)
	}

	for _, entry := range c.entries {
		entry.DocumentID = c.doc.ID
	}
	err = c.tx.Save(&c.entries).Error
	if err != nil {
		return c.setErr(err)
	}

	err = postDocumentTransactions(c.tx, c.doc, c.entries)
	if err != nil {
		return c.setErr(err)
	}

	c.doc.Entries = c.entries
	return c
}

// Data implements CreateDocument.
func (c *createDocumentImpl) Data() *AccountingDocument {
	return c.doc
}

// Err implements CreateDocument.
func (c *createDocumentImpl) Err() error {
	return c.err
}

func (c *createDocumentImpl) setErr(err error) *createDocumentImpl {
	if c.err != nil {
		return c
	}

	if err != nil {
		c.err = err
	}

	return c
}

func NewCreateDocument(tx *gorm.DB) CreateDocument {
	return &createDocumentImpl{
		tx:  tx,
		doc: &AccountingDocument{},
	}
}

// postDocumentTransactions appends one DEBIT or CREDIT transaction per
// non-zero entry side and applies each to the ledger accumulator.
func postDocumentTransactions(tx *gorm.DB, doc *AccountingDocument, entries DocumentEntriesList) error {
	var err error
	for _, entry := range entries {
		if entry.Debit > 0 {
			err = postTransaction(tx, &Transaction{
				ProjectID:    doc.ProjectID,
				FiscalYearID: doc.FiscalYearID,
				AccountID:    entry.AccountID,
				Type:         Debit,
				Amount:       entry.Debit,
				JournalType:  doc.JournalType,
				DocumentID:   &doc.ID,
				Desc:         entry.Desc,
				CreatedByID:  doc.CreatedByID,
				EntryTime:    doc.DocDate,
			})
			if err != nil {
				return err
			}
		}

		if entry.Credit > 0 {
			err = postTransaction(tx, &Transaction{
				ProjectID:    doc.ProjectID,
				FiscalYearID: doc.FiscalYearID,
				AccountID:    entry.AccountID,
				Type:         Credit,
				Amount:       entry.Credit,
				JournalType:  doc.JournalType,
				DocumentID:   &doc.ID,
				Desc:         entry.Desc,
				CreatedByID:  doc.CreatedByID,
				EntryTime:    doc.DocDate,
			})
			if err != nil {
				return err
			}
		}
	}

	return nil
}

var ErrDocumentNotLoaded = &NotFoundError{Entity: "document"}

// DocumentMutation edits, re-statuses or deletes an existing document.
// PERMANENT documents reject edit and delete until downgraded.
type DocumentMutation interface {
	ByID(id uint, lock bool) DocumentMutation
	IsExist() bool
	ReplaceEntries(entries DocumentEntriesList) DocumentMutation
	Retitle(title string, docDate time.Time) DocumentMutation
	SetStatus(status DocumentStatus) DocumentMutation
	Delete() DocumentMutation
	Data() *AccountingDocument
	Err() error
}

type documentMutationImpl struct {
	tx   *gorm.DB
	data *AccountingDocument
	err  error
}

// ByID implements DocumentMutation.
func (d *documentMutationImpl) ByID(id uint, lock bool) DocumentMutation {
	tx := d.tx
	d.data = &AccountingDocument{}

	if lock {
		tx = tx.Clauses(clause.Locking{
			Strength: "UPDATE",
		})
	}

	err := tx.Model(&AccountingDocument{}).
		Where("id = ?", id).
		Find(d.data).
		Error
	if err != nil {
		return d.setErr(err)
	}

	if d.data.ID == 0 {
		return d.setErr(&NotFoundError{Entity: "document", ID: id})
	}

	return d
}

// IsExist implements DocumentMutation.
func (d *documentMutationImpl) IsExist() bool {
	return d.data != nil && d.data.ID != 0
}

// ReplaceEntries implements DocumentMutation.
func (d *documentMutationImpl) ReplaceEntries(entries DocumentEntriesList) DocumentMutation {
	if d.err != nil {
		return d
	}
	if d.data == nil {
		return d.setErr(ErrDocumentNotLoaded)
	}

	if d.data.Status == PermanentDocument {
		return d.setErr(&ImmutableDocumentError{
			DocumentID: d.data.ID,
			Operation:  "edit",
		})
	}

	if len(entries) == 0 {
		return d.setErr(&ValidationError{Field: "entries", Reason: "document has no entries"})
	}

	if !entries.IsBalanced() {
		debit, credit := entries.Totals()
		return d.setErr(&UnbalancedEntryError{
			Debit:   debit,
			Credit:  credit,
			Entries: entries,
		})
	}

	err := d.unpost()
	if err != nil {
		return d.setErr(err)
	}

	err = d.tx.
		Where("document_id = ?", d.data.ID).
		Delete(&DocumentEntry{}).
		Error
	if err != nil {
		return d.setErr(err)
	}

	for _, entry := range entries {
		entry.ID = 0
		entry.DocumentID = d.data.ID
	}
	err = d.tx.Save(&entries).Error
	if err != nil {
		return d.setErr(err)
	}

	err = postDocumentTransactions(d.tx, d.data, entries)
	if err != nil {
		return d.setErr(err)
	}

	d.data.Entries = entries
	return d
}

// Retitle implements DocumentMutation.
func (d *documentMutationImpl) Retitle(title string, docDate time.Time) DocumentMutation {
	if d.err != nil {
		return d
	}
	if d.data == nil {
		return d.setErr(ErrDocumentNotLoaded)
	}

	if d.data.Status == PermanentDocument {
		return d.setErr(&ImmutableDocumentError{
			DocumentID: d.data.ID,
			Operation:  "edit",
		})
	}

	d.data.Title = title
	if !docDate.IsZero() {
		d.data.DocDate = docDate
	}

	return d.setErr(d.tx.Save(d.data).Error)
}

// SetStatus implements DocumentMutation.
func (d *documentMutationImpl) SetStatus(status DocumentStatus) DocumentMutation {
	if d.err != nil {
		return d
	}
	if d.data == nil {
		return d.setErr(ErrDocumentNotLoaded)
	}

	switch status {
	case TemporaryDocument, PermanentDocument:
	default:
		return d.setErr(&ValidationError{Field: "status", Reason: "unknown document status"})
	}

	if d.data.Status == status {
		return d
	}

	d.data.Status = status
	return d.setErr(d.tx.Save(d.data).Error)
}

// Delete implements DocumentMutation.
func (d *documentMutationImpl) Delete() DocumentMutation {
	if d.err != nil {
		return d
	}
	if d.data == nil {
		return d.setErr(ErrDocumentNotLoaded)
	}

	if d.data.Status == PermanentDocument {
		return d.setErr(&ImmutableDocumentError{
			DocumentID: d.data.ID,
			Operation:  "delete",
		})
	}

	err := d.unpost()
	if err != nil {
		return d.setErr(err)
	}

	err = d.tx.
		Where("document_id = ?", d.data.ID).
		Delete(&DocumentEntry{}).
		Error
	if err != nil {
		return d.setErr(err)
	}

	return d.setErr(d.tx.Delete(d.data).Error)
}

// Data implements DocumentMutation.
func (d *documentMutationImpl) Data() *AccountingDocument {
	return d.data
}

// Err implements DocumentMutation.
func (d *documentMutationImpl) Err() error {
	return d.err
}

// unpost reverses the document's ledger effect and removes its
// transactions, so replaced entries can repost cleanly.
func (d *documentMutationImpl) unpost() error {
	var trans []*Transaction
	err := d.tx.Model(&Transaction{}).
		Where("document_id = ?", d.data.ID).
		Find(&trans).
		Error
	if err != nil {
		return err
	}

	for _, tr := range trans {
		err = applyLedger(d.tx, tr.ProjectID, tr.AccountID, -tr.Type.SignedAmount(tr.Amount))
		if err != nil {
			return err
		}
	}

	if len(trans) == 0 {
		return nil
	}

	return d.tx.
		Where("document_id = ?", d.data.ID).
		Delete(&Transaction{}).
		Error
}

func (d *documentMutationImpl) setErr(err error) *documentMutationImpl {
	if d.err != nil {
		return d
	}

	if err != nil {
		d.err = err
	}

	return d
}

func NewDocumentMutation(tx *gorm.DB) DocumentMutation {
	return &documentMutationImpl{
		tx: tx,
	}
}
