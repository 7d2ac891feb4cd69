package period

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/stratafin/condo_service/accounting_core"
	"github.com/stratafin/condo_service/authorization"
	"github.com/stratafin/condo_service/common"
)

type OpeningBalanceRow struct {
	AccountID uint                        `json:"account_id"`
	Code      accounting_core.AccountCode `json:"code"`
	Name      string                      `json:"name"`
	Type      accounting_core.AccountType `json:"type"`
	Balance   float64                     `json:"balance"`
	Editable  bool                        `json:"editable"`
}

// OpeningBalances lists the balance-sheet accounts of the fiscal year.
// A fresh year (no general-journal postings yet) presents zeroes and
// marks every row editable for the caller-supplied opening pairs.
func (p *periodServiceImpl) OpeningBalances(c *gin.Context) {
	projectID, fyID, ok := projectYearParams(c)
	if !ok {
		return
	}

	db := p.db.WithContext(c.Request.Context())

	fresh, err := isFreshYear(db, projectID, fyID)
	if err != nil {
		common.AbortWithError(c, err)
		return
	}

	rows, err := balanceRows(db, projectID, func(t accounting_core.AccountType) bool {
		return !t.WillBeClosed()
	})
	if err != nil {
		common.AbortWithError(c, err)
		return
	}

	out := []*OpeningBalanceRow{}
	for _, row := range rows {
		balance := row.Balance
		if fresh {
			balance = 0
		}
		out = append(out, &OpeningBalanceRow{
			AccountID: row.AccountID,
			Code:      row.Code,
			Name:      row.Name,
			Type:      row.Type,
			Balance:   balance,
			Editable:  fresh,
		})
	}

	c.JSON(http.StatusOK, gin.H{"data": out, "editable": fresh})
}

type OpeningLine struct {
	AccountID uint    `json:"account_id" binding:"required"`
	Debit     float64 `json:"debit"`
	Credit    float64 `json:"credit"`
}

type OpeningCreateRequest struct {
	ProjectID    uint          `json:"project_id" binding:"required"`
	FiscalYearID uint          `json:"fiscal_year_id" binding:"required"`
	DocDate      time.Time     `json:"doc_date"`
	Lines        []OpeningLine `json:"lines" binding:"required"`
}

// OpeningCreate posts the caller-supplied opening pairs as one
// PERMANENT document and stamps the fiscal year with its id. The stamp
// is the idempotency marker: a stamped year refuses a second opening
// entry.
func (p *periodServiceImpl) OpeningCreate(c *gin.Context) {
	var req OpeningCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	var doc *accounting_core.AccountingDocument
	err := p.db.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		var fy accounting_core.FiscalYear
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Model(&accounting_core.FiscalYear{}).
			Where("id = ?", req.FiscalYearID).
			Where("project_id = ?", req.ProjectID).
			Find(&fy).
			Error
		if err != nil {
			return err
		}
		if fy.ID == 0 {
			return &accounting_core.NotFoundError{Entity: "fiscal year", ID: req.FiscalYearID}
		}

		if fy.OpeningDocID != nil {
			return &accounting_core.ValidationError{
				Field:  "fiscal_year_id",
				Reason: "opening entry already posted for this fiscal year",
			}
		}

		create := accounting_core.NewCreateDocument(tx).
			Project(req.ProjectID, req.FiscalYearID).
			Title("Opening entry").
			DocDate(req.DocDate).
			JournalType(accounting_core.OpeningJournal).
			Status(accounting_core.PermanentDocument).
			CreatedBy(authorization.UserID(c))

		for _, line := range req.Lines {
			create = create.Entry(line.AccountID, line.Debit, line.Credit, "opening balance")
		}

		err = create.Commit().Err()
		if err != nil {
			return err
		}

		doc = create.Data()
		fy.OpeningDocID = &doc.ID
		return tx.Save(&fy).Error
	})

	if err != nil {
		common.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, doc)
}

func projectYearParams(c *gin.Context) (uint, uint, bool) {
	projectID, err := strconv.ParseUint(c.Query("project_id"), 10, 64)
	if err != nil || projectID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "project_id is required"})
		return 0, 0, false
	}
	fyID, err := strconv.ParseUint(c.Query("fiscal_year_id"), 10, 64)
	if err != nil || fyID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "fiscal_year_id is required"})
		return 0, 0, false
	}
	return uint(projectID), uint(fyID), true
}

// isFreshYear reports whether the fiscal year has no general-journal
// postings yet.
func isFreshYear(db *gorm.DB, projectID, fyID uint) (bool, error) {
	var count int64
	err := db.Model(&accounting_core.Transaction{}).
		Where("project_id = ?", projectID).
		Where("fiscal_year_id = ?", fyID).
		Where("journal_type = ?", accounting_core.GeneralJournal).
		Count(&count).
		Error
	return count == 0, err
}

type accountBalanceRow struct {
	AccountID uint
	Code      accounting_core.AccountCode
	Name      string
	Type      accounting_core.AccountType
	Balance   float64 // display-signed
	Raw       float64 // debit-positive accumulator
}

// balanceRows joins the chart with the ledger accumulator and derives
// display-signed balances, filtered by account type.
func balanceRows(db *gorm.DB, projectID uint, keep func(t accounting_core.AccountType) bool) ([]*accountBalanceRow, error) {
	var accounts []accounting_core.Account
	err := db.Model(&accounting_core.Account{}).
		Where("project_id = ?", projectID).
		Where("is_active = ?", true).
		Order("code asc").
		Find(&accounts).
		Error
	if err != nil {
		return nil, err
	}

	var ledgers []accounting_core.Ledger
	err = db.Model(&accounting_core.Ledger{}).
		Where("project_id = ?", projectID).
		Find(&ledgers).
		Error
	if err != nil {
		return nil, err
	}

	raw := map[uint]float64{}
	for _, l := range ledgers {
		raw[l.AccountID] = l.Balance
	}

	rows := []*accountBalanceRow{}
	for _, acc := range accounts {
		if !keep(acc.Type) {
			continue
		}
		rows = append(rows, &accountBalanceRow{
			AccountID: acc.ID,
			Code:      acc.Code,
			Name:      acc.Name,
			Type:      acc.Type,
			Balance:   accounting_core.SignedBalance(acc.Type, raw[acc.ID]),
			Raw:       raw[acc.ID],
		})
	}

	return rows, nil
}
