package journal

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/stratafin/condo_service/accounting_core"
	"github.com/stratafin/condo_service/authorization"
	"github.com/stratafin/condo_service/common"
)

type EntryPayload struct {
	AccountID uint    `json:"account_id" binding:"required"`
	Debit     float64 `json:"debit"`
	Credit    float64 `json:"credit"`
	Desc      string  `json:"desc"`
}

type DocumentCreateRequest struct {
	ProjectID    uint                           `json:"project_id" binding:"required"`
	FiscalYearID uint                           `json:"fiscal_year_id" binding:"required"`
	Title        string                         `json:"title" binding:"required"`
	DocDate      time.Time                      `json:"doc_date"`
	Status       accounting_core.DocumentStatus `json:"status"`
	Entries      []EntryPayload                 `json:"entries" binding:"required"`
}

// DocumentCreate posts one balanced document. The entries, their
// transactions and the ledger updates commit or roll back together.
func (j *journalServiceImpl) DocumentCreate(c *gin.Context) {
	var req DocumentCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	var doc *accounting_core.AccountingDocument
	err := j.db.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		create := accounting_core.NewCreateDocument(tx).
			Project(req.ProjectID, req.FiscalYearID).
			Title(req.Title).
			DocDate(req.DocDate).
			JournalType(accounting_core.GeneralJournal).
			Status(req.Status).
			CreatedBy(authorization.UserID(c))

		for _, en := range req.Entries {
			create = create.Entry(en.AccountID, en.Debit, en.Credit, en.Desc)
		}

		err := create.Commit().Err()
		if err != nil {
			return err
		}

		doc = create.Data()
		return nil
	})

	if err != nil {
		common.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, doc)
}
