package period

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/stratafin/condo_service/accounting_core"
	"github.com/stratafin/condo_service/authorization"
	"github.com/stratafin/condo_service/common"
)

type ClosingBalanceRow struct {
	AccountID             uint                        `json:"account_id"`
	Code                  accounting_core.AccountCode `json:"code"`
	Name                  string                      `json:"name"`
	Type                  accounting_core.AccountType `json:"type"`
	Balance               float64                     `json:"balance"`
	WillBeClosed          bool                        `json:"will_be_closed"`
	TransferredToNextYear bool                        `json:"transferred_to_next_year"`
}

// ClosingBalances reports each account's closing treatment:
// INCOME/EXPENSE balances are zeroed into equity, balance-sheet
// accounts carry forward unchanged. A company without transactions
// gets zeroes plus the default initial-capital suggestion for equity.
func (p *periodServiceImpl) ClosingBalances(c *gin.Context) {
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

	rows, err := balanceRows(db, projectID, func(accounting_core.AccountType) bool {
		return true
	})
	if err != nil {
		common.AbortWithError(c, err)
		return
	}

	out := []*ClosingBalanceRow{}
	for _, row := range rows {
		balance := row.Balance
		if fresh {
			balance = 0
		}
		out = append(out, &ClosingBalanceRow{
			AccountID:             row.AccountID,
			Code:                  row.Code,
			Name:                  row.Name,
			Type:                  row.Type,
			Balance:               balance,
			WillBeClosed:          row.Type.WillBeClosed(),
			TransferredToNextYear: !row.Type.WillBeClosed(),
		})
	}

	resp := gin.H{"data": out}
	if fresh {
		resp["initial_capital_suggestion"] = gin.H{
			"code": accounting_core.InitialCapitalCode,
			"name": "Initial Capital",
		}
	}

	c.JSON(http.StatusOK, resp)
}

type ClosingCreateRequest struct {
	ProjectID    uint      `json:"project_id" binding:"required"`
	FiscalYearID uint      `json:"fiscal_year_id" binding:"required"`
	DocDate      time.Time `json:"doc_date"`
}

// ClosingCreate sweeps every non-zero INCOME/EXPENSE balance into
// retained earnings as one PERMANENT closing document.
func (p *periodServiceImpl) ClosingCreate(c *gin.Context) {
	var req ClosingCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	var doc *accounting_core.AccountingDocument
	err := p.db.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		rows, err := balanceRows(tx, req.ProjectID, func(t accounting_core.AccountType) bool {
			return t.WillBeClosed()
		})
		if err != nil {
			return err
		}

		var equity accounting_core.Account
		err = tx.Model(&accounting_core.Account{}).
			Where("project_id = ?", req.ProjectID).
			Where("code = ?", accounting_core.RetainedEarningsCode).
			Find(&equity).
			Error
		if err != nil {
			return err
		}
		if equity.ID == 0 {
			return &accounting_core.ValidationError{
				Field:  "project_id",
				Reason: "project chart has no retained earnings account",
			}
		}

		create := accounting_core.NewCreateDocument(tx).
			Project(req.ProjectID, req.FiscalYearID).
			Title("Closing entry").
			DocDate(req.DocDate).
			JournalType(accounting_core.ClosingJournal).
			Status(accounting_core.PermanentDocument).
			CreatedBy(authorization.UserID(c))

		var sweep float64
		var lines int
		for _, row := range rows {
			if row.Raw == 0 {
				continue
			}
			lines++
			sweep += row.Raw

			// zero the account on the side opposite its raw balance
			if row.Raw > 0 {
				create = create.Entry(row.AccountID, 0, row.Raw, "closing sweep")
			} else {
				create = create.Entry(row.AccountID, -row.Raw, 0, "closing sweep")
			}
		}

		if lines == 0 {
			return &accounting_core.ValidationError{
				Field:  "fiscal_year_id",
				Reason: "no income or expense balance to close",
			}
		}

		if sweep > 0 {
			create = create.Entry(equity.ID, sweep, 0, "result to retained earnings")
		} else if sweep < 0 {
			create = create.Entry(equity.ID, 0, -sweep, "result to retained earnings")
		}

		err = create.Commit().Err()
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
