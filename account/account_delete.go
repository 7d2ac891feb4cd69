package account

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/stratafin/condo_service/accounting_core"
	"github.com/stratafin/condo_service/common"
)

// AccountDelete removes a chart node. Accounts referenced by any
// transaction are never deleted, the caller is told to disable instead.
func (a *accountServiceImpl) AccountDelete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid account id"})
		return
	}

	err = a.db.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		var acc accounting_core.Account
		err := tx.Model(&accounting_core.Account{}).
			Where("id = ?", id).
			Find(&acc).
			Error
		if err != nil {
			return err
		}
		if acc.ID == 0 {
			return &accounting_core.NotFoundError{Entity: "account", ID: uint(id)}
		}

		var transactions int64
		err = tx.Model(&accounting_core.Transaction{}).
			Where("account_id = ?", acc.ID).
			Count(&transactions).
			Error
		if err != nil {
			return err
		}
		if transactions > 0 {
			return &accounting_core.HasTransactionsError{
				AccountID: acc.ID,
				Count:     transactions,
			}
		}

		var children int64
		err = tx.Model(&accounting_core.Account{}).
			Where("parent_id = ?", acc.ID).
			Count(&children).
			Error
		if err != nil {
			return err
		}
		if children > 0 {
			return &accounting_core.ValidationError{
				Field:  "id",
				Reason: "account has child accounts, move or delete them first",
			}
		}

		err = tx.Where("project_id = ?", acc.ProjectID).
			Where("account_id = ?", acc.ID).
			Delete(&accounting_core.Ledger{}).
			Error
		if err != nil {
			return err
		}

		return tx.Delete(&acc).Error
	})

	if err != nil {
		common.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": id})
}
