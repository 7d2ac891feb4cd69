package account

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/stratafin/condo_service/accounting_core"
	"github.com/stratafin/condo_service/common"
)

type AccountUpdateRequest struct {
	Name     string `json:"name"`
	IsActive *bool  `json:"is_active"`
}

// AccountUpdate renames or toggles a chart node. Disabling is the
// sanctioned alternative to deleting an account with posted
// transactions.
func (a *accountServiceImpl) AccountUpdate(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid account id"})
		return
	}

	var req AccountUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	var acc accounting_core.Account
	err = a.db.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Model(&accounting_core.Account{}).
			Where("id = ?", id).
			Find(&acc).
			Error
		if err != nil {
			return err
		}
		if acc.ID == 0 {
			return &accounting_core.NotFoundError{Entity: "account", ID: uint(id)}
		}

		if req.Name != "" {
			acc.Name = req.Name
		}
		if req.IsActive != nil {
			acc.IsActive = *req.IsActive
		}

		return tx.Save(&acc).Error
	})

	if err != nil {
		common.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, acc)
}
