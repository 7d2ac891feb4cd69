package account

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/stratafin/condo_service/accounting_core"
	"github.com/stratafin/condo_service/common"
)

type AccountCreateRequest struct {
	ProjectID    uint                        `json:"project_id" binding:"required"`
	FiscalYearID uint                        `json:"fiscal_year_id"`
	Code         accounting_core.AccountCode `json:"code" binding:"required"`
	Name         string                      `json:"name" binding:"required"`
	Type         accounting_core.AccountType `json:"type" binding:"required"`
	ParentID     *uint                       `json:"parent_id"`
}

// AccountCreate adds one chart node. The code must be well formed,
// unique within the project and, when a parent is given, sit directly
// underneath the parent's code.
func (a *accountServiceImpl) AccountCreate(c *gin.Context) {
	var req AccountCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	acc := accounting_core.Account{
		ProjectID:    req.ProjectID,
		FiscalYearID: req.FiscalYearID,
		Code:         req.Code,
		Name:         req.Name,
		Type:         req.Type,
		ParentID:     req.ParentID,
		IsActive:     true,
		Created:      time.Now(),
	}

	err := a.db.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		if err := validateNewAccount(tx, &acc); err != nil {
			return err
		}

		acc.Level = acc.Code.Level()
		return tx.Create(&acc).Error
	})

	if err != nil {
		common.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, acc)
}

func validateNewAccount(tx *gorm.DB, acc *accounting_core.Account) error {
	if err := acc.Code.Validate(); err != nil {
		return err
	}

	switch acc.Type {
	case accounting_core.AssetAccount,
		accounting_core.LiabilityAccount,
		accounting_core.EquityAccount,
		accounting_core.IncomeAccount,
		accounting_core.ExpenseAccount:
	default:
		return &accounting_core.ValidationError{Field: "type", Reason: "unknown account type"}
	}

	// leading digit stays reserved per type by convention
	if acc.Code[0] != acc.Type.GroupDigit() {
		return &accounting_core.ValidationError{
			Field:  "code",
			Reason: "group digit does not match the account type convention",
		}
	}

	if acc.ParentID != nil {
		var parent accounting_core.Account
		err := tx.Model(&accounting_core.Account{}).
			Where("project_id = ?", acc.ProjectID).
			Find(&parent, *acc.ParentID).
			Error
		if err != nil {
			return err
		}
		if parent.ID == 0 {
			return &accounting_core.NotFoundError{Entity: "account", ID: *acc.ParentID}
		}

		parentOf, ok := acc.Code.ParentCode()
		if !ok || parentOf != parent.Code {
			return &accounting_core.ValidationError{
				Field:  "code",
				Reason: "code does not sit directly under the parent's code",
			}
		}
	} else if acc.Code.Level() != accounting_core.GroupLevel {
		return &accounting_core.ValidationError{
			Field:  "parent_id",
			Reason: "non-group accounts need a parent",
		}
	}

	var count int64
	err := tx.Model(&accounting_core.Account{}).
		Where("project_id = ?", acc.ProjectID).
		Where("code = ?", acc.Code).
		Count(&count).
		Error
	if err != nil {
		return err
	}
	if count > 0 {
		return &accounting_core.DuplicateCodeError{
			ProjectID: acc.ProjectID,
			Code:      acc.Code,
		}
	}

	return nil
}
