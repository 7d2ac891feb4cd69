package installment

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/stratafin/condo_service/accounting_core"
	"github.com/stratafin/condo_service/billing_core"
	"github.com/stratafin/condo_service/common"
)

type InstallmentCreateRequest struct {
	ProjectID uint      `json:"project_id" binding:"required"`
	UnitID    uint      `json:"unit_id"`
	UserID    uint      `json:"user_id" binding:"required"`
	Title     string    `json:"title" binding:"required"`
	DueDate   time.Time `json:"due_date" binding:"required"`
	Amount    float64   `json:"amount" binding:"required"`
}

// InstallmentCreate bills one participant directly, outside any
// definition fan-out. DefinitionID stays nil, marking the row as
// customized: definition edits and deletes never touch it.
func (s *installmentServiceImpl) InstallmentCreate(c *gin.Context) {
	var req InstallmentCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	if req.Amount <= 0 {
		common.AbortWithError(c, &accounting_core.ValidationError{
			Field:  "amount",
			Reason: "amount must be positive",
		})
		return
	}

	inst := billing_core.UserInstallment{
		ProjectID:   req.ProjectID,
		UnitID:      req.UnitID,
		UserID:      req.UserID,
		Title:       req.Title,
		DueDate:     req.DueDate,
		ShareAmount: req.Amount,
		Status:      billing_core.StatusPending,
		Created:     time.Now(),
	}

	err := s.db.WithContext(c.Request.Context()).Create(&inst).Error
	if err != nil {
		common.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, inst)
}
