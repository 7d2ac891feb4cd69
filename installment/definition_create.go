package installment

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/stratafin/condo_service/accounting_core"
	"github.com/stratafin/condo_service/billing_core"
	"github.com/stratafin/condo_service/common"
)

type DefinitionCreateRequest struct {
	ProjectID uint      `json:"project_id" binding:"required"`
	Title     string    `json:"title" binding:"required"`
	DueDate   time.Time `json:"due_date" binding:"required"`
	Amount    float64   `json:"amount" binding:"required"`
}

// DefinitionCreate stores a billed item and fans out one
// UserInstallment per existing unit, each with its area-proportional
// share. A project without units (or with zero total area) still gets
// the definition, with zero fan-out reported back.
func (s *installmentServiceImpl) DefinitionCreate(c *gin.Context) {
	var req DefinitionCreateRequest
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

	var def billing_core.InstallmentDefinition
	var created int
	err := s.db.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		def = billing_core.InstallmentDefinition{
			ProjectID: req.ProjectID,
			Title:     req.Title,
			DueDate:   req.DueDate,
			Amount:    req.Amount,
			Created:   time.Now(),
		}
		err := tx.Create(&def).Error
		if err != nil {
			return err
		}

		created, err = fanOut(tx, &def)
		return err
	})

	if err != nil {
		common.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"definition":           def,
		"installments_created": created,
	})
}

// fanOut creates one installment per unit, weighted by area over the
// current total project area.
func fanOut(tx *gorm.DB, def *billing_core.InstallmentDefinition) (int, error) {
	var units []billing_core.Unit
	err := tx.Model(&billing_core.Unit{}).
		Where("project_id = ?", def.ProjectID).
		Find(&units).
		Error
	if err != nil {
		return 0, err
	}

	var totalArea float64
	for _, u := range units {
		totalArea += u.Area
	}

	if len(units) == 0 || totalArea <= 0 {
		return 0, nil
	}

	created := 0
	for _, u := range units {
		inst := billing_core.UserInstallment{
			ProjectID:    def.ProjectID,
			DefinitionID: &def.ID,
			UnitID:       u.ID,
			UserID:       u.UserID,
			Title:        def.Title,
			DueDate:      def.DueDate,
			ShareAmount:  billing_core.ShareAmount(def.Amount, u.Area, totalArea),
			Status:       billing_core.StatusPending,
			Created:      time.Now(),
		}
		err = tx.Create(&inst).Error
		if err != nil {
			return created, err
		}
		created++
	}

	return created, nil
}
