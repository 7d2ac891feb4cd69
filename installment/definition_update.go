package installment

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/stratafin/condo_service/accounting_core"
	"github.com/stratafin/condo_service/billing_core"
	"github.com/stratafin/condo_service/common"
)

type DefinitionUpdateRequest struct {
	Title   string    `json:"title"`
	DueDate time.Time `json:"due_date"`
	Amount  float64   `json:"amount"`
}

// DefinitionUpdate edits a billed item and re-derives every linked
// share from the current total project area. Allocations always track
// current ownership: units added or removed since creation shift the
// proportions on the next edit.
func (s *installmentServiceImpl) DefinitionUpdate(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid definition id"})
		return
	}

	var req DefinitionUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	var def billing_core.InstallmentDefinition
	var updated int
	err = s.db.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Model(&billing_core.InstallmentDefinition{}).
			Where("id = ?", id).
			Find(&def).
			Error
		if err != nil {
			return err
		}
		if def.ID == 0 {
			return &accounting_core.NotFoundError{Entity: "installment definition", ID: uint(id)}
		}

		if req.Title != "" {
			def.Title = req.Title
		}
		if !req.DueDate.IsZero() {
			def.DueDate = req.DueDate
		}
		if req.Amount > 0 {
			def.Amount = req.Amount
		}

		err = tx.Save(&def).Error
		if err != nil {
			return err
		}

		updated, err = rederiveShares(tx, &def)
		return err
	})

	if err != nil {
		common.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"definition":           def,
		"installments_updated": updated,
	})
}

// rederiveShares recomputes every linked share from the current unit
// areas and refreshes the derived statuses against the new amounts.
func rederiveShares(tx *gorm.DB, def *billing_core.InstallmentDefinition) (int, error) {
	var units []billing_core.Unit
	err := tx.Model(&billing_core.Unit{}).
		Where("project_id = ?", def.ProjectID).
		Find(&units).
		Error
	if err != nil {
		return 0, err
	}

	areaByUnit := map[uint]float64{}
	var totalArea float64
	for _, u := range units {
		areaByUnit[u.ID] = u.Area
		totalArea += u.Area
	}

	var installments []billing_core.UserInstallment
	err = tx.Model(&billing_core.UserInstallment{}).
		Where("definition_id = ?", def.ID).
		Find(&installments).
		Error
	if err != nil {
		return 0, err
	}

	now := time.Now()
	updated := 0
	for i := range installments {
		inst := &installments[i]
		inst.ShareAmount = billing_core.ShareAmount(def.Amount, areaByUnit[inst.UnitID], totalArea)
		inst.Title = def.Title
		inst.DueDate = def.DueDate

		err = tx.Save(inst).Error
		if err != nil {
			return updated, err
		}

		err = refreshStatus(tx, inst, now)
		if err != nil {
			return updated, err
		}
		updated++
	}

	return updated, nil
}
