package penalty

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/stratafin/condo_service/accounting_core"
	"github.com/stratafin/condo_service/billing_core"
	"github.com/stratafin/condo_service/common"
)

type SettingsUpdateRequest struct {
	DailyPenaltyAmount float64 `json:"daily_penalty_amount"`
	PenaltyGraceDays   int     `json:"penalty_grace_days"`
}

// SettingsUpdate upserts one payer's penalty configuration. A rate of
// zero or less is rejected here, disabling penalties is done by never
// creating a setting, not by storing a degenerate one.
func (s *penaltyServiceImpl) SettingsUpdate(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("userId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	var req SettingsUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	if req.DailyPenaltyAmount <= 0 {
		common.AbortWithError(c, &accounting_core.ValidationError{
			Field:  "daily_penalty_amount",
			Reason: "daily penalty amount must be positive",
		})
		return
	}
	if req.PenaltyGraceDays < 0 {
		common.AbortWithError(c, &accounting_core.ValidationError{
			Field:  "penalty_grace_days",
			Reason: "grace days cannot be negative",
		})
		return
	}

	var setting billing_core.PenaltySetting
	err = s.db.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Model(&billing_core.PenaltySetting{}).
			Where("user_id = ?", userID).
			Find(&setting).
			Error
		if err != nil {
			return err
		}

		setting.UserID = uint(userID)
		setting.DailyPenaltyAmount = req.DailyPenaltyAmount
		setting.PenaltyGraceDays = req.PenaltyGraceDays
		return tx.Save(&setting).Error
	})

	if err != nil {
		common.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"setting": setting})
}
