package penalty

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/stratafin/condo_service/billing_core"
	"github.com/stratafin/condo_service/common"
)

// Recalculate redoes one payer's penalties from scratch. Each
// installment with at least one real payment gets exactly one Penalty
// row, updated in place on reruns. Lateness is measured from the
// latest real payment date past the grace window. When the payer has
// no setting the whole call is a no-op reporting zero updates.
func (s *penaltyServiceImpl) Recalculate(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("userId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	var updated int
	err = s.db.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		var setting billing_core.PenaltySetting
		err := tx.Model(&billing_core.PenaltySetting{}).
			Where("user_id = ?", userID).
			Find(&setting).
			Error
		if err != nil {
			return err
		}
		if setting.ID == 0 || setting.DailyPenaltyAmount <= 0 {
			return nil
		}

		var installments []billing_core.UserInstallment
		err = tx.Model(&billing_core.UserInstallment{}).
			Preload("Payments").
			Where("user_id = ?", userID).
			Order("due_date asc, id asc").
			Find(&installments).
			Error
		if err != nil {
			return err
		}

		now := time.Now()
		for i := range installments {
			inst := &installments[i]
			latest := inst.Payments.LatestPaidAt()
			if latest.IsZero() {
				continue
			}

			daysLate := billing_core.DaysLate(inst.DueDate, setting.PenaltyGraceDays, latest)
			total, _ := decimal.NewFromFloat(setting.DailyPenaltyAmount).
				Mul(decimal.NewFromInt(int64(daysLate))).
				Round(2).
				Float64()

			err = upsertPenalty(tx, inst.ID, daysLate, setting.DailyPenaltyAmount, total, now)
			if err != nil {
				return err
			}
			updated++
		}

		return nil
	})

	if err != nil {
		common.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"penalties_updated": updated})
}

// upsertPenalty keeps the one-row-per-installment invariant: the
// existing row is rewritten, a missing one is created.
func upsertPenalty(tx *gorm.DB, installmentID uint, daysLate int, rate, total float64, now time.Time) error {
	var penalty billing_core.Penalty
	err := tx.Model(&billing_core.Penalty{}).
		Where("installment_id = ?", installmentID).
		Find(&penalty).
		Error
	if err != nil {
		return err
	}

	penalty.InstallmentID = installmentID
	penalty.DaysLate = daysLate
	penalty.DailyRate = rate
	penalty.TotalPenalty = total
	penalty.CalculatedAt = now
	return tx.Save(&penalty).Error
}
