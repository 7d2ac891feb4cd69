package installment

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/stratafin/condo_service/billing_core"
	"github.com/stratafin/condo_service/common"
)

type InstallmentRow struct {
	billing_core.UserInstallment
	PaidAmount float64 `json:"paid_amount"`
	Remaining  float64 `json:"remaining"`
}

// InstallmentList returns a project's installments with payments
// preloaded. Status is derived on the fly so an installment that went
// overdue since the last write still reads OVERDUE.
func (s *installmentServiceImpl) InstallmentList(c *gin.Context) {
	projectID, err := strconv.ParseUint(c.Query("project_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "project_id is required"})
		return
	}

	db := s.db.WithContext(c.Request.Context()).
		Model(&billing_core.UserInstallment{}).
		Preload("Payments").
		Where("project_id = ?", projectID)

	if rawUserID := c.Query("user_id"); rawUserID != "" {
		userID, err := strconv.ParseUint(rawUserID, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user_id"})
			return
		}
		db = db.Where("user_id = ?", userID)
	}

	var installments []billing_core.UserInstallment
	err = db.Order("due_date asc, id asc").Find(&installments).Error
	if err != nil {
		common.AbortWithError(c, err)
		return
	}

	now := time.Now()
	rows := make([]InstallmentRow, 0, len(installments))
	for _, inst := range installments {
		paid := inst.Payments.PaidTotal()
		inst.Status = billing_core.DeriveStatus(paid, inst.ShareAmount, inst.DueDate, now)
		rows = append(rows, InstallmentRow{
			UserInstallment: inst,
			PaidAmount:      paid,
			Remaining:       inst.ShareAmount - paid,
		})
	}

	c.JSON(http.StatusOK, gin.H{"data": rows})
}
