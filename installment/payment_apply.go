package installment

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/stratafin/condo_service/accounting_core"
	"github.com/stratafin/condo_service/billing_core"
	"github.com/stratafin/condo_service/common"
)

type PaymentApplyRequest struct {
	ProjectID uint      `json:"project_id" binding:"required"`
	UserID    uint      `json:"user_id" binding:"required"`
	Amount    float64   `json:"amount" binding:"required"`
	PaidAt    time.Time `json:"paid_at"`
	Desc      string    `json:"desc"`
}

// PaymentApply takes one lump-sum payment and spreads it across the
// payer's outstanding installments, oldest due date first. One
// PaymentRecord is written per touched installment so the audit trail
// shows exactly how the money landed. Whatever cannot be placed is
// returned as remainder, never silently swallowed.
func (s *installmentServiceImpl) PaymentApply(c *gin.Context) {
	var req PaymentApplyRequest
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
	paidAt := req.PaidAt
	if paidAt.IsZero() {
		paidAt = time.Now()
	}

	var allocations []billing_core.Allocation
	var remainder float64
	err := s.db.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		var installments []billing_core.UserInstallment
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Model(&billing_core.UserInstallment{}).
			Preload("Payments").
			Where("project_id = ?", req.ProjectID).
			Where("user_id = ?", req.UserID).
			Where("status <> ?", billing_core.StatusPaid).
			Order("due_date asc, id asc").
			Find(&installments).
			Error
		if err != nil {
			return err
		}

		byID := map[uint]*billing_core.UserInstallment{}
		outstanding := make([]billing_core.OutstandingInstallment, 0, len(installments))
		for i := range installments {
			inst := &installments[i]
			byID[inst.ID] = inst
			outstanding = append(outstanding, billing_core.OutstandingInstallment{
				InstallmentID: inst.ID,
				DueDate:       inst.DueDate.Unix(),
				Remaining:     inst.ShareAmount - inst.Payments.PaidTotal(),
			})
		}

		allocations, remainder = billing_core.Allocate(req.Amount, outstanding)

		now := time.Now()
		for _, alloc := range allocations {
			record := billing_core.PaymentRecord{
				InstallmentID: alloc.InstallmentID,
				UserID:        req.UserID,
				Kind:          billing_core.RealPayment,
				Amount:        alloc.Applied,
				PaidAt:        paidAt,
				Desc:          req.Desc,
				Created:       now,
			}
			err = tx.Create(&record).Error
			if err != nil {
				return err
			}

			err = refreshStatus(tx, byID[alloc.InstallmentID], now)
			if err != nil {
				return err
			}
		}

		return nil
	})

	if err != nil {
		common.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"allocations": allocations,
		"remainder":   remainder,
	})
}
