package installment

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/stratafin/condo_service/accounting_core"
	"github.com/stratafin/condo_service/billing_core"
	"github.com/stratafin/condo_service/common"
)

type ReceiptAttachRequest struct {
	ReceiptRef string `json:"receipt_ref"`
	Desc       string `json:"desc"`
}

// ReceiptAttach files payment evidence against an installment. The
// record is a receipt_link variant: it carries no amount and never
// moves the paid total or the derived status.
func (s *installmentServiceImpl) ReceiptAttach(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid installment id"})
		return
	}

	var req ReceiptAttachRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}
	if req.ReceiptRef == "" {
		req.ReceiptRef = uuid.NewString()
	}

	var record billing_core.PaymentRecord
	err = s.db.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		var inst billing_core.UserInstallment
		err := tx.Model(&billing_core.UserInstallment{}).
			Where("id = ?", id).
			Find(&inst).
			Error
		if err != nil {
			return err
		}
		if inst.ID == 0 {
			return &accounting_core.NotFoundError{Entity: "installment", ID: uint(id)}
		}

		record = billing_core.PaymentRecord{
			InstallmentID: inst.ID,
			UserID:        inst.UserID,
			Kind:          billing_core.ReceiptLink,
			Amount:        0,
			PaidAt:        time.Now(),
			Desc:          req.Desc,
			ReceiptRef:    req.ReceiptRef,
			Created:       time.Now(),
		}
		return tx.Create(&record).Error
	})

	if err != nil {
		common.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"receipt": record})
}
