package installment

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

// DefinitionDelete removes a billed item and its fan-out. Refused as
// soon as any linked installment has received real money, received
// payments must stay reconstructible.
func (s *installmentServiceImpl) DefinitionDelete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid definition id"})
		return
	}

	err = s.db.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		var def billing_core.InstallmentDefinition
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

		var paymentCount int64
		err = tx.Model(&billing_core.PaymentRecord{}).
			Joins("JOIN user_installments ON user_installments.id = payment_records.installment_id").
			Where("user_installments.definition_id = ?", def.ID).
			Where("payment_records.kind = ?", billing_core.RealPayment).
			Count(&paymentCount).
			Error
		if err != nil {
			return err
		}
		if paymentCount > 0 {
			return &billing_core.HasPaymentsError{
				DefinitionID: def.ID,
				Count:        paymentCount,
			}
		}

		err = tx.Where("definition_id = ?", def.ID).
			Delete(&billing_core.UserInstallment{}).
			Error
		if err != nil {
			return err
		}

		return tx.Delete(&def).Error
	})

	if err != nil {
		common.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": true})
}
