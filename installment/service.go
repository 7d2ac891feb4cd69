package installment

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/stratafin/condo_service/authorization"
	"github.com/stratafin/condo_service/billing_core"
)

type installmentServiceImpl struct {
	db   *gorm.DB
	auth *authorization.Authorization
}

func (s *installmentServiceImpl) Register(rg *gin.RouterGroup) {
	rg.GET("/installments", s.auth.Require(authorization.CapRead), s.InstallmentList)
	rg.POST("/installments", s.auth.Require(authorization.CapWrite), s.InstallmentCreate)
	rg.POST("/installment-definitions", s.auth.Require(authorization.CapWrite), s.DefinitionCreate)
	rg.PUT("/installment-definitions/:id", s.auth.Require(authorization.CapWrite), s.DefinitionUpdate)
	rg.DELETE("/installment-definitions/:id", s.auth.Require(authorization.CapWrite), s.DefinitionDelete)
	rg.POST("/payments", s.auth.Require(authorization.CapWrite), s.PaymentApply)
	rg.POST("/installments/:id/receipts", s.auth.Require(authorization.CapWrite), s.ReceiptAttach)
}

func NewInstallmentService(db *gorm.DB, auth *authorization.Authorization) *installmentServiceImpl {
	return &installmentServiceImpl{
		db:   db,
		auth: auth,
	}
}

// refreshStatus re-derives one installment's status from its payments.
// Called after every payment mutation, the stored value is never
// trusted to stay fresh on its own.
func refreshStatus(tx *gorm.DB, inst *billing_core.UserInstallment, now time.Time) error {
	var payments billing_core.PaymentRecordsList
	err := tx.Model(&billing_core.PaymentRecord{}).
		Where("installment_id = ?", inst.ID).
		Find(&payments).
		Error
	if err != nil {
		return err
	}

	status := billing_core.DeriveStatus(payments.PaidTotal(), inst.ShareAmount, inst.DueDate, now)
	if status == inst.Status {
		return nil
	}

	inst.Status = status
	return tx.Model(&billing_core.UserInstallment{}).
		Where("id = ?", inst.ID).
		Update("status", status).
		Error
}
