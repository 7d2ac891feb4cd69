package condo_service

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/stratafin/condo_service/account"
	"github.com/stratafin/condo_service/authorization"
	"github.com/stratafin/condo_service/common"
	"github.com/stratafin/condo_service/installment"
	"github.com/stratafin/condo_service/journal"
	"github.com/stratafin/condo_service/ledger"
	"github.com/stratafin/condo_service/penalty"
	"github.com/stratafin/condo_service/period"
)

// ApiService mounts its routes on the versioned group.
type ApiService interface {
	Register(rg *gin.RouterGroup)
}

type RegisterHandler func(r *gin.Engine)

// NewRegisterHandler wires every service under /api/v1 and mounts the
// operational endpoints outside the version prefix.
func NewRegisterHandler(
	db *gorm.DB,
	auth *authorization.Authorization,
	log *zap.Logger,
	metrics *common.Metrics,
) RegisterHandler {
	services := []ApiService{
		account.NewAccountService(db, auth),
		journal.NewJournalService(db, auth, log),
		ledger.NewLedgerService(db, auth),
		period.NewPeriodService(db, auth),
		installment.NewInstallmentService(db, auth),
		penalty.NewPenaltyService(db, auth),
	}

	return func(r *gin.Engine) {
		v1 := r.Group("/api/v1")
		for _, svc := range services {
			svc.Register(v1)
		}

		r.GET("/healthz", func(c *gin.Context) {
			sqlDB, err := db.DB()
			if err == nil {
				err = sqlDB.Ping()
			}
			if err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "down"})
				return
			}
			c.JSON(http.StatusOK, gin.H{"status": "up"})
		})
		r.GET("/metrics", metrics.Handler())
	}
}
