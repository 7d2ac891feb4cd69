package ledger

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/stratafin/condo_service/authorization"
)

type ledgerServiceImpl struct {
	db   *gorm.DB
	auth *authorization.Authorization
}

func (l *ledgerServiceImpl) Register(rg *gin.RouterGroup) {
	rg.GET("/ledger/detail", l.auth.Require(authorization.CapRead), l.DetailLedger)
}

func NewLedgerService(db *gorm.DB, auth *authorization.Authorization) *ledgerServiceImpl {
	return &ledgerServiceImpl{
		db:   db,
		auth: auth,
	}
}
