package period

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/stratafin/condo_service/authorization"
)

type periodServiceImpl struct {
	db   *gorm.DB
	auth *authorization.Authorization
}

func (p *periodServiceImpl) Register(rg *gin.RouterGroup) {
	rg.GET("/opening-entry/balances", p.auth.Require(authorization.CapRead), p.OpeningBalances)
	rg.POST("/opening-entry", p.auth.Require(authorization.CapAdmin), p.OpeningCreate)
	rg.GET("/closing-entry/balances", p.auth.Require(authorization.CapRead), p.ClosingBalances)
	rg.POST("/closing-entry", p.auth.Require(authorization.CapAdmin), p.ClosingCreate)
}

func NewPeriodService(db *gorm.DB, auth *authorization.Authorization) *periodServiceImpl {
	return &periodServiceImpl{
		db:   db,
		auth: auth,
	}
}
