package account

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/stratafin/condo_service/authorization"
)

type accountServiceImpl struct {
	db   *gorm.DB
	auth *authorization.Authorization
}

// Register mounts the chart-of-accounts routes. Chart mutation is an
// admin capability, listing needs read.
func (a *accountServiceImpl) Register(rg *gin.RouterGroup) {
	rg.GET("/accounts", a.auth.Require(authorization.CapRead), a.AccountList)
	rg.POST("/accounts", a.auth.Require(authorization.CapAdmin), a.AccountCreate)
	rg.PUT("/accounts/:id", a.auth.Require(authorization.CapAdmin), a.AccountUpdate)
	rg.PUT("/accounts/:id/move", a.auth.Require(authorization.CapAdmin), a.AccountMove)
	rg.DELETE("/accounts/:id", a.auth.Require(authorization.CapAdmin), a.AccountDelete)
}

func NewAccountService(db *gorm.DB, auth *authorization.Authorization) *accountServiceImpl {
	return &accountServiceImpl{
		db:   db,
		auth: auth,
	}
}
