package penalty

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/stratafin/condo_service/authorization"
)

type penaltyServiceImpl struct {
	db   *gorm.DB
	auth *authorization.Authorization
}

func (s *penaltyServiceImpl) Register(rg *gin.RouterGroup) {
	rg.GET("/penalties", s.auth.Require(authorization.CapRead), s.PenaltyList)
	rg.PUT("/penalty-settings/:userId", s.auth.Require(authorization.CapAdmin), s.SettingsUpdate)
	rg.POST("/penalty-recalculations/:userId", s.auth.Require(authorization.CapWrite), s.Recalculate)
}

func NewPenaltyService(db *gorm.DB, auth *authorization.Authorization) *penaltyServiceImpl {
	return &penaltyServiceImpl{
		db:   db,
		auth: auth,
	}
}
