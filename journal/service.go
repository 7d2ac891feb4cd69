package journal

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/stratafin/condo_service/authorization"
)

type journalServiceImpl struct {
	db   *gorm.DB
	auth *authorization.Authorization
	log  *zap.Logger
}

func (j *journalServiceImpl) Register(rg *gin.RouterGroup) {
	rg.POST("/documents", j.auth.Require(authorization.CapWrite), j.DocumentCreate)
	rg.PUT("/documents/:id", j.auth.Require(authorization.CapWrite), j.DocumentUpdate)
	rg.PATCH("/documents/:id/status", j.auth.Require(authorization.CapAdmin), j.DocumentSetStatus)
	rg.DELETE("/documents/:id", j.auth.Require(authorization.CapWrite), j.DocumentDelete)
}

func NewJournalService(db *gorm.DB, auth *authorization.Authorization, log *zap.Logger) *journalServiceImpl {
	return &journalServiceImpl{
		db:   db,
		auth: auth,
		log:  log,
	}
}
