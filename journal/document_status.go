package journal

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/stratafin/condo_service/accounting_core"
	"github.com/stratafin/condo_service/authorization"
	"github.com/stratafin/condo_service/common"
)

type DocumentStatusRequest struct {
	Status accounting_core.DocumentStatus `json:"status" binding:"required"`
}

// DocumentSetStatus governs the TEMPORARY/PERMANENT transition. The
// downgrade re-opens a permanent document for edit and is therefore
// written to the audit log.
func (j *journalServiceImpl) DocumentSetStatus(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid document id"})
		return
	}

	var req DocumentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	var doc *accounting_core.AccountingDocument
	var downgraded bool
	err = j.db.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		mut := accounting_core.NewDocumentMutation(tx).
			ByID(uint(id), true)

		if mut.IsExist() {
			downgraded = mut.Data().Status == accounting_core.PermanentDocument &&
				req.Status == accounting_core.TemporaryDocument
		}

		err := mut.SetStatus(req.Status).Err()
		if err != nil {
			return err
		}

		doc = mut.Data()
		return nil
	})

	if err != nil {
		common.AbortWithError(c, err)
		return
	}

	if downgraded {
		j.log.Warn("permanent document downgraded to temporary",
			zap.Uint("document_id", doc.ID),
			zap.Uint("project_id", doc.ProjectID),
			zap.Uint("user_id", authorization.UserID(c)),
		)
	}

	c.JSON(http.StatusOK, doc)
}
