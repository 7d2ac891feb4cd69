package journal

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/stratafin/condo_service/accounting_core"
	"github.com/stratafin/condo_service/common"
)

// DocumentDelete removes a TEMPORARY document, reversing its ledger
// effect. PERMANENT documents are rejected.
func (j *journalServiceImpl) DocumentDelete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid document id"})
		return
	}

	err = j.db.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		return accounting_core.NewDocumentMutation(tx).
			ByID(uint(id), true).
			Delete().
			Err()
	})

	if err != nil {
		common.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": id})
}
