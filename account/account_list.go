package account

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/stratafin/condo_service/accounting_core"
)

// AccountList returns the project chart ordered by code, optionally
// scoped to a fiscal year.
func (a *accountServiceImpl) AccountList(c *gin.Context) {
	projectID, err := strconv.ParseUint(c.Query("project_id"), 10, 64)
	if err != nil || projectID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "project_id is required"})
		return
	}

	query := a.db.WithContext(c.Request.Context()).
		Model(&accounting_core.Account{}).
		Where("project_id = ?", projectID)

	if fy := c.Query("fiscal_year_id"); fy != "" {
		fyID, err := strconv.ParseUint(fy, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid fiscal_year_id"})
			return
		}
		query = query.Where("fiscal_year_id = ?", fyID)
	}

	var accounts []accounting_core.Account
	err = query.Order("code asc").Find(&accounts).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": accounts})
}
