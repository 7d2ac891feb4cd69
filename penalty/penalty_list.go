package penalty

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/stratafin/condo_service/billing_core"
	"github.com/stratafin/condo_service/common"
)

// PenaltyList returns the penalties of one payer's installments.
func (s *penaltyServiceImpl) PenaltyList(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Query("user_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id is required"})
		return
	}

	var penalties []billing_core.Penalty
	err = s.db.WithContext(c.Request.Context()).
		Model(&billing_core.Penalty{}).
		Joins("JOIN user_installments ON user_installments.id = penalties.installment_id").
		Where("user_installments.user_id = ?", userID).
		Order("penalties.installment_id asc").
		Find(&penalties).
		Error
	if err != nil {
		common.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": penalties})
}
