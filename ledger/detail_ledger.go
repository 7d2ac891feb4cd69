package ledger

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/stratafin/condo_service/accounting_core"
	"github.com/stratafin/condo_service/common"
)

// DetailLedger replays one account's transactions in chronological
// order into a running balance, sign-adjusted for the account type.
func (l *ledgerServiceImpl) DetailLedger(c *gin.Context) {
	accountID, err := strconv.ParseUint(c.Query("account_id"), 10, 64)
	if err != nil || accountID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "account_id is required"})
		return
	}

	var from, to time.Time
	if v := c.Query("from"); v != "" {
		from, err = time.Parse(time.RFC3339, v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "from must be RFC3339"})
			return
		}
	}
	if v := c.Query("to"); v != "" {
		to, err = time.Parse(time.RFC3339, v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "to must be RFC3339"})
			return
		}
	}

	rows := []*accounting_core.DetailLedgerRow{}
	view := accounting_core.NewDetailLedgerView(l.db.WithContext(c.Request.Context())).
		Account(uint(accountID)).
		TimeRange(from, to)

	err = view.Iterate(func(row *accounting_core.DetailLedgerRow) error {
		rows = append(rows, row)
		return nil
	})
	if err != nil {
		common.AbortWithError(c, err)
		return
	}

	var closing float64
	if len(rows) > 0 {
		closing = rows[len(rows)-1].RunningBalance
	}

	c.JSON(http.StatusOK, gin.H{
		"data":            rows,
		"closing_balance": closing,
	})
}
