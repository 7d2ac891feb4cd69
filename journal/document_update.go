package journal

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/stratafin/condo_service/accounting_core"
	"github.com/stratafin/condo_service/common"
)

type DocumentUpdateRequest struct {
	Title   string         `json:"title"`
	DocDate time.Time      `json:"doc_date"`
	Entries []EntryPayload `json:"entries"`
}

// DocumentUpdate edits a TEMPORARY document. Replaced entries unpost
// the old transactions and repost, so the ledger never drifts from the
// transaction log. PERMANENT documents are rejected.
func (j *journalServiceImpl) DocumentUpdate(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid document id"})
		return
	}

	var req DocumentUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	var doc *accounting_core.AccountingDocument
	err = j.db.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		mut := accounting_core.NewDocumentMutation(tx).
			ByID(uint(id), true)

		if req.Title != "" || !req.DocDate.IsZero() {
			title := req.Title
			if title == "" {
				title = mut.Data().Title
			}
			mut = mut.Retitle(title, req.DocDate)
		}

		if len(req.Entries) != 0 {
			entries := accounting_core.DocumentEntriesList{}
			for _, en := range req.Entries {
				entries = append(entries, &accounting_core.DocumentEntry{
					AccountID: en.AccountID,
					Debit:     en.Debit,
					Credit:    en.Credit,
					Desc:      en.Desc,
				})
			}
			mut = mut.ReplaceEntries(entries)
		}

		err := mut.Err()
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

	c.JSON(http.StatusOK, doc)
}
