package account

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/stratafin/condo_service/accounting_core"
	"github.com/stratafin/condo_service/common"
)

type AccountMoveRequest struct {
	NewParentID uint `json:"new_parent_id" binding:"required"`
}

// AccountMove re-parents a chart node and recodes its subtree under the
// new parent. The whole recode runs in one transaction with the project
// rows locked, so concurrent reorders serialize; a detected cycle rolls
// everything back untouched.
func (a *accountServiceImpl) AccountMove(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid account id"})
		return
	}

	var req AccountMoveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	var moved accounting_core.Account
	err = a.db.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		var inner error
		moved, inner = moveAccount(tx, uint(id), req.NewParentID)
		return inner
	})

	if err != nil {
		common.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, moved)
}

func moveAccount(tx *gorm.DB, accountID, newParentID uint) (accounting_core.Account, error) {
	var acc accounting_core.Account

	if accountID == newParentID {
		return acc, &accounting_core.CircularReferenceError{
			AccountID:   accountID,
			NewParentID: newParentID,
		}
	}

	locked := tx.Clauses(clause.Locking{
		Strength: "UPDATE",
	})

	err := locked.Model(&accounting_core.Account{}).
		Where("id = ?", accountID).
		Find(&acc).
		Error
	if err != nil {
		return acc, err
	}
	if acc.ID == 0 {
		return acc, &accounting_core.NotFoundError{Entity: "account", ID: accountID}
	}

	var parent accounting_core.Account
	err = locked.Model(&accounting_core.Account{}).
		Where("id = ?", newParentID).
		Where("project_id = ?", acc.ProjectID).
		Find(&parent).
		Error
	if err != nil {
		return acc, err
	}
	if parent.ID == 0 {
		return acc, &accounting_core.NotFoundError{Entity: "account", ID: newParentID}
	}

	err = checkAncestorCycle(tx, acc.ID, &parent)
	if err != nil {
		return acc, err
	}

	if parent.Level != acc.Level-1 {
		return acc, &accounting_core.ValidationError{
			Field:  "new_parent_id",
			Reason: "new parent must sit one level above the moved account",
		}
	}

	newCode, err := nextChildCode(tx, &parent)
	if err != nil {
		return acc, err
	}

	err = recodeSubtree(tx, &acc, newCode)
	if err != nil {
		return acc, err
	}

	acc.Code = newCode
	acc.ParentID = &parent.ID
	err = tx.Model(&accounting_core.Account{}).
		Where("id = ?", acc.ID).
		Updates(map[string]interface{}{
			"parent_id": parent.ID,
		}).Error

	return acc, err
}

// checkAncestorCycle walks the new parent's chain up to the root. When
// the moved account shows up the re-parent would close a loop.
func checkAncestorCycle(tx *gorm.DB, accountID uint, newParent *accounting_core.Account) error {
	current := newParent
	for {
		if current.ID == accountID {
			return &accounting_core.CircularReferenceError{
				AccountID:   accountID,
				NewParentID: newParent.ID,
			}
		}

		if current.ParentID == nil {
			return nil
		}

		next := &accounting_core.Account{}
		err := tx.Model(&accounting_core.Account{}).
			Where("id = ?", *current.ParentID).
			Find(next).
			Error
		if err != nil {
			return err
		}
		if next.ID == 0 {
			return nil
		}
		current = next
	}
}

// nextChildCode finds the lowest free sibling ordinal under the parent.
func nextChildCode(tx *gorm.DB, parent *accounting_core.Account) (accounting_core.AccountCode, error) {
	var siblings []accounting_core.Account
	err := tx.Model(&accounting_core.Account{}).
		Where("project_id = ?", parent.ProjectID).
		Where("parent_id = ?", parent.ID).
		Find(&siblings).
		Error
	if err != nil {
		return "", err
	}

	taken := map[int]bool{}
	for _, s := range siblings {
		taken[s.Code.Ordinal()] = true
	}

	for n := 1; ; n++ {
		if taken[n] {
			continue
		}
		return parent.Code.Child(n)
	}
}

// recodeSubtree rewrites the moved account's code and every descendant
// code to live under newCode. A temporary "~" prefix pass keeps the
// unique (project, code) index collision-free mid-batch.
func recodeSubtree(tx *gorm.DB, acc *accounting_core.Account, newCode accounting_core.AccountCode) error {
	var subtree []accounting_core.Account
	err := tx.Model(&accounting_core.Account{}).
		Where("project_id = ?", acc.ProjectID).
		Where("code = ? OR code LIKE ?", acc.Code, string(acc.Code)+"%").
		Find(&subtree).
		Error
	if err != nil {
		return err
	}

	finals := map[uint]string{}
	for _, node := range subtree {
		finals[node.ID] = string(newCode) + string(node.Code[len(acc.Code):])
	}

	for id, final := range finals {
		err = tx.Model(&accounting_core.Account{}).
			Where("id = ?", id).
			Update("code", "~"+final).
			Error
		if err != nil {
			return err
		}
	}

	for id, final := range finals {
		err = tx.Model(&accounting_core.Account{}).
			Where("id = ?", id).
			Update("code", final).
			Error
		if err != nil {
			return err
		}
	}

	return nil
}
