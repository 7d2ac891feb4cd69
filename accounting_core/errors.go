package accounting_core

import (
	"encoding/json"
	"fmt"
)

// ValidationError rejects malformed input before any write happens.
type ValidationError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Reason)
}

type NotFoundError struct {
	Entity string `json:"entity"`
	ID     uint   `json:"id"`
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Entity, e.ID)
}

// UnbalancedEntryError carries both totals so the caller can see how far
// off the posting is.
type UnbalancedEntryError struct {
	Debit   float64             `json:"debit"`
	Credit  float64             `json:"credit"`
	Entries DocumentEntriesList `json:"entries,omitempty"`
}

func (e *UnbalancedEntryError) Error() string {
	raw, _ := json.Marshal(e)
	return "entries unbalanced " + string(raw)
}

// CircularReferenceError rejects a re-parent that would close a loop in
// the account tree.
type CircularReferenceError struct {
	AccountID   uint `json:"account_id"`
	NewParentID uint `json:"new_parent_id"`
}

func (e *CircularReferenceError) Error() string {
	return fmt.Sprintf("moving account %d under %d creates a cycle", e.AccountID, e.NewParentID)
}

type ImmutableDocumentError struct {
	DocumentID uint   `json:"document_id"`
	Operation  string `json:"operation"`
}

func (e *ImmutableDocumentError) Error() string {
	return fmt.Sprintf("document %d is permanent, %s requires an explicit downgrade to temporary", e.DocumentID, e.Operation)
}

// HasTransactionsError blocks an account delete while postings still
// reference it.
type HasTransactionsError struct {
	AccountID uint  `json:"account_id"`
	Count     int64 `json:"count"`
}

func (e *HasTransactionsError) Error() string {
	return fmt.Sprintf("account %d has %d transactions, disable it instead of deleting", e.AccountID, e.Count)
}

type DuplicateCodeError struct {
	ProjectID uint        `json:"project_id"`
	Code      AccountCode `json:"code"`
}

func (e *DuplicateCodeError) Error() string {
	return fmt.Sprintf("code %s already taken in project %d", e.Code, e.ProjectID)
}
