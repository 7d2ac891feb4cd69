package billing_core

import "fmt"

// HasPaymentsError blocks a definition delete while real payments
// reference its fan-out.
type HasPaymentsError struct {
	DefinitionID uint  `json:"definition_id"`
	Count        int64 `json:"count"`
}

func (e *HasPaymentsError) Error() string {
	return fmt.Sprintf("definition %d has %d payments, delete is blocked", e.DefinitionID, e.Count)
}
