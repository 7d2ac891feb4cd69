package common

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/stratafin/condo_service/accounting_core"
	"github.com/stratafin/condo_service/billing_core"
)

// AbortWithError maps the engine error taxonomy onto HTTP statuses.
// Unexpected persistence failures stay opaque to the caller.
func AbortWithError(c *gin.Context, err error) {
	var (
		validation *accounting_core.ValidationError
		unbalanced *accounting_core.UnbalancedEntryError
		notFound   *accounting_core.NotFoundError
		circular   *accounting_core.CircularReferenceError
		immutable  *accounting_core.ImmutableDocumentError
		hasTrans   *accounting_core.HasTransactionsError
		duplicate  *accounting_core.DuplicateCodeError
		hasPays    *billing_core.HasPaymentsError
	)

	switch {
	case errors.As(err, &validation):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.As(err, &unbalanced):
		c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{
			"error":  "entries unbalanced",
			"debit":  unbalanced.Debit,
			"credit": unbalanced.Credit,
		})
	case errors.As(err, &notFound):
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.As(err, &circular),
		errors.As(err, &immutable),
		errors.As(err, &hasTrans),
		errors.As(err, &duplicate),
		errors.As(err, &hasPays):
		c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
