package billing_core_test

import (
	"testing"
	"time"

	"github.com/zeebo/assert"

	"github.com/stratafin/condo_service/billing_core"
)

func TestDaysLate(t *testing.T) {
	due := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	// due Jan 1, 5 grace days, paid Jan 10: 4 chargeable days
	paid := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 4, billing_core.DaysLate(due, 5, paid))

	// inside the grace window nothing is charged
	assert.Equal(t, 0, billing_core.DaysLate(due, 5, time.Date(2024, 1, 6, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 0, billing_core.DaysLate(due, 5, time.Date(2024, 1, 4, 0, 0, 0, 0, time.UTC)))

	// paid before due
	assert.Equal(t, 0, billing_core.DaysLate(due, 0, time.Date(2023, 12, 20, 0, 0, 0, 0, time.UTC)))

	// zero grace counts from the due date itself
	assert.Equal(t, 3, billing_core.DaysLate(due, 0, time.Date(2024, 1, 4, 0, 0, 0, 0, time.UTC)))

	// partial days truncate
	assert.Equal(t, 0, billing_core.DaysLate(due, 0, time.Date(2024, 1, 1, 18, 0, 0, 0, time.UTC)))
}
