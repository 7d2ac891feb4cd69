package billing_core_test

import (
	"testing"
	"time"

	"github.com/zeebo/assert"

	"github.com/stratafin/condo_service/billing_core"
)

func TestDeriveStatus(t *testing.T) {
	due := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	before := due.AddDate(0, 0, -10)
	after := due.AddDate(0, 0, 10)

	assert.Equal(t, billing_core.StatusPending, billing_core.DeriveStatus(0, 100, due, before))
	assert.Equal(t, billing_core.StatusPartial, billing_core.DeriveStatus(40, 100, due, before))
	assert.Equal(t, billing_core.StatusPaid, billing_core.DeriveStatus(100, 100, due, before))
	assert.Equal(t, billing_core.StatusOverdue, billing_core.DeriveStatus(0, 100, due, after))

	// paid in full stays PAID even past due
	assert.Equal(t, billing_core.StatusPaid, billing_core.DeriveStatus(100, 100, due, after))
	// overpaid is still PAID
	assert.Equal(t, billing_core.StatusPaid, billing_core.DeriveStatus(120, 100, due, after))
	// a partial payment past due still reads PARTIAL, not OVERDUE
	assert.Equal(t, billing_core.StatusPartial, billing_core.DeriveStatus(40, 100, due, after))
}

func TestPaidTotalIgnoresReceipts(t *testing.T) {
	payments := billing_core.PaymentRecordsList{
		{Kind: billing_core.RealPayment, Amount: 60},
		{Kind: billing_core.ReceiptLink, Amount: 0},
		{Kind: billing_core.RealPayment, Amount: 40},
	}

	assert.Equal(t, 100.0, payments.PaidTotal())
}

func TestLatestPaidAt(t *testing.T) {
	early := time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC)
	late := time.Date(2025, 2, 5, 0, 0, 0, 0, time.UTC)

	payments := billing_core.PaymentRecordsList{
		{Kind: billing_core.RealPayment, Amount: 10, PaidAt: late},
		{Kind: billing_core.RealPayment, Amount: 10, PaidAt: early},
		{Kind: billing_core.ReceiptLink, PaidAt: late.AddDate(0, 1, 0)},
	}

	assert.True(t, payments.LatestPaidAt().Equal(late))
	assert.True(t, billing_core.PaymentRecordsList{}.LatestPaidAt().IsZero())
}
