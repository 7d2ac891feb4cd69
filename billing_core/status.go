package billing_core

import "time"

// DeriveStatus is the pure status function of an installment. It is
// evaluated on every payment mutation, never cached.
//
//	paid >= share             -> PAID
//	0 < paid < share          -> PARTIAL
//	paid == 0, now > dueDate  -> OVERDUE
//	otherwise                 -> PENDING
func DeriveStatus(paid, share float64, dueDate, now time.Time) InstallmentStatus {
	switch {
	case paid >= share:
		return StatusPaid
	case paid > 0:
		return StatusPartial
	case now.After(dueDate):
		return StatusOverdue
	default:
		return StatusPending
	}
}
