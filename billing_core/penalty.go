package billing_core

import "time"

// DaysLate counts whole days between the grace-adjusted due date and
// the payment date. Payments inside the grace window yield zero.
func DaysLate(dueDate time.Time, graceDays int, paidAt time.Time) int {
	graceDate := dueDate.AddDate(0, 0, graceDays)
	if !paidAt.After(graceDate) {
		return 0
	}
	return int(paidAt.Sub(graceDate).Hours() / 24)
}
