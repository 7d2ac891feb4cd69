package billing_core

import (
	"time"
)

// Unit is the weighting key for proportional billing: every unit
// belongs to one project and one user and carries a positive area.
type Unit struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	ProjectID uint      `json:"project_id" gorm:"index"`
	UserID    uint      `json:"user_id" gorm:"index"`
	Name      string    `json:"name"`
	Area      float64   `json:"area"`
	Created   time.Time `json:"created"`
}

// InstallmentDefinition is a project-wide billed item. Creating one
// fans out one UserInstallment per existing unit.
type InstallmentDefinition struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	ProjectID uint      `json:"project_id" gorm:"index"`
	Title     string    `json:"title"`
	DueDate   time.Time `json:"due_date"`
	Amount    float64   `json:"amount"`
	Created   time.Time `json:"created"`
}

type InstallmentStatus string

const (
	StatusPending InstallmentStatus = "PENDING"
	StatusPartial InstallmentStatus = "PARTIAL"
	StatusPaid    InstallmentStatus = "PAID"
	StatusOverdue InstallmentStatus = "OVERDUE"
)

// UserInstallment is one participant's proportional share. Status is
// derived, never set directly. DefinitionID is nil for customized
// (ad-hoc) installments.
type UserInstallment struct {
	ID           uint              `json:"id" gorm:"primarykey"`
	ProjectID    uint              `json:"project_id" gorm:"index"`
	DefinitionID *uint             `json:"definition_id" gorm:"index"`
	UnitID       uint              `json:"unit_id"`
	UserID       uint              `json:"user_id" gorm:"index"`
	Title        string            `json:"title"`
	DueDate      time.Time         `json:"due_date"`
	ShareAmount  float64           `json:"share_amount"`
	Status       InstallmentStatus `json:"status"`
	Created      time.Time         `json:"created"`

	Payments PaymentRecordsList `json:"payments,omitempty" gorm:"foreignKey:InstallmentID"`
}

type PaymentKind string

const (
	// RealPayment counts toward the paid total.
	RealPayment PaymentKind = "real_payment"
	// ReceiptLink only files evidence, it never counts toward totals.
	ReceiptLink PaymentKind = "receipt_link"
)

// PaymentRecord is a tagged variant: money received or evidence filed.
type PaymentRecord struct {
	ID            uint        `json:"id" gorm:"primarykey"`
	InstallmentID uint        `json:"installment_id" gorm:"index"`
	UserID        uint        `json:"user_id" gorm:"index"`
	Kind          PaymentKind `json:"kind"`
	Amount        float64     `json:"amount"`
	PaidAt        time.Time   `json:"paid_at"`
	Desc          string      `json:"desc"`
	ReceiptRef    string      `json:"receipt_ref"`
	Created       time.Time   `json:"created"`
}

type PaymentRecordsList []*PaymentRecord

// PaidTotal sums real payments only.
func (payments PaymentRecordsList) PaidTotal() float64 {
	var total float64
	for _, p := range payments {
		if p.Kind != RealPayment {
			continue
		}
		total += p.Amount
	}
	return total
}

// LatestPaidAt returns the date of the newest real payment, zero when
// none exists.
func (payments PaymentRecordsList) LatestPaidAt() time.Time {
	var latest time.Time
	for _, p := range payments {
		if p.Kind != RealPayment {
			continue
		}
		if p.PaidAt.After(latest) {
			latest = p.PaidAt
		}
	}
	return latest
}

// Penalty is at most one row per installment: recalculation replaces
// the values in place, never appends.
type Penalty struct {
	ID            uint      `json:"id" gorm:"primarykey"`
	InstallmentID uint      `json:"installment_id" gorm:"index:penalty_installment,unique"`
	DaysLate      int       `json:"days_late"`
	DailyRate     float64   `json:"daily_rate"`
	TotalPenalty  float64   `json:"total_penalty"`
	CalculatedAt  time.Time `json:"calculated_at"`
}

type PenaltySetting struct {
	ID                 uint    `json:"id" gorm:"primarykey"`
	UserID             uint    `json:"user_id" gorm:"index:penalty_user,unique"`
	DailyPenaltyAmount float64 `json:"daily_penalty_amount"`
	PenaltyGraceDays   int     `json:"penalty_grace_days"`
}
