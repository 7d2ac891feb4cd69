package billing_core

import (
	"sort"

	"github.com/shopspring/decimal"
)

// ShareAmount computes one unit's proportional share of a billed
// amount, rounded to currency cents. Decimal arithmetic keeps the
// per-unit rounding drift inside the documented epsilon.
func ShareAmount(amount, area, totalArea float64) float64 {
	if totalArea <= 0 {
		return 0
	}

	share := decimal.NewFromFloat(amount).
		Mul(decimal.NewFromFloat(area)).
		Div(decimal.NewFromFloat(totalArea)).
		Round(2)

	f, _ := share.Float64()
	return f
}

// OutstandingInstallment is the allocation input: an installment id,
// its due date and the unpaid remainder.
type OutstandingInstallment struct {
	InstallmentID uint
	DueDate       int64 // unix seconds, used only for ordering
	Remaining     float64
}

// Allocation is one applied slice of a lump-sum payment.
type Allocation struct {
	InstallmentID uint    `json:"installment_id"`
	Applied       float64 `json:"applied"`
}

// Allocate distributes a lump-sum payment across outstanding
// installments, oldest due date first, filling each remainder before
// moving on. The un-allocatable remainder is returned, never dropped.
func Allocate(amount float64, outstanding []OutstandingInstallment) ([]Allocation, float64) {
	sorted := make([]OutstandingInstallment, len(outstanding))
	copy(sorted, outstanding)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].DueDate < sorted[j].DueDate
	})

	left := decimal.NewFromFloat(amount)
	zero := decimal.Zero
	allocations := []Allocation{}

	for _, o := range sorted {
		if left.LessThanOrEqual(zero) {
			break
		}
		remaining := decimal.NewFromFloat(o.Remaining)
		if remaining.LessThanOrEqual(zero) {
			continue
		}

		applied := decimal.Min(left, remaining).Round(2)
		left = left.Sub(applied)

		f, _ := applied.Float64()
		allocations = append(allocations, Allocation{
			InstallmentID: o.InstallmentID,
			Applied:       f,
		})
	}

	remainder, _ := left.Round(2).Float64()
	return allocations, remainder
}
