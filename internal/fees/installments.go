// internal/fees/installments.go
package fees

// Installment is one due of an installment plan. Installments are never
// persisted; they are recomputed from totalFees and the paid total.
type Installment struct {
	Number int    `json:"number"`
	Amount int64  `json:"amount"`
	Status string `json:"status"` // Paid | Pending
}

// PlanInstallments splits totalFees into totalInstallments dues:
// ceil(totalFees/n) for every due except the last, which absorbs the
// remainder so the amounts always sum to totalFees exactly.
func PlanInstallments(totalFees int64, totalInstallments int) ([]Installment, error) {
	if totalInstallments < 2 || totalInstallments > 4 {
		return nil, ErrInvalidInstallments
	}

	n := int64(totalInstallments)
	per := (totalFees + n - 1) / n

	plan := make([]Installment, totalInstallments)
	var allocated int64
	for i := 0; i < totalInstallments-1; i++ {
		plan[i] = Installment{Number: i + 1, Amount: per, Status: AdmissionPending}
		allocated += per
	}
	plan[totalInstallments-1] = Installment{
		Number: totalInstallments,
		Amount: totalFees - allocated,
		Status: AdmissionPending,
	}
	return plan, nil
}

// FullPlan is the degenerate single-due plan used when the payment plan
// is "Full": one installment worth the whole net fee.
func FullPlan(totalFees int64) []Installment {
	return []Installment{{Number: 1, Amount: totalFees, Status: AdmissionPending}}
}

// ResolveInstallmentStatus marks installments "Paid" while totalPaid
// covers their cumulative threshold. A partially covered installment
// stays "Pending"; so does everything after it.
func ResolveInstallmentStatus(plan []Installment, totalPaid int64) []Installment {
	var cumulative int64
	for i := range plan {
		cumulative += plan[i].Amount
		if totalPaid >= cumulative {
			plan[i].Status = AdmissionPaid
		} else {
			plan[i].Status = AdmissionPending
		}
	}
	return plan
}

// NextDue returns the first pending installment, or nil when the plan
// is fully covered.
func NextDue(plan []Installment) *Installment {
	for i := range plan {
		if plan[i].Status == AdmissionPending {
			return &plan[i]
		}
	}
	return nil
}
