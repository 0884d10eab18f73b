// internal/fees/fees.go
package fees

import "errors"

// Lifecycle statuses of a single payment row.
const (
	StatusCreated         = "created"
	StatusPendingApproval = "pending_approval"
	StatusPaid            = "paid"
	StatusFailed          = "failed"
)

// Admission-level payment status, derived from the ledger on every read.
const (
	AdmissionPaid          = "Paid"
	AdmissionPartiallyPaid = "Partially Paid"
	AdmissionPending       = "Pending"
)

// Payment plans.
const (
	PlanFull        = "Full"
	PlanInstallment = "Installment"
)

var (
	// ErrMissingFeeReference means neither the course fee nor the
	// FinalFees snapshot on the admission resolves to a usable amount.
	// Callers must surface "fee data unavailable", never a zero total.
	ErrMissingFeeReference = errors.New("fee data unavailable for admission")

	ErrInvalidInstallments = errors.New("totalInstallments must be between 2 and 4")
)

// FeeSource carries the fee inputs of one admission. CourseFees is 0
// when the course no longer resolves; FinalFees is the snapshot taken
// at admission time.
type FeeSource struct {
	CourseFees int64
	FinalFees  int64
	Discount   int64
}

// LedgerEntry is the slice of a payment row the calculator cares about.
type LedgerEntry struct {
	Amount int64
	Status string
}

// Summary is the aggregate fee view of one admission. All amounts are
// whole rupees.
type Summary struct {
	GrossFees     int64  `json:"grossFees"`
	Discount      int64  `json:"discount"`
	TotalFees     int64  `json:"totalFees"`
	TotalPaid     int64  `json:"totalPaid"`
	BalanceDue    int64  `json:"balanceDue"`
	PaymentStatus string `json:"paymentStatus"`
}

// ResolveGross picks the gross fee for an admission: the live course
// fee when the course still exists, otherwise the snapshot.
func ResolveGross(src FeeSource) (int64, error) {
	if src.CourseFees > 0 {
		return src.CourseFees, nil
	}
	if src.FinalFees > 0 {
		return src.FinalFees, nil
	}
	return 0, ErrMissingFeeReference
}

// SumPaid totals the ledger entries with status "paid". Every other
// status is kept for history but never counts toward totals.
func SumPaid(ledger []LedgerEntry) int64 {
	var total int64
	for _, e := range ledger {
		if e.Status == StatusPaid {
			total += e.Amount
		}
	}
	return total
}

// ComputeSummary derives the full fee view for one admission from its
// fee source and the unfiltered payment ledger. Pure: callers may
// invoke it as often as they like for the same snapshot.
func ComputeSummary(src FeeSource, ledger []LedgerEntry) (Summary, error) {
	return SummaryFromTotals(src, SumPaid(ledger))
}

// SummaryFromTotals builds the summary from an already-aggregated paid
// total, for callers that sum in SQL instead of walking rows.
func SummaryFromTotals(src FeeSource, totalPaid int64) (Summary, error) {
	gross, err := ResolveGross(src)
	if err != nil {
		return Summary{}, err
	}

	totalFees := gross - src.Discount
	if totalFees < 0 {
		totalFees = 0
	}
	balanceDue := totalFees - totalPaid
	if balanceDue < 0 {
		balanceDue = 0
	}

	return Summary{
		GrossFees:     gross,
		Discount:      src.Discount,
		TotalFees:     totalFees,
		TotalPaid:     totalPaid,
		BalanceDue:    balanceDue,
		PaymentStatus: deriveStatus(totalPaid, totalFees),
	}, nil
}

func deriveStatus(totalPaid, totalFees int64) string {
	switch {
	case totalPaid == 0:
		return AdmissionPending
	case totalPaid >= totalFees:
		return AdmissionPaid
	default:
		return AdmissionPartiallyPaid
	}
}
