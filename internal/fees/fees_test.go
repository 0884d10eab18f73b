package fees

import (
	"errors"
	"reflect"
	"testing"
)

func TestComputeSummary_FullPaymentClearsBalance(t *testing.T) {
	// Course fee 15,000, no discount, one paid entry of 15,000.
	src := FeeSource{CourseFees: 15000}
	ledger := []LedgerEntry{{Amount: 15000, Status: StatusPaid}}

	s, err := ComputeSummary(src, ledger)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.TotalFees != 15000 || s.TotalPaid != 15000 || s.BalanceDue != 0 {
		t.Fatalf("unexpected totals: %+v", s)
	}
	if s.PaymentStatus != AdmissionPaid {
		t.Fatalf("expected status %q, got %q", AdmissionPaid, s.PaymentStatus)
	}
}

func TestComputeSummary_DiscountAndPartialPayments(t *testing.T) {
	// Course fee 15,000, discount 2,000, two approved payments of 5,000.
	src := FeeSource{CourseFees: 15000, Discount: 2000}
	ledger := []LedgerEntry{
		{Amount: 5000, Status: StatusPaid},
		{Amount: 5000, Status: StatusPaid},
	}

	s, err := ComputeSummary(src, ledger)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.TotalFees != 13000 {
		t.Errorf("totalFees = %d, want 13000", s.TotalFees)
	}
	if s.TotalPaid != 10000 {
		t.Errorf("totalPaid = %d, want 10000", s.TotalPaid)
	}
	if s.BalanceDue != 3000 {
		t.Errorf("balanceDue = %d, want 3000", s.BalanceDue)
	}
	if s.PaymentStatus != AdmissionPartiallyPaid {
		t.Errorf("status = %q, want %q", s.PaymentStatus, AdmissionPartiallyPaid)
	}
}

func TestComputeSummary_OnlyPaidRowsCount(t *testing.T) {
	src := FeeSource{CourseFees: 20000}
	ledger := []LedgerEntry{
		{Amount: 6000, Status: StatusPendingApproval},
		{Amount: 4000, Status: StatusFailed},
		{Amount: 1000, Status: StatusCreated},
		{Amount: 5000, Status: StatusPaid},
	}

	s, err := ComputeSummary(src, ledger)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.TotalPaid != 5000 {
		t.Errorf("totalPaid = %d, want 5000 (non-paid rows must not count)", s.TotalPaid)
	}
	if s.BalanceDue != 15000 {
		t.Errorf("balanceDue = %d, want 15000", s.BalanceDue)
	}
}

func TestComputeSummary_DiscountLargerThanGross(t *testing.T) {
	src := FeeSource{CourseFees: 10000, Discount: 12000}

	s, err := ComputeSummary(src, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.TotalFees != 0 {
		t.Errorf("totalFees = %d, want 0 (clamped)", s.TotalFees)
	}
	if s.BalanceDue != 0 {
		t.Errorf("balanceDue = %d, want 0", s.BalanceDue)
	}
	// Nothing paid, so the admission is still pending even at zero due.
	if s.PaymentStatus != AdmissionPending {
		t.Errorf("status = %q, want %q", s.PaymentStatus, AdmissionPending)
	}
}

func TestComputeSummary_SnapshotFallback(t *testing.T) {
	// Course deleted: CourseFees unresolved, snapshot carries the fee.
	src := FeeSource{CourseFees: 0, FinalFees: 18000, Discount: 3000}

	s, err := ComputeSummary(src, []LedgerEntry{{Amount: 15000, Status: StatusPaid}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.GrossFees != 18000 {
		t.Errorf("grossFees = %d, want snapshot 18000", s.GrossFees)
	}
	if s.PaymentStatus != AdmissionPaid {
		t.Errorf("status = %q, want %q", s.PaymentStatus, AdmissionPaid)
	}
}

func TestComputeSummary_MissingFeeReference(t *testing.T) {
	src := FeeSource{}

	_, err := ComputeSummary(src, nil)
	if !errors.Is(err, ErrMissingFeeReference) {
		t.Fatalf("expected ErrMissingFeeReference, got %v", err)
	}
}

func TestComputeSummary_Overpayment(t *testing.T) {
	src := FeeSource{CourseFees: 10000}
	ledger := []LedgerEntry{{Amount: 12000, Status: StatusPaid}}

	s, err := ComputeSummary(src, ledger)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.BalanceDue != 0 {
		t.Errorf("balanceDue = %d, want 0 (clamped)", s.BalanceDue)
	}
	if s.PaymentStatus != AdmissionPaid {
		t.Errorf("status = %q, want %q", s.PaymentStatus, AdmissionPaid)
	}
}

func TestComputeSummary_IsPure(t *testing.T) {
	src := FeeSource{CourseFees: 15000, Discount: 500}
	ledger := []LedgerEntry{
		{Amount: 5000, Status: StatusPaid},
		{Amount: 2500, Status: StatusPendingApproval},
	}

	first, err := ComputeSummary(src, ledger)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := ComputeSummary(src, ledger)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("summary not stable across reads: %+v vs %+v", first, second)
	}
}

func TestDeriveStatus_Table(t *testing.T) {
	cases := []struct {
		name      string
		totalPaid int64
		totalFees int64
		want      string
	}{
		{"nothing paid", 0, 10000, AdmissionPending},
		{"nothing paid, zero fee", 0, 0, AdmissionPending},
		{"partial", 4000, 10000, AdmissionPartiallyPaid},
		{"exact", 10000, 10000, AdmissionPaid},
		{"over", 11000, 10000, AdmissionPaid},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := deriveStatus(tc.totalPaid, tc.totalFees); got != tc.want {
				t.Errorf("deriveStatus(%d, %d) = %q, want %q", tc.totalPaid, tc.totalFees, got, tc.want)
			}
		})
	}
}
