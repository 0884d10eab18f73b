package payment

import (
	"testing"

	"github.com/SkylineComputers/api-institute/internal/fees"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to string
		want     bool
	}{
		{fees.StatusCreated, fees.StatusPendingApproval, true},
		{fees.StatusCreated, fees.StatusPaid, true},
		{fees.StatusCreated, fees.StatusFailed, false},
		{fees.StatusPendingApproval, fees.StatusPaid, true},
		{fees.StatusPendingApproval, fees.StatusFailed, true},
		{fees.StatusPendingApproval, fees.StatusCreated, false},
		{fees.StatusPaid, fees.StatusFailed, false},
		{fees.StatusPaid, fees.StatusPendingApproval, false},
		{fees.StatusPaid, fees.StatusCreated, false},
		{fees.StatusFailed, fees.StatusPaid, false},
		{fees.StatusFailed, fees.StatusPendingApproval, false},
		{"", fees.StatusPaid, false},
	}
	for _, tc := range cases {
		if got := CanTransition(tc.from, tc.to); got != tc.want {
			t.Errorf("CanTransition(%q, %q) = %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}

func TestValidMethod(t *testing.T) {
	for _, m := range []string{MethodCash, MethodUPI, MethodBankTransfer, MethodCheque, MethodManual, MethodOther} {
		if !ValidMethod(m) {
			t.Errorf("ValidMethod(%q) = false", m)
		}
	}
	for _, m := range []string{"", "cash", "Card", "NEFT"} {
		if ValidMethod(m) {
			t.Errorf("ValidMethod(%q) = true", m)
		}
	}
}

func TestToLedger(t *testing.T) {
	rows := []Payment{
		{Amount: 5000, Status: fees.StatusPaid},
		{Amount: 3000, Status: fees.StatusPendingApproval},
		{Amount: 2000, Status: fees.StatusFailed},
	}
	ledger := ToLedger(rows)
	if len(ledger) != 3 {
		t.Fatalf("got %d entries, want 3", len(ledger))
	}
	if got := fees.SumPaid(ledger); got != 5000 {
		t.Errorf("SumPaid over ledger = %d, want 5000", got)
	}
}
