package fees

import (
	"errors"
	"testing"
)

func TestPlanInstallments_RemainderGoesLast(t *testing.T) {
	// 20,000 over 3 dues: 6,667 + 6,667 + 6,666.
	plan, err := PlanInstallments(20000, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []int64{6667, 6667, 6666}
	if len(plan) != len(want) {
		t.Fatalf("got %d installments, want %d", len(plan), len(want))
	}
	for i, amount := range want {
		if plan[i].Amount != amount {
			t.Errorf("installment %d = %d, want %d", i+1, plan[i].Amount, amount)
		}
		if plan[i].Number != i+1 {
			t.Errorf("installment %d numbered %d", i+1, plan[i].Number)
		}
	}
}

func TestPlanInstallments_SumsExactly(t *testing.T) {
	totals := []int64{1, 99, 100, 13000, 15000, 19999, 20000, 54321}
	for _, total := range totals {
		for n := 2; n <= 4; n++ {
			plan, err := PlanInstallments(total, n)
			if err != nil {
				t.Fatalf("PlanInstallments(%d, %d): %v", total, n, err)
			}
			var sum int64
			for _, due := range plan {
				sum += due.Amount
			}
			if sum != total {
				t.Errorf("PlanInstallments(%d, %d) sums to %d", total, n, sum)
			}
		}
	}
}

func TestPlanInstallments_RejectsBadCount(t *testing.T) {
	for _, n := range []int{0, 1, 5, -2} {
		if _, err := PlanInstallments(10000, n); !errors.Is(err, ErrInvalidInstallments) {
			t.Errorf("PlanInstallments(_, %d): expected ErrInvalidInstallments, got %v", n, err)
		}
	}
}

func TestFullPlan(t *testing.T) {
	plan := FullPlan(15000)
	if len(plan) != 1 || plan[0].Amount != 15000 || plan[0].Number != 1 {
		t.Fatalf("unexpected full plan: %+v", plan)
	}
	if plan[0].Status != AdmissionPending {
		t.Fatalf("full plan should start pending, got %q", plan[0].Status)
	}
}

func TestResolveInstallmentStatus(t *testing.T) {
	plan, err := PlanInstallments(20000, 3) // 6667, 6667, 6666
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cases := []struct {
		name      string
		totalPaid int64
		want      []string
	}{
		{"nothing paid", 0, []string{AdmissionPending, AdmissionPending, AdmissionPending}},
		{"short of first due", 6000, []string{AdmissionPending, AdmissionPending, AdmissionPending}},
		{"first covered", 6667, []string{AdmissionPaid, AdmissionPending, AdmissionPending}},
		{"second partially covered", 13000, []string{AdmissionPaid, AdmissionPending, AdmissionPending}},
		{"two covered", 13334, []string{AdmissionPaid, AdmissionPaid, AdmissionPending}},
		{"fully paid", 20000, []string{AdmissionPaid, AdmissionPaid, AdmissionPaid}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resolved := ResolveInstallmentStatus(append([]Installment(nil), plan...), tc.totalPaid)
			for i, want := range tc.want {
				if resolved[i].Status != want {
					t.Errorf("installment %d = %q, want %q", i+1, resolved[i].Status, want)
				}
			}
		})
	}
}

func TestNextDue(t *testing.T) {
	plan, err := PlanInstallments(20000, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	resolved := ResolveInstallmentStatus(append([]Installment(nil), plan...), 6667)
	next := NextDue(resolved)
	if next == nil || next.Number != 2 {
		t.Fatalf("expected next due #2, got %+v", next)
	}

	resolved = ResolveInstallmentStatus(append([]Installment(nil), plan...), 20000)
	if next := NextDue(resolved); next != nil {
		t.Fatalf("expected no due on a paid plan, got %+v", next)
	}
}
