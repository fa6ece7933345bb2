package game

import "testing"

func TestTakeEmergencyLoan(t *testing.T) {
	c := NewCompany("Heidi")
	c.Balance = -1200

	c.TakeEmergencyLoan()
	if c.Balance != -1200+EmergencyLoanAmount {
		t.Fatalf("balance=%d, want %d", c.Balance, -1200+EmergencyLoanAmount)
	}
	if len(c.Loans) != 1 {
		t.Fatalf("expected one loan, got %d", len(c.Loans))
	}
	l := c.Loans[0]
	if l.Amount != 5000 || l.MonthsRemaining != 3 || l.MonthlyPayment != 2000 {
		t.Fatalf("unexpected loan terms: %+v", l)
	}
}

func TestLoanPaymentsEmptyIsNoop(t *testing.T) {
	c := NewCompany("Heidi")
	total, paidOff, narration := c.ProcessLoanPayments()
	if total != 0 || paidOff != 0 || narration != "" {
		t.Fatalf("expected no-op, got total=%d paidOff=%d narration=%q", total, paidOff, narration)
	}
	if c.Balance != StartingBalance {
		t.Fatalf("balance changed on empty loans: %d", c.Balance)
	}
}

func TestEmergencyLoanAmortizationCycle(t *testing.T) {
	c := NewCompany("Heidi")
	c.TakeEmergencyLoan()
	start := c.Balance

	deducted := 0
	for month := 1; month <= 3; month++ {
		total, _, _ := c.ProcessLoanPayments()
		deducted += total
		if len(c.Loans) == 0 {
			break
		}
	}
	if len(c.Loans) != 0 {
		t.Fatalf("loan not removed after 3 cycles: %+v", c.Loans)
	}
	// Principal 5000 at 2000/month clears within the 3-month term.
	if deducted != 6000 {
		t.Fatalf("total deducted=%d, want 6000", deducted)
	}
	if c.Balance != start-deducted {
		t.Fatalf("balance=%d, want %d", c.Balance, start-deducted)
	}
}

func TestLoanPaymentsPayOffMultiple(t *testing.T) {
	c := NewCompany("Heidi")
	c.Loans = []Loan{
		{Amount: 1000, MonthsRemaining: 1, MonthlyPayment: 1000},
		{Amount: 4000, MonthsRemaining: 4, MonthlyPayment: 1000},
	}
	total, paidOff, _ := c.ProcessLoanPayments()
	if total != 2000 {
		t.Fatalf("total=%d, want 2000", total)
	}
	if paidOff != 1 {
		t.Fatalf("paidOff=%d, want 1", paidOff)
	}
	if len(c.Loans) != 1 || c.Loans[0].Amount != 3000 || c.Loans[0].MonthsRemaining != 3 {
		t.Fatalf("surviving loan wrong: %+v", c.Loans)
	}
}
