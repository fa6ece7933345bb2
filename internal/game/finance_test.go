package game

import "testing"

func TestMonthlyFinancesRevenueBounds(t *testing.T) {
	e := newTestEngine(11)
	for i := 0; i < 50; i++ {
		c := NewCompany("Heidi")
		sum := e.ProcessMonthlyFinances(c)

		// 50 customers at quality 1.0 and reputation 1.0 earn between
		// 5 and 8 CHF each.
		if sum.Revenue < 250 || sum.Revenue >= 400 {
			t.Fatalf("revenue %d outside [250,400)", sum.Revenue)
		}
		if sum.Expenses != BaseMonthlyExpenses+ExpensePerEmployee {
			t.Fatalf("expenses %d, want %d", sum.Expenses, BaseMonthlyExpenses+ExpensePerEmployee)
		}
		if sum.NetIncome != sum.Revenue-sum.Expenses {
			t.Fatalf("net income %d inconsistent", sum.NetIncome)
		}
		if c.Balance != StartingBalance+sum.NetIncome {
			t.Fatalf("balance %d, want %d", c.Balance, StartingBalance+sum.NetIncome)
		}
	}
}

func TestMonthlyFinancesNoRevenueFlag(t *testing.T) {
	e := newTestEngine(11)
	c := NewCompany("Heidi")
	c.NoRevenueThisMonth = true

	sum := e.ProcessMonthlyFinances(c)
	if sum.Revenue != 0 {
		t.Fatalf("revenue %d with no-revenue flag set", sum.Revenue)
	}
	if c.NoRevenueThisMonth {
		t.Fatalf("no-revenue flag not consumed")
	}

	// The flag lasts exactly one settlement.
	sum = e.ProcessMonthlyFinances(c)
	if sum.Revenue == 0 {
		t.Fatalf("revenue still zero after flag was consumed")
	}
}

func TestMonthlyFinancesExpensesScaleWithHeadcount(t *testing.T) {
	e := newTestEngine(11)
	c := NewCompany("Heidi")
	c.Employees = 4

	sum := e.ProcessMonthlyFinances(c)
	want := BaseMonthlyExpenses + 4*ExpensePerEmployee
	if sum.Expenses != want {
		t.Fatalf("expenses %d, want %d", sum.Expenses, want)
	}
}

func TestMonthlyFinancesRecordsSurvival(t *testing.T) {
	e := newTestEngine(11)
	c := NewCompany("Heidi")
	c.Month = 7

	e.ProcessMonthlyFinances(c)
	if c.MonthsSurvived != 7 {
		t.Fatalf("months survived %d, want 7", c.MonthsSurvived)
	}
}
