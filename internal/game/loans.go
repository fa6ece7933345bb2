package game

import "fmt"

const (
	EmergencyLoanAmount  = 5_000
	EmergencyLoanMonths  = 3
	EmergencyLoanPayment = 2_000
)

// TakeEmergencyLoan always succeeds, even with a negative balance. It is the
// designated debt-recovery lever.
func (c *Company) TakeEmergencyLoan() string {
	c.Loans = append(c.Loans, Loan{
		Amount:          EmergencyLoanAmount,
		MonthsRemaining: EmergencyLoanMonths,
		MonthlyPayment:  EmergencyLoanPayment,
	})
	c.Balance += EmergencyLoanAmount
	return fmt.Sprintf("Emergency loan approved: +%d CHF (repay %d CHF/month for %d months).",
		EmergencyLoanAmount, EmergencyLoanPayment, EmergencyLoanMonths)
}

// ProcessLoanPayments runs one amortization cycle over every active loan.
// The total payment hits the balance once; each loan then counts down and a
// loan is dropped when its term or principal runs out.
func (c *Company) ProcessLoanPayments() (total, paidOff int, narration string) {
	if len(c.Loans) == 0 {
		return 0, 0, ""
	}

	total = c.MonthlyLoanPayments()
	c.Balance -= total

	remaining := c.Loans[:0]
	for _, l := range c.Loans {
		l.MonthsRemaining--
		l.Amount -= l.MonthlyPayment
		if l.Amount < 0 {
			l.Amount = 0
		}
		if l.MonthsRemaining <= 0 || l.Amount <= 0 {
			paidOff++
			continue
		}
		remaining = append(remaining, l)
	}
	c.Loans = remaining

	narration = fmt.Sprintf("loan payments -%d CHF", total)
	if paidOff > 0 {
		narration += fmt.Sprintf(" (%d loan(s) paid off)", paidOff)
	}
	return total, paidOff, narration
}
