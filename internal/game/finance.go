package game

// ProcessMonthlyFinances computes the month's revenue and expenses and
// applies the net to the balance. A pending no-revenue flag zeroes revenue
// for exactly one settlement.
func (e *Engine) ProcessMonthlyFinances(c *Company) FinanceSummary {
	if c.NoRevenueThisMonth {
		c.MonthlyRevenue = 0
		c.NoRevenueThisMonth = false
	} else {
		perCustomer := 5 + e.floatBetween(0, 3)
		c.MonthlyRevenue = int(float64(c.Customers) * c.ProductQuality * c.Reputation * perCustomer)
	}

	c.MonthlyExpenses = BaseMonthlyExpenses + c.Employees*ExpensePerEmployee
	if c.MonthlyExpenses < MinMonthlyExpenses {
		c.MonthlyExpenses = MinMonthlyExpenses
	}

	net := c.MonthlyRevenue - c.MonthlyExpenses
	c.Balance += net
	c.MonthsSurvived = c.Month

	return FinanceSummary{
		Revenue:   c.MonthlyRevenue,
		Expenses:  c.MonthlyExpenses,
		NetIncome: net,
	}
}
