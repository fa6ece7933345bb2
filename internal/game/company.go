package game

import (
	"errors"
	"fmt"
	"math"
)

const (
	StartingBalance   = 10_000
	StartingCustomers = 50
	MaxMonths         = 12

	// Balance below this ends the game even without a declared bankruptcy.
	BankruptcyFloor = -5_000

	BaseMonthlyExpenses = 500
	MinMonthlyExpenses  = 100
	ExpensePerEmployee  = 2_000

	// Reputation and product quality never drop below this floor.
	MetricFloor = 0.1
)

var (
	ErrInvalidAction     = errors.New("invalid action")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrInvalidChoice     = errors.New("invalid event choice")
	ErrCompanyBankrupt   = errors.New("company is bankrupt")
	ErrGameFinished      = errors.New("game is already finished")
	ErrNoPendingEvent    = errors.New("no pending event to resolve")
	ErrEventAwaitsChoice = errors.New("pending event must be resolved before the next turn")
)

type Loan struct {
	Amount          int `json:"amount"`
	MonthsRemaining int `json:"months_remaining"`
	MonthlyPayment  int `json:"monthly_payment"`
}

type Company struct {
	OwnerName          string   `json:"owner_name"`
	Balance            int      `json:"balance"`
	Customers          int      `json:"customers"`
	Employees          int      `json:"employees"`
	Reputation         float64  `json:"reputation"`
	ProductQuality     float64  `json:"product_quality"`
	ResearchProtection int      `json:"research_protection"`
	MonthlyRevenue     int      `json:"monthly_revenue"`
	MonthlyExpenses    int      `json:"monthly_expenses"`
	MarketingBoost     int      `json:"marketing_boost"`
	NoRevenueThisMonth bool     `json:"no_revenue_this_month"`
	Month              int      `json:"month"`
	MonthsSurvived     int      `json:"months_survived"`
	IsBankrupt         bool     `json:"is_bankrupt"`
	Loans              []Loan   `json:"loans"`
	History            []string `json:"history"`
}

func NewCompany(ownerName string) *Company {
	return &Company{
		OwnerName:       ownerName,
		Balance:         StartingBalance,
		Customers:       StartingCustomers,
		Employees:       1,
		Reputation:      1.0,
		ProductQuality:  1.0,
		MonthlyExpenses: BaseMonthlyExpenses,
		Month:           1,
	}
}

// Score values cash, customer base and both soft metrics, minus outstanding
// loan principal.
func (c *Company) Score() int {
	return int(float64(c.Balance) +
		float64(c.Customers*10) +
		c.Reputation*1000 +
		c.ProductQuality*1000 -
		float64(c.TotalLoanDebt()))
}

func (c *Company) CanAfford(cost int) bool {
	return c.Balance >= cost
}

func (c *Company) InDebt() bool {
	return c.Balance < 0
}

func (c *Company) TotalLoanDebt() int {
	total := 0
	for _, l := range c.Loans {
		total += l.Amount
	}
	return total
}

func (c *Company) MonthlyLoanPayments() int {
	total := 0
	for _, l := range c.Loans {
		total += l.MonthlyPayment
	}
	return total
}

func (c *Company) AddHistory(entry string) {
	c.History = append(c.History, fmt.Sprintf("Month %d: %s", c.Month, entry))
}

func (c *Company) loseReputation(delta float64) {
	c.Reputation = math.Max(MetricFloor, c.Reputation-delta)
}

func (c *Company) loseQuality(delta float64) {
	c.ProductQuality = math.Max(MetricFloor, c.ProductQuality-delta)
}

func (c *Company) loseCustomers(n int) {
	c.Customers -= n
	if c.Customers < 0 {
		c.Customers = 0
	}
}
