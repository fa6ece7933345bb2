package game

import "fmt"

type ActionType string

const (
	ActionMarketing   ActionType = "marketing"
	ActionDevelopment ActionType = "development"
	ActionHiring      ActionType = "hiring"
	ActionResearch    ActionType = "research"
	ActionExpansion   ActionType = "expansion"
	ActionNothing     ActionType = "nothing"
	ActionTakeLoan    ActionType = "take_loan"
	ActionGoBankrupt  ActionType = "go_bankrupt"
)

type ActionCategory string

const (
	CategoryNormal  ActionCategory = "normal"
	CategorySpecial ActionCategory = "special"
)

type Action struct {
	ID          ActionType     `json:"id"`
	Name        string         `json:"name"`
	Cost        int            `json:"cost"`
	Description string         `json:"description"`
	Category    ActionCategory `json:"category"`
}

// Catalog order is stable and is what clients render.
var actionCatalog = []Action{
	{ActionMarketing, "HSG Campus Marketing", 1500, "Target wealthy HSG students with a premium marketing campaign", CategoryNormal},
	{ActionDevelopment, "Swiss Quality Development", 2000, "Invest in R&D to meet Swiss quality standards", CategoryNormal},
	{ActionHiring, "Recruit Talent", 3000, "Hire from HSG graduates or the international talent pool", CategoryNormal},
	{ActionResearch, "Market Research", 1000, "Study St. Gallen market trends and local preferences", CategoryNormal},
	{ActionExpansion, "Regional Expansion", 4000, "Expand operations across Eastern Switzerland", CategoryNormal},
	{ActionNothing, "Chill at Drei Weihern", 0, "Take a relaxing day by the lakes, save money but maybe miss opportunities", CategoryNormal},
	{ActionTakeLoan, "Emergency Bank Loan", 0, "Take a 5,000 CHF emergency loan (2,000 CHF/month for 3 months)", CategorySpecial},
	{ActionGoBankrupt, "Declare Bankruptcy", 0, "Give up and close the company", CategorySpecial},
}

// AvailableActions returns the actions a company may take this turn. Special
// debt actions are offered only while the balance is negative.
func AvailableActions(c *Company) []Action {
	want := CategoryNormal
	if c.InDebt() {
		want = CategorySpecial
	}
	out := make([]Action, 0, len(actionCatalog))
	for _, a := range actionCatalog {
		if a.Category == want {
			out = append(out, a)
		}
	}
	return out
}

func LookupAction(id ActionType) (Action, bool) {
	for _, a := range actionCatalog {
		if a.ID == id {
			return a, true
		}
	}
	return Action{}, false
}

// ExecuteAction applies one action to the company. Cost is deducted only
// after affordability is confirmed, so an error never leaves the company
// partially mutated.
func (e *Engine) ExecuteAction(c *Company, id ActionType) (string, error) {
	action, ok := LookupAction(id)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidAction, id)
	}

	switch id {
	case ActionTakeLoan:
		return c.TakeEmergencyLoan(), nil
	case ActionGoBankrupt:
		c.IsBankrupt = true
		return "Company declared bankruptcy. Game over for this entrepreneur.", nil
	}

	if !c.CanAfford(action.Cost) {
		return "", fmt.Errorf("%w: %s needs %d CHF but balance is %d CHF", ErrInsufficientFunds, action.Name, action.Cost, c.Balance)
	}
	c.Balance -= action.Cost

	switch id {
	case ActionMarketing:
		customers := e.intBetween(15, 35)
		reputation := e.floatBetween(0.1, 0.3)
		boosted := ""
		if c.MarketingBoost > 0 {
			customers *= 2
			reputation *= 2
			c.MarketingBoost--
			boosted = " Marketing boost active, double effect!"
		}
		c.Customers += customers
		c.Reputation += reputation
		return fmt.Sprintf("Invested %d CHF in %s. HSG students noticed the campaign: +%d customers, reputation +%.1f.%s",
			action.Cost, action.Name, customers, reputation, boosted), nil

	case ActionDevelopment:
		quality := e.floatBetween(0.3, 0.5)
		customers := e.intBetween(5, 15)
		c.ProductQuality += quality
		c.Customers += customers
		return fmt.Sprintf("Invested %d CHF in %s. Swiss-quality improvements: product quality +%.1f, attracted %d customers.",
			action.Cost, action.Name, quality, customers), nil

	case ActionHiring:
		c.Employees++
		customers := e.intBetween(8, 20)
		c.Customers += customers
		c.ProductQuality += e.floatBetween(0.1, 0.2)
		return fmt.Sprintf("Invested %d CHF in %s. Hired a talented professional, team productivity boosted: +%d customers.",
			action.Cost, action.Name, customers), nil

	case ActionResearch:
		c.ResearchProtection++
		customers := e.intBetween(5, 12)
		c.Customers += customers
		return fmt.Sprintf("Invested %d CHF in %s. Market research complete, risk reduced: +%d customers from insights.",
			action.Cost, action.Name, customers), nil

	case ActionExpansion:
		customers := e.intBetween(25, 45)
		c.Customers += customers
		c.Reputation += e.floatBetween(0.2, 0.4)
		c.ProductQuality += e.floatBetween(0.2, 0.4)
		c.Employees++
		return fmt.Sprintf("Invested %d CHF in %s. Eastern Switzerland expansion: +%d customers, +1 employee, all metrics boosted.",
			action.Cost, action.Name, customers), nil

	case ActionNothing:
		if e.nextFloat() < 0.3 {
			inspiration := e.intBetween(3, 8)
			c.Customers += inspiration
			return fmt.Sprintf("Relaxing at Drei Weihern sparked inspiration: +%d customers from word of mouth.", inspiration), nil
		}
		return "Enjoyed the beautiful St. Gallen scenery but missed business opportunities.", nil
	}

	// Catalog and switch cover the same ids.
	return "", fmt.Errorf("%w: %q", ErrInvalidAction, id)
}
