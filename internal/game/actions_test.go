package game

import (
	"errors"
	"testing"
)

func newTestEngine(seed int64) *Engine {
	return NewEngineSeeded(nil, seed)
}

func TestExecuteActionUnknown(t *testing.T) {
	e := newTestEngine(1)
	c := NewCompany("Heidi")
	before := *c

	_, err := e.ExecuteAction(c, ActionType("ski_holiday"))
	if !errors.Is(err, ErrInvalidAction) {
		t.Fatalf("expected ErrInvalidAction, got %v", err)
	}
	if c.Balance != before.Balance || c.Customers != before.Customers || c.Reputation != before.Reputation {
		t.Fatalf("company mutated on invalid action")
	}
}

func TestExecuteActionInsufficientFunds(t *testing.T) {
	e := newTestEngine(1)
	c := NewCompany("Heidi")
	c.Balance = 100

	_, err := e.ExecuteAction(c, ActionExpansion)
	if !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}
	if c.Balance != 100 || c.Customers != StartingCustomers || c.Employees != 1 {
		t.Fatalf("company mutated on rejected action: balance=%d customers=%d employees=%d", c.Balance, c.Customers, c.Employees)
	}
}

func TestMarketingEffectRanges(t *testing.T) {
	e := newTestEngine(7)
	c := NewCompany("Heidi")

	if _, err := e.ExecuteAction(c, ActionMarketing); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Balance != StartingBalance-1500 {
		t.Fatalf("balance=%d, want %d", c.Balance, StartingBalance-1500)
	}
	gain := c.Customers - StartingCustomers
	if gain < 15 || gain > 35 {
		t.Fatalf("customer gain %d outside [15,35]", gain)
	}
	repGain := c.Reputation - 1.0
	if repGain < 0.1 || repGain >= 0.3 {
		t.Fatalf("reputation gain %.3f outside [0.1,0.3)", repGain)
	}
}

func TestMarketingBoostDoubles(t *testing.T) {
	e := newTestEngine(7)
	c := NewCompany("Heidi")
	c.MarketingBoost = 2

	if _, err := e.ExecuteAction(c, ActionMarketing); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.MarketingBoost != 1 {
		t.Fatalf("boost counter=%d, want 1", c.MarketingBoost)
	}
	gain := c.Customers - StartingCustomers
	if gain < 30 || gain > 70 || gain%2 != 0 {
		t.Fatalf("boosted customer gain %d outside doubled range", gain)
	}
}

func TestHiringAndExpansionAddEmployees(t *testing.T) {
	e := newTestEngine(3)
	c := NewCompany("Heidi")

	if _, err := e.ExecuteAction(c, ActionHiring); err != nil {
		t.Fatalf("hiring failed: %v", err)
	}
	if c.Employees != 2 {
		t.Fatalf("employees=%d after hiring, want 2", c.Employees)
	}
	if _, err := e.ExecuteAction(c, ActionExpansion); err != nil {
		t.Fatalf("expansion failed: %v", err)
	}
	if c.Employees != 3 {
		t.Fatalf("employees=%d after expansion, want 3", c.Employees)
	}
}

func TestResearchIncrementsProtection(t *testing.T) {
	e := newTestEngine(3)
	c := NewCompany("Heidi")
	if _, err := e.ExecuteAction(c, ActionResearch); err != nil {
		t.Fatalf("research failed: %v", err)
	}
	if c.ResearchProtection != 1 {
		t.Fatalf("research protection=%d, want 1", c.ResearchProtection)
	}
}

func TestTakeLoanActionIgnoresBalance(t *testing.T) {
	e := newTestEngine(3)
	c := NewCompany("Heidi")
	c.Balance = -4000

	if _, err := e.ExecuteAction(c, ActionTakeLoan); err != nil {
		t.Fatalf("loan action failed: %v", err)
	}
	if c.Balance != 1000 || len(c.Loans) != 1 {
		t.Fatalf("loan not applied: balance=%d loans=%d", c.Balance, len(c.Loans))
	}
}

func TestGoBankruptSetsTerminalFlag(t *testing.T) {
	e := newTestEngine(3)
	c := NewCompany("Heidi")
	c.Balance = -100

	if _, err := e.ExecuteAction(c, ActionGoBankrupt); err != nil {
		t.Fatalf("bankruptcy action failed: %v", err)
	}
	if !c.IsBankrupt {
		t.Fatalf("bankruptcy flag not set")
	}
	// Balance and loans are preserved as-is.
	if c.Balance != -100 {
		t.Fatalf("balance changed by bankruptcy: %d", c.Balance)
	}
}

func TestAvailableActionsSwitchOnDebt(t *testing.T) {
	c := NewCompany("Heidi")
	normal := AvailableActions(c)
	if len(normal) != 6 {
		t.Fatalf("expected 6 normal actions, got %d", len(normal))
	}
	for _, a := range normal {
		if a.Category != CategoryNormal {
			t.Fatalf("unexpected category for %s", a.ID)
		}
	}

	c.Balance = -1
	special := AvailableActions(c)
	if len(special) != 2 {
		t.Fatalf("expected 2 special actions, got %d", len(special))
	}
	if special[0].ID != ActionTakeLoan || special[1].ID != ActionGoBankrupt {
		t.Fatalf("unexpected special actions: %v, %v", special[0].ID, special[1].ID)
	}
}
