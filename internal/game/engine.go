package game

import (
	"fmt"
	"log/slog"
	mathrand "math/rand"
	"strings"
	"sync"
	"time"
)

// Engine runs complete turns against a single company at a time. All
// randomness flows through the engine's own generator so a seeded engine
// replays identically.
type Engine struct {
	log    *slog.Logger
	events EventTable

	mu   sync.Mutex
	rand *mathrand.Rand
}

func NewEngine(logger *slog.Logger) *Engine {
	return NewEngineSeeded(logger, time.Now().UnixNano())
}

func NewEngineSeeded(logger *slog.Logger, seed int64) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		log:    logger,
		events: NewEventTable(),
		rand:   mathrand.New(mathrand.NewSource(seed)),
	}
}

func (e *Engine) CreateCompany(ownerName string) *Company {
	ownerName = strings.TrimSpace(ownerName)
	if ownerName == "" {
		ownerName = "Entrepreneur"
	}
	return NewCompany(ownerName)
}

type FinanceSummary struct {
	Revenue      int `json:"revenue"`
	Expenses     int `json:"expenses"`
	NetIncome    int `json:"net_income"`
	LoanPayments int `json:"loan_payments"`
	LoansPaidOff int `json:"loans_paid_off"`
}

type TurnResult struct {
	ActionResult string          `json:"action_result"`
	EventResult  string          `json:"event_result"`
	Pending      *EventPrompt    `json:"pending_event,omitempty"`
	Finance      *FinanceSummary `json:"finance,omitempty"`
	Month        int             `json:"month"`
	GameOver     bool            `json:"game_over"`
}

// RunTurn resolves one full month: action, random event, loan payments,
// settlement, month advance. When the drawn event needs a player choice the
// turn suspends after phase two; ResolveEvent finishes it.
func (e *Engine) RunTurn(c *Company, actionID ActionType) (TurnResult, error) {
	var out TurnResult
	if c.IsBankrupt {
		return TurnResult{Month: c.Month, GameOver: true}, ErrCompanyBankrupt
	}
	if e.IsGameOver(c) {
		return TurnResult{Month: c.Month, GameOver: true}, ErrGameFinished
	}

	actionResult, err := e.ExecuteAction(c, actionID)
	if err != nil {
		return out, err
	}
	out.ActionResult = actionResult
	c.AddHistory(actionResult)

	if c.IsBankrupt {
		// Declared bankruptcy this turn. No event, no settlement.
		out.Month = c.Month
		out.GameOver = true
		return out, nil
	}

	outcome := e.TriggerRandomEvent(c)
	out.EventResult = outcome.Narration
	if outcome.Prompt != nil {
		out.Pending = outcome.Prompt
		out.Month = c.Month
		e.log.Debug("turn suspended on interactive event", "owner", c.OwnerName, "event", outcome.Prompt.Kind)
		return out, nil
	}
	c.AddHistory(outcome.Narration)

	finance := e.settleAndAdvance(c)
	out.Finance = &finance
	out.Month = c.Month
	out.GameOver = e.IsGameOver(c)
	return out, nil
}

// ResolveEvent applies the player's choice for a pending interactive event,
// then completes the suspended remainder of the turn.
func (e *Engine) ResolveEvent(c *Company, prompt *EventPrompt, choiceID string) (TurnResult, error) {
	var out TurnResult
	if c.IsBankrupt {
		return TurnResult{Month: c.Month, GameOver: true}, ErrCompanyBankrupt
	}
	if e.IsGameOver(c) {
		return TurnResult{Month: c.Month, GameOver: true}, ErrGameFinished
	}
	if prompt == nil {
		return out, ErrNoPendingEvent
	}

	narration, err := e.applyEventChoice(c, prompt, choiceID)
	if err != nil {
		return out, err
	}
	out.EventResult = narration
	c.AddHistory(narration)

	finance := e.settleAndAdvance(c)
	out.Finance = &finance
	out.Month = c.Month
	out.GameOver = e.IsGameOver(c)
	return out, nil
}

func (e *Engine) settleAndAdvance(c *Company) FinanceSummary {
	loanPayments, paidOff, loanNote := c.ProcessLoanPayments()
	finance := e.ProcessMonthlyFinances(c)
	finance.LoanPayments = loanPayments
	finance.LoansPaidOff = paidOff

	summary := fmt.Sprintf("Revenue +%d, expenses -%d", finance.Revenue, finance.Expenses)
	if loanNote != "" {
		summary += ", " + loanNote
	}
	c.AddHistory(summary)

	c.Month++
	return finance
}

func (e *Engine) IsGameOver(c *Company) bool {
	return c.Month > MaxMonths || c.IsBankrupt || c.Balance < BankruptcyFloor
}

func (e *Engine) nextFloat() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.rand.Float64()
}

// intBetween draws a uniform integer in [lo, hi].
func (e *Engine) intBetween(lo, hi int) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return lo + e.rand.Intn(hi-lo+1)
}

// floatBetween draws a uniform real in [lo, hi).
func (e *Engine) floatBetween(lo, hi float64) float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return lo + e.rand.Float64()*(hi-lo)
}

func (e *Engine) pick(options []string) string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return options[e.rand.Intn(len(options))]
}
