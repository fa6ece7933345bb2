package game

import "fmt"

// EventOutcome is what a drawn event produces. Narration-only outcomes have
// already mutated the company; an outcome carrying a Prompt has touched
// nothing and waits for ResolveEvent.
type EventOutcome struct {
	Narration string       `json:"narration"`
	Prompt    *EventPrompt `json:"prompt,omitempty"`
}

type EventOption struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

type EventPrompt struct {
	Kind    string        `json:"kind"`
	Title   string        `json:"title"`
	Body    string        `json:"body"`
	Options []EventOption `json:"options"`

	// Correct option id for quiz prompts. Never serialized to clients.
	Answer string `json:"-"`
}

type eventHandler func(e *Engine, c *Company) EventOutcome

type Event struct {
	Name        string
	Probability float64
	handler     eventHandler
}

type EventTable struct {
	entries []Event
	total   float64
}

const quietDayNarration = "Perfect day in beautiful St. Gallen! Everything runs smoothly."

// NewEventTable builds the fixed event table. Order matters: it defines the
// cumulative-probability partition a draw walks through. Probabilities sum
// to 0.900, leaving 0.100 residual mass for the quiet day.
func NewEventTable() EventTable {
	entries := []Event{
		// Macro events.
		{"Economic Boom", 0.015, economicBoom},
		{"Recession Hit", 0.015, recession},
		{"Interest Rate Rise", 0.020, interestRateRise},
		{"Tax Reduction", 0.020, taxReduction},

		// St. Gallen location events.
		{"HSG Career Fair Boom", 0.030, hsgCareerFair},
		{"HSG Library Crisis", 0.025, hsgLibraryCrisis},
		{"Trischli Night Disaster", 0.035, trischliDisaster},
		{"Trischli Marketing Success", 0.030, trischliSuccess},
		{"Olma Bratwurst Partnership", 0.030, olmaPartnership},
		{"Rosenberg Investment", 0.020, rosenbergInvestment},
		{"Drei Weihern Party", 0.040, dreiWeihernParty},

		// Positive events.
		{"Startup Award", 0.025, startupAward},
		{"Viral TikTok", 0.030, viralTikTok},
		{"Good Press", 0.040, goodPress},
		{"Innovation Grant", 0.025, innovationGrant},
		{"Tourist Boom", 0.035, touristBoom},

		// Negative events.
		{"Server Crash", 0.040, serverCrash},
		{"Legal Fine", 0.035, legalFine},
		{"Employee Quits", 0.045, employeeQuits},
		{"Big Customer Leaves", 0.030, bigCustomerLeaves},
		{"Social Media Shitstorm", 0.025, socialMediaShitstorm},
		{"Fraud Accusations", 0.020, fraudAccusations},
		{"CEO Affair", 0.015, ceoAffair},
		{"Swiss Bureaucracy", 0.050, bureaucracy},
		{"Cheese Crisis", 0.020, cheeseCrisis},

		// Fun events.
		{"Startup Dog", 0.035, startupDogMascot},
		{"Intern Disaster", 0.040, internDeletesData},
		{"Founder Misses Pitch", 0.030, founderMissesPitch},
		{"Comic Sans Code", 0.025, comicSansCode},

		// Interactive events.
		{"HSG Pub Quiz Night", 0.030, quizNight},
		{"Dragons Den Invitation", 0.025, investorShowInvitation},
	}

	total := 0.0
	for _, ev := range entries {
		total += ev.Probability
	}
	return EventTable{entries: entries, total: total}
}

func (t EventTable) Total() float64 { return t.total }

func (t EventTable) Events() []Event {
	out := make([]Event, len(t.entries))
	copy(out, t.entries)
	return out
}

// TriggerRandomEvent draws once and walks the table. A draw beyond the
// cumulative total yields the quiet day with no mutation.
func (e *Engine) TriggerRandomEvent(c *Company) EventOutcome {
	return e.events.trigger(e, c, e.nextFloat())
}

func (t EventTable) trigger(e *Engine, c *Company, roll float64) EventOutcome {
	cumulative := 0.0
	for _, ev := range t.entries {
		cumulative += ev.Probability
		if roll <= cumulative {
			return ev.handler(e, c)
		}
	}
	return EventOutcome{Narration: quietDayNarration}
}

func narrate(format string, args ...any) EventOutcome {
	return EventOutcome{Narration: fmt.Sprintf(format, args...)}
}

// Macro events.

func economicBoom(e *Engine, c *Company) EventOutcome {
	c.MarketingBoost = 2
	gain := e.intBetween(15, 25)
	c.Customers += gain
	return narrate("Economic boom in Switzerland! +%d customers. Marketing actions have DOUBLE EFFECT for the next 2 uses!", gain)
}

func recession(e *Engine, c *Company) EventOutcome {
	loss := c.Customers / 10
	if loss < 1 {
		loss = 1
	}
	c.loseCustomers(loss)
	return narrate("Recession hits Switzerland! Lost %d customers (-10%%).", loss)
}

func interestRateRise(e *Engine, c *Company) EventOutcome {
	c.MonthlyExpenses += 500
	return narrate("SNB raises the interest rate! Monthly costs increase by 500 CHF.")
}

func taxReduction(e *Engine, c *Company) EventOutcome {
	c.MonthlyExpenses -= 500
	if c.MonthlyExpenses < MinMonthlyExpenses {
		c.MonthlyExpenses = MinMonthlyExpenses
	}
	return narrate("Tax reduction for startups! Monthly costs reduced by 500 CHF.")
}

// St. Gallen location events.

func hsgCareerFair(e *Engine, c *Company) EventOutcome {
	gain := e.intBetween(20, 40)
	c.Customers += gain
	c.Reputation += e.floatBetween(0.2, 0.4)
	return narrate("HSG career fair success! +%d customers, reputation boosted!", gain)
}

func hsgLibraryCrisis(e *Engine, c *Company) EventOutcome {
	if c.ProductQuality > 2.0 {
		gain := e.intBetween(30, 50)
		c.Customers += gain
		return narrate("HSG students love your quality product! +%d customers!", gain)
	}
	loss := e.intBetween(5, 15)
	c.loseCustomers(loss)
	return narrate("HSG students tried your product but it wasn't good enough! -%d customers.", loss)
}

func trischliDisaster(e *Engine, c *Company) EventOutcome {
	cost := c.Employees * e.intBetween(200, 500)
	c.Balance -= cost
	return narrate("Employees partied too hard at Trischli! Productivity lost: -%d CHF.", cost)
}

func trischliSuccess(e *Engine, c *Company) EventOutcome {
	gain := e.intBetween(25, 45)
	c.Customers += gain
	c.Reputation += e.floatBetween(0.1, 0.3)
	return narrate("Trischli event sponsorship success! +%d customers!", gain)
}

func olmaPartnership(e *Engine, c *Company) EventOutcome {
	revenue := e.intBetween(1500, 3000)
	c.Balance += revenue
	gain := e.intBetween(15, 30)
	c.Customers += gain
	return narrate("Olma Bratwurst partnership! +%d CHF, +%d customers!", revenue, gain)
}

func rosenbergInvestment(e *Engine, c *Company) EventOutcome {
	if c.Reputation > 2.5 {
		investment := e.intBetween(5000, 8000)
		c.Balance += investment
		return narrate("Rosenberg elite investment! +%d CHF!", investment)
	}
	return narrate("Rosenberg kids said 'not exclusive enough, darling'.")
}

func dreiWeihernParty(e *Engine, c *Company) EventOutcome {
	if e.nextFloat() < 0.7 {
		gain := e.intBetween(20, 40)
		c.Customers += gain
		c.Reputation += e.floatBetween(0.2, 0.4)
		return narrate("Drei Weihern party was legendary! +%d customers!", gain)
	}
	damage := e.intBetween(800, 1500)
	c.Balance -= damage
	return narrate("Drei Weihern party got out of hand... cleanup costs: -%d CHF.", damage)
}

// Positive events.

func startupAward(e *Engine, c *Company) EventOutcome {
	c.Balance += 3000
	c.Reputation += 0.5
	gain := e.intBetween(10, 20)
	c.Customers += gain
	return narrate("Won the St. Gallen Startup Award! +3,000 CHF, +%d customers!", gain)
}

func viralTikTok(e *Engine, c *Company) EventOutcome {
	gain := e.intBetween(70, 90)
	c.Customers += gain
	c.Reputation += e.floatBetween(0.3, 0.5)
	return narrate("TikTok video goes viral! +%d new followers!", gain)
}

var newspapers = []string{"St. Galler Tagblatt", "NZZ", "Blick", "20 Minuten"}

func goodPress(e *Engine, c *Company) EventOutcome {
	c.Reputation += 0.3
	gain := e.intBetween(15, 25)
	c.Customers += gain
	return narrate("Positive article in %s! +%d customers!", e.pick(newspapers), gain)
}

func innovationGrant(e *Engine, c *Company) EventOutcome {
	grant := e.intBetween(2000, 5000)
	c.Balance += grant
	return narrate("St. Gallen innovation grant received! +%d CHF!", grant)
}

func touristBoom(e *Engine, c *Company) EventOutcome {
	revenue := e.intBetween(2000, 4000)
	c.Balance += revenue
	gain := e.intBetween(15, 35)
	c.Customers += gain
	return narrate("Tourist season brings international attention! +%d CHF, +%d customers!", revenue, gain)
}

// Negative events.

func serverCrash(e *Engine, c *Company) EventOutcome {
	c.loseQuality(e.floatBetween(0.15, 0.25))
	c.loseReputation(e.floatBetween(0.15, 0.25))
	loss := e.intBetween(8, 15)
	c.loseCustomers(loss)
	return narrate("Server crash! Quality and reputation suffer, %d customers leave!", loss)
}

var legalViolations = []string{"Data protection violation", "Anti-competitive behavior", "Tax irregularity"}

func legalFine(e *Engine, c *Company) EventOutcome {
	fine := e.intBetween(1800, 2200)
	protectionNote := ""
	if c.ResearchProtection > 0 {
		fine -= c.ResearchProtection * 300
		if fine < 500 {
			fine = 500
		}
		protectionNote = " (reduced by research protection)"
	}
	c.Balance -= fine
	c.loseReputation(e.floatBetween(0.1, 0.2))
	return narrate("Legal penalty: %s! -%d CHF fine%s.", e.pick(legalViolations), fine, protectionNote)
}

var quitReasons = []string{"better offer", "burnout", "moving to Zurich", "starting own startup"}

func employeeQuits(e *Engine, c *Company) EventOutcome {
	if c.Employees <= 1 {
		return narrate("An employee wanted to quit, but you're alone in the team anyway!")
	}
	c.Employees--
	c.loseQuality(e.floatBetween(0.1, 0.2))
	loss := e.intBetween(5, 12)
	c.loseCustomers(loss)
	return narrate("Key employee quits due to '%s'. -1 employee, quality suffers, %d customers unhappy.", e.pick(quitReasons), loss)
}

func bigCustomerLeaves(e *Engine, c *Company) EventOutcome {
	loss := e.intBetween(25, 35)
	c.loseCustomers(loss)
	revenue := e.intBetween(800, 1200)
	c.Balance -= revenue
	c.loseReputation(e.floatBetween(0.1, 0.2))
	return narrate("Big customer switches to the competition! -%d customers, -%d CHF lost.", loss, revenue)
}

var shitstormReasons = []string{"bad customer service", "problematic tweets", "greenwashing accusations", "overpriced products"}

func socialMediaShitstorm(e *Engine, c *Company) EventOutcome {
	c.loseReputation(e.floatBetween(0.4, 0.6))
	loss := e.intBetween(20, 40)
	c.loseCustomers(loss)
	return narrate("Social media shitstorm due to '%s'! %d customers boycott you.", e.pick(shitstormReasons), loss)
}

func fraudAccusations(e *Engine, c *Company) EventOutcome {
	c.loseReputation(e.floatBetween(0.8, 1.2))
	fine := e.intBetween(1200, 1800)
	c.Balance -= fine
	loss := e.intBetween(15, 30)
	c.loseCustomers(loss)
	return narrate("Fraud accusations! -%d CHF legal costs, %d customers leave.", fine, loss)
}

func ceoAffair(e *Engine, c *Company) EventOutcome {
	c.loseReputation(e.floatBetween(0.3, 0.5))
	loss := e.intBetween(8, 20)
	c.loseCustomers(loss)
	costs := e.intBetween(800, 1500)
	c.Balance -= costs
	hrNote := ""
	if c.Employees > 2 {
		c.Employees--
		hrNote = " HR manager quit!"
	}
	return narrate("CEO scandal in Blick! -%d CHF PR costs, %d customers distance themselves.%s", costs, loss, hrNote)
}

func bureaucracy(e *Engine, c *Company) EventOutcome {
	if c.ResearchProtection > 0 {
		return narrate("Swiss bureaucracy delayed things, but your research team navigated it perfectly!")
	}
	cost := e.intBetween(1000, 2500)
	c.Balance -= cost
	return narrate("Swiss bureaucracy strikes again! Paperwork delays cost: -%d CHF.", cost)
}

func cheeseCrisis(e *Engine, c *Company) EventOutcome {
	cost := e.intBetween(500, 1200)
	c.Balance -= cost
	return narrate("Appenzeller cheese crisis affects the supply chain! Operating costs up: -%d CHF.", cost)
}

// Fun events.

var dogNames = []string{"Bitzli", "Rüdiger", "Fondue", "Heidi", "Wilhelm Tell"}

func startupDogMascot(e *Engine, c *Company) EventOutcome {
	gain := e.intBetween(18, 22)
	c.Customers += gain
	c.Reputation += e.floatBetween(0.25, 0.35)
	costs := e.intBetween(150, 250)
	c.MonthlyExpenses += costs
	return narrate("Startup dog '%s' becomes a viral mascot! +%d customers, but +%d CHF/month costs.", e.pick(dogNames), gain, costs)
}

func internDeletesData(e *Engine, c *Company) EventOutcome {
	loss := e.intBetween(8, 12)
	c.loseCustomers(loss)
	c.loseQuality(e.floatBetween(0.1, 0.2))
	recovery := e.intBetween(500, 1000)
	c.Balance -= recovery
	return narrate("Intern deletes important data! -%d customers, -%d CHF recovery costs.", loss, recovery)
}

var missReasons = []string{"overslept", "stuck in traffic", "wrong address", "phone alarm failed"}

func founderMissesPitch(e *Engine, c *Company) EventOutcome {
	c.NoRevenueThisMonth = true
	c.loseReputation(e.floatBetween(0.2, 0.3))
	return narrate("Founder misses the investor pitch ('%s')! No revenue this month.", e.pick(missReasons))
}

func comicSansCode(e *Engine, c *Company) EventOutcome {
	c.loseQuality(e.floatBetween(0.15, 0.25))
	c.Reputation += e.floatBetween(0.15, 0.25)
	return narrate("Intern rewrites the code in Comic Sans! Quality suffers but everyone laughs about it (+reputation).")
}
