package game

// Interactive events suspend the turn: the drawn handler returns a prompt
// without touching the company, and ResolveEvent applies exactly one choice.

const (
	EventKindQuiz     = "quiz"
	EventKindInvestor = "investor_pitch"

	ChoiceInvestorPitch   = "pitch"
	ChoiceInvestorDecline = "decline"

	QuizBonus = 2_000

	InvestorPitchCost       = 500
	InvestorPitchInvestment = 5_000
)

type quizQuestion struct {
	Body    string
	Options []EventOption
	Answer  string
}

var quizQuestions = []quizQuestion{
	{
		Body: "Which lake district do St. Gallen locals swim in all summer?",
		Options: []EventOption{
			{ID: "a", Label: "Drei Weihern"},
			{ID: "b", Label: "Lake Zurich"},
			{ID: "c", Label: "Lago Maggiore"},
		},
		Answer: "a",
	},
	{
		Body: "What does the Olma fair in St. Gallen celebrate?",
		Options: []EventOption{
			{ID: "a", Label: "Watchmaking"},
			{ID: "b", Label: "Agriculture and Bratwurst"},
			{ID: "c", Label: "Private banking"},
		},
		Answer: "b",
	},
	{
		Body: "Which cheese comes from the region next door?",
		Options: []EventOption{
			{ID: "a", Label: "Gruyère"},
			{ID: "b", Label: "Emmentaler"},
			{ID: "c", Label: "Appenzeller"},
		},
		Answer: "c",
	},
}

func quizNight(e *Engine, c *Company) EventOutcome {
	q := quizQuestions[e.intBetween(0, len(quizQuestions)-1)]
	return EventOutcome{
		Narration: "The HSG pub quiz spotlight lands on your table!",
		Prompt: &EventPrompt{
			Kind:    EventKindQuiz,
			Title:   "HSG Pub Quiz Night",
			Body:    q.Body,
			Options: q.Options,
			Answer:  q.Answer,
		},
	}
}

func investorShowInvitation(e *Engine, c *Company) EventOutcome {
	return EventOutcome{
		Narration: "A TV producer invites you to pitch on the Dragons Den startup show!",
		Prompt: &EventPrompt{
			Kind:  EventKindInvestor,
			Title: "Dragons Den Invitation",
			Body:  "Pitching costs 500 CHF of prep. A strong pitch wins a 5,000 CHF investment and TV fame; a flop damages your reputation.",
			Options: []EventOption{
				{ID: ChoiceInvestorPitch, Label: "Pay 500 CHF and pitch"},
				{ID: ChoiceInvestorDecline, Label: "Decline the invitation"},
			},
		},
	}
}

func (e *Engine) applyEventChoice(c *Company, prompt *EventPrompt, choiceID string) (string, error) {
	switch prompt.Kind {
	case EventKindQuiz:
		return e.resolveQuiz(c, prompt, choiceID)
	case EventKindInvestor:
		return e.resolveInvestorPitch(c, choiceID)
	}
	return "", ErrInvalidChoice
}

func (e *Engine) resolveQuiz(c *Company, prompt *EventPrompt, choiceID string) (string, error) {
	if !validOption(prompt.Options, choiceID) {
		return "", ErrInvalidChoice
	}
	if choiceID == prompt.Answer {
		c.Balance += QuizBonus
		return "Correct! +2,000 CHF quiz bonus earned!", nil
	}
	return "Wrong answer, but at least you learned something!", nil
}

func (e *Engine) resolveInvestorPitch(c *Company, choiceID string) (string, error) {
	switch choiceID {
	case ChoiceInvestorDecline:
		return "Dragons Den declined. No risk, no TV fame.", nil
	case ChoiceInvestorPitch:
		if c.Balance < InvestorPitchCost {
			return "Not enough money for Dragons Den! Pitching needs 500 CHF.", nil
		}
		c.Balance -= InvestorPitchCost
		if e.nextFloat() < 0.5 {
			c.Balance += InvestorPitchInvestment
			c.Reputation += e.floatBetween(0.3, 0.5)
			return "Dragons Den success! +5,000 CHF investment and TV fame!", nil
		}
		c.loseReputation(e.floatBetween(0.4, 0.6))
		return "Dragons Den flop! -500 CHF lost and reputation damaged.", nil
	}
	return "", ErrInvalidChoice
}

func validOption(options []EventOption, id string) bool {
	for _, o := range options {
		if o.ID == id {
			return true
		}
	}
	return false
}
