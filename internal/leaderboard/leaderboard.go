package leaderboard

import (
	"context"
	"time"
)

// Entry is one finished run on the hall of fame. Only companies that survive
// the full year without declaring bankruptcy qualify.
type Entry struct {
	PlayerName     string    `json:"player_name"`
	FinalBalance   int       `json:"final_balance"`
	FinalCustomers int       `json:"final_customers"`
	MonthsSurvived int       `json:"months_survived"`
	FinalScore     int       `json:"final_score"`
	CreatedAt      time.Time `json:"created_at"`
}

const (
	// QualifyingMonths is how long a company must survive to be ranked.
	QualifyingMonths = 12
	// TopSize is how many entries Top returns at most.
	TopSize = 10
)

type Store interface {
	SaveScore(ctx context.Context, e Entry) error
	Top(ctx context.Context) ([]Entry, error)
}

// Qualifies reports whether a finished run earns a leaderboard entry.
func Qualifies(bankrupt bool, monthsSurvived int) bool {
	return !bankrupt && monthsSurvived >= QualifyingMonths
}
