package leaderboard

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresStore struct {
	db *pgxpool.Pool
}

func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

// EnsureSchema creates the scores table when it does not exist yet.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	_, err := s.db.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS tycoon_scores (
			id              BIGSERIAL PRIMARY KEY,
			player_name     TEXT NOT NULL,
			final_balance   BIGINT NOT NULL,
			final_customers BIGINT NOT NULL,
			months_survived INT NOT NULL,
			final_score     BIGINT NOT NULL,
			created_at      TIMESTAMPTZ NOT NULL DEFAULT now()
		)
	`)
	if err != nil {
		return fmt.Errorf("ensure scores schema: %w", err)
	}
	return nil
}

func (s *PostgresStore) SaveScore(ctx context.Context, e Entry) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO tycoon_scores (player_name, final_balance, final_customers, months_survived, final_score)
		VALUES ($1, $2, $3, $4, $5)
	`, e.PlayerName, e.FinalBalance, e.FinalCustomers, e.MonthsSurvived, e.FinalScore)
	if err != nil {
		return fmt.Errorf("save score: %w", err)
	}
	return nil
}

func (s *PostgresStore) Top(ctx context.Context) ([]Entry, error) {
	rows, err := s.db.Query(ctx, `
		SELECT player_name, final_balance, final_customers, months_survived, final_score, created_at
		FROM tycoon_scores
		ORDER BY final_score DESC, created_at ASC
		LIMIT $1
	`, TopSize)
	if err != nil {
		return nil, fmt.Errorf("query top scores: %w", err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.PlayerName, &e.FinalBalance, &e.FinalCustomers, &e.MonthsSurvived, &e.FinalScore, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
