package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"tycoon/internal/game"
)

var ErrNotFound = errors.New("game session not found")

// Game is one live playthrough. Pending holds the interactive event the
// player still has to answer; while it is set, turns are rejected.
type Game struct {
	ID         string
	Company    *game.Company
	Pending    *game.EventPrompt
	Recorded   bool
	CreatedAt  time.Time
	LastActive time.Time
}

// Store keeps live games in memory. One coarse mutex guards the whole map;
// game turns are quick enough that finer locking buys nothing.
type Store struct {
	log *slog.Logger
	ttl time.Duration
	now func() time.Time

	mu    sync.Mutex
	games map[string]*Game
}

func NewStore(logger *slog.Logger, ttl time.Duration) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		log:   logger,
		ttl:   ttl,
		now:   time.Now,
		games: make(map[string]*Game),
	}
}

func (s *Store) Create(c *game.Company) *Game {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	g := &Game{
		ID:         uuid.NewString(),
		Company:    c,
		CreatedAt:  now,
		LastActive: now,
	}
	s.games[g.ID] = g
	return g
}

// With runs fn on the named game under the store lock and refreshes its
// activity timestamp. Every read and mutation of a game goes through here.
func (s *Store) With(id string, fn func(g *Game) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.games[id]
	if !ok {
		return ErrNotFound
	}
	g.LastActive = s.now()
	return fn(g)
}

func (s *Store) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.games, id)
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.games)
}

// Sweep drops games idle longer than the TTL and returns how many it removed.
func (s *Store) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	cutoff := s.now().Add(-s.ttl)
	removed := 0
	for id, g := range s.games {
		if g.LastActive.Before(cutoff) {
			delete(s.games, id)
			removed++
		}
	}
	return removed
}

// Run sweeps expired games on a ticker until the context is cancelled.
func (s *Store) Run(ctx context.Context, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := s.Sweep(); removed > 0 {
				s.log.Info("swept idle game sessions", "removed", removed, "remaining", s.Len())
			}
		}
	}
}
