package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"tycoon/internal/auth"
	"tycoon/internal/config"
	"tycoon/internal/game"
	"tycoon/internal/leaderboard"
	"tycoon/internal/session"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type contextKey string

const gameContextKey contextKey = "game"

type Server struct {
	cfg      config.APIConfig
	log      *slog.Logger
	engine   *game.Engine
	sessions *session.Store
	scores   leaderboard.Store
	mux      *chi.Mux
}

func New(cfg config.APIConfig, logger *slog.Logger, engine *game.Engine, sessions *session.Store, scores leaderboard.Store) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		cfg:      cfg,
		log:      logger,
		engine:   engine,
		sessions: sessions,
		scores:   scores,
		mux:      chi.NewRouter(),
	}
	s.routes()
	return s
}

func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) routes() {
	r := s.mux
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})

	r.Route("/v1", func(r chi.Router) {
		r.Post("/games", s.handleCreateGame)
		r.Get("/leaderboard", s.handleLeaderboard)

		r.Group(func(r chi.Router) {
			r.Use(s.authMiddleware)
			r.Get("/games/current", s.handleGameState)
			r.Post("/games/turn", s.handleTurn)
			r.Post("/games/event", s.handleEventChoice)
		})
	})
}

func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r.Header.Get("Authorization"))
		if token == "" {
			writeError(w, http.StatusUnauthorized, "missing bearer token")
			return
		}
		claims, err := auth.VerifyGameToken(token, []byte(s.cfg.SessionSecret))
		if err != nil {
			writeError(w, http.StatusUnauthorized, fmt.Sprintf("invalid token: %v", err))
			return
		}
		ctx := context.WithValue(r.Context(), gameContextKey, claims.GameID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func gameIDFromContext(ctx context.Context) (string, error) {
	id, ok := ctx.Value(gameContextKey).(string)
	if !ok || id == "" {
		return "", errors.New("missing auth context")
	}
	return id, nil
}

// GameState is the full snapshot sent to clients after every call.
type GameState struct {
	GameID   string            `json:"game_id"`
	Company  *game.Company     `json:"company"`
	Actions  []game.Action     `json:"actions"`
	Pending  *game.EventPrompt `json:"pending_event,omitempty"`
	GameOver bool              `json:"game_over"`
	Score    int               `json:"score"`
}

func (s *Server) snapshot(g *session.Game) GameState {
	return GameState{
		GameID:   g.ID,
		Company:  g.Company,
		Actions:  game.AvailableActions(g.Company),
		Pending:  g.Pending,
		GameOver: s.engine.IsGameOver(g.Company),
		Score:    g.Company.Score(),
	}
}

func (s *Server) handleCreateGame(w http.ResponseWriter, r *http.Request) {
	var in struct {
		PlayerName string `json:"player_name"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	company := s.engine.CreateCompany(in.PlayerName)
	g := s.sessions.Create(company)
	token, err := auth.GenerateGameToken(g.ID, []byte(s.cfg.SessionSecret), s.cfg.SessionTTL)
	if err != nil {
		s.sessions.Delete(g.ID)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.log.Info("game created", "game_id", g.ID, "owner", company.OwnerName)
	writeJSON(w, http.StatusCreated, map[string]any{
		"token": token,
		"state": s.snapshot(g),
	})
}

func (s *Server) handleGameState(w http.ResponseWriter, r *http.Request) {
	id, err := gameIDFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}

	var state GameState
	err = s.sessions.With(id, func(g *session.Game) error {
		state = s.snapshot(g)
		return nil
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (s *Server) handleTurn(w http.ResponseWriter, r *http.Request) {
	id, err := gameIDFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}
	var in struct {
		Action string `json:"action"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var (
		result game.TurnResult
		state  GameState
	)
	err = s.sessions.With(id, func(g *session.Game) error {
		if g.Pending != nil {
			return game.ErrEventAwaitsChoice
		}
		out, err := s.engine.RunTurn(g.Company, game.ActionType(in.Action))
		if err != nil {
			return err
		}
		g.Pending = out.Pending
		if out.GameOver {
			s.recordScore(r.Context(), g)
		}
		result = out
		state = s.snapshot(g)
		return nil
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"turn":  result,
		"state": state,
	})
}

func (s *Server) handleEventChoice(w http.ResponseWriter, r *http.Request) {
	id, err := gameIDFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}
	var in struct {
		Choice string `json:"choice"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var (
		result game.TurnResult
		state  GameState
	)
	err = s.sessions.With(id, func(g *session.Game) error {
		if g.Pending == nil {
			return game.ErrNoPendingEvent
		}
		out, err := s.engine.ResolveEvent(g.Company, g.Pending, in.Choice)
		if err != nil {
			return err
		}
		g.Pending = nil
		if out.GameOver {
			s.recordScore(r.Context(), g)
		}
		result = out
		state = s.snapshot(g)
		return nil
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"turn":  result,
		"state": state,
	})
}

func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	top, err := s.scores.Top(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if top == nil {
		top = []leaderboard.Entry{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"leaderboard": top})
}

// recordScore stores a finished run once. Bankrupt or short runs never rank.
func (s *Server) recordScore(ctx context.Context, g *session.Game) {
	if g.Recorded {
		return
	}
	g.Recorded = true
	c := g.Company
	if !leaderboard.Qualifies(c.IsBankrupt, c.MonthsSurvived) {
		return
	}
	entry := leaderboard.Entry{
		PlayerName:     c.OwnerName,
		FinalBalance:   c.Balance,
		FinalCustomers: c.Customers,
		MonthsSurvived: c.MonthsSurvived,
		FinalScore:     c.Score(),
	}
	if err := s.scores.SaveScore(ctx, entry); err != nil {
		s.log.Error("save score failed", "game_id", g.ID, "err", err)
		return
	}
	s.log.Info("score recorded", "game_id", g.ID, "owner", c.OwnerName, "score", entry.FinalScore)
}

func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, session.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, game.ErrInvalidAction), errors.Is(err, game.ErrInvalidChoice):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, game.ErrInsufficientFunds):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, game.ErrEventAwaitsChoice), errors.Is(err, game.ErrNoPendingEvent):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, game.ErrCompanyBankrupt), errors.Is(err, game.ErrGameFinished):
		writeError(w, http.StatusConflict, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func decodeJSON(r *http.Request, out any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(out); err != nil {
		return err
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{"error": strings.TrimSpace(message)})
}

func bearerToken(header string) string {
	header = strings.TrimSpace(header)
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
