package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"tycoon/internal/config"
	"tycoon/internal/game"
	"tycoon/internal/leaderboard"
	"tycoon/internal/session"
)

func newTestServer(seed int64) (*Server, *leaderboard.MemoryStore) {
	cfg := config.APIConfig{
		SessionSecret: "test-secret",
		SessionTTL:    time.Hour,
	}
	scores := leaderboard.NewMemoryStore()
	engine := game.NewEngineSeeded(nil, seed)
	sessions := session.NewStore(nil, time.Hour)
	return New(cfg, nil, engine, sessions, scores), scores
}

func doJSON(t *testing.T, h http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
		t.Fatalf("decode response: %v (body %s)", err, rec.Body.String())
	}
}

type createResponse struct {
	Token string    `json:"token"`
	State GameState `json:"state"`
}

type turnResponse struct {
	Turn  game.TurnResult `json:"turn"`
	State GameState       `json:"state"`
}

func startGame(t *testing.T, s *Server, name string) createResponse {
	t.Helper()
	rec := doJSON(t, s.Handler(), http.MethodPost, "/v1/games", "", map[string]string{"player_name": name})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create game status %d: %s", rec.Code, rec.Body.String())
	}
	var out createResponse
	decodeBody(t, rec, &out)
	return out
}

func TestHealthz(t *testing.T) {
	s, _ := newTestServer(1)
	rec := doJSON(t, s.Handler(), http.MethodGet, "/healthz", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("healthz status %d", rec.Code)
	}
}

func TestCreateGameAndStatus(t *testing.T) {
	s, _ := newTestServer(1)
	created := startGame(t, s, "Heidi")
	if created.Token == "" {
		t.Fatalf("no token issued")
	}
	if created.State.Company.OwnerName != "Heidi" {
		t.Fatalf("owner %q, want Heidi", created.State.Company.OwnerName)
	}
	if len(created.State.Actions) != 6 {
		t.Fatalf("%d actions offered, want 6", len(created.State.Actions))
	}

	rec := doJSON(t, s.Handler(), http.MethodGet, "/v1/games/current", created.Token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}
	var state GameState
	decodeBody(t, rec, &state)
	if state.Company.Balance != game.StartingBalance || state.Company.Month != 1 {
		t.Fatalf("unexpected fresh state: %+v", state.Company)
	}
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	s, _ := newTestServer(1)
	for _, path := range []string{"/v1/games/current"} {
		rec := doJSON(t, s.Handler(), http.MethodGet, path, "", nil)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("%s without token: status %d", path, rec.Code)
		}
	}
	rec := doJSON(t, s.Handler(), http.MethodPost, "/v1/games/turn", "garbage", map[string]string{"action": "nothing"})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("garbage token: status %d", rec.Code)
	}
}

func TestTurnAdvancesMonth(t *testing.T) {
	s, _ := newTestServer(7)
	created := startGame(t, s, "Heidi")

	rec := doJSON(t, s.Handler(), http.MethodPost, "/v1/games/turn", created.Token, map[string]string{"action": "nothing"})
	if rec.Code != http.StatusOK {
		t.Fatalf("turn status %d: %s", rec.Code, rec.Body.String())
	}
	var out turnResponse
	decodeBody(t, rec, &out)

	if out.State.Pending != nil {
		choice := out.State.Pending.Options[0].ID
		rec = doJSON(t, s.Handler(), http.MethodPost, "/v1/games/event", created.Token, map[string]string{"choice": choice})
		if rec.Code != http.StatusOK {
			t.Fatalf("event status %d: %s", rec.Code, rec.Body.String())
		}
		decodeBody(t, rec, &out)
	}
	if out.State.Company.Month != 2 {
		t.Fatalf("month = %d after one turn, want 2", out.State.Company.Month)
	}
	if out.Turn.Finance == nil {
		t.Fatalf("completed turn has no finance summary")
	}
}

func TestTurnRejectsUnknownAction(t *testing.T) {
	s, _ := newTestServer(1)
	created := startGame(t, s, "Heidi")

	rec := doJSON(t, s.Handler(), http.MethodPost, "/v1/games/turn", created.Token, map[string]string{"action": "yodeling"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unknown action status %d: %s", rec.Code, rec.Body.String())
	}
}

func TestTurnWhileEventPendingConflicts(t *testing.T) {
	s, _ := newTestServer(1)
	created := startGame(t, s, "Heidi")

	err := s.sessions.With(created.State.GameID, func(g *session.Game) error {
		g.Pending = &game.EventPrompt{
			Kind:    game.EventKindQuiz,
			Options: []game.EventOption{{ID: "a", Label: "A"}},
			Answer:  "a",
		}
		return nil
	})
	if err != nil {
		t.Fatalf("seed pending event: %v", err)
	}

	rec := doJSON(t, s.Handler(), http.MethodPost, "/v1/games/turn", created.Token, map[string]string{"action": "nothing"})
	if rec.Code != http.StatusConflict {
		t.Fatalf("turn during pending event: status %d", rec.Code)
	}

	rec = doJSON(t, s.Handler(), http.MethodPost, "/v1/games/event", created.Token, map[string]string{"choice": "a"})
	if rec.Code != http.StatusOK {
		t.Fatalf("resolve pending event: status %d: %s", rec.Code, rec.Body.String())
	}
}

func TestEventChoiceWithoutPending(t *testing.T) {
	s, _ := newTestServer(1)
	created := startGame(t, s, "Heidi")

	rec := doJSON(t, s.Handler(), http.MethodPost, "/v1/games/event", created.Token, map[string]string{"choice": "a"})
	if rec.Code != http.StatusConflict {
		t.Fatalf("choice without pending event: status %d", rec.Code)
	}
}

func TestLeaderboardStartsEmpty(t *testing.T) {
	s, _ := newTestServer(1)
	rec := doJSON(t, s.Handler(), http.MethodGet, "/v1/leaderboard", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("leaderboard status %d", rec.Code)
	}
	var out struct {
		Leaderboard []leaderboard.Entry `json:"leaderboard"`
	}
	decodeBody(t, rec, &out)
	if out.Leaderboard == nil || len(out.Leaderboard) != 0 {
		t.Fatalf("expected empty list, got %v", out.Leaderboard)
	}
}

func TestFinishedRunLandsOnLeaderboard(t *testing.T) {
	s, scores := newTestServer(7)
	created := startGame(t, s, "Heidi")

	// Jump to the final month so the next completed turn ends the year.
	err := s.sessions.With(created.State.GameID, func(g *session.Game) error {
		g.Company.Month = 12
		g.Company.Balance = 50_000
		return nil
	})
	if err != nil {
		t.Fatalf("seed final month: %v", err)
	}

	rec := doJSON(t, s.Handler(), http.MethodPost, "/v1/games/turn", created.Token, map[string]string{"action": "nothing"})
	if rec.Code != http.StatusOK {
		t.Fatalf("turn status %d: %s", rec.Code, rec.Body.String())
	}
	var out turnResponse
	decodeBody(t, rec, &out)
	if out.State.Pending != nil {
		rec = doJSON(t, s.Handler(), http.MethodPost, "/v1/games/event", created.Token, map[string]string{"choice": out.State.Pending.Options[0].ID})
		if rec.Code != http.StatusOK {
			t.Fatalf("event status %d: %s", rec.Code, rec.Body.String())
		}
		decodeBody(t, rec, &out)
	}
	if !out.State.GameOver {
		t.Fatalf("year complete but game not over: %+v", out.State.Company)
	}

	top, err := scores.Top(context.Background())
	if err != nil {
		t.Fatalf("top failed: %v", err)
	}
	if len(top) != 1 || top[0].PlayerName != "Heidi" {
		t.Fatalf("leaderboard = %+v, want one entry for Heidi", top)
	}
	if top[0].MonthsSurvived != 12 {
		t.Fatalf("months survived %d, want 12", top[0].MonthsSurvived)
	}
}

func TestBankruptDeclarationNeverRanks(t *testing.T) {
	s, scores := newTestServer(1)
	created := startGame(t, s, "Heidi")

	err := s.sessions.With(created.State.GameID, func(g *session.Game) error {
		g.Company.Balance = -1
		return nil
	})
	if err != nil {
		t.Fatalf("seed debt: %v", err)
	}

	rec := doJSON(t, s.Handler(), http.MethodPost, "/v1/games/turn", created.Token, map[string]string{"action": "go_bankrupt"})
	if rec.Code != http.StatusOK {
		t.Fatalf("bankruptcy status %d: %s", rec.Code, rec.Body.String())
	}
	var out turnResponse
	decodeBody(t, rec, &out)
	if !out.State.GameOver {
		t.Fatalf("bankruptcy did not end the game")
	}

	top, err := scores.Top(context.Background())
	if err != nil {
		t.Fatalf("top failed: %v", err)
	}
	if len(top) != 0 {
		t.Fatalf("bankrupt run ranked: %+v", top)
	}
}
