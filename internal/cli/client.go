package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"tycoon/internal/api"
	"tycoon/internal/game"
	"tycoon/internal/leaderboard"
)

type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type NewGameReply struct {
	Token string        `json:"token"`
	State api.GameState `json:"state"`
}

type TurnReply struct {
	Turn  game.TurnResult `json:"turn"`
	State api.GameState   `json:"state"`
}

func (c *Client) NewGame(ctx context.Context, playerName string) (NewGameReply, error) {
	var out NewGameReply
	err := c.jsonRequest(ctx, http.MethodPost, "/v1/games", "", map[string]any{
		"player_name": playerName,
	}, &out)
	return out, err
}

func (c *Client) CurrentState(ctx context.Context, token string) (api.GameState, error) {
	var out api.GameState
	err := c.jsonRequest(ctx, http.MethodGet, "/v1/games/current", token, nil, &out)
	return out, err
}

func (c *Client) PlayTurn(ctx context.Context, token string, action string) (TurnReply, error) {
	var out TurnReply
	err := c.jsonRequest(ctx, http.MethodPost, "/v1/games/turn", token, map[string]any{
		"action": action,
	}, &out)
	return out, err
}

func (c *Client) ResolveEvent(ctx context.Context, token string, choice string) (TurnReply, error) {
	var out TurnReply
	err := c.jsonRequest(ctx, http.MethodPost, "/v1/games/event", token, map[string]any{
		"choice": choice,
	}, &out)
	return out, err
}

func (c *Client) Leaderboard(ctx context.Context) ([]leaderboard.Entry, error) {
	var out struct {
		Leaderboard []leaderboard.Entry `json:"leaderboard"`
	}
	err := c.jsonRequest(ctx, http.MethodGet, "/v1/leaderboard", "", nil, &out)
	return out.Leaderboard, err
}

func (c *Client) jsonRequest(ctx context.Context, method, path, token string, in any, out any) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("api status %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
