// Package client talks to the game API over HTTP.
package client

import (
	"bytes"
	"context"
	"dark_patterns_game/internal/model"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// APIError is a non-2xx answer from the server.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var e struct {
			Error string `json:"error"`
		}
		msg := strings.TrimSpace(string(raw))
		if json.Unmarshal(raw, &e) == nil && e.Error != "" {
			msg = e.Error
		}
		return &APIError{Status: resp.StatusCode, Message: msg}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

// Register creates a participant and returns its user id.
func (c *Client) Register(ctx context.Context, name string) (string, error) {
	var resp struct {
		UserID string `json:"userId"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/register", map[string]string{"name": name}, &resp); err != nil {
		return "", err
	}
	return resp.UserID, nil
}

// SubmitScore stores seconds as the user's score and returns the stored value.
func (c *Client) SubmitScore(ctx context.Context, userID string, seconds int) (int, error) {
	var resp struct {
		Score int `json:"score"`
	}
	body := map[string]interface{}{"userId": userID, "score": seconds}
	if err := c.do(ctx, http.MethodPost, "/api/score", body, &resp); err != nil {
		return 0, err
	}
	return resp.Score, nil
}

// Scores fetches the leaderboard with its statistics.
func (c *Client) Scores(ctx context.Context) (*model.ScoreBoard, error) {
	var resp struct {
		Data model.ScoreBoard `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/scores", nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}
