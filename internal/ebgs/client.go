// Package ebgs is a read-only client for the EliteBGS v4 REST API.
//
// Factions and systems come wrapped in a {total, docs} envelope; a 200 with
// total == 0 is reported as ErrNotFound, any non-200 status or network
// failure as *UpstreamError. Ticks are a bare array, newest first.
package ebgs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

var (
	// ErrNotFound means the upstream returned zero matching records.
	ErrNotFound = errors.New("ebgs: no matching records")

	// ErrNoTickData means the tick endpoint returned an empty collection.
	ErrNoTickData = errors.New("ebgs: no tick data received")
)

// UpstreamError is a non-200 response or a network failure.
type UpstreamError struct {
	Status string
	Code   int
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("ebgs: upstream error: %s", e.Status)
}

// StatusCode returns the HTTP status code, 0 for network failures.
func (e *UpstreamError) StatusCode() int { return e.Code }

type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// Faction looks up a faction by exact (lowercased) name.
func (c *Client) Faction(ctx context.Context, name string) (*Faction, error) {
	var docs []Faction
	if err := c.getDocs(ctx, "/factions", name, &docs); err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, ErrNotFound
	}
	return &docs[0], nil
}

// System looks up a system status by exact (lowercased) name.
func (c *Client) System(ctx context.Context, name string) (*System, error) {
	var docs []System
	if err := c.getDocs(ctx, "/systems", name, &docs); err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, ErrNotFound
	}
	return &docs[0], nil
}

// LastTick returns the most recent tick. It is fetched fresh on every call.
func (c *Client) LastTick(ctx context.Context) (*Tick, error) {
	body, err := c.get(ctx, c.baseURL+"/ticks")
	if err != nil {
		return nil, err
	}

	var ticks []Tick
	if err := json.Unmarshal(body, &ticks); err != nil {
		return nil, fmt.Errorf("ebgs: failed to decode ticks: %w", err)
	}
	if len(ticks) == 0 {
		return nil, ErrNoTickData
	}
	return &ticks[0], nil
}

// envelope is the {total, docs} wrapper used by the factions and systems
// endpoints.
type envelope struct {
	Total int             `json:"total"`
	Docs  json.RawMessage `json:"docs"`
}

func (c *Client) getDocs(ctx context.Context, path, name string, out any) error {
	u := c.baseURL + path + "?name=" + url.QueryEscape(name)

	body, err := c.get(ctx, u)
	if err != nil {
		return err
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return fmt.Errorf("ebgs: failed to decode %s response: %w", path, err)
	}
	if env.Total == 0 {
		return ErrNotFound
	}
	if err := json.Unmarshal(env.Docs, out); err != nil {
		return fmt.Errorf("ebgs: failed to decode %s docs: %w", path, err)
	}
	return nil
}

func (c *Client) get(ctx context.Context, u string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("ebgs: failed to build request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &UpstreamError{Status: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &UpstreamError{Status: resp.Status, Code: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &UpstreamError{Status: err.Error()}
	}
	return body, nil
}
