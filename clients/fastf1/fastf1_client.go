// Package fastf1 talks to a FastF1-compatible timing sidecar that exposes
// session lap data over HTTP, both from the live feed and from its
// historical cache.
package fastf1

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/aryansoni13/F1-Prediction-model/clients"
	"github.com/aryansoni13/F1-Prediction-model/internal/raceday"
)

const (
	liveSessionEndpoint   = "/api/session/live"
	cachedSessionEndpoint = "/api/session"
)

type Client struct {
	base *clients.BaseClient
}

func NewClient(baseURL string) *Client {
	base := clients.NewBaseClient(baseURL)
	base.SetHeader("Accept", "application/json")
	// The poller runs every 10s; a hung feed request must not span cycles.
	base.SetTimeout(8 * time.Second)
	return &Client{base: base}
}

type sessionResponse struct {
	Laps []raceday.LapRow `json:"laps"`
}

// Load fetches lap rows for a session. With live set it hits the live feed
// endpoint, otherwise the historical/cached one.
func (c *Client) Load(ctx context.Context, year, round int, session string, live bool) ([]raceday.LapRow, error) {
	endpoint := cachedSessionEndpoint
	if live {
		endpoint = liveSessionEndpoint
	}

	query := url.Values{}
	query.Set("year", strconv.Itoa(year))
	query.Set("round", strconv.Itoa(round))
	query.Set("session", session)

	body, err := c.base.GetWithQuery(ctx, endpoint, query)
	if err != nil {
		return nil, fmt.Errorf("load session %d/%d %s (live=%t): %w", year, round, session, live, err)
	}

	var resp sessionResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode session response: %w", err)
	}
	return resp.Laps, nil
}
