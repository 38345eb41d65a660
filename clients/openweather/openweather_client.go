// Package openweather proxies the OpenWeatherMap API for race locations.
package openweather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/aryansoni13/F1-Prediction-model/clients"
)

const (
	currentEndpoint  = "/data/2.5/weather"
	forecastEndpoint = "/data/2.5/forecast"

	// DefaultBaseURL is the public OpenWeatherMap API host.
	DefaultBaseURL = "https://api.openweathermap.org"
)

type Client struct {
	base *clients.BaseClient
}

func NewClient(baseURL string) *Client {
	base := clients.NewBaseClient(baseURL)
	// Weather is served on request paths; keep a hung provider from
	// pinning handlers for the full default timeout.
	base.SetTimeout(10 * time.Second)
	return &Client{base: base}
}

// FetchCurrent returns the current-conditions payload for a coordinate
// pair, untouched, so the dashboard consumes the provider's shape directly.
func (c *Client) FetchCurrent(ctx context.Context, lat, lon float64, apiKey string) (json.RawMessage, error) {
	return c.fetch(ctx, currentEndpoint, lat, lon, apiKey)
}

// FetchForecast returns the 5-day forecast payload for a coordinate pair.
func (c *Client) FetchForecast(ctx context.Context, lat, lon float64, apiKey string) (json.RawMessage, error) {
	return c.fetch(ctx, forecastEndpoint, lat, lon, apiKey)
}

func (c *Client) fetch(ctx context.Context, endpoint string, lat, lon float64, apiKey string) (json.RawMessage, error) {
	query := url.Values{}
	query.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	query.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	query.Set("appid", apiKey)
	query.Set("units", "metric")

	body, err := c.base.GetWithQuery(ctx, endpoint, query)
	if err != nil {
		return nil, fmt.Errorf("weather API error: %w", err)
	}
	return json.RawMessage(body), nil
}
