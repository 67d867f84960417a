// Package geocode is a thin client for the forward-geocoding service.
// Input is a free-text address; output is coordinates plus the provider's
// formatted address. An address the provider cannot resolve is reported
// as ErrNoResult and treated by callers as a validation error.
package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// ErrNoResult means the provider returned an empty result set for the
// address, i.e. the address is invalid.
var ErrNoResult = errors.New("geocode: no result for address")

// Result is one resolved address.
type Result struct {
	Latitude         float64 `json:"latitude"`
	Longitude        float64 `json:"longitude"`
	FormattedAddress string  `json:"formatted_address"`
}

// Client calls the geocoding HTTP API.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// New returns a Client for the given endpoint. baseURL must point at the
// provider's forward-geocode resource; the query and key are appended as
// URL parameters.
func New(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// Geocode resolves a free-text address. Only the first candidate is
// returned; the providers order candidates by relevance.
func (c *Client) Geocode(ctx context.Context, address string) (Result, error) {
	if c.baseURL == "" {
		return Result{}, errors.New("geocode: no endpoint configured")
	}
	q := url.Values{}
	q.Set("q", address)
	if c.apiKey != "" {
		q.Set("key", c.apiKey)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return Result{}, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return Result{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Result{}, fmt.Errorf("geocode: provider returned %s", resp.Status)
	}
	var body struct {
		Results []Result `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Result{}, err
	}
	if len(body.Results) == 0 {
		return Result{}, ErrNoResult
	}
	return body.Results[0], nil
}
