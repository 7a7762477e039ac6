// Package countries fetches the public country directory used to populate
// the destination selector. The upstream is the REST Countries service; the
// client maps its response to value/label pairs and nothing else.
package countries

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"
)

// DefaultBaseURL is the REST Countries endpoint returning the full country
// list. The fields filter keeps the payload to just the names.
const DefaultBaseURL = "https://restcountries.com/v3.1/all?fields=name"

// Option is one selectable country: Value is the lowercased common name,
// Label the display name.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Client fetches the country directory. Zero retries and zero caching: a
// failed fetch is logged by the caller and the list simply stays empty.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient constructs a Client for the given directory URL.
// Pass "" to use DefaultBaseURL.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// restCountry is the subset of the upstream response shape we decode.
type restCountry struct {
	Name struct {
		Common string `json:"common"`
	} `json:"name"`
}

// List fetches the complete directory and returns options sorted by label.
func (c *Client) List(ctx context.Context) ([]Option, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL, nil)
	if err != nil {
		return nil, fmt.Errorf("countries.Client.List: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("countries.Client.List: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("countries.Client.List: unexpected status %d", resp.StatusCode)
	}

	var raw []restCountry
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("countries.Client.List: decode: %w", err)
	}

	options := make([]Option, 0, len(raw))
	for _, country := range raw {
		if country.Name.Common == "" {
			continue
		}
		options = append(options, Option{
			Value: strings.ToLower(country.Name.Common),
			Label: country.Name.Common,
		})
	}
	sort.Slice(options, func(i, j int) bool { return options[i].Label < options[j].Label })

	return options, nil
}
