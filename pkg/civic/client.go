// Package civic provides a client for the Google Civic Information API
// representatives endpoint.
package civic

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"
)

const defaultBaseURL = "https://www.googleapis.com/civicinfo/v2"

// Client performs Civic Information API operations.
type Client interface {
	// Representatives looks up the political divisions, offices, and
	// officials covering a street address.
	Representatives(ctx context.Context, address string) (*RepresentativesResponse, error)
}

// RepresentativesResponse is the representativeInfoByAddress payload.
// Divisions reference offices by index, and offices reference officials by
// index, so the three collections must be resolved together.
type RepresentativesResponse struct {
	Divisions map[string]Division `json:"divisions"`
	Offices   []Office            `json:"offices"`
	Officials []Official          `json:"officials"`
}

// Division is one political geography (an OCD division) covering the
// queried address, keyed in the response by its division ID.
type Division struct {
	Name          string `json:"name"`
	OfficeIndices []int  `json:"officeIndices"`
}

// Office is an elected position tied to a division.
type Office struct {
	Name            string `json:"name"`
	DivisionID      string `json:"divisionId"`
	OfficialIndices []int  `json:"officialIndices"`
}

// Official is a person holding an office.
type Official struct {
	Name  string `json:"name"`
	Party string `json:"party"`
}

// StatusError reports a non-200 API response.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("civic: unexpected status %d: %s", e.StatusCode, e.Body)
}

// HTTPStatus returns the response status code.
func (e *StatusError) HTTPStatus() int {
	return e.StatusCode
}

// Option configures the client.
type Option func(*httpClient)

// WithBaseURL overrides the default API base URL.
func WithBaseURL(url string) Option {
	return func(c *httpClient) {
		c.baseURL = url
	}
}

// WithHTTPClient overrides the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		c.http = hc
	}
}

// WithRateLimit sets the requests-per-second ceiling. This is a protective
// cap only; request pacing is owned by the caller, which holds calls well
// below the ceiling.
func WithRateLimit(rps float64) Option {
	return func(c *httpClient) {
		c.limiter = rate.NewLimiter(rate.Limit(rps), int(rps))
	}
}

type httpClient struct {
	apiKey  string
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
}

// NewClient creates a Civic Information API client.
func NewClient(apiKey string, opts ...Option) Client {
	c := &httpClient{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		http: &http.Client{
			Timeout: 30 * time.Second,
		},
		limiter: rate.NewLimiter(10, 10),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *httpClient) Representatives(ctx context.Context, address string) (*RepresentativesResponse, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, eris.Wrap(err, "civic: rate limit")
	}

	params := url.Values{
		"key":     {c.apiKey},
		"address": {address},
	}

	reqURL := c.baseURL + "/representatives?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, eris.Wrap(err, "civic: create request")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "civic: send request")
	}
	defer resp.Body.Close() //nolint:errcheck

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "civic: read response")
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	var result RepresentativesResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, eris.Wrap(err, "civic: unmarshal response")
	}

	return &result, nil
}
