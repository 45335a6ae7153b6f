package routing

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/sony/gobreaker"

	"github.com/kfenner/roadtrip-planner/internal/domain"
)

// ORSClient implements Provider and PlaceSearcher against an
// OpenRouteService-compatible HTTP API.
//
// It layers three protections over the raw API:
//   - an in-memory TTL cache, so repeated edits to the same trip do not
//     re-query identical legs within a session
//   - retry with exponential backoff on transient failures (429, 5xx)
//   - a circuit breaker that stops hammering the API once it is clearly down
//
// The client is safe for concurrent use.
type ORSClient struct {
	httpClient *http.Client
	apiKey     string
	baseURL    string
	profile    string
	breaker    *gobreaker.CircuitBreaker
	memo       *gocache.Cache
}

// NewORSClient constructs an ORSClient for the given base URL and API key.
func NewORSClient(baseURL, apiKey string) (*ORSClient, error) {
	if apiKey == "" {
		return nil, errors.New("routing: ORS api key is empty")
	}
	if baseURL == "" {
		baseURL = "https://api.openrouteservice.org"
	}

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "ors",
		MaxRequests: 1,
		Interval:    30 * time.Second,
		Timeout:     15 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			slog.Warn("routing circuit breaker state change",
				"breaker", name, "from", from.String(), "to", to.String())
		},
	})

	return &ORSClient{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		apiKey:     apiKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		profile:    "driving-car",
		breaker:    breaker,
		memo:       gocache.New(15*time.Minute, 30*time.Minute),
	}, nil
}

// matrixRequest is the body for the ORS matrix endpoint.
// Locations are [lng, lat] pairs, per GeoJSON convention.
type matrixRequest struct {
	Locations [][2]float64 `json:"locations"`
	Metrics   []string     `json:"metrics"`
}

type matrixResponse struct {
	Durations [][]float64 `json:"durations"`
}

// LegDuration returns the drive time in hours between two coordinates.
func (c *ORSClient) LegDuration(ctx context.Context, from, to domain.Coordinates) (float64, error) {
	key := legKey(from, to)
	if v, ok := c.memo.Get(key); ok {
		return v.(float64), nil
	}

	body, err := json.Marshal(matrixRequest{
		Locations: [][2]float64{{from.Lng, from.Lat}, {to.Lng, to.Lat}},
		Metrics:   []string{"duration"},
	})
	if err != nil {
		return 0, fmt.Errorf("routing: marshal matrix request: %w", err)
	}

	endpoint := c.baseURL + "/v2/matrix/" + c.profile
	resp, err := c.execute(ctx, func() (*http.Request, error) {
		return c.newRequest(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	})
	if err != nil {
		return 0, fmt.Errorf("routing: leg duration %s: %w", key, err)
	}
	defer resp.Body.Close()

	var decoded matrixResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return 0, fmt.Errorf("routing: decode matrix response: %w", err)
	}
	if len(decoded.Durations) < 1 || len(decoded.Durations[0]) < 2 {
		return 0, errors.New("routing: matrix response missing durations")
	}

	hours := decoded.Durations[0][1] / 3600
	c.memo.Set(key, hours, gocache.DefaultExpiration)
	return hours, nil
}

type geocodeResponse struct {
	Features []struct {
		Properties struct {
			Name     string `json:"name"`
			Locality string `json:"locality"`
			Region   string `json:"region"`
			Country  string `json:"country"`
		} `json:"properties"`
		Geometry struct {
			Coordinates []float64 `json:"coordinates"`
		} `json:"geometry"`
	} `json:"features"`
}

// Search finds places matching the query via the geocode endpoint.
func (c *ORSClient) Search(ctx context.Context, query string, limit int) ([]Place, error) {
	query = strings.Join(strings.Fields(query), " ")
	if query == "" {
		return nil, errors.New("routing: search query is empty")
	}
	if limit < 1 {
		limit = 5
	}

	cacheKey := "search:" + strconv.Itoa(limit) + ":" + strings.ToLower(query)
	if v, ok := c.memo.Get(cacheKey); ok {
		return v.([]Place), nil
	}

	endpoint := c.baseURL + "/geocode/search"
	resp, err := c.execute(ctx, func() (*http.Request, error) {
		req, err := c.newRequest(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, err
		}
		q := req.URL.Query()
		q.Set("text", query)
		q.Set("size", strconv.Itoa(limit))
		req.URL.RawQuery = q.Encode()
		return req, nil
	})
	if err != nil {
		return nil, fmt.Errorf("routing: search %q: %w", query, err)
	}
	defer resp.Body.Close()

	var decoded geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("routing: decode geocode response: %w", err)
	}

	places := make([]Place, 0, len(decoded.Features))
	for _, f := range decoded.Features {
		if len(f.Geometry.Coordinates) != 2 {
			continue
		}
		places = append(places, Place{
			Name:    f.Properties.Name,
			City:    f.Properties.Locality,
			State:   f.Properties.Region,
			Country: f.Properties.Country,
			Lng:     f.Geometry.Coordinates[0],
			Lat:     f.Geometry.Coordinates[1],
		})
	}

	c.memo.Set(cacheKey, places, gocache.DefaultExpiration)
	return places, nil
}

// ---- HTTP plumbing ---------------------------------------------------------

type httpStatusError struct {
	Code int
	Body string
}

func (e *httpStatusError) Error() string {
	return fmt.Sprintf("unexpected status %d: %s", e.Code, e.Body)
}

func (c *ORSClient) newRequest(ctx context.Context, method, url string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Authorization", c.apiKey)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

// execute runs the request through the circuit breaker with retries on
// transient failures (network errors, 429, 5xx) using exponential backoff.
func (c *ORSClient) execute(ctx context.Context, makeReq func() (*http.Request, error)) (*http.Response, error) {
	result, err := c.breaker.Execute(func() (interface{}, error) {
		return c.doWithRetry(ctx, makeReq)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) {
			return nil, fmt.Errorf("routing service unavailable: %w", err)
		}
		return nil, err
	}
	return result.(*http.Response), nil
}

func (c *ORSClient) doWithRetry(ctx context.Context, makeReq func() (*http.Request, error)) (*http.Response, error) {
	const maxAttempts = 4
	backoff := 200 * time.Millisecond

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		req, err := makeReq()
		if err != nil {
			return nil, fmt.Errorf("make request: %w", err)
		}

		resp, err := c.do(req)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		var he *httpStatusError
		if errors.As(err, &he) {
			switch he.Code {
			case http.StatusTooManyRequests,
				http.StatusInternalServerError,
				http.StatusBadGateway,
				http.StatusServiceUnavailable,
				http.StatusGatewayTimeout:
				// transient, fall through to retry
			default:
				return nil, err
			}
		}

		if attempt < maxAttempts {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
			backoff *= 2
		}
	}

	return nil, fmt.Errorf("after %d attempts: %w", maxAttempts, lastErr)
}

func (c *ORSClient) do(req *http.Request) (*http.Response, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 400 {
		b, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		return nil, &httpStatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(b))}
	}
	return resp, nil
}
