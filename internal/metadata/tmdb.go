package metadata

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/goccy/go-json"
	"github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/JustinTDCT/CineCurator/internal/metrics"
	"github.com/JustinTDCT/CineCurator/internal/models"
)

const DefaultBaseURL = "https://api.themoviedb.org/3"

type TMDBOptions struct {
	APIKey         string // v3 key, sent as api_key
	ReadToken      string // v4 read access token, sent as a bearer token
	BaseURL        string
	Timeout        time.Duration
	RequestsPerSec float64
	Burst          int
	HTTPClient     *http.Client
}

// TMDBClient calls the TMDB v3 API. All requests share one rate limiter and
// one circuit breaker.
type TMDBClient struct {
	apiKey    string
	readToken string
	baseURL   string
	client    *http.Client
	limiter   *rate.Limiter
	breaker   *gobreaker.CircuitBreaker[[]byte]
}

func NewTMDBClient(opts TMDBOptions) *TMDBClient {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	if opts.RequestsPerSec <= 0 {
		opts.RequestsPerSec = 40
	}
	if opts.Burst <= 0 {
		opts.Burst = 20
	}
	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: opts.Timeout}
	}
	return &TMDBClient{
		apiKey:    opts.APIKey,
		readToken: opts.ReadToken,
		baseURL:   opts.BaseURL,
		client:    client,
		limiter:   rate.NewLimiter(rate.Limit(opts.RequestsPerSec), opts.Burst),
		breaker:   NewBreaker("tmdb"),
	}
}

func (c *TMDBClient) Name() string { return "tmdb" }

// SearchMovies runs /search/movie. Adult titles are always excluded.
func (c *TMDBClient) SearchMovies(ctx context.Context, query string, page int) (*SearchPage, error) {
	if page < 1 {
		page = 1
	}
	params := url.Values{}
	params.Set("query", query)
	params.Set("include_adult", "false")
	params.Set("page", strconv.Itoa(page))

	var out SearchPage
	if err := c.get(ctx, "search", "/search/movie", params, &out); err != nil {
		return nil, err
	}
	if out.Results == nil {
		out.Results = []models.SearchCandidate{}
	}
	return &out, nil
}

// MovieDetails fetches one movie with its credits appended.
func (c *TMDBClient) MovieDetails(ctx context.Context, id int) (*MovieDetails, error) {
	params := url.Values{}
	params.Set("append_to_response", "credits")

	var out MovieDetails
	if err := c.get(ctx, "details", "/movie/"+strconv.Itoa(id), params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *TMDBClient) get(ctx context.Context, endpoint, path string, params url.Values, dest interface{}) error {
	if c.apiKey == "" && c.readToken == "" {
		return ErrNotConfigured
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	body, err := c.breaker.Execute(func() ([]byte, error) {
		return c.do(ctx, path, params)
	})
	metrics.TMDBRequests.WithLabelValues(endpoint, requestOutcome(err)).Inc()
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, dest); err != nil {
		return fmt.Errorf("tmdb: decode %s: %w", path, err)
	}
	return nil
}

func (c *TMDBClient) do(ctx context.Context, path string, params url.Values) ([]byte, error) {
	if c.readToken == "" {
		params.Set("api_key", c.apiKey)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if c.readToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.readToken)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return nil, &StatusError{Path: path, Code: resp.StatusCode}
	}
	return io.ReadAll(resp.Body)
}

func requestOutcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, context.Canceled):
		return "cancelled"
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		return "rejected"
	default:
		return "error"
	}
}
