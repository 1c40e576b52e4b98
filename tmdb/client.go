package tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"watchlist/errs"
	"watchlist/movie"
)

const (
	DefaultBaseURL      = "https://api.themoviedb.org/3"
	DefaultImageBaseURL = "https://image.tmdb.org/t/p/w500"

	requestTimeout = 10 * time.Second
)

// Client talks to the TMDB API. It implements movie.Lookup.
type Client struct {
	apiKey       string
	baseURL      string
	imageBaseURL string
	http         *http.Client
}

type Options struct {
	APIKey       string
	BaseURL      string
	ImageBaseURL string
}

func NewClient(opts Options) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.ImageBaseURL == "" {
		opts.ImageBaseURL = DefaultImageBaseURL
	}
	return &Client{
		apiKey:       opts.APIKey,
		baseURL:      strings.TrimSuffix(opts.BaseURL, "/"),
		imageBaseURL: strings.TrimSuffix(opts.ImageBaseURL, "/"),
		http: &http.Client{
			Timeout: requestTimeout,
		},
	}
}

// ---- TMDB response types (internal, not exposed to consumers) ----

type searchResponse struct {
	Results []searchEntry `json:"results"`
}

type searchEntry struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	ReleaseDate string `json:"release_date"`
}

type movieDetail struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Overview    string `json:"overview"`
	ReleaseDate string `json:"release_date"`
	PosterPath  string `json:"poster_path"`
}

// Search queries the search endpoint for a title. An empty result set is not
// an error.
func (c *Client) Search(ctx context.Context, query string) ([]movie.SearchResult, error) {
	u := fmt.Sprintf("%s/search/movie?%s", c.baseURL, url.Values{
		"api_key": {c.apiKey},
		"query":   {query},
	}.Encode())

	var resp searchResponse
	if err := c.getJSON(ctx, u, &resp); err != nil {
		return nil, err
	}

	results := make([]movie.SearchResult, 0, len(resp.Results))
	for _, entry := range resp.Results {
		results = append(results, movie.SearchResult{
			ExternalID: entry.ID,
			Title:      entry.Title,
			Year:       releaseYear(entry.ReleaseDate),
		})
	}
	return results, nil
}

// Details fetches the per-id details endpoint and maps it into the domain
// shape. A payload missing required fields is reported as an unavailable
// upstream, not passed through.
func (c *Client) Details(ctx context.Context, externalID int) (movie.Details, error) {
	u := fmt.Sprintf("%s/movie/%d?%s", c.baseURL, externalID, url.Values{
		"api_key": {c.apiKey},
	}.Encode())

	var detail movieDetail
	if err := c.getJSON(ctx, u, &detail); err != nil {
		return movie.Details{}, err
	}

	year := releaseYear(detail.ReleaseDate)
	if detail.Title == "" || detail.Overview == "" || detail.PosterPath == "" || year == 0 {
		return movie.Details{}, errs.Errorf(errs.EUNAVAILABLE, "tmdb: malformed details payload for movie %d", externalID)
	}

	return movie.Details{
		Title:       detail.Title,
		Year:        year,
		Description: detail.Overview,
		PosterURL:   c.imageBaseURL + detail.PosterPath,
	}, nil
}

// getJSON performs a GET and decodes the body, retrying once on a
// transport-level failure. HTTP-level failures are not retried.
func (c *Client) getJSON(ctx context.Context, url string, out interface{}) error {
	resp, err := c.doGet(ctx, url)
	if err != nil {
		resp, err = c.doGet(ctx, url)
	}
	if err != nil {
		return errs.Errorf(errs.EUNAVAILABLE, "tmdb: request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return errs.Errorf(errs.EUNAVAILABLE, "tmdb: unexpected status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errs.Errorf(errs.EUNAVAILABLE, "tmdb: decode response: %v", err)
	}
	return nil
}

func (c *Client) doGet(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	return c.http.Do(req)
}

// releaseYear extracts the 4-digit year prefix of an ISO release date, the
// segment before the first dash. An empty or unparsable date yields 0.
func releaseYear(releaseDate string) int {
	year, err := strconv.Atoi(strings.SplitN(releaseDate, "-", 2)[0])
	if err != nil {
		return 0
	}
	return year
}
