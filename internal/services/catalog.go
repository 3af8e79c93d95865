package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"reelbox/internal/models"
)

const (
	defaultBaseURL   = "https://api.themoviedb.org/3"
	defaultTimeout   = 30 * time.Second
	maxRetries       = 3
	retryDelay       = 2 * time.Second
	requestsPerSec   = 4
	userAgent        = "reelbox/1.0"
	maxResponseSize  = 5 * 1024 * 1024
	trailerSite      = "YouTube"
	trailerTypeToken = "trailer"
)

// CatalogClient talks to the TMDB v3 API. It owns no state beyond the
// connection and rate limiter; every call is plain request/response.
type CatalogClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *logrus.Logger
	limiter    *rate.Limiter
	maxRetries int
	retryDelay time.Duration
}

type CatalogConfig struct {
	BaseURL    string
	APIKey     string
	Timeout    time.Duration
	MaxRetries int
	RetryDelay time.Duration
	Logger     *logrus.Logger
}

func NewCatalogClient(config *CatalogConfig) *CatalogClient {
	if config.Logger == nil {
		config.Logger = logrus.New()
	}
	if config.BaseURL == "" {
		config.BaseURL = defaultBaseURL
	}
	if config.Timeout == 0 {
		config.Timeout = defaultTimeout
	}
	if config.MaxRetries == 0 {
		config.MaxRetries = maxRetries
	}
	if config.RetryDelay == 0 {
		config.RetryDelay = retryDelay
	}

	return &CatalogClient{
		baseURL: config.BaseURL,
		apiKey:  config.APIKey,
		httpClient: &http.Client{
			Timeout: config.Timeout,
			Transport: &http.Transport{
				MaxIdleConns:          100,
				MaxIdleConnsPerHost:   10,
				IdleConnTimeout:       90 * time.Second,
				TLSHandshakeTimeout:   10 * time.Second,
				ExpectContinueTimeout: 1 * time.Second,
			},
		},
		logger:     config.Logger,
		limiter:    rate.NewLimiter(rate.Limit(requestsPerSec), requestsPerSec),
		maxRetries: config.MaxRetries,
		retryDelay: config.RetryDelay,
	}
}

// ListPopular fetches one page of the popular-movies listing.
func (c *CatalogClient) ListPopular(ctx context.Context, page int) (*models.PagedMovies, error) {
	params := url.Values{}
	params.Set("page", strconv.Itoa(page))

	body, err := c.makeRequest(ctx, fmt.Sprintf("%s/movie/popular?%s", c.baseURL, params.Encode()))
	if err != nil {
		return nil, err
	}

	var paged models.PagedMovies
	if err := json.Unmarshal(body, &paged); err != nil {
		return nil, fmt.Errorf("failed to decode popular listing: %w", err)
	}
	return &paged, nil
}

// ListGenres fetches the stable genre reference set.
func (c *CatalogClient) ListGenres(ctx context.Context) ([]models.Genre, error) {
	body, err := c.makeRequest(ctx, c.baseURL+"/genre/movie/list")
	if err != nil {
		return nil, err
	}

	var list models.GenreList
	if err := json.Unmarshal(body, &list); err != nil {
		return nil, fmt.Errorf("failed to decode genre list: %w", err)
	}
	return list.Genres, nil
}

// ListByGenre fetches a page of the discover listing filtered to one genre,
// sorted by descending popularity.
func (c *CatalogClient) ListByGenre(ctx context.Context, genreID, page int) (*models.PagedMovies, error) {
	params := url.Values{}
	params.Set("with_genres", strconv.Itoa(genreID))
	params.Set("page", strconv.Itoa(page))
	params.Set("sort_by", "popularity.desc")

	body, err := c.makeRequest(ctx, fmt.Sprintf("%s/discover/movie?%s", c.baseURL, params.Encode()))
	if err != nil {
		return nil, err
	}

	var paged models.PagedMovies
	if err := json.Unmarshal(body, &paged); err != nil {
		return nil, fmt.Errorf("failed to decode genre listing: %w", err)
	}
	return &paged, nil
}

// SearchByTitle runs a title search. An empty or whitespace query returns
// an empty result without touching the network.
func (c *CatalogClient) SearchByTitle(ctx context.Context, query string) ([]models.Movie, error) {
	if strings.TrimSpace(query) == "" {
		return []models.Movie{}, nil
	}

	params := url.Values{}
	params.Set("query", query)

	body, err := c.makeRequest(ctx, fmt.Sprintf("%s/search/movie?%s", c.baseURL, params.Encode()))
	if err != nil {
		return nil, err
	}

	var paged models.PagedMovies
	if err := json.Unmarshal(body, &paged); err != nil {
		return nil, fmt.Errorf("failed to decode search results: %w", err)
	}
	if paged.Results == nil {
		return []models.Movie{}, nil
	}
	return paged.Results, nil
}

// GetDetail fetches the full record for one movie.
func (c *CatalogClient) GetDetail(ctx context.Context, movieID int) (*models.MovieDetail, error) {
	body, err := c.makeRequest(ctx, fmt.Sprintf("%s/movie/%d", c.baseURL, movieID))
	if err != nil {
		return nil, err
	}

	var detail models.MovieDetail
	if err := json.Unmarshal(body, &detail); err != nil {
		return nil, fmt.Errorf("failed to decode movie detail: %w", err)
	}
	return &detail, nil
}

// GetTrailer returns the first YouTube video whose type mentions "trailer",
// case-insensitively. No trailer is not an error: the result is just nil.
func (c *CatalogClient) GetTrailer(ctx context.Context, movieID int) (*models.Video, error) {
	body, err := c.makeRequest(ctx, fmt.Sprintf("%s/movie/%d/videos", c.baseURL, movieID))
	if err != nil {
		return nil, err
	}

	var list models.VideoList
	if err := json.Unmarshal(body, &list); err != nil {
		return nil, fmt.Errorf("failed to decode video list: %w", err)
	}

	for _, video := range list.Results {
		if video.Site == trailerSite && strings.Contains(strings.ToLower(video.Type), trailerTypeToken) {
			v := video
			return &v, nil
		}
	}
	return nil, nil
}

func (c *CatalogClient) makeRequest(ctx context.Context, requestURL string) ([]byte, error) {
	var rErr error

	for attempt := 0; attempt < c.maxRetries; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter interrupted: %w", err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}

		req.Header.Set("User-Agent", userAgent)
		req.Header.Set("Accept", "application/json")
		if c.apiKey != "" {
			req.Header.Set("Authorization", "Bearer "+c.apiKey)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			rErr = fmt.Errorf("failed to make HTTP request: %w", err)
			c.retryLogger(attempt, requestURL, err)
			if !c.waitForRetry(ctx, attempt) {
				break
			}
			continue
		}

		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			rErr = fmt.Errorf("API returned status code %d", resp.StatusCode)
			c.retryLogger(attempt, requestURL, rErr)
			if !c.waitForRetry(ctx, attempt) {
				break
			}
			continue
		}

		body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
		resp.Body.Close()
		if err != nil {
			rErr = fmt.Errorf("failed to read response body: %w", err)
			c.retryLogger(attempt, requestURL, err)
			if !c.waitForRetry(ctx, attempt) {
				break
			}
			continue
		}

		c.logger.WithFields(logrus.Fields{
			"url":           requestURL,
			"attempt":       attempt,
			"status":        resp.StatusCode,
			"response_size": len(body),
		}).Debug("API request successful")

		return body, nil
	}

	return nil, fmt.Errorf("failed after %d attempts: %w", c.maxRetries, rErr)
}

func (c *CatalogClient) retryLogger(attempt int, requestURL string, err error) {
	c.logger.WithFields(logrus.Fields{
		"attempt": attempt + 1,
		"url":     requestURL,
		"error":   err.Error(),
	}).Warn("API request failed, retrying...")
}

// waitForRetry sleeps before the next attempt, returning false when the
// context was cancelled or this was the last attempt.
func (c *CatalogClient) waitForRetry(ctx context.Context, attempt int) bool {
	if attempt >= c.maxRetries-1 {
		return false
	}
	delay := time.Duration(attempt+1) * c.retryDelay
	c.logger.WithField("delay", delay).Debug("waiting before retry")
	select {
	case <-time.After(delay):
		return true
	case <-ctx.Done():
		return false
	}
}
