package store

import (
	"context"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"reelbox/internal/models"
)

// Search records a new query. An empty or whitespace query clears the
// search state synchronously and invalidates anything still in flight.
// A non-empty query is debounced: only the last call inside the quiet
// window actually reaches the catalog, and a response belonging to a
// superseded query is discarded when it arrives. The winner is the last
// query issued, never the last response to arrive.
func (s *Store) Search(ctx context.Context, query string) {
	query = strings.TrimSpace(query)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.searchTimer != nil {
		s.searchTimer.Stop()
		s.searchTimer = nil
	}

	if query == "" {
		s.searchSeq++
		s.searchQuery = ""
		s.searchResults = []models.Movie{}
		s.searchLoading = false
		return
	}

	// Invalidate any response still in flight for the previous query.
	s.searchSeq++
	s.searchQuery = query
	s.searchTimer = time.AfterFunc(s.debounceWindow, func() {
		s.issueSearch(ctx, query)
	})
}

func (s *Store) issueSearch(ctx context.Context, query string) {
	s.mu.Lock()
	// A newer Search call may have replaced the query after this timer
	// fired but before it took the lock; the newer timer covers it.
	if s.searchQuery != query {
		s.mu.Unlock()
		return
	}
	s.searchSeq++
	seq := s.searchSeq
	s.searchLoading = true
	s.mu.Unlock()

	results, err := s.catalog.SearchByTitle(ctx, query)

	s.mu.Lock()
	defer s.mu.Unlock()

	if seq != s.searchSeq {
		s.logger.WithFields(logrus.Fields{
			"query": query,
			"seq":   seq,
		}).Debug("Discarding superseded search response")
		return
	}

	s.searchLoading = false
	if err != nil {
		s.logger.WithError(err).WithField("query", query).Error("Search failed")
		return
	}
	if results == nil {
		results = []models.Movie{}
	}
	s.searchResults = results
}

// SearchResults returns the query the current results belong to, a copy
// of the results, and whether a request is still in flight.
func (s *Store) SearchResults() (query string, results []models.Movie, loading bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.searchQuery, append([]models.Movie{}, s.searchResults...), s.searchLoading
}
