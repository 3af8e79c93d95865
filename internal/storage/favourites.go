package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"reelbox/internal/logger"
	"reelbox/internal/models"
	"reelbox/internal/repository"
)

const favouritesKeyPrefix = "favourites:"

// FavouritesStore persists one ordered movie list per identity email.
// Saves overwrite the previous value wholesale; there is no merging.
type FavouritesStore struct {
	kv     repository.KV
	logger *logrus.Logger
}

func NewFavouritesStore(kv repository.KV, log *logrus.Logger) *FavouritesStore {
	if log == nil {
		log = logger.Get()
	}
	return &FavouritesStore{kv: kv, logger: log}
}

func favouritesKey(email string) string {
	return favouritesKeyPrefix + email
}

// Load returns the saved collection for the identity. A key that was never
// written, and a stored value that no longer parses, both come back as an
// empty collection; corrupt entries are simply overwritten on the next save.
func (s *FavouritesStore) Load(ctx context.Context, email string) ([]models.Movie, error) {
	raw, err := s.kv.Get(ctx, favouritesKey(email))
	if errors.Is(err, repository.ErrKeyNotFound) {
		return []models.Movie{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load favourites: %w", err)
	}

	var movies []models.Movie
	if err := json.Unmarshal([]byte(raw), &movies); err != nil {
		s.logger.WithFields(logrus.Fields{
			"email": email,
			"error": err.Error(),
		}).Warn("Discarding corrupt favourites entry")
		return []models.Movie{}, nil
	}
	if movies == nil {
		movies = []models.Movie{}
	}
	return movies, nil
}

// Save replaces the persisted collection for the identity.
func (s *FavouritesStore) Save(ctx context.Context, email string, movies []models.Movie) error {
	if movies == nil {
		movies = []models.Movie{}
	}
	raw, err := json.Marshal(movies)
	if err != nil {
		return fmt.Errorf("failed to marshal favourites: %w", err)
	}
	if err := s.kv.Set(ctx, favouritesKey(email), string(raw)); err != nil {
		return fmt.Errorf("failed to save favourites: %w", err)
	}
	return nil
}
