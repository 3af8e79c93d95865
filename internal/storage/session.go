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

const sessionKey = "session:current"

// SessionStore holds the single "currently logged in" identity slot.
type SessionStore struct {
	kv     repository.KV
	logger *logrus.Logger
}

func NewSessionStore(kv repository.KV, log *logrus.Logger) *SessionStore {
	if log == nil {
		log = logger.Get()
	}
	return &SessionStore{kv: kv, logger: log}
}

// Load returns the saved identity, or nil when nothing is stored.
// An unparseable entry means logged out, never an error.
func (s *SessionStore) Load(ctx context.Context) (*models.Identity, error) {
	raw, err := s.kv.Get(ctx, sessionKey)
	if errors.Is(err, repository.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	var identity models.Identity
	if err := json.Unmarshal([]byte(raw), &identity); err != nil {
		s.logger.WithError(err).Warn("Discarding corrupt session entry")
		return nil, nil
	}
	if identity.Email == "" {
		return nil, nil
	}
	return &identity, nil
}

func (s *SessionStore) Save(ctx context.Context, identity models.Identity) error {
	raw, err := json.Marshal(identity)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	if err := s.kv.Set(ctx, sessionKey, string(raw)); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

func (s *SessionStore) Clear(ctx context.Context) error {
	if err := s.kv.Delete(ctx, sessionKey); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}
