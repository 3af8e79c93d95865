package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"reelbox/internal/models"
	"reelbox/internal/repository"
)

func TestFavouritesStore(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown identity loads as empty, not as an error", func(t *testing.T) {
		s := NewFavouritesStore(repository.NewMemoryKV(), nil)

		movies, err := s.Load(ctx, "nobody@example.com")
		require.NoError(t, err)
		require.Empty(t, movies)
	})

	t.Run("save then load round trips the collection", func(t *testing.T) {
		s := NewFavouritesStore(repository.NewMemoryKV(), nil)
		posterPath := "/poster.jpg"
		movies := []models.Movie{
			{ID: 10, Title: "ten", PosterPath: &posterPath, VoteAverage: 7.5},
			{ID: 20, Title: "twenty"},
		}

		require.NoError(t, s.Save(ctx, "u@example.com", movies))

		loaded, err := s.Load(ctx, "u@example.com")
		require.NoError(t, err)
		require.Equal(t, movies, loaded)
	})

	t.Run("save overwrites wholesale", func(t *testing.T) {
		s := NewFavouritesStore(repository.NewMemoryKV(), nil)
		require.NoError(t, s.Save(ctx, "u@example.com", []models.Movie{{ID: 10}, {ID: 20}}))
		require.NoError(t, s.Save(ctx, "u@example.com", []models.Movie{{ID: 30}}))

		loaded, err := s.Load(ctx, "u@example.com")
		require.NoError(t, err)
		require.Equal(t, []models.Movie{{ID: 30}}, loaded)
	})

	t.Run("corrupt stored value degrades to empty and is overwritable", func(t *testing.T) {
		kv := repository.NewMemoryKV()
		s := NewFavouritesStore(kv, nil)
		require.NoError(t, kv.Set(ctx, "favourites:u@example.com", "not json at all"))

		loaded, err := s.Load(ctx, "u@example.com")
		require.NoError(t, err)
		require.Empty(t, loaded)

		require.NoError(t, s.Save(ctx, "u@example.com", []models.Movie{{ID: 10}}))
		loaded, err = s.Load(ctx, "u@example.com")
		require.NoError(t, err)
		require.Equal(t, []models.Movie{{ID: 10}}, loaded)
	})

	t.Run("identities do not share keys", func(t *testing.T) {
		s := NewFavouritesStore(repository.NewMemoryKV(), nil)
		require.NoError(t, s.Save(ctx, "a@example.com", []models.Movie{{ID: 10}}))
		require.NoError(t, s.Save(ctx, "b@example.com", []models.Movie{{ID: 20}}))

		loadedA, err := s.Load(ctx, "a@example.com")
		require.NoError(t, err)
		loadedB, err := s.Load(ctx, "b@example.com")
		require.NoError(t, err)
		require.Equal(t, []models.Movie{{ID: 10}}, loadedA)
		require.Equal(t, []models.Movie{{ID: 20}}, loadedB)
	})
}

func TestSessionStore(t *testing.T) {
	ctx := context.Background()

	t.Run("empty slot loads as logged out", func(t *testing.T) {
		s := NewSessionStore(repository.NewMemoryKV(), nil)

		identity, err := s.Load(ctx)
		require.NoError(t, err)
		require.Nil(t, identity)
	})

	t.Run("save, load, clear", func(t *testing.T) {
		s := NewSessionStore(repository.NewMemoryKV(), nil)
		identity := models.Identity{
			Email:     "u@example.com",
			Name:      "U",
			LoginTime: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		}

		require.NoError(t, s.Save(ctx, identity))

		loaded, err := s.Load(ctx)
		require.NoError(t, err)
		require.NotNil(t, loaded)
		require.Equal(t, identity, *loaded)

		require.NoError(t, s.Clear(ctx))
		loaded, err = s.Load(ctx)
		require.NoError(t, err)
		require.Nil(t, loaded)
	})

	t.Run("corrupt slot means logged out", func(t *testing.T) {
		kv := repository.NewMemoryKV()
		s := NewSessionStore(kv, nil)
		require.NoError(t, kv.Set(ctx, "session:current", "###"))

		identity, err := s.Load(ctx)
		require.NoError(t, err)
		require.Nil(t, identity)
	})
}
