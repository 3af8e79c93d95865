package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"reelbox/internal/models"
	"reelbox/internal/storage"
)

const (
	seedPages             = 3
	defaultDebounceWindow = 500 * time.Millisecond
)

var (
	ErrNotAuthenticated = errors.New("no active identity")
	ErrAlreadyFavourite = errors.New("movie already in favourites")
	ErrNotFavourite     = errors.New("movie not in favourites")
)

// PageState is the pagination machine for the popular listing.
type PageState int

const (
	PageIdle PageState = iota
	PageLoading
	PageExhausted
)

func (s PageState) String() string {
	switch s {
	case PageIdle:
		return "idle"
	case PageLoading:
		return "loading"
	case PageExhausted:
		return "exhausted"
	default:
		return "unknown"
	}
}

// Catalog is the slice of the catalog client the store drives itself.
// Detail, trailer and genre lookups stay request/response in the handlers.
type Catalog interface {
	ListPopular(ctx context.Context, page int) (*models.PagedMovies, error)
	SearchByTitle(ctx context.Context, query string) ([]models.Movie, error)
}

// Store is the single authoritative holder of listing, pagination, search
// and favourites state. All mutation goes through its methods; the mutex
// makes it the only writer.
type Store struct {
	mu sync.Mutex

	catalog    Catalog
	favourites *storage.FavouritesStore
	logger     *logrus.Logger

	movies     []models.Movie
	page       int
	totalPages int
	pageState  PageState

	activeEmail     string
	favouriteMovies []models.Movie

	searchQuery   string
	searchResults []models.Movie
	searchLoading bool
	searchSeq     uint64
	searchTimer   *time.Timer

	debounceWindow time.Duration
}

type Config struct {
	Catalog        Catalog
	Favourites     *storage.FavouritesStore
	Logger         *logrus.Logger
	DebounceWindow time.Duration
}

func New(config Config) *Store {
	if config.Logger == nil {
		config.Logger = logrus.New()
	}
	if config.DebounceWindow == 0 {
		config.DebounceWindow = defaultDebounceWindow
	}
	return &Store{
		catalog:         config.Catalog,
		favourites:      config.Favourites,
		logger:          config.Logger,
		movies:          []models.Movie{},
		favouriteMovies: []models.Movie{},
		searchResults:   []models.Movie{},
		debounceWindow:  config.DebounceWindow,
	}
}

// LoadInitialListing seeds the listing with the first pages of the popular
// endpoint, in service order, and resets the pagination machine. On failure
// the listing is left empty and the error goes back to the caller.
//
// A call arriving while another seed is in flight returns nil without
// waiting; such callers observe the pre-seed state (an empty listing)
// until the in-flight seed completes.
func (s *Store) LoadInitialListing(ctx context.Context) error {
	s.mu.Lock()
	if s.pageState == PageLoading {
		s.mu.Unlock()
		return nil
	}
	s.pageState = PageLoading
	s.mu.Unlock()

	var seeded []models.Movie
	var totalPages int
	var loadErr error

	for page := 1; page <= seedPages; page++ {
		paged, err := s.catalog.ListPopular(ctx, page)
		if err != nil {
			loadErr = fmt.Errorf("failed to seed listing page %d: %w", page, err)
			break
		}
		seeded = append(seeded, paged.Results...)
		totalPages = paged.TotalPages
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if loadErr != nil {
		s.movies = []models.Movie{}
		s.page = 0
		s.totalPages = 0
		s.pageState = PageIdle
		return loadErr
	}

	s.movies = seeded
	s.page = seedPages
	s.totalPages = totalPages
	if s.page >= s.totalPages {
		s.pageState = PageExhausted
	} else {
		s.pageState = PageIdle
	}

	s.logger.WithFields(logrus.Fields{
		"movies":      len(s.movies),
		"page":        s.page,
		"total_pages": s.totalPages,
	}).Info("Initial listing loaded")
	return nil
}

// LoadNextPage appends one more page to the listing. Calls made while a
// page is already in flight, after the listing is exhausted, or when no
// more pages are available (including before a listing was ever seeded)
// are dropped without issuing a request. Duplicate ids across pages are
// kept as the service returns them.
func (s *Store) LoadNextPage(ctx context.Context) error {
	s.mu.Lock()
	if s.pageState != PageIdle || s.page >= s.totalPages {
		state := s.pageState
		s.mu.Unlock()
		s.logger.WithField("state", state.String()).Debug("Dropping page load")
		return nil
	}
	s.pageState = PageLoading
	nextPage := s.page + 1
	s.mu.Unlock()

	paged, err := s.catalog.ListPopular(ctx, nextPage)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.pageState = PageIdle
		return fmt.Errorf("failed to load page %d: %w", nextPage, err)
	}

	s.movies = append(s.movies, paged.Results...)
	s.page = nextPage
	s.totalPages = paged.TotalPages
	if s.page >= s.totalPages {
		s.pageState = PageExhausted
	} else {
		s.pageState = PageIdle
	}
	return nil
}

// SetActiveIdentity switches the favourites partition. A non-empty email
// loads that identity's persisted collection over whatever is in memory;
// an empty email clears in-memory favourites and leaves persisted data
// untouched.
func (s *Store) SetActiveIdentity(ctx context.Context, email string) error {
	if email == "" {
		s.mu.Lock()
		s.activeEmail = ""
		s.favouriteMovies = []models.Movie{}
		s.mu.Unlock()
		return nil
	}

	loaded, err := s.favourites.Load(ctx, email)
	if err != nil {
		return fmt.Errorf("failed to load favourites for %s: %w", email, err)
	}

	s.mu.Lock()
	s.activeEmail = email
	s.favouriteMovies = loaded
	s.mu.Unlock()

	s.logger.WithFields(logrus.Fields{
		"email":      email,
		"favourites": len(loaded),
	}).Info("Active identity changed")
	return nil
}

// AddFavourite inserts the movie into the active identity's collection and
// persists the whole collection in the same step.
func (s *Store) AddFavourite(ctx context.Context, movie models.Movie) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.activeEmail == "" {
		return ErrNotAuthenticated
	}
	for _, fav := range s.favouriteMovies {
		if fav.ID == movie.ID {
			return ErrAlreadyFavourite
		}
	}

	updated := append(append([]models.Movie{}, s.favouriteMovies...), movie)
	if err := s.favourites.Save(ctx, s.activeEmail, updated); err != nil {
		return err
	}
	s.favouriteMovies = updated
	return nil
}

// RemoveFavourite drops the movie with the given id, persisting the
// shortened collection.
func (s *Store) RemoveFavourite(ctx context.Context, movieID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.activeEmail == "" {
		return ErrNotAuthenticated
	}

	updated := make([]models.Movie, 0, len(s.favouriteMovies))
	found := false
	for _, fav := range s.favouriteMovies {
		if fav.ID == movieID {
			found = true
			continue
		}
		updated = append(updated, fav)
	}
	if !found {
		return ErrNotFavourite
	}

	if err := s.favourites.Save(ctx, s.activeEmail, updated); err != nil {
		return err
	}
	s.favouriteMovies = updated
	return nil
}

// ToggleFavourite removes the movie when present, adds it otherwise.
// It reports whether the movie ended up in the collection.
func (s *Store) ToggleFavourite(ctx context.Context, movie models.Movie) (bool, error) {
	err := s.AddFavourite(ctx, movie)
	if errors.Is(err, ErrAlreadyFavourite) {
		if err := s.RemoveFavourite(ctx, movie.ID); err != nil {
			return true, err
		}
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// ClearFavourites empties the active identity's collection and persists
// the empty collection.
func (s *Store) ClearFavourites(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.activeEmail == "" {
		return ErrNotAuthenticated
	}
	if err := s.favourites.Save(ctx, s.activeEmail, []models.Movie{}); err != nil {
		return err
	}
	s.favouriteMovies = []models.Movie{}
	return nil
}

// IsFavourite is a pure membership query against in-memory favourites.
func (s *Store) IsFavourite(movieID int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, fav := range s.favouriteMovies {
		if fav.ID == movieID {
			return true
		}
	}
	return false
}

// Movies returns a copy of the current listing.
func (s *Store) Movies() []models.Movie {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Movie{}, s.movies...)
}

// Pagination reports the current cursor, the machine state and whether
// more pages are available.
func (s *Store) Pagination() (page int, state PageState, hasMore bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.page, s.pageState, s.page < s.totalPages
}

// Favourites returns a copy of the active identity's in-memory collection.
func (s *Store) Favourites() []models.Movie {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Movie{}, s.favouriteMovies...)
}

// ActiveEmail returns the favourites partition key, empty when logged out.
func (s *Store) ActiveEmail() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeEmail
}
