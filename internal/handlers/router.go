package handlers

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"reelbox/internal/logger"
	"reelbox/internal/services"
	"reelbox/internal/storage"
	"reelbox/internal/store"
)

// Handler bundles the state store and its collaborators for the HTTP
// surface. Every route is a thin translation of a user intent into a
// store or catalog operation.
type Handler struct {
	store    *store.Store
	catalog  *services.CatalogClient
	sessions *storage.SessionStore
	logger   *logrus.Logger
	validate *validator.Validate
}

func New(st *store.Store, catalog *services.CatalogClient, sessions *storage.SessionStore, log *logrus.Logger) *Handler {
	if log == nil {
		log = logger.Get()
	}
	return &Handler{
		store:    st,
		catalog:  catalog,
		sessions: sessions,
		logger:   log,
		validate: validator.New(),
	}
}

func (h *Handler) Router() http.Handler {
	r := mux.NewRouter()
	r.Use(RequestLogger(h.logger))

	r.HandleFunc("/movies", h.ListMovies).Methods(http.MethodGet)
	r.HandleFunc("/movies/featured", h.FeaturedMovie).Methods(http.MethodGet)
	r.HandleFunc("/movies/next", h.LoadNextPage).Methods(http.MethodPost)
	r.HandleFunc("/movies/{id:[0-9]+}", h.MovieDetail).Methods(http.MethodGet)
	r.HandleFunc("/movies/{id:[0-9]+}/trailer", h.MovieTrailer).Methods(http.MethodGet)

	r.HandleFunc("/genres", h.ListGenres).Methods(http.MethodGet)
	r.HandleFunc("/genres/{id:[0-9]+}/movies", h.MoviesByGenre).Methods(http.MethodGet)

	r.HandleFunc("/search", h.Search).Methods(http.MethodGet)

	r.HandleFunc("/auth/login", h.Login).Methods(http.MethodPost)
	r.HandleFunc("/auth/logout", h.Logout).Methods(http.MethodPost)
	r.HandleFunc("/auth/me", h.CurrentIdentity).Methods(http.MethodGet)
	r.HandleFunc("/auth/me", h.UpdateIdentity).Methods(http.MethodPatch)

	r.HandleFunc("/favourites", h.ListFavourites).Methods(http.MethodGet)
	r.HandleFunc("/favourites", h.AddFavourite).Methods(http.MethodPost)
	r.HandleFunc("/favourites", h.ClearFavourites).Methods(http.MethodDelete)
	r.HandleFunc("/favourites/toggle", h.ToggleFavourite).Methods(http.MethodPost)
	r.HandleFunc("/favourites/{id:[0-9]+}", h.RemoveFavourite).Methods(http.MethodDelete)

	return r
}
