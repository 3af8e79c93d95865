package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"reelbox/internal/models"
	"reelbox/internal/services"
)

type listingResponse struct {
	Movies  []models.Movie `json:"movies"`
	Page    int            `json:"page"`
	State   string         `json:"state"`
	HasMore bool           `json:"has_more"`
}

type featuredResponse struct {
	Movie     models.Movie `json:"movie"`
	PosterURL string       `json:"poster_url"`
}

type searchResponse struct {
	Query   string         `json:"query"`
	Results []models.Movie `json:"results"`
	Loading bool           `json:"loading"`
}

type trailerResponse struct {
	Key  string `json:"key"`
	Name string `json:"name"`
}

// ListMovies returns the current listing, seeding it on first use.
// A request racing an in-flight seed gets the state as it stands, which
// can be an empty listing until the seed lands.
func (h *Handler) ListMovies(w http.ResponseWriter, r *http.Request) {
	movies := h.store.Movies()
	page, _, _ := h.store.Pagination()
	if len(movies) == 0 && page == 0 {
		if err := h.store.LoadInitialListing(r.Context()); err != nil {
			h.logger.WithError(err).Error("Failed to load initial listing")
			respondError(w, http.StatusBadGateway, "catalog service unavailable")
			return
		}
		movies = h.store.Movies()
	}

	page, state, hasMore := h.store.Pagination()
	respondJSON(w, http.StatusOK, listingResponse{
		Movies:  movies,
		Page:    page,
		State:   state.String(),
		HasMore: hasMore,
	})
}

// FeaturedMovie returns the first listing entry, the one pinned above
// the listing grid.
func (h *Handler) FeaturedMovie(w http.ResponseWriter, r *http.Request) {
	movies := h.store.Movies()
	if len(movies) == 0 {
		respondError(w, http.StatusNotFound, "listing is empty")
		return
	}
	respondJSON(w, http.StatusOK, featuredResponse{
		Movie:     movies[0],
		PosterURL: services.ImageURL(movies[0].PosterPath),
	})
}

// LoadNextPage advances the pagination cursor by one page. Rapid repeats
// while a load is in flight fall through to the store's single-flight
// guard and simply report the current state.
func (h *Handler) LoadNextPage(w http.ResponseWriter, r *http.Request) {
	if err := h.store.LoadNextPage(r.Context()); err != nil {
		h.logger.WithError(err).Error("Failed to load next page")
		respondError(w, http.StatusBadGateway, "catalog service unavailable")
		return
	}

	page, state, hasMore := h.store.Pagination()
	respondJSON(w, http.StatusOK, listingResponse{
		Movies:  h.store.Movies(),
		Page:    page,
		State:   state.String(),
		HasMore: hasMore,
	})
}

// MovieDetail proxies the per-id detail lookup.
func (h *Handler) MovieDetail(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid movie id")
		return
	}

	detail, err := h.catalog.GetDetail(r.Context(), id)
	if err != nil {
		h.logger.WithError(err).WithField("movie_id", id).Error("Failed to fetch detail")
		respondError(w, http.StatusBadGateway, "catalog service unavailable")
		return
	}
	respondJSON(w, http.StatusOK, detail)
}

// MovieTrailer returns the selected trailer, or 404 when the movie has none.
func (h *Handler) MovieTrailer(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid movie id")
		return
	}

	trailer, err := h.catalog.GetTrailer(r.Context(), id)
	if err != nil {
		h.logger.WithError(err).WithField("movie_id", id).Error("Failed to fetch trailer")
		respondError(w, http.StatusBadGateway, "catalog service unavailable")
		return
	}
	if trailer == nil {
		respondError(w, http.StatusNotFound, "no trailer available")
		return
	}
	respondJSON(w, http.StatusOK, trailerResponse{Key: trailer.Key, Name: trailer.Name})
}

// ListGenres returns the genre reference set.
func (h *Handler) ListGenres(w http.ResponseWriter, r *http.Request) {
	genres, err := h.catalog.ListGenres(r.Context())
	if err != nil {
		h.logger.WithError(err).Error("Failed to fetch genres")
		respondError(w, http.StatusBadGateway, "catalog service unavailable")
		return
	}
	respondJSON(w, http.StatusOK, genres)
}

// MoviesByGenre returns one page of the genre-filtered discover listing.
func (h *Handler) MoviesByGenre(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid genre id")
		return
	}

	page := 1
	if raw := r.URL.Query().Get("page"); raw != "" {
		page, err = strconv.Atoi(raw)
		if err != nil || page < 1 {
			respondError(w, http.StatusBadRequest, "invalid page")
			return
		}
	}

	paged, err := h.catalog.ListByGenre(r.Context(), id, page)
	if err != nil {
		h.logger.WithError(err).WithField("genre_id", id).Error("Failed to fetch genre listing")
		respondError(w, http.StatusBadGateway, "catalog service unavailable")
		return
	}
	respondJSON(w, http.StatusOK, paged)
}

// Search feeds the query into the store's debounced search and reports the
// current search state. The store operation outlives the request, so it
// runs on a context detached from the request's cancellation.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	h.store.Search(context.WithoutCancel(r.Context()), r.URL.Query().Get("q"))

	query, results, loading := h.store.SearchResults()
	respondJSON(w, http.StatusOK, searchResponse{
		Query:   query,
		Results: results,
		Loading: loading,
	})
}
