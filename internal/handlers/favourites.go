package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"reelbox/internal/models"
	"reelbox/internal/store"
)

type toggleResponse struct {
	MovieID   int  `json:"movie_id"`
	Favourite bool `json:"favourite"`
}

func (h *Handler) ListFavourites(w http.ResponseWriter, r *http.Request) {
	if h.store.ActiveEmail() == "" {
		respondError(w, http.StatusUnauthorized, "log in to see favourites")
		return
	}
	respondJSON(w, http.StatusOK, h.store.Favourites())
}

func (h *Handler) AddFavourite(w http.ResponseWriter, r *http.Request) {
	var movie models.Movie
	if err := json.NewDecoder(r.Body).Decode(&movie); err != nil || movie.ID == 0 {
		respondError(w, http.StatusBadRequest, "invalid movie payload")
		return
	}

	err := h.store.AddFavourite(r.Context(), movie)
	switch {
	case errors.Is(err, store.ErrNotAuthenticated):
		respondError(w, http.StatusUnauthorized, "log in to add favourites")
	case errors.Is(err, store.ErrAlreadyFavourite):
		respondError(w, http.StatusConflict, "movie already in favourites")
	case err != nil:
		h.logger.WithError(err).Error("Failed to add favourite")
		respondError(w, http.StatusInternalServerError, "failed to save favourites")
	default:
		respondJSON(w, http.StatusCreated, h.store.Favourites())
	}
}

func (h *Handler) RemoveFavourite(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid movie id")
		return
	}

	err = h.store.RemoveFavourite(r.Context(), id)
	switch {
	case errors.Is(err, store.ErrNotAuthenticated):
		respondError(w, http.StatusUnauthorized, "log in to manage favourites")
	case errors.Is(err, store.ErrNotFavourite):
		respondError(w, http.StatusNotFound, "movie not in favourites")
	case err != nil:
		h.logger.WithError(err).Error("Failed to remove favourite")
		respondError(w, http.StatusInternalServerError, "failed to save favourites")
	default:
		respondJSON(w, http.StatusOK, h.store.Favourites())
	}
}

func (h *Handler) ToggleFavourite(w http.ResponseWriter, r *http.Request) {
	var movie models.Movie
	if err := json.NewDecoder(r.Body).Decode(&movie); err != nil || movie.ID == 0 {
		respondError(w, http.StatusBadRequest, "invalid movie payload")
		return
	}

	favourite, err := h.store.ToggleFavourite(r.Context(), movie)
	switch {
	case errors.Is(err, store.ErrNotAuthenticated):
		respondError(w, http.StatusUnauthorized, "log in to manage favourites")
	case err != nil:
		h.logger.WithError(err).Error("Failed to toggle favourite")
		respondError(w, http.StatusInternalServerError, "failed to save favourites")
	default:
		respondJSON(w, http.StatusOK, toggleResponse{MovieID: movie.ID, Favourite: favourite})
	}
}

func (h *Handler) ClearFavourites(w http.ResponseWriter, r *http.Request) {
	err := h.store.ClearFavourites(r.Context())
	switch {
	case errors.Is(err, store.ErrNotAuthenticated):
		respondError(w, http.StatusUnauthorized, "log in to manage favourites")
	case err != nil:
		h.logger.WithError(err).Error("Failed to clear favourites")
		respondError(w, http.StatusInternalServerError, "failed to save favourites")
	default:
		respondJSON(w, http.StatusNoContent, nil)
	}
}
