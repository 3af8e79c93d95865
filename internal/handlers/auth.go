package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"reelbox/internal/models"
)

type loginRequest struct {
	Email string `json:"email" validate:"required,email"`
	Name  string `json:"name" validate:"max=80"`
}

type updateIdentityRequest struct {
	Name string `json:"name" validate:"required,max=80"`
}

// Login simulates a client-side login: no credential ever changes hands.
// The identity is stamped with the login time, written to the session
// slot, and its favourites partition is loaded into the store.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondError(w, http.StatusBadRequest, "a valid email is required")
		return
	}

	identity := models.Identity{
		Email:     req.Email,
		Name:      req.Name,
		LoginTime: time.Now().UTC(),
	}

	if err := h.sessions.Save(r.Context(), identity); err != nil {
		h.logger.WithError(err).Error("Failed to persist session")
		respondError(w, http.StatusInternalServerError, "failed to persist session")
		return
	}
	if err := h.store.SetActiveIdentity(r.Context(), identity.Email); err != nil {
		h.logger.WithError(err).Error("Failed to load favourites on login")
		respondError(w, http.StatusInternalServerError, "failed to load favourites")
		return
	}

	h.logger.WithField("email", identity.Email).Info("Identity logged in")
	respondJSON(w, http.StatusOK, identity)
}

// Logout clears the session slot and the in-memory favourites. Persisted
// favourites stay in storage keyed by the identity.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Clear(r.Context()); err != nil {
		h.logger.WithError(err).Error("Failed to clear session")
		respondError(w, http.StatusInternalServerError, "failed to clear session")
		return
	}
	if err := h.store.SetActiveIdentity(r.Context(), ""); err != nil {
		respondError(w, http.StatusInternalServerError, "failed to reset favourites")
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

// CurrentIdentity returns the logged-in identity, 404 when logged out.
func (h *Handler) CurrentIdentity(w http.ResponseWriter, r *http.Request) {
	identity, err := h.sessions.Load(r.Context())
	if err != nil {
		h.logger.WithError(err).Error("Failed to load session")
		respondError(w, http.StatusInternalServerError, "failed to load session")
		return
	}
	if identity == nil {
		respondError(w, http.StatusNotFound, "not logged in")
		return
	}
	respondJSON(w, http.StatusOK, identity)
}

// UpdateIdentity changes the display name of the logged-in identity and
// re-persists the session record.
func (h *Handler) UpdateIdentity(w http.ResponseWriter, r *http.Request) {
	identity, err := h.sessions.Load(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to load session")
		return
	}
	if identity == nil {
		respondError(w, http.StatusUnauthorized, "not logged in")
		return
	}

	var req updateIdentityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondError(w, http.StatusBadRequest, "a non-empty name is required")
		return
	}

	identity.Name = req.Name
	if err := h.sessions.Save(r.Context(), *identity); err != nil {
		h.logger.WithError(err).Error("Failed to persist session")
		respondError(w, http.StatusInternalServerError, "failed to persist session")
		return
	}
	respondJSON(w, http.StatusOK, identity)
}
