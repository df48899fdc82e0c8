package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rafaelmacedos/show-me-the-tickets/internal/api/shared"
	"github.com/rafaelmacedos/show-me-the-tickets/internal/domain"
)

// DecodeJSON decodes the request body into the given destination,
// rejecting payloads with unknown fields.
func DecodeJSON(r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("failed to decode request body: %w", err)
	}
	return nil
}

// getUserIDFromContext extracts the authenticated user's ID from the request
// context. The user ID is placed there by the authentication middleware.
// Returns the ID and false if it was not found.
func getUserIDFromContext(r *http.Request) (int64, bool) {
	userID, ok := r.Context().Value(shared.UserIDContextKey).(int64)
	if !ok || userID == 0 {
		return 0, false
	}
	return userID, true
}

// getPathID extracts a positive integer ID from the URL path parameters.
//
// Returns the parsed ID, or domain.ErrInvalidID if the parameter is
// missing, non-numeric, or not positive.
func getPathID(r *http.Request, paramName string) (int64, error) {
	pathParam := chi.URLParam(r, paramName)
	if pathParam == "" {
		return 0, domain.NewValidationError(paramName, "is required", domain.ErrValidation)
	}

	id, err := strconv.ParseInt(pathParam, 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.NewValidationError(paramName, "must be a positive integer", domain.ErrInvalidID)
	}

	return id, nil
}
