package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"rewardsprint/internal/service"
	"rewardsprint/internal/store"
	"rewardsprint/internal/validation"
)

type errorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

func respondWithError(w http.ResponseWriter, status int, userMsg, logMsg string, err error) {
	if err != nil {
		if logMsg == "" {
			logMsg = userMsg
		}
		log.Printf("%s: %v", logMsg, err)
	}

	respondJSON(w, status, errorResponse{Error: userMsg})
}

func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidJSON, "", nil)
		return false
	}
	return true
}

// respondWithServiceError maps store, service and validation errors to a
// status code. Only unexpected errors are logged.
func respondWithServiceError(w http.ResponseWriter, err error) {
	var verr validation.ValidationError
	switch {
	case errors.As(err, &verr):
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: verr.Message, Field: verr.Field})
	case errors.Is(err, store.ErrInvalidCredentials):
		respondWithError(w, http.StatusUnauthorized, ErrInvalidCredentials, "", nil)
	case errors.Is(err, store.ErrNoFamily):
		respondWithError(w, http.StatusNotFound, ErrNoFamily, "", nil)
	case errors.Is(err, store.ErrChildNotFound),
		errors.Is(err, store.ErrTaskNotFound),
		errors.Is(err, store.ErrRewardNotFound),
		errors.Is(err, store.ErrRedemptionNotFound):
		respondWithError(w, http.StatusNotFound, err.Error(), "", nil)
	case errors.Is(err, store.ErrRedemptionNotPending):
		respondWithError(w, http.StatusConflict, ErrAlreadyDecided, "", nil)
	case errors.Is(err, service.ErrNotAffordable), errors.Is(err, store.ErrInsufficientPoints):
		respondWithError(w, http.StatusUnprocessableEntity, ErrNotEnoughPoints, "", nil)
	default:
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Unhandled service error", err)
	}
}
