package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"rewardsprint/internal/service"
)

// ChildHandler handles the logged-in child's endpoints
type ChildHandler struct {
	familyService *service.FamilyService
}

// NewChildHandler creates a new child handler
func NewChildHandler(familyService *service.FamilyService) *ChildHandler {
	return &ChildHandler{familyService: familyService}
}

// Dashboard returns the child's balance, today's work, tasks and rewards
func (h *ChildHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	dash, err := h.familyService.ChildDashboard(GetChildIDFromContext(r.Context()))
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, dash)
}

// CompleteTask marks a task done and credits its points
func (h *ChildHandler) CompleteTask(w http.ResponseWriter, r *http.Request) {
	record, err := h.familyService.CompleteTask(GetChildIDFromContext(r.Context()), mux.Vars(r)["id"])
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, record)
}

// RequestReward files a redemption request for the parent to decide
func (h *ChildHandler) RequestReward(w http.ResponseWriter, r *http.Request) {
	redemption, err := h.familyService.RequestRedemption(r.Context(), GetChildIDFromContext(r.Context()), mux.Vars(r)["id"])
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, redemption)
}
