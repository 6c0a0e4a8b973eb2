package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"rewardsprint/internal/models"
	"rewardsprint/internal/service"
)

// ParentHandler handles the parent's management endpoints
type ParentHandler struct {
	familyService *service.FamilyService
}

// NewParentHandler creates a new parent handler
func NewParentHandler(familyService *service.FamilyService) *ParentHandler {
	return &ParentHandler{familyService: familyService}
}

type addChildRequest struct {
	Name string `json:"name"`
	PIN  string `json:"pin"`
}

// Family returns the whole family aggregate
func (h *ParentHandler) Family(w http.ResponseWriter, r *http.Request) {
	family, err := h.familyService.Family()
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, family)
}

// Dashboard returns children, enriched pending requests and the trial countdown
func (h *ParentHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	dash, err := h.familyService.ParentDashboard()
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, dash)
}

// AddChild adds a child; an omitted PIN is generated and returned
func (h *ParentHandler) AddChild(w http.ResponseWriter, r *http.Request) {
	var req addChildRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	child, err := h.familyService.AddChild(req.Name, req.PIN)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, child)
}

// ListTasks returns every task
func (h *ParentHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	family, err := h.familyService.Family()
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	tasks := family.Tasks
	if tasks == nil {
		tasks = []models.Task{}
	}
	respondJSON(w, http.StatusOK, tasks)
}

func (h *ParentHandler) AddTask(w http.ResponseWriter, r *http.Request) {
	var fields models.TaskFields
	if !decodeJSON(w, r, &fields) {
		return
	}
	task, err := h.familyService.AddTask(fields)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, task)
}

func (h *ParentHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	var patch models.TaskPatch
	if !decodeJSON(w, r, &patch) {
		return
	}
	task, err := h.familyService.UpdateTask(mux.Vars(r)["id"], patch)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, task)
}

func (h *ParentHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	if err := h.familyService.DeleteTask(mux.Vars(r)["id"]); err != nil {
		respondWithServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListRewards returns every reward
func (h *ParentHandler) ListRewards(w http.ResponseWriter, r *http.Request) {
	family, err := h.familyService.Family()
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	rewards := family.Rewards
	if rewards == nil {
		rewards = []models.Reward{}
	}
	respondJSON(w, http.StatusOK, rewards)
}

func (h *ParentHandler) AddReward(w http.ResponseWriter, r *http.Request) {
	var fields models.RewardFields
	if !decodeJSON(w, r, &fields) {
		return
	}
	reward, err := h.familyService.AddReward(fields)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, reward)
}

func (h *ParentHandler) UpdateReward(w http.ResponseWriter, r *http.Request) {
	var patch models.RewardPatch
	if !decodeJSON(w, r, &patch) {
		return
	}
	reward, err := h.familyService.UpdateReward(mux.Vars(r)["id"], patch)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, reward)
}

func (h *ParentHandler) DeleteReward(w http.ResponseWriter, r *http.Request) {
	if err := h.familyService.DeleteReward(mux.Vars(r)["id"]); err != nil {
		respondWithServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// PendingRedemptions lists requests awaiting a decision
func (h *ParentHandler) PendingRedemptions(w http.ResponseWriter, r *http.Request) {
	dash, err := h.familyService.ParentDashboard()
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, dash.PendingRedemptions)
}

func (h *ParentHandler) ApproveRedemption(w http.ResponseWriter, r *http.Request) {
	if err := h.familyService.ApproveRedemption(mux.Vars(r)["id"]); err != nil {
		respondWithServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ParentHandler) DenyRedemption(w http.ResponseWriter, r *http.Request) {
	if err := h.familyService.DenyRedemption(mux.Vars(r)["id"]); err != nil {
		respondWithServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
