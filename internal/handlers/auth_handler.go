package handlers

import (
	"net/http"

	"rewardsprint/internal/models"
	"rewardsprint/internal/service"
)

// AuthHandler handles family creation and the login session
type AuthHandler struct {
	familyService *service.FamilyService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(familyService *service.FamilyService) *AuthHandler {
	return &AuthHandler{familyService: familyService}
}

type createFamilyRequest struct {
	FamilyName  string `json:"familyName"`
	ParentEmail string `json:"parentEmail"`
}

type parentLoginRequest struct {
	Email string `json:"email"`
}

type childLoginRequest struct {
	ChildID string `json:"childId"`
	PIN     string `json:"pin"`
}

// childProfile is what the child picker may show before login
type childProfile struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

// CreateFamily handles onboarding
func (h *AuthHandler) CreateFamily(w http.ResponseWriter, r *http.Request) {
	var req createFamilyRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	family, err := h.familyService.CreateFamily(r.Context(), req.FamilyName, req.ParentEmail)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, family)
}

// LoginParent starts a parent session
func (h *AuthHandler) LoginParent(w http.ResponseWriter, r *http.Request) {
	var req parentLoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := h.familyService.LoginParent(req.Email); err != nil {
		respondWithServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, h.familyService.Session())
}

// ChildProfiles lists the children to choose from on the child login screen
func (h *AuthHandler) ChildProfiles(w http.ResponseWriter, r *http.Request) {
	family, err := h.familyService.Family()
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	profiles := make([]childProfile, 0, len(family.Children))
	for _, c := range family.Children {
		profiles = append(profiles, childProfile{ID: c.ID, Name: c.Name, Avatar: c.Avatar})
	}
	respondJSON(w, http.StatusOK, profiles)
}

// LoginChild starts a child session
func (h *AuthHandler) LoginChild(w http.ResponseWriter, r *http.Request) {
	var req childLoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := h.familyService.LoginChild(req.ChildID, req.PIN); err != nil {
		respondWithServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, h.familyService.Session())
}

// Logout clears the session
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.familyService.Logout()
	w.WriteHeader(http.StatusNoContent)
}

type sessionResponse struct {
	models.Session
	HasFamily bool `json:"hasFamily"`
}

// Session reports who is logged in and whether onboarding is done
func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	_, err := h.familyService.Family()
	respondJSON(w, http.StatusOK, sessionResponse{
		Session:   h.familyService.Session(),
		HasFamily: err == nil,
	})
}

// Health is the liveness probe
func Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
