package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"rewardsprint/internal/security"
	"rewardsprint/internal/service"
)

// NewRouter registers every API route. loginLimiter guards the login
// endpoints and may be nil.
func NewRouter(familyService *service.FamilyService, loginLimiter *security.RateLimiter) *mux.Router {
	m := NewMiddleware(familyService)
	auth := NewAuthHandler(familyService)
	parent := NewParentHandler(familyService)
	child := NewChildHandler(familyService)

	limit := func(h http.HandlerFunc) http.HandlerFunc { return h }
	if loginLimiter != nil {
		limit = loginLimiter.Limit
	}

	r := mux.NewRouter()
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		respondWithError(w, http.StatusNotFound, ErrNotFound, "", nil)
	})
	r.HandleFunc("/healthz", Health).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()

	// Onboarding and session
	api.HandleFunc("/family", auth.CreateFamily).Methods(http.MethodPost)
	api.HandleFunc("/session", auth.Session).Methods(http.MethodGet)
	api.HandleFunc("/login/parent", limit(auth.LoginParent)).Methods(http.MethodPost)
	api.HandleFunc("/login/children", auth.ChildProfiles).Methods(http.MethodGet)
	api.HandleFunc("/login/child", limit(auth.LoginChild)).Methods(http.MethodPost)
	api.HandleFunc("/logout", auth.Logout).Methods(http.MethodPost)

	// Parent
	api.HandleFunc("/family", m.RequireParent(parent.Family)).Methods(http.MethodGet)
	api.HandleFunc("/parent/dashboard", m.RequireParent(parent.Dashboard)).Methods(http.MethodGet)
	api.HandleFunc("/children", m.RequireParent(parent.AddChild)).Methods(http.MethodPost)
	api.HandleFunc("/tasks", m.RequireParent(parent.ListTasks)).Methods(http.MethodGet)
	api.HandleFunc("/tasks", m.RequireParent(parent.AddTask)).Methods(http.MethodPost)
	api.HandleFunc("/tasks/{id}", m.RequireParent(parent.UpdateTask)).Methods(http.MethodPatch)
	api.HandleFunc("/tasks/{id}", m.RequireParent(parent.DeleteTask)).Methods(http.MethodDelete)
	api.HandleFunc("/rewards", m.RequireParent(parent.ListRewards)).Methods(http.MethodGet)
	api.HandleFunc("/rewards", m.RequireParent(parent.AddReward)).Methods(http.MethodPost)
	api.HandleFunc("/rewards/{id}", m.RequireParent(parent.UpdateReward)).Methods(http.MethodPatch)
	api.HandleFunc("/rewards/{id}", m.RequireParent(parent.DeleteReward)).Methods(http.MethodDelete)
	api.HandleFunc("/redemptions/pending", m.RequireParent(parent.PendingRedemptions)).Methods(http.MethodGet)
	api.HandleFunc("/redemptions/{id}/approve", m.RequireParent(parent.ApproveRedemption)).Methods(http.MethodPost)
	api.HandleFunc("/redemptions/{id}/deny", m.RequireParent(parent.DenyRedemption)).Methods(http.MethodPost)

	// Child
	api.HandleFunc("/child/dashboard", m.RequireChild(child.Dashboard)).Methods(http.MethodGet)
	api.HandleFunc("/child/tasks/{id}/complete", m.RequireChild(child.CompleteTask)).Methods(http.MethodPost)
	api.HandleFunc("/child/rewards/{id}/redeem", m.RequireChild(child.RequestReward)).Methods(http.MethodPost)

	return r
}
