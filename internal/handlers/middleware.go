package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"rewardsprint/internal/models"
	"rewardsprint/internal/service"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const ChildIDContextKey ContextKey = "childID"

// Middleware gates routes on the role held in the store session
type Middleware struct {
	familyService *service.FamilyService
}

// NewMiddleware creates a new middleware instance
func NewMiddleware(familyService *service.FamilyService) *Middleware {
	return &Middleware{familyService: familyService}
}

// RequireParent rejects requests unless a parent is logged in
func (m *Middleware) RequireParent(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session := m.familyService.Session()
		if !session.IsAuthenticated {
			respondWithError(w, http.StatusUnauthorized, ErrUnauthorized, "", nil)
			return
		}
		if session.Role() != models.RoleParent {
			respondWithError(w, http.StatusForbidden, ErrForbidden, "", nil)
			return
		}
		next(w, r)
	}
}

// RequireChild rejects requests unless a child is logged in and puts the
// child's id in the request context
func (m *Middleware) RequireChild(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session := m.familyService.Session()
		if !session.IsAuthenticated {
			respondWithError(w, http.StatusUnauthorized, ErrUnauthorized, "", nil)
			return
		}
		if session.Role() != models.RoleChild {
			respondWithError(w, http.StatusForbidden, ErrForbidden, "", nil)
			return
		}
		ctx := context.WithValue(r.Context(), ChildIDContextKey, session.UserID())
		next(w, r.WithContext(ctx))
	}
}

// GetChildIDFromContext retrieves the logged-in child's id
func GetChildIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(ChildIDContextKey).(string)
	return id
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// Logging middleware logs HTTP requests
func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		log.Printf("%s %s %d %s", r.Method, r.URL.Path, rec.status, time.Since(start))
	})
}
