package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"rewardsprint/internal/models"
	"rewardsprint/internal/security"
	"rewardsprint/internal/service"
	"rewardsprint/internal/store"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	svc := service.NewFamilyService(store.New(), nil, 30)
	return NewRouter(svc, nil)
}

func do(t *testing.T, h http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode request: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(rec.Body).Decode(&v); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return v
}

func expectStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("status = %d, want %d (body %s)", rec.Code, want, rec.Body.String())
	}
}

func TestHealth(t *testing.T) {
	rec := do(t, newTestRouter(t), http.MethodGet, "/healthz", nil)
	expectStatus(t, rec, http.StatusOK)
}

func TestUnknownRouteReturnsJSON(t *testing.T) {
	rec := do(t, newTestRouter(t), http.MethodGet, "/api/nowhere", nil)
	expectStatus(t, rec, http.StatusNotFound)
	if body := decode[errorResponse](t, rec); body.Error != ErrNotFound {
		t.Errorf("error = %q, want %q", body.Error, ErrNotFound)
	}
}

func TestCreateFamilyValidation(t *testing.T) {
	h := newTestRouter(t)

	rec := do(t, h, http.MethodPost, "/api/family", createFamilyRequest{FamilyName: "Smith", ParentEmail: "nope"})
	expectStatus(t, rec, http.StatusBadRequest)
	if body := decode[errorResponse](t, rec); body.Field != "email" {
		t.Errorf("field = %q, want email", body.Field)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/family", bytes.NewBufferString("{"))
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	expectStatus(t, rec, http.StatusBadRequest)
}

func TestRoleGating(t *testing.T) {
	h := newTestRouter(t)

	expectStatus(t, do(t, h, http.MethodGet, "/api/tasks", nil), http.StatusUnauthorized)
	expectStatus(t, do(t, h, http.MethodGet, "/api/child/dashboard", nil), http.StatusUnauthorized)

	expectStatus(t, do(t, h, http.MethodPost, "/api/family", createFamilyRequest{FamilyName: "Smith", ParentEmail: "parent@example.com"}), http.StatusCreated)
	child := decode[models.Child](t, do(t, h, http.MethodPost, "/api/children", addChildRequest{Name: "Ava", PIN: "1234"}))

	// Parent may not use child routes
	expectStatus(t, do(t, h, http.MethodGet, "/api/child/dashboard", nil), http.StatusForbidden)

	expectStatus(t, do(t, h, http.MethodPost, "/api/login/child", childLoginRequest{ChildID: child.ID, PIN: "1234"}), http.StatusOK)
	expectStatus(t, do(t, h, http.MethodGet, "/api/tasks", nil), http.StatusForbidden)
	expectStatus(t, do(t, h, http.MethodGet, "/api/child/dashboard", nil), http.StatusOK)
}

func TestLogin(t *testing.T) {
	h := newTestRouter(t)
	do(t, h, http.MethodPost, "/api/family", createFamilyRequest{FamilyName: "Smith", ParentEmail: "parent@example.com"})
	child := decode[models.Child](t, do(t, h, http.MethodPost, "/api/children", addChildRequest{Name: "Ava", PIN: "1234"}))
	expectStatus(t, do(t, h, http.MethodPost, "/api/logout", nil), http.StatusNoContent)

	sess := decode[sessionResponse](t, do(t, h, http.MethodGet, "/api/session", nil))
	if sess.IsAuthenticated || !sess.HasFamily {
		t.Errorf("session after logout = %+v", sess)
	}

	profiles := decode[[]childProfile](t, do(t, h, http.MethodGet, "/api/login/children", nil))
	if len(profiles) != 1 || profiles[0].ID != child.ID {
		t.Errorf("profiles = %+v", profiles)
	}

	expectStatus(t, do(t, h, http.MethodPost, "/api/login/parent", parentLoginRequest{Email: "PARENT@example.com"}), http.StatusUnauthorized)
	expectStatus(t, do(t, h, http.MethodPost, "/api/login/child", childLoginRequest{ChildID: child.ID, PIN: "0000"}), http.StatusUnauthorized)

	rec := do(t, h, http.MethodPost, "/api/login/parent", parentLoginRequest{Email: "parent@example.com"})
	expectStatus(t, rec, http.StatusOK)
	if s := decode[models.Session](t, rec); s.Role() != models.RoleParent {
		t.Errorf("role = %q, want parent", s.Role())
	}
}

func TestLoginRateLimited(t *testing.T) {
	stop := make(chan struct{})
	defer close(stop)

	svc := service.NewFamilyService(store.New(), nil, 30)
	h := NewRouter(svc, security.NewRateLimiter(2, time.Hour, stop))

	codes := []int{}
	for i := 0; i < 3; i++ {
		codes = append(codes, do(t, h, http.MethodPost, "/api/login/parent", parentLoginRequest{Email: "a@b.com"}).Code)
	}
	if codes[2] != http.StatusTooManyRequests {
		t.Errorf("status codes = %v, want the third attempt limited", codes)
	}
}

func TestTaskCRUD(t *testing.T) {
	h := newTestRouter(t)
	do(t, h, http.MethodPost, "/api/family", createFamilyRequest{FamilyName: "Smith", ParentEmail: "parent@example.com"})

	expectStatus(t, do(t, h, http.MethodPost, "/api/tasks", models.TaskFields{Name: "Walk dog"}), http.StatusBadRequest)

	rec := do(t, h, http.MethodPost, "/api/tasks", models.TaskFields{Name: "Walk dog", Description: "Block", Points: 5, Duration: 20, Icon: "🐕"})
	expectStatus(t, rec, http.StatusCreated)
	task := decode[models.Task](t, rec)

	points := 8
	rec = do(t, h, http.MethodPatch, "/api/tasks/"+task.ID, models.TaskPatch{Points: &points})
	expectStatus(t, rec, http.StatusOK)
	if updated := decode[models.Task](t, rec); updated.Points != 8 || updated.Name != "Walk dog" {
		t.Errorf("updated = %+v", updated)
	}

	tasks := decode[[]models.Task](t, do(t, h, http.MethodGet, "/api/tasks", nil))
	if len(tasks) != 4 {
		t.Errorf("got %d tasks, want 3 seeded plus 1", len(tasks))
	}

	expectStatus(t, do(t, h, http.MethodDelete, "/api/tasks/"+task.ID, nil), http.StatusNoContent)
	expectStatus(t, do(t, h, http.MethodDelete, "/api/tasks/"+task.ID, nil), http.StatusNotFound)
	expectStatus(t, do(t, h, http.MethodPatch, "/api/tasks/missing", models.TaskPatch{Points: &points}), http.StatusNotFound)
}

func TestRewardFlow(t *testing.T) {
	h := newTestRouter(t)
	do(t, h, http.MethodPost, "/api/family", createFamilyRequest{FamilyName: "Smith", ParentEmail: "parent@example.com"})
	child := decode[models.Child](t, do(t, h, http.MethodPost, "/api/children", addChildRequest{Name: "Ava", PIN: "1234"}))
	task := decode[models.Task](t, do(t, h, http.MethodPost, "/api/tasks", models.TaskFields{Name: "Big job", Description: "All", Points: 25, Duration: 60}))
	reward := decode[models.Reward](t, do(t, h, http.MethodPost, "/api/rewards", models.RewardFields{Name: "Movie", Description: "Pick", PointsCost: 20}))

	do(t, h, http.MethodPost, "/api/login/child", childLoginRequest{ChildID: child.ID, PIN: "1234"})
	expectStatus(t, do(t, h, http.MethodPost, "/api/child/rewards/"+reward.ID+"/redeem", nil), http.StatusUnprocessableEntity)
	expectStatus(t, do(t, h, http.MethodPost, "/api/child/tasks/"+task.ID+"/complete", nil), http.StatusCreated)
	rec := do(t, h, http.MethodPost, "/api/child/rewards/"+reward.ID+"/redeem", nil)
	expectStatus(t, rec, http.StatusCreated)
	redemption := decode[models.RewardRedemption](t, rec)

	dash := decode[service.ChildDashboard](t, do(t, h, http.MethodGet, "/api/child/dashboard", nil))
	if dash.Child.Points != 25 || len(dash.CompletedToday) != 1 || len(dash.Redemptions) != 1 {
		t.Errorf("child dashboard = %+v", dash)
	}

	do(t, h, http.MethodPost, "/api/login/parent", parentLoginRequest{Email: "parent@example.com"})
	pending := decode[[]service.PendingRedemption](t, do(t, h, http.MethodGet, "/api/redemptions/pending", nil))
	if len(pending) != 1 || pending[0].ChildName != "Ava" || pending[0].RewardName != "Movie" {
		t.Fatalf("pending = %+v", pending)
	}

	expectStatus(t, do(t, h, http.MethodPost, "/api/redemptions/"+redemption.ID+"/approve", nil), http.StatusNoContent)
	expectStatus(t, do(t, h, http.MethodPost, "/api/redemptions/"+redemption.ID+"/approve", nil), http.StatusConflict)
	expectStatus(t, do(t, h, http.MethodPost, "/api/redemptions/"+redemption.ID+"/deny", nil), http.StatusConflict)

	parentDash := decode[service.ParentDashboard](t, do(t, h, http.MethodGet, "/api/parent/dashboard", nil))
	if len(parentDash.Children) != 1 || parentDash.Children[0].Points != 5 {
		t.Errorf("balance after approval = %+v, want 5", parentDash.Children)
	}
	if len(parentDash.PendingRedemptions) != 0 {
		t.Errorf("pending after approval = %+v", parentDash.PendingRedemptions)
	}
}
