package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"rewardsprint/internal/models"
	"rewardsprint/internal/store"
	"rewardsprint/internal/validation"
)

type sentNotice struct {
	to     string
	notice RedemptionNotice
}

type fakeNotifier struct {
	welcomed    []string
	redemptions []sentNotice
	err         error
}

func (f *fakeNotifier) SendWelcomeEmail(ctx context.Context, toEmail, familyName string, trialDays int) error {
	f.welcomed = append(f.welcomed, toEmail)
	return f.err
}

func (f *fakeNotifier) SendRedemptionRequestEmail(ctx context.Context, toEmail string, notice RedemptionNotice) error {
	f.redemptions = append(f.redemptions, sentNotice{to: toEmail, notice: notice})
	return f.err
}

var createdAt = time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)

func newTestService(t *testing.T) (*FamilyService, *fakeNotifier, *time.Time) {
	t.Helper()
	clock := createdAt
	n := 0
	st := store.New(
		store.WithIDGenerator(func() string {
			n++
			return fmt.Sprintf("id-%d", n)
		}),
		store.WithClock(func() time.Time { return clock }),
	)
	notifier := &fakeNotifier{}
	svc := NewFamilyService(st, notifier, 30)
	svc.now = func() time.Time { return clock }
	svc.location = time.UTC
	return svc, notifier, &clock
}

func TestCreateFamilyValidation(t *testing.T) {
	tests := []struct {
		name      string
		family    string
		email     string
		wantField string
	}{
		{name: "valid", family: "Smith", email: "parent@example.com"},
		{name: "blank family name", family: "  ", email: "parent@example.com", wantField: "familyName"},
		{name: "bad email", family: "Smith", email: "not-an-email", wantField: "email"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, notifier, _ := newTestService(t)
			family, err := svc.CreateFamily(context.Background(), tt.family, tt.email)

			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("CreateFamily() error = %v", err)
				}
				if family.ParentEmail != tt.email || len(notifier.welcomed) != 1 {
					t.Errorf("family = %+v, welcomed = %v", family, notifier.welcomed)
				}
				return
			}

			var verr validation.ValidationError
			if !errors.As(err, &verr) || verr.Field != tt.wantField {
				t.Fatalf("error = %v, want validation error on %s", err, tt.wantField)
			}
			if _, err := svc.Family(); !errors.Is(err, store.ErrNoFamily) {
				t.Error("family created despite invalid input")
			}
		})
	}
}

func TestCreateFamilyWelcomeFailureIsNotFatal(t *testing.T) {
	svc, notifier, _ := newTestService(t)
	notifier.err = errors.New("ses down")

	if _, err := svc.CreateFamily(context.Background(), "Smith", "parent@example.com"); err != nil {
		t.Fatalf("CreateFamily() error = %v", err)
	}
}

func TestAddChild(t *testing.T) {
	svc, _, _ := newTestService(t)
	svc.CreateFamily(context.Background(), "Smith", "parent@example.com")

	child, err := svc.AddChild(" Ava ", "0420")
	if err != nil {
		t.Fatalf("AddChild() error = %v", err)
	}
	if child.Name != "Ava" || child.PIN != "0420" {
		t.Errorf("child = %+v", child)
	}

	generated, err := svc.AddChild("Ben", "")
	if err != nil {
		t.Fatalf("AddChild() with generated pin error = %v", err)
	}
	if err := validation.ValidatePIN(generated.PIN); err != nil {
		t.Errorf("generated pin %q is invalid: %v", generated.PIN, err)
	}

	if _, err := svc.AddChild("Cal", "12"); err == nil {
		t.Error("short pin accepted")
	}
	if _, err := svc.AddChild("", "1234"); err == nil {
		t.Error("blank name accepted")
	}
}

func TestTaskAndRewardValidation(t *testing.T) {
	svc, _, _ := newTestService(t)
	svc.CreateFamily(context.Background(), "Smith", "parent@example.com")

	if _, err := svc.AddTask(models.TaskFields{Name: "Walk dog", Description: "Around the block", Points: 0, Duration: 20}); err == nil {
		t.Error("task with zero points accepted")
	}
	task, err := svc.AddTask(models.TaskFields{Name: "Walk dog", Description: "Around the block", Points: 5, Duration: 20, Icon: "🐕"})
	if err != nil {
		t.Fatalf("AddTask() error = %v", err)
	}

	empty := ""
	if _, err := svc.UpdateTask(task.ID, models.TaskPatch{Name: &empty}); err == nil {
		t.Error("blank task name patch accepted")
	}

	cost := -3
	if _, err := svc.AddReward(models.RewardFields{Name: "Movie", Description: "Pick one"}); err == nil {
		t.Error("reward with zero cost accepted")
	}
	reward, err := svc.AddReward(models.RewardFields{Name: "Movie", Description: "Pick one", PointsCost: 40})
	if err != nil {
		t.Fatalf("AddReward() error = %v", err)
	}
	if _, err := svc.UpdateReward(reward.ID, models.RewardPatch{PointsCost: &cost}); err == nil {
		t.Error("negative cost patch accepted")
	}
}

func TestLogin(t *testing.T) {
	svc, _, _ := newTestService(t)
	svc.CreateFamily(context.Background(), "Smith", "parent@example.com")
	child, _ := svc.AddChild("Ava", "1234")
	svc.Logout()

	if err := svc.LoginParent("Parent@example.com"); !errors.Is(err, store.ErrInvalidCredentials) {
		t.Errorf("LoginParent() with different case error = %v", err)
	}
	if err := svc.LoginParent(""); err == nil {
		t.Error("empty email accepted")
	}
	if err := svc.LoginChild(child.ID, "9999"); !errors.Is(err, store.ErrInvalidCredentials) {
		t.Errorf("LoginChild() with wrong pin error = %v", err)
	}
	if err := svc.LoginChild(child.ID, "1234"); err != nil {
		t.Fatalf("LoginChild() error = %v", err)
	}
	if svc.Session().Role() != models.RoleChild {
		t.Errorf("role = %v, want child", svc.Session().Role())
	}
}

func TestRequestRedemptionNotifiesParent(t *testing.T) {
	svc, notifier, _ := newTestService(t)
	ctx := context.Background()
	svc.CreateFamily(ctx, "Smith", "parent@example.com")
	child, _ := svc.AddChild("Ava", "1234")
	task, _ := svc.AddTask(models.TaskFields{Name: "Big job", Description: "All of it", Points: 25, Duration: 60})
	reward, _ := svc.AddReward(models.RewardFields{Name: "Movie", Description: "Pick one", PointsCost: 20, Icon: "🎬"})

	if _, err := svc.RequestRedemption(ctx, child.ID, reward.ID); !errors.Is(err, ErrNotAffordable) {
		t.Fatalf("RequestRedemption() before earning error = %v, want ErrNotAffordable", err)
	}
	if len(notifier.redemptions) != 0 {
		t.Fatal("notification sent for a rejected request")
	}

	svc.CompleteTask(child.ID, task.ID)
	if _, err := svc.RequestRedemption(ctx, child.ID, reward.ID); err != nil {
		t.Fatalf("RequestRedemption() error = %v", err)
	}

	if len(notifier.redemptions) != 1 {
		t.Fatalf("got %d notifications, want 1", len(notifier.redemptions))
	}
	sent := notifier.redemptions[0]
	want := RedemptionNotice{ChildName: "Ava", ChildPoints: 25, RewardName: "Movie", RewardIcon: "🎬", PointsCost: 20}
	if sent.to != "parent@example.com" || sent.notice != want {
		t.Errorf("notification = %+v, want %+v to parent@example.com", sent, want)
	}
}

func TestTrialDaysRemaining(t *testing.T) {
	svc, _, clock := newTestService(t)

	if _, err := svc.TrialDaysRemaining(); !errors.Is(err, store.ErrNoFamily) {
		t.Errorf("TrialDaysRemaining() without family error = %v", err)
	}

	svc.CreateFamily(context.Background(), "Smith", "parent@example.com")

	tests := []struct {
		elapsed time.Duration
		want    int
	}{
		{elapsed: 0, want: 30},
		{elapsed: 23 * time.Hour, want: 30},
		{elapsed: 24 * time.Hour, want: 29},
		{elapsed: 30 * 24 * time.Hour, want: 0},
		{elapsed: 35 * 24 * time.Hour, want: -5},
	}

	for _, tt := range tests {
		*clock = createdAt.Add(tt.elapsed)
		got, err := svc.TrialDaysRemaining()
		if err != nil {
			t.Fatalf("TrialDaysRemaining() error = %v", err)
		}
		if got != tt.want {
			t.Errorf("after %v: TrialDaysRemaining() = %d, want %d", tt.elapsed, got, tt.want)
		}
	}
}

func TestParentDashboard(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.ParentDashboard(); !errors.Is(err, store.ErrNoFamily) {
		t.Errorf("ParentDashboard() without family error = %v", err)
	}

	svc.CreateFamily(ctx, "Smith", "parent@example.com")
	child, _ := svc.AddChild("Ava", "1234")
	task, _ := svc.AddTask(models.TaskFields{Name: "Big job", Description: "All of it", Points: 50, Duration: 60})
	kept, _ := svc.AddReward(models.RewardFields{Name: "Movie", Description: "Pick one", PointsCost: 20, Icon: "🎬"})
	dropped, _ := svc.AddReward(models.RewardFields{Name: "Toy", Description: "Small", PointsCost: 10})
	svc.CompleteTask(child.ID, task.ID)
	svc.RequestRedemption(ctx, child.ID, kept.ID)
	svc.RequestRedemption(ctx, child.ID, dropped.ID)
	svc.DeleteReward(dropped.ID)

	dash, err := svc.ParentDashboard()
	if err != nil {
		t.Fatalf("ParentDashboard() error = %v", err)
	}
	if dash.FamilyName != "Smith" || dash.TrialDaysRemaining != 30 || len(dash.Children) != 1 {
		t.Errorf("dashboard = %+v", dash)
	}
	if len(dash.PendingRedemptions) != 1 {
		t.Fatalf("got %d pending, want only the one with a live reward", len(dash.PendingRedemptions))
	}
	p := dash.PendingRedemptions[0]
	if p.ChildName != "Ava" || p.RewardName != "Movie" || p.PointsCost != 20 || p.RewardIcon != "🎬" {
		t.Errorf("pending = %+v", p)
	}
}

func TestChildDashboard(t *testing.T) {
	svc, _, clock := newTestService(t)
	ctx := context.Background()
	svc.CreateFamily(ctx, "Smith", "parent@example.com")
	child, _ := svc.AddChild("Ava", "1234")
	task, _ := svc.AddTask(models.TaskFields{Name: "Job", Description: "Do it", Points: 15, Duration: 5})

	svc.CompleteTask(child.ID, task.ID)
	*clock = createdAt.Add(24 * time.Hour)
	svc.CompleteTask(child.ID, task.ID)

	if _, err := svc.ChildDashboard("nobody"); !errors.Is(err, store.ErrChildNotFound) {
		t.Errorf("ChildDashboard(nobody) error = %v", err)
	}

	dash, err := svc.ChildDashboard(child.ID)
	if err != nil {
		t.Fatalf("ChildDashboard() error = %v", err)
	}
	if dash.Child.Points != 30 {
		t.Errorf("points = %d, want 30", dash.Child.Points)
	}
	if len(dash.CompletedToday) != 1 {
		t.Errorf("completed today = %d, want 1", len(dash.CompletedToday))
	}
	if len(dash.Tasks) != 4 {
		t.Errorf("tasks = %d, want 3 seeded plus 1", len(dash.Tasks))
	}

	// Seed rewards cost 20, 30 and 25
	affordable := map[string]bool{}
	for _, r := range dash.Rewards {
		affordable[r.Name] = r.CanAfford
		if !r.CanAfford && r.PointsNeeded != r.PointsCost-30 {
			t.Errorf("%s: PointsNeeded = %d, want %d", r.Name, r.PointsNeeded, r.PointsCost-30)
		}
	}
	if !affordable["30min Screen Time"] || !affordable["Choose Dinner"] || !affordable["Stay Up Late"] {
		t.Errorf("affordability = %v", affordable)
	}
	if len(dash.Redemptions) != 0 {
		t.Errorf("redemptions = %v, want none", dash.Redemptions)
	}
}
