package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"rewardsprint/internal/credentials"
	"rewardsprint/internal/models"
	"rewardsprint/internal/store"
	"rewardsprint/internal/validation"
)

// ErrNotAffordable is returned when a child asks for a reward they cannot pay for
var ErrNotAffordable = errors.New("not enough points for this reward")

// Notifier delivers parent notifications. *EmailService implements it.
type Notifier interface {
	SendWelcomeEmail(ctx context.Context, toEmail, familyName string, trialDays int) error
	SendRedemptionRequestEmail(ctx context.Context, toEmail string, notice RedemptionNotice) error
}

// RedemptionNotice describes a new reward request for the parent
type RedemptionNotice struct {
	ChildName   string
	ChildPoints int
	RewardName  string
	RewardIcon  string
	PointsCost  int
}

// PendingRedemption is a pending request joined with its child and reward
type PendingRedemption struct {
	models.RewardRedemption
	ChildName   string `json:"childName"`
	ChildAvatar string `json:"childAvatar"`
	RewardName  string `json:"rewardName"`
	RewardIcon  string `json:"rewardIcon"`
	PointsCost  int    `json:"pointsCost"`
}

// ParentDashboard is everything the parent overview shows
type ParentDashboard struct {
	FamilyName         string              `json:"familyName"`
	TrialDaysRemaining int                 `json:"trialDaysRemaining"`
	Children           []models.Child      `json:"children"`
	PendingRedemptions []PendingRedemption `json:"pendingRedemptions"`
}

// RewardOption is a reward annotated with whether the child can afford it
type RewardOption struct {
	models.Reward
	CanAfford    bool `json:"canAfford"`
	PointsNeeded int  `json:"pointsNeeded"`
}

// ChildDashboard is everything the child view shows
type ChildDashboard struct {
	Child          models.Child              `json:"child"`
	CompletedToday []models.CompletedTask    `json:"completedToday"`
	Tasks          []models.Task             `json:"tasks"`
	Rewards        []RewardOption            `json:"rewards"`
	Redemptions    []models.RewardRedemption `json:"redemptions"`
}

// FamilyService validates input and composes views over the FamilyStore
type FamilyService struct {
	store     *store.FamilyStore
	notifier  Notifier
	trialDays int
	now       func() time.Time
	location  *time.Location
}

// NewFamilyService creates a new family service. notifier may be nil.
func NewFamilyService(s *store.FamilyStore, notifier Notifier, trialDays int) *FamilyService {
	return &FamilyService{
		store:     s,
		notifier:  notifier,
		trialDays: trialDays,
		now:       time.Now,
		location:  time.Local,
	}
}

// CreateFamily starts a new family, logged in as the parent
func (s *FamilyService) CreateFamily(ctx context.Context, name, parentEmail string) (models.Family, error) {
	name = strings.TrimSpace(name)
	parentEmail = strings.TrimSpace(parentEmail)
	if err := validation.ValidateName("familyName", name); err != nil {
		return models.Family{}, err
	}
	if err := validation.ValidateEmail(parentEmail); err != nil {
		return models.Family{}, err
	}

	family := s.store.CreateFamily(name, parentEmail)
	log.Printf("Family created: id=%s, name=%s", family.ID, family.Name)

	if s.notifier != nil {
		if err := s.notifier.SendWelcomeEmail(ctx, parentEmail, name, s.trialDays); err != nil {
			log.Printf("Failed to send welcome email: %v", err)
		}
	}
	return family, nil
}

// LoginParent compares email to the stored address exactly
func (s *FamilyService) LoginParent(email string) error {
	if email == "" {
		return validation.ValidationError{Field: "email", Message: "email is required"}
	}
	return s.store.LoginParent(email)
}

// LoginChild checks the child's PIN
func (s *FamilyService) LoginChild(childID, pin string) error {
	if !s.store.LoginChild(childID, pin) {
		return store.ErrInvalidCredentials
	}
	return nil
}

// Logout clears the session
func (s *FamilyService) Logout() {
	s.store.Logout()
}

// Session returns the current session
func (s *FamilyService) Session() models.Session {
	return s.store.Session()
}

// Family returns the whole family aggregate
func (s *FamilyService) Family() (models.Family, error) {
	family, ok := s.store.Family()
	if !ok {
		return models.Family{}, store.ErrNoFamily
	}
	return family, nil
}

// AddChild adds a child. An empty pin is replaced by a generated one.
func (s *FamilyService) AddChild(name, pin string) (models.Child, error) {
	name = strings.TrimSpace(name)
	if err := validation.ValidateName("childName", name); err != nil {
		return models.Child{}, err
	}
	if pin == "" {
		generated, err := credentials.GeneratePIN()
		if err != nil {
			return models.Child{}, fmt.Errorf("failed to generate pin: %w", err)
		}
		pin = generated
	}
	if err := validation.ValidatePIN(pin); err != nil {
		return models.Child{}, err
	}
	return s.store.AddChild(name, pin)
}

// AddTask validates and adds a task
func (s *FamilyService) AddTask(fields models.TaskFields) (models.Task, error) {
	if err := validation.ValidateTaskFields(fields); err != nil {
		return models.Task{}, err
	}
	return s.store.AddTask(fields)
}

// UpdateTask validates and applies a partial task update
func (s *FamilyService) UpdateTask(id string, patch models.TaskPatch) (models.Task, error) {
	if err := validation.ValidateTaskPatch(patch); err != nil {
		return models.Task{}, err
	}
	return s.store.UpdateTask(id, patch)
}

func (s *FamilyService) DeleteTask(id string) error {
	return s.store.DeleteTask(id)
}

// AddReward validates and adds a reward
func (s *FamilyService) AddReward(fields models.RewardFields) (models.Reward, error) {
	if err := validation.ValidateRewardFields(fields); err != nil {
		return models.Reward{}, err
	}
	return s.store.AddReward(fields)
}

// UpdateReward validates and applies a partial reward update
func (s *FamilyService) UpdateReward(id string, patch models.RewardPatch) (models.Reward, error) {
	if err := validation.ValidateRewardPatch(patch); err != nil {
		return models.Reward{}, err
	}
	return s.store.UpdateReward(id, patch)
}

func (s *FamilyService) DeleteReward(id string) error {
	return s.store.DeleteReward(id)
}

// CompleteTask credits the child for a task
func (s *FamilyService) CompleteTask(childID, taskID string) (models.CompletedTask, error) {
	return s.store.CompleteTask(childID, taskID)
}

// RequestRedemption files a reward request and notifies the parent
func (s *FamilyService) RequestRedemption(ctx context.Context, childID, rewardID string) (models.RewardRedemption, error) {
	redemption, err := s.store.RequestRedemption(childID, rewardID)
	if errors.Is(err, store.ErrInsufficientPoints) {
		return redemption, ErrNotAffordable
	}
	if err != nil {
		return redemption, err
	}

	if s.notifier != nil {
		s.notifyRedemption(ctx, redemption)
	}
	return redemption, nil
}

func (s *FamilyService) notifyRedemption(ctx context.Context, redemption models.RewardRedemption) {
	family, ok := s.store.Family()
	if !ok {
		return
	}
	child, _ := find(family.Children, func(c models.Child) bool { return c.ID == redemption.ChildID })
	reward, _ := find(family.Rewards, func(r models.Reward) bool { return r.ID == redemption.RewardID })

	notice := RedemptionNotice{
		ChildName:   child.Name,
		ChildPoints: child.Points,
		RewardName:  reward.Name,
		RewardIcon:  reward.Icon,
		PointsCost:  reward.PointsCost,
	}
	if err := s.notifier.SendRedemptionRequestEmail(ctx, family.ParentEmail, notice); err != nil {
		log.Printf("Failed to send redemption request email: %v", err)
	}
}

func (s *FamilyService) ApproveRedemption(id string) error {
	return s.store.ApproveRedemption(id)
}

func (s *FamilyService) DenyRedemption(id string) error {
	return s.store.DenyRedemption(id)
}

// TrialDaysRemaining reports the days left in the family's free trial
func (s *FamilyService) TrialDaysRemaining() (int, error) {
	family, ok := s.store.Family()
	if !ok {
		return 0, store.ErrNoFamily
	}
	return family.TrialDaysRemaining(s.now(), s.trialDays), nil
}

// ParentDashboard lists children and the pending requests that still refer
// to an existing child and reward
func (s *FamilyService) ParentDashboard() (ParentDashboard, error) {
	family, ok := s.store.Family()
	if !ok {
		return ParentDashboard{}, store.ErrNoFamily
	}

	pending := []PendingRedemption{}
	for _, r := range s.store.PendingRedemptions() {
		child, ok := find(family.Children, func(c models.Child) bool { return c.ID == r.ChildID })
		if !ok {
			continue
		}
		reward, ok := find(family.Rewards, func(rw models.Reward) bool { return rw.ID == r.RewardID })
		if !ok {
			continue
		}
		pending = append(pending, PendingRedemption{
			RewardRedemption: r,
			ChildName:        child.Name,
			ChildAvatar:      child.Avatar,
			RewardName:       reward.Name,
			RewardIcon:       reward.Icon,
			PointsCost:       reward.PointsCost,
		})
	}

	children := family.Children
	if children == nil {
		children = []models.Child{}
	}

	return ParentDashboard{
		FamilyName:         family.Name,
		TrialDaysRemaining: family.TrialDaysRemaining(s.now(), s.trialDays),
		Children:           children,
		PendingRedemptions: pending,
	}, nil
}

// ChildDashboard builds the view for one child: balance, today's
// completions, every task and every reward with its affordability
func (s *FamilyService) ChildDashboard(childID string) (ChildDashboard, error) {
	family, ok := s.store.Family()
	if !ok {
		return ChildDashboard{}, store.ErrNoFamily
	}
	child, ok := s.store.Child(childID)
	if !ok {
		return ChildDashboard{}, store.ErrChildNotFound
	}

	today := s.now().In(s.location)
	completedToday := []models.CompletedTask{}
	for _, ct := range s.store.ChildCompletedTasks(childID) {
		if ct.CompletedOn(today) {
			completedToday = append(completedToday, ct)
		}
	}

	rewards := make([]RewardOption, 0, len(family.Rewards))
	for _, r := range family.Rewards {
		option := RewardOption{Reward: r, CanAfford: child.Points >= r.PointsCost}
		if !option.CanAfford {
			option.PointsNeeded = r.PointsCost - child.Points
		}
		rewards = append(rewards, option)
	}

	tasks := family.Tasks
	if tasks == nil {
		tasks = []models.Task{}
	}

	return ChildDashboard{
		Child:          child,
		CompletedToday: completedToday,
		Tasks:          tasks,
		Rewards:        rewards,
		Redemptions:    s.store.ChildRedemptions(childID),
	}, nil
}

func find[T any](items []T, match func(T) bool) (T, bool) {
	for _, item := range items {
		if match(item) {
			return item, true
		}
	}
	var zero T
	return zero, false
}
