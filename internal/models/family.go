package models

import "time"

// Family is the root aggregate holding everything for one household
type Family struct {
	ID             string             `json:"id"`
	Name           string             `json:"name"`
	ParentEmail    string             `json:"parentEmail"`
	TrialStartDate time.Time          `json:"trialStartDate"`
	Children       []Child            `json:"children"`
	Tasks          []Task             `json:"tasks"`
	Rewards        []Reward           `json:"rewards"`
	Redemptions    []RewardRedemption `json:"redemptions"`
	CompletedTasks []CompletedTask    `json:"completedTasks"`
}

// Clone returns a deep copy of the family
func (f Family) Clone() Family {
	f.Children = cloneSlice(f.Children)
	f.Tasks = cloneSlice(f.Tasks)
	f.Rewards = cloneSlice(f.Rewards)
	f.Redemptions = cloneSlice(f.Redemptions)
	f.CompletedTasks = cloneSlice(f.CompletedTasks)
	return f
}

// TrialDaysRemaining returns how many whole days of the trial are left at now.
// The result goes negative once the trial has lapsed; nothing enforces it.
func (f Family) TrialDaysRemaining(now time.Time, trialDays int) int {
	elapsed := int(now.Sub(f.TrialStartDate) / (24 * time.Hour))
	return trialDays - elapsed
}

// cloneSlice copies a slice of value types, keeping nil and empty distinct
func cloneSlice[T any](in []T) []T {
	if in == nil {
		return nil
	}
	out := make([]T, len(in))
	copy(out, in)
	return out
}
