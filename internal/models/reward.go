package models

import "time"

// Reward is something a child can exchange points for
type Reward struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	PointsCost  int    `json:"pointsCost"`
	Icon        string `json:"icon"`
}

// RewardFields holds everything needed to create a reward except its identity
type RewardFields struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	PointsCost  int    `json:"pointsCost"`
	Icon        string `json:"icon"`
}

// RewardPatch is a partial update; nil fields are left untouched
type RewardPatch struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	PointsCost  *int    `json:"pointsCost,omitempty"`
	Icon        *string `json:"icon,omitempty"`
}

// Apply merges the patch into r
func (p RewardPatch) Apply(r Reward) Reward {
	if p.Name != nil {
		r.Name = *p.Name
	}
	if p.Description != nil {
		r.Description = *p.Description
	}
	if p.PointsCost != nil {
		r.PointsCost = *p.PointsCost
	}
	if p.Icon != nil {
		r.Icon = *p.Icon
	}
	return r
}

// RedemptionStatus is the lifecycle state of a redemption request
type RedemptionStatus string

const (
	RedemptionPending  RedemptionStatus = "pending"
	RedemptionApproved RedemptionStatus = "approved"
	RedemptionDenied   RedemptionStatus = "denied"
)

// IsTerminal reports whether no further transition is allowed
func (s RedemptionStatus) IsTerminal() bool {
	return s == RedemptionApproved || s == RedemptionDenied
}

// CanTransitionTo reports whether moving from s to next is allowed.
// Only pending -> approved and pending -> denied exist.
func (s RedemptionStatus) CanTransitionTo(next RedemptionStatus) bool {
	return s == RedemptionPending && next.IsTerminal()
}

// RewardRedemption is a child's request to exchange points for a reward
type RewardRedemption struct {
	ID          string           `json:"id"`
	ChildID     string           `json:"childId"`
	RewardID    string           `json:"rewardId"`
	Status      RedemptionStatus `json:"status"`
	RequestedAt time.Time        `json:"requestedAt"`
}
