package store

import "errors"

// Precondition failures. Every action that returns one of these has left the
// state untouched, so callers that only care about the default silent
// behaviour can ignore them.
var (
	ErrNoFamily             = errors.New("no family has been created")
	ErrChildNotFound        = errors.New("child not found")
	ErrTaskNotFound         = errors.New("task not found")
	ErrRewardNotFound       = errors.New("reward not found")
	ErrRedemptionNotFound   = errors.New("redemption not found")
	ErrRedemptionNotPending = errors.New("redemption is no longer pending")
	ErrInsufficientPoints   = errors.New("not enough points for this reward")
	ErrInvalidCredentials   = errors.New("invalid credentials")
)
