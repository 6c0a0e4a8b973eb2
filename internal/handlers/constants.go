package handlers

const (
	ErrInvalidJSON         = "Invalid JSON body"
	ErrUnauthorized        = "Unauthorized"
	ErrForbidden           = "Forbidden"
	ErrInternalServerError = "Internal server error"
	ErrInvalidCredentials  = "Invalid credentials"
	ErrNoFamily            = "No family has been created"
	ErrNotFound            = "Not found"
	ErrAlreadyDecided      = "Redemption has already been decided"
	ErrNotEnoughPoints     = "Not enough points for this reward"

	// maxBodyBytes caps request bodies
	maxBodyBytes = 1 << 20
)
