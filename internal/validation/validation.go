// Package validation checks user input before it reaches the store, which
// accepts anything it is given.
package validation

import (
	"fmt"
	"regexp"
	"strings"

	"rewardsprint/internal/models"
)

var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	pinRegex   = regexp.MustCompile(`^[0-9]{4}$`)
)

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateEmail checks if an email address is valid
func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return ValidationError{Field: "email", Message: "email is required"}
	}
	if !emailRegex.MatchString(email) {
		return ValidationError{Field: "email", Message: "invalid email format"}
	}
	return nil
}

// ValidateName checks that a family or child name is not blank
func ValidateName(field, name string) error {
	if strings.TrimSpace(name) == "" {
		return ValidationError{Field: field, Message: field + " is required"}
	}
	if len(name) > 100 {
		return ValidationError{Field: field, Message: field + " must be at most 100 characters"}
	}
	return nil
}

// ValidatePIN checks for exactly four digits
func ValidatePIN(pin string) error {
	if !pinRegex.MatchString(pin) {
		return ValidationError{Field: "pin", Message: "pin must be exactly 4 digits"}
	}
	return nil
}

func validatePositive(field string, v int) error {
	if v <= 0 {
		return ValidationError{Field: field, Message: field + " must be greater than zero"}
	}
	return nil
}

func validateRequired(field, v string) error {
	if strings.TrimSpace(v) == "" {
		return ValidationError{Field: field, Message: field + " is required"}
	}
	return nil
}

// ValidateTaskFields checks a new task
func ValidateTaskFields(f models.TaskFields) error {
	if err := validateRequired("name", f.Name); err != nil {
		return err
	}
	if err := validateRequired("description", f.Description); err != nil {
		return err
	}
	if err := validatePositive("points", f.Points); err != nil {
		return err
	}
	return validatePositive("duration", f.Duration)
}

// ValidateTaskPatch checks only the fields a patch sets
func ValidateTaskPatch(p models.TaskPatch) error {
	if p.Name != nil {
		if err := validateRequired("name", *p.Name); err != nil {
			return err
		}
	}
	if p.Description != nil {
		if err := validateRequired("description", *p.Description); err != nil {
			return err
		}
	}
	if p.Points != nil {
		if err := validatePositive("points", *p.Points); err != nil {
			return err
		}
	}
	if p.Duration != nil {
		if err := validatePositive("duration", *p.Duration); err != nil {
			return err
		}
	}
	return nil
}

// ValidateRewardFields checks a new reward
func ValidateRewardFields(f models.RewardFields) error {
	if err := validateRequired("name", f.Name); err != nil {
		return err
	}
	if err := validateRequired("description", f.Description); err != nil {
		return err
	}
	return validatePositive("pointsCost", f.PointsCost)
}

// ValidateRewardPatch checks only the fields a patch sets
func ValidateRewardPatch(p models.RewardPatch) error {
	if p.Name != nil {
		if err := validateRequired("name", *p.Name); err != nil {
			return err
		}
	}
	if p.Description != nil {
		if err := validateRequired("description", *p.Description); err != nil {
			return err
		}
	}
	if p.PointsCost != nil {
		if err := validatePositive("pointsCost", *p.PointsCost); err != nil {
			return err
		}
	}
	return nil
}
