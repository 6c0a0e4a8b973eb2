package models

// Task is a chore a child can complete to earn points
type Task struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Points      int    `json:"points"`
	Duration    int    `json:"duration"` // minutes
	Icon        string `json:"icon"`
}

// TaskFields holds everything needed to create a task except its identity
type TaskFields struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Points      int    `json:"points"`
	Duration    int    `json:"duration"`
	Icon        string `json:"icon"`
}

// TaskPatch is a partial update; nil fields are left untouched
type TaskPatch struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Points      *int    `json:"points,omitempty"`
	Duration    *int    `json:"duration,omitempty"`
	Icon        *string `json:"icon,omitempty"`
}

// Apply merges the patch into t
func (p TaskPatch) Apply(t Task) Task {
	if p.Name != nil {
		t.Name = *p.Name
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Points != nil {
		t.Points = *p.Points
	}
	if p.Duration != nil {
		t.Duration = *p.Duration
	}
	if p.Icon != nil {
		t.Icon = *p.Icon
	}
	return t
}
