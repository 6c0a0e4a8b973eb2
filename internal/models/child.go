package models

import "time"

// Avatars is the fixed set handed out round-robin as children are added
var Avatars = []string{"👦", "👧", "🧒", "👶", "🧑"}

// Child represents a child profile in a family.
// PIN is stored in plaintext and compared by exact string match.
type Child struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	PIN    string `json:"pin"`
	Points int    `json:"points"`
	Avatar string `json:"avatar"`
}

// AvatarFor picks the avatar for the child at position index
func AvatarFor(index int) string {
	return Avatars[index%len(Avatars)]
}

// CompletedTask is an immutable record of a child finishing a task.
// PointsEarned is copied from the task at completion time.
type CompletedTask struct {
	ID           string    `json:"id"`
	ChildID      string    `json:"childId"`
	TaskID       string    `json:"taskId"`
	CompletedAt  time.Time `json:"completedAt"`
	PointsEarned int       `json:"pointsEarned"`
}

// CompletedOn reports whether the record falls on the same calendar day as day
// in day's location
func (c CompletedTask) CompletedOn(day time.Time) bool {
	y1, m1, d1 := c.CompletedAt.In(day.Location()).Date()
	y2, m2, d2 := day.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
