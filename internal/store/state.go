package store

import (
	"encoding/json"
	"fmt"

	"rewardsprint/internal/models"
)

// State is everything the store holds. Its JSON form is the persisted blob:
// the session fields sit at the top level next to "family".
type State struct {
	models.Session
	Family *models.Family `json:"family"`
}

// HasFamily reports whether a family has been created
func (s State) HasFamily() bool {
	return s.Family != nil
}

func (s State) clone() State {
	out := State{Session: s.Session.Clone()}
	if s.Family != nil {
		family := s.Family.Clone()
		out.Family = &family
	}
	return out
}

// MarshalState encodes the state as the persisted blob
func MarshalState(s State) ([]byte, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("failed to encode state: %w", err)
	}
	return data, nil
}

// UnmarshalState decodes a persisted blob. Only JSON syntax and field types
// are checked; a blob written by an older shape decodes with zero values.
func UnmarshalState(data []byte) (State, error) {
	var s State
	if err := json.Unmarshal(data, &s); err != nil {
		return State{}, fmt.Errorf("failed to decode state: %w", err)
	}
	return s, nil
}

// seedTasks are the example tasks every new family starts with
func seedTasks(newID func() string) []models.Task {
	return []models.Task{
		{ID: newID(), Name: "Clean Room", Description: "Tidy up bedroom and make bed", Points: 10, Duration: 10, Icon: "🛏️"},
		{ID: newID(), Name: "Homework", Description: "Complete daily homework", Points: 15, Duration: 30, Icon: "📚"},
		{ID: newID(), Name: "Dishes", Description: "Help with dishes after dinner", Points: 10, Duration: 15, Icon: "🍽️"},
	}
}

// seedRewards are the example rewards every new family starts with
func seedRewards(newID func() string) []models.Reward {
	return []models.Reward{
		{ID: newID(), Name: "30min Screen Time", Description: "Extra 30 minutes of screen time", PointsCost: 20, Icon: "📱"},
		{ID: newID(), Name: "Choose Dinner", Description: "Pick what we have for dinner", PointsCost: 30, Icon: "🍕"},
		{ID: newID(), Name: "Stay Up Late", Description: "30 minutes past bedtime", PointsCost: 25, Icon: "🌙"},
	}
}
