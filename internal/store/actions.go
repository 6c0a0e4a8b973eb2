package store

import (
	"rewardsprint/internal/models"
)

// CreateFamily replaces any existing family with a freshly seeded one and
// logs the parent in
func (s *FamilyStore) CreateFamily(name, parentEmail string) models.Family {
	var created models.Family
	s.update(func(st *State) error {
		family := models.Family{
			ID:             s.newID(),
			Name:           name,
			ParentEmail:    parentEmail,
			TrialStartDate: s.now(),
			Children:       []models.Child{},
			Tasks:          seedTasks(s.newID),
			Rewards:        seedRewards(s.newID),
			Redemptions:    []models.RewardRedemption{},
			CompletedTasks: []models.CompletedTask{},
		}
		st.Family = &family
		st.Session = models.NewSession(models.RoleParent, family.ID)
		created = family.Clone()
		return nil
	})
	return created
}

// AddChild appends a child with zero points and the next avatar in rotation
func (s *FamilyStore) AddChild(name, pin string) (models.Child, error) {
	var child models.Child
	err := s.update(func(st *State) error {
		if st.Family == nil {
			return ErrNoFamily
		}
		child = models.Child{
			ID:     s.newID(),
			Name:   name,
			PIN:    pin,
			Points: 0,
			Avatar: models.AvatarFor(len(st.Family.Children)),
		}
		st.Family.Children = append(st.Family.Children, child)
		return nil
	})
	return child, err
}

// AddTask appends a task. Field validation is the caller's job.
func (s *FamilyStore) AddTask(fields models.TaskFields) (models.Task, error) {
	var task models.Task
	err := s.update(func(st *State) error {
		if st.Family == nil {
			return ErrNoFamily
		}
		task = models.Task{
			ID:          s.newID(),
			Name:        fields.Name,
			Description: fields.Description,
			Points:      fields.Points,
			Duration:    fields.Duration,
			Icon:        fields.Icon,
		}
		st.Family.Tasks = append(st.Family.Tasks, task)
		return nil
	})
	return task, err
}

// UpdateTask merges patch into the task with the given id
func (s *FamilyStore) UpdateTask(id string, patch models.TaskPatch) (models.Task, error) {
	var task models.Task
	err := s.update(func(st *State) error {
		if st.Family == nil {
			return ErrNoFamily
		}
		i := indexOf(st.Family.Tasks, func(t models.Task) bool { return t.ID == id })
		if i < 0 {
			return ErrTaskNotFound
		}
		task = patch.Apply(st.Family.Tasks[i])
		st.Family.Tasks[i] = task
		return nil
	})
	return task, err
}

// DeleteTask removes a task. Completion records that point at it are kept.
func (s *FamilyStore) DeleteTask(id string) error {
	return s.update(func(st *State) error {
		if st.Family == nil {
			return ErrNoFamily
		}
		i := indexOf(st.Family.Tasks, func(t models.Task) bool { return t.ID == id })
		if i < 0 {
			return ErrTaskNotFound
		}
		st.Family.Tasks = append(st.Family.Tasks[:i:i], st.Family.Tasks[i+1:]...)
		return nil
	})
}

// AddReward appends a reward. Field validation is the caller's job.
func (s *FamilyStore) AddReward(fields models.RewardFields) (models.Reward, error) {
	var reward models.Reward
	err := s.update(func(st *State) error {
		if st.Family == nil {
			return ErrNoFamily
		}
		reward = models.Reward{
			ID:          s.newID(),
			Name:        fields.Name,
			Description: fields.Description,
			PointsCost:  fields.PointsCost,
			Icon:        fields.Icon,
		}
		st.Family.Rewards = append(st.Family.Rewards, reward)
		return nil
	})
	return reward, err
}

// UpdateReward merges patch into the reward with the given id
func (s *FamilyStore) UpdateReward(id string, patch models.RewardPatch) (models.Reward, error) {
	var reward models.Reward
	err := s.update(func(st *State) error {
		if st.Family == nil {
			return ErrNoFamily
		}
		i := indexOf(st.Family.Rewards, func(r models.Reward) bool { return r.ID == id })
		if i < 0 {
			return ErrRewardNotFound
		}
		reward = patch.Apply(st.Family.Rewards[i])
		st.Family.Rewards[i] = reward
		return nil
	})
	return reward, err
}

// DeleteReward removes a reward. Pending redemptions for it can no longer be
// approved.
func (s *FamilyStore) DeleteReward(id string) error {
	return s.update(func(st *State) error {
		if st.Family == nil {
			return ErrNoFamily
		}
		i := indexOf(st.Family.Rewards, func(r models.Reward) bool { return r.ID == id })
		if i < 0 {
			return ErrRewardNotFound
		}
		st.Family.Rewards = append(st.Family.Rewards[:i:i], st.Family.Rewards[i+1:]...)
		return nil
	})
}

// CompleteTask credits the child with the task's current points and records
// the completion. Calling it twice credits twice. An unknown child still gets
// the record but no one is credited.
func (s *FamilyStore) CompleteTask(childID, taskID string) (models.CompletedTask, error) {
	var record models.CompletedTask
	err := s.update(func(st *State) error {
		if st.Family == nil {
			return ErrNoFamily
		}
		t := indexOf(st.Family.Tasks, func(t models.Task) bool { return t.ID == taskID })
		if t < 0 {
			return ErrTaskNotFound
		}
		c := indexOf(st.Family.Children, func(c models.Child) bool { return c.ID == childID })

		task := st.Family.Tasks[t]
		record = models.CompletedTask{
			ID:           s.newID(),
			ChildID:      childID,
			TaskID:       taskID,
			CompletedAt:  s.now(),
			PointsEarned: task.Points,
		}
		if c >= 0 {
			st.Family.Children[c].Points += task.Points
		}
		st.Family.CompletedTasks = append(st.Family.CompletedTasks, record)
		return nil
	})
	return record, err
}

// RequestRedemption files a pending request if the child can currently afford
// the reward. Nothing is deducted until approval and nothing is reserved, so
// several requests may each pass against the same balance.
func (s *FamilyStore) RequestRedemption(childID, rewardID string) (models.RewardRedemption, error) {
	var redemption models.RewardRedemption
	err := s.update(func(st *State) error {
		if st.Family == nil {
			return ErrNoFamily
		}
		c := indexOf(st.Family.Children, func(c models.Child) bool { return c.ID == childID })
		if c < 0 {
			return ErrChildNotFound
		}
		r := indexOf(st.Family.Rewards, func(r models.Reward) bool { return r.ID == rewardID })
		if r < 0 {
			return ErrRewardNotFound
		}
		if st.Family.Children[c].Points < st.Family.Rewards[r].PointsCost {
			return ErrInsufficientPoints
		}

		redemption = models.RewardRedemption{
			ID:          s.newID(),
			ChildID:     childID,
			RewardID:    rewardID,
			Status:      models.RedemptionPending,
			RequestedAt: s.now(),
		}
		st.Family.Redemptions = append(st.Family.Redemptions, redemption)
		return nil
	})
	return redemption, err
}

// ApproveRedemption charges the reward's current cost to the child and marks
// the request approved. The balance is allowed to go negative.
func (s *FamilyStore) ApproveRedemption(redemptionID string) error {
	return s.update(func(st *State) error {
		if st.Family == nil {
			return ErrNoFamily
		}
		i := indexOf(st.Family.Redemptions, func(r models.RewardRedemption) bool { return r.ID == redemptionID })
		if i < 0 {
			return ErrRedemptionNotFound
		}
		redemption := st.Family.Redemptions[i]
		if !redemption.Status.CanTransitionTo(models.RedemptionApproved) {
			return ErrRedemptionNotPending
		}
		r := indexOf(st.Family.Rewards, func(r models.Reward) bool { return r.ID == redemption.RewardID })
		if r < 0 {
			return ErrRewardNotFound
		}

		cost := st.Family.Rewards[r].PointsCost
		if c := indexOf(st.Family.Children, func(c models.Child) bool { return c.ID == redemption.ChildID }); c >= 0 {
			st.Family.Children[c].Points -= cost
		}
		st.Family.Redemptions[i].Status = models.RedemptionApproved
		return nil
	})
}

// DenyRedemption marks a pending request denied without touching any balance
func (s *FamilyStore) DenyRedemption(redemptionID string) error {
	return s.update(func(st *State) error {
		if st.Family == nil {
			return ErrNoFamily
		}
		i := indexOf(st.Family.Redemptions, func(r models.RewardRedemption) bool { return r.ID == redemptionID })
		if i < 0 {
			return ErrRedemptionNotFound
		}
		if !st.Family.Redemptions[i].Status.CanTransitionTo(models.RedemptionDenied) {
			return ErrRedemptionNotPending
		}
		st.Family.Redemptions[i].Status = models.RedemptionDenied
		return nil
	})
}

// LoginParent starts a parent session when email matches the family's
// stored address exactly
func (s *FamilyStore) LoginParent(email string) error {
	return s.update(func(st *State) error {
		if st.Family == nil || st.Family.ParentEmail != email {
			return ErrInvalidCredentials
		}
		st.Session = models.NewSession(models.RoleParent, st.Family.ID)
		return nil
	})
}

// LoginChild starts a child session when both id and PIN match exactly.
// A failed attempt leaves the current session as it was.
func (s *FamilyStore) LoginChild(childID, pin string) bool {
	err := s.update(func(st *State) error {
		if st.Family == nil {
			return ErrInvalidCredentials
		}
		i := indexOf(st.Family.Children, func(c models.Child) bool { return c.ID == childID && c.PIN == pin })
		if i < 0 {
			return ErrInvalidCredentials
		}
		st.Session = models.NewSession(models.RoleChild, childID)
		return nil
	})
	return err == nil
}

// Logout clears the session and keeps the family
func (s *FamilyStore) Logout() {
	s.update(func(st *State) error {
		st.Session = models.Session{}
		return nil
	})
}
