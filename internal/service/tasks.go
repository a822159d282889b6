package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Formula-SAE/signupspark/internal/messages"
	"github.com/Formula-SAE/signupspark/internal/store"
)

// TaskDraft is what an organizer fills in when adding a task.
type TaskDraft struct {
	Name        string `json:"name"`
	Quantity    int    `json:"quantity,omitempty"`
	DueDate     string `json:"dueDate,omitempty"`
	Description string `json:"description,omitempty"`
}

type SignupForm struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
}

const (
	anonymousUserID      = "anonymous"
	anonymousUserName    = "Anonymous"
	anonymousUserPicture = "https://ui-avatars.com/api/?name=Anonymous"
)

func (s *Service) Tasks(campaignID string) ([]store.Task, error) {
	if _, err := s.Campaign(campaignID); err != nil {
		return nil, err
	}
	return s.tasks.GetTasksByCampaign(campaignID), nil
}

func (s *Service) CreateTask(campaignID string, draft TaskDraft) (store.Task, error) {
	if _, err := s.Campaign(campaignID); err != nil {
		return store.Task{}, err
	}

	name := strings.TrimSpace(draft.Name)
	if name == "" {
		return store.Task{}, invalid("Task name is required")
	}
	if draft.Quantity < 0 {
		return store.Task{}, invalid("Quantity cannot be negative")
	}

	task := store.Task{
		ID:          s.newID(),
		Name:        name,
		Quantity:    draft.Quantity,
		DueDate:     strings.TrimSpace(draft.DueDate),
		Description: strings.TrimSpace(draft.Description),
		Status:      store.TASK_OPEN,
		Comments:    []store.Comment{},
	}
	if err := s.tasks.AddTask(campaignID, task); err != nil {
		return store.Task{}, fmt.Errorf("add task: %w", err)
	}
	return task, nil
}

// UpdateTask applies an organizer edit. Moving a task back to OPEN keeps
// the assignee fields. The comment thread cannot be replaced through it.
func (s *Service) UpdateTask(campaignID, taskID string, updates store.TaskUpdate) (store.Task, error) {
	if _, err := s.Campaign(campaignID); err != nil {
		return store.Task{}, err
	}
	if updates.Name != nil {
		name := strings.TrimSpace(*updates.Name)
		if name == "" {
			return store.Task{}, invalid("Task name is required")
		}
		updates.Name = &name
	}
	if updates.Quantity != nil && *updates.Quantity < 0 {
		return store.Task{}, invalid("Quantity cannot be negative")
	}
	// Comments are append-only and only AddComment writes them.
	if updates.Comments != nil {
		return store.Task{}, invalid("Comments cannot be edited")
	}

	matched, err := s.tasks.UpdateTask(campaignID, taskID, updates)
	if errors.Is(err, store.ErrInvalidStatus) {
		return store.Task{}, invalid("Status must be OPEN or TAKEN")
	}
	if err != nil {
		return store.Task{}, fmt.Errorf("update task: %w", err)
	}
	if !matched {
		return store.Task{}, notFound("task")
	}

	task, _ := s.tasks.GetTask(campaignID, taskID)
	return task, nil
}

func (s *Service) DeleteTask(campaignID, taskID string) error {
	if _, ok := s.tasks.GetTask(campaignID, taskID); !ok {
		return notFound("task")
	}
	if err := s.tasks.RemoveTask(campaignID, taskID); err != nil {
		return fmt.Errorf("remove task: %w", err)
	}
	return nil
}

func (s *Service) ClearTasks(campaignID string) error {
	if _, err := s.Campaign(campaignID); err != nil {
		return err
	}
	if err := s.tasks.ClearTasks(campaignID); err != nil {
		return fmt.Errorf("clear tasks: %w", err)
	}
	return nil
}

// Signup claims an open task for a participant and records them as a
// contact of the campaign. If the contact cannot be written the task is put
// back the way it was. Notifications go out after both writes succeed.
func (s *Service) Signup(code, taskID string, form SignupForm) (store.Task, error) {
	form = SignupForm{
		Name:  strings.TrimSpace(form.Name),
		Email: strings.TrimSpace(form.Email),
		Phone: strings.TrimSpace(form.Phone),
	}
	if form.Name == "" || form.Email == "" {
		return store.Task{}, invalid("Name and email are required")
	}
	if !ValidEmail(form.Email) {
		return store.Task{}, invalid("Please enter a valid email address")
	}

	campaign, ok := s.campaigns.GetCampaignByCode(normalizeCode(code))
	if !ok {
		return store.Task{}, notFound("campaign")
	}

	s.signupMu.Lock()
	defer s.signupMu.Unlock()

	previous, ok := s.tasks.GetTask(campaign.ID, taskID)
	if !ok {
		return store.Task{}, notFound("task")
	}
	if previous.Status != store.TASK_OPEN {
		return store.Task{}, ErrTaskTaken
	}

	taken := store.TASK_TAKEN
	_, err := s.tasks.UpdateTask(campaign.ID, taskID, store.TaskUpdate{
		Status:        &taken,
		AssignedTo:    &form.Name,
		AssignedEmail: &form.Email,
		AssignedPhone: &form.Phone,
	})
	if err != nil {
		return store.Task{}, fmt.Errorf("claim task: %w", err)
	}

	if err := s.upsertSignupContact(campaign.ID, form); err != nil {
		if rollbackErr := s.tasks.ReplaceTask(campaign.ID, previous); rollbackErr != nil {
			return store.Task{}, fmt.Errorf("record contact: %w (task rollback failed: %v)", err, rollbackErr)
		}
		return store.Task{}, fmt.Errorf("record contact: %w", err)
	}

	task, _ := s.tasks.GetTask(campaign.ID, taskID)

	notice := messages.Notice{Campaign: campaign, Task: task}
	if organizer, ok := s.auth.User(); ok {
		notice.Organizer = &organizer
	}
	s.dispatch(notice)

	return task, nil
}

func (s *Service) upsertSignupContact(campaignID string, form SignupForm) error {
	if existing, ok := s.contacts.FindContactByEmail(form.Email); ok {
		return s.contacts.AddContactToCampaign(existing.ID, campaignID)
	}
	return s.contacts.AddContact(store.Contact{
		ID:        s.newID(),
		Name:      form.Name,
		Email:     form.Email,
		Phone:     form.Phone,
		CreatedAt: s.timestamp(),
		Campaigns: []string{campaignID},
	})
}

// AddComment appends a public comment. The author is the task's assignee
// when there is one.
func (s *Service) AddComment(code, taskID, text string) (store.Comment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return store.Comment{}, invalid("Comment text is required")
	}

	campaign, ok := s.campaigns.GetCampaignByCode(normalizeCode(code))
	if !ok {
		return store.Comment{}, notFound("campaign")
	}

	s.signupMu.Lock()
	defer s.signupMu.Unlock()

	task, ok := s.tasks.GetTask(campaign.ID, taskID)
	if !ok {
		return store.Comment{}, notFound("task")
	}

	userName := task.AssignedTo
	if userName == "" {
		userName = anonymousUserName
	}
	comment := store.Comment{
		ID:          s.newID(),
		Text:        text,
		UserID:      anonymousUserID,
		UserName:    userName,
		UserPicture: anonymousUserPicture,
		CreatedAt:   s.timestamp(),
	}

	comments := append(task.Comments, comment)
	if _, err := s.tasks.UpdateTask(campaign.ID, taskID, store.TaskUpdate{Comments: comments}); err != nil {
		return store.Comment{}, fmt.Errorf("add comment: %w", err)
	}
	return comment, nil
}
