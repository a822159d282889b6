package service

import (
	"fmt"
	"strings"

	"github.com/Formula-SAE/signupspark/internal/store"
	"github.com/Formula-SAE/signupspark/internal/views"
)

type Report struct {
	Campaign store.Campaign `json:"campaign"`
	Tasks    []store.Task   `json:"tasks"`
	Summary  views.Summary  `json:"summary"`
	Progress int            `json:"progress"`
}

func (s *Service) CreateCampaign(name, description string) (store.Campaign, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return store.Campaign{}, invalid("Campaign name is required")
	}

	createdBy := "anonymous"
	if user, ok := s.auth.User(); ok && user.Sub != "" {
		createdBy = user.Sub
	}

	campaign, err := s.campaigns.AddCampaign(store.Campaign{
		ID:          s.newID(),
		Name:        name,
		Description: strings.TrimSpace(description),
		CreatedAt:   s.timestamp(),
		CreatedBy:   createdBy,
	})
	if err != nil {
		return store.Campaign{}, fmt.Errorf("create campaign: %w", err)
	}
	return campaign, nil
}

func (s *Service) Campaigns() []store.Campaign {
	return s.campaigns.Campaigns()
}

func (s *Service) Campaign(id string) (store.Campaign, error) {
	campaign, ok := s.campaigns.GetCampaign(id)
	if !ok {
		return store.Campaign{}, notFound("campaign")
	}
	return campaign, nil
}

func (s *Service) UpdateCampaign(id string, updates store.CampaignUpdate) (store.Campaign, error) {
	if _, err := s.Campaign(id); err != nil {
		return store.Campaign{}, err
	}
	if updates.Name != nil {
		name := strings.TrimSpace(*updates.Name)
		if name == "" {
			return store.Campaign{}, invalid("Campaign name is required")
		}
		updates.Name = &name
	}

	if err := s.campaigns.UpdateCampaign(id, updates); err != nil {
		return store.Campaign{}, fmt.Errorf("update campaign: %w", err)
	}
	return s.Campaign(id)
}

// DeleteCampaign removes the campaign together with its tasks and drops the
// campaign from every contact. The contacts themselves are kept.
func (s *Service) DeleteCampaign(id string) error {
	if _, err := s.Campaign(id); err != nil {
		return err
	}

	if err := s.campaigns.RemoveCampaign(id); err != nil {
		return fmt.Errorf("remove campaign: %w", err)
	}
	if err := s.tasks.ClearTasks(id); err != nil {
		return fmt.Errorf("clear tasks of campaign %s: %w", id, err)
	}
	if err := s.contacts.RemoveCampaignFromAll(id); err != nil {
		return fmt.Errorf("untag contacts of campaign %s: %w", id, err)
	}
	return nil
}

func (s *Service) CurrentCampaign() (store.Campaign, error) {
	campaign, ok := s.campaigns.CurrentCampaign()
	if !ok {
		return store.Campaign{}, notFound("current campaign")
	}
	return campaign, nil
}

// SetCurrentCampaign points the current selection at a stored campaign.
func (s *Service) SetCurrentCampaign(id string) (store.Campaign, error) {
	campaign, err := s.Campaign(id)
	if err != nil {
		return store.Campaign{}, err
	}
	if err := s.campaigns.SetCurrentCampaign(campaign); err != nil {
		return store.Campaign{}, fmt.Errorf("set current campaign: %w", err)
	}
	return campaign, nil
}

// PublicCampaign resolves a participant-facing code. Codes are matched
// after trimming and upper-casing.
func (s *Service) PublicCampaign(code string) (store.Campaign, []store.Task, error) {
	campaign, ok := s.campaigns.GetCampaignByCode(normalizeCode(code))
	if !ok {
		return store.Campaign{}, nil, notFound("campaign")
	}
	return campaign, s.tasks.GetTasksByCampaign(campaign.ID), nil
}

// CampaignReport summarizes the campaign. Assignees whose email is not yet
// in the roster are added as contacts of this campaign.
func (s *Service) CampaignReport(id string) (Report, error) {
	campaign, err := s.Campaign(id)
	if err != nil {
		return Report{}, err
	}

	tasks := s.tasks.GetTasksByCampaign(id)
	for _, task := range tasks {
		if task.Status != store.TASK_TAKEN || task.AssignedTo == "" || task.AssignedEmail == "" {
			continue
		}
		if _, exists := s.contacts.FindContactByEmail(task.AssignedEmail); exists {
			continue
		}

		err := s.contacts.AddContact(store.Contact{
			ID:        s.newID(),
			Name:      task.AssignedTo,
			Email:     task.AssignedEmail,
			Phone:     task.AssignedPhone,
			CreatedAt: s.timestamp(),
			Campaigns: []string{id},
		})
		if err != nil {
			return Report{}, fmt.Errorf("add report contact: %w", err)
		}
	}

	return Report{
		Campaign: campaign,
		Tasks:    tasks,
		Summary:  views.Summarize(tasks),
		Progress: views.Progress(tasks),
	}, nil
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
