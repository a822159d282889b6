package store

import (
	"github.com/Formula-SAE/signupspark/internal/db"
)

type campaignState struct {
	CurrentCampaign *Campaign  `json:"currentCampaign"`
	Campaigns       []Campaign `json:"campaigns"`
}

func cloneCampaignState(s campaignState) campaignState {
	next := campaignState{Campaigns: append([]Campaign{}, s.Campaigns...)}
	if s.CurrentCampaign != nil {
		current := *s.CurrentCampaign
		next.CurrentCampaign = &current
	}
	return next
}

type CampaignStore struct {
	c       *container[campaignState]
	newCode func() string
}

func NewCampaignStore(p Persister) (*CampaignStore, error) {
	c, err := newContainer("campaign", db.CAMPAIGN_SNAPSHOT, p, campaignState{Campaigns: []Campaign{}}, cloneCampaignState)
	if err != nil {
		return nil, err
	}
	return &CampaignStore{c: c, newCode: GenerateCampaignCode}, nil
}

func (s *CampaignStore) Subscribe(fn Listener) func() {
	return s.c.subscribe(fn)
}

// SetCurrentCampaign replaces the current campaign pointer unconditionally.
func (s *CampaignStore) SetCurrentCampaign(campaign Campaign) error {
	return s.c.write("set-current", func(st *campaignState) (bool, error) {
		st.CurrentCampaign = &campaign
		return true, nil
	})
}

// AddCampaign assigns a fresh code, appends the campaign and makes it current.
func (s *CampaignStore) AddCampaign(campaign Campaign) (Campaign, error) {
	campaign.Code = s.newCode()
	err := s.c.write("add", func(st *campaignState) (bool, error) {
		st.Campaigns = append(st.Campaigns, campaign)
		current := campaign
		st.CurrentCampaign = &current
		return true, nil
	})
	if err != nil {
		return Campaign{}, err
	}
	return campaign, nil
}

// UpdateCampaign merges the set fields into the campaign with id. The current
// campaign pointer follows the edit when it refers to the same id.
func (s *CampaignStore) UpdateCampaign(id string, updates CampaignUpdate) error {
	return s.c.write("update", func(st *campaignState) (bool, error) {
		changed := false
		for i := range st.Campaigns {
			if st.Campaigns[i].ID != id {
				continue
			}
			if updates.Name != nil {
				st.Campaigns[i].Name = *updates.Name
			}
			if updates.Description != nil {
				st.Campaigns[i].Description = *updates.Description
			}
			if st.CurrentCampaign != nil && st.CurrentCampaign.ID == id {
				current := st.Campaigns[i]
				st.CurrentCampaign = &current
			}
			changed = true
		}
		return changed, nil
	})
}

func (s *CampaignStore) RemoveCampaign(id string) error {
	return s.c.write("remove", func(st *campaignState) (bool, error) {
		kept := st.Campaigns[:0]
		for _, campaign := range st.Campaigns {
			if campaign.ID != id {
				kept = append(kept, campaign)
			}
		}
		removed := len(kept) != len(st.Campaigns)
		st.Campaigns = kept

		if st.CurrentCampaign != nil && st.CurrentCampaign.ID == id {
			st.CurrentCampaign = nil
			removed = true
		}
		return removed, nil
	})
}

// GetCampaignByCode is an exact, case-sensitive match. Callers upper-case
// user input first.
func (s *CampaignStore) GetCampaignByCode(code string) (Campaign, bool) {
	var (
		found Campaign
		ok    bool
	)
	s.c.read(func(st campaignState) {
		for _, campaign := range st.Campaigns {
			if campaign.Code == code {
				found, ok = campaign, true
				return
			}
		}
	})
	return found, ok
}

func (s *CampaignStore) GetCampaign(id string) (Campaign, bool) {
	var (
		found Campaign
		ok    bool
	)
	s.c.read(func(st campaignState) {
		for _, campaign := range st.Campaigns {
			if campaign.ID == id {
				found, ok = campaign, true
				return
			}
		}
	})
	return found, ok
}

func (s *CampaignStore) Campaigns() []Campaign {
	var campaigns []Campaign
	s.c.read(func(st campaignState) {
		campaigns = append([]Campaign{}, st.Campaigns...)
	})
	return campaigns
}

func (s *CampaignStore) CurrentCampaign() (Campaign, bool) {
	var (
		current Campaign
		ok      bool
	)
	s.c.read(func(st campaignState) {
		if st.CurrentCampaign != nil {
			current, ok = *st.CurrentCampaign, true
		}
	})
	return current, ok
}

func (s *CampaignStore) ClearCampaigns() error {
	return s.c.write("clear", func(st *campaignState) (bool, error) {
		st.Campaigns = []Campaign{}
		st.CurrentCampaign = nil
		return true, nil
	})
}
