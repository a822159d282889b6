package views

import (
	"slices"
	"time"

	"github.com/Formula-SAE/signupspark/internal/store"
)

const (
	ACTIVITY_SIGNUP  = "signup"
	ACTIVITY_COMMENT = "comment"
)

type ActivityItem struct {
	ID           string `json:"id"`
	CampaignID   string `json:"campaignId"`
	CampaignName string `json:"campaignName"`
	TaskName     string `json:"taskName"`
	Type         string `json:"type"`
	UserName     string `json:"userName"`
	UserEmail    string `json:"userEmail,omitempty"`
	Content      string `json:"content,omitempty"`
	Timestamp    string `json:"timestamp"`
}

// ActivityFeed flattens signups and comments across campaigns, newest first.
// Signups carry no stored time, so they are stamped with now.
func ActivityFeed(campaigns []store.Campaign, tasksByCampaign func(campaignID string) []store.Task, now time.Time) []ActivityItem {
	stamp := now.UTC().Format(time.RFC3339)
	items := []ActivityItem{}

	for _, campaign := range campaigns {
		for _, task := range tasksByCampaign(campaign.ID) {
			if task.Status == store.TASK_TAKEN && task.AssignedTo != "" {
				items = append(items, ActivityItem{
					ID:           "signup-" + task.ID,
					CampaignID:   campaign.ID,
					CampaignName: campaign.Name,
					TaskName:     task.Name,
					Type:         ACTIVITY_SIGNUP,
					UserName:     task.AssignedTo,
					UserEmail:    task.AssignedEmail,
					Timestamp:    stamp,
				})
			}

			for _, comment := range task.Comments {
				items = append(items, ActivityItem{
					ID:           comment.ID,
					CampaignID:   campaign.ID,
					CampaignName: campaign.Name,
					TaskName:     task.Name,
					Type:         ACTIVITY_COMMENT,
					UserName:     comment.UserName,
					Content:      comment.Text,
					Timestamp:    comment.CreatedAt,
				})
			}
		}
	}

	slices.SortStableFunc(items, func(a, b ActivityItem) int {
		return parseTimestamp(b.Timestamp).Compare(parseTimestamp(a.Timestamp))
	})
	return items
}

// Unparsable timestamps sort last.
func parseTimestamp(value string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}
	}
	return t
}
