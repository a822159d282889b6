package store

const (
	TASK_OPEN  = "OPEN"
	TASK_TAKEN = "TAKEN"
)

type Campaign struct {
	ID          string `json:"id"`
	Code        string `json:"code"`
	Name        string `json:"name"`
	Description string `json:"description"`
	CreatedAt   string `json:"createdAt"`
	CreatedBy   string `json:"createdBy"`
}

// CampaignUpdate carries the fields an organizer may edit; nil means unchanged.
type CampaignUpdate struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

type Comment struct {
	ID          string `json:"id"`
	Text        string `json:"text"`
	UserID      string `json:"userId"`
	UserName    string `json:"userName"`
	UserPicture string `json:"userPicture"`
	CreatedAt   string `json:"createdAt"`
}

// Task is a signup slot inside a campaign. Optional fields use their zero
// value for "not set".
type Task struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Quantity      int       `json:"quantity,omitempty"`
	DueDate       string    `json:"dueDate,omitempty"`
	Description   string    `json:"description,omitempty"`
	Status        string    `json:"status"`
	AssignedTo    string    `json:"assignedTo,omitempty"`
	AssignedEmail string    `json:"assignedEmail,omitempty"`
	AssignedPhone string    `json:"assignedPhone,omitempty"`
	Comments      []Comment `json:"comments"`
}

// TaskUpdate is a partial task. A nil pointer (or nil Comments) leaves the
// field as it is.
type TaskUpdate struct {
	Name          *string   `json:"name,omitempty"`
	Quantity      *int      `json:"quantity,omitempty"`
	DueDate       *string   `json:"dueDate,omitempty"`
	Description   *string   `json:"description,omitempty"`
	Status        *string   `json:"status,omitempty"`
	AssignedTo    *string   `json:"assignedTo,omitempty"`
	AssignedEmail *string   `json:"assignedEmail,omitempty"`
	AssignedPhone *string   `json:"assignedPhone,omitempty"`
	Comments      []Comment `json:"comments,omitempty"`
}

func (u TaskUpdate) apply(task *Task) {
	if u.Name != nil {
		task.Name = *u.Name
	}
	if u.Quantity != nil {
		task.Quantity = *u.Quantity
	}
	if u.DueDate != nil {
		task.DueDate = *u.DueDate
	}
	if u.Description != nil {
		task.Description = *u.Description
	}
	if u.Status != nil {
		task.Status = *u.Status
	}
	if u.AssignedTo != nil {
		task.AssignedTo = *u.AssignedTo
	}
	if u.AssignedEmail != nil {
		task.AssignedEmail = *u.AssignedEmail
	}
	if u.AssignedPhone != nil {
		task.AssignedPhone = *u.AssignedPhone
	}
	if u.Comments != nil {
		task.Comments = append([]Comment{}, u.Comments...)
	}
}

type Contact struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Email     string   `json:"email"`
	Phone     string   `json:"phone,omitempty"`
	CreatedAt string   `json:"createdAt"`
	Campaigns []string `json:"campaigns"`
}

type ContactUpdate struct {
	Name      *string  `json:"name,omitempty"`
	Email     *string  `json:"email,omitempty"`
	Phone     *string  `json:"phone,omitempty"`
	Campaigns []string `json:"campaigns,omitempty"`
}

func (u ContactUpdate) apply(contact *Contact) {
	if u.Name != nil {
		contact.Name = *u.Name
	}
	if u.Email != nil {
		contact.Email = *u.Email
	}
	if u.Phone != nil {
		contact.Phone = *u.Phone
	}
	if u.Campaigns != nil {
		contact.Campaigns = dedupe(u.Campaigns)
	}
}

type EmailPreferences struct {
	TaskSignups     bool `json:"taskSignups"`
	Comments        bool `json:"comments"`
	CampaignUpdates bool `json:"campaignUpdates"`
}

// UserProfile is the organizer identity returned by the OAuth provider.
type UserProfile struct {
	Email            string            `json:"email"`
	Name             string            `json:"name"`
	Picture          string            `json:"picture"`
	Sub              string            `json:"sub"`
	FullName         string            `json:"fullName,omitempty"`
	Phone            string            `json:"phone,omitempty"`
	EmailPreferences *EmailPreferences `json:"emailPreferences,omitempty"`
}

type ProfileUpdate struct {
	FullName         *string           `json:"fullName,omitempty"`
	Phone            *string           `json:"phone,omitempty"`
	EmailPreferences *EmailPreferences `json:"emailPreferences,omitempty"`
}

func cloneTask(task Task) Task {
	task.Comments = append([]Comment{}, task.Comments...)
	return task
}

func cloneContact(contact Contact) Contact {
	contact.Campaigns = append([]string{}, contact.Campaigns...)
	return contact
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	result := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		result = append(result, id)
	}
	return result
}
