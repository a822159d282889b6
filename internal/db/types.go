package db

import (
	"gorm.io/gorm"
)

const (
	AUTH_SNAPSHOT     = "auth-storage"
	CAMPAIGN_SNAPSHOT = "campaign-storage"
	CONTACT_SNAPSHOT  = "contact-storage"
	TASK_SNAPSHOT     = "task-storage"
)

// Snapshot holds the whole serialized state of one store.
type Snapshot struct {
	gorm.Model

	Key  string `gorm:"uniqueIndex"`
	Data string
}
