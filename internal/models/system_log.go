package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// SystemLog stores structured error logs for post-hoc querying.
type SystemLog struct {
	ID         uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Timestamp  time.Time      `gorm:"not null;index" json:"timestamp"`
	Level      string         `gorm:"size:10;not null;index" json:"level"`
	Message    string         `gorm:"type:text" json:"message"`
	RequestID  string         `gorm:"size:36;index" json:"request_id"`
	KeycloakID *string        `gorm:"size:36" json:"keycloak_id"`
	Path       string         `gorm:"size:255" json:"path"`
	Error      string         `gorm:"type:text" json:"error"`
	Attrs      datatypes.JSON `gorm:"type:jsonb" json:"attrs"`
	CreatedAt  time.Time      `json:"created_at"`
}
