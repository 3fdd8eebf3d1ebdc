package entities

import "github.com/google/uuid"

type Setting struct {
	ID    uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Key   string    `gorm:"size:100;uniqueIndex;not null" json:"key"`
	Value *string   `gorm:"size:500" json:"value,omitempty"`
}
