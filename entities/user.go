package entities

import (
	"time"

	"github.com/google/uuid"
)

type Timestamp struct {
	CreatedAt time.Time `gorm:"type:timestamp" json:"created_at"`
	UpdatedAt time.Time `gorm:"type:timestamp" json:"updated_at"`
}

type User struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	DisplayName string    `gorm:"size:100;not null" json:"display_name"`
	Email       string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Password    string    `gorm:"not null" json:"-"`
	Role        string    `gorm:"size:20;not null" json:"role"`
	IsBanned    bool      `gorm:"not null;default:false" json:"is_banned"`

	Timestamp
}
