package entities

import (
	"time"

	"github.com/google/uuid"
)

type Comment struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	RecipeID  uuid.UUID `gorm:"type:uuid;index;not null" json:"recipe_id"`
	UserID    uuid.UUID `gorm:"type:uuid;index;not null" json:"user_id"`
	Content   string    `gorm:"size:500;not null" json:"content"`
	IsHidden  bool      `gorm:"not null;default:false" json:"is_hidden"`
	CreatedAt time.Time `gorm:"type:timestamp" json:"created_at"`

	Recipe *Recipe `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE"`
	User   *User   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// Report targets exactly one of a recipe or a comment.
type Report struct {
	ID             uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	ReporterUserID uuid.UUID  `gorm:"type:uuid;index;not null" json:"reporter_user_id"`
	RecipeID       *uuid.UUID `gorm:"type:uuid;index" json:"recipe_id,omitempty"`
	CommentID      *uuid.UUID `gorm:"type:uuid;index" json:"comment_id,omitempty"`
	Reason         string     `gorm:"size:300;not null" json:"reason"`
	IsResolved     bool       `gorm:"index;not null;default:false" json:"is_resolved"`
	CreatedAt      time.Time  `gorm:"type:timestamp" json:"created_at"`

	ReporterUser *User    `gorm:"foreignKey:ReporterUserID;constraint:OnDelete:CASCADE"`
	Recipe       *Recipe  `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE"`
	Comment      *Comment `gorm:"foreignKey:CommentID;constraint:OnDelete:CASCADE"`
}
