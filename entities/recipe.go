package entities

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// RecipeStatus is the moderation state of a recipe.
type RecipeStatus string

const (
	RecipeStatusPending  RecipeStatus = "Pending"
	RecipeStatusLive     RecipeStatus = "Live"
	RecipeStatusDisabled RecipeStatus = "Disabled"
)

var ErrInvalidStatusTransition = errors.New("invalid recipe status transition")

// Approve moves a pending (or already live) recipe to Live. Disabled recipes
// must be enabled before they can be approved.
func (s RecipeStatus) Approve() (RecipeStatus, error) {
	switch s {
	case RecipeStatusPending, RecipeStatusLive:
		return RecipeStatusLive, nil
	default:
		return s, ErrInvalidStatusTransition
	}
}

func (s RecipeStatus) Disable() (RecipeStatus, error) {
	return RecipeStatusDisabled, nil
}

// Enable puts a disabled recipe back into the approval queue.
func (s RecipeStatus) Enable() (RecipeStatus, error) {
	if s != RecipeStatusDisabled {
		return s, ErrInvalidStatusTransition
	}
	return RecipeStatusPending, nil
}

// Edited returns the status after the author changes the recipe content.
// Live recipes need re-approval, disabled recipes stay disabled.
func (s RecipeStatus) Edited() RecipeStatus {
	if s == RecipeStatusDisabled {
		return RecipeStatusDisabled
	}
	return RecipeStatusPending
}

func (s RecipeStatus) IsApproved() bool { return s == RecipeStatusLive }

func (s RecipeStatus) IsDisabled() bool { return s == RecipeStatusDisabled }

type Recipe struct {
	ID                  uuid.UUID    `gorm:"type:uuid;primary_key" json:"id"`
	Title               string       `gorm:"size:150;not null" json:"title"`
	ShortDescription    string       `gorm:"size:500" json:"short_description"`
	InstructionsSummary string       `gorm:"type:text" json:"instructions_summary"`
	ImageURL            string       `json:"image_url,omitempty"`
	Status              RecipeStatus `gorm:"size:20;index;not null" json:"status"`
	CreatedByUserID     uuid.UUID    `gorm:"type:uuid;index;not null" json:"created_by_user_id"`

	CreatedByUser *User               `gorm:"foreignKey:CreatedByUserID;constraint:OnDelete:CASCADE"`
	Ingredients   []*RecipeIngredient `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE"`
	Steps         []*RecipeStep       `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE"`
	RecipeTags    []*RecipeTag        `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE"`
	Timestamp
}

type RecipeIngredient struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	RecipeID uuid.UUID `gorm:"type:uuid;index;not null" json:"recipe_id"`
	Position int       `gorm:"not null" json:"position"`
	Name     string    `gorm:"size:150;not null" json:"name"`
	Quantity *string   `gorm:"size:50" json:"quantity,omitempty"`
	Unit     *string   `gorm:"size:50" json:"unit,omitempty"`
}

type RecipeStep struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	RecipeID    uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_recipe_step_number;not null" json:"recipe_id"`
	StepNumber  int       `gorm:"uniqueIndex:idx_recipe_step_number;not null" json:"step_number"`
	Description string    `gorm:"type:text;not null" json:"description"`
}

type Favorite struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_favorite_user_recipe;not null" json:"user_id"`
	RecipeID  uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_favorite_user_recipe;index;not null" json:"recipe_id"`
	CreatedAt time.Time `gorm:"type:timestamp" json:"created_at"`

	User   *User   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Recipe *Recipe `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE"`
}
