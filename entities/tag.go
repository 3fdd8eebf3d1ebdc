package entities

import (
	"github.com/google/uuid"
)

type Tag struct {
	ID   uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name string    `gorm:"size:50;uniqueIndex;not null" json:"name"`
	Slug string    `gorm:"size:60;index;not null" json:"slug"`

	RecipeTags []*RecipeTag `gorm:"foreignKey:TagID;constraint:OnDelete:CASCADE"`
}

type RecipeTag struct {
	RecipeID uuid.UUID `gorm:"type:uuid;primaryKey" json:"recipe_id"`
	TagID    uuid.UUID `gorm:"type:uuid;primaryKey;index" json:"tag_id"`

	Recipe *Recipe `gorm:"foreignKey:RecipeID"`
	Tag    *Tag    `gorm:"foreignKey:TagID"`
}
