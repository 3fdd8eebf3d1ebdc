package entities

import (
	"time"

	"github.com/google/uuid"
)

type MealType string

const (
	MealTypeBreakfast MealType = "Breakfast"
	MealTypeLunch     MealType = "Lunch"
	MealTypeDinner    MealType = "Dinner"
	MealTypeSnack     MealType = "Snack"
)

type MealPlan struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;index;not null" json:"user_id"`
	StartDate time.Time `gorm:"type:date;not null" json:"start_date"`
	EndDate   time.Time `gorm:"type:date;not null" json:"end_date"`

	User  *User           `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Items []*MealPlanItem `gorm:"foreignKey:MealPlanID;constraint:OnDelete:CASCADE"`
	Timestamp
}

type MealPlanItem struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	MealPlanID uuid.UUID `gorm:"type:uuid;index;not null" json:"meal_plan_id"`
	RecipeID   uuid.UUID `gorm:"type:uuid;index;not null" json:"recipe_id"`
	Date       time.Time `gorm:"type:date;not null" json:"date"`
	MealType   MealType  `gorm:"size:20;not null" json:"meal_type"`

	Recipe *Recipe `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE"`
}
