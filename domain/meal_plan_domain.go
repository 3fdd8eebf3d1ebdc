package domain

import (
	"fmt"
)

var (
	MessageSuccessGetMealPlans   = "success get meal plans"
	MessageSuccessCreateMealPlan = "meal plan created"
	MessageSuccessDeleteMealPlan = "meal plan deleted"

	MessageFailedGetMealPlans   = "failed to get meal plans"
	MessageFailedCreateMealPlan = "failed to create meal plan"
	MessageFailedDeleteMealPlan = "failed to delete meal plan"

	ErrMealPlanNotFound       = fmt.Errorf("meal plan %w", ErrNotFound)
	ErrInvalidMealPlanRange   = fmt.Errorf("end date must not be before start date: %w", ErrBadRequest)
	ErrMealPlanItemOutOfRange = fmt.Errorf("meal plan item date outside plan range: %w", ErrBadRequest)
	ErrInvalidDate            = fmt.Errorf("dates must use the YYYY-MM-DD format: %w", ErrBadRequest)
)

type (
	MealPlanItemRequest struct {
		RecipeID string `json:"recipe_id" validate:"required,uuid"`
		Date     string `json:"date" validate:"required"`
		MealType string `json:"meal_type" validate:"required,oneof=Breakfast Lunch Dinner Snack"`
	}

	CreateMealPlanRequest struct {
		StartDate string                `json:"start_date" validate:"required"`
		EndDate   string                `json:"end_date" validate:"required"`
		Items     []MealPlanItemRequest `json:"items" validate:"dive"`
	}

	CreateMealPlanResponse struct {
		ID string `json:"id"`
	}

	MealPlanItemResponse struct {
		ID          string `json:"id"`
		RecipeID    string `json:"recipe_id"`
		RecipeTitle string `json:"recipe_title"`
		Date        string `json:"date"`
		MealType    string `json:"meal_type"`
	}

	MealPlanResponse struct {
		ID        string                 `json:"id"`
		StartDate string                 `json:"start_date"`
		EndDate   string                 `json:"end_date"`
		Items     []MealPlanItemResponse `json:"items"`
	}
)
