package mealplan

import (
	"Recipe-Website/domain"
	"Recipe-Website/entities"
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	MealPlanRepository interface {
		CreatePlan(ctx context.Context, plan *entities.MealPlan) error
		GetPlanByID(ctx context.Context, id uuid.UUID) (*entities.MealPlan, error)
		ListPlansByUser(ctx context.Context, userID uuid.UUID) ([]*entities.MealPlan, error)
		DeletePlan(ctx context.Context, id uuid.UUID) error
	}

	mealPlanRepository struct {
		db *gorm.DB
	}
)

func NewMealPlanRepository(db *gorm.DB) MealPlanRepository {
	return &mealPlanRepository{db: db}
}

// CreatePlan stores the plan and its items. Every referenced recipe must exist.
func (r *mealPlanRepository) CreatePlan(ctx context.Context, plan *entities.MealPlan) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		recipeIDs := make([]uuid.UUID, 0, len(plan.Items))
		seen := make(map[uuid.UUID]struct{}, len(plan.Items))
		for _, item := range plan.Items {
			if _, ok := seen[item.RecipeID]; ok {
				continue
			}
			seen[item.RecipeID] = struct{}{}
			recipeIDs = append(recipeIDs, item.RecipeID)
		}

		if len(recipeIDs) > 0 {
			var found int64
			if err := tx.Model(&entities.Recipe{}).Where("id IN ?", recipeIDs).Count(&found).Error; err != nil {
				return err
			}
			if found != int64(len(recipeIDs)) {
				return domain.ErrRecipeNotFound
			}
		}

		items := plan.Items
		plan.Items = nil
		if err := tx.Create(plan).Error; err != nil {
			return err
		}
		plan.Items = items

		for _, item := range items {
			item.MealPlanID = plan.ID
		}
		if len(items) > 0 {
			if err := tx.Omit("Recipe").Create(items).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *mealPlanRepository) GetPlanByID(ctx context.Context, id uuid.UUID) (*entities.MealPlan, error) {
	var plan entities.MealPlan
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&plan).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrMealPlanNotFound
		}
		return nil, err
	}
	return &plan, nil
}

func (r *mealPlanRepository) ListPlansByUser(ctx context.Context, userID uuid.UUID) ([]*entities.MealPlan, error) {
	var plans []*entities.MealPlan
	if err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("date asc")
		}).
		Preload("Items.Recipe").
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&plans).Error; err != nil {
		return nil, err
	}
	return plans, nil
}

func (r *mealPlanRepository) DeletePlan(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("meal_plan_id = ?", id).Delete(&entities.MealPlanItem{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&entities.MealPlan{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrMealPlanNotFound
		}
		return nil
	})
}
