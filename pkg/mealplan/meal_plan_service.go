package mealplan

import (
	"Recipe-Website/domain"
	"Recipe-Website/entities"
	"Recipe-Website/pkg/policy"
	"context"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
)

type (
	MealPlanService interface {
		CreatePlan(ctx context.Context, identity domain.Identity, req domain.CreateMealPlanRequest) (domain.CreateMealPlanResponse, error)
		ListMyPlans(ctx context.Context, identity domain.Identity) ([]domain.MealPlanResponse, error)
		DeletePlan(ctx context.Context, identity domain.Identity, planID uuid.UUID) error
	}

	mealPlanService struct {
		mealPlanRepository MealPlanRepository
	}
)

func NewMealPlanService(mealPlanRepository MealPlanRepository) MealPlanService {
	return &mealPlanService{mealPlanRepository: mealPlanRepository}
}

func parseDate(raw string) (time.Time, error) {
	t, err := time.ParseInLocation(domain.DateLayout, raw, time.UTC)
	if err != nil {
		return time.Time{}, domain.ErrInvalidDate
	}
	return t, nil
}

func (s *mealPlanService) CreatePlan(ctx context.Context, identity domain.Identity, req domain.CreateMealPlanRequest) (domain.CreateMealPlanResponse, error) {
	if err := policy.Authorize(identity, nil, domain.RoleUser); err != nil {
		return domain.CreateMealPlanResponse{}, err
	}

	start, err := parseDate(req.StartDate)
	if err != nil {
		return domain.CreateMealPlanResponse{}, err
	}
	end, err := parseDate(req.EndDate)
	if err != nil {
		return domain.CreateMealPlanResponse{}, err
	}
	if end.Before(start) {
		return domain.CreateMealPlanResponse{}, domain.ErrInvalidMealPlanRange
	}

	plan := &entities.MealPlan{
		ID:        uuid.New(),
		UserID:    identity.UserID,
		StartDate: start,
		EndDate:   end,
	}
	for _, in := range req.Items {
		date, err := parseDate(in.Date)
		if err != nil {
			return domain.CreateMealPlanResponse{}, err
		}
		if date.Before(start) || date.After(end) {
			return domain.CreateMealPlanResponse{}, domain.ErrMealPlanItemOutOfRange
		}
		recipeID, err := domain.ParseID(in.RecipeID)
		if err != nil {
			return domain.CreateMealPlanResponse{}, err
		}
		plan.Items = append(plan.Items, &entities.MealPlanItem{
			ID:       uuid.New(),
			RecipeID: recipeID,
			Date:     date,
			MealType: entities.MealType(in.MealType),
		})
	}

	if err := s.mealPlanRepository.CreatePlan(ctx, plan); err != nil {
		log.Errorf("failed to create meal plan: %v", err)
		return domain.CreateMealPlanResponse{}, err
	}
	return domain.CreateMealPlanResponse{ID: plan.ID.String()}, nil
}

func (s *mealPlanService) ListMyPlans(ctx context.Context, identity domain.Identity) ([]domain.MealPlanResponse, error) {
	if err := policy.Authorize(identity, nil, domain.RoleUser); err != nil {
		return nil, err
	}

	plans, err := s.mealPlanRepository.ListPlansByUser(ctx, identity.UserID)
	if err != nil {
		return nil, err
	}

	res := make([]domain.MealPlanResponse, 0, len(plans))
	for _, plan := range plans {
		item := domain.MealPlanResponse{
			ID:        plan.ID.String(),
			StartDate: plan.StartDate.Format(domain.DateLayout),
			EndDate:   plan.EndDate.Format(domain.DateLayout),
			Items:     make([]domain.MealPlanItemResponse, 0, len(plan.Items)),
		}
		for _, it := range plan.Items {
			entry := domain.MealPlanItemResponse{
				ID:       it.ID.String(),
				RecipeID: it.RecipeID.String(),
				Date:     it.Date.Format(domain.DateLayout),
				MealType: string(it.MealType),
			}
			if it.Recipe != nil {
				entry.RecipeTitle = it.Recipe.Title
			}
			item.Items = append(item.Items, entry)
		}
		res = append(res, item)
	}
	return res, nil
}

// DeletePlan removes a plan owned by the caller. Plans are private, so admins
// get no override here.
func (s *mealPlanService) DeletePlan(ctx context.Context, identity domain.Identity, planID uuid.UUID) error {
	if identity.IsAnonymous() {
		return domain.ErrUnauthorized
	}

	plan, err := s.mealPlanRepository.GetPlanByID(ctx, planID)
	if err != nil {
		return err
	}
	if !identity.Owns(plan.UserID) {
		return domain.ErrUserNotAllowed
	}

	return s.mealPlanRepository.DeletePlan(ctx, planID)
}
