package handlers

import (
	"Recipe-Website/domain"
	"Recipe-Website/internal/api/presenters"
	"Recipe-Website/internal/middleware"
	"Recipe-Website/pkg/mealplan"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	MealPlanHandler interface {
		GetMealPlans(c *fiber.Ctx) error
		CreateMealPlan(c *fiber.Ctx) error
		DeleteMealPlan(c *fiber.Ctx) error
	}

	mealPlanHandler struct {
		mealPlanService mealplan.MealPlanService
		validator       *validator.Validate
	}
)

func NewMealPlanHandler(mealPlanService mealplan.MealPlanService, validator *validator.Validate) MealPlanHandler {
	return &mealPlanHandler{
		mealPlanService: mealPlanService,
		validator:       validator,
	}
}

func (h *mealPlanHandler) GetMealPlans(c *fiber.Ctx) error {
	res, err := h.mealPlanService.ListMyPlans(c.UserContext(), middleware.IdentityFrom(c))
	if err != nil {
		return presenters.FailedResponse(c, domain.MessageFailedGetMealPlans, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetMealPlans)
}

func (h *mealPlanHandler) CreateMealPlan(c *fiber.Ctx) error {
	req := new(domain.CreateMealPlanRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateMealPlan, err)
	}

	res, err := h.mealPlanService.CreatePlan(c.UserContext(), middleware.IdentityFrom(c), *req)
	if err != nil {
		return presenters.FailedResponse(c, domain.MessageFailedCreateMealPlan, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCreateMealPlan)
}

func (h *mealPlanHandler) DeleteMealPlan(c *fiber.Ctx) error {
	planID, err := paramID(c, "id")
	if err != nil {
		return presenters.FailedResponse(c, domain.MessageFailedDeleteMealPlan, err)
	}

	if err := h.mealPlanService.DeletePlan(c.UserContext(), middleware.IdentityFrom(c), planID); err != nil {
		return presenters.FailedResponse(c, domain.MessageFailedDeleteMealPlan, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
