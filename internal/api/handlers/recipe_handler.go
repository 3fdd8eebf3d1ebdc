package handlers

import (
	"Recipe-Website/domain"
	"Recipe-Website/internal/api/presenters"
	"Recipe-Website/internal/middleware"
	"Recipe-Website/pkg/recipe"
	"bytes"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type (
	RecipeHandler interface {
		GetRecipes(c *fiber.Ctx) error
		GetMyRecipes(c *fiber.Ctx) error
		GetFavoriteRecipes(c *fiber.Ctx) error
		GetRecipeDetail(c *fiber.Ctx) error
		CreateRecipe(c *fiber.Ctx) error
		UpdateRecipe(c *fiber.Ctx) error
		DeleteRecipe(c *fiber.Ctx) error
		UploadRecipeImage(c *fiber.Ctx) error
		ToggleFavorite(c *fiber.Ctx) error
		ReportRecipe(c *fiber.Ctx) error
		GetComments(c *fiber.Ctx) error
		AddComment(c *fiber.Ctx) error
		ReportComment(c *fiber.Ctx) error
	}

	recipeHandler struct {
		recipeService recipe.RecipeService
		validator     *validator.Validate
	}
)

func NewRecipeHandler(recipeService recipe.RecipeService, validator *validator.Validate) RecipeHandler {
	return &recipeHandler{
		recipeService: recipeService,
		validator:     validator,
	}
}

func paramID(c *fiber.Ctx, name string) (uuid.UUID, error) {
	return domain.ParseID(c.Params(name))
}

func (h *recipeHandler) list(c *fiber.Ctx, visibility domain.RecipeVisibility) error {
	res, err := h.recipeService.ListRecipes(c.UserContext(), middleware.IdentityFrom(c), c.Query("search"), visibility)
	if err != nil {
		return presenters.FailedResponse(c, domain.MessageFailedGetRecipes, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetRecipes)
}

func (h *recipeHandler) GetRecipes(c *fiber.Ctx) error {
	return h.list(c, domain.VisibilityPublic)
}

func (h *recipeHandler) GetMyRecipes(c *fiber.Ctx) error {
	return h.list(c, domain.VisibilityMine)
}

func (h *recipeHandler) GetFavoriteRecipes(c *fiber.Ctx) error {
	return h.list(c, domain.VisibilityFavorites)
}

func (h *recipeHandler) GetRecipeDetail(c *fiber.Ctx) error {
	recipeID, err := paramID(c, "id")
	if err != nil {
		return presenters.FailedResponse(c, domain.MessageFailedGetRecipeDetail, err)
	}

	res, err := h.recipeService.GetRecipe(c.UserContext(), middleware.IdentityFrom(c), recipeID)
	if err != nil {
		return presenters.FailedResponse(c, domain.MessageFailedGetRecipeDetail, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetRecipeDetail)
}

func (h *recipeHandler) CreateRecipe(c *fiber.Ctx) error {
	req := new(domain.RecipeRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateRecipe, err)
	}

	res, err := h.recipeService.CreateRecipe(c.UserContext(), middleware.IdentityFrom(c), *req)
	if err != nil {
		return presenters.FailedResponse(c, domain.MessageFailedCreateRecipe, err)
	}

	c.Location("/api/recipes/" + res.ID)
	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCreateRecipe)
}

func (h *recipeHandler) UpdateRecipe(c *fiber.Ctx) error {
	recipeID, err := paramID(c, "id")
	if err != nil {
		return presenters.FailedResponse(c, domain.MessageFailedUpdateRecipe, err)
	}

	req := new(domain.RecipeRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateRecipe, err)
	}

	if err := h.recipeService.UpdateRecipe(c.UserContext(), middleware.IdentityFrom(c), recipeID, *req); err != nil {
		return presenters.FailedResponse(c, domain.MessageFailedUpdateRecipe, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *recipeHandler) DeleteRecipe(c *fiber.Ctx) error {
	recipeID, err := paramID(c, "id")
	if err != nil {
		return presenters.FailedResponse(c, domain.MessageFailedDeleteRecipe, err)
	}

	if err := h.recipeService.DeleteRecipe(c.UserContext(), middleware.IdentityFrom(c), recipeID); err != nil {
		return presenters.FailedResponse(c, domain.MessageFailedDeleteRecipe, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *recipeHandler) UploadRecipeImage(c *fiber.Ctx) error {
	file, err := c.FormFile("image")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	req := domain.UploadImageRequest{Image: file}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUploadImage, err)
	}

	res, err := h.recipeService.UploadImage(c.UserContext(), middleware.IdentityFrom(c), req.Image)
	if err != nil {
		return presenters.FailedResponse(c, domain.MessageFailedUploadImage, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUploadImage)
}

func (h *recipeHandler) ToggleFavorite(c *fiber.Ctx) error {
	recipeID, err := paramID(c, "id")
	if err != nil {
		return presenters.FailedResponse(c, domain.MessageFailedToggleFavorite, err)
	}

	if _, err := h.recipeService.ToggleFavorite(c.UserContext(), middleware.IdentityFrom(c), recipeID); err != nil {
		return presenters.FailedResponse(c, domain.MessageFailedToggleFavorite, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *recipeHandler) ReportRecipe(c *fiber.Ctx) error {
	recipeID, err := paramID(c, "id")
	if err != nil {
		return presenters.FailedResponse(c, domain.MessageFailedReportRecipe, err)
	}

	req, err := h.parseReport(c)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedReportRecipe, err)
	}

	if err := h.recipeService.ReportRecipe(c.UserContext(), middleware.IdentityFrom(c), recipeID, req); err != nil {
		return presenters.FailedResponse(c, domain.MessageFailedReportRecipe, err)
	}
	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessReportRecipe)
}

func (h *recipeHandler) GetComments(c *fiber.Ctx) error {
	recipeID, err := paramID(c, "id")
	if err != nil {
		return presenters.FailedResponse(c, domain.MessageFailedGetComments, err)
	}

	res, err := h.recipeService.ListComments(c.UserContext(), middleware.IdentityFrom(c), recipeID)
	if err != nil {
		return presenters.FailedResponse(c, domain.MessageFailedGetComments, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetComments)
}

func (h *recipeHandler) AddComment(c *fiber.Ctx) error {
	recipeID, err := paramID(c, "id")
	if err != nil {
		return presenters.FailedResponse(c, domain.MessageFailedAddComment, err)
	}

	req := new(domain.CommentRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedAddComment, err)
	}

	res, err := h.recipeService.AddComment(c.UserContext(), middleware.IdentityFrom(c), recipeID, *req)
	if err != nil {
		return presenters.FailedResponse(c, domain.MessageFailedAddComment, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessAddComment)
}

func (h *recipeHandler) ReportComment(c *fiber.Ctx) error {
	commentID, err := paramID(c, "id")
	if err != nil {
		return presenters.FailedResponse(c, domain.MessageFailedReportComment, err)
	}

	req, err := h.parseReport(c)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedReportComment, err)
	}

	if err := h.recipeService.ReportComment(c.UserContext(), middleware.IdentityFrom(c), commentID, req); err != nil {
		return presenters.FailedResponse(c, domain.MessageFailedReportComment, err)
	}
	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessReportComment)
}

// parseReport accepts either {"reason": "..."} or a bare JSON string.
func (h *recipeHandler) parseReport(c *fiber.Ctx) (domain.ReportRequest, error) {
	var req domain.ReportRequest

	body := bytes.TrimSpace(c.Body())
	if len(body) > 0 && body[0] == '"' {
		if err := c.App().Config().JSONDecoder(body, &req.Reason); err != nil {
			return req, err
		}
	} else if err := c.BodyParser(&req); err != nil {
		return req, err
	}

	if err := h.validator.Struct(req); err != nil {
		return req, err
	}
	return req, nil
}
