package handlers

import (
	"Recipe-Website/domain"
	"Recipe-Website/internal/api/presenters"
	"Recipe-Website/internal/middleware"
	"Recipe-Website/pkg/moderation"
	"Recipe-Website/pkg/setting"
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type (
	AdminHandler interface {
		GetPendingRecipes(c *fiber.Ctx) error
		ApproveRecipe(c *fiber.Ctx) error
		DisableRecipe(c *fiber.Ctx) error
		EnableRecipe(c *fiber.Ctx) error
		GetOpenReports(c *fiber.Ctx) error
		ResolveReport(c *fiber.Ctx) error
		HideComment(c *fiber.Ctx) error
		BanUser(c *fiber.Ctx) error
		WarnUser(c *fiber.Ctx) error
		MergeTags(c *fiber.Ctx) error
		GetAnalyticsOverview(c *fiber.Ctx) error
		GetTags(c *fiber.Ctx) error
		GetUsers(c *fiber.Ctx) error
		GetSettings(c *fiber.Ctx) error
		UpsertSetting(c *fiber.Ctx) error
	}

	adminHandler struct {
		moderationService moderation.ModerationService
		settingService    setting.SettingService
		validator         *validator.Validate
	}
)

func NewAdminHandler(
	moderationService moderation.ModerationService,
	settingService setting.SettingService,
	validator *validator.Validate,
) AdminHandler {
	return &adminHandler{
		moderationService: moderationService,
		settingService:    settingService,
		validator:         validator,
	}
}

type idAction func(ctx context.Context, identity domain.Identity, id uuid.UUID) error

// byID runs an action that takes the :id path parameter and answers with an
// empty success envelope.
func byID(c *fiber.Ctx, action idAction, success, failed string) error {
	id, err := paramID(c, "id")
	if err != nil {
		return presenters.FailedResponse(c, failed, err)
	}
	if err := action(c.UserContext(), middleware.IdentityFrom(c), id); err != nil {
		return presenters.FailedResponse(c, failed, err)
	}
	return presenters.SuccessResponse(c, nil, fiber.StatusOK, success)
}

func (h *adminHandler) GetPendingRecipes(c *fiber.Ctx) error {
	res, err := h.moderationService.ListPendingRecipes(c.UserContext(), middleware.IdentityFrom(c))
	if err != nil {
		return presenters.FailedResponse(c, domain.MessageFailedGetPendingRecipes, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetPendingRecipes)
}

func (h *adminHandler) ApproveRecipe(c *fiber.Ctx) error {
	return byID(c, h.moderationService.ApproveRecipe, domain.MessageSuccessApproveRecipe, domain.MessageFailedApproveRecipe)
}

func (h *adminHandler) DisableRecipe(c *fiber.Ctx) error {
	return byID(c, h.moderationService.DisableRecipe, domain.MessageSuccessDisableRecipe, domain.MessageFailedDisableRecipe)
}

func (h *adminHandler) EnableRecipe(c *fiber.Ctx) error {
	return byID(c, h.moderationService.EnableRecipe, domain.MessageSuccessEnableRecipe, domain.MessageFailedEnableRecipe)
}

func (h *adminHandler) GetOpenReports(c *fiber.Ctx) error {
	res, err := h.moderationService.ListOpenReports(c.UserContext(), middleware.IdentityFrom(c))
	if err != nil {
		return presenters.FailedResponse(c, domain.MessageFailedGetReports, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetReports)
}

func (h *adminHandler) ResolveReport(c *fiber.Ctx) error {
	return byID(c, h.moderationService.ResolveReport, domain.MessageSuccessResolveReport, domain.MessageFailedResolveReport)
}

func (h *adminHandler) HideComment(c *fiber.Ctx) error {
	return byID(c, h.moderationService.HideComment, domain.MessageSuccessHideComment, domain.MessageFailedHideComment)
}

func (h *adminHandler) BanUser(c *fiber.Ctx) error {
	return byID(c, h.moderationService.BanUser, domain.MessageSuccessBanUser, domain.MessageFailedBanUser)
}

func (h *adminHandler) WarnUser(c *fiber.Ctx) error {
	userID, err := paramID(c, "id")
	if err != nil {
		return presenters.FailedResponse(c, domain.MessageFailedWarnUser, err)
	}

	req := new(domain.WarnUserRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedWarnUser, err)
	}

	res, err := h.moderationService.WarnUser(c.UserContext(), middleware.IdentityFrom(c), userID, *req)
	if err != nil {
		return presenters.FailedResponse(c, domain.MessageFailedWarnUser, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessWarnUser)
}

func (h *adminHandler) MergeTags(c *fiber.Ctx) error {
	req := new(domain.MergeTagsRequest)
	if err := c.QueryParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedMergeTags, err)
	}

	fromID, err := domain.ParseID(req.FromTagID)
	if err != nil {
		return presenters.FailedResponse(c, domain.MessageFailedMergeTags, err)
	}
	intoID, err := domain.ParseID(req.IntoTagID)
	if err != nil {
		return presenters.FailedResponse(c, domain.MessageFailedMergeTags, err)
	}

	if err := h.moderationService.MergeTags(c.UserContext(), middleware.IdentityFrom(c), fromID, intoID); err != nil {
		return presenters.FailedResponse(c, domain.MessageFailedMergeTags, err)
	}
	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessMergeTags)
}

func (h *adminHandler) GetAnalyticsOverview(c *fiber.Ctx) error {
	res, err := h.moderationService.OverviewAnalytics(c.UserContext(), middleware.IdentityFrom(c))
	if err != nil {
		return presenters.FailedResponse(c, domain.MessageFailedGetAnalytics, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetAnalytics)
}

func (h *adminHandler) GetTags(c *fiber.Ctx) error {
	res, err := h.moderationService.ListTags(c.UserContext(), middleware.IdentityFrom(c))
	if err != nil {
		return presenters.FailedResponse(c, domain.MessageFailedGetTags, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetTags)
}

func (h *adminHandler) GetUsers(c *fiber.Ctx) error {
	res, err := h.moderationService.ListUsers(c.UserContext(), middleware.IdentityFrom(c))
	if err != nil {
		return presenters.FailedResponse(c, domain.MessageFailedGetUsers, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetUsers)
}

func (h *adminHandler) GetSettings(c *fiber.Ctx) error {
	res, err := h.settingService.ListSettings(c.UserContext(), middleware.IdentityFrom(c))
	if err != nil {
		return presenters.FailedResponse(c, domain.MessageFailedGetSettings, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetSettings)
}

func (h *adminHandler) UpsertSetting(c *fiber.Ctx) error {
	req := new(domain.SettingRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpsertSetting, err)
	}

	res, err := h.settingService.UpsertSetting(c.UserContext(), middleware.IdentityFrom(c), c.Params("key"), *req)
	if err != nil {
		return presenters.FailedResponse(c, domain.MessageFailedUpsertSetting, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUpsertSetting)
}
