package domain

import (
	"Recipe-Website/entities"
	"fmt"
	"time"
)

var (
	MessageSuccessGetPendingRecipes = "success get pending recipes"
	MessageSuccessApproveRecipe     = "recipe approved"
	MessageSuccessDisableRecipe     = "recipe disabled"
	MessageSuccessEnableRecipe      = "recipe enabled and queued for approval"
	MessageSuccessGetReports        = "success get open reports"
	MessageSuccessResolveReport     = "report resolved"
	MessageSuccessHideComment       = "comment hidden"
	MessageSuccessBanUser           = "user banned"
	MessageSuccessWarnUser          = "user warned"
	MessageSuccessMergeTags         = "tags merged"
	MessageSuccessGetAnalytics      = "success get analytics overview"
	MessageSuccessGetTags           = "success get tags"
	MessageSuccessGetUsers          = "success get users"
	MessageSuccessGetSettings       = "success get settings"
	MessageSuccessUpsertSetting     = "setting saved"

	MessageFailedGetPendingRecipes = "failed to get pending recipes"
	MessageFailedApproveRecipe     = "failed to approve recipe"
	MessageFailedDisableRecipe     = "failed to disable recipe"
	MessageFailedEnableRecipe      = "failed to enable recipe"
	MessageFailedGetReports        = "failed to get open reports"
	MessageFailedResolveReport     = "failed to resolve report"
	MessageFailedHideComment       = "failed to hide comment"
	MessageFailedBanUser           = "failed to ban user"
	MessageFailedWarnUser          = "failed to warn user"
	MessageFailedMergeTags         = "failed to merge tags"
	MessageFailedGetAnalytics      = "failed to get analytics overview"
	MessageFailedGetTags           = "failed to get tags"
	MessageFailedGetUsers          = "failed to get users"
	MessageFailedGetSettings       = "failed to get settings"
	MessageFailedUpsertSetting     = "failed to save setting"

	ErrReportNotFound          = fmt.Errorf("report %w", ErrNotFound)
	ErrTagNotFound             = fmt.Errorf("tag %w", ErrNotFound)
	ErrMergeSameTag            = fmt.Errorf("cannot merge a tag into itself: %w", ErrBadRequest)
	ErrInvalidStatusTransition = fmt.Errorf("%w: %w", entities.ErrInvalidStatusTransition, ErrBadRequest)
)

type (
	PendingRecipeResponse struct {
		ID                   string    `json:"id"`
		Title                string    `json:"title"`
		ShortDescription     string    `json:"short_description"`
		CreatedByDisplayName string    `json:"created_by_display_name"`
		CreatedAt            time.Time `json:"created_at"`
	}

	ReportResponse struct {
		ID                  string    `json:"id"`
		ReporterDisplayName string    `json:"reporter_display_name"`
		RecipeID            *string   `json:"recipe_id,omitempty"`
		CommentID           *string   `json:"comment_id,omitempty"`
		Reason              string    `json:"reason"`
		CreatedAt           time.Time `json:"created_at"`
	}

	WarnUserRequest struct {
		Message string `json:"message" validate:"required,max=1000"`
	}

	WarnUserResponse struct {
		WarnedUserID string `json:"warned_user_id"`
		Message      string `json:"message"`
	}

	MergeTagsRequest struct {
		FromTagID string `query:"fromTagId" validate:"required,uuid"`
		IntoTagID string `query:"intoTagId" validate:"required,uuid"`
	}

	AnalyticsOverviewResponse struct {
		TotalUsers     int64 `json:"total_users"`
		TotalRecipes   int64 `json:"total_recipes"`
		LiveRecipes    int64 `json:"live_recipes"`
		PendingRecipes int64 `json:"pending_recipes"`
		TotalComments  int64 `json:"total_comments"`
		TotalReports   int64 `json:"total_reports"`
	}

	TagSummary struct {
		ID          string `json:"id"`
		Name        string `json:"name"`
		Slug        string `json:"slug"`
		RecipeCount int64  `json:"recipe_count"`
	}

	SettingRequest struct {
		Value *string `json:"value" validate:"omitempty,max=500"`
	}

	SettingResponse struct {
		Key   string  `json:"key"`
		Value *string `json:"value"`
	}
)
