package domain

import (
	"fmt"
	"mime/multipart"
	"time"
)

var (
	MessageSuccessGetRecipes      = "success get recipes"
	MessageSuccessGetRecipeDetail = "success get recipe detail"
	MessageSuccessCreateRecipe    = "recipe submitted for approval"
	MessageSuccessReportRecipe    = "recipe reported successfully"
	MessageSuccessGetComments     = "success get comments"
	MessageSuccessAddComment      = "comment added successfully"
	MessageSuccessReportComment   = "comment reported successfully"
	MessageSuccessUploadImage     = "image uploaded successfully"

	MessageFailedGetRecipes      = "failed to get recipes"
	MessageFailedGetRecipeDetail = "failed to get recipe detail"
	MessageFailedCreateRecipe    = "failed to create recipe"
	MessageFailedUpdateRecipe    = "failed to update recipe"
	MessageFailedDeleteRecipe    = "failed to delete recipe"
	MessageFailedToggleFavorite  = "failed to toggle favorite"
	MessageFailedReportRecipe    = "failed to report recipe"
	MessageFailedGetComments     = "failed to get comments"
	MessageFailedAddComment      = "failed to add comment"
	MessageFailedReportComment   = "failed to report comment"
	MessageFailedUploadImage     = "failed to upload image"

	ErrRecipeNotFound           = fmt.Errorf("recipe %w", ErrNotFound)
	ErrUnauthorizedRecipeAccess = fmt.Errorf("unauthorized access to recipe: %w", ErrForbidden)
	ErrDuplicateStepNumber      = fmt.Errorf("step numbers must be unique: %w", ErrBadRequest)
	ErrCommentNotFound          = fmt.Errorf("comment %w", ErrNotFound)
	ErrInvalidImageFormat       = fmt.Errorf("invalid image format: %w", ErrBadRequest)
	ErrImageStorageUnavailable  = fmt.Errorf("image storage is not configured: %w", ErrBadRequest)
)

// RecipeVisibility selects which recipes a listing returns.
type RecipeVisibility int

const (
	VisibilityPublic RecipeVisibility = iota
	VisibilityMine
	VisibilityFavorites
)

type (
	RecipeIngredientDto struct {
		Name     string  `json:"name" validate:"required,max=150"`
		Quantity *string `json:"quantity,omitempty" validate:"omitempty,max=50"`
		Unit     *string `json:"unit,omitempty" validate:"omitempty,max=50"`
	}

	RecipeStepDto struct {
		StepNumber  int    `json:"step_number" validate:"required,min=1"`
		Description string `json:"description" validate:"required"`
	}

	// RecipeRequest is used for both create and full-replace edit.
	RecipeRequest struct {
		Title               string                `json:"title" validate:"required,max=150"`
		ShortDescription    string                `json:"short_description" validate:"max=500"`
		InstructionsSummary string                `json:"instructions_summary"`
		ImageURL            string                `json:"image_url" validate:"omitempty,url"`
		Tags                []string              `json:"tags" validate:"dive,max=50"`
		Ingredients         []RecipeIngredientDto `json:"ingredients" validate:"dive"`
		Steps               []RecipeStepDto       `json:"steps" validate:"dive"`
	}

	CreateRecipeResponse struct {
		ID string `json:"id"`
	}

	RecipeResponse struct {
		ID                   string                `json:"id"`
		Title                string                `json:"title"`
		ShortDescription     string                `json:"short_description"`
		InstructionsSummary  string                `json:"instructions_summary,omitempty"`
		ImageURL             string                `json:"image_url,omitempty"`
		Status               string                `json:"status"`
		IsApproved           bool                  `json:"is_approved"`
		IsDisabled           bool                  `json:"is_disabled"`
		CreatedByDisplayName string                `json:"created_by_display_name"`
		CreatedAt            time.Time             `json:"created_at"`
		UpdatedAt            time.Time             `json:"updated_at"`
		Tags                 []string              `json:"tags"`
		Ingredients          []RecipeIngredientDto `json:"ingredients"`
		Steps                []RecipeStepDto       `json:"steps"`
	}

	ReportRequest struct {
		Reason string `json:"reason" validate:"required,max=300"`
	}

	CommentRequest struct {
		Content string `json:"content" validate:"required,max=500"`
	}

	CommentResponse struct {
		ID                string    `json:"id"`
		RecipeID          string    `json:"recipe_id"`
		AuthorDisplayName string    `json:"author_display_name"`
		Content           string    `json:"content"`
		CreatedAt         time.Time `json:"created_at"`
	}

	UploadImageRequest struct {
		Image *multipart.FileHeader `form:"image" validate:"required"`
	}

	UploadImageResponse struct {
		ImageURL string `json:"image_url"`
	}
)
