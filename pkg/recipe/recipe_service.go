package recipe

import (
	"Recipe-Website/domain"
	"Recipe-Website/entities"
	"Recipe-Website/internal/utils/storage"
	"Recipe-Website/pkg/policy"
	"context"
	"errors"
	"mime/multipart"
	"sort"
	"strings"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
)

type (
	RecipeService interface {
		CreateRecipe(ctx context.Context, identity domain.Identity, req domain.RecipeRequest) (domain.CreateRecipeResponse, error)
		UpdateRecipe(ctx context.Context, identity domain.Identity, recipeID uuid.UUID, req domain.RecipeRequest) error
		DeleteRecipe(ctx context.Context, identity domain.Identity, recipeID uuid.UUID) error
		GetRecipe(ctx context.Context, identity domain.Identity, recipeID uuid.UUID) (domain.RecipeResponse, error)
		ListRecipes(ctx context.Context, identity domain.Identity, search string, visibility domain.RecipeVisibility) ([]domain.RecipeResponse, error)
		ToggleFavorite(ctx context.Context, identity domain.Identity, recipeID uuid.UUID) (bool, error)
		ReportRecipe(ctx context.Context, identity domain.Identity, recipeID uuid.UUID, req domain.ReportRequest) error
		AddComment(ctx context.Context, identity domain.Identity, recipeID uuid.UUID, req domain.CommentRequest) (domain.CommentResponse, error)
		ListComments(ctx context.Context, identity domain.Identity, recipeID uuid.UUID) ([]domain.CommentResponse, error)
		ReportComment(ctx context.Context, identity domain.Identity, commentID uuid.UUID, req domain.ReportRequest) error
		UploadImage(ctx context.Context, identity domain.Identity, file *multipart.FileHeader) (domain.UploadImageResponse, error)
	}

	recipeService struct {
		recipeRepository RecipeRepository
		s3               storage.AwsS3
	}
)

func NewRecipeService(recipeRepository RecipeRepository, s3 storage.AwsS3) RecipeService {
	return &recipeService{
		recipeRepository: recipeRepository,
		s3:               s3,
	}
}

func (s *recipeService) CreateRecipe(ctx context.Context, identity domain.Identity, req domain.RecipeRequest) (domain.CreateRecipeResponse, error) {
	if err := policy.Authorize(identity, nil, domain.RoleUser); err != nil {
		return domain.CreateRecipeResponse{}, err
	}

	recipe := &entities.Recipe{
		ID:              uuid.New(),
		Status:          entities.RecipeStatusPending,
		CreatedByUserID: identity.UserID,
	}
	if err := applyRequest(recipe, req); err != nil {
		return domain.CreateRecipeResponse{}, err
	}

	if err := s.recipeRepository.CreateRecipe(ctx, recipe, NormalizeTagNames(req.Tags)); err != nil {
		log.Errorf("failed to create recipe: %v", err)
		return domain.CreateRecipeResponse{}, err
	}
	return domain.CreateRecipeResponse{ID: recipe.ID.String()}, nil
}

func (s *recipeService) UpdateRecipe(ctx context.Context, identity domain.Identity, recipeID uuid.UUID, req domain.RecipeRequest) error {
	err := s.recipeRepository.ReplaceRecipe(ctx, recipeID, NormalizeTagNames(req.Tags), func(recipe *entities.Recipe) error {
		if err := policy.Authorize(identity, &recipe.CreatedByUserID, domain.RoleUser); err != nil {
			return err
		}
		return applyRequest(recipe, req)
	})
	if err != nil && !isDomainError(err) {
		log.Errorf("failed to update recipe %s: %v", recipeID, err)
	}
	return err
}

func isDomainError(err error) bool {
	for _, target := range []error{domain.ErrNotFound, domain.ErrForbidden, domain.ErrUnauthorized, domain.ErrBadRequest} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func (s *recipeService) DeleteRecipe(ctx context.Context, identity domain.Identity, recipeID uuid.UUID) error {
	recipe, err := s.recipeRepository.GetRecipeByID(ctx, recipeID)
	if err != nil {
		return err
	}
	if err := policy.Authorize(identity, &recipe.CreatedByUserID, domain.RoleUser); err != nil {
		return err
	}

	if err := s.recipeRepository.DeleteRecipe(ctx, recipeID); err != nil {
		log.Errorf("failed to delete recipe %s: %v", recipeID, err)
		return err
	}

	if key := s.s3.GetObjectKeyFromLink(recipe.ImageURL); key != "" {
		if err := s.s3.DeleteFile(ctx, key); err != nil {
			log.Warnf("failed to delete image %s: %v", key, err)
		}
	}
	return nil
}

func (s *recipeService) GetRecipe(ctx context.Context, identity domain.Identity, recipeID uuid.UUID) (domain.RecipeResponse, error) {
	recipe, err := s.recipeRepository.GetRecipeDetail(ctx, recipeID)
	if err != nil {
		return domain.RecipeResponse{}, err
	}
	if !policy.CanView(identity, recipe) {
		return domain.RecipeResponse{}, domain.ErrUnauthorizedRecipeAccess
	}
	return ToRecipeResponse(recipe), nil
}

func (s *recipeService) ListRecipes(ctx context.Context, identity domain.Identity, search string, visibility domain.RecipeVisibility) ([]domain.RecipeResponse, error) {
	live := entities.RecipeStatusLive
	disabled := entities.RecipeStatusDisabled
	filter := RecipeFilter{Search: search}

	switch visibility {
	case domain.VisibilityMine:
		if identity.IsAnonymous() {
			return nil, domain.ErrUnauthorized
		}
		filter.CreatedBy = &identity.UserID
		filter.ExcludeStatus = &disabled
	case domain.VisibilityFavorites:
		if identity.IsAnonymous() {
			return nil, domain.ErrUnauthorized
		}
		filter.FavoritedBy = &identity.UserID
		filter.Status = &live
	default:
		filter.Status = &live
	}

	recipes, err := s.recipeRepository.ListRecipes(ctx, filter)
	if err != nil {
		return nil, err
	}

	res := make([]domain.RecipeResponse, 0, len(recipes))
	for _, recipe := range recipes {
		res = append(res, ToRecipeResponse(recipe))
	}
	return res, nil
}

func (s *recipeService) ToggleFavorite(ctx context.Context, identity domain.Identity, recipeID uuid.UUID) (bool, error) {
	if err := policy.Authorize(identity, nil, domain.RoleUser); err != nil {
		return false, err
	}

	recipe, err := s.recipeRepository.GetRecipeByID(ctx, recipeID)
	if err != nil {
		return false, err
	}
	if !recipe.Status.IsApproved() {
		return false, domain.ErrRecipeNotFound
	}

	return s.recipeRepository.ToggleFavorite(ctx, identity.UserID, recipeID)
}

func (s *recipeService) ReportRecipe(ctx context.Context, identity domain.Identity, recipeID uuid.UUID, req domain.ReportRequest) error {
	if err := policy.Authorize(identity, nil, domain.RoleUser); err != nil {
		return err
	}
	if _, err := s.recipeRepository.GetRecipeByID(ctx, recipeID); err != nil {
		return err
	}

	return s.recipeRepository.CreateReport(ctx, &entities.Report{
		ID:             uuid.New(),
		ReporterUserID: identity.UserID,
		RecipeID:       &recipeID,
		Reason:         strings.TrimSpace(req.Reason),
	})
}

func (s *recipeService) AddComment(ctx context.Context, identity domain.Identity, recipeID uuid.UUID, req domain.CommentRequest) (domain.CommentResponse, error) {
	if err := policy.Authorize(identity, nil, domain.RoleUser); err != nil {
		return domain.CommentResponse{}, err
	}

	recipe, err := s.recipeRepository.GetRecipeByID(ctx, recipeID)
	if err != nil {
		return domain.CommentResponse{}, err
	}
	if !recipe.Status.IsApproved() {
		return domain.CommentResponse{}, domain.ErrRecipeNotFound
	}

	comment := &entities.Comment{
		ID:       uuid.New(),
		RecipeID: recipeID,
		UserID:   identity.UserID,
		Content:  strings.TrimSpace(req.Content),
	}
	if err := s.recipeRepository.CreateComment(ctx, comment); err != nil {
		return domain.CommentResponse{}, err
	}

	saved, err := s.recipeRepository.GetCommentByID(ctx, comment.ID)
	if err != nil {
		return domain.CommentResponse{}, err
	}
	return toCommentResponse(saved), nil
}

func (s *recipeService) ListComments(ctx context.Context, identity domain.Identity, recipeID uuid.UUID) ([]domain.CommentResponse, error) {
	recipe, err := s.recipeRepository.GetRecipeByID(ctx, recipeID)
	if err != nil {
		return nil, err
	}
	if !policy.CanView(identity, recipe) {
		return nil, domain.ErrUnauthorizedRecipeAccess
	}

	comments, err := s.recipeRepository.ListVisibleComments(ctx, recipeID)
	if err != nil {
		return nil, err
	}

	res := make([]domain.CommentResponse, 0, len(comments))
	for _, c := range comments {
		res = append(res, toCommentResponse(c))
	}
	return res, nil
}

func (s *recipeService) ReportComment(ctx context.Context, identity domain.Identity, commentID uuid.UUID, req domain.ReportRequest) error {
	if err := policy.Authorize(identity, nil, domain.RoleUser); err != nil {
		return err
	}
	if _, err := s.recipeRepository.GetCommentByID(ctx, commentID); err != nil {
		return err
	}

	return s.recipeRepository.CreateReport(ctx, &entities.Report{
		ID:             uuid.New(),
		ReporterUserID: identity.UserID,
		CommentID:      &commentID,
		Reason:         strings.TrimSpace(req.Reason),
	})
}

func (s *recipeService) UploadImage(ctx context.Context, identity domain.Identity, file *multipart.FileHeader) (domain.UploadImageResponse, error) {
	if err := policy.Authorize(identity, nil, domain.RoleUser); err != nil {
		return domain.UploadImageResponse{}, err
	}

	objectKey, err := s.s3.UploadFile(ctx, "recipe-"+uuid.NewString(), file, "recipes", storage.AllowImage...)
	if err != nil {
		if !errors.Is(err, domain.ErrBadRequest) {
			log.Errorf("failed to upload recipe image: %v", err)
		}
		return domain.UploadImageResponse{}, err
	}
	return domain.UploadImageResponse{ImageURL: s.s3.GetPublicLinkKey(objectKey)}, nil
}

// applyRequest copies editable fields onto recipe and replaces its
// ingredients and steps.
func applyRequest(recipe *entities.Recipe, req domain.RecipeRequest) error {
	recipe.Title = strings.TrimSpace(req.Title)
	recipe.ShortDescription = strings.TrimSpace(req.ShortDescription)
	recipe.InstructionsSummary = req.InstructionsSummary
	recipe.ImageURL = strings.TrimSpace(req.ImageURL)

	recipe.Ingredients = make([]*entities.RecipeIngredient, 0, len(req.Ingredients))
	for i, in := range req.Ingredients {
		recipe.Ingredients = append(recipe.Ingredients, &entities.RecipeIngredient{
			Position: i,
			Name:     strings.TrimSpace(in.Name),
			Quantity: in.Quantity,
			Unit:     in.Unit,
		})
	}

	seen := make(map[int]struct{}, len(req.Steps))
	recipe.Steps = make([]*entities.RecipeStep, 0, len(req.Steps))
	for _, st := range req.Steps {
		if _, ok := seen[st.StepNumber]; ok {
			return domain.ErrDuplicateStepNumber
		}
		seen[st.StepNumber] = struct{}{}
		recipe.Steps = append(recipe.Steps, &entities.RecipeStep{
			StepNumber:  st.StepNumber,
			Description: st.Description,
		})
	}
	sort.Slice(recipe.Steps, func(i, j int) bool {
		return recipe.Steps[i].StepNumber < recipe.Steps[j].StepNumber
	})
	return nil
}

func ToRecipeResponse(recipe *entities.Recipe) domain.RecipeResponse {
	res := domain.RecipeResponse{
		ID:                  recipe.ID.String(),
		Title:               recipe.Title,
		ShortDescription:    recipe.ShortDescription,
		InstructionsSummary: recipe.InstructionsSummary,
		ImageURL:            recipe.ImageURL,
		Status:              string(recipe.Status),
		IsApproved:          recipe.Status.IsApproved(),
		IsDisabled:          recipe.Status.IsDisabled(),
		CreatedAt:           recipe.CreatedAt,
		UpdatedAt:           recipe.UpdatedAt,
		Tags:                make([]string, 0, len(recipe.RecipeTags)),
		Ingredients:         make([]domain.RecipeIngredientDto, 0, len(recipe.Ingredients)),
		Steps:               make([]domain.RecipeStepDto, 0, len(recipe.Steps)),
	}
	if recipe.CreatedByUser != nil {
		res.CreatedByDisplayName = recipe.CreatedByUser.DisplayName
	}

	for _, rt := range recipe.RecipeTags {
		if rt.Tag != nil {
			res.Tags = append(res.Tags, rt.Tag.Name)
		}
	}
	sort.Strings(res.Tags)

	for _, in := range recipe.Ingredients {
		res.Ingredients = append(res.Ingredients, domain.RecipeIngredientDto{
			Name:     in.Name,
			Quantity: in.Quantity,
			Unit:     in.Unit,
		})
	}
	for _, st := range recipe.Steps {
		res.Steps = append(res.Steps, domain.RecipeStepDto{
			StepNumber:  st.StepNumber,
			Description: st.Description,
		})
	}
	return res
}

func toCommentResponse(comment *entities.Comment) domain.CommentResponse {
	res := domain.CommentResponse{
		ID:        comment.ID.String(),
		RecipeID:  comment.RecipeID.String(),
		Content:   comment.Content,
		CreatedAt: comment.CreatedAt,
	}
	if comment.User != nil {
		res.AuthorDisplayName = comment.User.DisplayName
	}
	return res
}
