package moderation

import (
	"Recipe-Website/domain"
	"Recipe-Website/entities"
	"Recipe-Website/internal/utils/mailing"
	"Recipe-Website/pkg/policy"
	"Recipe-Website/pkg/user"
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
)

type (
	ModerationService interface {
		ListPendingRecipes(ctx context.Context, identity domain.Identity) ([]domain.PendingRecipeResponse, error)
		ApproveRecipe(ctx context.Context, identity domain.Identity, recipeID uuid.UUID) error
		DisableRecipe(ctx context.Context, identity domain.Identity, recipeID uuid.UUID) error
		EnableRecipe(ctx context.Context, identity domain.Identity, recipeID uuid.UUID) error
		ListOpenReports(ctx context.Context, identity domain.Identity) ([]domain.ReportResponse, error)
		ResolveReport(ctx context.Context, identity domain.Identity, reportID uuid.UUID) error
		HideComment(ctx context.Context, identity domain.Identity, commentID uuid.UUID) error
		BanUser(ctx context.Context, identity domain.Identity, userID uuid.UUID) error
		WarnUser(ctx context.Context, identity domain.Identity, userID uuid.UUID, req domain.WarnUserRequest) (domain.WarnUserResponse, error)
		MergeTags(ctx context.Context, identity domain.Identity, fromTagID, intoTagID uuid.UUID) error
		OverviewAnalytics(ctx context.Context, identity domain.Identity) (domain.AnalyticsOverviewResponse, error)
		ListTags(ctx context.Context, identity domain.Identity) ([]domain.TagSummary, error)
		ListUsers(ctx context.Context, identity domain.Identity) ([]domain.UserSummary, error)
	}

	moderationService struct {
		moderationRepository ModerationRepository
		userRepository       user.UserRepository
		mailer               mailing.Mailer
		appURL               string
	}
)

func NewModerationService(
	moderationRepository ModerationRepository,
	userRepository user.UserRepository,
	mailer mailing.Mailer,
	appURL string,
) ModerationService {
	return &moderationService{
		moderationRepository: moderationRepository,
		userRepository:       userRepository,
		mailer:               mailer,
		appURL:               appURL,
	}
}

func requireAdmin(identity domain.Identity) error {
	return policy.Authorize(identity, nil, domain.RoleAdmin)
}

func (s *moderationService) ListPendingRecipes(ctx context.Context, identity domain.Identity) ([]domain.PendingRecipeResponse, error) {
	if err := requireAdmin(identity); err != nil {
		return nil, err
	}

	recipes, err := s.moderationRepository.ListRecipesByStatus(ctx, entities.RecipeStatusPending)
	if err != nil {
		return nil, err
	}

	res := make([]domain.PendingRecipeResponse, 0, len(recipes))
	for _, recipe := range recipes {
		item := domain.PendingRecipeResponse{
			ID:               recipe.ID.String(),
			Title:            recipe.Title,
			ShortDescription: recipe.ShortDescription,
			CreatedAt:        recipe.CreatedAt,
		}
		if recipe.CreatedByUser != nil {
			item.CreatedByDisplayName = recipe.CreatedByUser.DisplayName
		}
		res = append(res, item)
	}
	return res, nil
}

func (s *moderationService) ApproveRecipe(ctx context.Context, identity domain.Identity, recipeID uuid.UUID) error {
	return s.transition(ctx, identity, recipeID, entities.RecipeStatus.Approve)
}

func (s *moderationService) DisableRecipe(ctx context.Context, identity domain.Identity, recipeID uuid.UUID) error {
	return s.transition(ctx, identity, recipeID, entities.RecipeStatus.Disable)
}

func (s *moderationService) EnableRecipe(ctx context.Context, identity domain.Identity, recipeID uuid.UUID) error {
	return s.transition(ctx, identity, recipeID, entities.RecipeStatus.Enable)
}

func (s *moderationService) transition(
	ctx context.Context,
	identity domain.Identity,
	recipeID uuid.UUID,
	fn func(entities.RecipeStatus) (entities.RecipeStatus, error),
) error {
	if err := requireAdmin(identity); err != nil {
		return err
	}

	recipe, err := s.moderationRepository.TransitionRecipe(ctx, recipeID, fn)
	if err != nil {
		if errors.Is(err, entities.ErrInvalidStatusTransition) {
			return domain.ErrInvalidStatusTransition
		}
		return err
	}
	log.Infof("recipe %s is now %s", recipe.ID, recipe.Status)
	return nil
}

func (s *moderationService) ListOpenReports(ctx context.Context, identity domain.Identity) ([]domain.ReportResponse, error) {
	if err := requireAdmin(identity); err != nil {
		return nil, err
	}

	reports, err := s.moderationRepository.ListOpenReports(ctx)
	if err != nil {
		return nil, err
	}

	res := make([]domain.ReportResponse, 0, len(reports))
	for _, report := range reports {
		item := domain.ReportResponse{
			ID:        report.ID.String(),
			Reason:    report.Reason,
			CreatedAt: report.CreatedAt,
		}
		if report.ReporterUser != nil {
			item.ReporterDisplayName = report.ReporterUser.DisplayName
		}
		if report.RecipeID != nil {
			id := report.RecipeID.String()
			item.RecipeID = &id
		}
		if report.CommentID != nil {
			id := report.CommentID.String()
			item.CommentID = &id
		}
		res = append(res, item)
	}
	return res, nil
}

func (s *moderationService) ResolveReport(ctx context.Context, identity domain.Identity, reportID uuid.UUID) error {
	if err := requireAdmin(identity); err != nil {
		return err
	}
	return s.moderationRepository.ResolveReport(ctx, reportID)
}

func (s *moderationService) HideComment(ctx context.Context, identity domain.Identity, commentID uuid.UUID) error {
	if err := requireAdmin(identity); err != nil {
		return err
	}
	return s.moderationRepository.HideComment(ctx, commentID)
}

func (s *moderationService) BanUser(ctx context.Context, identity domain.Identity, userID uuid.UUID) error {
	if err := requireAdmin(identity); err != nil {
		return err
	}
	if err := s.userRepository.BanUser(ctx, userID); err != nil {
		return err
	}
	log.Infof("user %s banned by %s", userID, identity.UserID)
	return nil
}

// WarnUser acknowledges a warning and e-mails it when SMTP is configured.
// A delivery failure is logged and does not fail the request.
func (s *moderationService) WarnUser(ctx context.Context, identity domain.Identity, userID uuid.UUID, req domain.WarnUserRequest) (domain.WarnUserResponse, error) {
	if err := requireAdmin(identity); err != nil {
		return domain.WarnUserResponse{}, err
	}

	target, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		return domain.WarnUserResponse{}, err
	}

	message := strings.TrimSpace(req.Message)
	if s.mailer != nil && s.mailer.Enabled() {
		body := mailing.WarningBody(target.DisplayName, message, s.appURL)
		if err := s.mailer.SendMail(target.Email, "A warning from the moderators", body); err != nil {
			log.Errorf("failed to send warning to %s: %v", target.Email, err)
		}
	}

	return domain.WarnUserResponse{
		WarnedUserID: target.ID.String(),
		Message:      message,
	}, nil
}

func (s *moderationService) MergeTags(ctx context.Context, identity domain.Identity, fromTagID, intoTagID uuid.UUID) error {
	if err := requireAdmin(identity); err != nil {
		return err
	}
	if fromTagID == intoTagID {
		return domain.ErrMergeSameTag
	}
	return s.moderationRepository.MergeTags(ctx, fromTagID, intoTagID)
}

func (s *moderationService) OverviewAnalytics(ctx context.Context, identity domain.Identity) (domain.AnalyticsOverviewResponse, error) {
	if err := requireAdmin(identity); err != nil {
		return domain.AnalyticsOverviewResponse{}, err
	}

	var (
		res     domain.AnalyticsOverviewResponse
		err     error
		live    = entities.RecipeStatusLive
		pending = entities.RecipeStatusPending
	)
	if res.TotalUsers, err = s.userRepository.CountUsers(ctx); err != nil {
		return res, err
	}
	if res.TotalRecipes, err = s.moderationRepository.CountRecipes(ctx, nil); err != nil {
		return res, err
	}
	if res.LiveRecipes, err = s.moderationRepository.CountRecipes(ctx, &live); err != nil {
		return res, err
	}
	if res.PendingRecipes, err = s.moderationRepository.CountRecipes(ctx, &pending); err != nil {
		return res, err
	}
	if res.TotalComments, err = s.moderationRepository.CountComments(ctx); err != nil {
		return res, err
	}
	if res.TotalReports, err = s.moderationRepository.CountReports(ctx); err != nil {
		return res, err
	}
	return res, nil
}

func (s *moderationService) ListTags(ctx context.Context, identity domain.Identity) ([]domain.TagSummary, error) {
	if err := requireAdmin(identity); err != nil {
		return nil, err
	}

	tags, err := s.moderationRepository.ListTagsWithCounts(ctx)
	if err != nil {
		return nil, err
	}

	res := make([]domain.TagSummary, 0, len(tags))
	for _, tag := range tags {
		res = append(res, domain.TagSummary{
			ID:          tag.ID.String(),
			Name:        tag.Name,
			Slug:        tag.Slug,
			RecipeCount: tag.RecipeCount,
		})
	}
	return res, nil
}

func (s *moderationService) ListUsers(ctx context.Context, identity domain.Identity) ([]domain.UserSummary, error) {
	if err := requireAdmin(identity); err != nil {
		return nil, err
	}

	users, err := s.userRepository.ListUsers(ctx)
	if err != nil {
		return nil, err
	}

	res := make([]domain.UserSummary, 0, len(users))
	for _, u := range users {
		res = append(res, domain.UserSummary{
			ID:          u.ID.String(),
			DisplayName: u.DisplayName,
			Email:       u.Email,
			Role:        u.Role,
			IsBanned:    u.IsBanned,
		})
	}
	return res, nil
}
