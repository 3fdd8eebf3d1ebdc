package moderation

import (
	"Recipe-Website/domain"
	"Recipe-Website/entities"
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	TagWithCount struct {
		ID          uuid.UUID
		Name        string
		Slug        string
		RecipeCount int64
	}

	ModerationRepository interface {
		ListRecipesByStatus(ctx context.Context, status entities.RecipeStatus) ([]*entities.Recipe, error)
		TransitionRecipe(ctx context.Context, id uuid.UUID, transition func(entities.RecipeStatus) (entities.RecipeStatus, error)) (*entities.Recipe, error)
		ListOpenReports(ctx context.Context) ([]*entities.Report, error)
		ResolveReport(ctx context.Context, id uuid.UUID) error
		HideComment(ctx context.Context, id uuid.UUID) error
		MergeTags(ctx context.Context, fromID, intoID uuid.UUID) error
		ListTagsWithCounts(ctx context.Context) ([]TagWithCount, error)
		CountRecipes(ctx context.Context, status *entities.RecipeStatus) (int64, error)
		CountComments(ctx context.Context) (int64, error)
		CountReports(ctx context.Context) (int64, error)
	}

	moderationRepository struct {
		db *gorm.DB
	}
)

func NewModerationRepository(db *gorm.DB) ModerationRepository {
	return &moderationRepository{db: db}
}

func (r *moderationRepository) ListRecipesByStatus(ctx context.Context, status entities.RecipeStatus) ([]*entities.Recipe, error) {
	var recipes []*entities.Recipe
	if err := r.db.WithContext(ctx).
		Preload("CreatedByUser").
		Where("status = ?", status).
		Order("created_at desc").
		Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

// TransitionRecipe loads the recipe, applies transition to its status and
// stores the result in one transaction.
func (r *moderationRepository) TransitionRecipe(ctx context.Context, id uuid.UUID, transition func(entities.RecipeStatus) (entities.RecipeStatus, error)) (*entities.Recipe, error) {
	var recipe entities.Recipe
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&recipe).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrRecipeNotFound
			}
			return err
		}

		next, err := transition(recipe.Status)
		if err != nil {
			return err
		}
		if next == recipe.Status {
			return nil
		}

		recipe.Status = next
		return tx.Model(&recipe).Update("status", next).Error
	})
	if err != nil {
		return nil, err
	}
	return &recipe, nil
}

func (r *moderationRepository) ListOpenReports(ctx context.Context) ([]*entities.Report, error) {
	var reports []*entities.Report
	if err := r.db.WithContext(ctx).
		Preload("ReporterUser").
		Where("is_resolved = ?", false).
		Order("created_at desc").
		Find(&reports).Error; err != nil {
		return nil, err
	}
	return reports, nil
}

func (r *moderationRepository) ResolveReport(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Model(&entities.Report{}).
		Where("id = ?", id).
		Update("is_resolved", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrReportNotFound
	}
	return nil
}

func (r *moderationRepository) HideComment(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Model(&entities.Comment{}).
		Where("id = ?", id).
		Update("is_hidden", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrCommentNotFound
	}
	return nil
}

// MergeTags moves every recipe of fromID onto intoID, skipping recipes that
// already carry intoID, then deletes fromID.
func (r *moderationRepository) MergeTags(ctx context.Context, fromID, intoID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, id := range []uuid.UUID{fromID, intoID} {
			var tag entities.Tag
			if err := tx.Where("id = ?", id).First(&tag).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return domain.ErrTagNotFound
				}
				return err
			}
		}

		var links []entities.RecipeTag
		if err := tx.Where("tag_id = ?", fromID).Find(&links).Error; err != nil {
			return err
		}

		for _, link := range links {
			var existing int64
			if err := tx.Model(&entities.RecipeTag{}).
				Where("recipe_id = ? AND tag_id = ?", link.RecipeID, intoID).
				Count(&existing).Error; err != nil {
				return err
			}
			if existing > 0 {
				continue
			}
			if err := tx.Create(&entities.RecipeTag{RecipeID: link.RecipeID, TagID: intoID}).Error; err != nil {
				return err
			}
		}

		if err := tx.Where("tag_id = ?", fromID).Delete(&entities.RecipeTag{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", fromID).Delete(&entities.Tag{}).Error
	})
}

func (r *moderationRepository) ListTagsWithCounts(ctx context.Context) ([]TagWithCount, error) {
	var tags []TagWithCount
	if err := r.db.WithContext(ctx).
		Model(&entities.Tag{}).
		Select("tags.id, tags.name, tags.slug, COUNT(recipe_tags.recipe_id) AS recipe_count").
		Joins("LEFT JOIN recipe_tags ON recipe_tags.tag_id = tags.id").
		Group("tags.id, tags.name, tags.slug").
		Order("tags.name asc").
		Scan(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

func (r *moderationRepository) CountRecipes(ctx context.Context, status *entities.RecipeStatus) (int64, error) {
	query := r.db.WithContext(ctx).Model(&entities.Recipe{})
	if status != nil {
		query = query.Where("status = ?", *status)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *moderationRepository) CountComments(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&entities.Comment{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *moderationRepository) CountReports(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&entities.Report{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
