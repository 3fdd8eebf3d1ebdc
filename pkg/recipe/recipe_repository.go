package recipe

import (
	"Recipe-Website/domain"
	"Recipe-Website/entities"
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type (
	// RecipeFilter narrows ListRecipes. Nil fields are not applied.
	RecipeFilter struct {
		Search        string
		Status        *entities.RecipeStatus
		ExcludeStatus *entities.RecipeStatus
		CreatedBy     *uuid.UUID
		FavoritedBy   *uuid.UUID
	}

	RecipeRepository interface {
		CreateRecipe(ctx context.Context, recipe *entities.Recipe, tagNames []string) error
		ReplaceRecipe(ctx context.Context, recipeID uuid.UUID, tagNames []string, edit func(recipe *entities.Recipe) error) error
		DeleteRecipe(ctx context.Context, id uuid.UUID) error
		EnsureTags(ctx context.Context, names []string) error
		ExistsByTitle(ctx context.Context, title string) (bool, error)
		GetRecipeByID(ctx context.Context, id uuid.UUID) (*entities.Recipe, error)
		GetRecipeDetail(ctx context.Context, id uuid.UUID) (*entities.Recipe, error)
		ListRecipes(ctx context.Context, filter RecipeFilter) ([]*entities.Recipe, error)
		ToggleFavorite(ctx context.Context, userID, recipeID uuid.UUID) (bool, error)
		CreateReport(ctx context.Context, report *entities.Report) error
		CreateComment(ctx context.Context, comment *entities.Comment) error
		GetCommentByID(ctx context.Context, id uuid.UUID) (*entities.Comment, error)
		ListVisibleComments(ctx context.Context, recipeID uuid.UUID) ([]*entities.Comment, error)
	}

	recipeRepository struct {
		db *gorm.DB
	}
)

func NewRecipeRepository(db *gorm.DB) RecipeRepository {
	return &recipeRepository{db: db}
}

func (r *recipeRepository) CreateRecipe(ctx context.Context, recipe *entities.Recipe, tagNames []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ingredients, steps := recipe.Ingredients, recipe.Steps
		recipe.Ingredients, recipe.Steps, recipe.RecipeTags = nil, nil, nil

		if err := tx.Create(recipe).Error; err != nil {
			return err
		}
		recipe.Ingredients, recipe.Steps = ingredients, steps

		return insertChildren(tx, recipe, tagNames)
	})
}

// ReplaceRecipe loads the recipe, lets edit check and change it, then rewrites
// it with its children in one transaction. Live and Pending recipes go back
// to Pending, Disabled stays Disabled even if it changed after the load.
func (r *recipeRepository) ReplaceRecipe(ctx context.Context, recipeID uuid.UUID, tagNames []string, edit func(recipe *entities.Recipe) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var recipe entities.Recipe
		if err := tx.Where("id = ?", recipeID).First(&recipe).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrRecipeNotFound
			}
			return err
		}
		if err := edit(&recipe); err != nil {
			return err
		}

		recipe.UpdatedAt = time.Now()
		res := tx.Model(&entities.Recipe{}).
			Where("id = ?", recipe.ID).
			Updates(map[string]any{
				"title":                recipe.Title,
				"short_description":    recipe.ShortDescription,
				"instructions_summary": recipe.InstructionsSummary,
				"image_url":            recipe.ImageURL,
				"status": gorm.Expr(
					"CASE WHEN status = ? THEN ? ELSE ? END",
					entities.RecipeStatusDisabled,
					entities.RecipeStatusDisabled.Edited(),
					entities.RecipeStatusLive.Edited(),
				),
				"updated_at": recipe.UpdatedAt,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrRecipeNotFound
		}

		for _, model := range []any{&entities.RecipeIngredient{}, &entities.RecipeStep{}, &entities.RecipeTag{}} {
			if err := tx.Where("recipe_id = ?", recipe.ID).Delete(model).Error; err != nil {
				return err
			}
		}

		return insertChildren(tx, &recipe, tagNames)
	})
}

func insertChildren(tx *gorm.DB, recipe *entities.Recipe, tagNames []string) error {
	for i, ingredient := range recipe.Ingredients {
		ingredient.ID = uuid.New()
		ingredient.RecipeID = recipe.ID
		ingredient.Position = i
	}
	if len(recipe.Ingredients) > 0 {
		if err := tx.Create(recipe.Ingredients).Error; err != nil {
			return err
		}
	}

	for _, step := range recipe.Steps {
		step.ID = uuid.New()
		step.RecipeID = recipe.ID
	}
	if len(recipe.Steps) > 0 {
		if err := tx.Create(recipe.Steps).Error; err != nil {
			return err
		}
	}

	recipe.RecipeTags = nil
	for _, name := range tagNames {
		tag, err := firstOrCreateTag(tx, name)
		if err != nil {
			return err
		}
		link := &entities.RecipeTag{RecipeID: recipe.ID, TagID: tag.ID, Tag: tag}
		if err := tx.Omit("Recipe", "Tag").Create(link).Error; err != nil {
			return err
		}
		recipe.RecipeTags = append(recipe.RecipeTags, link)
	}
	return nil
}

// firstOrCreateTag reuses a tag whose name matches case-insensitively.
func firstOrCreateTag(tx *gorm.DB, name string) (*entities.Tag, error) {
	var tag entities.Tag
	err := tx.Where("LOWER(name) = LOWER(?)", name).First(&tag).Error
	if err == nil {
		return &tag, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	tag = entities.Tag{ID: uuid.New(), Name: name, Slug: Slugify(name)}
	if err := tx.Create(&tag).Error; err != nil {
		return nil, err
	}
	return &tag, nil
}

func (r *recipeRepository) EnsureTags(ctx context.Context, names []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, name := range names {
			if _, err := firstOrCreateTag(tx, name); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *recipeRepository) ExistsByTitle(ctx context.Context, title string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entities.Recipe{}).
		Where("LOWER(title) = LOWER(?)", title).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *recipeRepository) DeleteRecipe(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var commentIDs []uuid.UUID
		if err := tx.Model(&entities.Comment{}).Where("recipe_id = ?", id).Pluck("id", &commentIDs).Error; err != nil {
			return err
		}
		if len(commentIDs) > 0 {
			if err := tx.Where("comment_id IN ?", commentIDs).Delete(&entities.Report{}).Error; err != nil {
				return err
			}
		}

		for _, model := range []any{
			&entities.Report{},
			&entities.Comment{},
			&entities.Favorite{},
			&entities.MealPlanItem{},
			&entities.RecipeTag{},
			&entities.RecipeIngredient{},
			&entities.RecipeStep{},
		} {
			if err := tx.Where("recipe_id = ?", id).Delete(model).Error; err != nil {
				return err
			}
		}

		res := tx.Where("id = ?", id).Delete(&entities.Recipe{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrRecipeNotFound
		}
		return nil
	})
}

func (r *recipeRepository) GetRecipeByID(ctx context.Context, id uuid.UUID) (*entities.Recipe, error) {
	var recipe entities.Recipe
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&recipe).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRecipeNotFound
		}
		return nil, err
	}
	return &recipe, nil
}

func (r *recipeRepository) GetRecipeDetail(ctx context.Context, id uuid.UUID) (*entities.Recipe, error) {
	var recipe entities.Recipe
	if err := withDetails(r.db.WithContext(ctx)).Where("recipes.id = ?", id).First(&recipe).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRecipeNotFound
		}
		return nil, err
	}
	return &recipe, nil
}

func (r *recipeRepository) ListRecipes(ctx context.Context, filter RecipeFilter) ([]*entities.Recipe, error) {
	query := withDetails(r.db.WithContext(ctx).Model(&entities.Recipe{}))

	if filter.FavoritedBy != nil {
		query = query.
			Joins("JOIN favorites ON favorites.recipe_id = recipes.id").
			Where("favorites.user_id = ?", *filter.FavoritedBy)
	}
	if filter.CreatedBy != nil {
		query = query.Where("recipes.created_by_user_id = ?", *filter.CreatedBy)
	}
	if filter.Status != nil {
		query = query.Where("recipes.status = ?", *filter.Status)
	}
	if filter.ExcludeStatus != nil {
		query = query.Where("recipes.status <> ?", *filter.ExcludeStatus)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := "%" + escapeLike(strings.ToLower(search)) + "%"
		query = query.Where(`(LOWER(recipes.title) LIKE ? ESCAPE '\' OR LOWER(recipes.short_description) LIKE ? ESCAPE '\')`, pattern, pattern)
	}

	var recipes []*entities.Recipe
	if err := query.Order("recipes.created_at desc").Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

// escapeLike makes LIKE metacharacters in user input match literally.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

func withDetails(db *gorm.DB) *gorm.DB {
	return db.
		Preload("CreatedByUser").
		Preload("Ingredients", func(db *gorm.DB) *gorm.DB {
			return db.Order("position asc")
		}).
		Preload("Steps", func(db *gorm.DB) *gorm.DB {
			return db.Order("step_number asc")
		}).
		Preload("RecipeTags.Tag")
}

// ToggleFavorite adds the favorite, or removes it when the unique index
// already holds one, and returns whether the recipe is favorited afterwards.
func (r *recipeRepository) ToggleFavorite(ctx context.Context, userID, recipeID uuid.UUID) (bool, error) {
	favorited := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&entities.Favorite{
			ID:       uuid.New(),
			UserID:   userID,
			RecipeID: recipeID,
		})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 1 {
			favorited = true
			return nil
		}

		return tx.Where("user_id = ? AND recipe_id = ?", userID, recipeID).Delete(&entities.Favorite{}).Error
	})
	if err != nil {
		return false, err
	}
	return favorited, nil
}

func (r *recipeRepository) CreateReport(ctx context.Context, report *entities.Report) error {
	return r.db.WithContext(ctx).Create(report).Error
}

func (r *recipeRepository) CreateComment(ctx context.Context, comment *entities.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

func (r *recipeRepository) GetCommentByID(ctx context.Context, id uuid.UUID) (*entities.Comment, error) {
	var comment entities.Comment
	if err := r.db.WithContext(ctx).Preload("User").Where("id = ?", id).First(&comment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCommentNotFound
		}
		return nil, err
	}
	return &comment, nil
}

func (r *recipeRepository) ListVisibleComments(ctx context.Context, recipeID uuid.UUID) ([]*entities.Comment, error) {
	var comments []*entities.Comment
	if err := r.db.WithContext(ctx).
		Preload("User").
		Where("recipe_id = ? AND is_hidden = ?", recipeID, false).
		Order("created_at asc").
		Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}
