package recipe

import (
	"Recipe-Website/domain"
	"Recipe-Website/entities"
	"Recipe-Website/internal/testutil"
	"context"
	"mime/multipart"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeStorage struct {
	deleted []string
}

func (f *fakeStorage) UploadFile(_ context.Context, fileName string, _ *multipart.FileHeader, folder string, _ ...string) (string, error) {
	return folder + "/" + fileName + ".png", nil
}

func (f *fakeStorage) DeleteFile(_ context.Context, objectKey string) error {
	f.deleted = append(f.deleted, objectKey)
	return nil
}

func (f *fakeStorage) GetPublicLinkKey(objectKey string) string {
	return "https://images.test/" + objectKey
}

func (f *fakeStorage) GetObjectKeyFromLink(link string) string {
	if !strings.HasPrefix(link, "https://images.test/") {
		return ""
	}
	return strings.TrimPrefix(link, "https://images.test/")
}

func (f *fakeStorage) Enabled() bool { return true }

type fixture struct {
	db      *gorm.DB
	service RecipeService
	store   *fakeStorage
	alice   domain.Identity
	bob     domain.Identity
	admin   domain.Identity
}

func newFixture(t *testing.T) *fixture {
	db := testutil.NewDB(t)
	store := &fakeStorage{}
	alice := testutil.CreateUser(t, db, "Alice", domain.RoleUser)
	bob := testutil.CreateUser(t, db, "Bob", domain.RoleUser)
	admin := testutil.CreateUser(t, db, "Admin", domain.RoleAdmin)

	return &fixture{
		db:      db,
		service: NewRecipeService(NewRecipeRepository(db), store),
		store:   store,
		alice:   domain.Identity{UserID: alice.ID, Role: alice.Role},
		bob:     domain.Identity{UserID: bob.ID, Role: bob.Role},
		admin:   domain.Identity{UserID: admin.ID, Role: admin.Role},
	}
}

func strPtr(s string) *string { return &s }

func sampleRequest(title string, tags ...string) domain.RecipeRequest {
	return domain.RecipeRequest{
		Title:            title,
		ShortDescription: "A short description of " + title,
		Tags:             tags,
		Ingredients: []domain.RecipeIngredientDto{
			{Name: "Flour", Quantity: strPtr("200"), Unit: strPtr("g")},
			{Name: "Eggs", Quantity: strPtr("2")},
			{Name: "Salt"},
		},
		Steps: []domain.RecipeStepDto{
			{StepNumber: 2, Description: "Cook"},
			{StepNumber: 1, Description: "Mix"},
		},
	}
}

func (f *fixture) create(t *testing.T, identity domain.Identity, req domain.RecipeRequest) uuid.UUID {
	t.Helper()
	res, err := f.service.CreateRecipe(context.Background(), identity, req)
	require.NoError(t, err)
	return uuid.MustParse(res.ID)
}

func (f *fixture) setStatus(t *testing.T, id uuid.UUID, status entities.RecipeStatus) {
	t.Helper()
	require.NoError(t, f.db.Model(&entities.Recipe{}).Where("id = ?", id).Update("status", status).Error)
}

func TestCreateRecipe(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	id := f.create(t, f.alice, sampleRequest("Pancakes", "Quick", "quick", "  ", "Breakfast"))

	got, err := f.service.GetRecipe(ctx, f.alice, id)
	require.NoError(t, err)
	assert.Equal(t, "Pancakes", got.Title)
	assert.False(t, got.IsApproved)
	assert.False(t, got.IsDisabled)
	assert.Equal(t, string(entities.RecipeStatusPending), got.Status)
	assert.Equal(t, "Alice", got.CreatedByDisplayName)
	assert.Equal(t, []string{"Breakfast", "Quick"}, got.Tags)

	require.Len(t, got.Ingredients, 3)
	assert.Equal(t, "Flour", got.Ingredients[0].Name)
	assert.Equal(t, "Eggs", got.Ingredients[1].Name)
	assert.Equal(t, "Salt", got.Ingredients[2].Name)
	assert.Nil(t, got.Ingredients[2].Quantity)

	require.Len(t, got.Steps, 2)
	assert.Equal(t, 1, got.Steps[0].StepNumber)
	assert.Equal(t, "Mix", got.Steps[0].Description)

	var tagCount, linkCount int64
	require.NoError(t, f.db.Model(&entities.Tag{}).Where("LOWER(name) = ?", "quick").Count(&tagCount).Error)
	require.NoError(t, f.db.Model(&entities.RecipeTag{}).Where("recipe_id = ?", id).Count(&linkCount).Error)
	assert.EqualValues(t, 1, tagCount)
	assert.EqualValues(t, 2, linkCount)

	var tag entities.Tag
	require.NoError(t, f.db.Where("name = ?", "Quick").First(&tag).Error)
	assert.Equal(t, "quick", tag.Slug)
}

func TestCreateRecipeReusesExistingTag(t *testing.T) {
	f := newFixture(t)

	f.create(t, f.alice, sampleRequest("Pancakes", "Brunch Ideas"))
	f.create(t, f.bob, sampleRequest("Waffles", "brunch ideas"))

	var tags []entities.Tag
	require.NoError(t, f.db.Find(&tags).Error)
	require.Len(t, tags, 1)
	assert.Equal(t, "Brunch Ideas", tags[0].Name)
	assert.Equal(t, "brunch-ideas", tags[0].Slug)
}

func TestCreateRecipeRejectsDuplicateStepNumbers(t *testing.T) {
	f := newFixture(t)

	req := sampleRequest("Pancakes")
	req.Steps = []domain.RecipeStepDto{{StepNumber: 1, Description: "a"}, {StepNumber: 1, Description: "b"}}

	_, err := f.service.CreateRecipe(context.Background(), f.alice, req)
	assert.ErrorIs(t, err, domain.ErrDuplicateStepNumber)
	assert.ErrorIs(t, err, domain.ErrBadRequest)

	var count int64
	require.NoError(t, f.db.Model(&entities.Recipe{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCreateRecipeRequiresIdentity(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.CreateRecipe(context.Background(), domain.Identity{}, sampleRequest("Pancakes"))
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestUpdateRecipeResetsApproval(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.create(t, f.alice, sampleRequest("Pancakes", "Quick"))
	f.setStatus(t, id, entities.RecipeStatusLive)

	req := sampleRequest("Better Pancakes", "Breakfast")
	req.Ingredients = []domain.RecipeIngredientDto{{Name: "Oat flour"}}
	require.NoError(t, f.service.UpdateRecipe(ctx, f.alice, id, req))

	got, err := f.service.GetRecipe(ctx, f.alice, id)
	require.NoError(t, err)
	assert.Equal(t, "Better Pancakes", got.Title)
	assert.False(t, got.IsApproved)
	assert.Equal(t, []string{"Breakfast"}, got.Tags)
	require.Len(t, got.Ingredients, 1)
	assert.Equal(t, "Oat flour", got.Ingredients[0].Name)

	var ingredientCount int64
	require.NoError(t, f.db.Model(&entities.RecipeIngredient{}).Where("recipe_id = ?", id).Count(&ingredientCount).Error)
	assert.EqualValues(t, 1, ingredientCount)
}

func TestUpdateRecipeKeepsDisabled(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.create(t, f.alice, sampleRequest("Pancakes"))
	f.setStatus(t, id, entities.RecipeStatusDisabled)

	require.NoError(t, f.service.UpdateRecipe(ctx, f.alice, id, sampleRequest("Pancakes v2")))

	got, err := f.service.GetRecipe(ctx, f.alice, id)
	require.NoError(t, err)
	assert.True(t, got.IsDisabled)
	assert.False(t, got.IsApproved)
}

func TestUpdateRecipeAuthorization(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.create(t, f.alice, sampleRequest("Pancakes"))

	err := f.service.UpdateRecipe(ctx, f.bob, id, sampleRequest("Hijacked"))
	assert.ErrorIs(t, err, domain.ErrForbidden)

	assert.NoError(t, f.service.UpdateRecipe(ctx, f.admin, id, sampleRequest("Moderated")))

	err = f.service.UpdateRecipe(ctx, f.alice, uuid.New(), sampleRequest("Missing"))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestReplaceRecipeUsesStoredStatus(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.create(t, f.alice, sampleRequest("Pancakes"))
	f.setStatus(t, id, entities.RecipeStatusDisabled)

	repo := NewRecipeRepository(f.db)
	err := repo.ReplaceRecipe(ctx, id, nil, func(recipe *entities.Recipe) error {
		assert.Equal(t, entities.RecipeStatusDisabled, recipe.Status)
		recipe.Title = "Pancakes v2"
		recipe.Status = entities.RecipeStatusLive
		return nil
	})
	require.NoError(t, err)

	var stored entities.Recipe
	require.NoError(t, f.db.Where("id = ?", id).First(&stored).Error)
	assert.Equal(t, "Pancakes v2", stored.Title)
	assert.Equal(t, entities.RecipeStatusDisabled, stored.Status)
}

func TestUpdateRecipeRejectedEditChangesNothing(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.create(t, f.alice, sampleRequest("Pancakes", "Quick"))
	f.setStatus(t, id, entities.RecipeStatusLive)

	err := f.service.UpdateRecipe(ctx, f.bob, id, sampleRequest("Hijacked", "Spam"))
	require.ErrorIs(t, err, domain.ErrForbidden)

	got, err := f.service.GetRecipe(ctx, f.alice, id)
	require.NoError(t, err)
	assert.Equal(t, "Pancakes", got.Title)
	assert.True(t, got.IsApproved)
	assert.Equal(t, []string{"Quick"}, got.Tags)
}

func TestGetRecipeVisibility(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.create(t, f.alice, sampleRequest("Pancakes"))

	_, err := f.service.GetRecipe(ctx, f.alice, id)
	assert.NoError(t, err)
	_, err = f.service.GetRecipe(ctx, f.admin, id)
	assert.NoError(t, err)
	_, err = f.service.GetRecipe(ctx, f.bob, id)
	assert.ErrorIs(t, err, domain.ErrForbidden)
	_, err = f.service.GetRecipe(ctx, domain.Identity{}, id)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	f.setStatus(t, id, entities.RecipeStatusLive)
	got, err := f.service.GetRecipe(ctx, f.bob, id)
	require.NoError(t, err)
	assert.True(t, got.IsApproved)

	_, err = f.service.GetRecipe(ctx, f.bob, uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListRecipes(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	live := f.create(t, f.alice, sampleRequest("Chicken Alfredo"))
	pending := f.create(t, f.alice, sampleRequest("Avocado Toast"))
	disabled := f.create(t, f.alice, sampleRequest("Burnt Toast"))
	other := f.create(t, f.bob, sampleRequest("Bob's Chicken Soup"))
	f.setStatus(t, live, entities.RecipeStatusLive)
	f.setStatus(t, disabled, entities.RecipeStatusDisabled)
	f.setStatus(t, other, entities.RecipeStatusLive)

	ids := func(list []domain.RecipeResponse) []string {
		out := make([]string, 0, len(list))
		for _, r := range list {
			out = append(out, r.ID)
		}
		return out
	}

	public, err := f.service.ListRecipes(ctx, domain.Identity{}, "", domain.VisibilityPublic)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{live.String(), other.String()}, ids(public))

	search, err := f.service.ListRecipes(ctx, domain.Identity{}, "CHICKEN", domain.VisibilityPublic)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{live.String(), other.String()}, ids(search))

	search, err = f.service.ListRecipes(ctx, domain.Identity{}, "description of bob", domain.VisibilityPublic)
	require.NoError(t, err)
	assert.Equal(t, []string{other.String()}, ids(search))

	mine, err := f.service.ListRecipes(ctx, f.alice, "", domain.VisibilityMine)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{live.String(), pending.String()}, ids(mine))

	_, err = f.service.ListRecipes(ctx, domain.Identity{}, "", domain.VisibilityMine)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestListRecipesMatchesWildcardsLiterally(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	for _, title := range []string{"Plain soup", "100% rye", "snake_case stew"} {
		f.setStatus(t, f.create(t, f.alice, sampleRequest(title)), entities.RecipeStatusLive)
	}

	titles := func(search string) []string {
		list, err := f.service.ListRecipes(ctx, domain.Identity{}, search, domain.VisibilityPublic)
		require.NoError(t, err)
		out := make([]string, 0, len(list))
		for _, r := range list {
			out = append(out, r.Title)
		}
		return out
	}

	assert.Equal(t, []string{"100% rye"}, titles("%"))
	assert.Equal(t, []string{"snake_case stew"}, titles("_"))
	assert.Empty(t, titles(`\`))
	assert.Len(t, titles("SOUP"), 1)
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `50\% off`, escapeLike("50% off"))
	assert.Equal(t, `a\_b`, escapeLike("a_b"))
	assert.Equal(t, `c:\\dir`, escapeLike(`c:\dir`))
}

func TestListRecipesNewestFirst(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	older := f.create(t, f.alice, sampleRequest("Older"))
	newer := f.create(t, f.alice, sampleRequest("Newer"))
	f.setStatus(t, older, entities.RecipeStatusLive)
	f.setStatus(t, newer, entities.RecipeStatusLive)
	require.NoError(t, f.db.Model(&entities.Recipe{}).Where("id = ?", older).Update("created_at", time.Now().Add(-time.Hour)).Error)

	list, err := f.service.ListRecipes(ctx, domain.Identity{}, "", domain.VisibilityPublic)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, newer.String(), list[0].ID)
}

func TestToggleFavorite(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.create(t, f.alice, sampleRequest("Pancakes"))

	_, err := f.service.ToggleFavorite(ctx, f.bob, id)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	f.setStatus(t, id, entities.RecipeStatusLive)

	on, err := f.service.ToggleFavorite(ctx, f.bob, id)
	require.NoError(t, err)
	assert.True(t, on)

	favorites, err := f.service.ListRecipes(ctx, f.bob, "", domain.VisibilityFavorites)
	require.NoError(t, err)
	require.Len(t, favorites, 1)
	assert.Equal(t, id.String(), favorites[0].ID)

	off, err := f.service.ToggleFavorite(ctx, f.bob, id)
	require.NoError(t, err)
	assert.False(t, off)

	favorites, err = f.service.ListRecipes(ctx, f.bob, "", domain.VisibilityFavorites)
	require.NoError(t, err)
	assert.Empty(t, favorites)
}

func TestToggleFavoriteRemovesExistingRow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.create(t, f.alice, sampleRequest("Pancakes"))
	f.setStatus(t, id, entities.RecipeStatusLive)

	require.NoError(t, f.db.Create(&entities.Favorite{ID: uuid.New(), UserID: f.bob.UserID, RecipeID: id}).Error)

	on, err := f.service.ToggleFavorite(ctx, f.bob, id)
	require.NoError(t, err)
	assert.False(t, on)

	var count int64
	require.NoError(t, f.db.Model(&entities.Favorite{}).Where("user_id = ?", f.bob.UserID).Count(&count).Error)
	assert.Zero(t, count)

	on, err = f.service.ToggleFavorite(ctx, f.bob, id)
	require.NoError(t, err)
	assert.True(t, on)
}

func TestFavoritesHideNonLiveRecipes(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.create(t, f.alice, sampleRequest("Pancakes"))
	f.setStatus(t, id, entities.RecipeStatusLive)

	_, err := f.service.ToggleFavorite(ctx, f.bob, id)
	require.NoError(t, err)
	f.setStatus(t, id, entities.RecipeStatusDisabled)

	favorites, err := f.service.ListRecipes(ctx, f.bob, "", domain.VisibilityFavorites)
	require.NoError(t, err)
	assert.Empty(t, favorites)
}

func TestReportRecipe(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.create(t, f.alice, sampleRequest("Pancakes"))

	require.NoError(t, f.service.ReportRecipe(ctx, f.bob, id, domain.ReportRequest{Reason: "spam"}))
	require.NoError(t, f.service.ReportRecipe(ctx, f.bob, id, domain.ReportRequest{Reason: "spam"}))

	var reports []entities.Report
	require.NoError(t, f.db.Find(&reports).Error)
	require.Len(t, reports, 2)
	assert.False(t, reports[0].IsResolved)
	assert.Equal(t, id, *reports[0].RecipeID)
	assert.Nil(t, reports[0].CommentID)

	err := f.service.ReportRecipe(ctx, f.bob, uuid.New(), domain.ReportRequest{Reason: "spam"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestComments(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.create(t, f.alice, sampleRequest("Pancakes"))

	_, err := f.service.AddComment(ctx, f.bob, id, domain.CommentRequest{Content: "Yum"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	f.setStatus(t, id, entities.RecipeStatusLive)
	first, err := f.service.AddComment(ctx, f.bob, id, domain.CommentRequest{Content: "Yum"})
	require.NoError(t, err)
	assert.Equal(t, "Bob", first.AuthorDisplayName)
	second, err := f.service.AddComment(ctx, f.alice, id, domain.CommentRequest{Content: "Thanks"})
	require.NoError(t, err)

	require.NoError(t, f.db.Model(&entities.Comment{}).Where("id = ?", first.ID).Update("is_hidden", true).Error)

	comments, err := f.service.ListComments(ctx, domain.Identity{}, id)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, second.ID, comments[0].ID)

	commentID := uuid.MustParse(second.ID)
	require.NoError(t, f.service.ReportComment(ctx, f.bob, commentID, domain.ReportRequest{Reason: "rude"}))

	var report entities.Report
	require.NoError(t, f.db.Where("comment_id = ?", commentID).First(&report).Error)
	assert.Nil(t, report.RecipeID)

	err = f.service.ReportComment(ctx, f.bob, uuid.New(), domain.ReportRequest{Reason: "rude"})
	assert.ErrorIs(t, err, domain.ErrCommentNotFound)
}

func TestDeleteRecipeCascades(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	req := sampleRequest("Pancakes", "Quick")
	req.ImageURL = "https://images.test/recipes/pancakes.png"
	id := f.create(t, f.alice, req)
	f.setStatus(t, id, entities.RecipeStatusLive)

	_, err := f.service.ToggleFavorite(ctx, f.bob, id)
	require.NoError(t, err)
	require.NoError(t, f.service.ReportRecipe(ctx, f.bob, id, domain.ReportRequest{Reason: "spam"}))
	comment, err := f.service.AddComment(ctx, f.bob, id, domain.CommentRequest{Content: "Yum"})
	require.NoError(t, err)
	require.NoError(t, f.service.ReportComment(ctx, f.alice, uuid.MustParse(comment.ID), domain.ReportRequest{Reason: "rude"}))

	plan := &entities.MealPlan{ID: uuid.New(), UserID: f.bob.UserID, StartDate: time.Now(), EndDate: time.Now()}
	require.NoError(t, f.db.Create(plan).Error)
	require.NoError(t, f.db.Create(&entities.MealPlanItem{
		ID: uuid.New(), MealPlanID: plan.ID, RecipeID: id, Date: time.Now(), MealType: entities.MealTypeDinner,
	}).Error)

	assert.ErrorIs(t, f.service.DeleteRecipe(ctx, f.bob, id), domain.ErrForbidden)
	require.NoError(t, f.service.DeleteRecipe(ctx, f.alice, id))

	for _, model := range []any{
		&entities.Recipe{},
		&entities.RecipeIngredient{},
		&entities.RecipeStep{},
		&entities.RecipeTag{},
		&entities.Favorite{},
		&entities.Comment{},
		&entities.Report{},
		&entities.MealPlanItem{},
	} {
		var count int64
		require.NoError(t, f.db.Model(model).Count(&count).Error)
		assert.Zero(t, count, "%T", model)
	}

	var tagCount int64
	require.NoError(t, f.db.Model(&entities.Tag{}).Count(&tagCount).Error)
	assert.EqualValues(t, 1, tagCount)
	assert.Equal(t, []string{"recipes/pancakes.png"}, f.store.deleted)

	assert.ErrorIs(t, f.service.DeleteRecipe(ctx, f.alice, id), domain.ErrNotFound)
}

func TestUploadImage(t *testing.T) {
	f := newFixture(t)

	res, err := f.service.UploadImage(context.Background(), f.alice, &multipart.FileHeader{Filename: "a.png"})
	require.NoError(t, err)
	assert.Contains(t, res.ImageURL, "https://images.test/recipes/recipe-")

	_, err = f.service.UploadImage(context.Background(), domain.Identity{}, &multipart.FileHeader{Filename: "a.png"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestNormalizeTagNames(t *testing.T) {
	assert.Equal(t, []string{"Quick", "Dinner"}, NormalizeTagNames([]string{" Quick ", "quick", "", "Dinner", "DINNER"}))
	assert.Equal(t, "one-pot-meals", Slugify("One  Pot Meals"))
}
