package moderation

import (
	"Recipe-Website/domain"
	"Recipe-Website/entities"
	"Recipe-Website/internal/testutil"
	"Recipe-Website/pkg/user"
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type sentMail struct {
	to, subject, body string
}

type fakeMailer struct {
	enabled bool
	sent    []sentMail
}

func (m *fakeMailer) Enabled() bool { return m.enabled }

func (m *fakeMailer) SendMail(to, subject, body string) error {
	m.sent = append(m.sent, sentMail{to, subject, body})
	return nil
}

type fixture struct {
	db      *gorm.DB
	service ModerationService
	mailer  *fakeMailer
	author  *entities.User
	user    domain.Identity
	admin   domain.Identity
}

func newFixture(t *testing.T) *fixture {
	db := testutil.NewDB(t)
	mailer := &fakeMailer{}
	author := testutil.CreateUser(t, db, "Author", domain.RoleUser)
	admin := testutil.CreateUser(t, db, "Admin", domain.RoleAdmin)

	return &fixture{
		db:      db,
		service: NewModerationService(NewModerationRepository(db), user.NewUserRepository(db), mailer, "http://localhost:8080"),
		mailer:  mailer,
		author:  author,
		user:    domain.Identity{UserID: author.ID, Role: domain.RoleUser},
		admin:   domain.Identity{UserID: admin.ID, Role: domain.RoleAdmin},
	}
}

func (f *fixture) recipe(t *testing.T, title string, status entities.RecipeStatus, tags ...*entities.Tag) *entities.Recipe {
	t.Helper()
	recipe := &entities.Recipe{
		ID:              uuid.New(),
		Title:           title,
		Status:          status,
		CreatedByUserID: f.author.ID,
	}
	require.NoError(t, f.db.Create(recipe).Error)
	for _, tag := range tags {
		require.NoError(t, f.db.Create(&entities.RecipeTag{RecipeID: recipe.ID, TagID: tag.ID}).Error)
	}
	return recipe
}

func (f *fixture) tag(t *testing.T, name string) *entities.Tag {
	t.Helper()
	tag := &entities.Tag{ID: uuid.New(), Name: name, Slug: name}
	require.NoError(t, f.db.Create(tag).Error)
	return tag
}

func (f *fixture) status(t *testing.T, id uuid.UUID) entities.RecipeStatus {
	t.Helper()
	var recipe entities.Recipe
	require.NoError(t, f.db.Where("id = ?", id).First(&recipe).Error)
	return recipe.Status
}

func TestRecipeStatusTransitions(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	r := f.recipe(t, "Soup", entities.RecipeStatusPending)

	pending, err := f.service.ListPendingRecipes(ctx, f.admin)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "Author", pending[0].CreatedByDisplayName)

	require.NoError(t, f.service.ApproveRecipe(ctx, f.admin, r.ID))
	assert.Equal(t, entities.RecipeStatusLive, f.status(t, r.ID))
	require.NoError(t, f.service.ApproveRecipe(ctx, f.admin, r.ID))

	pending, err = f.service.ListPendingRecipes(ctx, f.admin)
	require.NoError(t, err)
	assert.Empty(t, pending)

	require.NoError(t, f.service.DisableRecipe(ctx, f.admin, r.ID))
	assert.Equal(t, entities.RecipeStatusDisabled, f.status(t, r.ID))

	err = f.service.ApproveRecipe(ctx, f.admin, r.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidStatusTransition)
	assert.ErrorIs(t, err, domain.ErrBadRequest)
	assert.Equal(t, entities.RecipeStatusDisabled, f.status(t, r.ID))

	require.NoError(t, f.service.EnableRecipe(ctx, f.admin, r.ID))
	assert.Equal(t, entities.RecipeStatusPending, f.status(t, r.ID))

	err = f.service.EnableRecipe(ctx, f.admin, r.ID)
	assert.ErrorIs(t, err, domain.ErrBadRequest)

	assert.ErrorIs(t, f.service.ApproveRecipe(ctx, f.admin, uuid.New()), domain.ErrNotFound)
	assert.ErrorIs(t, f.service.ApproveRecipe(ctx, f.user, r.ID), domain.ErrForbidden)
}

func TestReports(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	r := f.recipe(t, "Soup", entities.RecipeStatusLive)

	report := &entities.Report{ID: uuid.New(), ReporterUserID: f.author.ID, RecipeID: &r.ID, Reason: "spam"}
	require.NoError(t, f.db.Create(report).Error)

	open, err := f.service.ListOpenReports(ctx, f.admin)
	require.NoError(t, err)
	require.Len(t, open, 1)
	assert.Equal(t, "spam", open[0].Reason)
	assert.Equal(t, "Author", open[0].ReporterDisplayName)
	require.NotNil(t, open[0].RecipeID)
	assert.Equal(t, r.ID.String(), *open[0].RecipeID)

	require.NoError(t, f.service.ResolveReport(ctx, f.admin, report.ID))

	open, err = f.service.ListOpenReports(ctx, f.admin)
	require.NoError(t, err)
	assert.Empty(t, open)

	assert.ErrorIs(t, f.service.ResolveReport(ctx, f.admin, uuid.New()), domain.ErrNotFound)
	assert.Equal(t, entities.RecipeStatusLive, f.status(t, r.ID))
}

func TestHideComment(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	r := f.recipe(t, "Soup", entities.RecipeStatusLive)

	comment := &entities.Comment{ID: uuid.New(), RecipeID: r.ID, UserID: f.author.ID, Content: "rude"}
	require.NoError(t, f.db.Create(comment).Error)

	require.NoError(t, f.service.HideComment(ctx, f.admin, comment.ID))

	var saved entities.Comment
	require.NoError(t, f.db.Where("id = ?", comment.ID).First(&saved).Error)
	assert.True(t, saved.IsHidden)

	assert.ErrorIs(t, f.service.HideComment(ctx, f.admin, uuid.New()), domain.ErrNotFound)
}

func TestBanAndWarnUser(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.service.BanUser(ctx, f.admin, f.author.ID))
	var saved entities.User
	require.NoError(t, f.db.Where("id = ?", f.author.ID).First(&saved).Error)
	assert.True(t, saved.IsBanned)
	assert.ErrorIs(t, f.service.BanUser(ctx, f.admin, uuid.New()), domain.ErrNotFound)

	res, err := f.service.WarnUser(ctx, f.admin, f.author.ID, domain.WarnUserRequest{Message: "be nice"})
	require.NoError(t, err)
	assert.Equal(t, f.author.ID.String(), res.WarnedUserID)
	assert.Equal(t, "be nice", res.Message)
	assert.Empty(t, f.mailer.sent)

	f.mailer.enabled = true
	_, err = f.service.WarnUser(ctx, f.admin, f.author.ID, domain.WarnUserRequest{Message: "last warning"})
	require.NoError(t, err)
	require.Len(t, f.mailer.sent, 1)
	assert.Equal(t, f.author.Email, f.mailer.sent[0].to)
	assert.Contains(t, f.mailer.sent[0].body, "last warning")

	_, err = f.service.WarnUser(ctx, f.admin, uuid.New(), domain.WarnUserRequest{Message: "x"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestMergeTags(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	quick := f.tag(t, "Quick")
	fast := f.tag(t, "Fast")
	both := f.recipe(t, "Both", entities.RecipeStatusLive, quick, fast)
	onlyFast := f.recipe(t, "Only fast", entities.RecipeStatusLive, fast)

	require.NoError(t, f.service.MergeTags(ctx, f.admin, fast.ID, quick.ID))

	var count int64
	require.NoError(t, f.db.Model(&entities.Tag{}).Where("id = ?", fast.ID).Count(&count).Error)
	assert.Zero(t, count)

	for _, id := range []uuid.UUID{both.ID, onlyFast.ID} {
		var links []entities.RecipeTag
		require.NoError(t, f.db.Where("recipe_id = ?", id).Find(&links).Error)
		require.Len(t, links, 1)
		assert.Equal(t, quick.ID, links[0].TagID)
	}

	tags, err := f.service.ListTags(ctx, f.admin)
	require.NoError(t, err)
	require.Len(t, tags, 1)
	assert.Equal(t, "Quick", tags[0].Name)
	assert.EqualValues(t, 2, tags[0].RecipeCount)
}

func TestMergeTagsRejectsSameOrMissing(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	quick := f.tag(t, "Quick")
	r := f.recipe(t, "Soup", entities.RecipeStatusLive, quick)

	err := f.service.MergeTags(ctx, f.admin, quick.ID, quick.ID)
	assert.ErrorIs(t, err, domain.ErrBadRequest)

	err = f.service.MergeTags(ctx, f.admin, quick.ID, uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)

	var links int64
	require.NoError(t, f.db.Model(&entities.RecipeTag{}).Where("recipe_id = ? AND tag_id = ?", r.ID, quick.ID).Count(&links).Error)
	assert.EqualValues(t, 1, links)
}

func TestOverviewAnalyticsAndUsers(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	live := f.recipe(t, "Live", entities.RecipeStatusLive)
	f.recipe(t, "Pending", entities.RecipeStatusPending)
	f.recipe(t, "Disabled", entities.RecipeStatusDisabled)
	require.NoError(t, f.db.Create(&entities.Comment{ID: uuid.New(), RecipeID: live.ID, UserID: f.author.ID, Content: "hi"}).Error)
	require.NoError(t, f.db.Create(&entities.Report{ID: uuid.New(), ReporterUserID: f.author.ID, RecipeID: &live.ID, Reason: "spam"}).Error)

	overview, err := f.service.OverviewAnalytics(ctx, f.admin)
	require.NoError(t, err)
	assert.Equal(t, domain.AnalyticsOverviewResponse{
		TotalUsers:     2,
		TotalRecipes:   3,
		LiveRecipes:    1,
		PendingRecipes: 1,
		TotalComments:  1,
		TotalReports:   1,
	}, overview)

	users, err := f.service.ListUsers(ctx, f.admin)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "admin@example.com", users[0].Email)
	assert.Equal(t, "author@example.com", users[1].Email)

	_, err = f.service.OverviewAnalytics(ctx, f.user)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
