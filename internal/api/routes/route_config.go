package routes

import (
	"Recipe-Website/internal/api/handlers"
	"Recipe-Website/internal/middleware"
	"Recipe-Website/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

type Config struct {
	App             *fiber.App
	UserHandler     handlers.UserHandler
	AccountHandler  handlers.AccountHandler
	RecipeHandler   handlers.RecipeHandler
	AdminHandler    handlers.AdminHandler
	MealPlanHandler handlers.MealPlanHandler
	Middleware      middleware.Middleware
	JWTService      jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.GuestRoute()
	c.Auth()
	c.Account()
	c.Recipes()
	c.Comments()
	c.MealPlans()
	c.Admin()
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong"})
	})
}

func (c *Config) Auth() {
	auth := c.App.Group("/api/auth")
	{
		auth.Post("/register", c.UserHandler.Register)
		auth.Post("/login", c.UserHandler.Login)
		auth.Get("/me", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.Me)
	}
}

func (c *Config) Account() {
	account := c.App.Group("/account")
	{
		account.Post("/register", c.AccountHandler.Register)
		account.Post("/login", c.AccountHandler.Login)
		account.Post("/logout", c.AccountHandler.Logout)
		account.Get("/me", c.AccountHandler.Me)
	}
}

func (c *Config) Recipes() {
	auth := c.Middleware.AuthMiddleware(c.JWTService)
	optional := c.Middleware.OptionalAuthMiddleware(c.JWTService)

	recipes := c.App.Group("/api/recipes")
	recipes.Get("", optional, c.RecipeHandler.GetRecipes)
	recipes.Get("/mine", auth, c.RecipeHandler.GetMyRecipes)
	recipes.Get("/favorites", auth, c.RecipeHandler.GetFavoriteRecipes)
	recipes.Post("", auth, c.RecipeHandler.CreateRecipe)
	recipes.Post("/image", auth, c.RecipeHandler.UploadRecipeImage)

	recipes.Get("/:id", optional, c.RecipeHandler.GetRecipeDetail)
	recipes.Put("/:id", auth, c.RecipeHandler.UpdateRecipe)
	recipes.Delete("/:id", auth, c.RecipeHandler.DeleteRecipe)
	recipes.Post("/:id/favorite", auth, c.RecipeHandler.ToggleFavorite)
	recipes.Post("/:id/report", auth, c.RecipeHandler.ReportRecipe)
	recipes.Get("/:id/comments", optional, c.RecipeHandler.GetComments)
	recipes.Post("/:id/comments", auth, c.RecipeHandler.AddComment)
}

func (c *Config) Comments() {
	comments := c.App.Group("/api/comments", c.Middleware.AuthMiddleware(c.JWTService))
	comments.Post("/:id/report", c.RecipeHandler.ReportComment)
}

func (c *Config) MealPlans() {
	plans := c.App.Group("/api/mealplans", c.Middleware.AuthMiddleware(c.JWTService))
	plans.Get("", c.MealPlanHandler.GetMealPlans)
	plans.Post("", c.MealPlanHandler.CreateMealPlan)
	plans.Delete("/:id", c.MealPlanHandler.DeleteMealPlan)
}

func (c *Config) Admin() {
	admin := c.App.Group("/api/admin",
		c.Middleware.AuthMiddleware(c.JWTService),
		c.Middleware.AdminMiddleware(),
	)

	admin.Get("/recipes/pending", c.AdminHandler.GetPendingRecipes)
	admin.Post("/recipes/:id/approve", c.AdminHandler.ApproveRecipe)
	admin.Post("/recipes/:id/disable", c.AdminHandler.DisableRecipe)
	admin.Post("/recipes/:id/enable", c.AdminHandler.EnableRecipe)

	admin.Get("/reports", c.AdminHandler.GetOpenReports)
	admin.Post("/reports/:id/resolve", c.AdminHandler.ResolveReport)
	admin.Post("/comments/:id/hide", c.AdminHandler.HideComment)

	admin.Get("/users", c.AdminHandler.GetUsers)
	admin.Post("/users/:id/ban", c.AdminHandler.BanUser)
	admin.Post("/users/:id/warn", c.AdminHandler.WarnUser)

	admin.Get("/tags", c.AdminHandler.GetTags)
	admin.Post("/tags/merge", c.AdminHandler.MergeTags)

	admin.Get("/analytics/overview", c.AdminHandler.GetAnalyticsOverview)

	admin.Get("/settings", c.AdminHandler.GetSettings)
	admin.Put("/settings/:key", c.AdminHandler.UpsertSetting)
}
