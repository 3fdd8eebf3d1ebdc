package config

import (
	"Recipe-Website/internal/api/handlers"
	"Recipe-Website/internal/api/presenters"
	"Recipe-Website/internal/api/routes"
	"Recipe-Website/internal/middleware"
	"Recipe-Website/internal/utils"
	"Recipe-Website/internal/utils/mailing"
	"Recipe-Website/internal/utils/storage"
	"Recipe-Website/pkg/jwt"
	"Recipe-Website/pkg/mealplan"
	"Recipe-Website/pkg/moderation"
	"Recipe-Website/pkg/recipe"
	"Recipe-Website/pkg/setting"
	"Recipe-Website/pkg/user"
	"io"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"gorm.io/gorm"
)

// AppOptions replaces external collaborators. Zero fields fall back to the
// configured implementations.
type AppOptions struct {
	LogOutput  io.Writer
	JWTService jwt.JWTService
	Storage    storage.AwsS3
	Mailer     mailing.Mailer
}

func NewApp(db *gorm.DB) (*fiber.App, error) {
	err := os.MkdirAll("./logs", os.ModePerm)
	if err != nil {
		log.Fatalf("error creating logs directory: %v", err)
	}
	file, err := os.OpenFile(
		"./logs/app.log",
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0666,
	)
	if err != nil {
		log.Fatalf("error opening file: %v", err)
	}

	return NewAppWithOptions(db, AppOptions{LogOutput: io.MultiWriter(os.Stdout, file)})
}

func NewAppWithOptions(db *gorm.DB, opts AppOptions) (*fiber.App, error) {
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		AppName:      "Recipe Website",
		ErrorHandler: presenters.ErrorHandler,
	})
	validator := utils.Validate

	app.Use(recover.New())
	if opts.LogOutput != nil {
		app.Use(logger.New(logger.Config{
			TimeFormat: "2006-01-02 15:04:05",
			TimeZone:   "Local",
			Output:     opts.LogOutput,
		}))
	}

	// utils
	if opts.Storage == nil {
		opts.Storage = storage.NewAwsS3()
	}
	if opts.Mailer == nil {
		opts.Mailer = mailing.NewMailer(mailing.LoadMailConfig())
	}
	if opts.JWTService == nil {
		jwtService, err := jwt.NewJWTService()
		if err != nil {
			return nil, err
		}
		opts.JWTService = jwtService
	}
	sessions := middleware.NewSessionStore()
	middlewares := middleware.NewMiddleware(sessions)

	// Repository
	userRepository := user.NewUserRepository(db)
	recipeRepository := recipe.NewRecipeRepository(db)
	moderationRepository := moderation.NewModerationRepository(db)
	mealPlanRepository := mealplan.NewMealPlanRepository(db)
	settingRepository := setting.NewSettingRepository(db)

	// Service
	userService := user.NewUserService(userRepository, opts.JWTService)
	recipeService := recipe.NewRecipeService(recipeRepository, opts.Storage)
	moderationService := moderation.NewModerationService(
		moderationRepository,
		userRepository,
		opts.Mailer,
		utils.GetConfig("APP_URL"),
	)
	mealPlanService := mealplan.NewMealPlanService(mealPlanRepository)
	settingService := setting.NewSettingService(settingRepository)

	// Handler
	userHandler := handlers.NewUserHandler(userService, validator)
	accountHandler := handlers.NewAccountHandler(userService, validator, sessions)
	recipeHandler := handlers.NewRecipeHandler(recipeService, validator)
	adminHandler := handlers.NewAdminHandler(moderationService, settingService, validator)
	mealPlanHandler := handlers.NewMealPlanHandler(mealPlanService, validator)

	// routes
	routesConfig := routes.Config{
		App:             app,
		UserHandler:     userHandler,
		AccountHandler:  accountHandler,
		RecipeHandler:   recipeHandler,
		AdminHandler:    adminHandler,
		MealPlanHandler: mealPlanHandler,
		Middleware:      middlewares,
		JWTService:      opts.JWTService,
	}
	routesConfig.Setup()
	return app, nil
}
