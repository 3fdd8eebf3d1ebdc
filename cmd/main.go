package main

import (
	"Recipe-Website/cmd/config"
	migration "Recipe-Website/cmd/database/migrate"
	"Recipe-Website/cmd/database/seed"
	"Recipe-Website/internal/utils"
	"Recipe-Website/pkg/jwt"
	"Recipe-Website/pkg/recipe"
	"Recipe-Website/pkg/user"
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2/log"
)

func main() {
	migrate := flag.Bool("migrate", false, "run database migrations and exit")
	rollback := flag.Bool("rollback", false, "roll back the last migration and exit")
	seedData := flag.Bool("seed", false, "seed the administrator and sample recipes and exit")
	flag.Parse()

	utils.LoadConfig()

	db, err := config.ConnectDB()
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	switch {
	case *rollback:
		if err := migration.RollbackLast(db); err != nil {
			log.Fatalf("rollback failed: %v", err)
		}
		return
	case *migrate:
		if err := migration.Migrate(db); err != nil {
			log.Fatalf("migration failed: %v", err)
		}
		return
	case *seedData:
		if err := migration.Migrate(db); err != nil {
			log.Fatalf("migration failed: %v", err)
		}
		jwtService, err := jwt.NewJWTService()
		if err != nil {
			log.Fatalf("invalid jwt configuration: %v", err)
		}
		userService := user.NewUserService(user.NewUserRepository(db), jwtService)
		if err := seed.Seed(
			context.Background(),
			userService,
			recipe.NewRecipeRepository(db),
			utils.GetConfig("ADMIN_EMAIL"),
			utils.GetConfig("ADMIN_PASSWORD"),
		); err != nil {
			log.Fatalf("seed failed: %v", err)
		}
		return
	}

	app, err := config.NewApp(db)
	if err != nil {
		log.Fatalf("failed to create app: %v", err)
	}

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		log.Info("shutting down")
		if err := app.Shutdown(); err != nil {
			log.Errorf("shutdown failed: %v", err)
		}
	}()

	if err := app.Listen(":" + utils.GetConfig("APP_PORT")); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
