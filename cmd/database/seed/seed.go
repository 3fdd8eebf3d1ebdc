package seed

import (
	"Recipe-Website/entities"
	"Recipe-Website/pkg/recipe"
	"Recipe-Website/pkg/user"
	"context"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
)

var defaultTags = []string{"Breakfast", "Quick", "Dinner", "Pasta", "Healthy", "Brunch"}

type sampleRecipe struct {
	title       string
	description string
	summary     string
	tags        []string
	ingredients [][3]string
	steps       []string
}

var sampleRecipes = []sampleRecipe{
	{
		title:       "Seeded Pancakes",
		description: "Fluffy pancakes with a crunchy mix of seeds.",
		summary:     "Whisk the batter, fold in the seeds and cook on a hot griddle.",
		tags:        []string{"Breakfast", "Quick"},
		ingredients: [][3]string{
			{"Flour", "200", "g"},
			{"Milk", "300", "ml"},
			{"Eggs", "2", ""},
			{"Mixed seeds", "3", "tbsp"},
		},
		steps: []string{
			"Whisk flour, milk and eggs into a smooth batter.",
			"Fold in the seeds and rest the batter for 10 minutes.",
			"Cook ladlefuls on a hot greased pan until golden on both sides.",
		},
	},
	{
		title:       "Creamy Chicken Alfredo Pasta",
		description: "Weeknight fettuccine in a rich parmesan cream sauce.",
		summary:     "Sear the chicken, build the sauce and toss with the pasta.",
		tags:        []string{"Dinner", "Pasta"},
		ingredients: [][3]string{
			{"Fettuccine", "250", "g"},
			{"Chicken breast", "2", ""},
			{"Heavy cream", "200", "ml"},
			{"Parmesan", "60", "g"},
			{"Garlic", "2", "cloves"},
		},
		steps: []string{
			"Cook the pasta in salted water until al dente.",
			"Sear the sliced chicken until cooked through.",
			"Simmer garlic and cream, then melt in the parmesan.",
			"Toss pasta and chicken with the sauce and serve.",
		},
	},
	{
		title:       "Avocado Toast with Eggs",
		description: "Crisp sourdough topped with smashed avocado and eggs.",
		summary:     "Toast the bread, smash the avocado and top with eggs.",
		tags:        []string{"Breakfast", "Healthy", "Brunch"},
		ingredients: [][3]string{
			{"Sourdough", "2", "slices"},
			{"Avocado", "1", ""},
			{"Eggs", "2", ""},
			{"Chili flakes", "", ""},
		},
		steps: []string{
			"Toast the sourdough.",
			"Smash the avocado with salt and lemon.",
			"Fry or poach the eggs and place on top.",
		},
	},
}

func optional(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}

// Seed creates the administrator, default tags and sample recipes. Running it
// again leaves existing rows untouched.
func Seed(ctx context.Context, userService user.UserService, recipeRepository recipe.RecipeRepository, adminEmail, adminPassword string) error {
	admin, err := userService.EnsureAdmin(ctx, adminEmail, adminPassword)
	if err != nil {
		return err
	}

	if err := recipeRepository.EnsureTags(ctx, defaultTags); err != nil {
		return err
	}

	for _, sample := range sampleRecipes {
		exists, err := recipeRepository.ExistsByTitle(ctx, sample.title)
		if err != nil {
			return err
		}
		if exists {
			continue
		}

		r := &entities.Recipe{
			ID:                  uuid.New(),
			Title:               sample.title,
			ShortDescription:    sample.description,
			InstructionsSummary: sample.summary,
			Status:              entities.RecipeStatusLive,
			CreatedByUserID:     admin.ID,
		}
		for _, in := range sample.ingredients {
			r.Ingredients = append(r.Ingredients, &entities.RecipeIngredient{
				Name:     in[0],
				Quantity: optional(in[1]),
				Unit:     optional(in[2]),
			})
		}
		for i, description := range sample.steps {
			r.Steps = append(r.Steps, &entities.RecipeStep{StepNumber: i + 1, Description: description})
		}

		if err := recipeRepository.CreateRecipe(ctx, r, sample.tags); err != nil {
			return err
		}
		log.Infof("seeded recipe %q", sample.title)
	}
	return nil
}
