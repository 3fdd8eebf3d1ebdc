package entities

// All returns every persisted model in dependency order.
func All() []any {
	return []any{
		&User{},
		&Tag{},
		&Recipe{},
		&RecipeIngredient{},
		&RecipeStep{},
		&RecipeTag{},
		&Favorite{},
		&Comment{},
		&Report{},
		&MealPlan{},
		&MealPlanItem{},
		&Setting{},
	}
}
