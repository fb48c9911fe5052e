package app

import (
	"github.com/foodgramapp/foodgram-backend/internal/handlers"
	"github.com/foodgramapp/foodgram-backend/internal/logger"
)

type Handlers struct {
	Auth       *handlers.AuthHandler
	User       *handlers.UserHandler
	Tag        *handlers.TagHandler
	Ingredient *handlers.IngredientHandler
	Recipe     *handlers.RecipeHandler
}

func wireHandlers(log *logger.Logger, serviceset Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Auth:       handlers.NewAuthHandler(serviceset.Auth),
		User:       handlers.NewUserHandler(serviceset.User, serviceset.Relation, serviceset.Subscription),
		Tag:        handlers.NewTagHandler(serviceset.Tag),
		Ingredient: handlers.NewIngredientHandler(serviceset.Ingredient),
		Recipe:     handlers.NewRecipeHandler(serviceset.Recipe, serviceset.Relation, serviceset.ShoppingList),
	}
}
