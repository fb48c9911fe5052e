package app

import (
	"gorm.io/gorm"

	"github.com/foodgramapp/foodgram-backend/internal/cache"
	"github.com/foodgramapp/foodgram-backend/internal/logger"
	"github.com/foodgramapp/foodgram-backend/internal/services"
)

type Services struct {
	Auth         services.AuthService
	User         services.UserService
	Tag          services.TagService
	Ingredient   services.IngredientService
	Recipe       services.RecipeService
	Relation     services.RelationService
	ShoppingList services.ShoppingListService
	Subscription services.SubscriptionService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, reposet Repos, catalogCache *cache.Cache) Services {
	log.Info("Wiring services...")
	return Services{
		Auth: services.NewAuthService(
			db, log, reposet.User, reposet.UserToken, cfg.JWTSecretKey, cfg.AccessTokenTTL,
		),
		User:       services.NewUserService(db, log, reposet.User, reposet.Follow),
		Tag:        services.NewTagService(db, log, reposet.Tag),
		Ingredient: services.NewIngredientService(db, log, reposet.Ingredient, catalogCache),
		Recipe: services.NewRecipeService(
			db, log,
			reposet.Recipe, reposet.IngredientLine, reposet.Tag, reposet.Ingredient,
			reposet.Favorite, reposet.ShoppingCart, reposet.Follow,
		),
		Relation: services.NewRelationService(
			db, log, reposet.Recipe, reposet.User, reposet.Favorite, reposet.ShoppingCart, reposet.Follow,
		),
		ShoppingList: services.NewShoppingListService(db, log, reposet.IngredientLine),
		Subscription: services.NewSubscriptionService(db, log, reposet.User, reposet.Recipe, reposet.Follow),
	}
}
