package app

import (
	"gorm.io/gorm"

	"github.com/foodgramapp/foodgram-backend/internal/logger"
	"github.com/foodgramapp/foodgram-backend/internal/repos"
)

type Repos struct {
	User           repos.UserRepo
	UserToken      repos.UserTokenRepo
	Tag            repos.TagRepo
	Ingredient     repos.IngredientRepo
	Recipe         repos.RecipeRepo
	IngredientLine repos.IngredientLineRepo
	Favorite       repos.FavoriteRepo
	ShoppingCart   repos.ShoppingCartRepo
	Follow         repos.FollowRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		User:           repos.NewUserRepo(db, log),
		UserToken:      repos.NewUserTokenRepo(db, log),
		Tag:            repos.NewTagRepo(db, log),
		Ingredient:     repos.NewIngredientRepo(db, log),
		Recipe:         repos.NewRecipeRepo(db, log),
		IngredientLine: repos.NewIngredientLineRepo(db, log),
		Favorite:       repos.NewFavoriteRepo(db, log),
		ShoppingCart:   repos.NewShoppingCartRepo(db, log),
		Follow:         repos.NewFollowRepo(db, log),
	}
}
