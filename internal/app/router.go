package app

import (
	"github.com/gin-gonic/gin"

	"github.com/foodgramapp/foodgram-backend/internal/server"
)

func wireRouter(cfg Config, handlerset Handlers, middlewareset Middleware) *gin.Engine {
	return server.NewRouter(server.RouterConfig{
		AuthHandler:       handlerset.Auth,
		AuthMiddleware:    middlewareset.Auth,
		UserHandler:       handlerset.User,
		TagHandler:        handlerset.Tag,
		IngredientHandler: handlerset.Ingredient,
		RecipeHandler:     handlerset.Recipe,
		AllowOrigins:      cfg.AllowOrigins,
	})
}
