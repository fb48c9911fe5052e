package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/foodgramapp/foodgram-backend/internal/handlers"
	"github.com/foodgramapp/foodgram-backend/internal/middleware"
)

type RouterConfig struct {
	AuthHandler       *handlers.AuthHandler
	AuthMiddleware    *middleware.AuthMiddleware
	UserHandler       *handlers.UserHandler
	TagHandler        *handlers.TagHandler
	IngredientHandler *handlers.IngredientHandler
	RecipeHandler     *handlers.RecipeHandler
	AllowOrigins      []string
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Authorization", "Content-Type", "X-Requested-With"}
	router.Use(cors.New(corsConfig))

	router.GET("/healthcheck", handlers.HealthCheck)

	api := router.Group("/api")

	// Public, with optional identity for viewer-dependent projections.
	public := api.Group("/")
	public.Use(cfg.AuthMiddleware.OptionalAuth())
	{
		public.POST("/auth/register", cfg.AuthHandler.Register)
		public.POST("/auth/login", cfg.AuthHandler.Login)

		public.GET("/tags", cfg.TagHandler.List)
		public.GET("/tags/:id", cfg.TagHandler.GetByID)
		public.GET("/ingredients", cfg.IngredientHandler.List)
		public.GET("/ingredients/:id", cfg.IngredientHandler.GetByID)
		public.GET("/recipes", cfg.RecipeHandler.List)
		public.GET("/recipes/:id", cfg.RecipeHandler.GetByID)
		public.GET("/users", cfg.UserHandler.List)
		public.GET("/users/:id", cfg.UserHandler.GetByID)
	}

	protected := api.Group("/")
	protected.Use(cfg.AuthMiddleware.RequireAuth())
	{
		protected.POST("/auth/logout", cfg.AuthHandler.Logout)
		protected.GET("/users/me", cfg.UserHandler.GetMe)

		protected.POST("/tags", cfg.TagHandler.Create)
		protected.POST("/ingredients", cfg.IngredientHandler.Create)

		protected.POST("/recipes", cfg.RecipeHandler.Create)
		protected.PATCH("/recipes/:id", cfg.RecipeHandler.Update)
		protected.DELETE("/recipes/:id", cfg.RecipeHandler.Delete)

		protected.POST("/recipes/:id/favorite", cfg.RecipeHandler.AddFavorite)
		protected.DELETE("/recipes/:id/favorite", cfg.RecipeHandler.RemoveFavorite)
		protected.POST("/recipes/:id/shopping_cart", cfg.RecipeHandler.AddToCart)
		protected.DELETE("/recipes/:id/shopping_cart", cfg.RecipeHandler.RemoveFromCart)
		protected.GET("/recipes/download_shopping_cart", cfg.RecipeHandler.DownloadShoppingCart)

		protected.POST("/users/:id/subscribe", cfg.UserHandler.Subscribe)
		protected.DELETE("/users/:id/subscribe", cfg.UserHandler.Unsubscribe)
		protected.GET("/users/subscriptions", cfg.UserHandler.Subscriptions)
	}

	return router
}
