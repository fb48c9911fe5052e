package services

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/foodgramapp/foodgram-backend/internal/logger"
	"github.com/foodgramapp/foodgram-backend/internal/repos"
	"github.com/foodgramapp/foodgram-backend/internal/requestdata"
	"github.com/foodgramapp/foodgram-backend/internal/types"
)

type testEnv struct {
	db *gorm.DB

	userRepo     repos.UserRepo
	tagRepo      repos.TagRepo
	ingRepo      repos.IngredientRepo
	recipeRepo   repos.RecipeRepo
	lineRepo     repos.IngredientLineRepo
	favoriteRepo repos.FavoriteRepo
	cartRepo     repos.ShoppingCartRepo
	followRepo   repos.FollowRepo

	recipes       RecipeService
	relations     RelationService
	shoppingList  ShoppingListService
	subscriptions SubscriptionService
}

func newTestLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	t.Cleanup(log.Sync)
	return log
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.AutoMigrate(
		&types.User{},
		&types.UserToken{},
		&types.Ingredient{},
		&types.Tag{},
		&types.Recipe{},
		&types.IngredientLine{},
		&types.Favorite{},
		&types.ShoppingCart{},
		&types.Follow{},
	); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := newTestDB(t)
	log := newTestLogger(t)

	env := &testEnv{
		db:           db,
		userRepo:     repos.NewUserRepo(db, log),
		tagRepo:      repos.NewTagRepo(db, log),
		ingRepo:      repos.NewIngredientRepo(db, log),
		recipeRepo:   repos.NewRecipeRepo(db, log),
		lineRepo:     repos.NewIngredientLineRepo(db, log),
		favoriteRepo: repos.NewFavoriteRepo(db, log),
		cartRepo:     repos.NewShoppingCartRepo(db, log),
		followRepo:   repos.NewFollowRepo(db, log),
	}
	env.recipes = NewRecipeService(
		db, log,
		env.recipeRepo, env.lineRepo, env.tagRepo, env.ingRepo,
		env.favoriteRepo, env.cartRepo, env.followRepo,
	)
	env.relations = NewRelationService(
		db, log, env.recipeRepo, env.userRepo, env.favoriteRepo, env.cartRepo, env.followRepo,
	)
	env.shoppingList = NewShoppingListService(db, log, env.lineRepo)
	env.subscriptions = NewSubscriptionService(db, log, env.userRepo, env.recipeRepo, env.followRepo)
	return env
}

func (env *testEnv) seedUser(t *testing.T, username string) *types.User {
	t.Helper()
	user := &types.User{
		ID:        uuid.New(),
		Email:     username + "@example.com",
		Username:  username,
		FirstName: "Test",
		LastName:  "User",
		Password:  "pw",
	}
	if err := env.db.Create(user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

func (env *testEnv) seedTag(t *testing.T, name string) *types.Tag {
	t.Helper()
	id := uuid.New()
	tag := &types.Tag{
		ID:    id,
		Name:  name,
		Color: "#" + strings.ToUpper(id.String()[:6]),
		Slug:  name,
	}
	if err := env.db.Create(tag).Error; err != nil {
		t.Fatalf("seed tag: %v", err)
	}
	return tag
}

func (env *testEnv) seedIngredient(t *testing.T, name, unit string) *types.Ingredient {
	t.Helper()
	ing := &types.Ingredient{
		ID:              uuid.New(),
		Name:            name,
		MeasurementUnit: unit,
	}
	if err := env.db.Create(ing).Error; err != nil {
		t.Fatalf("seed ingredient: %v", err)
	}
	return ing
}

func (env *testEnv) seedRecipe(t *testing.T, author *types.User, name string, createdAt time.Time) *types.Recipe {
	t.Helper()
	recipe := &types.Recipe{
		ID:          uuid.New(),
		AuthorID:    author.ID,
		Name:        name,
		Text:        "some text",
		CookingTime: 10,
		CreatedAt:   createdAt,
	}
	if err := env.db.Create(recipe).Error; err != nil {
		t.Fatalf("seed recipe: %v", err)
	}
	return recipe
}

func ctxFor(user *types.User) context.Context {
	return requestdata.WithRequestData(context.Background(), &requestdata.RequestData{
		TokenString: "test-token",
		UserID:      user.ID,
	})
}
