package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/foodgramapp/foodgram-backend/internal/apierr"
	"github.com/foodgramapp/foodgram-backend/internal/logger"
	"github.com/foodgramapp/foodgram-backend/internal/repos"
	"github.com/foodgramapp/foodgram-backend/internal/requestdata"
	"github.com/foodgramapp/foodgram-backend/internal/types"
)

// RelationService drives the three relation registers. Adds run
// check-then-insert inside one transaction; the unique pair index settles
// any race between the check and the insert.
type RelationService interface {
	AddFavorite(ctx context.Context, recipeID uuid.UUID) (*types.RecipeShort, error)
	RemoveFavorite(ctx context.Context, recipeID uuid.UUID) error
	AddToCart(ctx context.Context, recipeID uuid.UUID) (*types.RecipeShort, error)
	RemoveFromCart(ctx context.Context, recipeID uuid.UUID) error
	FollowAuthor(ctx context.Context, authorID uuid.UUID) error
	UnfollowAuthor(ctx context.Context, authorID uuid.UUID) error
}

type relationService struct {
	db           *gorm.DB
	log          *logger.Logger
	recipeRepo   repos.RecipeRepo
	userRepo     repos.UserRepo
	favoriteRepo repos.FavoriteRepo
	cartRepo     repos.ShoppingCartRepo
	followRepo   repos.FollowRepo
}

func NewRelationService(
	db *gorm.DB,
	log *logger.Logger,
	recipeRepo repos.RecipeRepo,
	userRepo repos.UserRepo,
	favoriteRepo repos.FavoriteRepo,
	cartRepo repos.ShoppingCartRepo,
	followRepo repos.FollowRepo,
) RelationService {
	serviceLog := log.With("service", "RelationService")
	return &relationService{
		db:           db,
		log:          serviceLog,
		recipeRepo:   recipeRepo,
		userRepo:     userRepo,
		favoriteRepo: favoriteRepo,
		cartRepo:     cartRepo,
		followRepo:   followRepo,
	}
}

func (rs *relationService) loadRecipeForUser(ctx context.Context, recipeID uuid.UUID) (*types.Recipe, *requestdata.RequestData, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil {
		return nil, nil, apierr.Unauthorized("not authenticated")
	}
	recipe, err := rs.recipeRepo.GetByID(ctx, nil, recipeID)
	if err != nil {
		if isNotFound(err) {
			return nil, nil, apierr.NotFound("recipe not found")
		}
		return nil, nil, fmt.Errorf("load recipe: %w", err)
	}
	return recipe, rd, nil
}

func (rs *relationService) AddFavorite(ctx context.Context, recipeID uuid.UUID) (*types.RecipeShort, error) {
	recipe, rd, err := rs.loadRecipeForUser(ctx, recipeID)
	if err != nil {
		return nil, err
	}

	if err := rs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		exists, err := rs.favoriteRepo.Exists(ctx, tx, rd.UserID, recipeID)
		if err != nil {
			return fmt.Errorf("check favorite: %w", err)
		}
		if exists {
			return apierr.Conflict("recipe is already in favorites")
		}
		row := &types.Favorite{ID: uuid.New(), UserID: rd.UserID, RecipeID: recipeID}
		if err := rs.favoriteRepo.Create(ctx, tx, row); err != nil {
			if isUniqueViolation(err) {
				return apierr.Conflict("recipe is already in favorites")
			}
			return fmt.Errorf("create favorite: %w", err)
		}
		return nil
	}); err != nil {
		return nil, err
	}

	short := types.NewRecipeShort(recipe)
	return &short, nil
}

func (rs *relationService) RemoveFavorite(ctx context.Context, recipeID uuid.UUID) error {
	_, rd, err := rs.loadRecipeForUser(ctx, recipeID)
	if err != nil {
		return err
	}
	affected, err := rs.favoriteRepo.Delete(ctx, nil, rd.UserID, recipeID)
	if err != nil {
		return fmt.Errorf("delete favorite: %w", err)
	}
	if affected == 0 {
		return apierr.NotFound("recipe is not in favorites")
	}
	return nil
}

func (rs *relationService) AddToCart(ctx context.Context, recipeID uuid.UUID) (*types.RecipeShort, error) {
	recipe, rd, err := rs.loadRecipeForUser(ctx, recipeID)
	if err != nil {
		return nil, err
	}

	if err := rs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		exists, err := rs.cartRepo.Exists(ctx, tx, rd.UserID, recipeID)
		if err != nil {
			return fmt.Errorf("check shopping cart: %w", err)
		}
		if exists {
			return apierr.Conflict("recipe is already in the shopping cart")
		}
		row := &types.ShoppingCart{ID: uuid.New(), UserID: rd.UserID, RecipeID: recipeID}
		if err := rs.cartRepo.Create(ctx, tx, row); err != nil {
			if isUniqueViolation(err) {
				return apierr.Conflict("recipe is already in the shopping cart")
			}
			return fmt.Errorf("create shopping cart row: %w", err)
		}
		return nil
	}); err != nil {
		return nil, err
	}

	short := types.NewRecipeShort(recipe)
	return &short, nil
}

func (rs *relationService) RemoveFromCart(ctx context.Context, recipeID uuid.UUID) error {
	_, rd, err := rs.loadRecipeForUser(ctx, recipeID)
	if err != nil {
		return err
	}
	affected, err := rs.cartRepo.Delete(ctx, nil, rd.UserID, recipeID)
	if err != nil {
		return fmt.Errorf("delete shopping cart row: %w", err)
	}
	if affected == 0 {
		return apierr.NotFound("recipe is not in the shopping cart")
	}
	return nil
}

func (rs *relationService) FollowAuthor(ctx context.Context, authorID uuid.UUID) error {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil {
		return apierr.Unauthorized("not authenticated")
	}
	if rd.UserID == authorID {
		return apierr.Validation("author", "you cannot follow yourself")
	}
	if _, err := rs.userRepo.GetByID(ctx, nil, authorID); err != nil {
		if isNotFound(err) {
			return apierr.NotFound("user not found")
		}
		return fmt.Errorf("load author: %w", err)
	}

	return rs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		exists, err := rs.followRepo.Exists(ctx, tx, rd.UserID, authorID)
		if err != nil {
			return fmt.Errorf("check follow: %w", err)
		}
		if exists {
			return apierr.Conflict("you are already following this author")
		}
		row := &types.Follow{ID: uuid.New(), UserID: rd.UserID, AuthorID: authorID}
		if err := rs.followRepo.Create(ctx, tx, row); err != nil {
			if isUniqueViolation(err) {
				return apierr.Conflict("you are already following this author")
			}
			return fmt.Errorf("create follow: %w", err)
		}
		return nil
	})
}

func (rs *relationService) UnfollowAuthor(ctx context.Context, authorID uuid.UUID) error {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil {
		return apierr.Unauthorized("not authenticated")
	}
	if _, err := rs.userRepo.GetByID(ctx, nil, authorID); err != nil {
		if isNotFound(err) {
			return apierr.NotFound("user not found")
		}
		return fmt.Errorf("load author: %w", err)
	}
	affected, err := rs.followRepo.Delete(ctx, nil, rd.UserID, authorID)
	if err != nil {
		return fmt.Errorf("delete follow: %w", err)
	}
	if affected == 0 {
		return apierr.NotFound("you are not following this author")
	}
	return nil
}
