package services

import (
	"context"
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/foodgramapp/foodgram-backend/internal/apierr"
	"github.com/foodgramapp/foodgram-backend/internal/logger"
	"github.com/foodgramapp/foodgram-backend/internal/repos"
	"github.com/foodgramapp/foodgram-backend/internal/requestdata"
	"github.com/foodgramapp/foodgram-backend/internal/types"
)

type SubscriptionService interface {
	Subscriptions(ctx context.Context, recipesLimit string) ([]types.FollowView, error)
	RecipesOf(ctx context.Context, authorID uuid.UUID, limit string) ([]types.RecipeShort, error)
	FollowViewOf(ctx context.Context, authorID uuid.UUID, recipesLimit string) (*types.FollowView, error)
}

type subscriptionService struct {
	db         *gorm.DB
	log        *logger.Logger
	userRepo   repos.UserRepo
	recipeRepo repos.RecipeRepo
	followRepo repos.FollowRepo
}

func NewSubscriptionService(db *gorm.DB, log *logger.Logger, userRepo repos.UserRepo, recipeRepo repos.RecipeRepo, followRepo repos.FollowRepo) SubscriptionService {
	serviceLog := log.With("service", "SubscriptionService")
	return &subscriptionService{
		db:         db,
		log:        serviceLog,
		userRepo:   userRepo,
		recipeRepo: recipeRepo,
		followRepo: followRepo,
	}
}

// parseRecipesLimit tolerates junk: anything that does not parse as a
// positive integer means "no truncation".
func parseRecipesLimit(limit string) int {
	n, err := strconv.Atoi(limit)
	if err != nil || n < 1 {
		return 0
	}
	return n
}

// RecipesOf returns the author's recipes newest-first, truncated to limit
// after ordering.
func (ss *subscriptionService) RecipesOf(ctx context.Context, authorID uuid.UUID, limit string) ([]types.RecipeShort, error) {
	if _, err := ss.userRepo.GetByID(ctx, nil, authorID); err != nil {
		if isNotFound(err) {
			return nil, apierr.NotFound("user not found")
		}
		return nil, fmt.Errorf("load author: %w", err)
	}
	recipes, err := ss.recipeRepo.ListByAuthor(ctx, nil, authorID, parseRecipesLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("list author recipes: %w", err)
	}
	shorts := make([]types.RecipeShort, 0, len(recipes))
	for _, r := range recipes {
		shorts = append(shorts, types.NewRecipeShort(r))
	}
	return shorts, nil
}

func (ss *subscriptionService) FollowViewOf(ctx context.Context, authorID uuid.UUID, recipesLimit string) (*types.FollowView, error) {
	author, err := ss.userRepo.GetByID(ctx, nil, authorID)
	if err != nil {
		if isNotFound(err) {
			return nil, apierr.NotFound("user not found")
		}
		return nil, fmt.Errorf("load author: %w", err)
	}
	return ss.buildFollowView(ctx, author, recipesLimit)
}

// Subscriptions projects every followed author with their recipes and
// recipe count.
func (ss *subscriptionService) Subscriptions(ctx context.Context, recipesLimit string) ([]types.FollowView, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil {
		return nil, apierr.Unauthorized("not authenticated")
	}
	authors, err := ss.followRepo.ListFollowedAuthors(ctx, nil, rd.UserID)
	if err != nil {
		return nil, fmt.Errorf("list followed authors: %w", err)
	}

	views := make([]types.FollowView, 0, len(authors))
	for _, author := range authors {
		view, err := ss.buildFollowView(ctx, author, recipesLimit)
		if err != nil {
			return nil, err
		}
		views = append(views, *view)
	}
	return views, nil
}

func (ss *subscriptionService) buildFollowView(ctx context.Context, author *types.User, recipesLimit string) (*types.FollowView, error) {
	isSubscribed := false
	if rd := requestdata.GetRequestData(ctx); rd != nil {
		var err error
		isSubscribed, err = ss.followRepo.Exists(ctx, nil, rd.UserID, author.ID)
		if err != nil {
			return nil, fmt.Errorf("check subscription: %w", err)
		}
	}
	recipes, err := ss.recipeRepo.ListByAuthor(ctx, nil, author.ID, parseRecipesLimit(recipesLimit))
	if err != nil {
		return nil, fmt.Errorf("list author recipes: %w", err)
	}
	count, err := ss.recipeRepo.CountByAuthor(ctx, nil, author.ID)
	if err != nil {
		return nil, fmt.Errorf("count author recipes: %w", err)
	}
	view := types.NewFollowView(types.NewUserView(author, isSubscribed), recipes, count)
	return &view, nil
}
