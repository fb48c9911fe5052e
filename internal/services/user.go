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

type UserService interface {
	GetMe(ctx context.Context) (*types.UserView, error)
	GetByID(ctx context.Context, userID uuid.UUID) (*types.UserView, error)
	List(ctx context.Context, limit, offset int) ([]types.UserView, error)
}

type userService struct {
	db         *gorm.DB
	log        *logger.Logger
	userRepo   repos.UserRepo
	followRepo repos.FollowRepo
}

func NewUserService(db *gorm.DB, log *logger.Logger, userRepo repos.UserRepo, followRepo repos.FollowRepo) UserService {
	serviceLog := log.With("service", "UserService")
	return &userService{db: db, log: serviceLog, userRepo: userRepo, followRepo: followRepo}
}

func (us *userService) GetMe(ctx context.Context) (*types.UserView, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil {
		return nil, apierr.Unauthorized("not authenticated")
	}
	user, err := us.userRepo.GetByID(ctx, nil, rd.UserID)
	if err != nil {
		if isNotFound(err) {
			return nil, apierr.NotFound("user not found")
		}
		return nil, fmt.Errorf("load user: %w", err)
	}
	view := types.NewUserView(user, false)
	return &view, nil
}

// GetByID projects the user with is_subscribed relative to the viewer, if
// any.
func (us *userService) GetByID(ctx context.Context, userID uuid.UUID) (*types.UserView, error) {
	user, err := us.userRepo.GetByID(ctx, nil, userID)
	if err != nil {
		if isNotFound(err) {
			return nil, apierr.NotFound("user not found")
		}
		return nil, fmt.Errorf("load user: %w", err)
	}

	isSubscribed := false
	if rd := requestdata.GetRequestData(ctx); rd != nil {
		isSubscribed, err = us.followRepo.Exists(ctx, nil, rd.UserID, user.ID)
		if err != nil {
			return nil, fmt.Errorf("check subscription: %w", err)
		}
	}
	view := types.NewUserView(user, isSubscribed)
	return &view, nil
}

func (us *userService) List(ctx context.Context, limit, offset int) ([]types.UserView, error) {
	users, err := us.userRepo.List(ctx, nil, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	rd := requestdata.GetRequestData(ctx)
	views := make([]types.UserView, 0, len(users))
	for _, user := range users {
		isSubscribed := false
		if rd != nil {
			isSubscribed, err = us.followRepo.Exists(ctx, nil, rd.UserID, user.ID)
			if err != nil {
				return nil, fmt.Errorf("check subscription: %w", err)
			}
		}
		views = append(views, types.NewUserView(user, isSubscribed))
	}
	return views, nil
}
