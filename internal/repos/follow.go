package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/foodgramapp/foodgram-backend/internal/logger"
	"github.com/foodgramapp/foodgram-backend/internal/types"
)

type FollowRepo interface {
	Exists(ctx context.Context, tx *gorm.DB, userID, authorID uuid.UUID) (bool, error)
	Create(ctx context.Context, tx *gorm.DB, row *types.Follow) error
	Delete(ctx context.Context, tx *gorm.DB, userID, authorID uuid.UUID) (int64, error)
	ListFollowedAuthors(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.User, error)
}

type followRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewFollowRepo(db *gorm.DB, baseLog *logger.Logger) FollowRepo {
	repoLog := baseLog.With("repo", "FollowRepo")
	return &followRepo{db: db, log: repoLog}
}

func (fr *followRepo) Exists(ctx context.Context, tx *gorm.DB, userID, authorID uuid.UUID) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = fr.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.Follow{}).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (fr *followRepo) Create(ctx context.Context, tx *gorm.DB, row *types.Follow) error {
	transaction := tx
	if transaction == nil {
		transaction = fr.db
	}

	return transaction.WithContext(ctx).Create(row).Error
}

func (fr *followRepo) Delete(ctx context.Context, tx *gorm.DB, userID, authorID uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = fr.db
	}

	result := transaction.WithContext(ctx).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Delete(&types.Follow{})
	return result.RowsAffected, result.Error
}

// ListFollowedAuthors returns the authors the user follows, username
// ascending.
func (fr *followRepo) ListFollowedAuthors(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.User, error) {
	transaction := tx
	if transaction == nil {
		transaction = fr.db
	}

	var results []*types.User
	if err := transaction.WithContext(ctx).
		Model(&types.User{}).
		Joins(`JOIN follow ON follow.author_id = "user".id`).
		Where("follow.user_id = ?", userID).
		Order(`"user".username ASC`).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
