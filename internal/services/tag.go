package services

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/foodgramapp/foodgram-backend/internal/apierr"
	"github.com/foodgramapp/foodgram-backend/internal/logger"
	"github.com/foodgramapp/foodgram-backend/internal/repos"
	"github.com/foodgramapp/foodgram-backend/internal/types"
)

// hexColorRe accepts #RGB and #RRGGBB.
var hexColorRe = regexp.MustCompile(`^#(?:[A-Fa-f0-9]{3}|[A-Fa-f0-9]{6})$`)

type TagService interface {
	Create(ctx context.Context, tag *types.Tag) (*types.Tag, error)
	GetByID(ctx context.Context, tagID uuid.UUID) (*types.Tag, error)
	List(ctx context.Context) ([]*types.Tag, error)
}

type tagService struct {
	db      *gorm.DB
	log     *logger.Logger
	tagRepo repos.TagRepo
}

func NewTagService(db *gorm.DB, log *logger.Logger, tagRepo repos.TagRepo) TagService {
	serviceLog := log.With("service", "TagService")
	return &tagService{db: db, log: serviceLog, tagRepo: tagRepo}
}

func (ts *tagService) Create(ctx context.Context, tag *types.Tag) (*types.Tag, error) {
	tag.Name = strings.TrimSpace(tag.Name)
	tag.Color = strings.TrimSpace(tag.Color)
	tag.Slug = strings.TrimSpace(tag.Slug)

	if tag.Name == "" {
		return nil, apierr.Validation("name", "name is required")
	}
	if !hexColorRe.MatchString(tag.Color) {
		return nil, apierr.Validation("color", "color must be a 3- or 6-digit hex value")
	}
	if tag.Slug == "" {
		return nil, apierr.Validation("slug", "slug is required")
	}

	tag.ID = uuid.New()
	if err := ts.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		taken, err := ts.tagRepo.ExistsByAnyOf(ctx, tx, tag.Name, tag.Color, tag.Slug)
		if err != nil {
			return fmt.Errorf("check tag uniqueness: %w", err)
		}
		if taken {
			return apierr.Conflict("a tag with this name, color or slug already exists")
		}
		if _, err := ts.tagRepo.Create(ctx, tx, tag); err != nil {
			if isUniqueViolation(err) {
				return apierr.Conflict("a tag with this name, color or slug already exists")
			}
			return fmt.Errorf("create tag: %w", err)
		}
		return nil
	}); err != nil {
		return nil, err
	}
	return tag, nil
}

func (ts *tagService) GetByID(ctx context.Context, tagID uuid.UUID) (*types.Tag, error) {
	tag, err := ts.tagRepo.GetByID(ctx, nil, tagID)
	if err != nil {
		if isNotFound(err) {
			return nil, apierr.NotFound("tag not found")
		}
		return nil, fmt.Errorf("load tag: %w", err)
	}
	return tag, nil
}

func (ts *tagService) List(ctx context.Context) ([]*types.Tag, error) {
	tags, err := ts.tagRepo.List(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	return tags, nil
}
