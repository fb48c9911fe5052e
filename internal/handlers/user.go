package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/foodgramapp/foodgram-backend/internal/apierr"
	"github.com/foodgramapp/foodgram-backend/internal/services"
)

type UserHandler struct {
	userService         services.UserService
	relationService     services.RelationService
	subscriptionService services.SubscriptionService
}

func NewUserHandler(userService services.UserService, relationService services.RelationService, subscriptionService services.SubscriptionService) *UserHandler {
	return &UserHandler{
		userService:         userService,
		relationService:     relationService,
		subscriptionService: subscriptionService,
	}
}

func (uh *UserHandler) GetMe(c *gin.Context) {
	me, err := uh.userService.GetMe(c.Request.Context())
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, me)
}

func (uh *UserHandler) GetByID(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, apierr.Validation("id", "invalid user id"))
		return
	}
	user, err := uh.userService.GetByID(c.Request.Context(), userID)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, user)
}

func (uh *UserHandler) List(c *gin.Context) {
	limit, offset := parsePagination(c)
	users, err := uh.userService.List(c.Request.Context(), limit, offset)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, users)
}

func (uh *UserHandler) Subscribe(c *gin.Context) {
	authorID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, apierr.Validation("id", "invalid user id"))
		return
	}
	if err := uh.relationService.FollowAuthor(c.Request.Context(), authorID); err != nil {
		RespondError(c, err)
		return
	}
	view, err := uh.subscriptionService.FollowViewOf(c.Request.Context(), authorID, c.Query("recipes_limit"))
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondCreated(c, view)
}

func (uh *UserHandler) Unsubscribe(c *gin.Context) {
	authorID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, apierr.Validation("id", "invalid user id"))
		return
	}
	if err := uh.relationService.UnfollowAuthor(c.Request.Context(), authorID); err != nil {
		RespondError(c, err)
		return
	}
	RespondNoContent(c)
}

func (uh *UserHandler) Subscriptions(c *gin.Context) {
	views, err := uh.subscriptionService.Subscriptions(c.Request.Context(), c.Query("recipes_limit"))
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, views)
}
