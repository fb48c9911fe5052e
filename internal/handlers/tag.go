package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/foodgramapp/foodgram-backend/internal/apierr"
	"github.com/foodgramapp/foodgram-backend/internal/services"
	"github.com/foodgramapp/foodgram-backend/internal/types"
)

type TagHandler struct {
	tagService services.TagService
}

func NewTagHandler(tagService services.TagService) *TagHandler {
	return &TagHandler{tagService: tagService}
}

func (th *TagHandler) Create(c *gin.Context) {
	var req struct {
		Name  string `json:"name"`
		Color string `json:"color"`
		Slug  string `json:"slug"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, apierr.Validation("body", "invalid request body"))
		return
	}
	tag := types.Tag{Name: req.Name, Color: req.Color, Slug: req.Slug}
	created, err := th.tagService.Create(c.Request.Context(), &tag)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondCreated(c, created)
}

func (th *TagHandler) GetByID(c *gin.Context) {
	tagID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, apierr.Validation("id", "invalid tag id"))
		return
	}
	tag, err := th.tagService.GetByID(c.Request.Context(), tagID)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, tag)
}

func (th *TagHandler) List(c *gin.Context) {
	tags, err := th.tagService.List(c.Request.Context())
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, tags)
}
