package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/foodgramapp/foodgram-backend/internal/apierr"
	"github.com/foodgramapp/foodgram-backend/internal/requestdata"
	"github.com/foodgramapp/foodgram-backend/internal/services"
)

type RecipeHandler struct {
	recipeService       services.RecipeService
	relationService     services.RelationService
	shoppingListService services.ShoppingListService
}

func NewRecipeHandler(recipeService services.RecipeService, relationService services.RelationService, shoppingListService services.ShoppingListService) *RecipeHandler {
	return &RecipeHandler{
		recipeService:       recipeService,
		relationService:     relationService,
		shoppingListService: shoppingListService,
	}
}

func (rh *RecipeHandler) Create(c *gin.Context) {
	var input services.RecipeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, apierr.Validation("body", "invalid request body"))
		return
	}
	view, err := rh.recipeService.Create(c.Request.Context(), input)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondCreated(c, view)
}

func (rh *RecipeHandler) Update(c *gin.Context) {
	recipeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, apierr.Validation("id", "invalid recipe id"))
		return
	}
	var input services.RecipeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, apierr.Validation("body", "invalid request body"))
		return
	}
	view, err := rh.recipeService.Update(c.Request.Context(), recipeID, input)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, view)
}

func (rh *RecipeHandler) Delete(c *gin.Context) {
	recipeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, apierr.Validation("id", "invalid recipe id"))
		return
	}
	if err := rh.recipeService.Delete(c.Request.Context(), recipeID); err != nil {
		RespondError(c, err)
		return
	}
	RespondNoContent(c)
}

func (rh *RecipeHandler) GetByID(c *gin.Context) {
	recipeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, apierr.Validation("id", "invalid recipe id"))
		return
	}
	view, err := rh.recipeService.GetByID(c.Request.Context(), recipeID)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, view)
}

func (rh *RecipeHandler) List(c *gin.Context) {
	limit, offset := parsePagination(c)
	params := services.RecipeListParams{
		IsFavorited:      c.Query("is_favorited") == "1",
		IsInShoppingCart: c.Query("is_in_shopping_cart") == "1",
		Limit:            limit,
		Offset:           offset,
	}
	if author := c.Query("author"); author != "" {
		authorID, err := uuid.Parse(author)
		if err != nil {
			RespondError(c, apierr.Validation("author", "invalid author id"))
			return
		}
		params.AuthorID = &authorID
	}
	if tags := c.QueryArray("tags"); len(tags) > 0 {
		params.TagSlugs = tags
	}
	views, err := rh.recipeService.List(c.Request.Context(), params)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, views)
}

func (rh *RecipeHandler) AddFavorite(c *gin.Context) {
	recipeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, apierr.Validation("id", "invalid recipe id"))
		return
	}
	short, err := rh.relationService.AddFavorite(c.Request.Context(), recipeID)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondCreated(c, short)
}

func (rh *RecipeHandler) RemoveFavorite(c *gin.Context) {
	recipeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, apierr.Validation("id", "invalid recipe id"))
		return
	}
	if err := rh.relationService.RemoveFavorite(c.Request.Context(), recipeID); err != nil {
		RespondError(c, err)
		return
	}
	RespondNoContent(c)
}

func (rh *RecipeHandler) AddToCart(c *gin.Context) {
	recipeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, apierr.Validation("id", "invalid recipe id"))
		return
	}
	short, err := rh.relationService.AddToCart(c.Request.Context(), recipeID)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondCreated(c, short)
}

func (rh *RecipeHandler) RemoveFromCart(c *gin.Context) {
	recipeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, apierr.Validation("id", "invalid recipe id"))
		return
	}
	if err := rh.relationService.RemoveFromCart(c.Request.Context(), recipeID); err != nil {
		RespondError(c, err)
		return
	}
	RespondNoContent(c)
}

// DownloadShoppingCart serves the aggregated shopping list as a plain-text
// attachment.
func (rh *RecipeHandler) DownloadShoppingCart(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		RespondError(c, apierr.Unauthorized("not authenticated"))
		return
	}
	items, err := rh.shoppingListService.Build(c.Request.Context(), rd.UserID)
	if err != nil {
		RespondError(c, err)
		return
	}
	content := rh.shoppingListService.Render(items)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", services.ShoppingListFilename))
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(content))
}
