package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/foodgramapp/foodgram-backend/internal/apierr"
	"github.com/foodgramapp/foodgram-backend/internal/services"
	"github.com/foodgramapp/foodgram-backend/internal/types"
)

type IngredientHandler struct {
	ingredientService services.IngredientService
}

func NewIngredientHandler(ingredientService services.IngredientService) *IngredientHandler {
	return &IngredientHandler{ingredientService: ingredientService}
}

func (ih *IngredientHandler) Create(c *gin.Context) {
	var req struct {
		Name            string `json:"name"`
		MeasurementUnit string `json:"measurement_unit"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, apierr.Validation("body", "invalid request body"))
		return
	}
	ingredient := &types.Ingredient{Name: req.Name, MeasurementUnit: req.MeasurementUnit}
	created, err := ih.ingredientService.Create(c.Request.Context(), []*types.Ingredient{ingredient})
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondCreated(c, created[0])
}

func (ih *IngredientHandler) GetByID(c *gin.Context) {
	ingredientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, apierr.Validation("id", "invalid ingredient id"))
		return
	}
	ingredient, err := ih.ingredientService.GetByID(c.Request.Context(), ingredientID)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, ingredient)
}

func (ih *IngredientHandler) List(c *gin.Context) {
	ingredients, err := ih.ingredientService.List(c.Request.Context(), c.Query("name"))
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, ingredients)
}
