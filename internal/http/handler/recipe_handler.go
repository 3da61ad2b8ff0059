package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/ovenledger/bakery-api/internal/auth"
	"github.com/ovenledger/bakery-api/internal/domain"
	"github.com/ovenledger/bakery-api/internal/service"
	"go.uber.org/zap"
)

// RecipeHandler handles HTTP requests for recipes
type RecipeHandler struct {
	recipeService *service.RecipeService
	logger        *zap.Logger
}

func NewRecipeHandler(recipeService *service.RecipeService, logger *zap.Logger) *RecipeHandler {
	return &RecipeHandler{
		recipeService: recipeService,
		logger:        logger,
	}
}

// ListRecipes godoc
// @Summary List recipes
// @Tags Recipes
// @Produce json
// @Success 200 {array} domain.RecipeDTO
// @Security BearerAuth
// @Router /recipes [get]
func (h *RecipeHandler) ListRecipes(w http.ResponseWriter, r *http.Request) {
	recipes, err := h.recipeService.List(r.Context(), auth.OwnerID(r.Context()))
	if err != nil {
		h.logger.Error("failed to list recipes", zap.Error(err))
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, recipes)
}

// GetRecipe godoc
// @Summary Get a recipe by ID
// @Tags Recipes
// @Produce json
// @Param id path string true "Recipe ID"
// @Success 200 {object} domain.RecipeDTO
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /recipes/{id} [get]
func (h *RecipeHandler) GetRecipe(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid recipe ID")
		return
	}

	recipe, err := h.recipeService.GetByID(r.Context(), auth.OwnerID(r.Context()), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, recipe)
}

// GetRecipeCost godoc
// @Summary Get a recipe's computed cost
// @Description Sums ingredient unit costs times quantity, using the stored line cost where the ingredient reference is missing.
// @Tags Recipes
// @Produce json
// @Param id path string true "Recipe ID"
// @Success 200 {object} domain.RecipeCostDTO
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /recipes/{id}/cost [get]
func (h *RecipeHandler) GetRecipeCost(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid recipe ID")
		return
	}

	cost, err := h.recipeService.Cost(r.Context(), auth.OwnerID(r.Context()), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, cost)
}

// CreateRecipe godoc
// @Summary Create a recipe
// @Tags Recipes
// @Accept json
// @Produce json
// @Param recipe body domain.CreateRecipeRequest true "Recipe"
// @Success 201 {object} domain.RecipeDTO
// @Failure 400 {object} domain.APIError
// @Security BearerAuth
// @Router /recipes [post]
func (h *RecipeHandler) CreateRecipe(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateRecipeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	recipe, err := h.recipeService.Create(r.Context(), auth.OwnerID(r.Context()), &req)
	if err != nil {
		h.logger.Error("failed to create recipe", zap.Error(err))
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, recipe)
}

// UpdateRecipe godoc
// @Summary Update a recipe
// @Description The ingredient list is replaced as a unit with the submitted set.
// @Tags Recipes
// @Accept json
// @Produce json
// @Param id path string true "Recipe ID"
// @Param recipe body domain.UpdateRecipeRequest true "Recipe"
// @Success 200 {object} domain.RecipeDTO
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /recipes/{id} [put]
func (h *RecipeHandler) UpdateRecipe(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid recipe ID")
		return
	}

	var req domain.UpdateRecipeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	recipe, err := h.recipeService.Update(r.Context(), auth.OwnerID(r.Context()), id, &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, recipe)
}

// DeleteRecipe godoc
// @Summary Delete a recipe
// @Tags Recipes
// @Param id path string true "Recipe ID"
// @Success 204
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /recipes/{id} [delete]
func (h *RecipeHandler) DeleteRecipe(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid recipe ID")
		return
	}

	if err := h.recipeService.Delete(r.Context(), auth.OwnerID(r.Context()), id); err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}
