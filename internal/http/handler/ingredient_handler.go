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

// IngredientHandler handles HTTP requests for ingredients
type IngredientHandler struct {
	ingredientService *service.IngredientService
	logger            *zap.Logger
}

func NewIngredientHandler(ingredientService *service.IngredientService, logger *zap.Logger) *IngredientHandler {
	return &IngredientHandler{
		ingredientService: ingredientService,
		logger:            logger,
	}
}

// ListIngredients godoc
// @Summary List ingredients
// @Tags Ingredients
// @Produce json
// @Success 200 {array} domain.IngredientDTO
// @Security BearerAuth
// @Router /ingredients [get]
func (h *IngredientHandler) ListIngredients(w http.ResponseWriter, r *http.Request) {
	ingredients, err := h.ingredientService.List(r.Context(), auth.OwnerID(r.Context()))
	if err != nil {
		h.logger.Error("failed to list ingredients", zap.Error(err))
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, ingredients)
}

// GetIngredient godoc
// @Summary Get an ingredient by ID
// @Tags Ingredients
// @Produce json
// @Param id path string true "Ingredient ID"
// @Success 200 {object} domain.IngredientDTO
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /ingredients/{id} [get]
func (h *IngredientHandler) GetIngredient(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid ingredient ID")
		return
	}

	ingredient, err := h.ingredientService.GetByID(r.Context(), auth.OwnerID(r.Context()), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, ingredient)
}

// CreateIngredient godoc
// @Summary Create an ingredient
// @Description Unit cost is derived from pack cost and pack size unless supplied.
// @Tags Ingredients
// @Accept json
// @Produce json
// @Param ingredient body domain.CreateIngredientRequest true "Ingredient"
// @Success 201 {object} domain.IngredientDTO
// @Failure 400 {object} domain.APIError
// @Security BearerAuth
// @Router /ingredients [post]
func (h *IngredientHandler) CreateIngredient(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateIngredientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	ingredient, err := h.ingredientService.Create(r.Context(), auth.OwnerID(r.Context()), &req)
	if err != nil {
		h.logger.Error("failed to create ingredient", zap.Error(err))
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, ingredient)
}

// UpdateIngredient godoc
// @Summary Update an ingredient
// @Tags Ingredients
// @Accept json
// @Produce json
// @Param id path string true "Ingredient ID"
// @Param ingredient body domain.UpdateIngredientRequest true "Ingredient"
// @Success 200 {object} domain.IngredientDTO
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /ingredients/{id} [put]
func (h *IngredientHandler) UpdateIngredient(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid ingredient ID")
		return
	}

	var req domain.UpdateIngredientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	ingredient, err := h.ingredientService.Update(r.Context(), auth.OwnerID(r.Context()), id, &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, ingredient)
}

// DeleteIngredient godoc
// @Summary Delete an ingredient
// @Tags Ingredients
// @Param id path string true "Ingredient ID"
// @Success 204
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /ingredients/{id} [delete]
func (h *IngredientHandler) DeleteIngredient(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid ingredient ID")
		return
	}

	if err := h.ingredientService.Delete(r.Context(), auth.OwnerID(r.Context()), id); err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}
