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

// SettingsHandler handles HTTP requests for settings, tax rates and
// feature toggles
type SettingsHandler struct {
	settingsService *service.SettingsService
	logger          *zap.Logger
}

func NewSettingsHandler(settingsService *service.SettingsService, logger *zap.Logger) *SettingsHandler {
	return &SettingsHandler{
		settingsService: settingsService,
		logger:          logger,
	}
}

// GetSettings godoc
// @Summary Get business settings
// @Tags Settings
// @Produce json
// @Success 200 {object} domain.SettingsDTO
// @Security BearerAuth
// @Router /settings [get]
func (h *SettingsHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.settingsService.Get(r.Context(), auth.OwnerID(r.Context()))
	if err != nil {
		h.logger.Error("failed to get settings", zap.Error(err))
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, settings)
}

// UpdateSettings godoc
// @Summary Update business settings
// @Tags Settings
// @Accept json
// @Produce json
// @Param settings body domain.UpdateSettingsRequest true "Settings"
// @Success 200 {object} domain.SettingsDTO
// @Failure 400 {object} domain.APIError
// @Security BearerAuth
// @Router /settings [put]
func (h *SettingsHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req domain.UpdateSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	settings, err := h.settingsService.Update(r.Context(), auth.OwnerID(r.Context()), &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, settings)
}

// ListTaxRates godoc
// @Summary List tax rates
// @Tags Settings
// @Produce json
// @Success 200 {array} domain.TaxRateDTO
// @Security BearerAuth
// @Router /settings/tax-rates [get]
func (h *SettingsHandler) ListTaxRates(w http.ResponseWriter, r *http.Request) {
	rates, err := h.settingsService.ListTaxRates(r.Context(), auth.OwnerID(r.Context()))
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, rates)
}

// CreateTaxRate godoc
// @Summary Create a tax rate
// @Description Setting isDefault moves the default flag off any other rate.
// @Tags Settings
// @Accept json
// @Produce json
// @Param taxRate body domain.CreateTaxRateRequest true "Tax rate"
// @Success 201 {object} domain.TaxRateDTO
// @Failure 400 {object} domain.APIError
// @Security BearerAuth
// @Router /settings/tax-rates [post]
func (h *SettingsHandler) CreateTaxRate(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateTaxRateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	taxRate, err := h.settingsService.CreateTaxRate(r.Context(), auth.OwnerID(r.Context()), &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, taxRate)
}

// DeleteTaxRate godoc
// @Summary Delete a tax rate
// @Tags Settings
// @Param id path string true "Tax rate ID"
// @Success 204
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /settings/tax-rates/{id} [delete]
func (h *SettingsHandler) DeleteTaxRate(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid tax rate ID")
		return
	}

	if err := h.settingsService.DeleteTaxRate(r.Context(), auth.OwnerID(r.Context()), id); err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}

// ListFeatures godoc
// @Summary List feature toggles
// @Tags Settings
// @Produce json
// @Success 200 {array} domain.FeatureSettingDTO
// @Security BearerAuth
// @Router /settings/features [get]
func (h *SettingsHandler) ListFeatures(w http.ResponseWriter, r *http.Request) {
	features, err := h.settingsService.ListFeatures(r.Context(), auth.OwnerID(r.Context()))
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, features)
}

// GetFeature godoc
// @Summary Get one feature toggle
// @Description Unknown keys read as disabled.
// @Tags Settings
// @Produce json
// @Param key path string true "Feature key"
// @Success 200 {object} domain.FeatureSettingDTO
// @Security BearerAuth
// @Router /settings/features/{key} [get]
func (h *SettingsHandler) GetFeature(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	if key == "" {
		respondWithError(w, http.StatusBadRequest, "Feature key is required")
		return
	}

	feature, err := h.settingsService.GetFeature(r.Context(), auth.OwnerID(r.Context()), key)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, feature)
}

// SetFeature godoc
// @Summary Enable or disable a feature
// @Tags Settings
// @Accept json
// @Produce json
// @Param key path string true "Feature key"
// @Param feature body domain.UpdateFeatureSettingRequest true "Feature state"
// @Success 200 {object} domain.FeatureSettingDTO
// @Failure 400 {object} domain.APIError
// @Security BearerAuth
// @Router /settings/features/{key} [put]
func (h *SettingsHandler) SetFeature(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	if key == "" {
		respondWithError(w, http.StatusBadRequest, "Feature key is required")
		return
	}

	var req domain.UpdateFeatureSettingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	feature, err := h.settingsService.SetFeature(r.Context(), auth.OwnerID(r.Context()), key, req.Enabled)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, feature)
}
