package handler

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/ovenledger/bakery-api/internal/auth"
	"github.com/ovenledger/bakery-api/internal/config"
	"github.com/ovenledger/bakery-api/internal/domain"
	"github.com/ovenledger/bakery-api/internal/service"
	"go.uber.org/zap"
)

// ImportHandler handles HTTP requests for the data-import endpoints
type ImportHandler struct {
	importService *service.ImportService
	cfg           config.StorageConfig
	logger        *zap.Logger
}

func NewImportHandler(importService *service.ImportService, cfg config.StorageConfig, logger *zap.Logger) *ImportHandler {
	return &ImportHandler{
		importService: importService,
		cfg:           cfg,
		logger:        logger,
	}
}

// openUpload extracts the "file" part from a multipart request. The
// caller must close the returned reader.
func (h *ImportHandler) openUpload(w http.ResponseWriter, r *http.Request) (io.ReadCloser, string, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, h.cfg.MaxUploadSizeBytes())

	if err := r.ParseMultipartForm(h.cfg.MaxUploadSizeBytes()); err != nil {
		respondWithError(w, http.StatusBadRequest,
			fmt.Sprintf("Failed to parse upload (max %dMB)", h.cfg.MaxUploadSizeMB))
		return nil, "", false
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Missing 'file' field in upload")
		return nil, "", false
	}

	return file, header.Filename, true
}

// readUpload slurps the uploaded file for the endpoints that take raw
// CSV content.
func (h *ImportHandler) readUpload(w http.ResponseWriter, r *http.Request) (string, bool) {
	file, _, ok := h.openUpload(w, r)
	if !ok {
		return "", false
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Failed to read uploaded file")
		return "", false
	}

	return string(data), true
}

// formBool reads a multipart form flag; anything but "true" is false.
func formBool(r *http.Request, name string) bool {
	return r.FormValue(name) == "true"
}

func importOptionsFromForm(r *http.Request) domain.ImportOptions {
	return domain.ImportOptions{
		ImportContacts:  formBool(r, "importContacts"),
		ImportOrders:    formBool(r, "importOrders"),
		ImportProducts:  formBool(r, "importProducts"),
		ImportRecipes:   formBool(r, "importRecipes"),
		ImportTasks:     formBool(r, "importTasks"),
		ImportEnquiries: formBool(r, "importEnquiries"),
		ImportSettings:  formBool(r, "importSettings"),
		ReplaceExisting: formBool(r, "replaceExisting"),
	}
}

func csvResponse(sum *domain.ImportSummary, key, noun string) domain.CSVImportResponse {
	tally := sum.Summary[key]
	return domain.CSVImportResponse{
		Success:       true,
		Message:       fmt.Sprintf("Imported %d %s (%d skipped)", tally.Imported, noun, tally.Skipped),
		ProcessedRows: tally.Imported,
		SkippedRows:   tally.Skipped,
		Errors:        sum.Errors,
	}
}

// ImportData godoc
// @Summary Import a data file
// @Description Accepts a CSV or JSON upload, detects its layout and imports the matching entities. Option flags select which entity types a JSON file may touch.
// @Tags Import
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "CSV or JSON file"
// @Param importContacts formData bool false "Import contacts from a JSON file"
// @Param importOrders formData bool false "Import orders and quotes from a JSON file"
// @Param importProducts formData bool false "Import products from a JSON file"
// @Param importRecipes formData bool false "Import recipes from a JSON file"
// @Param importTasks formData bool false "Import tasks from a JSON file"
// @Param importEnquiries formData bool false "Import enquiries from a JSON file"
// @Param importSettings formData bool false "Import settings from a JSON file"
// @Param replaceExisting formData bool false "Delete existing rows of the imported types first"
// @Success 200 {object} domain.DataImportResponse
// @Failure 400 {object} domain.APIError
// @Security BearerAuth
// @Router /data/import [post]
func (h *ImportHandler) ImportData(w http.ResponseWriter, r *http.Request) {
	file, filename, ok := h.openUpload(w, r)
	if !ok {
		return
	}
	defer file.Close()

	opts := importOptionsFromForm(r)

	summary, err := h.importService.ImportFile(r.Context(), auth.OwnerID(r.Context()), file, filename, opts)
	if err != nil {
		h.logger.Error("data import failed", zap.String("filename", filename), zap.Error(err))
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, domain.DataImportResponse{
		Success: true,
		Message: "Import completed",
		Result: domain.DataImportResult{
			Summary:  summary.Summary,
			Warnings: summary.Warnings,
		},
	})
}

// ImportDataJSON godoc
// @Summary Import a structured dataset
// @Description JSON-body variant of the data import. Query flags mirror the multipart option flags.
// @Tags Import
// @Accept json
// @Produce json
// @Param importContacts query bool false "Import contacts"
// @Param importOrders query bool false "Import orders and quotes"
// @Param importProducts query bool false "Import products"
// @Param importRecipes query bool false "Import recipes"
// @Param importTasks query bool false "Import tasks"
// @Param importEnquiries query bool false "Import enquiries"
// @Param importSettings query bool false "Import settings"
// @Param replaceExisting query bool false "Delete existing rows of the imported types first"
// @Param dataset body domain.ImportDataset true "Dataset"
// @Success 200 {object} domain.DataImportResponse
// @Failure 400 {object} domain.APIError
// @Security BearerAuth
// @Router /data/import/json [post]
func (h *ImportHandler) ImportDataJSON(w http.ResponseWriter, r *http.Request) {
	var dataset domain.ImportDataset
	if err := json.NewDecoder(r.Body).Decode(&dataset); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	q := r.URL.Query()
	opts := domain.ImportOptions{
		ImportContacts:  q.Get("importContacts") == "true",
		ImportOrders:    q.Get("importOrders") == "true",
		ImportProducts:  q.Get("importProducts") == "true",
		ImportRecipes:   q.Get("importRecipes") == "true",
		ImportTasks:     q.Get("importTasks") == "true",
		ImportEnquiries: q.Get("importEnquiries") == "true",
		ImportSettings:  q.Get("importSettings") == "true",
		ReplaceExisting: q.Get("replaceExisting") == "true",
	}

	summary, err := h.importService.ImportJSON(r.Context(), auth.OwnerID(r.Context()), &dataset, opts)
	if err != nil {
		h.logger.Error("json import failed", zap.Error(err))
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, domain.DataImportResponse{
		Success: true,
		Message: "Import completed",
		Result: domain.DataImportResult{
			Summary:  summary.Summary,
			Warnings: summary.Warnings,
		},
	})
}

// ImportOrders godoc
// @Summary Import orders from a CSV export
// @Tags Import
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Orders CSV"
// @Param replaceExisting formData bool false "Delete existing orders first"
// @Success 200 {object} domain.CSVImportResponse
// @Failure 400 {object} domain.APIError
// @Security BearerAuth
// @Router /import/orders [post]
func (h *ImportHandler) ImportOrders(w http.ResponseWriter, r *http.Request) {
	content, ok := h.readUpload(w, r)
	if !ok {
		return
	}

	summary, err := h.importService.ImportOrdersCSV(r.Context(), auth.OwnerID(r.Context()), content, formBool(r, "replaceExisting"))
	if err != nil {
		h.logger.Error("orders import failed", zap.Error(err))
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, csvResponse(summary, "orders", "orders"))
}

// ImportQuotes godoc
// @Summary Import quotes from a CSV export
// @Tags Import
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Quotes CSV"
// @Param replaceExisting formData bool false "Delete existing quotes first"
// @Success 200 {object} domain.CSVImportResponse
// @Failure 400 {object} domain.APIError
// @Security BearerAuth
// @Router /import/quotes [post]
func (h *ImportHandler) ImportQuotes(w http.ResponseWriter, r *http.Request) {
	content, ok := h.readUpload(w, r)
	if !ok {
		return
	}

	summary, err := h.importService.ImportQuotesCSV(r.Context(), auth.OwnerID(r.Context()), content, formBool(r, "replaceExisting"))
	if err != nil {
		h.logger.Error("quotes import failed", zap.Error(err))
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, csvResponse(summary, "quotes", "quotes"))
}

// ImportOrderItems godoc
// @Summary Import order line items from a CSV export
// @Description Rows attach to existing orders by order number; items for the same order merge with its current list.
// @Tags Import
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Order items CSV"
// @Success 200 {object} domain.CSVImportResponse
// @Failure 400 {object} domain.APIError
// @Security BearerAuth
// @Router /import/order-items [post]
func (h *ImportHandler) ImportOrderItems(w http.ResponseWriter, r *http.Request) {
	content, ok := h.readUpload(w, r)
	if !ok {
		return
	}

	summary, err := h.importService.ImportOrderItemsCSV(r.Context(), auth.OwnerID(r.Context()), content)
	if err != nil {
		h.logger.Error("order items import failed", zap.Error(err))
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, csvResponse(summary, "orderItems", "order items"))
}

// ImportExpenses godoc
// @Summary Import expenses from a CSV export
// @Tags Import
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Expenses CSV"
// @Param replaceExisting formData bool false "Delete existing expenses first"
// @Success 200 {object} domain.ExpenseImportResponse
// @Failure 400 {object} domain.APIError
// @Security BearerAuth
// @Router /expenses-import [post]
func (h *ImportHandler) ImportExpenses(w http.ResponseWriter, r *http.Request) {
	content, ok := h.readUpload(w, r)
	if !ok {
		return
	}

	expenses, summary, err := h.importService.ImportExpensesCSV(r.Context(), auth.OwnerID(r.Context()), content, formBool(r, "replaceExisting"))
	if err != nil {
		h.logger.Error("expenses import failed", zap.Error(err))
		respondServiceError(w, err)
		return
	}

	tally := summary.Summary["expenses"]
	respondJSON(w, http.StatusOK, domain.ExpenseImportResponse{
		Success:  true,
		Message:  fmt.Sprintf("Imported %d expenses (%d skipped)", tally.Imported, tally.Skipped),
		Expenses: expenses,
	})
}
