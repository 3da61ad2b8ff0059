package domain

import (
	"github.com/google/uuid"
)

// DTOs for API responses. Dates are ISO 8601 strings; monetary values are
// decimal strings, never floats.

type ContactDTO struct {
	ID           uuid.UUID `json:"id"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName,omitempty"`
	FullName     string    `json:"fullName"`
	Email        string    `json:"email,omitempty"`
	Phone        string    `json:"phone,omitempty"`
	BusinessName string    `json:"businessName,omitempty"`
	Notes        string    `json:"notes,omitempty"`
	CreatedAt    string    `json:"createdAt"`
	UpdatedAt    string    `json:"updatedAt"`
}

type CreateContactRequest struct {
	FirstName    string `json:"firstName" validate:"required,max=100"`
	LastName     string `json:"lastName" validate:"max=100"`
	Email        string `json:"email" validate:"omitempty,email"`
	Phone        string `json:"phone" validate:"max=50"`
	BusinessName string `json:"businessName" validate:"max=200"`
	Notes        string `json:"notes"`
}

type UpdateContactRequest struct {
	FirstName    string `json:"firstName" validate:"required,max=100"`
	LastName     string `json:"lastName" validate:"max=100"`
	Email        string `json:"email" validate:"omitempty,email"`
	Phone        string `json:"phone" validate:"max=50"`
	BusinessName string `json:"businessName" validate:"max=200"`
	Notes        string `json:"notes"`
}

type OrderItemDTO struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Quantity    string    `json:"quantity"`
	UnitPrice   string    `json:"unitPrice"`
	LinePrice   string    `json:"linePrice"`
}

type OrderDTO struct {
	ID           uuid.UUID      `json:"id"`
	ContactID    *uuid.UUID     `json:"contactId,omitempty"`
	ContactName  string         `json:"contactName,omitempty"`
	OrderNumber  int            `json:"orderNumber"`
	EventType    EventType      `json:"eventType"`
	EventDate    *string        `json:"eventDate,omitempty"`
	Status       OrderStatus    `json:"status"`
	DeliveryType DeliveryType   `json:"deliveryType"`
	Discount     string         `json:"discount"`
	SetupFee     string         `json:"setupFee"`
	TaxRate      string         `json:"taxRate"`
	Total        string         `json:"total"`
	ItemsTotal   string         `json:"itemsTotal"` // derived at display time, never persisted
	Notes        string         `json:"notes,omitempty"`
	Items        []OrderItemDTO `json:"items"`
	CreatedAt    string         `json:"createdAt"`
	UpdatedAt    string         `json:"updatedAt"`
}

type OrderItemInput struct {
	Name        string `json:"name" validate:"required,max=200"`
	Description string `json:"description"`
	Quantity    string `json:"quantity" validate:"omitempty,numeric"`
	UnitPrice   string `json:"unitPrice" validate:"omitempty,numeric"`
	LinePrice   string `json:"linePrice" validate:"omitempty,numeric"`
}

type CreateOrderRequest struct {
	ContactID    *uuid.UUID       `json:"contactId"`
	EventType    EventType        `json:"eventType" validate:"omitempty,oneof=birthday wedding anniversary corporate baby_shower christening graduation other"`
	EventDate    string           `json:"eventDate" validate:"omitempty,datetime=2006-01-02"`
	Status       OrderStatus      `json:"status" validate:"omitempty,oneof=quote confirmed paid ready delivered cancelled"`
	DeliveryType DeliveryType     `json:"deliveryType" validate:"omitempty,oneof=pickup delivery"`
	Discount     string           `json:"discount" validate:"omitempty,numeric"`
	SetupFee     string           `json:"setupFee" validate:"omitempty,numeric"`
	TaxRate      string           `json:"taxRate" validate:"omitempty,numeric"`
	Total        string           `json:"total" validate:"omitempty,numeric"`
	Notes        string           `json:"notes"`
	Items        []OrderItemInput `json:"items" validate:"dive"`
}

type UpdateOrderRequest = CreateOrderRequest

type QuoteItemDTO = OrderItemDTO

type QuoteDTO struct {
	ID           uuid.UUID      `json:"id"`
	ContactID    *uuid.UUID     `json:"contactId,omitempty"`
	ContactName  string         `json:"contactName,omitempty"`
	QuoteNumber  int            `json:"quoteNumber"`
	EventType    EventType      `json:"eventType"`
	EventDate    *string        `json:"eventDate,omitempty"`
	Status       QuoteStatus    `json:"status"`
	DeliveryType DeliveryType   `json:"deliveryType"`
	Discount     string         `json:"discount"`
	SetupFee     string         `json:"setupFee"`
	TaxRate      string         `json:"taxRate"`
	Total        string         `json:"total"`
	ItemsTotal   string         `json:"itemsTotal"`
	Notes        string         `json:"notes,omitempty"`
	Items        []QuoteItemDTO `json:"items"`
	CreatedAt    string         `json:"createdAt"`
	UpdatedAt    string         `json:"updatedAt"`
}

type CreateQuoteRequest struct {
	ContactID    *uuid.UUID       `json:"contactId"`
	EventType    EventType        `json:"eventType" validate:"omitempty,oneof=birthday wedding anniversary corporate baby_shower christening graduation other"`
	EventDate    string           `json:"eventDate" validate:"omitempty,datetime=2006-01-02"`
	Status       QuoteStatus      `json:"status" validate:"omitempty,oneof=draft sent accepted declined expired cancelled"`
	DeliveryType DeliveryType     `json:"deliveryType" validate:"omitempty,oneof=pickup delivery"`
	Discount     string           `json:"discount" validate:"omitempty,numeric"`
	SetupFee     string           `json:"setupFee" validate:"omitempty,numeric"`
	TaxRate      string           `json:"taxRate" validate:"omitempty,numeric"`
	Total        string           `json:"total" validate:"omitempty,numeric"`
	Notes        string           `json:"notes"`
	Items        []OrderItemInput `json:"items" validate:"dive"`
}

type UpdateQuoteRequest = CreateQuoteRequest

type ExpenseDTO struct {
	ID            uuid.UUID `json:"id"`
	Date          *string   `json:"date,omitempty"`
	Category      string    `json:"category,omitempty"`
	Amount        string    `json:"amount"`
	Description   string    `json:"description,omitempty"`
	Supplier      string    `json:"supplier,omitempty"`
	PaymentSource string    `json:"paymentSource,omitempty"`
	VATAmount     string    `json:"vatAmount"`
	TotalIncTax   string    `json:"totalIncTax"`
	IsRecurring   bool      `json:"isRecurring"`
	TaxDeductible bool      `json:"taxDeductible"`
	CreatedAt     string    `json:"createdAt"`
	UpdatedAt     string    `json:"updatedAt"`
}

type CreateExpenseRequest struct {
	Date          string `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Category      string `json:"category" validate:"max=100"`
	Amount        string `json:"amount" validate:"omitempty,numeric"`
	Description   string `json:"description" validate:"max=500"`
	Supplier      string `json:"supplier" validate:"max=200"`
	PaymentSource string `json:"paymentSource" validate:"max=100"`
	VATAmount     string `json:"vatAmount" validate:"omitempty,numeric"`
	TotalIncTax   string `json:"totalIncTax" validate:"omitempty,numeric"`
	IsRecurring   bool   `json:"isRecurring"`
	TaxDeductible bool   `json:"taxDeductible"`
}

type UpdateExpenseRequest = CreateExpenseRequest

type IncomeDTO struct {
	ID          uuid.UUID `json:"id"`
	Date        *string   `json:"date,omitempty"`
	Category    string    `json:"category,omitempty"`
	Amount      string    `json:"amount"`
	Description string    `json:"description,omitempty"`
	Source      string    `json:"source,omitempty"`
	CreatedAt   string    `json:"createdAt"`
	UpdatedAt   string    `json:"updatedAt"`
}

type CreateIncomeRequest struct {
	Date        string `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Category    string `json:"category" validate:"max=100"`
	Amount      string `json:"amount" validate:"omitempty,numeric"`
	Description string `json:"description" validate:"max=500"`
	Source      string `json:"source" validate:"max=200"`
}

type UpdateIncomeRequest = CreateIncomeRequest

type IngredientDTO struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	PackSize    string    `json:"packSize"`
	PackCost    string    `json:"packCost"`
	Unit        string    `json:"unit,omitempty"`
	CostPerUnit string    `json:"costPerUnit"`
	CreatedAt   string    `json:"createdAt"`
	UpdatedAt   string    `json:"updatedAt"`
}

type CreateIngredientRequest struct {
	Name        string `json:"name" validate:"required,max=200"`
	PackSize    string `json:"packSize" validate:"omitempty,numeric"`
	PackCost    string `json:"packCost" validate:"omitempty,numeric"`
	Unit        string `json:"unit" validate:"max=50"`
	CostPerUnit string `json:"costPerUnit" validate:"omitempty,numeric"`
}

type UpdateIngredientRequest = CreateIngredientRequest

type RecipeIngredientDTO struct {
	ID             uuid.UUID  `json:"id"`
	IngredientID   *uuid.UUID `json:"ingredientId,omitempty"`
	IngredientName string     `json:"ingredientName,omitempty"`
	Quantity       string     `json:"quantity"`
	Unit           string     `json:"unit,omitempty"`
	Cost           string     `json:"cost"`
}

type RecipeDTO struct {
	ID          uuid.UUID             `json:"id"`
	Name        string                `json:"name"`
	Description string                `json:"description,omitempty"`
	Category    string                `json:"category,omitempty"`
	Servings    int                   `json:"servings"`
	Ingredients []RecipeIngredientDTO `json:"ingredients"`
	CreatedAt   string                `json:"createdAt"`
	UpdatedAt   string                `json:"updatedAt"`
}

// RecipeCostDTO is the computed cost of one recipe: the sum of
// ingredient costPerUnit * quantity, with the stored line cost used for
// rows whose ingredient reference is missing.
type RecipeCostDTO struct {
	RecipeID       uuid.UUID `json:"recipeId"`
	TotalCost      string    `json:"totalCost"`
	CostPerServing string    `json:"costPerServing,omitempty"`
}

type RecipeIngredientInput struct {
	IngredientID *uuid.UUID `json:"ingredientId"`
	Quantity     string     `json:"quantity" validate:"omitempty,numeric"`
	Unit         string     `json:"unit" validate:"max=50"`
	Cost         string     `json:"cost" validate:"omitempty,numeric"`
}

type CreateRecipeRequest struct {
	Name        string                  `json:"name" validate:"required,max=200"`
	Description string                  `json:"description"`
	Category    string                  `json:"category" validate:"max=100"`
	Servings    int                     `json:"servings" validate:"gte=0"`
	Ingredients []RecipeIngredientInput `json:"ingredients" validate:"dive"`
}

type UpdateRecipeRequest = CreateRecipeRequest

type TaskDTO struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Details     string    `json:"details,omitempty"`
	DueDate     *string   `json:"dueDate,omitempty"`
	Completed   bool      `json:"completed"`
	CompletedAt *string   `json:"completedAt,omitempty"`
	Tags        []string  `json:"tags,omitempty"`
	CreatedAt   string    `json:"createdAt"`
	UpdatedAt   string    `json:"updatedAt"`
}

type CreateTaskRequest struct {
	Title   string   `json:"title" validate:"required,max=300"`
	Details string   `json:"details"`
	DueDate string   `json:"dueDate" validate:"omitempty,datetime=2006-01-02"`
	Tags    []string `json:"tags"`
}

type UpdateTaskRequest struct {
	Title     string   `json:"title" validate:"required,max=300"`
	Details   string   `json:"details"`
	DueDate   string   `json:"dueDate" validate:"omitempty,datetime=2006-01-02"`
	Completed *bool    `json:"completed"`
	Tags      []string `json:"tags"`
}

type EnquiryDTO struct {
	ID        uuid.UUID     `json:"id"`
	Name      string        `json:"name"`
	Email     string        `json:"email,omitempty"`
	Phone     string        `json:"phone,omitempty"`
	EventType EventType     `json:"eventType"`
	EventDate *string       `json:"eventDate,omitempty"`
	Details   string        `json:"details,omitempty"`
	Status    EnquiryStatus `json:"status"`
	Source    string        `json:"source,omitempty"`
	CreatedAt string        `json:"createdAt"`
	UpdatedAt string        `json:"updatedAt"`
}

type CreateEnquiryRequest struct {
	Name      string    `json:"name" validate:"required,max=200"`
	Email     string    `json:"email" validate:"omitempty,email"`
	Phone     string    `json:"phone" validate:"max=50"`
	EventType EventType `json:"eventType" validate:"omitempty,oneof=birthday wedding anniversary corporate baby_shower christening graduation other"`
	EventDate string    `json:"eventDate" validate:"omitempty,datetime=2006-01-02"`
	Details   string    `json:"details"`
	Source    string    `json:"source" validate:"max=100"`
}

type UpdateEnquiryStatusRequest struct {
	Status EnquiryStatus `json:"status" validate:"required,oneof=new responded converted closed"`
}

type SettingsDTO struct {
	BusinessName   string `json:"businessName,omitempty"`
	CurrencyCode   string `json:"currencyCode"`
	DefaultTaxRate string `json:"defaultTaxRate"`
	WeekStartDay   string `json:"weekStartDay"`
}

type UpdateSettingsRequest struct {
	BusinessName   string `json:"businessName" validate:"max=200"`
	CurrencyCode   string `json:"currencyCode" validate:"omitempty,len=3"`
	DefaultTaxRate string `json:"defaultTaxRate" validate:"omitempty,numeric"`
	WeekStartDay   string `json:"weekStartDay" validate:"omitempty,oneof=monday sunday"`
}

type TaxRateDTO struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	RatePercent string    `json:"ratePercent"`
	IsDefault   bool      `json:"isDefault"`
}

type CreateTaxRateRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	RatePercent string `json:"ratePercent" validate:"omitempty,numeric"`
	IsDefault   bool   `json:"isDefault"`
}

type FeatureSettingDTO struct {
	FeatureKey string `json:"featureKey"`
	Enabled    bool   `json:"enabled"`
}

type UpdateFeatureSettingRequest struct {
	Enabled bool `json:"enabled"`
}

// Import DTOs

// ImportOptions selects which entity types one import request touches.
type ImportOptions struct {
	ImportContacts  bool `json:"importContacts"`
	ImportOrders    bool `json:"importOrders"`
	ImportProducts  bool `json:"importProducts"`
	ImportRecipes   bool `json:"importRecipes"`
	ImportTasks     bool `json:"importTasks"`
	ImportEnquiries bool `json:"importEnquiries"`
	ImportSettings  bool `json:"importSettings"`
	ReplaceExisting bool `json:"replaceExisting"`
}

// EntityTally counts the outcome of one entity type within a batch.
type EntityTally struct {
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
	Errors   int `json:"errors"`
}

// RowWarning records a lenient fallback applied to one row (e.g. an
// unparseable date defaulted to today) so callers can surface it.
type RowWarning struct {
	Row     int    `json:"row"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ImportSummary is the result of one import batch.
type ImportSummary struct {
	Summary  map[string]EntityTally `json:"summary"`
	Errors   []string               `json:"errors,omitempty"`
	Warnings []RowWarning           `json:"warnings,omitempty"`
}

// DataImportResponse is the envelope for POST /api/data/import.
type DataImportResponse struct {
	Success bool             `json:"success"`
	Message string           `json:"message"`
	Result  DataImportResult `json:"result"`
}

type DataImportResult struct {
	Summary  map[string]EntityTally `json:"summary"`
	Warnings []RowWarning           `json:"warnings,omitempty"`
}

// CSVImportResponse is the envelope for the vendor CSV import endpoints.
type CSVImportResponse struct {
	Success       bool     `json:"success"`
	Message       string   `json:"message"`
	ProcessedRows int      `json:"processedRows"`
	SkippedRows   int      `json:"skippedRows"`
	Errors        []string `json:"errors,omitempty"`
}

// ExpenseImportResponse is the envelope for POST /api/expenses-import.
type ExpenseImportResponse struct {
	Success  bool         `json:"success"`
	Message  string       `json:"message"`
	Expenses []ExpenseDTO `json:"expenses"`
}

// ImportDataset is the JSON-body form of a full import
// (POST /api/data/import/json).
type ImportDataset struct {
	Contacts  []CreateContactRequest    `json:"contacts"`
	Orders    []ImportOrderRecord       `json:"orders"`
	Quotes    []ImportQuoteRecord       `json:"quotes"`
	Expenses  []CreateExpenseRequest    `json:"expenses"`
	Income    []CreateIncomeRequest     `json:"income"`
	Products  []CreateIngredientRequest `json:"products"`
	Recipes   []CreateRecipeRequest     `json:"recipes"`
	Tasks     []CreateTaskRequest       `json:"tasks"`
	Enquiries []CreateEnquiryRequest    `json:"enquiries"`
	Settings  *UpdateSettingsRequest    `json:"settings"`
}

// ImportOrderRecord is an order row in a JSON dataset; the contact is
// referenced by natural key, not by id.
type ImportOrderRecord struct {
	OrderNumber  int              `json:"orderNumber"`
	ContactName  string           `json:"contactName"`
	ContactEmail string           `json:"contactEmail"`
	EventType    string           `json:"eventType"`
	EventDate    string           `json:"eventDate"`
	Status       string           `json:"status"`
	DeliveryType string           `json:"deliveryType"`
	Discount     string           `json:"discount"`
	SetupFee     string           `json:"setupFee"`
	TaxRate      string           `json:"taxRate"`
	Total        string           `json:"total"`
	Notes        string           `json:"notes"`
	Items        []OrderItemInput `json:"items"`
}

// ImportQuoteRecord mirrors ImportOrderRecord for quotes.
type ImportQuoteRecord struct {
	QuoteNumber  int              `json:"quoteNumber"`
	ContactName  string           `json:"contactName"`
	ContactEmail string           `json:"contactEmail"`
	EventType    string           `json:"eventType"`
	EventDate    string           `json:"eventDate"`
	Status       string           `json:"status"`
	DeliveryType string           `json:"deliveryType"`
	Discount     string           `json:"discount"`
	SetupFee     string           `json:"setupFee"`
	TaxRate      string           `json:"taxRate"`
	Total        string           `json:"total"`
	Notes        string           `json:"notes"`
	Items        []OrderItemInput `json:"items"`
}

// PaginatedResponse wraps list responses with paging metadata.
type PaginatedResponse struct {
	Data       interface{} `json:"data"`
	Total      int64       `json:"total"`
	Page       int         `json:"page"`
	PageSize   int         `json:"pageSize"`
	TotalPages int         `json:"totalPages"`
}

// Report DTOs

type ReportSummaryDTO struct {
	TotalOrders    int    `json:"totalOrders"`
	TotalRevenue   string `json:"totalRevenue"`
	TotalExpenses  string `json:"totalExpenses"`
	TotalIncome    string `json:"totalIncome"`
	NetProfit      string `json:"netProfit"`
	OpenEnquiries  int    `json:"openEnquiries"`
	UpcomingOrders int    `json:"upcomingOrders"`
}

type MonthlyReportRowDTO struct {
	Month    string `json:"month"` // YYYY-MM
	Orders   int    `json:"orders"`
	Revenue  string `json:"revenue"`
	Expenses string `json:"expenses"`
	Income   string `json:"income"`
	Net      string `json:"net"`
}
