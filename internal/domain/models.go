package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Base model with common fields
type BaseModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// BeforeCreate assigns a UUID so inserts work on databases without
// gen_random_uuid() (e.g. the sqlite test databases).
func (m *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// User represents a bakery business owner account
type User struct {
	BaseModel
	Email        string `gorm:"type:varchar(255);not null;uniqueIndex"`
	DisplayName  string `gorm:"type:varchar(200);column:display_name"`
	BusinessName string `gorm:"type:varchar(200);column:business_name"`
	IsActive     bool   `gorm:"not null;default:true;column:is_active"`
}

// Contact represents a customer of the bakery
type Contact struct {
	BaseModel
	OwnerID      uuid.UUID `gorm:"type:uuid;not null;index;column:owner_id"`
	FirstName    string    `gorm:"type:varchar(100);not null;column:first_name"`
	LastName     string    `gorm:"type:varchar(100);column:last_name"`
	Email        string    `gorm:"type:varchar(255);index"`
	Phone        string    `gorm:"type:varchar(50)"`
	BusinessName string    `gorm:"type:varchar(200);column:business_name"`
	Notes        string    `gorm:"type:text"`
}

// FullName returns the contact's full name
func (c *Contact) FullName() string {
	if c.LastName == "" {
		return c.FirstName
	}
	return c.FirstName + " " + c.LastName
}

// EventType classifies the occasion an order or enquiry is for
type EventType string

const (
	EventTypeBirthday    EventType = "birthday"
	EventTypeWedding     EventType = "wedding"
	EventTypeAnniversary EventType = "anniversary"
	EventTypeCorporate   EventType = "corporate"
	EventTypeBabyShower  EventType = "baby_shower"
	EventTypeChristening EventType = "christening"
	EventTypeGraduation  EventType = "graduation"
	EventTypeOther       EventType = "other"
)

// IsValid checks if the EventType is a valid enum value
func (e EventType) IsValid() bool {
	switch e {
	case EventTypeBirthday, EventTypeWedding, EventTypeAnniversary, EventTypeCorporate,
		EventTypeBabyShower, EventTypeChristening, EventTypeGraduation, EventTypeOther:
		return true
	}
	return false
}

// OrderStatus represents the lifecycle state of an order
type OrderStatus string

const (
	OrderStatusQuote     OrderStatus = "quote"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusPaid      OrderStatus = "paid"
	OrderStatusReady     OrderStatus = "ready"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// IsValid checks if the OrderStatus is a valid enum value
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusQuote, OrderStatusConfirmed, OrderStatusPaid,
		OrderStatusReady, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// DeliveryType represents how an order reaches the customer
type DeliveryType string

const (
	DeliveryTypePickup   DeliveryType = "pickup"
	DeliveryTypeDelivery DeliveryType = "delivery"
)

// IsValid checks if the DeliveryType is a valid enum value
func (d DeliveryType) IsValid() bool {
	return d == DeliveryTypePickup || d == DeliveryTypeDelivery
}

// Order represents a confirmed (or quoted) cake order.
// Monetary fields are decimal strings to avoid floating-point drift.
type Order struct {
	BaseModel
	OwnerID      uuid.UUID    `gorm:"type:uuid;not null;index;column:owner_id;uniqueIndex:idx_orders_owner_number"`
	ContactID    *uuid.UUID   `gorm:"type:uuid;index;column:contact_id"`
	Contact      *Contact     `gorm:"foreignKey:ContactID"`
	OrderNumber  int          `gorm:"not null;column:order_number;uniqueIndex:idx_orders_owner_number"`
	EventType    EventType    `gorm:"type:varchar(50);not null;default:'other';column:event_type"`
	EventDate    *time.Time   `gorm:"type:date;column:event_date"`
	Status       OrderStatus  `gorm:"type:varchar(50);not null;default:'quote';index"`
	DeliveryType DeliveryType `gorm:"type:varchar(50);not null;default:'pickup';column:delivery_type"`
	Discount     string       `gorm:"type:decimal(12,2);not null;default:0"`
	SetupFee     string       `gorm:"type:decimal(12,2);not null;default:0;column:setup_fee"`
	TaxRate      string       `gorm:"type:decimal(6,3);not null;default:0;column:tax_rate"`
	Total        string       `gorm:"type:decimal(12,2);not null;default:0"`
	Notes        string       `gorm:"type:text"`
	Items        []OrderItem  `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// OrderItem is a line item on an order. Items are replaced as a unit
// whenever the parent order is edited or re-imported.
type OrderItem struct {
	BaseModel
	OrderID     uuid.UUID `gorm:"type:uuid;not null;index;column:order_id"`
	Name        string    `gorm:"type:varchar(200);not null"`
	Description string    `gorm:"type:text"`
	Quantity    string    `gorm:"type:decimal(10,2);not null;default:1"`
	UnitPrice   string    `gorm:"type:decimal(12,2);not null;default:0;column:unit_price"`
	LinePrice   string    `gorm:"type:decimal(12,2);not null;default:0;column:line_price"`
}

// QuoteStatus represents the lifecycle state of a quote
type QuoteStatus string

const (
	QuoteStatusDraft     QuoteStatus = "draft"
	QuoteStatusSent      QuoteStatus = "sent"
	QuoteStatusAccepted  QuoteStatus = "accepted"
	QuoteStatusDeclined  QuoteStatus = "declined"
	QuoteStatusExpired   QuoteStatus = "expired"
	QuoteStatusCancelled QuoteStatus = "cancelled"
)

// IsValid checks if the QuoteStatus is a valid enum value
func (s QuoteStatus) IsValid() bool {
	switch s {
	case QuoteStatusDraft, QuoteStatusSent, QuoteStatusAccepted,
		QuoteStatusDeclined, QuoteStatusExpired, QuoteStatusCancelled:
		return true
	}
	return false
}

// Quote represents a priced proposal that may be converted to an order
type Quote struct {
	BaseModel
	OwnerID      uuid.UUID    `gorm:"type:uuid;not null;index;column:owner_id;uniqueIndex:idx_quotes_owner_number"`
	ContactID    *uuid.UUID   `gorm:"type:uuid;index;column:contact_id"`
	Contact      *Contact     `gorm:"foreignKey:ContactID"`
	QuoteNumber  int          `gorm:"not null;column:quote_number;uniqueIndex:idx_quotes_owner_number"`
	EventType    EventType    `gorm:"type:varchar(50);not null;default:'other';column:event_type"`
	EventDate    *time.Time   `gorm:"type:date;column:event_date"`
	Status       QuoteStatus  `gorm:"type:varchar(50);not null;default:'draft';index"`
	DeliveryType DeliveryType `gorm:"type:varchar(50);not null;default:'pickup';column:delivery_type"`
	Discount     string       `gorm:"type:decimal(12,2);not null;default:0"`
	SetupFee     string       `gorm:"type:decimal(12,2);not null;default:0;column:setup_fee"`
	TaxRate      string       `gorm:"type:decimal(6,3);not null;default:0;column:tax_rate"`
	Total        string       `gorm:"type:decimal(12,2);not null;default:0"`
	Notes        string       `gorm:"type:text"`
	Items        []QuoteItem  `gorm:"foreignKey:QuoteID;constraint:OnDelete:CASCADE"`
}

// QuoteItem is a line item on a quote
type QuoteItem struct {
	BaseModel
	QuoteID     uuid.UUID `gorm:"type:uuid;not null;index;column:quote_id"`
	Name        string    `gorm:"type:varchar(200);not null"`
	Description string    `gorm:"type:text"`
	Quantity    string    `gorm:"type:decimal(10,2);not null;default:1"`
	UnitPrice   string    `gorm:"type:decimal(12,2);not null;default:0;column:unit_price"`
	LinePrice   string    `gorm:"type:decimal(12,2);not null;default:0;column:line_price"`
}

// Expense represents a business cost entry
type Expense struct {
	BaseModel
	OwnerID       uuid.UUID  `gorm:"type:uuid;not null;index;column:owner_id"`
	Date          *time.Time `gorm:"type:date"`
	Category      string     `gorm:"type:varchar(100);index"`
	Amount        string     `gorm:"type:decimal(12,2);not null;default:0"`
	Description   string     `gorm:"type:varchar(500)"`
	Supplier      string     `gorm:"type:varchar(200)"`
	PaymentSource string     `gorm:"type:varchar(100);column:payment_source"`
	VATAmount     string     `gorm:"type:decimal(12,2);not null;default:0;column:vat_amount"`
	TotalIncTax   string     `gorm:"type:decimal(12,2);not null;default:0;column:total_inc_tax"`
	IsRecurring   bool       `gorm:"not null;default:false;column:is_recurring"`
	TaxDeductible bool       `gorm:"not null;default:false;column:tax_deductible"`
}

// Income represents a revenue entry outside of orders (e.g. market stall sales)
type Income struct {
	BaseModel
	OwnerID     uuid.UUID  `gorm:"type:uuid;not null;index;column:owner_id"`
	Date        *time.Time `gorm:"type:date"`
	Category    string     `gorm:"type:varchar(100);index"`
	Amount      string     `gorm:"type:decimal(12,2);not null;default:0"`
	Description string     `gorm:"type:varchar(500)"`
	Source      string     `gorm:"type:varchar(200)"`
}

// Ingredient represents a purchasable baking ingredient
type Ingredient struct {
	BaseModel
	OwnerID     uuid.UUID `gorm:"type:uuid;not null;index;column:owner_id"`
	Name        string    `gorm:"type:varchar(200);not null;index"`
	PackSize    string    `gorm:"type:decimal(10,3);not null;default:0;column:pack_size"`
	PackCost    string    `gorm:"type:decimal(12,2);not null;default:0;column:pack_cost"`
	Unit        string    `gorm:"type:varchar(50)"`
	CostPerUnit string    `gorm:"type:decimal(12,4);not null;default:0;column:cost_per_unit"`
}

// Recipe represents a bake with its ingredient list
type Recipe struct {
	BaseModel
	OwnerID     uuid.UUID          `gorm:"type:uuid;not null;index;column:owner_id"`
	Name        string             `gorm:"type:varchar(200);not null;index"`
	Description string             `gorm:"type:text"`
	Category    string             `gorm:"type:varchar(100)"`
	Servings    int                `gorm:"not null;default:0"`
	Ingredients []RecipeIngredient `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE"`
}

// RecipeIngredient joins a recipe to an ingredient with quantity and a
// stored line cost used when the ingredient reference is missing.
type RecipeIngredient struct {
	BaseModel
	RecipeID     uuid.UUID   `gorm:"type:uuid;not null;index;column:recipe_id"`
	IngredientID *uuid.UUID  `gorm:"type:uuid;index;column:ingredient_id"`
	Ingredient   *Ingredient `gorm:"foreignKey:IngredientID"`
	Quantity     string      `gorm:"type:decimal(10,3);not null;default:0"`
	Unit         string      `gorm:"type:varchar(50)"`
	Cost         string      `gorm:"type:decimal(12,2);not null;default:0"`
}

// Task represents a to-do item for the owner
type Task struct {
	BaseModel
	OwnerID     uuid.UUID      `gorm:"type:uuid;not null;index;column:owner_id"`
	Title       string         `gorm:"type:varchar(300);not null"`
	Details     string         `gorm:"type:text"`
	DueDate     *time.Time     `gorm:"type:date;column:due_date"`
	Completed   bool           `gorm:"not null;default:false;index"`
	CompletedAt *time.Time     `gorm:"column:completed_at"`
	Tags        pq.StringArray `gorm:"type:text[]"`
}

// EnquiryStatus represents the follow-up state of an enquiry
type EnquiryStatus string

const (
	EnquiryStatusNew       EnquiryStatus = "new"
	EnquiryStatusResponded EnquiryStatus = "responded"
	EnquiryStatusConverted EnquiryStatus = "converted"
	EnquiryStatusClosed    EnquiryStatus = "closed"
)

// IsValid checks if the EnquiryStatus is a valid enum value
func (s EnquiryStatus) IsValid() bool {
	switch s {
	case EnquiryStatusNew, EnquiryStatusResponded, EnquiryStatusConverted, EnquiryStatusClosed:
		return true
	}
	return false
}

// Enquiry represents an incoming customer enquiry not yet tied to an order
type Enquiry struct {
	BaseModel
	OwnerID   uuid.UUID     `gorm:"type:uuid;not null;index;column:owner_id"`
	Name      string        `gorm:"type:varchar(200);not null"`
	Email     string        `gorm:"type:varchar(255)"`
	Phone     string        `gorm:"type:varchar(50)"`
	EventType EventType     `gorm:"type:varchar(50);not null;default:'other';column:event_type"`
	EventDate *time.Time    `gorm:"type:date;column:event_date"`
	Details   string        `gorm:"type:text"`
	Status    EnquiryStatus `gorm:"type:varchar(50);not null;default:'new';index"`
	Source    string        `gorm:"type:varchar(100)"`
}

// Settings holds per-owner business settings (one row per owner)
type Settings struct {
	BaseModel
	OwnerID        uuid.UUID `gorm:"type:uuid;not null;uniqueIndex;column:owner_id"`
	BusinessName   string    `gorm:"type:varchar(200);column:business_name"`
	CurrencyCode   string    `gorm:"type:varchar(3);not null;default:'USD';column:currency_code"`
	DefaultTaxRate string    `gorm:"type:decimal(6,3);not null;default:0;column:default_tax_rate"`
	WeekStartDay   string    `gorm:"type:varchar(10);not null;default:'monday';column:week_start_day"`
}

// TaxRate represents a named tax rate the owner can apply to orders
type TaxRate struct {
	BaseModel
	OwnerID     uuid.UUID `gorm:"type:uuid;not null;index;column:owner_id"`
	Name        string    `gorm:"type:varchar(100);not null"`
	RatePercent string    `gorm:"type:decimal(6,3);not null;default:0;column:rate_percent"`
	IsDefault   bool      `gorm:"not null;default:false;column:is_default"`
}

// FeatureSetting toggles an application feature for one owner
type FeatureSetting struct {
	BaseModel
	OwnerID    uuid.UUID `gorm:"type:uuid;not null;column:owner_id;uniqueIndex:idx_feature_owner_key"`
	FeatureKey string    `gorm:"type:varchar(100);not null;column:feature_key;uniqueIndex:idx_feature_owner_key"`
	Enabled    bool      `gorm:"not null;default:false"`
}

// OrderSequence backs the per-owner sequential order and quote numbers
type OrderSequence struct {
	BaseModel
	OwnerID   uuid.UUID `gorm:"type:uuid;not null;column:owner_id;uniqueIndex:idx_sequence_owner_kind"`
	Kind      string    `gorm:"type:varchar(20);not null;column:kind;uniqueIndex:idx_sequence_owner_kind"`
	NextValue int       `gorm:"not null;default:1;column:next_value"`
}
