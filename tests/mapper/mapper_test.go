package mapper_test

import (
	"testing"
	"time"

	"github.com/ovenledger/bakery-api/internal/domain"
	"github.com/ovenledger/bakery-api/internal/mapper"
	"github.com/stretchr/testify/assert"
)

func TestToOrderDTO_SumsLinePrices(t *testing.T) {
	contact := &domain.Contact{FirstName: "Jane", LastName: "Doe"}

	order := &domain.Order{
		Contact:      contact,
		OrderNumber:  42,
		EventType:    domain.EventTypeBirthday,
		Status:       domain.OrderStatusConfirmed,
		DeliveryType: domain.DeliveryTypePickup,
		Discount:     "0.00",
		SetupFee:     "0.00",
		TaxRate:      "0",
		Total:        "60.00",
		Items: []domain.OrderItem{
			{Name: "Cupcakes", Quantity: "12.00", UnitPrice: "3.50", LinePrice: "42.00"},
			{Name: "Delivery", Quantity: "1.00", UnitPrice: "15.00", LinePrice: "15.00"},
			{Name: "Bad row", LinePrice: "not-a-number"}, // unparseable prices are ignored
		},
	}

	dto := mapper.ToOrderDTO(order)

	assert.Equal(t, "57.00", dto.ItemsTotal)
	assert.Equal(t, "Jane Doe", dto.ContactName)
	assert.Len(t, dto.Items, 3)
}

func TestToOrderDTO_NoContact(t *testing.T) {
	order := &domain.Order{OrderNumber: 1, Status: domain.OrderStatusQuote}

	dto := mapper.ToOrderDTO(order)
	assert.Empty(t, dto.ContactName)
	assert.Equal(t, "0.00", dto.ItemsTotal)
	assert.Empty(t, dto.Items)
}

func TestToTaskDTO_DateFormatting(t *testing.T) {
	due := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
	task := &domain.Task{
		Title:   "Order packaging",
		DueDate: &due,
		Tags:    []string{"supplies"},
	}

	dto := mapper.ToTaskDTO(task)
	assert.Equal(t, "Order packaging", dto.Title)
	assert.NotNil(t, dto.DueDate)
	assert.Equal(t, "2025-06-01", *dto.DueDate)
	assert.Nil(t, dto.CompletedAt)
}
