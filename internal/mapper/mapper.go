package mapper

import (
	"time"

	"github.com/ovenledger/bakery-api/internal/domain"
	"github.com/shopspring/decimal"
)

const timestampLayout = "2006-01-02T15:04:05Z"
const dateLayout = "2006-01-02"

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(dateLayout)
	return &s
}

// ToContactDTO converts Contact to ContactDTO
func ToContactDTO(contact *domain.Contact) domain.ContactDTO {
	return domain.ContactDTO{
		ID:           contact.ID,
		FirstName:    contact.FirstName,
		LastName:     contact.LastName,
		FullName:     contact.FullName(),
		Email:        contact.Email,
		Phone:        contact.Phone,
		BusinessName: contact.BusinessName,
		Notes:        contact.Notes,
		CreatedAt:    contact.CreatedAt.Format(timestampLayout),
		UpdatedAt:    contact.UpdatedAt.Format(timestampLayout),
	}
}

// itemsTotal derives the display-time sum of line prices. The stored
// parent total is trusted and never overwritten from this.
func itemsTotal(prices []string) string {
	sum := decimal.Zero
	for _, p := range prices {
		if d, err := decimal.NewFromString(p); err == nil {
			sum = sum.Add(d)
		}
	}
	return sum.StringFixed(2)
}

// ToOrderDTO converts Order to OrderDTO
func ToOrderDTO(order *domain.Order) domain.OrderDTO {
	items := make([]domain.OrderItemDTO, len(order.Items))
	prices := make([]string, len(order.Items))
	for i, item := range order.Items {
		items[i] = ToOrderItemDTO(&item)
		prices[i] = item.LinePrice
	}

	dto := domain.OrderDTO{
		ID:           order.ID,
		ContactID:    order.ContactID,
		OrderNumber:  order.OrderNumber,
		EventType:    order.EventType,
		EventDate:    formatDate(order.EventDate),
		Status:       order.Status,
		DeliveryType: order.DeliveryType,
		Discount:     order.Discount,
		SetupFee:     order.SetupFee,
		TaxRate:      order.TaxRate,
		Total:        order.Total,
		ItemsTotal:   itemsTotal(prices),
		Notes:        order.Notes,
		Items:        items,
		CreatedAt:    order.CreatedAt.Format(timestampLayout),
		UpdatedAt:    order.UpdatedAt.Format(timestampLayout),
	}

	if order.Contact != nil {
		dto.ContactName = order.Contact.FullName()
	}

	return dto
}

// ToOrderItemDTO converts OrderItem to OrderItemDTO
func ToOrderItemDTO(item *domain.OrderItem) domain.OrderItemDTO {
	return domain.OrderItemDTO{
		ID:          item.ID,
		Name:        item.Name,
		Description: item.Description,
		Quantity:    item.Quantity,
		UnitPrice:   item.UnitPrice,
		LinePrice:   item.LinePrice,
	}
}

// ToQuoteDTO converts Quote to QuoteDTO
func ToQuoteDTO(quote *domain.Quote) domain.QuoteDTO {
	items := make([]domain.QuoteItemDTO, len(quote.Items))
	prices := make([]string, len(quote.Items))
	for i, item := range quote.Items {
		items[i] = ToQuoteItemDTO(&item)
		prices[i] = item.LinePrice
	}

	dto := domain.QuoteDTO{
		ID:           quote.ID,
		ContactID:    quote.ContactID,
		QuoteNumber:  quote.QuoteNumber,
		EventType:    quote.EventType,
		EventDate:    formatDate(quote.EventDate),
		Status:       quote.Status,
		DeliveryType: quote.DeliveryType,
		Discount:     quote.Discount,
		SetupFee:     quote.SetupFee,
		TaxRate:      quote.TaxRate,
		Total:        quote.Total,
		ItemsTotal:   itemsTotal(prices),
		Notes:        quote.Notes,
		Items:        items,
		CreatedAt:    quote.CreatedAt.Format(timestampLayout),
		UpdatedAt:    quote.UpdatedAt.Format(timestampLayout),
	}

	if quote.Contact != nil {
		dto.ContactName = quote.Contact.FullName()
	}

	return dto
}

// ToQuoteItemDTO converts QuoteItem to QuoteItemDTO
func ToQuoteItemDTO(item *domain.QuoteItem) domain.QuoteItemDTO {
	return domain.QuoteItemDTO{
		ID:          item.ID,
		Name:        item.Name,
		Description: item.Description,
		Quantity:    item.Quantity,
		UnitPrice:   item.UnitPrice,
		LinePrice:   item.LinePrice,
	}
}

// ToExpenseDTO converts Expense to ExpenseDTO
func ToExpenseDTO(expense *domain.Expense) domain.ExpenseDTO {
	return domain.ExpenseDTO{
		ID:            expense.ID,
		Date:          formatDate(expense.Date),
		Category:      expense.Category,
		Amount:        expense.Amount,
		Description:   expense.Description,
		Supplier:      expense.Supplier,
		PaymentSource: expense.PaymentSource,
		VATAmount:     expense.VATAmount,
		TotalIncTax:   expense.TotalIncTax,
		IsRecurring:   expense.IsRecurring,
		TaxDeductible: expense.TaxDeductible,
		CreatedAt:     expense.CreatedAt.Format(timestampLayout),
		UpdatedAt:     expense.UpdatedAt.Format(timestampLayout),
	}
}

// ToIncomeDTO converts Income to IncomeDTO
func ToIncomeDTO(income *domain.Income) domain.IncomeDTO {
	return domain.IncomeDTO{
		ID:          income.ID,
		Date:        formatDate(income.Date),
		Category:    income.Category,
		Amount:      income.Amount,
		Description: income.Description,
		Source:      income.Source,
		CreatedAt:   income.CreatedAt.Format(timestampLayout),
		UpdatedAt:   income.UpdatedAt.Format(timestampLayout),
	}
}

// ToIngredientDTO converts Ingredient to IngredientDTO
func ToIngredientDTO(ingredient *domain.Ingredient) domain.IngredientDTO {
	return domain.IngredientDTO{
		ID:          ingredient.ID,
		Name:        ingredient.Name,
		PackSize:    ingredient.PackSize,
		PackCost:    ingredient.PackCost,
		Unit:        ingredient.Unit,
		CostPerUnit: ingredient.CostPerUnit,
		CreatedAt:   ingredient.CreatedAt.Format(timestampLayout),
		UpdatedAt:   ingredient.UpdatedAt.Format(timestampLayout),
	}
}

// ToRecipeDTO converts Recipe to RecipeDTO
func ToRecipeDTO(recipe *domain.Recipe) domain.RecipeDTO {
	ingredients := make([]domain.RecipeIngredientDTO, len(recipe.Ingredients))
	for i, ri := range recipe.Ingredients {
		ingredients[i] = ToRecipeIngredientDTO(&ri)
	}

	return domain.RecipeDTO{
		ID:          recipe.ID,
		Name:        recipe.Name,
		Description: recipe.Description,
		Category:    recipe.Category,
		Servings:    recipe.Servings,
		Ingredients: ingredients,
		CreatedAt:   recipe.CreatedAt.Format(timestampLayout),
		UpdatedAt:   recipe.UpdatedAt.Format(timestampLayout),
	}
}

// ToRecipeIngredientDTO converts RecipeIngredient to RecipeIngredientDTO
func ToRecipeIngredientDTO(ri *domain.RecipeIngredient) domain.RecipeIngredientDTO {
	dto := domain.RecipeIngredientDTO{
		ID:           ri.ID,
		IngredientID: ri.IngredientID,
		Quantity:     ri.Quantity,
		Unit:         ri.Unit,
		Cost:         ri.Cost,
	}
	if ri.Ingredient != nil {
		dto.IngredientName = ri.Ingredient.Name
	}
	return dto
}

// ToTaskDTO converts Task to TaskDTO
func ToTaskDTO(task *domain.Task) domain.TaskDTO {
	dto := domain.TaskDTO{
		ID:        task.ID,
		Title:     task.Title,
		Details:   task.Details,
		DueDate:   formatDate(task.DueDate),
		Completed: task.Completed,
		Tags:      task.Tags,
		CreatedAt: task.CreatedAt.Format(timestampLayout),
		UpdatedAt: task.UpdatedAt.Format(timestampLayout),
	}
	if task.CompletedAt != nil {
		s := task.CompletedAt.Format(timestampLayout)
		dto.CompletedAt = &s
	}
	return dto
}

// ToEnquiryDTO converts Enquiry to EnquiryDTO
func ToEnquiryDTO(enquiry *domain.Enquiry) domain.EnquiryDTO {
	return domain.EnquiryDTO{
		ID:        enquiry.ID,
		Name:      enquiry.Name,
		Email:     enquiry.Email,
		Phone:     enquiry.Phone,
		EventType: enquiry.EventType,
		EventDate: formatDate(enquiry.EventDate),
		Details:   enquiry.Details,
		Status:    enquiry.Status,
		Source:    enquiry.Source,
		CreatedAt: enquiry.CreatedAt.Format(timestampLayout),
		UpdatedAt: enquiry.UpdatedAt.Format(timestampLayout),
	}
}

// ToSettingsDTO converts Settings to SettingsDTO
func ToSettingsDTO(settings *domain.Settings) domain.SettingsDTO {
	return domain.SettingsDTO{
		BusinessName:   settings.BusinessName,
		CurrencyCode:   settings.CurrencyCode,
		DefaultTaxRate: settings.DefaultTaxRate,
		WeekStartDay:   settings.WeekStartDay,
	}
}

// ToTaxRateDTO converts TaxRate to TaxRateDTO
func ToTaxRateDTO(rate *domain.TaxRate) domain.TaxRateDTO {
	return domain.TaxRateDTO{
		ID:          rate.ID,
		Name:        rate.Name,
		RatePercent: rate.RatePercent,
		IsDefault:   rate.IsDefault,
	}
}

// ToFeatureSettingDTO converts FeatureSetting to FeatureSettingDTO
func ToFeatureSettingDTO(fs *domain.FeatureSetting) domain.FeatureSettingDTO {
	return domain.FeatureSettingDTO{
		FeatureKey: fs.FeatureKey,
		Enabled:    fs.Enabled,
	}
}
