package importer

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Canonical field names produced by the mapper. Services consume these
// instead of source column names.
const (
	FieldDate          = "date"
	FieldDescription   = "description"
	FieldCategory      = "category"
	FieldAmount        = "amount"
	FieldSupplier      = "supplier"
	FieldPaymentSource = "paymentSource"
	FieldVATAmount     = "vatAmount"
	FieldTotalIncTax   = "totalIncTax"
	FieldIsRecurring   = "isRecurring"
	FieldTaxDeductible = "taxDeductible"

	FieldFirstName    = "firstName"
	FieldLastName     = "lastName"
	FieldEmail        = "email"
	FieldPhone        = "phone"
	FieldBusinessName = "businessName"
	FieldNotes        = "notes"

	FieldOrderNumber  = "orderNumber"
	FieldContactName  = "contactName"
	FieldContactEmail = "contactEmail"
	FieldEventType    = "eventType"
	FieldEventDate    = "eventDate"
	FieldStatus       = "status"
	FieldDeliveryType = "deliveryType"
	FieldDiscount     = "discount"
	FieldSetupFee     = "setupFee"
	FieldTaxRate      = "taxRate"
	FieldTotal        = "total"

	FieldItemName  = "itemName"
	FieldQuantity  = "quantity"
	FieldUnitPrice = "unitPrice"
	FieldLinePrice = "linePrice"
)

// Kind is the transform applied to a source column's raw value.
type Kind int

const (
	KindText Kind = iota
	KindMoney
	KindDate
	KindBool
	KindInt
)

// columnRule binds a source column to a canonical field. When several
// source columns feed the same canonical field, the highest-priority
// column with a non-empty value wins for that row.
type columnRule struct {
	field    string
	kind     Kind
	priority int
}

var genericColumns = map[string]columnRule{
	"date":              {FieldDate, KindDate, 0},
	"description":       {FieldDescription, KindText, 0},
	"expense":           {FieldDescription, KindText, 1},
	"category":          {FieldCategory, KindText, 0},
	"amount":            {FieldAmount, KindMoney, 0},
	"amount (incl vat)": {FieldAmount, KindMoney, 1},
	"supplier":          {FieldSupplier, KindText, 0},
	"payment source":    {FieldPaymentSource, KindText, 0},
	"paid from":         {FieldPaymentSource, KindText, 1},
	"vat":               {FieldVATAmount, KindMoney, 0},
	"vat amount":        {FieldVATAmount, KindMoney, 1},
	"total inc tax":     {FieldTotalIncTax, KindMoney, 1},
	"total":             {FieldTotalIncTax, KindMoney, 0},
	"is recurring":      {FieldIsRecurring, KindBool, 0},
	"recurring?":        {FieldIsRecurring, KindBool, 1},
	"tax deductible":    {FieldTaxDeductible, KindBool, 0},
	"tax deductible?":   {FieldTaxDeductible, KindBool, 1},
}

var bakeDiaryContactColumns = map[string]columnRule{
	"first name":    {FieldFirstName, KindText, 0},
	"last name":     {FieldLastName, KindText, 0},
	"email":         {FieldEmail, KindText, 0},
	"phone":         {FieldPhone, KindText, 0},
	"mobile":        {FieldPhone, KindText, 1},
	"business":      {FieldBusinessName, KindText, 0},
	"business name": {FieldBusinessName, KindText, 1},
	"notes":         {FieldNotes, KindText, 0},
}

var bakeDiaryOrderColumns = map[string]columnRule{
	"order number": {FieldOrderNumber, KindInt, 0},
	"contact":      {FieldContactName, KindText, 0},
	"email":        {FieldContactEmail, KindText, 0},
	"event type":   {FieldEventType, KindText, 0},
	"event date":   {FieldEventDate, KindDate, 0},
	"status":       {FieldStatus, KindText, 0},
	"delivery":     {FieldDeliveryType, KindText, 0},
	"discount":     {FieldDiscount, KindMoney, 0},
	"setup fee":    {FieldSetupFee, KindMoney, 0},
	"tax rate":     {FieldTaxRate, KindMoney, 0},
	"total":        {FieldTotal, KindMoney, 0},
	"order total":  {FieldTotal, KindMoney, 1},
	"notes":        {FieldNotes, KindText, 0},
}

var bakeDiaryOrderItemColumns = map[string]columnRule{
	"order number": {FieldOrderNumber, KindInt, 0},
	"item":         {FieldItemName, KindText, 0},
	"item name":    {FieldItemName, KindText, 1},
	"description":  {FieldDescription, KindText, 0},
	"quantity":     {FieldQuantity, KindMoney, 0},
	"unit price":   {FieldUnitPrice, KindMoney, 0},
	"price":        {FieldLinePrice, KindMoney, 0},
	"item total":   {FieldLinePrice, KindMoney, 1},
}

var columnTables = map[Format]map[string]columnRule{
	FormatGeneric:             genericColumns,
	FormatBakeDiaryExpenses:   genericColumns,
	FormatBakeDiaryContacts:   bakeDiaryContactColumns,
	FormatBakeDiaryOrders:     bakeDiaryOrderColumns,
	FormatBakeDiaryOrderItems: bakeDiaryOrderItemColumns,
}

// requiredFields must be covered by a file's header row or the whole
// import aborts before any row is processed.
var requiredFields = map[Format][]string{
	FormatGeneric:             {FieldDate, FieldAmount},
	FormatBakeDiaryExpenses:   {FieldDate, FieldAmount},
	FormatBakeDiaryContacts:   {FieldFirstName},
	FormatBakeDiaryOrders:     {FieldOrderNumber},
	FormatBakeDiaryOrderItems: {FieldOrderNumber, FieldItemName},
}

// Record is one canonical row: canonical field name to typed value
// (string, bool or int depending on the field's kind).
type Record map[string]any

// String returns the record's value for a text, money or date field.
func (r Record) String(field string) string {
	if v, ok := r[field].(string); ok {
		return v
	}
	return ""
}

// Bool returns the record's value for a boolean field.
func (r Record) Bool(field string) bool {
	if v, ok := r[field].(bool); ok {
		return v
	}
	return false
}

// Int returns the record's value for an integer field.
func (r Record) Int(field string) int {
	if v, ok := r[field].(int); ok {
		return v
	}
	return 0
}

// Warning records a lenient fallback applied to one row. Row numbers are
// 1-based data row positions.
type Warning struct {
	Row     int
	Field   string
	Message string
}

// MapResult is the outcome of mapping one file's data rows.
type MapResult struct {
	Records  []Record
	Skipped  int
	Warnings []Warning
}

// boundColumn ties a header position to its column rule for one file.
type boundColumn struct {
	index int
	rule  columnRule
}

// candidate is the winning raw value so far for one canonical field.
type candidate struct {
	raw      string
	kind     Kind
	priority int
}

// MapRows translates raw data rows into canonical records using the
// static column table for the given format. Blank and too-short rows are
// skipped, as are vendor summary rows ("Total" in a numeric column).
// Every canonical field known to the format is populated, falling back
// to the kind's zero default when the source column is absent. A missing
// required column aborts with an error before any row is mapped.
func MapRows(format Format, headers []string, rows [][]string, today time.Time) (*MapResult, error) {
	table, ok := columnTables[format]
	if !ok {
		return nil, fmt.Errorf("unknown format %q", format)
	}

	// Bind header positions to rules.
	var bound []boundColumn
	mapped := make(map[string]bool)
	for i, h := range headers {
		if rule, ok := table[strings.ToLower(strings.TrimSpace(h))]; ok {
			bound = append(bound, boundColumn{index: i, rule: rule})
			mapped[rule.field] = true
		}
	}

	var missing []string
	for _, f := range requiredFields[format] {
		if !mapped[f] {
			missing = append(missing, f)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, fmt.Errorf("missing required columns: %s", strings.Join(missing, ", "))
	}

	result := &MapResult{}

	for i, row := range rows {
		rowNum := i + 1

		if isBlankRow(row) || len(row) < 2 {
			result.Skipped++
			continue
		}
		if isSummaryRow(row, bound) {
			result.Skipped++
			continue
		}

		// Pick the winning raw value per canonical field: the
		// highest-priority column that has a value on this row.
		chosen := make(map[string]candidate)
		for _, bc := range bound {
			raw := ""
			if bc.index < len(row) {
				raw = row[bc.index]
			}
			prev, seen := chosen[bc.rule.field]
			if seen && prev.raw != "" && (raw == "" || bc.rule.priority <= prev.priority) {
				continue
			}
			chosen[bc.rule.field] = candidate{raw: raw, kind: bc.rule.kind, priority: bc.rule.priority}
		}

		record := Record{}
		for field, c := range chosen {
			switch c.kind {
			case KindMoney:
				value, parsed := NormalizeMoney(c.raw)
				if !parsed && c.raw != "" {
					result.Warnings = append(result.Warnings, Warning{
						Row: rowNum, Field: field,
						Message: fmt.Sprintf("unparseable amount %q, defaulted to 0", c.raw),
					})
				}
				record[field] = value
			case KindDate:
				value, parsed := NormalizeDate(c.raw, today)
				if !parsed {
					result.Warnings = append(result.Warnings, Warning{
						Row: rowNum, Field: field,
						Message: fmt.Sprintf("unparseable date %q, defaulted to today", c.raw),
					})
				}
				record[field] = value
			case KindBool:
				record[field] = NormalizeBool(c.raw)
			case KindInt:
				n, parsed := NormalizeInt(c.raw)
				if !parsed && c.raw != "" {
					result.Warnings = append(result.Warnings, Warning{
						Row: rowNum, Field: field,
						Message: fmt.Sprintf("unparseable number %q, defaulted to 0", c.raw),
					})
				}
				record[field] = n
			default:
				record[field] = strings.TrimSpace(c.raw)
			}
		}

		// Fields the file never provided still get their type default.
		for _, rule := range table {
			if _, ok := record[rule.field]; ok {
				continue
			}
			switch rule.kind {
			case KindMoney:
				record[rule.field] = "0"
			case KindDate:
				record[rule.field] = today.Format("2006-01-02")
			case KindBool:
				record[rule.field] = false
			case KindInt:
				record[rule.field] = 0
			default:
				record[rule.field] = ""
			}
		}

		result.Records = append(result.Records, record)
	}

	return result, nil
}

// isSummaryRow reports whether a numeric-keyed column holds a vendor
// "Total" marker, which Bake Diary appends as the last row of exports.
func isSummaryRow(row []string, bound []boundColumn) bool {
	for _, bc := range bound {
		if bc.rule.kind != KindInt || bc.index >= len(row) {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(row[bc.index]), "total") {
			return true
		}
	}
	return false
}
