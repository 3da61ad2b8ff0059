package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ovenledger/bakery-api/internal/config"
	"github.com/ovenledger/bakery-api/internal/domain"
	"github.com/ovenledger/bakery-api/internal/importer"
	"github.com/ovenledger/bakery-api/internal/mapper"
	"github.com/ovenledger/bakery-api/internal/repository"
	"github.com/ovenledger/bakery-api/internal/storage"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Summary keys, one per entity family in an import batch.
const (
	tallyContacts   = "contacts"
	tallyOrders     = "orders"
	tallyOrderItems = "orderItems"
	tallyQuotes     = "quotes"
	tallyExpenses   = "expenses"
	tallyIncome     = "income"
	tallyProducts   = "products"
	tallyRecipes    = "recipes"
	tallyTasks      = "tasks"
	tallyEnquiries  = "enquiries"
	tallySettings   = "settings"
)

// ImportService drives the data-import pipeline: uploaded files and JSON
// datasets go through detection, mapping and cross-entity resolution
// before rows are persisted.
type ImportService struct {
	contactRepo    *repository.ContactRepository
	orderRepo      *repository.OrderRepository
	quoteRepo      *repository.QuoteRepository
	expenseRepo    *repository.ExpenseRepository
	incomeRepo     *repository.IncomeRepository
	ingredientRepo *repository.IngredientRepository
	recipeRepo     *repository.RecipeRepository
	taskRepo       *repository.TaskRepository
	enquiryRepo    *repository.EnquiryRepository
	settingsRepo   *repository.SettingsRepository
	sequenceRepo   *repository.SequenceRepository
	store          storage.Storage
	cfg            config.ImportConfig
	logger         *zap.Logger
}

func NewImportService(
	contactRepo *repository.ContactRepository,
	orderRepo *repository.OrderRepository,
	quoteRepo *repository.QuoteRepository,
	expenseRepo *repository.ExpenseRepository,
	incomeRepo *repository.IncomeRepository,
	ingredientRepo *repository.IngredientRepository,
	recipeRepo *repository.RecipeRepository,
	taskRepo *repository.TaskRepository,
	enquiryRepo *repository.EnquiryRepository,
	settingsRepo *repository.SettingsRepository,
	sequenceRepo *repository.SequenceRepository,
	store storage.Storage,
	cfg config.ImportConfig,
	logger *zap.Logger,
) *ImportService {
	return &ImportService{
		contactRepo:    contactRepo,
		orderRepo:      orderRepo,
		quoteRepo:      quoteRepo,
		expenseRepo:    expenseRepo,
		incomeRepo:     incomeRepo,
		ingredientRepo: ingredientRepo,
		recipeRepo:     recipeRepo,
		taskRepo:       taskRepo,
		enquiryRepo:    enquiryRepo,
		settingsRepo:   settingsRepo,
		sequenceRepo:   sequenceRepo,
		store:          store,
		cfg:            cfg,
		logger:         logger,
	}
}

func newImportSummary() *domain.ImportSummary {
	return &domain.ImportSummary{Summary: make(map[string]domain.EntityTally)}
}

func (s *ImportService) imported(sum *domain.ImportSummary, key string) {
	t := sum.Summary[key]
	t.Imported++
	sum.Summary[key] = t
}

func (s *ImportService) skipped(sum *domain.ImportSummary, key string, n int) {
	t := sum.Summary[key]
	t.Skipped += n
	sum.Summary[key] = t
}

// rowError records a per-row failure, keeping the detail list bounded.
func (s *ImportService) rowError(sum *domain.ImportSummary, key, msg string) {
	t := sum.Summary[key]
	t.Errors++
	sum.Summary[key] = t
	if len(sum.Errors) < s.cfg.MaxErrorDetails {
		sum.Errors = append(sum.Errors, msg)
	}
}

func appendWarnings(sum *domain.ImportSummary, warnings []importer.Warning) {
	for _, w := range warnings {
		sum.Warnings = append(sum.Warnings, domain.RowWarning{
			Row:     w.Row,
			Field:   w.Field,
			Message: w.Message,
		})
	}
}

// ImportFile runs an uploaded file through the full pipeline. The file is
// spooled to a temp file that is always removed, and optionally archived
// to storage first. JSON dataset uploads are routed to ImportJSON with the
// same option flags. File-level problems (unreadable, unknown layout,
// missing required columns) abort the whole batch with ErrImportFile.
func (s *ImportService) ImportFile(ctx context.Context, ownerID uuid.UUID, file io.Reader, filename string, opts domain.ImportOptions) (*domain.ImportSummary, error) {
	tmp, err := os.CreateTemp(s.cfg.TempDir, "import-*.csv")
	if err != nil {
		return nil, fmt.Errorf("failed to spool upload: %w", err)
	}
	defer func() {
		tmp.Close()
		os.Remove(tmp.Name())
	}()

	if _, err := io.Copy(tmp, file); err != nil {
		return nil, fmt.Errorf("failed to spool upload: %w", err)
	}

	if s.cfg.ArchiveUploads && s.store != nil {
		if _, err := tmp.Seek(0, io.SeekStart); err == nil {
			if _, _, err := s.store.Upload(ctx, filename, "text/csv", tmp); err != nil {
				s.logger.Warn("failed to archive import file", zap.Error(err))
			}
		}
	}

	raw, err := os.ReadFile(tmp.Name())
	if err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}

	return s.importContent(ctx, ownerID, string(raw), opts)
}

func (s *ImportService) importContent(ctx context.Context, ownerID uuid.UUID, content string, opts domain.ImportOptions) (*domain.ImportSummary, error) {
	// A JSON dataset can arrive through the file endpoint too; hand it to
	// the structured importer with the same option flags.
	if trimmed := strings.TrimLeft(content, "\ufeff \t\r\n"); strings.HasPrefix(trimmed, "{") {
		var dataset domain.ImportDataset
		if err := json.Unmarshal([]byte(trimmed), &dataset); err != nil {
			return nil, fmt.Errorf("%w: invalid JSON dataset: %v", ErrImportFile, err)
		}
		return s.ImportJSON(ctx, ownerID, &dataset, opts)
	}

	det, err := importer.Detect(content)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrImportFile, err)
	}

	res, err := s.mapContent(content, det)
	if err != nil {
		return nil, err
	}

	sum := newImportSummary()
	appendWarnings(sum, res.Warnings)

	switch det.Format {
	case importer.FormatGeneric, importer.FormatBakeDiaryExpenses:
		if opts.ReplaceExisting {
			if _, err := s.expenseRepo.DeleteAllForOwner(ctx, ownerID); err != nil {
				return nil, fmt.Errorf("failed to clear expenses: %w", err)
			}
		}
		s.skipped(sum, tallyExpenses, res.Skipped)
		if _, err := s.importExpenseRecords(ctx, ownerID, res.Records, opts, sum); err != nil {
			return nil, err
		}
	case importer.FormatBakeDiaryContacts:
		if opts.ReplaceExisting {
			if _, err := s.contactRepo.DeleteAllForOwner(ctx, ownerID); err != nil {
				return nil, fmt.Errorf("failed to clear contacts: %w", err)
			}
		}
		s.skipped(sum, tallyContacts, res.Skipped)
		if err := s.importContactRecords(ctx, ownerID, res.Records, sum); err != nil {
			return nil, err
		}
	case importer.FormatBakeDiaryOrders:
		if opts.ReplaceExisting {
			if _, err := s.orderRepo.DeleteAllForOwner(ctx, ownerID); err != nil {
				return nil, fmt.Errorf("failed to clear orders: %w", err)
			}
		}
		s.skipped(sum, tallyOrders, res.Skipped)
		if err := s.importOrderRecords(ctx, ownerID, res.Records, sum); err != nil {
			return nil, err
		}
	case importer.FormatBakeDiaryOrderItems:
		s.skipped(sum, tallyOrderItems, res.Skipped)
		if err := s.importOrderItemRecords(ctx, ownerID, res.Records, sum); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: unsupported format %q", ErrImportFile, det.Format)
	}

	s.logger.Info("import batch finished",
		zap.String("format", string(det.Format)),
		zap.Any("summary", sum.Summary))

	return sum, nil
}

// mapContent splits the file at the detected header row and maps the
// data rows into canonical records.
func (s *ImportService) mapContent(content string, det importer.Detection) (*importer.MapResult, error) {
	lines := importer.SplitLines(content)
	headers := importer.SplitLine(lines[det.HeaderRow])

	rows := make([][]string, 0, len(lines)-det.HeaderRow-1)
	for _, line := range lines[det.HeaderRow+1:] {
		rows = append(rows, importer.SplitLine(line))
	}

	res, err := importer.MapRows(det.Format, headers, rows, time.Now().UTC())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrImportFile, err)
	}
	return res, nil
}

// importExpenseRecords persists mapped expense rows, skipping duplicates
// by natural key (date, description, amount). It returns the created
// entries for callers that echo them back.
func (s *ImportService) importExpenseRecords(ctx context.Context, ownerID uuid.UUID, records []importer.Record, opts domain.ImportOptions, sum *domain.ImportSummary) ([]domain.ExpenseDTO, error) {
	var created []domain.ExpenseDTO

	for i, rec := range records {
		date := parseDate(rec.String(importer.FieldDate))
		description := rec.String(importer.FieldDescription)
		amount := rec.String(importer.FieldAmount)

		if !opts.ReplaceExisting && date != nil {
			exists, err := s.expenseRepo.ExistsByNaturalKey(ctx, ownerID, *date, description, amount)
			if err != nil {
				return created, fmt.Errorf("failed to check expense: %w", err)
			}
			if exists {
				s.skipped(sum, tallyExpenses, 1)
				continue
			}
		}

		expense := &domain.Expense{
			OwnerID:       ownerID,
			Date:          date,
			Category:      rec.String(importer.FieldCategory),
			Amount:        amount,
			Description:   description,
			Supplier:      rec.String(importer.FieldSupplier),
			PaymentSource: rec.String(importer.FieldPaymentSource),
			VATAmount:     rec.String(importer.FieldVATAmount),
			TotalIncTax:   rec.String(importer.FieldTotalIncTax),
			IsRecurring:   rec.Bool(importer.FieldIsRecurring),
			TaxDeductible: rec.Bool(importer.FieldTaxDeductible),
		}

		if err := s.expenseRepo.Create(ctx, expense); err != nil {
			s.rowError(sum, tallyExpenses, fmt.Sprintf("row %d: %v", i+1, err))
			continue
		}
		s.imported(sum, tallyExpenses)
		created = append(created, mapper.ToExpenseDTO(expense))
	}

	return created, nil
}

func (s *ImportService) importContactRecords(ctx context.Context, ownerID uuid.UUID, records []importer.Record, sum *domain.ImportSummary) error {
	for i, rec := range records {
		firstName := rec.String(importer.FieldFirstName)
		lastName := rec.String(importer.FieldLastName)
		email := rec.String(importer.FieldEmail)

		if firstName == "" {
			s.rowError(sum, tallyContacts, fmt.Sprintf("row %d: first name is empty", i+1))
			continue
		}

		exists, err := s.contactExists(ctx, ownerID, firstName, lastName, email)
		if err != nil {
			return err
		}
		if exists {
			s.skipped(sum, tallyContacts, 1)
			continue
		}

		contact := &domain.Contact{
			OwnerID:      ownerID,
			FirstName:    firstName,
			LastName:     lastName,
			Email:        email,
			Phone:        rec.String(importer.FieldPhone),
			BusinessName: rec.String(importer.FieldBusinessName),
			Notes:        rec.String(importer.FieldNotes),
		}

		if err := s.contactRepo.Create(ctx, contact); err != nil {
			s.rowError(sum, tallyContacts, fmt.Sprintf("row %d: %v", i+1, err))
			continue
		}
		s.imported(sum, tallyContacts)
	}

	return nil
}

// contactExists checks the duplicate keys in precedence order: email
// first, then full name.
func (s *ImportService) contactExists(ctx context.Context, ownerID uuid.UUID, firstName, lastName, email string) (bool, error) {
	if email != "" {
		_, err := s.contactRepo.GetByEmail(ctx, ownerID, email)
		if err == nil {
			return true, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return false, fmt.Errorf("failed to check contact: %w", err)
		}
	}

	_, err := s.contactRepo.GetByName(ctx, ownerID, firstName, lastName)
	if err == nil {
		return true, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, fmt.Errorf("failed to check contact: %w", err)
	}
	return false, nil
}

func (s *ImportService) importOrderRecords(ctx context.Context, ownerID uuid.UUID, records []importer.Record, sum *domain.ImportSummary) error {
	resolver := newContactResolver(s.contactRepo, ownerID)
	maxNumber := 0

	for i, rec := range records {
		number := rec.Int(importer.FieldOrderNumber)
		if number <= 0 {
			s.rowError(sum, tallyOrders, fmt.Sprintf("row %d: missing order number", i+1))
			continue
		}

		exists, err := s.orderRepo.ExistsByNumber(ctx, ownerID, number)
		if err != nil {
			return fmt.Errorf("failed to check order number: %w", err)
		}
		if exists {
			s.skipped(sum, tallyOrders, 1)
			continue
		}

		contactID, err := resolver.resolve(ctx, rec.String(importer.FieldContactName), rec.String(importer.FieldContactEmail))
		if err != nil {
			s.rowError(sum, tallyOrders, fmt.Sprintf("row %d: %v", i+1, err))
			continue
		}

		order := &domain.Order{
			OwnerID:      ownerID,
			ContactID:    contactID,
			OrderNumber:  number,
			EventType:    normalizeEventType(rec.String(importer.FieldEventType)),
			EventDate:    parseDate(rec.String(importer.FieldEventDate)),
			Status:       normalizeOrderStatus(rec.String(importer.FieldStatus)),
			DeliveryType: normalizeDeliveryType(rec.String(importer.FieldDeliveryType)),
			Discount:     rec.String(importer.FieldDiscount),
			SetupFee:     rec.String(importer.FieldSetupFee),
			TaxRate:      rec.String(importer.FieldTaxRate),
			Total:        rec.String(importer.FieldTotal),
			Notes:        rec.String(importer.FieldNotes),
		}

		if err := s.orderRepo.Create(ctx, order); err != nil {
			s.rowError(sum, tallyOrders, fmt.Sprintf("row %d: %v", i+1, err))
			continue
		}
		s.imported(sum, tallyOrders)
		if number > maxNumber {
			maxNumber = number
		}
	}

	// Future orders claim numbers above anything this batch brought in.
	if maxNumber > 0 {
		if err := s.sequenceRepo.Bump(ctx, ownerID, repository.SequenceKindOrder, maxNumber); err != nil {
			return fmt.Errorf("failed to advance order sequence: %w", err)
		}
	}

	return nil
}

func (s *ImportService) importOrderItemRecords(ctx context.Context, ownerID uuid.UUID, records []importer.Record, sum *domain.ImportSummary) error {
	// Group incoming items by order number so each order is written once.
	grouped := make(map[int][]domain.OrderItem)
	order := make([]int, 0)
	rowOf := make(map[int]int)

	for i, rec := range records {
		number := rec.Int(importer.FieldOrderNumber)
		if number <= 0 {
			s.rowError(sum, tallyOrderItems, fmt.Sprintf("row %d: missing order number", i+1))
			continue
		}
		if _, seen := grouped[number]; !seen {
			order = append(order, number)
			rowOf[number] = i + 1
		}
		grouped[number] = append(grouped[number], domain.OrderItem{
			Name:        rec.String(importer.FieldItemName),
			Description: rec.String(importer.FieldDescription),
			Quantity:    rec.String(importer.FieldQuantity),
			UnitPrice:   rec.String(importer.FieldUnitPrice),
			LinePrice:   rec.String(importer.FieldLinePrice),
		})
	}

	for _, number := range order {
		items := grouped[number]

		target, err := s.orderRepo.GetByNumber(ctx, ownerID, number)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				t := sum.Summary[tallyOrderItems]
				t.Errors += len(items)
				sum.Summary[tallyOrderItems] = t
				if len(sum.Errors) < s.cfg.MaxErrorDetails {
					sum.Errors = append(sum.Errors, fmt.Sprintf("row %d: order %d not found", rowOf[number], number))
				}
				continue
			}
			return fmt.Errorf("failed to look up order %d: %w", number, err)
		}

		merged := append(target.Items, items...)
		if err := s.orderRepo.ReplaceItems(ctx, target.ID, merged); err != nil {
			return fmt.Errorf("failed to attach items to order %d: %w", number, err)
		}

		t := sum.Summary[tallyOrderItems]
		t.Imported += len(items)
		sum.Summary[tallyOrderItems] = t
	}

	return nil
}

// ImportQuotesCSV maps an order-layout CSV into quotes. Bake Diary uses
// the same export shape for both, so the order column table applies.
func (s *ImportService) ImportQuotesCSV(ctx context.Context, ownerID uuid.UUID, content string, replaceExisting bool) (*domain.ImportSummary, error) {
	det, err := importer.Detect(content)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrImportFile, err)
	}
	if det.Format == importer.FormatGeneric {
		det.Format = importer.FormatBakeDiaryOrders
	}
	if det.Format != importer.FormatBakeDiaryOrders {
		return nil, fmt.Errorf("%w: file does not look like a quote export", ErrImportFile)
	}

	res, err := s.mapContent(content, det)
	if err != nil {
		return nil, err
	}

	sum := newImportSummary()
	appendWarnings(sum, res.Warnings)
	s.skipped(sum, tallyQuotes, res.Skipped)

	if replaceExisting {
		if _, err := s.quoteRepo.DeleteAllForOwner(ctx, ownerID); err != nil {
			return nil, fmt.Errorf("failed to clear quotes: %w", err)
		}
	}

	resolver := newContactResolver(s.contactRepo, ownerID)
	maxNumber := 0

	for i, rec := range res.Records {
		number := rec.Int(importer.FieldOrderNumber)
		if number <= 0 {
			s.rowError(sum, tallyQuotes, fmt.Sprintf("row %d: missing quote number", i+1))
			continue
		}

		exists, err := s.quoteRepo.ExistsByNumber(ctx, ownerID, number)
		if err != nil {
			return nil, fmt.Errorf("failed to check quote number: %w", err)
		}
		if exists {
			s.skipped(sum, tallyQuotes, 1)
			continue
		}

		contactID, err := resolver.resolve(ctx, rec.String(importer.FieldContactName), rec.String(importer.FieldContactEmail))
		if err != nil {
			s.rowError(sum, tallyQuotes, fmt.Sprintf("row %d: %v", i+1, err))
			continue
		}

		quote := &domain.Quote{
			OwnerID:      ownerID,
			ContactID:    contactID,
			QuoteNumber:  number,
			EventType:    normalizeEventType(rec.String(importer.FieldEventType)),
			EventDate:    parseDate(rec.String(importer.FieldEventDate)),
			Status:       normalizeQuoteStatus(rec.String(importer.FieldStatus)),
			DeliveryType: normalizeDeliveryType(rec.String(importer.FieldDeliveryType)),
			Discount:     rec.String(importer.FieldDiscount),
			SetupFee:     rec.String(importer.FieldSetupFee),
			TaxRate:      rec.String(importer.FieldTaxRate),
			Total:        rec.String(importer.FieldTotal),
			Notes:        rec.String(importer.FieldNotes),
		}

		if err := s.quoteRepo.Create(ctx, quote); err != nil {
			s.rowError(sum, tallyQuotes, fmt.Sprintf("row %d: %v", i+1, err))
			continue
		}
		s.imported(sum, tallyQuotes)
		if number > maxNumber {
			maxNumber = number
		}
	}

	if maxNumber > 0 {
		if err := s.sequenceRepo.Bump(ctx, ownerID, repository.SequenceKindQuote, maxNumber); err != nil {
			return nil, fmt.Errorf("failed to advance quote sequence: %w", err)
		}
	}

	return sum, nil
}

// ImportOrdersCSV imports a Bake Diary order export.
func (s *ImportService) ImportOrdersCSV(ctx context.Context, ownerID uuid.UUID, content string, replaceExisting bool) (*domain.ImportSummary, error) {
	det, err := importer.Detect(content)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrImportFile, err)
	}
	if det.Format == importer.FormatGeneric {
		det.Format = importer.FormatBakeDiaryOrders
	}
	if det.Format != importer.FormatBakeDiaryOrders {
		return nil, fmt.Errorf("%w: file does not look like an order export", ErrImportFile)
	}

	res, err := s.mapContent(content, det)
	if err != nil {
		return nil, err
	}

	sum := newImportSummary()
	appendWarnings(sum, res.Warnings)
	s.skipped(sum, tallyOrders, res.Skipped)

	if replaceExisting {
		if _, err := s.orderRepo.DeleteAllForOwner(ctx, ownerID); err != nil {
			return nil, fmt.Errorf("failed to clear orders: %w", err)
		}
	}

	if err := s.importOrderRecords(ctx, ownerID, res.Records, sum); err != nil {
		return nil, err
	}

	return sum, nil
}

// ImportOrderItemsCSV attaches line items to existing orders by number.
func (s *ImportService) ImportOrderItemsCSV(ctx context.Context, ownerID uuid.UUID, content string) (*domain.ImportSummary, error) {
	det, err := importer.Detect(content)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrImportFile, err)
	}
	if det.Format == importer.FormatGeneric {
		det.Format = importer.FormatBakeDiaryOrderItems
	}
	if det.Format != importer.FormatBakeDiaryOrderItems {
		return nil, fmt.Errorf("%w: file does not look like an order item export", ErrImportFile)
	}

	res, err := s.mapContent(content, det)
	if err != nil {
		return nil, err
	}

	sum := newImportSummary()
	appendWarnings(sum, res.Warnings)
	s.skipped(sum, tallyOrderItems, res.Skipped)

	if err := s.importOrderItemRecords(ctx, ownerID, res.Records, sum); err != nil {
		return nil, err
	}

	return sum, nil
}

// ImportExpensesCSV imports an expense CSV and returns the created
// entries alongside the batch summary.
func (s *ImportService) ImportExpensesCSV(ctx context.Context, ownerID uuid.UUID, content string, replaceExisting bool) ([]domain.ExpenseDTO, *domain.ImportSummary, error) {
	det, err := importer.Detect(content)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrImportFile, err)
	}
	if det.Format != importer.FormatGeneric && det.Format != importer.FormatBakeDiaryExpenses {
		return nil, nil, fmt.Errorf("%w: file does not look like an expense export", ErrImportFile)
	}

	res, err := s.mapContent(content, det)
	if err != nil {
		return nil, nil, err
	}

	sum := newImportSummary()
	appendWarnings(sum, res.Warnings)
	s.skipped(sum, tallyExpenses, res.Skipped)

	opts := domain.ImportOptions{ReplaceExisting: replaceExisting}
	if replaceExisting {
		if _, err := s.expenseRepo.DeleteAllForOwner(ctx, ownerID); err != nil {
			return nil, nil, fmt.Errorf("failed to clear expenses: %w", err)
		}
	}

	created, err := s.importExpenseRecords(ctx, ownerID, res.Records, opts, sum)
	if err != nil {
		return nil, nil, err
	}

	return created, sum, nil
}

// ImportJSON imports a structured dataset in one batch. Option flags gate
// the entity families; replaceExisting clears each enabled family first,
// dependents before parents.
func (s *ImportService) ImportJSON(ctx context.Context, ownerID uuid.UUID, dataset *domain.ImportDataset, opts domain.ImportOptions) (*domain.ImportSummary, error) {
	sum := newImportSummary()

	if opts.ReplaceExisting {
		if err := s.clearForReplace(ctx, ownerID, opts); err != nil {
			return nil, err
		}
	}

	resolver := newContactResolver(s.contactRepo, ownerID)

	if opts.ImportContacts {
		for i, req := range dataset.Contacts {
			if req.FirstName == "" {
				s.rowError(sum, tallyContacts, fmt.Sprintf("contact %d: first name is empty", i+1))
				continue
			}
			exists, err := s.contactExists(ctx, ownerID, req.FirstName, req.LastName, req.Email)
			if err != nil {
				return nil, err
			}
			if exists {
				s.skipped(sum, tallyContacts, 1)
				continue
			}
			contact := &domain.Contact{
				OwnerID:      ownerID,
				FirstName:    req.FirstName,
				LastName:     req.LastName,
				Email:        req.Email,
				Phone:        req.Phone,
				BusinessName: req.BusinessName,
				Notes:        req.Notes,
			}
			if err := s.contactRepo.Create(ctx, contact); err != nil {
				s.rowError(sum, tallyContacts, fmt.Sprintf("contact %d: %v", i+1, err))
				continue
			}
			resolver.remember(contact)
			s.imported(sum, tallyContacts)
		}
	}

	if opts.ImportOrders {
		if err := s.importJSONOrders(ctx, ownerID, dataset.Orders, resolver, sum); err != nil {
			return nil, err
		}
		if err := s.importJSONQuotes(ctx, ownerID, dataset.Quotes, resolver, sum); err != nil {
			return nil, err
		}
	}

	for i, req := range dataset.Expenses {
		date := parseDate(req.Date)
		amount := money(req.Amount)
		if !opts.ReplaceExisting && date != nil {
			exists, err := s.expenseRepo.ExistsByNaturalKey(ctx, ownerID, *date, req.Description, amount)
			if err != nil {
				return nil, fmt.Errorf("failed to check expense: %w", err)
			}
			if exists {
				s.skipped(sum, tallyExpenses, 1)
				continue
			}
		}
		expense := &domain.Expense{
			OwnerID:       ownerID,
			Date:          date,
			Category:      req.Category,
			Amount:        amount,
			Description:   req.Description,
			Supplier:      req.Supplier,
			PaymentSource: req.PaymentSource,
			VATAmount:     money(req.VATAmount),
			TotalIncTax:   money(req.TotalIncTax),
			IsRecurring:   req.IsRecurring,
			TaxDeductible: req.TaxDeductible,
		}
		if err := s.expenseRepo.Create(ctx, expense); err != nil {
			s.rowError(sum, tallyExpenses, fmt.Sprintf("expense %d: %v", i+1, err))
			continue
		}
		s.imported(sum, tallyExpenses)
	}

	for i, req := range dataset.Income {
		income := &domain.Income{
			OwnerID:     ownerID,
			Date:        parseDate(req.Date),
			Category:    req.Category,
			Amount:      money(req.Amount),
			Description: req.Description,
			Source:      req.Source,
		}
		if err := s.incomeRepo.Create(ctx, income); err != nil {
			s.rowError(sum, tallyIncome, fmt.Sprintf("income %d: %v", i+1, err))
			continue
		}
		s.imported(sum, tallyIncome)
	}

	if opts.ImportProducts {
		for i, req := range dataset.Products {
			if req.Name == "" {
				s.rowError(sum, tallyProducts, fmt.Sprintf("product %d: name is empty", i+1))
				continue
			}
			_, err := s.ingredientRepo.GetByName(ctx, ownerID, req.Name)
			if err == nil {
				s.skipped(sum, tallyProducts, 1)
				continue
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("failed to check ingredient: %w", err)
			}
			ingredient := &domain.Ingredient{
				OwnerID:     ownerID,
				Name:        req.Name,
				PackSize:    quantity(req.PackSize),
				PackCost:    money(req.PackCost),
				Unit:        req.Unit,
				CostPerUnit: costPerUnit(money(req.PackCost), quantity(req.PackSize), req.CostPerUnit),
			}
			if err := s.ingredientRepo.Create(ctx, ingredient); err != nil {
				s.rowError(sum, tallyProducts, fmt.Sprintf("product %d: %v", i+1, err))
				continue
			}
			s.imported(sum, tallyProducts)
		}
	}

	if opts.ImportRecipes {
		for i, req := range dataset.Recipes {
			if req.Name == "" {
				s.rowError(sum, tallyRecipes, fmt.Sprintf("recipe %d: name is empty", i+1))
				continue
			}
			_, err := s.recipeRepo.GetByName(ctx, ownerID, req.Name)
			if err == nil {
				s.skipped(sum, tallyRecipes, 1)
				continue
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("failed to check recipe: %w", err)
			}
			recipe := &domain.Recipe{
				OwnerID:     ownerID,
				Name:        req.Name,
				Description: req.Description,
				Category:    req.Category,
				Servings:    req.Servings,
			}
			for _, in := range req.Ingredients {
				recipe.Ingredients = append(recipe.Ingredients, domain.RecipeIngredient{
					IngredientID: in.IngredientID,
					Quantity:     quantity(in.Quantity),
					Unit:         in.Unit,
					Cost:         money(in.Cost),
				})
			}
			if err := s.recipeRepo.Create(ctx, recipe); err != nil {
				s.rowError(sum, tallyRecipes, fmt.Sprintf("recipe %d: %v", i+1, err))
				continue
			}
			s.imported(sum, tallyRecipes)
		}
	}

	if opts.ImportTasks {
		for i, req := range dataset.Tasks {
			task := &domain.Task{
				OwnerID: ownerID,
				Title:   req.Title,
				Details: req.Details,
				DueDate: parseDate(req.DueDate),
				Tags:    req.Tags,
			}
			if err := s.taskRepo.Create(ctx, task); err != nil {
				s.rowError(sum, tallyTasks, fmt.Sprintf("task %d: %v", i+1, err))
				continue
			}
			s.imported(sum, tallyTasks)
		}
	}

	if opts.ImportEnquiries {
		for i, req := range dataset.Enquiries {
			enquiry := &domain.Enquiry{
				OwnerID:   ownerID,
				Name:      req.Name,
				Email:     req.Email,
				Phone:     req.Phone,
				EventType: normalizeEventType(string(req.EventType)),
				EventDate: parseDate(req.EventDate),
				Details:   req.Details,
				Status:    domain.EnquiryStatusNew,
				Source:    req.Source,
			}
			if err := s.enquiryRepo.Create(ctx, enquiry); err != nil {
				s.rowError(sum, tallyEnquiries, fmt.Sprintf("enquiry %d: %v", i+1, err))
				continue
			}
			s.imported(sum, tallyEnquiries)
		}
	}

	if opts.ImportSettings && dataset.Settings != nil {
		settings := &domain.Settings{
			OwnerID:        ownerID,
			BusinessName:   dataset.Settings.BusinessName,
			CurrencyCode:   dataset.Settings.CurrencyCode,
			DefaultTaxRate: rate(dataset.Settings.DefaultTaxRate),
			WeekStartDay:   dataset.Settings.WeekStartDay,
		}
		if settings.CurrencyCode == "" {
			settings.CurrencyCode = "USD"
		}
		if settings.WeekStartDay == "" {
			settings.WeekStartDay = "monday"
		}
		if err := s.settingsRepo.Upsert(ctx, settings); err != nil {
			s.rowError(sum, tallySettings, fmt.Sprintf("settings: %v", err))
		} else {
			s.imported(sum, tallySettings)
		}
	}

	s.logger.Info("json import finished", zap.Any("summary", sum.Summary))

	return sum, nil
}

// clearForReplace wipes the entity families a replace-mode batch will
// refill. Dependents go before parents so foreign keys hold: order and
// quote line items, then orders and quotes, then contacts.
func (s *ImportService) clearForReplace(ctx context.Context, ownerID uuid.UUID, opts domain.ImportOptions) error {
	if opts.ImportOrders || opts.ImportContacts {
		if _, err := s.orderRepo.DeleteAllForOwner(ctx, ownerID); err != nil {
			return fmt.Errorf("failed to clear orders: %w", err)
		}
		if _, err := s.quoteRepo.DeleteAllForOwner(ctx, ownerID); err != nil {
			return fmt.Errorf("failed to clear quotes: %w", err)
		}
	}
	if opts.ImportContacts {
		if _, err := s.contactRepo.DeleteAllForOwner(ctx, ownerID); err != nil {
			return fmt.Errorf("failed to clear contacts: %w", err)
		}
	}
	if _, err := s.expenseRepo.DeleteAllForOwner(ctx, ownerID); err != nil {
		return fmt.Errorf("failed to clear expenses: %w", err)
	}
	if _, err := s.incomeRepo.DeleteAllForOwner(ctx, ownerID); err != nil {
		return fmt.Errorf("failed to clear income: %w", err)
	}
	if opts.ImportRecipes {
		if _, err := s.recipeRepo.DeleteAllForOwner(ctx, ownerID); err != nil {
			return fmt.Errorf("failed to clear recipes: %w", err)
		}
	}
	if opts.ImportProducts {
		if _, err := s.ingredientRepo.DeleteAllForOwner(ctx, ownerID); err != nil {
			return fmt.Errorf("failed to clear ingredients: %w", err)
		}
	}
	if opts.ImportTasks {
		if _, err := s.taskRepo.DeleteAllForOwner(ctx, ownerID); err != nil {
			return fmt.Errorf("failed to clear tasks: %w", err)
		}
	}
	if opts.ImportEnquiries {
		if _, err := s.enquiryRepo.DeleteAllForOwner(ctx, ownerID); err != nil {
			return fmt.Errorf("failed to clear enquiries: %w", err)
		}
	}
	return nil
}

func (s *ImportService) importJSONOrders(ctx context.Context, ownerID uuid.UUID, records []domain.ImportOrderRecord, resolver *contactResolver, sum *domain.ImportSummary) error {
	maxNumber := 0

	for i, rec := range records {
		number := rec.OrderNumber

		if number > 0 {
			exists, err := s.orderRepo.ExistsByNumber(ctx, ownerID, number)
			if err != nil {
				return fmt.Errorf("failed to check order number: %w", err)
			}
			if exists {
				s.skipped(sum, tallyOrders, 1)
				continue
			}
		} else {
			claimed, err := s.sequenceRepo.Next(ctx, ownerID, repository.SequenceKindOrder)
			if err != nil {
				return fmt.Errorf("failed to claim order number: %w", err)
			}
			number = claimed
		}

		contactID, err := resolver.resolve(ctx, rec.ContactName, rec.ContactEmail)
		if err != nil {
			s.rowError(sum, tallyOrders, fmt.Sprintf("order %d: %v", i+1, err))
			continue
		}

		order := &domain.Order{
			OwnerID:      ownerID,
			ContactID:    contactID,
			OrderNumber:  number,
			EventType:    normalizeEventType(rec.EventType),
			EventDate:    parseDate(rec.EventDate),
			Status:       normalizeOrderStatus(rec.Status),
			DeliveryType: normalizeDeliveryType(rec.DeliveryType),
			Discount:     money(rec.Discount),
			SetupFee:     money(rec.SetupFee),
			TaxRate:      rate(rec.TaxRate),
			Total:        money(rec.Total),
			Notes:        rec.Notes,
			Items:        buildOrderItems(rec.Items),
		}

		if err := s.orderRepo.Create(ctx, order); err != nil {
			s.rowError(sum, tallyOrders, fmt.Sprintf("order %d: %v", i+1, err))
			continue
		}
		s.imported(sum, tallyOrders)
		if number > maxNumber {
			maxNumber = number
		}
	}

	if maxNumber > 0 {
		if err := s.sequenceRepo.Bump(ctx, ownerID, repository.SequenceKindOrder, maxNumber); err != nil {
			return fmt.Errorf("failed to advance order sequence: %w", err)
		}
	}

	return nil
}

func (s *ImportService) importJSONQuotes(ctx context.Context, ownerID uuid.UUID, records []domain.ImportQuoteRecord, resolver *contactResolver, sum *domain.ImportSummary) error {
	maxNumber := 0

	for i, rec := range records {
		number := rec.QuoteNumber

		if number > 0 {
			exists, err := s.quoteRepo.ExistsByNumber(ctx, ownerID, number)
			if err != nil {
				return fmt.Errorf("failed to check quote number: %w", err)
			}
			if exists {
				s.skipped(sum, tallyQuotes, 1)
				continue
			}
		} else {
			claimed, err := s.sequenceRepo.Next(ctx, ownerID, repository.SequenceKindQuote)
			if err != nil {
				return fmt.Errorf("failed to claim quote number: %w", err)
			}
			number = claimed
		}

		contactID, err := resolver.resolve(ctx, rec.ContactName, rec.ContactEmail)
		if err != nil {
			s.rowError(sum, tallyQuotes, fmt.Sprintf("quote %d: %v", i+1, err))
			continue
		}

		quote := &domain.Quote{
			OwnerID:      ownerID,
			ContactID:    contactID,
			QuoteNumber:  number,
			EventType:    normalizeEventType(rec.EventType),
			EventDate:    parseDate(rec.EventDate),
			Status:       normalizeQuoteStatus(rec.Status),
			DeliveryType: normalizeDeliveryType(rec.DeliveryType),
			Discount:     money(rec.Discount),
			SetupFee:     money(rec.SetupFee),
			TaxRate:      rate(rec.TaxRate),
			Total:        money(rec.Total),
			Notes:        rec.Notes,
			Items:        buildQuoteItems(rec.Items),
		}

		if err := s.quoteRepo.Create(ctx, quote); err != nil {
			s.rowError(sum, tallyQuotes, fmt.Sprintf("quote %d: %v", i+1, err))
			continue
		}
		s.imported(sum, tallyQuotes)
		if number > maxNumber {
			maxNumber = number
		}
	}

	if maxNumber > 0 {
		if err := s.sequenceRepo.Bump(ctx, ownerID, repository.SequenceKindQuote, maxNumber); err != nil {
			return fmt.Errorf("failed to advance quote sequence: %w", err)
		}
	}

	return nil
}

// Enum normalizers for imported values. Unknown values fall back to the
// enum's default rather than failing the row.

func normalizeEventType(raw string) domain.EventType {
	v := domain.EventType(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(raw)), " ", "_"))
	if v.IsValid() {
		return v
	}
	return domain.EventTypeOther
}

func normalizeOrderStatus(raw string) domain.OrderStatus {
	v := domain.OrderStatus(strings.ToLower(strings.TrimSpace(raw)))
	if v.IsValid() {
		return v
	}
	return domain.OrderStatusQuote
}

func normalizeQuoteStatus(raw string) domain.QuoteStatus {
	v := domain.QuoteStatus(strings.ToLower(strings.TrimSpace(raw)))
	if v.IsValid() {
		return v
	}
	return domain.QuoteStatusDraft
}

func normalizeDeliveryType(raw string) domain.DeliveryType {
	v := domain.DeliveryType(strings.ToLower(strings.TrimSpace(raw)))
	if v.IsValid() {
		return v
	}
	return domain.DeliveryTypePickup
}
