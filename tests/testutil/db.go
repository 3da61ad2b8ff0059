package testutil

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/ovenledger/bakery-api/internal/database"
	"github.com/ovenledger/bakery-api/internal/domain"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/migrator"
	"gorm.io/gorm/schema"
)

// textAffinityDialector migrates decimal-tagged columns as TEXT. Under
// SQLite a decimal declaration gets NUMERIC affinity, which strips the
// scale from stored money strings ("45.00" reads back as "45").
type textAffinityDialector struct {
	sqlite.Dialector
}

func (d textAffinityDialector) DataTypeOf(field *schema.Field) string {
	if t := d.Dialector.DataTypeOf(field); !strings.HasPrefix(t, "decimal") {
		return t
	}
	return "text"
}

// Migrator mirrors the sqlite driver's but keeps this dialector in the
// config, so column types resolve through DataTypeOf above.
func (d textAffinityDialector) Migrator(db *gorm.DB) gorm.Migrator {
	return sqlite.Migrator{Migrator: migrator.Migrator{Config: migrator.Config{
		DB:                          db,
		Dialector:                   d,
		CreateIndexAfterCreateTable: true,
	}}}
}

// SetupTestDB opens an isolated in-memory SQLite database and migrates
// the full schema. Each call gets its own database; shared cache keeps
// it alive across the pool's connections.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	dialector := textAffinityDialector{Dialector: sqlite.Dialector{DSN: dsn}}
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	require.NoError(t, err, "Failed to open test database")

	require.NoError(t, database.AutoMigrate(db), "Failed to migrate test database")

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	return db
}

// NewOwnerID returns a fresh owner scope for a test. Owner scoping keeps
// tests isolated without table cleanup between them.
func NewOwnerID() uuid.UUID {
	return uuid.New()
}

// CreateTestContact inserts a contact for the owner and returns it.
func CreateTestContact(t *testing.T, db *gorm.DB, ownerID uuid.UUID, firstName, lastName, email string) *domain.Contact {
	t.Helper()

	contact := &domain.Contact{
		OwnerID:   ownerID,
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
	}
	require.NoError(t, db.Create(contact).Error)
	return contact
}

// CreateTestOrder inserts an order with the given number and total.
func CreateTestOrder(t *testing.T, db *gorm.DB, ownerID uuid.UUID, number int, status domain.OrderStatus, total string) *domain.Order {
	t.Helper()

	order := &domain.Order{
		OwnerID:      ownerID,
		OrderNumber:  number,
		EventType:    domain.EventTypeOther,
		Status:       status,
		DeliveryType: domain.DeliveryTypePickup,
		Discount:     "0.00",
		SetupFee:     "0.00",
		TaxRate:      "0",
		Total:        total,
	}
	require.NoError(t, db.Create(order).Error)
	return order
}

// DateOf builds a date pointer without a time component.
func DateOf(year int, month time.Month, day int) *time.Time {
	d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &d
}
