package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/ovenledger/bakery-api/internal/domain"
	"gorm.io/gorm"
)

type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

func (r *OrderRepository) Create(ctx context.Context, order *domain.Order) error {
	return r.db.WithContext(ctx).Create(order).Error
}

func (r *OrderRepository) GetByID(ctx context.Context, ownerID, id uuid.UUID) (*domain.Order, error) {
	var order domain.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Contact").
		First(&order, "id = ? AND owner_id = ?", id, ownerID).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// GetByNumber finds an order by its owner-facing sequential number
func (r *OrderRepository) GetByNumber(ctx context.Context, ownerID uuid.UUID, number int) (*domain.Order, error) {
	var order domain.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("owner_id = ? AND order_number = ?", ownerID, number).
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// ExistsByNumber checks the per-owner order-number uniqueness key
func (r *OrderRepository) ExistsByNumber(ctx context.Context, ownerID uuid.UUID, number int) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Order{}).
		Where("owner_id = ? AND order_number = ?", ownerID, number).
		Count(&count).Error
	return count > 0, err
}

// OrderFilters holds filters for listing orders
type OrderFilters struct {
	Status    *domain.OrderStatus
	ContactID *uuid.UUID
	EventFrom *time.Time
	EventTo   *time.Time
}

func (r *OrderRepository) List(ctx context.Context, ownerID uuid.UUID, page, pageSize int, filters *OrderFilters) ([]domain.Order, int64, error) {
	var orders []domain.Order
	var total int64

	offset := (page - 1) * pageSize

	query := r.db.WithContext(ctx).Model(&domain.Order{}).Where("owner_id = ?", ownerID)

	if filters != nil {
		if filters.Status != nil {
			query = query.Where("status = ?", *filters.Status)
		}
		if filters.ContactID != nil {
			query = query.Where("contact_id = ?", *filters.ContactID)
		}
		if filters.EventFrom != nil {
			query = query.Where("event_date >= ?", *filters.EventFrom)
		}
		if filters.EventTo != nil {
			query = query.Where("event_date <= ?", *filters.EventTo)
		}
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Preload("Items").
		Preload("Contact").
		Order("order_number DESC").
		Offset(offset).
		Limit(pageSize).
		Find(&orders).Error

	return orders, total, err
}

func (r *OrderRepository) Update(ctx context.Context, order *domain.Order) error {
	return r.db.WithContext(ctx).Omit("Items").Save(order).Error
}

// ReplaceItems deletes and recreates an order's line items as a unit.
func (r *OrderRepository) ReplaceItems(ctx context.Context, orderID uuid.UUID, items []domain.OrderItem) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&domain.OrderItem{}, "order_id = ?", orderID).Error; err != nil {
			return err
		}
		for i := range items {
			items[i].OrderID = orderID
		}
		if len(items) == 0 {
			return nil
		}
		return tx.Create(&items).Error
	})
}

func (r *OrderRepository) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&domain.OrderItem{}, "order_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&domain.Order{}, "id = ? AND owner_id = ?", id, ownerID).Error
	})
}

// DeleteAllForOwner removes every order for an owner. Line items go
// first so foreign keys hold.
func (r *OrderRepository) DeleteAllForOwner(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	var deleted int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("order_id IN (?)", tx.Model(&domain.Order{}).Select("id").Where("owner_id = ?", ownerID)).
			Delete(&domain.OrderItem{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&domain.Order{}, "owner_id = ?", ownerID)
		deleted = result.RowsAffected
		return result.Error
	})
	return deleted, err
}

// CountUpcoming counts orders with an event date from today onward that
// are not cancelled.
func (r *OrderRepository) CountUpcoming(ctx context.Context, ownerID uuid.UUID, from time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Order{}).
		Where("owner_id = ? AND event_date >= ? AND status <> ?", ownerID, from, domain.OrderStatusCancelled).
		Count(&count).Error
	return count, err
}

// ListForPeriod returns orders created in [from, to) for reporting.
func (r *OrderRepository) ListForPeriod(ctx context.Context, ownerID uuid.UUID, from, to time.Time) ([]domain.Order, error) {
	var orders []domain.Order
	err := r.db.WithContext(ctx).
		Where("owner_id = ? AND created_at >= ? AND created_at < ?", ownerID, from, to).
		Order("created_at").
		Find(&orders).Error
	return orders, err
}
