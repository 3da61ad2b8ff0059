package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/ovenledger/bakery-api/internal/domain"
	"gorm.io/gorm"
)

type ContactRepository struct {
	db *gorm.DB
}

func NewContactRepository(db *gorm.DB) *ContactRepository {
	return &ContactRepository{db: db}
}

func (r *ContactRepository) Create(ctx context.Context, contact *domain.Contact) error {
	return r.db.WithContext(ctx).Create(contact).Error
}

func (r *ContactRepository) GetByID(ctx context.Context, ownerID, id uuid.UUID) (*domain.Contact, error) {
	var contact domain.Contact
	err := r.db.WithContext(ctx).
		First(&contact, "id = ? AND owner_id = ?", id, ownerID).Error
	if err != nil {
		return nil, err
	}
	return &contact, nil
}

func (r *ContactRepository) List(ctx context.Context, ownerID uuid.UUID, page, pageSize int) ([]domain.Contact, int64, error) {
	var contacts []domain.Contact
	var total int64

	offset := (page - 1) * pageSize

	if err := r.db.WithContext(ctx).Model(&domain.Contact{}).
		Where("owner_id = ?", ownerID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("first_name, last_name").
		Offset(offset).
		Limit(pageSize).
		Find(&contacts).Error

	return contacts, total, err
}

// Search matches contacts by name, business name or email
func (r *ContactRepository) Search(ctx context.Context, ownerID uuid.UUID, query string, limit int) ([]domain.Contact, error) {
	var contacts []domain.Contact
	pattern := "%" + query + "%"

	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Where("LOWER(first_name) LIKE LOWER(?) OR LOWER(last_name) LIKE LOWER(?) OR LOWER(business_name) LIKE LOWER(?) OR LOWER(email) LIKE LOWER(?)",
			pattern, pattern, pattern, pattern).
		Order("first_name, last_name").
		Limit(limit).
		Find(&contacts).Error

	return contacts, err
}

// GetByEmail finds a contact by email address within the owner scope
func (r *ContactRepository) GetByEmail(ctx context.Context, ownerID uuid.UUID, email string) (*domain.Contact, error) {
	var contact domain.Contact
	err := r.db.WithContext(ctx).
		Where("owner_id = ? AND LOWER(email) = LOWER(?)", ownerID, email).
		First(&contact).Error
	if err != nil {
		return nil, err
	}
	return &contact, nil
}

// GetByName finds a contact by first and last name within the owner scope
func (r *ContactRepository) GetByName(ctx context.Context, ownerID uuid.UUID, firstName, lastName string) (*domain.Contact, error) {
	var contact domain.Contact
	err := r.db.WithContext(ctx).
		Where("owner_id = ? AND LOWER(first_name) = LOWER(?) AND LOWER(last_name) = LOWER(?)",
			ownerID, firstName, lastName).
		First(&contact).Error
	if err != nil {
		return nil, err
	}
	return &contact, nil
}

func (r *ContactRepository) Update(ctx context.Context, contact *domain.Contact) error {
	return r.db.WithContext(ctx).Save(contact).Error
}

func (r *ContactRepository) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Delete(&domain.Contact{}, "id = ? AND owner_id = ?", id, ownerID).Error
}

// DeleteAllForOwner removes every contact for an owner. References from
// orders and quotes are cleared first so foreign keys hold.
func (r *ContactRepository) DeleteAllForOwner(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	var deleted int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&domain.Order{}).
			Where("owner_id = ?", ownerID).
			Update("contact_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Model(&domain.Quote{}).
			Where("owner_id = ?", ownerID).
			Update("contact_id", nil).Error; err != nil {
			return err
		}
		result := tx.Delete(&domain.Contact{}, "owner_id = ?", ownerID)
		deleted = result.RowsAffected
		return result.Error
	})
	return deleted, err
}
