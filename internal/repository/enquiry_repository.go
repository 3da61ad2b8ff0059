package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/ovenledger/bakery-api/internal/domain"
	"gorm.io/gorm"
)

type EnquiryRepository struct {
	db *gorm.DB
}

func NewEnquiryRepository(db *gorm.DB) *EnquiryRepository {
	return &EnquiryRepository{db: db}
}

func (r *EnquiryRepository) Create(ctx context.Context, enquiry *domain.Enquiry) error {
	return r.db.WithContext(ctx).Create(enquiry).Error
}

func (r *EnquiryRepository) GetByID(ctx context.Context, ownerID, id uuid.UUID) (*domain.Enquiry, error) {
	var enquiry domain.Enquiry
	err := r.db.WithContext(ctx).
		First(&enquiry, "id = ? AND owner_id = ?", id, ownerID).Error
	if err != nil {
		return nil, err
	}
	return &enquiry, nil
}

func (r *EnquiryRepository) List(ctx context.Context, ownerID uuid.UUID, status *domain.EnquiryStatus) ([]domain.Enquiry, error) {
	var enquiries []domain.Enquiry

	query := r.db.WithContext(ctx).Where("owner_id = ?", ownerID)
	if status != nil {
		query = query.Where("status = ?", *status)
	}

	err := query.Order("created_at DESC").Find(&enquiries).Error
	return enquiries, err
}

// CountOpen counts enquiries still awaiting a response.
func (r *EnquiryRepository) CountOpen(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Enquiry{}).
		Where("owner_id = ? AND status = ?", ownerID, domain.EnquiryStatusNew).
		Count(&count).Error
	return count, err
}

func (r *EnquiryRepository) Update(ctx context.Context, enquiry *domain.Enquiry) error {
	return r.db.WithContext(ctx).Save(enquiry).Error
}

func (r *EnquiryRepository) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Delete(&domain.Enquiry{}, "id = ? AND owner_id = ?", id, ownerID).Error
}

// DeleteAllForOwner removes every enquiry for an owner.
func (r *EnquiryRepository) DeleteAllForOwner(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).Delete(&domain.Enquiry{}, "owner_id = ?", ownerID)
	return result.RowsAffected, result.Error
}
