package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/ovenledger/bakery-api/internal/domain"
	"github.com/ovenledger/bakery-api/internal/mapper"
	"github.com/ovenledger/bakery-api/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type EnquiryService struct {
	enquiryRepo *repository.EnquiryRepository
	logger      *zap.Logger
}

func NewEnquiryService(enquiryRepo *repository.EnquiryRepository, logger *zap.Logger) *EnquiryService {
	return &EnquiryService{
		enquiryRepo: enquiryRepo,
		logger:      logger,
	}
}

func (s *EnquiryService) Create(ctx context.Context, ownerID uuid.UUID, req *domain.CreateEnquiryRequest) (*domain.EnquiryDTO, error) {
	enquiry := &domain.Enquiry{
		OwnerID:   ownerID,
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		EventType: req.EventType,
		EventDate: parseDate(req.EventDate),
		Details:   req.Details,
		Status:    domain.EnquiryStatusNew,
		Source:    req.Source,
	}
	if enquiry.EventType == "" {
		enquiry.EventType = domain.EventTypeOther
	}

	if err := s.enquiryRepo.Create(ctx, enquiry); err != nil {
		return nil, fmt.Errorf("failed to create enquiry: %w", err)
	}

	dto := mapper.ToEnquiryDTO(enquiry)
	return &dto, nil
}

func (s *EnquiryService) GetByID(ctx context.Context, ownerID, id uuid.UUID) (*domain.EnquiryDTO, error) {
	enquiry, err := s.enquiryRepo.GetByID(ctx, ownerID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get enquiry: %w", err)
	}

	dto := mapper.ToEnquiryDTO(enquiry)
	return &dto, nil
}

func (s *EnquiryService) List(ctx context.Context, ownerID uuid.UUID, status *domain.EnquiryStatus) ([]domain.EnquiryDTO, error) {
	enquiries, err := s.enquiryRepo.List(ctx, ownerID, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list enquiries: %w", err)
	}

	dtos := make([]domain.EnquiryDTO, len(enquiries))
	for i, enquiry := range enquiries {
		dtos[i] = mapper.ToEnquiryDTO(&enquiry)
	}

	return dtos, nil
}

func (s *EnquiryService) UpdateStatus(ctx context.Context, ownerID, id uuid.UUID, status domain.EnquiryStatus) (*domain.EnquiryDTO, error) {
	if !status.IsValid() {
		return nil, fmt.Errorf("%w: invalid enquiry status", ErrInvalidInput)
	}

	enquiry, err := s.enquiryRepo.GetByID(ctx, ownerID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get enquiry: %w", err)
	}

	enquiry.Status = status
	if err := s.enquiryRepo.Update(ctx, enquiry); err != nil {
		return nil, fmt.Errorf("failed to update enquiry: %w", err)
	}

	dto := mapper.ToEnquiryDTO(enquiry)
	return &dto, nil
}

func (s *EnquiryService) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	if _, err := s.enquiryRepo.GetByID(ctx, ownerID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to get enquiry: %w", err)
	}

	if err := s.enquiryRepo.Delete(ctx, ownerID, id); err != nil {
		return fmt.Errorf("failed to delete enquiry: %w", err)
	}

	return nil
}
