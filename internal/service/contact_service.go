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

type ContactService struct {
	contactRepo *repository.ContactRepository
	logger      *zap.Logger
}

func NewContactService(contactRepo *repository.ContactRepository, logger *zap.Logger) *ContactService {
	return &ContactService{
		contactRepo: contactRepo,
		logger:      logger,
	}
}

func (s *ContactService) Create(ctx context.Context, ownerID uuid.UUID, req *domain.CreateContactRequest) (*domain.ContactDTO, error) {
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
		return nil, fmt.Errorf("failed to create contact: %w", err)
	}

	dto := mapper.ToContactDTO(contact)
	return &dto, nil
}

func (s *ContactService) GetByID(ctx context.Context, ownerID, id uuid.UUID) (*domain.ContactDTO, error) {
	contact, err := s.contactRepo.GetByID(ctx, ownerID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get contact: %w", err)
	}

	dto := mapper.ToContactDTO(contact)
	return &dto, nil
}

func (s *ContactService) List(ctx context.Context, ownerID uuid.UUID, page, pageSize int) ([]domain.ContactDTO, int64, error) {
	contacts, total, err := s.contactRepo.List(ctx, ownerID, page, pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list contacts: %w", err)
	}

	dtos := make([]domain.ContactDTO, len(contacts))
	for i, contact := range contacts {
		dtos[i] = mapper.ToContactDTO(&contact)
	}

	return dtos, total, nil
}

func (s *ContactService) Search(ctx context.Context, ownerID uuid.UUID, query string, limit int) ([]domain.ContactDTO, error) {
	if limit <= 0 || limit > 50 {
		limit = 20
	}

	contacts, err := s.contactRepo.Search(ctx, ownerID, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search contacts: %w", err)
	}

	dtos := make([]domain.ContactDTO, len(contacts))
	for i, contact := range contacts {
		dtos[i] = mapper.ToContactDTO(&contact)
	}

	return dtos, nil
}

func (s *ContactService) Update(ctx context.Context, ownerID, id uuid.UUID, req *domain.UpdateContactRequest) (*domain.ContactDTO, error) {
	contact, err := s.contactRepo.GetByID(ctx, ownerID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get contact: %w", err)
	}

	contact.FirstName = req.FirstName
	contact.LastName = req.LastName
	contact.Email = req.Email
	contact.Phone = req.Phone
	contact.BusinessName = req.BusinessName
	contact.Notes = req.Notes

	if err := s.contactRepo.Update(ctx, contact); err != nil {
		return nil, fmt.Errorf("failed to update contact: %w", err)
	}

	dto := mapper.ToContactDTO(contact)
	return &dto, nil
}

func (s *ContactService) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	if _, err := s.contactRepo.GetByID(ctx, ownerID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to get contact: %w", err)
	}

	if err := s.contactRepo.Delete(ctx, ownerID, id); err != nil {
		return fmt.Errorf("failed to delete contact: %w", err)
	}

	return nil
}
