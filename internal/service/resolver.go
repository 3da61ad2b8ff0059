package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/ovenledger/bakery-api/internal/domain"
	"github.com/ovenledger/bakery-api/internal/repository"
	"gorm.io/gorm"
)

// contactResolver resolves imported rows to contacts by natural key.
// Email wins over name when both are present. Lookups and creations are
// cached for the batch so repeated references to the same customer land
// on one contact row.
type contactResolver struct {
	repo    *repository.ContactRepository
	ownerID uuid.UUID
	byEmail map[string]uuid.UUID
	byName  map[string]uuid.UUID
}

func newContactResolver(repo *repository.ContactRepository, ownerID uuid.UUID) *contactResolver {
	return &contactResolver{
		repo:    repo,
		ownerID: ownerID,
		byEmail: make(map[string]uuid.UUID),
		byName:  make(map[string]uuid.UUID),
	}
}

// remember seeds the batch cache with a contact created elsewhere in the
// same batch.
func (cr *contactResolver) remember(contact *domain.Contact) {
	if contact.Email != "" {
		cr.byEmail[strings.ToLower(contact.Email)] = contact.ID
	}
	cr.byName[strings.ToLower(contact.FullName())] = contact.ID
}

// resolve returns the contact id for a name/email pair, creating the
// contact when no match exists. Rows with neither key resolve to nil.
func (cr *contactResolver) resolve(ctx context.Context, name, email string) (*uuid.UUID, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" && email == "" {
		return nil, nil
	}

	if email != "" {
		if id, ok := cr.byEmail[strings.ToLower(email)]; ok {
			return &id, nil
		}
		contact, err := cr.repo.GetByEmail(ctx, cr.ownerID, email)
		if err == nil {
			cr.remember(contact)
			return &contact.ID, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to look up contact by email: %w", err)
		}
	}

	if name != "" {
		if id, ok := cr.byName[strings.ToLower(name)]; ok {
			return &id, nil
		}
		first, last := splitName(name)
		contact, err := cr.repo.GetByName(ctx, cr.ownerID, first, last)
		if err == nil {
			cr.remember(contact)
			return &contact.ID, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to look up contact by name: %w", err)
		}
	}

	first, last := splitName(name)
	if first == "" {
		// Email only, no name to build a contact from.
		first = email
	}
	contact := &domain.Contact{
		OwnerID:   cr.ownerID,
		FirstName: first,
		LastName:  last,
		Email:     email,
	}
	if err := cr.repo.Create(ctx, contact); err != nil {
		return nil, fmt.Errorf("failed to create contact: %w", err)
	}
	cr.remember(contact)
	return &contact.ID, nil
}

// splitName breaks a display name at the last space.
func splitName(full string) (string, string) {
	full = strings.TrimSpace(full)
	if full == "" {
		return "", ""
	}
	idx := strings.LastIndex(full, " ")
	if idx < 0 {
		return full, ""
	}
	return strings.TrimSpace(full[:idx]), strings.TrimSpace(full[idx+1:])
}
