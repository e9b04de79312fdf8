package service

import (
	"context"

	"github.com/clinicore/clinic-api/internal/core/domain"
	"github.com/clinicore/clinic-api/internal/core/ports"
)

// ContactService implements emergency-contact CRUD.
type ContactService struct {
	repo ports.ContactRepository
}

func NewContactService(repo ports.ContactRepository) *ContactService {
	return &ContactService{repo: repo}
}

func (s *ContactService) Create(ctx context.Context, in ports.ContactInput) (*domain.EmergencyContact, error) {
	if in.Name == "" || in.Phone == "" {
		return nil, domain.ErrMissingFields
	}

	contact := &domain.EmergencyContact{
		Name:         in.Name,
		Relationship: in.Relationship,
		Phone:        in.Phone,
		Email:        in.Email,
	}
	id, err := s.repo.Create(ctx, contact)
	if err != nil {
		return nil, err
	}
	contact.ID = id
	return contact, nil
}

func (s *ContactService) Update(ctx context.Context, id int64, in ports.ContactInput) error {
	if in.Name == "" || in.Phone == "" {
		return domain.ErrMissingFields
	}

	return s.repo.Update(ctx, &domain.EmergencyContact{
		ID:           id,
		Name:         in.Name,
		Relationship: in.Relationship,
		Phone:        in.Phone,
		Email:        in.Email,
	})
}

func (s *ContactService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
