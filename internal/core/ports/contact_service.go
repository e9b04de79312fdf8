package ports

import (
	"context"

	"github.com/clinicore/clinic-api/internal/core/domain"
)

// ContactInput carries the writable fields of an emergency contact.
type ContactInput struct {
	Name         string
	Relationship string
	Phone        string
	Email        string
}

type ContactRepository interface {
	Create(ctx context.Context, contact *domain.EmergencyContact) (int64, error)
	Update(ctx context.Context, contact *domain.EmergencyContact) error
	Delete(ctx context.Context, id int64) error
}

type ContactService interface {
	Create(ctx context.Context, in ContactInput) (*domain.EmergencyContact, error)
	Update(ctx context.Context, id int64, in ContactInput) error
	Delete(ctx context.Context, id int64) error
}
