package ports

import (
	"context"

	"github.com/clinicore/clinic-api/internal/core/domain"
)

// AppointmentRepository defines the persistence contract for appointments.
type AppointmentRepository interface {
	Create(ctx context.Context, appt *domain.Appointment) (int64, error)
	List(ctx context.Context) ([]domain.Appointment, error)
	FindByID(ctx context.Context, id int64) (*domain.Appointment, error)
	Update(ctx context.Context, appt *domain.Appointment) error
	Delete(ctx context.Context, id int64) error
}
