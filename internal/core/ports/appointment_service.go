package ports

import (
	"context"

	"github.com/clinicore/clinic-api/internal/core/domain"
)

// AppointmentInput carries the writable fields of an appointment.
type AppointmentInput struct {
	PatientID       int64
	DoctorID        int64
	AppointmentDate string
	AppointmentTime string
	Reason          string
}

type AppointmentService interface {
	Create(ctx context.Context, in AppointmentInput) (*domain.Appointment, error)
	List(ctx context.Context) ([]domain.Appointment, error)
	Get(ctx context.Context, id int64) (*domain.Appointment, error)
	Update(ctx context.Context, id int64, in AppointmentInput) (*domain.Appointment, error)
	Delete(ctx context.Context, id int64) error
}
