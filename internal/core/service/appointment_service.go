package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/clinicore/clinic-api/internal/core/domain"
	"github.com/clinicore/clinic-api/internal/core/ports"
)

// AppointmentService implements scheduling CRUD over the injected repository.
type AppointmentService struct {
	repo   ports.AppointmentRepository
	logger zerolog.Logger
}

func NewAppointmentService(repo ports.AppointmentRepository, logger zerolog.Logger) *AppointmentService {
	return &AppointmentService{repo: repo, logger: logger}
}

func (s *AppointmentService) Create(ctx context.Context, in ports.AppointmentInput) (*domain.Appointment, error) {
	if in.PatientID == 0 || in.DoctorID == 0 || in.AppointmentDate == "" || in.AppointmentTime == "" {
		return nil, domain.ErrMissingFields
	}

	appt := &domain.Appointment{
		PatientID:       in.PatientID,
		DoctorID:        in.DoctorID,
		AppointmentDate: in.AppointmentDate,
		AppointmentTime: in.AppointmentTime,
		Reason:          in.Reason,
	}
	id, err := s.repo.Create(ctx, appt)
	if err != nil {
		return nil, err
	}
	appt.ID = id

	s.logger.Info().Int64("appointment_id", id).Int64("patient_id", in.PatientID).Int64("doctor_id", in.DoctorID).Msg("appointment created")
	return appt, nil
}

func (s *AppointmentService) List(ctx context.Context) ([]domain.Appointment, error) {
	return s.repo.List(ctx)
}

func (s *AppointmentService) Get(ctx context.Context, id int64) (*domain.Appointment, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *AppointmentService) Update(ctx context.Context, id int64, in ports.AppointmentInput) (*domain.Appointment, error) {
	if in.PatientID == 0 || in.DoctorID == 0 || in.AppointmentDate == "" || in.AppointmentTime == "" {
		return nil, domain.ErrMissingFields
	}

	appt := &domain.Appointment{
		ID:              id,
		PatientID:       in.PatientID,
		DoctorID:        in.DoctorID,
		AppointmentDate: in.AppointmentDate,
		AppointmentTime: in.AppointmentTime,
		Reason:          in.Reason,
	}
	if err := s.repo.Update(ctx, appt); err != nil {
		return nil, err
	}
	return appt, nil
}

// Delete removes an appointment. Deleting an id that is already gone is not
// an error; the end state is the same.
func (s *AppointmentService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
