package ports

import (
	"context"

	"github.com/clinicore/clinic-api/internal/core/domain"
)

// PatientRepository exposes the read views a patient has over their own data.
type PatientRepository interface {
	Appointments(ctx context.Context, patientID int64) ([]domain.Appointment, error)
	MedicalHistory(ctx context.Context, patientID int64) ([]domain.MedicalRecord, error)
}

type PatientService interface {
	Appointments(ctx context.Context, patientID int64) ([]domain.Appointment, error)
	MedicalHistory(ctx context.Context, patientID int64) ([]domain.MedicalRecord, error)
}

// ReceptionistRepository exposes the read views over the doctors a
// receptionist works for, and transitively over those doctors' patients.
type ReceptionistRepository interface {
	AssociatedDoctor(ctx context.Context, receptionistID int64) (*domain.Doctor, error)
	DoctorAppointments(ctx context.Context, receptionistID int64) ([]domain.Appointment, error)
	DoctorMedicalHistories(ctx context.Context, receptionistID int64) ([]domain.MedicalRecord, error)
}

type ReceptionistService interface {
	AssociatedDoctor(ctx context.Context, receptionistID int64) (*domain.Doctor, error)
	DoctorAppointments(ctx context.Context, receptionistID int64) ([]domain.Appointment, error)
	DoctorMedicalHistories(ctx context.Context, receptionistID int64) ([]domain.MedicalRecord, error)
}
