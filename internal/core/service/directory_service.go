package service

import (
	"context"

	"github.com/clinicore/clinic-api/internal/core/domain"
	"github.com/clinicore/clinic-api/internal/core/ports"
)

// PatientService surfaces a patient's own appointments and medical history.
type PatientService struct {
	repo ports.PatientRepository
}

func NewPatientService(repo ports.PatientRepository) *PatientService {
	return &PatientService{repo: repo}
}

func (s *PatientService) Appointments(ctx context.Context, patientID int64) ([]domain.Appointment, error) {
	return s.repo.Appointments(ctx, patientID)
}

func (s *PatientService) MedicalHistory(ctx context.Context, patientID int64) ([]domain.MedicalRecord, error) {
	return s.repo.MedicalHistory(ctx, patientID)
}

// ReceptionistService surfaces the views a receptionist has over the doctors
// they work for.
type ReceptionistService struct {
	repo ports.ReceptionistRepository
}

func NewReceptionistService(repo ports.ReceptionistRepository) *ReceptionistService {
	return &ReceptionistService{repo: repo}
}

func (s *ReceptionistService) AssociatedDoctor(ctx context.Context, receptionistID int64) (*domain.Doctor, error) {
	return s.repo.AssociatedDoctor(ctx, receptionistID)
}

func (s *ReceptionistService) DoctorAppointments(ctx context.Context, receptionistID int64) ([]domain.Appointment, error) {
	return s.repo.DoctorAppointments(ctx, receptionistID)
}

func (s *ReceptionistService) DoctorMedicalHistories(ctx context.Context, receptionistID int64) ([]domain.MedicalRecord, error) {
	return s.repo.DoctorMedicalHistories(ctx, receptionistID)
}
