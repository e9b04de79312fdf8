package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clinicore/clinic-api/internal/core/domain"
)

// ReceptionistRepository serves the read views over the doctor a receptionist
// is assigned to, and over that doctor's schedule and patient records.
type ReceptionistRepository struct {
	pool *pgxpool.Pool
}

func NewReceptionistRepository(pool *pgxpool.Pool) *ReceptionistRepository {
	return &ReceptionistRepository{pool: pool}
}

func (r *ReceptionistRepository) AssociatedDoctor(ctx context.Context, receptionistID int64) (*domain.Doctor, error) {
	var d domain.Doctor
	err := r.pool.QueryRow(ctx, `
		SELECT id, user_id, coalesce(specialization, ''), coalesce(receptionist_id, 0)
		FROM doctors
		WHERE receptionist_id = $1`,
		receptionistID,
	).Scan(&d.ID, &d.UserID, &d.Specialization, &d.ReceptionistID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrDoctorNotFound
		}
		return nil, fmt.Errorf("find associated doctor: %w", err)
	}
	return &d, nil
}

func (r *ReceptionistRepository) DoctorAppointments(ctx context.Context, receptionistID int64) ([]domain.Appointment, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+appointmentColumns+`
		FROM appointments
		WHERE doctor_id IN (SELECT id FROM doctors WHERE receptionist_id = $1)
		ORDER BY appointment_date, appointment_time`,
		receptionistID,
	)
	if err != nil {
		return nil, fmt.Errorf("doctor appointments: %w", err)
	}
	defer rows.Close()
	return collectAppointments(rows)
}

func (r *ReceptionistRepository) DoctorMedicalHistories(ctx context.Context, receptionistID int64) ([]domain.MedicalRecord, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+medicalRecordColumns+`
		FROM medical_records
		WHERE doctor_id IN (SELECT id FROM doctors WHERE receptionist_id = $1)
		ORDER BY recorded_at DESC`,
		receptionistID,
	)
	if err != nil {
		return nil, fmt.Errorf("doctor medical histories: %w", err)
	}
	defer rows.Close()
	return collectMedicalRecords(rows)
}
