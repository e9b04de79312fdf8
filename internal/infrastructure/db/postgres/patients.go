package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clinicore/clinic-api/internal/core/domain"
)

// PatientRepository serves the read views a patient has over their own
// appointments and medical history.
type PatientRepository struct {
	pool *pgxpool.Pool
}

func NewPatientRepository(pool *pgxpool.Pool) *PatientRepository {
	return &PatientRepository{pool: pool}
}

func (r *PatientRepository) Appointments(ctx context.Context, patientID int64) ([]domain.Appointment, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+appointmentColumns+`
		FROM appointments
		WHERE patient_id = $1
		ORDER BY appointment_date, appointment_time`,
		patientID,
	)
	if err != nil {
		return nil, fmt.Errorf("patient appointments: %w", err)
	}
	defer rows.Close()
	return collectAppointments(rows)
}

func (r *PatientRepository) MedicalHistory(ctx context.Context, patientID int64) ([]domain.MedicalRecord, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+medicalRecordColumns+`
		FROM medical_records
		WHERE patient_id = $1
		ORDER BY recorded_at DESC`,
		patientID,
	)
	if err != nil {
		return nil, fmt.Errorf("patient medical history: %w", err)
	}
	defer rows.Close()
	return collectMedicalRecords(rows)
}

const medicalRecordColumns = `
	id, patient_id, coalesce(doctor_id, 0),
	coalesce(diagnosis, ''), coalesce(treatment, ''), recorded_at`

func collectMedicalRecords(rows pgx.Rows) ([]domain.MedicalRecord, error) {
	records := make([]domain.MedicalRecord, 0)
	for rows.Next() {
		var rec domain.MedicalRecord
		err := rows.Scan(
			&rec.ID,
			&rec.PatientID,
			&rec.DoctorID,
			&rec.Diagnosis,
			&rec.Treatment,
			&rec.RecordedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan medical record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate medical records: %w", err)
	}
	return records, nil
}
