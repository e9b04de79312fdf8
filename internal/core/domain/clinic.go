package domain

import (
	"errors"
	"time"
)

var ErrDoctorNotFound = errors.New("associated doctor not found")

// Doctor is the staff directory entry for a practicing doctor. Each doctor may
// have a receptionist assigned to manage their schedule.
type Doctor struct {
	ID             int64  `json:"id"`
	UserID         int64  `json:"user_id"`
	Specialization string `json:"specialization,omitempty"`
	ReceptionistID int64  `json:"receptionist_id,omitempty"`
}

// MedicalRecord is one entry in a patient's medical history.
type MedicalRecord struct {
	ID         int64     `json:"id"`
	PatientID  int64     `json:"patient_id"`
	DoctorID   int64     `json:"doctor_id,omitempty"`
	Diagnosis  string    `json:"diagnosis,omitempty"`
	Treatment  string    `json:"treatment,omitempty"`
	RecordedAt time.Time `json:"recorded_at"`
}
