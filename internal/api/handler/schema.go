package handler

import "github.com/clinicore/clinic-api/internal/core/domain"

// errorResponse is the standard error envelope returned on all 4xx/5xx
// responses. Rendering happens in the centralized error handler; the type
// lives here for the route annotations.
type errorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// --- Appointments ---

type appointmentRequest struct {
	PatientID       int64  `json:"patient_id"       validate:"required"`
	DoctorID        int64  `json:"doctor_id"        validate:"required"`
	AppointmentDate string `json:"appointment_date" validate:"required"`
	AppointmentTime string `json:"appointment_time" validate:"required"`
	Reason          string `json:"reason"`
}

type appointmentResponse struct {
	Appointment *domain.Appointment `json:"appointment"`
}

type appointmentsResponse struct {
	Appointments []domain.Appointment `json:"appointments"`
}

// --- Users (admin CRUD) ---

type userRequest struct {
	Username    string `json:"username"      validate:"required"`
	Email       string `json:"email"         validate:"required,email"`
	Password    string `json:"password"      validate:"required"`
	Name        string `json:"name"          validate:"required"`
	Surname     string `json:"surname"       validate:"required"`
	DateOfBirth string `json:"date_of_birth" validate:"required"`
	Gender      string `json:"gender"        validate:"required"`
	Address     string `json:"address"`
	Phone       string `json:"phone"`
	UserType    string `json:"user_type"     validate:"required,oneof=patient doctor receptionist admin"`
}

// --- Emergency contacts ---

type contactRequest struct {
	Name         string `json:"name"  validate:"required"`
	Relationship string `json:"relationship"`
	Phone        string `json:"phone" validate:"required"`
	Email        string `json:"email" validate:"omitempty,email"`
}

// --- Directory views ---

type medicalHistoryResponse struct {
	MedicalHistory []domain.MedicalRecord `json:"medical_history"`
}
