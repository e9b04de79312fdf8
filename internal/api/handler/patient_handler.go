package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/clinicore/clinic-api/internal/core/ports"
)

// PatientHandler serves a patient's views over their own data.
type PatientHandler struct {
	service ports.PatientService
}

func NewPatientHandler(service ports.PatientService) *PatientHandler {
	return &PatientHandler{service: service}
}

// Appointments handles GET /patients/:id/appointments.
//
// @Summary      List a patient's appointments
// @Tags         patients
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Patient id"
// @Success      200  {object}  appointmentsResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /patients/{id}/appointments [get]
func (h *PatientHandler) Appointments(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	appts, err := h.service.Appointments(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, appointmentsResponse{Appointments: appts})
}

// MedicalHistory handles GET /patients/:id/medical-history.
//
// @Summary      List a patient's medical history
// @Tags         patients
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Patient id"
// @Success      200  {object}  medicalHistoryResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /patients/{id}/medical-history [get]
func (h *PatientHandler) MedicalHistory(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	records, err := h.service.MedicalHistory(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, medicalHistoryResponse{MedicalHistory: records})
}
