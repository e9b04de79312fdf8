package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/clinicore/clinic-api/internal/core/ports"
)

// ReceptionistHandler serves the views a receptionist has over the doctors
// they work for.
type ReceptionistHandler struct {
	service ports.ReceptionistService
}

func NewReceptionistHandler(service ports.ReceptionistService) *ReceptionistHandler {
	return &ReceptionistHandler{service: service}
}

// AssociatedDoctor handles GET /receptionists/:id/associated-doctor.
//
// @Summary      Get the doctor a receptionist works for
// @Tags         receptionists
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Receptionist id"
// @Success      200  {object}  domain.Doctor
// @Failure      404  {object}  errorResponse
// @Router       /receptionists/{id}/associated-doctor [get]
func (h *ReceptionistHandler) AssociatedDoctor(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	doctor, err := h.service.AssociatedDoctor(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, doctor)
}

// DoctorAppointments handles GET /receptionists/:id/appointments.
//
// @Summary      List appointments of the receptionist's doctors
// @Tags         receptionists
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Receptionist id"
// @Success      200  {object}  appointmentsResponse
// @Failure      403  {object}  errorResponse
// @Router       /receptionists/{id}/appointments [get]
func (h *ReceptionistHandler) DoctorAppointments(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	appts, err := h.service.DoctorAppointments(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, appointmentsResponse{Appointments: appts})
}

// DoctorMedicalHistories handles GET /receptionists/:id/medical-histories.
//
// @Summary      List medical histories across the receptionist's doctors
// @Tags         receptionists
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Receptionist id"
// @Success      200  {object}  medicalHistoryResponse
// @Failure      403  {object}  errorResponse
// @Router       /receptionists/{id}/medical-histories [get]
func (h *ReceptionistHandler) DoctorMedicalHistories(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	records, err := h.service.DoctorMedicalHistories(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, medicalHistoryResponse{MedicalHistory: records})
}
