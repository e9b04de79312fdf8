package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/clinicore/clinic-api/internal/core/ports"
)

// ContactHandler handles emergency-contact CRUD.
type ContactHandler struct {
	service ports.ContactService
}

func NewContactHandler(service ports.ContactService) *ContactHandler {
	return &ContactHandler{service: service}
}

// Create handles POST /emergency-contacts.
//
// @Summary      Create an emergency contact
// @Tags         emergency-contacts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      contactRequest  true  "Contact details"
// @Success      201   {object}  messageResponse
// @Failure      400   {object}  errorResponse
// @Router       /emergency-contacts [post]
func (h *ContactHandler) Create(c echo.Context) error {
	var req contactRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	if _, err := h.service.Create(c.Request().Context(), toContactInput(req)); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, successMessage("Emergency contact has been created"))
}

// Update handles PUT /emergency-contacts/:id.
//
// @Summary      Update an emergency contact
// @Tags         emergency-contacts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int             true  "Contact id"
// @Param        body  body      contactRequest  true  "Contact details"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /emergency-contacts/{id} [put]
func (h *ContactHandler) Update(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req contactRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	if err := h.service.Update(c.Request().Context(), id, toContactInput(req)); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, successMessage("Emergency contact has been updated"))
}

// Delete handles DELETE /emergency-contacts/:id.
//
// @Summary      Delete an emergency contact
// @Tags         emergency-contacts
// @Security     BearerAuth
// @Param        id  path  int  true  "Contact id"
// @Success      204
// @Router       /emergency-contacts/{id} [delete]
func (h *ContactHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func toContactInput(req contactRequest) ports.ContactInput {
	return ports.ContactInput{
		Name:         req.Name,
		Relationship: req.Relationship,
		Phone:        req.Phone,
		Email:        req.Email,
	}
}
