package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"CityGeneral/middlewares"
	"CityGeneral/models"
	"CityGeneral/services"
)

type AppointmentHandler struct {
	service *services.AppointmentService
}

func NewAppointmentHandler(service *services.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{service: service}
}

// CreateAppointment records who booked it from the authenticated caller.
func (h *AppointmentHandler) CreateAppointment(c *gin.Context) {
	var appointment models.Appointment
	if err := c.ShouldBindJSON(&appointment); err != nil {
		middlewares.RespondError(c, fmt.Errorf("%w: %v", services.ErrValidation, err))
		return
	}
	user, ok := middlewares.CurrentUser(c)
	if !ok {
		middlewares.RespondError(c, services.ErrInvalidCredentials)
		return
	}
	appointment.CreatedBy = user.ID
	if err := h.service.Create(c.Request.Context(), &appointment); err != nil {
		middlewares.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, appointment)
}

func (h *AppointmentHandler) GetAppointmentByID(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	appointment, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, appointment)
}

// GetAllAppointments supports optional patient_id and doctor_id filters.
func (h *AppointmentHandler) GetAllAppointments(c *gin.Context) {
	patientID, err := parseIDQuery(c, "patient_id")
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	doctorID, err := parseIDQuery(c, "doctor_id")
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	appointments, err := h.service.GetAll(c.Request.Context(), patientID, doctorID)
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, appointments)
}

func (h *AppointmentHandler) UpdateAppointment(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	existing, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	var appointment models.Appointment
	if err := c.ShouldBindJSON(&appointment); err != nil {
		middlewares.RespondError(c, fmt.Errorf("%w: %v", services.ErrValidation, err))
		return
	}
	appointment.ID = id
	appointment.CreatedBy = existing.CreatedBy
	if err := h.service.Update(c.Request.Context(), &appointment); err != nil {
		middlewares.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, appointment)
}

func (h *AppointmentHandler) DeleteAppointment(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		middlewares.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Appointment deleted"})
}
