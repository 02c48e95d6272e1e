package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"CityGeneral/middlewares"
	"CityGeneral/models"
	"CityGeneral/services"
)

type DoctorHandler struct {
	service *services.DoctorService
}

func NewDoctorHandler(service *services.DoctorService) *DoctorHandler {
	return &DoctorHandler{service: service}
}

func (h *DoctorHandler) CreateDoctor(c *gin.Context) {
	var doctor models.Doctor
	if err := c.ShouldBindJSON(&doctor); err != nil {
		middlewares.RespondError(c, fmt.Errorf("%w: %v", services.ErrValidation, err))
		return
	}
	if err := h.service.Create(c.Request.Context(), &doctor); err != nil {
		middlewares.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, doctor)
}

func (h *DoctorHandler) GetDoctorByID(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	doctor, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, doctor)
}

func (h *DoctorHandler) GetAllDoctors(c *gin.Context) {
	doctors, err := h.service.GetAll(c.Request.Context())
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, doctors)
}

func (h *DoctorHandler) UpdateDoctor(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	var doctor models.Doctor
	if err := c.ShouldBindJSON(&doctor); err != nil {
		middlewares.RespondError(c, fmt.Errorf("%w: %v", services.ErrValidation, err))
		return
	}
	doctor.ID = id
	if err := h.service.Update(c.Request.Context(), &doctor); err != nil {
		middlewares.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, doctor)
}

func (h *DoctorHandler) DeleteDoctor(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		middlewares.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Doctor deleted"})
}
