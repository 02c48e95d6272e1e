package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"CityGeneral/middlewares"
	"CityGeneral/models"
	"CityGeneral/services"
)

type MedicalRecordHandler struct {
	service *services.MedicalRecordService
}

func NewMedicalRecordHandler(service *services.MedicalRecordService) *MedicalRecordHandler {
	return &MedicalRecordHandler{service: service}
}

func (h *MedicalRecordHandler) CreateMedicalRecord(c *gin.Context) {
	var record models.MedicalRecord
	if err := c.ShouldBindJSON(&record); err != nil {
		middlewares.RespondError(c, fmt.Errorf("%w: %v", services.ErrValidation, err))
		return
	}
	if err := h.service.Create(c.Request.Context(), &record); err != nil {
		middlewares.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, record)
}

func (h *MedicalRecordHandler) GetMedicalRecordByID(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	record, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, record)
}

func (h *MedicalRecordHandler) GetMedicalRecordsByPatient(c *gin.Context) {
	patientID, err := parseIDParam(c, "id")
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	records, err := h.service.GetByPatient(c.Request.Context(), patientID)
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, records)
}

func (h *MedicalRecordHandler) UpdateMedicalRecord(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	var record models.MedicalRecord
	if err := c.ShouldBindJSON(&record); err != nil {
		middlewares.RespondError(c, fmt.Errorf("%w: %v", services.ErrValidation, err))
		return
	}
	record.ID = id
	if err := h.service.Update(c.Request.Context(), &record); err != nil {
		middlewares.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, record)
}

func (h *MedicalRecordHandler) DeleteMedicalRecord(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		middlewares.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Medical record deleted"})
}
