package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"CityGeneral/middlewares"
	"CityGeneral/services"
)

type BillingHandler struct {
	service *services.BillingService
}

func NewBillingHandler(service *services.BillingService) *BillingHandler {
	return &BillingHandler{service: service}
}

func (h *BillingHandler) CreateBill(c *gin.Context) {
	var in services.BillCreateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		middlewares.RespondError(c, fmt.Errorf("%w: %v", services.ErrValidation, err))
		return
	}
	bill, err := h.service.Create(c.Request.Context(), in)
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, bill)
}

func (h *BillingHandler) GetBillByID(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	bill, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, bill)
}

// GetAllBills supports optional status and patient_id query filters.
func (h *BillingHandler) GetAllBills(c *gin.Context) {
	patientID, err := parseIDQuery(c, "patient_id")
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	bills, err := h.service.GetAll(c.Request.Context(), c.Query("status"), patientID)
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, bills)
}

func (h *BillingHandler) UpdateBill(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	var in services.BillUpdateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		middlewares.RespondError(c, fmt.Errorf("%w: %v", services.ErrValidation, err))
		return
	}
	bill, err := h.service.Update(c.Request.Context(), id, in)
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, bill)
}

func (h *BillingHandler) PayBill(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	var in services.PaymentInput
	if err := c.ShouldBindJSON(&in); err != nil {
		middlewares.RespondError(c, fmt.Errorf("%w: %v", services.ErrValidation, err))
		return
	}
	bill, err := h.service.Pay(c.Request.Context(), id, in)
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, bill)
}

func (h *BillingHandler) DeleteBill(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		middlewares.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Bill deleted"})
}
