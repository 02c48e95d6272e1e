package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"CityGeneral/models"
	"CityGeneral/repositories"
)

// BillItemInput is a line item supplied at bill creation. The total price is
// always computed server-side.
type BillItemInput struct {
	Description string  `json:"description"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	ItemType    string  `json:"item_type"`
}

// BillCreateInput is the payload for creating a bill with its items.
type BillCreateInput struct {
	PatientID         int64           `json:"patient_id"`
	BillDate          time.Time       `json:"bill_date"`
	DueDate           *time.Time      `json:"due_date"`
	InsuranceProvider string          `json:"insurance_provider"`
	InsuranceNumber   string          `json:"insurance_number"`
	InsuranceCoverage float64         `json:"insurance_coverage"`
	Notes             string          `json:"notes"`
	Items             []BillItemInput `json:"items"`
}

// BillUpdateInput carries optional bill-level field updates. A supplied
// paid_amount triggers recomputation of balance and status; a supplied
// status may only move the bill to cancelled.
type BillUpdateInput struct {
	DueDate           *time.Time            `json:"due_date"`
	PaidAmount        *float64              `json:"paid_amount"`
	Status            *models.PaymentStatus `json:"status"`
	PaymentMethod     *models.PaymentMethod `json:"payment_method"`
	InsuranceProvider *string               `json:"insurance_provider"`
	InsuranceNumber   *string               `json:"insurance_number"`
	InsuranceCoverage *float64              `json:"insurance_coverage"`
	Notes             *string               `json:"notes"`
}

// PaymentInput is a discrete payment against a bill.
type PaymentInput struct {
	Amount        float64              `json:"amount"`
	PaymentMethod models.PaymentMethod `json:"payment_method"`
}

type BillingService struct {
	repository repositories.BillingRepository
}

func NewBillingService(repository repositories.BillingRepository) *BillingService {
	return &BillingService{repository: repository}
}

// Create builds the bill aggregate from the input and persists it atomically
// with its line items. The total is the sum of quantity times unit price
// across the items, never taken from the client.
func (s *BillingService) Create(ctx context.Context, in BillCreateInput) (*models.Bill, error) {
	if err := validateBillCreate(in); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	bill := &models.Bill{
		PatientID:         in.PatientID,
		BillDate:          in.BillDate,
		DueDate:           in.DueDate,
		InsuranceProvider: in.InsuranceProvider,
		InsuranceNumber:   in.InsuranceNumber,
		InsuranceCoverage: in.InsuranceCoverage,
		Notes:             in.Notes,
	}
	for _, item := range in.Items {
		bill.Items = append(bill.Items, models.BillItem{
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			ItemType:    item.ItemType,
		})
	}

	if err := s.repository.Create(ctx, bill); err != nil {
		if errors.Is(err, repositories.ErrPatientMissing) {
			return nil, fmt.Errorf("%w: patient", ErrNotFound)
		}
		return nil, err
	}
	return bill, nil
}

func (s *BillingService) GetByID(ctx context.Context, id int64) (*models.Bill, error) {
	bill, err := s.repository.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if bill == nil {
		return nil, fmt.Errorf("%w: bill", ErrNotFound)
	}
	return bill, nil
}

func (s *BillingService) GetAll(ctx context.Context, status string, patientID int64) ([]models.Bill, error) {
	return s.repository.GetAll(ctx, status, patientID)
}

// Update applies bill-level field changes. Balance and status are re-derived
// by the repository; the only status a client may set directly is cancelled.
func (s *BillingService) Update(ctx context.Context, id int64, in BillUpdateInput) (*models.Bill, error) {
	bill, err := s.repository.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if bill == nil {
		return nil, fmt.Errorf("%w: bill", ErrNotFound)
	}

	if in.Status != nil {
		if *in.Status != models.StatusCancelled {
			return nil, fmt.Errorf("%w: status can only be set to cancelled; other statuses are derived", ErrValidation)
		}
		bill.Status = models.StatusCancelled
	}
	if in.PaidAmount != nil {
		if *in.PaidAmount < 0 {
			return nil, fmt.Errorf("%w: paid amount cannot be negative", ErrValidation)
		}
		bill.PaidAmount = *in.PaidAmount
	}
	if in.DueDate != nil {
		bill.DueDate = in.DueDate
	}
	if in.PaymentMethod != nil {
		bill.PaymentMethod = *in.PaymentMethod
	}
	if in.InsuranceProvider != nil {
		bill.InsuranceProvider = *in.InsuranceProvider
	}
	if in.InsuranceNumber != nil {
		bill.InsuranceNumber = *in.InsuranceNumber
	}
	if in.InsuranceCoverage != nil {
		bill.InsuranceCoverage = *in.InsuranceCoverage
	}
	if in.Notes != nil {
		bill.Notes = *in.Notes
	}

	if err := s.repository.Update(ctx, bill); err != nil {
		return nil, err
	}
	return bill, nil
}

// Pay records a payment. Paid bills take no further payments; the rejected
// attempt leaves the bill untouched.
func (s *BillingService) Pay(ctx context.Context, id int64, in PaymentInput) (*models.Bill, error) {
	if in.Amount <= 0 {
		return nil, fmt.Errorf("%w: payment amount must be greater than 0", ErrValidation)
	}
	if in.PaymentMethod == "" {
		return nil, fmt.Errorf("%w: payment method is required", ErrValidation)
	}

	bill, err := s.repository.Pay(ctx, id, in.Amount, in.PaymentMethod)
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrBillNotFound):
			return nil, fmt.Errorf("%w: bill", ErrNotFound)
		case errors.Is(err, repositories.ErrBillAlreadyPaid):
			return nil, fmt.Errorf("%w: bill is already fully paid", ErrConflict)
		}
		return nil, err
	}
	return bill, nil
}

// Delete removes a non-paid bill together with its line items.
func (s *BillingService) Delete(ctx context.Context, id int64) error {
	err := s.repository.Delete(ctx, id)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repositories.ErrBillNotFound):
		return fmt.Errorf("%w: bill", ErrNotFound)
	case errors.Is(err, repositories.ErrPaidBillUndeletable):
		return fmt.Errorf("%w: cannot delete a paid bill", ErrConflict)
	}
	return err
}

func validateBillCreate(in BillCreateInput) error {
	err := validation.Errors{
		"patient_id": validation.Validate(in.PatientID, validation.Required),
		"bill_date":  validation.Validate(in.BillDate, validation.Required),
	}.Filter()
	if err != nil {
		return err
	}
	for i, item := range in.Items {
		err := validation.Errors{
			"description": validation.Validate(item.Description, validation.Required, validation.Length(1, 200)),
			"quantity":    validation.Validate(item.Quantity, validation.Required, validation.Min(1)),
			"unit_price":  validation.Validate(item.UnitPrice, validation.Min(0.0)),
		}.Filter()
		if err != nil {
			return fmt.Errorf("item %d: %v", i, err)
		}
	}
	return nil
}
