package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"CityGeneral/models"
	"CityGeneral/repositories"
)

type fakeBillingRepository struct {
	bills   map[int64]*models.Bill
	nextID  int64
	created *models.Bill
}

func newFakeBillingRepository() *fakeBillingRepository {
	return &fakeBillingRepository{bills: map[int64]*models.Bill{}, nextID: 1}
}

func (f *fakeBillingRepository) Create(_ context.Context, bill *models.Bill) error {
	bill.ID = f.nextID
	f.nextID++
	bill.BillNumber = models.NewBillNumber(time.Now())
	bill.Status = models.StatusPending
	bill.Recalculate()
	f.bills[bill.ID] = bill
	f.created = bill
	return nil
}

func (f *fakeBillingRepository) GetByID(_ context.Context, id int64) (*models.Bill, error) {
	return f.bills[id], nil
}

func (f *fakeBillingRepository) GetAll(_ context.Context, status string, patientID int64) ([]models.Bill, error) {
	var out []models.Bill
	for _, bill := range f.bills {
		if status != "" && string(bill.Status) != status {
			continue
		}
		if patientID != 0 && bill.PatientID != patientID {
			continue
		}
		out = append(out, *bill)
	}
	return out, nil
}

func (f *fakeBillingRepository) Update(_ context.Context, bill *models.Bill) error {
	bill.Recalculate()
	f.bills[bill.ID] = bill
	return nil
}

func (f *fakeBillingRepository) Pay(_ context.Context, id int64, amount float64, method models.PaymentMethod) (*models.Bill, error) {
	bill := f.bills[id]
	if bill == nil {
		return nil, repositories.ErrBillNotFound
	}
	if bill.Status == models.StatusPaid {
		return nil, repositories.ErrBillAlreadyPaid
	}
	bill.ApplyPayment(amount, method)
	return bill, nil
}

func (f *fakeBillingRepository) Delete(_ context.Context, id int64) error {
	bill := f.bills[id]
	if bill == nil {
		return repositories.ErrBillNotFound
	}
	if bill.Status == models.StatusPaid {
		return repositories.ErrPaidBillUndeletable
	}
	delete(f.bills, id)
	return nil
}

func seedBill(repo *fakeBillingRepository) *models.Bill {
	bill := &models.Bill{
		PatientID: 7,
		BillDate:  time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		Items: []models.BillItem{
			{Description: "Consultation", Quantity: 2, UnitPrice: 50},
			{Description: "Blood test", Quantity: 1, UnitPrice: 30},
		},
	}
	_ = repo.Create(context.Background(), bill)
	return bill
}

func TestBillingCreateValidation(t *testing.T) {
	service := NewBillingService(newFakeBillingRepository())

	_, err := service.Create(context.Background(), BillCreateInput{})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = service.Create(context.Background(), BillCreateInput{
		PatientID: 7,
		BillDate:  time.Now(),
		Items:     []BillItemInput{{Description: "X-ray", Quantity: 0, UnitPrice: 80}},
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestBillingCreateComputesTotals(t *testing.T) {
	repo := newFakeBillingRepository()
	service := NewBillingService(repo)

	bill, err := service.Create(context.Background(), BillCreateInput{
		PatientID: 7,
		BillDate:  time.Now(),
		Items: []BillItemInput{
			{Description: "Consultation", Quantity: 2, UnitPrice: 50},
			{Description: "Blood test", Quantity: 1, UnitPrice: 30},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 130.0, bill.TotalAmount)
	assert.Equal(t, 130.0, bill.Balance)
	assert.Equal(t, models.StatusPending, bill.Status)
	assert.NotEmpty(t, bill.BillNumber)
}

func TestBillingGetByIDNotFound(t *testing.T) {
	service := NewBillingService(newFakeBillingRepository())
	_, err := service.GetByID(context.Background(), 99)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestBillingPayValidation(t *testing.T) {
	repo := newFakeBillingRepository()
	service := NewBillingService(repo)
	bill := seedBill(repo)

	_, err := service.Pay(context.Background(), bill.ID, PaymentInput{Amount: 0, PaymentMethod: models.MethodCash})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = service.Pay(context.Background(), bill.ID, PaymentInput{Amount: -5, PaymentMethod: models.MethodCash})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = service.Pay(context.Background(), bill.ID, PaymentInput{Amount: 10})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestBillingPayLifecycle(t *testing.T) {
	repo := newFakeBillingRepository()
	service := NewBillingService(repo)
	bill := seedBill(repo)

	paid, err := service.Pay(context.Background(), bill.ID, PaymentInput{Amount: 50, PaymentMethod: models.MethodCash})
	require.NoError(t, err)
	assert.Equal(t, models.StatusPartial, paid.Status)
	assert.Equal(t, 80.0, paid.Balance)

	paid, err = service.Pay(context.Background(), bill.ID, PaymentInput{Amount: 80, PaymentMethod: models.MethodCash})
	require.NoError(t, err)
	assert.Equal(t, models.StatusPaid, paid.Status)

	_, err = service.Pay(context.Background(), bill.ID, PaymentInput{Amount: 10, PaymentMethod: models.MethodCash})
	assert.ErrorIs(t, err, ErrConflict)
}

func TestBillingPayUnknownBill(t *testing.T) {
	service := NewBillingService(newFakeBillingRepository())
	_, err := service.Pay(context.Background(), 99, PaymentInput{Amount: 10, PaymentMethod: models.MethodCash})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestBillingUpdateStatusRules(t *testing.T) {
	repo := newFakeBillingRepository()
	service := NewBillingService(repo)
	bill := seedBill(repo)

	paidStatus := models.StatusPaid
	_, err := service.Update(context.Background(), bill.ID, BillUpdateInput{Status: &paidStatus})
	assert.ErrorIs(t, err, ErrValidation)

	cancelled := models.StatusCancelled
	updated, err := service.Update(context.Background(), bill.ID, BillUpdateInput{Status: &cancelled})
	require.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, updated.Status)
}

func TestBillingUpdateRejectsNegativePaidAmount(t *testing.T) {
	repo := newFakeBillingRepository()
	service := NewBillingService(repo)
	bill := seedBill(repo)

	negative := -10.0
	_, err := service.Update(context.Background(), bill.ID, BillUpdateInput{PaidAmount: &negative})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestBillingDeleteRules(t *testing.T) {
	repo := newFakeBillingRepository()
	service := NewBillingService(repo)
	bill := seedBill(repo)

	_, err := service.Pay(context.Background(), bill.ID, PaymentInput{Amount: 130, PaymentMethod: models.MethodCash})
	require.NoError(t, err)

	err = service.Delete(context.Background(), bill.ID)
	assert.ErrorIs(t, err, ErrConflict)

	err = service.Delete(context.Background(), 99)
	assert.ErrorIs(t, err, ErrNotFound)

	other := seedBill(repo)
	assert.NoError(t, service.Delete(context.Background(), other.ID))
}
