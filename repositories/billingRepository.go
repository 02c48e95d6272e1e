package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"CityGeneral/cache"
	"CityGeneral/database"
	"CityGeneral/models"
)

const billCacheExpiry = 24 * time.Hour

// Repository-level billing failures; the service translates these into the
// boundary taxonomy.
var (
	ErrBillNotFound        = errors.New("bill not found")
	ErrBillAlreadyPaid     = errors.New("bill is already fully paid")
	ErrPaidBillUndeletable = errors.New("cannot delete a paid bill")
	ErrPatientMissing      = errors.New("patient not found")
)

type BillingRepository interface {
	Create(ctx context.Context, bill *models.Bill) error
	GetByID(ctx context.Context, id int64) (*models.Bill, error)
	GetAll(ctx context.Context, status string, patientID int64) ([]models.Bill, error)
	Update(ctx context.Context, bill *models.Bill) error
	Pay(ctx context.Context, id int64, amount float64, method models.PaymentMethod) (*models.Bill, error)
	Delete(ctx context.Context, id int64) error
}

type billingRepository struct {
	db    *gorm.DB
	cache *cache.Cache
	now   func() time.Time
}

func NewBillingRepository(db *gorm.DB, cache *cache.Cache, now func() time.Time) BillingRepository {
	if now == nil {
		now = time.Now
	}
	return &billingRepository{db: db, cache: cache, now: now}
}

// withBillLock runs fn under a redis lock keyed by bill, retrying the
// acquisition so two concurrent writes against the same bill serialize.
func (r *billingRepository) withBillLock(ctx context.Context, id int64, fn func() error) error {
	lockKey := fmt.Sprintf("bill_lock:%d", id)
	lockValue := uuid.New().String()

	maxRetries := 3
	retryDelay := 2 * time.Second
	var locked bool
	var err error
	for i := 0; i < maxRetries; i++ {
		locked, err = database.NewLock(ctx, lockKey, lockValue, 10*time.Second)
		if err == nil && locked {
			break
		}
		if i < maxRetries-1 {
			time.Sleep(retryDelay)
		}
	}
	if !locked {
		return fmt.Errorf("failed to acquire bill lock after retries: %w", err)
	}
	defer func() {
		if err := database.ReleaseLock(ctx, lockKey, lockValue); err != nil {
			log.Printf("Failed to release bill lock: %v", err)
		}
	}()

	return fn()
}

func (r *billingRepository) Create(ctx context.Context, bill *models.Bill) error {
	var patient models.Patient
	if err := r.db.WithContext(ctx).First(&patient, "id = ?", bill.PatientID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPatientMissing
		}
		return fmt.Errorf("failed to find patient: %w", err)
	}

	bill.BillNumber = models.NewBillNumber(r.now())
	bill.PaidAmount = 0
	bill.Status = models.StatusPending
	bill.Recalculate()

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Items are created together with the bill; one failure rolls
		// back both.
		if err := tx.Create(bill).Error; err != nil {
			return fmt.Errorf("failed to create bill: %w", err)
		}
		return r.invalidate(ctx, bill.ID)
	})
}

func (r *billingRepository) GetByID(ctx context.Context, id int64) (*models.Bill, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cacheKey := r.getBillCacheKey(id)
	cached, err := r.cache.Get(ctx, cacheKey)
	if err == nil && cached != "" {
		var bill models.Bill
		if err := json.Unmarshal([]byte(cached), &bill); err == nil {
			return &bill, nil
		}
	}

	var bill models.Bill
	err = r.db.WithContext(ctx).Preload("Items").First(&bill, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get bill: %w", err)
	}

	if billJSON, err := json.Marshal(bill); err == nil {
		if err := r.cache.Set(ctx, cacheKey, billJSON, billCacheExpiry); err != nil {
			log.Printf("Failed to set bill in cache: %v", err)
		}
	}
	return &bill, nil
}

func (r *billingRepository) GetAll(ctx context.Context, status string, patientID int64) ([]models.Bill, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	unfiltered := status == "" && patientID == 0
	if unfiltered {
		cached, err := r.cache.Get(ctx, "bills_cache")
		if err == nil && cached != "" {
			var bills []models.Bill
			if err := json.Unmarshal([]byte(cached), &bills); err == nil {
				return bills, nil
			}
		}
	}

	query := r.db.WithContext(ctx).Preload("Items").Order("created_at DESC")
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if patientID != 0 {
		query = query.Where("patient_id = ?", patientID)
	}

	var bills []models.Bill
	if err := query.Find(&bills).Error; err != nil {
		return nil, fmt.Errorf("failed to get bills: %w", err)
	}

	if unfiltered {
		if billsJSON, err := json.Marshal(bills); err == nil {
			if err := r.cache.Set(ctx, "bills_cache", billsJSON, billCacheExpiry); err != nil {
				log.Printf("Failed to set bills in cache: %v", err)
			}
		}
	}
	return bills, nil
}

// Update saves bill-level fields, re-deriving balance and status from the
// amounts. Line items are not touched by this path.
func (r *billingRepository) Update(ctx context.Context, bill *models.Bill) error {
	return r.withBillLock(ctx, bill.ID, func() error {
		bill.Recalculate()
		if err := r.db.WithContext(ctx).Omit("Items").Save(bill).Error; err != nil {
			return fmt.Errorf("failed to update bill: %w", err)
		}
		return r.invalidate(ctx, bill.ID)
	})
}

// Pay records a payment as a single read-modify-write transaction: the bill
// is reread inside the transaction, the amounts recomputed, and the row
// written back, so concurrent payments cannot lose updates.
func (r *billingRepository) Pay(ctx context.Context, id int64, amount float64, method models.PaymentMethod) (*models.Bill, error) {
	var paid models.Bill
	err := r.withBillLock(ctx, id, func() error {
		return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			var bill models.Bill
			if err := tx.Preload("Items").First(&bill, "id = ?", id).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrBillNotFound
				}
				return fmt.Errorf("failed to find bill: %w", err)
			}
			if bill.Status == models.StatusPaid {
				return ErrBillAlreadyPaid
			}

			bill.ApplyPayment(amount, method)

			if err := tx.Omit("Items").Save(&bill).Error; err != nil {
				return fmt.Errorf("failed to record payment: %w", err)
			}
			paid = bill
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	if err := r.invalidate(ctx, id); err != nil {
		log.Printf("Failed to invalidate bill cache: %v", err)
	}
	return &paid, nil
}

// Delete removes a bill and its line items together. Paid bills stay.
func (r *billingRepository) Delete(ctx context.Context, id int64) error {
	return r.withBillLock(ctx, id, func() error {
		err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			var bill models.Bill
			if err := tx.First(&bill, "id = ?", id).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrBillNotFound
				}
				return fmt.Errorf("failed to find bill: %w", err)
			}
			if bill.Status == models.StatusPaid {
				return ErrPaidBillUndeletable
			}
			if err := tx.Where("bill_id = ?", id).Delete(&models.BillItem{}).Error; err != nil {
				return fmt.Errorf("failed to delete bill items: %w", err)
			}
			if err := tx.Delete(&models.Bill{}, "id = ?", id).Error; err != nil {
				return fmt.Errorf("failed to delete bill: %w", err)
			}
			return nil
		})
		if err != nil {
			return err
		}
		return r.invalidate(ctx, id)
	})
}

func (r *billingRepository) invalidate(ctx context.Context, id int64) error {
	if err := r.cache.Delete(ctx, r.getBillCacheKey(id)); err != nil {
		return fmt.Errorf("failed to delete bill cache: %w", err)
	}
	return r.cache.Delete(ctx, "bills_cache")
}

func (r *billingRepository) getBillCacheKey(id int64) string {
	return fmt.Sprintf("bill_cache:%d", id)
}
