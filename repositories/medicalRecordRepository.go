package repositories

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"CityGeneral/models"
)

type MedicalRecordRepository interface {
	Create(ctx context.Context, record *models.MedicalRecord) error
	GetByID(ctx context.Context, id int64) (*models.MedicalRecord, error)
	GetByPatient(ctx context.Context, patientID int64) ([]models.MedicalRecord, error)
	Update(ctx context.Context, record *models.MedicalRecord) error
	Delete(ctx context.Context, id int64) error
}

type medicalRecordRepository struct {
	db *gorm.DB
}

func NewMedicalRecordRepository(db *gorm.DB) MedicalRecordRepository {
	return &medicalRecordRepository{db: db}
}

func (r *medicalRecordRepository) Create(ctx context.Context, record *models.MedicalRecord) error {
	if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
		return fmt.Errorf("failed to create medical record: %w", err)
	}
	return nil
}

func (r *medicalRecordRepository) GetByID(ctx context.Context, id int64) (*models.MedicalRecord, error) {
	var record models.MedicalRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get medical record: %w", err)
	}
	return &record, nil
}

func (r *medicalRecordRepository) GetByPatient(ctx context.Context, patientID int64) ([]models.MedicalRecord, error) {
	var records []models.MedicalRecord
	err := r.db.WithContext(ctx).
		Where("patient_id = ?", patientID).
		Order("record_date DESC").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get medical records: %w", err)
	}
	return records, nil
}

func (r *medicalRecordRepository) Update(ctx context.Context, record *models.MedicalRecord) error {
	if err := r.db.WithContext(ctx).Save(record).Error; err != nil {
		return fmt.Errorf("failed to update medical record: %w", err)
	}
	return nil
}

func (r *medicalRecordRepository) Delete(ctx context.Context, id int64) error {
	if err := r.db.WithContext(ctx).Delete(&models.MedicalRecord{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("failed to delete medical record: %w", err)
	}
	return nil
}
