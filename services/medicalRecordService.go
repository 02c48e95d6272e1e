package services

import (
	"context"
	"fmt"

	"CityGeneral/models"
	"CityGeneral/repositories"
)

type MedicalRecordService struct {
	repository repositories.MedicalRecordRepository
}

func NewMedicalRecordService(repository repositories.MedicalRecordRepository) *MedicalRecordService {
	return &MedicalRecordService{repository: repository}
}

func (s *MedicalRecordService) Create(ctx context.Context, record *models.MedicalRecord) error {
	return s.repository.Create(ctx, record)
}

func (s *MedicalRecordService) GetByID(ctx context.Context, id int64) (*models.MedicalRecord, error) {
	record, err := s.repository.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, fmt.Errorf("%w: medical record", ErrNotFound)
	}
	return record, nil
}

func (s *MedicalRecordService) GetByPatient(ctx context.Context, patientID int64) ([]models.MedicalRecord, error) {
	return s.repository.GetByPatient(ctx, patientID)
}

func (s *MedicalRecordService) Update(ctx context.Context, record *models.MedicalRecord) error {
	return s.repository.Update(ctx, record)
}

func (s *MedicalRecordService) Delete(ctx context.Context, id int64) error {
	return s.repository.Delete(ctx, id)
}
