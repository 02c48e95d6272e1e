package services

import (
	"context"
	"fmt"

	"CityGeneral/models"
	"CityGeneral/repositories"
)

type PrescriptionService struct {
	repository repositories.PrescriptionRepository
}

func NewPrescriptionService(repository repositories.PrescriptionRepository) *PrescriptionService {
	return &PrescriptionService{repository: repository}
}

func (s *PrescriptionService) Create(ctx context.Context, prescription *models.Prescription) error {
	return s.repository.Create(ctx, prescription)
}

func (s *PrescriptionService) GetByID(ctx context.Context, id int64) (*models.Prescription, error) {
	prescription, err := s.repository.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if prescription == nil {
		return nil, fmt.Errorf("%w: prescription", ErrNotFound)
	}
	return prescription, nil
}

func (s *PrescriptionService) GetByPatient(ctx context.Context, patientID int64) ([]models.Prescription, error) {
	return s.repository.GetByPatient(ctx, patientID)
}

func (s *PrescriptionService) Update(ctx context.Context, prescription *models.Prescription) error {
	return s.repository.Update(ctx, prescription)
}

func (s *PrescriptionService) Delete(ctx context.Context, id int64) error {
	return s.repository.Delete(ctx, id)
}
