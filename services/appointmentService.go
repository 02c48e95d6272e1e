package services

import (
	"context"
	"fmt"

	"CityGeneral/models"
	"CityGeneral/repositories"
)

type AppointmentService struct {
	repository repositories.AppointmentRepository
}

func NewAppointmentService(repository repositories.AppointmentRepository) *AppointmentService {
	return &AppointmentService{repository: repository}
}

func (s *AppointmentService) Create(ctx context.Context, appointment *models.Appointment) error {
	return s.repository.Create(ctx, appointment)
}

func (s *AppointmentService) GetByID(ctx context.Context, id int64) (*models.Appointment, error) {
	appointment, err := s.repository.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if appointment == nil {
		return nil, fmt.Errorf("%w: appointment", ErrNotFound)
	}
	return appointment, nil
}

func (s *AppointmentService) GetAll(ctx context.Context, patientID, doctorID int64) ([]models.Appointment, error) {
	return s.repository.GetAll(ctx, patientID, doctorID)
}

func (s *AppointmentService) Update(ctx context.Context, appointment *models.Appointment) error {
	return s.repository.Update(ctx, appointment)
}

func (s *AppointmentService) Delete(ctx context.Context, id int64) error {
	return s.repository.Delete(ctx, id)
}
