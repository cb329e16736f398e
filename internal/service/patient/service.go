package patient

import (
	"context"

	"github.com/google/uuid"

	"github.com/zankoclinic/clinic-api/internal/model"
	"github.com/zankoclinic/clinic-api/internal/repository"
)

type Service struct {
	repo repository.PatientRepository
}

func NewService(repo repository.PatientRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, req *model.CreatePatientRequest) (*model.Patient, error) {
	patient := &model.Patient{
		FullName:         req.FullName,
		Phone:            req.Phone,
		Problem:          req.Problem,
		AssignedDoctorID: req.AssignedDoctorID,
		TotalCost:        req.TotalCost,
		RemainingAmount:  req.RemainingAmount,
		Currency:         req.Currency,
		ImplantBrand:     req.ImplantBrand,
		ImplantFormer:    req.ImplantFormer,
		ImplantCrownType: req.ImplantCrownType,
	}
	if err := s.repo.Create(ctx, patient); err != nil {
		return nil, err
	}
	return patient, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.Patient, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*model.Patient, error) {
	return s.repo.List(ctx)
}

// Search returns an empty slice without touching the store when the query
// is blank, matching the list endpoint's behavior for no filter.
func (s *Service) Search(ctx context.Context, q string) ([]*model.Patient, error) {
	if q == "" {
		return []*model.Patient{}, nil
	}
	return s.repo.Search(ctx, q)
}

func (s *Service) ListByDoctor(ctx context.Context, doctorID uuid.UUID) ([]*model.Patient, error) {
	return s.repo.ListByDoctor(ctx, doctorID)
}

func (s *Service) SearchByDoctor(ctx context.Context, doctorID uuid.UUID, q string) ([]*model.Patient, error) {
	if q == "" {
		return []*model.Patient{}, nil
	}
	return s.repo.SearchByDoctor(ctx, doctorID, q)
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, req *model.UpdatePatientRequest) error {
	patient, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}

	patient.FullName = req.FullName
	patient.Phone = req.Phone
	patient.Problem = req.Problem
	patient.AssignedDoctorID = req.AssignedDoctorID
	patient.TotalCost = req.TotalCost
	patient.RemainingAmount = req.RemainingAmount
	patient.Currency = req.Currency
	patient.ImplantBrand = req.ImplantBrand
	patient.ImplantFormer = req.ImplantFormer
	patient.ImplantCrownType = req.ImplantCrownType

	return s.repo.Update(ctx, patient)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) GetNote(ctx context.Context, id uuid.UUID) (*model.PatientNote, error) {
	return s.repo.GetNote(ctx, id)
}

func (s *Service) SetNote(ctx context.Context, id uuid.UUID, note *string) error {
	return s.repo.SetNote(ctx, id, note)
}

func (s *Service) GetImplantInfo(ctx context.Context, id uuid.UUID) (*model.ImplantInfo, error) {
	return s.repo.GetImplantInfo(ctx, id)
}

func (s *Service) SetImplantInfo(ctx context.Context, id uuid.UUID, info *model.ImplantInfo) error {
	return s.repo.SetImplantInfo(ctx, id, info)
}
