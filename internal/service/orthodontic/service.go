package orthodontic

import (
	"context"

	"github.com/google/uuid"

	"github.com/zankoclinic/clinic-api/internal/model"
	"github.com/zankoclinic/clinic-api/internal/repository"
)

type Service struct {
	repo        repository.OrthodonticRepository
	patientRepo repository.PatientRepository
}

func NewService(repo repository.OrthodonticRepository, patientRepo repository.PatientRepository) *Service {
	return &Service{repo: repo, patientRepo: patientRepo}
}

// Create inserts a schedule entry after confirming the patient exists, so a
// typo'd patient id surfaces as 404 rather than an FK violation.
func (s *Service) Create(ctx context.Context, patientID uuid.UUID, req *model.OrthodonticEntryRequest) (*model.OrthodonticEntry, error) {
	if _, err := s.patientRepo.Get(ctx, patientID); err != nil {
		return nil, err
	}

	entry := &model.OrthodonticEntry{
		PatientID:  patientID,
		UpperSize:  req.UpperSize,
		LowerSize:  req.LowerSize,
		AmountPaid: req.AmountPaid,
		Currency:   req.Currency,
		Date:       req.Date,
	}
	if err := s.repo.Create(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *Service) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*model.OrthodonticEntry, error) {
	return s.repo.ListByPatient(ctx, patientID)
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, req *model.OrthodonticEntryRequest) (*model.OrthodonticEntry, error) {
	entry, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	entry.UpperSize = req.UpperSize
	entry.LowerSize = req.LowerSize
	entry.AmountPaid = req.AmountPaid
	entry.Currency = req.Currency
	entry.Date = req.Date

	if err := s.repo.Update(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.Get(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
