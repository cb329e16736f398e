package patient

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zankoclinic/clinic-api/internal/model"
	"github.com/zankoclinic/clinic-api/internal/repository"
)

type fakePatientRepo struct {
	repository.PatientRepository

	searchCalls int
	results     []*model.Patient
	created     *model.Patient
}

func (f *fakePatientRepo) Search(_ context.Context, _ string) ([]*model.Patient, error) {
	f.searchCalls++
	return f.results, nil
}

func (f *fakePatientRepo) SearchByDoctor(_ context.Context, _ uuid.UUID, _ string) ([]*model.Patient, error) {
	f.searchCalls++
	return f.results, nil
}

func (f *fakePatientRepo) Create(_ context.Context, p *model.Patient) error {
	p.ID = uuid.New()
	f.created = p
	return nil
}

func TestSearchEmptyQuerySkipsStore(t *testing.T) {
	repo := &fakePatientRepo{}
	svc := NewService(repo)

	patients, err := svc.Search(context.Background(), "")
	require.NoError(t, err)
	assert.NotNil(t, patients)
	assert.Empty(t, patients)
	assert.Zero(t, repo.searchCalls)

	patients, err = svc.SearchByDoctor(context.Background(), uuid.New(), "")
	require.NoError(t, err)
	assert.Empty(t, patients)
	assert.Zero(t, repo.searchCalls)
}

func TestSearchHitsStore(t *testing.T) {
	repo := &fakePatientRepo{results: []*model.Patient{{FullName: "Sara Ali"}}}
	svc := NewService(repo)

	patients, err := svc.Search(context.Background(), "sara")
	require.NoError(t, err)
	require.Len(t, patients, 1)
	assert.Equal(t, 1, repo.searchCalls)
}

func TestCreateCopiesRequest(t *testing.T) {
	repo := &fakePatientRepo{}
	svc := NewService(repo)

	doctorID := uuid.New()
	created, err := svc.Create(context.Background(), &model.CreatePatientRequest{
		FullName:         "Sara Ali",
		Phone:            "0750 000 0000",
		Problem:          "Implant consult",
		AssignedDoctorID: &doctorID,
		TotalCost:        1200,
		RemainingAmount:  400,
		Currency:         model.CurrencyUSD,
	})
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.Equal(t, "Sara Ali", created.FullName)
	require.NotNil(t, created.AssignedDoctorID)
	assert.Equal(t, doctorID, *created.AssignedDoctorID)
	assert.Equal(t, model.CurrencyUSD, created.Currency)
}
