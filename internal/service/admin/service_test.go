package admin

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/zankoclinic/clinic-api/internal/model"
	"github.com/zankoclinic/clinic-api/internal/repository"
)

type fakeAdminRepo struct {
	repository.AdminRepository

	byEmail map[string]*model.Admin
	creates int
}

func (f *fakeAdminRepo) GetByEmail(_ context.Context, email string) (*model.Admin, error) {
	if a, ok := f.byEmail[email]; ok {
		return a, nil
	}
	return nil, repository.ErrNotFound
}

func (f *fakeAdminRepo) Create(_ context.Context, a *model.Admin) error {
	if _, ok := f.byEmail[a.Email]; ok {
		return repository.ErrDuplicateEmail
	}
	a.ID = uuid.New()
	f.byEmail[a.Email] = a
	f.creates++
	return nil
}

func TestCreateHashesPassword(t *testing.T) {
	repo := &fakeAdminRepo{byEmail: map[string]*model.Admin{}}
	svc := NewService(repo)

	created, err := svc.Create(context.Background(), &model.CreateUserRequest{
		Name:     "Zanko",
		Email:    "admin@clinic.test",
		Password: "secret123",
	})
	require.NoError(t, err)

	assert.NotEqual(t, "secret123", created.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.PasswordHash), []byte("secret123")))
}

func TestCreateDuplicateEmail(t *testing.T) {
	repo := &fakeAdminRepo{byEmail: map[string]*model.Admin{}}
	svc := NewService(repo)

	_, err := svc.Create(context.Background(), &model.CreateUserRequest{
		Name: "Zanko", Email: "admin@clinic.test", Password: "secret123",
	})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), &model.CreateUserRequest{
		Name: "Other", Email: "admin@clinic.test", Password: "secret456",
	})
	assert.ErrorIs(t, err, repository.ErrDuplicateEmail)
}

func TestEnsureDefaultSeedsOnce(t *testing.T) {
	repo := &fakeAdminRepo{byEmail: map[string]*model.Admin{}}
	svc := NewService(repo)

	require.NoError(t, svc.EnsureDefault(context.Background(), "Zanko", "admin@clinic.test", "secret123"))
	assert.Equal(t, 1, repo.creates)

	// Second boot: the account exists, nothing is created.
	require.NoError(t, svc.EnsureDefault(context.Background(), "Zanko", "admin@clinic.test", "secret123"))
	assert.Equal(t, 1, repo.creates)
}
