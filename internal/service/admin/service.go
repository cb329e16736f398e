package admin

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/zankoclinic/clinic-api/internal/model"
	"github.com/zankoclinic/clinic-api/internal/repository"
	"github.com/zankoclinic/clinic-api/internal/service/auth"
)

type Service struct {
	repo repository.AdminRepository
}

func NewService(repo repository.AdminRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, req *model.CreateUserRequest) (*model.Admin, error) {
	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	admin := &model.Admin{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
	}
	if err := s.repo.Create(ctx, admin); err != nil {
		return nil, err
	}
	return admin, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.Admin, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*model.Admin, error) {
	return s.repo.List(ctx)
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, req *model.UpdateUserRequest) error {
	admin, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}

	admin.Name = req.Name
	admin.Email = req.Email
	if req.Password != "" {
		hash, err := auth.HashPassword(req.Password)
		if err != nil {
			return err
		}
		admin.PasswordHash = hash
	}

	return s.repo.Update(ctx, admin)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

// EnsureDefault seeds the bootstrap admin account if it is missing, so a
// fresh deployment is never locked out.
func (s *Service) EnsureDefault(ctx context.Context, name, email, password string) error {
	_, err := s.repo.GetByEmail(ctx, email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("failed to check default admin: %w", err)
	}

	if _, err := s.Create(ctx, &model.CreateUserRequest{
		Name:     name,
		Email:    email,
		Password: password,
	}); err != nil {
		return fmt.Errorf("failed to create default admin: %w", err)
	}

	log.Info().Str("email", email).Msg("default admin created")
	return nil
}
