package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/zankoclinic/clinic-api/internal/model"
	"github.com/zankoclinic/clinic-api/internal/repository"
)

func (r *adminRepository) Create(ctx context.Context, admin *model.Admin) error {
	query := `
		INSERT INTO admins (id, name, email, password, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	admin.ID = uuid.New()
	admin.CreatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		admin.ID,
		admin.Name,
		admin.Email,
		admin.PasswordHash,
		admin.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create admin: %w", mapError(err))
	}
	return nil
}

func (r *adminRepository) Get(ctx context.Context, id uuid.UUID) (*model.Admin, error) {
	query := `
		SELECT id, name, email, password, created_at
		FROM admins
		WHERE id = $1
	`
	var admin model.Admin
	if err := r.db.GetContext(ctx, &admin, query, id); err != nil {
		return nil, fmt.Errorf("failed to get admin: %w", mapError(err))
	}
	return &admin, nil
}

func (r *adminRepository) GetByEmail(ctx context.Context, email string) (*model.Admin, error) {
	query := `
		SELECT id, name, email, password, created_at
		FROM admins
		WHERE email = $1
	`
	var admin model.Admin
	if err := r.db.GetContext(ctx, &admin, query, email); err != nil {
		return nil, fmt.Errorf("failed to get admin by email: %w", mapError(err))
	}
	return &admin, nil
}

func (r *adminRepository) List(ctx context.Context) ([]*model.Admin, error) {
	query := `
		SELECT id, name, email, password, created_at
		FROM admins
		ORDER BY name
	`
	var admins []*model.Admin
	if err := r.db.SelectContext(ctx, &admins, query); err != nil {
		return nil, fmt.Errorf("failed to list admins: %w", err)
	}
	return admins, nil
}

func (r *adminRepository) Update(ctx context.Context, admin *model.Admin) error {
	query := `
		UPDATE admins
		SET name = $1, email = $2, password = $3
		WHERE id = $4
	`
	result, err := r.db.ExecContext(ctx, query,
		admin.Name,
		admin.Email,
		admin.PasswordHash,
		admin.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update admin: %w", mapError(err))
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("failed to update admin: %w", repository.ErrNotFound)
	}
	return nil
}

func (r *adminRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `
		DELETE FROM admins
		WHERE id = $1
	`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete admin: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("failed to delete admin: %w", repository.ErrNotFound)
	}
	return nil
}

func (r *adminRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM admins`); err != nil {
		return 0, fmt.Errorf("failed to count admins: %w", err)
	}
	return count, nil
}
