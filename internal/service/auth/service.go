package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/zankoclinic/clinic-api/internal/model"
	"github.com/zankoclinic/clinic-api/internal/repository"
	"github.com/zankoclinic/clinic-api/internal/session"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNoSession          = errors.New("no active session")
)

const bcryptCost = 10

type Service struct {
	adminRepo  repository.AdminRepository
	doctorRepo repository.DoctorRepository
	sessions   session.Store
	secret     []byte
	ttl        time.Duration
}

func NewService(adminRepo repository.AdminRepository, doctorRepo repository.DoctorRepository,
	sessions session.Store, secret string, ttl time.Duration) *Service {
	return &Service{
		adminRepo:  adminRepo,
		doctorRepo: doctorRepo,
		sessions:   sessions,
		secret:     []byte(secret),
		ttl:        ttl,
	}
}

// LoginAdmin verifies admin credentials and opens a session. The returned
// token is the signed cookie value.
func (s *Service) LoginAdmin(ctx context.Context, email, password string) (*model.SessionUser, string, error) {
	admin, err := s.adminRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, "", ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)) != nil {
		return nil, "", ErrInvalidCredentials
	}
	return s.openSession(ctx, admin.ID, admin.Name, admin.Email, model.RoleAdmin)
}

func (s *Service) LoginDoctor(ctx context.Context, email, password string) (*model.SessionUser, string, error) {
	doctor, err := s.doctorRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, "", ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(doctor.PasswordHash), []byte(password)) != nil {
		return nil, "", ErrInvalidCredentials
	}
	return s.openSession(ctx, doctor.ID, doctor.Name, doctor.Email, model.RoleDoctor)
}

func (s *Service) openSession(ctx context.Context, userID uuid.UUID, name, email string, role model.Role) (*model.SessionUser, string, error) {
	sess := &model.Session{
		ID:     uuid.New(),
		UserID: userID,
		Name:   name,
		Email:  email,
		Role:   role,
	}
	if err := s.sessions.Create(ctx, sess); err != nil {
		return nil, "", fmt.Errorf("failed to create session: %w", err)
	}

	token, err := s.signSessionToken(sess.ID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to sign session token: %w", err)
	}

	return &model.SessionUser{ID: userID, Name: name, Email: email, Role: role}, token, nil
}

// Validate resolves a cookie token to its live session, renewing the rolling
// expiry. Signature failures and missing store records both come back as
// ErrNoSession: the caller cannot distinguish a forged cookie from an
// expired one, and should not.
func (s *Service) Validate(ctx context.Context, token string) (*model.Session, error) {
	sid, err := s.parseSessionToken(token)
	if err != nil {
		return nil, ErrNoSession
	}

	sess, err := s.sessions.Get(ctx, sid)
	if errors.Is(err, session.ErrNotFound) {
		return nil, ErrNoSession
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	return sess, nil
}

// Logout destroys the server-side session record.
func (s *Service) Logout(ctx context.Context, token string) error {
	sid, err := s.parseSessionToken(token)
	if err != nil {
		return ErrNoSession
	}
	if err := s.sessions.Delete(ctx, sid); err != nil {
		return fmt.Errorf("failed to destroy session: %w", err)
	}
	return nil
}

func (s *Service) signSessionToken(sid uuid.UUID) (string, error) {
	claims := jwt.MapClaims{
		"sid": sid.String(),
		"iat": time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

func (s *Service) parseSessionToken(raw string) (uuid.UUID, error) {
	token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return uuid.Nil, fmt.Errorf("invalid session token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, fmt.Errorf("invalid session claims")
	}
	sid, ok := claims["sid"].(string)
	if !ok {
		return uuid.Nil, fmt.Errorf("missing session id claim")
	}
	return uuid.Parse(sid)
}

// HashPassword is shared by the admin/doctor services so user creation and
// login agree on the bcrypt parameters.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}
