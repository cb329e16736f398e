package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zankoclinic/clinic-api/internal/model"
	"github.com/zankoclinic/clinic-api/internal/repository"
	"github.com/zankoclinic/clinic-api/internal/service/auth"
	"github.com/zankoclinic/clinic-api/internal/session"
)

const testCookie = "zanko_session"

type stubAdminRepo struct {
	repository.AdminRepository
	admin *model.Admin
}

func (s *stubAdminRepo) GetByEmail(_ context.Context, email string) (*model.Admin, error) {
	if s.admin != nil && s.admin.Email == email {
		return s.admin, nil
	}
	return nil, repository.ErrNotFound
}

type stubDoctorRepo struct {
	repository.DoctorRepository
	doctor *model.Doctor
}

func (s *stubDoctorRepo) GetByEmail(_ context.Context, email string) (*model.Doctor, error) {
	if s.doctor != nil && s.doctor.Email == email {
		return s.doctor, nil
	}
	return nil, repository.ErrNotFound
}

type authFixture struct {
	svc      *auth.Service
	adminTok string
	admin    *model.Admin
	docTok   string
	doctor   *model.Doctor
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()

	adminHash, err := auth.HashPassword("adminpass")
	require.NoError(t, err)
	docHash, err := auth.HashPassword("doctorpass")
	require.NoError(t, err)

	admin := &model.Admin{ID: uuid.New(), Name: "Zanko", Email: "admin@clinic.test", PasswordHash: adminHash}
	doctor := &model.Doctor{ID: uuid.New(), Name: "Dr. Aram", Email: "aram@clinic.test", PasswordHash: docHash}

	svc := auth.NewService(
		&stubAdminRepo{admin: admin},
		&stubDoctorRepo{doctor: doctor},
		session.NewMemoryStore(time.Hour),
		"test-secret", time.Hour,
	)

	_, adminTok, err := svc.LoginAdmin(context.Background(), admin.Email, "adminpass")
	require.NoError(t, err)
	_, docTok, err := svc.LoginDoctor(context.Background(), doctor.Email, "doctorpass")
	require.NoError(t, err)

	return &authFixture{svc: svc, adminTok: adminTok, admin: admin, docTok: docTok, doctor: doctor}
}

func newTestRouter(fx *authFixture) *gin.Engine {
	gin.SetMode(gin.TestMode)
	mw := NewAuthMiddleware(fx.svc, testCookie)

	r := gin.New()
	api := r.Group("/api")
	api.Use(mw.Authenticate())
	api.GET("/whoami", func(c *gin.Context) {
		sess := SessionFromContext(c)
		c.JSON(http.StatusOK, gin.H{"userId": sess.UserID, "role": sess.Role})
	})

	adminOnly := api.Group("/admins")
	adminOnly.Use(mw.RequireAdmin())
	adminOnly.GET("", func(c *gin.Context) { c.Status(http.StatusOK) })

	doctorScoped := api.Group("/doctor")
	doctorScoped.Use(mw.RequireSelfDoctor())
	doctorScoped.GET("/:id/reminders", func(c *gin.Context) { c.Status(http.StatusOK) })

	return r
}

func doRequest(r *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.AddCookie(&http.Cookie{Name: testCookie, Value: token})
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthenticateRejectsMissingCookie(t *testing.T) {
	fx := newAuthFixture(t)
	r := newTestRouter(fx)

	w := doRequest(r, "/api/whoami", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Authentication required")
}

func TestAuthenticateRejectsBadToken(t *testing.T) {
	fx := newAuthFixture(t)
	r := newTestRouter(fx)

	w := doRequest(r, "/api/whoami", "garbage")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Authentication required")
}

func TestAuthenticateAcceptsSession(t *testing.T) {
	fx := newAuthFixture(t)
	r := newTestRouter(fx)

	w := doRequest(r, "/api/whoami", fx.adminTok)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), fx.admin.ID.String())
}

func TestRequireAdminBlocksDoctor(t *testing.T) {
	fx := newAuthFixture(t)
	r := newTestRouter(fx)

	w := doRequest(r, "/api/admins", fx.docTok)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "Admin access required")

	w = doRequest(r, "/api/admins", fx.adminTok)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireSelfDoctorScope(t *testing.T) {
	fx := newAuthFixture(t)
	r := newTestRouter(fx)

	// A doctor can read their own feed.
	w := doRequest(r, "/api/doctor/"+fx.doctor.ID.String()+"/reminders", fx.docTok)
	assert.Equal(t, http.StatusOK, w.Code)

	// But not another doctor's.
	w = doRequest(r, "/api/doctor/"+uuid.NewString()+"/reminders", fx.docTok)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "Access denied")

	// Admins can read anyone's.
	w = doRequest(r, "/api/doctor/"+fx.doctor.ID.String()+"/reminders", fx.adminTok)
	assert.Equal(t, http.StatusOK, w.Code)
}
