package agent

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zankoclinic/clinic-api/internal/model"
)

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func newFakeAPI(t *testing.T) *httptest.Server {
	t.Helper()

	userID := uuid.New()
	mux := http.NewServeMux()

	mux.HandleFunc("/api/auth/admin/login", func(w http.ResponseWriter, r *http.Request) {
		var req model.LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		if req.Password != "secret123" {
			writeJSON(w, http.StatusUnauthorized, map[string]interface{}{
				"status": "error", "message": "Invalid credentials",
			})
			return
		}
		http.SetCookie(w, &http.Cookie{Name: "zanko_session", Value: "tok", Path: "/"})
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"status": "success",
			"data":   model.SessionUser{ID: userID, Name: "Zanko", Email: req.Email, Role: model.RoleAdmin},
		})
	})

	mux.HandleFunc("/api/auth/check", func(w http.ResponseWriter, r *http.Request) {
		if c, err := r.Cookie("zanko_session"); err != nil || c.Value != "tok" {
			writeJSON(w, http.StatusUnauthorized, map[string]interface{}{
				"status": "error", "message": "Authentication required",
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"status": "success",
			"data":   model.SessionUser{ID: userID, Name: "Zanko", Role: model.RoleAdmin},
		})
	})

	mux.HandleFunc("/api/reminders/due", func(w http.ResponseWriter, r *http.Request) {
		if _, err := r.Cookie("zanko_session"); err != nil {
			writeJSON(w, http.StatusUnauthorized, map[string]interface{}{
				"status": "error", "message": "Authentication required",
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"status": "success",
			"data": []model.Reminder{
				{ID: uuid.New(), PatientName: "Sara", DoctorName: "Aram", Date: "2025-03-14", Time: "09:00:00"},
			},
		})
	})

	mux.HandleFunc("/api/reminders", func(w http.ResponseWriter, r *http.Request) {
		// Admin-only feed: a doctor session gets a plain 403, which must
		// not read as session expiry.
		writeJSON(w, http.StatusForbidden, map[string]interface{}{
			"status": "error", "message": "Admin access required",
		})
	})

	return httptest.NewServer(mux)
}

func TestClientLoginCarriesCookie(t *testing.T) {
	srv := newFakeAPI(t)
	defer srv.Close()

	client, err := NewClient(srv.URL)
	require.NoError(t, err)

	user, err := client.LoginAdmin(context.Background(), "admin@clinic.test", "secret123")
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, user.Role)

	// The jar carries the session into subsequent calls.
	due, err := client.DueReminders(context.Background())
	require.NoError(t, err)
	require.Len(t, due, 1)
	assert.Equal(t, "Sara", due[0].PatientName)
}

func TestClientBadCredentials(t *testing.T) {
	srv := newFakeAPI(t)
	defer srv.Close()

	client, err := NewClient(srv.URL)
	require.NoError(t, err)

	_, err = client.LoginAdmin(context.Background(), "admin@clinic.test", "wrong")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid credentials")
}

func TestClientDetectsSessionExpiry(t *testing.T) {
	srv := newFakeAPI(t)
	defer srv.Close()

	client, err := NewClient(srv.URL)
	require.NoError(t, err)

	// No login: protected routes reject with the expiry message.
	_, err = client.CheckSession(context.Background())
	assert.ErrorIs(t, err, ErrUnauthenticated)

	_, err = client.DueReminders(context.Background())
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestClientPlainForbiddenIsNotExpiry(t *testing.T) {
	srv := newFakeAPI(t)
	defer srv.Close()

	client, err := NewClient(srv.URL)
	require.NoError(t, err)

	_, err = client.UpcomingReminders(context.Background())
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrUnauthenticated)
	assert.Contains(t, err.Error(), "Admin access required")
}

func TestClientNetworkErrorIsNotExpiry(t *testing.T) {
	srv := newFakeAPI(t)
	srv.Close()

	client, err := NewClient(srv.URL)
	require.NoError(t, err)

	_, err = client.DueReminders(context.Background())
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrUnauthenticated)
}
