package reminder

import (
	"context"
	"encoding/json"
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
	"github.com/zankoclinic/clinic-api/internal/service/reminder"
)

type fakeAppointmentRepo struct {
	repository.AppointmentRepository

	due      []*model.Reminder
	resolved int
	upcoming []*model.Reminder
}

func (f *fakeAppointmentRepo) ResolveDue(_ context.Context, _ *uuid.UUID, _, _ string) ([]*model.Reminder, error) {
	// Each reminder is handed out once: the next resolve sees nothing.
	due := f.due
	f.due = nil
	f.resolved++
	return due, nil
}

func (f *fakeAppointmentRepo) Upcoming(_ context.Context, _ *uuid.UUID, _ string) ([]*model.Reminder, error) {
	return f.upcoming, nil
}

func newTestRouter(repo *fakeAppointmentRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(reminder.NewService(repo))

	r := gin.New()
	h.RegisterRoutes(r.Group("/api/reminders"))
	h.RegisterDoctorRoutes(r.Group("/api/doctor"))
	return r
}

func get(r *gin.Engine, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeReminders(t *testing.T, w *httptest.ResponseRecorder) []*model.Reminder {
	t.Helper()

	var body struct {
		Status string            `json:"status"`
		Data   []*model.Reminder `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "success", body.Status)
	return body.Data
}

func TestDueHandsOutEachReminderOnce(t *testing.T) {
	due := []*model.Reminder{
		{ID: uuid.New(), PatientName: "Sara", DoctorName: "Aram", Date: "2025-03-14", Time: "09:00:00"},
		{ID: uuid.New(), PatientName: "Karwan", DoctorName: "Aram", Date: "2025-03-13", Time: "16:30:00"},
	}
	repo := &fakeAppointmentRepo{due: due}
	r := newTestRouter(repo)

	w := get(r, "/api/reminders/due")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeReminders(t, w), 2)

	w = get(r, "/api/reminders/due")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decodeReminders(t, w))
	assert.Equal(t, 2, repo.resolved)
}

func TestDueEmptyIsJSONArray(t *testing.T) {
	r := newTestRouter(&fakeAppointmentRepo{})

	w := get(r, "/api/reminders/due")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"success","data":[]}`, w.Body.String())
}

func TestUpcomingFeed(t *testing.T) {
	repo := &fakeAppointmentRepo{
		upcoming: []*model.Reminder{
			{ID: uuid.New(), PatientName: "Sara", Date: time.Now().Format("2006-01-02"), Time: "11:00:00"},
		},
	}
	r := newTestRouter(repo)

	w := get(r, "/api/reminders")
	assert.Equal(t, http.StatusOK, w.Code)
	reminders := decodeReminders(t, w)
	require.Len(t, reminders, 1)
	assert.Equal(t, "Sara", reminders[0].PatientName)
}

func TestDoctorScopedRoutes(t *testing.T) {
	repo := &fakeAppointmentRepo{
		due: []*model.Reminder{{ID: uuid.New(), PatientName: "Sara"}},
	}
	r := newTestRouter(repo)

	doctorID := uuid.New()
	w := get(r, "/api/doctor/"+doctorID.String()+"/reminders/due")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeReminders(t, w), 1)

	w = get(r, "/api/doctor/not-a-uuid/reminders/due")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
