package agent

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"time"

	"github.com/google/uuid"

	"github.com/zankoclinic/clinic-api/internal/model"
)

// ErrUnauthenticated is returned when the server explicitly rejects the
// session, as opposed to transport failures or plain permission errors.
var ErrUnauthenticated = errors.New("agent: session expired")

// expiryMessages are the server messages that mean the session is gone.
// A 403 with any other message (wrong role, wrong doctor) is not an expiry.
var expiryMessages = map[string]bool{
	"Authentication required": true,
	"No active session":       true,
}

// Client is a cookie-authenticated API client for the reminder pipeline.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}
	return &Client{
		baseURL: baseURL,
		http: &http.Client{
			Jar:     jar,
			Timeout: 15 * time.Second,
		},
	}, nil
}

type envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return fmt.Errorf("unexpected response (%d): %w", resp.StatusCode, err)
	}

	if resp.StatusCode >= 400 {
		if expiryMessages[env.Message] {
			return ErrUnauthenticated
		}
		return fmt.Errorf("server error (%d): %s", resp.StatusCode, env.Message)
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

// LoginAdmin authenticates as an admin; the session cookie lands in the jar.
func (c *Client) LoginAdmin(ctx context.Context, email, password string) (*model.SessionUser, error) {
	return c.login(ctx, "/api/auth/admin/login", email, password)
}

// LoginDoctor authenticates as a doctor.
func (c *Client) LoginDoctor(ctx context.Context, email, password string) (*model.SessionUser, error) {
	return c.login(ctx, "/api/auth/doctor/login", email, password)
}

func (c *Client) login(ctx context.Context, path, email, password string) (*model.SessionUser, error) {
	var user model.SessionUser
	err := c.do(ctx, http.MethodPost, path, model.LoginRequest{Email: email, Password: password}, &user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// CheckSession verifies the cookie is still accepted by the server.
func (c *Client) CheckSession(ctx context.Context) (*model.SessionUser, error) {
	var user model.SessionUser
	if err := c.do(ctx, http.MethodGet, "/api/auth/check", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Logout tears down the server-side session.
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/auth/logout", nil, nil)
}

// DueReminders flags and fetches reminders that have come due. The server
// hands each reminder out once, so whatever comes back must be notified.
func (c *Client) DueReminders(ctx context.Context) ([]*model.Reminder, error) {
	var reminders []*model.Reminder
	if err := c.do(ctx, http.MethodGet, "/api/reminders/due", nil, &reminders); err != nil {
		return nil, err
	}
	return reminders, nil
}

// UpcomingReminders fetches the pending feed without flagging anything.
func (c *Client) UpcomingReminders(ctx context.Context) ([]*model.Reminder, error) {
	var reminders []*model.Reminder
	if err := c.do(ctx, http.MethodGet, "/api/reminders", nil, &reminders); err != nil {
		return nil, err
	}
	return reminders, nil
}

// DueRemindersForDoctor is the doctor-scoped variant of DueReminders.
func (c *Client) DueRemindersForDoctor(ctx context.Context, doctorID uuid.UUID) ([]*model.Reminder, error) {
	var reminders []*model.Reminder
	path := fmt.Sprintf("/api/doctor/%s/reminders/due", doctorID)
	if err := c.do(ctx, http.MethodGet, path, nil, &reminders); err != nil {
		return nil, err
	}
	return reminders, nil
}

// UpcomingRemindersForDoctor is the doctor-scoped variant of UpcomingReminders.
func (c *Client) UpcomingRemindersForDoctor(ctx context.Context, doctorID uuid.UUID) ([]*model.Reminder, error) {
	var reminders []*model.Reminder
	path := fmt.Sprintf("/api/doctor/%s/reminders", doctorID)
	if err := c.do(ctx, http.MethodGet, path, nil, &reminders); err != nil {
		return nil, err
	}
	return reminders, nil
}
