package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/wellness-hub/internal/domain/appointment"
	"github.com/yanqian/wellness-hub/internal/domain/auth"
	"github.com/yanqian/wellness-hub/internal/domain/companion"
	"github.com/yanqian/wellness-hub/internal/domain/export"
	"github.com/yanqian/wellness-hub/internal/domain/feedback"
	"github.com/yanqian/wellness-hub/internal/domain/metrics"
	"github.com/yanqian/wellness-hub/internal/domain/wellness"
	"github.com/yanqian/wellness-hub/internal/infra/appointmentrepo"
	"github.com/yanqian/wellness-hub/internal/infra/config"
	"github.com/yanqian/wellness-hub/internal/infra/dashcache"
	"github.com/yanqian/wellness-hub/internal/infra/exportstore"
	"github.com/yanqian/wellness-hub/internal/infra/feedbackrepo"
	"github.com/yanqian/wellness-hub/internal/infra/userrepo"
	"github.com/yanqian/wellness-hub/internal/infra/wellnessrepo"
)

func TestRouter_HealthAndCounselors(t *testing.T) {
	env := newTestEnv(t, nil)

	rec := env.do(http.MethodGet, "/healthz", "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(http.MethodGet, "/api/v1/counselors", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Items   []appointment.Counselor `json:"items"`
		Slots   []string                `json:"slots"`
		Reasons []string                `json:"reasons"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Items, 4)
	require.Len(t, body.Slots, 10)
	require.Contains(t, body.Reasons, "Other")
}

func TestRouter_AuthFlow(t *testing.T) {
	env := newTestEnv(t, nil)

	rec := env.do(http.MethodPost, "/api/v1/auth/register", `{"name":"Asha","email":"asha@example.com","password":"password123"}`, "")
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = env.do(http.MethodPost, "/api/v1/auth/register", `{"name":"Asha","email":"asha@example.com","password":"password123"}`, "")
	require.Equal(t, http.StatusConflict, rec.Code)
	require.Equal(t, "email_exists", decodeErrorBody(t, rec.Body.Bytes())["error"]["code"])

	rec = env.do(http.MethodPost, "/api/v1/auth/login", `{"email":"asha@example.com","password":"wrong-pass"}`, "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	token := env.login(t, "asha@example.com", "password123")

	rec = env.do(http.MethodPut, "/api/v1/profile", `{"bio":"runner","avatarColor":"rose"}`, token)
	require.Equal(t, http.StatusOK, rec.Code)
	var view auth.UserView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	require.Equal(t, "runner", view.Bio)
	require.Equal(t, "rose", view.AvatarColor)
}

func TestRouter_RequiresBearerToken(t *testing.T) {
	env := newTestEnv(t, nil)

	rec := env.do(http.MethodGet, "/api/v1/dashboard", "", "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Equal(t, "unauthorized", decodeErrorBody(t, rec.Body.Bytes())["error"]["code"])

	rec = env.do(http.MethodGet, "/api/v1/dashboard", "", "not-a-jwt")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Equal(t, "invalid_token", decodeErrorBody(t, rec.Body.Bytes())["error"]["code"])
}

func TestRouter_LogsFeedDashboard(t *testing.T) {
	env := newTestEnv(t, nil)
	token := env.registerAndLogin(t, "sam@example.com")

	rec := env.do(http.MethodPost, "/api/v1/moods", `{"mood":"happy","note":"sunny"}`, token)
	require.Equal(t, http.StatusCreated, rec.Code)
	rec = env.do(http.MethodPost, "/api/v1/exercises", `{"exerciseType":"Running","duration":30}`, token)
	require.Equal(t, http.StatusCreated, rec.Code)
	rec = env.do(http.MethodPost, "/api/v1/sleep", `{"duration":7.5,"quality":"Good"}`, token)
	require.Equal(t, http.StatusCreated, rec.Code)
	rec = env.do(http.MethodPost, "/api/v1/moods", `{"mood":"elated"}`, token)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "invalid_request", decodeErrorBody(t, rec.Body.Bytes())["error"]["code"])

	rec = env.do(http.MethodGet, "/api/v1/moods", "", token)
	require.Equal(t, http.StatusOK, rec.Code)
	var moods struct {
		Items []metrics.MoodEntry `json:"items"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &moods))
	require.Len(t, moods.Items, 1)
	require.Equal(t, metrics.MoodHappy, moods.Items[0].Mood)

	rec = env.do(http.MethodGet, "/api/v1/dashboard", "", token)
	require.Equal(t, http.StatusOK, rec.Code)
	var dashboard metrics.Dashboard
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &dashboard))
	require.Equal(t, 10.0, dashboard.Stats.MoodScore)
	require.Equal(t, 1, dashboard.Totals.MoodLogs)

	rec = env.do(http.MethodGet, "/api/v1/stats/weekly", "", token)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_LogAcceptsClientTimestamp(t *testing.T) {
	env := newTestEnv(t, nil)
	token := env.registerAndLogin(t, "lee@example.com")

	rec := env.do(http.MethodPost, "/api/v1/journals", `{"content":"first entry","date":"2024-03-05T08:30:00Z"}`, token)
	require.Equal(t, http.StatusCreated, rec.Code)
	var entry metrics.JournalEntry
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &entry))
	require.True(t, entry.Date.Equal(time.Date(2024, 3, 5, 8, 30, 0, 0, time.UTC)))

	rec = env.do(http.MethodPost, "/api/v1/journals", `{"content":"bad","date":"yesterday"}`, token)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(http.MethodDelete, "/api/v1/journals/abc", "", token)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	rec = env.do(http.MethodDelete, "/api/v1/journals/999", "", token)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouter_ChatFallback(t *testing.T) {
	env := newTestEnv(t, func(context.Context, []companion.Message) (string, error) {
		return "", errors.New("upstream down")
	})
	token := env.registerAndLogin(t, "kai@example.com")

	rec := env.do(http.MethodPost, "/api/v1/chat", `{"message":"hello"}`, token)
	require.Equal(t, http.StatusBadGateway, rec.Code)
	var resp companion.ChatResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.False(t, resp.Success)
	require.Equal(t, companion.FallbackReply, resp.Response)
}

func TestRouter_ChatSuccess(t *testing.T) {
	env := newTestEnv(t, func(_ context.Context, messages []companion.Message) (string, error) {
		return "I'm here with you. " + messages[len(messages)-1].Content, nil
	})
	token := env.registerAndLogin(t, "kai@example.com")

	rec := env.do(http.MethodPost, "/api/v1/chat", `{"message":"long day","history":[{"role":"user","content":"hi"}]}`, token)
	require.Equal(t, http.StatusOK, rec.Code)
	var resp companion.ChatResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.True(t, resp.Success)
	require.Equal(t, "I'm here with you. long day", resp.Response)
}

func TestRouter_FeedbackAdminOnly(t *testing.T) {
	env := newTestEnv(t, nil)
	user := env.registerAndLogin(t, "user@example.com")
	admin := env.registerAndLogin(t, "admin@example.com")

	rec := env.do(http.MethodPost, "/api/v1/feedback", `{"category":"bug report","rating":4,"message":"chart overlaps"}`, user)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = env.do(http.MethodGet, "/api/v1/feedback/all", "", user)
	require.Equal(t, http.StatusForbidden, rec.Code)

	rec = env.do(http.MethodGet, "/api/v1/feedback/all", "", admin)
	require.Equal(t, http.StatusOK, rec.Code)
	var all struct {
		Items []feedback.Entry `json:"items"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &all))
	require.Len(t, all.Items, 1)
	require.Equal(t, "Bug Report", all.Items[0].Category)
}

func TestRouter_AppointmentLifecycle(t *testing.T) {
	env := newTestEnv(t, nil)
	token := env.registerAndLogin(t, "mia@example.com")
	other := env.registerAndLogin(t, "noah@example.com")
	date := nextWorkingDay(time.Now().UTC())

	payload := `{"counselorId":3,"date":"` + date + `","slot":"11:00 AM","reason":"Stress Management","name":"Mia","email":"mia@example.com","phone":"+91 98765 43210"}`
	rec := env.do(http.MethodPost, "/api/v1/appointments", payload, token)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var appt appointment.Appointment
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &appt))

	rec = env.do(http.MethodPost, "/api/v1/appointments", payload, other)
	require.Equal(t, http.StatusConflict, rec.Code)
	require.Equal(t, "slot_taken", decodeErrorBody(t, rec.Body.Bytes())["error"]["code"])

	rec = env.do(http.MethodGet, "/api/v1/counselors/3/slots?date="+date, "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotContains(t, rec.Body.String(), "11:00 AM")

	rec = env.do(http.MethodDelete, "/api/v1/appointments/"+appt.ID, "", other)
	require.Equal(t, http.StatusNotFound, rec.Code)
	rec = env.do(http.MethodDelete, "/api/v1/appointments/"+appt.ID, "", token)
	require.Equal(t, http.StatusNoContent, rec.Code)
}

func TestRouter_ExportRoundTrip(t *testing.T) {
	env := newTestEnv(t, nil)
	token := env.registerAndLogin(t, "ivy@example.com")
	other := env.registerAndLogin(t, "oak@example.com")

	rec := env.do(http.MethodPost, "/api/v1/moods", `{"mood":"neutral"}`, token)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = env.do(http.MethodPost, "/api/v1/exports", "", token)
	require.Equal(t, http.StatusCreated, rec.Code)
	var receipt export.Receipt
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &receipt))
	require.Positive(t, receipt.Size)

	rec = env.do(http.MethodGet, "/api/v1/exports/"+receipt.Key, "", token)
	require.Equal(t, http.StatusOK, rec.Code)
	var doc export.Document
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
	require.Len(t, doc.Moods, 1)

	rec = env.do(http.MethodGet, "/api/v1/exports/"+receipt.Key, "", other)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouter_CORSPreflight(t *testing.T) {
	env := newTestEnv(t, nil)

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/moods", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	rec := httptest.NewRecorder()
	env.server.Handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))
	require.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), "DELETE")
}

type testEnv struct {
	server *http.Server
}

func newTestEnv(t *testing.T, chatFn func(context.Context, []companion.Message) (string, error)) *testEnv {
	t.Helper()
	logger := newTestLogger()
	if chatFn == nil {
		chatFn = func(context.Context, []companion.Message) (string, error) { return "ok", nil }
	}

	authSvc := auth.NewService(auth.Config{
		Secret:          "test-secret",
		TokenTTL:        time.Hour,
		RefreshTokenTTL: 24 * time.Hour,
		AdminEmails:     []string{"admin@example.com"},
	}, userrepo.NewMemoryRepository(), logger)
	wellnessSvc := wellness.NewService(wellness.Config{Goals: metrics.DefaultGoals()}, wellnessrepo.NewMemoryRepository(), dashcache.NewMemoryCache(), logger)
	feedbackSvc := feedback.NewService(feedback.Config{AdminEmails: []string{"admin@example.com"}}, feedbackrepo.NewMemoryRepository(), logger)
	companionSvc := companion.NewService(companion.Config{}, &stubLLM{chatFn: chatFn}, nil, logger)
	appointmentSvc := appointment.NewService(appointment.Config{}, appointmentrepo.NewMemoryRepository(), logger)
	exportSvc := export.NewService(export.Config{}, wellnessSvc, exportstore.NewMemoryStorage(), logger)

	handler := NewHandler(authSvc, wellnessSvc, feedbackSvc, companionSvc, appointmentSvc, exportSvc, time.UTC, logger)
	cfg := &config.Config{
		HTTP: config.HTTPConfig{
			Address:        ":0",
			ReadTimeout:    time.Second,
			WriteTimeout:   time.Second,
			AllowedOrigins: []string{"http://localhost:5173"},
		},
	}
	return &testEnv{server: NewRouter(cfg, handler)}
}

func (e *testEnv) do(method, path, body, token string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.server.Handler.ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) login(t *testing.T, email, password string) string {
	t.Helper()
	rec := e.do(http.MethodPost, "/api/v1/auth/login", `{"email":"`+email+`","password":"`+password+`"}`, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var resp auth.LoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func (e *testEnv) registerAndLogin(t *testing.T, email string) string {
	t.Helper()
	name := strings.Split(email, "@")[0]
	rec := e.do(http.MethodPost, "/api/v1/auth/register", `{"name":"`+name+`","email":"`+email+`","password":"password123"}`, "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return e.login(t, email, "password123")
}

// nextWorkingDay returns the first date after today that is not a Sunday.
func nextWorkingDay(now time.Time) string {
	for i := 1; ; i++ {
		d := now.AddDate(0, 0, i)
		if d.Weekday() != time.Sunday {
			return d.Format("2006-01-02")
		}
	}
}

func newTestLogger() *slog.Logger {
	handler := slog.NewTextHandler(io.Discard, nil)
	return slog.New(handler)
}

type stubLLM struct {
	chatFn func(ctx context.Context, messages []companion.Message) (string, error)
}

func (s *stubLLM) Chat(ctx context.Context, messages []companion.Message) (string, error) {
	return s.chatFn(ctx, messages)
}

func decodeErrorBody(t *testing.T, raw []byte) map[string]map[string]string {
	t.Helper()
	var body map[string]map[string]string
	require.NoError(t, json.Unmarshal(raw, &body))
	return body
}
