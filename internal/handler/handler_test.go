package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"mail-triage-go/internal/config"
	"mail-triage-go/internal/metrics"
	"mail-triage-go/internal/model"
	"mail-triage-go/internal/scheduler"
	"mail-triage-go/internal/seed"
	"mail-triage-go/internal/sender"
	"mail-triage-go/internal/triage"
)

// shared across tests; prometheus collectors register globally once per binary
var testMetrics = metrics.NewMetrics()

type testEnv struct {
	router   *gin.Engine
	db       *gorm.DB
	pipeline *triage.Pipeline
	auditLog string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&model.Email{}, &model.EmailMeta{}, &model.Response{}))

	auditLog := filepath.Join(t.TempDir(), "sent_emails.log")
	pipeline := triage.NewPipeline(db, testMetrics)
	sched := scheduler.NewScheduler(&config.SchedulerConfig{IntervalMinutes: 60}, db, pipeline)

	h := NewHandlers(db, pipeline, sender.NewAuditSender(auditLog), sched, testMetrics, t.TempDir())
	r := gin.New()
	h.SetupRoutes(r)

	return &testEnv{router: r, db: db, pipeline: pipeline, auditLog: auditLog}
}

func (e *testEnv) request(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) addEmail(t *testing.T, id, sender, subject, body string, receivedAt time.Time) model.Email {
	t.Helper()
	email := model.Email{
		ID:         id,
		Sender:     sender,
		Subject:    subject,
		BodyText:   body,
		ReceivedAt: receivedAt,
		Source:     model.SourceAPI,
	}
	require.NoError(t, e.db.Create(&email).Error)
	return email
}

func TestRespondUnknownEmailReturnsNotFound(t *testing.T) {
	env := newTestEnv(t)

	w := env.request(t, http.MethodPost, "/emails/no-such-id/respond", `{"final_text":"done"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)

	var errResp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &errResp))
	assert.Equal(t, "not_found", errResp.Error)
}

func TestRespondMissingFinalTextReturnsValidationError(t *testing.T) {
	env := newTestEnv(t)
	env.addEmail(t, "e-1", "alice@example.com", "hello", "body", time.Now().UTC())

	w := env.request(t, http.MethodPost, "/emails/e-1/respond", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var errResp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &errResp))
	assert.Equal(t, "validation_error", errResp.Error)
}

func TestRespondAppendsResponseAndMarksSent(t *testing.T) {
	env := newTestEnv(t)
	email := env.addEmail(t, "e-1", "alice@example.com", "hello", "body", time.Now().UTC())
	_, err := env.pipeline.Process(&email)
	require.NoError(t, err)

	w := env.request(t, http.MethodPost, "/emails/e-1/respond", `{"final_text":"All sorted, thanks!"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp RespondResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.OK)
	assert.False(t, resp.SentAt.IsZero())

	// the draft row stays untouched; the final response is a second row
	var count int64
	require.NoError(t, env.db.Model(&model.Response{}).Where("email_id = ?", "e-1").Count(&count).Error)
	assert.EqualValues(t, 2, count)

	var latest model.Response
	require.NoError(t, env.db.Where("email_id = ?", "e-1").Order("created_at DESC").First(&latest).Error)
	require.NotNil(t, latest.FinalText)
	assert.Equal(t, "All sorted, thanks!", *latest.FinalText)
	require.NotNil(t, latest.SentAt)

	var meta model.EmailMeta
	require.NoError(t, env.db.First(&meta, "email_id = ?", "e-1").Error)
	assert.Equal(t, model.StatusSent, meta.Status)

	// send stub wrote an audit record
	data, err := os.ReadFile(env.auditLog)
	require.NoError(t, err)
	assert.Contains(t, string(data), "TO: alice@example.com")
}

func TestSeedingLeavesNothingPending(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, seed.SeedSampleEmails(env.db, env.pipeline))

	w := env.request(t, http.MethodGet, "/emails?status=pending", "")
	require.Equal(t, http.StatusOK, w.Code)

	var pending []EmailSummaryResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &pending))
	assert.Empty(t, pending)

	w = env.request(t, http.MethodGet, "/emails?status=drafted", "")
	require.Equal(t, http.StatusOK, w.Code)

	var drafted []EmailSummaryResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &drafted))
	assert.Len(t, drafted, 4)
}

func TestStats24hExcludesOldEmails(t *testing.T) {
	env := newTestEnv(t)
	now := time.Now().UTC()

	old := env.addEmail(t, "e-old", "old@example.com", "old", "quiet message", now.Add(-25*time.Hour))
	fresh := env.addEmail(t, "e-new", "new@example.com", "new", "quiet message", now.Add(-1*time.Hour))
	_, err := env.pipeline.Process(&old)
	require.NoError(t, err)
	_, err = env.pipeline.Process(&fresh)
	require.NoError(t, err)

	w := env.request(t, http.MethodGet, "/stats/24h", "")
	require.Equal(t, http.StatusOK, w.Code)

	var stats StatsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	assert.EqualValues(t, 1, stats.Total)
	assert.EqualValues(t, 0, stats.Resolved)
	assert.EqualValues(t, 1, stats.Pending)
	assert.EqualValues(t, 0, stats.Urgent)
	assert.Equal(t, 1, stats.BySentiment.Positive)
	assert.Equal(t, 0, stats.BySentiment.Negative)
}

func TestIngestStoresRawHeaders(t *testing.T) {
	env := newTestEnv(t)

	w := env.request(t, http.MethodPost, "/emails",
		`{"sender":"carol@example.com","subject":"question","body_text":"is batch upload supported?","raw_headers":"X-Origin: webform"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var resp IngestEmailResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, model.StatusDrafted, resp.Status)

	var email model.Email
	require.NoError(t, env.db.First(&email, "id = ?", resp.ID).Error)
	assert.Equal(t, "X-Origin: webform", email.RawHeaders)
	assert.Equal(t, model.SourceAPI, email.Source)
}

func TestIngestRejectsInvalidSender(t *testing.T) {
	env := newTestEnv(t)

	w := env.request(t, http.MethodPost, "/emails", `{"sender":"not-an-address","body_text":"hi"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var errResp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &errResp))
	assert.Equal(t, "validation_error", errResp.Error)
}

func TestHealthCheckProbesDatabase(t *testing.T) {
	env := newTestEnv(t)

	w := env.request(t, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, w.Code)

	// a closed pool must flip the probe; the check has to actually run a query
	sqlDB, err := env.db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	w = env.request(t, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
