package handler

import (
	"net/http"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	metricsPkg "mail-triage-go/internal/metrics"
	"mail-triage-go/internal/scheduler"
	"mail-triage-go/internal/sender"
	"mail-triage-go/internal/triage"
)

// Handlers contains all HTTP handlers
type Handlers struct {
	db        *gorm.DB
	pipeline  *triage.Pipeline
	sender    *sender.AuditSender
	scheduler *scheduler.Scheduler
	metrics   *metricsPkg.Metrics
	staticDir string
}

// NewHandlers creates new HTTP handlers
func NewHandlers(db *gorm.DB, pipeline *triage.Pipeline, sender *sender.AuditSender, sched *scheduler.Scheduler, metrics *metricsPkg.Metrics, staticDir string) *Handlers {
	return &Handlers{
		db:        db,
		pipeline:  pipeline,
		sender:    sender,
		scheduler: sched,
		metrics:   metrics,
		staticDir: staticDir,
	}
}

// SetupRoutes sets up all HTTP routes
func (h *Handlers) SetupRoutes(router *gin.Engine) {
	router.GET("/", h.Index)
	router.Static("/static", h.staticDir)

	router.GET("/healthz", h.HealthCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	router.GET("/emails", h.ListEmails)
	router.POST("/emails", h.IngestEmail)
	router.GET("/emails/:id", h.GetEmail)
	router.POST("/emails/:id/respond", h.Respond)

	router.GET("/stats/24h", h.Stats24h)

	api := router.Group("/api/v1")
	{
		api.POST("/scheduler/start", h.StartScheduler)
		api.POST("/scheduler/stop", h.StopScheduler)
		api.POST("/scheduler/run-once", h.RunSchedulerOnce)
		api.GET("/scheduler/status", h.GetSchedulerStatus)
	}
}

// Index serves the static landing page
func (h *Handlers) Index(c *gin.Context) {
	c.File(filepath.Join(h.staticDir, "index.html"))
}

// HealthCheck handles health check requests
func (h *Handlers) HealthCheck(c *gin.Context) {
	response := HealthResponse{
		Status:    "ok",
		Timestamp: time.Now(),
		Database:  "ok",
		Metrics:   make(map[string]string),
	}

	// Raw is lazy; Scan forces the probe to actually hit the database.
	var one int
	if err := h.db.Raw("SELECT 1").Scan(&one).Error; err != nil {
		response.Status = "error"
		response.Database = "error"
		logrus.Errorf("Database health check failed: %v", err)
	}

	if h.scheduler.IsRunning() {
		response.Metrics["scheduler"] = "running"
		response.Metrics["next_run"] = h.scheduler.GetNextRun().Format(time.RFC3339)
		response.Metrics["last_run"] = h.scheduler.GetLastRun().Format(time.RFC3339)
	} else {
		response.Metrics["scheduler"] = "stopped"
	}

	statusCode := http.StatusOK
	if response.Status == "error" {
		statusCode = http.StatusServiceUnavailable
	}

	c.JSON(statusCode, response)
}
