package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"mail-triage-go/internal/model"
	"mail-triage-go/internal/triage"
)

// Stats24h summarizes the emails received within the trailing 24 hours.
// Resolved means status sent or resolved; pending is everything else in the
// window, including emails the pipeline has not touched yet.
func (h *Handlers) Stats24h(c *gin.Context) {
	since := time.Now().UTC().Add(-24 * time.Hour)

	var total int64
	if err := h.db.Model(&model.Email{}).Where("received_at >= ?", since).Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "database_error",
			Message: "Failed to count emails",
			Code:    http.StatusInternalServerError,
		})
		return
	}

	var metas []model.EmailMeta
	err := h.db.
		Joins("JOIN emails ON emails.id = email_meta.email_id").
		Where("emails.received_at >= ?", since).
		Find(&metas).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "database_error",
			Message: "Failed to fetch email metadata",
			Code:    http.StatusInternalServerError,
		})
		return
	}

	stats := StatsResponse{Total: total}
	for _, m := range metas {
		if m.Status == model.StatusSent || m.Status == model.StatusResolved {
			stats.Resolved++
		}
		if m.Urgency == triage.UrgencyUrgent {
			stats.Urgent++
		}
		switch m.Sentiment {
		case triage.SentimentPositive:
			stats.BySentiment.Positive++
		case triage.SentimentNeutral:
			stats.BySentiment.Neutral++
		case triage.SentimentNegative:
			stats.BySentiment.Negative++
		}
	}
	stats.Pending = total - stats.Resolved

	c.JSON(http.StatusOK, stats)
}
