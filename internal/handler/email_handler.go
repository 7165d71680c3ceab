package handler

import (
	"net/http"
	"time"

	"github.com/badoux/checkmail"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"mail-triage-go/internal/model"
)

// emailListRow is the scan target for the emails/meta join.
type emailListRow struct {
	ID           string
	Sender       string
	Subject      string
	BodyText     string
	ReceivedAt   time.Time
	Sentiment    *string
	Urgency      *string
	Priority     *int
	Summary      *string
	ContactPhone *string
	Status       *string
}

// ListEmails returns email summaries, optionally filtered by workflow
// status, ordered by urgency then priority (unprocessed emails last), then
// oldest first.
func (h *Handlers) ListEmails(c *gin.Context) {
	q := h.db.Table("emails").
		Select("emails.id, emails.sender, emails.subject, emails.body_text, emails.received_at, " +
			"email_meta.sentiment, email_meta.urgency, email_meta.priority, email_meta.summary, " +
			"email_meta.contact_phone, email_meta.status").
		Joins("LEFT JOIN email_meta ON email_meta.email_id = emails.id")

	if status := c.Query("status"); status != "" {
		q = q.Where("email_meta.status = ?", status)
	}

	// MySQL sorts NULLs last under DESC, so unprocessed emails sink.
	q = q.Order("email_meta.urgency DESC, email_meta.priority DESC, emails.received_at ASC")

	var rows []emailListRow
	if err := q.Scan(&rows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "database_error",
			Message: "Failed to fetch emails",
			Code:    http.StatusInternalServerError,
		})
		return
	}

	responses := make([]EmailSummaryResponse, 0, len(rows))
	for _, row := range rows {
		responses = append(responses, EmailSummaryResponse{
			ID:           row.ID,
			Sender:       row.Sender,
			Subject:      row.Subject,
			BodyText:     row.BodyText,
			ReceivedAt:   row.ReceivedAt,
			Sentiment:    row.Sentiment,
			Urgency:      row.Urgency,
			Priority:     row.Priority,
			Summary:      row.Summary,
			ContactPhone: row.ContactPhone,
			Status:       statusOrPending(row.Status),
		})
	}

	c.JSON(http.StatusOK, responses)
}

// GetEmail returns the full detail for one email, including the raw entity
// payload and the latest draft
func (h *Handlers) GetEmail(c *gin.Context) {
	id := c.Param("id")

	var email model.Email
	if err := h.db.First(&email, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, ErrorResponse{
				Error:   "not_found",
				Message: "Email not found",
				Code:    http.StatusNotFound,
			})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "database_error",
			Message: "Failed to fetch email",
			Code:    http.StatusInternalServerError,
		})
		return
	}

	response := EmailDetailResponse{
		ID:         email.ID,
		Sender:     email.Sender,
		Subject:    email.Subject,
		BodyText:   email.BodyText,
		ReceivedAt: email.ReceivedAt,
		Status:     model.StatusPending,
	}

	var meta model.EmailMeta
	if err := h.db.First(&meta, "email_id = ?", id).Error; err == nil {
		response.Sentiment = &meta.Sentiment
		response.Urgency = &meta.Urgency
		response.Priority = &meta.Priority
		response.Summary = &meta.Summary
		response.ContactPhone = meta.ContactPhone
		response.NER = &meta.NER
		response.Status = meta.Status
	} else if err != gorm.ErrRecordNotFound {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "database_error",
			Message: "Failed to fetch email metadata",
			Code:    http.StatusInternalServerError,
		})
		return
	}

	var latest model.Response
	if err := h.db.Where("email_id = ?", id).Order("created_at DESC").First(&latest).Error; err == nil {
		response.Draft = &latest.DraftText
	} else if err != gorm.ErrRecordNotFound {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "database_error",
			Message: "Failed to fetch email responses",
			Code:    http.StatusInternalServerError,
		})
		return
	}

	c.JSON(http.StatusOK, response)
}

// Respond records a human-submitted final response as a new append-only row,
// marks the email sent and invokes the send stub. Stub failures are logged
// and never surfaced to the caller.
func (h *Handlers) Respond(c *gin.Context) {
	var req RespondRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: "final_text required",
			Code:    http.StatusBadRequest,
		})
		return
	}

	id := c.Param("id")

	var email model.Email
	if err := h.db.First(&email, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, ErrorResponse{
				Error:   "not_found",
				Message: "Email not found",
				Code:    http.StatusNotFound,
			})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "database_error",
			Message: "Failed to fetch email",
			Code:    http.StatusInternalServerError,
		})
		return
	}

	sentAt := time.Now().UTC()

	err := h.db.Transaction(func(tx *gorm.DB) error {
		resp := model.Response{
			EmailID:   email.ID,
			DraftText: *req.FinalText,
			FinalText: req.FinalText,
			SentAt:    &sentAt,
		}
		if err := tx.Create(&resp).Error; err != nil {
			return err
		}

		return tx.Model(&model.EmailMeta{}).
			Where("email_id = ?", email.ID).
			Updates(map[string]interface{}{
				"status":     model.StatusSent,
				"updated_at": sentAt,
			}).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "database_error",
			Message: "Failed to record response",
			Code:    http.StatusInternalServerError,
		})
		return
	}

	// Audit-stub delivery; a failure here is not the caller's problem.
	if err := h.sender.Send(email.Sender, *req.FinalText); err != nil {
		logrus.Errorf("Send stub failed for email %s: %v", email.ID, err)
		h.metrics.SendFailures.Inc()
	} else {
		h.metrics.SendSuccesses.Inc()
	}

	c.JSON(http.StatusOK, RespondResponse{OK: true, SentAt: sentAt})
}

// IngestEmail stores an externally submitted email and runs the triage
// pipeline on it synchronously
func (h *Handlers) IngestEmail(c *gin.Context) {
	var req IngestEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: "sender required",
			Code:    http.StatusBadRequest,
		})
		return
	}

	if err := checkmail.ValidateFormat(req.Sender); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: "sender is not a valid email address",
			Code:    http.StatusBadRequest,
		})
		return
	}

	receivedAt := time.Now().UTC()
	if req.ReceivedAt != nil {
		receivedAt = req.ReceivedAt.UTC()
	}

	email := model.Email{
		ID:         uuid.NewString(),
		Sender:     req.Sender,
		Subject:    req.Subject,
		BodyText:   req.BodyText,
		RawHeaders: req.RawHeaders,
		RawHTML:    req.RawHTML,
		ReceivedAt: receivedAt,
		Source:     model.SourceAPI,
	}

	if err := h.db.Create(&email).Error; err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "database_error",
			Message: "Failed to store email",
			Code:    http.StatusInternalServerError,
		})
		return
	}

	result, err := h.pipeline.Process(&email)
	if err != nil {
		logrus.Errorf("Failed to process ingested email %s: %v", email.ID, err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "processing_error",
			Message: "Failed to process email",
			Code:    http.StatusInternalServerError,
		})
		return
	}

	h.metrics.EmailsIngested.Inc()

	c.JSON(http.StatusCreated, IngestEmailResponse{
		ID:        email.ID,
		Sentiment: result.Sentiment,
		Urgency:   result.Urgency,
		Priority:  result.Priority,
		Draft:     result.Draft,
		Status:    model.StatusDrafted,
	})
}

func statusOrPending(status *string) string {
	if status == nil || *status == "" {
		return model.StatusPending
	}
	return *status
}
