package handler

import (
	"time"

	"mail-triage-go/internal/model"
)

// EmailSummaryResponse is one row of the email listing. Derived fields are
// nil until the triage pipeline has run for the email.
type EmailSummaryResponse struct {
	ID           string    `json:"id"`
	Sender       string    `json:"sender"`
	Subject      string    `json:"subject"`
	BodyText     string    `json:"body_text"`
	ReceivedAt   time.Time `json:"received_at"`
	Sentiment    *string   `json:"sentiment"`
	Urgency      *string   `json:"urgency"`
	Priority     *int      `json:"priority"`
	Summary      *string   `json:"summary"`
	ContactPhone *string   `json:"contact_phone"`
	Status       string    `json:"status"`
}

// EmailDetailResponse is the full view of one email, including the raw
// entity-extraction payload and the latest draft text.
type EmailDetailResponse struct {
	ID           string           `json:"id"`
	Sender       string           `json:"sender"`
	Subject      string           `json:"subject"`
	BodyText     string           `json:"body_text"`
	ReceivedAt   time.Time        `json:"received_at"`
	Sentiment    *string          `json:"sentiment"`
	Urgency      *string          `json:"urgency"`
	Priority     *int             `json:"priority"`
	Summary      *string          `json:"summary"`
	ContactPhone *string          `json:"contact_phone"`
	NER          *model.EntitySet `json:"ner_json"`
	Draft        *string          `json:"draft"`
	Status       string           `json:"status"`
}

// IngestEmailRequest represents an externally submitted email
type IngestEmailRequest struct {
	Sender     string     `json:"sender" binding:"required"`
	Subject    string     `json:"subject"`
	BodyText   string     `json:"body_text"`
	RawHeaders string     `json:"raw_headers"`
	RawHTML    string     `json:"raw_html"`
	ReceivedAt *time.Time `json:"received_at"`
}

// IngestEmailResponse returns the stored email id plus what the pipeline
// derived for it.
type IngestEmailResponse struct {
	ID        string `json:"id"`
	Sentiment string `json:"sentiment"`
	Urgency   string `json:"urgency"`
	Priority  int    `json:"priority"`
	Draft     string `json:"draft"`
	Status    string `json:"status"`
}

// RespondRequest carries the human-submitted final response text
type RespondRequest struct {
	FinalText *string `json:"final_text" binding:"required"`
}

// RespondResponse acknowledges a submitted response
type RespondResponse struct {
	OK     bool      `json:"ok"`
	SentAt time.Time `json:"sent_at"`
}

// SentimentBreakdown counts emails per sentiment label
type SentimentBreakdown struct {
	Positive int `json:"positive"`
	Neutral  int `json:"neutral"`
	Negative int `json:"negative"`
}

// StatsResponse summarizes the trailing 24 hours
type StatsResponse struct {
	Total       int64              `json:"total"`
	Resolved    int64              `json:"resolved"`
	Pending     int64              `json:"pending"`
	Urgent      int64              `json:"urgent"`
	BySentiment SentimentBreakdown `json:"by_sentiment"`
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Database  string            `json:"database"`
	Metrics   map[string]string `json:"metrics,omitempty"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}
