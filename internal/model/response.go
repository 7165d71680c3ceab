package model

import (
	"time"
)

// Response is an append-only log of drafts and final sends for an email.
// Rows are never mutated; finalizing a reply appends a new row, and the
// latest row by creation time is the current draft/response.
type Response struct {
	ID        uint       `json:"id" gorm:"primaryKey;autoIncrement"`
	EmailID   string     `json:"email_id" gorm:"type:varchar(64);not null;index"`
	DraftText string     `json:"draft_text" gorm:"type:text"`
	FinalText *string    `json:"final_text" gorm:"type:text"`
	SentAt    *time.Time `json:"sent_at"`
	CreatedAt time.Time  `json:"created_at"`
}

// TableName specifies the table name for Response
func (Response) TableName() string {
	return "responses"
}
