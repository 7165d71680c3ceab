package model

import (
	"time"
)

// Workflow statuses for EmailMeta.Status.
const (
	StatusPending  = "pending"
	StatusDrafted  = "drafted"
	StatusSent     = "sent"
	StatusResolved = "resolved"
)

// Email provenance tags.
const (
	SourceSeed = "seed"
	SourceAPI  = "api"
)

// Email represents an inbound support email. Rows are immutable once created.
type Email struct {
	ID         string    `json:"id" gorm:"type:varchar(64);primaryKey"`
	Sender     string    `json:"sender" gorm:"type:varchar(255);not null"`
	Subject    string    `json:"subject" gorm:"type:varchar(998)"`
	BodyText   string    `json:"body_text" gorm:"type:text"`
	ReceivedAt time.Time `json:"received_at" gorm:"index"`
	RawHeaders string    `json:"raw_headers,omitempty" gorm:"type:text"`
	RawHTML    string    `json:"raw_html,omitempty" gorm:"column:raw_html;type:text"`
	Source     string    `json:"source" gorm:"type:varchar(32);default:'seed'"`
	CreatedAt  time.Time `json:"created_at"`

	Meta      *EmailMeta `json:"meta,omitempty" gorm:"foreignKey:EmailID"`
	Responses []Response `json:"responses,omitempty" gorm:"foreignKey:EmailID"`
}

// TableName specifies the table name for Email
func (Email) TableName() string {
	return "emails"
}
