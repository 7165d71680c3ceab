package model

import (
	"time"
)

// EmailMeta holds the derived triage metadata for one email. The email id is
// the primary key, so each email has at most one row; every pipeline run
// overwrites the derived fields in place.
type EmailMeta struct {
	EmailID      string     `json:"email_id" gorm:"type:varchar(64);primaryKey"`
	Sentiment    string     `json:"sentiment" gorm:"type:varchar(16)"`
	Urgency      string     `json:"urgency" gorm:"type:varchar(16)"`
	Priority     int        `json:"priority"`
	Keywords     StringList `json:"keywords" gorm:"type:json"`
	ContactPhone *string    `json:"contact_phone" gorm:"type:varchar(32)"`
	ContactAlt   *string    `json:"contact_alt" gorm:"type:varchar(255)"`
	ProductRefs  StringList `json:"product_refs" gorm:"type:json"`
	Summary      string     `json:"summary" gorm:"type:text"`
	NER          EntitySet  `json:"ner_json" gorm:"column:ner_json;type:json"`
	Status       string     `json:"status" gorm:"type:varchar(16);default:'pending';index"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// TableName specifies the table name for EmailMeta
func (EmailMeta) TableName() string {
	return "email_meta"
}
