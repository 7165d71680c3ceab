package seed

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"mail-triage-go/internal/model"
	"mail-triage-go/internal/triage"
)

type sample struct {
	sender   string
	subject  string
	bodyText string
}

var samples = []sample{
	{
		sender:   "alice@example.com",
		subject:  "Support: Cannot access my account - urgent",
		bodyText: "Hi, I cannot access my account since yesterday. It says ERROR 403. Please help immediately. My phone +919876543210.",
	},
	{
		sender:   "bob@example.com",
		subject:  "Request: Refund for order #12345",
		bodyText: "Hello, I'd like a refund for order 12345. The payment failed but money deducted. disappointed.",
	},
	{
		sender:   "carol@example.com",
		subject:  "Question about product features",
		bodyText: "Hey team, can you tell me if product X supports batch upload? Thanks!",
	},
	{
		sender:   "dan@example.com",
		subject:  "Help needed: cannot sync data",
		bodyText: "Syncing fails with timeout. Error logs attached (not included here). Please assist.",
	},
}

// SeedSampleEmails inserts the fixed sample set and runs the triage pipeline
// on each, synchronously. It is a no-op when any email already exists, so
// every seeded email ends up drafted rather than pending.
func SeedSampleEmails(db *gorm.DB, pipeline *triage.Pipeline) error {
	var existing int64
	if err := db.Model(&model.Email{}).Count(&existing).Error; err != nil {
		return fmt.Errorf("failed to count existing emails: %w", err)
	}
	if existing > 0 {
		return nil
	}

	logrus.Info("Seeding sample emails")

	for _, item := range samples {
		email := model.Email{
			ID:         uuid.NewString(),
			Sender:     item.sender,
			Subject:    item.subject,
			BodyText:   item.bodyText,
			ReceivedAt: time.Now().UTC().Add(-1 * time.Hour),
			Source:     model.SourceSeed,
		}
		if err := db.Create(&email).Error; err != nil {
			return fmt.Errorf("failed to insert seed email: %w", err)
		}
		if _, err := pipeline.Process(&email); err != nil {
			return fmt.Errorf("failed to process seed email %s: %w", email.ID, err)
		}
	}

	logrus.Infof("Seeded %d sample emails", len(samples))
	return nil
}
