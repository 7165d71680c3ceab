package triage

import (
	"fmt"
	"time"

	"github.com/k3a/html2text"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"mail-triage-go/internal/metrics"
	"mail-triage-go/internal/model"
)

const basePriority = 10

// Result is what one pipeline run produced for an email.
type Result struct {
	Draft     string `json:"draft"`
	Sentiment string `json:"sentiment"`
	Urgency   string `json:"urgency"`
	Priority  int    `json:"priority"`
}

// Pipeline turns a raw email into derived metadata plus a reply draft.
type Pipeline struct {
	db      *gorm.DB
	metrics *metrics.Metrics
}

// NewPipeline creates a triage pipeline over the given store
func NewPipeline(db *gorm.DB, m *metrics.Metrics) *Pipeline {
	return &Pipeline{db: db, metrics: m}
}

// Process scores one email, upserts its metadata and appends a draft
// response. The metadata upsert and the response row commit as a single
// transaction; on error nothing is visible to readers. Re-running replaces
// the derived values and appends another draft row.
func (p *Pipeline) Process(email *model.Email) (*Result, error) {
	start := time.Now()

	body := effectiveBody(email)
	sentimentLabel, _ := Sentiment(body)
	urgencyScore, urgencyLabel, matched := Urgency(email.Subject + " " + body)
	priority := PriorityFor(urgencyScore, sentimentLabel, email.ReceivedAt, time.Now().UTC())
	ner := ExtractEntities(body)
	summary := Summarize(body, DefaultSummaryLen)
	productRefs := detectProductRefs(body)

	draft := ComposeDraft(SenderDisplayName(email.Sender), productRefs, summary, sentimentLabel)

	err := p.db.Transaction(func(tx *gorm.DB) error {
		var meta model.EmailMeta
		if err := tx.Where("email_id = ?", email.ID).First(&meta).Error; err != nil {
			if err != gorm.ErrRecordNotFound {
				return fmt.Errorf("failed to load email meta: %w", err)
			}
			meta = model.EmailMeta{EmailID: email.ID}
		}

		meta.Sentiment = sentimentLabel
		meta.Urgency = urgencyLabel
		meta.Priority = priority
		meta.Keywords = matched
		meta.ContactPhone = firstOrNil(ner.Phones)
		meta.ContactAlt = firstOrNil(ner.Emails)
		meta.ProductRefs = productRefs
		meta.Summary = summary
		meta.NER = ner
		meta.Status = model.StatusDrafted
		meta.UpdatedAt = time.Now().UTC()

		if err := tx.Save(&meta).Error; err != nil {
			return fmt.Errorf("failed to upsert email meta: %w", err)
		}

		resp := model.Response{EmailID: email.ID, DraftText: draft}
		if err := tx.Create(&resp).Error; err != nil {
			return fmt.Errorf("failed to create response draft: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	p.metrics.TriageRuns.Inc()
	p.metrics.DraftsCreated.Inc()
	p.metrics.ProcessingTime.Observe(time.Since(start).Seconds())

	logrus.Debugf("Processed email %s: sentiment=%s urgency=%s priority=%d",
		email.ID, sentimentLabel, urgencyLabel, priority)

	return &Result{
		Draft:     draft,
		Sentiment: sentimentLabel,
		Urgency:   urgencyLabel,
		Priority:  priority,
	}, nil
}

// PriorityFor computes the priority of an email at a given instant: a base of
// 10, plus the urgency score, plus 10 for negative sentiment, plus one point
// per whole hour of age capped at 10. Future received times count as age 0.
func PriorityFor(urgencyScore int, sentiment string, receivedAt, now time.Time) int {
	ageHours := int(now.Sub(receivedAt).Hours())
	if ageHours < 0 {
		ageHours = 0
	}
	if ageHours > 10 {
		ageHours = 10
	}
	priority := basePriority + urgencyScore + ageHours
	if sentiment == SentimentNegative {
		priority += 10
	}
	return priority
}

// detectProductRefs is a placeholder: product reference detection is
// intentionally unimplemented and always yields an empty list.
func detectProductRefs(string) []string {
	return []string{}
}

// effectiveBody prefers the plain-text body, falling back to a text rendering
// of the stored HTML when only HTML was captured.
func effectiveBody(email *model.Email) string {
	if email.BodyText != "" {
		return email.BodyText
	}
	if email.RawHTML != "" {
		return html2text.HTML2Text(email.RawHTML)
	}
	return ""
}

func firstOrNil(values []string) *string {
	if len(values) == 0 {
		return nil
	}
	v := values[0]
	return &v
}
