package triage

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSentimentThresholds(t *testing.T) {
	label, score := Sentiment("thanks for the great service")
	assert.Equal(t, SentimentPositive, label)
	assert.Equal(t, 1, score)

	// exactly one distinct indicator
	label, score = Sentiment("there is an issue with my invoice")
	assert.Equal(t, SentimentNeutral, label)
	assert.Equal(t, 0, score)

	label, score = Sentiment("the payment failed and I am angry")
	assert.Equal(t, SentimentNegative, label)
	assert.Equal(t, -1, score)
}

func TestSentimentSubstringContainment(t *testing.T) {
	// not word-boundary aware: "problematic" contains "problem"
	label, _ := Sentiment("this is problematic")
	assert.Equal(t, SentimentNeutral, label)

	// "cannot" contains "not" as well, so it alone counts two indicators
	label, _ = Sentiment("I cannot log in")
	assert.Equal(t, SentimentNegative, label)
}

func TestSentimentCountsDistinctWordsNotOccurrences(t *testing.T) {
	// the same indicator repeated still counts once
	label, _ := Sentiment("issue issue issue")
	assert.Equal(t, SentimentNeutral, label)
}

func TestUrgencyScoring(t *testing.T) {
	score, label, matched := Urgency("all quiet today")
	assert.Equal(t, 0, score)
	assert.Equal(t, UrgencyNotUrgent, label)
	assert.Empty(t, matched)

	score, label, matched = Urgency("this is urgent")
	assert.Equal(t, 10, score)
	assert.Equal(t, UrgencyNotUrgent, label)
	assert.Equal(t, []string{"urgent"}, matched)

	score, label, _ = Urgency("urgent and critical")
	assert.Equal(t, 20, score)
	assert.Equal(t, UrgencyUrgent, label)
}

func TestUrgencyScoreCap(t *testing.T) {
	score, label, matched := Urgency("urgent critical down security refund escalate")
	assert.Equal(t, 40, score)
	assert.Equal(t, UrgencyUrgent, label)
	assert.Len(t, matched, 6)
}

func TestUrgencyExampleEmail(t *testing.T) {
	subject := "urgent"
	body := "This is critical and I cannot access my account, error"

	score, label, matched := Urgency(subject + " " + body)
	assert.Equal(t, UrgencyUrgent, label)
	assert.GreaterOrEqual(t, score, 20)
	assert.Contains(t, matched, "urgent")
	assert.Contains(t, matched, "critical")
	assert.Contains(t, matched, "cannot access")

	sentiment, _ := Sentiment(body)
	assert.Equal(t, SentimentNegative, sentiment)
}

func TestExtractEntities(t *testing.T) {
	ner := ExtractEntities("Reach me at +919876543210 or alt alice.b@example.co.uk")
	assert.Equal(t, []string{"+919876543210"}, ner.Phones)
	assert.Equal(t, []string{"alice.b@example.co.uk"}, ner.Emails)
}

func TestExtractEntitiesKeepsDuplicatesInOrder(t *testing.T) {
	ner := ExtractEntities("a@x.com then b@y.org then a@x.com again")
	assert.Equal(t, []string{"a@x.com", "b@y.org", "a@x.com"}, ner.Emails)
	assert.Empty(t, ner.Phones)
}

func TestSummarizeNormalizesWhitespace(t *testing.T) {
	s := Summarize("  hello\n\t world  ", DefaultSummaryLen)
	assert.Equal(t, "hello world", s)
}

func TestSummarizeTruncates(t *testing.T) {
	long := strings.Repeat("a", 250)
	s := Summarize(long, DefaultSummaryLen)
	assert.Len(t, s, DefaultSummaryLen+3)
	assert.True(t, strings.HasSuffix(s, "..."))
}

func TestSummarizeIdempotentOnShortText(t *testing.T) {
	short := "a brief request about billing"
	once := Summarize(short, DefaultSummaryLen)
	assert.Equal(t, once, Summarize(once, DefaultSummaryLen))
}
