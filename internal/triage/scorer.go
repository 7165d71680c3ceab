package triage

import (
	"regexp"
	"strings"

	"mail-triage-go/internal/model"
)

// Sentiment labels.
const (
	SentimentPositive = "positive"
	SentimentNeutral  = "neutral"
	SentimentNegative = "negative"
)

// Urgency labels.
const (
	UrgencyUrgent    = "urgent"
	UrgencyNotUrgent = "not_urgent"
)

// urgencyKeywords are matched by plain substring containment against the
// lower-cased subject+body.
var urgencyKeywords = []string{
	"immediately", "urgent", "critical", "down", "cannot access",
	"payment failed", "security", "data loss", "refund", "deadline today",
	"escalate",
}

// negativeWords are sentiment indicators; "frustrat" deliberately matches
// both "frustrated" and "frustrating".
var negativeWords = []string{
	"not", "can't", "cannot", "failed", "error", "frustrat", "angry",
	"disappointed", "issue", "problem",
}

// phoneRe is permissive: an optional country-code prefix and a 10-12 digit
// run. It over-matches long digit sequences (order ids, timestamps); callers
// treat matches as best-effort hints, not validated numbers.
var (
	phoneRe = regexp.MustCompile(`(?:\+?\d{1,3}[-\s]?)?\d{10,12}`)
	emailRe = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)
)

// Sentiment classifies text by counting distinct negative indicators present
// as substrings: two or more is negative, exactly one neutral, none positive.
func Sentiment(text string) (string, int) {
	t := strings.ToLower(text)
	neg := 0
	for _, w := range negativeWords {
		if strings.Contains(t, w) {
			neg++
		}
	}
	switch {
	case neg >= 2:
		return SentimentNegative, -1
	case neg == 1:
		return SentimentNeutral, 0
	default:
		return SentimentPositive, 1
	}
}

// Urgency scores text at 10 points per distinct urgency keyword contained,
// capped at 40; the label is urgent once at least two keywords matched.
func Urgency(text string) (int, string, []string) {
	t := strings.ToLower(text)
	var matched []string
	for _, kw := range urgencyKeywords {
		if strings.Contains(t, kw) {
			matched = append(matched, kw)
		}
	}
	score := 10 * len(matched)
	if score > 40 {
		score = 40
	}
	label := UrgencyNotUrgent
	if score >= 20 {
		label = UrgencyUrgent
	}
	return score, label, matched
}

// ExtractEntities pulls phone numbers and email addresses out of text in
// occurrence order, duplicates retained.
func ExtractEntities(text string) model.EntitySet {
	return model.EntitySet{
		Phones: phoneRe.FindAllString(text, -1),
		Emails: emailRe.FindAllString(text, -1),
	}
}

// DefaultSummaryLen is the truncation point for Summarize.
const DefaultSummaryLen = 200

// Summarize collapses whitespace runs to single spaces and truncates to
// maxLen runes with a trailing ellipsis marker. Not sentence-aware; may cut
// mid-word.
func Summarize(text string, maxLen int) string {
	s := strings.Join(strings.Fields(text), " ")
	runes := []rune(s)
	if len(runes) > maxLen {
		return string(runes[:maxLen]) + "..."
	}
	return s
}
