package triage

import (
	"fmt"
	"strings"
)

// ComposeDraft fills the reply template. A fixed empathy line is prepended
// for negative sentiment, a product line is inserted when refs are present,
// and the summary is included verbatim between the greeting and the fixed
// clarification questions.
func ComposeDraft(senderName string, productRefs []string, summary, sentiment string) string {
	if senderName == "" {
		senderName = "there"
	}

	empath := ""
	if sentiment == SentimentNegative {
		empath = "I'm sorry you're facing this — I know it's frustrating.\n\n"
	}

	productLine := ""
	if len(productRefs) > 0 {
		productLine = fmt.Sprintf("We checked %s. ", strings.Join(productRefs, ", "))
	}

	steps := "Could you please confirm the following so I can help: 1) Your account email, 2) A brief screenshot or error ID if available?"

	return fmt.Sprintf(
		"Hi %s,\n\n%sThanks for reaching out about this. %sHere's a quick summary of your request:\n\n%s\n\n%s\n\nIf you'd like faster assistance, reply with 'ESCALATE'.\n\nBest,\nSupport Team",
		senderName, empath, productLine, summary, steps,
	)
}

// SenderDisplayName derives a display name from the local part of an email
// address; the composer falls back to "there" when it comes up empty.
func SenderDisplayName(address string) string {
	name, _, _ := strings.Cut(address, "@")
	return name
}
