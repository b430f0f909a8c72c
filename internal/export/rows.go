// Package export renders the classified message collection into tabular
// formats: CSV, JSON and a multi-sheet workbook. It consumes core output
// structures and never computes classifications itself.
package export

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/hermz580/convoscope/internal/domain"
)

// previewLength caps the stored content preview. Full texts belong in the
// source export, not in analysis artifacts.
const previewLength = 300

// Row is one flattened classified message, shared by every tabular format.
type Row struct {
	ConversationID     string `json:"conversation_id"`
	ConversationName   string `json:"conversation_name"`
	MessageIndex       int    `json:"message_index"`
	Timestamp          string `json:"timestamp,omitempty"`
	Role               string `json:"role"`
	Model              string `json:"model"`
	ContentPreview     string `json:"content_preview"`
	ContentLength      int    `json:"content_length"`
	WordCount          int    `json:"word_count"`
	Topics             string `json:"topics"`
	TopicCount         int    `json:"topic_count"`
	Sentiment          string `json:"sentiment"`
	PIILabels          string `json:"pii_labels,omitempty"`
	HasFailure         bool   `json:"has_failure"`
	FailureTypes       string `json:"failure_types"`
	FailureCount       int    `json:"failure_count"`
	FailureSeverities  string `json:"failure_severities"`
	MaxFailureSeverity string `json:"max_failure_severity"`
}

// NewRow flattens a classified message. The preview is the redacted text,
// truncated; lengths still describe the original text.
func NewRow(m domain.ClassifiedMessage) Row {
	row := Row{
		ConversationID:     m.ConversationID,
		ConversationName:   m.ConversationName,
		MessageIndex:       m.Index,
		Role:               m.Role,
		Model:              m.Model,
		ContentPreview:     truncate(m.Redacted, previewLength),
		ContentLength:      m.ContentLength,
		WordCount:          m.WordCount,
		Topics:             strings.Join(m.Topics, "|"),
		TopicCount:         len(m.Topics),
		Sentiment:          m.Sentiment,
		PIILabels:          strings.Join(m.PIILabels, "|"),
		HasFailure:         m.HasFailure(),
		FailureTypes:       joinOrNone(m.Failures),
		FailureCount:       len(m.Failures),
		FailureSeverities:  joinOrNone(m.Severities),
		MaxFailureSeverity: maxSeverity(m.Severities),
	}
	if m.HasTimestamp {
		row.Timestamp = m.Timestamp.Format(time.RFC3339)
	}
	return row
}

// Rows flattens the whole collection, preserving order.
func Rows(messages []domain.ClassifiedMessage) []Row {
	rows := make([]Row, 0, len(messages))
	for _, m := range messages {
		rows = append(rows, NewRow(m))
	}
	return rows
}

func joinOrNone(values []string) string {
	if len(values) == 0 {
		return "None"
	}
	return strings.Join(values, "|")
}

var severityRank = map[string]int{"low": 1, "medium": 2, "high": 3}

func maxSeverity(severities []string) string {
	best := "none"
	for _, s := range severities {
		if severityRank[s] > severityRank[best] {
			best = s
		}
	}
	return best
}

func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return string(runes[:max])
}
