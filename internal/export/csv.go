package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"

	"github.com/hermz580/convoscope/internal/domain"
)

var csvHeader = []string{
	"conversation_id", "conversation_name", "message_index", "timestamp",
	"role", "model", "content_preview", "content_length", "word_count",
	"topics", "topic_count", "sentiment", "pii_labels",
	"has_failure", "failure_types", "failure_count",
	"failure_severities", "max_failure_severity",
}

// WriteCSV writes every classified message as one CSV row.
func WriteCSV(w io.Writer, messages []domain.ClassifiedMessage) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	if err := writer.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, row := range Rows(messages) {
		record := []string{
			row.ConversationID, row.ConversationName,
			fmt.Sprintf("%d", row.MessageIndex), row.Timestamp,
			row.Role, row.Model, row.ContentPreview,
			fmt.Sprintf("%d", row.ContentLength), fmt.Sprintf("%d", row.WordCount),
			row.Topics, fmt.Sprintf("%d", row.TopicCount), row.Sentiment,
			row.PIILabels, fmt.Sprintf("%t", row.HasFailure),
			row.FailureTypes, fmt.Sprintf("%d", row.FailureCount),
			row.FailureSeverities, row.MaxFailureSeverity,
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// WriteJSON writes the classified messages as an indented JSON array.
func WriteJSON(w io.Writer, messages []domain.ClassifiedMessage) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(Rows(messages)); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}
