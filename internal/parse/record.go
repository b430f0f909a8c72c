package parse

import (
	"encoding/json"
	"strings"
	"time"
)

// RawConversation is one conversation as it appears in an export file.
// Exports disagree about field names, so both spellings of the message list
// are carried and resolved later.
type RawConversation struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Model        string       `json:"model"`
	CreatedAt    string       `json:"created_at"`
	UpdatedAt    string       `json:"updated_at"`
	ChatMessages []RawMessage `json:"chat_messages"`
	Messages     []RawMessage `json:"messages"`
}

// RawMessage is one message before field fallback resolution. Text lives
// under "text" or "content", the author under "sender" or "role".
type RawMessage struct {
	Text      string          `json:"text"`
	Content   json.RawMessage `json:"content"`
	Sender    string          `json:"sender"`
	Role      string          `json:"role"`
	CreatedAt string          `json:"created_at"`
}

// ContentText extracts text from the "content" field, which is either a
// plain string or a list of content blocks with embedded text. Anything
// else resolves to empty.
func (m RawMessage) ContentText() string {
	if len(m.Content) == 0 {
		return ""
	}

	var s string
	if err := json.Unmarshal(m.Content, &s); err == nil {
		return s
	}

	var blocks []struct {
		Text string `json:"text"`
	}
	if err := json.Unmarshal(m.Content, &blocks); err == nil {
		parts := make([]string, 0, len(blocks))
		for _, b := range blocks {
			if b.Text != "" {
				parts = append(parts, b.Text)
			}
		}
		return strings.Join(parts, "\n")
	}

	return ""
}

// firstNonEmpty returns the first value whose trimmed form is non-empty.
// This is the prioritized-lookup half of the field fallback contract.
func firstNonEmpty(values ...string) (string, bool) {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v, true
		}
	}
	return "", false
}

// timestampLayouts are tried in order. Exports mix RFC3339 variants with
// bare datetimes.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// parseTimestamp parses a timestamp string, reporting failure instead of
// returning an error: an unparsable timestamp only disables the timing half
// of downstream metrics for the affected message.
func parseTimestamp(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
