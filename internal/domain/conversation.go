package domain

import "time"

// Conversation is a single exported chat thread after field fallback
// resolution. Immutable once resolved.
type Conversation struct {
	ID        string
	Name      string
	Model     string
	CreatedAt time.Time
	UpdatedAt time.Time
	Messages  []Message
}

// Message is one turn of a conversation after field fallback resolution.
type Message struct {
	ConversationID   string
	ConversationName string
	Index            int
	Role             string
	Text             string
	Model            string
	Timestamp        time.Time
	HasTimestamp     bool
}

// ClassifiedMessage is a Message plus everything the classification
// pipeline derived from it. Produced once by the parser; immutable
// afterwards.
//
// ContentLength and WordCount are computed from the original text even
// though Redacted holds the redacted preview. That asymmetry is
// intentional: redaction tokens would otherwise skew length statistics.
type ClassifiedMessage struct {
	Message

	Redacted      string
	PIILabels     []string
	Topics        []string
	Sentiment     string
	Failures      []string
	Severities    []string
	ContentLength int
	WordCount     int
}

// IsUser reports whether the message was authored by the human side.
func (m Message) IsUser() bool {
	return m.Role == "user" || m.Role == "human"
}

// IsAssistant reports whether the message was authored by the model side.
func (m Message) IsAssistant() bool {
	return m.Role == "assistant" || m.Role == "bot"
}

// HasFailure reports whether any failure category fired for the message.
func (c ClassifiedMessage) HasFailure() bool {
	return len(c.Failures) > 0
}
