// Package parse normalizes raw conversation records and turns them into
// classified messages, invoking redaction and classification per message.
package parse

import (
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/hermz580/convoscope/internal/classify"
	"github.com/hermz580/convoscope/internal/domain"
	"github.com/hermz580/convoscope/internal/privacy"
)

// minTextLength is the shortest trimmed text worth keeping. Anything below
// is noise (stray punctuation, empty content blocks) and is dropped
// silently, not treated as an error.
const minTextLength = 3

// Parser produces classified messages from raw records. Classification is
// pure per message, so messages are fanned out across workers and written
// back by index; output order always matches input order.
type Parser struct {
	redactor   *privacy.Redactor
	classifier *classify.Classifier
	workers    int
}

// New creates a Parser. The redactor and classifier are required; workers
// below 1 degenerate to sequential processing.
func New(redactor *privacy.Redactor, classifier *classify.Classifier, workers int) *Parser {
	if redactor == nil || classifier == nil {
		panic("parse: redactor and classifier are required")
	}
	if workers < 1 {
		workers = 1
	}
	return &Parser{redactor: redactor, classifier: classifier, workers: workers}
}

// Parse resolves, filters and classifies every message in the given
// conversations, preserving conversation and within-conversation order.
// Malformed records degrade to defaults; Parse never fails.
func (p *Parser) Parse(conversations []RawConversation) []domain.ClassifiedMessage {
	var messages []domain.Message
	for _, raw := range conversations {
		messages = append(messages, Resolve(raw).Messages...)
	}
	return p.classifyAll(messages)
}

// Resolve turns one raw record into a Conversation with ordered messages,
// dropping those whose trimmed text is too short. The message index is the
// position in the raw record, so dropped messages leave gaps.
func Resolve(raw RawConversation) domain.Conversation {
	conv := domain.Conversation{ID: raw.ID, Name: raw.Name, Model: raw.Model}
	if _, ok := firstNonEmpty(conv.ID); !ok {
		conv.ID = "unknown"
	}
	if _, ok := firstNonEmpty(conv.Name); !ok {
		conv.Name = "Untitled"
	}
	if _, ok := firstNonEmpty(conv.Model); !ok {
		conv.Model = "unknown"
	}

	convCreated, convCreatedOK := parseTimestamp(raw.CreatedAt)
	if convCreatedOK {
		conv.CreatedAt = convCreated
	}
	if updated, ok := parseTimestamp(raw.UpdatedAt); ok {
		conv.UpdatedAt = updated
	}

	rawMessages := raw.ChatMessages
	if len(rawMessages) == 0 {
		rawMessages = raw.Messages
	}

	for idx, msg := range rawMessages {
		text, ok := firstNonEmpty(msg.Text, msg.ContentText())
		if !ok || utf8.RuneCountInString(strings.TrimSpace(text)) < minTextLength {
			continue
		}

		role, ok := firstNonEmpty(msg.Sender, msg.Role)
		if !ok {
			role = "unknown"
		}

		timestamp, hasTimestamp := parseTimestamp(msg.CreatedAt)
		if !hasTimestamp {
			timestamp, hasTimestamp = convCreated, convCreatedOK
		}

		conv.Messages = append(conv.Messages, domain.Message{
			ConversationID:   conv.ID,
			ConversationName: conv.Name,
			Index:            idx,
			Role:             role,
			Text:             text,
			Model:            conv.Model,
			Timestamp:        timestamp,
			HasTimestamp:     hasTimestamp,
		})
	}
	return conv
}

func (p *Parser) classifyAll(messages []domain.Message) []domain.ClassifiedMessage {
	classified := make([]domain.ClassifiedMessage, len(messages))
	if len(messages) == 0 {
		return classified
	}

	workers := p.workers
	if workers > len(messages) {
		workers = len(messages)
	}

	jobs := make(chan int, len(messages))
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				classified[i] = p.classify(messages[i])
			}
		}()
	}
	for i := range messages {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return classified
}

// classify runs the per-message pipeline. Length and word count come from
// the original text, not the redacted preview.
func (p *Parser) classify(msg domain.Message) domain.ClassifiedMessage {
	redacted, piiLabels := p.redactor.Redact(msg.Text)

	classified := domain.ClassifiedMessage{
		Message:       msg,
		Redacted:      redacted,
		PIILabels:     piiLabels,
		Topics:        p.classifier.Topics(msg.Text),
		Sentiment:     p.classifier.Sentiment(msg.Text),
		ContentLength: utf8.RuneCountInString(msg.Text),
		WordCount:     len(strings.Fields(msg.Text)),
	}

	if msg.IsAssistant() {
		classified.Failures, classified.Severities = p.classifier.Failures(msg.Text)
	}

	return classified
}
