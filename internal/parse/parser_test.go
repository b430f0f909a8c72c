package parse

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/hermz580/convoscope/internal/classify"
	"github.com/hermz580/convoscope/internal/privacy"
)

func testParser(workers int) *Parser {
	return New(privacy.Default(), classify.Default(), workers)
}

func TestParser_FieldFallbacks(t *testing.T) {
	p := testParser(1)

	conversations := []RawConversation{
		{
			ID:        "conv-1",
			Name:      "Fallbacks",
			CreatedAt: "2025-03-01T10:00:00Z",
			ChatMessages: []RawMessage{
				{Sender: "human", Text: "text field wins over content"},
				{Role: "assistant", Content: json.RawMessage(`"content as plain string"`)},
				{Role: "assistant", Content: json.RawMessage(`[{"type":"text","text":"from a block"},{"type":"text","text":"second block"}]`)},
			},
		},
	}

	got := p.Parse(conversations)
	if len(got) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(got))
	}

	if got[0].Role != "human" || got[0].Text != "text field wins over content" {
		t.Errorf("message 0: role=%q text=%q", got[0].Role, got[0].Text)
	}
	if got[1].Text != "content as plain string" {
		t.Errorf("message 1: text=%q", got[1].Text)
	}
	if got[2].Text != "from a block\nsecond block" {
		t.Errorf("message 2: text=%q", got[2].Text)
	}

	for i, m := range got {
		if !m.HasTimestamp {
			t.Errorf("message %d: expected conversation timestamp fallback", i)
		}
		if m.ConversationID != "conv-1" || m.ConversationName != "Fallbacks" {
			t.Errorf("message %d: conversation fields not propagated", i)
		}
	}
}

func TestParser_Defaults(t *testing.T) {
	p := testParser(1)

	got := p.Parse([]RawConversation{
		{Messages: []RawMessage{{Text: "no metadata at all"}}},
	})
	if len(got) != 1 {
		t.Fatalf("expected 1 message, got %d", len(got))
	}

	m := got[0]
	if m.ConversationID != "unknown" {
		t.Errorf("ConversationID = %q, expected unknown", m.ConversationID)
	}
	if m.ConversationName != "Untitled" {
		t.Errorf("ConversationName = %q, expected Untitled", m.ConversationName)
	}
	if m.Model != "unknown" {
		t.Errorf("Model = %q, expected unknown", m.Model)
	}
	if m.Role != "unknown" {
		t.Errorf("Role = %q, expected unknown", m.Role)
	}
	if m.HasTimestamp {
		t.Error("expected no timestamp")
	}
}

func TestParser_DropsShortMessagesKeepsIndexes(t *testing.T) {
	p := testParser(1)

	got := p.Parse([]RawConversation{
		{
			ID: "conv-1",
			Messages: []RawMessage{
				{Role: "user", Text: "first message kept"},
				{Role: "assistant", Text: "ok"},
				{Role: "assistant", Text: "   \n  "},
				{Role: "user", Text: "last message kept"},
			},
		},
	})

	if len(got) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(got))
	}
	if got[0].Index != 0 || got[1].Index != 3 {
		t.Errorf("indexes = %d, %d; expected 0, 3", got[0].Index, got[1].Index)
	}
}

func TestParser_OrderPreservedAcrossWorkers(t *testing.T) {
	p := testParser(8)

	var raw []RawMessage
	for i := 0; i < 200; i++ {
		raw = append(raw, RawMessage{Role: "user", Text: fmt.Sprintf("message number %d", i)})
	}

	got := p.Parse([]RawConversation{{ID: "conv-1", Messages: raw}})
	if len(got) != 200 {
		t.Fatalf("expected 200 messages, got %d", len(got))
	}
	for i, m := range got {
		if expected := fmt.Sprintf("message number %d", i); m.Text != expected {
			t.Fatalf("message %d out of order: %q", i, m.Text)
		}
	}
}

func TestParser_LengthsUseOriginalText(t *testing.T) {
	p := testParser(1)

	text := "mail bob@example.com today"
	got := p.Parse([]RawConversation{
		{Messages: []RawMessage{{Role: "user", Text: text}}},
	})
	if len(got) != 1 {
		t.Fatalf("expected 1 message, got %d", len(got))
	}

	m := got[0]
	if m.Redacted == text {
		t.Error("expected redaction to change the text")
	}
	if m.ContentLength != len([]rune(text)) {
		t.Errorf("ContentLength = %d, expected %d (original text)", m.ContentLength, len([]rune(text)))
	}
	if m.WordCount != 3 {
		t.Errorf("WordCount = %d, expected 3", m.WordCount)
	}
}

func TestParser_FailuresOnlyForAssistant(t *testing.T) {
	p := testParser(1)

	text := "that's not true at all"
	got := p.Parse([]RawConversation{
		{Messages: []RawMessage{
			{Role: "user", Text: text},
			{Role: "assistant", Text: text},
		}},
	})
	if len(got) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(got))
	}

	if got[0].HasFailure() {
		t.Error("user message must not carry failure labels")
	}
	if !got[1].HasFailure() {
		t.Error("assistant message should carry failure labels")
	}
}

func TestResolve(t *testing.T) {
	conv := Resolve(RawConversation{
		ID:        "conv-1",
		Name:      "Resolved",
		Model:     "some-model",
		CreatedAt: "2025-03-01T10:00:00Z",
		UpdatedAt: "2025-03-02T10:00:00Z",
		Messages: []RawMessage{
			{Role: "user", Text: "keep this one"},
			{Role: "user", Text: "x"},
		},
	})

	if conv.ID != "conv-1" || conv.Name != "Resolved" || conv.Model != "some-model" {
		t.Errorf("conversation fields = %+v", conv)
	}
	if conv.CreatedAt.IsZero() || conv.UpdatedAt.IsZero() {
		t.Error("expected parsed conversation timestamps")
	}
	if len(conv.Messages) != 1 {
		t.Fatalf("expected 1 resolved message, got %d", len(conv.Messages))
	}
}

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expectOK bool
	}{
		{name: "rfc3339", input: "2025-03-01T10:00:00Z", expectOK: true},
		{name: "rfc3339 nano", input: "2025-03-01T10:00:00.123456Z", expectOK: true},
		{name: "bare datetime", input: "2025-03-01 10:00:00", expectOK: true},
		{name: "bare date", input: "2025-03-01", expectOK: true},
		{name: "empty", input: "", expectOK: false},
		{name: "garbage", input: "yesterday-ish", expectOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := parseTimestamp(tt.input)
			if ok != tt.expectOK {
				t.Errorf("parseTimestamp(%q) ok = %v, expected %v", tt.input, ok, tt.expectOK)
			}
		})
	}
}
