package domain

import (
	"math"
	"testing"
)

func TestComputeCorpusStats(t *testing.T) {
	messages := []ClassifiedMessage{
		{
			Message:       Message{ConversationID: "a", Role: "user"},
			Topics:        []string{"Technical/Coding"},
			Sentiment:     "Positive",
			ContentLength: 100,
			WordCount:     20,
		},
		{
			Message:       Message{ConversationID: "a", Role: "assistant"},
			Topics:        []string{"Technical/Coding", "Debugging"},
			Sentiment:     "Neutral",
			Failures:      []string{"Hallucination"},
			Severities:    []string{"high"},
			ContentLength: 200,
			WordCount:     40,
		},
		{
			Message:       Message{ConversationID: "b", Role: "assistant"},
			Topics:        []string{"General"},
			Sentiment:     "Neutral",
			ContentLength: 60,
			WordCount:     12,
		},
	}

	stats := ComputeCorpusStats(messages)

	if stats.TotalConversations != 2 {
		t.Errorf("TotalConversations = %d, expected 2", stats.TotalConversations)
	}
	if stats.TotalMessages != 3 {
		t.Errorf("TotalMessages = %d, expected 3", stats.TotalMessages)
	}
	if stats.UserMessages != 1 || stats.AssistantMessages != 2 {
		t.Errorf("role counts = %d user, %d assistant", stats.UserMessages, stats.AssistantMessages)
	}
	if stats.MessagesWithFailures != 1 {
		t.Errorf("MessagesWithFailures = %d, expected 1", stats.MessagesWithFailures)
	}

	assertFloatNear(t, "AvgMessageLength", 120, stats.AvgMessageLength)
	assertFloatNear(t, "AvgWordsPerMessage", 24, stats.AvgWordsPerMessage)
	assertFloatNear(t, "FailureRatePercent", 50, stats.FailureRatePercent)

	if got := stats.TopicDistribution["Technical/Coding"]; got != 2 {
		t.Errorf("TopicDistribution[Technical/Coding] = %d, expected 2", got)
	}
	if got := stats.SentimentDistribution["Neutral"]; got != 2 {
		t.Errorf("SentimentDistribution[Neutral] = %d, expected 2", got)
	}
	if got := stats.FailureDistribution["Hallucination"]; got != 1 {
		t.Errorf("FailureDistribution[Hallucination] = %d, expected 1", got)
	}
}

func TestComputeCorpusStats_Empty(t *testing.T) {
	stats := ComputeCorpusStats(nil)

	if stats.TotalConversations != 0 || stats.TotalMessages != 0 {
		t.Errorf("expected zero counts, got %+v", stats)
	}
	if stats.AvgMessageLength != 0 || stats.FailureRatePercent != 0 {
		t.Errorf("expected zero rates, got %+v", stats)
	}
	if stats.TopicDistribution == nil {
		t.Error("distributions must be allocated even for an empty corpus")
	}
}

func TestMessage_Roles(t *testing.T) {
	tests := []struct {
		role        string
		isUser      bool
		isAssistant bool
	}{
		{role: "user", isUser: true},
		{role: "human", isUser: true},
		{role: "assistant", isAssistant: true},
		{role: "bot", isAssistant: true},
		{role: "system"},
		{role: ""},
	}

	for _, tt := range tests {
		t.Run("role "+tt.role, func(t *testing.T) {
			m := Message{Role: tt.role}
			if m.IsUser() != tt.isUser {
				t.Errorf("IsUser() = %v, expected %v", m.IsUser(), tt.isUser)
			}
			if m.IsAssistant() != tt.isAssistant {
				t.Errorf("IsAssistant() = %v, expected %v", m.IsAssistant(), tt.isAssistant)
			}
		})
	}
}

func assertFloatNear(t *testing.T, name string, expected, actual float64) {
	t.Helper()
	if math.Abs(expected-actual) > 0.0001 {
		t.Errorf("%s: expected %.6f, got %.6f", name, expected, actual)
	}
}
