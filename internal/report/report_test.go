package report

import (
	"strings"
	"testing"
	"time"

	"github.com/hermz580/convoscope/internal/domain"
	"github.com/hermz580/convoscope/internal/quality"
)

func TestSummary(t *testing.T) {
	stats := domain.CorpusStats{
		TotalConversations: 2,
		TotalMessages:      10,
		UserMessages:       5,
		AssistantMessages:  5,
		AvgMessageLength:   120.5,
		TopicDistribution: map[string]int{
			"Technical/Coding": 6,
			"General":          4,
		},
		SentimentDistribution: map[string]int{"Neutral": 8, "Positive": 2},
		FailureDistribution:   map[string]int{"Hallucination": 1},
		MessagesWithFailures:  1,
		FailureRatePercent:    20,
	}

	got := Summary(stats)

	for _, want := range []string{
		"# Conversation Analysis Summary",
		"- Total conversations: 2",
		"- Total messages: 10",
		"- Technical/Coding: 6",
		"- Neutral: 8 (80.0%)",
		"- Failure rate: 20.0%",
		"- Hallucination: 1",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("summary missing %q\n%s", want, got)
		}
	}

	// Higher counts come first.
	if strings.Index(got, "Technical/Coding") > strings.Index(got, "General") {
		t.Error("topics not ordered by count")
	}
}

func TestTemporal(t *testing.T) {
	start := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)
	summary := domain.TemporalSummary{
		DateRange: domain.DateRange{Start: start, End: start.AddDate(0, 0, 9), DurationDays: 9},
		Activity: domain.ActivityPatterns{
			PeakHours:    []int{9, 14, 22},
			QuietHours:   []int{3, 4, 5},
			BusiestDays:  []time.Weekday{time.Monday},
			QuietestDays: []time.Weekday{time.Sunday},
		},
		Streaks: []domain.Streak{
			{Start: start, End: start.AddDate(0, 0, 3), LengthDays: 4, MessageCount: 12},
		},
		EngagementTrend: []domain.EngagementDay{
			{Date: start, Score: 100},
			{Date: start.AddDate(0, 0, 1), Score: 50},
		},
	}

	got := Temporal(summary)

	for _, want := range []string{
		"Analysis period: 2025-03-03 to 2025-03-12 (9 days)",
		"- Peak hours: 09:00, 14:00, 22:00",
		"- Busiest days: Monday",
		"1. 2025-03-03 to 2025-03-06 — 4 days, 12 messages",
		"- Active days: 2",
		"- Average engagement: 75.0",
		"- Peak day: 2025-03-03 (100.0)",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("report missing %q\n%s", want, got)
		}
	}
}

func TestQuality(t *testing.T) {
	qualities := []quality.ConversationQuality{
		{
			ConversationID: "a",
			Collaboration:  quality.CollabHigh,
			Task:           domain.TaskCompletion{Status: quality.StatusCompleted},
			Metrics:        domain.ConversationMetrics{TurnCount: 4, UserQuestions: 2},
			Responses: []domain.ResponseEffectiveness{
				{Effectiveness: quality.EffectEffective, Confidence: 1},
			},
		},
		{
			ConversationID: "b",
			Collaboration:  quality.CollabMedium,
			Task:           domain.TaskCompletion{Status: quality.StatusCompleted},
			Metrics:        domain.ConversationMetrics{TurnCount: 2},
		},
	}

	got := Quality(qualities)

	for _, want := range []string{
		"# Conversation Quality Report",
		"- completed: 2 conversations (100.0%)",
		"- high: 1 conversations (50.0%)",
		"- effective: 1 responses",
		"- Turns: 3.0",
		"- Questions: 1.0",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("report missing %q\n%s", want, got)
		}
	}
}

func TestQuality_Empty(t *testing.T) {
	got := Quality(nil)
	if !strings.Contains(got, "No conversations analyzed.") {
		t.Errorf("unexpected empty report: %s", got)
	}
}
