package temporal

import (
	"math"
	"testing"
	"time"

	"github.com/hermz580/convoscope/internal/domain"
)

func at(day, hour int) time.Time {
	// 2025-03-03 is a Monday.
	return time.Date(2025, 3, 3+day, hour, 0, 0, 0, time.UTC)
}

func timedMsg(convID, sentiment string, ts time.Time, words int) domain.ClassifiedMessage {
	return domain.ClassifiedMessage{
		Message:   domain.Message{ConversationID: convID, Timestamp: ts, HasTimestamp: true},
		Sentiment: sentiment,
		WordCount: words,
	}
}

func TestAnalyzer_Streaks(t *testing.T) {
	var messages []domain.ClassifiedMessage
	for _, day := range []int{0, 1, 2, 4, 5, 6, 7} {
		messages = append(messages, timedMsg("c", "Neutral", at(day, 10), 5))
	}
	// Second message on the first day of the long run.
	messages = append(messages, timedMsg("c", "Neutral", at(4, 15), 5))

	streaks := New(messages).Streaks(3)
	if len(streaks) != 2 {
		t.Fatalf("expected 2 streaks, got %d", len(streaks))
	}

	if streaks[0].LengthDays != 4 || streaks[1].LengthDays != 3 {
		t.Errorf("lengths = %d, %d; expected longest first: 4, 3",
			streaks[0].LengthDays, streaks[1].LengthDays)
	}
	if streaks[0].MessageCount != 5 {
		t.Errorf("long streak MessageCount = %d, expected 5", streaks[0].MessageCount)
	}
	if !streaks[1].Start.Equal(at(0, 0)) || !streaks[1].End.Equal(at(2, 0)) {
		t.Errorf("short streak range = %s to %s", streaks[1].Start, streaks[1].End)
	}
}

func TestAnalyzer_Streaks_MinDays(t *testing.T) {
	var messages []domain.ClassifiedMessage
	for _, day := range []int{0, 1, 3} {
		messages = append(messages, timedMsg("c", "Neutral", at(day, 10), 5))
	}

	if streaks := New(messages).Streaks(3); len(streaks) != 0 {
		t.Errorf("expected no streaks below the minimum, got %d", len(streaks))
	}
	if streaks := New(messages).Streaks(2); len(streaks) != 1 {
		t.Errorf("expected 1 streak with minimum 2, got %d", len(streaks))
	}
}

func TestAnalyzer_Streaks_NoTimestamps(t *testing.T) {
	messages := []domain.ClassifiedMessage{
		{Message: domain.Message{ConversationID: "c"}, Sentiment: "Neutral"},
	}
	if streaks := New(messages).Streaks(3); streaks != nil {
		t.Errorf("expected nil streaks, got %v", streaks)
	}
}

func TestAnalyzer_ActivityPatterns(t *testing.T) {
	messages := []domain.ClassifiedMessage{
		timedMsg("c", "Neutral", at(0, 9), 5),  // Monday 09
		timedMsg("c", "Neutral", at(0, 9), 5),  // Monday 09
		timedMsg("c", "Neutral", at(1, 14), 5), // Tuesday 14
	}

	patterns := New(messages).ActivityPatterns()

	if len(patterns.Hourly) != 2 {
		t.Fatalf("expected 2 hourly buckets, got %d", len(patterns.Hourly))
	}
	if patterns.Hourly[0].Hour != 9 || patterns.Hourly[0].Count != 2 {
		t.Errorf("hourly[0] = %+v", patterns.Hourly[0])
	}
	if len(patterns.PeakHours) == 0 || patterns.PeakHours[0] != 9 {
		t.Errorf("PeakHours = %v, expected 9 first", patterns.PeakHours)
	}

	if len(patterns.Daily) != 7 {
		t.Fatalf("expected 7 daily buckets, got %d", len(patterns.Daily))
	}
	if patterns.Daily[0].Day != time.Monday {
		t.Errorf("daily buckets should start on Monday, got %s", patterns.Daily[0].Day)
	}
	if len(patterns.BusiestDays) == 0 || patterns.BusiestDays[0] != time.Monday {
		t.Errorf("BusiestDays = %v, expected Monday first", patterns.BusiestDays)
	}
}

func TestAnalyzer_ActivityPatterns_Empty(t *testing.T) {
	patterns := New(nil).ActivityPatterns()
	if len(patterns.Hourly) != 0 || len(patterns.Daily) != 0 {
		t.Errorf("expected empty patterns, got %+v", patterns)
	}
}

func TestAnalyzer_PatternChanges(t *testing.T) {
	base := at(0, 10)
	messages := []domain.ClassifiedMessage{
		timedMsg("c", "Negative", base, 5),
		timedMsg("c", "Positive", base.Add(1*time.Minute), 5),
		timedMsg("c", "Positive", base.Add(2*time.Minute), 5),
	}

	changes := New(messages).PatternChanges()
	if len(changes) != 1 {
		t.Fatalf("expected 1 change, got %d", len(changes))
	}

	c := changes[0]
	if c.Type != "sentiment_shift" {
		t.Errorf("Type = %q", c.Type)
	}
	assertFloatNear(t, "Magnitude", 1.0, c.Magnitude)
	if !c.Timestamp.Equal(base.Add(1 * time.Minute)) {
		t.Errorf("Timestamp = %s", c.Timestamp)
	}
	// The moving average at the flagged point is exactly zero, which
	// reports as negative.
	if c.Direction != "negative" {
		t.Errorf("Direction = %q", c.Direction)
	}
}

func TestAnalyzer_PatternChanges_StableSeries(t *testing.T) {
	base := at(0, 10)
	var messages []domain.ClassifiedMessage
	for i := 0; i < 20; i++ {
		messages = append(messages, timedMsg("c", "Positive", base.Add(time.Duration(i)*time.Minute), 5))
	}

	if changes := New(messages).PatternChanges(); len(changes) != 0 {
		t.Errorf("expected no changes in a stable series, got %d", len(changes))
	}
}

func TestAnalyzer_EngagementScores(t *testing.T) {
	messages := []domain.ClassifiedMessage{
		timedMsg("a", "Neutral", at(0, 9), 10),
		timedMsg("a", "Neutral", at(0, 10), 30),
		timedMsg("b", "Neutral", at(0, 11), 20),
		timedMsg("a", "Neutral", at(1, 9), 10),
	}

	days := New(messages).EngagementScores()
	if len(days) != 2 {
		t.Fatalf("expected 2 days, got %d", len(days))
	}

	first := days[0]
	if first.MessageCount != 3 || first.ConversationCount != 2 {
		t.Errorf("day 0 = %+v", first)
	}
	assertFloatNear(t, "day 0 AvgWordCount", 20, first.AvgWordCount)
	// Day 0 is maximal in every component.
	assertFloatNear(t, "day 0 Score", 100, first.Score)

	second := days[1]
	// messages 1/3 * 40 + length 10/20 * 30 + conversations 1/2 * 30
	assertFloatNear(t, "day 1 Score", 100.0/3.0*0.4+15+15, second.Score)

	for _, d := range days {
		if d.Score < 0 || d.Score > 100 {
			t.Errorf("score out of range: %f", d.Score)
		}
	}
}

func TestAnalyzer_Summary(t *testing.T) {
	messages := []domain.ClassifiedMessage{
		timedMsg("c", "Neutral", at(0, 9), 5),
		timedMsg("c", "Neutral", at(2, 18), 5),
		{Message: domain.Message{ConversationID: "c"}, Sentiment: "Neutral"},
	}

	summary := New(messages).Summary(3)
	if !summary.DateRange.Start.Equal(at(0, 9)) || !summary.DateRange.End.Equal(at(2, 18)) {
		t.Errorf("DateRange = %+v", summary.DateRange)
	}
	if summary.DateRange.DurationDays != 2 {
		t.Errorf("DurationDays = %d, expected 2", summary.DateRange.DurationDays)
	}
}

func TestAnalyzer_Summary_Empty(t *testing.T) {
	summary := New(nil).Summary(3)
	if !summary.DateRange.Start.IsZero() {
		t.Errorf("expected zero DateRange, got %+v", summary.DateRange)
	}
	if summary.Streaks != nil || summary.PatternChanges != nil || summary.EngagementTrend != nil {
		t.Errorf("expected nil aggregates, got %+v", summary)
	}
}

func assertFloatNear(t *testing.T, name string, expected, actual float64) {
	t.Helper()
	if math.Abs(expected-actual) > 0.0001 {
		t.Errorf("%s: expected %.6f, got %.6f", name, expected, actual)
	}
}
