// Package temporal computes corpus-wide time-series aggregates: activity
// buckets, streaks, moving-average pattern changes and engagement scoring.
// An Analyzer needs the entire classified corpus up front; moving averages
// and streaks are inherently sequential over sorted time.
package temporal

import (
	"sort"
	"strings"
	"time"

	"github.com/hermz580/convoscope/internal/domain"
)

const (
	// DefaultMinStreakDays is the shortest run of consecutive active days
	// reported as a streak.
	DefaultMinStreakDays = 3

	// movingAverageWindow is the trailing sample count for the sentiment
	// moving average.
	movingAverageWindow = 10

	// shiftThreshold is the minimum absolute moving-average delta reported
	// as a pattern change.
	shiftThreshold = 0.5
)

// Analyzer computes temporal aggregates over one classified corpus.
type Analyzer struct {
	messages []domain.ClassifiedMessage
}

// New creates an Analyzer over the full classified corpus.
func New(messages []domain.ClassifiedMessage) *Analyzer {
	return &Analyzer{messages: messages}
}

// timestamped returns the messages carrying a usable timestamp, sorted
// ascending. Messages without one simply don't participate in time-based
// aggregation.
func (a *Analyzer) timestamped() []domain.ClassifiedMessage {
	var out []domain.ClassifiedMessage
	for _, m := range a.messages {
		if m.HasTimestamp {
			out = append(out, m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.Before(out[j].Timestamp)
	})
	return out
}

// ActivityPatterns buckets messages by hour of day and Monday-first
// weekday, returning the top and bottom three buckets plus the full
// distributions.
func (a *Analyzer) ActivityPatterns() domain.ActivityPatterns {
	var patterns domain.ActivityPatterns

	hourCounts := make(map[int]int)
	dayCounts := make(map[time.Weekday]int)
	for _, m := range a.messages {
		if !m.HasTimestamp {
			continue
		}
		hourCounts[m.Timestamp.Hour()]++
		dayCounts[m.Timestamp.Weekday()]++
	}
	if len(hourCounts) == 0 {
		return patterns
	}

	hours := make([]int, 0, len(hourCounts))
	for h := range hourCounts {
		hours = append(hours, h)
	}
	sort.Ints(hours)
	for _, h := range hours {
		patterns.Hourly = append(patterns.Hourly, domain.HourBucket{Hour: h, Count: hourCounts[h]})
	}
	patterns.PeakHours = topHours(patterns.Hourly, 3, true)
	patterns.QuietHours = topHours(patterns.Hourly, 3, false)

	for _, d := range mondayFirst() {
		patterns.Daily = append(patterns.Daily, domain.DayBucket{Day: d, Count: dayCounts[d]})
	}
	patterns.BusiestDays = topDays(patterns.Daily, 3, true)
	patterns.QuietestDays = topDays(patterns.Daily, 3, false)

	return patterns
}

// Streaks partitions the distinct active calendar dates into maximal runs
// of consecutive days and keeps runs at least minDays long. Each streak's
// message count covers the inclusive date range. Results are sorted
// longest first; equal lengths stay in chronological order.
func (a *Analyzer) Streaks(minDays int) []domain.Streak {
	if minDays < 1 {
		minDays = DefaultMinStreakDays
	}

	dateCounts := make(map[time.Time]int)
	for _, m := range a.messages {
		if m.HasTimestamp {
			dateCounts[dateOf(m.Timestamp)]++
		}
	}
	if len(dateCounts) == 0 {
		return nil
	}

	dates := make([]time.Time, 0, len(dateCounts))
	for d := range dateCounts {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	var streaks []domain.Streak
	runStart := 0
	flush := func(start, end int) {
		length := end - start + 1
		if length < minDays {
			return
		}
		count := 0
		for i := start; i <= end; i++ {
			count += dateCounts[dates[i]]
		}
		streaks = append(streaks, domain.Streak{
			Start:        dates[start],
			End:          dates[end],
			LengthDays:   length,
			MessageCount: count,
		})
	}
	for i := 1; i < len(dates); i++ {
		if !dates[i].Equal(dates[i-1].AddDate(0, 0, 1)) {
			flush(runStart, i-1)
			runStart = i
		}
	}
	flush(runStart, len(dates)-1)

	sort.SliceStable(streaks, func(i, j int) bool {
		return streaks[i].LengthDays > streaks[j].LengthDays
	})
	return streaks
}

// PatternChanges scores each message ±1 by sentiment polarity, smooths the
// series with a trailing moving average and flags every consecutive delta
// above the threshold. Direction reflects the sign of the moving average
// at the flagged point, not the sign of the delta.
func (a *Analyzer) PatternChanges() []domain.PatternChange {
	messages := a.timestamped()
	if len(messages) < 2 {
		return nil
	}

	ma := make([]float64, len(messages))
	window := make([]float64, 0, movingAverageWindow)
	sum := 0.0
	for i, m := range messages {
		score := sentimentScore(m.Sentiment)
		window = append(window, score)
		sum += score
		if len(window) > movingAverageWindow {
			sum -= window[0]
			window = window[1:]
		}
		ma[i] = sum / float64(len(window))
	}

	var changes []domain.PatternChange
	for i := 1; i < len(ma); i++ {
		delta := ma[i] - ma[i-1]
		if delta < 0 {
			delta = -delta
		}
		if delta <= shiftThreshold {
			continue
		}
		direction := "negative"
		if ma[i] > 0 {
			direction = "positive"
		}
		changes = append(changes, domain.PatternChange{
			Timestamp: messages[i].Timestamp,
			Type:      "sentiment_shift",
			Magnitude: delta,
			Direction: direction,
		})
	}
	return changes
}

// EngagementScores combines per-day message count, mean message length and
// distinct conversation count into a [0,100] composite. Each component is
// normalized by its corpus-wide maximum, so the day maximal in all three
// scores exactly 100.
func (a *Analyzer) EngagementScores() []domain.EngagementDay {
	type dayAgg struct {
		messages      int
		words         int
		conversations map[string]struct{}
	}
	byDay := make(map[time.Time]*dayAgg)
	for _, m := range a.messages {
		if !m.HasTimestamp {
			continue
		}
		d := dateOf(m.Timestamp)
		agg := byDay[d]
		if agg == nil {
			agg = &dayAgg{conversations: make(map[string]struct{})}
			byDay[d] = agg
		}
		agg.messages++
		agg.words += m.WordCount
		agg.conversations[m.ConversationID] = struct{}{}
	}
	if len(byDay) == 0 {
		return nil
	}

	days := make([]domain.EngagementDay, 0, len(byDay))
	var maxMessages, maxConversations int
	var maxLength float64
	for d, agg := range byDay {
		day := domain.EngagementDay{
			Date:              d,
			MessageCount:      agg.messages,
			AvgWordCount:      float64(agg.words) / float64(agg.messages),
			ConversationCount: len(agg.conversations),
		}
		if day.MessageCount > maxMessages {
			maxMessages = day.MessageCount
		}
		if day.AvgWordCount > maxLength {
			maxLength = day.AvgWordCount
		}
		if day.ConversationCount > maxConversations {
			maxConversations = day.ConversationCount
		}
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Date.Before(days[j].Date) })

	for i := range days {
		score := 0.0
		if maxMessages > 0 {
			score += float64(days[i].MessageCount) / float64(maxMessages) * 0.4
		}
		if maxLength > 0 {
			score += days[i].AvgWordCount / maxLength * 0.3
		}
		if maxConversations > 0 {
			score += float64(days[i].ConversationCount) / float64(maxConversations) * 0.3
		}
		days[i].Score = score * 100
	}
	return days
}

// Summary composes the full temporal aggregate handed to reporting.
func (a *Analyzer) Summary(minStreakDays int) domain.TemporalSummary {
	summary := domain.TemporalSummary{
		Activity:        a.ActivityPatterns(),
		Streaks:         a.Streaks(minStreakDays),
		PatternChanges:  a.PatternChanges(),
		EngagementTrend: a.EngagementScores(),
	}

	if timestamped := a.timestamped(); len(timestamped) > 0 {
		start := timestamped[0].Timestamp
		end := timestamped[len(timestamped)-1].Timestamp
		summary.DateRange = domain.DateRange{
			Start:        start,
			End:          end,
			DurationDays: int(end.Sub(start).Hours() / 24),
		}
	}
	return summary
}

func sentimentScore(sentiment string) float64 {
	switch {
	case strings.Contains(sentiment, "Positive"):
		return 1
	case strings.Contains(sentiment, "Negative"):
		return -1
	default:
		return 0
	}
}

func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func mondayFirst() []time.Weekday {
	return []time.Weekday{
		time.Monday, time.Tuesday, time.Wednesday, time.Thursday,
		time.Friday, time.Saturday, time.Sunday,
	}
}

func topHours(buckets []domain.HourBucket, n int, largest bool) []int {
	sorted := append([]domain.HourBucket(nil), buckets...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if largest {
			return sorted[i].Count > sorted[j].Count
		}
		return sorted[i].Count < sorted[j].Count
	})
	if n > len(sorted) {
		n = len(sorted)
	}
	out := make([]int, n)
	for i := 0; i < n; i++ {
		out[i] = sorted[i].Hour
	}
	return out
}

func topDays(buckets []domain.DayBucket, n int, largest bool) []time.Weekday {
	sorted := append([]domain.DayBucket(nil), buckets...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if largest {
			return sorted[i].Count > sorted[j].Count
		}
		return sorted[i].Count < sorted[j].Count
	})
	if n > len(sorted) {
		n = len(sorted)
	}
	out := make([]time.Weekday, n)
	for i := 0; i < n; i++ {
		out[i] = sorted[i].Day
	}
	return out
}
