// Package report renders analysis results as markdown text. It only builds
// strings; callers decide where the text goes and how it is displayed.
package report

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/hermz580/convoscope/internal/domain"
	"github.com/hermz580/convoscope/internal/quality"
)

// Summary renders the executive summary for the corpus.
func Summary(stats domain.CorpusStats) string {
	var b strings.Builder

	b.WriteString("# Conversation Analysis Summary\n\n")
	b.WriteString("## Key Metrics\n\n")
	fmt.Fprintf(&b, "- Total conversations: %d\n", stats.TotalConversations)
	fmt.Fprintf(&b, "- Total messages: %d\n", stats.TotalMessages)
	fmt.Fprintf(&b, "- User messages: %d\n", stats.UserMessages)
	fmt.Fprintf(&b, "- Assistant messages: %d\n", stats.AssistantMessages)
	fmt.Fprintf(&b, "- Avg message length: %.1f characters\n", stats.AvgMessageLength)
	fmt.Fprintf(&b, "- Avg words per message: %.1f\n", stats.AvgWordsPerMessage)

	b.WriteString("\n## Top Topics\n\n")
	for _, e := range sortedByCount(stats.TopicDistribution, 10) {
		fmt.Fprintf(&b, "- %s: %d\n", e.name, e.count)
	}

	b.WriteString("\n## Sentiment\n\n")
	for _, e := range sortedByCount(stats.SentimentDistribution, 0) {
		pct := 0.0
		if stats.TotalMessages > 0 {
			pct = float64(e.count) / float64(stats.TotalMessages) * 100
		}
		fmt.Fprintf(&b, "- %s: %d (%.1f%%)\n", e.name, e.count, pct)
	}

	b.WriteString("\n## Model Performance\n\n")
	fmt.Fprintf(&b, "- Messages with failures: %d\n", stats.MessagesWithFailures)
	fmt.Fprintf(&b, "- Failure rate: %.1f%%\n", stats.FailureRatePercent)
	if len(stats.FailureDistribution) > 0 {
		b.WriteString("\nTop failure types:\n\n")
		for _, e := range sortedByCount(stats.FailureDistribution, 5) {
			fmt.Fprintf(&b, "- %s: %d\n", e.name, e.count)
		}
	}

	return b.String()
}

// Temporal renders the temporal evolution report.
func Temporal(summary domain.TemporalSummary) string {
	var b strings.Builder

	b.WriteString("# Temporal Evolution Report\n\n")
	if !summary.DateRange.Start.IsZero() {
		fmt.Fprintf(&b, "Analysis period: %s to %s (%d days)\n\n",
			summary.DateRange.Start.Format("2006-01-02"),
			summary.DateRange.End.Format("2006-01-02"),
			summary.DateRange.DurationDays)
	}

	b.WriteString("## Activity Patterns\n\n")
	if len(summary.Activity.PeakHours) > 0 {
		fmt.Fprintf(&b, "- Peak hours: %s\n", joinHours(summary.Activity.PeakHours))
		fmt.Fprintf(&b, "- Quiet hours: %s\n", joinHours(summary.Activity.QuietHours))
	}
	if len(summary.Activity.BusiestDays) > 0 {
		fmt.Fprintf(&b, "- Busiest days: %s\n", joinDays(summary.Activity.BusiestDays))
		fmt.Fprintf(&b, "- Quietest days: %s\n", joinDays(summary.Activity.QuietestDays))
	}

	if len(summary.Streaks) > 0 {
		b.WriteString("\n## Conversation Streaks\n\n")
		for i, s := range summary.Streaks {
			if i == 5 {
				break
			}
			fmt.Fprintf(&b, "%d. %s to %s — %d days, %d messages\n",
				i+1, s.Start.Format("2006-01-02"), s.End.Format("2006-01-02"),
				s.LengthDays, s.MessageCount)
		}
	}

	if len(summary.PatternChanges) > 0 {
		b.WriteString("\n## Significant Pattern Changes\n\n")
		for i, c := range summary.PatternChanges {
			if i == 10 {
				break
			}
			fmt.Fprintf(&b, "- %s: %s (%s, magnitude %.2f)\n",
				c.Timestamp.Format("2006-01-02 15:04"), c.Type, c.Direction, c.Magnitude)
		}
	}

	if len(summary.EngagementTrend) > 0 {
		b.WriteString("\n## Engagement\n\n")
		var total float64
		peak := summary.EngagementTrend[0]
		for _, d := range summary.EngagementTrend {
			total += d.Score
			if d.Score > peak.Score {
				peak = d
			}
		}
		fmt.Fprintf(&b, "- Active days: %d\n", len(summary.EngagementTrend))
		fmt.Fprintf(&b, "- Average engagement: %.1f\n", total/float64(len(summary.EngagementTrend)))
		fmt.Fprintf(&b, "- Peak day: %s (%.1f)\n", peak.Date.Format("2006-01-02"), peak.Score)
	}

	return b.String()
}

// Quality renders the conversation quality report.
func Quality(qualities []quality.ConversationQuality) string {
	var b strings.Builder

	b.WriteString("# Conversation Quality Report\n\n")
	if len(qualities) == 0 {
		b.WriteString("No conversations analyzed.\n")
		return b.String()
	}

	collab := make(map[string]int)
	tasks := make(map[string]int)
	responses := make(map[string]int)
	var turns, questions, codeBlocks int
	for _, q := range qualities {
		collab[q.Collaboration]++
		tasks[q.Task.Status]++
		for _, r := range q.Responses {
			responses[r.Effectiveness]++
		}
		turns += q.Metrics.TurnCount
		questions += q.Metrics.UserQuestions
		codeBlocks += q.Metrics.AssistantCodeBlocks
	}
	n := float64(len(qualities))

	b.WriteString("## Collaboration Quality\n\n")
	for _, e := range sortedByCount(collab, 0) {
		fmt.Fprintf(&b, "- %s: %d conversations (%.1f%%)\n", e.name, e.count, float64(e.count)/n*100)
	}

	b.WriteString("\n## Task Completion\n\n")
	for _, e := range sortedByCount(tasks, 0) {
		fmt.Fprintf(&b, "- %s: %d conversations (%.1f%%)\n", e.name, e.count, float64(e.count)/n*100)
	}

	if len(responses) > 0 {
		b.WriteString("\n## Response Effectiveness\n\n")
		for _, e := range sortedByCount(responses, 0) {
			fmt.Fprintf(&b, "- %s: %d responses\n", e.name, e.count)
		}
	}

	b.WriteString("\n## Averages per Conversation\n\n")
	fmt.Fprintf(&b, "- Turns: %.1f\n", float64(turns)/n)
	fmt.Fprintf(&b, "- Questions: %.1f\n", float64(questions)/n)
	fmt.Fprintf(&b, "- Code blocks: %.1f\n", float64(codeBlocks)/n)

	return b.String()
}

type distEntry struct {
	name  string
	count int
}

// sortedByCount orders a distribution by count descending, name ascending
// for ties, truncated to limit when limit > 0.
func sortedByCount(dist map[string]int, limit int) []distEntry {
	entries := make([]distEntry, 0, len(dist))
	for name, count := range dist {
		entries = append(entries, distEntry{name, count})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].count != entries[j].count {
			return entries[i].count > entries[j].count
		}
		return entries[i].name < entries[j].name
	})
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries
}

func joinHours(hours []int) string {
	parts := make([]string, len(hours))
	for i, h := range hours {
		parts[i] = fmt.Sprintf("%02d:00", h)
	}
	return strings.Join(parts, ", ")
}

func joinDays(days []time.Weekday) string {
	parts := make([]string, len(days))
	for i, d := range days {
		parts[i] = d.String()
	}
	return strings.Join(parts, ", ")
}
