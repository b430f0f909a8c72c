// Package quality computes per-conversation aggregates: task completion,
// collaboration quality, turn metrics and flow patterns. Each function
// needs the conversation's fully classified messages; conversations are
// independent of each other and may be analyzed in parallel.
package quality

import (
	"regexp"
	"strings"

	"github.com/hermz580/convoscope/internal/classify"
	"github.com/hermz580/convoscope/internal/domain"
)

// Task completion statuses.
const (
	StatusCompleted  = "completed"
	StatusAbandoned  = "abandoned"
	StatusBlocked    = "blocked"
	StatusInProgress = "in_progress"
)

// Collaboration quality labels.
const (
	CollabHigh            = "high"
	CollabMedium          = "medium"
	CollabLow             = "low"
	CollabConfrontational = "confrontational"
)

// Response effectiveness labels.
const (
	EffectHighly      = "highly_effective"
	EffectEffective   = "effective"
	EffectPartial     = "partially_effective"
	EffectIneffective = "ineffective"
	EffectUnknown     = "unknown"
)

// Flow thresholds for adjacent message pairs.
const (
	quickResponseSeconds = 60
	longGapSeconds       = 3600
)

// Rules holds the static pattern tables for quality analysis.
type Rules struct {
	Completion    []classify.Category
	Collaboration []classify.Category
	Effectiveness []classify.Category
	Clarification *regexp.Regexp
	ToolUse       *regexp.Regexp
}

// DefaultRules returns the production quality tables.
func DefaultRules() Rules {
	return Rules{
		Completion: []classify.Category{
			{Name: StatusCompleted, Patterns: classify.MustPatterns(
				`\b(done|finished|completed|solved|fixed|built|created)\b`,
				`\b(works|working|success|accomplished)\b`,
				`\b(thank you|thanks|perfect|exactly what i needed)\b`,
				`✅|✓|☑`,
			)},
			{Name: StatusAbandoned, Patterns: classify.MustPatterns(
				`\b(give up|never mind|forget it|doesn't matter)\b`,
				`\b(not worth it|too complicated)\b`,
			)},
			{Name: StatusBlocked, Patterns: classify.MustPatterns(
				`\b(can't|won't|unable|impossible|blocked)\b`,
				`\b(limitation|restriction|not supported)\b`,
			)},
		},
		Collaboration: []classify.Category{
			{Name: CollabHigh, Patterns: classify.MustPatterns(
				`\b(let's|we can|together|collaborate|build on)\b`,
				`\b(great idea|love it|perfect|excellent suggestion)\b`,
				`\b(yes and|building on that|expanding)\b`,
			)},
			{Name: CollabMedium, Patterns: classify.MustPatterns(
				`\b(okay|sure|alright|that works)\b`,
				`\b(makes sense|i see|understood)\b`,
			)},
			{Name: CollabLow, Patterns: classify.MustPatterns(
				`\b(no|wrong|don't|not what i|missed the point)\b`,
				`\b(unclear|confused|doesn't make sense)\b`,
			)},
			{Name: CollabConfrontational, Patterns: classify.MustPatterns(
				`\b(you're wrong|that's stupid|terrible|useless)\b`,
				`\b(obviously|clearly you|don't you understand)\b`,
			)},
		},
		Effectiveness: []classify.Category{
			{Name: EffectHighly, Patterns: classify.MustPatterns(
				`\b(perfect|exactly|precisely what i needed)\b`,
				`\b(solved it|that worked|excellent)\b`,
			)},
			{Name: EffectEffective, Patterns: classify.MustPatterns(
				`\b(helpful|useful|good|works|thanks)\b`,
				`\b(that helps|makes sense|got it)\b`,
			)},
			{Name: EffectPartial, Patterns: classify.MustPatterns(
				`\b(close but|almost|partially|kind of)\b`,
				`\b(missing|need more|not quite)\b`,
			)},
			{Name: EffectIneffective, Patterns: classify.MustPatterns(
				`\b(didn't help|not useful|wrong|unhelpful)\b`,
				`\b(not what i asked|missed the point)\b`,
			)},
		},
		Clarification: regexp.MustCompile(`(?i)\b(clarify|explain|what do you mean|confused)\b`),
		ToolUse:       regexp.MustCompile(`(?i)\b(searching|fetching|analyzing|calculating)\b`),
	}
}

// Analyzer computes conversation-level quality aggregates.
type Analyzer struct {
	completion    *classify.Scorer
	collaboration *classify.Scorer
	effectiveness *classify.Scorer
	clarification *regexp.Regexp
	toolUse       *regexp.Regexp
}

// New creates an Analyzer over the given rule tables.
func New(rules Rules) *Analyzer {
	return &Analyzer{
		completion:    classify.NewScorer(rules.Completion),
		collaboration: classify.NewScorer(rules.Collaboration),
		effectiveness: classify.NewScorer(rules.Effectiveness),
		clarification: rules.Clarification,
		toolUse:       rules.ToolUse,
	}
}

// Default creates an Analyzer with the production tables.
func Default() *Analyzer {
	return New(DefaultRules())
}

// ConversationMetrics computes per-conversation counters. Averages are 0
// when a role is absent, never a division fault.
func (a *Analyzer) ConversationMetrics(messages []domain.ClassifiedMessage) domain.ConversationMetrics {
	var metrics domain.ConversationMetrics
	var userLengths, assistantLengths []int

	for _, m := range messages {
		switch {
		case m.IsUser():
			metrics.TurnCount++
			userLengths = append(userLengths, m.ContentLength)
			metrics.UserQuestions += strings.Count(m.Text, "?")
			if a.clarification.MatchString(m.Text) {
				metrics.ClarificationRequests++
			}
		case m.IsAssistant():
			assistantLengths = append(assistantLengths, m.ContentLength)
			metrics.AssistantCodeBlocks += strings.Count(m.Text, "```")
			if a.toolUse.MatchString(m.Text) {
				metrics.ToolUseMentions++
			}
		}
	}

	metrics.AvgUserLength = mean(userLengths)
	metrics.AvgAssistantLength = mean(assistantLengths)
	return metrics
}

// TaskCompletion scores the conversation's texts against the completion
// tables. Completed wins only when it outweighs abandonment and blockage
// combined; otherwise any abandonment evidence wins, then any blockage,
// then in_progress.
func (a *Analyzer) TaskCompletion(texts []string) domain.TaskCompletion {
	scores := a.completion.Scores(strings.Join(texts, " "))

	completed := a.completion.Score(scores, StatusCompleted)
	abandoned := a.completion.Score(scores, StatusAbandoned)
	blocked := a.completion.Score(scores, StatusBlocked)

	var status string
	switch {
	case completed > abandoned+blocked:
		status = StatusCompleted
	case abandoned > 0:
		status = StatusAbandoned
	case blocked > 0:
		status = StatusBlocked
	default:
		status = StatusInProgress
	}

	max, sum := 0, 0
	byName := make(map[string]int, len(scores))
	for i, name := range a.completion.Names() {
		byName[name] = scores[i]
		sum += scores[i]
		if scores[i] > max {
			max = scores[i]
		}
	}

	return domain.TaskCompletion{
		Status:     status,
		Confidence: float64(max) / float64(sum+1),
		Scores:     byName,
	}
}

// CollaborationQuality labels the conversation's tone. Per category it
// counts messages where any pattern matches. Confrontational evidence in
// more than two messages wins outright.
func (a *Analyzer) CollaborationQuality(messages []domain.ClassifiedMessage) string {
	counts := make([]int, len(a.collaboration.Names()))
	for _, m := range messages {
		for i, matched := range a.collaboration.Matches(m.Text) {
			if matched {
				counts[i]++
			}
		}
	}

	score := func(name string) int { return a.collaboration.Score(counts, name) }
	switch {
	case score(CollabConfrontational) > 2:
		return CollabConfrontational
	case score(CollabHigh) > score(CollabMedium)+score(CollabLow):
		return CollabHigh
	case score(CollabLow) > score(CollabHigh):
		return CollabLow
	default:
		return CollabMedium
	}
}

// ResponseEffectiveness judges an assistant reply by the user message that
// followed it. Without a follow-up there is nothing to judge.
func (a *Analyzer) ResponseEffectiveness(nextUserText string) domain.ResponseEffectiveness {
	if nextUserText == "" {
		return domain.ResponseEffectiveness{Effectiveness: EffectUnknown}
	}

	var scores []int
	for _, matched := range a.effectiveness.Matches(nextUserText) {
		if matched {
			scores = append(scores, 1)
		} else {
			scores = append(scores, 0)
		}
	}

	best, max := a.effectiveness.Best(scores)
	if max == 0 {
		return domain.ResponseEffectiveness{Effectiveness: EffectUnknown}
	}

	sum := 0
	for _, s := range scores {
		sum += s
	}
	return domain.ResponseEffectiveness{
		Effectiveness: best,
		Confidence:    float64(max) / float64(sum),
	}
}

// ConversationFlow counts adjacent-pair patterns. Consecutive same-role
// pairs are either interruptions (user) or monologues (anything else);
// the timing half is skipped for pairs missing a parseable timestamp.
func (a *Analyzer) ConversationFlow(messages []domain.ClassifiedMessage) domain.FlowMetrics {
	var flow domain.FlowMetrics

	for i := 1; i < len(messages); i++ {
		curr, prev := messages[i], messages[i-1]

		if curr.Role == prev.Role {
			if curr.IsUser() {
				flow.Interruptions++
			} else {
				flow.Monologues++
			}
		}

		if curr.HasTimestamp && prev.HasTimestamp {
			gap := curr.Timestamp.Sub(prev.Timestamp).Seconds()
			if gap < quickResponseSeconds {
				flow.QuickResponses++
			} else if gap > longGapSeconds {
				flow.LongGaps++
			}
		}
	}

	return flow
}

func mean(values []int) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0
	for _, v := range values {
		sum += v
	}
	return float64(sum) / float64(len(values))
}
