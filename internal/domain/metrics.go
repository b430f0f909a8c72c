package domain

import "time"

// ConversationMetrics holds per-conversation counters computed on demand.
type ConversationMetrics struct {
	TurnCount             int
	UserQuestions         int
	AssistantCodeBlocks   int
	ClarificationRequests int
	ToolUseMentions       int
	AvgUserLength         float64
	AvgAssistantLength    float64
}

// TaskCompletion is the outcome of scoring a conversation's texts against
// the completion/abandonment/blockage tables.
type TaskCompletion struct {
	Status     string
	Confidence float64
	Scores     map[string]int
}

// FlowMetrics counts adjacent-message-pair patterns within one conversation.
type FlowMetrics struct {
	Interruptions  int
	Monologues     int
	QuickResponses int
	LongGaps       int
}

// ResponseEffectiveness judges an assistant reply by the user message that
// followed it.
type ResponseEffectiveness struct {
	Effectiveness string
	Confidence    float64
}

// Streak is a maximal run of consecutive active calendar dates.
type Streak struct {
	Start        time.Time
	End          time.Time
	LengthDays   int
	MessageCount int
}

// PatternChange marks a shift in the rolling sentiment moving average.
type PatternChange struct {
	Timestamp time.Time
	Type      string
	Magnitude float64
	Direction string
}

// DateRange bounds the corpus in time.
type DateRange struct {
	Start        time.Time
	End          time.Time
	DurationDays int
}

// HourBucket is one hour-of-day activity bucket.
type HourBucket struct {
	Hour  int
	Count int
}

// DayBucket is one weekday activity bucket, Monday first.
type DayBucket struct {
	Day   time.Weekday
	Count int
}

// ActivityPatterns describes when messages happen.
type ActivityPatterns struct {
	PeakHours    []int
	QuietHours   []int
	Hourly       []HourBucket
	BusiestDays  []time.Weekday
	QuietestDays []time.Weekday
	Daily        []DayBucket
}

// EngagementDay is a daily engagement composite in [0,100].
type EngagementDay struct {
	Date              time.Time
	MessageCount      int
	AvgWordCount      float64
	ConversationCount int
	Score             float64
}

// TemporalSummary is the single aggregate handed to reporting collaborators.
type TemporalSummary struct {
	DateRange       DateRange
	Activity        ActivityPatterns
	Streaks         []Streak
	PatternChanges  []PatternChange
	EngagementTrend []EngagementDay
}
