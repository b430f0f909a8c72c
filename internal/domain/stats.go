package domain

// CorpusStats holds summary statistics across the whole classified corpus.
type CorpusStats struct {
	TotalConversations    int
	TotalMessages         int
	UserMessages          int
	AssistantMessages     int
	AvgMessageLength      float64
	AvgWordsPerMessage    float64
	MessagesWithFailures  int
	FailureRatePercent    float64
	TopicDistribution     map[string]int
	SentimentDistribution map[string]int
	FailureDistribution   map[string]int
}

// ComputeCorpusStats derives summary statistics from classified messages.
// All divisions are zero-safe: rates over an empty corpus are 0.
func ComputeCorpusStats(messages []ClassifiedMessage) CorpusStats {
	stats := CorpusStats{
		TopicDistribution:     make(map[string]int),
		SentimentDistribution: make(map[string]int),
		FailureDistribution:   make(map[string]int),
	}

	conversations := make(map[string]struct{})
	var totalLength, totalWords int

	for _, m := range messages {
		conversations[m.ConversationID] = struct{}{}
		stats.TotalMessages++
		totalLength += m.ContentLength
		totalWords += m.WordCount

		if m.IsUser() {
			stats.UserMessages++
		}
		if m.IsAssistant() {
			stats.AssistantMessages++
		}
		if m.HasFailure() {
			stats.MessagesWithFailures++
		}

		for _, topic := range m.Topics {
			stats.TopicDistribution[topic]++
		}
		stats.SentimentDistribution[m.Sentiment]++
		for _, failure := range m.Failures {
			stats.FailureDistribution[failure]++
		}
	}

	stats.TotalConversations = len(conversations)

	if stats.TotalMessages > 0 {
		stats.AvgMessageLength = float64(totalLength) / float64(stats.TotalMessages)
		stats.AvgWordsPerMessage = float64(totalWords) / float64(stats.TotalMessages)
	}
	if stats.AssistantMessages > 0 {
		stats.FailureRatePercent = float64(stats.MessagesWithFailures) / float64(stats.AssistantMessages) * 100
	}

	return stats
}
