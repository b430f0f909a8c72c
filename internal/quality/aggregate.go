package quality

import (
	"sync"

	"github.com/hermz580/convoscope/internal/domain"
)

// ConversationQuality bundles every per-conversation aggregate.
type ConversationQuality struct {
	ConversationID   string
	ConversationName string
	Metrics          domain.ConversationMetrics
	Flow             domain.FlowMetrics
	Collaboration    string
	Task             domain.TaskCompletion
	Responses        []domain.ResponseEffectiveness
}

// AnalyzeConversation computes all quality aggregates for one
// conversation's classified messages.
func (a *Analyzer) AnalyzeConversation(messages []domain.ClassifiedMessage) ConversationQuality {
	q := ConversationQuality{
		Metrics:       a.ConversationMetrics(messages),
		Flow:          a.ConversationFlow(messages),
		Collaboration: a.CollaborationQuality(messages),
		Responses:     a.responseEffectiveness(messages),
	}
	if len(messages) > 0 {
		q.ConversationID = messages[0].ConversationID
		q.ConversationName = messages[0].ConversationName
	}

	texts := make([]string, len(messages))
	for i, m := range messages {
		texts[i] = m.Text
	}
	q.Task = a.TaskCompletion(texts)
	return q
}

// responseEffectiveness judges each assistant message by the next user
// message in the conversation, one entry per assistant message.
func (a *Analyzer) responseEffectiveness(messages []domain.ClassifiedMessage) []domain.ResponseEffectiveness {
	var responses []domain.ResponseEffectiveness
	for i, m := range messages {
		if !m.IsAssistant() {
			continue
		}
		var next string
		for _, follow := range messages[i+1:] {
			if follow.IsUser() {
				next = follow.Text
				break
			}
		}
		responses = append(responses, a.ResponseEffectiveness(next))
	}
	return responses
}

// AnalyzeAll groups the corpus by conversation in first-seen order and
// analyzes conversations in parallel. Each conversation is a barrier: all
// of its messages are grouped before any aggregate runs.
func (a *Analyzer) AnalyzeAll(messages []domain.ClassifiedMessage) []ConversationQuality {
	var order []string
	groups := make(map[string][]domain.ClassifiedMessage)
	for _, m := range messages {
		if _, seen := groups[m.ConversationID]; !seen {
			order = append(order, m.ConversationID)
		}
		groups[m.ConversationID] = append(groups[m.ConversationID], m)
	}

	results := make([]ConversationQuality, len(order))
	var wg sync.WaitGroup
	for i, id := range order {
		wg.Add(1)
		go func(i int, msgs []domain.ClassifiedMessage) {
			defer wg.Done()
			results[i] = a.AnalyzeConversation(msgs)
		}(i, groups[id])
	}
	wg.Wait()
	return results
}
