// Package classify assigns topic, sentiment and failure labels to message
// text using static pattern tables. All classification is pure: the same
// text and the same tables always produce the same labels, so callers may
// evaluate messages in any order or in parallel.
package classify

// Classifier holds compiled rule tables. Construct once, share freely.
type Classifier struct {
	topics     []TopicRule
	sentiments *Scorer
	failures   []FailureRule
}

// New creates a Classifier over the given rule tables. Tests inject smaller
// tables; production code uses DefaultRules.
func New(rules Rules) *Classifier {
	return &Classifier{
		topics:     rules.Topics,
		sentiments: NewScorer(rules.Sentiments),
		failures:   rules.Failures,
	}
}

// Default creates a Classifier with the production rule tables.
func Default() *Classifier {
	return New(DefaultRules())
}

// Topics returns every topic with at least one matching pattern, in table
// order. Never empty: falls back to General.
func (c *Classifier) Topics(text string) []string {
	var detected []string
	for _, topic := range c.topics {
		for _, p := range topic.Patterns {
			if p.MatchString(text) {
				detected = append(detected, topic.Name)
				break
			}
		}
	}
	if len(detected) == 0 {
		return []string{TopicGeneral}
	}
	return detected
}

// Sentiment returns exactly one sentiment label. Any Urgent evidence wins
// outright; otherwise the highest-scoring category wins with ties broken by
// table order, and Neutral is returned when nothing scores.
func (c *Classifier) Sentiment(text string) string {
	scores := c.sentiments.Scores(text)
	if c.sentiments.Score(scores, SentimentUrgent) > 0 {
		return SentimentUrgent
	}
	best, score := c.sentiments.Best(scores)
	if score == 0 {
		return SentimentNeutral
	}
	return best
}

// Failures returns the failure categories evidenced in text together with a
// parallel slice of severities. Callers are responsible for only invoking
// this on assistant-authored text; the categories describe model behavior.
func (c *Classifier) Failures(text string) (labels []string, severities []string) {
	for _, failure := range c.failures {
		for _, p := range failure.Patterns {
			if p.MatchString(text) {
				labels = append(labels, failure.Name)
				severities = append(severities, failure.Severity)
				break
			}
		}
	}
	return labels, severities
}
