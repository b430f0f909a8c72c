package classify

import "regexp"

// TopicRule maps a topic label to the patterns that assign it.
type TopicRule struct {
	Name     string
	Patterns []*regexp.Regexp
}

// FailureRule is one assistant-failure category, pre-tagged with severity.
type FailureRule struct {
	Name     string
	Severity string
	Patterns []*regexp.Regexp
}

// Rules is the full static rule configuration for a Classifier. Tables are
// ordered; tie-breaks and topic enumeration follow declaration order.
type Rules struct {
	Topics     []TopicRule
	Sentiments []Category
	Failures   []FailureRule
}

// Sentiment labels. Urgent overrides every other category when it scores at
// all; Neutral is the fallback when nothing scores.
const (
	SentimentVeryPositive  = "Very Positive"
	SentimentPositive      = "Positive"
	SentimentNeutral       = "Neutral"
	SentimentNegative      = "Negative"
	SentimentVeryNegative  = "Very Negative"
	SentimentUrgent        = "Urgent"
	SentimentQuestioning   = "Questioning"
	SentimentCollaborative = "Collaborative"
)

// TopicGeneral is assigned when no topic pattern matches.
const TopicGeneral = "General"

// Failure severities.
const (
	SeverityLow    = "low"
	SeverityMedium = "medium"
	SeverityHigh   = "high"
)

// DefaultRules returns the production rule tables.
func DefaultRules() Rules {
	return Rules{
		Topics:     defaultTopics(),
		Sentiments: defaultSentiments(),
		Failures:   defaultFailures(),
	}
}

func defaultTopics() []TopicRule {
	return []TopicRule{
		{Name: "Technical/Coding", Patterns: MustPatterns(
			`\b(python|javascript|typescript|java|c\+\+|rust|go|ruby)\b`,
			`\b(code|function|class|method|api|endpoint|docker|kubernetes|git)\b`,
			`\b(debug|error|exception|stack trace|bug|fix|refactor)\b`,
			`\b(programming|development|software|script|algorithm)\b`,
			`\b(container|deployment|ci/cd|devops|infrastructure)\b`,
		)},
		{Name: "AI/ML", Patterns: MustPatterns(
			`\b(machine learning|neural network|deep learning|transformer)\b`,
			`\b(model|training|inference|embeddings|vector|llm|gpt)\b`,
			`\b(artificial intelligence|ai|ml|nlp|computer vision)\b`,
			`\b(huggingface|pytorch|tensorflow|langchain|openai)\b`,
			`\b(prompt|fine-?tun|dataset|optimization)\b`,
		)},
		{Name: "Healthcare", Patterns: MustPatterns(
			`\b(medical|healthcare|cardiac|hospital|clinic)\b`,
			`\b(doctor|physician|appointment|emergency|treatment)\b`,
			`\b(medication|prescription|diagnosis|symptoms)\b`,
			`\b(advocacy|congressional|representative)\b`,
		)},
		{Name: "Philosophy/Consciousness", Patterns: MustPatterns(
			`\b(consciousness|liberation|ethics|metaphysics)\b`,
			`\b(philosophy|wisdom|sacred|collective|interconnect)\b`,
			`\b(framework|sovereign|activation)\b`,
			`\b(mindfulness|awareness|presence|being)\b`,
		)},
		{Name: "Creative/Art", Patterns: MustPatterns(
			`\b(music|art|creative|generate|image|video|rap|freestyle)\b`,
			`\b(production|studio|design|composition|visual)\b`,
			`\b(dall-?e|midjourney|stable diffusion|comfyui)\b`,
			`\b(poetry|writing|storytelling|narrative)\b`,
		)},
		{Name: "Personal/Life", Patterns: MustPatterns(
			`\b(family|relationship|personal|feeling|emotion)\b`,
			`\b(christmas|holiday|vacation|travel)\b`,
			`\b(advice|guidance|support|help)\b`,
		)},
		{Name: "Infrastructure", Patterns: MustPatterns(
			`\b(server|deployment|infrastructure|docker|container)\b`,
			`\b(architecture|system design|optimization|scaling)\b`,
			`\b(database|postgres|mongodb|redis|vector db)\b`,
			`\b(nginx|apache|cloud|aws|azure|gcp)\b`,
		)},
		{Name: "Data Analysis", Patterns: MustPatterns(
			`\b(data|analysis|statistics|metrics|analytics)\b`,
			`\b(pandas|numpy|matplotlib|visualization)\b`,
			`\b(csv|excel|json|sql|query)\b`,
		)},
		{Name: "Documentation", Patterns: MustPatterns(
			`\b(documentation|docs|readme|guide|tutorial)\b`,
			`\b(explain|clarify|describe|outline)\b`,
			`\b(technical writing|specification|requirements)\b`,
		)},
		{Name: "Debugging", Patterns: MustPatterns(
			`\b(debug|troubleshoot|diagnose|investigate)\b`,
			`\b(error|exception|traceback|failing|broken)\b`,
			`\b(logs|logging|monitoring|observability)\b`,
		)},
		{Name: "Security/Privacy", Patterns: MustPatterns(
			`\b(security|privacy|encryption|authentication)\b`,
			`\b(vulnerability|exploit|breach|attack)\b`,
			`\b(gdpr|compliance|data protection)\b`,
		)},
	}
}

func defaultSentiments() []Category {
	return []Category{
		{Name: SentimentVeryPositive, Patterns: MustPatterns(
			`\b(amazing|excellent|perfect|brilliant|outstanding|fantastic)\b`,
			`\b(love it|absolutely|phenomenal|incredible|wonderful)\b`,
			`🔥|✨|💯|🎉|🚀|⭐`,
		)},
		{Name: SentimentPositive, Patterns: MustPatterns(
			`\b(great|good|nice|helpful|thanks|appreciate|useful)\b`,
			`\b(works|working|solved|fixed|better)\b`,
			`😊|👍|👌|✅|💪`,
		)},
		{Name: SentimentNeutral, Patterns: MustPatterns(
			`\b(okay|fine|alright|understood|noted|got it)\b`,
			`\b(interesting|see|makes sense)\b`,
		)},
		{Name: SentimentNegative, Patterns: MustPatterns(
			`\b(wrong|error|failed|broken|issue|problem)\b`,
			`\b(doesn't work|not working|frustrated|confused)\b`,
			`😞|👎|❌`,
		)},
		{Name: SentimentVeryNegative, Patterns: MustPatterns(
			`\b(terrible|horrible|awful|useless|disaster|catastrophe)\b`,
			`\b(hate|angry|furious|completely broken)\b`,
			`😠|💔|😡|🤬`,
		)},
		{Name: SentimentUrgent, Patterns: MustPatterns(
			`\b(urgent|emergency|asap|immediately|critical|now|help)\b`,
			`\b(deadline|time-sensitive|rush|quickly)\b`,
			`!!|!!!|⚠️|🚨|‼️`,
		)},
		{Name: SentimentQuestioning, Patterns: MustPatterns(
			`\b(why|how|what|when|where|confused|unclear)\b`,
			`\b(can you|could you|would you|please explain)\b`,
			`❓|🤔`,
		)},
		{Name: SentimentCollaborative, Patterns: MustPatterns(
			`\b(let's|we can|together|collaborate|partnership)\b`,
			`\b(team|work with|joint|cooperative)\b`,
			`🤝|💫`,
		)},
	}
}

func defaultFailures() []FailureRule {
	return []FailureRule{
		{Name: "Hallucination", Severity: SeverityHigh, Patterns: MustPatterns(
			`\b(that's not true|incorrect|wrong|didn't say|made up)\b`,
			`\b(hallucinating|fabricated|inaccurate|false)\b`,
			`\b(never said|not what i|completely wrong)\b`,
		)},
		{Name: "Refusal (Unnecessary)", Severity: SeverityMedium, Patterns: MustPatterns(
			`\b(won't help|can't assist|unable to|against guidelines)\b`,
			`\b(safety|harmful|inappropriate|cannot provide)\b`,
			`\b(not allowed|prohibited|restricted)\b`,
		)},
		{Name: "Formatting Issues", Severity: SeverityLow, Patterns: MustPatterns(
			`\b(formatting|markdown|broken|display|render)\b`,
			`\b(code block|syntax|structure|layout)\b`,
		)},
		{Name: "Repetition", Severity: SeverityMedium, Patterns: MustPatterns(
			`\b(repeating|said that already|again|duplicate)\b`,
			`\b(circular|loop|same thing|redundant)\b`,
		)},
		{Name: "Misunderstanding", Severity: SeverityMedium, Patterns: MustPatterns(
			`\b(didn't understand|misunderstood|confused|clarify)\b`,
			`\b(what i meant|not what i asked|missed the point)\b`,
		)},
		{Name: "Performance Theater", Severity: SeverityLow, Patterns: MustPatterns(
			`\b(too formal|corporate speak|hedging|verbose)\b`,
			`\b(unnecessary|over-explaining|preamble)\b`,
			`\b(cut the|just answer|get to the point)\b`,
		)},
		{Name: "Tool Misuse", Severity: SeverityHigh, Patterns: MustPatterns(
			`\b(wrong tool|should have searched|didn't search)\b`,
			`\b(tool error|failed to fetch|api error)\b`,
			`\b(why didn't you|forgot to use)\b`,
		)},
		{Name: "Context Loss", Severity: SeverityHigh, Patterns: MustPatterns(
			`\b(forgot|lost context|earlier conversation|remember)\b`,
			`\b(previous|before|you said|we discussed)\b`,
			`\b(already told you|keep forgetting)\b`,
		)},
		{Name: "Accuracy Error", Severity: SeverityHigh, Patterns: MustPatterns(
			`\b(factually wrong|incorrect information|outdated)\b`,
			`\b(not accurate|misinformation|error in)\b`,
		)},
		{Name: "Incomplete Response", Severity: SeverityMedium, Patterns: MustPatterns(
			`\b(didn't finish|cut off|incomplete|partial)\b`,
			`\b(where's the rest|finish this|complete)\b`,
		)},
		{Name: "Ignored Instructions", Severity: SeverityHigh, Patterns: MustPatterns(
			`\b(asked you not to|told you to|ignored|didn't follow)\b`,
			`\b(specifically said|explicitly requested)\b`,
		)},
	}
}
