package classify

import "regexp"

// Category is one entry of an ordered scoring table: a label plus the
// patterns that count as evidence for it.
type Category struct {
	Name     string
	Patterns []*regexp.Regexp
}

// Scorer scores text against an ordered list of categories. Order matters:
// Best breaks ties by declaration order, so the same table always produces
// the same answer.
type Scorer struct {
	categories []Category
}

// NewScorer creates a scorer over the given ordered categories.
func NewScorer(categories []Category) *Scorer {
	return &Scorer{categories: categories}
}

// Names returns the category labels in declaration order.
func (s *Scorer) Names() []string {
	names := make([]string, len(s.categories))
	for i, c := range s.categories {
		names[i] = c.Name
	}
	return names
}

// Scores returns, per category, the total number of pattern matches in text.
func (s *Scorer) Scores(text string) []int {
	scores := make([]int, len(s.categories))
	for i, c := range s.categories {
		for _, p := range c.Patterns {
			scores[i] += len(p.FindAllStringIndex(text, -1))
		}
	}
	return scores
}

// Matches returns, per category, whether any of its patterns matches text.
func (s *Scorer) Matches(text string) []bool {
	matched := make([]bool, len(s.categories))
	for i, c := range s.categories {
		for _, p := range c.Patterns {
			if p.MatchString(text) {
				matched[i] = true
				break
			}
		}
	}
	return matched
}

// Score returns the score for a single named category, 0 if unknown.
func (s *Scorer) Score(scores []int, name string) int {
	for i, c := range s.categories {
		if c.Name == name {
			return scores[i]
		}
	}
	return 0
}

// Best returns the category with the strictly highest score. Ties go to the
// earliest declared category, matching how the tables are enumerated.
func (s *Scorer) Best(scores []int) (string, int) {
	if len(scores) == 0 {
		return "", 0
	}
	best := 0
	for i := 1; i < len(scores); i++ {
		if scores[i] > scores[best] {
			best = i
		}
	}
	return s.categories[best].Name, scores[best]
}

// MustPatterns compiles the given expressions case-insensitively and panics
// on failure. Rule tables are static, so a bad pattern is a programmer error.
func MustPatterns(exprs ...string) []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, len(exprs))
	for i, expr := range exprs {
		patterns[i] = regexp.MustCompile(`(?i)` + expr)
	}
	return patterns
}
