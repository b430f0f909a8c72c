// Package privacy implements rule-based PII redaction and consistent
// pseudonymization of sensitive entities. Redaction is one-way: there is no
// way to recover the original text from a redacted preview.
package privacy

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"regexp"
	"strings"
)

// PIIRule matches personally identifiable information. Matches are replaced
// with an opaque [TYPE_REDACTED] token.
type PIIRule struct {
	Type    string
	Pattern *regexp.Regexp
}

// EntityRule matches sensitive entities such as names. Matches are replaced
// with [TYPE_<hash8>] so that the same entity maps to the same token across
// the whole corpus without being reversible.
type EntityRule struct {
	Type    string
	Pattern *regexp.Regexp
}

// Redactor applies an ordered pipeline of redaction stages. The PII stage
// runs to completion before the entity stage; entity rules see the already
// partially-redacted text. That ordering is a contract, not an accident:
// entity patterns are broad and would otherwise swallow unredacted PII.
type Redactor struct {
	enabled  bool
	pii      []PIIRule
	entities []EntityRule
}

// New creates a Redactor over the given rule tables.
func New(pii []PIIRule, entities []EntityRule) *Redactor {
	return &Redactor{enabled: true, pii: pii, entities: entities}
}

// Default creates a Redactor with the production rule tables.
func Default() *Redactor {
	return New(DefaultPIIRules(), DefaultEntityRules())
}

// Disabled creates a no-op Redactor: Redact returns its input unchanged.
func Disabled() *Redactor {
	return &Redactor{enabled: false}
}

// Redact replaces PII and sensitive entities in text and returns the
// redacted text plus the set of rule types that fired, one label per type
// regardless of how often it matched. Redacting already-redacted text is a
// no-op, so the transform is idempotent.
//
// When a rule matches, every occurrence of the matched substring is
// replaced, not just the matched span. An unrelated substring that happens
// to equal a PII match is therefore redacted too; over-redaction is the
// safe direction for a privacy filter.
func (r *Redactor) Redact(text string) (string, []string) {
	if !r.enabled {
		return text, nil
	}
	redacted, labels := r.redactPII(text)
	redacted, entityLabels := r.hashEntities(redacted)
	return redacted, append(labels, entityLabels...)
}

func (r *Redactor) redactPII(text string) (string, []string) {
	var labels []string
	for _, rule := range r.pii {
		fired := false
		for _, match := range rule.Pattern.FindAllString(text, -1) {
			token := fmt.Sprintf("[%s_REDACTED]", strings.ToUpper(rule.Type))
			text = strings.ReplaceAll(text, match, token)
			fired = true
		}
		if fired {
			labels = append(labels, rule.Type)
		}
	}
	return text, labels
}

func (r *Redactor) hashEntities(text string) (string, []string) {
	var labels []string
	for _, rule := range r.entities {
		fired := false
		for _, match := range rule.Pattern.FindAllString(text, -1) {
			token := fmt.Sprintf("[%s_%s]", strings.ToUpper(rule.Type), hash8(match))
			text = strings.ReplaceAll(text, match, token)
			fired = true
		}
		if fired {
			labels = append(labels, rule.Type)
		}
	}
	return text, labels
}

// hash8 is a deterministic 8-character digest. Identical inputs always
// yield identical tokens, which keeps entity references consistent across
// the corpus without being reversible.
func hash8(s string) string {
	sum := md5.Sum([]byte(s))
	return hex.EncodeToString(sum[:])[:8]
}

// DefaultPIIRules returns the production PII table. Order matters: rules
// run sequentially over the output of earlier rules.
func DefaultPIIRules() []PIIRule {
	return []PIIRule{
		{Type: "email", Pattern: regexp.MustCompile(`(?i)\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)},
		{Type: "phone", Pattern: regexp.MustCompile(`(?i)\b(?:\+?1[-.]?)?\(?([0-9]{3})\)?[-.]?([0-9]{3})[-.]?([0-9]{4})\b`)},
		{Type: "ssn", Pattern: regexp.MustCompile(`\b\d{3}-\d{2}-\d{4}\b`)},
		{Type: "credit_card", Pattern: regexp.MustCompile(`\b\d{4}[-\s]?\d{4}[-\s]?\d{4}[-\s]?\d{4}\b`)},
		{Type: "address", Pattern: regexp.MustCompile(`(?i)\b\d+\s+[\w\s]+(?:street|st|avenue|ave|road|rd|boulevard|blvd|drive|dr|court|ct|lane|ln)\b`)},
		{Type: "ip_address", Pattern: regexp.MustCompile(`\b(?:\d{1,3}\.){3}\d{1,3}\b`)},
		{Type: "api_key", Pattern: regexp.MustCompile(`\b[A-Za-z0-9]{32,}\b`)},
	}
}

// DefaultEntityRules returns the production entity table. Entity patterns
// are case-sensitive: capitalization is the signal.
func DefaultEntityRules() []EntityRule {
	return []EntityRule{
		{Type: "person_name", Pattern: regexp.MustCompile(`\b(?:Dr\.|Mr\.|Mrs\.|Ms\.|Prof\.)\s+[A-Z][a-z]+(?:\s+[A-Z][a-z]+)*\b`)},
		{Type: "full_name", Pattern: regexp.MustCompile(`\b[A-Z][a-z]+\s+[A-Z][a-z]+\b`)},
	}
}
