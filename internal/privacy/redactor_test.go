package privacy

import (
	"reflect"
	"strings"
	"testing"
)

func TestRedactor_Redact(t *testing.T) {
	r := Default()

	tests := []struct {
		name           string
		text           string
		expectedText   string
		expectedLabels []string
	}{
		{
			name:           "email",
			text:           "reach me at bob@example.com please",
			expectedText:   "reach me at [EMAIL_REDACTED] please",
			expectedLabels: []string{"email"},
		},
		{
			name:           "phone",
			text:           "call 555-123-4567 tomorrow",
			expectedText:   "call [PHONE_REDACTED] tomorrow",
			expectedLabels: []string{"phone"},
		},
		{
			name:           "ssn",
			text:           "ssn is 123-45-6789",
			expectedText:   "ssn is [SSN_REDACTED]",
			expectedLabels: []string{"ssn"},
		},
		{
			name:           "one label per type regardless of match count",
			text:           "a@b.co and c@d.co wrote in",
			expectedText:   "[EMAIL_REDACTED] and [EMAIL_REDACTED] wrote in",
			expectedLabels: []string{"email"},
		},
		{
			name:           "clean text untouched",
			text:           "nothing sensitive here",
			expectedText:   "nothing sensitive here",
			expectedLabels: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, labels := r.Redact(tt.text)
			if got != tt.expectedText {
				t.Errorf("Redact(%q) = %q, expected %q", tt.text, got, tt.expectedText)
			}
			if !reflect.DeepEqual(labels, tt.expectedLabels) {
				t.Errorf("labels = %v, expected %v", labels, tt.expectedLabels)
			}
		})
	}
}

func TestRedactor_ReplacesEveryOccurrence(t *testing.T) {
	r := Default()

	text := "primary 10.0.0.1, fallback 10.0.0.1"
	got, _ := r.Redact(text)

	if strings.Contains(got, "10.0.0.1") {
		t.Errorf("unredacted occurrence survived: %q", got)
	}
	if n := strings.Count(got, "[IP_ADDRESS_REDACTED]"); n != 2 {
		t.Errorf("expected 2 tokens, got %d in %q", n, got)
	}
}

func TestRedactor_EntityTokensAreConsistent(t *testing.T) {
	r := Default()

	first, labels := r.Redact("Alice Johnson opened the ticket")
	second, _ := r.Redact("assigned back to Alice Johnson")

	if !reflect.DeepEqual(labels, []string{"full_name"}) {
		t.Fatalf("labels = %v, expected [full_name]", labels)
	}

	token := extractToken(t, first, "[FULL_NAME_")
	if got := extractToken(t, second, "[FULL_NAME_"); got != token {
		t.Errorf("same entity produced different tokens: %q vs %q", token, got)
	}

	other, _ := r.Redact("Brian Miller opened the ticket")
	if got := extractToken(t, other, "[FULL_NAME_"); got == token {
		t.Errorf("different entities produced the same token %q", got)
	}
}

func TestRedactor_TitledNames(t *testing.T) {
	r := Default()

	got, labels := r.Redact("Dr. Chen will see you")
	if strings.Contains(got, "Chen") {
		t.Errorf("titled name survived redaction: %q", got)
	}
	if !strings.Contains(got, "[PERSON_NAME_") {
		t.Errorf("expected a person_name token in %q", got)
	}
	if !reflect.DeepEqual(labels, []string{"person_name"}) {
		t.Errorf("labels = %v, expected [person_name]", labels)
	}
}

func TestRedactor_Idempotent(t *testing.T) {
	r := Default()

	text := "mail bob@example.com, ssn 123-45-6789, ask Alice Johnson"
	once, _ := r.Redact(text)
	twice, labels := r.Redact(once)

	if twice != once {
		t.Errorf("second pass changed text:\n once: %q\ntwice: %q", once, twice)
	}
	if labels != nil {
		t.Errorf("second pass fired rules: %v", labels)
	}
}

func TestRedactor_Disabled(t *testing.T) {
	r := Disabled()

	text := "mail bob@example.com now"
	got, labels := r.Redact(text)
	if got != text {
		t.Errorf("disabled redactor changed text: %q", got)
	}
	if labels != nil {
		t.Errorf("disabled redactor returned labels: %v", labels)
	}
}

// extractToken pulls the first token starting with prefix out of text.
func extractToken(t *testing.T, text, prefix string) string {
	t.Helper()
	start := strings.Index(text, prefix)
	if start < 0 {
		t.Fatalf("no %q token in %q", prefix, text)
	}
	end := strings.Index(text[start:], "]")
	if end < 0 {
		t.Fatalf("unterminated token in %q", text)
	}
	return text[start : start+end+1]
}
