package scoring

import "testing"

const samplePayload = `{
  "form_response": {
    "answers": [
      {"type": "choice", "field": {"ref": "q-choice"}, "choice": {"label": "Low risk"}},
      {"type": "text", "field": {"ref": "q-text"}, "text": "free form"},
      {"type": "number", "field": {"ref": "q-number"}, "number": 120},
      {"type": "boolean", "field": {"ref": "q-bool"}, "boolean": true},
      {"type": "text", "field": {"ref": "name_field_ref"}, "text": "Ada Lovelace"},
      {"type": "email", "field": {"ref": "email-ref"}, "email": "ada@example.com"}
    ]
  }
}`

func TestExtractAnswersHandlesAllShapes(t *testing.T) {
	answers := ExtractAnswers([]byte(samplePayload))

	cases := map[string]string{
		"q-choice": "Low risk",
		"q-text":   "free form",
		"q-number": "120",
		"q-bool":   "",
	}
	for ref, want := range cases {
		if got := answers[ref]; got != want {
			t.Fatalf("ref %s: expected %q, got %q", ref, want, got)
		}
	}
}

func TestExtractAnswersNumberWithoutValue(t *testing.T) {
	answers := ExtractAnswers([]byte(`{
		"form_response": {"answers": [
			{"type": "number", "field": {"ref": "q-number"}}
		]}
	}`))
	if got := answers["q-number"]; got != "0" {
		t.Fatalf("expected missing number to stringify as 0, got %q", got)
	}
}

func TestExtractAnswersMalformedPayload(t *testing.T) {
	for _, raw := range []string{"not json", "{}", `{"form_response": {}}`, `{"form_response": {"answers": "nope"}}`} {
		answers := ExtractAnswers([]byte(raw))
		if len(answers) != 0 {
			t.Fatalf("payload %q: expected empty answer map, got %v", raw, answers)
		}
	}
}

func TestExtractUserName(t *testing.T) {
	if got := ExtractUserName([]byte(samplePayload), "name_field_ref"); got != "Ada Lovelace" {
		t.Fatalf("expected Ada Lovelace, got %q", got)
	}
	if got := ExtractUserName([]byte(samplePayload), "other-ref"); got != DefaultUserName {
		t.Fatalf("expected default name, got %q", got)
	}
	if got := ExtractUserName([]byte("not json"), "name_field_ref"); got != DefaultUserName {
		t.Fatalf("expected default name for malformed payload, got %q", got)
	}
}

func TestExtractEmail(t *testing.T) {
	if got := ExtractEmail([]byte(samplePayload), "email-ref"); got != "ada@example.com" {
		t.Fatalf("expected ada@example.com, got %q", got)
	}
	if got := ExtractEmail([]byte(samplePayload), "missing-ref"); got != "" {
		t.Fatalf("expected empty email for unknown ref, got %q", got)
	}
}
