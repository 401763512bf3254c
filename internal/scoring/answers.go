package scoring

import "encoding/json"

// AnswerMap is a flat question-ref to answer-value mapping built once per
// submission and read-only afterwards.
type AnswerMap map[string]string

// DefaultUserName is the display name used when the payload carries none.
const DefaultUserName = "User"

type formPayload struct {
	FormResponse struct {
		Answers []formAnswer `json:"answers"`
	} `json:"form_response"`
}

type formAnswer struct {
	Type  string `json:"type"`
	Field struct {
		Ref string `json:"ref"`
	} `json:"field"`
	Choice struct {
		Label string `json:"label"`
	} `json:"choice"`
	Text   string      `json:"text"`
	Email  string      `json:"email"`
	Number json.Number `json:"number"`
}

func (a formAnswer) value() string {
	switch a.Type {
	case "choice":
		return a.Choice.Label
	case "text":
		return a.Text
	case "number":
		if a.Number == "" {
			return "0"
		}
		return a.Number.String()
	default:
		return ""
	}
}

// ExtractAnswers flattens a raw form-submission payload into an AnswerMap.
// A payload that cannot be parsed, or that lacks the expected structure,
// yields an empty map; the scorer then degrades every pillar to zero.
func ExtractAnswers(raw []byte) AnswerMap {
	var payload formPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return AnswerMap{}
	}

	answers := make(AnswerMap, len(payload.FormResponse.Answers))
	for _, answer := range payload.FormResponse.Answers {
		if answer.Field.Ref == "" {
			continue
		}
		answers[answer.Field.Ref] = answer.value()
	}
	return answers
}

// ExtractUserName scans the answer list for the text answer at nameRef and
// returns DefaultUserName when it is absent. Cosmetic only: the name appears
// in rendered artifacts and email copy.
func ExtractUserName(raw []byte, nameRef string) string {
	var payload formPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return DefaultUserName
	}

	for _, answer := range payload.FormResponse.Answers {
		if answer.Field.Ref == nameRef && answer.Text != "" {
			return answer.Text
		}
	}
	return DefaultUserName
}

// ExtractEmail returns the respondent address from the email-typed answer at
// emailRef, or "" when the payload has none.
func ExtractEmail(raw []byte, emailRef string) string {
	var payload formPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return ""
	}

	for _, answer := range payload.FormResponse.Answers {
		if answer.Type == "email" && answer.Field.Ref == emailRef {
			return answer.Email
		}
	}
	return ""
}
