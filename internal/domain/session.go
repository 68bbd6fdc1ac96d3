package domain

import "time"

// DefaultSessionPrompt labels sessions generated without a subject prompt.
const DefaultSessionPrompt = "Composition/Style Generation"

// GenerationSession records one successful generation and the exact inputs
// that produced it. Sessions are never modified after creation.
type GenerationSession struct {
	ID         string     `json:"id"`
	Timestamp  time.Time  `json:"timestamp"`
	PromptText string     `json:"prompt"`
	Images     []string   `json:"images"`
	Model      Model      `json:"model"`
	Snapshot   InputState `json:"state"`
}

// SessionPrompt returns the label stored on a session.
func SessionPrompt(subject string) string {
	if subject == "" {
		return DefaultSessionPrompt
	}
	return subject
}

// SuggestionSet is a proposed replacement for the style description and the
// positive and negative keyword strings.
type SuggestionSet struct {
	StyleDescription string `json:"suggested_style_description"`
	PositivePrompt   string `json:"suggested_positive_prompt"`
	NegativePrompt   string `json:"suggested_negative_prompt"`
}

// SuggestionField names one field of a SuggestionSet.
type SuggestionField string

const (
	SuggestStyle    SuggestionField = "style"
	SuggestPositive SuggestionField = "positive"
	SuggestNegative SuggestionField = "negative"
)

// SuggestionPatch selects which suggested values overwrite the current state.
// Nil and empty fields leave the corresponding input untouched.
type SuggestionPatch struct {
	Style    *string `json:"style,omitempty"`
	Positive *string `json:"positive,omitempty"`
	Negative *string `json:"negative,omitempty"`
}

// PatchFrom builds a patch carrying only the named fields of set.
func PatchFrom(set SuggestionSet, fields ...SuggestionField) (SuggestionPatch, error) {
	var p SuggestionPatch
	for _, f := range fields {
		switch f {
		case SuggestStyle:
			v := set.StyleDescription
			p.Style = &v
		case SuggestPositive:
			v := set.PositivePrompt
			p.Positive = &v
		case SuggestNegative:
			v := set.NegativePrompt
			p.Negative = &v
		default:
			return SuggestionPatch{}, Invalid("fields", "unknown suggestion field "+string(f))
		}
	}
	return p, nil
}

// Apply returns the updated state and whether any field changed hands.
func (p SuggestionPatch) Apply(s InputState) (InputState, bool) {
	out := s.Clone()
	applied := false
	if p.Style != nil && *p.Style != "" {
		out.StyleDescription = *p.Style
		applied = true
	}
	if p.Positive != nil && *p.Positive != "" {
		out.SupportivePrompt = *p.Positive
		applied = true
	}
	if p.Negative != nil && *p.Negative != "" {
		out.NegativePrompt = *p.Negative
		applied = true
	}
	return out, applied
}
