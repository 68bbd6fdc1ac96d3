package studio

import (
	"styledna/internal/domain"
	"styledna/internal/imagegen"
)

// Preview is the directive the next generation would send.
type Preview struct {
	Model    domain.Model       `json:"model"`
	Prompt   string             `json:"prompt"`
	Sections []imagegen.Section `json:"sections,omitempty"`
	Positive string             `json:"positive_keywords,omitempty"`
	Negative string             `json:"negative_keywords,omitempty"`
}

// PreviewPrompt assembles the prompt for st without any network call.
func PreviewPrompt(st domain.InputState) Preview {
	p := Preview{Model: st.Model, Prompt: imagegen.Build(st)}
	if st.Model != domain.ModelImagen {
		p.Sections = imagegen.ReferenceSections(st)
		p.Positive, p.Negative = imagegen.Keywords(st)
	}
	return p
}

func (s *Studio) PromptPreview() Preview {
	return PreviewPrompt(s.State())
}
