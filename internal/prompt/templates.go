package prompt

import (
	"errors"
	"fmt"

	"docwhisperer/internal/model"
)

// ErrUnknownTemplate reports a template id outside the closed set.
var ErrUnknownTemplate = errors.New("unknown prompt template")

// TemplateSpec is the fixed prompt-shaping triple behind a template id.
// Values are static configuration, never mutated at runtime.
type TemplateSpec struct {
	System        string
	SummaryFocus  string
	QuestionStyle string
}

var templates = map[model.Template]TemplateSpec{
	model.TemplateResearch: {
		System:        "You are a research analyst specializing in academic and scientific content.",
		SummaryFocus:  "research methodology, key findings, and implications",
		QuestionStyle: "analytical and research-focused",
	},
	model.TemplateEducational: {
		System:        "You are an educational content specialist.",
		SummaryFocus:  "core concepts and learning objectives",
		QuestionStyle: "educational and concept-testing",
	},
	model.TemplateBusiness: {
		System:        "You are a business analyst reviewing strategic documents.",
		SummaryFocus:  "strategic insights and business implications",
		QuestionStyle: "strategic and implementation-focused",
	},
	model.TemplateCreative: {
		System:        "You are a creative content analyst.",
		SummaryFocus:  "themes and creative elements",
		QuestionStyle: "interpretive and thematic",
	},
}

// Resolve returns the spec for a valid template id.
func Resolve(t model.Template) (TemplateSpec, error) {
	spec, ok := templates[t]
	if !ok {
		return TemplateSpec{}, fmt.Errorf("%w: %q", ErrUnknownTemplate, t)
	}
	return spec, nil
}
