package model

import "fmt"

// Template names a fixed prompt-shaping configuration. The set is
// closed; resolution of the associated prompt triple lives in the
// prompt package.
type Template string

const (
	TemplateResearch    Template = "research"
	TemplateEducational Template = "educational"
	TemplateBusiness    Template = "business"
	TemplateCreative    Template = "creative"
)

// Templates lists every valid template in display order.
func Templates() []Template {
	return []Template{TemplateResearch, TemplateEducational, TemplateBusiness, TemplateCreative}
}

// ParseTemplate validates a user-supplied template name.
func ParseTemplate(s string) (Template, error) {
	switch Template(s) {
	case TemplateResearch, TemplateEducational, TemplateBusiness, TemplateCreative:
		return Template(s), nil
	default:
		return "", fmt.Errorf("unknown template %q (want one of %v)", s, Templates())
	}
}

func (t Template) String() string { return string(t) }
