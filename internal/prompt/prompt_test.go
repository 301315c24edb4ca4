package prompt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docwhisperer/internal/model"
)

func TestResolve_AllTemplates(t *testing.T) {
	for _, template := range model.Templates() {
		spec, err := Resolve(template)
		require.NoError(t, err, "template %s", template)
		assert.NotEmpty(t, spec.System)
		assert.NotEmpty(t, spec.SummaryFocus)
		assert.NotEmpty(t, spec.QuestionStyle)
	}
}

func TestResolve_Unknown(t *testing.T) {
	_, err := Resolve(model.Template("poetic"))
	assert.ErrorIs(t, err, ErrUnknownTemplate)
}

func TestResolve_ResearchSpec(t *testing.T) {
	spec, err := Resolve(model.TemplateResearch)
	require.NoError(t, err)
	assert.Equal(t, "You are a research analyst specializing in academic and scientific content.", spec.System)
	assert.Equal(t, "research methodology, key findings, and implications", spec.SummaryFocus)
	assert.Equal(t, "analytical and research-focused", spec.QuestionStyle)
}

func TestAssembleContext_JoinsWithSeparator(t *testing.T) {
	out := AssembleContext([]string{"first", "second", "third"}, 0)
	assert.Equal(t, "first\n\n---\n\nsecond\n\n---\n\nthird", out)
}

func TestAssembleContext_BudgetAppliesToWhole(t *testing.T) {
	texts := []string{strings.Repeat("a", 30), strings.Repeat("b", 30)}
	out := AssembleContext(texts, 40)

	assert.True(t, strings.HasSuffix(out, TruncationMarker))
	assert.Len(t, []rune(strings.TrimSuffix(out, TruncationMarker)), 40)
}

func TestAssembleContext_UnderBudgetUntouched(t *testing.T) {
	out := AssembleContext([]string{"short"}, 1000)
	assert.Equal(t, "short", out)
	assert.NotContains(t, out, TruncationMarker)
}

func TestTruncate_RuneSafe(t *testing.T) {
	s := strings.Repeat("é", 10)
	out := Truncate(s, 4)

	assert.Equal(t, "éééé"+TruncationMarker, out)
}

func TestTruncate_DisabledBudget(t *testing.T) {
	s := strings.Repeat("x", 100)
	assert.Equal(t, s, Truncate(s, 0))
	assert.Equal(t, s, Truncate(s, -1))
}

func TestTruncate_ExactFit(t *testing.T) {
	assert.Equal(t, "abcd", Truncate("abcd", 4))
}
