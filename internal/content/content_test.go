package content

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	serrors "git.home.luguber.info/inful/sitesmith/internal/errors"
)

const sampleJSON = `{
  "title": "Best Air Fryers of the Year",
  "meta_description": "We compared popular air fryers.",
  "category": "Kitchen",
  "tags": ["air fryer", " Budget ", "budget", ""],
  "sections": [{"heading": "Why an air fryer", "paragraphs": ["Crispy food, less oil."]}],
  "faq": [{"q": "Is it loud?", "a": "Not really."}],
  "product_name": "Fryer X",
  "product_blurb": "Great value.",
  "comparison": [{"name": "Fryer X", "asin": "B0TEST", "pros": ["fast"], "cons": ["small"]}],
  "sources": [{"title": "Manual", "url": "https://example.com/manual"}]
}`

func TestParse_ValidJSON(t *testing.T) {
	rec, err := Parse("air fryer", sampleJSON)
	require.NoError(t, err)

	assert.Equal(t, "Best Air Fryers of the Year", rec.Title)
	assert.Equal(t, "Kitchen", rec.Category)
	assert.Equal(t, []string{"air fryer", "Budget"}, rec.Tags)
	require.Len(t, rec.Sections, 1)
	assert.Equal(t, "Why an air fryer", rec.Sections[0].Heading)
	require.Len(t, rec.FAQ, 1)
	assert.Equal(t, "Is it loud?", rec.FAQ[0].Question)
	assert.Equal(t, "B0TEST", rec.Comparison[0].ASIN)
	assert.Equal(t, "air fryer", rec.Keyword)
	assert.False(t, rec.Fallback)
}

func TestParse_FencedJSONWithProse(t *testing.T) {
	raw := "Sure! Here you go:\n```json\n{\"title\": \"Blenders\", \"tags\": []}\n```\n"
	rec, err := Parse("blender", raw)
	require.NoError(t, err)
	assert.Equal(t, "Blenders", rec.Title)
	assert.Equal(t, DefaultCategory, rec.Category)
	assert.Empty(t, rec.Tags)
}

func TestParse_UnparsableReturnsFallback(t *testing.T) {
	for _, raw := range []string{"I cannot help with that.", "{not json}", "", "}{"} {
		rec, err := Parse("stand mixer", raw)
		require.Error(t, err, "raw=%q", raw)
		assert.True(t, serrors.IsCategory(err, serrors.CategoryContent))
		assert.True(t, rec.Fallback)
		assert.NotEmpty(t, rec.Title)
		assert.Equal(t, DefaultCategory, rec.Category)
		assert.NotEmpty(t, rec.Sections)
	}
}

func TestParse_EmptyTitleUsesKeyword(t *testing.T) {
	rec, err := Parse("cast iron skillet", `{"title": "  ", "category": " "}`)
	require.NoError(t, err)
	assert.Equal(t, "Cast Iron Skillet", rec.Title)
	assert.Equal(t, DefaultCategory, rec.Category)
}

func TestFallback_Shape(t *testing.T) {
	rec := Fallback("")
	assert.Equal(t, "Untitled Post", rec.Title)
	assert.Equal(t, DefaultCategory, rec.Category)
	assert.GreaterOrEqual(t, len(rec.Sections), 1)
	assert.True(t, rec.Fallback)

	rec = Fallback("rice cooker")
	assert.Equal(t, "Rice Cooker", rec.Title)
}

func TestStubGenerator(t *testing.T) {
	rec, err := StubGenerator{}.Generate(context.Background(), "Rice Cooker Guide")
	require.NoError(t, err)
	assert.Equal(t, "Rice Cooker Guide", rec.Title)
	assert.Equal(t, []string{"rice", "cooker", "guide"}, rec.Tags)
	assert.False(t, rec.Fallback)
}

type failingGenerator struct{ err error }

func (f failingGenerator) Name() string { return "failing" }
func (f failingGenerator) Generate(_ context.Context, kw string) (Record, error) {
	return Record{}, f.err
}

func TestResolve_SubstitutesFallbackOnError(t *testing.T) {
	rec, warn := Resolve(context.Background(), failingGenerator{err: errors.New("quota exceeded")}, "toaster")
	require.Error(t, warn)
	assert.True(t, serrors.IsCategory(warn, serrors.CategoryContent))
	assert.True(t, rec.Fallback)
	assert.Equal(t, "Toaster", rec.Title)
	assert.Equal(t, DefaultCategory, rec.Category)
	assert.NotEmpty(t, rec.Sections)
}

func TestResolve_KeepsContentErrorCategory(t *testing.T) {
	_, parseErr := Parse("x", "garbage")
	_, warn := Resolve(context.Background(), failingGenerator{err: parseErr}, "x")
	se, ok := serrors.As(warn)
	require.True(t, ok)
	assert.Equal(t, "content generator returned malformed output", se.Message)
}

func TestResolve_NormalizesSuccess(t *testing.T) {
	rec, warn := Resolve(context.Background(), StubGenerator{}, "kettle kettle")
	require.NoError(t, warn)
	assert.Equal(t, []string{"kettle"}, rec.Tags)
	assert.Equal(t, "kettle kettle", rec.Keyword)
}

func TestGenAIGenerator_WithFakeModel(t *testing.T) {
	var gotPrompt string
	g := &GenAIGenerator{model: "test-model", audience: "home cooks in US", complete: func(_ context.Context, prompt string) (string, error) {
		gotPrompt = prompt
		return sampleJSON, nil
	}}

	rec, err := g.Generate(context.Background(), "air fryer")
	require.NoError(t, err)
	assert.Equal(t, "Best Air Fryers of the Year", rec.Title)
	assert.Contains(t, gotPrompt, `"air fryer"`)
	assert.Contains(t, gotPrompt, "home cooks in US")
	assert.Equal(t, "genai", g.Name())
}

func TestGenAIGenerator_GarbageReply(t *testing.T) {
	g := &GenAIGenerator{model: "m", complete: func(context.Context, string) (string, error) {
		return "As an AI model I prefer prose.", nil
	}}
	rec, err := g.Generate(context.Background(), "espresso machine")
	require.Error(t, err)
	assert.True(t, rec.Fallback)
	assert.Equal(t, "Espresso Machine", rec.Title)
}

func TestNewGenAIGenerator_RequiresKey(t *testing.T) {
	_, err := NewGenAIGenerator(context.Background(), "", "", "")
	require.Error(t, err)
}

func TestRecordMeta_CopiesTags(t *testing.T) {
	rec := Record{Slug: "a", Title: "A", Category: "C", Tags: []string{"x"}}
	m := rec.Meta()
	m.Tags[0] = "changed"
	assert.Equal(t, "x", rec.Tags[0])
	assert.Equal(t, Meta{Slug: "a", Title: "A", Category: "C", Tags: []string{"changed"}}, m)
}
