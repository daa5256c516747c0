package content

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"google.golang.org/genai"

	"git.home.luguber.info/inful/sitesmith/internal/logfields"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "gemini-2.5-flash"

const systemInstruction = `You write helpful, honest affiliate blog articles.
Reply with a single JSON object and nothing else, using exactly these fields:
{"title": string, "meta_description": string (max 155 chars), "summary": string,
 "category": string, "tags": [string],
 "sections": [{"heading": string, "paragraphs": [string]}],
 "faq": [{"q": string, "a": string}],
 "product_name": string, "product_blurb": string,
 "comparison": [{"name": string, "blurb": string, "asin": string, "pros": [string], "cons": [string]}],
 "sources": [{"title": string, "url": string}]}
Paragraphs may use inline Markdown (bold, italics, links) but no headings.`

// completeFunc sends one prompt and returns the raw model text.
type completeFunc func(ctx context.Context, prompt string) (string, error)

// GenAIGenerator requests article JSON from a Gemini model.
type GenAIGenerator struct {
	model    string
	audience string
	complete completeFunc
}

// NewGenAIGenerator creates a generator backed by the Gemini API.
func NewGenAIGenerator(ctx context.Context, apiKey, model, audience string) (*GenAIGenerator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("GenAI API key is required")
	}
	if model == "" {
		model = DefaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	cfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemInstruction, genai.RoleUser),
		ResponseMIMEType:  "application/json",
		Temperature:       genai.Ptr[float32](0.7),
	}

	g := &GenAIGenerator{model: model, audience: audience}
	g.complete = func(ctx context.Context, prompt string) (string, error) {
		resp, err := client.Models.GenerateContent(ctx, model, genai.Text(prompt), cfg)
		if err != nil {
			return "", err
		}
		return resp.Text(), nil
	}
	return g, nil
}

func (g *GenAIGenerator) Name() string { return "genai" }

// Generate sends one request for keyword and parses the reply. Malformed
// replies return the fallback record and a content error.
func (g *GenAIGenerator) Generate(ctx context.Context, keyword string) (Record, error) {
	slog.Debug("Requesting article", logfields.Keyword(keyword), logfields.Model(g.model))
	raw, err := g.complete(ctx, Prompt(keyword, g.audience))
	if err != nil {
		return Fallback(keyword), fmt.Errorf("generate %q: %w", keyword, err)
	}
	return Parse(keyword, raw)
}

// Prompt is the user message sent for one keyword.
func Prompt(keyword, audience string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Write a detailed buying guide for the keyword %q.\n", strings.TrimSpace(keyword))
	if a := strings.TrimSpace(audience); a != "" {
		fmt.Fprintf(&b, "The audience is %s.\n", a)
	}
	b.WriteString("Include 4-6 sections, 3-5 FAQ entries, 3 tags, one category, and a comparison of 3 products.")
	return b.String()
}
