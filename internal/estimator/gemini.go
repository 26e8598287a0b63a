package estimator

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"path"

	"github.com/dmitrijs2005/fooddiary/internal/media"
	"google.golang.org/genai"
)

const DefaultModel = "gemini-1.5-flash"

// maxImageBytes caps how much of a single photo is sent to the model.
const maxImageBytes = 20 << 20

type generator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Gemini estimates calories with a Google Gemini model.
type Gemini struct {
	models generator
	media  media.Store
	model  string
}

// NewGemini creates a Gemini API client. Photos are read back through m.
func NewGemini(ctx context.Context, apiKey, model string, m media.Store) (*Gemini, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return newGemini(client.Models, model, m), nil
}

func newGemini(g generator, model string, m media.Store) *Gemini {
	if model == "" {
		model = DefaultModel
	}
	return &Gemini{models: g, media: m, model: model}
}

func (g *Gemini) Estimate(ctx context.Context, description string, imageRefs []string) (int, error) {
	parts := []*genai.Part{genai.NewPartFromText(buildPrompt(description))}

	for _, ref := range imageRefs {
		p, err := g.imagePart(ctx, ref)
		if err != nil {
			return 0, err
		}
		parts = append(parts, p)
	}

	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}

	resp, err := g.models.GenerateContent(ctx, g.model, contents, nil)
	if err != nil {
		return 0, fmt.Errorf("gemini request: %w", err)
	}

	return parseCalories(resp.Text())
}

func (g *Gemini) imagePart(ctx context.Context, ref string) (*genai.Part, error) {
	rc, err := g.media.Open(ctx, ref)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	data, err := io.ReadAll(io.LimitReader(rc, maxImageBytes))
	if err != nil {
		return nil, fmt.Errorf("read image %s: %w", ref, err)
	}

	return genai.NewPartFromBytes(data, imageMIME(ref, data)), nil
}

func imageMIME(ref string, data []byte) string {
	if t := mime.TypeByExtension(path.Ext(ref)); t != "" {
		return t
	}
	return http.DetectContentType(data)
}
