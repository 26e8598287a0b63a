package estimator

import (
	"context"

	"github.com/dmitrijs2005/fooddiary/internal/media"
)

// New returns Gemini when apiKey is set and Disabled otherwise.
func New(ctx context.Context, apiKey, model string, m media.Store) (Estimator, error) {
	if apiKey == "" {
		return Disabled{}, nil
	}
	return NewGemini(ctx, apiKey, model, m)
}
