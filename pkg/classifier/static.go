package classifier

import (
	"context"

	"github.com/dtnitsch/recipe-web-parser/models"
)

// Static returns fixed scores looked up by exact text, and Fallback for
// anything else. Useful for fixtures and dry runs.
type Static struct {
	ByText   map[string]models.Scores
	Fallback models.Scores
}

func (s *Static) Classify(_ context.Context, texts []string) ([]models.Scores, error) {
	out := make([]models.Scores, len(texts))
	for i, t := range texts {
		if sc, ok := s.ByText[t]; ok {
			out[i] = sc
			continue
		}
		out[i] = s.Fallback
	}
	return out, nil
}
