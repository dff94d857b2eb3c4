// Package classifier defines the batch scoring contract and its backends.
package classifier

import (
	"context"
	"errors"
	"fmt"

	"github.com/dtnitsch/recipe-web-parser/models"
)

var (
	// ErrBatchMismatch means a backend returned a different number of scores
	// than paragraphs it was given. Scores cannot be attributed safely.
	ErrBatchMismatch = errors.New("classifier returned mismatched batch")
	// ErrScoreRange means a backend produced a score outside [0,1].
	ErrScoreRange = errors.New("classifier score out of range")
)

// Classifier scores an ordered batch of cleaned paragraph texts. The result
// has the same length and order as texts. Implementations are built once,
// are read-only afterwards and must be safe for concurrent use.
type Classifier interface {
	Classify(ctx context.Context, texts []string) ([]models.Scores, error)
}

// CheckBatch verifies the one-to-one contract between a batch of n texts
// and the scores returned for it.
func CheckBatch(n int, scores []models.Scores) error {
	if len(scores) != n {
		return fmt.Errorf("%w: sent %d paragraphs, got %d scores", ErrBatchMismatch, n, len(scores))
	}
	for i, s := range scores {
		if !inUnit(s.Ingredient) || !inUnit(s.Instruction) {
			return fmt.Errorf("%w: paragraph %d has (%v, %v)", ErrScoreRange, i, s.Ingredient, s.Instruction)
		}
	}
	return nil
}

// ClassifyChecked calls c once for the whole batch and enforces CheckBatch.
func ClassifyChecked(ctx context.Context, c Classifier, texts []string) ([]models.Scores, error) {
	scores, err := c.Classify(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("classify %d paragraphs: %w", len(texts), err)
	}
	if err := CheckBatch(len(texts), scores); err != nil {
		return nil, err
	}
	return scores, nil
}

func inUnit(v float64) bool {
	return v >= 0 && v <= 1
}
