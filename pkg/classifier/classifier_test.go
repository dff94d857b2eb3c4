package classifier

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtnitsch/recipe-web-parser/models"
)

type fixedClassifier struct {
	scores []models.Scores
	err    error
}

func (f fixedClassifier) Classify(context.Context, []string) ([]models.Scores, error) {
	return f.scores, f.err
}

func TestCheckBatch(t *testing.T) {
	tests := []struct {
		name    string
		n       int
		scores  []models.Scores
		wantErr error
	}{
		{"matching", 2, []models.Scores{{}, {Ingredient: 1, Instruction: 1}}, nil},
		{"empty", 0, nil, nil},
		{"too few", 3, []models.Scores{{}, {}}, ErrBatchMismatch},
		{"too many", 1, []models.Scores{{}, {}}, ErrBatchMismatch},
		{"negative score", 1, []models.Scores{{Ingredient: -0.1}}, ErrScoreRange},
		{"score above one", 1, []models.Scores{{Instruction: 1.01}}, ErrScoreRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckBatch(tt.n, tt.scores)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestClassifyChecked(t *testing.T) {
	ctx := context.Background()

	scores, err := ClassifyChecked(ctx, fixedClassifier{scores: []models.Scores{{Ingredient: 0.5}}}, []string{"a"})
	require.NoError(t, err)
	assert.Equal(t, []models.Scores{{Ingredient: 0.5}}, scores)

	_, err = ClassifyChecked(ctx, fixedClassifier{scores: []models.Scores{{}}}, []string{"a", "b"})
	assert.ErrorIs(t, err, ErrBatchMismatch)

	boom := errors.New("boom")
	_, err = ClassifyChecked(ctx, fixedClassifier{err: boom}, []string{"a"})
	assert.ErrorIs(t, err, boom)
}

func TestStatic(t *testing.T) {
	s := &Static{
		ByText:   map[string]models.Scores{"2 cups flour": {Ingredient: 0.95, Instruction: 0.05}},
		Fallback: models.Scores{Ingredient: 0.1, Instruction: 0.1},
	}
	got, err := s.Classify(context.Background(), []string{"nope", "2 cups flour"})
	require.NoError(t, err)
	assert.Equal(t, []models.Scores{
		{Ingredient: 0.1, Instruction: 0.1},
		{Ingredient: 0.95, Instruction: 0.05},
	}, got)
}
