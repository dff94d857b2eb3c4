package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtnitsch/recipe-web-parser/models"
	"github.com/dtnitsch/recipe-web-parser/pkg/assembler"
	"github.com/dtnitsch/recipe-web-parser/pkg/classifier"
	"github.com/dtnitsch/recipe-web-parser/pkg/detector"
	"github.com/dtnitsch/recipe-web-parser/pkg/labeler"
)

const page = `<html><head><title>Bread</title></head><body>
<main>
  <h2>Ingredients</h2>
  <ul><li>2 cups flour</li></ul>
  <h2>Instructions</h2>
  <p>Preheat oven to 350F.</p>
  <div>Advertisement</div>
</main>
</body></html>`

// countingClassifier records every batch it sees.
type countingClassifier struct {
	mu      sync.Mutex
	inner   classifier.Classifier
	batches [][]string
}

func (c *countingClassifier) Classify(ctx context.Context, texts []string) ([]models.Scores, error) {
	c.mu.Lock()
	c.batches = append(c.batches, append([]string(nil), texts...))
	c.mu.Unlock()
	return c.inner.Classify(ctx, texts)
}

func recipeScores() *classifier.Static {
	return &classifier.Static{
		ByText: map[string]models.Scores{
			"2 cups flour":          {Ingredient: 0.95, Instruction: 0.05},
			"Preheat oven to 350F.": {Ingredient: 0.10, Instruction: 0.80},
		},
	}
}

type mapSource map[string]string

func (m mapSource) GetHtml(_ context.Context, rawURL string) (string, error) {
	markup, ok := m[rawURL]
	if !ok {
		return "", fmt.Errorf("no route to %s", rawURL)
	}
	return markup, nil
}

type shortClassifier struct{}

func (shortClassifier) Classify(_ context.Context, texts []string) ([]models.Scores, error) {
	return make([]models.Scores, len(texts)-1), nil
}

func TestRun_EndToEnd(t *testing.T) {
	cc := &countingClassifier{inner: recipeScores()}
	p := New(cc)

	res, err := p.Run(context.Background(), "https://example.com/bread", page)
	require.NoError(t, err)

	require.Len(t, cc.batches, 1, "classifier must be called once per page")
	assert.Equal(t, []string{"2 cups flour", "Preheat oven to 350F."}, cc.batches[0])

	assert.Equal(t, models.StatusFound, res.Status)
	assert.Equal(t, 2, res.ParagraphCount)
	assert.Equal(t, []string{"2 cups flour"}, res.Recipe.Ingredients)
	assert.Equal(t, []string{"Preheat oven to 350F."}, res.Recipe.Instructions)
	assert.Equal(t,
		"{\n\n\tingredients: [\n\t\t2 cups flour\n\t]\n\n\tinstructions: \"\n\t\tPreheat oven to 350F.\"\n}",
		assembler.Format(res.Recipe))
	assert.Nil(t, res.Paragraphs)
	assert.Nil(t, res.Meta)
}

func TestRun_KeepsParagraphs(t *testing.T) {
	p := New(recipeScores(), WithParagraphs(true))

	res, err := p.Run(context.Background(), "", page)
	require.NoError(t, err)
	require.Len(t, res.Paragraphs, 2)
	assert.Equal(t, models.LabelIngredient, res.Paragraphs[0].Label)
	assert.Equal(t, models.LabelInstruction, res.Paragraphs[1].Label)
}

func TestRun_CustomThresholds(t *testing.T) {
	p := New(recipeScores(), WithThresholds(labeler.Thresholds{Ingredient: 0.99, Instruction: 0.99}))

	res, err := p.Run(context.Background(), "", page)
	require.NoError(t, err)
	assert.Equal(t, models.StatusEmpty, res.Status)
	assert.True(t, res.Recipe.IsEmpty())
}

func TestRun_EmptyPageSkipsClassifier(t *testing.T) {
	for _, markup := range []string{"", "   ", "<html><body><main><h2>Ingredients</h2></main></body></html>"} {
		cc := &countingClassifier{inner: recipeScores()}
		res, err := New(cc).Run(context.Background(), "", markup)
		require.NoError(t, err)
		assert.Empty(t, cc.batches)
		assert.Equal(t, models.StatusEmpty, res.Status)
		assert.Equal(t, 0, res.ParagraphCount)
		assert.Equal(t, "{\n\n\tingredients: [\n\t]\n\n\tinstructions: \"\"\n}", assembler.Format(res.Recipe))
	}
}

func TestRun_BatchMismatchFails(t *testing.T) {
	res, err := New(shortClassifier{}).Run(context.Background(), "u", page)
	assert.ErrorIs(t, err, classifier.ErrBatchMismatch)
	assert.Equal(t, models.StatusFailed, res.Status)
	assert.True(t, res.Recipe.IsEmpty())
	assert.NotEmpty(t, res.Reason)
}

func TestRun_AttachesMeta(t *testing.T) {
	p := New(recipeScores(), WithDetector(detector.New()))

	res, err := p.Run(context.Background(), "https://www.example.com/bread", page)
	require.NoError(t, err)
	require.NotNil(t, res.Meta)
	assert.Equal(t, "example.com", res.Meta.SiteName)
}

func TestProcess_Unreachable(t *testing.T) {
	cc := &countingClassifier{inner: recipeScores()}
	res := New(cc).Process(context.Background(), mapSource{}, "https://down.example.com")

	assert.Equal(t, models.StatusUnreachable, res.Status)
	assert.Contains(t, res.Reason, "no route")
	assert.Empty(t, cc.batches)
	assert.Equal(t, "{\n\n\tingredients: [\n\t]\n\n\tinstructions: \"\"\n}", assembler.Format(res.Recipe))
	assert.Equal(t, []string{}, res.Recipe.Ingredients)
	assert.Equal(t, []string{}, res.Recipe.Instructions)

	out, err := assembler.Render(res, assembler.FormatJSON)
	require.NoError(t, err)
	assert.Contains(t, out, `"ingredients": []`)
	assert.Contains(t, out, `"instructions": []`)
	assert.NotContains(t, out, "null")
}

func TestProcess_FailedClassifier(t *testing.T) {
	boom := errors.New("model offline")
	src := mapSource{"u": page}
	res := New(failing{err: boom}).Process(context.Background(), src, "u")

	assert.Equal(t, models.StatusFailed, res.Status)
	assert.Contains(t, res.Reason, "model offline")
	assert.Equal(t, []string{}, res.Recipe.Ingredients)
	assert.Equal(t, []string{}, res.Recipe.Instructions)
}

type failing struct{ err error }

func (f failing) Classify(context.Context, []string) ([]models.Scores, error) { return nil, f.err }

func TestProcessAll_KeepsInputOrder(t *testing.T) {
	src := mapSource{
		"a": page,
		"c": "<html><body><main><p>Nothing to see</p></main></body></html>",
	}
	urls := []string{"a", "b", "c", "a"}

	for _, limit := range []int{0, 1, 3} {
		t.Run(fmt.Sprintf("limit=%d", limit), func(t *testing.T) {
			cc := &countingClassifier{inner: recipeScores()}
			results := New(cc).ProcessAll(context.Background(), src, urls, limit)

			require.Len(t, results, len(urls))
			for i, u := range urls {
				assert.Equal(t, u, results[i].URL)
			}
			assert.Equal(t, models.StatusFound, results[0].Status)
			assert.Equal(t, models.StatusUnreachable, results[1].Status)
			assert.Equal(t, models.StatusEmpty, results[2].Status)
			assert.Equal(t, models.StatusFound, results[3].Status)
			assert.Len(t, cc.batches, 3)
		})
	}
}
