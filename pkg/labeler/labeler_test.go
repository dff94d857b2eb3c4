package labeler

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dtnitsch/recipe-web-parser/models"
)

func para(text string) models.Paragraph {
	return models.Paragraph{Index: 0, Raw: text, Cleaned: text}
}

func TestLabel(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		scores models.Scores
		want   models.Label
	}{
		{"step override with zero scores", "Step 1", models.Scores{}, models.LabelInstruction},
		{"step override beats ingredient score", "Step 9", models.Scores{Ingredient: 1}, models.LabelInstruction},
		{"two digit step is not overridden", "Step 10", models.Scores{}, models.LabelNeither},
		{"step with trailing text is not overridden", "Step 1: mix", models.Scores{}, models.LabelNeither},
		{"script override beats ingredient score", "(function() { ads(); })();", models.Scores{Ingredient: 1}, models.LabelNeither},
		{"script override beats instruction score", "(function() {", models.Scores{Instruction: 1}, models.LabelNeither},
		{"instruction just above threshold", "Stir well.", models.Scores{Instruction: 0.681}, models.LabelInstruction},
		{"instruction exactly at threshold", "Stir well.", models.Scores{Instruction: 0.68}, models.LabelNeither},
		{"ingredient just above threshold", "1 egg", models.Scores{Ingredient: 0.901}, models.LabelIngredient},
		{"ingredient exactly at threshold", "1 egg", models.Scores{Ingredient: 0.9}, models.LabelNeither},
		{"instruction checked before ingredient", "Add 1 egg.", models.Scores{Ingredient: 0.99, Instruction: 0.99}, models.LabelInstruction},
		{"low scores fall back to neither", "Subscribe!", models.Scores{Ingredient: 0.5, Instruction: 0.5}, models.LabelNeither},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Label(para(tt.text), tt.scores))
		})
	}
}

func TestThresholds_Custom(t *testing.T) {
	loose := Thresholds{Ingredient: 0.5, Instruction: 0.5}
	assert.Equal(t, models.LabelIngredient, loose.Label(para("salt"), models.Scores{Ingredient: 0.6}))
	assert.Equal(t, models.LabelNeither, Default.Label(para("salt"), models.Scores{Ingredient: 0.6}))
}

func TestLabelAll_BindsScoresByPosition(t *testing.T) {
	paragraphs := []models.Paragraph{
		{Index: 0, Cleaned: "2 cups flour"},
		{Index: 1, Cleaned: "Preheat oven."},
		{Index: 2, Cleaned: "Share this"},
	}
	scores := []models.Scores{
		{Ingredient: 0.95, Instruction: 0.05},
		{Ingredient: 0.1, Instruction: 0.8},
		{Ingredient: 0.1, Instruction: 0.1},
	}

	got := Default.LabelAll(paragraphs, scores)
	assert.Len(t, got, 3)
	for i := range got {
		assert.Equal(t, paragraphs[i], got[i].Paragraph)
		assert.Equal(t, scores[i], got[i].Scores)
	}
	assert.Equal(t, models.LabelIngredient, got[0].Label)
	assert.Equal(t, models.LabelInstruction, got[1].Label)
	assert.Equal(t, models.LabelNeither, got[2].Label)
}
