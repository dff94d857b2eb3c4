// Package labeler turns classifier scores into exactly one label per
// paragraph. Text-pattern overrides run first; thresholds decide the rest.
package labeler

import (
	"strings"
	"unicode/utf8"

	"github.com/dtnitsch/recipe-web-parser/models"
)

const (
	// stepPrefix with a single trailing character, e.g. "Step 3".
	stepPrefix = "Step "
	stepLen    = 6

	scriptPrefix = "(function() {"
)

// Thresholds are strict lower bounds: a score must exceed them.
type Thresholds struct {
	Ingredient  float64
	Instruction float64
}

// Default is the precision-biased pair: ingredients need far more
// confidence than instructions.
var Default = Thresholds{
	Ingredient:  models.DefaultIngredientThreshold,
	Instruction: models.DefaultInstructionThreshold,
}

// Label applies the default thresholds.
func Label(p models.Paragraph, s models.Scores) models.Label {
	return Default.Label(p, s)
}

// Label decides the paragraph's label. First match wins:
//  1. "Step N" with a single character N is always an instruction
//  2. inline script text is always neither
//  3. instruction score, then ingredient score, against the thresholds
func (t Thresholds) Label(p models.Paragraph, s models.Scores) models.Label {
	text := p.Cleaned

	// Only single-digit steps match; "Step 10" falls through to the scores.
	if strings.HasPrefix(text, stepPrefix) && utf8.RuneCountInString(text) == stepLen {
		return models.LabelInstruction
	}
	if strings.HasPrefix(text, scriptPrefix) {
		return models.LabelNeither
	}

	switch {
	case s.Instruction > t.Instruction:
		return models.LabelInstruction
	case s.Ingredient > t.Ingredient:
		return models.LabelIngredient
	}
	return models.LabelNeither
}

// LabelAll labels paragraphs against scores bound by position. Callers must
// have checked that both slices have the same length.
func (t Thresholds) LabelAll(paragraphs []models.Paragraph, scores []models.Scores) []models.Labeled {
	out := make([]models.Labeled, len(paragraphs))
	for i, p := range paragraphs {
		out[i] = models.Labeled{
			Paragraph: p,
			Scores:    scores[i],
			Label:     t.Label(p, scores[i]),
		}
	}
	return out
}
