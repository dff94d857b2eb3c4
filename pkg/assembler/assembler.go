// Package assembler partitions labeled paragraphs into a Recipe and renders
// it in the display format.
package assembler

import (
	"sort"

	"github.com/dtnitsch/recipe-web-parser/models"
)

// Assemble builds the recipe in ascending paragraph index order. Neither
// paragraphs are dropped; nothing is deduplicated.
func Assemble(labeled []models.Labeled) models.Recipe {
	ordered := make([]models.Labeled, len(labeled))
	copy(ordered, labeled)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Paragraph.Index < ordered[j].Paragraph.Index
	})

	recipe := models.Recipe{
		Ingredients:  []string{},
		Instructions: []string{},
	}
	for _, l := range ordered {
		switch l.Label {
		case models.LabelIngredient:
			recipe.Ingredients = append(recipe.Ingredients, l.Paragraph.Cleaned)
		case models.LabelInstruction:
			recipe.Instructions = append(recipe.Instructions, l.Paragraph.Cleaned)
		}
	}
	return recipe
}
