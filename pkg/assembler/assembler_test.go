package assembler

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dtnitsch/recipe-web-parser/models"
)

func labeled(index int, text string, l models.Label) models.Labeled {
	return models.Labeled{
		Paragraph: models.Paragraph{Index: index, Raw: text, Cleaned: text},
		Label:     l,
	}
}

func TestAssemble_PartitionsInIndexOrder(t *testing.T) {
	input := []models.Labeled{
		labeled(3, "Bake 20 minutes.", models.LabelInstruction),
		labeled(0, "2 cups flour", models.LabelIngredient),
		labeled(4, "Jump to recipe", models.LabelNeither),
		labeled(1, "1 egg", models.LabelIngredient),
		labeled(2, "Mix everything.", models.LabelInstruction),
	}

	got := Assemble(input)
	assert.Equal(t, []string{"2 cups flour", "1 egg"}, got.Ingredients)
	assert.Equal(t, []string{"Mix everything.", "Bake 20 minutes."}, got.Instructions)
	// input untouched
	assert.Equal(t, 3, input[0].Paragraph.Index)
}

func TestAssemble_KeepsDuplicates(t *testing.T) {
	got := Assemble([]models.Labeled{
		labeled(0, "1 egg", models.LabelIngredient),
		labeled(1, "1 egg", models.LabelIngredient),
	})
	assert.Equal(t, []string{"1 egg", "1 egg"}, got.Ingredients)
}

func TestAssemble_NeverIncludesNeither(t *testing.T) {
	input := []models.Labeled{
		labeled(0, "Comments", models.LabelNeither),
		labeled(1, "Share", models.LabelNeither),
	}
	got := Assemble(input)
	assert.Empty(t, got.Ingredients)
	assert.Empty(t, got.Instructions)
	assert.True(t, got.IsEmpty())
}

func TestAssemble_Empty(t *testing.T) {
	got := Assemble(nil)
	assert.NotNil(t, got.Ingredients)
	assert.NotNil(t, got.Instructions)
	assert.True(t, got.IsEmpty())
}
