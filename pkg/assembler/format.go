package assembler

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dtnitsch/recipe-web-parser/models"
)

const (
	ingredientSep  = ",\n\t\t"
	instructionSep = "\n\n\t\t"
)

// Format renders a recipe in the brace-delimited display format:
//
//	{
//
//		ingredients: [
//			2 cups flour,
//			1 egg
//		]
//
//		instructions: "
//			Mix.
//
//			Bake."
//	}
//
// It is not JSON. Empty lists render as an empty bracket pair and an empty
// quoted block.
func Format(r models.Recipe) string {
	var b strings.Builder
	b.WriteString("{\n\n\tingredients: [")
	if len(r.Ingredients) > 0 {
		b.WriteString("\n\t\t")
		b.WriteString(strings.Join(r.Ingredients, ingredientSep))
	}
	b.WriteString("\n\t]\n\n\tinstructions: \"")
	if len(r.Instructions) > 0 {
		b.WriteString("\n\t\t")
		b.WriteString(strings.Join(r.Instructions, instructionSep))
	}
	b.WriteString("\"\n}")
	return b.String()
}

// Output formats accepted by Render.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Render writes a result in the requested format. Text uses Format on the
// recipe alone; json and yaml include status and metadata.
func Render(res models.Result, format string) (string, error) {
	switch format {
	case "", FormatText:
		return Format(res.Recipe), nil
	case FormatJSON:
		data, err := json.MarshalIndent(res, "", "  ")
		if err != nil {
			return "", fmt.Errorf("failed to marshal JSON: %w", err)
		}
		return string(data), nil
	case FormatYAML:
		data, err := yaml.Marshal(res)
		if err != nil {
			return "", fmt.Errorf("failed to marshal YAML: %w", err)
		}
		return string(data), nil
	}
	return "", fmt.Errorf("unknown output format %q", format)
}
