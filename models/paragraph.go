package models

import (
	"errors"
	"fmt"
)

// Paragraph is one unit of extracted text with a fixed document-order index.
type Paragraph struct {
	Index   int    `json:"index" yaml:"index"`
	Raw     string `json:"raw_text" yaml:"raw_text"`
	Cleaned string `json:"cleaned_text" yaml:"cleaned_text"`
}

// Scores holds the classifier's per-class confidence for one paragraph.
// The two values come from independent outputs and need not sum to 1.
type Scores struct {
	Ingredient  float64 `json:"ingredient_score" yaml:"ingredient_score"`
	Instruction float64 `json:"instruction_score" yaml:"instruction_score"`
}

// Label is the final classification of a paragraph.
type Label int

const (
	LabelNeither Label = iota
	LabelIngredient
	LabelInstruction
)

var ErrUnknownLabel = errors.New("unknown label")

func (l Label) String() string {
	switch l {
	case LabelIngredient:
		return "ingredient"
	case LabelInstruction:
		return "instruction"
	case LabelNeither:
		return "neither"
	}
	return fmt.Sprintf("label(%d)", int(l))
}

// ParseLabel is the inverse of Label.String.
func ParseLabel(s string) (Label, error) {
	switch s {
	case "ingredient":
		return LabelIngredient, nil
	case "instruction":
		return LabelInstruction, nil
	case "neither":
		return LabelNeither, nil
	}
	return LabelNeither, fmt.Errorf("%w: %q", ErrUnknownLabel, s)
}

func (l Label) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

func (l *Label) UnmarshalText(b []byte) error {
	parsed, err := ParseLabel(string(b))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

// Labeled binds a paragraph to the scores it was classified with and the
// resulting label.
type Labeled struct {
	Paragraph Paragraph `json:"paragraph" yaml:"paragraph"`
	Scores    Scores    `json:"scores" yaml:"scores"`
	Label     Label     `json:"label" yaml:"label"`
}
