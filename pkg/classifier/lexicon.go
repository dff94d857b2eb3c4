package classifier

import (
	"context"
	_ "embed"
	"fmt"
	"math"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dtnitsch/recipe-web-parser/models"
)

//go:embed weights.yaml
var defaultWeights []byte

// quantityRe matches a leading amount: 2, 1/2, 1.5, 2-3, ½, 1½.
var quantityRe = regexp.MustCompile(`^(\d+([./-]\d+)?[¼½¾⅓⅔⅛]?|[¼½¾⅓⅔⅛])$`)

var numberWords = map[string]struct{}{
	"a": {}, "an": {}, "one": {}, "two": {}, "three": {}, "four": {}, "five": {},
	"six": {}, "seven": {}, "eight": {}, "nine": {}, "ten": {}, "half": {},
}

type unit struct {
	Bias    float64            `yaml:"bias"`
	Weights map[string]float64 `yaml:"weights"`
}

type weightsFile struct {
	Ingredient  unit     `yaml:"ingredient"`
	Instruction unit     `yaml:"instruction"`
	ShortWords  int      `yaml:"short_words"`
	LongWords   int      `yaml:"long_words"`
	Units       []string `yaml:"units"`
	Verbs       []string `yaml:"verbs"`
}

// Lexicon is a small in-process model: hand-picked text features feed two
// independent logistic outputs. Weights are fixed at construction.
type Lexicon struct {
	ingredient  unit
	instruction unit
	shortWords  int
	longWords   int
	units       map[string]struct{}
	verbs       map[string]struct{}
}

// NewLexicon builds the classifier from the embedded default weights.
func NewLexicon() (*Lexicon, error) {
	return ParseLexicon(defaultWeights)
}

// LoadLexicon reads weights from a YAML file.
func LoadLexicon(path string) (*Lexicon, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read weights: %w", err)
	}
	return ParseLexicon(data)
}

// ParseLexicon builds the classifier from YAML weights.
func ParseLexicon(data []byte) (*Lexicon, error) {
	var wf weightsFile
	if err := yaml.Unmarshal(data, &wf); err != nil {
		return nil, fmt.Errorf("failed to parse weights: %w", err)
	}
	if len(wf.Ingredient.Weights) == 0 || len(wf.Instruction.Weights) == 0 {
		return nil, fmt.Errorf("weights file defines no features")
	}
	return &Lexicon{
		ingredient:  wf.Ingredient,
		instruction: wf.Instruction,
		shortWords:  wf.ShortWords,
		longWords:   wf.LongWords,
		units:       lowerSet(wf.Units),
		verbs:       lowerSet(wf.Verbs),
	}, nil
}

// Classify scores each text independently.
func (l *Lexicon) Classify(ctx context.Context, texts []string) ([]models.Scores, error) {
	out := make([]models.Scores, len(texts))
	for i, t := range texts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		f := l.features(t)
		out[i] = models.Scores{
			Ingredient:  l.ingredient.score(f),
			Instruction: l.instruction.score(f),
		}
	}
	return out, nil
}

func (u unit) score(features map[string]float64) float64 {
	z := u.Bias
	for name, w := range u.Weights {
		z += w * features[name]
	}
	return 1 / (1 + math.Exp(-z))
}

func (l *Lexicon) features(text string) map[string]float64 {
	f := make(map[string]float64, 7)
	tokens := tokenize(text)
	if len(tokens) == 0 {
		return f
	}

	if quantityRe.MatchString(tokens[0]) {
		f["leading_quantity"] = 1
	} else if _, ok := numberWords[tokens[0]]; ok && len(tokens) > 1 {
		if _, unitNext := l.units[tokens[1]]; unitNext {
			f["leading_quantity"] = 1
		}
	}
	if _, ok := l.verbs[tokens[0]]; ok {
		f["imperative_start"] = 1
	}
	for i, tok := range tokens {
		if _, ok := l.units[tok]; ok {
			f["unit"] = 1
		}
		if _, ok := l.verbs[tok]; ok && i > 0 {
			f["verb"] = 1
		}
	}

	trimmed := strings.TrimSpace(text)
	if strings.HasSuffix(trimmed, ".") || strings.HasSuffix(trimmed, "!") {
		f["sentence_end"] = 1
	}
	switch {
	case len(tokens) <= l.shortWords:
		f["short"] = 1
	case len(tokens) > l.longWords:
		f["long"] = 1
	}
	return f
}

func tokenize(text string) []string {
	fields := strings.Fields(strings.ToLower(text))
	tokens := fields[:0]
	for _, w := range fields {
		w = strings.Trim(w, `.,;:!?()"'`)
		if w != "" {
			tokens = append(tokens, w)
		}
	}
	return tokens
}

func lowerSet(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, it := range items {
		set[strings.ToLower(it)] = struct{}{}
	}
	return set
}
