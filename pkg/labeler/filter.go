package labeler

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dtnitsch/recipe-web-parser/models"
)

// Filter selects labeled paragraphs for display, e.g. in the extract
// command. A nil Filter keeps everything.
type Filter struct {
	MinConfidence float64
	Labels        map[models.Label]struct{}
}

// ParseFilter reads "label:ingredient|instruction,conf:>=0.5". Both keys
// are optional; an empty string yields a no-op filter.
func ParseFilter(filterStr string) (*Filter, error) {
	filter := &Filter{}
	if filterStr == "" {
		return filter, nil
	}

	for _, part := range strings.Split(filterStr, ",") {
		kv := strings.SplitN(part, ":", 2)
		if len(kv) != 2 {
			return nil, fmt.Errorf("invalid filter part: %s", part)
		}
		key := strings.TrimSpace(kv[0])
		value := strings.TrimSpace(kv[1])

		switch key {
		case "conf":
			if !strings.HasPrefix(value, ">=") {
				return nil, fmt.Errorf("unsupported confidence operator in: %s", value)
			}
			f, err := strconv.ParseFloat(strings.TrimSpace(value[2:]), 64)
			if err != nil {
				return nil, fmt.Errorf("invalid confidence value: %s", value)
			}
			filter.MinConfidence = f
		case "label":
			filter.Labels = make(map[models.Label]struct{})
			for _, name := range strings.Split(value, "|") {
				l, err := models.ParseLabel(strings.TrimSpace(name))
				if err != nil {
					return nil, err
				}
				filter.Labels[l] = struct{}{}
			}
		default:
			return nil, fmt.Errorf("unknown filter key: %s", key)
		}
	}
	return filter, nil
}

// Apply keeps the paragraphs that pass; order is unchanged. Confidence is
// the higher of the two scores.
func (f *Filter) Apply(labeled []models.Labeled) []models.Labeled {
	if f == nil {
		return labeled
	}
	out := make([]models.Labeled, 0, len(labeled))
	for _, l := range labeled {
		if max(l.Scores.Ingredient, l.Scores.Instruction) < f.MinConfidence {
			continue
		}
		if len(f.Labels) > 0 {
			if _, ok := f.Labels[l.Label]; !ok {
				continue
			}
		}
		out = append(out, l)
	}
	return out
}
