// Package pipeline runs extraction, classification, labeling and assembly
// for a page. Stages run strictly in sequence; each stage's output is fully
// built before the next starts.
package pipeline

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/dtnitsch/recipe-web-parser/models"
	"github.com/dtnitsch/recipe-web-parser/pkg/assembler"
	"github.com/dtnitsch/recipe-web-parser/pkg/classifier"
	"github.com/dtnitsch/recipe-web-parser/pkg/detector"
	"github.com/dtnitsch/recipe-web-parser/pkg/extractor"
	"github.com/dtnitsch/recipe-web-parser/pkg/labeler"
)

// Source supplies page markup for a URL.
type Source interface {
	GetHtml(ctx context.Context, rawURL string) (string, error)
}

// Pipeline holds only read-only collaborators, so one value can serve any
// number of pages at once.
type Pipeline struct {
	extractor      *extractor.Extractor
	classifier     classifier.Classifier
	thresholds     labeler.Thresholds
	detector       *detector.Detector
	keepParagraphs bool
	logger         zerolog.Logger
}

type Option func(*Pipeline)

func WithExtractor(e *extractor.Extractor) Option {
	return func(p *Pipeline) { p.extractor = e }
}

func WithThresholds(t labeler.Thresholds) Option {
	return func(p *Pipeline) { p.thresholds = t }
}

// WithDetector attaches page metadata to every result.
func WithDetector(d *detector.Detector) Option {
	return func(p *Pipeline) { p.detector = d }
}

// WithParagraphs keeps every labeled paragraph on the result.
func WithParagraphs(keep bool) Option {
	return func(p *Pipeline) { p.keepParagraphs = keep }
}

func WithLogger(l zerolog.Logger) Option {
	return func(p *Pipeline) { p.logger = l }
}

func New(c classifier.Classifier, opts ...Option) *Pipeline {
	p := &Pipeline{
		extractor:  extractor.New(),
		classifier: c,
		thresholds: labeler.Default,
		logger:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run processes markup already in hand. The only error is a classifier
// failure, including a broken batch contract; empty pages are not errors.
func (p *Pipeline) Run(ctx context.Context, rawURL, markup string) (models.Result, error) {
	paragraphs := p.extractor.Extract(markup)

	labeled := []models.Labeled{}
	if len(paragraphs) > 0 {
		texts := make([]string, len(paragraphs))
		for i, para := range paragraphs {
			texts[i] = para.Cleaned
		}
		scores, err := classifier.ClassifyChecked(ctx, p.classifier, texts)
		if err != nil {
			return models.Failed(rawURL, err), err
		}
		labeled = p.thresholds.LabelAll(paragraphs, scores)
	}

	res := models.NewResult(rawURL, assembler.Assemble(labeled))
	res.ParagraphCount = len(paragraphs)
	if p.detector != nil {
		res.Meta = p.detector.Analyze(rawURL, markup, joinCleaned(paragraphs))
	}
	if p.keepParagraphs {
		res.Paragraphs = labeled
	}

	p.logger.Info().
		Str("url", rawURL).
		Int("paragraphs", len(paragraphs)).
		Int("ingredients", len(res.Recipe.Ingredients)).
		Int("instructions", len(res.Recipe.Instructions)).
		Str("status", string(res.Status)).
		Msg("page processed")
	return res, nil
}

// Process fetches a page and runs it. It never returns an error: fetch
// failures become unreachable results and classifier failures become
// failed results, both carrying an empty recipe.
func (p *Pipeline) Process(ctx context.Context, src Source, rawURL string) models.Result {
	markup, err := src.GetHtml(ctx, rawURL)
	if err != nil {
		p.logger.Warn().Err(err).Str("url", rawURL).Msg("fetch failed")
		return models.Unreachable(rawURL, err)
	}
	res, err := p.Run(ctx, rawURL, markup)
	if err != nil {
		p.logger.Error().Err(err).Str("url", rawURL).Msg("pipeline aborted")
	}
	return res
}

// ProcessAll runs independent pages concurrently and returns results in
// the order of urls. limit bounds concurrency; zero or less means no bound.
func (p *Pipeline) ProcessAll(ctx context.Context, src Source, urls []string, limit int) []models.Result {
	results := make([]models.Result, len(urls))
	g, gctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i, u := range urls {
		i, u := i, u
		g.Go(func() error {
			results[i] = p.Process(gctx, src, u)
			return nil
		})
	}
	_ = g.Wait()
	return results
}

func joinCleaned(paragraphs []models.Paragraph) string {
	parts := make([]string, len(paragraphs))
	for i, para := range paragraphs {
		parts[i] = para.Cleaned
	}
	return strings.Join(parts, " ")
}
