package recipe

import (
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"github.com/dtnitsch/recipe-web-parser/models"
	"github.com/dtnitsch/recipe-web-parser/pkg/caching"
	"github.com/dtnitsch/recipe-web-parser/pkg/classifier"
	"github.com/dtnitsch/recipe-web-parser/pkg/detector"
	"github.com/dtnitsch/recipe-web-parser/pkg/fetcher"
	"github.com/dtnitsch/recipe-web-parser/pkg/labeler"
	"github.com/dtnitsch/recipe-web-parser/pkg/pipeline"
)

// loadConfig reads --config and applies flag overrides on top.
func loadConfig(c *cli.Context) (models.Config, error) {
	cfg, err := models.LoadConfig(c.String("config"))
	if err != nil {
		return cfg, err
	}
	if c.IsSet("urls") {
		cfg.URLs = splitURLs(c.String("urls"))
	}
	if c.IsSet("workers") {
		cfg.WorkerCount = c.Int("workers")
	}
	if c.IsSet("classifier") {
		cfg.Classifier.Kind = c.String("classifier")
	}
	if c.IsSet("model") {
		cfg.Classifier.Model = c.String("model")
	}
	if c.IsSet("db") {
		cfg.DBPath = c.String("db")
	}
	if c.IsSet("cache-dir") {
		cfg.Fetch.CacheDir = c.String("cache-dir")
	}
	return cfg, cfg.Validate()
}

// newClassifier builds the one classifier shared by every page of a run.
func newClassifier(cfg models.ClassifierConfig) (classifier.Classifier, error) {
	switch cfg.Kind {
	case "", "lexicon":
		if cfg.WeightsFile != "" {
			return classifier.LoadLexicon(cfg.WeightsFile)
		}
		return classifier.NewLexicon()
	case "openai":
		key := os.Getenv(cfg.APIKeyEnv)
		if key == "" {
			return nil, fmt.Errorf("classifier openai needs an API key in $%s", cfg.APIKeyEnv)
		}
		return classifier.NewOpenAIFromKey(key, cfg.BaseURL, cfg.Model), nil
	case "static":
		return &classifier.Static{}, nil
	}
	return nil, fmt.Errorf("unknown classifier kind %q", cfg.Kind)
}

func newPipeline(cfg models.Config, keepParagraphs bool) (*pipeline.Pipeline, error) {
	clf, err := newClassifier(cfg.Classifier)
	if err != nil {
		return nil, err
	}
	return pipeline.New(clf,
		pipeline.WithThresholds(labeler.Thresholds{
			Ingredient:  cfg.Thresholds.Ingredient,
			Instruction: cfg.Thresholds.Instruction,
		}),
		pipeline.WithDetector(detector.New()),
		pipeline.WithParagraphs(keepParagraphs),
		pipeline.WithLogger(log.Logger),
	), nil
}

func newFetcher(cfg models.FetchConfig) (*fetcher.Fetcher, error) {
	opts := []fetcher.Option{fetcher.WithLogger(log.Logger)}
	if cfg.CacheDir != "" {
		cache, err := caching.NewCache(cfg.CacheDir, cfg.CacheTTL)
		if err != nil {
			return nil, err
		}
		opts = append(opts, fetcher.WithCache(cache))
	}
	return fetcher.NewFetcher(cfg, opts...), nil
}

func splitURLs(s string) []string {
	var urls []string
	for _, u := range strings.Split(s, ",") {
		if u = strings.TrimSpace(u); u != "" {
			urls = append(urls, u)
		}
	}
	return urls
}
