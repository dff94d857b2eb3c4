package recipe

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"github.com/dtnitsch/recipe-web-parser/internal/common"
	"github.com/dtnitsch/recipe-web-parser/models"
	"github.com/dtnitsch/recipe-web-parser/pkg/assembler"
	"github.com/dtnitsch/recipe-web-parser/pkg/db"
	"github.com/dtnitsch/recipe-web-parser/pkg/labeler"
)

// ParseAction extracts a recipe from every --urls entry and --file path and
// prints one rendered result per page.
func ParseAction(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return cli.Exit(err.Error(), 2)
	}

	targets, invalid := common.SanitizeAndValidateURLs(cfg.URLs)
	if len(invalid) > 0 {
		return cli.Exit(fmt.Sprintf("%d URL(s) are malformed even after cleanup: %s",
			len(invalid), strings.Join(invalid, ", ")), 1)
	}
	for _, path := range c.StringSlice("file") {
		targets = append(targets, fileURL(path))
	}
	if len(targets) == 0 {
		return cli.Exit(`no pages given; use --urls "https://a,https://b" or --file page.html`, 1)
	}

	p, err := newPipeline(cfg, c.Bool("include-paragraphs"))
	if err != nil {
		return cli.Exit(err.Error(), 2)
	}
	f, err := newFetcher(cfg.Fetch)
	if err != nil {
		return cli.Exit(err.Error(), 2)
	}

	var history *db.DB
	if !c.Bool("no-history") {
		history, err = db.Open(cfg.DBPath)
		if err != nil {
			return cli.Exit(err.Error(), 2)
		}
		defer history.Close()
	}

	log.Info().Int("pages", len(targets)).Int("workers", cfg.WorkerCount).Str("classifier", cfg.Classifier.Kind).Msg("starting")
	results := p.ProcessAll(c.Context, source{web: f}, targets, cfg.WorkerCount)

	failed := 0
	for _, res := range results {
		if res.Status == models.StatusUnreachable || res.Status == models.StatusFailed {
			failed++
		}
		out, err := assembler.Render(res, c.String("format"))
		if err != nil {
			return cli.Exit(err.Error(), 2)
		}
		if len(results) > 1 && c.String("format") == assembler.FormatText {
			fmt.Fprintf(c.App.Writer, "# %s (%s)\n", res.URL, res.Status)
		}
		fmt.Fprintln(c.App.Writer, out)

		if history != nil {
			text := assembler.Format(res.Recipe)
			if _, err := history.RecordResult(res, cfg.Classifier.Kind, res.ParagraphCount, text); err != nil {
				log.Warn().Err(err).Str("url", res.URL).Msg("failed to record run")
			}
		}
	}

	if failed > 0 {
		return cli.Exit(fmt.Sprintf("%d of %d pages could not be processed", failed, len(results)), 1)
	}
	return nil
}

// ExtractAction prints each paragraph of one page with its scores and label.
func ExtractAction(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return cli.Exit(err.Error(), 2)
	}
	filter, err := labeler.ParseFilter(c.String("filter"))
	if err != nil {
		return cli.Exit(err.Error(), 2)
	}

	var target string
	switch {
	case c.IsSet("file"):
		target = fileURL(c.String("file"))
	case c.Args().Present():
		target = c.Args().First()
	default:
		return cli.Exit("usage: extract <url> | extract --file page.html", 1)
	}

	p, err := newPipeline(cfg, true)
	if err != nil {
		return cli.Exit(err.Error(), 2)
	}
	f, err := newFetcher(cfg.Fetch)
	if err != nil {
		return cli.Exit(err.Error(), 2)
	}

	res := p.Process(c.Context, source{web: f}, target)
	if res.Status == models.StatusUnreachable || res.Status == models.StatusFailed {
		return cli.Exit(fmt.Sprintf("%s: %s", res.Status, res.Reason), 1)
	}
	return writeParagraphs(c.App.Writer, filter.Apply(res.Paragraphs))
}

func writeParagraphs(w io.Writer, labeled []models.Labeled) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "INDEX\tLABEL\tINGREDIENT\tINSTRUCTION\tTEXT")
	for _, l := range labeled {
		fmt.Fprintf(tw, "%d\t%s\t%.3f\t%.3f\t%s\n",
			l.Paragraph.Index, l.Label, l.Scores.Ingredient, l.Scores.Instruction, l.Paragraph.Cleaned)
	}
	return tw.Flush()
}
