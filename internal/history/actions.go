package history

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/urfave/cli/v2"

	"github.com/dtnitsch/recipe-web-parser/models"
	"github.com/dtnitsch/recipe-web-parser/pkg/assembler"
	dbpkg "github.com/dtnitsch/recipe-web-parser/pkg/db"
)

// ListAction prints recent runs, or the stored recipe of one run when a
// run ID is given.
func ListAction(c *cli.Context) error {
	cfg, err := models.LoadConfig(c.String("config"))
	if err != nil {
		return cli.Exit(err.Error(), 2)
	}
	path := cfg.DBPath
	if c.IsSet("db") {
		path = c.String("db")
	}

	database, err := dbpkg.Open(path)
	if err != nil {
		return cli.Exit(err.Error(), 2)
	}
	defer database.Close()

	if c.Args().Present() {
		runID, err := strconv.ParseInt(c.Args().First(), 10, 64)
		if err != nil {
			return cli.Exit(fmt.Sprintf("invalid run ID: %s", c.Args().First()), 1)
		}
		recipe, err := database.GetRecipe(runID)
		if err != nil {
			return cli.Exit(err.Error(), 2)
		}
		fmt.Fprintln(c.App.Writer, assembler.Format(recipe))
		return nil
	}

	runs, err := database.ListRuns(c.Int("limit"))
	if err != nil {
		return cli.Exit(err.Error(), 2)
	}
	if len(runs) == 0 {
		fmt.Fprintln(c.App.Writer, "no runs recorded yet; run 'recipe-web-parser parse --urls ...' first")
		return nil
	}

	tw := tabwriter.NewWriter(c.App.Writer, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "RUN\tWHEN\tSTATUS\tING\tINS\tCLASSIFIER\tURL")
	for _, r := range runs {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%d\t%s\t%s\n",
			r.RunID, r.CreatedAt.Format("2006-01-02 15:04"), r.Status,
			r.IngredientCount, r.InstructionCount, r.Classifier, r.URL)
	}
	return tw.Flush()
}
