package db

import (
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/dtnitsch/recipe-web-parser/models"
)

// ErrRunNotFound is returned when a run_id has no stored run.
var ErrRunNotFound = errors.New("run not found")

// Run is one stored pipeline execution.
type Run struct {
	RunID            int64
	URL              string
	Status           models.Status
	Reason           string
	Classifier       string
	ParagraphCount   int
	IngredientCount  int
	InstructionCount int
	Title            string
	Language         string
	RecipeText       string
	CreatedAt        time.Time
}

// InsertPage inserts a URL, returning its page_id. Existing URLs return
// their existing id.
func (db *DB) InsertPage(rawURL string) (int64, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return 0, fmt.Errorf("failed to parse URL: %w", err)
	}

	var existingID int64
	err = db.QueryRow("SELECT page_id FROM pages WHERE url = ?", rawURL).Scan(&existingID)
	if err == nil {
		return existingID, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("failed to check existing page: %w", err)
	}

	result, err := db.Exec(`INSERT INTO pages (url, domain) VALUES (?, ?)`, rawURL, parsed.Host)
	if err != nil {
		return 0, fmt.Errorf("failed to insert page: %w", err)
	}
	pageID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get page ID: %w", err)
	}
	return pageID, nil
}

// RecordResult stores a pipeline result and its recipe lines in one
// transaction, returning the run_id.
func (db *DB) RecordResult(res models.Result, classifierName string, paragraphCount int, recipeText string) (int64, error) {
	pageID, err := db.InsertPage(res.URL)
	if err != nil {
		return 0, err
	}

	tx, err := db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var title, language string
	if res.Meta != nil {
		title, language = res.Meta.Title, res.Meta.Language
	}

	result, err := tx.Exec(`
		INSERT INTO runs (page_id, status, reason, classifier, paragraph_count,
			ingredient_count, instruction_count, title, language, recipe_text)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, pageID, string(res.Status), res.Reason, classifierName, paragraphCount,
		len(res.Recipe.Ingredients), len(res.Recipe.Instructions), title, language, recipeText)
	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}
	runID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get run ID: %w", err)
	}

	if err := insertLines(tx, runID, models.LabelIngredient, res.Recipe.Ingredients); err != nil {
		return 0, err
	}
	if err := insertLines(tx, runID, models.LabelInstruction, res.Recipe.Instructions); err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit run: %w", err)
	}
	return runID, nil
}

func insertLines(tx *sql.Tx, runID int64, kind models.Label, lines []string) error {
	for i, line := range lines {
		_, err := tx.Exec(`INSERT INTO run_lines (run_id, kind, position, text) VALUES (?, ?, ?, ?)`,
			runID, kind.String(), i, line)
		if err != nil {
			return fmt.Errorf("failed to insert %s line: %w", kind, err)
		}
	}
	return nil
}

// ListRuns returns the most recent runs, newest first.
func (db *DB) ListRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := db.Query(`
		SELECT r.run_id, p.url, r.status, COALESCE(r.reason, ''), r.classifier,
			r.paragraph_count, r.ingredient_count, r.instruction_count,
			COALESCE(r.title, ''), COALESCE(r.language, ''), r.recipe_text, r.created_at
		FROM runs r
		JOIN pages p ON p.page_id = r.page_id
		ORDER BY r.run_id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var status string
		if err := rows.Scan(&r.RunID, &r.URL, &status, &r.Reason, &r.Classifier,
			&r.ParagraphCount, &r.IngredientCount, &r.InstructionCount,
			&r.Title, &r.Language, &r.RecipeText, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		r.Status = models.Status(status)
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// GetRecipe rebuilds the recipe stored for a run from its lines.
func (db *DB) GetRecipe(runID int64) (models.Recipe, error) {
	recipe := models.Recipe{Ingredients: []string{}, Instructions: []string{}}

	var found int64
	err := db.QueryRow("SELECT run_id FROM runs WHERE run_id = ?", runID).Scan(&found)
	if errors.Is(err, sql.ErrNoRows) {
		return recipe, fmt.Errorf("%w: %d", ErrRunNotFound, runID)
	}
	if err != nil {
		return recipe, fmt.Errorf("failed to load run: %w", err)
	}

	rows, err := db.Query(`
		SELECT kind, text FROM run_lines WHERE run_id = ? ORDER BY kind, position
	`, runID)
	if err != nil {
		return recipe, fmt.Errorf("failed to load run lines: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var kind, text string
		if err := rows.Scan(&kind, &text); err != nil {
			return recipe, fmt.Errorf("failed to scan run line: %w", err)
		}
		switch kind {
		case models.LabelIngredient.String():
			recipe.Ingredients = append(recipe.Ingredients, text)
		case models.LabelInstruction.String():
			recipe.Instructions = append(recipe.Instructions, text)
		}
	}
	return recipe, rows.Err()
}
