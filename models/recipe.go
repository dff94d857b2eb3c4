package models

// Recipe is the assembled output: ingredient and instruction lines in the
// document order of the paragraphs they came from.
type Recipe struct {
	Ingredients  []string `json:"ingredients" yaml:"ingredients"`
	Instructions []string `json:"instructions" yaml:"instructions"`
}

// IsEmpty reports whether neither list has any entries.
func (r Recipe) IsEmpty() bool {
	return len(r.Ingredients) == 0 && len(r.Instructions) == 0
}

// Status describes how processing a single page ended.
type Status string

const (
	// StatusFound means at least one ingredient or instruction was assembled.
	StatusFound Status = "found"
	// StatusEmpty means the page was processed but nothing was recipe-like.
	StatusEmpty Status = "empty"
	// StatusUnreachable means the page could not be fetched.
	StatusUnreachable Status = "unreachable"
	// StatusFailed means the classifier errored or broke its batch contract.
	StatusFailed Status = "failed"
)

// PageMeta carries optional enrichment about the source page.
type PageMeta struct {
	Title    string `json:"title,omitempty" yaml:"title,omitempty"`
	SiteName string `json:"site_name,omitempty" yaml:"site_name,omitempty"`
	Byline   string `json:"byline,omitempty" yaml:"byline,omitempty"`
	Excerpt  string `json:"excerpt,omitempty" yaml:"excerpt,omitempty"`
	Language string `json:"language,omitempty" yaml:"language,omitempty"` // ISO-639-1
}

// Result is the outcome of running the pipeline for one page. Recipe is
// always set, even for unreachable or failed pages, so it can be formatted.
type Result struct {
	URL    string    `json:"url,omitempty" yaml:"url,omitempty"`
	Status Status    `json:"status" yaml:"status"`
	Reason string    `json:"reason,omitempty" yaml:"reason,omitempty"`
	Recipe Recipe    `json:"recipe" yaml:"recipe"`
	Meta   *PageMeta `json:"meta,omitempty" yaml:"meta,omitempty"`

	ParagraphCount int       `json:"paragraph_count" yaml:"paragraph_count"`
	Paragraphs     []Labeled `json:"paragraphs,omitempty" yaml:"paragraphs,omitempty"`
}

// emptyRecipe has non-nil lists so every status serializes the same way.
func emptyRecipe() Recipe {
	return Recipe{Ingredients: []string{}, Instructions: []string{}}
}

// NewResult derives the status from the recipe contents.
func NewResult(url string, recipe Recipe) Result {
	status := StatusFound
	if recipe.IsEmpty() {
		status = StatusEmpty
	}
	return Result{URL: url, Status: status, Recipe: recipe}
}

// Unreachable builds the result for a page that could not be fetched.
func Unreachable(url string, err error) Result {
	return Result{URL: url, Status: StatusUnreachable, Reason: err.Error(), Recipe: emptyRecipe()}
}

// Failed builds the result for a page whose pipeline run was aborted.
func Failed(url string, err error) Result {
	return Result{URL: url, Status: StatusFailed, Reason: err.Error(), Recipe: emptyRecipe()}
}
