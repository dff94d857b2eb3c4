// Package detector enriches a processed page with metadata that is cheap
// to compute: title and site details from readability, and the language of
// the extracted text.
package detector

import (
	"net/url"
	"strings"

	"github.com/go-shiori/go-readability"
	"github.com/pemistahl/lingua-go"

	"github.com/dtnitsch/recipe-web-parser/models"
)

// minLanguageText is the shortest text worth running detection on.
const minLanguageText = 20

// supported covers the languages recipe sites are commonly written in.
var supported = []lingua.Language{
	lingua.English, lingua.French, lingua.German, lingua.Spanish,
	lingua.Italian, lingua.Portuguese, lingua.Dutch,
}

// Detector holds a language detector built once and shared read-only.
type Detector struct {
	languages lingua.LanguageDetector
}

func New() *Detector {
	return &Detector{
		languages: lingua.NewLanguageDetectorBuilder().
			FromLanguages(supported...).
			Build(),
	}
}

// Analyze returns page metadata. text is the page's extracted paragraph
// text; markup is only used for readability metadata. Fields that cannot be
// determined are left empty.
func (d *Detector) Analyze(rawURL, markup, text string) *models.PageMeta {
	meta := &models.PageMeta{}

	if article, ok := readArticle(rawURL, markup); ok {
		meta.Title = normalize(article.Title)
		meta.SiteName = normalize(article.SiteName)
		meta.Byline = normalize(article.Byline)
		meta.Excerpt = normalize(article.Excerpt)
	}
	if meta.SiteName == "" {
		meta.SiteName = siteFromURL(rawURL)
	}
	meta.Language = d.Language(text)
	return meta
}

// Language returns the ISO-639-1 code of text, or "" when unsure.
func (d *Detector) Language(text string) string {
	if len(strings.TrimSpace(text)) < minLanguageText {
		return ""
	}
	lang, ok := d.languages.DetectLanguageOf(text)
	if !ok {
		return ""
	}
	return strings.ToLower(lang.IsoCode639_1().String())
}

func readArticle(rawURL, markup string) (readability.Article, bool) {
	if strings.TrimSpace(markup) == "" {
		return readability.Article{}, false
	}
	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return readability.Article{}, false
	}
	parser := readability.NewParser()
	article, err := parser.Parse(strings.NewReader(markup), parsedURL)
	if err != nil {
		return readability.Article{}, false
	}
	return article, true
}

// siteFromURL falls back to the host without a leading "www.".
func siteFromURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
}

func normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
