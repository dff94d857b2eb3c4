package common

import (
	"net/url"
	"regexp"
	"strings"
)

var (
	// [text](https://site/page) -> https://site/page
	markdownLink = regexp.MustCompile(`^\[.*?\]\((https?://[^\)]+)\)$`)
	// scheme, a plausible host, optional path
	urlShape = regexp.MustCompile(`^https?://[a-zA-Z0-9][-a-zA-Z0-9.]*[a-zA-Z0-9](:\d+)?(/[^\s]*)?$`)
)

// SanitizeURL undoes common copy-paste damage: surrounding whitespace,
// markdown link syntax, wrapping brackets or quotes, trailing punctuation.
func SanitizeURL(rawURL string) string {
	cleaned := strings.TrimSpace(rawURL)
	if m := markdownLink.FindStringSubmatch(cleaned); len(m) > 1 {
		cleaned = m[1]
	}
	cleaned = strings.TrimRight(cleaned, `,.)}]"'>;`)
	cleaned = strings.TrimLeft(cleaned, `([<"'`)
	return strings.TrimSpace(cleaned)
}

// SanitizeAndValidateURLs returns the cleaned http(s) URLs and, separately,
// the original form of every input that is still malformed after cleanup.
func SanitizeAndValidateURLs(urls []string) (valid []string, invalid []string) {
	valid = make([]string, 0, len(urls))
	for _, rawURL := range urls {
		cleaned := SanitizeURL(rawURL)
		if !isFetchable(cleaned) {
			invalid = append(invalid, rawURL)
			continue
		}
		valid = append(valid, cleaned)
	}
	return valid, invalid
}

func isFetchable(u string) bool {
	if u == "" || strings.Contains(u, " ") || !urlShape.MatchString(u) {
		return false
	}
	parsed, err := url.Parse(u)
	if err != nil {
		return false
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return false
	}
	return parsed.Host != "" && !strings.ContainsAny(parsed.Host, `{}[]<>"'`)
}
