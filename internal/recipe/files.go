package recipe

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dtnitsch/recipe-web-parser/pkg/pipeline"
)

const fileScheme = "file://"

// source serves file:// URLs from disk and everything else from web.
type source struct {
	web pipeline.Source
}

func (s source) GetHtml(ctx context.Context, rawURL string) (string, error) {
	if path, ok := strings.CutPrefix(rawURL, fileScheme); ok {
		data, err := os.ReadFile(filepath.FromSlash(path))
		if err != nil {
			return "", fmt.Errorf("failed to read file: %w", err)
		}
		return string(data), nil
	}
	if s.web == nil {
		return "", fmt.Errorf("no web source configured for %s", rawURL)
	}
	return s.web.GetHtml(ctx, rawURL)
}

func fileURL(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	return fileScheme + filepath.ToSlash(abs)
}
