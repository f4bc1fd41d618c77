package report

import (
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
)

const defaultWidth = 80

var (
	rendererMu sync.Mutex
	renderers  = map[int]*glamour.TermRenderer{}
)

// RenderMarkdown formats markdown for the terminal, wrapping at width
func RenderMarkdown(md string, width int) (string, error) {
	if strings.TrimSpace(md) == "" {
		return "", nil
	}
	if width < 20 {
		width = defaultWidth
	}
	r, err := markdownRenderer(width)
	if err != nil {
		return "", err
	}
	out, err := r.Render(md)
	if err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}
	return out, nil
}

func markdownRenderer(width int) (*glamour.TermRenderer, error) {
	rendererMu.Lock()
	defer rendererMu.Unlock()
	if cached, ok := renderers[width]; ok {
		return cached, nil
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
		glamour.WithEmoji(),
	)
	if err != nil {
		return nil, fmt.Errorf("creating markdown renderer: %w", err)
	}
	renderers[width] = r
	return r, nil
}
