// Package markdown renders task descriptions for terminal output.
package markdown

import (
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/styles"
)

type textRenderer interface {
	Render(string) (string, error)
}

var (
	rendererMu sync.Mutex
	renderers  = map[int]textRenderer{}
)

// SafeRender formats markdown text for terminal output. A renderer
// failure of any kind falls back to the cleaned-up input.
func SafeRender(width, indent int, input []byte) (out []byte) {
	value := normalizeNewlines(string(input))
	value = strings.TrimRight(value, "\r\n")
	defer func() {
		if recover() != nil {
			out = indentedBytes(value, indent)
		}
	}()
	return render(width, indent, value)
}

func render(width, indent int, value string) []byte {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	if width < 1 {
		width = 1
	}
	if indent < 0 {
		indent = 0
	}
	renderWidth := width - indent
	if renderWidth < 1 {
		renderWidth = 1
	}

	renderer := markdownRenderer(renderWidth)
	rendered := value
	if renderer != nil {
		formatted, err := renderer.Render(value)
		if err == nil {
			rendered = formatted
		}
	}
	rendered = strings.TrimRight(rendered, "\r\n")
	if strings.TrimSpace(rendered) == "" {
		return nil
	}
	return indentedBytes(rendered, indent)
}

func markdownRenderer(width int) textRenderer {
	rendererMu.Lock()
	defer rendererMu.Unlock()
	if cached, ok := renderers[width]; ok {
		return cached
	}
	style := styles.ASCIIStyleConfig
	style.Item.BlockPrefix = "- "
	created, err := glamour.NewTermRenderer(
		glamour.WithStyles(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil
	}
	renderers[width] = created
	return created
}

func normalizeNewlines(value string) string {
	if value == "" {
		return value
	}
	value = strings.ReplaceAll(value, "\r\n", "\n")
	return strings.ReplaceAll(value, "\r", "\n")
}

func indentedBytes(value string, spaces int) []byte {
	if value == "" {
		return nil
	}
	if spaces <= 0 {
		return []byte(value)
	}
	prefix := strings.Repeat(" ", spaces)
	lines := strings.Split(value, "\n")
	for i, line := range lines {
		lines[i] = prefix + line
	}
	return []byte(strings.Join(lines, "\n"))
}
