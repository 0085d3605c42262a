package markdown

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"
	styles "github.com/charmbracelet/glamour/styles"
)

func PrintGenerate(generateMarkdown func(w io.Writer)) error {
	var b strings.Builder
	generateMarkdown(&b)
	return Print(b.String())
}

func Print(markdown string) error {
	out, err := Render(markdown)
	if err != nil {
		return err
	}
	fmt.Print(out)
	return nil
}

func Render(markdown string) (string, error) {
	width := 120
	style := styles.NoTTYStyleConfig
	r, err := glamour.NewTermRenderer(
		glamour.WithStyles(style),
		glamour.WithWordWrap(int(width)), //nolint:gosec
		glamour.WithPreservedNewLines(),
	)
	if err != nil {
		return "", fmt.Errorf("unable to create renderer: %w", err)
	}
	out, err := r.Render(markdown)
	if err != nil {
		return "", fmt.Errorf("unable to render markdown: %w", err)
	}
	return out, nil
}
