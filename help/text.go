package help

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/bottleneckco/discord-help/models"
)

// TextWriter renders panels as plain text, used to print the catalog outside
// of Discord
type TextWriter struct {
	W io.Writer
}

func (t TextWriter) Send(_ context.Context, panel *models.Panel, selector *models.Selector) error {
	_, err := io.WriteString(t.W, FormatText(panel, selector))
	return err
}

func (t TextWriter) Edit(ctx context.Context, panel *models.Panel, selector *models.Selector) error {
	return t.Send(ctx, panel, selector)
}

// FormatText lays a panel out as lines of text
func FormatText(panel *models.Panel, selector *models.Selector) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("== %s ==\n", panel.Title))
	if panel.Description != "" {
		b.WriteString(panel.Description + "\n")
	}
	for _, f := range panel.Fields {
		b.WriteString(fmt.Sprintf("  %s: %s\n", f.Name, f.Value))
	}
	if selector != nil {
		b.WriteString(fmt.Sprintf("[%s]\n", selector.Placeholder))
		for _, opt := range selector.Options {
			if opt.Description != "" {
				b.WriteString(fmt.Sprintf("  - %s (%s)\n", opt.Label, opt.Description))
			} else {
				b.WriteString(fmt.Sprintf("  - %s\n", opt.Label))
			}
		}
	}
	if panel.Footer != "" {
		b.WriteString(panel.Footer + "\n")
	}
	return b.String()
}
