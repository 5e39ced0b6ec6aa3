package help

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/cespare/xxhash/v2"

	"github.com/bottleneckco/discord-help/models"
)

const (
	// Footer is shown on every help panel
	Footer = "Use help [command] or help [category] for more information | <> is required | [] is optional"

	// Blurple is the embed color of help panels
	Blurple = 0x5865F2

	// NoHelp stands in for a missing command brief or category description
	NoHelp = "No help found..."
	// NoDescription stands in for a category without description on the selector
	NoDescription = "No description"
	// CloseLabel is the selector entry that resets the panel
	CloseLabel = "Close"

	// SelectorCustomID routes selector interactions back to the dispatcher
	SelectorCustomID = "help:select"
	// SelectorPlaceholder is shown on the selector before a choice is made
	SelectorPlaceholder = "Select a category"

	// Discord rejects select menus with more options or longer texts
	maxSelectorOptions = 25
	maxOptionText      = 100
)

func (d *Dispatcher) newPanel(title, description string) *models.Panel {
	return &models.Panel{
		Title:       title,
		Description: description,
		Timestamp:   d.now(),
		Footer:      Footer,
		Color:       d.color,
	}
}

func orDefault(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}

// Signature formats how a command is invoked, e.g. "!config [prefix|p] <value>"
func Signature(prefix string, cmd *models.Command) string {
	var parents []string
	for p := cmd.Parent; p != nil; p = p.Parent {
		parents = append([]string{p.Name}, parents...)
	}

	name := cmd.Name
	if len(cmd.Aliases) > 0 {
		name = fmt.Sprintf("[%s|%s]", cmd.Name, strings.Join(cmd.Aliases, "|"))
	}
	if len(parents) > 0 {
		name = strings.Join(parents, " ") + " " + name
	}
	return strings.TrimSpace(fmt.Sprintf("%s%s %s", prefix, name, cmd.Usage))
}

// FormatCooldown renders a policy as "<rate> per <seconds> seconds"
func FormatCooldown(cd *models.Cooldown) string {
	return fmt.Sprintf("%d per %.0f seconds", cd.Rate, cd.Per.Seconds())
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}

// optionValue fits a category name into a selector value. Long names keep a
// prefix and get a hash of the full name so distinct names stay distinct.
func optionValue(name string) string {
	if utf8.RuneCountInString(name) <= maxOptionText {
		return name
	}
	suffix := fmt.Sprintf("#%08x", uint32(xxhash.Sum64String(name)))
	return string([]rune(name)[:maxOptionText-len(suffix)]) + suffix
}

// uniqueLabel truncates label to the option limit and numbers repeats
func uniqueLabel(seen map[string]bool, label string) string {
	out := truncate(label, maxOptionText)
	for n := 2; seen[out]; n++ {
		suffix := fmt.Sprintf(" (%d)", n)
		out = truncate(label, maxOptionText-len(suffix)) + suffix
	}
	seen[out] = true
	return out
}
