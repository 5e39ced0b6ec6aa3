// Package help renders the bot's help menu: a root overview with a category
// selector, and detail panels for commands, command groups and categories.
//
// Nothing is kept between invocations. Every call reads the registry afresh
// and produces exactly one panel.
package help

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/bottleneckco/discord-help/metrics"
	"github.com/bottleneckco/discord-help/models"
	"github.com/bottleneckco/discord-help/registry"
)

// ErrUnknownCategory is returned by Select for a value that no longer names
// a category, e.g. after the catalog changed under an open menu
var ErrUnknownCategory = errors.New("unknown help category")

// Registry is the read-only view of the command catalog used to render help
type Registry interface {
	Mapping() []models.CategoryCommands
	Category(name string) (*models.Category, bool)
	Commands(category string) []*models.Command
	Resolve(path []string) (*models.Command, error)
	CheckPermission(ctx context.Context, inv models.Invoker, cmd *models.Command) registry.Permission
	Suggest(name string) []string
}

// Sender posts a new message. A nil selector sends the panel alone.
type Sender interface {
	Send(ctx context.Context, panel *models.Panel, selector *models.Selector) error
}

// Editor replaces the message a selector lives on. A nil selector removes
// every control from the message.
type Editor interface {
	Edit(ctx context.Context, panel *models.Panel, selector *models.Selector) error
}

// Options configures a Dispatcher
type Options struct {
	Prefix  string
	BotName func(inv models.Invoker) string
	Color   int
	Now     func() time.Time
	Logger  *zap.Logger
	Metrics *metrics.Metrics
}

// Dispatcher maps help requests to panels
type Dispatcher struct {
	registry Registry
	prefix   string
	botName  func(inv models.Invoker) string
	color    int
	now      func() time.Time
	logger   *zap.Logger
	metrics  *metrics.Metrics
}

// NewDispatcher creates a Dispatcher reading from reg
func NewDispatcher(reg Registry, opts Options) *Dispatcher {
	d := &Dispatcher{
		registry: reg,
		prefix:   opts.Prefix,
		botName:  opts.BotName,
		color:    opts.Color,
		now:      opts.Now,
		logger:   opts.Logger,
		metrics:  opts.Metrics,
	}
	if d.botName == nil {
		d.botName = func(models.Invoker) string { return "Bot" }
	}
	if d.color == 0 {
		d.color = Blurple
	}
	if d.now == nil {
		d.now = func() time.Time { return time.Now().UTC() }
	}
	if d.logger == nil {
		d.logger = zap.NewNop()
	}
	return d
}

// BotName is how the bot is called in the place inv asked from
func (d *Dispatcher) BotName(inv models.Invoker) string {
	return d.botName(inv)
}

// Dispatch answers "help", "help <command> [sub...]" and "help <category>"
func (d *Dispatcher) Dispatch(ctx context.Context, inv models.Invoker, out Sender, args []string) error {
	if len(args) == 0 {
		return d.RenderRoot(ctx, inv, out, d.registry.Mapping())
	}

	target := strings.Join(args, " ")
	if category, ok := d.registry.Category(target); ok {
		return d.RenderCategory(ctx, inv, out, category)
	}
	if target == registry.NoCategoryName {
		d.metrics.ObserveRender("category")
		return d.send(ctx, out, d.uncategorizedPanel(ctx, inv), nil)
	}

	cmd, err := d.registry.Resolve(args)
	var rerr *registry.ResolveError
	switch {
	case err == nil:
	case !errors.As(err, &rerr):
		return fmt.Errorf("resolve help target: %w", err)
	case rerr.Parent == nil:
		return d.renderNotFound(ctx, out, fmt.Sprintf("No command called %q found.", rerr.Name), d.registry.Suggest(rerr.Name))
	case errors.Is(err, registry.ErrNoSubcommands):
		return d.renderNotFound(ctx, out, fmt.Sprintf("Command %q has no subcommands.", rerr.Parent.QualifiedName()), nil)
	default:
		return d.renderNotFound(ctx, out, fmt.Sprintf("Command %q has no subcommand named %s", rerr.Parent.QualifiedName(), rerr.Name), nil)
	}

	if cmd.IsGroup() {
		return d.RenderGroup(ctx, inv, out, cmd)
	}
	return d.RenderCommand(ctx, inv, out, cmd)
}

// RenderRoot sends the overview panel with a selector offering every category
// that has at least one command visible to inv, followed by Close
func (d *Dispatcher) RenderRoot(ctx context.Context, inv models.Invoker, out Sender, mapping []models.CategoryCommands) error {
	selector := &models.Selector{
		CustomID:    SelectorCustomID,
		Placeholder: SelectorPlaceholder,
	}
	seen := map[string]bool{CloseLabel: true}

	for _, entry := range mapping {
		if len(d.filter(ctx, inv, entry.Commands)) == 0 {
			continue
		}
		name, description := registry.NoCategoryName, registry.NoCategoryDescription
		if entry.Category != nil {
			name = entry.Category.Name
			description = orDefault(entry.Category.Description, NoDescription)
		}
		if name == CloseLabel {
			d.logger.Warn("category shadowed by the close option", zap.String("category", name))
			continue
		}
		if len(selector.Options) == maxSelectorOptions-1 {
			d.logger.Warn("too many categories for the help selector, dropping the rest", zap.String("category", name))
			break
		}
		selector.Options = append(selector.Options, models.SelectorOption{
			Label:       uniqueLabel(seen, name),
			Value:       optionValue(name),
			Description: truncate(description, maxOptionText),
		})
	}
	selector.Options = append(selector.Options, models.SelectorOption{Label: CloseLabel, Value: CloseLabel})

	panel := d.newPanel(d.botName(inv)+" Help", "")
	d.metrics.ObserveRender("root")
	d.logger.Debug("rendering help overview", zap.String("user", inv.UserID), zap.Strings("options", selector.Labels()))
	return d.send(ctx, out, panel, selector)
}

// RenderCommand sends the detail panel of a single command
func (d *Dispatcher) RenderCommand(ctx context.Context, inv models.Invoker, out Sender, cmd *models.Command) error {
	panel := d.newPanel(Signature(d.prefix, cmd), orDefault(cmd.Brief, NoHelp))

	if cmd.Category != "" {
		panel.AddField("Category", cmd.Category, true)
	}

	usable := "No"
	perm := d.registry.CheckPermission(ctx, inv, cmd)
	d.metrics.ObservePermission(perm.String())
	if perm == registry.Indeterminate {
		d.logger.Debug("permission check failed, reporting command as unusable", zap.String("command", cmd.QualifiedName()))
	}
	if perm.Usable() {
		usable = "Yes"
	}
	panel.AddField("Usable", usable, true)

	if cmd.Cooldown != nil {
		panel.AddField("Cooldown", FormatCooldown(cmd.Cooldown), true)
	}

	d.metrics.ObserveRender("command")
	return d.send(ctx, out, panel, nil)
}

// RenderGroup sends the detail panel of a command group
func (d *Dispatcher) RenderGroup(ctx context.Context, inv models.Invoker, out Sender, group *models.Command) error {
	panel := d.listPanel(ctx, inv, Signature(d.prefix, group), group.Help, group.Children)
	d.metrics.ObserveRender("group")
	return d.send(ctx, out, panel, nil)
}

// RenderCategory sends the detail panel of a category
func (d *Dispatcher) RenderCategory(ctx context.Context, inv models.Invoker, out Sender, category *models.Category) error {
	panel := d.categoryPanel(ctx, inv, category)
	d.metrics.ObserveRender("category")
	return d.send(ctx, out, panel, nil)
}

// Select handles a choice made on the root selector by editing the message
// it is attached to. The selector is removed in every case.
func (d *Dispatcher) Select(ctx context.Context, inv models.Invoker, out Editor, value string) error {
	var panel *models.Panel

	switch value {
	case CloseLabel:
		panel = d.newPanel(d.botName(inv)+" Help", "")
	case registry.NoCategoryName:
		panel = d.uncategorizedPanel(ctx, inv)
	default:
		category, ok := d.categoryForValue(value)
		if !ok {
			d.metrics.ObserveSelection("stale")
			return fmt.Errorf("%w: %s", ErrUnknownCategory, value)
		}
		panel = d.categoryPanel(ctx, inv, category)
	}

	result := "category"
	if value == CloseLabel {
		result = "close"
	}
	d.metrics.ObserveSelection(result)
	d.logger.Debug("help selection", zap.String("user", inv.UserID), zap.String("value", value))

	if err := out.Edit(ctx, panel, nil); err != nil {
		return fmt.Errorf("edit help panel: %w", err)
	}
	return nil
}

// categoryForValue maps a selector value back to its category
func (d *Dispatcher) categoryForValue(value string) (*models.Category, bool) {
	if category, ok := d.registry.Category(value); ok {
		return category, true
	}
	for _, entry := range d.registry.Mapping() {
		if entry.Category != nil && optionValue(entry.Category.Name) == value {
			return entry.Category, true
		}
	}
	return nil, false
}

func (d *Dispatcher) categoryPanel(ctx context.Context, inv models.Invoker, category *models.Category) *models.Panel {
	return d.listPanel(ctx, inv, category.Name+" Category", category.Description, d.registry.Commands(category.Name))
}

func (d *Dispatcher) uncategorizedPanel(ctx context.Context, inv models.Invoker) *models.Panel {
	return d.listPanel(ctx, inv, registry.NoCategoryName, registry.NoCategoryDescription, d.registry.Commands(""))
}

// listPanel is shared by groups and categories: one field per visible command
func (d *Dispatcher) listPanel(ctx context.Context, inv models.Invoker, title, description string, cmds []*models.Command) *models.Panel {
	panel := d.newPanel(title, orDefault(description, NoHelp))
	for _, cmd := range d.filter(ctx, inv, cmds) {
		panel.AddField(Signature(d.prefix, cmd), orDefault(cmd.Brief, NoHelp), true)
	}
	return panel
}

// filter keeps the commands that are not hidden and that inv may run
func (d *Dispatcher) filter(ctx context.Context, inv models.Invoker, cmds []*models.Command) []*models.Command {
	var out []*models.Command
	for _, cmd := range cmds {
		if cmd.Hidden {
			continue
		}
		if d.registry.CheckPermission(ctx, inv, cmd).Usable() {
			out = append(out, cmd)
		}
	}
	return out
}

func (d *Dispatcher) renderNotFound(ctx context.Context, out Sender, title string, suggestions []string) error {
	description := ""
	if len(suggestions) > 0 {
		quoted := make([]string, len(suggestions))
		for i, s := range suggestions {
			quoted[i] = "`" + s + "`"
		}
		description = "Did you mean " + strings.Join(quoted, ", ") + "?"
	}
	d.metrics.ObserveRender("not_found")
	return d.send(ctx, out, d.newPanel(title, description), nil)
}

func (d *Dispatcher) send(ctx context.Context, out Sender, panel *models.Panel, selector *models.Selector) error {
	if err := out.Send(ctx, panel, selector); err != nil {
		return fmt.Errorf("send help panel: %w", err)
	}
	return nil
}
