// Package commands holds the bot's chat commands and routes Discord events to
// them.
package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"github.com/bottleneckco/discord-help/config"
	"github.com/bottleneckco/discord-help/discord"
	"github.com/bottleneckco/discord-help/help"
	"github.com/bottleneckco/discord-help/metrics"
	"github.com/bottleneckco/discord-help/models"
	"github.com/bottleneckco/discord-help/registry"
)

// Session is the part of *discordgo.Session the bot talks through
type Session interface {
	discord.MessageSender
	discord.InteractionResponder
}

// Bot owns the command catalog and answers messages and interactions
type Bot struct {
	session   Session
	state     *discordgo.State
	cfg       *config.Config
	registry  *registry.Registry
	help      *help.Dispatcher
	cooldowns *registry.CooldownTracker
	logger    *zap.Logger
	metrics   *metrics.Metrics
	started   time.Time
	now       func() time.Time

	// OnRefreshStatus is run by the owner-only refresh-status command
	OnRefreshStatus func()
}

// New builds the command catalog. state may be nil when running offline.
func New(session Session, state *discordgo.State, cfg *config.Config, logger *zap.Logger, m *metrics.Metrics) (*Bot, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	b := &Bot{
		session:   session,
		state:     state,
		cfg:       cfg,
		registry:  registry.New(),
		cooldowns: registry.NewCooldownTracker(4096, time.Hour),
		logger:    logger,
		metrics:   m,
		started:   time.Now(),
		now:       time.Now,
	}
	b.help = help.NewDispatcher(b.registry, help.Options{
		Prefix:  cfg.Prefix,
		BotName: discord.BotName(state, cfg.BotName),
		Color:   cfg.EmbedColor,
		Logger:  logger.Named("help"),
		Metrics: m,
	})

	if err := b.register(); err != nil {
		return nil, fmt.Errorf("register commands: %w", err)
	}
	return b, nil
}

// Registry exposes the command catalog
func (b *Bot) Registry() *registry.Registry {
	return b.registry
}

// Help exposes the help dispatcher
func (b *Bot) Help() *help.Dispatcher {
	return b.help
}

// StatusText is shown as the bot's presence
func (b *Bot) StatusText() string {
	return fmt.Sprintf("%shelp | %d commands", b.cfg.Prefix, len(b.registry.AllCommands()))
}

func (b *Bot) register() error {
	categories := []*models.Category{
		{Name: "General", Description: "Help and bot information"},
		{Name: "Fun", Description: "Dice and decisions"},
		{Name: "Admin", Description: "Server configuration"},
	}
	for _, c := range categories {
		if err := b.registry.AddCategory(c); err != nil {
			return err
		}
	}

	for _, cmd := range []*models.Command{
		b.helpCommand(),
		b.pingCommand(),
		b.statusCommand(),
		b.aboutCommand(),
		b.rollCommand(),
		b.chooseCommand(),
		b.configCommand(),
		b.refreshStatusCommand(),
	} {
		if err := b.registry.AddCommand(cmd); err != nil {
			return err
		}
	}
	return nil
}

func (b *Bot) reply(ctx context.Context, inv models.Invoker, content string) error {
	_, err := b.session.ChannelMessageSendComplex(inv.ChannelID, &discordgo.MessageSend{Content: content}, discordgo.WithContext(ctx))
	return err
}
