package commands

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bottleneckco/discord-help/discord"
	"github.com/bottleneckco/discord-help/models"
)

func (b *Bot) statusCommand() *models.Command {
	return &models.Command{
		Name:     "status",
		Brief:    "Shows guild and command counts",
		Category: "General",
		Cooldown: &models.Cooldown{Rate: 1, Per: 10 * time.Second, Bucket: models.BucketChannel},
		Handler:  b.status,
	}
}

func (b *Bot) status(ctx context.Context, inv models.Invoker, _ []string) error {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Guild Count: %d\n", b.guildCount()))

	mapping := b.registry.Mapping()
	commandCount := 0
	for _, entry := range mapping {
		commandCount += len(entry.Commands)
	}
	sb.WriteString(fmt.Sprintf("Categories: %d\n", len(mapping)))
	sb.WriteString(fmt.Sprintf("Commands: %d\n", commandCount))
	sb.WriteString(fmt.Sprintf("Uptime: %s\n", b.now().Sub(b.started).Truncate(time.Second)))

	return b.reply(ctx, inv, fmt.Sprintf("<@%s> current status:\n%s", inv.UserID, sb.String()))
}

func (b *Bot) guildCount() int {
	if b.state == nil {
		return 0
	}
	b.state.RLock()
	defer b.state.RUnlock()
	return len(b.state.Guilds)
}

func (b *Bot) refreshStatusCommand() *models.Command {
	return &models.Command{
		Name:    "refresh-status",
		Brief:   "Updates the bot presence now",
		Hidden:  true,
		Checks:  []models.Check{discord.OwnerOnly(b.cfg.IsOwner)},
		Handler: b.refreshStatus,
	}
}

func (b *Bot) refreshStatus(ctx context.Context, inv models.Invoker, _ []string) error {
	if b.OnRefreshStatus == nil {
		return b.reply(ctx, inv, "Presence updates are not running.")
	}
	b.OnRefreshStatus()
	return b.reply(ctx, inv, fmt.Sprintf("Presence set to %q", b.StatusText()))
}
