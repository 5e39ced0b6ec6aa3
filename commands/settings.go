package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/bottleneckco/discord-help/discord"
	"github.com/bottleneckco/discord-help/models"
)

func (b *Bot) configCommand() *models.Command {
	var checks []models.Check
	if b.state != nil {
		checks = append(checks, discord.RequirePermissions(b.state, discordgo.PermissionManageServer))
	} else {
		checks = append(checks, discord.GuildOnly())
	}

	group := &models.Command{
		Name:     "config",
		Aliases:  []string{"cfg"},
		Help:     "Shows how the bot is configured. Requires Manage Server.",
		Category: "Admin",
		Checks:   checks,
	}
	group.AddChild(&models.Command{
		Name:    "show",
		Brief:   "Shows the current settings",
		Checks:  checks,
		Handler: b.configShow,
	})
	group.AddChild(&models.Command{
		Name:    "owners",
		Brief:   "Lists the bot owners",
		Checks:  checks,
		Handler: b.configOwners,
	})
	return group
}

func (b *Bot) configShow(ctx context.Context, inv models.Invoker, _ []string) error {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Prefix: `%s`\n", b.cfg.Prefix))
	sb.WriteString(fmt.Sprintf("Status interval: %s\n", b.cfg.StatusInterval))
	sb.WriteString(fmt.Sprintf("Embed color: #%06X\n", b.cfg.EmbedColor))
	if b.cfg.MetricsAddr != "" {
		sb.WriteString("Metrics: enabled\n")
	} else {
		sb.WriteString("Metrics: disabled\n")
	}
	return b.reply(ctx, inv, sb.String())
}

func (b *Bot) configOwners(ctx context.Context, inv models.Invoker, _ []string) error {
	if len(b.cfg.OwnerIDs) == 0 {
		return b.reply(ctx, inv, "No owners configured.")
	}
	mentions := make([]string, len(b.cfg.OwnerIDs))
	for i, id := range b.cfg.OwnerIDs {
		mentions[i] = fmt.Sprintf("<@%s>", id)
	}
	return b.reply(ctx, inv, "Owners: "+strings.Join(mentions, ", "))
}
