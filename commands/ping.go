package commands

import (
	"context"
	"fmt"

	"github.com/bottleneckco/discord-help/models"
)

func (b *Bot) pingCommand() *models.Command {
	return &models.Command{
		Name:     "ping",
		Brief:    "Checks that the bot is alive",
		Category: "General",
		Handler: func(ctx context.Context, inv models.Invoker, _ []string) error {
			return b.reply(ctx, inv, "pong")
		},
	}
}

func (b *Bot) aboutCommand() *models.Command {
	return &models.Command{
		Name:     "about",
		Brief:    "What this bot is",
		Category: "General",
		Handler: func(ctx context.Context, inv models.Invoker, _ []string) error {
			name := b.help.BotName(inv)
			return b.reply(ctx, inv, fmt.Sprintf("%s is a help menu bot. Browse the commands with `%shelp`.", name, b.cfg.Prefix))
		},
	}
}
