package commands

import (
	"context"

	"github.com/bottleneckco/discord-help/discord"
	"github.com/bottleneckco/discord-help/models"
)

func (b *Bot) helpCommand() *models.Command {
	return &models.Command{
		Name:     "help",
		Aliases:  []string{"h"},
		Usage:    "[command|category]",
		Brief:    "Shows this menu",
		Help:     "The help command for the bot",
		Category: "General",
		Handler:  b.showHelp,
	}
}

func (b *Bot) showHelp(ctx context.Context, inv models.Invoker, args []string) error {
	out := discord.ChannelSender{
		Session:   b.session,
		ChannelID: inv.ChannelID,
		ReplyTo:   discord.ReplyReference(inv),
	}
	return b.help.Dispatch(ctx, inv, out, args)
}
