package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/google/shlex"
	"go.uber.org/zap"

	"github.com/bottleneckco/discord-help/discord"
	"github.com/bottleneckco/discord-help/help"
	"github.com/bottleneckco/discord-help/models"
	"github.com/bottleneckco/discord-help/registry"
)

// HandleMessage is registered as the MessageCreate handler
func (b *Bot) HandleMessage(_ *discordgo.Session, m *discordgo.MessageCreate) {
	b.handleMessage(context.Background(), m.Message)
}

// HandleInteraction is registered as the InteractionCreate handler
func (b *Bot) HandleInteraction(_ *discordgo.Session, i *discordgo.InteractionCreate) {
	b.handleInteraction(context.Background(), i.Interaction)
}

func (b *Bot) handleMessage(ctx context.Context, message *discordgo.Message) {
	if message.Author == nil || message.Author.Bot {
		return
	}
	content, isCommand := b.stripPrefix(message.Content)
	if !isCommand {
		return
	}

	parts, err := shlex.Split(content)
	if err != nil {
		b.logger.Debug("could not split command", zap.String("content", message.Content), zap.Error(err))
		b.metrics.ObserveCommandError("parse")
		return
	}
	if len(parts) == 0 {
		return
	}

	cmd, args, ok := b.resolve(parts)
	if !ok {
		b.logger.Debug("unsupported command", zap.String("command", parts[0]))
		return
	}

	inv := discord.InvokerFromMessage(b.state, message)
	b.logger.Info("processing command",
		zap.String("command", cmd.QualifiedName()),
		zap.String("user", inv.UserID),
		zap.String("guild", inv.GuildID),
	)
	if err := b.invoke(ctx, inv, cmd, args); err != nil {
		b.metrics.ObserveCommandError("failed")
		b.logger.Error("command failed", zap.String("command", cmd.QualifiedName()), zap.Error(err))
	}
}

// stripPrefix removes the command prefix or a leading mention of the bot
func (b *Bot) stripPrefix(content string) (string, bool) {
	if strings.HasPrefix(content, b.cfg.Prefix) {
		return content[len(b.cfg.Prefix):], true
	}
	if b.state != nil && b.state.User != nil {
		for _, mention := range []string{"<@" + b.state.User.ID + ">", "<@!" + b.state.User.ID + ">"} {
			if strings.HasPrefix(content, mention) {
				return strings.TrimSpace(content[len(mention):]), true
			}
		}
	}
	return "", false
}

// resolve finds the deepest command named by parts; the rest are arguments
func (b *Bot) resolve(parts []string) (*models.Command, []string, bool) {
	cmd, err := b.registry.Resolve(parts)
	if err == nil {
		return cmd, nil, true
	}
	var rerr *registry.ResolveError
	if !errors.As(err, &rerr) || rerr.Parent == nil {
		return nil, nil, false
	}
	return rerr.Parent, parts[rerr.Depth:], true
}

func (b *Bot) invoke(ctx context.Context, inv models.Invoker, cmd *models.Command, args []string) error {
	if perm := b.registry.CheckPermission(ctx, inv, cmd); !perm.Usable() {
		b.metrics.ObserveCommandError("forbidden")
		if cmd.Hidden {
			return nil
		}
		return b.reply(ctx, inv, "You do not have permission to use this command.")
	}

	if wait, ok := b.cooldowns.Acquire(cmd, inv, b.now()); !ok {
		b.metrics.ObserveCommandError("cooldown")
		return b.reply(ctx, inv, fmt.Sprintf("You are on cooldown. Try again in %.1fs.", wait.Seconds()))
	}

	b.metrics.ObserveCommand(cmd.QualifiedName())
	if cmd.Handler == nil {
		out := discord.ChannelSender{Session: b.session, ChannelID: inv.ChannelID, ReplyTo: discord.ReplyReference(inv)}
		return b.help.RenderGroup(ctx, inv, out, cmd)
	}
	return cmd.Handler(ctx, inv, args)
}

func (b *Bot) handleInteraction(ctx context.Context, i *discordgo.Interaction) {
	if i.Type != discordgo.InteractionMessageComponent {
		return
	}
	data := i.MessageComponentData()
	if data.CustomID != help.SelectorCustomID || len(data.Values) == 0 {
		return
	}

	inv := discord.InvokerFromInteraction(i)
	editor := discord.InteractionEditor{Session: b.session, Interaction: i}

	err := b.help.Select(ctx, inv, editor, data.Values[0])
	switch {
	case errors.Is(err, help.ErrUnknownCategory):
		b.logger.Info("stale help selection", zap.String("value", data.Values[0]), zap.String("user", inv.UserID))
		if ackErr := editor.Acknowledge(ctx); ackErr != nil {
			b.logger.Warn("could not acknowledge interaction", zap.Error(ackErr))
		}
	case err != nil:
		b.logger.Error("help selection failed", zap.String("value", data.Values[0]), zap.Error(err))
	}
}
