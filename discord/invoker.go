package discord

import (
	"github.com/bwmarrin/discordgo"

	"github.com/bottleneckco/discord-help/models"
)

// InvokerFromMessage identifies the author of a message. Guild messages carry
// the author's roles, which state resolves to channel permissions without the
// member being cached. state may be nil.
func InvokerFromMessage(state PermissionState, m *discordgo.Message) models.Invoker {
	inv := models.Invoker{ChannelID: m.ChannelID, GuildID: m.GuildID, MessageID: m.ID}
	if m.Author != nil {
		inv.UserID = m.Author.ID
	}
	if state != nil && m.GuildID != "" && m.Member != nil {
		if perms, err := state.MessagePermissions(m); err == nil {
			inv.Permissions, inv.HasPermissions = perms, true
		}
	}
	return inv
}

// InvokerFromInteraction identifies the user behind an interaction. Guild
// interactions carry a member whose permissions Discord already computed for
// the channel, DM interactions carry a user.
func InvokerFromInteraction(i *discordgo.Interaction) models.Invoker {
	inv := models.Invoker{ChannelID: i.ChannelID, GuildID: i.GuildID}
	if i.Message != nil {
		inv.MessageID = i.Message.ID
	}
	switch {
	case i.Member != nil && i.Member.User != nil:
		inv.UserID = i.Member.User.ID
		inv.Permissions, inv.HasPermissions = i.Member.Permissions, true
	case i.User != nil:
		inv.UserID = i.User.ID
	}
	return inv
}

// ReplyReference points a new message at the one that triggered inv
func ReplyReference(inv models.Invoker) *discordgo.MessageReference {
	if inv.MessageID == "" {
		return nil
	}
	return &discordgo.MessageReference{
		MessageID: inv.MessageID,
		ChannelID: inv.ChannelID,
		GuildID:   inv.GuildID,
	}
}
