package discord

import (
	"context"
	"errors"

	"github.com/bwmarrin/discordgo"

	"github.com/bottleneckco/discord-help/models"
)

// ErrNoPrivateMessage is returned by guild-bound checks invoked from a DM
var ErrNoPrivateMessage = errors.New("command cannot be used in private messages")

// PermissionState resolves a member's effective permissions in a channel.
// *discordgo.State satisfies it.
type PermissionState interface {
	UserChannelPermissions(userID, channelID string) (int64, error)
	MessagePermissions(m *discordgo.Message) (int64, error)
}

// GuildOnly rejects invocations outside of a guild
func GuildOnly() models.Check {
	return func(_ context.Context, inv models.Invoker) (bool, error) {
		if inv.InDM() {
			return false, ErrNoPrivateMessage
		}
		return true, nil
	}
}

// OwnerOnly lets only the bot owners through
func OwnerOnly(isOwner func(userID string) bool) models.Check {
	return func(_ context.Context, inv models.Invoker) (bool, error) {
		return isOwner(inv.UserID), nil
	}
}

// RequirePermissions passes when the invoker holds every bit of perms in the
// invoking channel, or is an administrator. Permissions carried by the
// invoker win; otherwise the member is looked up in state, and lookup
// failures (member not cached) are reported as errors.
func RequirePermissions(state PermissionState, perms int64) models.Check {
	return func(_ context.Context, inv models.Invoker) (bool, error) {
		if inv.InDM() {
			return false, ErrNoPrivateMessage
		}
		have := inv.Permissions
		if !inv.HasPermissions {
			var err error
			if have, err = state.UserChannelPermissions(inv.UserID, inv.ChannelID); err != nil {
				return false, err
			}
		}
		if have&discordgo.PermissionAdministrator != 0 {
			return true, nil
		}
		return have&perms == perms, nil
	}
}
