package discord

import (
	"github.com/bwmarrin/discordgo"

	"github.com/bottleneckco/discord-help/models"
)

// BotName returns how the bot is called where inv asked: the configured
// override, else its guild nickname, else its username
func BotName(state *discordgo.State, override string) func(models.Invoker) string {
	return func(inv models.Invoker) string {
		if override != "" {
			return override
		}
		if state == nil || state.User == nil {
			return "Bot"
		}
		if !inv.InDM() {
			if member, err := state.Member(inv.GuildID, state.User.ID); err == nil && member.Nick != "" {
				return member.Nick
			}
		}
		return state.User.Username
	}
}
