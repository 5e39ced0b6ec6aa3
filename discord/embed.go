// Package discord adapts help panels and selectors to discordgo messages and
// interactions, and provides the Discord-backed command checks.
package discord

import (
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/bottleneckco/discord-help/models"
)

// PanelEmbed converts a panel into a message embed
func PanelEmbed(panel *models.Panel) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:       panel.Title,
		Description: panel.Description,
		Color:       panel.Color,
	}
	if !panel.Timestamp.IsZero() {
		embed.Timestamp = panel.Timestamp.Format(time.RFC3339)
	}
	if panel.Footer != "" {
		embed.Footer = &discordgo.MessageEmbedFooter{Text: panel.Footer}
	}
	for _, f := range panel.Fields {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   f.Name,
			Value:  f.Value,
			Inline: f.Inline,
		})
	}
	return embed
}

// SelectorComponents converts a selector into a single action row. A nil
// selector yields an empty, non-nil slice so that Discord clears existing
// components.
func SelectorComponents(selector *models.Selector) []discordgo.MessageComponent {
	if selector == nil {
		return []discordgo.MessageComponent{}
	}

	options := make([]discordgo.SelectMenuOption, 0, len(selector.Options))
	for _, opt := range selector.Options {
		options = append(options, discordgo.SelectMenuOption{
			Label:       opt.Label,
			Value:       opt.Value,
			Description: opt.Description,
		})
	}

	minValues := 1
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.SelectMenu{
					CustomID:    selector.CustomID,
					Placeholder: selector.Placeholder,
					MinValues:   &minValues,
					MaxValues:   1,
					Options:     options,
				},
			},
		},
	}
}
