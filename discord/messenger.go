package discord

import (
	"context"

	"github.com/bwmarrin/discordgo"

	"github.com/bottleneckco/discord-help/models"
)

// MessageSender is the part of *discordgo.Session used to post messages
type MessageSender interface {
	ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// InteractionResponder is the part of *discordgo.Session used to answer
// component interactions
type InteractionResponder interface {
	InteractionRespond(interaction *discordgo.Interaction, resp *discordgo.InteractionResponse, options ...discordgo.RequestOption) error
}

// ChannelSender posts panels as new messages in one channel, optionally as a
// reply to the message that asked for them
type ChannelSender struct {
	Session   MessageSender
	ChannelID string
	ReplyTo   *discordgo.MessageReference
}

func (c ChannelSender) Send(ctx context.Context, panel *models.Panel, selector *models.Selector) error {
	data := &discordgo.MessageSend{
		Embeds:    []*discordgo.MessageEmbed{PanelEmbed(panel)},
		Reference: c.ReplyTo,
	}
	if selector != nil {
		data.Components = SelectorComponents(selector)
	}
	_, err := c.Session.ChannelMessageSendComplex(c.ChannelID, data, discordgo.WithContext(ctx))
	return err
}

// InteractionEditor edits the message a component interaction came from
type InteractionEditor struct {
	Session     InteractionResponder
	Interaction *discordgo.Interaction
}

func (e InteractionEditor) Edit(ctx context.Context, panel *models.Panel, selector *models.Selector) error {
	return e.Session.InteractionRespond(e.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: &discordgo.InteractionResponseData{
			Embeds:     []*discordgo.MessageEmbed{PanelEmbed(panel)},
			Components: SelectorComponents(selector),
		},
	}, discordgo.WithContext(ctx))
}

// Acknowledge answers an interaction without changing its message
func (e InteractionEditor) Acknowledge(ctx context.Context) error {
	return e.Session.InteractionRespond(e.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredMessageUpdate,
	}, discordgo.WithContext(ctx))
}
