package discord

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bottleneckco/discord-help/models"
)

type fakeSession struct {
	channelID string
	sent      *discordgo.MessageSend
	responded *discordgo.InteractionResponse
	err       error
}

func (f *fakeSession) ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	f.channelID = channelID
	f.sent = data
	return &discordgo.Message{ID: "m1", ChannelID: channelID}, f.err
}

func (f *fakeSession) InteractionRespond(_ *discordgo.Interaction, resp *discordgo.InteractionResponse, _ ...discordgo.RequestOption) error {
	f.responded = resp
	return f.err
}

func samplePanel() *models.Panel {
	p := &models.Panel{
		Title:       "!ping",
		Description: "Pong",
		Timestamp:   time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
		Footer:      "footer",
		Color:       0x5865F2,
	}
	p.AddField("Usable", "Yes", true)
	return p
}

func TestPanelEmbed(t *testing.T) {
	embed := PanelEmbed(samplePanel())

	assert.Equal(t, "!ping", embed.Title)
	assert.Equal(t, "Pong", embed.Description)
	assert.Equal(t, 0x5865F2, embed.Color)
	assert.Equal(t, "2024-01-02T03:04:05Z", embed.Timestamp)
	require.NotNil(t, embed.Footer)
	assert.Equal(t, "footer", embed.Footer.Text)
	require.Len(t, embed.Fields, 1)
	assert.Equal(t, &discordgo.MessageEmbedField{Name: "Usable", Value: "Yes", Inline: true}, embed.Fields[0])
}

func TestSelectorComponents(t *testing.T) {
	comps := SelectorComponents(&models.Selector{
		CustomID:    "help:select",
		Placeholder: "Select a category",
		Options: []models.SelectorOption{
			{Label: "Fun", Value: "Fun", Description: "Games"},
			{Label: "Close", Value: "Close"},
		},
	})
	require.Len(t, comps, 1)
	row, ok := comps[0].(discordgo.ActionsRow)
	require.True(t, ok)
	require.Len(t, row.Components, 1)
	menu, ok := row.Components[0].(discordgo.SelectMenu)
	require.True(t, ok)

	assert.Equal(t, "help:select", menu.CustomID)
	assert.Equal(t, "Select a category", menu.Placeholder)
	require.NotNil(t, menu.MinValues)
	assert.Equal(t, 1, *menu.MinValues)
	assert.Equal(t, 1, menu.MaxValues)
	assert.Equal(t, []discordgo.SelectMenuOption{
		{Label: "Fun", Value: "Fun", Description: "Games"},
		{Label: "Close", Value: "Close"},
	}, menu.Options)

	cleared := SelectorComponents(nil)
	assert.NotNil(t, cleared)
	assert.Empty(t, cleared)
}

func TestChannelSender(t *testing.T) {
	fs := &fakeSession{}
	ref := &discordgo.MessageReference{MessageID: "orig", ChannelID: "c1"}
	sender := ChannelSender{Session: fs, ChannelID: "c1", ReplyTo: ref}

	require.NoError(t, sender.Send(context.Background(), samplePanel(), nil))
	assert.Equal(t, "c1", fs.channelID)
	require.Len(t, fs.sent.Embeds, 1)
	assert.Equal(t, "!ping", fs.sent.Embeds[0].Title)
	assert.Nil(t, fs.sent.Components)
	assert.Equal(t, ref, fs.sent.Reference)

	require.NoError(t, sender.Send(context.Background(), samplePanel(), &models.Selector{CustomID: "help:select"}))
	assert.Len(t, fs.sent.Components, 1)
}

func TestChannelSender_Error(t *testing.T) {
	boom := errors.New("missing access")
	err := ChannelSender{Session: &fakeSession{err: boom}, ChannelID: "c"}.Send(context.Background(), samplePanel(), nil)
	assert.ErrorIs(t, err, boom)
}

func TestInteractionEditor(t *testing.T) {
	fs := &fakeSession{}
	editor := InteractionEditor{Session: fs, Interaction: &discordgo.Interaction{ID: "i1"}}

	require.NoError(t, editor.Edit(context.Background(), samplePanel(), nil))
	assert.Equal(t, discordgo.InteractionResponseUpdateMessage, fs.responded.Type)
	require.Len(t, fs.responded.Data.Embeds, 1)
	assert.NotNil(t, fs.responded.Data.Components)
	assert.Empty(t, fs.responded.Data.Components)

	require.NoError(t, editor.Acknowledge(context.Background()))
	assert.Equal(t, discordgo.InteractionResponseDeferredMessageUpdate, fs.responded.Type)
	assert.Nil(t, fs.responded.Data)
}

// guildState is what GUILD_CREATE leaves behind without the members intent:
// guild, roles and channels cached, no members
func guildState(t *testing.T) *discordgo.State {
	t.Helper()
	state := discordgo.NewState()
	require.NoError(t, state.GuildAdd(&discordgo.Guild{
		ID:      "g",
		OwnerID: "founder",
		Roles: []*discordgo.Role{
			{ID: "g", Permissions: discordgo.PermissionSendMessages},
			{ID: "mods", Permissions: discordgo.PermissionManageServer},
		},
		Channels: []*discordgo.Channel{{ID: "c", GuildID: "g", Type: discordgo.ChannelTypeGuildText}},
	}))
	return state
}

func TestInvokerFromMessage(t *testing.T) {
	inv := InvokerFromMessage(nil, &discordgo.Message{ID: "m", ChannelID: "c", GuildID: "g", Author: &discordgo.User{ID: "u"}})
	assert.Equal(t, models.Invoker{UserID: "u", ChannelID: "c", GuildID: "g", MessageID: "m"}, inv)

	ref := ReplyReference(inv)
	require.NotNil(t, ref)
	assert.Equal(t, "m", ref.MessageID)
	assert.Nil(t, ReplyReference(models.Invoker{ChannelID: "c"}))
}

func TestInvokerFromMessage_PermissionsFromRoles(t *testing.T) {
	state := guildState(t)

	mod := InvokerFromMessage(state, &discordgo.Message{
		ID: "m", ChannelID: "c", GuildID: "g",
		Author: &discordgo.User{ID: "u"},
		Member: &discordgo.Member{Roles: []string{"mods"}},
	})
	require.True(t, mod.HasPermissions)
	assert.NotZero(t, mod.Permissions&discordgo.PermissionManageServer)

	regular := InvokerFromMessage(state, &discordgo.Message{
		ChannelID: "c", GuildID: "g",
		Author: &discordgo.User{ID: "u"},
		Member: &discordgo.Member{},
	})
	require.True(t, regular.HasPermissions)
	assert.Zero(t, regular.Permissions&discordgo.PermissionManageServer)

	unknownChannel := InvokerFromMessage(state, &discordgo.Message{
		ChannelID: "elsewhere", GuildID: "g",
		Author: &discordgo.User{ID: "u"},
		Member: &discordgo.Member{},
	})
	assert.False(t, unknownChannel.HasPermissions)

	dm := InvokerFromMessage(state, &discordgo.Message{ChannelID: "dm", Author: &discordgo.User{ID: "u"}})
	assert.False(t, dm.HasPermissions)
}

func TestInvokerFromInteraction(t *testing.T) {
	guild := InvokerFromInteraction(&discordgo.Interaction{
		ChannelID: "c", GuildID: "g",
		Message: &discordgo.Message{ID: "menu"},
		Member:  &discordgo.Member{User: &discordgo.User{ID: "member"}, Permissions: discordgo.PermissionManageServer},
	})
	assert.Equal(t, "member", guild.UserID)
	assert.Equal(t, "menu", guild.MessageID)
	assert.True(t, guild.HasPermissions)
	assert.Equal(t, int64(discordgo.PermissionManageServer), guild.Permissions)

	dm := InvokerFromInteraction(&discordgo.Interaction{ChannelID: "c", User: &discordgo.User{ID: "dm-user"}})
	assert.Equal(t, "dm-user", dm.UserID)
	assert.True(t, dm.InDM())
	assert.False(t, dm.HasPermissions)
}

type fakePermissions struct {
	perms int64
	err   error
}

func (f fakePermissions) UserChannelPermissions(string, string) (int64, error) {
	return f.perms, f.err
}

func (f fakePermissions) MessagePermissions(*discordgo.Message) (int64, error) {
	return f.perms, f.err
}

func TestRequirePermissions(t *testing.T) {
	inGuild := models.Invoker{UserID: "u", ChannelID: "c", GuildID: "g"}
	ctx := context.Background()
	manage := int64(discordgo.PermissionManageServer)

	ok, err := RequirePermissions(fakePermissions{perms: manage}, manage)(ctx, inGuild)
	assert.NoError(t, err)
	assert.True(t, ok)

	ok, err = RequirePermissions(fakePermissions{perms: discordgo.PermissionAdministrator}, manage)(ctx, inGuild)
	assert.NoError(t, err)
	assert.True(t, ok)

	ok, err = RequirePermissions(fakePermissions{perms: 0}, manage)(ctx, inGuild)
	assert.NoError(t, err)
	assert.False(t, ok)

	_, err = RequirePermissions(fakePermissions{err: discordgo.ErrStateNotFound}, manage)(ctx, inGuild)
	assert.Error(t, err)

	_, err = RequirePermissions(fakePermissions{}, manage)(ctx, models.Invoker{UserID: "u"})
	assert.ErrorIs(t, err, ErrNoPrivateMessage)
}

func TestRequirePermissions_UncachedMember(t *testing.T) {
	state := guildState(t)
	ctx := context.Background()
	check := RequirePermissions(state, discordgo.PermissionManageServer)

	// the member is not in state, so only the permissions the event carried can answer
	_, err := check(ctx, models.Invoker{UserID: "u", ChannelID: "c", GuildID: "g"})
	assert.Error(t, err)

	inv := InvokerFromMessage(state, &discordgo.Message{
		ChannelID: "c", GuildID: "g",
		Author: &discordgo.User{ID: "u"},
		Member: &discordgo.Member{Roles: []string{"mods"}},
	})
	ok, err := check(ctx, inv)
	assert.NoError(t, err)
	assert.True(t, ok)

	inv = InvokerFromInteraction(&discordgo.Interaction{
		ChannelID: "c", GuildID: "g",
		Member: &discordgo.Member{User: &discordgo.User{ID: "u"}},
	})
	ok, err = check(ctx, inv)
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestGuildAndOwnerChecks(t *testing.T) {
	ctx := context.Background()
	_, err := GuildOnly()(ctx, models.Invoker{UserID: "u"})
	assert.ErrorIs(t, err, ErrNoPrivateMessage)
	ok, err := GuildOnly()(ctx, models.Invoker{UserID: "u", GuildID: "g"})
	assert.NoError(t, err)
	assert.True(t, ok)

	owner := OwnerOnly(func(id string) bool { return id == "boss" })
	ok, _ = owner(ctx, models.Invoker{UserID: "boss"})
	assert.True(t, ok)
	ok, _ = owner(ctx, models.Invoker{UserID: "intern"})
	assert.False(t, ok)
}

func TestBotName(t *testing.T) {
	state := discordgo.NewState()
	assert.Equal(t, "Bot", BotName(state, "")(models.Invoker{}))

	state.User = &discordgo.User{ID: "bot", Username: "radio"}
	require.NoError(t, state.GuildAdd(&discordgo.Guild{ID: "g"}))
	require.NoError(t, state.MemberAdd(&discordgo.Member{GuildID: "g", User: &discordgo.User{ID: "bot"}, Nick: "DJ"}))

	assert.Equal(t, "DJ", BotName(state, "")(models.Invoker{GuildID: "g"}))
	assert.Equal(t, "radio", BotName(state, "")(models.Invoker{}))
	assert.Equal(t, "radio", BotName(state, "")(models.Invoker{GuildID: "other"}))
	assert.Equal(t, "Override", BotName(state, "Override")(models.Invoker{GuildID: "g"}))
}
