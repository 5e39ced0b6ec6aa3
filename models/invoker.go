package models

// Invoker identifies who triggered a command or an interaction and where
type Invoker struct {
	UserID    string
	ChannelID string
	GuildID   string
	MessageID string // message that triggered the invocation, if any

	// Permissions are the invoker's effective permissions in the channel,
	// valid only when HasPermissions is set
	Permissions    int64
	HasPermissions bool
}

// InDM reports whether the invocation happened outside of a guild
func (inv Invoker) InDM() bool {
	return inv.GuildID == ""
}
