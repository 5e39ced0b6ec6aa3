package models

import (
	"context"
	"time"
)

// BucketType decides which invocations share a cooldown bucket
type BucketType int

const (
	// BucketDefault one bucket shared by everyone
	BucketDefault BucketType = iota

	// BucketUser one bucket per user
	BucketUser

	// BucketGuild one bucket per guild, DMs fall back to the user
	BucketGuild

	// BucketChannel one bucket per channel
	BucketChannel
)

// Cooldown represents a rate limit policy: Rate uses per Per window
type Cooldown struct {
	Rate   int
	Per    time.Duration
	Bucket BucketType
}

// Check decides whether an invoker may run a command. A returned error means
// the answer could not be determined.
type Check func(ctx context.Context, inv Invoker) (bool, error)

// Handler runs a command with its already split arguments
type Handler func(ctx context.Context, inv Invoker, args []string) error

// Command represents a chat command. A Command with Children is a group.
type Command struct {
	Name     string
	Aliases  []string
	Usage    string // parameter signature, e.g. "<member> [reason]"
	Brief    string
	Help     string
	Hidden   bool
	Cooldown *Cooldown
	Category string
	Checks   []Check
	Handler  Handler

	Parent   *Command
	Children []*Command
}

// IsGroup reports whether the command owns subcommands
func (c *Command) IsGroup() bool {
	return len(c.Children) > 0
}

// QualifiedName returns the space separated name including all parents
func (c *Command) QualifiedName() string {
	if c.Parent == nil {
		return c.Name
	}
	return c.Parent.QualifiedName() + " " + c.Name
}

// AddChild attaches sub as a subcommand of c
func (c *Command) AddChild(sub *Command) *Command {
	sub.Parent = c
	if sub.Category == "" {
		sub.Category = c.Category
	}
	c.Children = append(c.Children, sub)
	return sub
}

// Child finds a direct subcommand by name or alias
func (c *Command) Child(name string) (*Command, bool) {
	for _, sub := range c.Children {
		if sub.Matches(name) {
			return sub, true
		}
	}
	return nil, false
}

// Matches reports whether name is the command's name or one of its aliases
func (c *Command) Matches(name string) bool {
	if c.Name == name {
		return true
	}
	for _, alias := range c.Aliases {
		if alias == name {
			return true
		}
	}
	return false
}
