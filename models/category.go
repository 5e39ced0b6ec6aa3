package models

// Category represents a named group of commands, shown as one entry of the
// help selector
type Category struct {
	Name        string
	Description string
}

// CategoryCommands pairs a category with its commands. A nil Category holds
// the commands registered without one.
type CategoryCommands struct {
	Category *Category
	Commands []*Command
}
