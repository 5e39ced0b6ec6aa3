package main

import (
	"github.com/spf13/cobra"

	"github.com/bottleneckco/discord-help/commands"
	"github.com/bottleneckco/discord-help/help"
	"github.com/bottleneckco/discord-help/models"
	"github.com/bottleneckco/discord-help/registry"
)

var showAll bool

var commandsCmd = &cobra.Command{
	Use:   "commands [command|category...]",
	Short: "Print the help menu without connecting to Discord",
	RunE:  printCatalog,
}

func init() {
	commandsCmd.Flags().BoolVar(&showAll, "all", false, "also print every category offered by the menu")
}

// console stands in for a guild member with no cached permissions
var console = models.Invoker{UserID: "console", ChannelID: "console", GuildID: "console"}

func printCatalog(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadConfig(false)
	if err != nil {
		return err
	}
	defer logger.Sync()

	bot, err := commands.New(nil, nil, cfg, logger, nil)
	if err != nil {
		return err
	}

	out := help.TextWriter{W: cmd.OutOrStdout()}
	if len(args) > 0 || !showAll {
		return bot.Help().Dispatch(cmd.Context(), console, out, args)
	}

	mapping := bot.Registry().Mapping()
	if err := bot.Help().RenderRoot(cmd.Context(), console, out, mapping); err != nil {
		return err
	}
	for _, entry := range mapping {
		name := registry.NoCategoryName
		if entry.Category != nil {
			name = entry.Category.Name
		}
		if err := bot.Help().Select(cmd.Context(), console, out, name); err != nil {
			return err
		}
	}
	return nil
}
