package commands

import (
	"context"
	"fmt"
	"math/rand"
	"strconv"
	"time"

	"github.com/bottleneckco/discord-help/models"
)

const defaultSides = 6

func (b *Bot) rollCommand() *models.Command {
	return &models.Command{
		Name:     "roll",
		Aliases:  []string{"dice"},
		Usage:    "[sides]",
		Brief:    "Rolls a die",
		Help:     "Rolls a die with the given number of sides, six by default.",
		Category: "Fun",
		Cooldown: &models.Cooldown{Rate: 1, Per: 5 * time.Second, Bucket: models.BucketUser},
		Handler:  b.roll,
	}
}

func (b *Bot) roll(ctx context.Context, inv models.Invoker, args []string) error {
	sides := defaultSides
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 2 {
			return b.reply(ctx, inv, fmt.Sprintf("<@%s> sides must be a number of at least 2", inv.UserID))
		}
		sides = n
	}
	return b.reply(ctx, inv, fmt.Sprintf("<@%s> rolled **%d** (d%d)", inv.UserID, rand.Intn(sides)+1, sides))
}

func (b *Bot) chooseCommand() *models.Command {
	return &models.Command{
		Name:     "choose",
		Usage:    "<options...>",
		Brief:    "Picks one of the given options",
		Help:     `Picks one option at random. Quote options with spaces: choose "fish and chips" pizza`,
		Category: "Fun",
		Handler:  b.choose,
	}
}

func (b *Bot) choose(ctx context.Context, inv models.Invoker, args []string) error {
	if len(args) < 2 {
		return b.reply(ctx, inv, fmt.Sprintf("<@%s> give me at least two options", inv.UserID))
	}
	return b.reply(ctx, inv, fmt.Sprintf("<@%s> I choose **%s**", inv.UserID, args[rand.Intn(len(args))]))
}
