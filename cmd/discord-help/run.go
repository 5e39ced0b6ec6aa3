package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/go-co-op/gocron"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/bottleneckco/discord-help/commands"
	"github.com/bottleneckco/discord-help/config"
	"github.com/bottleneckco/discord-help/logging"
	"github.com/bottleneckco/discord-help/metrics"
	"github.com/bottleneckco/discord-help/server"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Connect to Discord and serve commands",
	RunE:  runBot,
}

func loadConfig(requireToken bool) (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if err := cfg.Validate(requireToken); err != nil {
		return nil, nil, fmt.Errorf("invalid config: %w", err)
	}
	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}

func runBot(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := loadConfig(true)
	if err != nil {
		return err
	}
	defer logger.Sync()

	session, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return fmt.Errorf("create discord session: %w", err)
	}
	session.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsDirectMessages |
		discordgo.IntentMessageContent

	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	bot, err := commands.New(session, session.State, cfg, logger.Named("commands"), m)
	if err != nil {
		return err
	}

	updateStatus := func() {
		if err := session.UpdateGameStatus(0, bot.StatusText()); err != nil {
			logger.Warn("error updating bot status", zap.Error(err))
		}
	}
	bot.OnRefreshStatus = updateStatus

	session.AddHandler(bot.HandleMessage)
	session.AddHandler(bot.HandleInteraction)
	session.AddHandler(func(_ *discordgo.Session, r *discordgo.Ready) {
		logger.Info("bot is ready", zap.String("user", r.User.Username), zap.Int("guilds", len(r.Guilds)))
		updateStatus()
	})

	if err := session.Open(); err != nil {
		return fmt.Errorf("open discord session: %w", err)
	}
	defer session.Close()

	scheduler := gocron.NewScheduler(time.Local)
	if _, err := scheduler.Every(cfg.StatusInterval).Do(updateStatus); err != nil {
		return fmt.Errorf("schedule status updates: %w", err)
	}
	scheduler.StartAsync()
	defer scheduler.Stop()

	if cfg.MetricsAddr != "" {
		srv := server.New(cfg.MetricsAddr, reg, logger.Named("server"))
		srv.Start()
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Shutdown(ctx); err != nil {
				logger.Warn("metrics server shutdown", zap.Error(err))
			}
		}()
	}

	// Wait here until CTRL-C or other term signal is received.
	logger.Info("Bot is now running.  Press CTRL-C to exit.")
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	logger.Info("shutting down")
	return nil
}
