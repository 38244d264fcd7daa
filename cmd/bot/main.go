package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/axoguild/axobot/internal/bot"
	"github.com/axoguild/axobot/internal/setup"
	"github.com/urfave/cli/v3"
)

// BotLogDir specifies where bot log files are stored.
const BotLogDir = "logs/bot_logs"

func main() {
	app := &cli.Command{
		Name:  "axobot",
		Usage: "Community management bot",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "migrate",
				Usage: "Run pending database migrations before starting",
				Value: true,
			},
		},
		Action: run,
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	app, err := setup.InitializeApp(ctx, BotLogDir, cmd.Bool("migrate"))
	if err != nil {
		return err
	}
	defer app.Cleanup()

	discordBot, err := bot.New(app.Config, app.DB, app.RedisManager, app.Logger)
	if err != nil {
		return err
	}

	if err := discordBot.Start(ctx); err != nil {
		return err
	}

	app.Logger.Info("Bot started, waiting for interrupt signal")

	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	discordBot.Close(context.Background())
	return nil
}
