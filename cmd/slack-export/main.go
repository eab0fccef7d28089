package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/matillion/slack-channel-export/internal/config"
	"github.com/matillion/slack-channel-export/internal/export"
	"github.com/matillion/slack-channel-export/internal/jst"
	slackclient "github.com/matillion/slack-channel-export/internal/slack"
)

var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var endDate, output string

	cmd := &cobra.Command{
		Use:     "slack-export <channel> <start-date>",
		Short:   "Export a Slack channel's message history, threads included, to a JSON file",
		Long: `Export the full message history of one Slack channel over a date range,
including every thread reply, into a single self-contained JSON document.

The channel may be given as an ID (C0123456789) or a channel URL
(https://example.slack.com/archives/C0123456789). Dates are YYYY-MM-DD and
interpreted in JST. The token is read from SLACK_TOKEN.`,
		Version:      version,
		Args:         cobra.ExactArgs(2),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), args[0], args[1], endDate, output)
		},
	}

	cmd.Flags().StringVarP(&endDate, "end-date", "e", "", "export end date (YYYY-MM-DD, JST; defaults to now)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (defaults to <channelID>-YYYYMMDD-HHMMSS.json)")

	return cmd
}

func run(ctx context.Context, channel, startDate, endDate, output string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := initLogger(cfg.LogLevel)
	defer logger.Sync()

	r, err := jst.NewRange(startDate, endDate, time.Now())
	if err != nil {
		return err
	}

	channelID, err := slackclient.ExtractChannelID(channel)
	if err != nil {
		return err
	}

	client, err := slackclient.NewClient(slackclient.Config{
		Token:  cfg.Token,
		Cookie: cfg.Cookie,
	}, logger)
	if err != nil {
		return err
	}

	if err := client.CheckAuth(ctx); err != nil {
		return slackclient.WrapError(logger, "check auth", err)
	}

	logger.Info("Starting export",
		zap.String("channel_id", channelID),
		zap.String("start", r.StartReadable()),
		zap.String("end", r.EndReadable()))

	msgs, err := client.FetchHistory(ctx, channelID, r)
	if err != nil {
		return slackclient.WrapError(logger, "fetch history", err)
	}

	users, err := client.ResolveUsers(ctx, export.UserIDs(msgs))
	if err != nil {
		return slackclient.WrapError(logger, "resolve users", err)
	}

	doc := export.Build(r, msgs, users)

	path := output
	if path == "" {
		path = export.DefaultFilename(channelID, time.Now())
	}

	ref, err := export.WriteFile(path, doc)
	if err != nil {
		return err
	}

	logger.Info("Export complete",
		zap.String("path", ref.Path),
		zap.Int("messages", len(doc.Chat)),
		zap.Int("users", len(doc.Users)),
		zap.Int64("bytes", ref.Bytes))

	return nil
}

func initLogger(level string) *zap.Logger {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(os.Stderr),
		interpretLogLevel(level),
	)

	return zap.New(core, zap.AddCaller())
}

func interpretLogLevel(level string) zapcore.Level {
	var logLevel zapcore.Level

	switch level {
	case "debug":
		logLevel = zapcore.DebugLevel
	case "warn":
		logLevel = zapcore.WarnLevel
	case "error":
		logLevel = zapcore.ErrorLevel
	default:
		logLevel = zapcore.InfoLevel
	}
	return logLevel
}
