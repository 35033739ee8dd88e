// Command termwidget-demo shows a clock and a looping loading bar in a focusable widget tree.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"

	"github.com/lixenwraith/termwidget/app"
	"github.com/lixenwraith/termwidget/audio"
	"github.com/lixenwraith/termwidget/config"
	"github.com/lixenwraith/termwidget/terminal"
)

const (
	clockInterval   = time.Second
	loadingInterval = 100 * time.Millisecond
	loadingStep     = 0.02
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "termwidget-demo: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	v := viper.New()
	var configPath string

	cmd := &cobra.Command{
		Use:           "termwidget-demo",
		Short:         "Clock and loading bar in a focusable terminal widget tree",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(v, configPath)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return run(ctx, cfg)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&configPath, "config", "c", "", "config file (yaml, toml or json)")
	flags.Bool("bell", false, "ring a tone when focus cannot move further")
	flags.Duration("tick", 50*time.Millisecond, "key poll timeout per loop iteration")
	flags.String("border", "single", "border style: single, double, rounded, heavy, none")
	flags.String("log-file", "", "write logs to this file (disabled when empty)")
	flags.String("log-level", "info", "log level: trace, debug, info, warn, error")

	bindFlags(v, cmd)
	return cmd
}

// bindFlags maps command-line flags onto config keys
func bindFlags(v *viper.Viper, cmd *cobra.Command) {
	keys := map[string]string{
		"bell":      "bell",
		"tick":      "tick",
		"border":    "border",
		"log-file":  "log.file",
		"log-level": "log.level",
	}
	for flag, key := range keys {
		cobra.CheckErr(v.BindPFlag(key, cmd.Flags().Lookup(flag)))
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	level, err := cfg.LogLevel()
	if err != nil {
		return err
	}
	logger, logFile, err := setupLogging(cfg.Log.File, level)
	if err != nil {
		return err
	}

	opts, err := rootOptions(cfg, logger)
	if err != nil {
		if logFile != nil {
			logFile.Close()
		}
		return err
	}
	if logFile != nil {
		opts = append(opts, app.WithCloser(logFile.Close))
	}

	screen, err := terminal.New()
	if err != nil {
		if logFile != nil {
			logFile.Close()
		}
		return err
	}
	root := app.New(screen, opts...)

	runErr := serve(ctx, root, cfg)
	if err := root.Close(); err != nil {
		runErr = multierror.Append(runErr, err)
	}
	return runErr
}

// rootOptions turns config into loop options, initializing the bell when enabled
func rootOptions(cfg *config.Config, logger *logrus.Logger) ([]app.Option, error) {
	quit, err := cfg.Quit()
	if err != nil {
		return nil, err
	}
	aliases, err := cfg.Aliases()
	if err != nil {
		return nil, err
	}

	opts := []app.Option{
		app.WithLogger(logger),
		app.WithTick(cfg.Tick),
		app.WithQuit(quit),
		app.WithAliases(aliases),
	}

	if cfg.Bell {
		bell := audio.NewBell()
		if err := bell.Initialize(); err != nil {
			// Audio is optional
			logger.WithError(err).Warn("bell disabled")
		} else {
			opts = append(opts, app.WithBell(bell))
		}
	}
	return opts, nil
}

// serve builds the demo and runs the loop alongside its update workers
func serve(ctx context.Context, root *app.Root, cfg *config.Config) error {
	line, err := cfg.LineType()
	if err != nil {
		return err
	}
	theme, err := cfg.Theme()
	if err != nil {
		return err
	}
	d, err := buildDemo(root, line, theme, time.Now())
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		// Quitting the loop stops the workers
		defer cancel()
		return root.Run(gctx)
	})
	g.Go(func() error {
		return runClock(gctx, root, d.clock, clockInterval)
	})
	g.Go(func() error {
		return runLoading(gctx, root, d.bar, loadingInterval, loadingStep)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
