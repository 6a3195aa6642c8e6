// Command scrolldemo shows nested scrolling regions, wrapping rows and
// scrollbars on any of the three terminal backends.
package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/lmittmann/tint"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/kungfusheep/flexview"
	"github.com/kungfusheep/flexview/ansiterm"
	"github.com/kungfusheep/flexview/internal/session"
	"github.com/kungfusheep/flexview/tcellterm"
	"github.com/kungfusheep/flexview/teaview"
)

// Options holds the command line.
type Options struct {
	Backend string
	Config  string
	Items   int
	LogFile string
	Debug   bool
}

func main() {
	var opts Options

	rootCmd := &cobra.Command{
		Use:   "scrolldemo [flags]",
		Short: "Nested scrolling demo for flexview",
		Long: `scrolldemo lays out a file list, a wrapping tag row, a wide log and a
stack of nested scrolling sections, then lets you scroll them with the
keyboard, the mouse wheel and by dragging scrollbars.`,
		Example: `  # Default ANSI backend
  scrolldemo

  # Render through tcell with a longer list
  scrolldemo --backend tcell --items 5000

  # Run under bubbletea and log debug output
  scrolldemo --backend tea --debug --log-file /tmp/scrolldemo.log`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), opts)
		},
	}

	rootCmd.Flags().StringVarP(&opts.Backend, "backend", "b", "ansi", "Terminal backend: ansi, tcell or tea")
	rootCmd.Flags().StringVarP(&opts.Config, "config", "c", "", "Path to a TOML config file")
	rootCmd.Flags().IntVarP(&opts.Items, "items", "n", 400, "Number of entries in the file list")
	rootCmd.Flags().StringVar(&opts.LogFile, "log-file", "", "Write logs to this file (logs are discarded otherwise)")
	rootCmd.Flags().BoolVarP(&opts.Debug, "debug", "d", false, "Enable debug logging")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

// newLogger builds the tint logger. The terminal belongs to the UI, so
// without a log file everything is discarded.
func newLogger(opts Options) (*slog.Logger, io.Closer, error) {
	if opts.LogFile == "" {
		return slog.New(slog.DiscardHandler), io.NopCloser(nil), nil
	}
	f, err := os.OpenFile(opts.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, errors.Wrap(err, "opening log file")
	}
	level := slog.LevelInfo
	if opts.Debug {
		level = slog.LevelDebug
	}
	handler := tint.NewHandler(f, &tint.Options{
		Level:      level,
		TimeFormat: "15:04:05.000",
		NoColor:    true,
	})
	return slog.New(handler), f, nil
}

func loadConfig(opts Options) (flexview.Config, error) {
	cfg := flexview.DefaultConfig()
	if opts.Config != "" {
		var err error
		if cfg, err = flexview.LoadConfig(opts.Config); err != nil {
			return cfg, err
		}
	}
	if opts.Debug {
		cfg.Debug = true
	}
	return cfg, nil
}

func run(ctx context.Context, opts Options) error {
	if opts.Items < 0 {
		return errors.Errorf("--items must not be negative, got %d", opts.Items)
	}
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	log, closer, err := newLogger(opts)
	if err != nil {
		return err
	}
	defer closer.Close()
	slog.SetDefault(log)

	root, _ := demoTree(opts.Items)
	log.Info("starting", "backend", opts.Backend, "items", opts.Items)

	switch opts.Backend {
	case "ansi":
		return runANSI(ctx, root, cfg, log)
	case "tcell":
		return runTcell(ctx, root, cfg, log)
	case "tea":
		s := session.New(root, cfg, 80, 24, log)
		return teaview.Run(ctx, s, log)
	default:
		return errors.Errorf("unknown backend %q (want ansi, tcell or tea)", opts.Backend)
	}
}

func runANSI(ctx context.Context, root *flexview.Element, cfg flexview.Config, log *slog.Logger) error {
	t, err := ansiterm.Open(os.Stdin, os.Stdout)
	if err != nil {
		return err
	}
	defer t.Close()

	w, h, err := t.Size()
	if err != nil {
		return err
	}
	s := session.New(root, cfg, w, h, log)
	return ansiterm.NewLoop(t, s, log).Run(ctx)
}

func runTcell(ctx context.Context, root *flexview.Element, cfg flexview.Config, log *slog.Logger) error {
	screen, err := tcellterm.Open()
	if err != nil {
		return err
	}
	defer screen.Fini()

	w, h := screen.Size()
	s := session.New(root, cfg, w, h, log)
	return tcellterm.NewLoop(screen, s, log).Run(ctx)
}
