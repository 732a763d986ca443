package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"bloomsim/internal/config"
	"bloomsim/internal/hashing"
	"bloomsim/internal/pulse"
	"bloomsim/internal/render"
	"bloomsim/internal/shell"
	"bloomsim/internal/simulator"
	"bloomsim/pkg/logger"

	"github.com/spf13/cobra"
)

// demoScript inserts one word and asks about three: one present, one
// colliding, one clearly absent.
const demoScript = `insert cat
query cat
query dog
query elephant
stats
`

type App struct {
	config *config.Config
	engine *simulator.Engine
	logger logger.Logger
}

func NewApp(cfg *config.Config) (*App, error) {
	log := logger.New(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output)

	engine, err := simulator.New(simulator.Options{
		TableSize:         cfg.Engine.TableSize,
		SlotCapacity:      cfg.Engine.SlotCapacity,
		ReferenceCapacity: cfg.Engine.ReferenceCapacity,
		HashFunctions:     cfg.Engine.HashFunctions,
		Logger:            log,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to init simulator: %w", err)
	}

	log.Debug("simulator ready",
		"table_size", cfg.Engine.TableSize,
		"slot_capacity", cfg.Engine.SlotCapacity,
		"reference_capacity", cfg.Engine.ReferenceCapacity,
		"hash_functions", cfg.Engine.HashFunctions)

	return &App{
		config: cfg,
		engine: engine,
		logger: log,
	}, nil
}

// RunShell reads commands interactively. Highlighting is replayed after the
// configured delay.
func (a *App) RunShell(ctx context.Context, in io.Reader, out io.Writer) error {
	p := pulse.New(a.config.Presentation.HighlightDelay())
	sh := shell.New(a.engine, p, out, a.logger, shell.Options{
		Prompt: "bloom> ",
		Show:   a.config.Presentation.ShowAfterCommand,
	})
	fmt.Fprintln(out, "Bloom filter simulator. Type help for commands.")
	return sh.Run(ctx, in)
}

// RunScript executes commands non-interactively, without delayed frames.
func (a *App) RunScript(ctx context.Context, in io.Reader, out io.Writer) error {
	sh := shell.New(a.engine, nil, out, a.logger, shell.Options{
		Show: a.config.Presentation.ShowAfterCommand,
	})
	return sh.Run(ctx, in)
}

func (a *App) RunHash(out io.Writer, text string) error {
	targets, err := a.engine.Targets(text)
	if err != nil {
		return err
	}
	if targets == nil {
		return fmt.Errorf("nothing to hash in %q", text)
	}
	return render.Targets(out, a.engine.HashFunctions(), targets)
}

func main() {
	var cfgFile, logLevel string
	var allHashes bool

	rootCmd := &cobra.Command{
		Use:           "bloomsim",
		Short:         "Bloom filter teaching simulator",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "YAML config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level override (debug, info, warn, error)")

	loadConfig := func() (*config.Config, error) {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return nil, err
		}
		if logLevel != "" {
			cfg.Logging.Level = logLevel
		}
		return cfg, nil
	}

	runCmd := func(action func(context.Context, *App, *cobra.Command, []string) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			app, err := NewApp(cfg)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			return action(ctx, app, cmd, args)
		}
	}

	rootCmd.AddCommand(&cobra.Command{
		Use:   "shell",
		Short: "Interactive insert/query session",
		Args:  cobra.NoArgs,
		RunE: runCmd(func(ctx context.Context, a *App, cmd *cobra.Command, _ []string) error {
			return a.RunShell(ctx, cmd.InOrStdin(), cmd.OutOrStdout())
		}),
	})

	rootCmd.AddCommand(&cobra.Command{
		Use:   "run <script>",
		Short: "Execute a file of shell commands",
		Args:  cobra.ExactArgs(1),
		RunE: runCmd(func(ctx context.Context, a *App, cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			return a.RunScript(ctx, f, cmd.OutOrStdout())
		}),
	})

	rootCmd.AddCommand(&cobra.Command{
		Use:   "demo",
		Short: "Walk through a true positive, a false positive and a true negative",
		Args:  cobra.NoArgs,
		RunE: runCmd(func(ctx context.Context, a *App, cmd *cobra.Command, _ []string) error {
			return a.RunScript(ctx, strings.NewReader(demoScript), cmd.OutOrStdout())
		}),
	})

	hashCmd := &cobra.Command{
		Use:   "hash <text>",
		Short: "Print the slot each hash function picks for text",
		Args:  cobra.MinimumNArgs(1),
		RunE: runCmd(func(_ context.Context, a *App, cmd *cobra.Command, args []string) error {
			text := strings.Join(args, " ")
			if allHashes {
				cfg := *a.config
				cfg.Engine.HashFunctions = hashing.Names()
				all, err := NewApp(&cfg)
				if err != nil {
					return err
				}
				a = all
			}
			return a.RunHash(cmd.OutOrStdout(), text)
		}),
	}
	hashCmd.Flags().BoolVar(&allHashes, "all", false, "use every known hash function instead of the configured ones")
	rootCmd.AddCommand(hashCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
