// Package cmd provides the typeahead command line.
//
// Configuration is resolved with this precedence, highest first:
//
//  1. Command-line flags (--url, --debounce, ...)
//  2. TYPEAHEAD_<SECTION>_<KEY> environment variables, e.g. TYPEAHEAD_UI_DEBOUNCE
//  3. The TOML config file (--config, TYPEAHEAD_CONFIG or the user config dir)
//  4. Built-in defaults
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/gorbach/typeahead/internal/config"
	"github.com/gorbach/typeahead/internal/datasource"
	"github.com/gorbach/typeahead/internal/logger"
	"github.com/gorbach/typeahead/internal/picker"
	"github.com/gorbach/typeahead/internal/typeahead"
)

// flagKeys maps flag names to configuration keys.
var flagKeys = map[string]string{
	"url":         "source.url",
	"field":       "source.field",
	"timeout":     "source.timeout",
	"offline":     "source.offline",
	"simulate":    "simulation.enabled",
	"delay":       "simulation.delay",
	"error-rate":  "simulation.error_rate",
	"seed":        "simulation.seed",
	"debounce":    "ui.debounce",
	"placeholder": "ui.placeholder",
	"max-width":   "ui.max_width",
	"log-file":    "log.file",
	"log-level":   "log.level",
}

type rootOptions struct {
	v          *viper.Viper
	configPath string
}

// NewRootCommand builds the command tree.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{v: config.NewViper()}

	cmd := &cobra.Command{
		Use:   "typeahead",
		Short: "Pick options from a remote list with incremental search",
		Long: `typeahead fetches a list of options (by default every country name) and lets you
search it incrementally, pick any number of entries and remove them again.

Press esc when done: the picked options are printed to stdout, one per line,
so typeahead composes with other tools:

  typeahead --offline | xargs -I{} echo "visiting {}"

Keys:
  /        focus the search input
  ↑/↓      move in the menu
  enter    pick the highlighted option
  tab      switch between the input and the picked options
  x        remove the highlighted pick
  ?        help
  esc      done
  ctrl+c   abort without output`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			return runPicker(cmd.Context(), cfg, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "config file (default is $XDG_CONFIG_HOME/typeahead/config.toml, or TYPEAHEAD_CONFIG)")
	flags.String("url", datasource.DefaultURL, "URL of a JSON array of objects holding the options")
	flags.String("field", datasource.DefaultField, "object field holding the option label (gjson path)")
	flags.Duration("timeout", 0, "HTTP timeout for the fetch")
	flags.Bool("offline", false, "use the bundled country list instead of fetching")
	flags.Bool("simulate", false, "wrap the source with artificial latency and random failures")
	flags.Duration("delay", 0, "minimum fetch time when simulating")
	flags.Float64("error-rate", 0, "probability in [0, 1] of a simulated fetch failure")
	flags.Uint64("seed", 0, "seed for simulated failures (0 picks one)")
	flags.Duration("debounce", 0, "quiet interval before the query filters the menu")
	flags.String("placeholder", "", "text shown in the empty search input")
	flags.Int("max-width", 0, "maximum width of the picker (0 uses the terminal width)")
	flags.String("log-file", "", "write logs to this file")
	flags.String("log-level", "", "log level (debug, info, warn, error)")

	bindFlags(opts.v, flags)

	cmd.AddCommand(newConfigCommand(opts))
	return cmd
}

// bindFlags binds every flag in flagKeys. Viper only takes a flag value over the
// file and environment when the flag was set explicitly.
func bindFlags(v *viper.Viper, flags *pflag.FlagSet) {
	for name, key := range flagKeys {
		if flag := flags.Lookup(name); flag != nil {
			_ = v.BindPFlag(key, flag)
		}
	}
}

// load reads the config file and decodes the merged configuration.
func (o *rootOptions) load() (*config.Config, error) {
	path, explicit := o.configPath, o.configPath != ""
	if !explicit {
		if env := os.Getenv(config.EnvPrefix + "_CONFIG"); env != "" {
			path, explicit = env, true
		}
	}
	if path == "" {
		if def, err := config.DefaultPath(); err == nil {
			path = def
		}
	}

	if err := config.ReadFile(o.v, path, explicit); err != nil {
		return nil, err
	}
	return config.Load(o.v)
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return NewRootCommand().ExecuteContext(ctx)
}

// buildSource assembles the option source described by cfg and a label for the
// status bar.
func buildSource(cfg *config.Config, l *log.Logger) (datasource.Source, string, error) {
	var (
		src   datasource.Source
		label string
	)
	if cfg.Source.Offline {
		offline, err := datasource.Offline()
		if err != nil {
			return nil, "", err
		}
		src, label = offline, "offline"
	} else {
		src = datasource.NewHTTP(cfg.Source.URL, cfg.Source.Field, cfg.Source.Timeout.Std(), l)
		label = cfg.Source.URL
	}

	if !cfg.Simulation.Enabled {
		return src, label, nil
	}

	sim := cfg.Simulation
	opts := []datasource.SimulatedOption{
		datasource.WithDelay(sim.Delay.Std()),
		datasource.WithErrorRate(sim.ErrorRate),
		datasource.WithError(simulatedError(sim.ErrorMessage)),
	}
	if sim.Seed != 0 {
		opts = append(opts, datasource.WithSeed(sim.Seed))
	}
	l.Debug("simulating source", "delay", sim.Delay, "error_rate", sim.ErrorRate, "seed", sim.Seed)
	return datasource.NewSimulated(src, opts...), label + " (simulated)", nil
}

func simulatedError(message string) error {
	if message == "" || message == datasource.ErrInjected.Error() {
		return datasource.ErrInjected
	}
	return fmt.Errorf("%w: %s", datasource.ErrInjected, message)
}

func runPicker(ctx context.Context, cfg *config.Config, stdout, stderr io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}

	level, err := logger.ParseLevel(cfg.Log.Level)
	if err != nil {
		return err
	}
	l, closer, err := logger.Open(cfg.Log.File, "typeahead", level)
	if err != nil {
		return err
	}
	defer closer.Close()

	src, label, err := buildSource(cfg, l)
	if err != nil {
		return err
	}

	ctrl := typeahead.New(src,
		typeahead.WithDebounce(cfg.UI.Debounce.Std()),
		typeahead.WithLogger(l),
	)
	defer ctrl.Close()

	model := picker.New(ctrl, picker.Options{
		Context:     ctx,
		SourceLabel: label,
		Placeholder: cfg.UI.Placeholder,
		MaxWidth:    cfg.UI.MaxWidth,
		Logger:      l,
	})

	// The UI draws on stderr so stdout only carries the result.
	p := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithOutput(stderr),
		tea.WithContext(ctx),
	)
	final, err := p.Run()
	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("picker failed: %w", err)
	}

	result, ok := final.(picker.Model)
	if !ok || result.Aborted() {
		l.Info("aborted")
		return nil
	}

	selected := result.Selected()
	l.Info("done", "selected", len(selected))
	return writeSelection(stdout, selected)
}

func writeSelection(w io.Writer, selected []string) error {
	for _, option := range selected {
		if _, err := fmt.Fprintln(w, option); err != nil {
			return fmt.Errorf("failed to write selection: %w", err)
		}
	}
	return nil
}
