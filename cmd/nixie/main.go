// Package main provides the CLI entrypoint for nixie.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/verte-zerg/nixie/internal/config"
	"github.com/verte-zerg/nixie/internal/historyui"
	"github.com/verte-zerg/nixie/internal/logger"
	"github.com/verte-zerg/nixie/internal/menu"
	"github.com/verte-zerg/nixie/internal/model"
	"github.com/verte-zerg/nixie/internal/report"
	"github.com/verte-zerg/nixie/internal/settings"
	"github.com/verte-zerg/nixie/internal/sim"
	"github.com/verte-zerg/nixie/internal/store"
	"github.com/verte-zerg/nixie/internal/tui"
)

const (
	defaultSongs     = 10
	defaultCelsius   = 21.5
	defaultLight     = 160
	defaultBatteryMv = 3000
	defaultSongMs    = 8000
)

var (
	dbPath   string
	logDebug bool

	simSongs   int
	simCelsius float64
	simLight   int
	simBattery int
	simSongMs  int

	historySince string
	historyLast  int
	historyPlain bool
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "nixie",
		Short:         "Nixie tube clock simulator",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runClockCmd,
	}

	rootCmd.PersistentFlags().StringVar(&dbPath, "db", config.DefaultDBPath(), "path of the simulated EEPROM database")
	rootCmd.Flags().BoolVar(&logDebug, "debug", false, "log at debug level")
	rootCmd.Flags().IntVar(&simSongs, "songs", defaultSongs, "number of songs the sequencer knows")
	rootCmd.Flags().Float64Var(&simCelsius, "temperature", defaultCelsius, "sensor temperature in Celsius")
	rootCmd.Flags().IntVar(&simLight, "light", defaultLight, "raw light sensor reading (0-255)")
	rootCmd.Flags().IntVar(&simBattery, "battery", defaultBatteryMv, "backup battery voltage in millivolts")
	rootCmd.Flags().IntVar(&simSongMs, "song-ms", defaultSongMs, "length of one song in milliseconds")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newShowCmd())
	rootCmd.AddCommand(newResetCmd())
	rootCmd.AddCommand(newHistoryCmd())

	return rootCmd
}

func loadFileConfig(cmd *cobra.Command) (config.FileConfig, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return config.FileConfig{}, fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "db", &dbPath, fileCfg.Storage.Path)
	return fileCfg, nil
}

func runClockCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := loadFileConfig(cmd)
	if err != nil {
		return err
	}
	applyBoolConfig(cmd, "debug", &logDebug, fileCfg.Log.Debug)
	applyIntConfig(cmd, "songs", &simSongs, fileCfg.Simulator.Songs)
	applyFloatConfig(cmd, "temperature", &simCelsius, fileCfg.Simulator.TemperatureC)
	applyIntConfig(cmd, "light", &simLight, fileCfg.Simulator.Light)
	applyIntConfig(cmd, "battery", &simBattery, fileCfg.Simulator.BatteryMv)
	applyIntConfig(cmd, "song-ms", &simSongMs, fileCfg.Simulator.SongMs)

	if err := validateSimulator(); err != nil {
		return err
	}
	timeouts, err := resolveTimeouts(fileCfg.Timeouts)
	if err != nil {
		return err
	}

	lg, closer, err := logger.New(logger.Config{Debug: logDebug, Dir: config.DefaultLogDir()})
	if err != nil {
		return fmt.Errorf("failed to open log: %w", err)
	}
	defer closeQuietly(closer, "log")

	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer closeQuietly(st, "db")

	dev := sim.NewDevices(sim.DeviceOptions{
		Celsius:    simCelsius,
		Light:      simLight,
		Millivolts: simBattery,
		SongLength: time.Duration(simSongMs) * time.Millisecond,
	})
	dispatcher, err := menu.New(st, dev.Hardware(), menu.Options{
		Timeouts: timeouts,
		Songs:    simSongs,
		Logger:   lg,
	})
	if err != nil {
		return fmt.Errorf("failed to start menu: %w", err)
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	app := sim.NewAppliance(dispatcher, dev, 0, lg)
	runErr := make(chan error, 1)
	go func() {
		runErr <- app.Run(ctx)
	}()
	lg.Info("clock started", "db", dbPath, "songs", simSongs)

	program := tea.NewProgram(tui.NewModel(dev), tea.WithAltScreen(), tea.WithContext(ctx))
	_, uiErr := program.Run()
	cancel()
	if err := <-runErr; err != nil {
		lg.Error("appliance stopped", "err", err)
		return fmt.Errorf("appliance failed: %w", err)
	}
	if uiErr != nil && !errors.Is(uiErr, tea.ErrProgramKilled) {
		return fmt.Errorf("failed to run TUI: %w", uiErr)
	}
	lg.Info("clock stopped")
	return nil
}

func validateSimulator() error {
	if simSongs <= 0 {
		return fmt.Errorf("--songs must be > 0")
	}
	if simLight < 0 || simLight > settings.LightMax {
		return fmt.Errorf("--light must be between 0 and %d", settings.LightMax)
	}
	if simBattery < 0 {
		return fmt.Errorf("--battery must be >= 0")
	}
	if simSongMs <= 0 {
		return fmt.Errorf("--song-ms must be > 0")
	}
	return nil
}

// resolveTimeouts overlays the configured budgets on the defaults.
func resolveTimeouts(cfg config.TimeoutsConfig) (menu.Timeouts, error) {
	timeouts := menu.DefaultTimeouts()
	fields := []struct {
		name   string
		value  *int
		target *time.Duration
	}{
		{"info-ms", cfg.InfoMs, &timeouts.Info},
		{"menu-ms", cfg.MenuMs, &timeouts.Menu},
		{"select-ms", cfg.SelectMs, &timeouts.Select},
		{"value-ms", cfg.ValueMs, &timeouts.Value},
	}
	for _, f := range fields {
		if f.value == nil {
			continue
		}
		if *f.value <= 0 {
			return menu.Timeouts{}, fmt.Errorf("timeouts.%s must be > 0", f.name)
		}
		*f.target = time.Duration(*f.value) * time.Millisecond
	}
	return timeouts, nil
}

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the stored configuration record",
		Args:  cobra.NoArgs,
		RunE:  runShowCmd,
	}
}

func runShowCmd(cmd *cobra.Command, _ []string) error {
	if _, err := loadFileConfig(cmd); err != nil {
		return err
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer closeQuietly(st, "db")

	rec, readErr := settings.Read(st)
	if errors.Is(readErr, settings.ErrShortImage) {
		return fmt.Errorf("failed to read record: %w", readErr)
	}
	out := cmd.OutOrStdout()
	if err := report.Write(out, report.RecordHeaders, report.RecordRows(rec), nil, outputOptions(out)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if readErr != nil {
		logErrf("record does not validate: %v\n", readErr)
	}
	return nil
}

func newResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Restore factory defaults",
		Args:  cobra.NoArgs,
		RunE:  runResetCmd,
	}
}

func runResetCmd(cmd *cobra.Command, _ []string) error {
	if _, err := loadFileConfig(cmd); err != nil {
		return err
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer closeQuietly(st, "db")

	rec := settings.Default()
	if err := settings.Persist(st, &rec); err != nil {
		return fmt.Errorf("failed to restore defaults: %w", err)
	}
	logErrln("Factory defaults restored")
	return nil
}

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Browse persisted record revisions",
		Args:  cobra.NoArgs,
		RunE:  runHistoryCmd,
	}
	cmd.Flags().StringVar(&historySince, "since", "", "start date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&historyLast, "last", 0, "limit to last N revisions")
	cmd.Flags().BoolVar(&historyPlain, "plain", false, "print a table instead of the interactive browser")
	return cmd
}

func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	if _, err := loadFileConfig(cmd); err != nil {
		return err
	}
	since, err := historyui.ParseSince(historySince)
	if err != nil {
		return fmt.Errorf("invalid --since value: %w", err)
	}
	if historyLast < 0 {
		return fmt.Errorf("--last must be >= 0")
	}
	filter := model.HistoryFilter{Since: since, Last: historyLast}

	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer closeQuietly(st, "db")

	out := cmd.OutOrStdout()
	if historyPlain || !isTerminal(out) {
		revs, err := st.History(cmd.Context(), filter)
		if err != nil {
			return fmt.Errorf("failed to load history: %w", err)
		}
		if err := report.Write(out, report.HistoryHeaders, report.HistoryRows(revs), report.HistoryRightAlign, outputOptions(out)); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}

	program := tea.NewProgram(historyui.NewModel(st, filter), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run history TUI: %w", err)
	}
	return nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func defaultConfigTemplate() string {
	defaults := menu.DefaultTimeouts()
	return fmt.Sprintf(`# nixie configuration
# Uncomment a value to enable it. CLI flags override config values.

[storage]
# path = %q

[timeouts]
# info-ms = %d            # Idle budget of the info screens
# menu-ms = %d            # Idle budget of the menu chooser
# select-ms = %d          # Idle budget of option lists
# value-ms = %d           # Idle budget of numeric fields

[simulator]
# songs = %d              # Number of songs the sequencer knows
# temperature-c = %.1f    # Sensor temperature in Celsius
# light = %d              # Raw light sensor reading (0-255)
# battery-mv = %d         # Backup battery voltage in millivolts
# song-ms = %d            # Length of one song in milliseconds

[log]
# debug = false           # Log at debug level
`,
		config.DefaultDBPath(),
		defaults.Info.Milliseconds(),
		defaults.Menu.Milliseconds(),
		defaults.Select.Milliseconds(),
		defaults.Value.Milliseconds(),
		defaultSongs,
		defaultCelsius,
		defaultLight,
		defaultBatteryMv,
		defaultSongMs,
	)
}

func outputOptions(w io.Writer) report.Options {
	if !isTerminal(w) {
		return report.Options{}
	}
	opts := report.Options{Color: true}
	if f, ok := w.(*os.File); ok {
		if width, _, err := term.GetSize(int(f.Fd())); err == nil {
			opts.Width = width
		}
	}
	return opts
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyFloatConfig(cmd *cobra.Command, name string, target, value *float64) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func closeQuietly(c io.Closer, what string) {
	if err := c.Close(); err != nil {
		logErrf("failed to close %s: %v\n", what, err)
	}
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}

func logErrln(args ...any) {
	if _, err := fmt.Fprintln(os.Stderr, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
