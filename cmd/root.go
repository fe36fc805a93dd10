package cmd

import (
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/connorleisz/emojiTUI/internal/app"
	"github.com/connorleisz/emojiTUI/internal/clipboard"
	"github.com/connorleisz/emojiTUI/internal/config"
	"github.com/connorleisz/emojiTUI/internal/emoji"
	"github.com/connorleisz/emojiTUI/internal/logging"
	"github.com/connorleisz/emojiTUI/internal/store"
	"github.com/connorleisz/emojiTUI/internal/terminal"
	"github.com/spf13/cobra"
)

var (
	cfgFile   string
	dbPath    string
	logFile   string
	debug     bool
	include   []string
	exclude   []string
	skin      int
	perLine   int
	noPreview bool
	multi     bool
)

var rootCmd = &cobra.Command{
	Use:   "emojitui",
	Short: "Pick an emoji from the terminal",
	Long: `emojiTUI is a horizontally scrolling emoji picker. Scroll through the
categories, jump with the category bar or search by name and keyword.
The picked emoji is copied to the clipboard and printed on exit.`,
	SilenceUsage: true,
	RunE:         runPicker,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", config.DefaultPath(), "config file path")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "preferences database path (default from config, else user config dir)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "write logs to this file")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "log at debug level")

	rootCmd.Flags().StringSliceVar(&include, "include", nil, "categories to show, in order")
	rootCmd.Flags().StringSliceVar(&exclude, "exclude", nil, "categories to hide")
	rootCmd.Flags().IntVar(&skin, "skin", 0, "skin tone 1-6")
	rootCmd.Flags().IntVar(&perLine, "per-line", 0, "emoji rows in the strip")
	rootCmd.Flags().BoolVar(&noPreview, "no-preview", false, "hide the preview bar")
	rootCmd.Flags().BoolVar(&multi, "multi", false, "stay open after picking")
}

// setupLogging installs the file logger when --log-file is set. The
// returned func closes the file.
func setupLogging() (func(), error) {
	if logFile == "" {
		return func() {}, nil
	}
	f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	logging.SetLogger(logging.NewFileLogger(f, debug))
	return func() {
		logging.SetLogger(nil)
		f.Close()
	}, nil
}

// loadConfig reads the config file and applies the command-line overrides
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	flags := cmd.Flags()
	if flags.Changed("include") {
		cfg.Include = include
	}
	if flags.Changed("exclude") {
		cfg.Exclude = exclude
	}
	if flags.Changed("skin") {
		cfg.Skin = skin
	}
	if flags.Changed("per-line") {
		cfg.PerLine = perLine
	}
	if noPreview {
		cfg.ShowPreview = false
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", cfgFile, err)
	}
	return cfg, nil
}

// openStore opens the preferences database named by --db, the config or
// the default location, in that order.
func openStore(cfg *config.Config) (*store.DB, error) {
	path := dbPath
	if path == "" {
		path = cfg.DBPath
	}
	if path == "" {
		path = store.DefaultPath()
	}
	return store.Open(path)
}

func runPicker(cmd *cobra.Command, args []string) error {
	closeLog, err := setupLogging()
	if err != nil {
		return err
	}
	defer closeLog()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	caps := terminal.Detect(os.Stdout)
	if !caps.NativeEmoji {
		cfg.Native = false
	}
	logging.Logger().Info("starting picker",
		"config", cfgFile, "profile", caps.ProfileName(), "native", cfg.Native)

	data, err := emoji.Default()
	if err != nil {
		return fmt.Errorf("loading emoji data: %w", err)
	}

	db, err := openStore(cfg)
	if err != nil {
		return fmt.Errorf("opening preferences: %w", err)
	}
	defer db.Close()

	if !clipboard.IsAvailable() {
		logging.Logger().Warn("no clipboard utility, picks are only printed")
	}

	model := app.NewModel(app.Options{
		Config:     cfg,
		ConfigPath: cfgFile,
		Data:       data,
		Store:      db,
		Tracker:    store.NewTracker(db),
		Multi:      multi,
		Dark:       caps.DarkBackground,
		Copy:       clipboard.CopyEmoji,
		Watch:      true,
	})
	defer model.Close()

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseAllMotion())
	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("running picker: %w", err)
	}

	if m, ok := final.(app.Model); ok {
		var out strings.Builder
		for _, e := range m.Picked() {
			out.WriteString(clipboard.Text(e))
		}
		if out.Len() > 0 {
			fmt.Fprintln(cmd.OutOrStdout(), out.String())
		}
	}
	return nil
}
