package cmd

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"github.com/spf13/cobra"

	"github.com/veepiac/quip/internal/app"
	"github.com/veepiac/quip/internal/clipboard"
	"github.com/veepiac/quip/internal/config"
	"github.com/veepiac/quip/internal/logger"
)

var (
	debugMode             bool
	quietMode             bool
	serverOverride        string
	version, commit, date string
)

// SetVersionInfo sets version information from ldflags
func SetVersionInfo(v, c, d string) {
	version, commit, date = v, c, d
}

var rootCmd = &cobra.Command{
	Use:   "quip",
	Short: "TUI for turning TV dialogue into memes, gifs, and clips",
	Long: `Quip is a terminal client for the Veepiac media service. Search a show's
dialogue, inspect any line alongside its video frames, and turn it into
a captioned meme, an animated gif, or a video clip.`,
	RunE:          runTUI,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initLogging)
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVarP(&quietMode, "quiet", "q", false, "Reduce logging to info level only")
	rootCmd.PersistentFlags().StringVar(&serverOverride, "server", "", "Override the Veepiac server URL for this run")
}

func initLogging() {
	if quietMode {
		logger.SetDebug(false)
	} else if debugMode {
		logger.SetDebug(true)
	}
}

// Execute runs the root command
func Execute() error {
	rootCmd.Version = version
	rootCmd.SetVersionTemplate(versionTemplate())
	return rootCmd.Execute()
}

func versionTemplate() string {
	if commit != "none" && commit != "" {
		return fmt.Sprintf("quip %s\n  commit: %s\n  built:  %s\n", version, commit, date)
	}
	return fmt.Sprintf("quip %s\n", version)
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	// A --server override applies to this run only
	if serverOverride != "" {
		cfg.OverrideServerURL(serverOverride)
	}

	defer logger.Close()

	// Clipboard init fails on headless systems; copying just won't work there
	if err := clipboard.Init(); err != nil {
		logger.Log("Main: Clipboard unavailable: %v", err)
	}

	m := app.New(cfg, version)
	p := tea.NewProgram(m)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running app: %w", err)
	}
	return nil
}
