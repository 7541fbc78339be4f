//go:build !windows

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/every-moment-special/pixel-perfect/internal/app"
	"github.com/every-moment-special/pixel-perfect/internal/config"
	"github.com/every-moment-special/pixel-perfect/internal/log"
	"github.com/every-moment-special/pixel-perfect/internal/term"
)

var (
	version   = "0.0.0-dev"
	buildDate = ""
)

var (
	flagConfig  string
	flagPalette string
	flagDebug   string
	flagNoWatch bool
)

var rootCmd = &cobra.Command{
	Use:   "pixel-perfect [path]",
	Short: "Browse directories and view images as colored text in the terminal",
	Long: `pixel-perfect renders raster images as half-block glyph mosaics right
inside the terminal: navigate directories, flip through thumbnail
grids, and page through full-size images without leaving the shell.

Keys:
  arrows / hjkl    move selection (scroll in scroll mode)
  PgUp / PgDn      page
  Enter / Enter    open the selected entry (press twice)
  Backspace        parent directory
  v                toggle grid / list view
  s                toggle scroll mode
  g g / G          jump to top / bottom
  r                refresh listing
  q / Esc          quit (Esc leaves the gallery first)`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func init() {
	rootCmd.Flags().StringVar(&flagConfig, "config", "", "config file (default ~/.config/pixel-perfect/config.yaml)")
	rootCmd.Flags().StringVar(&flagPalette, "palette", "", "color palette: auto, truecolor, or 256")
	rootCmd.Flags().StringVar(&flagDebug, "debug-log", "", "append debug logging to this file")
	rootCmd.Flags().BoolVar(&flagNoWatch, "no-watch", false, "disable automatic listing refresh")
	if buildDate != "" {
		rootCmd.Version = version + " (" + buildDate + ")"
	} else {
		rootCmd.Version = version
	}
}

func run(cmd *cobra.Command, args []string) error {
	var cfg *config.Config
	var err error
	if flagConfig != "" {
		cfg, err = config.LoadFile(flagConfig)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return err
	}
	if flagPalette != "" {
		cfg.Render.Palette = flagPalette
		if err := cfg.Validate(); err != nil {
			return err
		}
	}
	if flagNoWatch {
		cfg.Watch.Disabled = true
	}
	if flagDebug != "" {
		cfg.DebugLog = flagDebug
	}
	if cfg.DebugLog != "" {
		if err := log.ToFile(cfg.DebugLog); err != nil {
			return fmt.Errorf("debug log: %w", err)
		}
	}

	dir := "."
	if len(args) > 0 {
		dir = args[0]
	}
	dir, err = filepath.Abs(dir)
	if err != nil {
		return err
	}
	if info, serr := os.Stat(dir); serr != nil || !info.IsDir() {
		return fmt.Errorf("not a directory: %s", dir)
	}
	if !term.IsTerminal(os.Stdin.Fd()) || !term.IsTerminal(os.Stdout.Fd()) {
		return fmt.Errorf("stdin and stdout must be a terminal")
	}

	log.Infof("pixel-perfect %s starting in %s", version, dir)
	return app.New(cfg).Run(dir)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "pixel-perfect: %v\n", err)
		os.Exit(1)
	}
}
