package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/ebiblegr/verselink/internal/config"
	"github.com/ebiblegr/verselink/internal/glyph"
	"github.com/ebiblegr/verselink/internal/linker"
	"github.com/ebiblegr/verselink/version"
)

var (
	cfgFile  string
	input    string
	output   string
	logLevel string
	watch    bool
)

var rootCmd = &cobra.Command{
	Use:   "verselink",
	Short: "Overlay ebible.gr collation links onto Bible references in a PDF",
	Long: `Verselink scans a typeset PDF for New Testament citations and overlays
clickable links onto them, preserving all original content.

Recognition handles full references (Lk 6:14), chapter:verse pairs that
inherit the current book, and bare verse numbers that inherit both book and
chapter, across line and page boundaries. Superscript footnote digits next
to verse numbers are detected and never linked.

Run without arguments to process the configured input file.`,
	Version: version.GitRelease,
	RunE:    runLink,
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default: ./config.yaml or ~/.verselink/config.yaml)",
	)
	rootCmd.Flags().StringVarP(&input, "input", "i", "", "source PDF (overrides config)")
	rootCmd.Flags().StringVarP(&output, "output", "o", "", "annotated PDF to write (overrides config)")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
	rootCmd.Flags().BoolVarP(&watch, "watch", "w", false, "keep running and relink when the input changes")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(configCmd)
}

func runLink(cmd *cobra.Command, args []string) error {
	cm, err := config.NewManager(cfgFile)
	if err != nil {
		return err
	}
	cfg := applyFlags(cm.Get())

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	}))
	slog.SetDefault(logger)

	lk := linker.New(linkerConfig(cfg), logger)
	if watch {
		cm.OnChange(func(c *config.Config) {
			lk.SetConfig(linkerConfig(applyFlags(c)))
			logger.Info("configuration reloaded")
		})
		cm.WatchConfig()
		return lk.Watch(cmd.Context())
	}

	_, err = lk.Run(cmd.Context())
	return err
}

// applyFlags lets command-line flags override file and environment values.
func applyFlags(cfg *config.Config) *config.Config {
	out := *cfg
	if input != "" {
		out.Input = input
	}
	if output != "" {
		out.Output = output
	}
	if logLevel != "" {
		out.LogLevel = logLevel
	}
	return &out
}

func linkerConfig(cfg *config.Config) linker.Config {
	return linker.Config{
		Input:   cfg.Input,
		Output:  cfg.Output,
		BaseURL: cfg.BaseURL,
		Normalize: glyph.NormalizeConfig{
			LineBreakFactor: cfg.Linker.LineBreakFactor,
		},
		Superscript: glyph.SuperscriptConfig{
			SizeRatio: cfg.Linker.SuperscriptSizeRatio,
			RiseRatio: cfg.Linker.SuperscriptRiseRatio,
		},
	}
}
