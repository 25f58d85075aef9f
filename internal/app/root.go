package app

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ironsheep/cover-palette-mcp/internal/config"
)

var (
	cfg *config.Config

	flagNoColor bool
	flagConfig  string
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "cover-palette",
		Short: "Derive UI theme colors from cover art",
		Long: `cover-palette extracts a dominant, secondary and light color plus a
three-stop background gradient from an album or book cover.

Run 'cover-palette serve' to expose the extractor to an MCP client over stdio,
or 'cover-palette extract <path|url>' to print a palette.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "Disable colored output")
	root.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file path (default: ~/.config/cover-palette/config.yml)")

	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		initColor(flagNoColor, cmd.OutOrStdout())

		var err error
		cfg, err = config.Load(flagConfig)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if cfg.Debug() {
			log.Printf("config: file=%q store=%q", cfg.File, cfg.Store.Path)
		}
		return nil
	}

	root.AddCommand(
		newServeCmd(),
		newExtractCmd(),
		newCandidatesCmd(),
		newConfigCmd(),
		newVersionCmd(),
	)
	return root
}

// Execute is the entry point called from main.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("error:"), err)
		os.Exit(1)
	}
}

// warn prints a yellow warning line.
func warn(format string, a ...interface{}) {
	fmt.Fprintln(os.Stderr, color.YellowString("!"), fmt.Sprintf(format, a...))
}

// header prints a cyan section heading.
func header(w io.Writer, format string, a ...interface{}) {
	fmt.Fprintln(w, color.CyanString(fmt.Sprintf(format, a...)))
}

func printField(w io.Writer, label, value string) {
	fmt.Fprintf(w, "  %-11s %s\n", color.CyanString(label), value)
}
