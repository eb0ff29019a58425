// Package cmd implements the editcore CLI commands using Cobra.
package cmd

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
	format  string
	output  string
)

var rootCmd = &cobra.Command{
	Use:   "editcore",
	Short: "Apply AI-proposed code edits from markdown to a working tree",
	Long: `editcore extracts file edits embedded in markdown (fenced diffs,
full file replacements, SEARCH/REPLACE blocks, rename and delete
directives), plans how to apply each one against the files on disk, and
commits the result — falling back to fuzzy patch matching when a diff's
context has drifted from the target file.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setupLogging()
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command and returns any error.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file path (default: .editcore.yml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVarP(&format, "format", "f", "terminal", "summary format (terminal|json)")
	rootCmd.PersistentFlags().StringVarP(&output, "output", "o", "", "write the commit summary to a file instead of stdout")
}

func setupLogging() error {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	slog.SetDefault(slog.New(handler))

	return nil
}
