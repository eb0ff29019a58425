package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/toyinlola/editcore/pkg/cli"
	"github.com/toyinlola/editcore/pkg/commit"
	"github.com/toyinlola/editcore/pkg/editlog"
	"github.com/toyinlola/editcore/pkg/editmodel"
	"github.com/toyinlola/editcore/pkg/extract"
	"github.com/toyinlola/editcore/pkg/plan"
)

var (
	targetDir string
	dryRun    bool
)

var applyCmd = &cobra.Command{
	Use:   "apply <markdown-file>",
	Short: "Extract edits from a markdown document and apply them to a directory",
	Long: `Apply extracts every edit block (fenced diff, full file, rename,
delete, or SEARCH/REPLACE) from a markdown document, plans a target path
and change type for each one, applies the tiered diff strategy described
by the Change Planner, and commits the results to disk.`,
	Args: cobra.ExactArgs(1),
	RunE: runApply,
}

func init() {
	applyCmd.Flags().StringVar(&targetDir, "dir", ".", "directory the edits are applied against")
	applyCmd.Flags().BoolVar(&dryRun, "dry-run", false, "report what would change without writing anything")
	rootCmd.AddCommand(applyCmd)
}

func runApply(cmd *cobra.Command, args []string) error {
	runID := uuid.NewString()
	log := editlog.FromSlog(slog.Default())

	cfg, err := cli.LoadConfig(cfgFile)
	if err != nil {
		return fmt.Errorf("apply: %w", err)
	}

	markdownPath := args[0]
	data, err := os.ReadFile(markdownPath)
	if err != nil {
		return fmt.Errorf("apply: reading %s: %w", markdownPath, err)
	}

	slog.Info("extracting blocks", "run", runID, "file", markdownPath)
	blocks := extract.ExtractBlocks(string(data), extract.Options{Logger: log})
	slog.Info("blocks extracted", "run", runID, "count", len(blocks))

	plans, err := plan.PlanChanges(blocks, targetDir, nil)
	if err != nil {
		return fmt.Errorf("apply: planning changes: %w", err)
	}

	var changes []editmodel.Change
	for _, p := range plans {
		change, logs, applyErr := plan.ApplyChangeSmartly(p, targetDir, nil, nil)
		for _, l := range logs {
			slog.Debug("plan", "run", runID, "path", p.Path, "msg", l)
		}
		if applyErr != nil {
			slog.Warn("apply: change skipped", "run", runID, "path", p.Path, "error", applyErr)
			continue
		}
		if change == nil {
			continue
		}
		changes = append(changes, *change)
	}

	opts := commit.Options{
		Mode:      cfg.Commit.ModeValue(),
		Atomic:    cfg.Commit.IsAtomic(),
		DryRun:    dryRun,
		BackupExt: cfg.Commit.BackupExt,
		Logger:    log,
	}

	summary, err := commit.CommitChanges(targetDir, changes, opts)
	if err != nil {
		return fmt.Errorf("apply: committing changes: %w", err)
	}

	var w io.Writer = os.Stdout
	if output != "" {
		file, fileErr := os.Create(output)
		if fileErr != nil {
			return fmt.Errorf("apply: creating output file: %w", fileErr)
		}
		defer file.Close() // best-effort cleanup
		w = file
	}

	if err := writeSummary(w, runID, summary); err != nil {
		return fmt.Errorf("apply: writing summary: %w", err)
	}

	if len(summary.Failed) > 0 {
		os.Exit(1)
	}
	return nil
}

// writeSummary renders a CommitSummary in the requested terminal or JSON
// format. runID is a per-invocation correlation value for the CLI's own
// output, never consumed by the core commit summary itself.
func writeSummary(w io.Writer, runID string, summary editmodel.CommitSummary) error {
	if format == "json" {
		payload := struct {
			Run     string            `json:"run"`
			DryRun  bool              `json:"dry_run"`
			Success []string          `json:"success"`
			Failed  []string          `json:"failed"`
			Errors  map[string]string `json:"errors"`
		}{
			Run:     runID,
			DryRun:  summary.DryRun,
			Success: summary.Success,
			Failed:  summary.Failed,
			Errors:  summary.Errors,
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(payload)
	}

	fmt.Fprintf(w, "run %s\n", runID)
	for _, s := range summary.Success {
		fmt.Fprintf(w, "  ok      %s\n", s)
	}
	for _, f := range summary.Failed {
		fmt.Fprintf(w, "  failed  %s: %s\n", f, summary.Errors[f])
	}
	fmt.Fprintf(w, "%d succeeded, %d failed\n", len(summary.Success), len(summary.Failed))
	return nil
}
