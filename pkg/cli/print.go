package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/surch/pkg/domain/model"
	"github.com/secmon-lab/surch/pkg/infra/results"
	"github.com/secmon-lab/surch/pkg/utils/logging"
)

// report prints match records of the run if required. Per repository
// failures are already logged and do not fail the command.
func report(ctx context.Context, cfg *model.Config, summary *model.ScanSummary) error {
	if summary.Failed() > 0 {
		logging.From(ctx).Warn("Some repositories could not be scanned",
			slog.Int("failed", summary.Failed()),
			slog.Any("failures", summary.Failures),
		)
	}

	if summary.SinkFailures > 0 {
		logging.From(ctx).Warn("Some sink plugins failed to deliver results",
			slog.Int("failed", summary.SinkFailures),
			slog.String("results", summary.ResultsPath),
		)
	}

	if !cfg.PrintResult {
		return nil
	}

	records, err := results.ReadRecords(summary.ResultsPath)
	if err != nil {
		return goerr.Wrap(err, "failed to read results artifact")
	}
	PrintResults(os.Stdout, records)
	return nil
}

var (
	repoColor = color.New(color.FgHiCyan, color.Bold)
	pathColor = color.New(color.FgGreen)
	termColor = color.New(color.FgRed, color.Bold)
	metaColor = color.New(color.FgWhite)
)

// PrintResults writes match records in human readable form
func PrintResults(w io.Writer, records []*model.Match) {
	if len(records) == 0 {
		fmt.Fprintln(w, "No match found")
		return
	}

	for _, r := range records {
		repoColor.Fprint(w, r.Repository)
		fmt.Fprint(w, " ")
		pathColor.Fprintf(w, "%s:%d", r.Path, r.Line)
		fmt.Fprint(w, " ")
		termColor.Fprint(w, r.SearchTerm)
		fmt.Fprintln(w)
		metaColor.Fprintf(w, "  commit %s by %s <%s> at %s\n",
			r.Commit, r.Author, r.Email, r.CommittedAt.Format("2006-01-02T15:04:05Z07:00"))
	}
	fmt.Fprintf(w, "%d match(es)\n", len(records))
}
