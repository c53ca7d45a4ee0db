package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/KaramelBytes/vizadvisor-cli/internal/analysis"
	cfgpkg "github.com/KaramelBytes/vizadvisor-cli/internal/config"
	"github.com/KaramelBytes/vizadvisor-cli/internal/ingest"
	"github.com/KaramelBytes/vizadvisor-cli/internal/profile"
	"github.com/KaramelBytes/vizadvisor-cli/internal/utils"
	"github.com/KaramelBytes/vizadvisor-cli/internal/worker"
)

// readFlags are the ingestion flags shared by analyze, analyze-batch, chart and sales.
type readFlags struct {
	delimiter  string
	maxRows    int
	sheetName  string
	sheetIndex int
}

func (f readFlags) options(c *cfgpkg.Global) (ingest.Options, error) {
	opt := ingest.DefaultOptions()
	opt.MaxRows = c.MaxRows
	if f.maxRows > 0 {
		opt.MaxRows = f.maxRows
	}
	switch f.delimiter {
	case "":
	case ",":
		opt.Delimiter = ','
	case "\t", "tab":
		opt.Delimiter = '\t'
	case ";":
		opt.Delimiter = ';'
	default:
		return opt, fmt.Errorf("unsupported --delimiter: %s", f.delimiter)
	}
	opt.Sheet = f.sheetName
	opt.SheetIndex = f.sheetIndex
	return opt, nil
}

func analysisOptions(c *cfgpkg.Global) analysis.Options {
	opt := analysis.DefaultOptions()
	opt.SampleRows = c.SampleRows
	opt.SampleValues = c.SampleValues
	opt.MinCorrelation = c.MinCorrelation
	opt.HistogramBins = c.HistogramBins
	opt.Classifier = classifier(c)
	return opt
}

func classifier(c *cfgpkg.Global) profile.ColumnClassifier {
	return profile.Heuristic{SampleSize: c.SampleValues}
}

// analyzeFile reads path and runs the analysis off the calling goroutine so
// the caller can abandon it when ctx is done.
func analyzeFile(ctx context.Context, path string, iopt ingest.Options, aopt analysis.Options) (*analysis.Report, error) {
	t, err := ingest.ReadFile(path, iopt)
	if err != nil {
		return nil, err
	}
	f := worker.Go(func() (*analysis.Report, error) {
		return analysis.Analyze(t, aopt), nil
	})
	slog.Debug("analysis started", "file", path, "job", f.ID, "rows", len(t.Rows))
	return f.Wait(ctx)
}

func validFormat(format string) (string, error) {
	switch f := strings.ToLower(format); f {
	case "markdown", "md":
		return "markdown", nil
	case "json", "html":
		return f, nil
	default:
		return "", fmt.Errorf("unsupported --format: %s (use markdown, json or html)", format)
	}
}

func renderReport(rep *analysis.Report, format string) ([]byte, error) {
	switch format {
	case "json":
		return rep.JSON()
	case "html":
		return rep.HTML(), nil
	default:
		return []byte(rep.Markdown()), nil
	}
}

func formatExt(format string) string {
	switch format {
	case "json":
		return ".json"
	case "html":
		return ".html"
	default:
		return ".md"
	}
}

// emit writes data to path when set, otherwise to w.
func emit(w io.Writer, path string, data []byte) error {
	if path == "" {
		_, err := fmt.Fprintln(w, string(data))
		return err
	}
	if err := utils.SafeWriteFile(path, data); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	printSuccess(w, "Wrote analysis to %s", path)
	return nil
}
