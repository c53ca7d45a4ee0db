package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"

	"github.com/KaramelBytes/vizadvisor-cli/internal/analysis"
	"github.com/KaramelBytes/vizadvisor-cli/internal/logging"
	"github.com/KaramelBytes/vizadvisor-cli/internal/utils"
	"github.com/KaramelBytes/vizadvisor-cli/internal/worker"
	"github.com/spf13/cobra"
)

var (
	abOutDir     string
	abFormat     string
	abSampleRows int
	abWorkers    int
	abQuiet      bool
	abRead       readFlags
)

var analyzeBatchCmd = &cobra.Command{
	Use:   "analyze-batch <files...>",
	Short: "Analyze multiple CSV/TSV/XLSX files concurrently with progress",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		files, err := utils.ExpandInputs(args)
		if err != nil {
			return err
		}
		c := settings()
		format, err := validFormat(firstNonEmpty(abFormat, c.OutputFormat))
		if err != nil {
			return err
		}
		iopt, err := abRead.options(c)
		if err != nil {
			return err
		}
		aopt := analysisOptions(c)
		if cmd.Flags().Changed("sample-rows") {
			aopt.SampleRows = abSampleRows
		}
		pool := worker.Pool{Size: c.Workers}
		if abWorkers > 0 {
			pool.Size = abWorkers
		}

		out := cmd.OutOrStdout()
		total := len(files)
		var (
			mu      sync.Mutex
			started int
		)
		results, err := worker.Run(cmd.Context(), pool, files, func(ctx context.Context, path string) (*analysis.Report, error) {
			if !abQuiet {
				mu.Lock()
				started++
				fmt.Fprintf(out, "[%d/%d] Processing %s...\n", started, total, filepath.Base(path))
				mu.Unlock()
			}
			return analyzeFile(ctx, path, iopt, aopt)
		})
		if err != nil {
			return err
		}

		reserved := map[string]struct{}{}
		suffix := ".summary" + formatExt(format)
		var failed int
		for i, res := range results {
			path := files[i]
			if res.Err != nil {
				failed++
				logging.WithError(slog.Default(), res.Err).Debug("analysis failed", "file", path)
				printError(out, "%s: %v", filepath.Base(path), res.Err)
				continue
			}
			data, err := renderReport(res.Value, format)
			if err != nil {
				return err
			}
			if abOutDir == "" {
				if !abQuiet {
					fmt.Fprintln(out, string(data))
				}
				continue
			}
			stem := path
			if abRead.sheetName != "" {
				stem = strings.TrimSuffix(path, filepath.Ext(path)) + "__sheet-" + utils.Slug(abRead.sheetName) + filepath.Ext(path)
			}
			outFile := utils.UniqueOutputPath(abOutDir, stem, suffix, reserved)
			if err := utils.SafeWriteFile(outFile, data); err != nil {
				return fmt.Errorf("write summary: %w", err)
			}
			if !abQuiet {
				printSuccess(out, "Wrote %s", outFile)
			}
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d files failed", failed, total)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(analyzeBatchCmd)
	analyzeBatchCmd.Flags().StringVar(&abOutDir, "out-dir", "", "directory to write one report per input (stdout if omitted)")
	analyzeBatchCmd.Flags().StringVarP(&abFormat, "format", "f", "", "report format: markdown | json | html (default from config)")
	analyzeBatchCmd.Flags().StringVar(&abRead.delimiter, "delimiter", "", "CSV delimiter: ',' | ';' | 'tab' (sniffed if omitted)")
	analyzeBatchCmd.Flags().IntVar(&abSampleRows, "sample-rows", 5, "number of sample rows to include (0 disables samples)")
	analyzeBatchCmd.Flags().IntVar(&abRead.maxRows, "max-rows", 0, "maximum rows to process per file (default from config)")
	analyzeBatchCmd.Flags().StringVar(&abRead.sheetName, "sheet-name", "", "XLSX: sheet name to analyze")
	analyzeBatchCmd.Flags().IntVar(&abRead.sheetIndex, "sheet-index", 1, "XLSX: 1-based sheet index (used if --sheet-name not provided)")
	analyzeBatchCmd.Flags().IntVar(&abWorkers, "workers", 0, "concurrent analyses (default from config)")
	analyzeBatchCmd.Flags().BoolVarP(&abQuiet, "quiet", "q", false, "suppress progress and stdout reports")
}
