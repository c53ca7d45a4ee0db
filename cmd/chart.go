package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/KaramelBytes/vizadvisor-cli/internal/analysis"
	"github.com/KaramelBytes/vizadvisor-cli/internal/ingest"
	"github.com/KaramelBytes/vizadvisor-cli/internal/profile"
	"github.com/KaramelBytes/vizadvisor-cli/internal/recommend"
	"github.com/spf13/cobra"
)

var (
	chBins int
	chJSON bool
	chRead readFlags
)

var chartCmd = &cobra.Command{
	Use:   "chart <file>",
	Short: "Recommend a single chart for a dataset and print its data",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c := settings()
		iopt, err := chRead.options(c)
		if err != nil {
			return err
		}
		t, err := ingest.ReadFile(args[0], iopt)
		if err != nil {
			return err
		}
		bins := c.HistogramBins
		if chBins > 0 {
			bins = chBins
		}
		profiles := profile.ProfileWith(classifier(c), t.Header, t.Rows)
		choice := recommend.Charter{Bins: bins}.Recommend(t.Rows, profiles)

		out := cmd.OutOrStdout()
		if chJSON {
			b, err := json.MarshalIndent(choice, "", "  ")
			if err != nil {
				return fmt.Errorf("marshal chart: %w", err)
			}
			fmt.Fprintln(out, string(b))
			return nil
		}
		fmt.Fprint(out, analysis.ChartSummary(choice))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(chartCmd)
	chartCmd.Flags().IntVar(&chBins, "bins", 0, "histogram bin count (default from config)")
	chartCmd.Flags().BoolVar(&chJSON, "json", false, "print the chart choice as JSON")
	chartCmd.Flags().StringVar(&chRead.delimiter, "delimiter", "", "CSV delimiter: ',' | ';' | 'tab' (sniffed if omitted)")
	chartCmd.Flags().IntVar(&chRead.maxRows, "max-rows", 0, "maximum rows to process (default from config)")
	chartCmd.Flags().StringVar(&chRead.sheetName, "sheet-name", "", "XLSX: sheet name to analyze")
	chartCmd.Flags().IntVar(&chRead.sheetIndex, "sheet-index", 1, "XLSX: 1-based sheet index (used if --sheet-name not provided)")
}
