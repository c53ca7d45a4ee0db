package cmd

import (
	"github.com/spf13/cobra"
)

var (
	anaOutputPath string
	anaFormat     string
	anaSampleRows int
	anaMinCorr    float64
	anaRead       readFlags
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <file>",
	Short: "Profile a CSV/TSV/XLSX file and recommend charts, metrics and targets",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c := settings()
		format, err := validFormat(firstNonEmpty(anaFormat, c.OutputFormat))
		if err != nil {
			return err
		}
		iopt, err := anaRead.options(c)
		if err != nil {
			return err
		}
		aopt := analysisOptions(c)
		if cmd.Flags().Changed("sample-rows") {
			aopt.SampleRows = anaSampleRows
		}
		if cmd.Flags().Changed("min-correlation") {
			aopt.MinCorrelation = anaMinCorr
		}

		rep, err := analyzeFile(cmd.Context(), args[0], iopt, aopt)
		if err != nil {
			return err
		}
		out, err := renderReport(rep, format)
		if err != nil {
			return err
		}
		return emit(cmd.OutOrStdout(), anaOutputPath, out)
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().StringVarP(&anaOutputPath, "output", "o", "", "optional path to write the report")
	analyzeCmd.Flags().StringVarP(&anaFormat, "format", "f", "", "report format: markdown | json | html (default from config)")
	analyzeCmd.Flags().StringVar(&anaRead.delimiter, "delimiter", "", "CSV delimiter: ',' | ';' | 'tab' (sniffed if omitted)")
	analyzeCmd.Flags().IntVar(&anaSampleRows, "sample-rows", 5, "number of sample rows to include (0 disables samples)")
	analyzeCmd.Flags().IntVar(&anaRead.maxRows, "max-rows", 0, "maximum rows to process (default from config)")
	analyzeCmd.Flags().Float64Var(&anaMinCorr, "min-correlation", 0.5, "minimum |r| reported as a correlation finding")
	analyzeCmd.Flags().StringVar(&anaRead.sheetName, "sheet-name", "", "XLSX: sheet name to analyze")
	analyzeCmd.Flags().IntVar(&anaRead.sheetIndex, "sheet-index", 1, "XLSX: 1-based sheet index (used if --sheet-name not provided)")
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
