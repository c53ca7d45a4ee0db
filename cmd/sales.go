package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/KaramelBytes/vizadvisor-cli/internal/ingest"
	"github.com/KaramelBytes/vizadvisor-cli/internal/snapshot"
	"github.com/spf13/cobra"
)

var (
	slView   string
	slStore  string
	slFrom   string
	slTo     string
	slWindow int
	slJSON   bool
	slRead   readFlags
)

var salesCmd = &cobra.Command{
	Use:   "sales <file>",
	Short: "Time-series and department views over a weekly sales dataset",
	Long: `Loads a dataset with Date, Store, Weekly_Sales and Dept columns and prints one view:
  stores          list store keys
  timeseries      daily totals for --store within --from/--to
  moving-average  timeseries smoothed with a trailing --window
  department      totals per department
  monthly         totals per calendar month
  pct-change      month-over-month change in percent`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c := settings()
		from, err := parseDay("from", slFrom)
		if err != nil {
			return err
		}
		to, err := parseDay("to", slTo)
		if err != nil {
			return err
		}
		window := c.MovingAverageWindow
		if slWindow > 0 {
			window = slWindow
		}

		iopt, err := slRead.options(c)
		if err != nil {
			return err
		}
		t, err := ingest.ReadFile(args[0], iopt)
		if err != nil {
			return err
		}
		snap, err := snapshot.Build(t.Header, t.Rows)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if snap.Skipped > 0 {
			printWarning(cmd.ErrOrStderr(), "skipped %d malformed rows", snap.Skipped)
		}
		if slView != "stores" && !slices.Contains(snap.Stores(), slStore) {
			return fmt.Errorf("unknown store: %s", slStore)
		}

		var view any
		switch slView {
		case "stores":
			view = snap.Stores()
		case "timeseries":
			view = snap.TimeSeries(slStore, from, to)
		case "moving-average":
			view = snap.MovingAverage(slStore, from, to, window)
		case "department":
			view = snap.ByDepartment(slStore)
		case "monthly":
			view = snap.MonthlyTotals(slStore)
		case "pct-change":
			view = snap.PercentChange(slStore)
		default:
			return fmt.Errorf("unsupported --view: %s", slView)
		}
		if slJSON {
			b, err := json.MarshalIndent(view, "", "  ")
			if err != nil {
				return fmt.Errorf("marshal view: %w", err)
			}
			fmt.Fprintln(out, string(b))
			return nil
		}
		printView(out, view)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(salesCmd)
	salesCmd.Flags().StringVar(&slView, "view", "timeseries", "stores | timeseries | moving-average | department | monthly | pct-change")
	salesCmd.Flags().StringVar(&slStore, "store", snapshot.AllStores, "store key")
	salesCmd.Flags().StringVar(&slFrom, "from", "", "start date YYYY-MM-DD (inclusive)")
	salesCmd.Flags().StringVar(&slTo, "to", "", "end date YYYY-MM-DD (inclusive)")
	salesCmd.Flags().IntVar(&slWindow, "window", 0, "moving average window in points (default from config)")
	salesCmd.Flags().BoolVar(&slJSON, "json", false, "print the view as JSON")
	salesCmd.Flags().StringVar(&slRead.delimiter, "delimiter", "", "CSV delimiter: ',' | ';' | 'tab' (sniffed if omitted)")
	salesCmd.Flags().IntVar(&slRead.maxRows, "max-rows", 0, "maximum rows to load (default from config)")
	salesCmd.Flags().StringVar(&slRead.sheetName, "sheet-name", "", "XLSX: sheet name to load")
	salesCmd.Flags().IntVar(&slRead.sheetIndex, "sheet-index", 1, "XLSX: 1-based sheet index (used if --sheet-name not provided)")
}

func parseDay(flag, s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --%s: %s (use YYYY-MM-DD)", flag, s)
	}
	return d, nil
}

func printView(w io.Writer, view any) {
	switch v := view.(type) {
	case []string:
		for _, s := range v {
			fmt.Fprintln(w, s)
		}
	case []snapshot.Point:
		for _, p := range v {
			fmt.Fprintf(w, "%s  %.2f\n", p.Date.Format("2006-01-02"), p.Value)
		}
	case []snapshot.DeptTotal:
		for _, d := range v {
			fmt.Fprintf(w, "%s  %.2f\n", d.Dept, d.Total)
		}
	case []snapshot.MonthValue:
		for _, m := range v {
			fmt.Fprintf(w, "%s  %.2f\n", m.Month, m.Value)
		}
	}
}
