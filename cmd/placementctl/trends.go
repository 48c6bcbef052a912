package main

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"alfredoptarigan/placement-predictor/internal/prediction"
)

func newTrendsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trends",
		Short: "Summarise skill demand and salaries from the dataset",
		Args:  cobra.NoArgs,
		RunE:  runTrends,
	}
	cmd.Flags().String("format", formatText, "Output format: text | json")
	return cmd
}

func runTrends(cmd *cobra.Command, _ []string) error {
	format, err := outputFormat(cmd)
	if err != nil {
		return err
	}
	_, stack, err := loadStack(cmd)
	if err != nil {
		return err
	}

	ds, err := stack.Resources.Dataset(cmd.Context())
	if err != nil {
		return err
	}

	trends := ds.Trends()
	if format == formatJSON {
		return writeJSON(cmd.OutOrStdout(), trends)
	}
	writeTrends(cmd.OutOrStdout(), ds.Len(), trends)
	return nil
}

func writeTrends(w io.Writer, records int, t prediction.IndustryTrends) {
	fmt.Fprintf(w, "Dataset: %s records\n", humanize.Comma(int64(records)))

	fmt.Fprintln(w, "\nTop skills among placed students:")
	for i, s := range t.TopSkills {
		fmt.Fprintf(w, "  %-5s %-20s %s placements, avg %s\n",
			humanize.Ordinal(i+1), s.Skill, humanize.Comma(int64(s.Demand)), rupees(s.AvgSalary))
	}

	fmt.Fprintln(w, "\nPlacement rate by branch:")
	for _, b := range t.PlacementRateByBranch {
		fmt.Fprintf(w, "  %-40s %3d%% of %s\n", b.Branch, b.Rate, humanize.Comma(int64(b.Total)))
	}

	fmt.Fprintln(w, "\nAverage salary by branch:")
	for _, b := range t.AvgSalaryByBranch {
		fmt.Fprintf(w, "  %-40s %s\n", b.Branch, rupees(b.AvgSalary))
	}

	fmt.Fprintln(w, "\nSalary distribution:")
	for _, band := range t.SalaryDistribution {
		fmt.Fprintf(w, "  %-10s %3d%% (%s)\n", band.Range, band.Percentage, humanize.Comma(int64(band.Count)))
	}
}
