package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"alfredoptarigan/placement-predictor/internal/prediction"
)

func newPredictCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Predict placement for a profile file",
		Args:  cobra.NoArgs,
		RunE:  runPredict,
	}
	cmd.Flags().String("profile", "", "Path to a profile JSON file")
	cmd.Flags().String("format", formatText, "Output format: text | json")
	_ = cmd.MarkFlagRequired("profile")
	return cmd
}

func runPredict(cmd *cobra.Command, _ []string) error {
	format, err := outputFormat(cmd)
	if err != nil {
		return err
	}
	path, err := cmd.Flags().GetString("profile")
	if err != nil {
		return err
	}
	pf, err := readProfile(path)
	if err != nil {
		return err
	}

	_, stack, err := loadStack(cmd)
	if err != nil {
		return err
	}

	result := stack.Predictor.Predict(cmd.Context(), pf.profile())
	if format == formatJSON {
		return writeJSON(cmd.OutOrStdout(), result)
	}
	writePrediction(cmd.OutOrStdout(), result)
	return nil
}

func writePrediction(w io.Writer, r prediction.PredictionResult) {
	fmt.Fprintf(w, "Prediction:  %s (%d%%, %s confidence)\n", r.Label, r.ProbabilityPercent, r.Confidence)
	fmt.Fprintf(w, "Source:      %s\n", r.Source)
	fmt.Fprintf(w, "Salary:      %s - %s (avg %s)\n",
		rupees(r.ExpectedSalary.Min), rupees(r.ExpectedSalary.Max), rupees(r.ExpectedSalary.Average))
	if b := r.Benchmarks; b != nil {
		fmt.Fprintf(w, "CGPA:        above %d%% of past students\n", b.CGPAPercentile)
		fmt.Fprintf(w, "Internships: above %d%% of past students\n", b.InternshipPercentile)
		fmt.Fprintf(w, "Projects:    above %d%% of past students\n", b.ProjectPercentile)
		fmt.Fprintf(w, "Skill match: %d%% with placed students\n", b.SkillsMatch)
	}
	switch {
	case r.Source == prediction.SourceDefault:
		fmt.Fprintln(w, "Warning:     no model or dataset was available; this is a neutral default")
	case r.Degraded:
		fmt.Fprintln(w, "Note:        model unavailable or out of range; estimated from similar past students")
	}
}
