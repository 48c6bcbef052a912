package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"alfredoptarigan/placement-predictor/internal/assessment"
	"alfredoptarigan/placement-predictor/internal/bootstrap"
	"alfredoptarigan/placement-predictor/internal/report"
)

func newReportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Generate a placement report for a profile file",
		Long: `Generate the full placement report for a profile file.

The narrative summary comes from Gemini when GEMINI_API_KEY is set, unless
--template is given.`,
		Args: cobra.NoArgs,
		RunE: runReport,
	}
	cmd.Flags().String("profile", "", "Path to a profile JSON file")
	cmd.Flags().String("format", formatText, "Output format: text | json")
	cmd.Flags().Bool("template", false, "Always use the template summary")
	_ = cmd.MarkFlagRequired("profile")
	return cmd
}

func runReport(cmd *cobra.Command, _ []string) error {
	format, err := outputFormat(cmd)
	if err != nil {
		return err
	}
	path, err := cmd.Flags().GetString("profile")
	if err != nil {
		return err
	}
	templateOnly, err := cmd.Flags().GetBool("template")
	if err != nil {
		return err
	}
	pf, err := readProfile(path)
	if err != nil {
		return err
	}

	cfg, stack, err := loadStack(cmd)
	if err != nil {
		return err
	}
	if templateOnly {
		cfg.Gemini.APIKey = ""
	}

	ctx := cmd.Context()
	generator, err := bootstrap.NewReportGenerator(ctx, cfg, assessment.DefaultCatalog())
	if err != nil {
		return err
	}

	modelResult := stack.Predictor.Predict(ctx, pf.profile())
	r, err := generator.Generate(ctx, report.Input{
		Student:    pf.info(),
		Prediction: &modelResult,
	})
	if err != nil {
		return fmt.Errorf("failed to generate report: %w", err)
	}

	if format == formatJSON {
		return writeJSON(cmd.OutOrStdout(), r)
	}
	writeReport(cmd.OutOrStdout(), r)
	return nil
}

func writeReport(w io.Writer, r *report.PlacementReport) {
	p := r.PlacementPrediction
	fmt.Fprintf(w, "Placement report %s\n\n", r.ID)
	fmt.Fprintf(w, "%s\n\n", r.Summary)
	fmt.Fprintf(w, "Probability: %d%% (%s confidence)\n", p.Probability, p.Confidence)
	fmt.Fprintf(w, "Category:    %s\n", p.PlacementCategory)
	fmt.Fprintf(w, "Timeline:    %s\n", p.TimelineEstimate)
	fmt.Fprintf(w, "Salary:      %s - %s\n", rupees(p.ExpectedSalary.Min), rupees(p.ExpectedSalary.Max))
	fmt.Fprintf(w, "Role:        %s (%s level)\n", r.CareerPath.PrimaryRole, r.CareerPath.ExperienceLevel)

	writeList(w, "Strengths", r.SkillAnalysis.Strengths)
	writeList(w, "Weaknesses", r.SkillAnalysis.Weaknesses)
	writeList(w, "Skill gaps", r.SkillAnalysis.SkillGaps)
	writeList(w, "Next 30 days", r.ActionPlan.Next30Days)
}
