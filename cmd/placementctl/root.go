package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"alfredoptarigan/placement-predictor/internal/bootstrap"
	"alfredoptarigan/placement-predictor/internal/config"
)

const (
	formatText = "text"
	formatJSON = "json"
)

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "placementctl",
		Short: "Placement predictor command line",
		Long: `placementctl scores student profiles against the placement model and
historical dataset without running the API server.

Model and dataset locations come from MODEL_PATH and DATASET_PATH (or a
.env file) unless --model and --dataset are given.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().String("model", "", "Model JSON path or URL (overrides MODEL_PATH)")
	cmd.PersistentFlags().String("dataset", "", "Dataset CSV path or URL (overrides DATASET_PATH)")

	cmd.AddCommand(newPredictCommand())
	cmd.AddCommand(newReportCommand())
	cmd.AddCommand(newTrendsCommand())
	cmd.AddCommand(newIndexDatasetCommand())
	return cmd
}

// loadConfig reads the environment and applies the persistent overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.Load()

	model, err := cmd.Flags().GetString("model")
	if err != nil {
		return nil, err
	}
	dataset, err := cmd.Flags().GetString("dataset")
	if err != nil {
		return nil, err
	}
	if model != "" {
		cfg.Model.Path = model
	}
	if dataset != "" {
		cfg.Model.DatasetPath = dataset
	}
	return cfg, nil
}

func loadStack(cmd *cobra.Command) (*config.Config, *bootstrap.Prediction, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	stack, err := bootstrap.NewPrediction(cmd.Context(), cfg)
	if err != nil {
		return nil, nil, err
	}
	return cfg, stack, nil
}

func outputFormat(cmd *cobra.Command) (string, error) {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return "", err
	}
	if format != formatText && format != formatJSON {
		return "", fmt.Errorf("unknown format %q: use text or json", format)
	}
	return format, nil
}
