package main

import (
	"fmt"
	"log"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"alfredoptarigan/placement-predictor/internal/prediction"
	"alfredoptarigan/placement-predictor/internal/services"
)

func newIndexDatasetCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "index-dataset",
		Short: "Load the dataset into the Qdrant neighbour index",
		Long: `Load every dataset record into the Qdrant collection used for fallback
neighbour retrieval. Records are keyed by row number, so running it again
overwrites the previous load. The API only queries Qdrant when
QDRANT_ENABLED=true.`,
		Args: cobra.NoArgs,
		RunE: runIndexDataset,
	}
	cmd.Flags().Bool("reset", false, "Drop and recreate the collection first")
	return cmd
}

func runIndexDataset(cmd *cobra.Command, _ []string) error {
	reset, err := cmd.Flags().GetBool("reset")
	if err != nil {
		return err
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	log.Println("🚀 Starting dataset indexing...")

	resources := prediction.NewResources(cfg.Model.Path, cfg.Model.DatasetPath, prediction.FetchResource)
	ds, err := resources.Dataset(ctx)
	if err != nil {
		return err
	}

	index, err := services.NewQdrantNeighborIndex(cfg.Qdrant.URL, cfg.Qdrant.APIKey, cfg.Qdrant.Collection)
	if err != nil {
		return err
	}
	if reset {
		log.Printf("🔄 Resetting collection '%s'", cfg.Qdrant.Collection)
		err = index.Reset(ctx)
	} else {
		err = index.InitCollection(ctx)
	}
	if err != nil {
		return err
	}

	n, err := index.IndexDataset(ctx, ds)
	if err != nil {
		return fmt.Errorf("indexed %s of %s records: %w", humanize.Comma(int64(n)), humanize.Comma(int64(ds.Len())), err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Indexed %s records into %s\n", humanize.Comma(int64(n)), cfg.Qdrant.Collection)
	return nil
}
