package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/jengzang/movetank-go/internal/database"
	"github.com/jengzang/movetank-go/internal/dataset"
	"github.com/jengzang/movetank-go/internal/repository"
	"github.com/jengzang/movetank-go/internal/service"
	"github.com/spf13/cobra"
)

func importCmd() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "import <file.csv>",
		Short: "Import a CSV dataset into the database",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			records, err := dataset.LoadCSV(args[0])
			if err != nil {
				return err
			}
			ds, err := dataset.New(records)
			if err != nil {
				return err
			}
			if name == "" {
				name = datasetName(args[0])
			}

			if err := database.Init(database.Config{Path: cfg.Database.Path}); err != nil {
				return err
			}
			defer database.Close()

			repo := repository.NewRecordRepository(database.GetDB())
			if err := repo.ReplaceDataset(cmd.Context(), name, args[0], records); err != nil {
				return err
			}

			summary := service.Summarize(name, ds)
			fmt.Printf("%s imported %s\n", Good.Sprint("✓"), Brand.Sprint(name))
			Field("Records", summary.Records)
			Field("Time steps", len(summary.Times))
			Field("Database", cfg.Database.Path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "Dataset name (defaults to the file name)")
	return cmd
}

func datasetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "datasets",
		Aliases: []string{"ls"},
		Short:   "List imported datasets",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if err := database.Init(database.Config{Path: cfg.Database.Path}); err != nil {
				return err
			}
			defer database.Close()

			infos, err := repository.NewRecordRepository(database.GetDB()).ListDatasets(cmd.Context())
			if err != nil {
				return err
			}
			if len(infos) == 0 {
				Subtle.Println("  No datasets imported yet")
				return nil
			}

			rows := make([][]string, 0, len(infos))
			for _, info := range infos {
				rows = append(rows, []string{
					info.Name,
					strconv.Itoa(info.RecordCount),
					info.ImportedAt.Format(time.DateTime),
					info.Source,
				})
			}
			Table([]string{"NAME", "RECORDS", "IMPORTED", "SOURCE"}, rows)
			return nil
		},
	}
}

func infoCmd() *cobra.Command {
	var src datasetSource

	cmd := &cobra.Command{
		Use:   "info",
		Short: "Describe a dataset",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			defer database.Close()

			name, ds, err := src.load(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			s := service.Summarize(name, ds)

			fmt.Println(Brand.Sprint(s.Name))
			Field("Records", s.Records)
			if len(s.Times) > 0 {
				Field("Time steps", fmt.Sprintf("%d (%d to %d)", len(s.Times), s.Times[0], s.Times[len(s.Times)-1]))
			}
			Field("Population", s.Population)
			Field("Weights", fmt.Sprintf("%g to %g", s.WeightMin, s.WeightMax))
			Field("Environment", fmt.Sprintf("[%g, %g] x [%g, %g]", s.Environment[0], s.Environment[2], s.Environment[1], s.Environment[3]))
			Field("Clusterings", fmt.Sprintf("%v (%d clusters)", s.Granularities, s.NumClusters))
			Field("Features", s.Features)
			return nil
		},
	}

	src.bind(cmd)
	return cmd
}
