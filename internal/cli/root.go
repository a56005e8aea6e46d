// Package cli holds the movetank command line.
package cli

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/jengzang/movetank-go/internal/config"
	"github.com/jengzang/movetank-go/internal/database"
	"github.com/jengzang/movetank-go/internal/dataset"
	"github.com/jengzang/movetank-go/internal/repository"
	"github.com/spf13/cobra"
)

var version = "0.3.0"

var configPath string

var rootCmd = &cobra.Command{
	Use:           "movetank",
	Short:         "movetank replays collective animal movement",
	Long:          Brand.Sprint("movetank") + " replays movement datasets as glyph or network scenes",
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "TOML config file (defaults to $"+config.EnvConfigPath+")")

	rootCmd.AddCommand(
		serveCmd(),
		importCmd(),
		datasetsCmd(),
		infoCmd(),
		frameCmd(),
		tokenCmd(),
	)
}

// Execute runs the root command
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		Bad.Printf("movetank: %v\n", err)
		return err
	}
	return nil
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// datasetSource selects a dataset either from a CSV file or from the database
type datasetSource struct {
	csv  string
	name string
}

func (s *datasetSource) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&s.csv, "csv", "", "Read the dataset from a CSV file")
	cmd.Flags().StringVarP(&s.name, "dataset", "d", "", "Name of an imported dataset")
}

// load returns the dataset name and its records
func (s *datasetSource) load(ctx context.Context, cfg *config.Config) (string, *dataset.Dataset, error) {
	switch {
	case s.csv != "":
		records, err := dataset.LoadCSV(s.csv)
		if err != nil {
			return "", nil, err
		}
		ds, err := dataset.New(records)
		if err != nil {
			return "", nil, err
		}
		name := s.name
		if name == "" {
			name = datasetName(s.csv)
		}
		return name, ds, nil
	case s.name != "":
		if err := database.Init(database.Config{Path: cfg.Database.Path}); err != nil {
			return "", nil, err
		}
		records, err := repository.NewRecordRepository(database.GetDB()).LoadDataset(ctx, s.name)
		if err != nil {
			return "", nil, err
		}
		if len(records) == 0 {
			return "", nil, fmt.Errorf("dataset %s has not been imported", s.name)
		}
		ds, err := dataset.New(records)
		if err != nil {
			return "", nil, err
		}
		return s.name, ds, nil
	default:
		return "", nil, errors.New("either --csv or --dataset is required")
	}
}

// datasetName derives a dataset name from its file name
func datasetName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
