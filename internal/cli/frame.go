package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/jengzang/movetank-go/internal/database"
	"github.com/jengzang/movetank-go/internal/middleware"
	"github.com/jengzang/movetank-go/internal/models"
	"github.com/jengzang/movetank-go/internal/service"
	"github.com/spf13/cobra"
)

func frameCmd() *cobra.Command {
	var (
		src      datasetSource
		params   models.FrameParams
		strategy string
		out      string
	)

	cmd := &cobra.Command{
		Use:   "frame",
		Short: "Render one time step as a JSON scene",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			defer database.Close()

			_, ds, err := src.load(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("time") {
				params.Time, _ = ds.TimeRange()
			}
			if strategy == "" {
				strategy = cfg.Playback.Strategy
			}

			sc, res, err := service.RenderFrame(ds, cfg, strategy, params)
			if err != nil {
				return err
			}
			data, err := json.MarshalIndent(map[string]interface{}{
				"result": res,
				"scene":  sc,
			}, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to encode scene: %w", err)
			}

			if out == "" {
				fmt.Println(string(data))
				return nil
			}
			if err := os.WriteFile(out, data, 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", out, err)
			}
			fmt.Printf("%s wrote %d objects to %s\n", Good.Sprint("✓"), sc.Count, out)
			return nil
		},
	}

	src.bind(cmd)
	f := cmd.Flags()
	f.IntVarP(&params.Time, "time", "t", 0, "Time step (defaults to the first)")
	f.Float64Var(&params.Threshold, "threshold", 0, "Minimum displayed link strength")
	f.BoolVar(&params.Clustering, "clustering", false, "Collapse animals into clusters")
	f.IntVar(&params.Granularity, "granularity", 0, "Clustering granularity")
	f.StringVar(&params.Feature, "feature", models.NoFeature, "Feature color channel")
	f.Float64Var(&params.ArcWidth, "arc-width", 0, "Angular bin width in radians")
	f.StringVarP(&strategy, "strategy", "s", "", "glyph or network")
	f.StringVarP(&out, "out", "o", "", "Write to a file instead of stdout")
	return cmd
}

func tokenCmd() *cobra.Command {
	var (
		subject string
		ttl     time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a bearer token for the control routes",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			token, err := middleware.IssueToken(cfg.Server.JWTSecret, subject, ttl)
			if err != nil {
				return err
			}
			fmt.Println(token)
			return nil
		},
	}

	cmd.Flags().StringVar(&subject, "subject", "operator", "Token subject")
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "Token lifetime")
	return cmd
}
