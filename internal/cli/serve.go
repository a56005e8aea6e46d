package cli

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jengzang/movetank-go/internal/api"
	"github.com/jengzang/movetank-go/internal/database"
	"github.com/jengzang/movetank-go/internal/service"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func serveCmd() *cobra.Command {
	var (
		src      datasetSource
		autoplay bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the playback API over a dataset",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			defer database.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			name, ds, err := src.load(ctx, cfg)
			if err != nil {
				return err
			}
			svc := service.NewSceneService(name, ds, cfg)
			if autoplay {
				svc.Play()
			}

			srv := &http.Server{
				Addr:    cfg.Server.Port,
				Handler: api.SetupRouter(cfg, svc),
			}

			g, gctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				log.Printf("Server starting on port %s", cfg.Server.Port)
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					return err
				}
				return nil
			})
			g.Go(func() error {
				return svc.Run(gctx)
			})
			g.Go(func() error {
				<-gctx.Done()
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				return srv.Shutdown(shutdownCtx)
			})
			return g.Wait()
		},
	}

	src.bind(cmd)
	cmd.Flags().BoolVar(&autoplay, "play", false, "Start playing right away")
	return cmd
}
