package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	api "github.com/developer-overheid-nl/don-blueprint-visualizer/pkg/api_client"
	"github.com/developer-overheid-nl/don-blueprint-visualizer/pkg/api_client/handler"
	"github.com/developer-overheid-nl/don-blueprint-visualizer/pkg/api_client/jobs"
	"github.com/developer-overheid-nl/don-blueprint-visualizer/pkg/api_client/services"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start de validatie API en het formulier",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	if !verbose && cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Wire services and controller
	blueprintSvc := services.NewBlueprintService(logger)
	sequenceSvc := services.NewSequenceService(logger)
	diagrams := services.NewDiagramStore(cfg.DiagramTTL, logger)
	controller := handler.NewBlueprintController(blueprintSvc, sequenceSvc, diagrams, cfg.MaxBodyBytes, logger)
	router, err := api.NewRouter(api.RouterOptions{
		APIVersion:     cfg.APIVersion,
		RateLimitRPS:   cfg.RateLimitRPS,
		RateLimitBurst: cfg.RateLimitBurst,
		Logger:         logger,
	}, controller)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if _, err := jobs.SchedulePrune(ctx, cfg.PruneSpec, diagrams, logger); err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("server started accepting requests", zap.String("addr", srv.Addr), zap.String("apiVersion", cfg.APIVersion))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
