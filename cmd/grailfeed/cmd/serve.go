package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humaecho"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/grailfeed/grailfeed/internal/api/handlers"
	"github.com/grailfeed/grailfeed/internal/api/middleware"
	"github.com/grailfeed/grailfeed/internal/cache"
	"github.com/grailfeed/grailfeed/internal/config"
	"github.com/grailfeed/grailfeed/internal/ebay"
	"github.com/grailfeed/grailfeed/internal/feed"
	"github.com/grailfeed/grailfeed/pkg/logger"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the feed API server",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)

	tokens := ebay.NewRefreshTokenProvider(
		cfg.Ebay.ClientID,
		cfg.Ebay.ClientSecret,
		cfg.Ebay.RefreshToken,
		ebay.WithTokenURL(cfg.Ebay.TokenURL),
	)

	limiter := ebay.NewRateLimiter(
		cfg.Ebay.RateLimit.PerSecond,
		cfg.Ebay.RateLimit.Burst,
		cfg.Ebay.RateLimit.DailyLimit,
	)

	browse := ebay.NewBrowseClient(
		tokens,
		ebay.WithBrowseURL(cfg.Ebay.BrowseURL),
		ebay.WithItemURL(cfg.Ebay.ItemURL),
		ebay.WithRateLimiter(limiter),
	)

	finding := ebay.NewFindingClient(
		cfg.Ebay.AppID,
		ebay.WithFindingURL(cfg.Ebay.FindingURL),
	)

	svc := feed.NewService(
		browse,
		finding,
		cache.New(),
		feed.NewClassifier(cfg.Feed.CategoryFilter),
		log,
		feed.WithCacheTTL(cfg.Feed.CacheTTL),
		feed.WithUpstreamLimit(cfg.Feed.UpstreamLimit),
		feed.WithSeeds(cfg.Feed.Seeds),
	)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recovery(log))
	e.Use(middleware.RequestLog(log))
	e.Use(middleware.Metrics())

	health := handlers.NewHealthHandler()
	e.GET("/", health.Root)
	e.GET("/healthz", health.Healthz)
	e.GET("/readyz", health.Readyz)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := humaecho.New(e, huma.DefaultConfig("grailfeed", Version))
	handlers.RegisterTrendingRoutes(api, handlers.NewTrendingHandler(svc))
	handlers.RegisterSearchRoutes(api, handlers.NewSearchHandler(svc))
	handlers.RegisterLookupRoutes(api, handlers.NewLookupHandler(svc))
	handlers.RegisterRecommendRoutes(api, handlers.NewRecommendHandler(svc))
	handlers.RegisterHistoryRoutes(api, handlers.NewHistoryHandler(svc))
	handlers.RegisterQuotaRoutes(api, handlers.NewQuotaHandler(limiter))

	var warmer *feed.Warmer
	if cfg.Feed.WarmInterval > 0 {
		warmer, err = feed.NewWarmer(svc, cfg.Feed.WarmInterval, log)
		if err != nil {
			return fmt.Errorf("creating trending warmer: %w", err)
		}
		warmer.Start()
	}

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Info("starting server", "addr", addr)

	go func() {
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")

	if warmer != nil {
		<-warmer.Stop().Done()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutting down server: %w", err)
	}

	log.Info("server stopped")
	return nil
}
