package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/clinicdesk/clinicdesk/internal/config"
	"github.com/clinicdesk/clinicdesk/internal/domain/appointments"
	"github.com/clinicdesk/clinicdesk/internal/domain/doctors"
	"github.com/clinicdesk/clinicdesk/internal/domain/patients"
	"github.com/clinicdesk/clinicdesk/internal/domain/services"
	"github.com/clinicdesk/clinicdesk/internal/platform/middleware"
	"github.com/clinicdesk/clinicdesk/internal/platform/rest"
	"github.com/clinicdesk/clinicdesk/internal/platform/view"
	"github.com/clinicdesk/clinicdesk/pkg/listing"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "clinicdesk",
		Short: "Clinic administration panel",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(checkCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the panel server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func newLogger(cfg *config.Config) zerolog.Logger {
	if cfg.IsDev() {
		return zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}
	return zerolog.New(os.Stdout).With().Timestamp().Logger()
}

func runServer() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := newLogger(cfg)
	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid configuration")
	}
	if cfg.IsProduction() && !cfg.TLSEnabled {
		logger.Warn().Msg("running in production without TLS")
	}

	api := rest.New(cfg.APIBaseURL, cfg.APITimeout(), logger)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Global middleware
	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(middleware.SecurityHeaders())
	e.Use(middleware.BodyLimit("1M"))
	e.Use(middleware.RequestTimeout(30 * time.Second))

	rateLimitCfg := middleware.RateLimitConfig{
		RequestsPerSecond: cfg.RateLimitRPS,
		BurstSize:         cfg.RateLimitBurst,
	}
	if rateLimitCfg.RequestsPerSecond <= 0 {
		rateLimitCfg = middleware.DefaultRateLimitConfig()
	}
	e.Use(middleware.RateLimit(rateLimitCfg))

	renderer, err := view.NewRenderer()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to parse templates")
	}
	e.Renderer = renderer
	e.GET("/static/*", view.StaticHandler())

	e.GET("/", func(c echo.Context) error {
		return c.Redirect(http.StatusFound, "/doctors")
	})
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "ok",
			"version": "0.1.0",
		})
	})

	// Panel pages
	docClient := doctors.NewClient(api)
	patClient := patients.NewClient(api)
	doctors.NewHandler(docClient, cfg.ListLimit, logger).RegisterRoutes(e)
	patients.NewHandler(patClient, cfg.ListLimit, logger).RegisterRoutes(e)
	appointments.NewHandler(
		appointments.NewClient(api),
		docClient,
		patClient,
		cfg.ListLimit,
		logger,
	).RegisterRoutes(e)
	services.NewHandler(services.NewClient(api), cfg.ListLimit, logger).RegisterRoutes(e)

	// Start in a goroutine so the main goroutine can wait for signals.
	go func() {
		addr := ":" + cfg.Port
		var err error
		if cfg.TLSEnabled {
			logger.Info().Str("addr", addr).Msg("starting panel server (TLS)")
			err = e.StartTLS(addr, cfg.TLSCertFile, cfg.TLSKeyFile)
		} else {
			logger.Info().Str("addr", addr).Msg("starting panel server")
			err = e.Start(addr)
		}
		if err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("shutdown failed")
		return err
	}
	return nil
}

func checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Probe the clinic API and report reachability per resource",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			logger := newLogger(cfg)
			api := rest.New(cfg.APIBaseURL, cfg.APITimeout(), logger)

			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			results := runChecks(ctx, api)
			fmt.Printf("Checking clinic API at %s\n", cfg.APIBaseURL)
			fmt.Printf("%-15s %-8s %s\n", "RESOURCE", "STATUS", "DETAIL")
			failed := 0
			for _, r := range results {
				fmt.Println(formatCheck(r))
				if !r.OK {
					failed++
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d resources unreachable", failed, len(results))
			}
			return nil
		},
	}
}

type checkResult struct {
	Resource string
	OK       bool
	Detail   string
}

// runChecks probes each resource list endpoint with a single-item page.
func runChecks(ctx context.Context, api *rest.Client) []checkResult {
	resources := []struct {
		name, path string
	}{
		{"doctors", "/doctors"},
		{"patients", "/patients"},
		{"appointments", "/appointments"},
		{"services", "/services"},
	}

	probe := listing.Params{Skip: 0, Limit: 1}
	results := make([]checkResult, 0, len(resources))
	for _, r := range resources {
		var out []json.RawMessage
		err := api.Get(ctx, r.path, probe.Query(), &out)
		if err != nil {
			results = append(results, checkResult{Resource: r.name, Detail: rest.Message(err)})
			continue
		}
		results = append(results, checkResult{Resource: r.name, OK: true, Detail: "reachable"})
	}
	return results
}

func formatCheck(r checkResult) string {
	status := "FAIL"
	if r.OK {
		status = "ok"
	}
	return fmt.Sprintf("%-15s %-8s %s", r.Resource, status, r.Detail)
}
