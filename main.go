package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/michdebow/stash-tracker/internal/config"
	v1 "github.com/michdebow/stash-tracker/internal/controllers/v1"
	"github.com/michdebow/stash-tracker/internal/events"
	"github.com/michdebow/stash-tracker/internal/models"
	"github.com/michdebow/stash-tracker/internal/router"
	"github.com/michdebow/stash-tracker/internal/services"
	"github.com/michdebow/stash-tracker/internal/worker"
)

func main() {
	// gin uses debug as the default mode, we use release for
	// security reasons
	ginMode, ok := os.LookupEnv("GIN_MODE")
	if !ok {
		gin.SetMode("release")
	} else {
		gin.SetMode(ginMode)
	}

	// Log format can be explicitly set.
	// If it is not set, it defaults to human readable for development
	// and JSON for release
	logFormat, ok := os.LookupEnv("LOG_FORMAT")
	output := io.Writer(os.Stdout)
	if (!ok && gin.IsDebugging()) || (ok && logFormat == "human") {
		output = zerolog.ConsoleWriter{Out: os.Stdout}
	}

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if gin.IsDebugging() {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(output).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	apiURL, err := url.Parse(cfg.APIURL)
	if err != nil {
		log.Fatal().Msgf("API_URL is not a valid URL: %s", err)
	}

	// Create the directory the database lives in
	err = os.MkdirAll(filepath.Dir(cfg.DatabaseURL), os.ModePerm)
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	// Connect, migrate and seed the categories
	err = models.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	// Balance messages are only published when a broker is configured
	var publisher events.Publisher = events.NopPublisher{}
	if cfg.AMQPURL != "" {
		amqpPublisher, err := events.NewAMQPPublisher(cfg.AMQPURL, cfg.AMQPExchange)
		if err != nil {
			log.Fatal().Msg(err.Error())
		}
		publisher = amqpPublisher

		log.Info().Str("exchange", cfg.AMQPExchange).Msg("publishing balance messages")
	}
	defer publisher.Close()

	service := services.New(models.DB, publisher)
	controller := v1.NewController(service, cfg.JWTSecret, cfg.TokenTTL)

	r, teardown, err := router.Config(apiURL)
	defer teardown()
	if err != nil {
		log.Fatal().Msg(err.Error())
	}
	router.AttachRoutes(controller, r.Group(apiURL.Path))

	if err := worker.RegisterMetrics(); err != nil {
		log.Fatal().Msg(err.Error())
	}
	defer worker.UnregisterMetrics()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: r,
	}

	group, ctx := errgroup.WithContext(ctx)

	group.Go(func() error {
		log.Info().Str("addr", server.Addr).Msg("starting server")

		err := server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	})

	if cfg.IntegrityInterval > 0 {
		auditor := worker.NewAuditor(models.DB, cfg.IntegrityInterval)
		group.Go(func() error {
			err := auditor.Run(ctx)
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		})
	}

	// Shut the server down when the context is canceled, either by a
	// signal or by another goroutine failing
	group.Go(func() error {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		return server.Shutdown(shutdownCtx)
	})

	if err := group.Wait(); err != nil {
		log.Fatal().Msg(err.Error())
	}
}
