package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/uvenla/home-admin/backend"
	"github.com/uvenla/home-admin/internal/config"
	"github.com/uvenla/home-admin/server"
	"github.com/uvenla/home-admin/sessions"
	"github.com/uvenla/home-admin/sessions/repobolt"
	"github.com/uvenla/home-admin/sessions/reporedis"
)

func main() {
	for {
		if err := run(); err != nil {
			log.Err(err).Msg("Error running server")
			time.Sleep(1 * time.Second)
		} else {
			break
		}
	}
	log.Info().Msg("Server stopped")
}

func run() (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Bytes("stack", debug.Stack()).Msg("Recovered from panic")
			returnError = errors.New("panic recovered")
		}
	}()

	c := config.New()
	setupLogging(c)
	displayAppname(c.GetAppName())

	repo, closeRepo, err := openSessionRepo(context.Background(), c)
	if err != nil {
		// Misconfiguration does not fix itself on retry.
		log.Fatal().Err(err).Str("store", c.GetSessionStore()).Msg("Failed to open session store")
	}
	defer closeRepo()

	scheduler := sessions.NewCronScheduler()
	scheduler.Start()

	srv, err := server.New(c, server.Deps{
		Sessions:  sessions.NewManager(repo),
		Scheduler: scheduler,
		Backend:   backend.New(c.GetAPIURL(), backend.WithTimeout(c.GetAPITimeout())),
	})
	if err != nil {
		return fmt.Errorf("server.New: %w", err)
	}

	httpServer := &http.Server{
		Addr:              c.GetPort(),
		Handler:           srv,
		ReadHeaderTimeout: 10 * time.Second,
	}
	serveErr := make(chan error, 1)
	go func() { serveErr <- listenAndServe(httpServer) }()

	select {
	case err := <-serveErr:
		returnError = err
	case <-waitForStopSignal():
	}

	srv.Shutdown(context.Background())
	stopCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	scheduler.Stop(stopCtx)

	if err := shutdown(httpServer); err != nil && returnError == nil {
		returnError = err
	}
	return returnError
}

// openSessionRepo returns the configured session repo and a function that
// releases it.
func openSessionRepo(ctx context.Context, c config.SessionConfig) (sessions.Repo, func(), error) {
	switch c.GetSessionStore() {
	case config.SessionStoreBolt:
		repo, err := repobolt.Open(c.GetSessionBoltPath())
		if err != nil {
			return nil, nil, err
		}
		log.Info().Str("path", c.GetSessionBoltPath()).Msg("Sessions stored in bbolt")
		return repo, func() { closeQuietly("bbolt", repo) }, nil
	case config.SessionStoreRedis:
		client, err := reporedis.NewClient(ctx, c.GetRedisURL())
		if err != nil {
			return nil, nil, err
		}
		log.Info().Msg("Sessions stored in redis")
		return reporedis.New(client, reporedis.WithGrace(2*c.GetSessionPollInterval())), func() { closeQuietly("redis", client) }, nil
	default:
		log.Info().Msg("Sessions stored in memory")
		return sessions.NewInMemoryRepo(), func() {}, nil
	}
}

func closeQuietly(name string, c io.Closer) {
	if err := c.Close(); err != nil {
		log.Err(err).Str("store", name).Msg("Failed to close session store")
	}
}

func setupLogging(c config.EnvConfig) {
	level, err := zerolog.ParseLevel(c.GetLogLevel())
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	if c.GetEnv() == "DEV" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
}

func listenAndServe(server *http.Server) error {
	log.Info().Msgf("Server listening on %s", server.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server.ListenAndServe %w", err)
	}
	return nil
}

func waitForStopSignal() <-chan os.Signal {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	return stop
}

func shutdown(server *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}
	return nil
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
