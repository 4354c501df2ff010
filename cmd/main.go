package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Netflix/go-env"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"
	"github.com/spettacolo/squalo/auth"
	"github.com/spettacolo/squalo/infrastructure/http/server"
	"github.com/spettacolo/squalo/infrastructure/lyrics"
	"github.com/spettacolo/squalo/infrastructure/spotify"
	"github.com/spettacolo/squalo/internal"
	"github.com/spettacolo/squalo/moderation"
	"github.com/spettacolo/squalo/repositories"
	"github.com/spettacolo/squalo/services"
)

const shutdownTimeout = 5 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}

// run wires every component and serves until SIGINT or SIGTERM.
// Returning instead of exiting lets the deferred Close calls run.
func run() error {
	// 1. Configuration & Logger
	_ = godotenv.Load()
	var config internal.Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	log := logs.GetLoggerFromString(config.LogLevel)

	// 2. Message store, resolved once
	repository, backend, err := repositories.NewMessageRepository(config, log)
	if err != nil {
		return fmt.Errorf("message store failed to open: %w", err)
	}
	defer func() {
		log.Info("Closing message store...", "backend", backend)
		_ = repository.Close()
	}()

	// 3. Services
	censorChar, err := config.CharacterRune()
	if err != nil {
		return err
	}
	moderator, err := moderation.NewModerator(config.CensoredWordList(), censorChar, log)
	if err != nil {
		return fmt.Errorf("moderator failed to build: %w", err)
	}
	shoutboxService := services.NewShoutboxService(
		repository, moderator, log, config.ShoutboxListLimit, config.MaxContentLength,
	)

	httpClient := &http.Client{Timeout: config.HTTPClientTimeout}
	tokens := spotify.NewTokenCache(spotify.Credentials{
		AccessToken:  config.Spotify.AccessToken,
		ClientID:     config.Spotify.ClientID,
		ClientSecret: config.Spotify.ClientSecret,
		RefreshToken: config.Spotify.RefreshToken,
		TokenURL:     config.Spotify.TokenURL,
	}, httpClient, log)
	playbackClient, err := spotify.NewClient(config.Spotify.APIURL, httpClient)
	if err != nil {
		return err
	}

	var lyricsLookup services.LyricsLookup
	if config.LyricsEnabled {
		lyricsClient, err := lyrics.NewClient(config.LyricsAPIURL, httpClient)
		if err != nil {
			return err
		}
		lyricsCache, err := services.NewLyricsCache(lyricsClient, log)
		if err != nil {
			return err
		}
		defer lyricsCache.Close()
		lyricsLookup = lyricsCache
	}
	nowPlayingService := services.NewNowPlayingService(tokens, playbackClient, lyricsLookup, log)

	diagnosticsService := services.NewDiagnosticsService(repository, services.DiagnosticsOptions{
		Backend:    backend,
		ConnString: config.Postgres.DiagnosticConnectionString(),
		SSLMode:    config.Postgres.SSLMode,
		SSLDisable: config.Postgres.SSLDisable,
		Debug:      config.Postgres.Debug,
	}, log)

	opts := server.Options{SiteTitle: config.SiteTitle, SpotifyDebug: config.Spotify.Debug}
	if config.AdminJWTSecret != "" {
		if opts.Signer, err = auth.NewSigner(config.AdminJWTSecret); err != nil {
			return err
		}
	}

	// 4. Context & Signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 5. HTTP Server
	httpServer := &http.Server{
		Addr:              config.Address(),
		Handler:           server.NewServer(log, shoutboxService, nowPlayingService, diagnosticsService, opts).Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "address", config.Address(), "backend", backend,
			"spotify_flow", tokens.ActiveFlow(), "at", time.Now().UTC())
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	// 6. Wait for Stop or Error
	select {
	case <-ctx.Done():
		log.Info("Shutting down gracefully...")
	case err := <-errChan:
		return err
	}

	// 7. Final Cleanup
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("HTTP server shutdown: %w", err)
	}
	log.Info("Program stopped cleanly")
	return nil
}
