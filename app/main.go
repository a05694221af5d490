package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/veggiedefender/simple-sharples/app/api"
	"github.com/veggiedefender/simple-sharples/app/cache"
	"github.com/veggiedefender/simple-sharples/app/cfg"
	"github.com/veggiedefender/simple-sharples/app/config"
	"github.com/veggiedefender/simple-sharples/app/menu"
	"github.com/veggiedefender/simple-sharples/app/upstream"
)

func main() {
	appCfg, err := cfg.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}
	if appCfg == nil {
		// Help was shown, exit gracefully
		return
	}

	logLevel := slog.LevelInfo
	if appCfg.Debug {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})))

	slog.Info("Starting Simple Sharples server...", "version", appCfg.Version)

	// Feed source configuration
	source, err := config.NewLoader(appCfg.SourceFile).Load()
	if err != nil {
		log.Fatal("Failed to load source configuration:", err)
	}
	slog.Info("Loaded feed source", "name", source.Name, "url", source.URL, "format", source.Settings.Format)

	// Page cache
	pages, err := cache.NewCache(appCfg.CacheAddr)
	if err != nil {
		log.Fatal("Failed to connect to page cache:", err)
	}
	defer pages.Close()
	slog.Info("Connected to page cache", "addr", appCfg.CacheAddr)

	// Initialize core components
	var splitter menu.ItemSplitter
	switch source.Settings.Format {
	case config.FormatSemicolon:
		splitter = menu.SemicolonSplitter{}
	default:
		splitter = menu.TagSplitter{}
	}

	parser := menu.NewParser(appCfg.Location, splitter)
	aggregator := menu.NewAggregator(parser)
	client := upstream.NewClient(source.URL, source.Calendars.Menu, source.Calendars.Special,
		appCfg.UserAgent, time.Duration(source.Settings.Timeout)*time.Second)

	handler := api.NewHandler(client, aggregator, clockwork.NewRealClock(),
		appCfg.Location, appCfg.LookaheadDays, api.Templates())
	server := api.NewServer(handler, pages, time.Duration(appCfg.CacheTTL)*time.Second)

	httpServer := &http.Server{
		Addr:         ":" + appCfg.Port,
		Handler:      server,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		slog.Info("Starting HTTP server", "port", appCfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		slog.Info("Received signal", "signal", sig.String())
	case err := <-serverErrChan:
		slog.Error("Server error", "error", err)
	}

	slog.Info("Shutting down server gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	} else {
		slog.Info("HTTP server stopped")
	}
}
