package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/pressday/coverage-digest/app/api"
	"github.com/pressday/coverage-digest/app/cfg"
	"github.com/pressday/coverage-digest/app/config"
	"github.com/pressday/coverage-digest/app/digest"
	"github.com/pressday/coverage-digest/app/email"
	"github.com/pressday/coverage-digest/app/feed"
	"github.com/pressday/coverage-digest/app/freshrss"
	"github.com/pressday/coverage-digest/app/render"
)

func main() {
	// Best-effort: a missing .env file is fine.
	_ = godotenv.Load()

	appCfg, err := cfg.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if appCfg == nil {
		// Help was shown, exit gracefully
		return
	}

	if appCfg.Debug {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}

	digestConfig, err := config.NewLoader(appCfg.ConfigPath).Load()
	if err != nil {
		log.Fatalf("Failed to load digest configuration: %v", err)
	}
	slog.Info("Digest configuration loaded",
		"clients", len(digestConfig.Clients),
		"blocklist", len(digestConfig.Blocklist))

	location, err := appCfg.Location()
	if err != nil {
		slog.Warn("Falling back to UTC", "error", err)
	}

	fetch := buildFetch(appCfg)
	orchestrator := digest.NewOrchestrator(digestConfig)

	if appCfg.Serve {
		serve(appCfg, fetch, orchestrator, location)
		return
	}

	runOnce(appCfg, fetch, orchestrator, location)
}

// buildFetch composes the configured sources into a single fetch pass:
// the FreshRSS reading list, direct feeds, or both concatenated.
func buildFetch(appCfg *cfg.Cfg) api.FetchFunc {
	timeout := time.Duration(appCfg.Timeout) * time.Second

	var reader *freshrss.Client
	if appCfg.BaseURL != "" {
		reader = freshrss.NewClient(appCfg.BaseURL, appCfg.Username,
			appCfg.APIPassword, appCfg.UserAgent, timeout)
	}

	var direct *feed.Source
	if len(appCfg.FeedURLs) > 0 {
		direct = feed.NewSource(appCfg.UserAgent, timeout)
	}

	return func(ctx context.Context) ([]digest.Item, error) {
		var items []digest.Item

		if reader != nil {
			fetched, err := reader.Fetch(ctx, freshrss.FetchOptions{
				LookbackHours: appCfg.LookbackHours,
				MaxItems:      appCfg.MaxItems,
				Label:         appCfg.Label,
			})
			if err != nil {
				return nil, err
			}
			items = append(items, fetched...)
		}

		if direct != nil {
			fetched, err := direct.Fetch(ctx, feed.FetchOptions{
				URLs:          appCfg.FeedURLs,
				LookbackHours: appCfg.LookbackHours,
				MaxItems:      appCfg.MaxItems,
			})
			if err != nil {
				return nil, err
			}
			items = append(items, fetched...)
		}

		return items, nil
	}
}

func runOnce(appCfg *cfg.Cfg, fetch api.FetchFunc, orchestrator *digest.Orchestrator,
	location *time.Location) {
	items, err := fetch(context.Background())
	if err != nil {
		if errors.Is(err, freshrss.ErrAuth) {
			log.Fatalf("FreshRSS rejected the configured credentials: %v", err)
		}
		log.Fatalf("Fetch failed, no digest produced: %v", err)
	}

	result := orchestrator.Run(items)
	reportTime := time.Now().In(location)
	htmlBody := render.HTML(result, reportTime)

	if appCfg.OPMLPath != "" {
		doc := render.OPML(result, reportTime)
		if err := os.WriteFile(appCfg.OPMLPath, []byte(doc), 0644); err != nil {
			log.Fatalf("Failed to write OPML: %v", err)
		}
		slog.Info("OPML written", "path", appCfg.OPMLPath, "matches", result.TotalMatches())
	}

	if appCfg.DryRun {
		fmt.Println(htmlBody)
		return
	}

	if !appCfg.SendsEmail() {
		return
	}

	sender, err := email.NewSender(email.Config{
		Host:     appCfg.SMTPHost,
		Port:     appCfg.SMTPPort,
		Username: appCfg.SMTPUsername,
		Password: appCfg.SMTPPassword,
		UseTLS:   appCfg.SMTPUseTLS,
		From:     appCfg.FromEmail,
		To:       appCfg.ToEmails,
	})
	if err != nil {
		log.Fatalf("Invalid email configuration: %v", err)
	}

	if err := sender.Send(render.Title(reportTime), htmlBody); err != nil {
		log.Fatalf("Failed to send digest: %v", err)
	}
}

func serve(appCfg *cfg.Cfg, fetch api.FetchFunc, orchestrator *digest.Orchestrator,
	location *time.Location) {
	handler := api.NewHandler(fetch, orchestrator, location, appCfg.Version)
	server := api.NewServer(handler, appCfg.APIAccessKey)

	httpServer := &http.Server{
		Addr:         ":" + appCfg.Port,
		Handler:      server,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	slog.Info("Starting preview server", "port", appCfg.Port)
	slog.Info("Endpoints available",
		"digest", "/digest",
		"opml", "/digest.opml",
		"json", "/digest.json",
		"health", "/health")
	if appCfg.APIAccessKey != "" {
		slog.Info("Digest endpoints require the X-API-Key header")
	}

	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("HTTP server error: %v", err)
	}
}
