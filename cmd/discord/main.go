// cmd/discord/main.go
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"bgsbot/internal/autoreport"
	"bgsbot/internal/command"
	"bgsbot/internal/config"
	"bgsbot/internal/core"
	"bgsbot/internal/discord"
	"bgsbot/internal/ebgs"
	"bgsbot/internal/listener"
	"bgsbot/internal/storage"
)

func main() {
	log.Println("[INFO] Starting BGS bot...")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.New()
	if err != nil {
		log.Fatal(err)
	}

	store, err := storage.New(cfg.StoragePath)
	if err != nil {
		log.Fatal(err)
	}
	defer store.Close()

	client := ebgs.NewClient(cfg.EBGSAPIURL)
	gate := core.NewAccessGate(store)
	registry := core.NewRegistry()

	bot, err := discord.NewBot(cfg, store, registry)
	if err != nil {
		log.Fatal(err)
	}

	detector := listener.New(cfg.TickSocketURL, store, bot.SendPage)

	registry.Register(
		command.NewFactionStatus(client, store, gate),
		command.NewTick(client, store, gate, detector),
		command.NewForbiddenRoles(store, gate),
		command.NewAdminRoles(store, gate),
		command.NewBGSRoles(store, gate),
		command.NewAutoReport(store, gate),
		command.NewSort(store, gate),
	)
	registry.Register(command.NewHelp(registry))

	reporter, err := autoreport.New(cfg.AutoReportCron, store, client, bot.SendPage)
	if err != nil {
		log.Fatal(err)
	}

	errCh := make(chan error, 1)
	go func() {
		if err := bot.Run(ctx); err != nil {
			errCh <- err
		}
		close(errCh)
	}()
	go func() {
		if err := detector.Run(ctx); err != nil && ctx.Err() == nil {
			log.Println("[ERR] Tick listener error:", err)
		}
	}()
	go func() {
		if err := reporter.Run(ctx); err != nil && ctx.Err() == nil {
			log.Println("[ERR] Auto-report error:", err)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	select {
	case s := <-sig:
		log.Printf("[INFO] Received signal %s, shutting down...", s)
		cancel()
	case err := <-errCh:
		if err != nil {
			log.Println("[ERR] Discord bot error:", err)
		}
		cancel()
	case <-ctx.Done():
	}

	log.Println("[INFO] BGS bot exited cleanly")
}
