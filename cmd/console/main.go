package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"FleetConsole/internal/api"
	"FleetConsole/internal/client"
	"FleetConsole/internal/config"
	"FleetConsole/internal/notifier"
	"FleetConsole/internal/recorder"
	"FleetConsole/internal/scheduler"

	"github.com/google/uuid"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] FleetConsole starting...")

	// Load config
	cfg, err := config.Load(config.Path())
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	// Init transport
	cl := client.New(cfg.API.BaseURL, cfg.API.Token, cfg.Proxy, cfg.Timeout()).
		WithRateLimit(cfg.API.RequestsPerSecond, cfg.API.Burst)
	cl.MaxRetries = cfg.Retries()
	log.Printf("[INFO] API endpoint: %s", cl.BaseURL)

	// Init session journal
	sessionID := uuid.NewString()
	var rec recorder.Recorder
	sr, err := recorder.NewSQLiteRecorder(cfg.Journal.SQLitePath, sessionID)
	if err != nil {
		log.Printf("[WARN] init session journal failed, using noop: %v", err)
		rec = recorder.NewNoopRecorder()
	} else {
		rec = sr
	}

	// Init session
	session := api.NewSession(cl,
		api.WithID(sessionID),
		api.WithRecorder(rec),
		api.WithTTLs(ttls(cfg)),
		api.WithPaging(cfg.Pagination.PageSize, cfg.Pagination.MaxPages),
	)
	defer session.Close()

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	agent, err := session.Agent(ctx)
	if err != nil {
		log.Fatalf("[FATAL] fetch agent: %v", err)
	}
	log.Printf("[INFO] agent %s at %s, %d credits", agent.Symbol, agent.Headquarters, agent.Credits)

	// Init notifier
	var n notifier.Notifier = notifier.LogNotifier{}
	var tn *notifier.TelegramNotifier
	if cfg.TelegramEnabled() {
		tn = notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)
		n = tn
	} else {
		log.Println("[INFO] Telegram not configured, alerts go to the log")
	}

	// Init scheduler
	sched := scheduler.NewScheduler(ctx, session, n, rec)
	if err := sched.RegisterAll(cfg.Schedule.FleetCron, cfg.Schedule.ContractCron); err != nil {
		log.Fatalf("[FATAL] register cron tasks: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	// Seed arrival tracking before the first tick
	go sched.RunNow()

	// Start Telegram polling
	if tn != nil {
		go tn.StartPolling(ctx, sched.HandleCommand)
		log.Println("[INFO] Telegram polling started")
	}

	log.Println("[INFO] FleetConsole is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	cancel()
	log.Println("[INFO] FleetConsole stopped")
}

func ttls(cfg *config.Config) api.TTLs {
	sec := func(n int) time.Duration { return time.Duration(n) * time.Second }
	return api.TTLs{
		Agent:     sec(cfg.Cache.TTLAgent),
		Ships:     sec(cfg.Cache.TTLShips),
		Contracts: sec(cfg.Cache.TTLContracts),
		Systems:   sec(cfg.Cache.TTLSystems),
		Waypoints: sec(cfg.Cache.TTLWaypoints),
		Market:    sec(cfg.Cache.TTLMarket),
		Shipyard:  sec(cfg.Cache.TTLShipyard),
	}
}
