package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"QuantWatch/internal/collector"
	"QuantWatch/internal/config"
	"QuantWatch/internal/ledger"
	"QuantWatch/internal/model"
	"QuantWatch/internal/notifier"
	"QuantWatch/internal/recorder"
	"QuantWatch/internal/scheduler"
	"QuantWatch/internal/sentiment"
	"QuantWatch/internal/trader"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] QuantWatch starting...")

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	for _, p := range []string{cfg.Portfolio.StateFile, cfg.Budget.StateFile, cfg.Database.SQLitePath} {
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			log.Fatalf("[FATAL] create data dir: %v", err)
		}
	}

	// Market data
	fetcher := collector.NewYahooFetcher(cfg.Market.SymbolSuffix, cfg.Proxy)
	log.Printf("[INFO] data source: %s", fetcher.Name())
	col := collector.NewCollector(fetcher, cfg.Market.LookbackDays)

	// Sentiment classifier; without an endpoint every signal is neutral.
	var classifier sentiment.Classifier
	if cfg.Sentiment.BaseURL != "" {
		classifier = sentiment.NewHTTPClassifier(cfg.Sentiment.BaseURL, cfg.Sentiment.APIKey, cfg.Proxy)
		log.Printf("[INFO] sentiment source: %s", classifier.Name())
	} else {
		log.Println("[WARN] no sentiment endpoint configured, signals will be neutral")
	}

	// Ledgers
	port, err := ledger.OpenPortfolio(cfg.Portfolio.StateFile)
	if err != nil {
		log.Fatalf("[FATAL] open portfolio ledger: %v", err)
	}
	defaults := model.BudgetState{
		SwingLimit: cfg.Budget.SwingLimit,
		LongLimit:  cfg.Budget.LongLimit,
	}
	budget, err := ledger.OpenBudget(cfg.Budget.StateFile, defaults, cfg.Telegram.ChatID)
	if err != nil {
		log.Fatalf("[FATAL] open budget ledger: %v", err)
	}

	tr := trader.New(col, classifier, port, budget)

	// Telegram notifier
	tn := notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Proxy)

	// Recorder
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Scheduler
	sched := scheduler.NewScheduler(ctx, tr, budget, tn, rec, cfg.Telegram.ChatID)
	if err := sched.Register(cfg.Schedule.ScanCron); err != nil {
		log.Fatalf("[FATAL] register scan task: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	// Start Telegram polling
	go tn.StartPolling(ctx, sched.HandleCommand)
	log.Println("[INFO] Telegram polling started")

	// Optional: run immediately on start
	if os.Getenv("RUN_ON_START") == "true" {
		log.Println("[INFO] RUN_ON_START enabled, executing portfolio scan now")
		go sched.RunScanNow()
	}

	log.Println("[INFO] QuantWatch is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	cancel()
	log.Println("[INFO] QuantWatch stopped")
}
