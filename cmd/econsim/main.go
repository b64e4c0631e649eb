package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"EconSim/internal/advisor"
	"EconSim/internal/config"
	"EconSim/internal/engine"
	"EconSim/internal/notifier"
	"EconSim/internal/recorder"
	"EconSim/internal/server"
	"EconSim/internal/session"
	"EconSim/internal/snapshot"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] EconSim starting...")

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("[WARN] load .env: %v", err)
	}

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

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Recorders
	var recs recorder.Multi
	if cfg.Storage.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Storage.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite recorder failed, skipping: %v", err)
		} else {
			recs = append(recs, sr)
		}
	}
	if cfg.SupabaseEnabled() {
		sb, err := recorder.NewSupabaseRecorder(cfg.Supabase.URL, cfg.Supabase.Key, cfg.Supabase.TablePrefix)
		if err != nil {
			log.Printf("[WARN] init supabase recorder failed, skipping: %v", err)
		} else {
			recs = append(recs, sb)
		}
	}
	var rec recorder.Recorder = recorder.NewNoopRecorder()
	if len(recs) > 0 {
		rec = recs
	}
	defer rec.Close()

	// Advisor
	var adv advisor.Advisor = advisor.Disabled{Cause: "gemini.api_key is not set"}
	if cfg.Gemini.APIKey != "" {
		g, err := advisor.NewGemini(ctx, advisor.GeminiConfig{
			APIKey:   cfg.Gemini.APIKey,
			Model:    cfg.Gemini.Model,
			Language: cfg.Gemini.Language,
		})
		if err != nil {
			log.Printf("[WARN] init gemini advisor failed, commentary disabled: %v", err)
			adv = advisor.Disabled{Cause: err.Error()}
		} else {
			adv = g
			defer g.Close()
		}
	}
	log.Printf("[INFO] advisor: %s", adv.Name())

	// Notifier
	var tn *notifier.TelegramNotifier
	deps := session.Deps{
		Recorder:     rec,
		Advisor:      adv,
		SnapshotPath: cfg.Storage.SnapshotPath,
		ScenarioDir:  cfg.Storage.ScenarioDir,
	}
	if cfg.TelegramEnabled() {
		tn = notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)
		deps.Sender = tn
	}

	var opts []engine.Option
	if cfg.Engine.StrictBounds {
		opts = append(opts, engine.WithStrictBounds())
	}
	sess := session.New(ctx, deps, opts...)

	// Resume the previous run if a snapshot exists
	if snap, err := snapshot.Load(cfg.Storage.SnapshotPath); err == nil {
		if err := sess.Restore(snap); err != nil {
			log.Printf("[WARN] ignoring snapshot: %v", err)
		} else {
			log.Printf("[INFO] resumed at turn %d from %s", snap.Turn, cfg.Storage.SnapshotPath)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		log.Printf("[WARN] load snapshot: %v", err)
	}

	if err := sess.RegisterAll(cfg.Schedule.DigestCron, cfg.Schedule.SnapshotCron); err != nil {
		log.Fatalf("[FATAL] register cron tasks: %v", err)
	}
	sess.Start()

	if tn != nil {
		go tn.StartPolling(ctx, sess.HandleCommand)
		log.Println("[INFO] Telegram polling started")
	}

	srvErr := make(chan error, 1)
	go func() { srvErr <- server.New(sess).ListenAndServe(ctx, cfg.Server.Addr) }()

	log.Println("[INFO] EconSim is running. Press Ctrl+C to stop.")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-sigCh:
		log.Println("[INFO] shutdown signal received, stopping...")
	case err := <-srvErr:
		log.Printf("[ERROR] %v", err)
	}

	cancel()
	sess.Stop()
	if err := sess.SaveSnapshot(); err != nil {
		log.Printf("[ERROR] save snapshot: %v", err)
	}
	log.Println("[INFO] EconSim stopped")
}
