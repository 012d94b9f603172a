package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/resaleguard/resale-bot/internal/activity"
	"github.com/resaleguard/resale-bot/internal/bot"
	"github.com/resaleguard/resale-bot/internal/config"
	"github.com/resaleguard/resale-bot/internal/membership"
	"github.com/resaleguard/resale-bot/internal/metrics"
	"github.com/resaleguard/resale-bot/internal/moderation"
	"github.com/resaleguard/resale-bot/internal/notify"
	"github.com/resaleguard/resale-bot/internal/topic"
)

func main() {
	log.Println("Starting resale-guard moderation bot...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Activity tracker: Redis-backed when configured, in-memory otherwise.
	var tracker activity.Store = activity.NewMemoryStore()
	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := rdb.Ping(ctx).Err(); err != nil {
			cancel()
			log.Fatalf("failed to connect to Redis: %v", err)
		}
		cancel()
		tracker = activity.NewRedisStore(rdb, cfg.CooldownWindow)
	}

	policy := moderation.NewPolicy(moderation.Config{
		RequiredHashtags: cfg.RequiredHashtags,
		SaleHashtag:      cfg.SaleHashtag,
		MinPrice:         cfg.MinPrice,
		MaxBurst:         cfg.MaxBurst,
		CooldownWindow:   cfg.CooldownWindow,
	}, tracker)

	tg, err := bot.NewTelegram(cfg.Token, cfg.PollTimeout)
	if err != nil {
		log.Fatalf("failed to connect to Telegram: %v", err)
	}

	sched := notify.NewScheduler(tg)
	handlers := bot.NewHandlers(cfg, tg, policy, membership.NewGate(), topic.NewRegistry(), sched)
	tg.Register(handlers)

	// Prometheus endpoint.
	go func() {
		http.Handle("/metrics", metrics.Handler())
		if err := http.ListenAndServe(cfg.MetricsAddr, nil); err != nil {
			log.Printf("[metrics] server stopped: %v", err)
		}
	}()

	log.Printf("resale-guard bot running")
	log.Printf("  metrics_addr:  %s", cfg.MetricsAddr)
	log.Printf("  redis_addr:    %s", orNone(cfg.RedisAddr))
	log.Printf("  min_price:     %d", cfg.MinPrice)
	log.Printf("  max_burst:     %d", cfg.MaxBurst)
	log.Printf("  cooldown:      %s", cfg.CooldownWindow)

	go tg.Start()

	// Graceful shutdown.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	log.Printf("received signal %v, shutting down...", sig)

	tg.Stop()
	if rdb != nil {
		rdb.Close()
	}
}

func orNone(s string) string {
	if s == "" {
		return "(none, in-memory tracking)"
	}
	return s
}
