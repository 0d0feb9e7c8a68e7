package main

import (
	"context"
	"log"

	"golang.org/x/sync/errgroup"

	"github.com/shadsidd/akamai-config-validator/internal/analyzer"
	"github.com/shadsidd/akamai-config-validator/internal/broker"
	"github.com/shadsidd/akamai-config-validator/internal/config"
	"github.com/shadsidd/akamai-config-validator/internal/models"
	"github.com/shadsidd/akamai-config-validator/internal/storage"
	"github.com/shadsidd/akamai-config-validator/internal/web"
	"github.com/shadsidd/akamai-config-validator/internal/websocket"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	store := storage.NewMemoryStorage(cfg.Limits.SessionTTL)
	dispatcher := analyzer.New()
	events := broker.New[models.AnalysisEvent](64)
	hub := websocket.NewHub()

	srv := web.NewServer(cfg, store, dispatcher, events, hub)

	g, ctx := errgroup.WithContext(context.Background())

	g.Go(func() error {
		hub.Run(ctx)
		return nil
	})

	// Прокачиваем события анализа из брокера на дашборд
	g.Go(func() error {
		ch := events.Subscribe(models.AnalysisTopic)
		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case event := <-ch:
				hub.Broadcast(event.Type, event)
			}
		}
	})

	g.Go(func() error {
		log.Printf("🔒 Akamai Security Analyzer запущен на http://localhost%s", cfg.Web.ListenAddr)
		return srv.Start()
	})

	log.Fatal(g.Wait())
}
