package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"tb7stream/config"
	"tb7stream/handlers"
	"tb7stream/models"
	"tb7stream/services/identity"
	"tb7stream/services/metadata"
	"tb7stream/services/resolver"
	"tb7stream/services/tb7"
	"tb7stream/store"
	"tb7stream/utils"
)

func main() {
	cfg := config.Load()

	st := newStore(cfg)

	identitySvc := identity.NewService(st)
	metadataSvc := metadata.NewService(cfg.TMDBAPIKey, cfg.TMDBLanguage, nil)
	providerClient := tb7.NewClient(cfg.TB7BaseURL, nil, st)
	resolverSvc := resolver.NewService(identitySvc, providerClient, metadataSvc)

	seedGlobalAccount(identitySvc, cfg)

	if !metadataSvc.Configured() {
		log.Printf("[server] TMDB_API_KEY not set; title lookups degraded to raw ids")
	}

	router := utils.NewRouter()
	handlers.Register(router, handlers.Deps{
		Identity: identitySvc,
		Resolver: resolverSvc,
		BaseURL:  cfg.BaseURL,
	})

	srv := &http.Server{
		Addr:         cfg.ListenAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	log.Printf("[server] listening on %s (provider %s)", cfg.ListenAddr, cfg.TB7BaseURL)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("[server] %v", err)
	}
}

func newStore(cfg config.Config) store.Store {
	if cfg.RedisAddr == "" {
		log.Printf("[server] REDIS_ADDR not set; using in-memory store (state lost on restart)")
		return store.NewMemory()
	}
	st, err := store.NewRedis(cfg.RedisAddr, cfg.RedisPassword)
	if err != nil {
		log.Fatalf("[server] redis: %v", err)
	}
	return st
}

// seedGlobalAccount writes env-provided credentials into the global record
// so a single-user deployment works without visiting /configure.
func seedGlobalAccount(ids *identity.Service, cfg config.Config) {
	if cfg.TB7Login == "" || cfg.TB7Password == "" {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := ids.SaveCredentials(ctx, models.Identity{ID: "seed", Source: models.IdentitySourceToken}, models.Credentials{
		Login:    cfg.TB7Login,
		Password: cfg.TB7Password,
		Mode:     models.ModeCookie,
	})
	if err != nil {
		log.Printf("[server] seeding global account failed: %v", err)
		return
	}
	log.Printf("[server] seeded global account from environment")
}
