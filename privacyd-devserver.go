// Dev server for the privacy and newsletter API. Configuration is
// env-driven and checked once at startup; anything required and missing is a
// fatal error before the listener opens.
package main

import (
	"context"
	"fmt"
	stdlog "log"
	"net/http"
	"os"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	privacyhttp "github.com/JNZader/portfolio-2025-sub001/adapters/http"
	core "github.com/JNZader/portfolio-2025-sub001/core"
	pgstore "github.com/JNZader/portfolio-2025-sub001/storage/postgres"
)

type config struct {
	ListenAddr     string
	BaseURL        string
	SiteName       string
	FromAddress    string
	DBURL          string
	RedisURL       string
	AdminJWTSecret string
}

func main() {
	cfg, err := loadConfig()
	if err != nil {
		fatal(err)
	}
	if err := runServe(cfg); err != nil {
		fatal(err)
	}
}

func loadConfig() (*config, error) {
	c := &config{
		ListenAddr:     envOr("PRIVACYD_LISTEN_ADDR", ":8080"),
		BaseURL:        strings.TrimRight(strings.TrimSpace(os.Getenv("PRIVACYD_BASE_URL")), "/"),
		SiteName:       strings.TrimSpace(os.Getenv("PRIVACYD_SITE_NAME")),
		FromAddress:    strings.TrimSpace(os.Getenv("PRIVACYD_FROM_ADDRESS")),
		DBURL:          firstEnv("DB_URL", "DATABASE_URL"),
		RedisURL:       strings.TrimSpace(os.Getenv("REDIS_URL")),
		AdminJWTSecret: strings.TrimSpace(os.Getenv("PRIVACYD_ADMIN_JWT_SECRET")),
	}
	if c.BaseURL == "" {
		return nil, fmt.Errorf("PRIVACYD_BASE_URL is required (e.g. http://localhost:8080)")
	}
	if !core.IsDevEnvironment() {
		if c.DBURL == "" {
			return nil, fmt.Errorf("DB_URL (or DATABASE_URL) is required outside dev")
		}
		if c.RedisURL == "" {
			return nil, fmt.Errorf("REDIS_URL is required outside dev")
		}
	}
	return c, nil
}

func runServe(cfg *config) error {
	ctx := context.Background()

	svc := privacyhttp.NewService(core.Config{
		BaseURL:     cfg.BaseURL,
		SiteName:    cfg.SiteName,
		FromAddress: cfg.FromAddress,
	})

	if cfg.DBURL != "" {
		pg, err := pgxpool.New(ctx, cfg.DBURL)
		if err != nil {
			return fmt.Errorf("connect postgres: %w", err)
		}
		defer pg.Close()
		subs := pgstore.NewSubscribers(pg)
		if err := subs.Migrate(ctx); err != nil {
			return fmt.Errorf("migrate newsletter schema: %w", err)
		}
		svc = svc.WithSubscriberStore(subs)
	} else {
		stdlog.Printf("[privacyd] no DB_URL set; using in-memory subscriber store")
	}

	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("parse REDIS_URL: %w", err)
		}
		rd := redis.NewClient(opts)
		if err := rd.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("connect redis: %w", err)
		}
		svc = svc.WithRedis(rd)
	} else {
		stdlog.Printf("[privacyd] no REDIS_URL set; tokens and quotas are per-process only")
	}

	if cfg.AdminJWTSecret != "" {
		svc = svc.WithAdminSecret([]byte(cfg.AdminJWTSecret))
	}

	mux := http.NewServeMux()
	mux.Handle("/", svc.APIHandler())
	stdlog.Printf("[privacyd] listening on %s", cfg.ListenAddr)
	return http.ListenAndServe(cfg.ListenAddr, mux)
}

func envOr(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func firstEnv(keys ...string) string {
	for _, k := range keys {
		if v := strings.TrimSpace(os.Getenv(k)); v != "" {
			return v
		}
	}
	return ""
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "privacyd:", err)
	os.Exit(1)
}
