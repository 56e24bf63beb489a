package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/hongminglow/bookx-web/internal/backend"
	"github.com/hongminglow/bookx-web/internal/config"
	"github.com/hongminglow/bookx-web/internal/server"
	"github.com/hongminglow/bookx-web/internal/session"
	postgres "github.com/hongminglow/bookx-web/internal/storage/postgres"
)

const sweepInterval = time.Hour

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var envFile, port string

	cmd := &cobra.Command{
		Use:          "bookx-web",
		Short:        "Serve the book exchange web frontend",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			loadLocalEnv(envFile)

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if cmd.Flags().Changed("port") {
				cfg.Port = port
			}
			return run(cmd.Context(), cfg)
		},
	}
	cmd.Flags().StringVar(&envFile, "env-file", "", "path to a .env file (default: ./.env if present)")
	cmd.Flags().StringVar(&port, "port", "", "listen port, overrides PORT")
	return cmd
}

func run(ctx context.Context, cfg config.Config) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	api, err := backend.New(cfg.APIBaseURL, backend.WithTimeout(cfg.APITimeout))
	if err != nil {
		return fmt.Errorf("init api client: %w", err)
	}

	cookie := session.CookieOptions{Name: cfg.SessionCookie, Secure: cfg.SecureCookies, TTL: cfg.SessionTTL}
	var sessions session.Store
	if cfg.ServerSideSessions() {
		store, err := postgres.NewSessionStore(ctx, cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("init session database: %w", err)
		}
		defer store.Close()
		go sweepSessions(ctx, store)
		sessions = session.NewServerStore(store, cookie)
		log.Println("sessions: postgres")
	} else {
		sessions = session.NewCookieStore(cfg.SessionSecret, cookie)
		log.Println("sessions: sealed cookie")
	}

	srv, err := server.New(cfg, api, sessions)
	if err != nil {
		return fmt.Errorf("init server: %w", err)
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("bookx web listening on %s (api %s)", cfg.HTTPAddress(), cfg.APIBaseURL)
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server error: %w", err)
	case <-ctx.Done():
	}

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctxShutdown); err != nil {
		log.Printf("graceful shutdown error: %v", err)
	}
	return nil
}

func sweepSessions(ctx context.Context, store *postgres.Store) {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			n, err := store.Sweep(ctx, now)
			if err != nil {
				log.Printf("sweep sessions: %v", err)
				continue
			}
			if n > 0 {
				log.Printf("swept %d expired sessions", n)
			}
		}
	}
}

func loadLocalEnv(path string) {
	if path != "" {
		if err := godotenv.Load(path); err != nil {
			log.Printf("load %s: %v", path, err)
		}
		return
	}
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found; relying on existing environment")
	}
}
