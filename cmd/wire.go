package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	apiclient "github.com/outthegc/gc-cli/internal/adapters/api"
	"github.com/outthegc/gc-cli/internal/adapters/session"
	"github.com/outthegc/gc-cli/internal/application"
	"github.com/outthegc/gc-cli/internal/domain"
	"github.com/outthegc/gc-cli/internal/ports"
	"github.com/spf13/viper"
)

type app struct {
	api      ports.TripAPI
	sessions ports.SessionStore
	trips    *application.TripService
	sync     *application.SyncService
	voting   *application.VotingService
	now      func() time.Time
}

func wireApp() (*app, error) {
	// A missing .env is fine; real config comes from the environment.
	_ = godotenv.Load()

	sessions, err := session.NewStore(viper.New())
	if err != nil {
		return nil, fmt.Errorf("wire session store: %w", err)
	}

	api := apiclient.NewClient(envOrDefault("GC_API_BASE_URL", "http://localhost:8000"), http.DefaultClient)
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	syncService := application.NewSyncService(api, logger, application.DefaultRefreshInterval)

	return &app{
		api:      api,
		sessions: sessions,
		trips:    application.NewTripService(api, sessions),
		sync:     syncService,
		voting:   application.NewVotingService(api, syncService),
		now:      time.Now,
	}, nil
}

// activate restores the persisted session and loads the trip snapshot.
func (a *app) activate(ctx context.Context) (domain.Session, error) {
	stored, err := a.sessions.Load(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrNoSession) {
			return domain.Session{}, fmt.Errorf("%w: run `gc trip create` or `gc trip join` first", err)
		}
		return domain.Session{}, fmt.Errorf("load session: %w", err)
	}

	if err := a.sync.SetTrip(ctx, stored.TripID, stored.MemberID); err != nil {
		return domain.Session{}, err
	}
	a.voting.ObserveSnapshot(a.sync.Snapshot())

	return stored, nil
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
