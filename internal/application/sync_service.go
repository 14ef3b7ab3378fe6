package application

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/outthegc/gc-cli/internal/domain"
	"github.com/outthegc/gc-cli/internal/ports"
)

// DefaultRefreshInterval matches the polling cadence of the web client.
const DefaultRefreshInterval = 2500 * time.Millisecond

type Phase int

const (
	PhaseUninitialized Phase = iota
	PhaseLoading
	PhaseReady
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseReady:
		return "ready"
	default:
		return "uninitialized"
	}
}

// Update is pushed to subscribers whenever the snapshot or phase changes, or
// when a background refresh fails.
type Update struct {
	Phase Phase
	Seq   uint64
	Err   error
}

// SyncService owns the server-authoritative TripState snapshot. It is the
// single writer; everything else reads the snapshot and must treat it as
// immutable. Refreshes after the first successful fetch replace the snapshot
// in place, keeping the previous one visible until the new one arrives.
type SyncService struct {
	api      ports.TripAPI
	clock    ports.Clock
	logger   *slog.Logger
	interval time.Duration

	mu         sync.Mutex
	tripID     string
	memberID   string
	phase      Phase
	snapshot   *domain.TripState
	lastSync   time.Time
	epoch      uint64
	nextSeq    uint64
	appliedSeq uint64
	subs       map[int]chan Update
	nextSubID  int
	stopLoop   context.CancelFunc
	loopDone   chan struct{}
}

func NewSyncService(api ports.TripAPI, logger *slog.Logger, interval time.Duration) *SyncService {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if interval <= 0 {
		interval = DefaultRefreshInterval
	}

	return &SyncService{
		api:      api,
		clock:    ports.SystemClock{},
		logger:   logger,
		interval: interval,
		subs:     map[int]chan Update{},
	}
}

// SetClock overrides the time source. Intended for tests.
func (s *SyncService) SetClock(clock ports.Clock) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clock = clock
}

// SetTrip switches the active trip and fetches its state immediately. Any
// in-flight fetch for a previously active trip is discarded when it resolves,
// so the snapshot always belongs to the current trip.
func (s *SyncService) SetTrip(ctx context.Context, tripID, memberID string) error {
	s.mu.Lock()
	s.tripID = tripID
	s.memberID = memberID
	s.epoch++
	s.snapshot = nil
	if tripID == "" {
		s.phase = PhaseUninitialized
		s.notifyLocked(Update{Phase: s.phase})
		s.mu.Unlock()
		return nil
	}
	s.phase = PhaseLoading
	s.notifyLocked(Update{Phase: s.phase})
	s.mu.Unlock()

	return s.fetch(ctx)
}

// Refresh pulls the latest TripState. It no-ops without an active trip and
// leaves the last good snapshot untouched on failure.
func (s *SyncService) Refresh(ctx context.Context) error {
	s.mu.Lock()
	tripID := s.tripID
	s.mu.Unlock()

	if tripID == "" {
		return nil
	}

	return s.fetch(ctx)
}

func (s *SyncService) fetch(ctx context.Context) error {
	s.mu.Lock()
	tripID := s.tripID
	if tripID == "" {
		s.mu.Unlock()
		return nil
	}
	epoch := s.epoch
	s.nextSeq++
	seq := s.nextSeq
	s.mu.Unlock()

	state, err := s.api.GetTrip(ctx, tripID)

	s.mu.Lock()
	defer s.mu.Unlock()

	if epoch != s.epoch {
		// A trip switch happened while this fetch was in flight.
		return nil
	}
	if err != nil {
		return fmt.Errorf("fetch trip state: %w", err)
	}
	if seq < s.appliedSeq {
		// A later-issued fetch already resolved; this response is stale.
		return nil
	}

	if validateErr := state.Validate(); validateErr != nil {
		s.logger.Warn("trip state failed invariant check", "trip_id", tripID, "error", validateErr)
	}

	s.snapshot = &state
	s.appliedSeq = seq
	s.lastSync = s.clock.Now()
	s.phase = PhaseReady
	s.notifyLocked(Update{Phase: s.phase, Seq: seq})

	return nil
}

// Start launches the periodic refresh loop. Failed refreshes are logged and
// retried with capped exponential backoff; the regular cadence resumes after
// the next success.
func (s *SyncService) Start(ctx context.Context) {
	s.mu.Lock()
	if s.stopLoop != nil {
		s.mu.Unlock()
		return
	}
	loopCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	s.stopLoop = cancel
	s.loopDone = done
	s.mu.Unlock()

	go s.loop(loopCtx, done)
}

func (s *SyncService) loop(ctx context.Context, done chan struct{}) {
	defer close(done)

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = s.interval
	bo.MaxInterval = 8 * s.interval
	bo.MaxElapsedTime = 0
	bo.Reset()

	delay := s.interval
	for {
		select {
		case <-ctx.Done():
			return
		case <-time.After(delay):
		}

		if err := s.Refresh(ctx); err != nil {
			if ctx.Err() != nil {
				return
			}
			s.logger.Warn("background refresh failed", "error", err)
			s.notify(Update{Phase: s.Phase(), Err: err})
			delay = bo.NextBackOff()
			continue
		}

		bo.Reset()
		delay = s.interval
	}
}

// Stop halts the refresh loop and waits for it to exit.
func (s *SyncService) Stop() {
	s.mu.Lock()
	cancel := s.stopLoop
	done := s.loopDone
	s.stopLoop = nil
	s.loopDone = nil
	s.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

// Subscribe returns a channel that receives Updates and a cancel function.
// Delivery is latest-wins: a slow reader only ever misses intermediate
// updates, never the most recent one.
func (s *SyncService) Subscribe() (<-chan Update, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSubID
	s.nextSubID++
	ch := make(chan Update, 1)
	s.subs[id] = ch

	return ch, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

func (s *SyncService) notify(update Update) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notifyLocked(update)
}

func (s *SyncService) notifyLocked(update Update) {
	for _, ch := range s.subs {
		select {
		case ch <- update:
		default:
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- update:
			default:
			}
		}
	}
}

// Snapshot returns the current TripState, or nil before the first successful
// fetch. Callers must not mutate it; derived state must be a copy.
func (s *SyncService) Snapshot() *domain.TripState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot
}

func (s *SyncService) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

func (s *SyncService) TripID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tripID
}

func (s *SyncService) MemberID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.memberID
}

func (s *SyncService) LastSyncedAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSync
}

// IsOrganiser derives the organiser flag from the current snapshot and
// member; it is never cached independently.
func (s *SyncService) IsOrganiser() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.snapshot == nil || s.memberID == "" {
		return false
	}
	return s.snapshot.IsOrganiser(s.memberID)
}
