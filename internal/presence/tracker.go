package presence

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/presslog/newsroom-backend/internal/platform/logger"
)

// Store is the row-oriented persistence the tracker writes through. The
// concrete backend is an external collaborator; every call is best-effort
// from the tracker's point of view.
type Store interface {
	ReadSessions(ctx context.Context, userID uuid.UUID, dateString string) ([]Session, error)
	WriteSessions(ctx context.Context, userID uuid.UUID, dateString string, sessions []Session) error
	UpdateLastActive(ctx context.Context, userID uuid.UUID, at time.Time) error
}

// Tracker turns raw interaction signals plus a periodic timer into presence
// state and per-day session history for one user. One instance per logged-in
// user session, with lifecycle tied to login/logout via Start/Stop.
//
// Store failures never propagate: presence is best-effort and the next tick
// is the retry.
type Tracker struct {
	cfg    Config
	log    *logger.Logger
	store  Store
	userID uuid.UUID
	now    func() time.Time

	mu              sync.Mutex
	lastInteraction time.Time

	cancel context.CancelFunc
	done   chan struct{}
}

func NewTracker(userID uuid.UUID, store Store, cfg Config, baseLog *logger.Logger) *Tracker {
	return &Tracker{
		cfg:    cfg.withDefaults(),
		log:    baseLog.With("component", "PresenceTracker"),
		store:  store,
		userID: userID,
		now:    time.Now,
	}
}

// SetNowFunc overrides the tracker's clock.
func (t *Tracker) SetNowFunc(now func() time.Time) {
	if now != nil {
		t.now = now
	}
}

// Start launches the heartbeat timer. Calling Start on a running tracker is
// a no-op.
func (t *Tracker) Start(ctx context.Context) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.cancel != nil {
		return
	}
	ctx, cancel := context.WithCancel(ctx)
	t.cancel = cancel
	t.done = make(chan struct{})
	go t.loop(ctx)
}

// Stop cancels the timer and waits for the loop to exit. In-flight store
// writes are not awaited; the worst outcome is a session end lagging true
// logout by one heartbeat interval.
func (t *Tracker) Stop() {
	t.mu.Lock()
	cancel := t.cancel
	done := t.done
	t.cancel = nil
	t.done = nil
	t.mu.Unlock()
	if cancel == nil {
		return
	}
	cancel()
	<-done
}

func (t *Tracker) loop(ctx context.Context) {
	defer close(t.done)
	ticker := time.NewTicker(t.cfg.HeartbeatInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			t.Heartbeat(ctx, t.now())
		}
	}
}

// RecordInteraction notes a raw UI interaction (pointer, key, scroll, touch).
// When the interaction ends a silence longer than IdleThreshold, a heartbeat
// fires immediately so the idle gap closes now rather than on the next tick.
func (t *Tracker) RecordInteraction(ctx context.Context, now time.Time) State {
	t.mu.Lock()
	prev := t.lastInteraction
	t.lastInteraction = now
	t.mu.Unlock()

	if prev.IsZero() || now.Sub(prev) > t.cfg.IdleThreshold {
		return t.Heartbeat(ctx, now)
	}
	return Classify(now, now, t.cfg)
}

// Heartbeat classifies the user and, when active, folds the beat into
// today's session log. Last-active is refreshed on every beat regardless of
// the session-log decision, so the online roster and the idle classification
// stay independent signals.
func (t *Tracker) Heartbeat(ctx context.Context, now time.Time) State {
	t.mu.Lock()
	lastInteraction := t.lastInteraction
	t.mu.Unlock()

	state := Classify(lastInteraction, now, t.cfg)

	if err := t.store.UpdateLastActive(ctx, t.userID, now); err != nil {
		t.log.Warn("update last active failed", "user_id", t.userID.String(), "error", err)
	}

	if state != StateActive {
		return state
	}

	day := DateString(now)
	sessions, err := t.store.ReadSessions(ctx, t.userID, day)
	if err != nil {
		t.log.Warn("read day log failed", "user_id", t.userID.String(), "date", day, "error", err)
		return state
	}
	updated := ApplyHeartbeat(sessions, now, t.cfg)
	if err := t.store.WriteSessions(ctx, t.userID, day, updated); err != nil {
		t.log.Warn("write day log failed", "user_id", t.userID.String(), "date", day, "error", err)
	}
	return state
}
