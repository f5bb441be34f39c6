// Package sdk implements the client side of the game state resync
// protocol. It is transport agnostic: callers provide a Transport bound to
// their socket connection, and the syncer decides when to join, when to ask
// for a fresh snapshot and how to back off when the server does not answer.
package sdk

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	game_constants "Farol/constants/game"
)

// ErrSyncFailed is returned when a full snapshot could not be obtained
// within the configured number of attempts.
var ErrSyncFailed = errors.New("state sync failed")

// Transport is the minimal surface the syncer needs from a live
// connection. Implementations emit the corresponding client events and
// deliver incoming snapshots on the channel returned by Snapshots.
type Transport interface {
	// JoinGame announces the player on the game's room. Idempotent on the
	// server side, so it is safe to call on every reconnect.
	JoinGame(ctx context.Context, gameID string) error

	// RequestGameState asks the server for a full personalized snapshot.
	RequestGameState(ctx context.Context, gameID string) error

	// Snapshots yields every snapshot the server pushes, resync-triggered
	// or not.
	Snapshots() <-chan map[string]interface{}
}

// Config tunes the resync behavior. The zero value is usable: every field
// falls back to the defaults below.
type Config struct {
	MaxAttempts     int           // Join/request attempts before giving up
	InitialBackoff  time.Duration // First retry delay, doubled per attempt
	RefreshInterval time.Duration // Gap between periodic re-requests in Run

	// MinSnapshotInterval rate-limits explicit snapshot requests so a
	// reconnect loop cannot hammer the server.
	MinSnapshotInterval time.Duration
}

func (c Config) withDefaults() Config {
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = game_constants.ResyncMaxAttempts
	}
	if c.InitialBackoff <= 0 {
		c.InitialBackoff = game_constants.ResyncInitialBackoffMs * time.Millisecond
	}
	if c.RefreshInterval <= 0 {
		c.RefreshInterval = game_constants.ResyncRefreshSeconds * time.Second
	}
	if c.MinSnapshotInterval <= 0 {
		c.MinSnapshotInterval = game_constants.ResyncMinSnapshotGapMs * time.Millisecond
	}
	return c
}

// StateSyncer drives the join-and-resync handshake for one game.
type StateSyncer struct {
	transport Transport
	gameID    string
	cfg       Config

	lastRequest time.Time
}

func NewStateSyncer(transport Transport, gameID string, cfg Config) *StateSyncer {
	return &StateSyncer{
		transport: transport,
		gameID:    gameID,
		cfg:       cfg.withDefaults(),
	}
}

// Sync joins the game and blocks until a valid snapshot arrives, retrying
// with increasing backoff. It returns the snapshot, or ErrSyncFailed after
// the last attempt.
func (s *StateSyncer) Sync(ctx context.Context) (map[string]interface{}, error) {
	backoff := s.cfg.InitialBackoff

	for attempt := 1; attempt <= s.cfg.MaxAttempts; attempt++ {
		if err := s.transport.JoinGame(ctx, s.gameID); err != nil {
			log.Printf("[SYNC] Join attempt %d for game %s failed: %v", attempt, s.gameID, err)
		} else if snapshot, ok := s.awaitSnapshot(ctx, backoff); ok {
			return snapshot, nil
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
		backoff *= 2
	}
	return nil, fmt.Errorf("%w: no snapshot for game %s after %d attempts",
		ErrSyncFailed, s.gameID, s.cfg.MaxAttempts)
}

// Run keeps the client's view fresh: it performs an initial Sync and then
// re-requests the state periodically until the context is canceled. Each
// snapshot (periodic or server-pushed) is handed to onSnapshot.
func (s *StateSyncer) Run(ctx context.Context, onSnapshot func(map[string]interface{})) error {
	snapshot, err := s.Sync(ctx)
	if err != nil {
		return err
	}
	onSnapshot(snapshot)

	ticker := time.NewTicker(s.cfg.RefreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := s.RequestSnapshot(ctx); err != nil {
				log.Printf("[SYNC] Periodic refresh for game %s failed: %v", s.gameID, err)
			}
		case snap, open := <-s.transport.Snapshots():
			if !open {
				return fmt.Errorf("%w: snapshot channel closed", ErrSyncFailed)
			}
			if ValidSnapshot(snap) {
				onSnapshot(snap)
			}
		}
	}
}

// RequestSnapshot asks for a fresh snapshot, honoring the rate limit.
// Requests inside the minimum gap are dropped silently.
func (s *StateSyncer) RequestSnapshot(ctx context.Context) error {
	now := time.Now()
	if now.Sub(s.lastRequest) < s.cfg.MinSnapshotInterval {
		return nil
	}
	s.lastRequest = now
	return s.transport.RequestGameState(ctx, s.gameID)
}

// awaitSnapshot waits up to the given duration for a valid snapshot.
func (s *StateSyncer) awaitSnapshot(ctx context.Context, wait time.Duration) (map[string]interface{}, bool) {
	timer := time.NewTimer(wait)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil, false
		case <-timer.C:
			return nil, false
		case snap, open := <-s.transport.Snapshots():
			if !open {
				return nil, false
			}
			if ValidSnapshot(snap) {
				return snap, true
			}
			// Malformed snapshots don't end the wait, the next push may be fine
			log.Printf("[SYNC] Discarding malformed snapshot for game %s", s.gameID)
		}
	}
}

// ValidSnapshot checks that a snapshot carries the shared fields every
// client needs before it can render the table.
func ValidSnapshot(snap map[string]interface{}) bool {
	if snap == nil {
		return false
	}
	if id, ok := snap["game_id"].(string); !ok || id == "" {
		return false
	}
	if _, ok := snap["state"].(string); !ok {
		return false
	}
	if _, ok := snap["seats"]; !ok {
		return false
	}
	// Pile size travels as a JSON number
	if _, ok := snap["pile_size"].(float64); !ok {
		if _, ok := snap["pile_size"].(int); !ok {
			return false
		}
	}
	return true
}
