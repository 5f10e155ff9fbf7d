package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/cgpa-api/internal/models"
	appErrors "github.com/noah-isme/cgpa-api/pkg/errors"
)

type memoryEntry struct {
	payload   []byte
	version   int64
	expiresAt time.Time
}

// MemorySessionRepository keeps calculator sessions in process memory.
type MemorySessionRepository struct {
	mu       sync.RWMutex
	sessions map[string]memoryEntry
	logger   *zap.Logger
	now      func() time.Time

	stopCh chan struct{}
	once   sync.Once
	wg     sync.WaitGroup
}

// NewMemorySessionRepository constructs an empty in-memory store.
func NewMemorySessionRepository(logger *zap.Logger) *MemorySessionRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MemorySessionRepository{
		sessions: make(map[string]memoryEntry),
		logger:   logger,
		now:      time.Now,
		stopCh:   make(chan struct{}),
	}
}

// Get returns the session or appErrors.ErrStoreMiss when absent or expired.
func (r *MemorySessionRepository) Get(ctx context.Context, id string) (*models.Session, error) {
	r.mu.RLock()
	entry, ok := r.sessions[id]
	r.mu.RUnlock()
	if !ok || !r.now().Before(entry.expiresAt) {
		return nil, appErrors.ErrStoreMiss
	}
	var session models.Session
	if err := json.Unmarshal(entry.payload, &session); err != nil {
		return nil, fmt.Errorf("decode session %s: %w", id, err)
	}
	return &session, nil
}

// Save stores a copy of the session that expires after ttl. The save is rejected with
// appErrors.ErrStoreConflict unless session.Version matches the stored version (0 when
// absent); on success session.Version is incremented.
func (r *MemorySessionRepository) Save(ctx context.Context, session *models.Session, ttl time.Duration) error {
	next := *session
	next.Version++
	payload, err := json.Marshal(&next)
	if err != nil {
		return fmt.Errorf("encode session %s: %w", session.ID, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	now := r.now()
	var current int64
	if entry, ok := r.sessions[session.ID]; ok && now.Before(entry.expiresAt) {
		current = entry.version
	}
	if current != session.Version {
		return appErrors.ErrStoreConflict
	}
	r.sessions[session.ID] = memoryEntry{payload: payload, version: next.Version, expiresAt: now.Add(ttl)}
	session.Version = next.Version
	return nil
}

// Delete removes the session if present.
func (r *MemorySessionRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	delete(r.sessions, id)
	r.mu.Unlock()
	return nil
}

// Count returns the number of live sessions.
func (r *MemorySessionRepository) Count(ctx context.Context) (int, error) {
	now := r.now()
	r.mu.RLock()
	defer r.mu.RUnlock()
	live := 0
	for _, entry := range r.sessions {
		if now.Before(entry.expiresAt) {
			live++
		}
	}
	return live, nil
}

// Sweep drops expired sessions and returns how many were removed.
func (r *MemorySessionRepository) Sweep() int {
	now := r.now()
	r.mu.Lock()
	defer r.mu.Unlock()
	removed := 0
	for id, entry := range r.sessions {
		if !now.Before(entry.expiresAt) {
			delete(r.sessions, id)
			removed++
		}
	}
	return removed
}

// StartJanitor sweeps expired sessions every interval until Close is called.
func (r *MemorySessionRepository) StartJanitor(interval time.Duration) {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-r.stopCh:
				return
			case <-ticker.C:
				if removed := r.Sweep(); removed > 0 {
					r.logger.Debug("expired sessions swept", zap.Int("removed", removed))
				}
			}
		}
	}()
}

// Close stops the janitor.
func (r *MemorySessionRepository) Close() error {
	r.once.Do(func() { close(r.stopCh) })
	r.wg.Wait()
	return nil
}
