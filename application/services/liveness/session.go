package liveness

import (
	"context"
	"fmt"
	"hash/fnv"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"liveface.io/application/utils"
	"liveface.io/entities"
	"liveface.io/infrastructure/logger"
)

const sessionLockStripes = 64

// SessionManager owns challenge progress per user. Durable fields live in
// the session store; the transient movement-tracking working set lives in an
// idle-evicted in-memory cache. All mutation for a given user happens under
// that user's stripe lock, so two concurrent batches can never interleave
// session updates.
type SessionManager struct {
	store    SessionStore
	cfg      Config
	tracking *gocache.Cache
	locks    [sessionLockStripes]sync.Mutex
}

func NewSessionManager(store SessionStore, cfg Config) *SessionManager {
	return &SessionManager{
		store:    store,
		cfg:      cfg,
		tracking: gocache.New(cfg.TrackingIdleTTL, cfg.TrackingIdleTTL*2),
	}
}

// Lock serializes access to a user's session and returns the unlock func.
func (m *SessionManager) Lock(userID string) func() {
	stripe := &m.locks[stripeFor(userID)]
	stripe.Lock()
	return stripe.Unlock
}

func stripeFor(userID string) uint32 {
	h := fnv.New32a()
	h.Write([]byte(userID))
	return h.Sum32() % sessionLockStripes
}

// Ensure loads the user's durable session or builds the default challenge.
// A freshly built session is only written through on the next persistence
// point, so issuing a challenge never blocks on the store.
func (m *SessionManager) Ensure(ctx context.Context, userID string) (*entities.LivenessSession, error) {
	session, err := m.store.Read(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDataUnavailable, err)
	}
	if session != nil {
		return session, nil
	}
	return m.defaultSession(userID), nil
}

func (m *SessionManager) defaultSession(userID string) *entities.LivenessSession {
	required := make([]string, len(DefaultRequiredSequence))
	copy(required, DefaultRequiredSequence)
	return &entities.LivenessSession{
		ID:               utils.GenerateULIDString(),
		UserID:           userID,
		RequiredSequence: required,
		MovementHistory:  []string{},
		NextExpectedMove: utils.GetStringPointer(required[0]),
		Finished:         false,
	}
}

// Advance applies one confirmed movement event. Off-sequence events are
// silently dropped so accidental or adversarial out-of-order gestures never
// count. Returns true when this event completed the challenge.
func (m *SessionManager) Advance(session *entities.LivenessSession, direction *Direction) bool {
	if session.Finished || direction == nil {
		return false
	}
	if session.NextExpectedMove == nil || *session.NextExpectedMove != string(*direction) {
		return false
	}

	session.MovementHistory = append(session.MovementHistory, string(*direction))
	if len(session.MovementHistory) >= len(session.RequiredSequence) {
		session.Finished = true
		session.NextExpectedMove = nil
		return true
	}
	session.NextExpectedMove = utils.GetStringPointer(session.RequiredSequence[len(session.MovementHistory)])
	return false
}

// Persist writes the session through to the durable store when forced or when
// the periodic interval has elapsed. A failed write is reported but leaves
// the in-memory session intact; the next persistence point retries.
func (m *SessionManager) Persist(ctx context.Context, session *entities.LivenessSession, force bool) {
	if !force && time.Since(session.LastPersistedAt) <= m.cfg.SessionPersistInterval {
		return
	}
	session.LastPersistedAt = time.Now()
	if err := m.store.Upsert(ctx, session); err != nil {
		logger.Error("failed to persist liveness session", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		}, logger.LoggerOptions{
			Key:  "userID",
			Data: session.UserID,
		})
		// zero value forces a retry on the next persistence point
		session.LastPersistedAt = time.Time{}
	}
}

// Tracking returns the user's transient tracking state, creating it on first
// use. Each access refreshes the idle-eviction window.
func (m *SessionManager) Tracking(userID string) *TrackingState {
	if state, found := m.tracking.Get(userID); found {
		m.tracking.SetDefault(userID, state)
		return state.(*TrackingState)
	}
	state := &TrackingState{}
	m.tracking.SetDefault(userID, state)
	return state
}

// ResetTracking drops the user's transient tracking state.
func (m *SessionManager) ResetTracking(userID string) {
	m.tracking.Delete(userID)
}

// Reset replaces the user's session with a fresh default challenge and drops
// tracking state. Used when a verification attempt should start over.
func (m *SessionManager) Reset(ctx context.Context, userID string) (*entities.LivenessSession, error) {
	unlock := m.Lock(userID)
	defer unlock()

	if err := m.store.Delete(ctx, userID); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDataUnavailable, err)
	}
	m.ResetTracking(userID)

	session := m.defaultSession(userID)
	m.Persist(ctx, session, true)
	return session, nil
}
