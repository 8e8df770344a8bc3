package liveness

import (
	"context"
	"testing"
	"time"
)

func TestSessionAdvanceIgnoresOffSequenceEvents(t *testing.T) {
	manager := NewSessionManager(&fakeSessionStore{}, testConfig())
	session, err := manager.Ensure(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("Ensure() error = %v", err)
	}

	right := DirectionRight
	if finished := manager.Advance(session, &right); finished {
		t.Error("off-sequence RIGHT must not finish the challenge")
	}
	if len(session.MovementHistory) != 0 {
		t.Errorf("MovementHistory = %v; want empty", session.MovementHistory)
	}
	if session.NextExpectedMove == nil || *session.NextExpectedMove != "LEFT" {
		t.Errorf("NextExpectedMove = %v; want LEFT", session.NextExpectedMove)
	}
}

func TestSessionAdvanceCompletesInOrder(t *testing.T) {
	manager := NewSessionManager(&fakeSessionStore{}, testConfig())
	session, _ := manager.Ensure(context.Background(), "user-1")

	left := DirectionLeft
	right := DirectionRight

	if finished := manager.Advance(session, &left); finished {
		t.Error("LEFT alone must not finish the challenge")
	}
	if session.NextExpectedMove == nil || *session.NextExpectedMove != "RIGHT" {
		t.Fatalf("NextExpectedMove = %v; want RIGHT", session.NextExpectedMove)
	}

	if finished := manager.Advance(session, &right); !finished {
		t.Error("completing the sequence must report justFinished")
	}
	if !session.Finished {
		t.Error("Finished = false; want true")
	}
	if session.NextExpectedMove != nil {
		t.Errorf("NextExpectedMove = %v; want nil", *session.NextExpectedMove)
	}

	// terminal state is sticky
	if finished := manager.Advance(session, &left); finished {
		t.Error("Advance after completion must be a no-op")
	}
	if len(session.MovementHistory) != 2 {
		t.Errorf("MovementHistory = %v; want len 2", session.MovementHistory)
	}
}

func TestSessionAdvanceNilEvent(t *testing.T) {
	manager := NewSessionManager(&fakeSessionStore{}, testConfig())
	session, _ := manager.Ensure(context.Background(), "user-1")

	if finished := manager.Advance(session, nil); finished {
		t.Error("nil event must not advance the session")
	}
	if len(session.MovementHistory) != 0 {
		t.Errorf("MovementHistory = %v; want empty", session.MovementHistory)
	}
}

func TestSessionPersistPolicy(t *testing.T) {
	store := &fakeSessionStore{}
	manager := NewSessionManager(store, testConfig())
	session, _ := manager.Ensure(context.Background(), "user-1")

	// recent persist, not forced: skipped
	session.LastPersistedAt = time.Now()
	manager.Persist(context.Background(), session, false)
	if store.upsertCount() != 0 {
		t.Fatalf("upserts = %d; want 0", store.upsertCount())
	}

	// forced: always written
	manager.Persist(context.Background(), session, true)
	if store.upsertCount() != 1 {
		t.Fatalf("upserts = %d; want 1", store.upsertCount())
	}

	// stale persist timestamp: written
	session.LastPersistedAt = time.Now().Add(-time.Minute)
	manager.Persist(context.Background(), session, false)
	if store.upsertCount() != 2 {
		t.Fatalf("upserts = %d; want 2", store.upsertCount())
	}
}

func TestSessionPersistFailureRetriesNextTime(t *testing.T) {
	store := &fakeSessionStore{failUpsert: true}
	manager := NewSessionManager(store, testConfig())
	session, _ := manager.Ensure(context.Background(), "user-1")

	manager.Persist(context.Background(), session, true)
	if !session.LastPersistedAt.IsZero() {
		t.Error("failed persist must leave the session due for retry")
	}

	store.mu.Lock()
	store.failUpsert = false
	store.mu.Unlock()

	manager.Persist(context.Background(), session, false)
	if store.upsertCount() != 1 {
		t.Errorf("upserts = %d; want 1 after recovery", store.upsertCount())
	}
}

func TestSessionEnsureLoadsDurableState(t *testing.T) {
	store := &fakeSessionStore{}
	manager := NewSessionManager(store, testConfig())

	session, _ := manager.Ensure(context.Background(), "user-1")
	left := DirectionLeft
	manager.Advance(session, &left)
	manager.Persist(context.Background(), session, true)

	reloaded, err := manager.Ensure(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("Ensure() error = %v", err)
	}
	if len(reloaded.MovementHistory) != 1 || reloaded.MovementHistory[0] != "LEFT" {
		t.Errorf("MovementHistory = %v; want [LEFT]", reloaded.MovementHistory)
	}
	if reloaded.NextExpectedMove == nil || *reloaded.NextExpectedMove != "RIGHT" {
		t.Errorf("NextExpectedMove = %v; want RIGHT", reloaded.NextExpectedMove)
	}
}

func TestSessionResetIssuesFreshChallenge(t *testing.T) {
	store := &fakeSessionStore{}
	manager := NewSessionManager(store, testConfig())

	session, _ := manager.Ensure(context.Background(), "user-1")
	left := DirectionLeft
	right := DirectionRight
	manager.Advance(session, &left)
	manager.Advance(session, &right)
	manager.Persist(context.Background(), session, true)

	fresh, err := manager.Reset(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("Reset() error = %v", err)
	}
	if fresh.Finished || len(fresh.MovementHistory) != 0 {
		t.Errorf("fresh session = %+v; want unfinished empty history", fresh)
	}
	if stored := store.stored("user-1"); stored == nil || stored.Finished {
		t.Error("reset session must be persisted unfinished")
	}
}
