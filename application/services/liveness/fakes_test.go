package liveness

import (
	"context"
	"errors"
	"sync"
	"time"

	"liveface.io/entities"
)

func testConfig() Config {
	return Config{
		FaceMatchThreshold:     0.60,
		BatchMatchRatio:        0.60,
		MoveThreshold:          25,
		StableSizeVariation:    0.15,
		StableFramesRequired:   3,
		CenterTolerance:        0.20,
		FrameSkip:              1,
		MaxDetectWorkers:       4,
		DetectTimeout:          time.Second,
		SessionPersistInterval: 5 * time.Second,
		EmbeddingCacheTTL:      time.Minute,
		TrackingIdleTTL:        time.Minute,
		ChallengeTTL:           time.Minute,
	}
}

type fakeFaceStore struct {
	mu    sync.Mutex
	faces map[string][]entities.Face
	reads int
	fail  bool
}

func (s *fakeFaceStore) ReferenceFaces(ctx context.Context, userID string) ([]entities.Face, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reads++
	if s.fail {
		return nil, errors.New("store offline")
	}
	return s.faces[userID], nil
}

func (s *fakeFaceStore) readCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reads
}

func (s *fakeFaceStore) enroll(userID string, face entities.Face) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.faces == nil {
		s.faces = map[string][]entities.Face{}
	}
	s.faces[userID] = append(s.faces[userID], face)
}

type fakeSessionStore struct {
	mu         sync.Mutex
	sessions   map[string]entities.LivenessSession
	upserts    int
	failUpsert bool
	failRead   bool
}

func (s *fakeSessionStore) Read(ctx context.Context, userID string) (*entities.LivenessSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failRead {
		return nil, errors.New("store offline")
	}
	session, ok := s.sessions[userID]
	if !ok {
		return nil, nil
	}
	copied := session
	return &copied, nil
}

func (s *fakeSessionStore) Upsert(ctx context.Context, session *entities.LivenessSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failUpsert {
		return errors.New("store offline")
	}
	if s.sessions == nil {
		s.sessions = map[string]entities.LivenessSession{}
	}
	s.sessions[session.UserID] = *session
	s.upserts++
	return nil
}

func (s *fakeSessionStore) Delete(ctx context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, userID)
	return nil
}

func (s *fakeSessionStore) upsertCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.upserts
}

func (s *fakeSessionStore) stored(userID string) *entities.LivenessSession {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[userID]
	if !ok {
		return nil
	}
	copied := session
	return &copied
}

// fakeDetector maps frame payloads to scripted observations. A nil entry
// simulates a frame with no detectable face; Delay staggers completion so
// ordering bugs in the reduction stage surface.
type fakeDetector struct {
	observations map[string]*Observation
	errs         map[string]error
	delay        func(frame string) time.Duration
}

func (d *fakeDetector) DetectFace(ctx context.Context, frame []byte) (*Observation, error) {
	key := string(frame)
	if d.delay != nil {
		select {
		case <-time.After(d.delay(key)):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if err, ok := d.errs[key]; ok {
		return nil, err
	}
	return d.observations[key], nil
}

// centeredBBox returns a width-40 box centered at (cx, cy).
func centeredBBox(cx, cy float64) BBox {
	return BBox{X1: cx - 20, Y1: cy - 24, X2: cx + 20, Y2: cy + 24}
}
