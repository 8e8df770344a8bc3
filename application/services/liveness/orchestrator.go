package liveness

import (
	"context"
	"sync"
	"time"

	"liveface.io/entities"
	"liveface.io/infrastructure/logger"
)

// Engine reduces an ordered burst of frames for a user into a single batch
// verdict while driving that user's movement challenge. Detection and
// scoring fan out over a bounded worker pool; movement and session updates
// are applied afterwards in strict original frame order, because movement
// confirmation depends on true temporal order rather than completion order.
type Engine struct {
	cfg        Config
	Embeddings *EmbeddingCache
	Sessions   *SessionManager
	Movement   *MovementDetector
	detector   Detector
}

func NewEngine(cfg Config, faces FaceStore, sessions SessionStore, detector Detector) *Engine {
	return &Engine{
		cfg:        cfg,
		Embeddings: NewEmbeddingCache(faces, cfg),
		Sessions:   NewSessionManager(sessions, cfg),
		Movement:   NewMovementDetector(cfg),
		detector:   detector,
	}
}

func (e *Engine) Config() Config {
	return e.cfg
}

type frameResult struct {
	observation *Observation
	similarity  float64
	faceID      string
}

func (e *Engine) ProcessBatch(ctx context.Context, userID string, frames [][]byte) (*BatchVerdict, error) {
	started := time.Now()

	if len(frames) == 0 {
		return nil, ErrInvalidInput
	}

	matrix, err := e.Embeddings.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if matrix.Empty() {
		return nil, ErrNoReferenceEmbeddings
	}

	// deterministic sampling: keep every Nth frame, original order intact
	skip := e.cfg.FrameSkip
	if skip < 1 {
		skip = 1
	}
	sampled := [][]byte{}
	for i := 0; i < len(frames); i += skip {
		sampled = append(sampled, frames[i])
	}

	results := e.detectAndScore(ctx, matrix, sampled)

	// reduction is per-user sequential; no two batches may interleave
	// session mutation for the same user
	unlock := e.Sessions.Lock(userID)
	defer unlock()

	session, err := e.Sessions.Ensure(ctx, userID)
	if err != nil {
		return nil, err
	}
	state := e.Sessions.Tracking(userID)

	var (
		similaritySum float64
		matches       int
		analyzed      int
		bestSim       = -1.0
		bestFaceID    string
		justFinished  bool
	)
	for _, result := range results {
		if result == nil || result.observation == nil {
			continue
		}
		analyzed++
		similaritySum += result.similarity
		if result.similarity >= e.cfg.FaceMatchThreshold {
			matches++
		}
		if result.similarity > bestSim {
			bestSim = result.similarity
			bestFaceID = result.faceID
		}

		direction := e.Movement.Observe(state, result.observation.BBox, result.observation.ImageWidth, result.observation.ImageHeight)
		if e.Sessions.Advance(session, direction) {
			justFinished = true
		}
	}

	if analyzed == 0 {
		return nil, ErrNoValidFace
	}

	matchRatio := float64(matches) / float64(analyzed)
	samePerson := matchRatio >= e.cfg.BatchMatchRatio
	if samePerson && bestFaceID != "" {
		session.MatchedFaceID = &bestFaceID
	}

	e.Sessions.Persist(ctx, session, justFinished)
	if session.Finished {
		e.Sessions.ResetTracking(userID)
	}

	snapshot := *session
	return &BatchVerdict{
		FramesAnalyzed:    analyzed,
		AverageSimilarity: similaritySum / float64(analyzed),
		MatchRatio:        matchRatio,
		SamePerson:        samePerson,
		ProcessingTime:    time.Since(started),
		Session:           &snapshot,
	}, nil
}

// detectAndScore runs the parallel pure stage. Results come back in an
// index-addressed slice so the caller can reduce them in original order no
// matter how workers finished.
func (e *Engine) detectAndScore(ctx context.Context, matrix *EmbeddingMatrix, sampled [][]byte) []*frameResult {
	results := make([]*frameResult, len(sampled))

	workers := e.cfg.MaxDetectWorkers
	if workers < 1 {
		workers = 1
	}
	if workers > len(sampled) {
		workers = len(sampled)
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for index := range jobs {
				results[index] = e.processOne(ctx, matrix, sampled[index])
			}
		}()
	}

feed:
	for index := range sampled {
		select {
		case jobs <- index:
		case <-ctx.Done():
			// abandon undispatched frames; completed results still count
			break feed
		}
	}
	close(jobs)
	wg.Wait()

	return results
}

// processOne invokes the detector under the per-frame budget and scores the
// observation. Every failure here is a per-frame failure: the frame is
// dropped and the batch continues.
func (e *Engine) processOne(ctx context.Context, matrix *EmbeddingMatrix, frame []byte) *frameResult {
	detectCtx, cancel := context.WithTimeout(ctx, e.cfg.DetectTimeout)
	defer cancel()

	observation, err := e.detector.DetectFace(detectCtx, frame)
	if err != nil {
		logger.Warning("dropping frame after detector failure", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return nil
	}
	if observation == nil {
		return nil
	}

	similarity, faceID := Score(matrix, observation.Embedding)
	return &frameResult{
		observation: observation,
		similarity:  similarity,
		faceID:      faceID,
	}
}

// ProcessFrame scores a single frame against the user's references without
// touching challenge state.
func (e *Engine) ProcessFrame(ctx context.Context, userID string, frame []byte) (*FrameVerdict, error) {
	matrix, err := e.Embeddings.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if matrix.Empty() {
		return nil, ErrNoReferenceEmbeddings
	}

	result := e.processOne(ctx, matrix, frame)
	if result == nil {
		return nil, ErrNoValidFace
	}
	return &FrameVerdict{
		BestSimilarity: result.similarity,
		MatchedFaceID:  result.faceID,
		SamePerson:     result.similarity >= e.cfg.FaceMatchThreshold,
	}, nil
}

// Challenge returns the user's current challenge, creating the default one
// for first-time users.
func (e *Engine) Challenge(ctx context.Context, userID string) (*entities.LivenessSession, error) {
	unlock := e.Sessions.Lock(userID)
	defer unlock()

	session, err := e.Sessions.Ensure(ctx, userID)
	if err != nil {
		return nil, err
	}
	e.Sessions.Persist(ctx, session, false)
	snapshot := *session
	return &snapshot, nil
}

// ResetSession restarts the user's challenge from scratch.
func (e *Engine) ResetSession(ctx context.Context, userID string) (*entities.LivenessSession, error) {
	return e.Sessions.Reset(ctx, userID)
}

// InvalidateEmbeddings evicts the user's cached reference matrix. Enrollment
// collaborators must trigger this whenever they add or remove a face.
func (e *Engine) InvalidateEmbeddings(userID string) {
	e.Embeddings.Invalidate(userID)
}
