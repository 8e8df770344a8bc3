package liveness

import (
	"context"

	"liveface.io/application/repository"
	"liveface.io/entities"
)

// FaceStore reads a user's enrolled reference faces.
type FaceStore interface {
	ReferenceFaces(ctx context.Context, userID string) ([]entities.Face, error)
}

// SessionStore reads and atomically upserts durable liveness sessions.
type SessionStore interface {
	Read(ctx context.Context, userID string) (*entities.LivenessSession, error)
	Upsert(ctx context.Context, session *entities.LivenessSession) error
	Delete(ctx context.Context, userID string) error
}

// Detector produces at most one face observation per frame.
type Detector interface {
	DetectFace(ctx context.Context, frame []byte) (*Observation, error)
}

// Observation mirrors what the external detector reports for a frame.
type Observation struct {
	BBox        BBox
	Embedding   []float32
	ImageWidth  int
	ImageHeight int
}

type mongoFaceStore struct{}

func (mongoFaceStore) ReferenceFaces(ctx context.Context, userID string) ([]entities.Face, error) {
	faces, err := repository.FaceRepo().FindManyByFilter(map[string]interface{}{
		"userID": userID,
	})
	if err != nil {
		return nil, err
	}
	return *faces, nil
}

type mongoSessionStore struct{}

func (mongoSessionStore) Read(ctx context.Context, userID string) (*entities.LivenessSession, error) {
	return repository.LivenessSessionRepo().FindOneByFilter(map[string]interface{}{
		"userID": userID,
	})
}

func (mongoSessionStore) Upsert(ctx context.Context, session *entities.LivenessSession) error {
	return repository.LivenessSessionRepo().UpsertByFilter(ctx, map[string]interface{}{
		"userID": session.UserID,
	}, *session)
}

func (mongoSessionStore) Delete(ctx context.Context, userID string) error {
	_, err := repository.LivenessSessionRepo().DeleteByFilter(ctx, map[string]interface{}{
		"userID": userID,
	})
	return err
}
