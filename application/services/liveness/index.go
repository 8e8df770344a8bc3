package liveness

import (
	"context"

	"liveface.io/infrastructure/biometric"
)

// Service is the process-wide engine instance, wired against mongo and the
// remote detector. Tests build their own Engine with fakes through NewEngine.
var Service *Engine

func InitialiseEngine() {
	Service = NewEngine(LoadConfig(), mongoFaceStore{}, mongoSessionStore{}, remoteDetectorAdapter{})
}

type remoteDetectorAdapter struct{}

func (remoteDetectorAdapter) DetectFace(ctx context.Context, frame []byte) (*Observation, error) {
	observation, err := biometric.DetectorService.DetectFace(ctx, frame)
	if err != nil || observation == nil {
		return nil, err
	}
	return &Observation{
		BBox: BBox{
			X1: observation.BBox[0],
			Y1: observation.BBox[1],
			X2: observation.BBox[2],
			Y2: observation.BBox[3],
		},
		Embedding:   observation.Embedding,
		ImageWidth:  observation.ImageWidth,
		ImageHeight: observation.ImageHeight,
	}, nil
}
