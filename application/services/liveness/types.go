package liveness

import (
	"time"

	"liveface.io/entities"
)

// Direction is a confirmed discrete head movement.
type Direction string

const (
	DirectionLeft  Direction = "LEFT"
	DirectionRight Direction = "RIGHT"
)

// DefaultRequiredSequence is the challenge issued when a user has no durable
// session yet.
var DefaultRequiredSequence = []string{string(DirectionLeft), string(DirectionRight)}

// BBox is an axis-aligned face bounding box in image coordinates.
type BBox struct {
	X1 float64
	Y1 float64
	X2 float64
	Y2 float64
}

func (b BBox) CenterX() float64 {
	return (b.X1 + b.X2) / 2
}

func (b BBox) CenterY() float64 {
	return (b.Y1 + b.Y2) / 2
}

func (b BBox) Width() float64 {
	return b.X2 - b.X1
}

// TrackingState is the transient per-user working set of the movement
// detector. It never touches the durable store and resets to its zero value
// whenever the baseline is lost.
type TrackingState struct {
	PrevBBox     *BBox
	CandidateDir *Direction
	StableFrames int
}

func (s *TrackingState) reset(baseline *BBox) {
	s.PrevBBox = baseline
	s.CandidateDir = nil
	s.StableFrames = 0
}

// BatchVerdict is the reduced result of one verification batch together with
// the terminal snapshot of the user's liveness session.
type BatchVerdict struct {
	FramesAnalyzed    int
	AverageSimilarity float64
	MatchRatio        float64
	SamePerson        bool
	ProcessingTime    time.Duration
	Session           *entities.LivenessSession
}

// FrameVerdict is the result of scoring a single frame outside of a batch.
type FrameVerdict struct {
	BestSimilarity float64
	MatchedFaceID  string
	SamePerson     bool
}
