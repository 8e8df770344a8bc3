package liveness

import "math"

// MovementDetector is a debounced edge detector over bounding-box sequences.
// It confirms a discrete head movement only after a sustained, size-stable
// lateral shift of a centered face, which filters out jitter and zoom noise
// from hand-held cameras.
type MovementDetector struct {
	cfg Config
}

func NewMovementDetector(cfg Config) *MovementDetector {
	return &MovementDetector{cfg: cfg}
}

// Observe feeds one bounding box into the tracking state and returns the
// confirmed movement, if any. Frames whose face is not roughly centered are
// ignored entirely: they neither advance nor reset the state.
func (d *MovementDetector) Observe(state *TrackingState, bbox BBox, imageWidth, imageHeight int) *Direction {
	if !d.isCentered(bbox, imageWidth, imageHeight) {
		return nil
	}

	if state.PrevBBox == nil {
		state.reset(&bbox)
		return nil
	}

	prev := *state.PrevBBox
	dx := bbox.CenterX() - prev.CenterX()
	prevWidth := prev.Width()
	if prevWidth <= 0 {
		state.reset(&bbox)
		return nil
	}
	sizeRatio := math.Abs(bbox.Width()-prevWidth) / prevWidth

	// a large width change means the face moved toward or away from the
	// camera; lateral deltas measured across it are meaningless
	if sizeRatio > d.cfg.StableSizeVariation {
		state.reset(&bbox)
		return nil
	}

	var direction *Direction
	if dx > d.cfg.MoveThreshold {
		right := DirectionRight
		direction = &right
	} else if dx < -d.cfg.MoveThreshold {
		left := DirectionLeft
		direction = &left
	}

	if direction == nil {
		state.PrevBBox = &bbox
		return nil
	}

	if state.CandidateDir != nil && *state.CandidateDir == *direction {
		state.StableFrames++
	} else {
		state.CandidateDir = direction
		state.StableFrames = 1
	}

	if state.StableFrames >= d.cfg.StableFramesRequired {
		state.StableFrames = 0
		state.PrevBBox = &bbox
		return direction
	}

	state.PrevBBox = &bbox
	return nil
}

func (d *MovementDetector) isCentered(bbox BBox, imageWidth, imageHeight int) bool {
	if imageWidth <= 0 || imageHeight <= 0 {
		return false
	}
	halfW := float64(imageWidth) / 2
	halfH := float64(imageHeight) / 2
	dx := math.Abs(bbox.CenterX()-halfW) / halfW
	dy := math.Abs(bbox.CenterY()-halfH) / halfH
	return dx <= d.cfg.CenterTolerance && dy <= d.cfg.CenterTolerance
}
