package liveness

import "testing"

const (
	testImageWidth  = 1280
	testImageHeight = 720
)

func observeAll(t *testing.T, detector *MovementDetector, state *TrackingState, boxes []BBox) []Direction {
	t.Helper()
	events := []Direction{}
	for _, box := range boxes {
		if direction := detector.Observe(state, box, testImageWidth, testImageHeight); direction != nil {
			events = append(events, *direction)
		}
	}
	return events
}

func TestMovementDetectorConfirmsSustainedShift(t *testing.T) {
	detector := NewMovementDetector(testConfig())
	state := &TrackingState{}

	// baseline then three qualifying +40px shifts, stable width, centered
	boxes := []BBox{
		centeredBBox(620, 360),
		centeredBBox(660, 360),
		centeredBBox(700, 360),
		centeredBBox(740, 360),
	}
	events := observeAll(t, detector, state, boxes)

	if len(events) != 1 || events[0] != DirectionRight {
		t.Fatalf("events = %v; want exactly one RIGHT", events)
	}
	if state.StableFrames != 0 {
		t.Errorf("StableFrames after confirmation = %d; want 0", state.StableFrames)
	}
}

func TestMovementDetectorLeftShift(t *testing.T) {
	detector := NewMovementDetector(testConfig())
	state := &TrackingState{}

	boxes := []BBox{
		centeredBBox(740, 360),
		centeredBBox(700, 360),
		centeredBBox(660, 360),
		centeredBBox(620, 360),
	}
	events := observeAll(t, detector, state, boxes)

	if len(events) != 1 || events[0] != DirectionLeft {
		t.Fatalf("events = %v; want exactly one LEFT", events)
	}
}

func TestMovementDetectorSizeInstabilityResets(t *testing.T) {
	detector := NewMovementDetector(testConfig())
	state := &TrackingState{}

	baseline := centeredBBox(620, 360)
	shifted := centeredBBox(660, 360)
	// same center shift but width grows from 40 to 60 (+50%)
	zoomed := BBox{X1: 670, Y1: 336, X2: 730, Y2: 384}

	detector.Observe(state, baseline, testImageWidth, testImageHeight)
	detector.Observe(state, shifted, testImageWidth, testImageHeight)
	if state.StableFrames != 1 {
		t.Fatalf("StableFrames after first shift = %d; want 1", state.StableFrames)
	}

	if direction := detector.Observe(state, zoomed, testImageWidth, testImageHeight); direction != nil {
		t.Errorf("Observe(zoomed) = %v; want nil", *direction)
	}
	if state.StableFrames != 0 || state.CandidateDir != nil {
		t.Errorf("state after zoom = (%d, %v); want reset (0, nil)", state.StableFrames, state.CandidateDir)
	}
}

func TestMovementDetectorCenteringGate(t *testing.T) {
	detector := NewMovementDetector(testConfig())
	state := &TrackingState{}

	// center x = 100 is far outside the ±20% window of a 1280px image
	offCenter := centeredBBox(100, 360)
	if direction := detector.Observe(state, offCenter, testImageWidth, testImageHeight); direction != nil {
		t.Errorf("Observe(off-center) = %v; want nil", *direction)
	}
	if state.PrevBBox != nil {
		t.Error("off-center frame must not establish a baseline")
	}
}

func TestMovementDetectorJitterBelowThreshold(t *testing.T) {
	detector := NewMovementDetector(testConfig())
	state := &TrackingState{}

	// 10px wobble never crosses the 25px movement threshold
	boxes := []BBox{
		centeredBBox(640, 360),
		centeredBBox(650, 360),
		centeredBBox(640, 360),
		centeredBBox(650, 360),
		centeredBBox(640, 360),
	}
	events := observeAll(t, detector, state, boxes)

	if len(events) != 0 {
		t.Errorf("events = %v; want none", events)
	}
}

func TestMovementDetectorDirectionFlipRestartsDebounce(t *testing.T) {
	detector := NewMovementDetector(testConfig())
	state := &TrackingState{}

	boxes := []BBox{
		centeredBBox(660, 360), // baseline
		centeredBBox(700, 360), // right, stable 1
		centeredBBox(740, 360), // right, stable 2
		centeredBBox(700, 360), // left, flips candidate, stable 1
		centeredBBox(740, 360), // right again, stable 1
	}
	events := observeAll(t, detector, state, boxes)

	if len(events) != 0 {
		t.Errorf("events = %v; want none after direction flip", events)
	}
	if state.CandidateDir == nil || *state.CandidateDir != DirectionRight || state.StableFrames != 1 {
		t.Errorf("state = (%v, %d); want (RIGHT, 1)", state.CandidateDir, state.StableFrames)
	}
}
