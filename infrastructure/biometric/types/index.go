package types

import "context"

// FaceObservation is a single detected face in a frame: its bounding box in
// image coordinates, the embedding produced by the detector model and the
// dimensions of the analysed image.
type FaceObservation struct {
	BBox        [4]float64 `json:"bbox"`
	Embedding   []float32  `json:"embedding"`
	DetScore    float64    `json:"det_score"`
	ImageWidth  int        `json:"image_width"`
	ImageHeight int        `json:"image_height"`
}

type DetectionRequest struct {
	Image string `json:"image"` // base64 encoded frame bytes
}

type DetectionResponse struct {
	Success     bool              `json:"success"`
	ImageWidth  int               `json:"image_width"`
	ImageHeight int               `json:"image_height"`
	Faces       []FaceObservation `json:"faces"`
	Error       *string           `json:"error"`
}

type DetectorServiceType interface {
	// DetectFace returns the highest ranked face in the frame or nil when
	// the detector finds none.
	DetectFace(ctx context.Context, frame []byte) (*FaceObservation, error)
}
