package biometric

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"

	"liveface.io/infrastructure/biometric/types"
	"liveface.io/infrastructure/logger"
	"liveface.io/infrastructure/network"
)

// RemoteDetector calls the external face detection/embedding service. The
// service decodes the frame, runs its model and returns every detected face
// ordered by its internal ranking; the first entry is used as "the" face.
type RemoteDetector struct {
	Network *network.NetworkController
}

func (d *RemoteDetector) DetectFace(ctx context.Context, frame []byte) (*types.FaceObservation, error) {
	requestBody := types.DetectionRequest{
		Image: base64.StdEncoding.EncodeToString(frame),
	}

	response, statusCode, err := d.Network.Post(ctx, "/detect", &map[string]string{}, requestBody)
	if err != nil {
		logger.Error("error calling face detector service", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return nil, err
	}

	if statusCode == nil || *statusCode != 200 {
		logger.Error("face detection failed with status code", logger.LoggerOptions{
			Key:  "status_code",
			Data: statusCode,
		})
		return nil, fmt.Errorf("face detector returned an unexpected status code")
	}

	var result types.DetectionResponse
	if err := json.Unmarshal(*response, &result); err != nil {
		logger.Error("error unmarshaling face detection response", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return nil, err
	}

	if !result.Success {
		if result.Error != nil {
			return nil, errors.New(*result.Error)
		}
		return nil, errors.New("face detection failed")
	}

	if len(result.Faces) == 0 {
		return nil, nil
	}

	observation := result.Faces[0]
	observation.ImageWidth = result.ImageWidth
	observation.ImageHeight = result.ImageHeight
	return &observation, nil
}
