package biometric

import (
	"os"

	"liveface.io/infrastructure/biometric/types"
	"liveface.io/infrastructure/network"
)

var DetectorService types.DetectorServiceType

func InitialiseDetectorService() {
	DetectorService = &RemoteDetector{
		Network: &network.NetworkController{
			BaseUrl: os.Getenv("FACE_DETECTOR_BASE_URL"),
		},
	}
}
