package liveness

import (
	"os"
	"strconv"
	"time"
)

// Config carries every tunable of the engine. Thresholds deliberately live in
// the environment instead of constants: production values have drifted across
// deployments and need to be adjustable without a rebuild.
type Config struct {
	// similarity
	FaceMatchThreshold float64 // per-frame cosine similarity for a "match"
	BatchMatchRatio    float64 // fraction of matching frames for a batch pass

	// movement detection
	MoveThreshold        float64 // min horizontal center delta in pixels
	StableSizeVariation  float64 // max bbox width ratio change before reset
	StableFramesRequired int     // consecutive frames to confirm a direction
	CenterTolerance      float64 // max fractional offset from image center

	// batch processing
	FrameSkip        int           // keep every Nth frame
	MaxDetectWorkers int           // detection/scoring pool ceiling
	DetectTimeout    time.Duration // per-frame detector budget

	// state lifecycle
	SessionPersistInterval time.Duration // min gap between periodic upserts
	EmbeddingCacheTTL      time.Duration // idle eviction for cached matrices
	TrackingIdleTTL        time.Duration // idle eviction for tracking state
	ChallengeTTL           time.Duration // redis TTL for challenge snapshots
}

func LoadConfig() Config {
	return Config{
		FaceMatchThreshold:     envFloat("FACE_MATCH_THRESHOLD", 0.60),
		BatchMatchRatio:        envFloat("BATCH_MATCH_RATIO", 0.60),
		MoveThreshold:          envFloat("MOVE_THRESHOLD", 25),
		StableSizeVariation:    envFloat("STABLE_SIZE_VARIATION", 0.15),
		StableFramesRequired:   envInt("STABLE_FRAMES_REQUIRED", 3),
		CenterTolerance:        envFloat("CENTER_TOLERANCE", 0.20),
		FrameSkip:              envInt("FRAME_SKIP", 3),
		MaxDetectWorkers:       envInt("MAX_DETECT_WORKERS", 6),
		DetectTimeout:          envDuration("DETECT_TIMEOUT_SECONDS", 10*time.Second),
		SessionPersistInterval: envDuration("SESSION_PERSIST_INTERVAL_SECONDS", 5*time.Second),
		EmbeddingCacheTTL:      envDuration("EMBEDDING_CACHE_TTL_SECONDS", 30*time.Minute),
		TrackingIdleTTL:        envDuration("TRACKING_IDLE_TTL_SECONDS", 10*time.Minute),
		ChallengeTTL:           envDuration("CHALLENGE_TTL_SECONDS", 5*time.Minute),
	}
}

func envFloat(key string, fallback float64) float64 {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fallback
	}
	return value
}

func envInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}

func envDuration(key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	seconds, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return time.Duration(seconds) * time.Second
}
