package ratelimit

import (
	"encoding/json"
	"os"
	"strconv"
	"time"

	"github.com/didip/tollbooth"
	"github.com/didip/tollbooth/limiter"
	"github.com/didip/tollbooth_gin"
	"github.com/gin-gonic/gin"
)

// TokenBucketPerIP throttles verification bursts per client IP. Frame
// batches are heavy on the detector service, so the ceiling is deliberately
// low and overridable through RATE_LIMIT_PER_SECOND.
func TokenBucketPerIP() gin.HandlerFunc {
	message := map[string]any{
		"message": "You are going too fast! You have been ratelimited.",
	}
	jsonMessage, _ := json.Marshal(message)

	rate := 10.0
	if raw := os.Getenv("RATE_LIMIT_PER_SECOND"); raw != "" {
		if parsed, err := strconv.ParseFloat(raw, 64); err == nil {
			rate = parsed
		}
	}

	tlbthLimiter := tollbooth.NewLimiter(rate, &limiter.ExpirableOptions{
		DefaultExpirationTTL: time.Minute * 1,
	})
	tlbthLimiter.SetMessageContentType("application/json")
	tlbthLimiter.SetMessage(string(jsonMessage))

	return tollbooth_gin.LimitHandler(tlbthLimiter)
}
