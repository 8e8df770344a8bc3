package queue_tasks

import (
	"context"
	"os"
	"strconv"
	"time"

	"github.com/hibiken/asynq"

	"liveface.io/application/repository"
	"liveface.io/infrastructure/logger"
	mq_types "liveface.io/infrastructure/message_queue/types"
)

var HandleStaleSessionSweepTaskName mq_types.Queues = "sweep_stale_sessions"

// HandleStaleSessionSweepTask removes unfinished liveness sessions that have
// been idle past the configured window. Finished sessions are kept as the
// verification record.
func HandleStaleSessionSweepTask(ctx context.Context, t *asynq.Task) error {
	idleHours := 24
	if raw := os.Getenv("SESSION_IDLE_HOURS"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			idleHours = parsed
		}
	}
	cutoff := time.Now().Add(-time.Duration(idleHours) * time.Hour)

	deleted, err := repository.LivenessSessionRepo().DeleteByFilter(ctx, map[string]interface{}{
		"finished": false,
		"updatedAt": map[string]interface{}{
			"$lt": cutoff,
		},
	})
	if err != nil {
		return err
	}
	if deleted > 0 {
		logger.Info("swept stale liveness sessions", logger.LoggerOptions{
			Key:  "count",
			Data: deleted,
		})
	}
	return nil
}
