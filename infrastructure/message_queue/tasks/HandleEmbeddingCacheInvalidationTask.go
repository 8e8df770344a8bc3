package queue_tasks

import (
	"context"
	"encoding/json"

	"github.com/hibiken/asynq"

	"liveface.io/application/services/liveness"
	"liveface.io/infrastructure/logger"
	mq_types "liveface.io/infrastructure/message_queue/types"
)

var HandleEmbeddingCacheInvalidationTaskName mq_types.Queues = "invalidate_embedding_cache"

// InvalidationPayload is enqueued by enrollment services whenever a
// reference face is added or removed for a user.
type InvalidationPayload struct {
	UserID string
}

func HandleEmbeddingCacheInvalidationTask(ctx context.Context, t *asynq.Task) error {
	var payload InvalidationPayload
	err := json.Unmarshal(t.Payload(), &payload)
	if err != nil {
		logger.Error("an error occured while unmarshalling cache invalidation payload", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return err
	}
	liveness.Service.InvalidateEmbeddings(payload.UserID)
	logger.Info("evicted cached reference embeddings", logger.LoggerOptions{
		Key:  "userID",
		Data: payload.UserID,
	})
	return nil
}
