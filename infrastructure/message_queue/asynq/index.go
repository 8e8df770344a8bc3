package asynq

import (
	"os"
	"time"

	"github.com/hibiken/asynq"

	"liveface.io/infrastructure/logger"
	queue_tasks "liveface.io/infrastructure/message_queue/tasks"
	mq_types "liveface.io/infrastructure/message_queue/types"
)

type AsynqBroker struct {
	Client *asynq.Client
}

func (aq *AsynqBroker) Start() {
	redisConnOpt := asynq.RedisClientOpt{
		Addr:     os.Getenv("REDIS_ADDR"),
		Password: os.Getenv("REDIS_PASSWORD"),
	}

	aq.Client = asynq.NewClient(redisConnOpt)

	scheduler := asynq.NewScheduler(redisConnOpt, nil)
	_, err := scheduler.Register("@every 30m",
		asynq.NewTask(string(queue_tasks.HandleStaleSessionSweepTaskName), nil))
	if err != nil {
		logger.Error("failed to register stale session sweep", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
	}
	go scheduler.Run()

	srv := asynq.NewServer(
		redisConnOpt,
		asynq.Config{
			Concurrency: 20,
			Queues: map[string]int{
				string(mq_types.High):   7,
				string(mq_types.Medium): 2,
				string(mq_types.Low):    1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(string(queue_tasks.HandleEmbeddingCacheInvalidationTaskName), queue_tasks.HandleEmbeddingCacheInvalidationTask)
	mux.HandleFunc(string(queue_tasks.HandleStaleSessionSweepTaskName), queue_tasks.HandleStaleSessionSweepTask)

	srv.Run(mux)
}

func (aq *AsynqBroker) Enqueue(task mq_types.QueueTask) {
	if task.TimeOut == 0 {
		task.TimeOut = 60
	}
	aq.Client.Enqueue(asynq.NewTask(string(task.Name), task.Payload),
		asynq.ProcessIn(time.Duration(task.ProcessIn)*time.Second),
		asynq.MaxRetry(10),
		asynq.Timeout(time.Second*time.Duration(task.TimeOut)),
		asynq.Queue(string(task.Priority)))
}
