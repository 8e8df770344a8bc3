package startup

import (
	"liveface.io/application/services/liveness"
	"liveface.io/infrastructure/biometric"
	"liveface.io/infrastructure/database"
	"liveface.io/infrastructure/database/connection/datastore"
	"liveface.io/infrastructure/logger"
	messagequeue "liveface.io/infrastructure/message_queue"
)

// Used to start services such as loggers, databases, queues, etc.
func StartServices() {
	logger.InitializeLogger()
	database.SetUpDatabase()
	biometric.InitialiseDetectorService()
	liveness.InitialiseEngine()
	go messagequeue.StartQueue()
}

// Used to clean up after services that have been shutdown.
func CleanUpServices() {
	datastore.CleanUp()
}
