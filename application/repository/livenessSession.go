package repository

import (
	"sync"

	"liveface.io/entities"
	"liveface.io/infrastructure/database/connection/datastore"
	"liveface.io/infrastructure/database/repository/mongo"
)

var livenessSessionOnce = sync.Once{}

var livenessSessionRepository mongo.MongoRepository[entities.LivenessSession]

func LivenessSessionRepo() *mongo.MongoRepository[entities.LivenessSession] {
	livenessSessionOnce.Do(func() {
		livenessSessionRepository = mongo.MongoRepository[entities.LivenessSession]{Model: datastore.LivenessSessionModel}
	})
	return &livenessSessionRepository
}
