package repository

import (
	"sync"

	"liveface.io/entities"
	"liveface.io/infrastructure/database/connection/datastore"
	"liveface.io/infrastructure/database/repository/mongo"
)

var faceOnce = sync.Once{}

var faceRepository mongo.MongoRepository[entities.Face]

func FaceRepo() *mongo.MongoRepository[entities.Face] {
	faceOnce.Do(func() {
		faceRepository = mongo.MongoRepository[entities.Face]{Model: datastore.FaceModel}
	})
	return &faceRepository
}
