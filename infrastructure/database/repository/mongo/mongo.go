package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"liveface.io/infrastructure/logger"
)

const defaultTimeout = 15 * time.Second

func (repo *MongoRepository[T]) CreateOne(ctx context.Context, payload T) (*T, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	parsed := payload.ParseModel().(*T)
	_, err := repo.Model.InsertOne(ctx, parsed)
	if err != nil {
		logger.Error("mongo error occured while running CreateOne", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return nil, err
	}
	return parsed, nil
}

func (repo *MongoRepository[T]) FindOneByFilter(filter map[string]interface{}, opts ...FindOptions) (*T, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	var result T
	err := repo.Model.FindOne(ctx, parseFilter(filter), parseFindOneOptions(opts)...).Decode(&result)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		logger.Error("mongo error occured while running FindOneByFilter", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		}, logger.LoggerOptions{
			Key:  "filter",
			Data: filter,
		})
		return nil, err
	}
	return &result, nil
}

func (repo *MongoRepository[T]) FindManyByFilter(filter map[string]interface{}, opts ...FindOptions) (*[]T, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	cursor, err := repo.Model.Find(ctx, parseFilter(filter), parseFindOptions(opts)...)
	if err != nil {
		logger.Error("mongo error occured while running FindManyByFilter", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		}, logger.LoggerOptions{
			Key:  "filter",
			Data: filter,
		})
		return nil, err
	}
	results := []T{}
	if err := cursor.All(ctx, &results); err != nil {
		logger.Error("mongo error occured while decoding FindManyByFilter results", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return nil, err
	}
	return &results, nil
}

func (repo *MongoRepository[T]) CountDocs(filter map[string]interface{}) (int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	count, err := repo.Model.CountDocuments(ctx, parseFilter(filter))
	if err != nil {
		logger.Error("mongo error occured while running CountDocs", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return 0, err
	}
	return count, nil
}

func (repo *MongoRepository[T]) UpdatePartialByFilter(ctx context.Context, filter map[string]interface{}, update map[string]interface{}) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	result, err := repo.Model.UpdateOne(ctx, parseFilter(filter), bson.M{"$set": update})
	if err != nil {
		logger.Error("mongo error occured while running UpdatePartialByFilter", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return false, err
	}
	return result.MatchedCount > 0, nil
}

// UpsertByFilter replaces the matching document with payload, inserting it if
// no document matches. The write is a single atomic operation.
func (repo *MongoRepository[T]) UpsertByFilter(ctx context.Context, filter map[string]interface{}, payload T) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	parsed := payload.ParseModel().(*T)
	_, err := repo.Model.ReplaceOne(ctx, parseFilter(filter), parsed, options.Replace().SetUpsert(true))
	if err != nil {
		logger.Error("mongo error occured while running UpsertByFilter", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		}, logger.LoggerOptions{
			Key:  "filter",
			Data: filter,
		})
		return err
	}
	return nil
}

func (repo *MongoRepository[T]) DeleteByFilter(ctx context.Context, filter map[string]interface{}) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	result, err := repo.Model.DeleteMany(ctx, parseFilter(filter))
	if err != nil {
		logger.Error("mongo error occured while running DeleteByFilter", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return 0, err
	}
	return result.DeletedCount, nil
}

func parseFilter(filter map[string]interface{}) bson.M {
	parsed := bson.M{}
	for key, value := range filter {
		parsed[key] = value
	}
	return parsed
}

func parseFindOneOptions(opts []FindOptions) []*options.FindOneOptions {
	parsed := []*options.FindOneOptions{}
	for _, opt := range opts {
		o := options.FindOne()
		if opt.Projection != nil {
			o.SetProjection(*opt.Projection)
		}
		if opt.Sort != nil {
			o.SetSort(*opt.Sort)
		}
		if opt.Skip != nil {
			o.SetSkip(*opt.Skip)
		}
		parsed = append(parsed, o)
	}
	return parsed
}

func parseFindOptions(opts []FindOptions) []*options.FindOptions {
	parsed := []*options.FindOptions{}
	for _, opt := range opts {
		o := options.Find()
		if opt.Projection != nil {
			o.SetProjection(*opt.Projection)
		}
		if opt.Sort != nil {
			o.SetSort(*opt.Sort)
		}
		if opt.Skip != nil {
			o.SetSkip(*opt.Skip)
		}
		if opt.Limit != nil {
			o.SetLimit(*opt.Limit)
		}
		parsed = append(parsed, o)
	}
	return parsed
}
