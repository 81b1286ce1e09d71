package config

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/nagrik-seva/app-docvault/internal/logging"
	"github.com/nagrik-seva/app-docvault/internal/redisclient"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.opentelemetry.io/contrib/instrumentation/go.mongodb.org/mongo-driver/mongo/otelmongo"
	"go.uber.org/zap"
)

var (
	// MongoDB client
	MongoDB *mongo.Database
	// Redis client
	Redis *redisclient.Client
)

// InitMongoDB initializes the MongoDB connection
func InitMongoDB() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	opts := options.Client().
		ApplyURI(AppConfig.MongoURI).
		SetMonitor(otelmongo.NewMonitor()).
		SetMaxPoolSize(100).
		SetMinPoolSize(10).
		SetMaxConnIdleTime(5 * time.Minute).
		SetRetryWrites(true).
		SetRetryReads(true)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		log.Fatal(err)
	}

	// Ping the database
	err = client.Ping(ctx, readpref.Primary())
	if err != nil {
		log.Fatal(err)
	}

	MongoDB = client.Database(AppConfig.MongoDatabase)

	if err := ensureIndexes(); err != nil {
		logging.Logger.Error("failed to ensure indexes on startup", zap.Error(err))
	}

	logging.Logger.Info("connected to MongoDB",
		zap.String("uri", maskMongoURI(AppConfig.MongoURI)),
		zap.String("database", AppConfig.MongoDatabase),
	)
}

// InitRedis initializes the Redis connection
func InitRedis() {
	redisClient := redis.NewClient(&redis.Options{
		Addr:         AppConfig.RedisURI,
		Password:     AppConfig.RedisPassword,
		DB:           AppConfig.RedisDB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 5,
	})

	// Wrap with traced client
	Redis = redisclient.NewClient(redisClient)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := Redis.Ping(ctx).Err(); err != nil {
		logging.Logger.Error("failed to connect to Redis",
			zap.String("uri", AppConfig.RedisURI),
			zap.Error(err))
		return
	}

	logging.Logger.Info("connected to Redis",
		zap.String("uri", AppConfig.RedisURI))
}

// maskMongoURI masks credentials in a MongoDB URI
func maskMongoURI(uri string) string {
	at := strings.LastIndex(uri, "@")
	if at == -1 {
		return uri
	}
	return "mongodb://****:****@" + uri[at+1:]
}

// ensureIndexes creates required indexes if they don't exist
func ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	unique := options.Index().SetUnique(true)

	indexes := map[string][]mongo.IndexModel{
		AppConfig.CitizenCollection: {
			{Keys: bson.D{{Key: "national_id", Value: 1}}, Options: unique},
		},
		AppConfig.AdminCollection: {
			{Keys: bson.D{{Key: "employee_id", Value: 1}}, Options: unique},
		},
		AppConfig.DocumentCollection: {
			// A document's identifying number is globally unique per type
			{Keys: bson.D{{Key: "document_type", Value: 1}, {Key: "number", Value: 1}}, Options: unique},
			// At most one document of each type per citizen
			{Keys: bson.D{{Key: "citizen_id", Value: 1}, {Key: "document_type", Value: 1}}, Options: unique},
		},
		AppConfig.ChangeRequestCollection: {
			{Keys: bson.D{{Key: "reference_id", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "status", Value: 1}, {Key: "submitted_at", Value: 1}}},
			{Keys: bson.D{{Key: "citizen_id", Value: 1}, {Key: "submitted_at", Value: 1}}},
		},
		AppConfig.FieldCounterCollection: {
			{Keys: bson.D{{Key: "citizen_id", Value: 1}, {Key: "document_type", Value: 1}, {Key: "field_name", Value: 1}}, Options: unique},
		},
	}

	for collection, models := range indexes {
		if _, err := MongoDB.Collection(collection).Indexes().CreateMany(ctx, models); err != nil {
			return err
		}
		logging.Logger.Info("ensured indexes", zap.String("collection", collection))
	}

	return nil
}
