package database

import (
	"context"
	"fmt"
	"time"

	"memoria/config"
	"memoria/utils"

	badger "github.com/dgraph-io/badger/v4"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoClient is the MongoDB client instance, nil when the server runs
// against the local store only.
var MongoClient *mongo.Client

// LocalDB is the Badger fallback store, opened only when Mongo is absent.
var LocalDB *badger.DB

// InitDB connects to MongoDB when configured. A missing or unreachable
// Mongo is not fatal: the caller switches the repositories to the local
// fallback store instead.
func InitDB() error {
	if config.AppConfig.DatabaseURL == "" {
		return fmt.Errorf("no database URL configured")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	clientOptions := options.Client().ApplyURI(config.AppConfig.DatabaseURL)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return fmt.Errorf("failed to ping MongoDB: %w", err)
	}
	MongoClient = client
	utils.GetLogger().Info("Connected to MongoDB")
	return nil
}

// InitLocalDB opens the Badger key-value store used as the fallback backend.
func InitLocalDB(path string) error {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil
	db, err := badger.Open(opts)
	if err != nil {
		return fmt.Errorf("failed to open local store at %s: %w", path, err)
	}
	LocalDB = db
	utils.GetLogger().Sugar().Infof("Opened local store at %s", path)
	return nil
}

// CloseDB tears down whichever backends were opened.
func CloseDB() {
	if MongoClient != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = MongoClient.Disconnect(ctx)
	}
	if LocalDB != nil {
		_ = LocalDB.Close()
	}
}
