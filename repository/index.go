package repository

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// SetupIndexes creates the indexes the notes collection relies on. Creating
// an index that already exists with the same options is a no-op.
func SetupIndexes(ctx context.Context, coll *mongo.Collection) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	noteIndexes := []mongo.IndexModel{
		// Listing order
		{
			Keys: bson.D{
				{Key: "created_at", Value: 1},
				{Key: "_id", Value: 1},
			},
			Options: options.Index().
				SetName("notes_created_order"),
		},
	}

	names, err := coll.Indexes().CreateMany(ctx, noteIndexes)
	if err != nil {
		return fmt.Errorf("failed to create notes indexes: %w", err)
	}

	slog.Info("Successfully created indexes", "collection", coll.Name(), "indexes", names)
	return nil
}
