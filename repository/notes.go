package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"colornotes/middleware"
	"colornotes/model"
	"colornotes/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

type NotesRepo struct {
	MongoCollection *mongo.Collection
	// OpTimeout bounds every store call; zero means the caller's context only.
	OpTimeout time.Duration
	// now is replaced in tests.
	now func() time.Time
}

// NewNotesRepo binds a repository to the named database and collection.
func NewNotesRepo(client *mongo.Client, database, collection string, opTimeout time.Duration) *NotesRepo {
	return &NotesRepo{
		MongoCollection: client.Database(database).Collection(collection),
		OpTimeout:       opTimeout,
	}
}

func (r *NotesRepo) context(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.OpTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, r.OpTimeout)
}

// Mongo stores datetimes with millisecond precision; truncating here keeps
// the returned note identical to what a later read decodes.
func (r *NotesRepo) timestamp() time.Time {
	now := time.Now
	if r.now != nil {
		now = r.now
	}
	return now().UTC().Truncate(time.Millisecond)
}

func (r *NotesRepo) collectionName() string {
	return r.MongoCollection.Name()
}

// Insert stores a new note and returns it with its generated id and
// timestamps.
func (r *NotesRepo) Insert(ctx context.Context, input model.NoteInput) (*model.Note, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, model.NewValidationError("title", "is required")
	}
	if strings.TrimSpace(input.Content) == "" {
		return nil, model.NewValidationError("content", "is required")
	}

	now := r.timestamp()
	note := &model.Note{
		ID:        utils.NewNoteID(),
		Title:     input.Title,
		Content:   input.Content,
		Color:     model.NormalizeColor(input.Color),
		CreatedAt: now,
		UpdatedAt: now,
	}

	ctx, cancel := r.context(ctx)
	defer cancel()
	timer := middleware.TrackDBOperation("insert", r.collectionName())
	defer timer.ObserveDuration()

	if _, err := r.MongoCollection.InsertOne(ctx, note); err != nil {
		return nil, &model.StoreError{Op: "insert", Err: err}
	}
	return note, nil
}

// FindAll returns every note in insertion order.
func (r *NotesRepo) FindAll(ctx context.Context) ([]*model.Note, error) {
	ctx, cancel := r.context(ctx)
	defer cancel()
	timer := middleware.TrackDBOperation("find_all", r.collectionName())
	defer timer.ObserveDuration()

	opts := options.Find().SetSort(bson.D{
		{Key: "created_at", Value: 1},
		{Key: "_id", Value: 1},
	})

	cursor, err := r.MongoCollection.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, &model.StoreError{Op: "find", Err: err}
	}
	defer cursor.Close(ctx)

	notes := make([]*model.Note, 0)
	if err = cursor.All(ctx, &notes); err != nil {
		return nil, &model.StoreError{Op: "find", Err: err}
	}
	return notes, nil
}

// FindByID retrieves a single note.
func (r *NotesRepo) FindByID(ctx context.Context, id string) (*model.Note, error) {
	ctx, cancel := r.context(ctx)
	defer cancel()
	timer := middleware.TrackDBOperation("find_one", r.collectionName())
	defer timer.ObserveDuration()

	var note model.Note
	err := r.MongoCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&note)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, model.ErrNoteNotFound
		}
		return nil, &model.StoreError{Op: "find_one", Err: err}
	}
	return &note, nil
}

// UpdateByID replaces the mutable fields of a note and returns the updated
// document.
func (r *NotesRepo) UpdateByID(ctx context.Context, id string, input model.NoteInput) (*model.Note, error) {
	ctx, cancel := r.context(ctx)
	defer cancel()
	timer := middleware.TrackDBOperation("update", r.collectionName())
	defer timer.ObserveDuration()

	update := bson.M{
		"$set": bson.M{
			"title":      input.Title,
			"content":    input.Content,
			"color":      model.NormalizeColor(input.Color),
			"updated_at": r.timestamp(),
		},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var note model.Note
	err := r.MongoCollection.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&note)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, model.ErrNoteNotFound
		}
		return nil, &model.StoreError{Op: "update", Err: err}
	}
	return &note, nil
}

// DeleteByID removes a note.
func (r *NotesRepo) DeleteByID(ctx context.Context, id string) error {
	ctx, cancel := r.context(ctx)
	defer cancel()
	timer := middleware.TrackDBOperation("delete", r.collectionName())
	defer timer.ObserveDuration()

	result, err := r.MongoCollection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return &model.StoreError{Op: "delete", Err: err}
	}
	if result.DeletedCount == 0 {
		return model.ErrNoteNotFound
	}
	return nil
}

// Count returns the number of stored notes.
func (r *NotesRepo) Count(ctx context.Context) (int, error) {
	ctx, cancel := r.context(ctx)
	defer cancel()

	count, err := r.MongoCollection.CountDocuments(ctx, bson.D{})
	if err != nil {
		return 0, &model.StoreError{Op: "count", Err: err}
	}
	return int(count), nil
}

// Ping checks that the primary is reachable.
func (r *NotesRepo) Ping(ctx context.Context) error {
	ctx, cancel := r.context(ctx)
	defer cancel()

	if err := r.MongoCollection.Database().Client().Ping(ctx, readpref.Primary()); err != nil {
		return &model.StoreError{Op: "ping", Err: err}
	}
	return nil
}

// PoolStats reports connection pool activity for the health endpoint.
func (r *NotesRepo) PoolStats() utils.MongoMetrics {
	return utils.GetMongoMetrics()
}
