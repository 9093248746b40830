package workerRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"shiftwise/database"
	"shiftwise/models"
)

// MongoWorkerRepo implements WorkerRepository using MongoDB.
type MongoWorkerRepo struct {
	coll *mongo.Collection
}

// NewMongoWorkerRepo creates a new instance of WorkerRepository using MongoDB.
func NewMongoWorkerRepo() WorkerRepository {
	repo := &MongoWorkerRepo{coll: database.Collection("workers")}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

// newContext creates a context with the given timeout.
func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// ensureIndexes creates indexes for fields frequently used in queries.
func (r *MongoWorkerRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "companyId", Value: 1}}},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create worker indexes: %w", err)
	}
	return nil
}

// --- Projection-based Helper Methods ---

// GetByIDWithProjection retrieves a worker by its unique ID using a projection.
// Pass nil for projection to retrieve the full document.
func (r *MongoWorkerRepo) GetByIDWithProjection(id string, projection bson.M) (*models.Worker, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	opts := options.FindOne()
	if projection != nil {
		opts.SetProjection(projection)
	}

	var worker models.Worker
	if err := r.coll.FindOne(ctx, bson.M{"id": id}, opts).Decode(&worker); err != nil {
		return nil, fmt.Errorf("failed to fetch worker with id %s: %w", id, err)
	}
	return &worker, nil
}

// GetByEmailWithProjection retrieves a worker by its email using a projection.
// Pass nil for projection to retrieve the full document.
func (r *MongoWorkerRepo) GetByEmailWithProjection(email string, projection bson.M) (*models.Worker, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	opts := options.FindOne()
	if projection != nil {
		opts.SetProjection(projection)
	}

	var worker models.Worker
	if err := r.coll.FindOne(ctx, bson.M{"email": email}, opts).Decode(&worker); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch worker with email %s: %w", email, err)
	}
	return &worker, nil
}

// --- Exported Methods that Satisfy the WorkerRepository Interface ---

// GetByID retrieves a worker by its unique ID (full document).
func (r *MongoWorkerRepo) GetByID(id string) (*models.Worker, error) {
	return r.GetByIDWithProjection(id, nil)
}

// GetByEmail retrieves a worker by its email address (full document).
func (r *MongoWorkerRepo) GetByEmail(email string) (*models.Worker, error) {
	return r.GetByEmailWithProjection(email, nil)
}

// GetByUsername retrieves a worker by username.
func (r *MongoWorkerRepo) GetByUsername(username string) (*models.Worker, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var worker models.Worker
	if err := r.coll.FindOne(ctx, bson.M{"username": username}).Decode(&worker); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch worker with username %s: %w", username, err)
	}
	return &worker, nil
}

// GetByCompany retrieves all workers in a company.
func (r *MongoWorkerRepo) GetByCompany(companyID string) ([]models.Worker, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "employeeNumber", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{"companyId": companyID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve workers: %w", err)
	}
	defer cursor.Close(ctx)

	var workers []models.Worker
	for cursor.Next(ctx) {
		var w models.Worker
		if err := cursor.Decode(&w); err != nil {
			return nil, fmt.Errorf("failed to decode worker: %w", err)
		}
		workers = append(workers, w)
	}
	return workers, nil
}

// CountByCompany counts all workers ever created in a company.
func (r *MongoWorkerRepo) CountByCompany(companyID string) (int64, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	count, err := r.coll.CountDocuments(ctx, bson.M{"companyId": companyID})
	if err != nil {
		return 0, fmt.Errorf("failed to count workers: %w", err)
	}
	return count, nil
}

// Create inserts a new worker document.
func (r *MongoWorkerRepo) Create(worker *models.Worker) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	worker.CreatedAt = now
	worker.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, worker); err != nil {
		return fmt.Errorf("failed to create worker: %w", err)
	}
	return nil
}

// Update replaces an existing worker document.
func (r *MongoWorkerRepo) Update(worker *models.Worker) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	worker.UpdatedAt = time.Now()

	result, err := r.coll.ReplaceOne(ctx, bson.M{"id": worker.ID}, worker)
	if err != nil {
		return fmt.Errorf("failed to update worker with id %s: %w", worker.ID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("worker with id %s not found", worker.ID)
	}
	return nil
}

// Delete removes a worker document by its ID.
func (r *MongoWorkerRepo) Delete(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete worker with id %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("worker with id %s not found", id)
	}
	return nil
}
