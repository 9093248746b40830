package availabilityRepo

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

// MongoAvailabilityRepo implements AvailabilityRepository using MongoDB.
type MongoAvailabilityRepo struct {
	coll *mongo.Collection
}

// NewMongoAvailabilityRepo creates a new instance of AvailabilityRepository using MongoDB.
func NewMongoAvailabilityRepo() AvailabilityRepository {
	repo := &MongoAvailabilityRepo{coll: database.Collection("availability")}

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
func (r *MongoAvailabilityRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{
			Keys:    bson.D{{Key: "workerId", Value: 1}, {Key: "date", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "companyId", Value: 1}, {Key: "date", Value: 1}}},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create availability indexes: %w", err)
	}
	return nil
}

// Upsert creates or replaces the worker's record for one date.
func (r *MongoAvailabilityRepo) Upsert(rec *models.AvailabilityRecord) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = now
	}
	rec.UpdatedAt = now

	filter := bson.M{"workerId": rec.WorkerID, "date": rec.Date}
	opts := options.Replace().SetUpsert(true)

	if _, err := r.coll.ReplaceOne(ctx, filter, rec, opts); err != nil {
		// Two racing upserts for a brand-new day can both miss the filter
		// and try to insert; the unique index rejects the loser. Retrying
		// once turns the loser into a plain replace.
		if mongo.IsDuplicateKeyError(err) {
			if _, rerr := r.coll.ReplaceOne(ctx, filter, rec); rerr == nil {
				return nil
			}
		}
		return fmt.Errorf("failed to upsert availability: %w", err)
	}
	return nil
}

// GetByWorkerAndDate retrieves one record, nil when the day is unset.
func (r *MongoAvailabilityRepo) GetByWorkerAndDate(workerID, date string) (*models.AvailabilityRecord, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var rec models.AvailabilityRecord
	err := r.coll.FindOne(ctx, bson.M{"workerId": workerID, "date": date}).Decode(&rec)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch availability: %w", err)
	}
	return &rec, nil
}

// find runs a filtered query sorted by date.
func (r *MongoAvailabilityRepo) find(filter bson.M) ([]models.AvailabilityRecord, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}})

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve availability records: %w", err)
	}
	defer cursor.Close(ctx)

	var records []models.AvailabilityRecord
	for cursor.Next(ctx) {
		var rec models.AvailabilityRecord
		if err := cursor.Decode(&rec); err != nil {
			return nil, fmt.Errorf("failed to decode availability record: %w", err)
		}
		records = append(records, rec)
	}
	return records, nil
}

// GetByWorkerAndDateRange retrieves records with from <= date <= to.
func (r *MongoAvailabilityRepo) GetByWorkerAndDateRange(workerID, from, to string) ([]models.AvailabilityRecord, error) {
	return r.find(bson.M{
		"workerId": workerID,
		"date":     bson.M{"$gte": from, "$lte": to},
	})
}

// GetByCompanyAndDateRange retrieves all company records in the range.
func (r *MongoAvailabilityRepo) GetByCompanyAndDateRange(companyID, from, to string) ([]models.AvailabilityRecord, error) {
	return r.find(bson.M{
		"companyId": companyID,
		"date":      bson.M{"$gte": from, "$lte": to},
	})
}

// Delete removes the worker's record for one date.
func (r *MongoAvailabilityRepo) Delete(workerID, date string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, bson.M{"workerId": workerID, "date": date})
	if err != nil {
		return fmt.Errorf("failed to delete availability: %w", err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("no availability record for worker %s on %s", workerID, date)
	}
	return nil
}
