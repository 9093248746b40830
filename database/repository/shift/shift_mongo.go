package shiftRepo

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

// dayLockTTL bounds how long a crashed writer can hold a worker-day lock.
// Mongo's TTL monitor runs about once a minute, so the practical ceiling
// is lockTTL plus that sweep interval.
const dayLockTTL = 30 * time.Second

// MongoShiftRepo implements ShiftRepository using MongoDB.
type MongoShiftRepo struct {
	coll  *mongo.Collection
	locks *mongo.Collection
}

// NewMongoShiftRepo creates a new instance of ShiftRepository using MongoDB.
func NewMongoShiftRepo() ShiftRepository {
	repo := &MongoShiftRepo{
		coll:  database.Collection("shifts"),
		locks: database.Collection("shift_day_locks"),
	}

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
func (r *MongoShiftRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "workerId", Value: 1}, {Key: "date", Value: 1}}},
		{Keys: bson.D{{Key: "companyId", Value: 1}, {Key: "date", Value: 1}}},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create shift indexes: %w", err)
	}

	// Lock documents use the worker-day as _id, so concurrent acquirers
	// collide on the primary key. The TTL index reaps abandoned locks.
	ttl := mongo.IndexModel{
		Keys:    bson.D{{Key: "expiresAt", Value: 1}},
		Options: options.Index().SetExpireAfterSeconds(0),
	}
	if _, err := r.locks.Indexes().CreateOne(ctx, ttl); err != nil {
		return fmt.Errorf("failed to create lock TTL index: %w", err)
	}
	return nil
}

func dayLockID(workerID, date string) string {
	return workerID + ":" + date
}

// AcquireDayLock inserts the advisory lock document for one worker-day.
func (r *MongoShiftRepo) AcquireDayLock(workerID, date string) (bool, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	_, err := r.locks.InsertOne(ctx, bson.M{
		"_id":       dayLockID(workerID, date),
		"createdAt": now,
		"expiresAt": now.Add(dayLockTTL),
	})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to acquire day lock: %w", err)
	}
	return true, nil
}

// ReleaseDayLock removes the advisory lock document.
func (r *MongoShiftRepo) ReleaseDayLock(workerID, date string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	if _, err := r.locks.DeleteOne(ctx, bson.M{"_id": dayLockID(workerID, date)}); err != nil {
		return fmt.Errorf("failed to release day lock: %w", err)
	}
	return nil
}

// find runs a filtered query sorted by date then start minute.
func (r *MongoShiftRepo) find(filter bson.M) ([]models.Shift, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{
		{Key: "date", Value: 1},
		{Key: "range.start", Value: 1},
		{Key: "createdAt", Value: 1},
	})

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve shifts: %w", err)
	}
	defer cursor.Close(ctx)

	var shifts []models.Shift
	for cursor.Next(ctx) {
		var s models.Shift
		if err := cursor.Decode(&s); err != nil {
			return nil, fmt.Errorf("failed to decode shift: %w", err)
		}
		shifts = append(shifts, s)
	}
	return shifts, nil
}

// GetByID retrieves a shift by its unique ID.
func (r *MongoShiftRepo) GetByID(id string) (*models.Shift, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var shift models.Shift
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&shift); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch shift with id %s: %w", id, err)
	}
	return &shift, nil
}

// GetByWorkerAndDate retrieves all of a worker's shifts on one date.
func (r *MongoShiftRepo) GetByWorkerAndDate(workerID, date string) ([]models.Shift, error) {
	return r.find(bson.M{"workerId": workerID, "date": date})
}

// GetByCompanyAndDate retrieves every shift in a company on one date.
func (r *MongoShiftRepo) GetByCompanyAndDate(companyID, date string) ([]models.Shift, error) {
	return r.find(bson.M{"companyId": companyID, "date": date})
}

// GetByCompanyAndDateRange retrieves company shifts with from <= date <= to.
func (r *MongoShiftRepo) GetByCompanyAndDateRange(companyID, from, to string) ([]models.Shift, error) {
	return r.find(bson.M{
		"companyId": companyID,
		"date":      bson.M{"$gte": from, "$lte": to},
	})
}

// GetByWorkerAndDateRange retrieves a worker's shifts with from <= date <= to.
func (r *MongoShiftRepo) GetByWorkerAndDateRange(workerID, from, to string) ([]models.Shift, error) {
	return r.find(bson.M{
		"workerId": workerID,
		"date":     bson.M{"$gte": from, "$lte": to},
	})
}

// Create inserts a new shift document.
func (r *MongoShiftRepo) Create(shift *models.Shift) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	shift.CreatedAt = now
	shift.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, shift); err != nil {
		return fmt.Errorf("failed to create shift: %w", err)
	}
	return nil
}

// Update replaces an existing shift document. A full replace, rather
// than $set, so fields cleared on the edit (a dropped note, a removed
// end time) do not linger in the stored document.
func (r *MongoShiftRepo) Update(shift *models.Shift) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	shift.UpdatedAt = time.Now()

	result, err := r.coll.ReplaceOne(ctx, bson.M{"id": shift.ID}, shift)
	if err != nil {
		return fmt.Errorf("failed to update shift with id %s: %w", shift.ID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("shift with id %s not found", shift.ID)
	}
	return nil
}

// Delete removes a shift document by its ID.
func (r *MongoShiftRepo) Delete(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete shift with id %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("shift with id %s not found", id)
	}
	return nil
}
