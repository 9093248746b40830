package registrationRepo

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

// MongoRegistrationRepo implements RegistrationRepository using MongoDB.
type MongoRegistrationRepo struct {
	coll *mongo.Collection
}

// NewMongoRegistrationRepo creates a new instance of RegistrationRepository using MongoDB.
func NewMongoRegistrationRepo() RegistrationRepository {
	repo := &MongoRegistrationRepo{coll: database.Collection("registrations")}

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
// The (email, companyId) index is unique only over pending documents, so
// a rejected applicant can apply again while a duplicate in-flight
// request is refused.
func (r *MongoRegistrationRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "verificationToken", Value: 1}}},
		{
			Keys: bson.D{{Key: "email", Value: 1}, {Key: "companyId", Value: 1}},
			Options: options.Index().
				SetUnique(true).
				SetPartialFilterExpression(bson.M{"status": models.RegistrationPending}),
		},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create registration indexes: %w", err)
	}
	return nil
}

// GetByID retrieves a request by its unique ID.
func (r *MongoRegistrationRepo) GetByID(id string) (*models.RegistrationRequest, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var req models.RegistrationRequest
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&req); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch registration with id %s: %w", id, err)
	}
	return &req, nil
}

// GetByVerificationToken resolves an email verification link.
func (r *MongoRegistrationRepo) GetByVerificationToken(token string) (*models.RegistrationRequest, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var req models.RegistrationRequest
	if err := r.coll.FindOne(ctx, bson.M{"verificationToken": token}).Decode(&req); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch registration by token: %w", err)
	}
	return &req, nil
}

// GetPendingByCompany lists verified requests awaiting review, oldest first.
func (r *MongoRegistrationRepo) GetPendingByCompany(companyID string) ([]models.RegistrationRequest, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	filter := bson.M{
		"companyId":     companyID,
		"status":        models.RegistrationPending,
		"emailVerified": true,
	}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve pending registrations: %w", err)
	}
	defer cursor.Close(ctx)

	var requests []models.RegistrationRequest
	for cursor.Next(ctx) {
		var req models.RegistrationRequest
		if err := cursor.Decode(&req); err != nil {
			return nil, fmt.Errorf("failed to decode registration: %w", err)
		}
		requests = append(requests, req)
	}
	return requests, nil
}

// Create inserts a new request document. IsDuplicateKeyError surfaces
// unchanged so the service can report the duplicate pending request.
func (r *MongoRegistrationRepo) Create(req *models.RegistrationRequest) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	req.CreatedAt = time.Now()

	if _, err := r.coll.InsertOne(ctx, req); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return err
		}
		return fmt.Errorf("failed to create registration: %w", err)
	}
	return nil
}

// Update replaces an existing request document.
func (r *MongoRegistrationRepo) Update(req *models.RegistrationRequest) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := r.coll.ReplaceOne(ctx, bson.M{"id": req.ID}, req)
	if err != nil {
		return fmt.Errorf("failed to update registration with id %s: %w", req.ID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("registration with id %s not found", req.ID)
	}
	return nil
}
