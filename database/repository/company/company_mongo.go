package companyRepo

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

// MongoCompanyRepo implements CompanyRepository using MongoDB.
type MongoCompanyRepo struct {
	coll *mongo.Collection
}

// NewMongoCompanyRepo creates a new instance of CompanyRepository using MongoDB.
func NewMongoCompanyRepo() CompanyRepository {
	repo := &MongoCompanyRepo{coll: database.Collection("companies")}

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
// The join code is unique so code generation can rely on the insert
// failing instead of checking first.
func (r *MongoCompanyRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "code", Value: 1}}, Options: options.Index().SetUnique(true)},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create company indexes: %w", err)
	}
	return nil
}

// GetByID retrieves a company by its unique ID.
func (r *MongoCompanyRepo) GetByID(id string) (*models.Company, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var company models.Company
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&company); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch company with id %s: %w", id, err)
	}
	return &company, nil
}

// GetByCode retrieves a company by join code.
func (r *MongoCompanyRepo) GetByCode(code string) (*models.Company, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var company models.Company
	if err := r.coll.FindOne(ctx, bson.M{"code": code}).Decode(&company); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch company with code %s: %w", code, err)
	}
	return &company, nil
}

// Create inserts a new company document. IsDuplicateKeyError surfaces
// unchanged so the service can retry with a fresh join code.
func (r *MongoCompanyRepo) Create(company *models.Company) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	company.CreatedAt = now
	company.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, company); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return err
		}
		return fmt.Errorf("failed to create company: %w", err)
	}
	return nil
}

// Update replaces an existing company document.
func (r *MongoCompanyRepo) Update(company *models.Company) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	company.UpdatedAt = time.Now()

	result, err := r.coll.ReplaceOne(ctx, bson.M{"id": company.ID}, company)
	if err != nil {
		return fmt.Errorf("failed to update company with id %s: %w", company.ID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("company with id %s not found", company.ID)
	}
	return nil
}
