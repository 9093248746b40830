package models

import "time"

// Company is one restaurant tenant. Workers join by quoting its code
// during registration.
type Company struct {
	ID           string    `bson:"id" json:"id"`
	Name         string    `bson:"name" json:"name"`
	Code         string    `bson:"code" json:"code"` // 4-8 chars, uppercase, unique
	Address      string    `bson:"address,omitempty" json:"address,omitempty"`
	Phone        string    `bson:"phone,omitempty" json:"phone,omitempty"`
	Email        string    `bson:"email,omitempty" json:"email,omitempty"`
	CuisineType  string    `bson:"cuisineType,omitempty" json:"cuisineType,omitempty"`
	MaxEmployees int       `bson:"maxEmployees" json:"maxEmployees"`
	Active       bool      `bson:"active" json:"active"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt" json:"updatedAt"`
}
