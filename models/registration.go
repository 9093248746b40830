package models

import "time"

// Registration request states.
const (
	RegistrationPending  = "pending"
	RegistrationApproved = "approved"
	RegistrationRejected = "rejected"
)

// RegistrationRequest is a would-be worker waiting for email verification
// and a manager's decision. The password is hashed at submission; no
// plaintext is ever stored.
type RegistrationRequest struct {
	ID           string    `bson:"id" json:"id"`
	CompanyID    string    `bson:"companyId" json:"companyId"`
	EnteredCode  string    `bson:"enteredCode" json:"enteredCode"`
	Email        string    `bson:"email" json:"email"`
	FirstName    string    `bson:"firstName" json:"firstName"`
	LastName     string    `bson:"lastName" json:"lastName"`
	Phone        string    `bson:"phone,omitempty" json:"phone,omitempty"`
	Function     string    `bson:"function" json:"function"`
	PasswordHash string    `bson:"passwordHash" json:"-"`
	Status       string    `bson:"status" json:"status"`
	// VerificationToken is emailed to the applicant; the request only
	// reaches a manager's queue once it has been used.
	VerificationToken string    `bson:"verificationToken" json:"-"`
	EmailVerified     bool      `bson:"emailVerified" json:"emailVerified"`
	ReviewedBy        string    `bson:"reviewedBy,omitempty" json:"reviewedBy,omitempty"`
	ReviewedAt        time.Time `bson:"reviewedAt,omitempty" json:"reviewedAt,omitempty"`
	RejectionReason   string    `bson:"rejectionReason,omitempty" json:"rejectionReason,omitempty"`
	CreatedAt         time.Time `bson:"createdAt" json:"createdAt"`
}
