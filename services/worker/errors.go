package worker

import "fmt"

// CompanyCodeError signals a join code that resolves to no active
// company. The message carries the guidance shown to applicants.
type CompanyCodeError struct {
	Code string
}

func (e CompanyCodeError) Error() string {
	return fmt.Sprintf("no company found for join code %q; check the code on your staff invite or ask your manager for the current one", e.Code)
}

// DuplicateRegistrationError signals an application already in flight for
// this email at this company.
type DuplicateRegistrationError struct {
	Email string
}

func (e DuplicateRegistrationError) Error() string {
	return fmt.Sprintf("a registration for %s is already pending at this company", e.Email)
}

// RegistrationStateError signals a review action against a request that
// is not in a reviewable state.
type RegistrationStateError struct {
	Reason string
}

func (e RegistrationStateError) Error() string {
	return e.Reason
}
