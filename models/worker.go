package models

import (
	"strings"
	"time"
)

// Access roles, ordered from least to most privileged.
const (
	RoleEmployee        = "employee"
	RoleShiftSupervisor = "shift_supervisor"
	RoleManager         = "manager"
	RoleOwner           = "owner"
)

// Restaurant functions a worker can be hired for.
const (
	FunctionServer    = "server"
	FunctionKitchen   = "kitchen"
	FunctionBartender = "bartender"
	FunctionHost      = "host"
	FunctionCleaner   = "cleaner"
	FunctionDelivery  = "delivery"
	FunctionManager   = "manager"
)

var functionRoles = map[string]string{
	FunctionServer:    RoleEmployee,
	FunctionKitchen:   RoleEmployee,
	FunctionBartender: RoleEmployee,
	FunctionHost:      RoleEmployee,
	FunctionCleaner:   RoleEmployee,
	FunctionDelivery:  RoleEmployee,
	FunctionManager:   RoleManager,
}

// ValidFunction reports whether the given function is one a worker can
// register with.
func ValidFunction(function string) bool {
	_, ok := functionRoles[function]
	return ok
}

// RoleForFunction maps a hired function onto the access role it implies.
// Unknown functions fall back to plain employee.
func RoleForFunction(function string) string {
	if role, ok := functionRoles[function]; ok {
		return role
	}
	return RoleEmployee
}

// Worker is an approved member of a company's staff.
type Worker struct {
	ID             string    `bson:"id" json:"id"`
	CompanyID      string    `bson:"companyId" json:"companyId"`
	Username       string    `bson:"username" json:"username"`
	Email          string    `bson:"email" json:"email"`
	FirstName      string    `bson:"firstName" json:"firstName"`
	LastName       string    `bson:"lastName" json:"lastName"`
	Phone          string    `bson:"phone,omitempty" json:"phone,omitempty"`
	Function       string    `bson:"function" json:"function"`
	Role           string    `bson:"role" json:"role"`
	EmployeeNumber string    `bson:"employeeNumber" json:"employeeNumber"`
	HourlyRate     float64   `bson:"hourlyRate,omitempty" json:"hourlyRate,omitempty"`
	HireDate       string    `bson:"hireDate,omitempty" json:"hireDate,omitempty"`
	Approved       bool      `bson:"approved" json:"approved"`
	ApprovedBy     string    `bson:"approvedBy,omitempty" json:"approvedBy,omitempty"`
	ApprovedAt     time.Time `bson:"approvedAt,omitempty" json:"approvedAt,omitempty"`
	Avatar         string    `bson:"avatar,omitempty" json:"avatar,omitempty"`
	FCMToken       string    `bson:"fcmToken,omitempty" json:"-"`
	PasswordHash   string    `bson:"passwordHash" json:"-"`
	TokenHash      string    `bson:"tokenHash,omitempty" json:"-"`
	Active         bool      `bson:"active" json:"active"`
	CreatedAt      time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time `bson:"updatedAt" json:"updatedAt"`
}

// FullName joins the worker's names, falling back to the username.
func (w Worker) FullName() string {
	name := strings.TrimSpace(w.FirstName + " " + w.LastName)
	if name == "" {
		return w.Username
	}
	return name
}

// IsManagerOrAbove reports whether the worker holds a managing role.
func (w Worker) IsManagerOrAbove() bool {
	return w.Role == RoleManager || w.Role == RoleOwner
}

// CanApproveWorkers reports whether the worker may review registration
// requests. Only approved managers and owners qualify.
func (w Worker) CanApproveWorkers() bool {
	return w.IsManagerOrAbove() && w.Approved
}
