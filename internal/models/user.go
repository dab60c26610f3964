package models

import "time"

// UserRole represents the available roles for the role guard.
type UserRole string

const (
	RoleStudent    UserRole = "student"
	RoleInstructor UserRole = "instructor"
	RoleAdmin      UserRole = "admin"
)

// User is an account keyed by email. Signup is idempotent on the email;
// the role is only ever changed through the admin promotion endpoints.
type User struct {
	ID        string    `bson:"_id" json:"_id"`
	Email     string    `bson:"email" json:"email"`
	Name      string    `bson:"name" json:"name"`
	PhotoURL  string    `bson:"photoURL,omitempty" json:"photoURL,omitempty"`
	Role      UserRole  `bson:"role" json:"role"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
