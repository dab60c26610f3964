package models

import "github.com/golang-jwt/jwt/v5"

// JWTClaims is the access token payload. Email is the identity key the
// role guard resolves against the users collection.
type JWTClaims struct {
	Email string   `json:"email"`
	Role  UserRole `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// TokenResponse is the /jwt response body.
type TokenResponse struct {
	Token string `json:"token"`
}

// RoleCheck is the body of the admin/instructor verification endpoints.
type RoleCheck struct {
	Admin      *bool `json:"admin,omitempty"`
	Instructor *bool `json:"instructor,omitempty"`
}
