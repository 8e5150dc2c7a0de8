package domain

import "github.com/golang-jwt/jwt/v5"

const (
	RoleAdmin  = "admin"
	RoleViewer = "viewer"
)

// Claims identify the caller of the ops API.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}
