package auth

import "github.com/golang-jwt/jwt/v5"

// AdminSubject is the only principal this site knows about.
const AdminSubject = "admin"

// AdminClaims represents the typed JWT held in the admin cookie. The
// registered ID (jti) is the session registry key.
type AdminClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}
