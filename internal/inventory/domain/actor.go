package domain

import "github.com/tair/warehouse-inventory/pkg/auth"

// Roles
const (
	RoleAdmin = auth.RoleAdmin
	RoleUser  = auth.RoleUser
)

// SystemActorID attributes mutations that did not originate from a user
const SystemActorID = "system"

// Actor identifies who performs a mutation
type Actor struct {
	ID   string
	Role string
}

// IsAdmin checks if the actor has the admin role
func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// ActorFromClaims builds the actor of an authenticated request
func ActorFromClaims(claims *auth.Claims) Actor {
	if claims == nil {
		return Actor{}
	}
	return Actor{ID: claims.UserID, Role: claims.Role}
}
