// Package httpkit provides HTTP utilities including identity abstraction.
package httpkit

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Identity represents the authenticated user's identity as extracted from
// the access token. Handlers convert it to an explicit caller value before
// invoking the engine; engine code never touches the web framework.
type Identity interface {
	// UserID returns the authenticated user's ID.
	UserID() uuid.UUID
	// RoleName returns the raw role name from the token, unnormalized.
	RoleName() string
	// IsAuthenticated returns true if the user is authenticated.
	IsAuthenticated() bool
}

type identity struct {
	userID        uuid.UUID
	roleName      string
	authenticated bool
}

func (i *identity) UserID() uuid.UUID { return i.userID }

func (i *identity) RoleName() string { return i.roleName }

func (i *identity) IsAuthenticated() bool { return i.authenticated }

// Anonymous returns an unauthenticated identity.
func Anonymous() Identity {
	return &identity{}
}

// GetIdentity extracts the Identity from a Gin context.
// Returns an unauthenticated identity if user info is not present.
func GetIdentity(c *gin.Context) Identity {
	userID, userOK := c.Get(ContextUserIDKey)
	roleName, roleOK := c.Get(ContextRoleKey)

	if !userOK {
		return &identity{}
	}

	uid, ok := userID.(uuid.UUID)
	if !ok {
		return &identity{}
	}

	var role string
	if roleOK {
		role, _ = roleName.(string)
	}

	return &identity{
		userID:        uid,
		roleName:      role,
		authenticated: true,
	}
}

// MustGetIdentity extracts the Identity from a Gin context.
// If the user is not authenticated, it aborts with 401 Unauthorized and
// returns nil.
func MustGetIdentity(c *gin.Context) Identity {
	id := GetIdentity(c)
	if !id.IsAuthenticated() {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return nil
	}
	return id
}
