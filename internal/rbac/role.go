// Package rbac provides role classification for engine operations.
// Every engine operation receives an explicit Caller value; role-dependent
// behavior is decided here and in the services domain package, never by
// ad hoc string checks in handlers.
package rbac

import (
	"strings"

	"github.com/google/uuid"
)

// Role is the normalized caller role.
type Role int

const (
	// RoleUnauthenticated is a caller with no identity at all.
	RoleUnauthenticated Role = iota
	// RoleAdministrador has full read/write scope.
	RoleAdministrador
	// RoleCallCenter has full read/write scope.
	RoleCallCenter
	// RoleOperador is field personnel restricted to services on their route.
	RoleOperador
	// RoleUnknown is an authenticated caller whose role name did not match.
	// It is treated with least privilege, same as RoleUnauthenticated, and
	// exists only so the raw name can be audited.
	RoleUnknown
)

// String returns the role name for logging.
func (r Role) String() string {
	switch r {
	case RoleAdministrador:
		return "administrador"
	case RoleCallCenter:
		return "callcenter"
	case RoleOperador:
		return "operador"
	case RoleUnknown:
		return "unknown"
	default:
		return "unauthenticated"
	}
}

// Classify normalizes a raw role name into a Role. Matching is
// case-insensitive exact match after trimming; an unmatched non-empty name
// yields RoleUnknown.
func Classify(rawRole string, authenticated bool) Role {
	if !authenticated {
		return RoleUnauthenticated
	}

	switch strings.ToLower(strings.TrimSpace(rawRole)) {
	case "administrador":
		return RoleAdministrador
	case "callcenter":
		return RoleCallCenter
	case "operador":
		return RoleOperador
	case "":
		return RoleUnauthenticated
	default:
		return RoleUnknown
	}
}

// Caller is the explicit identity value passed into every engine operation.
type Caller struct {
	UserID  uuid.UUID
	Role    Role
	RawRole string
}

// NewCaller builds a Caller from the raw identity data.
func NewCaller(userID uuid.UUID, rawRole string, authenticated bool) Caller {
	return Caller{
		UserID:  userID,
		Role:    Classify(rawRole, authenticated),
		RawRole: rawRole,
	}
}

// IsBackOffice reports whether the caller may manage services, clients and
// catalog entries without ownership restrictions.
func (c Caller) IsBackOffice() bool {
	return c.Role == RoleAdministrador || c.Role == RoleCallCenter
}

// IsOperador reports whether the caller is field personnel.
func (c Caller) IsOperador() bool {
	return c.Role == RoleOperador
}

// IsPrivileged reports whether the caller has any access to the service
// engine at all. Unknown roles get least privilege.
func (c Caller) IsPrivileged() bool {
	return c.IsBackOffice() || c.IsOperador()
}
