package repository

import (
	"context"

	"github.com/google/uuid"
)

// Ref identifies a catalog record either by its numeric primary key or by
// its opaque document key. Exactly one side is set.
type Ref struct {
	ID  int64
	Key string
}

// RefByID builds a numeric reference.
func RefByID(id int64) Ref { return Ref{ID: id} }

// RefByKey builds an opaque document key reference.
func RefByKey(key string) Ref { return Ref{Key: key} }

// ByKey reports whether the reference resolves by document key.
func (r Ref) ByKey() bool { return r.Key != "" }

// Route is a named dispatch grouping for services.
type Route struct {
	ID         int64
	DocumentID string
	Name       string
	Active     bool
	CreatedAt  string
	UpdatedAt  string
}

// Personnel links one platform user account to one route.
type Personnel struct {
	ID         int64
	DocumentID string
	UserID     uuid.UUID
	RouteID    int64
	RouteName  string
	Active     bool
}

// ServiceType is a catalog entry describing the kind of delivery visit.
type ServiceType struct {
	ID         int64
	DocumentID string
	Name       string
	Active     bool
}

// ServiceStatus is a catalog entry whose Kind drives the service state
// machine. Inactive statuses stay valid as historical references but are
// not offered for new assignment.
type ServiceStatus struct {
	ID         int64
	DocumentID string
	Name       string
	Kind       string
	Active     bool
}

// Repository is the catalog persistence interface.
type Repository interface {
	// Statuses
	GetStatusByID(ctx context.Context, id int64) (ServiceStatus, error)
	GetStatusByKey(ctx context.Context, key string) (ServiceStatus, error)
	GetActiveStatusByKind(ctx context.Context, kind string) (ServiceStatus, error)
	ListStatuses(ctx context.Context, activeOnly bool) ([]ServiceStatus, error)
	CreateStatus(ctx context.Context, name, kind string) (ServiceStatus, error)
	SetStatusActive(ctx context.Context, ref Ref, active bool) error

	// Service types
	GetTypeByRef(ctx context.Context, ref Ref) (ServiceType, error)
	ListTypes(ctx context.Context, activeOnly bool) ([]ServiceType, error)
	CreateType(ctx context.Context, name string) (ServiceType, error)
	SetTypeActive(ctx context.Context, ref Ref, active bool) error

	// Routes
	GetRouteByRef(ctx context.Context, ref Ref) (Route, error)
	ListRoutes(ctx context.Context, activeOnly bool) ([]Route, error)
	CreateRoute(ctx context.Context, name string) (Route, error)
	RenameRoute(ctx context.Context, ref Ref, name string) (Route, error)
	SetRouteActive(ctx context.Context, ref Ref, active bool) error

	// Personnel
	AssignPersonnel(ctx context.Context, userID uuid.UUID, routeRef Ref) (Personnel, error)
	ListPersonnelByRoute(ctx context.Context, routeRef Ref) ([]Personnel, error)
	RemovePersonnel(ctx context.Context, ref Ref) error
}
