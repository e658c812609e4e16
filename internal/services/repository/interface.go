package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Ref identifies a service either by numeric primary key or by its
// opaque document key.
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

// ClientInfo is the cliente projection joined onto a service row.
type ClientInfo struct {
	ID         int64
	DocumentID string
	Nombre     string
	Apellidos  string
	Telefono   string
}

// AddressInfo is the domicilio projection joined onto a service row.
type AddressInfo struct {
	ID           int64
	DocumentID   string
	Calle        string
	Numero       string
	Colonia      string
	CodigoPostal string
	Referencia   string
}

// LookupInfo is a catalog projection: ruta or tipo de servicio.
type LookupInfo struct {
	ID         int64
	DocumentID string
	Nombre     string
}

// StatusInfo is the estado de servicio projection with its kind.
type StatusInfo struct {
	ID         int64
	DocumentID string
	Nombre     string
	Kind       string
}

// Service is a delivery visit with its joined relations.
type Service struct {
	ID              int64
	DocumentID      string
	FechaProgramado time.Time
	Observacion     string
	NotaOperador    *string
	FechaSurtido    *time.Time
	FechaCancelado  *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time

	Cliente   ClientInfo
	Domicilio AddressInfo
	Tipo      LookupInfo
	Ruta      *LookupInfo
	Estado    StatusInfo
}

// ListParams is the fully resolved listing scope. The service layer
// builds it from the caller's role; the repository applies it verbatim.
type ListParams struct {
	// Operador scoping. When Restricted is set, only services on routes
	// the user is assigned to, with a status kind in AllowedKinds, match.
	Restricted     bool
	OperadorUserID uuid.UUID
	AllowedKinds   []string

	RouteKey string
	Kind     string
	TypeRef  Ref

	// Half-open window [From, To) over fecha_programado.
	From *time.Time
	To   *time.Time

	SortDesc bool
	Limit    int
	Offset   int
}

// CreateParams carries the resolved fields of a new service.
type CreateParams struct {
	ClienteID       int64
	DomicilioID     int64
	TipoID          int64
	RutaID          *int64
	EstadoID        int64
	FechaProgramado time.Time
	Observacion     string
	NotaOperador    *string
	FechaSurtido    *time.Time
	FechaCancelado  *time.Time
}

// UpdateParams is a partial service update. Nil pointers leave columns
// untouched; Clear flags NULL them. Status and its date effects land in
// one statement so they change atomically.
type UpdateParams struct {
	ID int64

	ClienteID   *int64
	DomicilioID *int64
	TipoID      *int64
	EstadoID    *int64

	RutaID    *int64
	ClearRuta bool

	FechaProgramado *time.Time
	Observacion     *string

	NotaOperador *string
	ClearNota    bool

	FechaSurtido *time.Time
	ClearSurtido bool

	FechaCancelado *time.Time
	ClearCancelado bool
}

// Repository is the service persistence interface.
type Repository interface {
	GetByRef(ctx context.Context, ref Ref) (Service, error)
	// OwnedByOperador reports whether the service sits on a route the
	// user is assigned to.
	OwnedByOperador(ctx context.Context, serviceID int64, userID uuid.UUID) (bool, error)
	List(ctx context.Context, params ListParams) ([]Service, int, error)
	Create(ctx context.Context, params CreateParams) (Service, error)
	Update(ctx context.Context, params UpdateParams) (Service, error)
}
