package repository

import "context"

// Ref identifies a client record either by numeric primary key or by its
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

// Client is a gas delivery customer. Phone is stored digits-only and is
// the primary lookup key. Clients are never hard-deleted.
type Client struct {
	ID         int64
	DocumentID string
	Name       string
	Surname    string
	Phone      string
	Active     bool
	CreatedAt  string
	UpdatedAt  string
}

// Address belongs to exactly one client. Its active flag is independent
// of, but cascaded from, the owning client.
type Address struct {
	ID         int64
	DocumentID string
	ClientID   int64
	Street     string
	Number     string
	Colonia    string
	PostalCode string
	Reference  string
	Active     bool
}

// ListParams filters the client listing.
type ListParams struct {
	Search     string
	ActiveOnly bool
	Limit      int
	Offset     int
}

// CreateParams carries the fields of a new client.
type CreateParams struct {
	Name    string
	Surname string
	Phone   string
	Active  bool
}

// UpdateParams carries a partial client update. Nil fields are untouched.
type UpdateParams struct {
	Ref     Ref
	Name    *string
	Surname *string
	Phone   *string
	Active  *bool
}

// CreateAddressParams carries the fields of a new address.
type CreateAddressParams struct {
	ClientID   int64
	Street     string
	Number     string
	Colonia    string
	PostalCode string
	Reference  string
	Active     bool
}

// Repository is the client persistence interface.
type Repository interface {
	GetByRef(ctx context.Context, ref Ref) (Client, error)
	FindByPhone(ctx context.Context, phone string) (Client, error)
	PhoneInUse(ctx context.Context, phone string, excludeID int64) (bool, error)
	List(ctx context.Context, params ListParams) ([]Client, int, error)
	Create(ctx context.Context, params CreateParams) (Client, error)
	Update(ctx context.Context, params UpdateParams) (Client, error)
	SetActive(ctx context.Context, id int64, active bool) error

	ListAddresses(ctx context.Context, clientID int64) ([]Address, error)
	GetAddressByRef(ctx context.Context, ref Ref) (Address, error)
	CreateAddress(ctx context.Context, params CreateAddressParams) (Address, error)
	SetAddressesActive(ctx context.Context, clientID int64, active bool) error
}
