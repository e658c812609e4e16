// Package transport defines the clients module's request and response DTOs.
// Wire field names follow the mobile app's vocabulary.
package transport

// AddressResponse is the wire shape of a domicilio.
type AddressResponse struct {
	ID           int64  `json:"id"`
	DocumentID   string `json:"documentId"`
	Calle        string `json:"calle"`
	Numero       string `json:"numero"`
	Colonia      string `json:"colonia"`
	CodigoPostal string `json:"codigo_postal"`
	Referencia   string `json:"referencia"`
	Activo       bool   `json:"activo"`
}

// ClientResponse is the wire shape of a cliente.
type ClientResponse struct {
	ID         int64             `json:"id"`
	DocumentID string            `json:"documentId"`
	Nombre     string            `json:"nombre"`
	Apellidos  string            `json:"apellidos"`
	Telefono   string            `json:"telefono"`
	Activo     bool              `json:"activo"`
	Domicilios []AddressResponse `json:"domicilios,omitempty"`
	CreatedAt  string            `json:"createdAt,omitempty"`
	UpdatedAt  string            `json:"updatedAt,omitempty"`
}

// ClientListResponse is a paginated client listing.
type ClientListResponse struct {
	Items    []ClientResponse `json:"items"`
	Total    int              `json:"total"`
	Page     int              `json:"page"`
	PageSize int              `json:"pageSize"`
}

// ListClientsRequest carries listing filters.
type ListClientsRequest struct {
	Search   string `form:"q"`
	Activos  bool   `form:"activos"`
	Page     int    `form:"pagination[page]"`
	PageSize int    `form:"pagination[pageSize]"`
}

// CreateClientRequest creates a cliente.
type CreateClientRequest struct {
	Nombre    string `json:"nombre" validate:"required,min=1,max=120"`
	Apellidos string `json:"apellidos" validate:"max=120"`
	Telefono  string `json:"telefono" validate:"required"`
}

// UpdateClientRequest partially updates a cliente.
type UpdateClientRequest struct {
	Nombre    *string `json:"nombre" validate:"omitempty,min=1,max=120"`
	Apellidos *string `json:"apellidos" validate:"omitempty,max=120"`
	Telefono  *string `json:"telefono"`
}

// CreateAddressRequest adds a domicilio to a cliente.
type CreateAddressRequest struct {
	Calle        string `json:"calle" validate:"required,max=160"`
	Numero       string `json:"numero" validate:"max=20"`
	Colonia      string `json:"colonia" validate:"max=120"`
	CodigoPostal string `json:"codigo_postal" validate:"max=10"`
	Referencia   string `json:"referencia" validate:"max=240"`
}
