// Package transport defines the catalog module's request and response DTOs.
package transport

// RouteResponse is the wire shape of a ruta.
type RouteResponse struct {
	ID         int64  `json:"id"`
	DocumentID string `json:"documentId"`
	Nombre     string `json:"nombre"`
	Activo     bool   `json:"activo"`
	CreatedAt  string `json:"createdAt,omitempty"`
	UpdatedAt  string `json:"updatedAt,omitempty"`
}

// PersonnelResponse is the wire shape of a personal assignment.
type PersonnelResponse struct {
	ID         int64  `json:"id"`
	DocumentID string `json:"documentId"`
	UserID     string `json:"userId"`
	RutaID     int64  `json:"rutaId"`
	RutaNombre string `json:"rutaNombre,omitempty"`
	Activo     bool   `json:"activo"`
}

// ServiceTypeResponse is the wire shape of a tipo de servicio.
type ServiceTypeResponse struct {
	ID         int64  `json:"id"`
	DocumentID string `json:"documentId"`
	Nombre     string `json:"nombre"`
	Activo     bool   `json:"activo"`
}

// ServiceStatusResponse is the wire shape of an estado de servicio.
// Tipo is the semantic kind driving the state machine.
type ServiceStatusResponse struct {
	ID         int64  `json:"id"`
	DocumentID string `json:"documentId"`
	Nombre     string `json:"nombre"`
	Tipo       string `json:"tipo"`
	Activo     bool   `json:"activo"`
}

// CreateRouteRequest creates a ruta.
type CreateRouteRequest struct {
	Nombre string `json:"nombre" validate:"required,min=1,max=120"`
}

// RenameRouteRequest renames a ruta.
type RenameRouteRequest struct {
	Nombre string `json:"nombre" validate:"required,min=1,max=120"`
}

// CreateServiceTypeRequest creates a tipo de servicio.
type CreateServiceTypeRequest struct {
	Nombre string `json:"nombre" validate:"required,min=1,max=120"`
}

// CreateServiceStatusRequest creates an estado de servicio.
type CreateServiceStatusRequest struct {
	Nombre string `json:"nombre" validate:"required,min=1,max=120"`
	Tipo   string `json:"tipo" validate:"required,oneof=Programado Asignado Surtido Cancelado"`
}

// AssignPersonnelRequest links a user account to a ruta.
type AssignPersonnelRequest struct {
	UserID string `json:"userId" validate:"required,uuid"`
	Ruta   string `json:"ruta" validate:"required"`
}

// SetActiveRequest toggles an activo flag.
type SetActiveRequest struct {
	Activo bool `json:"activo"`
}
