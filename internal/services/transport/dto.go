package transport

import "time"

// ClientSummary is the cliente projection embedded in a service
// response. For field operators only the identifiers are populated;
// personal fields stay empty and are omitted from the wire.
type ClientSummary struct {
	ID         int64  `json:"id"`
	DocumentID string `json:"documentId"`
	Nombre     string `json:"nombre,omitempty"`
	Apellidos  string `json:"apellidos,omitempty"`
	Telefono   string `json:"telefono,omitempty"`
}

// AddressSummary is the domicilio projection embedded in a service
// response. Delivery needs the full address regardless of role.
type AddressSummary struct {
	ID           int64  `json:"id"`
	DocumentID   string `json:"documentId"`
	Calle        string `json:"calle"`
	Numero       string `json:"numero"`
	Colonia      string `json:"colonia"`
	CodigoPostal string `json:"codigo_postal"`
	Referencia   string `json:"referencia"`
}

// LookupSummary is a catalog projection: ruta or tipo de servicio.
type LookupSummary struct {
	ID         int64  `json:"id"`
	DocumentID string `json:"documentId"`
	Nombre     string `json:"nombre"`
}

// StatusSummary is the estado de servicio projection, carrying the
// behavioral kind alongside the display name.
type StatusSummary struct {
	ID         int64  `json:"id"`
	DocumentID string `json:"documentId"`
	Nombre     string `json:"nombre"`
	Tipo       string `json:"tipo"`
}

// ServiceResponse is the wire shape of a servicio.
type ServiceResponse struct {
	ID              int64           `json:"id"`
	DocumentID      string          `json:"documentId"`
	Cliente         ClientSummary   `json:"cliente"`
	Domicilio       AddressSummary  `json:"domicilio"`
	TipoServicio    LookupSummary   `json:"tipo_servicio"`
	Ruta            *LookupSummary  `json:"ruta,omitempty"`
	EstadoServicio  StatusSummary   `json:"estado_servicio"`
	FechaProgramado time.Time       `json:"fecha_programado"`
	Observacion     string          `json:"observacion"`
	NotaOperador    *string         `json:"nota_operador,omitempty"`
	FechaSurtido    *time.Time      `json:"fecha_surtido,omitempty"`
	FechaCancelado  *time.Time      `json:"fecha_cancelado,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// ServiceListResponse is a paginated service listing.
type ServiceListResponse struct {
	Items    []ServiceResponse `json:"items"`
	Total    int               `json:"total"`
	Page     int               `json:"page"`
	PageSize int               `json:"pageSize"`
}

// ListServicesRequest carries the listing scope as the mobile app sends
// it. dia and fecha are mutually exclusive; dia wins when both appear.
type ListServicesRequest struct {
	RutaDocumentID string `form:"rutaDocumentId"`
	Dia            string `form:"dia"`
	Fecha          string `form:"fecha"`
	Estado         string `form:"estado"`
	Tipo           string `form:"tipo"`
	Sort           string `form:"sort"`
	Page           int    `form:"pagination[page]"`
	PageSize       int    `form:"pagination[pageSize]"`
}

// CreateServiceRequest creates a servicio. Relations accept any of the
// reference shapes RefValue handles.
type CreateServiceRequest struct {
	Cliente         RefValue   `json:"cliente"`
	Domicilio       RefValue   `json:"domicilio"`
	TipoServicio    RefValue   `json:"tipo_servicio"`
	Ruta            RefValue   `json:"ruta"`
	EstadoServicio  RefValue   `json:"estado_servicio"`
	FechaProgramado time.Time  `json:"fecha_programado"`
	Observacion     string     `json:"observacion" validate:"max=500"`
	NotaOperador    *string    `json:"nota_operador"`
	FechaSurtido    *time.Time `json:"fecha_surtido"`
	FechaCancelado  *time.Time `json:"fecha_cancelado"`
}

// UpdateServiceRequest partially updates a servicio. Absent fields are
// untouched; an unrequested estado reference is never forwarded as a
// cleared relation. An explicit `"ruta": null` disconnects the route.
type UpdateServiceRequest struct {
	Cliente         RefValue   `json:"cliente"`
	Domicilio       RefValue   `json:"domicilio"`
	TipoServicio    RefValue   `json:"tipo_servicio"`
	Ruta            RefValue   `json:"ruta"`
	EstadoServicio  RefValue   `json:"estado_servicio"`
	FechaProgramado *time.Time `json:"fecha_programado"`
	Observacion     *string    `json:"observacion" validate:"omitempty,max=500"`
	NotaOperador    *string    `json:"nota_operador"`
	FechaSurtido    *time.Time `json:"fecha_surtido"`
	FechaCancelado  *time.Time `json:"fecha_cancelado"`
}

// AltaRapidaAddress is the inline domicilio of a quick intake.
type AltaRapidaAddress struct {
	Calle        string `json:"calle" validate:"required,max=160"`
	Numero       string `json:"numero" validate:"max=20"`
	Colonia      string `json:"colonia" validate:"max=120"`
	CodigoPostal string `json:"codigo_postal" validate:"max=10"`
	Referencia   string `json:"referencia" validate:"max=240"`
}

// AltaRapidaService is the optional servicio of a quick intake.
type AltaRapidaService struct {
	TipoServicio    RefValue  `json:"tipo_servicio"`
	Ruta            RefValue  `json:"ruta"`
	Observacion     string    `json:"observacion" validate:"max=500"`
	FechaProgramado time.Time `json:"fecha_programado"`
}

// AltaRapidaRequest is the one-call intake: find or create the cliente
// by phone, attach a domicilio, optionally schedule a servicio.
type AltaRapidaRequest struct {
	Nombre    string             `json:"nombre" validate:"required,min=1,max=120"`
	Apellidos string             `json:"apellidos" validate:"max=120"`
	Telefono  string             `json:"telefono" validate:"required"`
	Domicilio RefValue           `json:"domicilio"`
	Direccion *AltaRapidaAddress `json:"direccion"`
	Servicio  *AltaRapidaService `json:"servicio"`
}

// AltaRapidaResponse reports what the intake produced.
type AltaRapidaResponse struct {
	Cliente   ClientSummary    `json:"cliente"`
	Domicilio AddressSummary   `json:"domicilio"`
	Servicio  *ServiceResponse `json:"servicio,omitempty"`
}
