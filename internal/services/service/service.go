// Package service orchestrates the service engine: reference
// resolution, role gating, visibility scoping, the mutation guard and
// the state machine, on top of the repositories.
package service

import (
	"context"
	"strconv"
	"strings"
	"time"

	catalogrepo "github.com/Pepee912/GasLPNew/internal/catalog/repository"
	clientsrepo "github.com/Pepee912/GasLPNew/internal/clients/repository"
	clientsvc "github.com/Pepee912/GasLPNew/internal/clients/service"
	clienttransport "github.com/Pepee912/GasLPNew/internal/clients/transport"
	"github.com/Pepee912/GasLPNew/internal/rbac"
	"github.com/Pepee912/GasLPNew/internal/services/domain"
	"github.com/Pepee912/GasLPNew/internal/services/repository"
	"github.com/Pepee912/GasLPNew/internal/services/transport"
	"github.com/Pepee912/GasLPNew/platform/apperr"
	"github.com/Pepee912/GasLPNew/platform/events"
	"github.com/Pepee912/GasLPNew/platform/logger"
)

const msgNotAllowed = "not allowed"

// ReminderScheduler enqueues service-day reminders. Enqueue failure is
// logged by the caller and never fails the mutation.
type ReminderScheduler interface {
	ScheduleServiceReminder(ctx context.Context, serviceID int64, documentID string, fechaProgramado time.Time) error
}

// Service orchestrates the service engine.
type Service struct {
	repo    repository.Repository
	catalog catalogrepo.Repository
	clients clientsrepo.Repository
	intake  *clientsvc.Service
	bus     events.Bus
	sched   ReminderScheduler
	log     *logger.Logger

	now func() time.Time
	loc *time.Location
}

// New creates a new services engine. sched may be nil when reminders
// are disabled.
func New(
	repo repository.Repository,
	catalog catalogrepo.Repository,
	clients clientsrepo.Repository,
	intake *clientsvc.Service,
	bus events.Bus,
	sched ReminderScheduler,
	log *logger.Logger,
) *Service {
	return &Service{
		repo:    repo,
		catalog: catalog,
		clients: clients,
		intake:  intake,
		bus:     bus,
		sched:   sched,
		log:     log,
		now:     time.Now,
		loc:     time.Local,
	}
}

// deny logs and publishes an access denial, then returns the error the
// caller should surface. Unknown and unauthenticated roles both land on
// least privilege; Unknown is additionally audited by raw role name.
func (s *Service) deny(ctx context.Context, caller rbac.Caller, operation string) error {
	s.log.AccessDenied(operation, caller.UserID.String(), caller.RawRole)
	s.bus.Publish(ctx, AccessDeniedEvent{
		BaseEvent: events.NewBaseEvent(),
		Operation: operation,
		ActorID:   caller.UserID,
		RawRole:   caller.RawRole,
	})
	if caller.Role == rbac.RoleUnauthenticated {
		return apperr.Unauthorized("authentication required")
	}
	if caller.Role == rbac.RoleUnknown {
		return apperr.Unauthorized("unrecognized role")
	}
	return apperr.Forbidden(msgNotAllowed)
}

func toCatalogRef(r transport.RefValue) catalogrepo.Ref {
	if key, ok := r.Key(); ok {
		return catalogrepo.RefByKey(key)
	}
	id, _ := r.ID()
	return catalogrepo.RefByID(id)
}

func toClientRef(r transport.RefValue) clientsrepo.Ref {
	if key, ok := r.Key(); ok {
		return clientsrepo.RefByKey(key)
	}
	id, _ := r.ID()
	return clientsrepo.RefByID(id)
}

// resolveStatus resolves a requested estado reference against the
// catalog. A miss is the caller's fault, never a fallback.
func (s *Service) resolveStatus(ctx context.Context, ref transport.RefValue) (catalogrepo.ServiceStatus, domain.StatusKind, error) {
	var status catalogrepo.ServiceStatus
	var err error
	if key, ok := ref.Key(); ok {
		status, err = s.catalog.GetStatusByKey(ctx, key)
	} else {
		id, _ := ref.ID()
		status, err = s.catalog.GetStatusByID(ctx, id)
	}
	if err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			return catalogrepo.ServiceStatus{}, "", apperr.InvalidReference("estado_servicio")
		}
		return catalogrepo.ServiceStatus{}, "", err
	}

	kind, ok := domain.ParseKind(status.Kind)
	if !ok {
		return catalogrepo.ServiceStatus{}, "", apperr.Internal("estado_servicio has unknown kind")
	}
	return status, kind, nil
}

// ParseRef turns a raw path identifier into a repository Ref.
func ParseRef(raw string) repository.Ref {
	if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return repository.RefByID(id)
	}
	return repository.RefByKey(raw)
}

// List retrieves services visible to the caller under the requested
// scope.
func (s *Service) List(ctx context.Context, caller rbac.Caller, req transport.ListServicesRequest) (transport.ServiceListResponse, error) {
	if !caller.IsPrivileged() {
		return transport.ServiceListResponse{}, s.deny(ctx, caller, "services.list")
	}

	params, err := s.buildScope(caller, req)
	if err != nil {
		return transport.ServiceListResponse{}, err
	}

	items, total, err := s.repo.List(ctx, params)
	if err != nil {
		return transport.ServiceListResponse{}, err
	}

	responses := make([]transport.ServiceResponse, len(items))
	for i, item := range items {
		responses[i] = s.toResponse(item, caller)
	}
	return transport.ServiceListResponse{
		Items:    responses,
		Total:    total,
		Page:     params.Offset/params.Limit + 1,
		PageSize: params.Limit,
	}, nil
}

// ListToday retrieves the caller's services for the current local day.
func (s *Service) ListToday(ctx context.Context, caller rbac.Caller, req transport.ListServicesRequest) (transport.ServiceListResponse, error) {
	req.Dia = "hoy"
	req.Fecha = ""
	return s.List(ctx, caller, req)
}

// ListByRoute retrieves services on a route identified by documentId.
func (s *Service) ListByRoute(ctx context.Context, caller rbac.Caller, routeKey string, req transport.ListServicesRequest) (transport.ServiceListResponse, error) {
	req.RutaDocumentID = routeKey
	return s.List(ctx, caller, req)
}

func (s *Service) buildScope(caller rbac.Caller, req transport.ListServicesRequest) (repository.ListParams, error) {
	page := req.Page
	pageSize := req.PageSize
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 25
	}
	if pageSize > 100 {
		pageSize = 100
	}

	params := repository.ListParams{
		RouteKey: req.RutaDocumentID,
		SortDesc: strings.Contains(strings.ToLower(req.Sort), "desc"),
		Limit:    pageSize,
		Offset:   (page - 1) * pageSize,
	}

	if caller.IsOperador() {
		params.Restricted = true
		params.OperadorUserID = caller.UserID
		for _, k := range domain.OperadorKinds {
			params.AllowedKinds = append(params.AllowedKinds, k.String())
		}
	}

	if req.Estado != "" {
		kind, ok := domain.ParseKind(req.Estado)
		if !ok {
			return repository.ListParams{}, apperr.Validation("estado must be one of Programado, Asignado, Surtido, Cancelado")
		}
		params.Kind = kind.String()
	}

	if req.Tipo != "" {
		if id, err := strconv.ParseInt(req.Tipo, 10, 64); err == nil {
			params.TypeRef = repository.RefByID(id)
		} else {
			params.TypeRef = repository.RefByKey(req.Tipo)
		}
	}

	// Day window: dia wins over fecha when both appear.
	switch strings.ToLower(strings.TrimSpace(req.Dia)) {
	case "hoy":
		w := domain.Today(s.now().In(s.loc))
		params.From, params.To = &w.From, &w.To
	case "ayer":
		w := domain.Yesterday(s.now().In(s.loc))
		params.From, params.To = &w.From, &w.To
	case "":
		if req.Fecha != "" {
			w, err := domain.OnDate(req.Fecha, s.loc)
			if err != nil {
				return repository.ListParams{}, apperr.Validation("fecha must be YYYY-MM-DD")
			}
			params.From, params.To = &w.From, &w.To
		}
	default:
		return repository.ListParams{}, apperr.Validation("dia must be hoy or ayer")
	}

	return params, nil
}

// Get retrieves a single service. Field operators only reach services
// on their routes with a visible status kind; anything else looks the
// same as not being allowed at all.
func (s *Service) Get(ctx context.Context, caller rbac.Caller, raw string) (transport.ServiceResponse, error) {
	if !caller.IsPrivileged() {
		return transport.ServiceResponse{}, s.deny(ctx, caller, "services.get")
	}

	record, err := s.loadVisible(ctx, caller, raw)
	if err != nil {
		return transport.ServiceResponse{}, err
	}
	return s.toResponse(record, caller), nil
}

func (s *Service) loadVisible(ctx context.Context, caller rbac.Caller, raw string) (repository.Service, error) {
	record, err := s.repo.GetByRef(ctx, ParseRef(raw))
	if err != nil {
		if caller.IsOperador() && apperr.Is(err, apperr.KindNotFound) {
			// Same answer for missing and out-of-scope records.
			return repository.Service{}, apperr.Forbidden(msgNotAllowed)
		}
		return repository.Service{}, err
	}

	if caller.IsOperador() {
		kind, _ := domain.ParseKind(record.Estado.Kind)
		if !domain.OperadorMaySee(kind) {
			return repository.Service{}, apperr.Forbidden(msgNotAllowed)
		}
		owned, err := s.repo.OwnedByOperador(ctx, record.ID, caller.UserID)
		if err != nil {
			return repository.Service{}, err
		}
		if !owned {
			return repository.Service{}, apperr.Forbidden(msgNotAllowed)
		}
	}
	return record, nil
}

// Create creates a service. Operators may create one but their status
// and note fields are silently dropped; defaults apply instead.
func (s *Service) Create(ctx context.Context, caller rbac.Caller, req transport.CreateServiceRequest) (transport.ServiceResponse, error) {
	if !caller.IsPrivileged() {
		return transport.ServiceResponse{}, s.deny(ctx, caller, "services.create")
	}

	if !req.Cliente.Requested() {
		return transport.ServiceResponse{}, apperr.Validation("cliente is required")
	}
	if !req.Domicilio.Requested() {
		return transport.ServiceResponse{}, apperr.Validation("domicilio is required")
	}
	if !req.TipoServicio.Requested() {
		return transport.ServiceResponse{}, apperr.Validation("tipo_servicio is required")
	}
	if req.FechaProgramado.IsZero() {
		return transport.ServiceResponse{}, apperr.Validation("fecha_programado is required")
	}

	client, err := s.clients.GetByRef(ctx, toClientRef(req.Cliente))
	if err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			return transport.ServiceResponse{}, apperr.InvalidReference("cliente")
		}
		return transport.ServiceResponse{}, err
	}

	address, err := s.clients.GetAddressByRef(ctx, toClientRef(req.Domicilio))
	if err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			return transport.ServiceResponse{}, apperr.InvalidReference("domicilio")
		}
		return transport.ServiceResponse{}, err
	}
	if address.ClientID != client.ID {
		return transport.ServiceResponse{}, apperr.InvalidReference("domicilio")
	}

	serviceType, err := s.catalog.GetTypeByRef(ctx, toCatalogRef(req.TipoServicio))
	if err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			return transport.ServiceResponse{}, apperr.InvalidReference("tipo_servicio")
		}
		return transport.ServiceResponse{}, err
	}

	var rutaID *int64
	if req.Ruta.Requested() {
		route, err := s.catalog.GetRouteByRef(ctx, toCatalogRef(req.Ruta))
		if err != nil {
			if apperr.Is(err, apperr.KindNotFound) {
				return transport.ServiceResponse{}, apperr.InvalidReference("ruta")
			}
			return transport.ServiceResponse{}, err
		}
		rutaID = &route.ID
	}

	// Mutation guard: operators never seed status, note or dates.
	statusRef := req.EstadoServicio
	noteRef := req.NotaOperador
	suppliedSurtido := req.FechaSurtido
	suppliedCancelado := req.FechaCancelado
	if caller.IsOperador() {
		statusRef = transport.RefValue{}
		noteRef = nil
		suppliedSurtido = nil
		suppliedCancelado = nil
	}

	var status catalogrepo.ServiceStatus
	var kind domain.StatusKind
	if statusRef.Requested() {
		status, kind, err = s.resolveStatus(ctx, statusRef)
		if err != nil {
			return transport.ServiceResponse{}, err
		}
	} else {
		kind = domain.InitialKind(rutaID != nil)
		status, err = s.catalog.GetActiveStatusByKind(ctx, kind.String())
		if err != nil {
			return transport.ServiceResponse{}, apperr.Wrap(apperr.KindInternal, "no active estado_servicio for kind "+kind.String(), err)
		}
	}

	effects := domain.Effects(kind, suppliedSurtido, suppliedCancelado, s.now())

	params := repository.CreateParams{
		ClienteID:       client.ID,
		DomicilioID:     address.ID,
		TipoID:          serviceType.ID,
		RutaID:          rutaID,
		EstadoID:        status.ID,
		FechaProgramado: req.FechaProgramado,
		Observacion:     strings.TrimSpace(req.Observacion),
		FechaSurtido:    effects.FechaSurtido,
		FechaCancelado:  effects.FechaCancelado,
	}
	if note := domain.GuardNote(noteRef); note.Set {
		params.NotaOperador = &note.Value
	}

	record, err := s.repo.Create(ctx, params)
	if err != nil {
		return transport.ServiceResponse{}, err
	}

	s.bus.Publish(ctx, ServiceCreatedEvent{
		BaseEvent:  events.NewBaseEvent(),
		ServiceID:  record.ID,
		DocumentID: record.DocumentID,
		StatusKind: record.Estado.Kind,
		ActorID:    caller.UserID,
		ActorRole:  caller.Role.String(),
	})
	s.scheduleReminder(ctx, record)

	return s.toResponse(record, caller), nil
}

// Update applies a role-guarded partial update. The forwarded patch of
// a field operator contains at most the Surtido transition, the
// delivery timestamp and a trimmed note; everything else is silently
// dropped, never an error.
func (s *Service) Update(ctx context.Context, caller rbac.Caller, raw string, req transport.UpdateServiceRequest) (transport.ServiceResponse, error) {
	if !caller.IsPrivileged() {
		return transport.ServiceResponse{}, s.deny(ctx, caller, "services.update")
	}

	existing, err := s.loadVisible(ctx, caller, raw)
	if err != nil {
		return transport.ServiceResponse{}, err
	}

	var patch repository.UpdateParams
	if caller.IsOperador() {
		patch, err = s.operadorPatch(ctx, caller, existing, req)
	} else {
		patch, err = s.backOfficePatch(ctx, existing, req)
	}
	if err != nil {
		return transport.ServiceResponse{}, err
	}

	record, err := s.repo.Update(ctx, patch)
	if err != nil {
		return transport.ServiceResponse{}, err
	}

	if patch.EstadoID != nil {
		s.log.StatusTransition(record.DocumentID, existing.Estado.Kind, record.Estado.Kind, caller.UserID.String())
		s.bus.Publish(ctx, ServiceStatusChangedEvent{
			BaseEvent:  events.NewBaseEvent(),
			ServiceID:  record.ID,
			DocumentID: record.DocumentID,
			From:       existing.Estado.Kind,
			To:         record.Estado.Kind,
			ActorID:    caller.UserID,
			ActorRole:  caller.Role.String(),
		})
	}
	if patch.FechaProgramado != nil && !patch.FechaProgramado.Equal(existing.FechaProgramado) {
		s.scheduleReminder(ctx, record)
	}

	return s.toResponse(record, caller), nil
}

func (s *Service) operadorPatch(ctx context.Context, caller rbac.Caller, existing repository.Service, req transport.UpdateServiceRequest) (repository.UpdateParams, error) {
	patch := repository.UpdateParams{ID: existing.ID}

	// Without a requested transition nothing in the payload is
	// forwarded; the request succeeds as an empty patch.
	if !req.EstadoServicio.Requested() {
		return patch, nil
	}

	status, kind, err := s.resolveStatus(ctx, req.EstadoServicio)
	if err != nil {
		return repository.UpdateParams{}, err
	}
	if !domain.CanTransition(caller.Role, kind) {
		return repository.UpdateParams{}, s.deny(ctx, caller, "services.transition."+kind.String())
	}

	effects := domain.Effects(kind, req.FechaSurtido, nil, s.now())
	patch.EstadoID = &status.ID
	patch.FechaSurtido = effects.FechaSurtido
	patch.ClearSurtido = effects.ClearSurtido
	patch.FechaCancelado = effects.FechaCancelado
	patch.ClearCancelado = effects.ClearCancelado

	// The note rides along with the delivery transition only. A blank
	// note is dropped, never stored and never used to clear a stored one.
	if note := domain.GuardNote(req.NotaOperador); note.Set {
		patch.NotaOperador = &note.Value
	}

	// Everything else in the request is silently dropped.
	return patch, nil
}

func (s *Service) backOfficePatch(ctx context.Context, existing repository.Service, req transport.UpdateServiceRequest) (repository.UpdateParams, error) {
	patch := repository.UpdateParams{ID: existing.ID}

	if req.Cliente.Requested() {
		client, err := s.clients.GetByRef(ctx, toClientRef(req.Cliente))
		if err != nil {
			if apperr.Is(err, apperr.KindNotFound) {
				return repository.UpdateParams{}, apperr.InvalidReference("cliente")
			}
			return repository.UpdateParams{}, err
		}
		patch.ClienteID = &client.ID
	}

	if req.Domicilio.Requested() {
		address, err := s.clients.GetAddressByRef(ctx, toClientRef(req.Domicilio))
		if err != nil {
			if apperr.Is(err, apperr.KindNotFound) {
				return repository.UpdateParams{}, apperr.InvalidReference("domicilio")
			}
			return repository.UpdateParams{}, err
		}
		owner := existing.Cliente.ID
		if patch.ClienteID != nil {
			owner = *patch.ClienteID
		}
		if address.ClientID != owner {
			return repository.UpdateParams{}, apperr.InvalidReference("domicilio")
		}
		patch.DomicilioID = &address.ID
	}

	if req.TipoServicio.Requested() {
		serviceType, err := s.catalog.GetTypeByRef(ctx, toCatalogRef(req.TipoServicio))
		if err != nil {
			if apperr.Is(err, apperr.KindNotFound) {
				return repository.UpdateParams{}, apperr.InvalidReference("tipo_servicio")
			}
			return repository.UpdateParams{}, err
		}
		patch.TipoID = &serviceType.ID
	}

	switch {
	case req.Ruta.Requested():
		route, err := s.catalog.GetRouteByRef(ctx, toCatalogRef(req.Ruta))
		if err != nil {
			if apperr.Is(err, apperr.KindNotFound) {
				return repository.UpdateParams{}, apperr.InvalidReference("ruta")
			}
			return repository.UpdateParams{}, err
		}
		patch.RutaID = &route.ID
	case req.Ruta.IsNull():
		// A literal null pulls the service off its route.
		patch.ClearRuta = true
	}

	// An unrequested estado is omitted from the patch, never forwarded
	// as a cleared relation.
	if req.EstadoServicio.Requested() {
		status, kind, err := s.resolveStatus(ctx, req.EstadoServicio)
		if err != nil {
			return repository.UpdateParams{}, err
		}
		effects := domain.Effects(kind, req.FechaSurtido, req.FechaCancelado, s.now())
		patch.EstadoID = &status.ID
		patch.FechaSurtido = effects.FechaSurtido
		patch.ClearSurtido = effects.ClearSurtido
		patch.FechaCancelado = effects.FechaCancelado
		patch.ClearCancelado = effects.ClearCancelado
	} else {
		if req.FechaSurtido != nil {
			patch.FechaSurtido = req.FechaSurtido
		}
		if req.FechaCancelado != nil {
			patch.FechaCancelado = req.FechaCancelado
		}
	}

	patch.FechaProgramado = req.FechaProgramado
	if req.Observacion != nil {
		trimmed := strings.TrimSpace(*req.Observacion)
		patch.Observacion = &trimmed
	}
	if note := domain.GuardNote(req.NotaOperador); note.Set {
		patch.NotaOperador = &note.Value
	} else if note.Clear {
		patch.ClearNota = true
	}

	return patch, nil
}

// AltaRapida is the one-call intake: find or create the cliente by
// phone, attach a domicilio, optionally schedule a servicio. Back
// office only.
func (s *Service) AltaRapida(ctx context.Context, caller rbac.Caller, req transport.AltaRapidaRequest) (transport.AltaRapidaResponse, error) {
	if !caller.IsBackOffice() {
		return transport.AltaRapidaResponse{}, s.deny(ctx, caller, "services.alta_rapida")
	}

	client, err := s.intake.GetOrCreateByPhone(ctx, req.Telefono, req.Nombre, req.Apellidos)
	if err != nil {
		return transport.AltaRapidaResponse{}, err
	}

	var address clientsrepo.Address
	switch {
	case req.Domicilio.Requested():
		address, err = s.clients.GetAddressByRef(ctx, toClientRef(req.Domicilio))
		if err != nil {
			if apperr.Is(err, apperr.KindNotFound) {
				return transport.AltaRapidaResponse{}, apperr.InvalidReference("domicilio")
			}
			return transport.AltaRapidaResponse{}, err
		}
		if address.ClientID != client.ID {
			return transport.AltaRapidaResponse{}, apperr.InvalidReference("domicilio")
		}
	case req.Direccion != nil:
		address, err = s.intake.AddAddressForClient(ctx, client, clienttransport.CreateAddressRequest{
			Calle:        req.Direccion.Calle,
			Numero:       req.Direccion.Numero,
			Colonia:      req.Direccion.Colonia,
			CodigoPostal: req.Direccion.CodigoPostal,
			Referencia:   req.Direccion.Referencia,
		})
		if err != nil {
			return transport.AltaRapidaResponse{}, err
		}
	default:
		return transport.AltaRapidaResponse{}, apperr.Validation("domicilio or direccion is required")
	}

	resp := transport.AltaRapidaResponse{
		Cliente: transport.ClientSummary{
			ID:         client.ID,
			DocumentID: client.DocumentID,
			Nombre:     client.Name,
			Apellidos:  client.Surname,
			Telefono:   client.Phone,
		},
		Domicilio: transport.AddressSummary{
			ID:           address.ID,
			DocumentID:   address.DocumentID,
			Calle:        address.Street,
			Numero:       address.Number,
			Colonia:      address.Colonia,
			CodigoPostal: address.PostalCode,
			Referencia:   address.Reference,
		},
	}

	if req.Servicio != nil {
		created, err := s.Create(ctx, caller, transport.CreateServiceRequest{
			Cliente:         transport.RefByID(client.ID),
			Domicilio:       transport.RefByID(address.ID),
			TipoServicio:    req.Servicio.TipoServicio,
			Ruta:            req.Servicio.Ruta,
			Observacion:     req.Servicio.Observacion,
			FechaProgramado: req.Servicio.FechaProgramado,
		})
		if err != nil {
			return transport.AltaRapidaResponse{}, err
		}
		resp.Servicio = &created
	}

	return resp, nil
}

func (s *Service) scheduleReminder(ctx context.Context, record repository.Service) {
	if s.sched == nil {
		return
	}
	if err := s.sched.ScheduleServiceReminder(ctx, record.ID, record.DocumentID, record.FechaProgramado); err != nil {
		s.log.Warn("reminder enqueue failed", "servicio", record.DocumentID, "error", err)
	}
}

// toResponse projects a service row for the caller's role. Operators
// never see the client's personal fields.
func (s *Service) toResponse(record repository.Service, caller rbac.Caller) transport.ServiceResponse {
	resp := transport.ServiceResponse{
		ID:         record.ID,
		DocumentID: record.DocumentID,
		Cliente: transport.ClientSummary{
			ID:         record.Cliente.ID,
			DocumentID: record.Cliente.DocumentID,
		},
		Domicilio: transport.AddressSummary{
			ID:           record.Domicilio.ID,
			DocumentID:   record.Domicilio.DocumentID,
			Calle:        record.Domicilio.Calle,
			Numero:       record.Domicilio.Numero,
			Colonia:      record.Domicilio.Colonia,
			CodigoPostal: record.Domicilio.CodigoPostal,
			Referencia:   record.Domicilio.Referencia,
		},
		TipoServicio: transport.LookupSummary{
			ID:         record.Tipo.ID,
			DocumentID: record.Tipo.DocumentID,
			Nombre:     record.Tipo.Nombre,
		},
		EstadoServicio: transport.StatusSummary{
			ID:         record.Estado.ID,
			DocumentID: record.Estado.DocumentID,
			Nombre:     record.Estado.Nombre,
			Tipo:       record.Estado.Kind,
		},
		FechaProgramado: record.FechaProgramado,
		Observacion:     record.Observacion,
		NotaOperador:    record.NotaOperador,
		FechaSurtido:    record.FechaSurtido,
		FechaCancelado:  record.FechaCancelado,
		CreatedAt:       record.CreatedAt,
		UpdatedAt:       record.UpdatedAt,
	}

	if record.Ruta != nil {
		resp.Ruta = &transport.LookupSummary{
			ID:         record.Ruta.ID,
			DocumentID: record.Ruta.DocumentID,
			Nombre:     record.Ruta.Nombre,
		}
	}

	if !caller.IsOperador() {
		resp.Cliente.Nombre = record.Cliente.Nombre
		resp.Cliente.Apellidos = record.Cliente.Apellidos
		resp.Cliente.Telefono = record.Cliente.Telefono
	}

	return resp
}
