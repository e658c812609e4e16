// Package service provides business logic for the catalog module.
package service

import (
	"context"
	"strconv"

	"github.com/google/uuid"

	"github.com/Pepee912/GasLPNew/internal/catalog/repository"
	"github.com/Pepee912/GasLPNew/internal/catalog/transport"
	"github.com/Pepee912/GasLPNew/internal/rbac"
	"github.com/Pepee912/GasLPNew/platform/apperr"
	"github.com/Pepee912/GasLPNew/platform/logger"
)

// Service provides catalog lookups and back-office catalog management.
type Service struct {
	repo repository.Repository
	log  *logger.Logger
}

// New creates a new catalog service.
func New(repo repository.Repository, log *logger.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// ParseRef turns a raw path or payload identifier into a repository Ref.
// A value that fully parses as an integer resolves by numeric identity,
// anything else by document key.
func ParseRef(raw string) repository.Ref {
	if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return repository.RefByID(id)
	}
	return repository.RefByKey(raw)
}

func requireRead(caller rbac.Caller) error {
	if !caller.IsPrivileged() {
		return apperr.Unauthorized("authentication required")
	}
	return nil
}

func requireBackOffice(caller rbac.Caller) error {
	if !caller.IsPrivileged() {
		return apperr.Unauthorized("authentication required")
	}
	if !caller.IsBackOffice() {
		return apperr.Forbidden("not allowed")
	}
	return nil
}

// ListRoutes lists rutas. Operators see only active ones.
func (s *Service) ListRoutes(ctx context.Context, caller rbac.Caller, activeOnly bool) ([]transport.RouteResponse, error) {
	if err := requireRead(caller); err != nil {
		return nil, err
	}
	if caller.IsOperador() {
		activeOnly = true
	}

	routes, err := s.repo.ListRoutes(ctx, activeOnly)
	if err != nil {
		return nil, err
	}

	out := make([]transport.RouteResponse, len(routes))
	for i, rt := range routes {
		out[i] = toRouteResponse(rt)
	}
	return out, nil
}

// GetRoute retrieves a single ruta.
func (s *Service) GetRoute(ctx context.Context, caller rbac.Caller, raw string) (transport.RouteResponse, error) {
	if err := requireRead(caller); err != nil {
		return transport.RouteResponse{}, err
	}
	rt, err := s.repo.GetRouteByRef(ctx, ParseRef(raw))
	if err != nil {
		return transport.RouteResponse{}, err
	}
	return toRouteResponse(rt), nil
}

// CreateRoute creates a ruta (back office only).
func (s *Service) CreateRoute(ctx context.Context, caller rbac.Caller, req transport.CreateRouteRequest) (transport.RouteResponse, error) {
	if err := requireBackOffice(caller); err != nil {
		return transport.RouteResponse{}, err
	}
	rt, err := s.repo.CreateRoute(ctx, req.Nombre)
	if err != nil {
		return transport.RouteResponse{}, err
	}
	s.log.Info("route created", "id", rt.ID, "nombre", rt.Name)
	return toRouteResponse(rt), nil
}

// RenameRoute renames a ruta (back office only).
func (s *Service) RenameRoute(ctx context.Context, caller rbac.Caller, raw string, req transport.RenameRouteRequest) (transport.RouteResponse, error) {
	if err := requireBackOffice(caller); err != nil {
		return transport.RouteResponse{}, err
	}
	rt, err := s.repo.RenameRoute(ctx, ParseRef(raw), req.Nombre)
	if err != nil {
		return transport.RouteResponse{}, err
	}
	return toRouteResponse(rt), nil
}

// SetRouteActive toggles a ruta's activo flag (back office only).
func (s *Service) SetRouteActive(ctx context.Context, caller rbac.Caller, raw string, active bool) error {
	if err := requireBackOffice(caller); err != nil {
		return err
	}
	return s.repo.SetRouteActive(ctx, ParseRef(raw), active)
}

// ListTypes lists tipos de servicio.
func (s *Service) ListTypes(ctx context.Context, caller rbac.Caller, activeOnly bool) ([]transport.ServiceTypeResponse, error) {
	if err := requireRead(caller); err != nil {
		return nil, err
	}

	types, err := s.repo.ListTypes(ctx, activeOnly)
	if err != nil {
		return nil, err
	}

	out := make([]transport.ServiceTypeResponse, len(types))
	for i, t := range types {
		out[i] = transport.ServiceTypeResponse{
			ID: t.ID, DocumentID: t.DocumentID, Nombre: t.Name, Activo: t.Active,
		}
	}
	return out, nil
}

// CreateType creates a tipo de servicio (back office only).
func (s *Service) CreateType(ctx context.Context, caller rbac.Caller, req transport.CreateServiceTypeRequest) (transport.ServiceTypeResponse, error) {
	if err := requireBackOffice(caller); err != nil {
		return transport.ServiceTypeResponse{}, err
	}
	t, err := s.repo.CreateType(ctx, req.Nombre)
	if err != nil {
		return transport.ServiceTypeResponse{}, err
	}
	return transport.ServiceTypeResponse{ID: t.ID, DocumentID: t.DocumentID, Nombre: t.Name, Activo: t.Active}, nil
}

// SetTypeActive toggles a tipo's activo flag (back office only).
func (s *Service) SetTypeActive(ctx context.Context, caller rbac.Caller, raw string, active bool) error {
	if err := requireBackOffice(caller); err != nil {
		return err
	}
	return s.repo.SetTypeActive(ctx, ParseRef(raw), active)
}

// ListStatuses lists estados de servicio.
func (s *Service) ListStatuses(ctx context.Context, caller rbac.Caller, activeOnly bool) ([]transport.ServiceStatusResponse, error) {
	if err := requireRead(caller); err != nil {
		return nil, err
	}

	statuses, err := s.repo.ListStatuses(ctx, activeOnly)
	if err != nil {
		return nil, err
	}

	out := make([]transport.ServiceStatusResponse, len(statuses))
	for i, st := range statuses {
		out[i] = transport.ServiceStatusResponse{
			ID: st.ID, DocumentID: st.DocumentID, Nombre: st.Name, Tipo: st.Kind, Activo: st.Active,
		}
	}
	return out, nil
}

// CreateStatus creates an estado de servicio (back office only).
func (s *Service) CreateStatus(ctx context.Context, caller rbac.Caller, req transport.CreateServiceStatusRequest) (transport.ServiceStatusResponse, error) {
	if err := requireBackOffice(caller); err != nil {
		return transport.ServiceStatusResponse{}, err
	}
	st, err := s.repo.CreateStatus(ctx, req.Nombre, req.Tipo)
	if err != nil {
		return transport.ServiceStatusResponse{}, err
	}
	return transport.ServiceStatusResponse{
		ID: st.ID, DocumentID: st.DocumentID, Nombre: st.Name, Tipo: st.Kind, Activo: st.Active,
	}, nil
}

// SetStatusActive toggles an estado's availability for new assignment
// (back office only). Historical references stay valid.
func (s *Service) SetStatusActive(ctx context.Context, caller rbac.Caller, raw string, active bool) error {
	if err := requireBackOffice(caller); err != nil {
		return err
	}
	return s.repo.SetStatusActive(ctx, ParseRef(raw), active)
}

// AssignPersonnel links a user to a ruta (back office only).
func (s *Service) AssignPersonnel(ctx context.Context, caller rbac.Caller, req transport.AssignPersonnelRequest) (transport.PersonnelResponse, error) {
	if err := requireBackOffice(caller); err != nil {
		return transport.PersonnelResponse{}, err
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		return transport.PersonnelResponse{}, apperr.Validation("invalid userId")
	}

	p, err := s.repo.AssignPersonnel(ctx, userID, ParseRef(req.Ruta))
	if err != nil {
		return transport.PersonnelResponse{}, err
	}
	s.log.Info("personnel assigned", "userId", p.UserID, "rutaId", p.RouteID)
	return toPersonnelResponse(p), nil
}

// ListPersonnelByRoute retrieves the personnel of a ruta (back office only).
func (s *Service) ListPersonnelByRoute(ctx context.Context, caller rbac.Caller, raw string) ([]transport.PersonnelResponse, error) {
	if err := requireBackOffice(caller); err != nil {
		return nil, err
	}
	personnel, err := s.repo.ListPersonnelByRoute(ctx, ParseRef(raw))
	if err != nil {
		return nil, err
	}
	out := make([]transport.PersonnelResponse, len(personnel))
	for i, p := range personnel {
		out[i] = toPersonnelResponse(p)
	}
	return out, nil
}

// RemovePersonnel unlinks a personnel assignment (back office only).
func (s *Service) RemovePersonnel(ctx context.Context, caller rbac.Caller, raw string) error {
	if err := requireBackOffice(caller); err != nil {
		return err
	}
	return s.repo.RemovePersonnel(ctx, ParseRef(raw))
}

func toRouteResponse(rt repository.Route) transport.RouteResponse {
	return transport.RouteResponse{
		ID:         rt.ID,
		DocumentID: rt.DocumentID,
		Nombre:     rt.Name,
		Activo:     rt.Active,
		CreatedAt:  rt.CreatedAt,
		UpdatedAt:  rt.UpdatedAt,
	}
}

func toPersonnelResponse(p repository.Personnel) transport.PersonnelResponse {
	return transport.PersonnelResponse{
		ID:         p.ID,
		DocumentID: p.DocumentID,
		UserID:     p.UserID.String(),
		RutaID:     p.RouteID,
		RutaNombre: p.RouteName,
		Activo:     p.Active,
	}
}
