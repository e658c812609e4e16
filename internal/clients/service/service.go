// Package service provides business logic for clientes: phone uniqueness,
// the soft-lifecycle cascade over domicilios, and phone-keyed lookup.
package service

import (
	"context"
	"strconv"

	"github.com/Pepee912/GasLPNew/internal/clients/repository"
	"github.com/Pepee912/GasLPNew/internal/clients/transport"
	"github.com/Pepee912/GasLPNew/internal/rbac"
	"github.com/Pepee912/GasLPNew/platform/apperr"
	"github.com/Pepee912/GasLPNew/platform/logger"
	"github.com/Pepee912/GasLPNew/platform/phone"
)

const duplicatePhoneMessage = "telefono already registered to another cliente"

// Service provides business logic for clients.
type Service struct {
	repo repository.Repository
	log  *logger.Logger
}

// New creates a new clients service.
func New(repo repository.Repository, log *logger.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// Repo exposes the underlying repository for the services module's
// reference resolution.
func (s *Service) Repo() repository.Repository {
	return s.repo
}

// ParseRef turns a raw path identifier into a repository Ref.
func ParseRef(raw string) repository.Ref {
	if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return repository.RefByID(id)
	}
	return repository.RefByKey(raw)
}

func requireBackOffice(caller rbac.Caller) error {
	if !caller.IsPrivileged() {
		return apperr.Unauthorized("authentication required")
	}
	if !caller.IsBackOffice() {
		// Operators never see client personal data.
		return apperr.Forbidden("not allowed")
	}
	return nil
}

// normalizePhone validates and normalizes a raw phone to its digits-only
// ten-digit form.
func normalizePhone(raw string) (string, error) {
	normalized := phone.NormalizeLocal(raw)
	if len(normalized) != 10 {
		return "", apperr.Validation("telefono must be a 10-digit number").
			WithDetails(map[string]string{"field": "telefono"})
	}
	return normalized, nil
}

// guardUniquePhone fails with Conflict when another client already holds
// the normalized phone. excludeID removes the record being updated from
// the match set so a self-match never conflicts.
func (s *Service) guardUniquePhone(ctx context.Context, normalized string, excludeID int64) error {
	inUse, err := s.repo.PhoneInUse(ctx, normalized, excludeID)
	if err != nil {
		return err
	}
	if inUse {
		return apperr.Conflict(duplicatePhoneMessage).
			WithDetails(map[string]string{"field": "telefono"})
	}
	return nil
}

// List retrieves clients with pagination.
func (s *Service) List(ctx context.Context, caller rbac.Caller, req transport.ListClientsRequest) (transport.ClientListResponse, error) {
	if err := requireBackOffice(caller); err != nil {
		return transport.ClientListResponse{}, err
	}

	page := req.Page
	pageSize := req.PageSize
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}

	items, total, err := s.repo.List(ctx, repository.ListParams{
		Search:     req.Search,
		ActiveOnly: req.Activos,
		Limit:      pageSize,
		Offset:     (page - 1) * pageSize,
	})
	if err != nil {
		return transport.ClientListResponse{}, err
	}

	responses := make([]transport.ClientResponse, len(items))
	for i, c := range items {
		responses[i] = toResponse(c, nil)
	}
	return transport.ClientListResponse{
		Items:    responses,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

// Get retrieves a client with its addresses.
func (s *Service) Get(ctx context.Context, caller rbac.Caller, raw string) (transport.ClientResponse, error) {
	if err := requireBackOffice(caller); err != nil {
		return transport.ClientResponse{}, err
	}

	c, err := s.repo.GetByRef(ctx, ParseRef(raw))
	if err != nil {
		return transport.ClientResponse{}, err
	}
	addresses, err := s.repo.ListAddresses(ctx, c.ID)
	if err != nil {
		return transport.ClientResponse{}, err
	}
	return toResponse(c, addresses), nil
}

// FindByPhone retrieves a client by phone, with addresses. The phone is
// normalized before lookup so formatted input still matches.
func (s *Service) FindByPhone(ctx context.Context, caller rbac.Caller, rawPhone string) (transport.ClientResponse, error) {
	if err := requireBackOffice(caller); err != nil {
		return transport.ClientResponse{}, err
	}

	c, err := s.repo.FindByPhone(ctx, phone.NormalizeLocal(rawPhone))
	if err != nil {
		return transport.ClientResponse{}, err
	}
	addresses, err := s.repo.ListAddresses(ctx, c.ID)
	if err != nil {
		return transport.ClientResponse{}, err
	}
	return toResponse(c, addresses), nil
}

// Create creates a new client after the phone uniqueness guard.
func (s *Service) Create(ctx context.Context, caller rbac.Caller, req transport.CreateClientRequest) (transport.ClientResponse, error) {
	if err := requireBackOffice(caller); err != nil {
		return transport.ClientResponse{}, err
	}

	normalized, err := normalizePhone(req.Telefono)
	if err != nil {
		return transport.ClientResponse{}, err
	}
	if err := s.guardUniquePhone(ctx, normalized, 0); err != nil {
		return transport.ClientResponse{}, err
	}

	c, err := s.repo.Create(ctx, repository.CreateParams{
		Name:    req.Nombre,
		Surname: req.Apellidos,
		Phone:   normalized,
		Active:  true,
	})
	if err != nil {
		return transport.ClientResponse{}, err
	}

	s.log.Info("client created", "id", c.ID, "telefono", c.Phone)
	return toResponse(c, nil), nil
}

// GetOrCreateByPhone looks a client up by phone and creates it when
// absent. Used by the quick intake flow; the uniqueness guard is implied
// by the lookup itself.
func (s *Service) GetOrCreateByPhone(ctx context.Context, rawPhone, nombre, apellidos string) (repository.Client, error) {
	normalized, err := normalizePhone(rawPhone)
	if err != nil {
		return repository.Client{}, err
	}

	c, err := s.repo.FindByPhone(ctx, normalized)
	if err == nil {
		return c, nil
	}
	if !apperr.Is(err, apperr.KindNotFound) {
		return repository.Client{}, err
	}

	return s.repo.Create(ctx, repository.CreateParams{
		Name:    nombre,
		Surname: apellidos,
		Phone:   normalized,
		Active:  true,
	})
}

// Update partially updates a client. A phone change re-runs the
// uniqueness guard excluding the record itself.
func (s *Service) Update(ctx context.Context, caller rbac.Caller, raw string, req transport.UpdateClientRequest) (transport.ClientResponse, error) {
	if err := requireBackOffice(caller); err != nil {
		return transport.ClientResponse{}, err
	}

	existing, err := s.repo.GetByRef(ctx, ParseRef(raw))
	if err != nil {
		return transport.ClientResponse{}, err
	}

	var newPhone *string
	if req.Telefono != nil {
		normalized, err := normalizePhone(*req.Telefono)
		if err != nil {
			return transport.ClientResponse{}, err
		}
		if err := s.guardUniquePhone(ctx, normalized, existing.ID); err != nil {
			return transport.ClientResponse{}, err
		}
		newPhone = &normalized
	}

	c, err := s.repo.Update(ctx, repository.UpdateParams{
		Ref:     repository.RefByID(existing.ID),
		Name:    req.Nombre,
		Surname: req.Apellidos,
		Phone:   newPhone,
	})
	if err != nil {
		return transport.ClientResponse{}, err
	}
	return toResponse(c, nil), nil
}

// Deactivate soft-deactivates a client and cascades over its addresses.
// The two writes are not atomic; re-running the cascade is idempotent.
func (s *Service) Deactivate(ctx context.Context, caller rbac.Caller, raw string) error {
	return s.setLifecycle(ctx, caller, raw, false)
}

// Reactivate restores a client and cascades over its addresses.
func (s *Service) Reactivate(ctx context.Context, caller rbac.Caller, raw string) error {
	return s.setLifecycle(ctx, caller, raw, true)
}

func (s *Service) setLifecycle(ctx context.Context, caller rbac.Caller, raw string, active bool) error {
	if err := requireBackOffice(caller); err != nil {
		return err
	}

	c, err := s.repo.GetByRef(ctx, ParseRef(raw))
	if err != nil {
		return err
	}
	if err := s.repo.SetActive(ctx, c.ID, active); err != nil {
		return err
	}
	if err := s.repo.SetAddressesActive(ctx, c.ID, active); err != nil {
		return err
	}

	s.log.Info("client lifecycle changed", "id", c.ID, "activo", active)
	return nil
}

// ListAddresses retrieves the addresses of a client.
func (s *Service) ListAddresses(ctx context.Context, caller rbac.Caller, raw string) ([]transport.AddressResponse, error) {
	if err := requireBackOffice(caller); err != nil {
		return nil, err
	}

	c, err := s.repo.GetByRef(ctx, ParseRef(raw))
	if err != nil {
		return nil, err
	}
	addresses, err := s.repo.ListAddresses(ctx, c.ID)
	if err != nil {
		return nil, err
	}

	out := make([]transport.AddressResponse, len(addresses))
	for i, a := range addresses {
		out[i] = toAddressResponse(a)
	}
	return out, nil
}

// AddAddress creates an address owned by the client. The address inherits
// the client's current lifecycle state.
func (s *Service) AddAddress(ctx context.Context, caller rbac.Caller, raw string, req transport.CreateAddressRequest) (transport.AddressResponse, error) {
	if err := requireBackOffice(caller); err != nil {
		return transport.AddressResponse{}, err
	}

	c, err := s.repo.GetByRef(ctx, ParseRef(raw))
	if err != nil {
		return transport.AddressResponse{}, err
	}

	a, err := s.repo.CreateAddress(ctx, repository.CreateAddressParams{
		ClientID:   c.ID,
		Street:     req.Calle,
		Number:     req.Numero,
		Colonia:    req.Colonia,
		PostalCode: req.CodigoPostal,
		Reference:  req.Referencia,
		Active:     c.Active,
	})
	if err != nil {
		return transport.AddressResponse{}, err
	}
	return toAddressResponse(a), nil
}

// AddAddressForClient is the quick-intake variant that skips the role
// guard; the caller has already been authorized by the services module.
func (s *Service) AddAddressForClient(ctx context.Context, client repository.Client, req transport.CreateAddressRequest) (repository.Address, error) {
	return s.repo.CreateAddress(ctx, repository.CreateAddressParams{
		ClientID:   client.ID,
		Street:     req.Calle,
		Number:     req.Numero,
		Colonia:    req.Colonia,
		PostalCode: req.CodigoPostal,
		Reference:  req.Referencia,
		Active:     client.Active,
	})
}

func toResponse(c repository.Client, addresses []repository.Address) transport.ClientResponse {
	resp := transport.ClientResponse{
		ID:         c.ID,
		DocumentID: c.DocumentID,
		Nombre:     c.Name,
		Apellidos:  c.Surname,
		Telefono:   c.Phone,
		Activo:     c.Active,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}
	for _, a := range addresses {
		resp.Domicilios = append(resp.Domicilios, toAddressResponse(a))
	}
	return resp
}

func toAddressResponse(a repository.Address) transport.AddressResponse {
	return transport.AddressResponse{
		ID:           a.ID,
		DocumentID:   a.DocumentID,
		Calle:        a.Street,
		Numero:       a.Number,
		Colonia:      a.Colonia,
		CodigoPostal: a.PostalCode,
		Referencia:   a.Reference,
		Activo:       a.Active,
	}
}
