package service

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/Pepee912/GasLPNew/internal/clients/repository"
	"github.com/Pepee912/GasLPNew/internal/clients/transport"
	"github.com/Pepee912/GasLPNew/internal/rbac"
	"github.com/Pepee912/GasLPNew/platform/apperr"
	"github.com/Pepee912/GasLPNew/platform/logger"
)

type fakeRepo struct {
	clients   map[int64]repository.Client
	addresses map[int64]repository.Address
	nextID    int64
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		clients:   make(map[int64]repository.Client),
		addresses: make(map[int64]repository.Address),
		nextID:    1,
	}
}

func (f *fakeRepo) GetByRef(_ context.Context, ref repository.Ref) (repository.Client, error) {
	if ref.ByKey() {
		for _, c := range f.clients {
			if c.DocumentID == ref.Key {
				return c, nil
			}
		}
		return repository.Client{}, apperr.NotFound("cliente not found")
	}
	c, ok := f.clients[ref.ID]
	if !ok {
		return repository.Client{}, apperr.NotFound("cliente not found")
	}
	return c, nil
}

func (f *fakeRepo) FindByPhone(_ context.Context, phone string) (repository.Client, error) {
	for _, c := range f.clients {
		if c.Phone == phone {
			return c, nil
		}
	}
	return repository.Client{}, apperr.NotFound("cliente not found")
}

func (f *fakeRepo) PhoneInUse(_ context.Context, phone string, excludeID int64) (bool, error) {
	for _, c := range f.clients {
		if c.Phone == phone && c.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRepo) List(_ context.Context, _ repository.ListParams) ([]repository.Client, int, error) {
	var out []repository.Client
	for _, c := range f.clients {
		out = append(out, c)
	}
	return out, len(out), nil
}

func (f *fakeRepo) Create(_ context.Context, params repository.CreateParams) (repository.Client, error) {
	c := repository.Client{
		ID:         f.nextID,
		DocumentID: uuid.NewString(),
		Name:       params.Name,
		Surname:    params.Surname,
		Phone:      params.Phone,
		Active:     params.Active,
	}
	f.clients[c.ID] = c
	f.nextID++
	return c, nil
}

func (f *fakeRepo) Update(_ context.Context, params repository.UpdateParams) (repository.Client, error) {
	c, err := f.GetByRef(context.Background(), params.Ref)
	if err != nil {
		return repository.Client{}, err
	}
	if params.Name != nil {
		c.Name = *params.Name
	}
	if params.Surname != nil {
		c.Surname = *params.Surname
	}
	if params.Phone != nil {
		c.Phone = *params.Phone
	}
	if params.Active != nil {
		c.Active = *params.Active
	}
	f.clients[c.ID] = c
	return c, nil
}

func (f *fakeRepo) SetActive(_ context.Context, id int64, active bool) error {
	c, ok := f.clients[id]
	if !ok {
		return apperr.NotFound("cliente not found")
	}
	c.Active = active
	f.clients[id] = c
	return nil
}

func (f *fakeRepo) ListAddresses(_ context.Context, clientID int64) ([]repository.Address, error) {
	var out []repository.Address
	for _, a := range f.addresses {
		if a.ClientID == clientID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeRepo) GetAddressByRef(_ context.Context, ref repository.Ref) (repository.Address, error) {
	a, ok := f.addresses[ref.ID]
	if !ok {
		return repository.Address{}, apperr.NotFound("domicilio not found")
	}
	return a, nil
}

func (f *fakeRepo) CreateAddress(_ context.Context, params repository.CreateAddressParams) (repository.Address, error) {
	a := repository.Address{
		ID:         f.nextID,
		DocumentID: uuid.NewString(),
		ClientID:   params.ClientID,
		Street:     params.Street,
		Number:     params.Number,
		Colonia:    params.Colonia,
		PostalCode: params.PostalCode,
		Reference:  params.Reference,
		Active:     params.Active,
	}
	f.addresses[a.ID] = a
	f.nextID++
	return a, nil
}

func (f *fakeRepo) SetAddressesActive(_ context.Context, clientID int64, active bool) error {
	for id, a := range f.addresses {
		if a.ClientID == clientID {
			a.Active = active
			f.addresses[id] = a
		}
	}
	return nil
}

func newTestService() (*Service, *fakeRepo) {
	repo := newFakeRepo()
	return New(repo, logger.New("development")), repo
}

func backOffice() rbac.Caller {
	return rbac.Caller{UserID: uuid.New(), Role: rbac.RoleCallCenter, RawRole: "CallCenter"}
}

func operador() rbac.Caller {
	return rbac.Caller{UserID: uuid.New(), Role: rbac.RoleOperador, RawRole: "Operador"}
}

func TestCreateRejectsDuplicatePhone(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Create(ctx, backOffice(), transport.CreateClientRequest{
		Nombre: "Ana", Apellidos: "Lopez", Telefono: "722-123-4567",
	})
	if err != nil {
		t.Fatalf("first create: %v", err)
	}

	// Same digits through a different format must conflict.
	_, err = svc.Create(ctx, backOffice(), transport.CreateClientRequest{
		Nombre: "Otra", Telefono: "(722) 123 4567",
	})
	if !apperr.Is(err, apperr.KindConflict) {
		t.Fatalf("want conflict, got %v", err)
	}
}

func TestUpdateKeepingOwnPhoneDoesNotConflict(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	created, err := svc.Create(ctx, backOffice(), transport.CreateClientRequest{
		Nombre: "Ana", Telefono: "7221234567",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	same := "7221234567"
	_, err = svc.Update(ctx, backOffice(), created.DocumentID, transport.UpdateClientRequest{Telefono: &same})
	if err != nil {
		t.Fatalf("self-phone update must succeed, got %v", err)
	}
}

func TestUpdateToAnotherClientsPhoneConflicts(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Create(ctx, backOffice(), transport.CreateClientRequest{Nombre: "Ana", Telefono: "7221234567"})
	if err != nil {
		t.Fatalf("create a: %v", err)
	}
	b, err := svc.Create(ctx, backOffice(), transport.CreateClientRequest{Nombre: "Beto", Telefono: "7229876543"})
	if err != nil {
		t.Fatalf("create b: %v", err)
	}

	taken := "7221234567"
	_, err = svc.Update(ctx, backOffice(), b.DocumentID, transport.UpdateClientRequest{Telefono: &taken})
	if !apperr.Is(err, apperr.KindConflict) {
		t.Fatalf("want conflict, got %v", err)
	}
}

func TestCreateNormalizesCountryPrefix(t *testing.T) {
	svc, repo := newTestService()

	created, err := svc.Create(context.Background(), backOffice(), transport.CreateClientRequest{
		Nombre: "Ana", Telefono: "+52 722 123 4567",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.Telefono != "7221234567" {
		t.Fatalf("want 7221234567 stored, got %q", created.Telefono)
	}
	if _, err := repo.FindByPhone(context.Background(), "7221234567"); err != nil {
		t.Fatalf("normalized phone not stored: %v", err)
	}
}

func TestCreateRejectsShortPhone(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Create(context.Background(), backOffice(), transport.CreateClientRequest{
		Nombre: "Ana", Telefono: "12345",
	})
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("want validation error, got %v", err)
	}
}

func TestLifecycleCascadesOverAddresses(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()
	caller := backOffice()

	created, err := svc.Create(ctx, caller, transport.CreateClientRequest{Nombre: "Ana", Telefono: "7221234567"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	for _, calle := range []string{"Morelos", "Hidalgo"} {
		if _, err := svc.AddAddress(ctx, caller, created.DocumentID, transport.CreateAddressRequest{Calle: calle}); err != nil {
			t.Fatalf("add address %s: %v", calle, err)
		}
	}

	if err := svc.Deactivate(ctx, caller, created.DocumentID); err != nil {
		t.Fatalf("deactivate: %v", err)
	}
	addresses, _ := repo.ListAddresses(ctx, created.ID)
	for _, a := range addresses {
		if a.Active {
			t.Fatalf("address %d still active after deactivate", a.ID)
		}
	}

	// Idempotent: repeating the deactivation changes nothing and succeeds.
	if err := svc.Deactivate(ctx, caller, created.DocumentID); err != nil {
		t.Fatalf("repeat deactivate: %v", err)
	}

	if err := svc.Reactivate(ctx, caller, created.DocumentID); err != nil {
		t.Fatalf("reactivate: %v", err)
	}
	c, _ := repo.GetByRef(ctx, repository.RefByID(created.ID))
	if !c.Active {
		t.Fatal("client not active after reactivate")
	}
	addresses, _ = repo.ListAddresses(ctx, created.ID)
	for _, a := range addresses {
		if !a.Active {
			t.Fatalf("address %d not restored after reactivate", a.ID)
		}
	}
}

func TestNewAddressInheritsClientLifecycle(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	caller := backOffice()

	created, err := svc.Create(ctx, caller, transport.CreateClientRequest{Nombre: "Ana", Telefono: "7221234567"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := svc.Deactivate(ctx, caller, created.DocumentID); err != nil {
		t.Fatalf("deactivate: %v", err)
	}

	a, err := svc.AddAddress(ctx, caller, created.DocumentID, transport.CreateAddressRequest{Calle: "Juarez"})
	if err != nil {
		t.Fatalf("add address: %v", err)
	}
	if a.Activo {
		t.Fatal("address of an inactive client must start inactive")
	}
}

func TestFindByPhoneNormalizesLookup(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	caller := backOffice()

	if _, err := svc.Create(ctx, caller, transport.CreateClientRequest{Nombre: "Ana", Telefono: "7221234567"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := svc.FindByPhone(ctx, caller, "+52 (722) 123-4567")
	if err != nil {
		t.Fatalf("find by formatted phone: %v", err)
	}
	if got.Telefono != "7221234567" {
		t.Fatalf("unexpected client: %q", got.Telefono)
	}
}

func TestOperadorCannotTouchClients(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	if _, err := svc.List(ctx, operador(), transport.ListClientsRequest{}); !apperr.Is(err, apperr.KindForbidden) {
		t.Fatalf("list: want forbidden, got %v", err)
	}
	if _, err := svc.Create(ctx, operador(), transport.CreateClientRequest{Nombre: "X", Telefono: "7221234567"}); !apperr.Is(err, apperr.KindForbidden) {
		t.Fatalf("create: want forbidden, got %v", err)
	}
	if _, err := svc.FindByPhone(ctx, operador(), "7221234567"); !apperr.Is(err, apperr.KindForbidden) {
		t.Fatalf("find: want forbidden, got %v", err)
	}
}

func TestAnonymousIsUnauthorized(t *testing.T) {
	svc, _ := newTestService()

	anon := rbac.Caller{Role: rbac.RoleUnauthenticated}
	_, err := svc.List(context.Background(), anon, transport.ListClientsRequest{})
	if !apperr.Is(err, apperr.KindUnauthorized) {
		t.Fatalf("want unauthorized, got %v", err)
	}
}

func TestGetOrCreateByPhoneReusesExisting(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	first, err := svc.GetOrCreateByPhone(ctx, "7221234567", "Ana", "Lopez")
	if err != nil {
		t.Fatalf("first call: %v", err)
	}
	second, err := svc.GetOrCreateByPhone(ctx, "+52 722 123 4567", "Ignored", "Ignored")
	if err != nil {
		t.Fatalf("second call: %v", err)
	}
	if first.ID != second.ID {
		t.Fatalf("want same client, got %d and %d", first.ID, second.ID)
	}
	if len(repo.clients) != 1 {
		t.Fatalf("want a single client record, got %d", len(repo.clients))
	}
}
