package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	catalogrepo "github.com/Pepee912/GasLPNew/internal/catalog/repository"
	clientsrepo "github.com/Pepee912/GasLPNew/internal/clients/repository"
	clientsvc "github.com/Pepee912/GasLPNew/internal/clients/service"
	"github.com/Pepee912/GasLPNew/internal/rbac"
	"github.com/Pepee912/GasLPNew/internal/services/repository"
	"github.com/Pepee912/GasLPNew/internal/services/transport"
	"github.com/Pepee912/GasLPNew/platform/apperr"
	"github.com/Pepee912/GasLPNew/platform/events"
	"github.com/Pepee912/GasLPNew/platform/logger"
)

// Seed identifiers shared by the fakes.
const (
	statusProgramadoID = 1
	statusAsignadoID   = 2
	statusSurtidoID    = 3
	statusCanceladoID  = 4

	typeRecargaID = 10

	routeCentroID = 20
	routeNorteID  = 21

	clientAnaID  = 100
	addressAnaID = 200
)

var operadorCentro = uuid.New()

type fakeCatalog struct{}

var catalogStatuses = map[int64]catalogrepo.ServiceStatus{
	statusProgramadoID: {ID: statusProgramadoID, DocumentID: "st-prog", Name: "Programado", Kind: "Programado", Active: true},
	statusAsignadoID:   {ID: statusAsignadoID, DocumentID: "st-asig", Name: "Asignado", Kind: "Asignado", Active: true},
	statusSurtidoID:    {ID: statusSurtidoID, DocumentID: "st-surt", Name: "Surtido", Kind: "Surtido", Active: true},
	statusCanceladoID:  {ID: statusCanceladoID, DocumentID: "st-canc", Name: "Cancelado", Kind: "Cancelado", Active: true},
}

func (fakeCatalog) GetStatusByID(_ context.Context, id int64) (catalogrepo.ServiceStatus, error) {
	if st, ok := catalogStatuses[id]; ok {
		return st, nil
	}
	return catalogrepo.ServiceStatus{}, apperr.NotFound("estado not found")
}

func (fakeCatalog) GetStatusByKey(_ context.Context, key string) (catalogrepo.ServiceStatus, error) {
	for _, st := range catalogStatuses {
		if st.DocumentID == key {
			return st, nil
		}
	}
	return catalogrepo.ServiceStatus{}, apperr.NotFound("estado not found")
}

func (fakeCatalog) GetActiveStatusByKind(_ context.Context, kind string) (catalogrepo.ServiceStatus, error) {
	for _, st := range catalogStatuses {
		if st.Kind == kind && st.Active {
			return st, nil
		}
	}
	return catalogrepo.ServiceStatus{}, apperr.NotFound("estado not found")
}

func (fakeCatalog) ListStatuses(context.Context, bool) ([]catalogrepo.ServiceStatus, error) {
	return nil, nil
}

func (fakeCatalog) CreateStatus(context.Context, string, string) (catalogrepo.ServiceStatus, error) {
	return catalogrepo.ServiceStatus{}, nil
}

func (fakeCatalog) SetStatusActive(context.Context, catalogrepo.Ref, bool) error { return nil }

func (fakeCatalog) GetTypeByRef(_ context.Context, ref catalogrepo.Ref) (catalogrepo.ServiceType, error) {
	if ref.ID == typeRecargaID || ref.Key == "tp-recarga" {
		return catalogrepo.ServiceType{ID: typeRecargaID, DocumentID: "tp-recarga", Name: "Recarga", Active: true}, nil
	}
	return catalogrepo.ServiceType{}, apperr.NotFound("tipo not found")
}

func (fakeCatalog) ListTypes(context.Context, bool) ([]catalogrepo.ServiceType, error) {
	return nil, nil
}

func (fakeCatalog) CreateType(context.Context, string) (catalogrepo.ServiceType, error) {
	return catalogrepo.ServiceType{}, nil
}

func (fakeCatalog) SetTypeActive(context.Context, catalogrepo.Ref, bool) error { return nil }

func (fakeCatalog) GetRouteByRef(_ context.Context, ref catalogrepo.Ref) (catalogrepo.Route, error) {
	switch {
	case ref.ID == routeCentroID || ref.Key == "rt-centro":
		return catalogrepo.Route{ID: routeCentroID, DocumentID: "rt-centro", Name: "Ruta Centro", Active: true}, nil
	case ref.ID == routeNorteID || ref.Key == "rt-norte":
		return catalogrepo.Route{ID: routeNorteID, DocumentID: "rt-norte", Name: "Ruta Norte", Active: true}, nil
	}
	return catalogrepo.Route{}, apperr.NotFound("ruta not found")
}

func (fakeCatalog) ListRoutes(context.Context, bool) ([]catalogrepo.Route, error) { return nil, nil }

func (fakeCatalog) CreateRoute(context.Context, string) (catalogrepo.Route, error) {
	return catalogrepo.Route{}, nil
}

func (fakeCatalog) RenameRoute(context.Context, catalogrepo.Ref, string) (catalogrepo.Route, error) {
	return catalogrepo.Route{}, nil
}

func (fakeCatalog) SetRouteActive(context.Context, catalogrepo.Ref, bool) error { return nil }

func (fakeCatalog) AssignPersonnel(context.Context, uuid.UUID, catalogrepo.Ref) (catalogrepo.Personnel, error) {
	return catalogrepo.Personnel{}, nil
}

func (fakeCatalog) ListPersonnelByRoute(context.Context, catalogrepo.Ref) ([]catalogrepo.Personnel, error) {
	return nil, nil
}

func (fakeCatalog) RemovePersonnel(context.Context, catalogrepo.Ref) error { return nil }

var seedClient = clientsrepo.Client{
	ID: clientAnaID, DocumentID: "cl-ana", Name: "Ana", Surname: "Lopez",
	Phone: "7221234567", Active: true,
}

var seedAddress = clientsrepo.Address{
	ID: addressAnaID, DocumentID: "dm-ana", ClientID: clientAnaID,
	Street: "Morelos", Number: "12", Colonia: "Centro", PostalCode: "50000", Active: true,
}

type fakeClients struct {
	clients   map[int64]clientsrepo.Client
	addresses map[int64]clientsrepo.Address
	nextID    int64
}

func newFakeClients() *fakeClients {
	return &fakeClients{
		clients:   map[int64]clientsrepo.Client{seedClient.ID: seedClient},
		addresses: map[int64]clientsrepo.Address{seedAddress.ID: seedAddress},
		nextID:    300,
	}
}

func (f *fakeClients) GetByRef(_ context.Context, ref clientsrepo.Ref) (clientsrepo.Client, error) {
	for _, c := range f.clients {
		if c.ID == ref.ID || (ref.ByKey() && c.DocumentID == ref.Key) {
			return c, nil
		}
	}
	return clientsrepo.Client{}, apperr.NotFound("cliente not found")
}

func (f *fakeClients) FindByPhone(_ context.Context, phone string) (clientsrepo.Client, error) {
	for _, c := range f.clients {
		if c.Phone == phone {
			return c, nil
		}
	}
	return clientsrepo.Client{}, apperr.NotFound("cliente not found")
}

func (f *fakeClients) PhoneInUse(context.Context, string, int64) (bool, error) { return false, nil }

func (f *fakeClients) List(context.Context, clientsrepo.ListParams) ([]clientsrepo.Client, int, error) {
	return nil, 0, nil
}

func (f *fakeClients) Create(_ context.Context, params clientsrepo.CreateParams) (clientsrepo.Client, error) {
	c := clientsrepo.Client{
		ID: f.nextID, DocumentID: uuid.NewString(),
		Name: params.Name, Surname: params.Surname, Phone: params.Phone, Active: params.Active,
	}
	f.clients[c.ID] = c
	f.nextID++
	return c, nil
}

func (f *fakeClients) Update(context.Context, clientsrepo.UpdateParams) (clientsrepo.Client, error) {
	return clientsrepo.Client{}, nil
}

func (f *fakeClients) SetActive(context.Context, int64, bool) error { return nil }

func (f *fakeClients) ListAddresses(context.Context, int64) ([]clientsrepo.Address, error) {
	return nil, nil
}

func (f *fakeClients) GetAddressByRef(_ context.Context, ref clientsrepo.Ref) (clientsrepo.Address, error) {
	for _, a := range f.addresses {
		if a.ID == ref.ID || (ref.ByKey() && a.DocumentID == ref.Key) {
			return a, nil
		}
	}
	return clientsrepo.Address{}, apperr.NotFound("domicilio not found")
}

func (f *fakeClients) CreateAddress(_ context.Context, params clientsrepo.CreateAddressParams) (clientsrepo.Address, error) {
	a := clientsrepo.Address{
		ID: f.nextID, DocumentID: uuid.NewString(), ClientID: params.ClientID,
		Street: params.Street, Number: params.Number, Active: params.Active,
	}
	f.addresses[a.ID] = a
	f.nextID++
	return a, nil
}

func (f *fakeClients) SetAddressesActive(context.Context, int64, bool) error { return nil }

type fakeServices struct {
	records map[int64]repository.Service
	// route assignment: user -> route ids
	personal map[uuid.UUID][]int64
	nextID   int64
}

func newFakeServices() *fakeServices {
	return &fakeServices{
		records:  make(map[int64]repository.Service),
		personal: map[uuid.UUID][]int64{operadorCentro: {routeCentroID}},
		nextID:   1000,
	}
}

func (f *fakeServices) routeID(s repository.Service) (int64, bool) {
	if s.Ruta == nil {
		return 0, false
	}
	return s.Ruta.ID, true
}

func (f *fakeServices) GetByRef(_ context.Context, ref repository.Ref) (repository.Service, error) {
	for _, s := range f.records {
		if s.ID == ref.ID || (ref.ByKey() && s.DocumentID == ref.Key) {
			return s, nil
		}
	}
	return repository.Service{}, apperr.NotFound("servicio not found")
}

func (f *fakeServices) OwnedByOperador(_ context.Context, serviceID int64, userID uuid.UUID) (bool, error) {
	s, ok := f.records[serviceID]
	if !ok {
		return false, nil
	}
	rid, hasRoute := f.routeID(s)
	if !hasRoute {
		return false, nil
	}
	for _, assigned := range f.personal[userID] {
		if assigned == rid {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeServices) List(_ context.Context, params repository.ListParams) ([]repository.Service, int, error) {
	var out []repository.Service
	for _, s := range f.records {
		if params.Restricted {
			rid, hasRoute := f.routeID(s)
			if !hasRoute {
				continue
			}
			assigned := false
			for _, a := range f.personal[params.OperadorUserID] {
				if a == rid {
					assigned = true
				}
			}
			if !assigned {
				continue
			}
			allowed := false
			for _, k := range params.AllowedKinds {
				if k == s.Estado.Kind {
					allowed = true
				}
			}
			if !allowed {
				continue
			}
		}
		if params.Kind != "" && s.Estado.Kind != params.Kind {
			continue
		}
		if params.RouteKey != "" && (s.Ruta == nil || s.Ruta.DocumentID != params.RouteKey) {
			continue
		}
		if params.From != nil && s.FechaProgramado.Before(*params.From) {
			continue
		}
		if params.To != nil && !s.FechaProgramado.Before(*params.To) {
			continue
		}
		out = append(out, s)
	}
	return out, len(out), nil
}

func (f *fakeServices) project(params repository.CreateParams, id int64, doc string) repository.Service {
	s := repository.Service{
		ID:              id,
		DocumentID:      doc,
		FechaProgramado: params.FechaProgramado,
		Observacion:     params.Observacion,
		NotaOperador:    params.NotaOperador,
		FechaSurtido:    params.FechaSurtido,
		FechaCancelado:  params.FechaCancelado,
		Cliente: repository.ClientInfo{
			ID: seedClient.ID, DocumentID: seedClient.DocumentID,
			Nombre: seedClient.Name, Apellidos: seedClient.Surname, Telefono: seedClient.Phone,
		},
		Domicilio: repository.AddressInfo{ID: seedAddress.ID, DocumentID: seedAddress.DocumentID, Calle: seedAddress.Street},
		Tipo:      repository.LookupInfo{ID: typeRecargaID, DocumentID: "tp-recarga", Nombre: "Recarga"},
	}
	st := catalogStatuses[params.EstadoID]
	s.Estado = repository.StatusInfo{ID: st.ID, DocumentID: st.DocumentID, Nombre: st.Name, Kind: st.Kind}
	if params.RutaID != nil {
		route, _ := fakeCatalog{}.GetRouteByRef(context.Background(), catalogrepo.RefByID(*params.RutaID))
		s.Ruta = &repository.LookupInfo{ID: route.ID, DocumentID: route.DocumentID, Nombre: route.Name}
	}
	return s
}

func (f *fakeServices) Create(ctx context.Context, params repository.CreateParams) (repository.Service, error) {
	id := f.nextID
	f.nextID++
	s := f.project(params, id, uuid.NewString())
	f.records[id] = s
	return s, nil
}

func (f *fakeServices) Update(_ context.Context, params repository.UpdateParams) (repository.Service, error) {
	s, ok := f.records[params.ID]
	if !ok {
		return repository.Service{}, apperr.NotFound("servicio not found")
	}
	if params.EstadoID != nil {
		st := catalogStatuses[*params.EstadoID]
		s.Estado = repository.StatusInfo{ID: st.ID, DocumentID: st.DocumentID, Nombre: st.Name, Kind: st.Kind}
	}
	switch {
	case params.ClearRuta:
		s.Ruta = nil
	case params.RutaID != nil:
		route, _ := fakeCatalog{}.GetRouteByRef(context.Background(), catalogrepo.RefByID(*params.RutaID))
		s.Ruta = &repository.LookupInfo{ID: route.ID, DocumentID: route.DocumentID, Nombre: route.Name}
	}
	if params.FechaProgramado != nil {
		s.FechaProgramado = *params.FechaProgramado
	}
	if params.Observacion != nil {
		s.Observacion = *params.Observacion
	}
	switch {
	case params.ClearNota:
		s.NotaOperador = nil
	case params.NotaOperador != nil:
		s.NotaOperador = params.NotaOperador
	}
	switch {
	case params.FechaSurtido != nil:
		s.FechaSurtido = params.FechaSurtido
	case params.ClearSurtido:
		s.FechaSurtido = nil
	}
	switch {
	case params.FechaCancelado != nil:
		s.FechaCancelado = params.FechaCancelado
	case params.ClearCancelado:
		s.FechaCancelado = nil
	}
	f.records[params.ID] = s
	return s, nil
}

func newEngine(t *testing.T) (*Service, *fakeServices) {
	t.Helper()
	log := logger.New("development")
	repo := newFakeServices()
	clients := newFakeClients()
	intake := clientsvc.New(clients, log)
	svc := New(repo, fakeCatalog{}, clients, intake, events.NewInMemoryBus(log), nil, log)
	svc.now = func() time.Time {
		return time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	}
	svc.loc = time.UTC
	return svc, repo
}

func backOffice() rbac.Caller {
	return rbac.Caller{UserID: uuid.New(), Role: rbac.RoleAdministrador, RawRole: "Administrador"}
}

func operadorOnCentro() rbac.Caller {
	return rbac.Caller{UserID: operadorCentro, Role: rbac.RoleOperador, RawRole: "Operador"}
}

// seedService puts a service into the fake repo and returns it.
func seedService(repo *fakeServices, estadoID int64, rutaID *int64, fecha time.Time) repository.Service {
	s := repo.project(repository.CreateParams{
		EstadoID:        estadoID,
		RutaID:          rutaID,
		FechaProgramado: fecha,
		Observacion:     "pedido original",
	}, repo.nextID, uuid.NewString())
	repo.records[repo.nextID] = s
	repo.nextID++
	return s
}

func int64ptr(v int64) *int64 { return &v }

func strptr(v string) *string { return &v }

func TestOperadorMarksDelivery(t *testing.T) {
	svc, repo := newEngine(t)
	ctx := context.Background()
	centro := int64ptr(routeCentroID)
	existing := seedService(repo, statusAsignadoID, centro, svc.now())

	note := "  tanque dañado  "
	resp, err := svc.Update(ctx, operadorOnCentro(), existing.DocumentID, transport.UpdateServiceRequest{
		EstadoServicio: transport.RefByID(statusSurtidoID),
		NotaOperador:   &note,
		// Disallowed fields must be dropped silently, not rejected.
		Cliente:     transport.RefByID(999),
		Ruta:        transport.RefByID(routeNorteID),
		Observacion: strptr("hacked"),
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	if resp.EstadoServicio.Tipo != "Surtido" {
		t.Errorf("estado = %s, want Surtido", resp.EstadoServicio.Tipo)
	}
	if resp.FechaSurtido == nil {
		t.Error("fecha_surtido not stamped")
	}
	if resp.NotaOperador == nil || *resp.NotaOperador != "tanque dañado" {
		t.Errorf("nota = %v, want trimmed note", resp.NotaOperador)
	}

	stored := repo.records[existing.ID]
	if stored.Observacion != "pedido original" {
		t.Errorf("observacion changed to %q", stored.Observacion)
	}
	if stored.Ruta == nil || stored.Ruta.ID != routeCentroID {
		t.Error("ruta must be untouched")
	}
}

func TestOperadorCannotCancel(t *testing.T) {
	svc, repo := newEngine(t)
	existing := seedService(repo, statusAsignadoID, int64ptr(routeCentroID), svc.now())

	_, err := svc.Update(context.Background(), operadorOnCentro(), existing.DocumentID, transport.UpdateServiceRequest{
		EstadoServicio: transport.RefByID(statusCanceladoID),
	})
	if !apperr.Is(err, apperr.KindForbidden) {
		t.Fatalf("want forbidden, got %v", err)
	}

	if repo.records[existing.ID].Estado.Kind != "Asignado" {
		t.Fatal("record must be untouched after a denied transition")
	}
}

func TestOperadorBlockedOutsideOwnRoute(t *testing.T) {
	svc, repo := newEngine(t)
	onNorte := seedService(repo, statusAsignadoID, int64ptr(routeNorteID), svc.now())

	_, err := svc.Get(context.Background(), operadorOnCentro(), onNorte.DocumentID)
	if !apperr.Is(err, apperr.KindForbidden) {
		t.Fatalf("want forbidden, got %v", err)
	}

	// A missing record answers identically, no existence leakage.
	_, err = svc.Get(context.Background(), operadorOnCentro(), "no-such-doc")
	if !apperr.Is(err, apperr.KindForbidden) {
		t.Fatalf("missing record: want forbidden, got %v", err)
	}
}

func TestOperadorCannotSeeProgramado(t *testing.T) {
	svc, repo := newEngine(t)
	programado := seedService(repo, statusProgramadoID, int64ptr(routeCentroID), svc.now())

	_, err := svc.Get(context.Background(), operadorOnCentro(), programado.DocumentID)
	if !apperr.Is(err, apperr.KindForbidden) {
		t.Fatalf("want forbidden, got %v", err)
	}

	list, err := svc.List(context.Background(), operadorOnCentro(), transport.ListServicesRequest{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	for _, item := range list.Items {
		if item.ID == programado.ID {
			t.Fatal("Programado service leaked into operador listing")
		}
	}
}

func TestOperadorListingOmitsClientPersonalFields(t *testing.T) {
	svc, repo := newEngine(t)
	seedService(repo, statusAsignadoID, int64ptr(routeCentroID), svc.now())

	list, err := svc.List(context.Background(), operadorOnCentro(), transport.ListServicesRequest{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list.Items) != 1 {
		t.Fatalf("want 1 item, got %d", len(list.Items))
	}
	item := list.Items[0]
	if item.Cliente.Nombre != "" || item.Cliente.Apellidos != "" || item.Cliente.Telefono != "" {
		t.Fatalf("client personal fields leaked: %+v", item.Cliente)
	}
	if item.Cliente.ID == 0 || item.Domicilio.Calle == "" {
		t.Fatal("identifiers and address must survive the projection")
	}
}

func TestAdminCancelAfterSurtidoFlipsDates(t *testing.T) {
	svc, repo := newEngine(t)
	ctx := context.Background()
	existing := seedService(repo, statusAsignadoID, int64ptr(routeCentroID), svc.now())

	_, err := svc.Update(ctx, backOffice(), existing.DocumentID, transport.UpdateServiceRequest{
		EstadoServicio: transport.RefByID(statusSurtidoID),
	})
	if err != nil {
		t.Fatalf("to surtido: %v", err)
	}

	resp, err := svc.Update(ctx, backOffice(), existing.DocumentID, transport.UpdateServiceRequest{
		EstadoServicio: transport.RefByID(statusCanceladoID),
	})
	if err != nil {
		t.Fatalf("to cancelado: %v", err)
	}
	if resp.FechaCancelado == nil {
		t.Error("fecha_cancelado not stamped")
	}
	if resp.FechaSurtido != nil {
		t.Error("fecha_surtido must be cleared by cancellation")
	}
}

func TestAdminBackdatesCancellation(t *testing.T) {
	svc, repo := newEngine(t)
	existing := seedService(repo, statusAsignadoID, int64ptr(routeCentroID), svc.now())

	supplied := time.Date(2026, 1, 5, 8, 0, 0, 0, time.UTC)
	resp, err := svc.Update(context.Background(), backOffice(), existing.DocumentID, transport.UpdateServiceRequest{
		EstadoServicio: transport.RefByID(statusCanceladoID),
		FechaCancelado: &supplied,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if resp.FechaCancelado == nil || !resp.FechaCancelado.Equal(supplied) {
		t.Fatalf("fecha_cancelado = %v, want supplied %v", resp.FechaCancelado, supplied)
	}
}

func TestAdminClearsRouteWithNull(t *testing.T) {
	svc, repo := newEngine(t)
	existing := seedService(repo, statusAsignadoID, int64ptr(routeCentroID), svc.now())

	resp, err := svc.Update(context.Background(), backOffice(), existing.DocumentID, transport.UpdateServiceRequest{
		Ruta: transport.RefNull(),
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if resp.Ruta != nil {
		t.Fatalf("ruta = %+v, want disconnected", resp.Ruta)
	}
	if repo.records[existing.ID].Ruta != nil {
		t.Fatal("stored ruta must be cleared")
	}
}

func TestOperadorStandaloneDatesAndNoteAreDropped(t *testing.T) {
	svc, repo := newEngine(t)
	existing := seedService(repo, statusAsignadoID, int64ptr(routeCentroID), svc.now())

	delivered := svc.now().AddDate(0, 0, -1)
	note := "sin transicion"
	resp, err := svc.Update(context.Background(), operadorOnCentro(), existing.DocumentID, transport.UpdateServiceRequest{
		// No estado: nothing here may reach storage.
		FechaSurtido: &delivered,
		NotaOperador: &note,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if resp.FechaSurtido != nil {
		t.Fatalf("fecha_surtido = %v, want untouched", resp.FechaSurtido)
	}
	if resp.NotaOperador != nil {
		t.Fatalf("nota = %v, want untouched", resp.NotaOperador)
	}
	if repo.records[existing.ID].Estado.Kind != "Asignado" {
		t.Fatal("estado must be untouched")
	}
}

func TestOperadorBlankNoteDoesNotClearStoredNote(t *testing.T) {
	svc, repo := newEngine(t)
	existing := seedService(repo, statusAsignadoID, int64ptr(routeCentroID), svc.now())
	stored := repo.records[existing.ID]
	stored.NotaOperador = strptr("medio tanque")
	repo.records[existing.ID] = stored

	blank := "   "
	resp, err := svc.Update(context.Background(), operadorOnCentro(), existing.DocumentID, transport.UpdateServiceRequest{
		EstadoServicio: transport.RefByID(statusSurtidoID),
		NotaOperador:   &blank,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if resp.NotaOperador == nil || *resp.NotaOperador != "medio tanque" {
		t.Fatalf("nota = %v, blank note must be dropped, not applied", resp.NotaOperador)
	}
}

func TestCreateDefaultsStatusByRoute(t *testing.T) {
	svc, _ := newEngine(t)
	ctx := context.Background()
	fecha := time.Date(2026, 3, 11, 9, 0, 0, 0, time.UTC)

	withoutRoute, err := svc.Create(ctx, backOffice(), transport.CreateServiceRequest{
		Cliente:         transport.RefByID(clientAnaID),
		Domicilio:       transport.RefByID(addressAnaID),
		TipoServicio:    transport.RefByID(typeRecargaID),
		FechaProgramado: fecha,
	})
	if err != nil {
		t.Fatalf("create without ruta: %v", err)
	}
	if withoutRoute.EstadoServicio.Tipo != "Programado" {
		t.Errorf("estado = %s, want Programado", withoutRoute.EstadoServicio.Tipo)
	}

	withRoute, err := svc.Create(ctx, backOffice(), transport.CreateServiceRequest{
		Cliente:         transport.RefByID(clientAnaID),
		Domicilio:       transport.RefByID(addressAnaID),
		TipoServicio:    transport.RefByID(typeRecargaID),
		Ruta:            transport.RefByID(routeCentroID),
		FechaProgramado: fecha,
	})
	if err != nil {
		t.Fatalf("create with ruta: %v", err)
	}
	if withRoute.EstadoServicio.Tipo != "Asignado" {
		t.Errorf("estado = %s, want Asignado", withRoute.EstadoServicio.Tipo)
	}
}

func TestOperadorCreateStripsStatusAndNote(t *testing.T) {
	svc, _ := newEngine(t)

	note := "no debe entrar"
	resp, err := svc.Create(context.Background(), operadorOnCentro(), transport.CreateServiceRequest{
		Cliente:         transport.RefByID(clientAnaID),
		Domicilio:       transport.RefByID(addressAnaID),
		TipoServicio:    transport.RefByID(typeRecargaID),
		Ruta:            transport.RefByID(routeCentroID),
		EstadoServicio:  transport.RefByID(statusSurtidoID),
		NotaOperador:    &note,
		FechaProgramado: svc.now(),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if resp.EstadoServicio.Tipo != "Asignado" {
		t.Errorf("estado = %s, want default Asignado", resp.EstadoServicio.Tipo)
	}
	if resp.NotaOperador != nil {
		t.Error("nota_operador must be stripped on operador create")
	}
	if resp.FechaSurtido != nil {
		t.Error("fecha_surtido must not be stamped")
	}
}

func TestEmptyArrayStatusIsNotForwarded(t *testing.T) {
	svc, repo := newEngine(t)
	existing := seedService(repo, statusAsignadoID, int64ptr(routeCentroID), svc.now())

	var req transport.UpdateServiceRequest
	req.Observacion = strptr("cliente llama mas tarde")
	// EstadoServicio stays the zero RefValue, same as `"estado_servicio": []`.

	resp, err := svc.Update(context.Background(), backOffice(), existing.DocumentID, req)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if resp.EstadoServicio.Tipo != "Asignado" {
		t.Errorf("estado changed to %s", resp.EstadoServicio.Tipo)
	}
	if resp.Observacion != "cliente llama mas tarde" {
		t.Errorf("observacion = %q", resp.Observacion)
	}
}

func TestInvalidStatusReferenceIsValidationError(t *testing.T) {
	svc, repo := newEngine(t)
	existing := seedService(repo, statusAsignadoID, int64ptr(routeCentroID), svc.now())

	_, err := svc.Update(context.Background(), backOffice(), existing.DocumentID, transport.UpdateServiceRequest{
		EstadoServicio: transport.RefByKey("no-such-status"),
	})
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("want validation, got %v", err)
	}
}

func TestAnonymousAndUnknownDenied(t *testing.T) {
	svc, _ := newEngine(t)
	ctx := context.Background()

	anon := rbac.Caller{Role: rbac.RoleUnauthenticated}
	if _, err := svc.List(ctx, anon, transport.ListServicesRequest{}); !apperr.Is(err, apperr.KindUnauthorized) {
		t.Fatalf("anonymous: want unauthorized, got %v", err)
	}

	unknown := rbac.Caller{UserID: uuid.New(), Role: rbac.RoleUnknown, RawRole: "Supervisor"}
	if _, err := svc.List(ctx, unknown, transport.ListServicesRequest{}); !apperr.Is(err, apperr.KindUnauthorized) {
		t.Fatalf("unknown role: want unauthorized, got %v", err)
	}
}

func TestListDayWindows(t *testing.T) {
	svc, repo := newEngine(t)
	ctx := context.Background()
	today := svc.now()
	seedService(repo, statusAsignadoID, int64ptr(routeCentroID), today)
	seedService(repo, statusAsignadoID, int64ptr(routeCentroID), today.AddDate(0, 0, -1))
	seedService(repo, statusAsignadoID, int64ptr(routeCentroID), today.AddDate(0, 0, 2))

	hoy, err := svc.ListToday(ctx, backOffice(), transport.ListServicesRequest{})
	if err != nil {
		t.Fatalf("hoy: %v", err)
	}
	if len(hoy.Items) != 1 {
		t.Fatalf("hoy: want 1 item, got %d", len(hoy.Items))
	}

	ayer, err := svc.List(ctx, backOffice(), transport.ListServicesRequest{Dia: "ayer"})
	if err != nil {
		t.Fatalf("ayer: %v", err)
	}
	if len(ayer.Items) != 1 {
		t.Fatalf("ayer: want 1 item, got %d", len(ayer.Items))
	}

	if _, err := svc.List(ctx, backOffice(), transport.ListServicesRequest{Dia: "manana"}); !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("bad dia: want validation, got %v", err)
	}
	if _, err := svc.List(ctx, backOffice(), transport.ListServicesRequest{Fecha: "11-03-2026"}); !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("bad fecha: want validation, got %v", err)
	}
}

func TestAltaRapidaCreatesEverything(t *testing.T) {
	svc, _ := newEngine(t)

	resp, err := svc.AltaRapida(context.Background(), backOffice(), transport.AltaRapidaRequest{
		Nombre:   "Luis",
		Telefono: "7229876543",
		Direccion: &transport.AltaRapidaAddress{
			Calle: "Juarez", Numero: "4",
		},
		Servicio: &transport.AltaRapidaService{
			TipoServicio:    transport.RefByID(typeRecargaID),
			FechaProgramado: svc.now().AddDate(0, 0, 1),
		},
	})
	if err != nil {
		t.Fatalf("alta rapida: %v", err)
	}
	if resp.Cliente.ID == 0 || resp.Domicilio.ID == 0 {
		t.Fatal("cliente and domicilio must be created")
	}
	if resp.Servicio == nil || resp.Servicio.EstadoServicio.Tipo != "Programado" {
		t.Fatalf("servicio = %+v, want Programado service", resp.Servicio)
	}
}

func TestAltaRapidaDeniedForOperador(t *testing.T) {
	svc, _ := newEngine(t)

	_, err := svc.AltaRapida(context.Background(), operadorOnCentro(), transport.AltaRapidaRequest{
		Nombre: "Luis", Telefono: "7229876543",
	})
	if !apperr.Is(err, apperr.KindForbidden) {
		t.Fatalf("want forbidden, got %v", err)
	}
}
